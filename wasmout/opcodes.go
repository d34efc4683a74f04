package wasmout

// Opcode bytes for the subset of Wasm 1.0 instructions this emitter
// actually produces. Values match the Wasm binary format specification
// exactly; they are not an independent encoding.
const (
	OpBlock byte = 0x02
	OpLoop  byte = 0x03
	OpEnd   byte = 0x0B
	OpBr    byte = 0x0C
	OpBrIf  byte = 0x0D
	OpCall  byte = 0x10

	OpDrop   byte = 0x1A
	OpReturn byte = 0x0F

	OpLocalGet byte = 0x20
	OpLocalSet byte = 0x21
	OpLocalTee byte = 0x22

	OpI32Const byte = 0x41
	OpI64Const byte = 0x42
	OpF32Const byte = 0x43
	OpF64Const byte = 0x44

	OpI32Eqz byte = 0x45
	OpI32Eq  byte = 0x46
	OpI32Ne  byte = 0x47
	OpI32LtS byte = 0x48
	OpI32LtU byte = 0x49
	OpI32GtS byte = 0x4A
	OpI32GtU byte = 0x4B
	OpI32LeS byte = 0x4C
	OpI32LeU byte = 0x4D
	OpI32GeS byte = 0x4E
	OpI32GeU byte = 0x4F

	OpI64Eqz byte = 0x50
	OpI64Eq  byte = 0x51
	OpI64Ne  byte = 0x52
	OpI64LtS byte = 0x53
	OpI64LtU byte = 0x54
	OpI64GtS byte = 0x55
	OpI64GtU byte = 0x56
	OpI64LeS byte = 0x57
	OpI64LeU byte = 0x58
	OpI64GeS byte = 0x59
	OpI64GeU byte = 0x5A

	OpF32Eq byte = 0x5B
	OpF32Ne byte = 0x5C
	OpF32Lt byte = 0x5D
	OpF32Gt byte = 0x5E
	OpF32Le byte = 0x5F
	OpF32Ge byte = 0x60

	OpF64Eq byte = 0x61
	OpF64Ne byte = 0x62
	OpF64Lt byte = 0x63
	OpF64Gt byte = 0x64
	OpF64Le byte = 0x65
	OpF64Ge byte = 0x66

	OpI32Add  byte = 0x6A
	OpI32Sub  byte = 0x6B
	OpI32Mul  byte = 0x6C
	OpI32DivS byte = 0x6D
	OpI32DivU byte = 0x6E
	OpI32RemS byte = 0x6F
	OpI32RemU byte = 0x70
	OpI32And  byte = 0x71
	OpI32Or   byte = 0x72
	OpI32Xor  byte = 0x73
	OpI32Shl  byte = 0x74
	OpI32ShrS byte = 0x75
	OpI32ShrU byte = 0x76

	OpI64Add  byte = 0x7C
	OpI64Sub  byte = 0x7D
	OpI64Mul  byte = 0x7E
	OpI64DivS byte = 0x7F
	OpI64DivU byte = 0x80
	OpI64RemS byte = 0x81
	OpI64RemU byte = 0x82
	OpI64And  byte = 0x83
	OpI64Or   byte = 0x84
	OpI64Xor  byte = 0x85
	OpI64Shl  byte = 0x86
	OpI64ShrS byte = 0x87
	OpI64ShrU byte = 0x88

	OpF32Add byte = 0x92
	OpF32Sub byte = 0x93
	OpF32Mul byte = 0x94
	OpF32Div byte = 0x95
	OpF32Min byte = 0x96
	OpF32Max byte = 0x97
	OpF32Neg byte = 0x8C

	OpF64Add byte = 0xA0
	OpF64Sub byte = 0xA1
	OpF64Mul byte = 0xA2
	OpF64Div byte = 0xA3
	OpF64Min byte = 0xA4
	OpF64Max byte = 0xA5
	OpF64Neg byte = 0x9A

	OpI32WrapI64 byte = 0xA7

	OpI32TruncF32S byte = 0xA8
	OpI32TruncF32U byte = 0xA9
	OpI32TruncF64S byte = 0xAA
	OpI32TruncF64U byte = 0xAB

	OpI64ExtendI32S byte = 0xAC
	OpI64ExtendI32U byte = 0xAD

	OpI64TruncF32S byte = 0xAE
	OpI64TruncF32U byte = 0xAF
	OpI64TruncF64S byte = 0xB0
	OpI64TruncF64U byte = 0xB1

	OpF32ConvertI32S byte = 0xB2
	OpF32ConvertI32U byte = 0xB3
	OpF32ConvertI64S byte = 0xB4
	OpF32ConvertI64U byte = 0xB5
	OpF32DemoteF64   byte = 0xB6

	OpF64ConvertI32S byte = 0xB7
	OpF64ConvertI32U byte = 0xB8
	OpF64ConvertI64S byte = 0xB9
	OpF64ConvertI64U byte = 0xBA
	OpF64PromoteF32  byte = 0xBB

	OpI32Extend8S  byte = 0xC0
	OpI32Extend16S byte = 0xC1

	// OpPrefixMisc introduces the extended "saturating truncation"
	// opcode space: 0xFC followed by a ULEB128 sub-opcode.
	OpPrefixMisc byte = 0xFC
)

// Sub-opcodes under OpPrefixMisc for the non-trapping trunc_sat family
// (the only Misc instructions this emitter needs).
const (
	MiscI32TruncSatF32S uint32 = 0x00
	MiscI32TruncSatF32U uint32 = 0x01
	MiscI32TruncSatF64S uint32 = 0x02
	MiscI32TruncSatF64U uint32 = 0x03
	MiscI64TruncSatF32S uint32 = 0x04
	MiscI64TruncSatF32U uint32 = 0x05
	MiscI64TruncSatF64S uint32 = 0x06
	MiscI64TruncSatF64U uint32 = 0x07
)

// FuncTypeByte tags a function type in the type section.
const FuncTypeByte byte = 0x60
