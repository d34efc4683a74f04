package wasmout

import (
	"bytes"

	"github.com/neri/toyscript-wasm/leb128"
)

// Instruction is one encoded Wasm instruction: an opcode byte plus
// whatever immediate operand(s) that opcode carries, if any.
type Instruction struct {
	Imm    interface{}
	Opcode byte
}

// BlockImm holds the block type for `block`/`loop`. This compiler only
// ever opens void blocks, but the field stays general since the block
// type byte is always present on the wire.
type BlockImm struct {
	Type int32 // -64 = void
}

// BranchImm holds the relative label index for `br`/`br_if`.
type BranchImm struct {
	LabelIdx uint32
}

// CallImm holds the target function index for `call`.
type CallImm struct {
	FuncIdx uint32
}

// LocalImm holds the local index for `local.get`/`local.set`/`local.tee`.
type LocalImm struct {
	LocalIdx uint32
}

// I32Imm holds the constant value for `i32.const`.
type I32Imm struct {
	Value int32
}

// I64Imm holds the constant value for `i64.const`.
type I64Imm struct {
	Value int64
}

// F32Imm holds the constant value for `f32.const`.
type F32Imm struct {
	Value float32
}

// F64Imm holds the constant value for `f64.const`.
type F64Imm struct {
	Value float64
}

// MiscImm holds the ULEB128 sub-opcode for a 0xFC-prefixed instruction.
// Every Misc opcode this emitter uses (the trunc_sat family) takes no
// further operands.
type MiscImm struct {
	SubOpcode uint32
}

// EncodeInstructionTo appends a single instruction's bytes to buf.
func EncodeInstructionTo(buf *bytes.Buffer, instr *Instruction) {
	buf.WriteByte(instr.Opcode)

	switch instr.Opcode {
	case OpBlock, OpLoop:
		imm := instr.Imm.(BlockImm)
		leb128.WriteSigned(buf, int64(imm.Type))

	case OpBr, OpBrIf:
		imm := instr.Imm.(BranchImm)
		leb128.WriteUnsigned(buf, uint64(imm.LabelIdx))

	case OpCall:
		imm := instr.Imm.(CallImm)
		leb128.WriteUnsigned(buf, uint64(imm.FuncIdx))

	case OpLocalGet, OpLocalSet, OpLocalTee:
		imm := instr.Imm.(LocalImm)
		leb128.WriteUnsigned(buf, uint64(imm.LocalIdx))

	case OpI32Const:
		imm := instr.Imm.(I32Imm)
		leb128.WriteSigned(buf, int64(imm.Value))

	case OpI64Const:
		imm := instr.Imm.(I64Imm)
		leb128.WriteSigned(buf, imm.Value)

	case OpF32Const:
		imm := instr.Imm.(F32Imm)
		leb128.WriteFloat32(buf, imm.Value)

	case OpF64Const:
		imm := instr.Imm.(F64Imm)
		leb128.WriteFloat64(buf, imm.Value)

	case OpPrefixMisc:
		imm := instr.Imm.(MiscImm)
		leb128.WriteUnsigned(buf, uint64(imm.SubOpcode))
	}
}

// EncodeInstructions encodes a flat instruction list to bytes.
func EncodeInstructions(instrs []Instruction) []byte {
	var buf bytes.Buffer
	buf.Grow(len(instrs) * 3)
	for i := range instrs {
		EncodeInstructionTo(&buf, &instrs[i])
	}
	return buf.Bytes()
}
