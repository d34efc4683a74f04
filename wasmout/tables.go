// Package wasmout lowers optimized TIR functions onto a Wasm 1.0
// module representation and returns the encoded bytes.
package wasmout

import (
	"github.com/neri/toyscript-wasm/primitive"
	"github.com/neri/toyscript-wasm/tir"
)

// binOpcode returns the Wasm opcode for a BinOp/Cmp instruction given
// the storage type its operands share.
func binOpcode(op tir.Op, storage primitive.Primitive) (byte, bool) {
	switch storage {
	case primitive.I32:
		return binOpcodeI32(op)
	case primitive.I64:
		return binOpcodeI64(op)
	case primitive.F32:
		return binOpcodeF32(op)
	case primitive.F64:
		return binOpcodeF64(op)
	}
	return 0, false
}

func binOpcodeI32(op tir.Op) (byte, bool) {
	switch op {
	case tir.Add:
		return OpI32Add, true
	case tir.Sub:
		return OpI32Sub, true
	case tir.Mul:
		return OpI32Mul, true
	case tir.DivS:
		return OpI32DivS, true
	case tir.DivU:
		return OpI32DivU, true
	case tir.RemS:
		return OpI32RemS, true
	case tir.RemU:
		return OpI32RemU, true
	case tir.And:
		return OpI32And, true
	case tir.Or:
		return OpI32Or, true
	case tir.Xor:
		return OpI32Xor, true
	case tir.Shl:
		return OpI32Shl, true
	case tir.ShrS:
		return OpI32ShrS, true
	case tir.ShrU:
		return OpI32ShrU, true
	case tir.Eq:
		return OpI32Eq, true
	case tir.Ne:
		return OpI32Ne, true
	case tir.LtS:
		return OpI32LtS, true
	case tir.LtU:
		return OpI32LtU, true
	case tir.LeS:
		return OpI32LeS, true
	case tir.LeU:
		return OpI32LeU, true
	case tir.GtS:
		return OpI32GtS, true
	case tir.GtU:
		return OpI32GtU, true
	case tir.GeS:
		return OpI32GeS, true
	case tir.GeU:
		return OpI32GeU, true
	}
	return 0, false
}

func binOpcodeI64(op tir.Op) (byte, bool) {
	switch op {
	case tir.Add:
		return OpI64Add, true
	case tir.Sub:
		return OpI64Sub, true
	case tir.Mul:
		return OpI64Mul, true
	case tir.DivS:
		return OpI64DivS, true
	case tir.DivU:
		return OpI64DivU, true
	case tir.RemS:
		return OpI64RemS, true
	case tir.RemU:
		return OpI64RemU, true
	case tir.And:
		return OpI64And, true
	case tir.Or:
		return OpI64Or, true
	case tir.Xor:
		return OpI64Xor, true
	case tir.Shl:
		return OpI64Shl, true
	case tir.ShrS:
		return OpI64ShrS, true
	case tir.ShrU:
		return OpI64ShrU, true
	case tir.Eq:
		return OpI64Eq, true
	case tir.Ne:
		return OpI64Ne, true
	case tir.LtS:
		return OpI64LtS, true
	case tir.LtU:
		return OpI64LtU, true
	case tir.LeS:
		return OpI64LeS, true
	case tir.LeU:
		return OpI64LeU, true
	case tir.GtS:
		return OpI64GtS, true
	case tir.GtU:
		return OpI64GtU, true
	case tir.GeS:
		return OpI64GeS, true
	case tir.GeU:
		return OpI64GeU, true
	}
	return 0, false
}

func binOpcodeF32(op tir.Op) (byte, bool) {
	switch op {
	case tir.Add:
		return OpF32Add, true
	case tir.Sub:
		return OpF32Sub, true
	case tir.Mul:
		return OpF32Mul, true
	case tir.DivS:
		return OpF32Div, true
	case tir.Eq:
		return OpF32Eq, true
	case tir.Ne:
		return OpF32Ne, true
	case tir.LtS:
		return OpF32Lt, true
	case tir.LeS:
		return OpF32Le, true
	case tir.GtS:
		return OpF32Gt, true
	case tir.GeS:
		return OpF32Ge, true
	}
	return 0, false
}

func binOpcodeF64(op tir.Op) (byte, bool) {
	switch op {
	case tir.Add:
		return OpF64Add, true
	case tir.Sub:
		return OpF64Sub, true
	case tir.Mul:
		return OpF64Mul, true
	case tir.DivS:
		return OpF64Div, true
	case tir.Eq:
		return OpF64Eq, true
	case tir.Ne:
		return OpF64Ne, true
	case tir.LtS:
		return OpF64Lt, true
	case tir.LeS:
		return OpF64Le, true
	case tir.GtS:
		return OpF64Gt, true
	case tir.GeS:
		return OpF64Ge, true
	}
	return 0, false
}

func eqzOpcode(storage primitive.Primitive) (byte, bool) {
	switch storage {
	case primitive.I32:
		return OpI32Eqz, true
	case primitive.I64:
		return OpI64Eqz, true
	}
	return 0, false
}

// valTypeOf maps a storage-collapsed primitive onto its Wasm value type.
func valTypeOf(p primitive.Primitive) ValType {
	switch p.StorageType() {
	case primitive.I64:
		return ValI64
	case primitive.F32:
		return ValF32
	case primitive.F64:
		return ValF64
	default:
		return ValI32
	}
}

// castLadder returns the real Wasm conversion opcode for a from->to
// cast that cannot be represented as a no-op at the storage level (both
// same storage width and neither is a narrowing integer truncation).
// Derived from the primitive catalog's width/signedness/float-ness
// rather than hand-enumerated per the specification's note that the
// cast matrix may be generated. Float->int casts are handled separately
// by floatToIntInstrs, since they may need more than one instruction.
func castLadder(from, to primitive.Primitive) (opcode byte, ok bool) {
	fs, ts := from.StorageType(), to.StorageType()
	switch {
	case !fs.IsFloat() && ts.IsFloat():
		return intToFloatOpcode(fs, from.IsSigned(), ts)
	case fs.IsFloat() && ts.IsFloat():
		return floatToFloatOpcode(fs, ts)
	case fs == primitive.I64 && ts == primitive.I32:
		return OpI32WrapI64, true
	case fs == primitive.I32 && ts == primitive.I64:
		if from.IsSigned() {
			return OpI64ExtendI32S, true
		}
		return OpI64ExtendI32U, true
	}
	return 0, false // same storage width: no real instruction needed
}

func intToFloatOpcode(fromStorage primitive.Primitive, signed bool, toStorage primitive.Primitive) (byte, bool) {
	is64 := fromStorage == primitive.I64
	switch {
	case toStorage == primitive.F32 && !is64 && signed:
		return OpF32ConvertI32S, true
	case toStorage == primitive.F32 && !is64 && !signed:
		return OpF32ConvertI32U, true
	case toStorage == primitive.F32 && is64 && signed:
		return OpF32ConvertI64S, true
	case toStorage == primitive.F32 && is64 && !signed:
		return OpF32ConvertI64U, true
	case toStorage == primitive.F64 && !is64 && signed:
		return OpF64ConvertI32S, true
	case toStorage == primitive.F64 && !is64 && !signed:
		return OpF64ConvertI32U, true
	case toStorage == primitive.F64 && is64 && signed:
		return OpF64ConvertI64S, true
	case toStorage == primitive.F64 && is64 && !signed:
		return OpF64ConvertI64U, true
	}
	return 0, false
}

// floatToIntInstrs lowers a float->int cast to Wasm's non-trapping
// trunc_sat conversion (spec §4.6/§9: a float->int cast never traps,
// it saturates). For integer targets narrower than 32 bits the
// saturating i32/i64 conversion alone would still clamp to the wrong
// (32/64-bit) range, so the float operand is first clamped to the
// target's true bounds with f32/f64 min (and, for signed narrow
// targets, max) before the trunc_sat opcode runs.
func floatToIntInstrs(from, to primitive.Primitive) []Instruction {
	is64From := from.StorageType() == primitive.F64
	is64To := to.StorageType() == primitive.I64
	signed := to.IsSigned()

	var sub uint32
	switch {
	case !is64From && !is64To && signed:
		sub = MiscI32TruncSatF32S
	case !is64From && !is64To && !signed:
		sub = MiscI32TruncSatF32U
	case is64From && !is64To && signed:
		sub = MiscI32TruncSatF64S
	case is64From && !is64To && !signed:
		sub = MiscI32TruncSatF64U
	case !is64From && is64To && signed:
		sub = MiscI64TruncSatF32S
	case !is64From && is64To && !signed:
		sub = MiscI64TruncSatF32U
	case is64From && is64To && signed:
		sub = MiscI64TruncSatF64S
	default:
		sub = MiscI64TruncSatF64U
	}

	var instrs []Instruction
	if to.BitsOf() < 32 {
		instrs = append(instrs, clampInstrs(is64From, to)...)
	}
	instrs = append(instrs, Instruction{Opcode: OpPrefixMisc, Imm: MiscImm{SubOpcode: sub}})
	return instrs
}

// clampInstrs bounds a float operand to the [min, max] range of a
// sub-32-bit integer target before a saturating truncation, using
// f32/f64 min against the upper bound and, for signed targets, f32/f64
// max against the lower bound (unsigned narrow targets have a lower
// bound of 0, which trunc_sat's own unsigned saturation already gives
// for free).
func clampInstrs(is64From bool, to primitive.Primitive) []Instruction {
	maxVal, minVal := narrowBounds(to)

	var instrs []Instruction
	if is64From {
		instrs = append(instrs, Instruction{Opcode: OpF64Const, Imm: F64Imm{Value: maxVal}})
		instrs = append(instrs, Instruction{Opcode: OpF64Min})
		if to.IsSigned() {
			instrs = append(instrs, Instruction{Opcode: OpF64Const, Imm: F64Imm{Value: minVal}})
			instrs = append(instrs, Instruction{Opcode: OpF64Max})
		}
		return instrs
	}
	instrs = append(instrs, Instruction{Opcode: OpF32Const, Imm: F32Imm{Value: float32(maxVal)}})
	instrs = append(instrs, Instruction{Opcode: OpF32Min})
	if to.IsSigned() {
		instrs = append(instrs, Instruction{Opcode: OpF32Const, Imm: F32Imm{Value: float32(minVal)}})
		instrs = append(instrs, Instruction{Opcode: OpF32Max})
	}
	return instrs
}

// narrowBounds returns the [min, max] representable values of a
// sub-32-bit integer primitive, as float64 so callers can narrow to
// float32 when the cast's source is f32.
func narrowBounds(to primitive.Primitive) (maxVal, minVal float64) {
	bits := to.BitsOf()
	if to.IsSigned() {
		return float64(int64(1)<<(bits-1)) - 1, -float64(int64(1) << (bits - 1))
	}
	return float64(uint64(1)<<bits) - 1, 0
}

func floatToFloatOpcode(from, to primitive.Primitive) (byte, bool) {
	switch {
	case from == primitive.F32 && to == primitive.F64:
		return OpF64PromoteF32, true
	case from == primitive.F64 && to == primitive.F32:
		return OpF32DemoteF64, true
	}
	return 0, false
}
