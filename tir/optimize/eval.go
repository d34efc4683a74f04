package optimize

import "github.com/neri/toyscript-wasm/tir"

// evalBinOp constant-folds a binary or comparison opcode over two
// literal operands. Folding is only attempted when both constants share
// a lane (both integer, same width, or both the same float width);
// mixed-width folding never happens in valid TIR since the type system
// inserts explicit casts before arithmetic.
func evalBinOp(op tir.Op, l, r tir.Constant) (tir.Instr, bool) {
	switch {
	case l.Op == tir.I32Const && r.Op == tir.I32Const:
		return evalI32(op, l.I32, r.I32)
	case l.Op == tir.I64Const && r.Op == tir.I64Const:
		return evalI64(op, l.I64, r.I64)
	case l.Op == tir.F32Const && r.Op == tir.F32Const:
		return evalF32(op, l.F32, r.F32)
	case l.Op == tir.F64Const && r.Op == tir.F64Const:
		return evalF64(op, l.F64, r.F64)
	}
	return tir.Instr{}, false
}

func boolConst(b bool) tir.Instr {
	if b {
		return tir.Instr{Op: tir.I32Const, Imm: tir.ConstI32(1)}
	}
	return tir.Instr{Op: tir.I32Const, Imm: tir.ConstI32(0)}
}

func evalI32(op tir.Op, l, r int32) (tir.Instr, bool) {
	switch op {
	case tir.Add:
		return tir.Instr{Op: tir.I32Const, Imm: tir.ConstI32(l + r)}, true
	case tir.Sub:
		return tir.Instr{Op: tir.I32Const, Imm: tir.ConstI32(l - r)}, true
	case tir.Mul:
		return tir.Instr{Op: tir.I32Const, Imm: tir.ConstI32(l * r)}, true
	case tir.DivS:
		if r == 0 {
			return tir.Instr{}, false
		}
		return tir.Instr{Op: tir.I32Const, Imm: tir.ConstI32(l / r)}, true
	case tir.DivU:
		if r == 0 {
			return tir.Instr{}, false
		}
		return tir.Instr{Op: tir.I32Const, Imm: tir.ConstI32(int32(uint32(l) / uint32(r)))}, true
	case tir.RemS:
		if r == 0 {
			return tir.Instr{}, false
		}
		return tir.Instr{Op: tir.I32Const, Imm: tir.ConstI32(l % r)}, true
	case tir.RemU:
		if r == 0 {
			return tir.Instr{}, false
		}
		return tir.Instr{Op: tir.I32Const, Imm: tir.ConstI32(int32(uint32(l) % uint32(r)))}, true
	case tir.And:
		return tir.Instr{Op: tir.I32Const, Imm: tir.ConstI32(l & r)}, true
	case tir.Or:
		return tir.Instr{Op: tir.I32Const, Imm: tir.ConstI32(l | r)}, true
	case tir.Xor:
		return tir.Instr{Op: tir.I32Const, Imm: tir.ConstI32(l ^ r)}, true
	case tir.Shl:
		return tir.Instr{Op: tir.I32Const, Imm: tir.ConstI32(l << uint32(r&31))}, true
	case tir.ShrS:
		return tir.Instr{Op: tir.I32Const, Imm: tir.ConstI32(l >> uint32(r&31))}, true
	case tir.ShrU:
		return tir.Instr{Op: tir.I32Const, Imm: tir.ConstI32(int32(uint32(l) >> uint32(r&31)))}, true
	case tir.Eq:
		return boolConst(l == r), true
	case tir.Ne:
		return boolConst(l != r), true
	case tir.LtS:
		return boolConst(l < r), true
	case tir.LtU:
		return boolConst(uint32(l) < uint32(r)), true
	case tir.LeS:
		return boolConst(l <= r), true
	case tir.LeU:
		return boolConst(uint32(l) <= uint32(r)), true
	case tir.GtS:
		return boolConst(l > r), true
	case tir.GtU:
		return boolConst(uint32(l) > uint32(r)), true
	case tir.GeS:
		return boolConst(l >= r), true
	case tir.GeU:
		return boolConst(uint32(l) >= uint32(r)), true
	}
	return tir.Instr{}, false
}

func evalI64(op tir.Op, l, r int64) (tir.Instr, bool) {
	mk := func(v int64) (tir.Instr, bool) { return tir.Instr{Op: tir.I64Const, Imm: tir.ConstI64(v)}, true }
	switch op {
	case tir.Add:
		return mk(l + r)
	case tir.Sub:
		return mk(l - r)
	case tir.Mul:
		return mk(l * r)
	case tir.DivS:
		if r == 0 {
			return tir.Instr{}, false
		}
		return mk(l / r)
	case tir.DivU:
		if r == 0 {
			return tir.Instr{}, false
		}
		return mk(int64(uint64(l) / uint64(r)))
	case tir.RemS:
		if r == 0 {
			return tir.Instr{}, false
		}
		return mk(l % r)
	case tir.RemU:
		if r == 0 {
			return tir.Instr{}, false
		}
		return mk(int64(uint64(l) % uint64(r)))
	case tir.And:
		return mk(l & r)
	case tir.Or:
		return mk(l | r)
	case tir.Xor:
		return mk(l ^ r)
	case tir.Shl:
		return mk(l << uint64(r&63))
	case tir.ShrS:
		return mk(l >> uint64(r&63))
	case tir.ShrU:
		return mk(int64(uint64(l) >> uint64(r&63)))
	case tir.Eq:
		return boolConst(l == r), true
	case tir.Ne:
		return boolConst(l != r), true
	case tir.LtS:
		return boolConst(l < r), true
	case tir.LtU:
		return boolConst(uint64(l) < uint64(r)), true
	case tir.LeS:
		return boolConst(l <= r), true
	case tir.LeU:
		return boolConst(uint64(l) <= uint64(r)), true
	case tir.GtS:
		return boolConst(l > r), true
	case tir.GtU:
		return boolConst(uint64(l) > uint64(r)), true
	case tir.GeS:
		return boolConst(l >= r), true
	case tir.GeU:
		return boolConst(uint64(l) >= uint64(r)), true
	}
	return tir.Instr{}, false
}

func evalF32(op tir.Op, l, r float32) (tir.Instr, bool) {
	switch op {
	case tir.Add:
		return tir.Instr{Op: tir.F32Const, Imm: tir.ConstF32(l + r)}, true
	case tir.Sub:
		return tir.Instr{Op: tir.F32Const, Imm: tir.ConstF32(l - r)}, true
	case tir.Mul:
		return tir.Instr{Op: tir.F32Const, Imm: tir.ConstF32(l * r)}, true
	case tir.DivS:
		return tir.Instr{Op: tir.F32Const, Imm: tir.ConstF32(l / r)}, true
	case tir.Eq:
		return boolConst(l == r), true
	case tir.Ne:
		return boolConst(l != r), true
	case tir.LtS:
		return boolConst(l < r), true
	case tir.LeS:
		return boolConst(l <= r), true
	case tir.GtS:
		return boolConst(l > r), true
	case tir.GeS:
		return boolConst(l >= r), true
	}
	return tir.Instr{}, false
}

func evalF64(op tir.Op, l, r float64) (tir.Instr, bool) {
	switch op {
	case tir.Add:
		return tir.Instr{Op: tir.F64Const, Imm: tir.ConstF64(l + r)}, true
	case tir.Sub:
		return tir.Instr{Op: tir.F64Const, Imm: tir.ConstF64(l - r)}, true
	case tir.Mul:
		return tir.Instr{Op: tir.F64Const, Imm: tir.ConstF64(l * r)}, true
	case tir.DivS:
		return tir.Instr{Op: tir.F64Const, Imm: tir.ConstF64(l / r)}, true
	case tir.Eq:
		return boolConst(l == r), true
	case tir.Ne:
		return boolConst(l != r), true
	case tir.LtS:
		return boolConst(l < r), true
	case tir.LeS:
		return boolConst(l <= r), true
	case tir.GtS:
		return boolConst(l > r), true
	case tir.GeS:
		return boolConst(l >= r), true
	}
	return tir.Instr{}, false
}

func evalUnOp(op tir.Op, c tir.Constant) (tir.Instr, bool) {
	switch op {
	case tir.Neg:
		switch c.Op {
		case tir.I32Const:
			return tir.Instr{Op: tir.I32Const, Imm: tir.ConstI32(-c.I32)}, true
		case tir.I64Const:
			return tir.Instr{Op: tir.I64Const, Imm: tir.ConstI64(-c.I64)}, true
		case tir.F32Const:
			return tir.Instr{Op: tir.F32Const, Imm: tir.ConstF32(-c.F32)}, true
		case tir.F64Const:
			return tir.Instr{Op: tir.F64Const, Imm: tir.ConstF64(-c.F64)}, true
		}
	case tir.Not:
		switch c.Op {
		case tir.I32Const:
			return tir.Instr{Op: tir.I32Const, Imm: tir.ConstI32(^c.I32)}, true
		case tir.I64Const:
			return tir.Instr{Op: tir.I64Const, Imm: tir.ConstI64(^c.I64)}, true
		}
	case tir.Eqz:
		return boolConst(c.IsZero()), true
	case tir.Inc:
		switch c.Op {
		case tir.I32Const:
			return tir.Instr{Op: tir.I32Const, Imm: tir.ConstI32(c.I32 + 1)}, true
		case tir.I64Const:
			return tir.Instr{Op: tir.I64Const, Imm: tir.ConstI64(c.I64 + 1)}, true
		}
	case tir.Dec:
		switch c.Op {
		case tir.I32Const:
			return tir.Instr{Op: tir.I32Const, Imm: tir.ConstI32(c.I32 - 1)}, true
		case tir.I64Const:
			return tir.Instr{Op: tir.I64Const, Imm: tir.ConstI64(c.I64 - 1)}, true
		}
	}
	return tir.Instr{}, false
}
