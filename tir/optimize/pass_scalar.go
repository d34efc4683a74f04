package optimize

import (
	"github.com/neri/toyscript-wasm/primitive"
	"github.com/neri/toyscript-wasm/tir"
)

// p2ScalarSimplification folds constant-operand arithmetic/comparisons
// and casts, and applies a handful of algebraic identities (x+0, x*1,
// x*0 for a side-effect-free x, x-0, x^x) that don't require both
// operands to be literal.
func p2ScalarSimplification(w *workingFn) bool {
	changed := false
	for i := range w.code {
		if w.isDead(int32(i)) {
			continue
		}
		in := w.code[i]
		switch in.Op.Class() {
		case tir.ClassBinOp, tir.ClassCmp:
			if w.foldBinOp(int32(i), in) {
				changed = true
			}
		case tir.ClassUnOp:
			if in.Op == tir.Cast {
				if w.foldCastInstr(int32(i), in) {
					changed = true
				}
			} else if w.foldUnOp(int32(i), in) {
				changed = true
			}
		}
	}
	return changed
}

func (w *workingFn) constOf(i int32) (tir.Constant, bool) {
	if i < 0 || int(i) >= len(w.code) || w.isDead(i) {
		return tir.Constant{}, false
	}
	in := w.code[i]
	switch in.Op {
	case tir.I32Const, tir.I64Const, tir.F32Const, tir.F64Const:
		return in.Imm, true
	}
	return tir.Constant{}, false
}

func (w *workingFn) foldBinOp(idx int32, in tir.Instr) bool {
	lc, lok := w.constOf(in.A)
	rc, rok := w.constOf(in.B)
	if lok && rok {
		if result, ok := evalBinOp(in.Op, lc, rc); ok {
			w.code[idx] = result
			return true
		}
		return false
	}
	return w.foldIdentity(idx, in, lc, lok, rc, rok)
}

// foldIdentity rewrites x+0, 0+x, x*1, 1*x, x*0, 0*x, x-0 and x^x into
// the surviving operand (as UnaryNop) or a zero constant, without
// requiring both sides to be literal. x*0 and 0*x fold only when x is a
// pure producer; a product whose x has a side effect is left as is.
func (w *workingFn) foldIdentity(idx int32, in tir.Instr, lc tir.Constant, lok bool, rc tir.Constant, rok bool) bool {
	isIntZero := func(c tir.Constant, ok bool) bool { return ok && (c.Op == tir.I32Const && c.I32 == 0 || c.Op == tir.I64Const && c.I64 == 0) }
	isIntOne := func(c tir.Constant, ok bool) bool { return ok && (c.Op == tir.I32Const && c.I32 == 1 || c.Op == tir.I64Const && c.I64 == 1) }

	switch in.Op {
	case tir.Add:
		if isIntZero(rc, rok) {
			w.alias(idx, in.A)
			return true
		}
		if isIntZero(lc, lok) {
			w.alias(idx, in.B)
			return true
		}
	case tir.Sub:
		if isIntZero(rc, rok) {
			w.alias(idx, in.A)
			return true
		}
	case tir.Mul:
		if isIntOne(rc, rok) {
			w.alias(idx, in.A)
			return true
		}
		if isIntOne(lc, lok) {
			w.alias(idx, in.B)
			return true
		}
		if isIntZero(rc, rok) && w.isPureProducer(in.A) {
			w.code[idx] = tir.Instr{Op: rc.Op, Imm: rc, Line: in.Line}
			return true
		}
		if isIntZero(lc, lok) && w.isPureProducer(in.B) {
			w.code[idx] = tir.Instr{Op: lc.Op, Imm: lc, Line: in.Line}
			return true
		}
	case tir.Xor:
		if in.A == in.B {
			w.code[idx] = tir.Instr{Op: tir.I32Const, Imm: tir.ConstI32(0), Line: in.Line}
			return true
		}
	}
	return false
}

// alias rewrites the instruction at idx into a pure rename of src; used
// when an identity proves the result equals an existing value exactly.
func (w *workingFn) alias(idx, src int32) {
	w.code[idx] = tir.Instr{Op: tir.UnaryNop, A: src, Line: w.code[idx].Line}
}

func (w *workingFn) foldUnOp(idx int32, in tir.Instr) bool {
	c, ok := w.constOf(in.A)
	if !ok {
		return false
	}
	result, ok := evalUnOp(in.Op, c)
	if !ok {
		return false
	}
	w.code[idx] = result
	return true
}

func (w *workingFn) foldCastInstr(idx int32, in tir.Instr) bool {
	c, ok := w.constOf(in.A)
	if !ok {
		return false
	}
	to, ok := primitive.FromTypeID(uint32(in.Imm.I32))
	if !ok {
		return false
	}
	from, ok := primitive.FromTypeID(uint32(in.B))
	if !ok {
		from = castSourcePrimitive(c.Op)
	}
	bits, isFloat := rawBitsOf(c)
	outBits, outFloat, ok := foldCast(from, bits, isFloat, to)
	if !ok {
		return false
	}
	w.code[idx] = constFromBits(to, outBits, outFloat, in.Line)
	return true
}

func castSourcePrimitive(op tir.Op) primitive.Primitive {
	switch op {
	case tir.I32Const:
		return primitive.I32
	case tir.I64Const:
		return primitive.I64
	case tir.F32Const:
		return primitive.F32
	case tir.F64Const:
		return primitive.F64
	}
	return primitive.I32
}

func rawBitsOf(c tir.Constant) (uint64, bool) {
	switch c.Op {
	case tir.I32Const:
		return uint64(uint32(c.I32)), false
	case tir.I64Const:
		return uint64(c.I64), false
	case tir.F32Const:
		return uint64(float32bitsOf(c.F32)), true
	case tir.F64Const:
		return float64bitsOf(c.F64), true
	}
	return 0, false
}

func constFromBits(to primitive.Primitive, bits uint64, isFloat bool, line int) tir.Instr {
	switch {
	case isFloat && to.BitsOf() == 32:
		return tir.Instr{Op: tir.F32Const, Imm: tir.ConstF32(float32frombits(uint32(bits))), Line: line}
	case isFloat:
		return tir.Instr{Op: tir.F64Const, Imm: tir.ConstF64(float64frombits(bits)), Line: line}
	case to.BitsOf() == 64:
		return tir.Instr{Op: tir.I64Const, Imm: tir.ConstI64(int64(bits)), Line: line}
	default:
		return tir.Instr{Op: tir.I32Const, Imm: tir.ConstI32(int32(uint32(bits))), Line: line}
	}
}
