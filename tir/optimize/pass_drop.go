package optimize

import "github.com/neri/toyscript-wasm/tir"

// p1ChainedDropReduction implements the chained-drop reduction pass: a
// Drop whose operand is itself a pure or partially-pure producer is
// collapsed so the producer's side-effecting operands (if any) are
// dropped directly, instead of computing and then discarding a value.
//
// Four shapes, from the specification's worked description:
//
//	both operands droppable   -> erase producer and its operands
//	only the left droppable   -> replace the right operand's drop obligation
//	                              with a real Drop (DropRight), left erased
//	only the right droppable  -> alias the producer onto the left operand
//	                              (UnaryNop); the original Drop survives and,
//	                              after renaming, drops the left operand for real
//	neither droppable         -> Drop2: two real drops, right then left
//
// A producer is only rewritten in place when this Drop is its sole
// reader (use count 1): rewriting changes what the producer's SsaIndex
// means, which would corrupt any other instruction still reading the
// original value.
func p1ChainedDropReduction(w *workingFn) bool {
	uses := computeUses(w)
	changed := false
	for i := range w.code {
		in := w.code[i]
		if in.Op != tir.Drop || w.isDead(int32(i)) {
			continue
		}
		if chainDrop(w, uses, in.A) {
			w.kill(int32(i))
			changed = true
		}
	}
	return changed
}

func (w *workingFn) solelyPure(uses []int, i int32) bool {
	if i < 0 || int(i) >= len(uses) {
		return false
	}
	return uses[i] == 1 && w.isPureProducer(i)
}

// chainDrop attempts to rewrite the producer at index r so that the
// Drop consuming it can be erased. It returns true when the Drop at the
// call site may be erased; false when the Drop must remain (its operand
// may have been redirected via rename-by-alias).
func chainDrop(w *workingFn, uses []int, r int32) bool {
	if r < 0 || int(r) >= len(w.code) || w.isDead(r) {
		return true
	}
	if int(r) >= len(uses) || uses[r] != 1 {
		// r has other readers: rewriting it would corrupt them, so the
		// Drop of r must remain a real, literal drop.
		return false
	}
	producer := w.code[r]
	switch producer.Op {
	case tir.I32Const, tir.I64Const, tir.F32Const, tir.F64Const, tir.LocalGet:
		w.kill(r)
		return true

	case tir.LocalTee:
		w.code[r] = tir.Instr{Op: tir.LocalSet, A: producer.A, B: producer.B, Line: producer.Line}
		return true

	case tir.Neg, tir.Not, tir.Eqz, tir.Cast, tir.Inc, tir.Dec:
		v := producer.A
		if w.solelyPure(uses, v) {
			w.kill(v)
			w.kill(r)
			return true
		}
		w.code[r] = tir.Instr{Op: tir.UnaryNop, A: v, Line: producer.Line}
		return false

	case tir.Add, tir.Sub, tir.Mul, tir.DivS, tir.DivU, tir.RemS, tir.RemU,
		tir.And, tir.Or, tir.Xor, tir.Shl, tir.ShrS, tir.ShrU,
		tir.Eq, tir.Ne, tir.LtS, tir.LtU, tir.LeS, tir.LeU, tir.GtS, tir.GtU, tir.GeS, tir.GeU:
		lhs, rhs := producer.A, producer.B
		lPure := w.solelyPure(uses, lhs)
		rPure := w.solelyPure(uses, rhs)
		switch {
		case lPure && rPure:
			w.kill(lhs)
			w.kill(rhs)
			w.kill(r)
			return true
		case lPure && !rPure:
			w.kill(lhs)
			w.code[r] = tir.Instr{Op: tir.DropRight, A: lhs, B: rhs, Line: producer.Line}
			return true
		case !lPure && rPure:
			w.kill(rhs)
			w.code[r] = tir.Instr{Op: tir.UnaryNop, A: lhs, Line: producer.Line}
			return false
		default:
			w.code[r] = tir.Instr{Op: tir.Drop2, A: lhs, B: rhs, Line: producer.Line}
			return true
		}

	default:
		return false
	}
}
