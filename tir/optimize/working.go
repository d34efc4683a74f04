// Package optimize implements the minimal code optimizer: a bounded,
// deterministic pass pipeline over a tir.Function's flat instruction
// stream (§4.3 of the language specification).
package optimize

import "github.com/neri/toyscript-wasm/tir"

// workingFn is the mutable working set a pass operates on. Instructions
// are never removed mid-pipeline, only marked dead, so every SsaIndex
// captured before a pass remains a valid index into code throughout the
// run; the terminal pass performs the only renumbering/compaction.
type workingFn struct {
	name   string
	params []tir.Local
	locals []tir.Local
	result tir.Local
	code   []tir.Instr
	dead   []bool
	calls  []tir.CallSite
}

func newWorkingFn(fn *tir.Function) *workingFn {
	code := make([]tir.Instr, len(fn.Code))
	copy(code, fn.Code)
	calls := make([]tir.CallSite, len(fn.Calls))
	copy(calls, fn.Calls)
	return &workingFn{
		code:   code,
		dead:   make([]bool, len(code)),
		calls:  calls,
		params: fn.Params,
		locals: fn.Locals,
		name:   fn.Name,
	}
}

func (w *workingFn) isDead(i int32) bool {
	if i < 0 || int(i) >= len(w.dead) {
		return false
	}
	return w.dead[i]
}

func (w *workingFn) kill(i int32) {
	if i >= 0 && int(i) < len(w.dead) {
		w.dead[i] = true
	}
}

// isPureProducer reports whether the instruction at i can be discarded
// outright (no side effect) if nothing consumes its result.
func (w *workingFn) isPureProducer(i int32) bool {
	if w.isDead(i) {
		return true
	}
	if i < 0 || int(i) >= len(w.code) {
		return false
	}
	switch w.code[i].Op {
	case tir.I32Const, tir.I64Const, tir.F32Const, tir.F64Const, tir.LocalGet, tir.UnaryNop:
		return true
	case tir.Add, tir.Sub, tir.Mul, tir.DivS, tir.DivU, tir.RemS, tir.RemU,
		tir.And, tir.Or, tir.Xor, tir.Shl, tir.ShrS, tir.ShrU,
		tir.Eq, tir.Ne, tir.LtS, tir.LtU, tir.LeS, tir.LeU, tir.GtS, tir.GtU, tir.GeS, tir.GeU,
		tir.Neg, tir.Not, tir.Eqz, tir.Cast, tir.Inc, tir.Dec:
		return w.operandsPure(i)
	}
	return false
}

func (w *workingFn) operandsPure(i int32) bool {
	in := w.code[i]
	switch in.Op.Class() {
	case tir.ClassBinOp, tir.ClassCmp:
		return w.isPureProducer(in.A) && w.isPureProducer(in.B)
	case tir.ClassUnOp:
		return w.isPureProducer(in.A)
	}
	return true
}

// operands returns the SsaIndex operands an instruction reads, for
// liveness computation.
func operands(in tir.Instr) []int32 {
	switch in.Op.Class() {
	case tir.ClassBinOp, tir.ClassCmp:
		return []int32{in.A, in.B}
	case tir.ClassUnOp:
		return []int32{in.A}
	case tir.ClassLocal:
		if in.Op == tir.LocalSet || in.Op == tir.LocalTee {
			return []int32{in.B}
		}
	case tir.ClassControl:
		switch in.Op {
		case tir.Drop, tir.Return, tir.UnaryNop:
			if in.A >= 0 {
				return []int32{in.A}
			}
		case tir.BrIf:
			return []int32{in.A}
		case tir.DropRight, tir.Drop2:
			return []int32{in.A, in.B}
		}
	}
	return nil
}

func (w *workingFn) callArgs(callIdx int32) []int32 {
	if callIdx < 0 || int(callIdx) >= len(w.calls) {
		return nil
	}
	return w.calls[callIdx].Args
}

// computeUses returns, for every instruction index, how many live
// instructions (including call argument lists) read it as an operand.
// Passes that want to mutate or erase a producer in a way that changes
// its meaning must first confirm a use count of exactly one (this
// consumer is the only reader); a shared value must be left alone.
func computeUses(w *workingFn) []int {
	uses := make([]int, len(w.code))
	for i, in := range w.code {
		if w.isDead(int32(i)) {
			continue
		}
		for _, op := range operands(in) {
			if op >= 0 && int(op) < len(uses) {
				uses[op]++
			}
		}
		if in.Op == tir.Call || in.Op == tir.CallV {
			for _, a := range w.callArgs(in.A) {
				if a >= 0 && int(a) < len(uses) {
					uses[a]++
				}
			}
		}
	}
	return uses
}
