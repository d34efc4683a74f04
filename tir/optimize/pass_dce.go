package optimize

import "github.com/neri/toyscript-wasm/tir"

// p4PostBranchDCE marks dead any instruction that follows an
// unconditional Br, Return or Unreachable within the same block, up to
// the next structural boundary (Block, Loop or End) — code a terminator
// makes unreachable. A BrIf in that run is itself unreachable and is
// killed like any other instruction.
func p4PostBranchDCE(w *workingFn) bool {
	changed := false
	unreachable := false
	for i := range w.code {
		idx := int32(i)
		if w.isDead(idx) {
			continue
		}
		in := w.code[i]
		if unreachable {
			switch in.Op {
			case tir.End, tir.Block, tir.Loop:
				unreachable = false
			default:
				w.kill(idx)
				changed = true
				continue
			}
		}
		switch in.Op {
		case tir.Br, tir.Return, tir.Unreachable:
			unreachable = true
		case tir.End, tir.Block, tir.Loop, tir.BrIf:
			unreachable = false
		}
	}
	return changed
}
