package optimize

import "github.com/neri/toyscript-wasm/tir"

// p3BlockElimination removes Block/Loop...End pairs that no Br/BrIf
// targets, since an unreferenced block marker carries no semantics of
// its own. The specification counts this pass twice per outer
// iteration: removing an outer block can make a previously-live inner
// block newly-unreferenced, or vice versa, and a single pass only
// catches one layer.
func p3BlockElimination(w *workingFn) bool {
	targets := map[int32]bool{}
	for i, in := range w.code {
		if w.isDead(int32(i)) {
			continue
		}
		switch in.Op {
		case tir.Br:
			targets[in.A] = true
		case tir.BrIf:
			targets[in.B] = true
		}
	}

	changed := false
	for i := range w.code {
		idx := int32(i)
		if w.isDead(idx) {
			continue
		}
		in := w.code[i]
		if in.Op != tir.Block && in.Op != tir.Loop {
			continue
		}
		if targets[idx] {
			continue
		}
		end := matchEnd(w.code, idx)
		if end < 0 {
			continue
		}
		w.kill(idx)
		w.kill(end)
		changed = true
	}
	return changed
}

func matchEnd(code []tir.Instr, start int32) int32 {
	depth := 0
	for i := start; i < int32(len(code)); i++ {
		switch code[i].Op {
		case tir.Block, tir.Loop:
			depth++
		case tir.End:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
