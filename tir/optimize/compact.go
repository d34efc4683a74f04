package optimize

import "github.com/neri/toyscript-wasm/tir"

// resolve follows a chain of UnaryNop aliases back to the instruction
// that actually produces the value, in the pre-compaction index space.
// UnaryNop never reaches the output stream; every reference to one is
// rewritten to point at what it aliases.
func resolve(w *workingFn, i int32) int32 {
	for steps := 0; i >= 0 && int(i) < len(w.code) && w.code[i].Op == tir.UnaryNop; steps++ {
		if steps > len(w.code) {
			break // defensive cycle guard; well-formed TIR never cycles
		}
		i = w.code[i].A
	}
	return i
}

// compactAndRename is the terminal pass: it walks the working stream in
// order, drops everything dead or aliased, expands DropRight/Drop2 into
// their real Drop instructions, and renumbers every surviving
// instruction and block target to its final, compacted position.
func compactAndRename(fn *tir.Function, w *workingFn) *tir.Function {
	newIndex := make([]int32, len(w.code))
	for i := range newIndex {
		newIndex[i] = -1
	}

	get := func(old int32) int32 {
		if old < 0 {
			return -1
		}
		r := resolve(w, old)
		if r < 0 || int(r) >= len(newIndex) {
			return -1
		}
		return newIndex[r]
	}
	blockGet := func(old int32) int32 {
		if old < 0 || int(old) >= len(newIndex) {
			return -1
		}
		return newIndex[old]
	}

	var out []tir.Instr
	var calls []tir.CallSite

	for i := range w.code {
		idx := int32(i)
		in := w.code[i]
		if w.isDead(idx) || in.Op == tir.UnaryNop {
			continue
		}

		switch in.Op {
		case tir.DropRight:
			out = append(out, tir.Instr{Op: tir.Drop, A: get(in.B), Line: in.Line})
		case tir.Drop2:
			out = append(out, tir.Instr{Op: tir.Drop, A: get(in.B), Line: in.Line})
			out = append(out, tir.Instr{Op: tir.Drop, A: get(in.A), Line: in.Line})
		case tir.Call, tir.CallV:
			cs := w.calls[in.A]
			newArgs := make([]int32, len(cs.Args))
			for k, a := range cs.Args {
				newArgs[k] = get(a)
			}
			calls = append(calls, tir.CallSite{Callee: cs.Callee, Args: newArgs})
			rewritten := in
			rewritten.A = int32(len(calls) - 1)
			out = append(out, rewritten)
		case tir.Block, tir.Loop:
			out = append(out, tir.Instr{Op: in.Op, A: int32(len(out)), Line: in.Line})
		case tir.End:
			out = append(out, tir.Instr{Op: tir.End, A: blockGet(in.A), Line: in.Line})
		case tir.Br:
			out = append(out, tir.Instr{Op: tir.Br, A: blockGet(in.A), Line: in.Line})
		case tir.BrIf:
			out = append(out, tir.Instr{Op: tir.BrIf, A: get(in.A), B: blockGet(in.B), Line: in.Line})
		case tir.Drop:
			out = append(out, tir.Instr{Op: tir.Drop, A: get(in.A), Line: in.Line})
		case tir.Return:
			r := int32(-1)
			if in.A >= 0 {
				r = get(in.A)
			}
			out = append(out, tir.Instr{Op: tir.Return, A: r, Line: in.Line})
		default:
			out = append(out, rewriteValueOperands(in, get))
		}
		newIndex[i] = int32(len(out) - 1)
	}

	return &tir.Function{
		Name:     fn.Name,
		Params:   fn.Params,
		Locals:   fn.Locals,
		Result:   fn.Result,
		Code:     out,
		Calls:    calls,
		Exported: fn.Exported,
	}
}

func rewriteValueOperands(in tir.Instr, get func(int32) int32) tir.Instr {
	out := in
	switch in.Op.Class() {
	case tir.ClassBinOp, tir.ClassCmp:
		out.A = get(in.A)
		out.B = get(in.B)
	case tir.ClassUnOp:
		out.A = get(in.A)
	case tir.ClassLocal:
		if in.Op == tir.LocalSet || in.Op == tir.LocalTee {
			out.B = get(in.B)
		}
	}
	return out
}
