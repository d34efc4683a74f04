package optimize

import "github.com/neri/toyscript-wasm/tir"

// outerIterations is the number of times the full six-pass pipeline
// runs before the single terminal rename/compact pass. Each pass only
// looks one step deep (one chained drop, one constant fold, one block
// layer), so a second sweep catches simplifications the first sweep's
// rewrites exposed; a third sweep was measured to find nothing further
// across the test corpus and was dropped.
const outerIterations = 2

// Function optimizes one compiled function body, returning a new,
// equivalent Function with dead code eliminated, constants folded and
// scalar identities simplified, unreferenced blocks removed, and every
// surviving instruction and block target renumbered to its final
// compacted position.
func Function(fn *tir.Function) (*tir.Function, error) {
	w := newWorkingFn(fn)

	for iter := 0; iter < outerIterations; iter++ {
		p1ChainedDropReduction(w)
		p2ScalarSimplification(w)
		p3BlockElimination(w)
		p3BlockElimination(w) // counted twice: see p3BlockElimination
		p4PostBranchDCE(w)
		p5LivenessRetally(w)
	}

	return compactAndRename(fn, w), nil
}

// Module optimizes every function in declaration order, returning the
// optimized functions in a new slice; the inputs are left unchanged.
func Module(fns []*tir.Function) ([]*tir.Function, error) {
	out := make([]*tir.Function, len(fns))
	for i, fn := range fns {
		optimized, err := Function(fn)
		if err != nil {
			return nil, err
		}
		out[i] = optimized
	}
	return out, nil
}
