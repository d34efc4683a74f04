package optimize

// p5LivenessRetally recomputes use counts across the whole function
// (the earlier passes can only reason locally about one producer at a
// time) and erases any pure producer nothing still references.
func p5LivenessRetally(w *workingFn) bool {
	uses := computeUses(w)

	changed := false
	for i := range w.code {
		idx := int32(i)
		if w.isDead(idx) {
			continue
		}
		if uses[idx] == 0 && w.isPureProducer(idx) {
			w.kill(idx)
			changed = true
		}
	}
	return changed
}
