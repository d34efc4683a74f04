package wasmout

import (
	"github.com/neri/toyscript-wasm/primitive"
	"github.com/neri/toyscript-wasm/tir"
)

// Build assembles a set of optimized, compacted TIR functions into a
// complete Wasm 1.0 binary module: one exported function per
// tir.Function marked Exported, a deduplicated type section, and a
// debug "name" custom section carrying the original source names.
func Build(fns []*tir.Function) ([]byte, error) {
	m, err := buildModule(fns)
	if err != nil {
		return nil, err
	}
	return m.Encode(), nil
}

// buildModule runs the full assembly pipeline and returns the
// structured, pre-encode Module so tests can assert directly on its
// fields without round-tripping through a decoder this emit-only
// compiler has no other use for.
func buildModule(fns []*tir.Function) (*Module, error) {
	m := &Module{}

	funcIndex := make(map[string]uint32, len(fns))
	for i, fn := range fns {
		funcIndex[fn.Name] = uint32(i)
	}

	m.Funcs = make([]uint32, len(fns))
	m.Code = make([]FuncBody, len(fns))

	for i, fn := range fns {
		ft := funcTypeOf(fn)
		m.Funcs[i] = m.AddType(ft)

		e := newFuncEmitter(fn, funcIndex)
		instrs, err := e.emit()
		if err != nil {
			return nil, err
		}

		body := FuncBody{
			Locals: localEntries(fn, e.scratchLocals()),
			Code:   EncodeInstructions(instrs),
		}
		m.Code[i] = body

		if fn.Exported {
			m.Exports = append(m.Exports, Export{Name: fn.Name, Kind: KindFunc, Idx: uint32(i)})
		}
		if fn.Name == "main" {
			idx := uint32(i)
			m.Start = &idx
		}
	}

	m.CustomSections = append(m.CustomSections, nameSection(fns))

	return m, nil
}

func funcTypeOf(fn *tir.Function) FuncType {
	ft := FuncType{Params: make([]ValType, len(fn.Params))}
	for i, p := range fn.Params {
		ft.Params[i] = valTypeOf(p.Type)
	}
	if fn.Result != primitive.Void {
		ft.Results = []ValType{valTypeOf(fn.Result)}
	}
	return ft
}

// localEntries groups a function's declared locals (plus any scratch
// locals the emitter allocated) into contiguous same-type runs, the
// form the Wasm local declaration vector requires.
func localEntries(fn *tir.Function, scratch []tir.Local) []LocalEntry {
	all := append(append([]tir.Local{}, fn.Locals...), scratch...)
	var entries []LocalEntry
	for _, l := range all {
		vt := valTypeOf(l.Type)
		if n := len(entries); n > 0 && entries[n-1].ValType == vt {
			entries[n-1].Count++
			continue
		}
		entries = append(entries, LocalEntry{Count: 1, ValType: vt})
	}
	return entries
}
