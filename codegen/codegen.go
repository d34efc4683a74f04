package codegen

import (
	"github.com/neri/toyscript-wasm/ast"
	"github.com/neri/toyscript-wasm/tir"
	"github.com/neri/toyscript-wasm/typesys"
)

// Generate lowers a parsed, class-resolved file into the flat list of
// TIR functions the optimizer and Wasm emitter consume: every
// top-level function, every constructor and method of every class,
// and (when the file has top-level statements) the implicit "main"
// entry point the module's start section invokes.
func Generate(types *typesys.System, file *ast.File) ([]*tir.Function, error) {
	sigs, err := buildSignatures(types, file.Functions)
	if err != nil {
		return nil, err
	}

	var fns []*tir.Function

	for _, fd := range file.Functions {
		fn, err := lowerFunction(types, sigs, fd)
		if err != nil {
			return nil, err
		}
		fns = append(fns, fn)
	}

	for _, cd := range file.Classes {
		ctor, err := lowerConstructor(types, sigs, cd)
		if err != nil {
			return nil, err
		}
		if ctor != nil {
			fns = append(fns, ctor)
		}
		for _, m := range cd.Methods {
			fn, err := lowerMethod(types, sigs, cd, m)
			if err != nil {
				return nil, err
			}
			fns = append(fns, fn)
		}
	}

	if len(file.Main) > 0 {
		main, err := lowerMain(types, sigs, file.Main)
		if err != nil {
			return nil, err
		}
		fns = append(fns, main)
	}

	return fns, nil
}
