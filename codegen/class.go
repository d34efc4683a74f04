package codegen

import (
	"github.com/neri/toyscript-wasm/ast"
	"github.com/neri/toyscript-wasm/cerr"
	"github.com/neri/toyscript-wasm/primitive"
	"github.com/neri/toyscript-wasm/tir"
	"github.com/neri/toyscript-wasm/typesys"
)

// lowerConstructor lowers a class's constructor body, if any, into a
// standalone TIR function named under its mangled identifier. A class
// has no instance representation of its own (fields exist only as
// typesys.ClassDescriptor metadata), so a constructor body can only
// see its own parameters, not the fields it would otherwise populate.
func lowerConstructor(types *typesys.System, sigs map[string]funcSig, cd *ast.ClassDecl) (*tir.Function, error) {
	if cd.Constructor == nil {
		return nil, nil
	}
	return lowerClassFunc(types, sigs, cd, cd.Constructor, typesys.CtorName)
}

// lowerMethod lowers one declared method of a class the same way a
// constructor is lowered: as a free function mangled under the
// class's namespace, with no implicit access to the class's fields.
func lowerMethod(types *typesys.System, sigs map[string]funcSig, cd *ast.ClassDecl, method *ast.FunctionDecl) (*tir.Function, error) {
	return lowerClassFunc(types, sigs, cd, method, method.Name)
}

func lowerClassFunc(types *typesys.System, sigs map[string]funcSig, cd *ast.ClassDecl, fd *ast.FunctionDecl, mangleName string) (*tir.Function, error) {
	params := make([]tir.Local, len(fd.Params))
	paramTypes := make([]*typesys.Descriptor, len(fd.Params))
	for i, p := range fd.Params {
		pt, err := types.FromAST(p.Type)
		if err != nil {
			return nil, err
		}
		paramTypes[i] = pt
		params[i] = tir.Local{Name: p.Name, Type: types.StorageType(pt), IsParam: true}
	}

	var result *typesys.Descriptor
	resultPrim := primitive.Void
	if fd.Result != nil {
		rt, err := types.FromAST(*fd.Result)
		if err != nil {
			return nil, err
		}
		if !rt.IsVoid() {
			result = rt
			resultPrim = types.StorageType(rt)
		}
	}

	name := typesys.Mangled(cd.Name, mangleName, nil)
	b := tir.NewBuilder(name, params, resultPrim)
	fg := &funcGen{types: types, sigs: sigs, b: b, result: result}

	sc := rootScope()
	for i, p := range fd.Params {
		if err := sc.declare(p.Name, tir.LocalIndex(i), paramTypes[i], p.Pos); err != nil {
			return nil, err
		}
	}

	terminates, err := fg.lowerStmts(sc, fd.Body)
	if err != nil {
		return nil, err
	}
	if !terminates {
		if result != nil {
			return nil, cerr.New(cerr.PhaseCodegen, cerr.KindTypeMismatch).At(fd.Pos).
				Name(name).Detail("not every path returns a value").Build()
		}
		fg.b.EmitReturnVoid()
	}

	return fg.b.Build(false)
}
