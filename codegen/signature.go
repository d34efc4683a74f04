package codegen

import (
	"github.com/neri/toyscript-wasm/ast"
	"github.com/neri/toyscript-wasm/cerr"
	"github.com/neri/toyscript-wasm/typesys"
)

// funcSig is a resolved top-level function signature, looked up by
// name when lowering a call expression.
type funcSig struct {
	params []*typesys.Descriptor
	result *typesys.Descriptor // nil means void
}

func buildSignatures(types *typesys.System, decls []*ast.FunctionDecl) (map[string]funcSig, error) {
	sigs := make(map[string]funcSig, len(decls))
	for _, fd := range decls {
		if _, exists := sigs[fd.Name]; exists {
			return nil, cerr.DuplicateIdentifier(cerr.PhaseCodegen, fd.Pos, fd.Name)
		}
		params := make([]*typesys.Descriptor, len(fd.Params))
		for i, p := range fd.Params {
			pt, err := types.FromAST(p.Type)
			if err != nil {
				return nil, err
			}
			if pt.IsSpecial() {
				return nil, cerr.New(cerr.PhaseType, cerr.KindInvalidType).At(p.Pos).Name(p.Type.Name).Build()
			}
			params[i] = pt
		}
		var result *typesys.Descriptor
		if fd.Result != nil {
			rt, err := types.FromAST(*fd.Result)
			if err != nil {
				return nil, err
			}
			if rt.IsVoid() {
				rt = nil
			}
			result = rt
		}
		sigs[fd.Name] = funcSig{params: params, result: result}
	}
	return sigs, nil
}
