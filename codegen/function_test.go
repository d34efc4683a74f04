package codegen

import (
	"testing"

	"github.com/neri/toyscript-wasm/ast"
	"github.com/stretchr/testify/require"
)

func TestLowerFunctionVoidBodyGetsImplicitReturn(t *testing.T) {
	types := mustNewSystem(t)
	fd := &ast.FunctionDecl{Name: "noop", Body: nil}
	sigs, err := buildSignatures(types, []*ast.FunctionDecl{fd})
	require.NoError(t, err)

	fn, err := lowerFunction(types, sigs, fd)
	require.NoError(t, err)
	require.Contains(t, fn.Disassemble(), "return")
}

func TestLowerFunctionRejectsMissingReturnOnNonVoidResult(t *testing.T) {
	types := mustNewSystem(t)
	i32 := ast.TypeRef{Name: "i32"}
	fd := &ast.FunctionDecl{
		Name:   "f",
		Result: &i32,
		Body: []ast.Statement{
			&ast.ExprStmt{X: &ast.IntLit{Value: 1}},
		},
	}
	sigs, err := buildSignatures(types, []*ast.FunctionDecl{fd})
	require.NoError(t, err)

	_, err = lowerFunction(types, sigs, fd)
	require.Error(t, err)
}

func TestLowerFunctionDuplicateParamNameFails(t *testing.T) {
	types := mustNewSystem(t)
	i32 := ast.TypeRef{Name: "i32"}
	fd := &ast.FunctionDecl{
		Name:   "f",
		Params: []ast.Param{{Name: "x", Type: i32}, {Name: "x", Type: i32}},
		Result: &i32,
		Body: []ast.Statement{
			&ast.ReturnStmt{Value: &ast.Ident{Name: "x"}},
		},
	}
	sigs, err := buildSignatures(types, []*ast.FunctionDecl{fd})
	require.NoError(t, err)

	_, err = lowerFunction(types, sigs, fd)
	require.Error(t, err)
}

func TestLowerMainProducesVoidFunctionNamedMain(t *testing.T) {
	types := mustNewSystem(t)
	sigs, err := buildSignatures(types, nil)
	require.NoError(t, err)

	fn, err := lowerMain(types, sigs, []ast.Statement{
		&ast.ExprStmt{X: &ast.IntLit{Value: 1}},
	})
	require.NoError(t, err)
	require.Equal(t, "main", fn.Name)
	require.False(t, fn.Exported)
}
