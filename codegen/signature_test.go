package codegen

import (
	"testing"

	"github.com/neri/toyscript-wasm/ast"
	"github.com/stretchr/testify/require"
)

func TestBuildSignaturesRejectsDuplicateFunctionNames(t *testing.T) {
	types := mustNewSystem(t)
	decls := []*ast.FunctionDecl{
		{Name: "f", Result: nil},
		{Name: "f", Result: nil},
	}
	_, err := buildSignatures(types, decls)
	require.Error(t, err)
}

func TestBuildSignaturesTreatsVoidResultAsNilSignature(t *testing.T) {
	types := mustNewSystem(t)
	voidType := ast.TypeRef{Name: "void"}
	decls := []*ast.FunctionDecl{
		{Name: "f", Result: &voidType},
	}
	sigs, err := buildSignatures(types, decls)
	require.NoError(t, err)
	require.Nil(t, sigs["f"].result)
}

func TestBuildSignaturesResolvesParamTypes(t *testing.T) {
	types := mustNewSystem(t)
	i32 := ast.TypeRef{Name: "i32"}
	decls := []*ast.FunctionDecl{
		{Name: "add", Params: []ast.Param{{Name: "a", Type: i32}, {Name: "b", Type: i32}}, Result: &i32},
	}
	sigs, err := buildSignatures(types, decls)
	require.NoError(t, err)
	require.Len(t, sigs["add"].params, 2)
	require.NotNil(t, sigs["add"].result)
	require.Equal(t, "i32", sigs["add"].result.Identifier)
}
