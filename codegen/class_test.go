package codegen

import (
	"testing"

	"github.com/neri/toyscript-wasm/ast"
	"github.com/stretchr/testify/require"
)

func TestLowerConstructorNilWhenClassHasNone(t *testing.T) {
	types := mustNewSystem(t)
	cd := &ast.ClassDecl{Name: "Empty"}
	require.NoError(t, types.ResolveClasses([]*ast.ClassDecl{cd}))

	fn, err := lowerConstructor(types, nil, cd)
	require.NoError(t, err)
	require.Nil(t, fn)
}

func TestLowerConstructorMangledName(t *testing.T) {
	i32 := ast.TypeRef{Name: "i32"}
	cd := &ast.ClassDecl{
		Name:   "Pair",
		Fields: []ast.FieldDecl{{Name: "a", Type: i32}, {Name: "b", Type: i32}},
		Constructor: &ast.FunctionDecl{
			Name:   ".ctor",
			Params: []ast.Param{{Name: "a", Type: i32}, {Name: "b", Type: i32}},
		},
	}
	types := mustNewSystem(t)
	require.NoError(t, types.ResolveClasses([]*ast.ClassDecl{cd}))

	fn, err := lowerConstructor(types, map[string]funcSig{}, cd)
	require.NoError(t, err)
	require.NotNil(t, fn)
	require.Equal(t, "$Pair:.ctor", fn.Name)
	require.False(t, fn.Exported)
}

func TestLowerMethodRejectsMissingReturnOnNonVoidResult(t *testing.T) {
	i32 := ast.TypeRef{Name: "i32"}
	cd := &ast.ClassDecl{
		Name:   "Pair",
		Fields: []ast.FieldDecl{{Name: "a", Type: i32}},
		Methods: []*ast.FunctionDecl{
			{
				Name:   "get",
				Result: &i32,
				Body:   []ast.Statement{&ast.ExprStmt{X: &ast.IntLit{Value: 1}}},
			},
		},
	}
	types := mustNewSystem(t)
	require.NoError(t, types.ResolveClasses([]*ast.ClassDecl{cd}))

	_, err := lowerMethod(types, map[string]funcSig{}, cd, cd.Methods[0])
	require.Error(t, err)
}
