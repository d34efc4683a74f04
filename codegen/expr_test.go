package codegen

import (
	"testing"

	"github.com/neri/toyscript-wasm/ast"
	"github.com/stretchr/testify/require"
)

func mustLower(t *testing.T, fd *ast.FunctionDecl) string {
	t.Helper()
	types := mustNewSystem(t)
	sigs, err := buildSignatures(types, []*ast.FunctionDecl{fd})
	require.NoError(t, err)
	fn, err := lowerFunction(types, sigs, fd)
	require.NoError(t, err)
	return fn.Disassemble()
}

func TestLowerBinaryUnifiesMismatchedOperandWidths(t *testing.T) {
	i32 := ast.TypeRef{Name: "i32"}
	i64 := ast.TypeRef{Name: "i64"}
	fd := &ast.FunctionDecl{
		Name:   "f",
		Params: []ast.Param{{Name: "a", Type: i32}, {Name: "b", Type: i64}},
		Result: &i64,
		Body: []ast.Statement{
			&ast.ReturnStmt{Value: &ast.BinaryExpr{
				Op:   "+",
				Left: &ast.Ident{Name: "a"},
				Right: &ast.Ident{Name: "b"},
			}},
		},
	}
	dump := mustLower(t, fd)
	require.Contains(t, dump, "cast<")
	require.Contains(t, dump, "add")
}

func TestLowerLogicalAndShortCircuitsThroughABlock(t *testing.T) {
	boolType := ast.TypeRef{Name: "boolean"}
	fd := &ast.FunctionDecl{
		Name:   "f",
		Params: []ast.Param{{Name: "a", Type: boolType}, {Name: "b", Type: boolType}},
		Result: &boolType,
		Body: []ast.Statement{
			&ast.ReturnStmt{Value: &ast.BinaryExpr{
				Op:   "&&",
				Left: &ast.Ident{Name: "a"},
				Right: &ast.Ident{Name: "b"},
			}},
		},
	}
	dump := mustLower(t, fd)
	require.Contains(t, dump, "block")
	require.Contains(t, dump, "br_if")
}

func TestLowerCastRejectsClassType(t *testing.T) {
	types := mustNewSystem(t)
	require.NoError(t, types.ResolveClasses([]*ast.ClassDecl{
		{Name: "Pair", Fields: []ast.FieldDecl{{Name: "a", Type: ast.TypeRef{Name: "i32"}}}},
	}))
	i32 := ast.TypeRef{Name: "i32"}
	pairType := ast.TypeRef{Name: "Pair"}
	fd := &ast.FunctionDecl{
		Name:   "f",
		Params: []ast.Param{{Name: "x", Type: i32}},
		Result: &i32,
		Body: []ast.Statement{
			&ast.ReturnStmt{Value: &ast.CastExpr{
				X:    &ast.Ident{Name: "x"},
				Type: pairType,
			}},
		},
	}
	sigs, err := buildSignatures(types, []*ast.FunctionDecl{fd})
	require.NoError(t, err)
	_, err = lowerFunction(types, sigs, fd)
	require.Error(t, err)
}

func TestLowerNewExprRejectedOutsideStatementPosition(t *testing.T) {
	types := mustNewSystem(t)
	require.NoError(t, types.ResolveClasses([]*ast.ClassDecl{
		{Name: "Pair", Fields: []ast.FieldDecl{{Name: "a", Type: ast.TypeRef{Name: "i32"}}}},
	}))
	i32 := ast.TypeRef{Name: "i32"}
	fd := &ast.FunctionDecl{
		Name:   "f",
		Result: &i32,
		Body: []ast.Statement{
			&ast.VarDecl{
				Names:   []string{"p"},
				Types:   []*ast.TypeRef{nil},
				Inits:   []ast.Expression{&ast.NewExpr{ClassName: "Pair", Args: []ast.Expression{&ast.IntLit{Value: 1}}}},
				Mutable: true,
			},
			&ast.ReturnStmt{Value: &ast.IntLit{Value: 0}},
		},
	}
	sigs, err := buildSignatures(types, []*ast.FunctionDecl{fd})
	require.NoError(t, err)
	_, err = lowerFunction(types, sigs, fd)
	require.Error(t, err)
}
