package parser

import (
	"testing"

	"github.com/neri/toyscript-wasm/ast"
	"github.com/neri/toyscript-wasm/token"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *ast.File {
	t.Helper()
	toks, errs := token.Tokenize([]byte(src), nil)
	require.Empty(t, errs)
	f, err := New(toks).Parse()
	require.NoError(t, err)
	return f
}

func TestParseSimpleFunction(t *testing.T) {
	f := parse(t, `export function add(a: i32, b: i32): i32 { return a + b }`)
	require.Len(t, f.Functions, 1)
	fn := f.Functions[0]
	require.True(t, fn.Exported)
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	require.NotNil(t, fn.Result)
	require.Equal(t, "i32", fn.Result.Name)
	require.Len(t, fn.Body, 1)
	ret, ok := fn.Body[0].(*ast.ReturnStmt)
	require.True(t, ok)
	bin, ok := ret.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, "+", bin.Op)
}

func TestParseIfElseChain(t *testing.T) {
	f := parse(t, `
		export function abs(x: i32): i32 {
			if (x < 0) {
				return -x
			}
			return x
		}
	`)
	fn := f.Functions[0]
	ifStmt, ok := fn.Body[0].(*ast.IfStmt)
	require.True(t, ok)
	require.Empty(t, ifStmt.ElseIfs)
	require.Nil(t, ifStmt.Else)
	require.Len(t, ifStmt.Then, 1)
}

func TestParseWhileLoop(t *testing.T) {
	f := parse(t, `
		function f(x: i32): i32 {
			let y: i32 = 0
			while (x > 0) {
				y = y + x
				x = x - 1
			}
			return y
		}
	`)
	fn := f.Functions[0]
	require.Len(t, fn.Body, 3)
	vd, ok := fn.Body[0].(*ast.VarDecl)
	require.True(t, ok)
	require.Equal(t, []string{"y"}, vd.Names)
	ws, ok := fn.Body[1].(*ast.WhileStmt)
	require.True(t, ok)
	require.Len(t, ws.Body, 2)
}

func TestParseClassWithConstructor(t *testing.T) {
	f := parse(t, `class Pair { a: i32; b: i32; constructor(a: i32, b: i32) { } }`)
	require.Len(t, f.Classes, 1)
	cd := f.Classes[0]
	require.Len(t, cd.Fields, 2)
	require.NotNil(t, cd.Constructor)
	require.Len(t, cd.Constructor.Params, 2)
}

func TestParseNewExpression(t *testing.T) {
	f := parse(t, `new Pair(1, 2)`)
	require.Len(t, f.Main, 1)
	es, ok := f.Main[0].(*ast.ExprStmt)
	require.True(t, ok)
	ne, ok := es.X.(*ast.NewExpr)
	require.True(t, ok)
	require.Equal(t, "Pair", ne.ClassName)
	require.Len(t, ne.Args, 2)
}

func TestParseCastExpression(t *testing.T) {
	f := parse(t, `export function trunc(x: f64): u8 { return x as u8 }`)
	fn := f.Functions[0]
	ret := fn.Body[0].(*ast.ReturnStmt)
	cast, ok := ret.Value.(*ast.CastExpr)
	require.True(t, ok)
	require.Equal(t, "u8", cast.Type.Name)
}

func TestParseForLoop(t *testing.T) {
	f := parse(t, `
		function sum(): i32 {
			let total: i32 = 0
			for (let i: i32 = 0; i < 10; i = i + 1) {
				total = total + i
			}
			return total
		}
	`)
	fn := f.Functions[0]
	fs, ok := fn.Body[1].(*ast.ForStmt)
	require.True(t, ok)
	require.NotNil(t, fs.Init)
	require.NotNil(t, fs.Cond)
	require.NotNil(t, fs.Post)
}
