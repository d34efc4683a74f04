package wasmout

import (
	"testing"

	"github.com/neri/toyscript-wasm/primitive"
	"github.com/neri/toyscript-wasm/tir"
	"github.com/neri/toyscript-wasm/tir/optimize"
	"github.com/stretchr/testify/require"
)

func buildAdd(t *testing.T) *tir.Function {
	t.Helper()
	params := []tir.Local{
		{Name: "a", Type: primitive.I32, IsParam: true},
		{Name: "b", Type: primitive.I32, IsParam: true},
	}
	b := tir.NewBuilder("add", params, primitive.I32)
	l := b.EmitLocalGet(0)
	r := b.EmitLocalGet(1)
	sum := b.EmitBinOp(tir.Add, l, r)
	b.EmitReturn(sum)
	fn, err := b.Build(true)
	require.NoError(t, err)
	opt, err := optimize.Function(fn)
	require.NoError(t, err)
	return opt
}

func TestBuildSimpleModule(t *testing.T) {
	fn := buildAdd(t)
	data, err := Build([]*tir.Function{fn})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	m, err := buildModule([]*tir.Function{fn})
	require.NoError(t, err)
	require.Len(t, m.Funcs, 1)
	require.Len(t, m.Code, 1)
	require.Len(t, m.Exports, 1)
	require.Equal(t, "add", m.Exports[0].Name)
	require.Equal(t, KindFunc, m.Exports[0].Kind)

	ft := m.Types[m.Funcs[0]]
	require.Equal(t, []ValType{ValI32, ValI32}, ft.Params)
	require.Equal(t, []ValType{ValI32}, ft.Results)
}

func TestBuildSharesFuncTypes(t *testing.T) {
	a := buildAdd(t)
	bParams := []tir.Local{
		{Name: "x", Type: primitive.I32, IsParam: true},
		{Name: "y", Type: primitive.I32, IsParam: true},
	}
	bb := tir.NewBuilder("sub", bParams, primitive.I32)
	l := bb.EmitLocalGet(0)
	r := bb.EmitLocalGet(1)
	diff := bb.EmitBinOp(tir.Sub, l, r)
	bb.EmitReturn(diff)
	fn2, err := bb.Build(true)
	require.NoError(t, err)
	opt2, err := optimize.Function(fn2)
	require.NoError(t, err)

	m, err := buildModule([]*tir.Function{a, opt2})
	require.NoError(t, err)
	require.Equal(t, m.Funcs[0], m.Funcs[1], "identical (i32,i32)->i32 signature should share one type index")
}

func TestBuildUnaryNegI64UsesScratchLocal(t *testing.T) {
	params := []tir.Local{{Name: "a", Type: primitive.I64, IsParam: true}}
	b := tir.NewBuilder("neg", params, primitive.I64)
	v := b.EmitLocalGet(0)
	n := b.EmitUnOp(tir.Neg, v)
	b.EmitReturn(n)
	fn, err := b.Build(true)
	require.NoError(t, err)
	opt, err := optimize.Function(fn)
	require.NoError(t, err)

	m, err := buildModule([]*tir.Function{opt})
	require.NoError(t, err)
	require.Len(t, m.Code, 1)
	require.NotEmpty(t, m.Code[0].Locals, "Neg on i64 should allocate a scratch i64 local")
}

func TestBuildEmitsNameSection(t *testing.T) {
	fn := buildAdd(t)
	m, err := buildModule([]*tir.Function{fn})
	require.NoError(t, err)
	var found bool
	for _, cs := range m.CustomSections {
		if cs.Name == "name" {
			found = true
		}
	}
	require.True(t, found)
}

func TestBuildCallResolvesFuncIndex(t *testing.T) {
	addParams := []tir.Local{
		{Name: "a", Type: primitive.I32, IsParam: true},
		{Name: "b", Type: primitive.I32, IsParam: true},
	}
	ab := tir.NewBuilder("add", addParams, primitive.I32)
	l := ab.EmitLocalGet(0)
	r := ab.EmitLocalGet(1)
	ab.EmitReturn(ab.EmitBinOp(tir.Add, l, r))
	addFn, err := ab.Build(true)
	require.NoError(t, err)
	addOpt, err := optimize.Function(addFn)
	require.NoError(t, err)

	cb := tir.NewBuilder("callsAdd", nil, primitive.I32)
	one := cb.EmitConstI32(1)
	two := cb.EmitConstI32(2)
	res := cb.EmitCallV("add", []tir.SsaIndex{one, two})
	cb.EmitReturn(res)
	callFn, err := cb.Build(true)
	require.NoError(t, err)
	callOpt, err := optimize.Function(callFn)
	require.NoError(t, err)

	m, err := buildModule([]*tir.Function{addOpt, callOpt})
	require.NoError(t, err)
	require.Len(t, m.Code, 2)
}
