package tir

import (
	"testing"

	"github.com/neri/toyscript-wasm/primitive"
	"github.com/stretchr/testify/require"
)

func TestBuilderAddLocal(t *testing.T) {
	params := []Local{{Name: "a", Type: primitive.I32, IsParam: true}}
	b := NewBuilder("add", params, primitive.I32)
	idx := b.AddLocal("tmp", primitive.I32)
	require.Equal(t, LocalIndex(1), idx)
}

func TestBuilderSimpleAdd(t *testing.T) {
	params := []Local{
		{Name: "a", Type: primitive.I32, IsParam: true},
		{Name: "b", Type: primitive.I32, IsParam: true},
	}
	b := NewBuilder("add", params, primitive.I32)
	l := b.EmitLocalGet(0)
	r := b.EmitLocalGet(1)
	sum := b.EmitBinOp(Add, l, r)
	b.EmitReturn(sum)

	fn, err := b.Build(true)
	require.NoError(t, err)
	require.Len(t, fn.Code, 4)
	require.Equal(t, Add, fn.Code[2].Op)
	require.Contains(t, fn.Disassemble(), "add %0, %1")
}

func TestBuilderBlockMismatch(t *testing.T) {
	b := NewBuilder("f", nil, primitive.Void)
	outer := b.OpenBlock()
	inner := b.OpenBlock()
	err := b.CloseBlock(outer)
	require.Error(t, err)
	require.NoError(t, b.CloseBlock(inner))
}

func TestBuilderUnclosedBlockFails(t *testing.T) {
	b := NewBuilder("f", nil, primitive.Void)
	b.OpenBlock()
	_, err := b.Build(false)
	require.Error(t, err)
}

func TestBuilderCallSite(t *testing.T) {
	b := NewBuilder("f", nil, primitive.I32)
	one := b.EmitConstI32(1)
	two := b.EmitConstI32(2)
	res := b.EmitCallV("add", []SsaIndex{one, two})
	b.EmitReturn(res)
	fn, err := b.Build(true)
	require.NoError(t, err)
	require.Len(t, fn.Calls, 1)
	require.Equal(t, "add", fn.Calls[0].Callee)
	require.Contains(t, fn.Disassemble(), "call add(%0, %1)")
}
