package optimize

import (
	"testing"

	"github.com/neri/toyscript-wasm/primitive"
	"github.com/neri/toyscript-wasm/tir"
	"github.com/stretchr/testify/require"
)

func buildAndOptimize(t *testing.T, build func(b *tir.Builder)) *tir.Function {
	t.Helper()
	b := tir.NewBuilder("f", nil, primitive.I32)
	build(b)
	fn, err := b.Build(true)
	require.NoError(t, err)
	out, err := Function(fn)
	require.NoError(t, err)
	return out
}

func TestConstantFolding(t *testing.T) {
	out := buildAndOptimize(t, func(b *tir.Builder) {
		l := b.EmitConstI32(2)
		r := b.EmitConstI32(3)
		sum := b.EmitBinOp(tir.Add, l, r)
		b.EmitReturn(sum)
	})
	require.Len(t, out.Code, 2)
	require.Equal(t, tir.I32Const, out.Code[0].Op)
	require.Equal(t, int32(5), out.Code[0].Imm.I32)
}

func TestDropOfPureProducerErased(t *testing.T) {
	out := buildAndOptimize(t, func(b *tir.Builder) {
		v := b.EmitConstI32(7)
		b.EmitDrop(v)
		zero := b.EmitConstI32(0)
		b.EmitReturn(zero)
	})
	for _, in := range out.Code {
		require.NotEqual(t, tir.Drop, in.Op)
	}
}

func TestDropOfCallResultSurvives(t *testing.T) {
	out := buildAndOptimize(t, func(b *tir.Builder) {
		one := b.EmitConstI32(1)
		res := b.EmitCallV("sideEffect", []tir.SsaIndex{one})
		b.EmitDrop(res)
		zero := b.EmitConstI32(0)
		b.EmitReturn(zero)
	})
	found := false
	for _, in := range out.Code {
		if in.Op == tir.Drop {
			found = true
		}
	}
	require.True(t, found, "drop of an impure call result must survive: %s", out.Disassemble())
}

func TestSharedValueNotClobbered(t *testing.T) {
	out := buildAndOptimize(t, func(b *tir.Builder) {
		one := b.EmitConstI32(1)
		b.EmitDrop(one)
		b.EmitReturn(one)
	})
	// one has two readers (the Drop and the Return); the Drop must not
	// erase the shared constant out from under the Return.
	foundReturn := false
	for _, in := range out.Code {
		if in.Op == tir.Return {
			foundReturn = true
			require.GreaterOrEqual(t, in.A, int32(0))
			require.Less(t, int(in.A), len(out.Code))
		}
	}
	require.True(t, foundReturn)
}

func TestUnusedBlockEliminated(t *testing.T) {
	out := buildAndOptimize(t, func(b *tir.Builder) {
		blk := b.OpenBlock()
		v := b.EmitConstI32(9)
		b.EmitDrop(v)
		b.CloseBlock(blk)
		zero := b.EmitConstI32(0)
		b.EmitReturn(zero)
	})
	for _, in := range out.Code {
		require.NotEqual(t, tir.Block, in.Op)
		require.NotEqual(t, tir.End, in.Op)
	}
}

func TestReferencedBlockSurvives(t *testing.T) {
	out := buildAndOptimize(t, func(b *tir.Builder) {
		blk := b.OpenBlock()
		cond := b.EmitConstI32(1)
		b.EmitBrIf(cond, blk)
		b.CloseBlock(blk)
		zero := b.EmitConstI32(0)
		b.EmitReturn(zero)
	})
	hasBlock := false
	for _, in := range out.Code {
		if in.Op == tir.Block {
			hasBlock = true
		}
	}
	require.True(t, hasBlock)
}

func TestIdempotent(t *testing.T) {
	b := tir.NewBuilder("f", nil, primitive.I32)
	l := b.EmitConstI32(4)
	r := b.EmitConstI32(5)
	sum := b.EmitBinOp(tir.Mul, l, r)
	b.EmitReturn(sum)
	fn, err := b.Build(true)
	require.NoError(t, err)

	once, err := Function(fn)
	require.NoError(t, err)
	twice, err := Function(once)
	require.NoError(t, err)
	require.Equal(t, once.Disassemble(), twice.Disassemble())
}

func TestAddZeroIdentity(t *testing.T) {
	out := buildAndOptimize(t, func(b *tir.Builder) {
		idx := b.AddLocal("x", primitive.I32)
		v := b.EmitLocalGet(idx)
		zero := b.EmitConstI32(0)
		sum := b.EmitBinOp(tir.Add, v, zero)
		b.EmitReturn(sum)
	})
	require.Len(t, out.Code, 2)
	require.Equal(t, tir.LocalGet, out.Code[0].Op)
	require.Equal(t, tir.Return, out.Code[1].Op)
}
