package codegen

import (
	"testing"

	"github.com/neri/toyscript-wasm/cerr"
	"github.com/neri/toyscript-wasm/tir"
	"github.com/stretchr/testify/require"
)

func TestScopeResolveWalksParentChain(t *testing.T) {
	root := rootScope()
	require.NoError(t, root.declare("x", 0, nil, cerr.Position{}))

	child := root.child(nil, nil)
	v, ok := child.resolve("x")
	require.True(t, ok)
	require.Equal(t, "x", v.name)
}

func TestScopeDeclareRejectsDuplicateInSameBlock(t *testing.T) {
	s := rootScope()
	require.NoError(t, s.declare("x", 0, nil, cerr.Position{}))
	err := s.declare("x", 1, nil, cerr.Position{})
	require.Error(t, err)

	ce, ok := err.(*cerr.Error)
	require.True(t, ok)
	require.Equal(t, cerr.KindDuplicateIdentifier, ce.Kind)
}

func TestScopeChildShadowsWithoutErroring(t *testing.T) {
	root := rootScope()
	require.NoError(t, root.declare("x", 0, nil, cerr.Position{}))

	child := root.child(nil, nil)
	require.NoError(t, child.declare("x", 1, nil, cerr.Position{}))

	v, ok := child.resolve("x")
	require.True(t, ok)
	require.Equal(t, tir.LocalIndex(1), v.idx)

	pv, ok := root.resolve("x")
	require.True(t, ok)
	require.Equal(t, tir.LocalIndex(0), pv.idx)
}

func TestScopeResolveMissingNameFails(t *testing.T) {
	s := rootScope()
	_, ok := s.resolve("nope")
	require.False(t, ok)
}

func TestScopeChildInheritsLoopTargetsUnlessOverridden(t *testing.T) {
	root := rootScope()
	loopBreak := tir.BlockIndex(3)
	loopCont := tir.BlockIndex(4)
	loop := root.child(&loopBreak, &loopCont)

	nested := loop.child(nil, nil)
	require.Equal(t, loop.breakIndex, nested.breakIndex)
	require.Equal(t, loop.continueIndex, nested.continueIndex)

	innerBreak := tir.BlockIndex(9)
	innerLoop := loop.child(&innerBreak, nil)
	require.Equal(t, &innerBreak, innerLoop.breakIndex)
	require.Equal(t, loop.continueIndex, innerLoop.continueIndex)
}
