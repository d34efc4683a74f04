package typesys

import (
	"testing"

	"github.com/neri/toyscript-wasm/ast"
	"github.com/neri/toyscript-wasm/cerr"
	"github.com/neri/toyscript-wasm/primitive"
	"github.com/stretchr/testify/require"
)

func TestNewSeedsBuiltinAliases(t *testing.T) {
	s, err := New(32)
	require.NoError(t, err)

	boolean, ok := s.Get(BuiltinBoolean)
	require.True(t, ok)
	p, ok := boolean.PrimitiveType()
	require.True(t, ok)
	require.Equal(t, primitive.U8, p)

	str, ok := s.Get(BuiltinString)
	require.True(t, ok)
	require.Equal(t, KindReference, str.Kind)
	require.True(t, str.Target.IsVoid())
}

func TestSetUseDataModels(t *testing.T) {
	cases := []struct {
		bits           int
		wantInt, wantUsize primitive.Primitive
	}{
		{8, primitive.I8, primitive.U16},
		{16, primitive.I16, primitive.U16},
		{32, primitive.I32, primitive.U32},
		{64, primitive.I32, primitive.U64},
	}
	for _, c := range cases {
		s, err := New(c.bits)
		require.NoError(t, err)
		intDesc, _ := s.Get(BuiltinInt)
		p, _ := intDesc.PrimitiveType()
		require.Equal(t, c.wantInt, p, "use=%d", c.bits)
		usizeDesc, _ := s.Get(BuiltinUsize)
		p, _ = usizeDesc.PrimitiveType()
		require.Equal(t, c.wantUsize, p, "use=%d", c.bits)
	}
}

func TestStorageTypeCollapsesReferenceToUsize(t *testing.T) {
	s, err := New(32)
	require.NoError(t, err)
	str, _ := s.Get(BuiltinString)
	require.Equal(t, primitive.U32, s.StorageType(str))
}

func TestResolveClassesForwardReference(t *testing.T) {
	s, err := New(32)
	require.NoError(t, err)

	node := &ast.ClassDecl{
		Name: "Node",
		Fields: []ast.FieldDecl{
			{Name: "next", Type: ast.TypeRef{Name: "Link"}},
		},
	}
	link := &ast.ClassDecl{
		Name: "Link",
		Fields: []ast.FieldDecl{
			{Name: "value", Type: ast.TypeRef{Name: "i32"}},
		},
	}

	err = s.ResolveClasses([]*ast.ClassDecl{node, link})
	require.NoError(t, err)
	require.Len(t, s.Classes(), 2)

	nodeDesc, ok := s.Get("Node")
	require.True(t, ok)
	require.Equal(t, KindClass, nodeDesc.Kind)
	f, ok := nodeDesc.Class.Field("next")
	require.True(t, ok)
	require.Equal(t, "Link", f.Type.Identifier)
}

func TestResolveClassesUnresolvableAfterBound(t *testing.T) {
	s, err := New(32)
	require.NoError(t, err)

	decl := &ast.ClassDecl{
		Name: "Bad",
		Fields: []ast.FieldDecl{
			{Name: "x", Type: ast.TypeRef{Name: "DoesNotExist"}},
		},
	}
	err = s.ResolveClasses([]*ast.ClassDecl{decl})
	require.Error(t, err)
}

func TestClassConstructorMangling(t *testing.T) {
	s, err := New(32)
	require.NoError(t, err)
	pair := &ast.ClassDecl{
		Name: "Pair",
		Fields: []ast.FieldDecl{
			{Name: "a", Type: ast.TypeRef{Name: "i32"}},
			{Name: "b", Type: ast.TypeRef{Name: "i32"}},
		},
		Constructor: &ast.FunctionDecl{
			Name: "constructor",
			Params: []ast.Param{
				{Name: "a", Type: ast.TypeRef{Name: "i32"}},
				{Name: "b", Type: ast.TypeRef{Name: "i32"}},
			},
		},
	}
	require.NoError(t, s.ResolveClasses([]*ast.ClassDecl{pair}))

	desc, ok := s.Get("Pair")
	require.True(t, ok)
	ctor, ok := desc.Class.Constructor()
	require.True(t, ok)
	require.Len(t, ctor.Params, 2)
	require.Equal(t, "$Pair:.ctor", Mangled("Pair", CtorName, nil))
}

func TestInferEachPromotesMaybe(t *testing.T) {
	s, err := New(32)
	require.NoError(t, err)
	i32, _ := s.Get("i32")

	lhs := FromMaybe(func() *Descriptor { d, _ := s.Get(BuiltinInt); return d }())
	rhs := FromKnown(i32)
	require.NoError(t, InferEach(&lhs, &rhs, cerr.Position{}))
	require.Equal(t, Known, lhs.Certainty)
	require.True(t, lhs.Type.Equal(i32))
}
