package primitive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorageType(t *testing.T) {
	cases := map[Primitive]Primitive{
		I8: I32, U8: I32, I16: I32, U16: I32, I32: I32, U32: I32,
		I64: I64, U64: I64, F32: F32, F64: F64, Void: Void,
	}
	for p, want := range cases {
		require.Equal(t, want, p.StorageType(), "primitive %s", p)
	}
}

func TestTypeIDRoundTrip(t *testing.T) {
	for _, p := range All() {
		got, ok := FromTypeID(p.TypeID())
		require.True(t, ok)
		require.Equal(t, p, got)
	}
}

func TestTypeIDBitLayout(t *testing.T) {
	// is_unsigned | is_float<<1 | size_of<<2
	require.Equal(t, uint32(0x11), U32.TypeID())
	require.True(t, I32.IsSigned())
	require.True(t, U32.IsInteger())
	require.True(t, F64.IsFloat())
}
