package codegen

import (
	"testing"

	"github.com/neri/toyscript-wasm/typesys"
	"github.com/stretchr/testify/require"
)

func mustNewSystem(t *testing.T) *typesys.System {
	t.Helper()
	types, err := typesys.New(32)
	require.NoError(t, err)
	return types
}
