package cerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "identifier not found",
			err: &Error{
				Phase: PhaseType,
				Kind:  KindIdentifierNotFound,
				Pos:   Position{Line: 3, Column: 8},
				Name:  "Pair",
			},
			contains: []string{"[type]", "identifier_not_found", "3:8", "(Pair)"},
		},
		{
			name: "eof syntax error",
			err: &Error{
				Phase:    PhaseParse,
				Kind:     KindSyntax,
				Pos:      Position{EOF: true},
				Expected: []string{"identifier", "'{'"},
			},
			contains: []string{"[parse]", "syntax", "EOF", "identifier", "'{'"},
		},
		{
			name: "internal with cause",
			err: &Error{
				Phase:  PhaseOptimize,
				Kind:   KindInternal,
				Detail: "value stack not empty",
				Cause:  errors.New("underlying"),
			},
			contains: []string{"[optimize]", "internal", "value stack not empty", "caused by", "underlying"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				require.Contains(t, msg, s)
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	a := New(PhaseType, KindTypeMismatch).Build()
	b := New(PhaseType, KindTypeMismatch).Detail("different detail").Build()
	c := New(PhaseParse, KindTypeMismatch).Build()

	require.True(t, errors.Is(a, b))
	require.False(t, errors.Is(a, c))
}

func TestBuilderOffset(t *testing.T) {
	err := Internal(Position{Line: 1, Column: 1}, 42, "Drop", "invalid drop chain")
	require.Contains(t, err.Error(), "offset 42")
	require.Contains(t, err.Error(), "op=Drop")
}
