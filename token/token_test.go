package token

import (
	"testing"

	"github.com/neri/toyscript-wasm/cerr"
	"github.com/stretchr/testify/require"
)

func TestTokenizeBasic(t *testing.T) {
	toks, errs := Tokenize([]byte("function add(a: i32, b: i32): i32 { return a + b }"), nil)
	require.Empty(t, errs)

	var kinds []Kind
	for _, tok := range toks {
		if tok.Kind != EOF {
			kinds = append(kinds, tok.Kind)
		}
	}
	require.Contains(t, kinds, Keyword)
	require.Contains(t, kinds, Ident)
	require.Contains(t, kinds, Symbol)
	require.Equal(t, EOF, toks[len(toks)-1].Kind)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, errs := Tokenize([]byte(`let s = "unterminated`), nil)
	require.Len(t, errs, 1)
	require.Equal(t, cerr.KindTokenParse, errs[0].Kind)
}

func TestTokenizeMultiCharSymbols(t *testing.T) {
	toks, errs := Tokenize([]byte("x += 1; y == 2; z++"), nil)
	require.Empty(t, errs)
	var syms []string
	for _, tok := range toks {
		if tok.Kind == Symbol {
			syms = append(syms, tok.Text)
		}
	}
	require.Contains(t, syms, "+=")
	require.Contains(t, syms, "==")
	require.Contains(t, syms, "++")
}

func TestStreamExpect(t *testing.T) {
	toks, _ := Tokenize([]byte("function foo"), nil)
	s := NewStream(toks)
	_, err := s.ExpectKeyword("function")
	require.Nil(t, err)
	tok, err := s.Expect(Ident)
	require.Nil(t, err)
	require.Equal(t, "foo", tok.Text)
}

func TestStreamRollback(t *testing.T) {
	toks, _ := Tokenize([]byte("a b c"), nil)
	s := NewStream(toks)
	mark := s.Mark()
	s.NextNonBlank()
	s.NextNonBlank()
	s.Rollback(mark)
	tok := s.Peek()
	require.Equal(t, "a", tok.Text)
}
