package token

import "github.com/neri/toyscript-wasm/cerr"

// Stream is a cursor over a pre-tokenized stream, offering the expect
// family of operations the parser is built on (§6 of the specification).
type Stream struct {
	toks []Token
	pos  int
}

func NewStream(toks []Token) *Stream {
	return &Stream{toks: toks}
}

// Peek returns the token at the cursor without consuming it.
func (s *Stream) Peek() Token {
	if s.pos >= len(s.toks) {
		return s.toks[len(s.toks)-1] // EOF sentinel
	}
	return s.toks[s.pos]
}

// NextNonBlank consumes and returns the next token. There is no blank/
// whitespace token in this stream (the tokenizer already elides it), so
// this simply advances the cursor — kept as a named operation to match
// the external tokenizer contract.
func (s *Stream) NextNonBlank() Token {
	t := s.Peek()
	if s.pos < len(s.toks) {
		s.pos++
	}
	return t
}

// Expect consumes the next token if its Kind is one of kinds, otherwise
// returns (zero Token, error) without consuming.
func (s *Stream) Expect(kinds ...Kind) (Token, *cerr.Error) {
	t := s.Peek()
	for _, k := range kinds {
		if t.Kind == k {
			s.NextNonBlank()
			return t, nil
		}
	}
	return Token{}, s.unexpected(t, kindNames(kinds))
}

// ExpectKeyword consumes a specific keyword spelling.
func (s *Stream) ExpectKeyword(word string) (Token, *cerr.Error) {
	t := s.Peek()
	if t.Kind == Keyword && t.Text == word {
		s.NextNonBlank()
		return t, nil
	}
	return Token{}, s.unexpected(t, []string{"keyword " + word})
}

// ExpectSymbol consumes a specific symbol spelling.
func (s *Stream) ExpectSymbol(sym string) (Token, *cerr.Error) {
	t := s.Peek()
	if t.Kind == Symbol && t.Text == sym {
		s.NextNonBlank()
		return t, nil
	}
	return Token{}, s.unexpected(t, []string{"'" + sym + "'"})
}

// ExpectImmedSymbol consumes a symbol that must be adjacent to the
// previous token (same logical line, no intervening whitespace) — used
// for constructs like postfix `++` where whitespace would change meaning.
func (s *Stream) ExpectImmedSymbol(sym string) (Token, *cerr.Error) {
	t := s.Peek()
	if t.Kind == Symbol && t.Text == sym && t.Adjacent {
		s.NextNonBlank()
		return t, nil
	}
	return Token{}, s.unexpected(t, []string{"'" + sym + "' (no preceding whitespace)"})
}

// ExpectEOL checks that the next token starts a new source line relative
// to the last consumed token (statement termination by newline).
func (s *Stream) ExpectEOL(lastLine int) *cerr.Error {
	t := s.Peek()
	if t.Kind == EOF || t.Line != lastLine {
		return nil
	}
	return s.unexpected(t, []string{"end of statement"})
}

func (s *Stream) unexpected(t Token, expected []string) *cerr.Error {
	pos := t.Position()
	if t.Kind == EOF {
		pos = cerr.Position{EOF: true}
	}
	return cerr.New(cerr.PhaseParse, cerr.KindSyntax).At(pos).Expected(expected...).
		Detail("unexpected %s %q", t.Kind, t.Text).Build()
}

func kindNames(kinds []Kind) []string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}

// Mark returns a transaction checkpoint for the current cursor position.
type Mark int

func (s *Stream) Mark() Mark { return Mark(s.pos) }

// Rollback resets the cursor to a previously obtained Mark, discarding
// any tokens consumed since. The parser package does not call it.
func (s *Stream) Rollback(m Mark) { s.pos = int(m) }
