// Package parser implements the recursive-descent parser that turns a
// `src` token stream into an ast.File (§4.2, §6 of the language
// specification).
package parser

import (
	"github.com/neri/toyscript-wasm/ast"
	"github.com/neri/toyscript-wasm/cerr"
	"github.com/neri/toyscript-wasm/token"
)

// Parser consumes a pre-tokenized stream and builds a syntax tree one
// declaration or statement at a time, deciding each production from the
// next token alone (Peek); it never calls the stream's Mark/Rollback.
type Parser struct {
	s        *token.Stream
	lastLine int
}

func New(toks []token.Token) *Parser {
	return &Parser{s: token.NewStream(toks)}
}

// Parse consumes the entire stream, returning the file's top-level
// functions, classes and implicit-main statements.
func (p *Parser) Parse() (*ast.File, error) {
	f := &ast.File{}
	for p.s.Peek().Kind != token.EOF {
		exported := false
		if _, err := p.s.ExpectKeyword("export"); err == nil {
			exported = true
		}

		switch {
		case p.atKeyword("function"):
			fn, err := p.parseFunction(exported)
			if err != nil {
				return nil, err
			}
			f.Functions = append(f.Functions, fn)

		case p.atKeyword("class"):
			if exported {
				return nil, p.errf("export class is not supported")
			}
			cd, err := p.parseClass()
			if err != nil {
				return nil, err
			}
			f.Classes = append(f.Classes, cd)

		default:
			if exported {
				return nil, p.errf("export applies only to function declarations")
			}
			st, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			f.Main = append(f.Main, st)
		}
	}
	return f, nil
}

func (p *Parser) atKeyword(word string) bool {
	t := p.s.Peek()
	return t.Kind == token.Keyword && t.Text == word
}

func (p *Parser) atSymbol(sym string) bool {
	t := p.s.Peek()
	return t.Kind == token.Symbol && t.Text == sym
}

func (p *Parser) errf(format string, args ...any) *cerr.Error {
	b := cerr.New(cerr.PhaseParse, cerr.KindSyntax).At(p.s.Peek().Position())
	return b.Detail(format, args...).Build()
}

// consumeEOL consumes an optional statement-terminating `;` then
// checks the statement actually ended (newline or EOF) unless another
// token already closed it (e.g. a block's `}`).
func (p *Parser) consumeEOL(lastLine int) error {
	if _, err := p.s.ExpectSymbol(";"); err == nil {
		return nil
	}
	if p.atSymbol("}") {
		return nil
	}
	if err := p.s.ExpectEOL(lastLine); err != nil {
		return err
	}
	return nil
}

func (p *Parser) parseTypeRef() (ast.TypeRef, error) {
	t, err := p.s.Expect(token.Ident, token.Keyword)
	if err != nil {
		return ast.TypeRef{}, err
	}
	return ast.TypeRef{Name: t.Text, Pos: t.Position()}, nil
}
