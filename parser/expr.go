package parser

import (
	"strconv"
	"strings"

	"github.com/neri/toyscript-wasm/ast"
	"github.com/neri/toyscript-wasm/cerr"
	"github.com/neri/toyscript-wasm/token"
)

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true, "^=": true, "<<=": true, ">>=": true,
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (ast.Expression, error) {
	lhs, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	t := p.s.Peek()
	if t.Kind == token.Symbol && assignOps[t.Text] {
		p.s.NextNonBlank()
		rhs, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.AssignExpr{Op: t.Text, Target: lhs, Value: rhs, Pos: t.Position()}, nil
	}
	return lhs, nil
}

func (p *Parser) binaryLevel(next func() (ast.Expression, error), ops ...string) (ast.Expression, error) {
	lhs, err := next()
	if err != nil {
		return nil, err
	}
	for {
		t := p.s.Peek()
		if t.Kind != token.Symbol {
			return lhs, nil
		}
		matched := ""
		for _, op := range ops {
			if t.Text == op {
				matched = op
				break
			}
		}
		if matched == "" {
			return lhs, nil
		}
		p.s.NextNonBlank()
		rhs, err := next()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryExpr{Op: matched, Left: lhs, Right: rhs, Pos: t.Position()}
	}
}

func (p *Parser) parseLogicalOr() (ast.Expression, error) {
	return p.binaryLevel(p.parseLogicalAnd, "||")
}

func (p *Parser) parseLogicalAnd() (ast.Expression, error) {
	return p.binaryLevel(p.parseBitOr, "&&")
}

func (p *Parser) parseBitOr() (ast.Expression, error)  { return p.binaryLevel(p.parseBitXor, "|") }
func (p *Parser) parseBitXor() (ast.Expression, error) { return p.binaryLevel(p.parseBitAnd, "^") }
func (p *Parser) parseBitAnd() (ast.Expression, error) { return p.binaryLevel(p.parseEquality, "&") }

func (p *Parser) parseEquality() (ast.Expression, error) {
	return p.binaryLevel(p.parseRelational, "==", "!=")
}

func (p *Parser) parseRelational() (ast.Expression, error) {
	return p.binaryLevel(p.parseShift, "<=", ">=", "<", ">")
}

func (p *Parser) parseShift() (ast.Expression, error) {
	return p.binaryLevel(p.parseAdditive, "<<", ">>")
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	return p.binaryLevel(p.parseMultiplicative, "+", "-")
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	return p.binaryLevel(p.parseCast, "*", "/", "%")
}

// parseCast handles the postfix `as` type conversion, which binds
// tighter than any binary operator but looser than unary prefix ops.
func (p *Parser) parseCast() (ast.Expression, error) {
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.s.Peek()
		if _, err := p.s.ExpectKeyword("as"); err != nil {
			return x, nil
		}
		typ, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		x = &ast.CastExpr{X: x, Type: typ, Pos: t.Position()}
	}
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	t := p.s.Peek()
	if t.Kind == token.Symbol && (t.Text == "-" || t.Text == "!") {
		p.s.NextNonBlank()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: t.Text, X: x, Pos: t.Position()}, nil
	}
	if t.Kind == token.Symbol && (t.Text == "++" || t.Text == "--") {
		p.s.NextNonBlank()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.IncDecExpr{Op: t.Text, X: x, Pos: t.Position()}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expression, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.s.Peek()
		if t.Kind == token.Symbol && (t.Text == "++" || t.Text == "--") {
			p.s.NextNonBlank()
			x = &ast.IncDecExpr{Op: t.Text, X: x, Postfix: true, Pos: t.Position()}
			continue
		}
		break
	}
	return x, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	t := p.s.Peek()
	switch t.Kind {
	case token.IntLiteral:
		p.s.NextNonBlank()
		v, err := strconv.ParseInt(strings.ReplaceAll(t.Text, "_", ""), 10, 64)
		if err != nil {
			return nil, cerr.New(cerr.PhaseParse, cerr.KindInvalidLiteral).At(t.Position()).
				Detail("invalid integer literal %q", t.Text).Build()
		}
		return &ast.IntLit{Value: v, Pos: t.Position()}, nil

	case token.FloatLiteral:
		p.s.NextNonBlank()
		v, err := strconv.ParseFloat(strings.ReplaceAll(t.Text, "_", ""), 64)
		if err != nil {
			return nil, cerr.New(cerr.PhaseParse, cerr.KindInvalidLiteral).At(t.Position()).
				Detail("invalid float literal %q", t.Text).Build()
		}
		return &ast.FloatLit{Value: v, Pos: t.Position()}, nil

	case token.StringLiteral:
		p.s.NextNonBlank()
		return &ast.StringLit{Value: unquote(t.Text), Pos: t.Position()}, nil

	case token.Keyword:
		switch t.Text {
		case "true", "false":
			p.s.NextNonBlank()
			return &ast.BoolLit{Value: t.Text == "true", Pos: t.Position()}, nil
		case "new":
			return p.parseNew()
		}

	case token.Ident:
		p.s.NextNonBlank()
		if p.atSymbol("(") {
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			return &ast.CallExpr{Callee: t.Text, Args: args, Pos: t.Position()}, nil
		}
		return &ast.Ident{Name: t.Text, Pos: t.Position()}, nil

	case token.Symbol:
		if t.Text == "(" {
			p.s.NextNonBlank()
			x, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.s.ExpectSymbol(")"); err != nil {
				return nil, err
			}
			return x, nil
		}
	}
	return nil, p.errf("unexpected %s %q in expression", t.Kind, t.Text)
}

func (p *Parser) parseNew() (ast.Expression, error) {
	start, err := p.s.ExpectKeyword("new")
	if err != nil {
		return nil, err
	}
	name, err := p.s.Expect(token.Ident)
	if err != nil {
		return nil, err
	}
	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	return &ast.NewExpr{ClassName: name.Text, Args: args, Pos: start.Position()}, nil
}

func (p *Parser) parseArgList() ([]ast.Expression, error) {
	if _, err := p.s.ExpectSymbol("("); err != nil {
		return nil, err
	}
	var args []ast.Expression
	for !p.atSymbol(")") {
		if len(args) > 0 {
			if _, err := p.s.ExpectSymbol(","); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if _, err := p.s.ExpectSymbol(")"); err != nil {
		return nil, err
	}
	return args, nil
}

func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	inner := raw[1 : len(raw)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
			switch inner[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte(inner[i])
			}
			continue
		}
		b.WriteByte(inner[i])
	}
	return b.String()
}
