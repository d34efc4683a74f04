package parser

import (
	"github.com/neri/toyscript-wasm/ast"
	"github.com/neri/toyscript-wasm/token"
)

func (p *Parser) parseBlockBody() ([]ast.Statement, error) {
	if _, err := p.s.ExpectSymbol("{"); err != nil {
		return nil, err
	}
	var body []ast.Statement
	for !p.atSymbol("}") {
		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, st)
	}
	if _, err := p.s.ExpectSymbol("}"); err != nil {
		return nil, err
	}
	return body, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch {
	case p.atSymbol("{"):
		pos := p.s.Peek().Position()
		body, err := p.parseBlockBody()
		if err != nil {
			return nil, err
		}
		return &ast.BlockStmt{Body: body, Pos: pos}, nil

	case p.atKeyword("let"), p.atKeyword("const"):
		return p.parseVarDecl()

	case p.atKeyword("if"):
		return p.parseIf()

	case p.atKeyword("while"):
		return p.parseWhile()

	case p.atKeyword("for"):
		return p.parseFor()

	case p.atKeyword("return"):
		return p.parseReturn()

	case p.atKeyword("break"):
		t, _ := p.s.ExpectKeyword("break")
		err := p.consumeEOL(t.Line)
		return &ast.BreakStmt{Pos: t.Position()}, err

	case p.atKeyword("continue"):
		t, _ := p.s.ExpectKeyword("continue")
		err := p.consumeEOL(t.Line)
		return &ast.ContinueStmt{Pos: t.Position()}, err

	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseVarDecl() (*ast.VarDecl, error) {
	t := p.s.Peek()
	mutable := t.Text == "let"
	p.s.NextNonBlank()

	vd := &ast.VarDecl{Mutable: mutable, Pos: t.Position()}
	for {
		name, err := p.s.Expect(token.Ident)
		if err != nil {
			return nil, err
		}
		var typ *ast.TypeRef
		if _, err := p.s.ExpectSymbol(":"); err == nil {
			tr, err := p.parseTypeRef()
			if err != nil {
				return nil, err
			}
			typ = &tr
		}
		var init ast.Expression
		if _, err := p.s.ExpectSymbol("="); err == nil {
			init, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		}
		vd.Names = append(vd.Names, name.Text)
		vd.Types = append(vd.Types, typ)
		vd.Inits = append(vd.Inits, init)

		if _, err := p.s.ExpectSymbol(","); err != nil {
			break
		}
	}
	if err := p.consumeEOL(t.Line); err != nil {
		return nil, err
	}
	return vd, nil
}

func (p *Parser) parseIf() (*ast.IfStmt, error) {
	start, err := p.s.ExpectKeyword("if")
	if err != nil {
		return nil, err
	}
	cond, then, err := p.parseCondAndBlock()
	if err != nil {
		return nil, err
	}
	st := &ast.IfStmt{Cond: cond, Then: then, Pos: start.Position()}

	for {
		if _, err := p.s.ExpectKeyword("else"); err != nil {
			break
		}
		if _, err := p.s.ExpectKeyword("if"); err == nil {
			pos := p.s.Peek().Position()
			cond, body, err := p.parseCondAndBlock()
			if err != nil {
				return nil, err
			}
			st.ElseIfs = append(st.ElseIfs, ast.ElseIfClause{Cond: cond, Body: body, Pos: pos})
			continue
		}
		body, err := p.parseBlockBody()
		if err != nil {
			return nil, err
		}
		st.Else = body
		break
	}
	return st, nil
}

func (p *Parser) parseCondAndBlock() (ast.Expression, []ast.Statement, error) {
	if _, err := p.s.ExpectSymbol("("); err != nil {
		return nil, nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.s.ExpectSymbol(")"); err != nil {
		return nil, nil, err
	}
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, nil, err
	}
	return cond, body, nil
}

func (p *Parser) parseWhile() (*ast.WhileStmt, error) {
	start, err := p.s.ExpectKeyword("while")
	if err != nil {
		return nil, err
	}
	cond, body, err := p.parseCondAndBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body, Pos: start.Position()}, nil
}

func (p *Parser) parseFor() (*ast.ForStmt, error) {
	start, err := p.s.ExpectKeyword("for")
	if err != nil {
		return nil, err
	}
	if _, err := p.s.ExpectSymbol("("); err != nil {
		return nil, err
	}

	fs := &ast.ForStmt{Pos: start.Position()}

	if !p.atSymbol(";") {
		if p.atKeyword("let") || p.atKeyword("const") {
			init, err := p.parseVarDecl()
			if err != nil {
				return nil, err
			}
			fs.Init = init
		} else {
			init, err := p.parseExprStmtNoEOL()
			if err != nil {
				return nil, err
			}
			fs.Init = init
		}
	}
	if _, err := p.s.ExpectSymbol(";"); err != nil {
		return nil, err
	}

	if !p.atSymbol(";") {
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		fs.Cond = cond
	}
	if _, err := p.s.ExpectSymbol(";"); err != nil {
		return nil, err
	}

	if !p.atSymbol(")") {
		post, err := p.parseExprStmtNoEOL()
		if err != nil {
			return nil, err
		}
		fs.Post = post
	}
	if _, err := p.s.ExpectSymbol(")"); err != nil {
		return nil, err
	}

	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	fs.Body = body
	return fs, nil
}

func (p *Parser) parseReturn() (*ast.ReturnStmt, error) {
	start, err := p.s.ExpectKeyword("return")
	if err != nil {
		return nil, err
	}
	rs := &ast.ReturnStmt{Pos: start.Position()}
	if !p.atSymbol(";") && !p.atSymbol("}") && p.s.Peek().Line == start.Line {
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		rs.Value = val
	}
	if err := p.consumeEOL(start.Line); err != nil {
		return nil, err
	}
	return rs, nil
}

func (p *Parser) parseExprStmt() (*ast.ExprStmt, error) {
	pos := p.s.Peek().Position()
	x, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.consumeEOL(pos.Line); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{X: x, Pos: pos}, nil
}

// parseExprStmtNoEOL parses a bare expression statement without
// requiring statement termination, for a for-loop's init/post clauses.
func (p *Parser) parseExprStmtNoEOL() (*ast.ExprStmt, error) {
	pos := p.s.Peek().Position()
	x, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{X: x, Pos: pos}, nil
}
