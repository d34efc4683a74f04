package parser

import (
	"github.com/neri/toyscript-wasm/ast"
	"github.com/neri/toyscript-wasm/token"
)

func (p *Parser) parseFunction(exported bool) (*ast.FunctionDecl, error) {
	start, err := p.s.ExpectKeyword("function")
	if err != nil {
		return nil, err
	}
	name, err := p.s.Expect(token.Ident)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	result, err := p.parseOptionalResult()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{
		Name:     name.Text,
		Params:   params,
		Result:   result,
		Body:     body,
		Exported: exported,
		Pos:      start.Position(),
	}, nil
}

func (p *Parser) parseParamList() ([]ast.Param, error) {
	if _, err := p.s.ExpectSymbol("("); err != nil {
		return nil, err
	}
	var params []ast.Param
	for !p.atSymbol(")") {
		if len(params) > 0 {
			if _, err := p.s.ExpectSymbol(","); err != nil {
				return nil, err
			}
		}
		name, err := p.s.Expect(token.Ident)
		if err != nil {
			return nil, err
		}
		if _, err := p.s.ExpectSymbol(":"); err != nil {
			return nil, err
		}
		typ, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: name.Text, Type: typ, Pos: name.Position()})
	}
	if _, err := p.s.ExpectSymbol(")"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseOptionalResult() (*ast.TypeRef, error) {
	if _, err := p.s.ExpectSymbol(":"); err != nil {
		return nil, nil
	}
	typ, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}
	return &typ, nil
}

func (p *Parser) parseClass() (*ast.ClassDecl, error) {
	start, err := p.s.ExpectKeyword("class")
	if err != nil {
		return nil, err
	}
	name, err := p.s.Expect(token.Ident)
	if err != nil {
		return nil, err
	}

	cd := &ast.ClassDecl{Name: name.Text, Pos: start.Position()}

	if _, err := p.s.ExpectKeyword("extends"); err == nil {
		super, err := p.s.Expect(token.Ident)
		if err != nil {
			return nil, err
		}
		cd.SuperClass = super.Text
	}

	if _, err := p.s.ExpectSymbol("{"); err != nil {
		return nil, err
	}
	for !p.atSymbol("}") {
		if _, err := p.s.ExpectKeyword("constructor"); err == nil {
			params, err := p.parseParamList()
			if err != nil {
				return nil, err
			}
			body, err := p.parseBlockBody()
			if err != nil {
				return nil, err
			}
			cd.Constructor = &ast.FunctionDecl{Name: "constructor", Params: params, Body: body, Pos: name.Position()}
			continue
		}

		member, err := p.s.Expect(token.Ident)
		if err != nil {
			return nil, err
		}
		if p.atSymbol("(") {
			params, err := p.parseParamList()
			if err != nil {
				return nil, err
			}
			result, err := p.parseOptionalResult()
			if err != nil {
				return nil, err
			}
			body, err := p.parseBlockBody()
			if err != nil {
				return nil, err
			}
			cd.Methods = append(cd.Methods, &ast.FunctionDecl{
				Name: member.Text, Params: params, Result: result, Body: body, Pos: member.Position(),
			})
			continue
		}

		if _, err := p.s.ExpectSymbol(":"); err != nil {
			return nil, err
		}
		typ, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		var init ast.Expression
		if _, err := p.s.ExpectSymbol("="); err == nil {
			init, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		}
		if err := p.consumeEOL(member.Line); err != nil {
			return nil, err
		}
		cd.Fields = append(cd.Fields, ast.FieldDecl{Name: member.Text, Type: typ, Init: init, Pos: member.Position()})
	}
	if _, err := p.s.ExpectSymbol("}"); err != nil {
		return nil, err
	}
	return cd, nil
}
