// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package parser

import (
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/diag"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/token"
)

// parseModule parses "module IDENT ( port-list ) { module-item } endmodule"
// (spec.md §4.2).  Returns nil when the 'module' keyword itself cannot be
// found, so the caller can recover by scanning to the next one.
func (p *Parser) parseModule() *CST {
	start, ok := p.expect(token.MODULE)
	if !ok {
		return nil
	}

	name, _ := p.expect(token.IDENT)

	var ports []*CST
	if p.at(token.LPAREN) {
		p.advance()
		ports = p.parsePortList()
		p.expect(token.RPAREN)
	}

	p.expect(token.SEMI)

	var items []*CST

	for !p.at(token.ENDMODULE) && !p.at(token.EOF) {
		item := p.parseModuleItem()
		if item != nil {
			items = append(items, item)
		} else {
			p.errorf(diag.CodeUnexpectedToken, "unexpected token %s in module body", p.cur().Kind)
			p.skipStatement()
		}
	}

	end := p.cur()
	p.expect(token.ENDMODULE)

	return &CST{
		Tag:    TagModule,
		Tokens: []token.Token{name},
		Lists:  map[string][]*CST{"ports": ports, "items": items},
		Span:   span(start, end),
	}
}

func (p *Parser) parsePortList() []*CST {
	var ports []*CST

	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		port := p.parsePort()
		if port != nil {
			ports = append(ports, port)
		}

		if p.at(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}

	return ports
}

func (p *Parser) parsePort() *CST {
	var dir token.Token

	switch p.cur().Kind {
	case token.INPUT, token.OUTPUT, token.INOUT:
		dir = p.advance()
	default:
		p.errorf(diag.CodeUnexpectedToken, "expected input/output/inout but found %s", p.cur().Kind)

		return nil
	}

	toks := []token.Token{dir}

	if p.at(token.WIRE) || p.at(token.REG) {
		toks = append(toks, p.advance())
	}

	var rng *CST
	if p.at(token.LBRACK) {
		rng = p.parseRange()
	}

	name, ok := p.expect(token.IDENT)
	if !ok {
		return nil
	}

	toks = append(toks, name)

	return &CST{
		Tag:      TagPort,
		Tokens:   toks,
		Children: []*CST{rng},
		Span:     span(dir, name),
	}
}

func (p *Parser) parseRange() *CST {
	start, _ := p.expect(token.LBRACK)
	msb := p.parseExpression()
	p.expect(token.COLON)
	lsb := p.parseExpression()
	end, _ := p.expect(token.RBRACK)

	return &CST{Tag: TagRange, Children: []*CST{msb, lsb}, Span: span(start, end)}
}

// parseModuleItem parses one of: wire/reg/integer/parameter/localparam
// declaration, continuous assign, always block, initial block, or submodule
// instance (spec.md §4.2).
func (p *Parser) parseModuleItem() *CST {
	switch p.cur().Kind {
	case token.WIRE, token.REG, token.INTEGER, token.PARAMETER, token.LOCALPARAM:
		return p.parseDeclaration()
	case token.ASSIGN:
		return p.parseContinuousAssign()
	case token.ALWAYS:
		return p.parseAlways()
	case token.INITIAL:
		return p.parseInitial()
	case token.IDENT:
		return p.parseInstance()
	default:
		return nil
	}
}

func (p *Parser) parseDeclaration() *CST {
	kind := p.advance()

	var rng *CST
	if p.at(token.LBRACK) {
		rng = p.parseRange()
	}

	names := []token.Token{kind}
	endTok := kind

	var value *CST

	var arrayRange *CST

	switch kind.Kind {
	case token.PARAMETER, token.LOCALPARAM:
		name, _ := p.expect(token.IDENT)
		names = append(names, name)
		endTok = name

		if _, ok := p.expect(token.EQUALS); ok {
			value = p.parseExpression()
			endTok = p.cur()
		}
	default:
		for {
			name, ok := p.expect(token.IDENT)
			if !ok {
				break
			}

			names = append(names, name)
			endTok = name

			if kind.Kind == token.REG && p.at(token.LBRACK) {
				arrayRange = p.parseRange()
			}

			if p.at(token.COMMA) {
				p.advance()
				continue
			}

			break
		}
	}

	semi, _ := p.expect(token.SEMI)
	if semi.Kind == token.SEMI {
		endTok = semi
	}

	return &CST{
		Tag:      TagDecl,
		Tokens:   names,
		Children: []*CST{rng, arrayRange, value},
		Span:     span(kind, endTok),
	}
}

func (p *Parser) parseContinuousAssign() *CST {
	start, _ := p.expect(token.ASSIGN)
	lhs := p.parseExpression()
	p.expect(token.EQUALS)
	rhs := p.parseExpression()
	end, _ := p.expect(token.SEMI)

	return &CST{Tag: TagContinuousAssign, Children: []*CST{lhs, rhs}, Span: span(start, end)}
}

func (p *Parser) parseInstance() *CST {
	modName, _ := p.expect(token.IDENT)
	instName, _ := p.expect(token.IDENT)
	p.expect(token.LPAREN)

	startRaw := p.pos

	depth := 1
	for depth > 0 && !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--

			if depth == 0 {
				continue
			}
		}

		p.advance()
	}

	var raw string
	for _, t := range p.toks[startRaw:p.pos] {
		raw += t.Text + " "
	}

	end, _ := p.expect(token.RPAREN)
	semi, _ := p.expect(token.SEMI)

	if semi.Kind == token.SEMI {
		end = semi
	}

	return &CST{
		Tag:    TagInstance,
		Tokens: []token.Token{modName, instName},
		Text:   raw,
		Span:   span(modName, end),
	}
}

func (p *Parser) parseAlways() *CST {
	start, _ := p.expect(token.ALWAYS)
	p.expect(token.AT)
	p.expect(token.LPAREN)

	star := false

	var sens []*CST

	if p.at(token.STAR) {
		star = true
		p.advance()
	} else {
		for {
			item := p.parseSensItem()
			if item == nil {
				break
			}

			sens = append(sens, item)

			if p.at(token.OR) || p.at(token.COMMA) {
				p.advance()
				continue
			}

			break
		}
	}

	p.expect(token.RPAREN)

	body := p.parseStatement()
	end := p.lastSpanToken()

	return &CST{
		Tag:      TagAlways,
		Flag:     star,
		Children: []*CST{body},
		Lists:    map[string][]*CST{"sensitivity": sens},
		Span:     span(start, end),
	}
}

func (p *Parser) parseSensItem() *CST {
	var edge token.Token

	switch p.cur().Kind {
	case token.POSEDGE, token.NEGEDGE:
		edge = p.advance()
	}

	if !p.at(token.IDENT) {
		return nil
	}

	sig := p.advance()

	toks := []token.Token{sig}
	if edge.Kind == token.POSEDGE || edge.Kind == token.NEGEDGE {
		toks = []token.Token{edge, sig}
	}

	return &CST{Tag: TagSensItem, Tokens: toks, Span: span(sig, sig)}
}

func (p *Parser) parseInitial() *CST {
	start, _ := p.expect(token.INITIAL)
	body := p.parseStatement()
	end := p.lastSpanToken()

	return &CST{Tag: TagInitialBlock, Children: []*CST{body}, Span: span(start, end)}
}

// ===================================================================
// Statements
// ===================================================================

func (p *Parser) parseStatement() *CST {
	switch p.cur().Kind {
	case token.BEGIN:
		return p.parseBeginEnd()
	case token.IF:
		return p.parseIf()
	case token.CASE, token.CASEX, token.CASEZ:
		return p.parseCase()
	case token.IDENT:
		return p.parseAssignStatement()
	default:
		p.errorf(diag.CodeUnexpectedToken, "expected statement but found %s", p.cur().Kind)
		p.skipStatement()

		return nil
	}
}

func (p *Parser) parseBeginEnd() *CST {
	start, _ := p.expect(token.BEGIN)

	var body []*CST
	for !p.at(token.END) && !p.at(token.EOF) {
		s := p.parseStatement()
		if s != nil {
			body = append(body, s)
		}
	}

	end, _ := p.expect(token.END)

	return &CST{Tag: TagBeginEnd, Lists: map[string][]*CST{"body": body}, Span: span(start, end)}
}

func (p *Parser) parseIf() *CST {
	start, _ := p.expect(token.IF)
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)

	then := p.parseStatement()

	var els *CST
	if p.at(token.ELSE) {
		p.advance()
		els = p.parseStatement()
	}

	end := p.lastSpanToken()

	return &CST{Tag: TagIf, Children: []*CST{cond, then, els}, Span: span(start, end)}
}

func (p *Parser) parseCase() *CST {
	kind := p.advance() // case|casex|casez
	p.expect(token.LPAREN)
	sel := p.parseExpression()
	p.expect(token.RPAREN)

	var items []*CST
	for !p.at(token.ENDCASE) && !p.at(token.EOF) {
		item := p.parseCaseItem()
		if item != nil {
			items = append(items, item)
		} else {
			break
		}
	}

	end, _ := p.expect(token.ENDCASE)

	return &CST{
		Tag:      TagCase,
		Tokens:   []token.Token{kind},
		Children: []*CST{sel},
		Lists:    map[string][]*CST{"items": items},
		Span:     span(kind, end),
	}
}

func (p *Parser) parseCaseItem() *CST {
	isDefault := false

	var values []*CST

	start := p.cur()

	if p.at(token.DEFAULT) {
		isDefault = true
		p.advance()
	} else {
		for {
			values = append(values, p.parseExpression())

			if p.at(token.COMMA) {
				p.advance()
				continue
			}

			break
		}
	}

	p.expect(token.COLON)

	body := p.parseCaseItemBody()
	end := p.lastSpanToken()

	return &CST{
		Tag:   TagCaseItem,
		Flag:  isDefault,
		Lists: map[string][]*CST{"values": values, "body": body},
		Span:  span(start, end),
	}
}

func (p *Parser) parseCaseItemBody() []*CST {
	if p.at(token.BEGIN) {
		be := p.parseBeginEnd()

		return be.kids("body")
	}

	s := p.parseStatement()
	if s == nil {
		return nil
	}

	return []*CST{s}
}

func (p *Parser) parseAssignStatement() *CST {
	// The target is a primary (identifier or select), so a following '<='
	// is read here as the non-blocking operator, never as a relational one.
	lhs := p.parsePrimary()

	var op token.Token

	switch p.cur().Kind {
	case token.EQUALS, token.LE:
		op = p.advance()
	default:
		p.errorf(diag.CodeUnexpectedToken, "expected assignment operator but found %s", p.cur().Kind)
		p.skipStatement()

		return nil
	}

	rhs := p.parseExpression()
	end, _ := p.expect(token.SEMI)

	return &CST{
		Tag:      TagAssign,
		Tokens:   []token.Token{op},
		Children: []*CST{lhs, rhs},
		Span:     span(op, end),
	}
}

// lastSpanToken returns a synthetic zero-width token at the current (or
// previous) position, used to close a Span when the exact closing token was
// already consumed by a nested production.
func (p *Parser) lastSpanToken() token.Token {
	if p.pos == 0 {
		return p.cur()
	}

	return p.toks[p.pos-1]
}
