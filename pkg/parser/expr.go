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

// precedence levels, lowest to highest, per spec.md §4.2.  Ternary and the
// assignment operators are handled outside this table (ternary by
// parseExpression itself; assignment only ever appears at statement level).
var precedenceLevels = [][]token.Kind{
	{token.OROR},
	{token.ANDAND},
	{token.PIPE},
	{token.CARET},
	{token.AMP},
	{token.EQEQ, token.NEQ, token.CASEEQ, token.CASENEQ},
	{token.LT, token.GT, token.GE}, // LE is handled specially: see note below
	{token.SHL, token.SHR, token.ASHR},
	{token.PLUS, token.MINUS},
	{token.STAR, token.SLASH, token.PERCENT},
}

// parseExpression parses a full expression, starting from the ternary level
// (spec.md §4.2: "ternary ? : (right-associative)" is the lowest-precedence
// operator).
func (p *Parser) parseExpression() *CST {
	cond := p.parseBinary(0)

	if p.at(token.QUESTION) {
		q := p.advance()
		then := p.parseExpression()
		p.expect(token.COLON)
		els := p.parseExpression()

		return &CST{Tag: TagExprTernary, Children: []*CST{cond, then, els}, Span: span(q, q)}
	}

	return cond
}

// parseBinary implements a standard precedence-climbing parser over
// precedenceLevels.  Relational '<=' is deliberately excluded from the
// table: inside an expression context it can only mean "less-than-or-equal"
// (the non-blocking-assignment reading only arises at statement level,
// where parseAssignStatement consumes it directly -- spec.md §4.2's
// "disambiguated by position").
func (p *Parser) parseBinary(level int) *CST {
	if level >= len(precedenceLevels) {
		return p.parseUnary()
	}

	left := p.parseBinary(level + 1)

	for {
		op, ok := p.matchLevel(level)
		if !ok {
			break
		}

		right := p.parseBinary(level + 1)
		left = &CST{Tag: TagExprBinary, Tokens: []token.Token{op}, Children: []*CST{left, right}, Span: span(op, op)}
	}

	return left
}

func (p *Parser) matchLevel(level int) (token.Token, bool) {
	// Relational level also accepts LE ("<=") when it is unambiguously an
	// operator -- i.e. whenever we are parsing inside an expression at all,
	// since the statement-level non-blocking form is consumed before this
	// function is ever called.
	for _, k := range precedenceLevels[level] {
		if p.at(k) {
			return p.advance(), true
		}
	}

	if level == 6 && p.at(token.LE) {
		return p.advance(), true
	}

	return token.Token{}, false
}

func (p *Parser) parseUnary() *CST {
	switch p.cur().Kind {
	case token.BANG, token.TILDE, token.MINUS, token.PLUS:
		op := p.advance()
		operand := p.parseUnary()

		return &CST{Tag: TagExprUnary, Tokens: []token.Token{op}, Children: []*CST{operand}, Span: span(op, op)}
	default:
		return p.parsePow()
	}
}

// parsePow handles the right-associative exponent operator "**", which sits
// between the multiplicative level and primary expressions (spec.md §6
// lists "**" among the supported operators without pinning its precedence;
// placing it tighter than unary/multiplicative and right-associative
// matches IEEE 1364's power operator).
func (p *Parser) parsePow() *CST {
	base := p.parsePrimary()

	if p.at(token.POW) {
		op := p.advance()
		exp := p.parseUnary()

		return &CST{Tag: TagExprBinary, Tokens: []token.Token{op}, Children: []*CST{base, exp}, Span: span(op, op)}
	}

	return base
}

func (p *Parser) parsePrimary() *CST {
	switch p.cur().Kind {
	case token.IDENT:
		return p.parseIdentOrSelect()
	case token.NUMBER_UNSIZED, token.NUMBER_SIZED:
		t := p.advance()

		return &CST{Tag: TagExprNumber, Tokens: []token.Token{t}, Span: t.Span}
	case token.LPAREN:
		p.advance()
		e := p.parseExpression()
		p.expect(token.RPAREN)

		return e
	case token.LBRACE:
		return p.parseBraceExpr()
	default:
		p.errorf(diag.CodeUnexpectedToken, "expected expression but found %s", p.cur().Kind)
		tok := p.advance()

		return &CST{Tag: TagExprIdent, Tokens: []token.Token{tok}, Span: tok.Span}
	}
}

func (p *Parser) parseIdentOrSelect() *CST {
	name := p.advance()

	base := &CST{Tag: TagExprIdent, Tokens: []token.Token{name}, Span: name.Span}

	if !p.at(token.LBRACK) {
		return base
	}

	lb := p.advance()
	first := p.parseExpression()

	if p.at(token.COLON) {
		p.advance()

		second := p.parseExpression()
		rb, _ := p.expect(token.RBRACK)

		return &CST{Tag: TagExprRangeSelect, Children: []*CST{base, first, second}, Span: span(lb, rb)}
	}

	rb, _ := p.expect(token.RBRACK)

	return &CST{Tag: TagExprBitSelect, Children: []*CST{base, first}, Span: span(lb, rb)}
}

// parseBraceExpr parses either a concatenation "{a, b}" or a replication
// "{count{a, b}}" (spec.md §3.1, §4.2).
func (p *Parser) parseBraceExpr() *CST {
	lb, _ := p.expect(token.LBRACE)

	first := p.parseExpression()

	if p.at(token.LBRACE) {
		// Replication: {count{elements}}.
		p.advance()

		elements := []*CST{p.parseExpression()}
		for p.at(token.COMMA) {
			p.advance()

			elements = append(elements, p.parseExpression())
		}

		p.expect(token.RBRACE)
		rb, _ := p.expect(token.RBRACE)

		return &CST{Tag: TagExprReplication, Children: []*CST{first}, Lists: map[string][]*CST{"elements": elements}, Span: span(lb, rb)}
	}

	elements := []*CST{first}
	for p.at(token.COMMA) {
		p.advance()

		elements = append(elements, p.parseExpression())
	}

	rb, _ := p.expect(token.RBRACE)

	return &CST{Tag: TagExprConcat, Lists: map[string][]*CST{"elements": elements}, Span: span(lb, rb)}
}
