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
	"strconv"
	"strings"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/ast"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/token"
)

// Build walks cst (the result of ParseModules/Parse) and produces the typed
// ast.Module.  An unexpected CST shape panics with *ArityError: this is a
// parser-internal invariant violation, never a user-source error (spec.md
// §4.2 "Result", §7 "Internal invariant violation").
func Build(cst *CST) *ast.Module {
	if cst == nil || cst.Tag != TagModule {
		arityPanic(TagModule, "Build requires a TagModule root")
	}

	if len(cst.Tokens) != 1 {
		arityPanic(TagModule, "module node must carry exactly one name token")
	}

	m := &ast.Module{Name: cst.Tokens[0].Text, Loc: cst.Span}

	for _, p := range cst.kids("ports") {
		m.Ports = append(m.Ports, buildPort(p))
	}

	for _, item := range cst.kids("items") {
		switch item.Tag {
		case TagDecl:
			d := buildDecl(item)
			if d.Kind == ast.DeclParameter || d.Kind == ast.DeclLocalparam {
				m.Parameters = append(m.Parameters, d)
			} else {
				m.Declarations = append(m.Declarations, d)
			}
		case TagContinuousAssign:
			m.Assigns = append(m.Assigns, buildContinuousAssign(item))
		case TagAlways:
			m.Always = append(m.Always, buildAlways(item))
		case TagInitialBlock:
			if len(item.Children) != 1 {
				arityPanic(TagInitialBlock, "initial block must carry exactly one body")
			}

			m.Initial = append(m.Initial, buildStatement(item.Children[0]))
		case TagInstance:
			m.Instances = append(m.Instances, buildInstance(item))
		default:
			arityPanic(item.Tag, "unexpected module item tag")
		}
	}

	return m
}

func buildPort(c *CST) *ast.PortDeclaration {
	if c.Tag != TagPort || len(c.Tokens) < 2 {
		arityPanic(TagPort, "port node requires a direction and a name token")
	}

	dirTok := c.Tokens[0]
	nameTok := c.Tokens[len(c.Tokens)-1]

	p := &ast.PortDeclaration{Direction: dirFromToken(dirTok.Kind), Name: nameTok.Text, Loc: c.Span}

	if len(c.Tokens) == 3 {
		p.Storage = storageFromToken(c.Tokens[1].Kind)
	}

	if len(c.Children) == 1 && c.Children[0] != nil {
		p.Range = buildRange(c.Children[0])
	}

	return p
}

func buildRange(c *CST) *ast.Range {
	if c == nil {
		return nil
	}

	if c.Tag != TagRange || len(c.Children) != 2 {
		arityPanic(TagRange, "range node requires exactly two child expressions")
	}

	return &ast.Range{Msb: buildExpr(c.Children[0]), Lsb: buildExpr(c.Children[1]), Loc: c.Span}
}

func buildDecl(c *CST) *ast.Declaration {
	if c.Tag != TagDecl || len(c.Tokens) < 1 {
		arityPanic(TagDecl, "declaration node requires a kind token")
	}

	d := &ast.Declaration{Kind: declKindFromToken(c.Tokens[0].Kind), Loc: c.Span}

	for _, t := range c.Tokens[1:] {
		d.Names = append(d.Names, t.Text)
	}

	if len(c.Children) != 3 {
		arityPanic(TagDecl, "declaration node requires exactly three optional children")
	}

	d.Range = buildRange(c.Children[0])
	d.ArrayRange = buildRange(c.Children[1])

	if c.Children[2] != nil {
		d.Value = buildExpr(c.Children[2])
	}

	return d
}

func buildContinuousAssign(c *CST) *ast.ContinuousAssign {
	if c.Tag != TagContinuousAssign || len(c.Children) != 2 {
		arityPanic(TagContinuousAssign, "continuous-assign node requires lhs and rhs")
	}

	return &ast.ContinuousAssign{Lhs: buildExpr(c.Children[0]), Rhs: buildExpr(c.Children[1]), Loc: c.Span}
}

func buildInstance(c *CST) *ast.Instance {
	if c.Tag != TagInstance || len(c.Tokens) != 2 {
		arityPanic(TagInstance, "instance node requires module and instance name tokens")
	}

	return &ast.Instance{
		ModuleName:   c.Tokens[0].Text,
		InstanceName: c.Tokens[1].Text,
		RawPorts:     strings.TrimSpace(c.Text),
		Loc:          c.Span,
	}
}

func buildAlways(c *CST) *ast.AlwaysBlock {
	if c.Tag != TagAlways || len(c.Children) != 1 {
		arityPanic(TagAlways, "always node requires exactly one body")
	}

	a := &ast.AlwaysBlock{Star: c.Flag, Loc: c.Span}

	for _, s := range c.kids("sensitivity") {
		a.Sensitivity = append(a.Sensitivity, buildSensItem(s))
	}

	a.Body = buildStatement(c.Children[0])

	if a.Star || !a.HasEdge() {
		a.Class = ast.Combinational
	} else {
		a.Class = ast.Sequential
	}

	return a
}

func buildSensItem(c *CST) ast.SensitivityItem {
	if c.Tag != TagSensItem || len(c.Tokens) == 0 {
		arityPanic(TagSensItem, "sensitivity item requires at least one token")
	}

	if len(c.Tokens) == 1 {
		return ast.SensitivityItem{Signal: c.Tokens[0].Text, Loc: c.Span}
	}

	edge := ast.Posedge
	if c.Tokens[0].Kind == token.NEGEDGE {
		edge = ast.Negedge
	}

	return ast.SensitivityItem{Signal: c.Tokens[1].Text, Edge: edge, Loc: c.Span}
}

func buildStatement(c *CST) ast.Statement {
	if c == nil {
		return nil
	}

	switch c.Tag {
	case TagAssign:
		if len(c.Tokens) != 1 || len(c.Children) != 2 {
			arityPanic(TagAssign, "assignment node requires one op token and two children")
		}

		op := ast.Blocking
		if c.Tokens[0].Kind == token.LE {
			op = ast.NonBlocking
		}

		return &ast.Assignment{Op: op, Lhs: buildExpr(c.Children[0]), Rhs: buildExpr(c.Children[1]), Loc: c.Span}
	case TagIf:
		if len(c.Children) != 3 {
			arityPanic(TagIf, "if node requires cond/then/else children")
		}

		return &ast.If{
			Cond: buildExpr(c.Children[0]),
			Then: buildStatement(c.Children[1]),
			Else: buildStatement(c.Children[2]),
			Loc:  c.Span,
		}
	case TagCase:
		return buildCase(c)
	case TagBeginEnd:
		be := &ast.BeginEnd{Loc: c.Span}
		for _, s := range c.kids("body") {
			be.Body = append(be.Body, buildStatement(s))
		}

		return be
	default:
		arityPanic(c.Tag, "unexpected statement tag")

		return nil
	}
}

func buildCase(c *CST) *ast.CaseStatement {
	if c.Tag != TagCase || len(c.Tokens) != 1 || len(c.Children) != 1 {
		arityPanic(TagCase, "case node requires a kind token and a selector")
	}

	cs := &ast.CaseStatement{Kind: caseKindFromToken(c.Tokens[0].Kind), Selector: buildExpr(c.Children[0]), Loc: c.Span}

	for _, it := range c.kids("items") {
		cs.Items = append(cs.Items, buildCaseItem(it))
	}

	return cs
}

func buildCaseItem(c *CST) ast.CaseItem {
	if c.Tag != TagCaseItem {
		arityPanic(TagCaseItem, "expected case-item tag")
	}

	item := ast.CaseItem{Default: c.Flag, Loc: c.Span}

	for _, v := range c.kids("values") {
		item.Values = append(item.Values, buildExpr(v))
	}

	for _, b := range c.kids("body") {
		item.Body = append(item.Body, buildStatement(b))
	}

	return item
}

// ===================================================================
// Expressions
// ===================================================================

func buildExpr(c *CST) ast.Expression {
	if c == nil {
		return nil
	}

	switch c.Tag {
	case TagExprIdent:
		if len(c.Tokens) != 1 {
			arityPanic(c.Tag, "identifier node requires exactly one token")
		}

		return &ast.Identifier{Name: c.Tokens[0].Text, Loc: c.Span}
	case TagExprNumber:
		if len(c.Tokens) != 1 {
			arityPanic(c.Tag, "number node requires exactly one token")
		}

		return buildNumber(c.Tokens[0])
	case TagExprBinary:
		if len(c.Tokens) != 1 || len(c.Children) != 2 {
			arityPanic(c.Tag, "binary node requires one operator and two operands")
		}

		return &ast.Binary{Op: binaryOpFromToken(c.Tokens[0].Kind), Left: buildExpr(c.Children[0]), Right: buildExpr(c.Children[1]), Loc: c.Span}
	case TagExprUnary:
		if len(c.Tokens) != 1 || len(c.Children) != 1 {
			arityPanic(c.Tag, "unary node requires one operator and one operand")
		}

		return &ast.Unary{Op: unaryOpFromToken(c.Tokens[0].Kind), Operand: buildExpr(c.Children[0]), Loc: c.Span}
	case TagExprTernary:
		if len(c.Children) != 3 {
			arityPanic(c.Tag, "ternary node requires three children")
		}

		return &ast.Ternary{Cond: buildExpr(c.Children[0]), Then: buildExpr(c.Children[1]), Else: buildExpr(c.Children[2]), Loc: c.Span}
	case TagExprConcat:
		concat := &ast.Concat{Loc: c.Span}
		for _, e := range c.kids("elements") {
			concat.Elements = append(concat.Elements, buildExpr(e))
		}

		return concat
	case TagExprReplication:
		if len(c.Children) != 1 {
			arityPanic(c.Tag, "replication node requires a count child")
		}

		rep := &ast.Replication{Count: buildExpr(c.Children[0]), Loc: c.Span}
		for _, e := range c.kids("elements") {
			rep.Elements = append(rep.Elements, buildExpr(e))
		}

		return rep
	case TagExprBitSelect:
		if len(c.Children) != 2 {
			arityPanic(c.Tag, "bit-select node requires signal and index")
		}

		return &ast.BitSelect{Signal: buildExpr(c.Children[0]), Index: buildExpr(c.Children[1]), Loc: c.Span}
	case TagExprRangeSelect:
		if len(c.Children) != 3 {
			arityPanic(c.Tag, "range-select node requires signal, msb and lsb")
		}

		return &ast.RangeSelect{Signal: buildExpr(c.Children[0]), Msb: buildExpr(c.Children[1]), Lsb: buildExpr(c.Children[2]), Loc: c.Span}
	default:
		arityPanic(c.Tag, "unexpected expression tag")

		return nil
	}
}

func buildNumber(t token.Token) *ast.Number {
	n := &ast.Number{Text: t.Text, Loc: t.Span}

	if t.Kind != token.NUMBER_SIZED {
		return n
	}

	n.Sized = true

	idx := strings.IndexByte(t.Text, '\'')
	if idx < 0 {
		return n
	}

	if w, err := strconv.Atoi(strings.ReplaceAll(t.Text[:idx], "_", "")); err == nil {
		n.Width = w
	}

	rest := t.Text[idx+1:]
	if len(rest) > 0 {
		n.Base = toLowerByte(rest[0])
	}

	return n
}

func toLowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}

	return b
}

// ===================================================================
// Token -> enum mappings
// ===================================================================

func dirFromToken(k token.Kind) ast.Direction {
	switch k {
	case token.OUTPUT:
		return ast.Output
	case token.INOUT:
		return ast.Inout
	default:
		return ast.Input
	}
}

func storageFromToken(k token.Kind) ast.StorageClass {
	if k == token.REG {
		return ast.StorageReg
	}

	return ast.StorageWire
}

func declKindFromToken(k token.Kind) ast.DeclKind {
	switch k {
	case token.REG:
		return ast.DeclReg
	case token.PARAMETER:
		return ast.DeclParameter
	case token.LOCALPARAM:
		return ast.DeclLocalparam
	case token.INTEGER:
		return ast.DeclInteger
	default:
		return ast.DeclWire
	}
}

func caseKindFromToken(k token.Kind) ast.CaseKind {
	switch k {
	case token.CASEX:
		return ast.Casex
	case token.CASEZ:
		return ast.Casez
	default:
		return ast.Case
	}
}

var binaryOpMap = map[token.Kind]ast.BinaryOp{
	token.OROR: ast.LogOr, token.ANDAND: ast.LogAnd,
	token.PIPE: ast.BitOr, token.CARET: ast.BitXor, token.AMP: ast.BitAnd,
	token.EQEQ: ast.Eq, token.NEQ: ast.Neq, token.CASEEQ: ast.CaseEq, token.CASENEQ: ast.CaseNeq,
	token.LT: ast.Lt, token.GT: ast.Gt, token.LE: ast.Le, token.GE: ast.Ge,
	token.SHL: ast.Shl, token.SHR: ast.Shr, token.ASHR: ast.Ashr,
	token.PLUS: ast.Add, token.MINUS: ast.Sub,
	token.STAR: ast.Mul, token.SLASH: ast.Div, token.PERCENT: ast.Mod, token.POW: ast.Exp,
}

func binaryOpFromToken(k token.Kind) ast.BinaryOp {
	if op, ok := binaryOpMap[k]; ok {
		return op
	}

	arityPanic(TagExprBinary, "unknown binary operator token")

	return 0
}

func unaryOpFromToken(k token.Kind) ast.UnaryOp {
	switch k {
	case token.BANG:
		return ast.LogNot
	case token.TILDE:
		return ast.BitNot
	case token.MINUS:
		return ast.Neg
	case token.PLUS:
		return ast.Pos
	default:
		arityPanic(TagExprUnary, "unknown unary operator token")

		return 0
	}
}
