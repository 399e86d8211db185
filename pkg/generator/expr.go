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
package generator

import (
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/ast"
)

// Precedence ranks used only to decide where the round-trip correctness
// contract (spec.md §4.3) requires parentheses around a Binary/Unary/Ternary
// operand so that re-parsing the emitted text reconstructs a structurally
// equal tree.  Ranks mirror pkg/parser/expr.go's precedenceLevels climb:
// higher rank binds tighter.  Every non-operator expression kind (Identifier,
// Number, Concat, Replication, BitSelect, RangeSelect) is "primary" and never
// needs parens, so it is given the highest rank.
const (
	rankTernary = 0
	rankPrefix  = 12 // unary operators and "**"
	rankPrimary = 13
)

var binaryLevel = map[ast.BinaryOp]int{
	ast.LogOr: 0, ast.LogAnd: 1,
	ast.BitOr: 2, ast.BitXor: 3, ast.BitAnd: 4,
	ast.Eq: 5, ast.Neq: 5, ast.CaseEq: 5, ast.CaseNeq: 5,
	ast.Lt: 6, ast.Gt: 6, ast.Ge: 6, ast.Le: 6,
	ast.Shl: 7, ast.Shr: 7, ast.Ashr: 7,
	ast.Add: 8, ast.Sub: 8,
	ast.Mul: 9, ast.Div: 9, ast.Mod: 9,
}

// exprRank returns e's precedence rank, used by writeExpr to decide whether
// a child needs parenthesizing.
func exprRank(e ast.Expression) int {
	switch x := e.(type) {
	case *ast.Ternary:
		return rankTernary
	case *ast.Binary:
		if x.Op == ast.Exp {
			return rankPrefix
		}

		return binaryLevel[x.Op] + 1
	case *ast.Unary:
		return rankPrefix
	default:
		return rankPrimary
	}
}

// writeExpr renders e, wrapping it in parentheses when its rank is lower
// than minRank (i.e. when omitting them would let re-parsing pick up a
// looser-binding outer operator than the original tree had).  Callers that
// sit in a grammar position which itself accepts a full expression
// (continuous-assign rhs, if-condition, case values, bit/range-select
// indices, concatenation/replication elements) pass minRank 0: the
// sub-grammar there is pkg/parser's full parseExpression, so no parens are
// ever structurally required.
func (p *printer) writeExpr(e ast.Expression, minRank int) {
	needsParens := exprRank(e) < minRank

	if needsParens {
		p.raw("(")
	}

	p.writeExprBare(e)

	if needsParens {
		p.raw(")")
	}
}

func (p *printer) writeExprBare(e ast.Expression) {
	switch x := e.(type) {
	case *ast.Identifier:
		p.raw(x.Name)
	case *ast.Number:
		p.raw(x.Text)
	case *ast.Binary:
		p.writeBinary(x)
	case *ast.Unary:
		p.raw(x.Op.String())
		p.writeExpr(x.Operand, rankPrefix)
	case *ast.Ternary:
		p.writeExpr(x.Cond, binaryLevel[ast.LogOr]+1)
		p.raw(" ? ")
		p.writeExpr(x.Then, rankTernary)
		p.raw(" : ")
		p.writeExpr(x.Else, rankTernary)
	case *ast.Concat:
		p.writeConcatElements(x.Elements)
	case *ast.Replication:
		p.raw("{")
		p.writeExpr(x.Count, 0)
		p.writeConcatElements(x.Elements)
		p.raw("}")
	case *ast.BitSelect:
		p.writeExpr(x.Signal, rankPrimary)
		p.raw("[")
		p.writeExpr(x.Index, 0)
		p.raw("]")
	case *ast.RangeSelect:
		p.writeExpr(x.Signal, rankPrimary)
		p.raw("[")
		p.writeExpr(x.Msb, 0)
		p.raw(":")
		p.writeExpr(x.Lsb, 0)
		p.raw("]")
	}
}

func (p *printer) writeBinary(x *ast.Binary) {
	level := binaryLevel[x.Op]

	if x.Op == ast.Exp {
		p.writeExpr(x.Left, rankPrimary)
		p.raw(x.Op.String())
		p.writeExpr(x.Right, rankPrefix)

		return
	}

	p.writeExpr(x.Left, level+1)
	p.raw(" " + x.Op.String() + " ")
	p.writeExpr(x.Right, level+2)
}

func (p *printer) writeConcatElements(elements []ast.Expression) {
	p.raw("{")

	for i, el := range elements {
		if i > 0 {
			p.raw(", ")
		}

		p.writeExpr(el, 0)
	}

	p.raw("}")
}

// exprText renders e as a standalone string with no parent context (used
// for parameter defaults and anywhere else a full expression stands alone).
func exprText(e ast.Expression, opts Options) string {
	p := newPrinter(opts, nil)
	p.writeExpr(e, 0)

	return p.String()
}

// ExprText renders e as a standalone Verilog expression string using opts'
// formatting (indent/line-width have no effect on a single expression). The
// FSM extractor (pkg/fsmbridge) uses this to turn an if-condition or a
// right-hand side into the plain-string form the FSM model stores.
func ExprText(e ast.Expression, opts Options) string {
	return exprText(e, opts)
}
