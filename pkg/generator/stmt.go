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

import "github.com/Cirkitly/rtl-copilot-sub000/pkg/ast"

// writeStatement renders stmt at the current indentation level.
func (p *printer) writeStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Assignment:
		p.writeCommentAbove(s.Loc.Start.Line)
		p.line(assignmentText(p.opts, s))
	case *ast.If:
		p.writeIf(s)
	case *ast.CaseStatement:
		p.writeCase(s)
	case *ast.BeginEnd:
		p.writeBeginEnd(s)
	case *ast.ContinuousAssignStatement:
		p.writeCommentAbove(s.Assign.Loc.Start.Line)
		p.writeContinuousAssign(s.Assign)
	}
}

func assignmentText(opts Options, a *ast.Assignment) string {
	p := newPrinter(opts, nil)
	p.writeExpr(a.Lhs, 0)
	p.raw(" " + a.Op.String() + " ")
	p.writeExpr(a.Rhs, 0)
	p.raw(";")

	return p.String()
}

func (p *printer) writeBeginEnd(b *ast.BeginEnd) {
	p.line("begin")
	p.level++

	for _, s := range b.Body {
		p.writeStatement(s)
	}

	p.level--
	p.line("end")
}

// writeIf renders an if/else chain.  Each arm is rendered exactly as its AST
// shape dictates: a *ast.BeginEnd arm keeps its own begin/end, a bare
// single-statement arm is emitted with no synthesized wrapper, so that
// re-parsing the output reconstructs the same tree (spec.md §4.3 round-trip
// contract) -- only a BeginEnd node may legally own a begin/end pair.  An
// "else if" chain (Else itself an *ast.If, however it was spelled in the
// original source) is collapsed onto the "end else if (...)" / "else if
// (...)" line rather than nested on a fresh line (spec.md §4.3 layout rule).
func (p *printer) writeIf(s *ast.If) {
	p.writeCommentAbove(s.Loc.Start.Line)
	p.raw(p.indent())
	p.raw("if (")
	p.writeExpr(s.Cond, 0)
	p.raw(")")

	open := p.writeIfBody(s.Then)

	for s.Else != nil {
		if open {
			p.raw(p.indent())
			p.raw("end else")
		} else {
			p.raw(p.indent())
			p.raw("else")
		}

		if nested, ok := s.Else.(*ast.If); ok {
			p.raw(" if (")
			p.writeExpr(nested.Cond, 0)
			p.raw(")")
			open = p.writeIfBody(nested.Then)
			s = nested

			continue
		}

		open = p.writeIfBody(s.Else)

		break
	}

	if open {
		p.line("end")
	}
}

// writeIfBody renders one if/else arm's body and reports whether it opened a
// "begin" that the caller must eventually close with "end".
func (p *printer) writeIfBody(stmt ast.Statement) bool {
	if be, ok := stmt.(*ast.BeginEnd); ok {
		p.raw(" begin")
		p.b.WriteString("\n")
		p.level++

		for _, st := range be.Body {
			p.writeStatement(st)
		}

		p.level--

		return true
	}

	p.b.WriteString("\n")
	p.level++
	p.writeStatement(stmt)
	p.level--

	return false
}

func (p *printer) writeCase(c *ast.CaseStatement) {
	p.writeCommentAbove(c.Loc.Start.Line)
	p.raw(p.indent())
	p.raw(c.Kind.String())
	p.raw(" (")
	p.writeExpr(c.Selector, 0)
	p.raw(")")
	p.b.WriteString("\n")

	p.level++

	for _, item := range c.Items {
		p.writeCaseItem(item)
	}

	p.level--
	p.line("endcase")
}

func (p *printer) writeCaseItem(item ast.CaseItem) {
	p.raw(p.indent())

	if item.Default {
		p.raw("default")
	} else {
		for i, v := range item.Values {
			if i > 0 {
				p.raw(", ")
			}

			p.writeExpr(v, 0)
		}
	}

	p.raw(": ")

	switch len(item.Body) {
	case 0:
		p.raw(";")
		p.b.WriteString("\n")
	case 1:
		if inline, ok := inlineStatementText(p.opts, item.Body[0]); ok {
			p.raw(inline)
			p.b.WriteString("\n")

			return
		}

		fallthrough
	default:
		p.b.WriteString("\n")
		p.level++
		p.line("begin")

		for _, s := range item.Body {
			p.writeStatement(s)
		}

		p.line("end")
		p.level--
	}
}

// inlineStatementText renders a single simple statement (an assignment) as
// text with no leading indentation, for placement directly after a case
// item's "value:" on the same line.  Compound statements (if/case/begin-end)
// are not inlined and fall back to a begin/end block.
func inlineStatementText(opts Options, stmt ast.Statement) (string, bool) {
	switch s := stmt.(type) {
	case *ast.Assignment:
		return assignmentText(opts, s), true
	case *ast.ContinuousAssignStatement:
		p := newPrinter(opts, nil)
		p.raw("assign ")
		p.writeExpr(s.Assign.Lhs, 0)
		p.raw(" = ")
		p.writeExpr(s.Assign.Rhs, 0)
		p.raw(";")

		return p.String(), true
	default:
		return "", false
	}
}

func (p *printer) writeContinuousAssign(a *ast.ContinuousAssign) {
	p.raw(p.indent())
	p.raw("assign ")
	p.writeExpr(a.Lhs, 0)
	p.raw(" = ")
	p.writeExpr(a.Rhs, 0)
	p.raw(";")
	p.b.WriteString("\n")
}
