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
	"strings"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/ast"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/token"
)

// Generate renders module as Verilog-2005-subset source text under opts.
// comments is the lexer's separate comment stream (token.Result.Comments);
// pass nil when opts.PreserveComments is false or comments were not kept.
// The emitted text satisfies the round-trip correctness contract of
// spec.md §4.3: re-lexing and re-parsing it reconstructs a structurally
// equal AST.
func Generate(module *ast.Module, opts Options, comments []token.Token) string {
	p := newPrinter(opts, comments)

	p.writeModuleHeader(module)

	p.level++

	wroteDecls := p.writeDeclarations(module)
	if wroteDecls {
		p.blank()
	}

	for _, a := range module.Assigns {
		p.writeContinuousAssign(a)
	}

	if len(module.Assigns) > 0 {
		p.blank()
	}

	for _, init := range module.Initial {
		p.writeCommentAbove(init.Span().Start.Line)
		p.line("initial")
		p.writeStatement(init)
		p.blank()
	}

	for _, a := range module.Always {
		p.writeAlways(a)
		p.blank()
	}

	for _, inst := range module.Instances {
		p.writeInstance(inst)
	}

	p.level--
	p.line("endmodule")

	return p.String()
}

func (p *printer) writeModuleHeader(m *ast.Module) {
	p.writeCommentAbove(m.Loc.Start.Line)

	if len(m.Ports) == 0 {
		p.line("module " + m.Name + ";")
		return
	}

	p.line("module " + m.Name + " (")

	p.level++

	nameWidth := 0
	if p.opts.AlignPorts {
		nameWidth = maxPortNameWidth(m.Ports)
	}

	for i, port := range m.Ports {
		trailing := ","
		if i == len(m.Ports)-1 {
			trailing = ""
		}

		p.line(portText(*port, nameWidth) + trailing)
	}

	p.level--
	p.line(");")
}

func maxPortNameWidth(ports []*ast.PortDeclaration) int {
	w := 0
	for _, port := range ports {
		if len(port.Name) > w {
			w = len(port.Name)
		}
	}

	return w
}

func portText(port ast.PortDeclaration, nameWidth int) string {
	var b strings.Builder

	b.WriteString(port.Direction.String())
	b.WriteString(" ")

	if port.Storage == ast.StorageReg {
		b.WriteString("reg ")
	}

	if port.Range != nil {
		b.WriteString("[")
		b.WriteString(exprText(port.Range.Msb, Options{}))
		b.WriteString(":")
		b.WriteString(exprText(port.Range.Lsb, Options{}))
		b.WriteString("] ")
	}

	if nameWidth > 0 {
		b.WriteString(port.Name)
		b.WriteString(strings.Repeat(" ", nameWidth-len(port.Name)))
	} else {
		b.WriteString(port.Name)
	}

	return b.String()
}

// writeDeclarations renders every wire/reg/integer/parameter/localparam
// declaration and reports whether anything was written (spec.md §4.3:
// "blank line after declarations").
func (p *printer) writeDeclarations(m *ast.Module) bool {
	all := append(append([]*ast.Declaration{}, m.Parameters...), m.Declarations...)
	if len(all) == 0 {
		return false
	}

	nameWidth := 0
	if p.opts.AlignDeclarations {
		for _, d := range all {
			for _, n := range d.Names {
				if len(n) > nameWidth {
					nameWidth = len(n)
				}
			}
		}
	}

	for _, d := range all {
		p.writeCommentAbove(d.Loc.Start.Line)
		p.line(declText(p.opts, d, nameWidth))
	}

	return true
}

func declText(opts Options, d *ast.Declaration, nameWidth int) string {
	var b strings.Builder

	b.WriteString(d.Kind.String())
	b.WriteString(" ")

	if d.Range != nil {
		b.WriteString("[")
		b.WriteString(exprText(d.Range.Msb, opts))
		b.WriteString(":")
		b.WriteString(exprText(d.Range.Lsb, opts))
		b.WriteString("] ")
	}

	names := d.Names
	if nameWidth > 0 && len(names) == 1 {
		b.WriteString(names[0])
		b.WriteString(strings.Repeat(" ", nameWidth-len(names[0])))
	} else {
		b.WriteString(strings.Join(names, ", "))
	}

	if d.ArrayRange != nil {
		b.WriteString(" [")
		b.WriteString(exprText(d.ArrayRange.Msb, opts))
		b.WriteString(":")
		b.WriteString(exprText(d.ArrayRange.Lsb, opts))
		b.WriteString("]")
	}

	if d.Value != nil {
		b.WriteString(" = ")
		b.WriteString(exprText(d.Value, opts))
	}

	b.WriteString(";")

	return b.String()
}

func (p *printer) writeAlways(a *ast.AlwaysBlock) {
	p.writeCommentAbove(a.Loc.Start.Line)
	p.raw(p.indent())
	p.raw("always @(")

	if a.Star {
		p.raw("*")
	} else {
		for i, s := range a.Sensitivity {
			if i > 0 {
				p.raw(" or ")
			}

			if s.Edge != ast.NoEdge {
				p.raw(s.Edge.String() + " ")
			}

			p.raw(s.Signal)
		}
	}

	p.raw(")")
	p.b.WriteString("\n")
	p.writeStatement(a.Body)
}

func (p *printer) writeInstance(inst *ast.Instance) {
	p.writeCommentAbove(inst.Loc.Start.Line)
	p.raw(p.indent())
	p.raw(inst.ModuleName + " " + inst.InstanceName + " (" + inst.RawPorts + ");")
	p.b.WriteString("\n")
}
