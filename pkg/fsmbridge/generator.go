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
package fsmbridge

import (
	"fmt"
	"strings"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/fsm"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/generator"
)

const (
	stateRegName = "current_state"
	nextRegName  = "next_state"
)

// GenError is returned by Generate when f cannot be rendered (spec.md §4.10
// "Errors").
type GenError struct {
	Reason string
}

func (e *GenError) Error() string { return e.Reason }

// GenOptions configures FSM Verilog generation (spec.md §4.10).
type GenOptions struct {
	// Comment is an optional banner emitted as a line comment above the
	// module header.
	Comment string
	// SyncReset selects "always @(posedge clock)" with the reset checked
	// inside the sequential block, instead of an async reset edge in the
	// sensitivity list.
	SyncReset bool
	// Style controls indentation; zero value is generator.DefaultOptions().
	Style generator.Options
}

// Generate renders f as a complete synthesizable Verilog module (spec.md
// §4.10).
func Generate(f *fsm.FSM, opts GenOptions) (string, error) {
	if f.InitialState() == nil {
		return "", &GenError{Reason: "FSM has no initial state"}
	}

	encoded := fsm.Encode(f.Encoding, f.States)
	if len(encoded) == 0 {
		return "", &GenError{Reason: "FSM has no states to encode"}
	}

	style := opts.Style
	if style.IndentSize == 0 && style.IndentChar == 0 {
		style = generator.DefaultOptions()
	}

	valueByID := make(map[string]string, len(encoded))
	for _, e := range encoded {
		valueByID[e.StateID] = e.Value
	}

	width := encoded[0].Width

	g := &genWriter{opts: style, width: width}

	if opts.Comment != "" {
		g.line("// " + opts.Comment)
	}

	g.writeHeader(f)
	g.level++
	g.writeStateParams(f, valueByID)
	g.blank()
	g.writeStateRegs()
	g.blank()
	g.writeSequentialBlock(f, opts.SyncReset)
	g.blank()
	g.writeNextStateLogic(f)

	if len(f.Outputs) > 0 {
		g.blank()
		g.writeOutputLogic(f)
	}

	g.level--
	g.line("endmodule")

	return g.b.String(), nil
}

// genWriter is a small indentation-aware text builder, grounded on
// pkg/generator's own printer but kept private to this package since the
// FSM bridge renders conditions as already-flattened strings rather than AST
// nodes.
type genWriter struct {
	b     strings.Builder
	opts  generator.Options
	level int
	width int
}

func (g *genWriter) indent() string {
	return strings.Repeat(string(g.opts.IndentChar), g.opts.IndentSize*g.level)
}

func (g *genWriter) line(s string) {
	if s == "" {
		g.b.WriteString("\n")
		return
	}

	g.b.WriteString(g.indent())
	g.b.WriteString(s)
	g.b.WriteString("\n")
}

func (g *genWriter) blank() { g.b.WriteString("\n") }

func (g *genWriter) writeHeader(f *fsm.FSM) {
	g.line("module " + f.ModuleName + " (")
	g.level++

	ports := headerPorts(f)
	for i, p := range ports {
		trailing := ","
		if i == len(ports)-1 {
			trailing = ""
		}

		g.line(p + trailing)
	}

	g.level--
	g.line(");")
}

func headerPorts(f *fsm.FSM) []string {
	ports := []string{"input " + f.ClockSignal, "input " + f.ResetSignal}

	for _, s := range f.Inputs {
		ports = append(ports, "input wire "+widthPrefix(s.Width)+s.Name)
	}

	for _, s := range f.Outputs {
		ports = append(ports, "output reg "+widthPrefix(s.Width)+s.Name)
	}

	return ports
}

func widthPrefix(width int) string {
	if width <= 1 {
		return ""
	}

	return fmt.Sprintf("[%d:0] ", width-1)
}

func (g *genWriter) writeStateParams(f *fsm.FSM, valueByID map[string]string) {
	for _, s := range f.States {
		g.line(fmt.Sprintf("localparam [%d:0] %s = %d'b%s;", g.width-1, s.Name, g.width, valueByID[s.ID]))
	}
}

func (g *genWriter) writeStateRegs() {
	g.line(fmt.Sprintf("reg [%d:0] %s;", g.width-1, stateRegName))
	g.line(fmt.Sprintf("reg [%d:0] %s;", g.width-1, nextRegName))
}

func (g *genWriter) writeSequentialBlock(f *fsm.FSM, syncReset bool) {
	initial := f.InitialState().Name

	if syncReset {
		g.line("always @(posedge " + f.ClockSignal + ") begin")
	} else {
		edge := "posedge"
		if f.ResetPolarity == fsm.ResetLow {
			edge = "negedge"
		}

		g.line("always @(posedge " + f.ClockSignal + " or " + edge + " " + f.ResetSignal + ") begin")
	}

	g.level++

	g.line("if (" + resetCondition(f) + ")")
	g.level++
	g.line(stateRegName + " <= " + initial + ";")
	g.level--
	g.line("else")
	g.level++
	g.line(stateRegName + " <= " + nextRegName + ";")
	g.level--

	g.level--
	g.line("end")
}

func resetCondition(f *fsm.FSM) string {
	if f.ResetPolarity == fsm.ResetLow {
		return "!" + f.ResetSignal
	}

	return f.ResetSignal
}

func (g *genWriter) writeNextStateLogic(f *fsm.FSM) {
	initial := f.InitialState().Name

	g.line("always @(*) begin")
	g.level++

	g.line(nextRegName + " = " + stateRegName + ";")
	g.line("case (" + stateRegName + ")")
	g.level++

	for _, s := range f.States {
		trans := f.TransitionsFrom(s.ID)
		if len(trans) == 0 {
			g.line(s.Name + ": ;")
			continue
		}

		g.line(s.Name + ": begin")
		g.level++
		g.writeTransitionChain(f, trans, 0)
		g.level--
		g.line("end")
	}

	g.line("default: " + nextRegName + " = " + initial + ";")

	g.level--
	g.line("endcase")

	g.level--
	g.line("end")
}

// writeTransitionChain renders trans[i:] as an if/else-if chain; a
// transition carrying the sentinel unconditional condition is emitted with
// no "if" (spec.md §4.10 step 6): as a bare assignment when it comes first,
// otherwise as the chain's final "else".  Anything ordered after it within
// the same state is unreachable so it is skipped.
func (g *genWriter) writeTransitionChain(f *fsm.FSM, trans []fsm.Transition, i int) {
	if i >= len(trans) {
		return
	}

	t := trans[i]

	to := f.StateByID(t.To)
	if to == nil {
		return
	}

	assign := nextRegName + " = " + to.Name + ";"

	if t.Condition == fsm.UnconditionalCondition {
		if i > 0 {
			g.line("else")
			g.level++
			g.line(assign)
			g.level--

			return
		}

		g.line(assign)
		return
	}

	if i == 0 {
		g.line("if (" + t.Condition + ")")
	} else {
		g.line("else if (" + t.Condition + ")")
	}

	g.level++
	g.line(assign)
	g.level--

	g.writeTransitionChain(f, trans, i+1)
}

func (g *genWriter) writeOutputLogic(f *fsm.FSM) {
	g.line("always @(*) begin")
	g.level++

	for _, s := range f.Outputs {
		def := s.Default
		if def == "" {
			def = "1'b0"
		}

		g.line(s.Name + " = " + def + ";")
	}

	g.line("case (" + stateRegName + ")")
	g.level++

	for _, s := range f.States {
		if len(s.Outputs) == 0 {
			continue
		}

		if len(s.Outputs) == 1 {
			g.line(s.Name + ": " + s.Outputs[0].Signal + " = " + s.Outputs[0].Value + ";")
			continue
		}

		g.line(s.Name + ": begin")
		g.level++

		for _, o := range s.Outputs {
			g.line(o.Signal + " = " + o.Value + ";")
		}

		g.level--
		g.line("end")
	}

	g.level--
	g.line("endcase")

	for _, t := range transitionsWithActions(f) {
		g.line("if (" + stateRegName + " == " + mustStateName(f, t.From) + " && (" + t.Condition + ")) begin")
		g.level++

		for _, a := range t.Actions {
			g.line(a.Signal + " = " + a.Value + ";")
		}

		g.level--
		g.line("end")
	}

	g.level--
	g.line("end")
}

// transitionsWithActions returns every transition carrying at least one
// Mealy output assignment, in declaration order (spec.md §4.10 step 7).
func transitionsWithActions(f *fsm.FSM) []fsm.Transition {
	var out []fsm.Transition

	for _, t := range f.Transitions {
		if len(t.Actions) > 0 {
			out = append(out, t)
		}
	}

	return out
}

func mustStateName(f *fsm.FSM, id string) string {
	if s := f.StateByID(id); s != nil {
		return s.Name
	}

	return id
}
