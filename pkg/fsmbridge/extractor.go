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

// Package fsmbridge connects the Verilog AST (pkg/ast) to the FSM model
// (pkg/fsm): Extract recovers a best-effort FSM from a hand-written module
// (spec.md §4.9), and Generate renders an FSM back to a synthesizable
// Verilog module (spec.md §4.10).
package fsmbridge

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/ast"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/fsm"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/generator"
)

// ExtractResult is the outcome of one extraction attempt (spec.md §4.9).
type ExtractResult struct {
	Success    bool
	FSM        *fsm.FSM
	Confidence float64
	// Reasons explains what stage failed, or notes about heuristic choices
	// made (e.g. "no reset-guarded assignment found; defaulting to first
	// state"), even on success.
	Reasons []string
}

const confidenceStep = 0.2

// stateParam is one candidate state constant recovered from a localparam.
type stateParam struct {
	Name  string
	Value string // binary digits only, no width/base prefix
}

// stateParamPattern matches a localparam's textual value against spec.md
// §4.9 stage 1: "N'b[01]+".
var stateParamPattern = regexp.MustCompile(`^(\d+)'b([01]+)$`)

// Extract attempts to recover an FSM from m, following the 8-stage pipeline
// of spec.md §4.9.
func Extract(m *ast.Module) ExtractResult {
	var reasons []string

	confidence := 0.0

	params, width, enc := findStateParams(m)
	if len(params) == 0 {
		return ExtractResult{Success: false, Confidence: 0,
			Reasons: append(reasons, "no localparam declarations matched the N'b[01]+ state-constant pattern")}
	}

	confidence += confidenceStep

	stateReg, clockedBlock := findStateRegister(m, width)
	if stateReg == "" || clockedBlock == nil {
		return ExtractResult{Success: false, Confidence: confidence,
			Reasons: append(reasons, fmt.Sprintf("no %d-bit reg with a clocked always block assigning to it was found", width))}
	}

	confidence += confidenceStep

	nextState := findNextStateSignal(m, stateReg, width)

	combBlock, ok := findNextStateLogic(m, stateReg)
	if !ok || nextState == "" {
		return ExtractResult{Success: false, Confidence: confidence,
			Reasons: append(reasons, "no combinational always block with a case over the state register was found")}
	}

	confidence += confidenceStep

	states := buildStates(params)

	transitions, ok := extractTransitions(combBlock, states, nextState)
	if !ok {
		return ExtractResult{Success: false, Confidence: confidence,
			Reasons: append(reasons, "next-state case statement had no recognizable state-to-state transitions")}
	}

	confidence += confidenceStep

	initialID, note := findInitialState(clockedBlock, stateReg, states)
	if note != "" {
		reasons = append(reasons, note)
	}

	markInitial(states, initialID)

	clock, reset, polarity, inputs, outputs := partitionIO(m, stateReg, nextState)

	positions := autoLayoutPositions(len(states))
	for i := range states {
		states[i].Position = positions[i]
	}

	f := &fsm.FSM{
		ModuleName:    m.Name,
		States:        states,
		Transitions:   transitions,
		ClockSignal:   clock,
		ResetSignal:   reset,
		ResetPolarity: polarity,
		Encoding:      enc,
		Kind:          fsm.Moore,
		Inputs:        inputs,
		Outputs:       outputs,
	}

	confidence += confidenceStep

	return ExtractResult{Success: true, FSM: f, Confidence: confidence, Reasons: reasons}
}

// findStateParams implements spec.md §4.9 stage 1.
func findStateParams(m *ast.Module) ([]stateParam, int, fsm.Encoding) {
	var params []stateParam

	width := 0

	for _, d := range m.Parameters {
		if d.Kind != ast.DeclLocalparam || len(d.Names) != 1 {
			continue
		}

		num, ok := d.Value.(*ast.Number)
		if !ok {
			continue
		}

		match := stateParamPattern.FindStringSubmatch(num.Text)
		if match == nil {
			continue
		}

		w, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		if width == 0 {
			width = w
		}

		params = append(params, stateParam{Name: d.Names[0], Value: match[2]})
	}

	if len(params) == 0 {
		return nil, 0, fsm.Binary
	}

	return params, width, classifyEncoding(params)
}

// classifyEncoding implements spec.md §4.9 stage 1's encoding inspection:
// one-hot if every value has exactly one set bit, gray if consecutive
// values (declaration order) differ by exactly one bit, otherwise binary.
func classifyEncoding(params []stateParam) fsm.Encoding {
	allOneHot := true

	for _, p := range params {
		if strings.Count(p.Value, "1") != 1 {
			allOneHot = false
			break
		}
	}

	if allOneHot {
		return fsm.OneHot
	}

	allGrayAdjacent := len(params) > 1

	for i := 1; i < len(params); i++ {
		if hammingDistance(params[i-1].Value, params[i].Value) != 1 {
			allGrayAdjacent = false
			break
		}
	}

	if allGrayAdjacent {
		return fsm.Gray
	}

	return fsm.Binary
}

func hammingDistance(a, b string) int {
	if len(a) != len(b) {
		return -1
	}

	d := 0

	for i := range a {
		if a[i] != b[i] {
			d++
		}
	}

	return d
}

// conventionalStateRegNames are preferred, in order, when more than one reg
// candidate matches on width (spec.md §4.9 stage 2).
var conventionalStateRegNames = []string{"current_state", "state"}

// findStateRegister implements spec.md §4.9 stage 2.
func findStateRegister(m *ast.Module, width int) (string, *ast.AlwaysBlock) {
	var candidates []string

	for _, d := range m.Declarations {
		if d.Kind != ast.DeclReg || declWidth(d) != width {
			continue
		}

		candidates = append(candidates, d.Names...)
	}

	name := pickConventional(candidates, conventionalStateRegNames, "_reg")
	if name == "" {
		return "", nil
	}

	for _, ab := range m.Always {
		if ab.Class != ast.Sequential {
			continue
		}

		found := false

		ast.WalkStatements(ab.Body, func(s ast.Statement) {
			if ast.AssignmentTarget(s) == name {
				found = true
			}
		})

		if found {
			return name, ab
		}
	}

	return "", nil
}

// findNextStateSignal implements spec.md §4.9 stage 3.
func findNextStateSignal(m *ast.Module, stateReg string, width int) string {
	var candidates []string

	for _, d := range m.Declarations {
		if d.Kind != ast.DeclReg || declWidth(d) != width {
			continue
		}

		for _, n := range d.Names {
			if n != stateReg {
				candidates = append(candidates, n)
			}
		}
	}

	return pickConventional(candidates, []string{"next_state"}, "_next")
}

// pickConventional returns the first candidate matching a preferred exact
// name, else the first candidate with the given suffix, else the first
// candidate in declaration order, else "".
func pickConventional(candidates, preferred []string, suffix string) string {
	for _, p := range preferred {
		for _, c := range candidates {
			if c == p {
				return c
			}
		}
	}

	for _, c := range candidates {
		if strings.HasSuffix(c, suffix) {
			return c
		}
	}

	if len(candidates) > 0 {
		return candidates[0]
	}

	return ""
}

// declWidth evaluates a Declaration's bit range as a constant width, or 1
// for an unranged (scalar) declaration. Non-literal bounds are not
// supported by this best-effort extractor and yield 0 (no match).
func declWidth(d *ast.Declaration) int {
	if d.Range == nil {
		return 1
	}

	msb, ok1 := constInt(d.Range.Msb)
	lsb, ok2 := constInt(d.Range.Lsb)

	if !ok1 || !ok2 {
		return 0
	}

	return msb - lsb + 1
}

func constInt(e ast.Expression) (int, bool) {
	num, ok := e.(*ast.Number)
	if !ok || num.Sized {
		return 0, false
	}

	v, err := strconv.Atoi(num.Text)
	if err != nil {
		return 0, false
	}

	return v, true
}

// findNextStateLogic implements spec.md §4.9 stage 4: a combinational
// always block containing "case (<stateReg>) ... endcase".
func findNextStateLogic(m *ast.Module, stateReg string) (*ast.CaseStatement, bool) {
	for _, ab := range m.Always {
		if ab.Class != ast.Combinational {
			continue
		}

		var found *ast.CaseStatement

		ast.WalkStatements(ab.Body, func(s ast.Statement) {
			if found != nil {
				return
			}

			c, ok := s.(*ast.CaseStatement)
			if !ok {
				return
			}

			if id, ok := c.Selector.(*ast.Identifier); ok && id.Name == stateReg {
				found = c
			}
		})

		if found != nil {
			return found, true
		}
	}

	return nil, false
}

// buildStates allocates a fsm.State per stateParam, ids matching the
// parameter name lower-cased (stable, readable ids).
func buildStates(params []stateParam) []fsm.State {
	states := make([]fsm.State, len(params))

	for i, p := range params {
		states[i] = fsm.State{ID: strings.ToLower(p.Name), Name: p.Name}
	}

	return states
}

func stateIDByName(states []fsm.State, name string) (string, bool) {
	for _, s := range states {
		if s.Name == name {
			return s.ID, true
		}
	}

	return "", false
}

// extractTransitions implements spec.md §4.9 stage 5.
func extractTransitions(c *ast.CaseStatement, states []fsm.State, nextState string) ([]fsm.Transition, bool) {
	var transitions []fsm.Transition

	n := 0
	id := func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}

	for _, item := range c.Items {
		if item.Default || len(item.Values) != 1 {
			continue
		}

		ident, ok := item.Values[0].(*ast.Identifier)
		if !ok {
			continue
		}

		fromID, ok := stateIDByName(states, ident.Name)
		if !ok {
			continue
		}

		transitions = append(transitions, transitionsFromBody(fromID, item.Body, nextState, states, id)...)
	}

	return transitions, len(transitions) > 0
}

// transitionsFromBody recursively walks a case arm's body, matching spec.md
// §4.9 stage 5: bare assignments to nextState are unconditional, "if (cond)
// ..." introduces a conditional transition, and its else branch (if any) is
// processed as a further sibling without synthesizing an inverted
// condition.
func transitionsFromBody(fromID string, body []ast.Statement, nextState string, states []fsm.State, id func() string) []fsm.Transition {
	var out []fsm.Transition

	for _, st := range body {
		out = append(out, transitionsFromStmt(fromID, st, nextState, states, id)...)
	}

	return out
}

func transitionsFromStmt(fromID string, st ast.Statement, nextState string, states []fsm.State, id func() string) []fsm.Transition {
	switch s := st.(type) {
	case *ast.Assignment:
		if ast.AssignmentTarget(s) != nextState {
			return nil
		}

		target, ok := s.Rhs.(*ast.Identifier)
		if !ok {
			return nil
		}

		toID, ok := stateIDByName(states, target.Name)
		if !ok {
			return nil
		}

		return []fsm.Transition{{ID: id(), From: fromID, To: toID, Condition: fsm.UnconditionalCondition}}
	case *ast.If:
		cond := generator.ExprText(s.Cond, generator.DefaultOptions())

		thenTrans := transitionsFromStmt(fromID, s.Then, nextState, states, id)
		for i := range thenTrans {
			if thenTrans[i].Condition == fsm.UnconditionalCondition {
				thenTrans[i].Condition = cond
			}
		}

		out := append([]fsm.Transition{}, thenTrans...)

		if s.Else != nil {
			out = append(out, transitionsFromStmt(fromID, s.Else, nextState, states, id)...)
		}

		return out
	case *ast.BeginEnd:
		return transitionsFromBody(fromID, s.Body, nextState, states, id)
	default:
		return nil
	}
}

// resetNamePattern matches conventional reset signal spellings used both
// here (stage 6) and in partitionIO (stage 7).
var resetNamePattern = regexp.MustCompile(`(?i)^(rst|reset)(_n)?$`)

// findInitialState implements spec.md §4.9 stage 6.
func findInitialState(clockedBlock *ast.AlwaysBlock, stateReg string, states []fsm.State) (string, string) {
	var initial string

	ast.WalkStatements(clockedBlock.Body, func(s ast.Statement) {
		if initial != "" {
			return
		}

		ifs, ok := s.(*ast.If)
		if !ok || !conditionLooksLikeReset(ifs.Cond) {
			return
		}

		ast.WalkStatements(ifs.Then, func(inner ast.Statement) {
			if initial != "" {
				return
			}

			if ast.AssignmentTarget(inner) != stateReg {
				return
			}

			a := inner.(*ast.Assignment)
			if target, ok := a.Rhs.(*ast.Identifier); ok {
				if id, ok := stateIDByName(states, target.Name); ok {
					initial = id
				}
			}
		})
	})

	if initial != "" {
		return initial, ""
	}

	if len(states) == 0 {
		return "", "no states to mark initial"
	}

	return states[0].ID, "no reset-guarded assignment to the state register was found; defaulting the first declared state to initial"
}

// conditionLooksLikeReset reports whether cond references an identifier
// matching resetNamePattern, tolerating "rst", "!rst_n", "rst | reset", etc.
func conditionLooksLikeReset(cond ast.Expression) bool {
	match := false

	ast.WalkExpressions(cond, func(e ast.Expression) {
		if id, ok := e.(*ast.Identifier); ok && resetNamePattern.MatchString(id.Name) {
			match = true
		}
	})

	return match
}

// clockNamePattern and resetNamePattern classify ports by convention (spec.md
// §4.9 stage 7).
var clockNamePattern = regexp.MustCompile(`(?i)^(clk|clock)$|_clk$`)

// partitionIO implements spec.md §4.9 stage 7.
func partitionIO(m *ast.Module, stateReg, nextState string) (clock, reset string, polarity fsm.ResetPolarity, inputs, outputs []fsm.Signal) {
	polarity = fsm.ResetHigh

	for _, p := range m.Ports {
		if p.Name == stateReg || p.Name == nextState {
			continue
		}

		switch {
		case clockNamePattern.MatchString(p.Name):
			clock = p.Name

			continue
		case resetNamePattern.MatchString(p.Name):
			reset = p.Name
			if strings.HasSuffix(strings.ToLower(p.Name), "_n") {
				polarity = fsm.ResetLow
			}

			continue
		}

		width := 1
		if p.Range != nil {
			if w := declWidth(&ast.Declaration{Range: p.Range}); w > 0 {
				width = w
			}
		}

		if p.Direction == ast.Input {
			inputs = append(inputs, fsm.Signal{Name: p.Name, Width: width, Direction: fsm.In})
		} else {
			outputs = append(outputs, fsm.Signal{Name: p.Name, Width: width, Direction: fsm.Out})
		}
	}

	return clock, reset, polarity, inputs, outputs
}

func markInitial(states []fsm.State, id string) {
	for i := range states {
		if states[i].ID == id {
			states[i].IsInitial = true
			return
		}
	}
}

// autoLayoutPositions implements spec.md §4.9 stage 8.
func autoLayoutPositions(n int) []fsm.Position {
	return fsm.Layout(n)
}
