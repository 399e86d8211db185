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
package fsm

import (
	"fmt"
	"regexp"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/diag"
)

// FSM-level diagnostic codes. These are distinct from the Verilog-pipeline
// codes in pkg/diag/codes.go (spec.md §6 reserves the F-prefix for FSM
// structural issues).
const (
	CodeMissingInitial = "F001"
	CodeDuplicateName  = "F002"
	CodeUnreachable    = "F003"
	CodeDeadTransition = "F004"
	CodeMissingOutgoing = "F005"
	CodeUndefinedSignal = "F006"
	CodeEncodingWarning = "F007"
)

// Validate runs the six structural rules of spec.md §4.8 plus the §4.7
// encoding-overflow check, returning every diagnostic found. FSM-level
// diagnostics carry no source Location, since they describe the model
// itself rather than generated text.
func Validate(f *FSM) []diag.Diagnostic {
	var diags []diag.Diagnostic

	diags = append(diags, checkMissingInitial(f)...)
	diags = append(diags, checkDuplicateName(f)...)
	diags = append(diags, checkUnreachableState(f)...)
	diags = append(diags, checkDeadTransition(f)...)
	diags = append(diags, checkMissingOutgoing(f)...)
	diags = append(diags, checkUndefinedSignal(f)...)

	if warn, msg := ValidateEncoding(f.Encoding, len(f.States)); warn {
		diags = append(diags, diag.New(CodeEncodingWarning, diag.Warning, msg))
	}

	return diags
}

func checkMissingInitial(f *FSM) []diag.Diagnostic {
	count := 0

	for _, s := range f.States {
		if s.IsInitial {
			count++
		}
	}

	switch {
	case count == 0:
		return []diag.Diagnostic{diag.New(CodeMissingInitial, diag.Error, "FSM has no initial state")}
	case count > 1:
		return []diag.Diagnostic{diag.New(CodeMissingInitial, diag.Warning,
			fmt.Sprintf("FSM has %d states marked initial; the first in order wins", count))}
	default:
		return nil
	}
}

func checkDuplicateName(f *FSM) []diag.Diagnostic {
	var diags []diag.Diagnostic

	seen := map[string]bool{}

	for _, s := range f.States {
		if seen[s.Name] {
			diags = append(diags, diag.New(CodeDuplicateName, diag.Error,
				fmt.Sprintf("state name %q is used by more than one state", s.Name)))

			continue
		}

		seen[s.Name] = true
	}

	return diags
}

func checkUnreachableState(f *FSM) []diag.Diagnostic {
	initial := f.InitialState()
	if initial == nil {
		return nil
	}

	reached := map[string]bool{initial.ID: true}
	queue := []string{initial.ID}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		for _, t := range f.Transitions {
			if t.From != id || reached[t.To] {
				continue
			}

			reached[t.To] = true
			queue = append(queue, t.To)
		}
	}

	var diags []diag.Diagnostic

	for _, s := range f.States {
		if !reached[s.ID] {
			diags = append(diags, diag.New(CodeUnreachable, diag.Warning,
				fmt.Sprintf("state %q is unreachable from the initial state", s.Name)))
		}
	}

	return diags
}

func checkDeadTransition(f *FSM) []diag.Diagnostic {
	var diags []diag.Diagnostic

	for _, t := range f.Transitions {
		if f.StateByID(t.From) == nil {
			diags = append(diags, diag.New(CodeDeadTransition, diag.Error,
				fmt.Sprintf("transition %q references nonexistent from-state %q", t.ID, t.From)))
		}

		if f.StateByID(t.To) == nil {
			diags = append(diags, diag.New(CodeDeadTransition, diag.Error,
				fmt.Sprintf("transition %q references nonexistent to-state %q", t.ID, t.To)))
		}
	}

	return diags
}

func checkMissingOutgoing(f *FSM) []diag.Diagnostic {
	var diags []diag.Diagnostic

	for _, s := range f.States {
		if len(f.TransitionsFrom(s.ID)) == 0 {
			diags = append(diags, diag.New(CodeMissingOutgoing, diag.Info,
				fmt.Sprintf("state %q has no outgoing transitions", s.Name)))
		}
	}

	return diags
}

// identifierPattern matches a bare Verilog identifier token.
var identifierPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_$]*`)

// numericLiteralPattern matches a sized Verilog numeric literal, e.g.
// "4'b1x0z" or "8'hFF", so it can be stripped before identifier extraction
// (spec.md §4.8: "strips Verilog numeric literals").
var numericLiteralPattern = regexp.MustCompile(`\d*'[sS]?[bBoOdDhH][0-9a-fA-FxXzZ_]+`)

func checkUndefinedSignal(f *FSM) []diag.Diagnostic {
	known := map[string]bool{f.ClockSignal: true, f.ResetSignal: true}

	for _, s := range f.Inputs {
		known[s.Name] = true
	}

	for _, s := range f.Outputs {
		known[s.Name] = true
	}

	var diags []diag.Diagnostic

	reportAll := func(text string) {
		for _, name := range extractSignalNames(text) {
			if !known[name] {
				diags = append(diags, diag.New(CodeUndefinedSignal, diag.Warning,
					fmt.Sprintf("signal %q is not declared as a clock, reset, input or output", name)))
			}
		}
	}

	for _, s := range f.States {
		for _, o := range s.Outputs {
			reportAll(o.Value)
		}
	}

	for _, t := range f.Transitions {
		if t.Condition != UnconditionalCondition {
			reportAll(t.Condition)
		}

		for _, a := range t.Actions {
			reportAll(a.Value)
		}
	}

	return dedupeDiagnostics(diags)
}

// extractSignalNames pulls candidate signal identifiers out of a Verilog
// expression string: numeric literals are stripped first, then bare
// integers are filtered from the remaining identifier tokens (spec.md
// §4.8). Operators never match identifierPattern, so they are dropped for
// free.
func extractSignalNames(expr string) []string {
	stripped := numericLiteralPattern.ReplaceAllString(expr, " ")

	var names []string

	for _, tok := range identifierPattern.FindAllString(stripped, -1) {
		if isBareInteger(tok) {
			continue
		}

		names = append(names, tok)
	}

	return names
}

func isBareInteger(tok string) bool {
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// dedupeDiagnostics removes diagnostics whose (Code, Message) pair repeats,
// preserving first-occurrence order -- the same undefined signal referenced
// from several transitions should be reported once.
func dedupeDiagnostics(diags []diag.Diagnostic) []diag.Diagnostic {
	seen := map[string]bool{}

	var out []diag.Diagnostic

	for _, d := range diags {
		key := d.Code + "|" + d.Message
		if seen[key] {
			continue
		}

		seen[key] = true

		out = append(out, d)
	}

	return out
}
