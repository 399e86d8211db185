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
	"testing"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/diag"
)

func hasFSMCode(diags []diag.Diagnostic, code string) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}

	return false
}

func simpleTwoState() *FSM {
	return &FSM{
		ModuleName:  "m",
		ClockSignal: "clk",
		ResetSignal: "rst",
		Encoding:    Binary,
		Kind:        Moore,
		States: []State{
			{ID: "a", Name: "A", IsInitial: true},
			{ID: "b", Name: "B"},
		},
		Transitions: []Transition{
			{ID: "t0", From: "a", To: "b", Condition: "go"},
			{ID: "t1", From: "b", To: "a", Condition: UnconditionalCondition},
		},
		Inputs: []Signal{{Name: "go", Width: 1, Direction: In}},
	}
}

func TestValidate_CleanFSMHasNoErrors(t *testing.T) {
	diags := Validate(simpleTwoState())
	for _, d := range diags {
		if d.Severity == diag.Error {
			t.Errorf("expected no errors on a clean FSM, got %v", d)
		}
	}
}

func TestCheckMissingInitial_None(t *testing.T) {
	f := simpleTwoState()
	f.States[0].IsInitial = false

	diags := checkMissingInitial(f)
	if !hasFSMCode(diags, CodeMissingInitial) {
		t.Errorf("expected missing-initial diagnostic, got %v", diags)
	}
}

func TestCheckMissingInitial_Multiple(t *testing.T) {
	f := simpleTwoState()
	f.States[1].IsInitial = true

	diags := checkMissingInitial(f)
	if !hasFSMCode(diags, CodeMissingInitial) {
		t.Errorf("expected missing-initial warning for multiple initial states, got %v", diags)
	}

	for _, d := range diags {
		if d.Code == CodeMissingInitial && d.Severity != diag.Warning {
			t.Errorf("expected warning severity for multiple-initial, got %v", d.Severity)
		}
	}
}

func TestCheckDuplicateName(t *testing.T) {
	f := simpleTwoState()
	f.States[1].Name = "A"

	diags := checkDuplicateName(f)
	if !hasFSMCode(diags, CodeDuplicateName) {
		t.Errorf("expected duplicate-name diagnostic, got %v", diags)
	}
}

func TestCheckUnreachableState(t *testing.T) {
	f := simpleTwoState()
	f.States = append(f.States, State{ID: "c", Name: "C"})

	diags := checkUnreachableState(f)
	if !hasFSMCode(diags, CodeUnreachable) {
		t.Errorf("expected unreachable-state diagnostic for C, got %v", diags)
	}
}

func TestCheckDeadTransition(t *testing.T) {
	f := simpleTwoState()
	f.Transitions = append(f.Transitions, Transition{ID: "t2", From: "a", To: "ghost"})

	diags := checkDeadTransition(f)
	if !hasFSMCode(diags, CodeDeadTransition) {
		t.Errorf("expected dead-transition diagnostic, got %v", diags)
	}
}

func TestCheckMissingOutgoing(t *testing.T) {
	f := simpleTwoState()
	f.States = append(f.States, State{ID: "c", Name: "C"})
	f.Transitions = append(f.Transitions, Transition{ID: "t2", From: "a", To: "c", Condition: "x"})

	diags := checkMissingOutgoing(f)
	if !hasFSMCode(diags, CodeMissingOutgoing) {
		t.Errorf("expected missing-outgoing info for terminal state C, got %v", diags)
	}
}

func TestCheckUndefinedSignal(t *testing.T) {
	f := simpleTwoState()
	f.Transitions[0].Condition = "go && unknown_sig"

	diags := checkUndefinedSignal(f)
	if !hasFSMCode(diags, CodeUndefinedSignal) {
		t.Errorf("expected undefined-signal diagnostic for unknown_sig, got %v", diags)
	}
}

func TestExtractSignalNames_StripsLiteralsAndIntegers(t *testing.T) {
	names := extractSignalNames("state == 4'b1x0z && count > 10 && done")

	want := map[string]bool{"state": true, "count": true, "done": true}

	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %v", len(want), names)
	}

	for _, n := range names {
		if !want[n] {
			t.Errorf("unexpected extracted name %q", n)
		}
	}
}

func TestValidate_EncodingOverflowWarning(t *testing.T) {
	f := &FSM{Encoding: OneHot}
	for i := 0; i < 20; i++ {
		f.States = append(f.States, State{ID: string(rune('a' + i)), Name: string(rune('A' + i))})
	}

	f.States[0].IsInitial = true

	diags := Validate(f)
	if !hasFSMCode(diags, CodeEncodingWarning) {
		t.Errorf("expected one-hot overflow warning for 20 states, got %v", diags)
	}
}
