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
	"strings"
	"testing"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/fsm"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/parser"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/source"
)

func trafficLight() *fsm.FSM {
	return &fsm.FSM{
		ModuleName:    "traffic_light",
		ClockSignal:   "clk",
		ResetSignal:   "rst",
		ResetPolarity: fsm.ResetHigh,
		Encoding:      fsm.Binary,
		Kind:          fsm.Moore,
		Inputs: []fsm.Signal{
			{Name: "start", Width: 1, Direction: fsm.In},
			{Name: "timer_done", Width: 1, Direction: fsm.In},
		},
		Outputs: []fsm.Signal{
			{Name: "red", Width: 1, Direction: fsm.Out},
			{Name: "green", Width: 1, Direction: fsm.Out},
			{Name: "yellow", Width: 1, Direction: fsm.Out},
		},
		States: []fsm.State{
			{ID: "idle", Name: "IDLE", IsInitial: true, Outputs: []fsm.OutputAssign{{Signal: "red", Value: "1'b1"}}},
			{ID: "green", Name: "GREEN", Outputs: []fsm.OutputAssign{{Signal: "green", Value: "1'b1"}}},
			{ID: "yellow", Name: "YELLOW", Outputs: []fsm.OutputAssign{{Signal: "yellow", Value: "1'b1"}}},
		},
		Transitions: []fsm.Transition{
			{ID: "t0", From: "idle", To: "green", Condition: "start"},
			{ID: "t1", From: "green", To: "yellow", Condition: "timer_done"},
			{ID: "t2", From: "yellow", To: "idle", Condition: "timer_done"},
		},
	}
}

func TestGenerate_TrafficLight_ContainsExpectedLiterals(t *testing.T) {
	out, err := Generate(trafficLight(), GenOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"localparam [1:0] IDLE",
		"localparam [1:0] GREEN",
		"localparam [1:0] YELLOW",
		"always @(posedge clk or posedge rst)",
		"current_state <= IDLE",
		"case (current_state)",
		"default: next_state = IDLE;",
		"red = 1'b1;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected generated output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestGenerate_RoundTripsThroughParser(t *testing.T) {
	out, err := Generate(trafficLight(), GenOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	file := source.NewFileFromString("<gen>", out)

	_, diags := parser.Parse(file)
	if len(diags) != 0 {
		t.Fatalf("expected zero parse diagnostics for generated output, got %v\n%s", diags, out)
	}
}

func TestGenerate_LowResetPolarity(t *testing.T) {
	f := trafficLight()
	f.ResetPolarity = fsm.ResetLow
	f.ResetSignal = "rst_n"

	out, err := Generate(f, GenOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "negedge rst_n") {
		t.Errorf("expected negedge rst_n, got:\n%s", out)
	}

	if !strings.Contains(out, "if (!rst_n)") {
		t.Errorf("expected if (!rst_n), got:\n%s", out)
	}
}

func TestGenerate_SyncReset(t *testing.T) {
	out, err := Generate(trafficLight(), GenOptions{SyncReset: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "always @(posedge clk) begin") {
		t.Errorf("expected sync-reset sequential header, got:\n%s", out)
	}

	if strings.Contains(out, "posedge rst") {
		t.Errorf("expected no posedge rst under sync reset, got:\n%s", out)
	}
}

func TestGenerate_MissingInitialState_Fails(t *testing.T) {
	f := trafficLight()
	for i := range f.States {
		f.States[i].IsInitial = false
	}

	if _, err := Generate(f, GenOptions{}); err == nil {
		t.Fatalf("expected error for FSM with no initial state")
	}
}

func TestGenerate_EmptyFSM_Fails(t *testing.T) {
	f := &fsm.FSM{ModuleName: "m"}

	if _, err := Generate(f, GenOptions{}); err == nil {
		t.Fatalf("expected error for empty FSM")
	}
}

func TestGenerate_OneHotEncoding(t *testing.T) {
	f := trafficLight()
	f.Encoding = fsm.OneHot

	out, err := Generate(f, GenOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"3'b100", "3'b010", "3'b001"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected one-hot literal %q, got:\n%s", want, out)
		}
	}
}

func TestExtract_GeneratedTrafficLight_RoundTrips(t *testing.T) {
	out, err := Generate(trafficLight(), GenOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := parseModule(t, out)

	res := Extract(m)
	if !res.Success {
		t.Fatalf("expected extraction of generated traffic light to succeed, reasons: %v", res.Reasons)
	}

	if res.Confidence < 0.8 {
		t.Errorf("expected confidence >= 0.8, got %v", res.Confidence)
	}

	if len(res.FSM.Transitions) < 2 {
		t.Errorf("expected at least 2 transitions, got %d", len(res.FSM.Transitions))
	}

	names := map[string]bool{}
	for _, s := range res.FSM.States {
		names[s.Name] = true
	}

	for _, want := range []string{"IDLE", "GREEN", "YELLOW"} {
		if !names[want] {
			t.Errorf("expected state %q to be recovered", want)
		}
	}

	if initial := res.FSM.InitialState(); initial == nil || initial.Name != "IDLE" {
		t.Errorf("expected IDLE to be initial, got %v", initial)
	}
}
