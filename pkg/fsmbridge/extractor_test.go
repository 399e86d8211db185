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
	"testing"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/ast"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/fsm"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/parser"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/source"
)

const trafficLightSource = `
module traffic_light(
	input clk,
	input rst,
	input start,
	input timer_done,
	output reg red,
	output reg green,
	output reg yellow
);

	localparam [1:0] IDLE = 2'b00;
	localparam [1:0] GREEN = 2'b01;
	localparam [1:0] YELLOW = 2'b10;

	reg [1:0] current_state;
	reg [1:0] next_state;

	always @(posedge clk or posedge rst) begin
		if (rst)
			current_state <= IDLE;
		else
			current_state <= next_state;
	end

	always @(*) begin
		next_state = current_state;
		case (current_state)
			IDLE: begin
				if (start)
					next_state = GREEN;
			end
			GREEN: begin
				if (timer_done)
					next_state = YELLOW;
			end
			YELLOW: begin
				if (timer_done)
					next_state = IDLE;
			end
		endcase
	end

	always @(*) begin
		red = 1'b0;
		green = 1'b0;
		yellow = 1'b0;
		case (current_state)
			IDLE: red = 1'b1;
			GREEN: green = 1'b1;
			YELLOW: yellow = 1'b1;
		endcase
	end

endmodule
`

func parseModule(t *testing.T, src string) *ast.Module {
	t.Helper()

	file := source.NewFileFromString("<test>", src)

	cst, diags := parser.Parse(file)
	if len(diags) != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", diags)
	}

	return parser.Build(cst)
}

func TestExtract_TrafficLight(t *testing.T) {
	m := parseModule(t, trafficLightSource)

	res := Extract(m)
	if !res.Success {
		t.Fatalf("expected success, reasons: %v", res.Reasons)
	}

	if res.Confidence < 0.8 {
		t.Errorf("expected confidence >= 0.8, got %v", res.Confidence)
	}

	if len(res.FSM.States) != 3 {
		t.Fatalf("expected 3 states, got %d", len(res.FSM.States))
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

	initial := res.FSM.InitialState()
	if initial == nil || initial.Name != "IDLE" {
		t.Errorf("expected IDLE to be initial, got %v", initial)
	}

	if len(res.FSM.Transitions) < 3 {
		t.Errorf("expected at least 3 transitions, got %d", len(res.FSM.Transitions))
	}

	if res.FSM.ClockSignal != "clk" {
		t.Errorf("expected clk clock signal, got %q", res.FSM.ClockSignal)
	}

	if res.FSM.ResetSignal != "rst" {
		t.Errorf("expected rst reset signal, got %q", res.FSM.ResetSignal)
	}

	if res.FSM.ResetPolarity != fsm.ResetHigh {
		t.Errorf("expected active-high reset, got %v", res.FSM.ResetPolarity)
	}
}

func TestExtract_NoLocalparams_Fails(t *testing.T) {
	m := parseModule(t, `
module empty(input clk);
	reg [1:0] current_state;
	always @(posedge clk) current_state <= current_state;
endmodule
`)

	res := Extract(m)
	if res.Success {
		t.Fatalf("expected extraction to fail with no state parameters")
	}

	if len(res.Reasons) == 0 {
		t.Errorf("expected a reason to be recorded")
	}
}

func TestClassifyEncoding_OneHot(t *testing.T) {
	params := []stateParam{{Name: "A", Value: "001"}, {Name: "B", Value: "010"}, {Name: "C", Value: "100"}}

	if got := classifyEncoding(params); got != fsm.OneHot {
		t.Errorf("expected one-hot, got %v", got)
	}
}

func TestClassifyEncoding_Gray(t *testing.T) {
	params := []stateParam{{Name: "A", Value: "00"}, {Name: "B", Value: "01"}, {Name: "C", Value: "11"}}

	if got := classifyEncoding(params); got != fsm.Gray {
		t.Errorf("expected gray, got %v", got)
	}
}

func TestClassifyEncoding_Binary(t *testing.T) {
	params := []stateParam{{Name: "A", Value: "00"}, {Name: "B", Value: "01"}, {Name: "C", Value: "10"}}

	if got := classifyEncoding(params); got != fsm.Binary {
		t.Errorf("expected binary, got %v", got)
	}
}
