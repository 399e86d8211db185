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

import "math"

// Template is one entry of the curated FSM registry (spec.md §4.11).
type Template struct {
	ID          string
	Name        string
	Description string
	Build       func() *FSM
}

var templateRegistry = []Template{
	{
		ID:          "traffic-light",
		Name:        "Traffic light",
		Description: "Moore 3-state traffic light cycling red/green/yellow on a timer",
		Build:       buildTrafficLight,
	},
	{
		ID:          "seq-detector-101",
		Name:        "Sequence detector (101)",
		Description: "Moore detector for the overlapping bit pattern 101 on a serial input",
		Build:       buildSeqDetector101,
	},
}

// Templates returns the template registry in registration order.
func Templates() []Template {
	out := make([]Template, len(templateRegistry))
	copy(out, templateRegistry)

	return out
}

// TemplateByID returns the template with the given id, or nil if none
// matches.
func TemplateByID(id string) *Template {
	for i := range templateRegistry {
		if templateRegistry[i].ID == id {
			return &templateRegistry[i]
		}
	}

	return nil
}

// autoLayout arranges n states evenly on a circle centered at (300,300)
// with radius max(150, 40n), starting at angle -pi/2, counter-clockwise
// (spec.md §4.9 step 8 -- also used here so templates render sensibly
// without the embedding UI doing its own layout pass).
func autoLayout(n int) []Position {
	radius := 40.0 * float64(n)
	if radius < 150 {
		radius = 150
	}

	positions := make([]Position, n)

	for i := 0; i < n; i++ {
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		positions[i] = Position{X: 300 + radius*math.Cos(angle), Y: 300 + radius*math.Sin(angle)}
	}

	return positions
}

// Layout exposes autoLayout to other packages: pkg/fsmbridge's extractor
// uses it to place recovered states (spec.md §4.9 stage 8), since a
// hand-written module carries no position information of its own.
func Layout(n int) []Position {
	return autoLayout(n)
}

// buildTrafficLight constructs the FSM used as spec.md §7 scenario S3: a
// Moore 3-state cycle IDLE -> GREEN -> YELLOW -> IDLE.
func buildTrafficLight() *FSM {
	positions := autoLayout(3)

	return &FSM{
		ModuleName:    "traffic_light",
		ClockSignal:   "clk",
		ResetSignal:   "rst",
		ResetPolarity: ResetHigh,
		Encoding:      Binary,
		Kind:          Moore,
		Inputs: []Signal{
			{Name: "start", Width: 1, Direction: In},
			{Name: "timer_done", Width: 1, Direction: In},
		},
		Outputs: []Signal{
			{Name: "red", Width: 1, Direction: Out},
			{Name: "green", Width: 1, Direction: Out},
			{Name: "yellow", Width: 1, Direction: Out},
		},
		States: []State{
			{ID: "idle", Name: "IDLE", Position: positions[0], IsInitial: true,
				Outputs: []OutputAssign{{Signal: "red", Value: "1'b1"}}},
			{ID: "green", Name: "GREEN", Position: positions[1],
				Outputs: []OutputAssign{{Signal: "green", Value: "1'b1"}}},
			{ID: "yellow", Name: "YELLOW", Position: positions[2],
				Outputs: []OutputAssign{{Signal: "yellow", Value: "1'b1"}}},
		},
		Transitions: []Transition{
			{ID: "t0", From: "idle", To: "green", Condition: "start"},
			{ID: "t1", From: "green", To: "yellow", Condition: "timer_done"},
			{ID: "t2", From: "yellow", To: "idle", Condition: "timer_done"},
		},
	}
}

// buildSeqDetector101 constructs an overlapping-match Moore detector for the
// bit pattern "101" on a single-bit serial input: S0 -1-> S1 -0-> S10
// -1-> S101 (detect=1), which on a further '1' returns to S1 rather than
// S0, so "10101" reports two overlapping matches. Transitions that merely
// hold the current state are left implicit: the generator's default
// next-state assignment already covers them.
func buildSeqDetector101() *FSM {
	positions := autoLayout(4)

	return &FSM{
		ModuleName:    "seq_detector_101",
		ClockSignal:   "clk",
		ResetSignal:   "rst_n",
		ResetPolarity: ResetLow,
		Encoding:      Binary,
		Kind:          Moore,
		Inputs: []Signal{
			{Name: "din", Width: 1, Direction: In},
		},
		Outputs: []Signal{
			{Name: "detect", Width: 1, Direction: Out, Default: "1'b0"},
		},
		States: []State{
			{ID: "s0", Name: "S0", Position: positions[0], IsInitial: true},
			{ID: "s1", Name: "S1", Position: positions[1]},
			{ID: "s10", Name: "S10", Position: positions[2]},
			{ID: "s101", Name: "S101", Position: positions[3],
				Outputs: []OutputAssign{{Signal: "detect", Value: "1'b1"}}},
		},
		Transitions: []Transition{
			{ID: "t0", From: "s0", To: "s1", Condition: "din"},
			{ID: "t1", From: "s1", To: "s10", Condition: "!din"},
			{ID: "t2", From: "s10", To: "s101", Condition: "din"},
			{ID: "t3", From: "s10", To: "s0", Condition: "!din"},
			{ID: "t4", From: "s101", To: "s1", Condition: "din"},
			{ID: "t5", From: "s101", To: "s10", Condition: "!din"},
		},
	}
}
