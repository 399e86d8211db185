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
	"math"
	"testing"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/diag"
)

func TestTemplates_KnownIDs(t *testing.T) {
	if TemplateByID("traffic-light") == nil {
		t.Fatalf("expected traffic-light template to be registered")
	}

	if TemplateByID("seq-detector-101") == nil {
		t.Fatalf("expected seq-detector-101 template to be registered")
	}

	if TemplateByID("does-not-exist") != nil {
		t.Errorf("expected unknown template id to resolve to nil")
	}
}

func TestTemplates_AllPassValidationWithNoErrors(t *testing.T) {
	for _, tpl := range Templates() {
		f := tpl.Build()

		for _, d := range Validate(f) {
			if d.Severity == diag.Error {
				t.Errorf("template %q: unexpected validation error: %v", tpl.ID, d)
			}
		}
	}
}

func TestBuildTrafficLight_Shape(t *testing.T) {
	f := buildTrafficLight()

	if len(f.States) != 3 {
		t.Fatalf("expected 3 states, got %d", len(f.States))
	}

	if f.InitialState() == nil || f.InitialState().Name != "IDLE" {
		t.Errorf("expected IDLE to be initial, got %v", f.InitialState())
	}

	enc := Encode(f.Encoding, f.States)
	if enc[0].Width != 2 {
		t.Errorf("expected 2-bit encoding for 3 states, got %d", enc[0].Width)
	}
}

func TestBuildSeqDetector101_Shape(t *testing.T) {
	f := buildSeqDetector101()

	if len(f.States) != 4 {
		t.Fatalf("expected 4 states, got %d", len(f.States))
	}

	detect := f.StateByID("s101")
	if detect == nil || len(detect.Outputs) != 1 || detect.Outputs[0].Signal != "detect" {
		t.Errorf("expected s101 to drive detect=1, got %+v", detect)
	}
}

func TestAutoLayout_MinimumRadius(t *testing.T) {
	positions := autoLayout(2)
	if len(positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(positions))
	}

	// 40*2 = 80 is below the minimum, so the radius is 150 and the first
	// state sits straight above the centre (300, 300).
	if math.Abs(positions[0].Y-150) > 1e-9 {
		t.Errorf("expected first position at y=150 (radius 150), got %v", positions[0].Y)
	}
}
