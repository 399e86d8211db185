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
package ast

import "testing"

func TestWalkStatements_VisitsNestedIfAndBeginEnd(t *testing.T) {
	inner := &Assignment{Op: Blocking, Lhs: &Identifier{Name: "y"}, Rhs: &Identifier{Name: "x"}}
	elseBranch := &BeginEnd{Body: []Statement{inner}}
	ifStmt := &If{Cond: &Identifier{Name: "cond"}, Then: inner, Else: elseBranch}

	var visited []Statement
	WalkStatements(ifStmt, func(s Statement) { visited = append(visited, s) })

	if len(visited) != 4 {
		t.Fatalf("expected 4 visited statements (if, then, else-begin-end, inner), got %d", len(visited))
	}
}

func TestWalkStatements_NilIsNoop(t *testing.T) {
	count := 0
	WalkStatements(nil, func(s Statement) { count++ })

	if count != 0 {
		t.Errorf("expected no visits for a nil statement, got %d", count)
	}
}

func TestWalkExpressions_VisitsBitSelectAndRangeSelect(t *testing.T) {
	e := &RangeSelect{
		Signal: &BitSelect{Signal: &Identifier{Name: "mem"}, Index: &Identifier{Name: "i"}},
		Msb:    &Identifier{Name: "hi"},
		Lsb:    &Identifier{Name: "lo"},
	}

	names := Identifiers(e)

	want := map[string]bool{"mem": true, "i": true, "hi": true, "lo": true}
	if len(names) != len(want) {
		t.Fatalf("expected %d identifiers, got %d: %v", len(want), len(names), names)
	}

	for _, n := range names {
		if !want[n] {
			t.Errorf("unexpected identifier %q", n)
		}
	}
}

func TestAssignmentTarget_SimpleAndBitSelect(t *testing.T) {
	simple := &Assignment{Op: NonBlocking, Lhs: &Identifier{Name: "state"}, Rhs: &Identifier{Name: "next_state"}}
	if got := AssignmentTarget(simple); got != "state" {
		t.Errorf("expected \"state\", got %q", got)
	}

	indexed := &Assignment{Op: Blocking, Lhs: &BitSelect{Signal: &Identifier{Name: "mem"}, Index: &Identifier{Name: "i"}}, Rhs: &Identifier{Name: "x"}}
	if got := AssignmentTarget(indexed); got != "mem" {
		t.Errorf("expected \"mem\" for a bit-select target, got %q", got)
	}
}

func TestAssignmentTarget_NonAssignmentReturnsEmpty(t *testing.T) {
	if got := AssignmentTarget(&BeginEnd{}); got != "" {
		t.Errorf("expected empty string for a non-assignment statement, got %q", got)
	}
}
