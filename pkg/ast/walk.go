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

// WalkStatements recursively visits stmt and every statement nested within
// it (If branches, Case arms, BeginEnd bodies), calling visit on each one.
// This is the shared traversal used by the lint validator's driven-signal
// collector and its blocking/nonblocking finders (spec.md §4.4): "Signal
// collection traverses compound statements (if branches, case arms,
// begin/end) recursively."
func WalkStatements(stmt Statement, visit func(Statement)) {
	if stmt == nil {
		return
	}

	visit(stmt)

	switch s := stmt.(type) {
	case *If:
		WalkStatements(s.Then, visit)
		WalkStatements(s.Else, visit)
	case *CaseStatement:
		for _, item := range s.Items {
			for _, b := range item.Body {
				WalkStatements(b, visit)
			}
		}
	case *BeginEnd:
		for _, b := range s.Body {
			WalkStatements(b, visit)
		}
	}
}

// WalkExpressions recursively visits e and every sub-expression within it,
// calling visit on each one (post-order is not guaranteed; only that every
// node is visited exactly once).
func WalkExpressions(e Expression, visit func(Expression)) {
	if e == nil {
		return
	}

	visit(e)

	switch x := e.(type) {
	case *Binary:
		WalkExpressions(x.Left, visit)
		WalkExpressions(x.Right, visit)
	case *Unary:
		WalkExpressions(x.Operand, visit)
	case *Ternary:
		WalkExpressions(x.Cond, visit)
		WalkExpressions(x.Then, visit)
		WalkExpressions(x.Else, visit)
	case *Concat:
		for _, el := range x.Elements {
			WalkExpressions(el, visit)
		}
	case *Replication:
		WalkExpressions(x.Count, visit)
		for _, el := range x.Elements {
			WalkExpressions(el, visit)
		}
	case *BitSelect:
		WalkExpressions(x.Signal, visit)
		WalkExpressions(x.Index, visit)
	case *RangeSelect:
		WalkExpressions(x.Signal, visit)
		WalkExpressions(x.Msb, visit)
		WalkExpressions(x.Lsb, visit)
	}
}

// Identifiers returns the names of every Identifier referenced within e,
// including through bit/range selects (spec.md §3.1 invariant (b): "Bit/range
// selects count as a reference to the underlying name").
func Identifiers(e Expression) []string {
	var names []string

	WalkExpressions(e, func(x Expression) {
		if id, ok := x.(*Identifier); ok {
			names = append(names, id.Name)
		}
	})

	return names
}

// AssignmentTarget returns the name of the signal assigned to by stmt, or
// the empty string if stmt is not an assignment.  Only simple, bit-select
// and range-select left-hand sides are supported (spec.md §4.1's supported
// subset never produces concatenation or other compound LHS forms).
func AssignmentTarget(stmt Statement) string {
	a, ok := stmt.(*Assignment)
	if !ok {
		return ""
	}

	return lhsName(a.Lhs)
}

func lhsName(e Expression) string {
	switch x := e.(type) {
	case *Identifier:
		return x.Name
	case *BitSelect:
		return lhsName(x.Signal)
	case *RangeSelect:
		return lhsName(x.Signal)
	default:
		return ""
	}
}
