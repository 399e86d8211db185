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

import "github.com/Cirkitly/rtl-copilot-sub000/pkg/source"

// Statement is implemented by every statement variant (spec.md §3.1):
// BlockingAssignment, NonBlockingAssignment, If, Case, BeginEnd and, at
// module top level only, ContinuousAssign.
type Statement interface {
	Node
	statementNode()
}

// Assignment covers both blocking ("=") and non-blocking ("<=") assignments
// (spec.md §3.1).  AssignOp distinguishes the two.
type Assignment struct {
	Op  AssignOp
	Lhs Expression
	Rhs Expression
	Loc source.Span
}

// AssignOp identifies whether an Assignment is blocking or non-blocking.
type AssignOp int

// The closed set of assignment operators.
const (
	Blocking AssignOp = iota
	NonBlocking
)

// String implements fmt.Stringer.
func (o AssignOp) String() string {
	if o == NonBlocking {
		return "<="
	}

	return "="
}

// Span implements Node.
func (a *Assignment) Span() source.Span { return a.Loc }
func (a *Assignment) statementNode()     {}

// If is an "if (cond) then [else else]" statement (spec.md §3.1).
type If struct {
	Cond Expression
	Then Statement
	Else Statement // nil when there is no else branch
	Loc  source.Span
}

// Span implements Node.
func (i *If) Span() source.Span { return i.Loc }
func (i *If) statementNode()     {}

// CaseKind classifies a case statement (spec.md §3.1).
type CaseKind int

// The closed set of case-statement kinds.
const (
	Case CaseKind = iota
	Casex
	Casez
)

// String implements fmt.Stringer.
func (k CaseKind) String() string {
	switch k {
	case Casex:
		return "casex"
	case Casez:
		return "casez"
	default:
		return "case"
	}
}

// CaseItem is a single arm of a case statement (spec.md §3.1).  Default is
// true for the sentinel "default:" arm, in which case Values is empty.
type CaseItem struct {
	Values  []Expression
	Default bool
	Body    []Statement
	Loc     source.Span
}

// CaseStatement is a "case|casex|casez (selector) ... endcase" (spec.md
// §3.1).
type CaseStatement struct {
	Kind     CaseKind
	Selector Expression
	Items    []CaseItem
	Loc      source.Span
}

// Span implements Node.
func (c *CaseStatement) Span() source.Span { return c.Loc }
func (c *CaseStatement) statementNode()     {}

// HasDefault reports whether this case statement has a default arm
// (used by the missing-default-case lint rule, spec.md §4.4 rule 5).
func (c *CaseStatement) HasDefault() bool {
	for _, it := range c.Items {
		if it.Default {
			return true
		}
	}

	return false
}

// BeginEnd is a "begin ... end" block of statements (spec.md §3.1).
type BeginEnd struct {
	Body []Statement
	Loc  source.Span
}

// Span implements Node.
func (b *BeginEnd) Span() source.Span { return b.Loc }
func (b *BeginEnd) statementNode()     {}

// ContinuousAssignStatement wraps a ContinuousAssign so it can also appear
// as a Statement for tree-walking purposes, even though the grammar only
// permits continuous assigns at module top level (spec.md §3.1).
type ContinuousAssignStatement struct {
	Assign *ContinuousAssign
}

// Span implements Node.
func (c *ContinuousAssignStatement) Span() source.Span { return c.Assign.Loc }
func (c *ContinuousAssignStatement) statementNode()     {}
