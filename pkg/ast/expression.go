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

// Expression is implemented by every expression variant (spec.md §3.1):
// Identifier, Number, Binary, Unary, Ternary, Concat, Replication,
// BitSelect, RangeSelect.
type Expression interface {
	Node
	expressionNode()
}

// Identifier references a previously-declared name (spec.md §3.1).
type Identifier struct {
	Name string
	Loc  source.Span
}

// Span implements Node.
func (i *Identifier) Span() source.Span { return i.Loc }
func (i *Identifier) expressionNode()    {}

// Number is an unsized or sized numeric literal (spec.md §3.1).  Sized is
// false for a plain decimal literal, in which case Width and Base are
// unused.  Base is one of 'b', 'o', 'h', 'd' (always lower-case).
type Number struct {
	Text  string // original spelling, emitted verbatim by the generator
	Sized bool
	Width int
	Base  byte
	Loc   source.Span
}

// Span implements Node.
func (n *Number) Span() source.Span { return n.Loc }
func (n *Number) expressionNode()    {}

// BinaryOp identifies a binary operator (spec.md §4.2 precedence table).
type BinaryOp int

// The closed set of binary operators, ordered lowest-to-highest precedence
// as in spec.md §4.2 (excluding the ternary, which is modeled by Ternary).
const (
	LogOr BinaryOp = iota
	LogAnd
	BitOr
	BitXor
	BitAnd
	Eq
	Neq
	CaseEq
	CaseNeq
	Lt
	Gt
	Le
	Ge
	Shl
	Shr
	Ashr
	Add
	Sub
	Mul
	Div
	Mod
	Exp
)

var binaryOpText = map[BinaryOp]string{
	LogOr: "||", LogAnd: "&&", BitOr: "|", BitXor: "^", BitAnd: "&",
	Eq: "==", Neq: "!=", CaseEq: "===", CaseNeq: "!==",
	Lt: "<", Gt: ">", Le: "<=", Ge: ">=",
	Shl: "<<", Shr: ">>", Ashr: ">>>",
	Add: "+", Sub: "-", Mul: "*", Div: "/", Mod: "%", Exp: "**",
}

// String implements fmt.Stringer.
func (o BinaryOp) String() string { return binaryOpText[o] }

// Binary is a two-operand expression (spec.md §3.1).
type Binary struct {
	Op    BinaryOp
	Left  Expression
	Right Expression
	Loc   source.Span
}

// Span implements Node.
func (b *Binary) Span() source.Span { return b.Loc }
func (b *Binary) expressionNode()   {}

// UnaryOp identifies a unary operator (spec.md §4.2).
type UnaryOp int

// The closed set of unary operators.
const (
	LogNot UnaryOp = iota
	BitNot
	Neg
	Pos
)

var unaryOpText = map[UnaryOp]string{LogNot: "!", BitNot: "~", Neg: "-", Pos: "+"}

// String implements fmt.Stringer.
func (o UnaryOp) String() string { return unaryOpText[o] }

// Unary is a single-operand expression (spec.md §3.1).
type Unary struct {
	Op      UnaryOp
	Operand Expression
	Loc     source.Span
}

// Span implements Node.
func (u *Unary) Span() source.Span { return u.Loc }
func (u *Unary) expressionNode()   {}

// Ternary is a "cond ? then : else" expression (spec.md §3.1, §4.2:
// right-associative, lowest precedence).
type Ternary struct {
	Cond Expression
	Then Expression
	Else Expression
	Loc  source.Span
}

// Span implements Node.
func (t *Ternary) Span() source.Span { return t.Loc }
func (t *Ternary) expressionNode()   {}

// Concat is a "{a, b, c}" concatenation (spec.md §3.1).
type Concat struct {
	Elements []Expression
	Loc      source.Span
}

// Span implements Node.
func (c *Concat) Span() source.Span { return c.Loc }
func (c *Concat) expressionNode()   {}

// Replication is a "{count{elements}}" replication (spec.md §3.1).
type Replication struct {
	Count    Expression
	Elements []Expression
	Loc      source.Span
}

// Span implements Node.
func (r *Replication) Span() source.Span { return r.Loc }
func (r *Replication) expressionNode()   {}

// BitSelect is "signal[index]" (spec.md §3.1).
type BitSelect struct {
	Signal Expression
	Index  Expression
	Loc    source.Span
}

// Span implements Node.
func (b *BitSelect) Span() source.Span { return b.Loc }
func (b *BitSelect) expressionNode()   {}

// RangeSelect is "signal[msb:lsb]" (spec.md §3.1).
type RangeSelect struct {
	Signal Expression
	Msb    Expression
	Lsb    Expression
	Loc    source.Span
}

// Span implements Node.
func (r *RangeSelect) Span() source.Span { return r.Loc }
func (r *RangeSelect) expressionNode()   {}
