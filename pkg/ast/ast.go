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

// Package ast defines the typed Verilog abstract syntax tree consumed by the
// generator, the lint validator and the FSM extractor (spec.md §3.1).  Each
// node owns its children exclusively; there are no cycles (spec.md
// "Ownership").
package ast

import "github.com/Cirkitly/rtl-copilot-sub000/pkg/source"

// Node is implemented by every AST element that can carry a source location.
type Node interface {
	// Span returns the location of this node in its originating file, or the
	// zero Span if the node was synthesized (e.g. by the FSM generator)
	// rather than parsed.
	Span() source.Span
}

// Direction classifies a module port (spec.md §3.1 PortDeclaration).
type Direction int

// The closed set of port directions.
const (
	Input Direction = iota
	Output
	Inout
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Input:
		return "input"
	case Output:
		return "output"
	case Inout:
		return "inout"
	default:
		return "?"
	}
}

// StorageClass is the optional storage class on a port (spec.md §3.1).
type StorageClass int

// The closed set of storage classes, plus None for "unspecified".
const (
	NoStorage StorageClass = iota
	StorageWire
	StorageReg
)

// Range is an inclusive [msb:lsb] bit range with expression endpoints
// (spec.md §3.1).
type Range struct {
	Msb Expression
	Lsb Expression
	Loc source.Span
}

// Span implements Node.
func (r Range) Span() source.Span { return r.Loc }

// PortDeclaration is a single entry in a module's ANSI-style port list
// (spec.md §3.1).
type PortDeclaration struct {
	Direction Direction
	Storage   StorageClass
	Range     *Range
	Name      string
	Loc       source.Span
}

// Span implements Node.
func (p *PortDeclaration) Span() source.Span { return p.Loc }

// DeclKind classifies a Declaration (spec.md §3.1).
type DeclKind int

// The closed set of declaration kinds.
const (
	DeclWire DeclKind = iota
	DeclReg
	DeclParameter
	DeclLocalparam
	DeclInteger
)

// String implements fmt.Stringer.
func (k DeclKind) String() string {
	switch k {
	case DeclWire:
		return "wire"
	case DeclReg:
		return "reg"
	case DeclParameter:
		return "parameter"
	case DeclLocalparam:
		return "localparam"
	case DeclInteger:
		return "integer"
	default:
		return "?"
	}
}

// Declaration is a wire/reg/parameter/localparam/integer declaration
// (spec.md §3.1).  Wire/Reg/Integer carry one-or-more Names; Reg may
// additionally carry an ArrayRange (e.g. "reg [7:0] mem [0:255]");
// Parameter/Localparam carry exactly one name in Names and a non-nil Value.
type Declaration struct {
	Kind       DeclKind
	Range      *Range
	Names      []string
	ArrayRange *Range
	Value      Expression
	Loc        source.Span
}

// Span implements Node.
func (d *Declaration) Span() source.Span { return d.Loc }

// Module is the top-level unit of the supported Verilog subset (spec.md
// §3.1).
type Module struct {
	Name         string
	Ports        []*PortDeclaration
	Parameters   []*Declaration
	Declarations []*Declaration
	Always       []*AlwaysBlock
	Initial      []Statement
	Assigns      []*ContinuousAssign
	Instances    []*Instance
	Loc          source.Span
}

// Span implements Node.
func (m *Module) Span() source.Span { return m.Loc }

// Instance is a submodule instantiation.  The supported subset does not
// parse the connection list in detail (ports-by-name binding is out of
// scope); only the module/instance names and the raw port-connection text
// are retained, which is sufficient for lint/generation round-tripping of
// the instances the extractor and generator never need to inspect.
type Instance struct {
	ModuleName   string
	InstanceName string
	RawPorts     string
	Loc          source.Span
}

// Span implements Node.
func (i *Instance) Span() source.Span { return i.Loc }

// ContinuousAssign is a top-level "assign lhs = rhs;" (spec.md §3.1).
type ContinuousAssign struct {
	Lhs Expression
	Rhs Expression
	Loc source.Span
}

// Span implements Node.
func (c *ContinuousAssign) Span() source.Span { return c.Loc }

// SensitivityItem is one entry of an always block's sensitivity list
// (spec.md §3.1).
type SensitivityItem struct {
	Signal string
	Edge   Edge
	Loc    source.Span
}

// Edge classifies an optional clock edge on a sensitivity item.
type Edge int

// The closed set of edges, plus NoEdge for a level-sensitive entry.
const (
	NoEdge Edge = iota
	Posedge
	Negedge
)

// String implements fmt.Stringer.
func (e Edge) String() string {
	switch e {
	case Posedge:
		return "posedge"
	case Negedge:
		return "negedge"
	default:
		return ""
	}
}

// AlwaysClass classifies an always block as combinational or sequential
// (spec.md §3.1).
type AlwaysClass int

// The closed set of always-block classifications.
const (
	Combinational AlwaysClass = iota
	Sequential
)

// AlwaysBlock is an "always @(...) ..." block (spec.md §3.1).  Star
// indicates "@(*)"; a non-star block has a non-empty ordered Sensitivity.
type AlwaysBlock struct {
	Class       AlwaysClass
	Star        bool
	Sensitivity []SensitivityItem
	Body        Statement
	Loc         source.Span
}

// Span implements Node.
func (a *AlwaysBlock) Span() source.Span { return a.Loc }

// HasEdge reports whether any sensitivity item carries an explicit edge.
func (a *AlwaysBlock) HasEdge() bool {
	for _, s := range a.Sensitivity {
		if s.Edge != NoEdge {
			return true
		}
	}

	return false
}
