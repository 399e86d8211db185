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

// Package parser implements the CST parser (spec.md §4.2) and the AST
// builder that walks a CST into the typed tree of pkg/ast.
package parser

import (
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/source"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/token"
)

// Tag identifies the grammar production a CST node was built from.
type Tag int

// The closed set of CST productions recognised by Build (pkg/parser/builder.go).
const (
	TagModule Tag = iota
	TagPort
	TagRange
	TagDecl
	TagInstance
	TagContinuousAssign
	TagAlways
	TagSensItem
	TagIf
	TagCase
	TagCaseItem
	TagBeginEnd
	TagAssign
	TagInitialBlock

	TagExprIdent
	TagExprNumber
	TagExprBinary
	TagExprUnary
	TagExprTernary
	TagExprConcat
	TagExprReplication
	TagExprBitSelect
	TagExprRangeSelect
)

// CST is a generic, tagged concrete-syntax-tree node.  The parser emits a
// tree of these; the builder (builder.go) performs a tag-directed walk to
// produce the typed AST, panicking with an ArityError if a node's Children
// or Tokens do not match what its Tag requires -- this can only happen from
// a parser bug, never from malformed user source, since the parser itself
// only ever emits well-formed nodes for a given Tag (spec.md §4.2 "Result").
type CST struct {
	Tag Tag
	// Tokens holds the literal tokens this node directly owns (operators,
	// keywords, names, number/string literals).
	Tokens []token.Token
	// Children holds the single positional sub-nodes a production needs
	// (e.g. a Binary's left/right operands, an If's condition).
	Children []*CST
	// Lists holds named, possibly-empty repeated sub-node groups (e.g. a
	// module's ports, a case statement's items) so that arity can be
	// checked per named group rather than via fragile positional indices.
	Lists map[string][]*CST
	// Flag carries the one boolean discriminator some productions need
	// (e.g. "@(*)" vs. an explicit sensitivity list, or a case item's
	// "default:" arm) that isn't otherwise recoverable from Tokens.
	Flag bool
	// Text carries raw un-tokenised source text for productions that are
	// deliberately not parsed in detail (spec.md §3.1 Instance.RawPorts).
	Text string
	Span source.Span
}

// kids returns the node's "children" named list, defaulting to nil.
func (c *CST) kids(name string) []*CST {
	if c.Lists == nil {
		return nil
	}

	return c.Lists[name]
}

// ArityError is the distinct panic raised by the AST builder when it
// encounters a CST node whose shape does not match its Tag -- an internal
// invariant violation, never a user-source error (spec.md §4.2, §7
// "Internal invariant violation").
type ArityError struct {
	Tag     Tag
	Message string
}

// Error implements the error interface so ArityError can be used with panic
// and recovered via a type assertion.
func (e *ArityError) Error() string {
	return e.Message
}

func arityPanic(tag Tag, msg string) {
	panic(&ArityError{Tag: tag, Message: msg})
}
