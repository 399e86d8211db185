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

// Package generator implements the deterministic AST->Verilog pretty-printer
// (spec.md §4.3).
package generator

// Options configures the generator's layout.  The closed set of knobs is
// spec.md §4.3's configuration table; this is a flat, pass-by-value struct
// rather than functional options, matching the teacher's CompilationConfig
// shape (pkg/corset).
type Options struct {
	// IndentSize is the number of IndentChar characters per nesting level.
	IndentSize int
	// IndentChar is the character repeated IndentSize times per level
	// (' ' or '\t').
	IndentChar byte
	// LineWidth is a soft target; port lists break on commas regardless,
	// other lines are allowed to exceed it.
	LineWidth int
	// AlignPorts pads port names to a common column within a module header.
	AlignPorts bool
	// AlignDeclarations pads wire/reg name columns the same way.
	AlignDeclarations bool
	// PreserveComments re-emits comments above the nearest following item
	// when true and the source comments were supplied to Generate.
	PreserveComments bool
}

// DefaultOptions matches spec.md §4.3's stated defaults.
func DefaultOptions() Options {
	return Options{
		IndentSize:        2,
		IndentChar:        ' ',
		LineWidth:         100,
		AlignPorts:        false,
		AlignDeclarations: false,
		PreserveComments:  false,
	}
}
