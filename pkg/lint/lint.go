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

// Package lint implements the AST rule engine (spec.md §4.4).
package lint

import (
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/ast"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/diag"
)

// Rule is a single named check over a module.  The registry is fixed at
// package init but is itself just a slice, so an embedding caller can extend
// it with Register (spec.md §4.4: "The registry is fixed but extensible").
type Rule struct {
	Name        string
	Description string
	Severity    diag.Severity
	Check       func(m *ast.Module, file string) []diag.Diagnostic
}

var registry = []Rule{
	undrivenSignalRule,
	multiDrivenSignalRule,
	blockingInSequentialRule,
	nonblockingInCombinationalRule,
	missingDefaultCaseRule,
	incompleteSensitivityRule,
}

// Rules returns the current registry, in registration order.
func Rules() []Rule {
	out := make([]Rule, len(registry))
	copy(out, registry)

	return out
}

// Register appends a rule to the registry.  Intended for embedding callers
// that want project-specific checks alongside the built-in six.
func Register(r Rule) {
	registry = append(registry, r)
}

// Run executes every registered rule over m and returns the concatenation of
// their diagnostics, in rule-registration order.  file is attached to every
// diagnostic's Location so the error formatter (pkg/diag) can later render
// the offending source line.
func Run(m *ast.Module, file string) []diag.Diagnostic {
	var out []diag.Diagnostic

	for _, r := range registry {
		out = append(out, r.Check(m, file)...)
	}

	return out
}
