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
package lint

import (
	"fmt"
	"sort"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/ast"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/diag"
)

var undrivenSignalRule = Rule{
	Name:        "undriven-signal",
	Description: "a declared wire/reg or output port never appears as an assignment LHS",
	Severity:    diag.Error,
	Check:       checkUndrivenSignal,
}

var multiDrivenSignalRule = Rule{
	Name:        "multi-driven-signal",
	Description: "a signal is driven by more than one continuous assign or always block",
	Severity:    diag.Error,
	Check:       checkMultiDrivenSignal,
}

var blockingInSequentialRule = Rule{
	Name:        "blocking-in-sequential",
	Description: "a blocking assignment appears inside a clocked always block",
	Severity:    diag.Warning,
	Check:       checkBlockingInSequential,
}

var nonblockingInCombinationalRule = Rule{
	Name:        "nonblocking-in-combinational",
	Description: "a non-blocking assignment appears inside a combinational always block",
	Severity:    diag.Warning,
	Check:       checkNonblockingInCombinational,
}

var missingDefaultCaseRule = Rule{
	Name:        "missing-default-case",
	Description: "a case statement has no default arm",
	Severity:    diag.Warning,
	Check:       checkMissingDefaultCase,
}

var incompleteSensitivityRule = Rule{
	Name:        "incomplete-sensitivity",
	Description: "a combinational always block uses an explicit sensitivity list instead of @(*)",
	Severity:    diag.Info,
	Check:       checkIncompleteSensitivity,
}

// driverSet tracks, per signal name, the set of distinct driver sources
// (each a *ast.ContinuousAssign or *ast.AlwaysBlock) that write it -- a
// signal written twice within the same always block still counts as one
// driver (spec.md §4.4 rule 2: "counting each continuous assign and each
// always block as one driver").
func driverSet(m *ast.Module) map[string][]any {
	drivers := map[string][]any{}

	add := func(name string, src any) {
		if name == "" {
			return
		}

		for _, s := range drivers[name] {
			if s == src {
				return
			}
		}

		drivers[name] = append(drivers[name], src)
	}

	for _, a := range m.Assigns {
		add(lhsBase(a.Lhs), a)
	}

	for _, ab := range m.Always {
		ast.WalkStatements(ab.Body, func(s ast.Statement) {
			add(ast.AssignmentTarget(s), ab)
		})
	}

	return drivers
}

// lhsBase returns the underlying signal name of a continuous-assign LHS,
// unwrapping bit/range selects (spec.md §4.4: "Bit/range selects count as a
// reference to the underlying name").
func lhsBase(e ast.Expression) string {
	switch x := e.(type) {
	case *ast.Identifier:
		return x.Name
	case *ast.BitSelect:
		return lhsBase(x.Signal)
	case *ast.RangeSelect:
		return lhsBase(x.Signal)
	default:
		return ""
	}
}

func checkUndrivenSignal(m *ast.Module, file string) []diag.Diagnostic {
	drivers := driverSet(m)

	var diags []diag.Diagnostic

	seen := map[string]bool{}

	require := func(name string, loc *ast.PortDeclaration, decl *ast.Declaration) {
		if seen[name] {
			return
		}

		seen[name] = true

		if len(drivers[name]) > 0 {
			return
		}

		switch {
		case loc != nil:
			diags = append(diags, diag.At(diag.CodeUndrivenSignal, diag.Error,
				fmt.Sprintf("output %q is never driven", name), file, loc.Loc))
		case decl != nil:
			diags = append(diags, diag.At(diag.CodeUndrivenSignal, diag.Error,
				fmt.Sprintf("%s %q is never driven", decl.Kind, name), file, decl.Loc))
		}
	}

	for _, p := range m.Ports {
		if p.Direction == ast.Input {
			continue
		}

		require(p.Name, p, nil)
	}

	for _, d := range m.Declarations {
		switch d.Kind {
		case ast.DeclWire, ast.DeclReg, ast.DeclInteger:
			for _, n := range d.Names {
				require(n, nil, d)
			}
		}
	}

	return diags
}

func checkMultiDrivenSignal(m *ast.Module, file string) []diag.Diagnostic {
	var diags []diag.Diagnostic

	drivers := driverSet(m)

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		if srcs := drivers[name]; len(srcs) > 1 {
			diags = append(diags, diag.At(diag.CodeMultiDriven, diag.Error,
				fmt.Sprintf("signal %q is driven by %d sources", name, len(srcs)), file, m.Loc))
		}
	}

	return diags
}

func checkBlockingInSequential(m *ast.Module, file string) []diag.Diagnostic {
	var diags []diag.Diagnostic

	for _, ab := range m.Always {
		if ab.Class != ast.Sequential {
			continue
		}

		ast.WalkStatements(ab.Body, func(s ast.Statement) {
			a, ok := s.(*ast.Assignment)
			if !ok || a.Op != ast.Blocking {
				return
			}

			diags = append(diags, diag.At(diag.CodeBlockingInSeq, diag.Warning,
				"blocking assignment in clocked always block", file, a.Loc))
		})
	}

	return diags
}

func checkNonblockingInCombinational(m *ast.Module, file string) []diag.Diagnostic {
	var diags []diag.Diagnostic

	for _, ab := range m.Always {
		if ab.Class != ast.Combinational {
			continue
		}

		ast.WalkStatements(ab.Body, func(s ast.Statement) {
			a, ok := s.(*ast.Assignment)
			if !ok || a.Op != ast.NonBlocking {
				return
			}

			diags = append(diags, diag.At(diag.CodeNonblockingInComb, diag.Warning,
				"non-blocking assignment in combinational always block", file, a.Loc))
		})
	}

	return diags
}

func checkMissingDefaultCase(m *ast.Module, file string) []diag.Diagnostic {
	var diags []diag.Diagnostic

	visit := func(s ast.Statement) {
		c, ok := s.(*ast.CaseStatement)
		if !ok || c.HasDefault() {
			return
		}

		diags = append(diags, diag.At(diag.CodeMissingDefault, diag.Warning,
			fmt.Sprintf("%s statement has no default arm", c.Kind), file, c.Loc))
	}

	for _, ab := range m.Always {
		ast.WalkStatements(ab.Body, visit)
	}

	for _, init := range m.Initial {
		ast.WalkStatements(init, visit)
	}

	return diags
}

func checkIncompleteSensitivity(m *ast.Module, file string) []diag.Diagnostic {
	var diags []diag.Diagnostic

	for _, ab := range m.Always {
		if ab.Class != ast.Combinational || ab.Star {
			continue
		}

		if len(ab.Sensitivity) == 0 {
			continue
		}

		diags = append(diags, diag.At(diag.CodeIncompleteSens, diag.Info,
			"combinational always block should use @(*) instead of an explicit sensitivity list", file, ab.Loc))
	}

	return diags
}
