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
package generator

import "github.com/Cirkitly/rtl-copilot-sub000/pkg/ast"

// equalModules compares two modules structurally, ignoring source.Span on
// every node: the round-trip contract (spec.md §4.3) is about tree shape,
// not byte offsets.
func equalModules(a, b *ast.Module) bool {
	if a.Name != b.Name || len(a.Ports) != len(b.Ports) ||
		len(a.Parameters) != len(b.Parameters) || len(a.Declarations) != len(b.Declarations) ||
		len(a.Always) != len(b.Always) || len(a.Initial) != len(b.Initial) ||
		len(a.Assigns) != len(b.Assigns) || len(a.Instances) != len(b.Instances) {
		return false
	}

	for i := range a.Ports {
		if !equalPort(a.Ports[i], b.Ports[i]) {
			return false
		}
	}

	for i := range a.Parameters {
		if !equalDecl(a.Parameters[i], b.Parameters[i]) {
			return false
		}
	}

	for i := range a.Declarations {
		if !equalDecl(a.Declarations[i], b.Declarations[i]) {
			return false
		}
	}

	for i := range a.Always {
		if !equalAlways(a.Always[i], b.Always[i]) {
			return false
		}
	}

	for i := range a.Initial {
		if !equalStatement(a.Initial[i], b.Initial[i]) {
			return false
		}
	}

	for i := range a.Assigns {
		if !equalExpr(a.Assigns[i].Lhs, b.Assigns[i].Lhs) || !equalExpr(a.Assigns[i].Rhs, b.Assigns[i].Rhs) {
			return false
		}
	}

	for i := range a.Instances {
		if a.Instances[i].ModuleName != b.Instances[i].ModuleName ||
			a.Instances[i].InstanceName != b.Instances[i].InstanceName {
			return false
		}
	}

	return true
}

func equalPort(a, b *ast.PortDeclaration) bool {
	return a.Direction == b.Direction && a.Storage == b.Storage && a.Name == b.Name && equalRange(a.Range, b.Range)
}

func equalRange(a, b *ast.Range) bool {
	if (a == nil) != (b == nil) {
		return false
	}

	if a == nil {
		return true
	}

	return equalExpr(a.Msb, b.Msb) && equalExpr(a.Lsb, b.Lsb)
}

func equalDecl(a, b *ast.Declaration) bool {
	if a.Kind != b.Kind || len(a.Names) != len(b.Names) {
		return false
	}

	for i := range a.Names {
		if a.Names[i] != b.Names[i] {
			return false
		}
	}

	if !equalRange(a.Range, b.Range) || !equalRange(a.ArrayRange, b.ArrayRange) {
		return false
	}

	return equalExpr(a.Value, b.Value)
}

func equalAlways(a, b *ast.AlwaysBlock) bool {
	if a.Class != b.Class || a.Star != b.Star || len(a.Sensitivity) != len(b.Sensitivity) {
		return false
	}

	for i := range a.Sensitivity {
		if a.Sensitivity[i].Signal != b.Sensitivity[i].Signal || a.Sensitivity[i].Edge != b.Sensitivity[i].Edge {
			return false
		}
	}

	return equalStatement(a.Body, b.Body)
}

func equalStatement(a, b ast.Statement) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case *ast.Assignment:
		y, ok := b.(*ast.Assignment)

		return ok && x.Op == y.Op && equalExpr(x.Lhs, y.Lhs) && equalExpr(x.Rhs, y.Rhs)
	case *ast.If:
		y, ok := b.(*ast.If)

		return ok && equalExpr(x.Cond, y.Cond) && equalStatement(x.Then, y.Then) && equalStatement(x.Else, y.Else)
	case *ast.CaseStatement:
		y, ok := b.(*ast.CaseStatement)
		if !ok || x.Kind != y.Kind || !equalExpr(x.Selector, y.Selector) || len(x.Items) != len(y.Items) {
			return false
		}

		for i := range x.Items {
			if !equalCaseItem(x.Items[i], y.Items[i]) {
				return false
			}
		}

		return true
	case *ast.BeginEnd:
		y, ok := b.(*ast.BeginEnd)
		if !ok || len(x.Body) != len(y.Body) {
			return false
		}

		for i := range x.Body {
			if !equalStatement(x.Body[i], y.Body[i]) {
				return false
			}
		}

		return true
	case *ast.ContinuousAssignStatement:
		y, ok := b.(*ast.ContinuousAssignStatement)

		return ok && equalExpr(x.Assign.Lhs, y.Assign.Lhs) && equalExpr(x.Assign.Rhs, y.Assign.Rhs)
	default:
		return false
	}
}

func equalCaseItem(a, b ast.CaseItem) bool {
	if a.Default != b.Default || len(a.Values) != len(b.Values) || len(a.Body) != len(b.Body) {
		return false
	}

	for i := range a.Values {
		if !equalExpr(a.Values[i], b.Values[i]) {
			return false
		}
	}

	for i := range a.Body {
		if !equalStatement(a.Body[i], b.Body[i]) {
			return false
		}
	}

	return true
}

func equalExpr(a, b ast.Expression) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case *ast.Identifier:
		y, ok := b.(*ast.Identifier)

		return ok && x.Name == y.Name
	case *ast.Number:
		y, ok := b.(*ast.Number)

		return ok && x.Text == y.Text && x.Sized == y.Sized && x.Width == y.Width && x.Base == y.Base
	case *ast.Binary:
		y, ok := b.(*ast.Binary)

		return ok && x.Op == y.Op && equalExpr(x.Left, y.Left) && equalExpr(x.Right, y.Right)
	case *ast.Unary:
		y, ok := b.(*ast.Unary)

		return ok && x.Op == y.Op && equalExpr(x.Operand, y.Operand)
	case *ast.Ternary:
		y, ok := b.(*ast.Ternary)

		return ok && equalExpr(x.Cond, y.Cond) && equalExpr(x.Then, y.Then) && equalExpr(x.Else, y.Else)
	case *ast.Concat:
		y, ok := b.(*ast.Concat)

		return ok && equalExprList(x.Elements, y.Elements)
	case *ast.Replication:
		y, ok := b.(*ast.Replication)

		return ok && equalExpr(x.Count, y.Count) && equalExprList(x.Elements, y.Elements)
	case *ast.BitSelect:
		y, ok := b.(*ast.BitSelect)

		return ok && equalExpr(x.Signal, y.Signal) && equalExpr(x.Index, y.Index)
	case *ast.RangeSelect:
		y, ok := b.(*ast.RangeSelect)

		return ok && equalExpr(x.Signal, y.Signal) && equalExpr(x.Msb, y.Msb) && equalExpr(x.Lsb, y.Lsb)
	default:
		return false
	}
}

func equalExprList(a, b []ast.Expression) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !equalExpr(a[i], b[i]) {
			return false
		}
	}

	return true
}
