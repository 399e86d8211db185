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
package parser

import "fmt"

var tagNames = map[Tag]string{
	TagModule:           "Module",
	TagPort:             "Port",
	TagRange:            "Range",
	TagDecl:             "Decl",
	TagInstance:         "Instance",
	TagContinuousAssign: "ContinuousAssign",
	TagAlways:           "Always",
	TagSensItem:         "SensItem",
	TagIf:               "If",
	TagCase:             "Case",
	TagCaseItem:         "CaseItem",
	TagBeginEnd:         "BeginEnd",
	TagAssign:           "Assign",
	TagInitialBlock:     "InitialBlock",
	TagExprIdent:        "ExprIdent",
	TagExprNumber:       "ExprNumber",
	TagExprBinary:       "ExprBinary",
	TagExprUnary:        "ExprUnary",
	TagExprTernary:      "ExprTernary",
	TagExprConcat:       "ExprConcat",
	TagExprReplication:  "ExprReplication",
	TagExprBitSelect:    "ExprBitSelect",
	TagExprRangeSelect:  "ExprRangeSelect",
}

// String implements fmt.Stringer, used by the "rtlcore parse" CST dump.
func (t Tag) String() string {
	if n, ok := tagNames[t]; ok {
		return n
	}

	return fmt.Sprintf("Tag(%d)", int(t))
}
