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
package diag

import (
	"strings"
	"testing"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/source"
)

func TestFormat_NilFile_OmitsSnippet(t *testing.T) {
	f := NewFormatter()
	d := New(CodeSyntaxError, Error, "bad token")

	got := f.Format(d, nil)
	if got.SourceLine != "" || got.Caret != "" {
		t.Errorf("expected no snippet with a nil file, got %+v", got)
	}
}

func TestFormat_WithFile_ProducesCaretAndContext(t *testing.T) {
	file := source.NewFileFromString("top.v", "module top;\n  wire a;\nendmodule\n")

	span := source.NewSpan(source.Position{Line: 2, Column: 3}, source.Position{Line: 2, Column: 4})
	d := At(CodeUndrivenSignal, Warning, "undriven signal a", "top.v", span)

	f := NewFormatter()
	got := f.Format(d, file)

	if got.SourceLine != "2 | "+"  wire a;" {
		t.Errorf("unexpected source line: %q", got.SourceLine)
	}

	if len(got.ContextLines) != 2 {
		t.Errorf("expected 2 context lines (radius 1), got %d: %v", len(got.ContextLines), got.ContextLines)
	}

	rendered := got.String()
	if !strings.Contains(rendered, "top.v:2:3: warning: [E101] undriven signal a") {
		t.Errorf("expected header line, got:\n%s", rendered)
	}

	if !strings.Contains(rendered, "^") {
		t.Errorf("expected a caret, got:\n%s", rendered)
	}
}

func TestFormat_EmptyCode_InfersFromMessage(t *testing.T) {
	f := NewFormatter()
	d := Diagnostic{Severity: Error, Message: "undefined signal foo used in expression"}

	got := f.Format(d, nil)
	if got.Code != CodeUndefinedSignal {
		t.Errorf("expected inferred code %s, got %s", CodeUndefinedSignal, got.Code)
	}
}

func TestFormatted_String_IncludesSuggestion(t *testing.T) {
	d := New(CodeMissingDefault, Warning, "missing default case").WithSuggestion("add a default: arm")

	f := NewFormatter()
	rendered := f.Format(d, nil).String()

	if !strings.Contains(rendered, "help: add a default: arm") {
		t.Errorf("expected suggestion line, got:\n%s", rendered)
	}
}
