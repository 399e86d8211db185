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

// Package diag implements the diagnostic model shared by the lexer, parser,
// lint validator and FSM validator (spec.md §3.2), along with the error
// formatter (spec.md §4.6).
package diag

import (
	"fmt"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/source"
)

// Severity classifies how serious a diagnostic is.
type Severity int

// The closed set of severities (spec.md §3.2).
const (
	Error Severity = iota
	Warning
	Info
	Hint
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Hint:
		return "hint"
	default:
		return "unknown"
	}
}

// Location pins a diagnostic to a range of a named file.
type Location struct {
	File string
	Span source.Span
}

// Diagnostic is a single structured report produced by any stage of the
// pipeline (spec.md §3.2).
type Diagnostic struct {
	// Code is a stable short identifier, e.g. "E101" (spec.md §6).
	Code string
	// Severity classifies the diagnostic.
	Severity Severity
	// Message is the human-readable description.
	Message string
	// Location is where in the source this diagnostic applies; nil when the
	// diagnostic has no associated location (e.g. an FSM-level error).
	Location *Location
	// Suggestion is an optional fix-it hint.
	Suggestion string
}

// New constructs a diagnostic with no location.
func New(code string, severity Severity, message string) Diagnostic {
	return Diagnostic{Code: code, Severity: severity, Message: message}
}

// At constructs a diagnostic located at span within file.
func At(code string, severity Severity, message, file string, span source.Span) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: severity,
		Message:  message,
		Location: &Location{File: file, Span: span},
	}
}

// WithSuggestion returns a copy of d with Suggestion set.
func (d Diagnostic) WithSuggestion(s string) Diagnostic {
	d.Suggestion = s
	return d
}

// String gives a compact one-line rendering, mirroring the teacher's
// SyntaxError.Error() (pkg/sexp/error.go): "<file>:<line>:<col>: <severity>:
// [<code>] <message>".
func (d Diagnostic) String() string {
	if d.Location == nil {
		return fmt.Sprintf("%s: [%s] %s", d.Severity, d.Code, d.Message)
	}

	return fmt.Sprintf("%s:%s: %s: [%s] %s",
		d.Location.File, d.Location.Span.Start, d.Severity, d.Code, d.Message)
}
