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
	"fmt"
	"strings"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/source"
	"golang.org/x/term"
)

// Formatted is a diagnostic enriched with the source snippet it refers to,
// ready for textual rendering (spec.md §4.6).
type Formatted struct {
	Diagnostic
	// ContextLines are the lines immediately surrounding the offending line,
	// each already prefixed with its line number.
	ContextLines []string
	// SourceLine is the offending line itself, prefixed with its line number.
	SourceLine string
	// Caret is the "^" (or "^^^" for multi-character spans) pointer line,
	// aligned under SourceLine.
	Caret string
}

// Formatter renders diagnostics with source context (spec.md §4.6).
type Formatter struct {
	// Radius is how many lines of context to show above and below the
	// offending line.  Default 1.
	Radius int
	// Width is the terminal width used to decide whether long lines should
	// be truncated; 0 means "don't truncate".  Populated from
	// golang.org/x/term by NewTerminalFormatter.
	Width int
}

// NewFormatter constructs a formatter with the default radius of 1 and no
// width constraint.
func NewFormatter() *Formatter {
	return &Formatter{Radius: 1}
}

// NewTerminalFormatter constructs a formatter whose Width is taken from the
// given terminal file descriptor, falling back to 0 (unbounded) when the fd
// is not a terminal -- mirroring the teacher's pkg/util/termio use of
// golang.org/x/term to size output for an interactive session.
func NewTerminalFormatter(fd int) *Formatter {
	f := NewFormatter()

	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		f.Width = w
	}

	return f
}

// Format enriches d with source context drawn from file.  file may be nil,
// in which case only the bare diagnostic fields are produced (no snippet).
func (f *Formatter) Format(d Diagnostic, file *source.File) Formatted {
	out := Formatted{Diagnostic: d}

	if d.Code == "" {
		out.Code = inferCode(d)
	}

	if file == nil || d.Location == nil {
		return out
	}

	radius := f.Radius
	if radius <= 0 {
		radius = 1
	}

	line := d.Location.Span.Start.Line
	col := d.Location.Span.Start.Column

	for l := line - radius; l <= line+radius; l++ {
		if l < 1 || l > file.LineCount() || l == line {
			continue
		}

		out.ContextLines = append(out.ContextLines, formatLine(l, file.Line(l), f.Width))
	}

	out.SourceLine = formatLine(line, file.Line(line), f.Width)
	out.Caret = caretLine(line, col, d.Location.Span)

	return out
}

// String renders a formatted diagnostic as
// "<file>:<line>:<col>: <severity>: [<code>] <message>" followed by the
// indented source line, caret, and "help: <suggestion>" when present
// (spec.md §4.6).
func (f Formatted) String() string {
	var b strings.Builder

	if f.Location != nil {
		fmt.Fprintf(&b, "%s:%s: %s: [%s] %s\n", f.Location.File, f.Location.Span.Start, f.Severity, f.Code, f.Message)
	} else {
		fmt.Fprintf(&b, "%s: [%s] %s\n", f.Severity, f.Code, f.Message)
	}

	for _, l := range f.ContextLines {
		if before(l, f.SourceLine) {
			fmt.Fprintf(&b, "  %s\n", l)
		}
	}

	if f.SourceLine != "" {
		fmt.Fprintf(&b, "  %s\n", f.SourceLine)
	}

	if f.Caret != "" {
		fmt.Fprintf(&b, "  %s\n", f.Caret)
	}

	for _, l := range f.ContextLines {
		if !before(l, f.SourceLine) {
			fmt.Fprintf(&b, "  %s\n", l)
		}
	}

	if f.Suggestion != "" {
		fmt.Fprintf(&b, "help: %s\n", f.Suggestion)
	}

	return b.String()
}

// before reports whether context line c (formatted as "N | text") has a
// smaller line number than source line s, used only to place the handful of
// context lines on the correct side of the source line when rendering.
func before(c, s string) bool {
	cn := leadingNumber(c)
	sn := leadingNumber(s)

	return cn < sn
}

func leadingNumber(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}

		n = n*10 + int(r-'0')
	}

	return n
}

func formatLine(number int, text string, width int) string {
	if width > 0 && len(text) > width {
		text = text[:width-1] + "…"
	}

	return fmt.Sprintf("%d | %s", number, text)
}

func caretLine(line, col int, span source.Span) string {
	prefix := fmt.Sprintf("%d | ", line)
	pad := strings.Repeat(" ", len(prefix)+max0(col-1))

	length := 1
	if span.End.Line == span.Start.Line {
		length = max1(span.End.Column - span.Start.Column)
	}

	return pad + strings.Repeat("^", length)
}

func max0(n int) int {
	if n < 0 {
		return 0
	}

	return n
}

func max1(n int) int {
	if n < 1 {
		return 1
	}

	return n
}

// inferCode derives a diagnostic code from keywords in the message when the
// caller omitted one (spec.md §4.6, §4.5 fallback parser).
func inferCode(d Diagnostic) string {
	msg := strings.ToLower(d.Message)

	switch {
	case strings.Contains(msg, "undefined"):
		return CodeUndefinedSignal
	case strings.Contains(msg, "undriven"):
		return CodeUndrivenSignal
	case strings.Contains(msg, "multi") && strings.Contains(msg, "driv"):
		return CodeMultiDriven
	case strings.Contains(msg, "default"):
		return CodeMissingDefault
	case strings.Contains(msg, "sensitivity"):
		return CodeIncompleteSens
	case strings.Contains(msg, "blocking"):
		return CodeBlockingInSeq
	case strings.Contains(msg, "syntax"):
		return CodeSyntaxError
	default:
		return genericCodeFor(d.Severity)
	}
}
