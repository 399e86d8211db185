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

// Package source provides the source-file and position model shared by the
// lexer, parser and diagnostic formatter.
package source

import "fmt"

// Position identifies a single character within a source file.  Lines and
// columns both count from 1.
type Position struct {
	Line   int
	Column int
}

// String implements fmt.Stringer.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span identifies a contiguous range of characters within a source file,
// from Start (inclusive) to End (exclusive).
type Span struct {
	Start Position
	End   Position
}

// NewSpan constructs a span running from start to end.
func NewSpan(start, end Position) Span {
	return Span{start, end}
}

// SingleChar constructs a span covering exactly one character at pos.
func SingleChar(pos Position) Span {
	end := pos
	end.Column++

	return Span{pos, end}
}

// File represents a source file being lexed, parsed and/or reported against.
type File struct {
	// Name is the filename (or a synthetic name such as "<string>") used when
	// reporting diagnostics.
	Name string
	// Text is the complete file contents.
	Text []rune
	// lineOffsets[i] is the rune index at which line i+1 begins.
	lineOffsets []int
}

// NewFile constructs a new source file from raw bytes.
func NewFile(name string, contents []byte) *File {
	return NewFileFromString(name, string(contents))
}

// NewFileFromString constructs a new source file from a string.
func NewFileFromString(name string, contents string) *File {
	text := []rune(contents)
	offsets := []int{0}

	for i, r := range text {
		if r == '\n' {
			offsets = append(offsets, i+1)
		}
	}

	return &File{name, text, offsets}
}

// LineCount returns the number of lines in this file.
func (f *File) LineCount() int {
	return len(f.lineOffsets)
}

// Line returns the (newline-stripped) text of the given 1-based line number.
// An out-of-range line number yields an empty string.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.lineOffsets) {
		return ""
	}

	start := f.lineOffsets[n-1]
	end := len(f.Text)

	if n < len(f.lineOffsets) {
		end = f.lineOffsets[n] - 1
	}

	if end > len(f.Text) {
		end = len(f.Text)
	}

	if end < start {
		end = start
	}

	return string(f.Text[start:end])
}
