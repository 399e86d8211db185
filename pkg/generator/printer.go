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

import (
	"strings"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/token"
)

// printer is the low-level indentation-aware writer shared by every emit*
// function in this package.
type printer struct {
	opts     Options
	comments map[int]string // source line (1-based) -> comment text immediately preceding that line
	b        strings.Builder
	level    int
	atLineStart bool
}

func newPrinter(opts Options, comments []token.Token) *printer {
	p := &printer{opts: opts, atLineStart: true}

	if opts.PreserveComments {
		p.comments = make(map[int]string, len(comments))
		for _, c := range comments {
			p.comments[c.Span.End.Line+1] = commentText(c)
		}
	}

	return p
}

func commentText(t token.Token) string {
	if t.Kind == token.COMMENT_BLOCK {
		return t.Text
	}

	return "//" + t.Text
}

func (p *printer) indent() string {
	return strings.Repeat(string(p.opts.IndentChar), p.opts.IndentSize*p.level)
}

func (p *printer) writeCommentAbove(line int) {
	if p.comments == nil {
		return
	}

	if text, ok := p.comments[line]; ok {
		p.line(text)
	}
}

// raw writes s with no indentation or trailing newline.
func (p *printer) raw(s string) {
	p.b.WriteString(s)
	p.atLineStart = false
}

// line writes s indented to the current level, followed by a newline.
func (p *printer) line(s string) {
	if s == "" {
		p.b.WriteString("\n")
	} else {
		p.b.WriteString(p.indent())
		p.b.WriteString(s)
		p.b.WriteString("\n")
	}

	p.atLineStart = true
}

func (p *printer) blank() {
	p.b.WriteString("\n")
}

func (p *printer) String() string {
	return p.b.String()
}
