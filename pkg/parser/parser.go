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

import (
	"fmt"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/diag"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/source"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/token"
)

// Parser consumes a token stream and produces a CST, recovering from
// mismatches at module-item granularity and never aborting on the first
// error (spec.md §4.2 "Error recovery").
type Parser struct {
	file  *source.File
	toks  []token.Token
	pos   int
	diags []diag.Diagnostic
}

// Result bundles everything ParseModules produces.
type Result struct {
	Modules     []*CST
	Diagnostics []diag.Diagnostic
}

// ParseModules parses every top-level module in file, recovering between
// modules on error (spec.md §4.2).
func ParseModules(file *source.File) Result {
	lexed := token.Lex(file)

	p := &Parser{file: file, toks: lexed.Tokens}
	p.diags = append(p.diags, lexed.Errors...)

	var mods []*CST

	for !p.at(token.EOF) {
		m := p.parseModule()
		if m != nil {
			mods = append(mods, m)
		} else {
			// Recovery: skip to the next 'module' keyword or EOF.
			p.skipUntil(token.MODULE)
		}
	}

	return Result{Modules: mods, Diagnostics: p.diags}
}

// Parse parses the first module in file and returns it along with all
// diagnostics collected across the whole file.
func Parse(file *source.File) (*CST, []diag.Diagnostic) {
	r := ParseModules(file)

	var m *CST
	if len(r.Modules) > 0 {
		m = r.Modules[0]
	}

	return m, r.Diagnostics
}

// ===================================================================
// Token stream primitives
// ===================================================================

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}

	return p.toks[p.pos]
}

func (p *Parser) at(k token.Kind) bool {
	return p.cur().Kind == k
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}

	return t
}

// expect consumes the current token if it matches k, otherwise emits a
// missing-token diagnostic at the current position and does not advance
// (spec.md §4.2 "Error recovery").
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}

	p.errorf(diag.CodeMissingToken, "expected %s but found %s", k, p.cur().Kind)

	return token.Token{}, false
}

func (p *Parser) errorf(code, format string, args ...any) {
	t := p.cur()
	p.diags = append(p.diags, diag.At(code, diag.Error, fmt.Sprintf(format, args...), p.file.Name, t.Span))
}

// skipUntil advances past tokens until k (exclusive) or EOF is reached.
func (p *Parser) skipUntil(k token.Kind) {
	for !p.at(k) && !p.at(token.EOF) {
		p.advance()
	}
}

// skipStatement recovers from a malformed statement by skipping to the next
// ';' (consumed) or a statement/block delimiter that likely starts fresh
// (spec.md §4.2).
func (p *Parser) skipStatement() {
	for {
		switch p.cur().Kind {
		case token.SEMI:
			p.advance()

			return
		case token.END, token.ENDMODULE, token.ENDCASE, token.EOF:
			return
		default:
			p.advance()
		}
	}
}

func span(start, end token.Token) source.Span {
	return source.Span{Start: start.Span.Start, End: end.Span.End}
}
