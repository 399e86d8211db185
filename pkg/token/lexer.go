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
package token

import (
	"fmt"
	"strings"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/diag"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/source"
)

// Token is a single lexical token carrying its textual content and its
// (start, end) position within the source file (spec.md §4.1).
type Token struct {
	Kind Kind
	Text string
	Span source.Span
}

// Result is the total output of lexing a file: an ordered token stream, an
// ordered comment stream kept separate from the tokens, and an ordered
// lex-error stream.  Lexing is total -- every character of the input is
// consumed into a token or a comment or skipped as whitespace; an
// unrecognized character becomes an ILLEGAL token and also adds an entry to
// the error stream (spec.md §4.1).
type Result struct {
	Tokens   []Token
	Comments []Token
	Errors   []diag.Diagnostic
}

// Lexer tokenises a single source.File.
type Lexer struct {
	file *source.File
	text []rune
	pos  int
	line int
	col  int
	errs []diag.Diagnostic
}

// NewLexer constructs a lexer over file.
func NewLexer(file *source.File) *Lexer {
	return &Lexer{file: file, text: file.Text, pos: 0, line: 1, col: 1}
}

// Lex runs the lexer to completion and returns the three token streams.
func Lex(file *source.File) Result {
	l := NewLexer(file)

	var tokens, comments []Token

	for {
		tok, isComment, ok := l.next()
		if !ok {
			break
		}

		if isComment {
			comments = append(comments, tok)
		} else {
			tokens = append(tokens, tok)
		}

		if tok.Kind == EOF {
			break
		}
	}

	return Result{Tokens: tokens, Comments: comments, Errors: l.errs}
}

func (l *Lexer) pos0() source.Position {
	return source.Position{Line: l.line, Column: l.col}
}

func (l *Lexer) peek(offset int) rune {
	i := l.pos + offset
	if i < 0 || i >= len(l.text) {
		return 0
	}

	return l.text[i]
}

func (l *Lexer) advance() rune {
	r := l.text[l.pos]
	l.pos++

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.text)
}

// next scans and returns the next token.  The second return indicates
// whether the token belongs to the comment stream; the third is false only
// once the EOF token itself has already been returned.
func (l *Lexer) next() (Token, bool, bool) {
	l.skipWhitespace()

	start := l.pos0()

	if l.eof() {
		return Token{Kind: EOF, Span: source.Span{Start: start, End: start}}, false, true
	}

	c := l.peek(0)

	switch {
	case c == '/' && l.peek(1) == '/':
		return l.scanLineComment(start), true, true
	case c == '/' && l.peek(1) == '*':
		return l.scanBlockComment(start), true, true
	case isIdentStart(c):
		return l.scanIdentOrKeyword(start), false, true
	case isDigit(c), c == '\'' && isBaseChar(l.peek(1)):
		return l.scanNumber(start), false, true
	case c == '"':
		return l.scanString(start), false, true
	default:
		if tok, ok := l.scanOperatorOrDelim(start); ok {
			return tok, false, true
		}

		// Unrecognized character: total lexing emits a diagnostic and
		// advances by exactly one character (spec.md §4.1).
		l.advance()
		end := l.pos0()
		span := source.Span{Start: start, End: end}
		l.errs = append(l.errs, diag.At(diag.CodeSyntaxError, diag.Error,
			fmt.Sprintf("unrecognized character %q", c), l.file.Name, span))

		return Token{Kind: ILLEGAL, Text: string(c), Span: span}, false, true
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.eof() {
		c := l.peek(0)
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			l.advance()
			continue
		}

		break
	}
}

func isIdentStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c rune) bool {
	return isIdentStart(c) || isDigit(c) || c == '$'
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func (l *Lexer) scanIdentOrKeyword(start source.Position) Token {
	var b strings.Builder
	for !l.eof() && isIdentCont(l.peek(0)) {
		b.WriteRune(l.advance())
	}

	text := b.String()
	end := l.pos0()

	return Token{Kind: LookupKeyword(text), Text: text, Span: source.Span{Start: start, End: end}}
}

// scanNumber scans either an unsized decimal number (with optional
// underscores) or a sized number N'bBOH...; it also tolerates a bare
// "'bBOH..." with no leading width digits, which some Verilog renders for
// an "unsized" based literal.
func (l *Lexer) scanNumber(start source.Position) Token {
	var b strings.Builder
	for !l.eof() && (isDigit(l.peek(0)) || l.peek(0) == '_') {
		b.WriteRune(l.advance())
	}

	if !l.eof() && l.peek(0) == '\'' {
		b.WriteRune(l.advance())

		if !l.eof() && isBaseChar(l.peek(0)) {
			b.WriteRune(l.advance())
		}

		for !l.eof() && isSizedDigit(l.peek(0)) {
			b.WriteRune(l.advance())
		}

		end := l.pos0()

		return Token{Kind: NUMBER_SIZED, Text: b.String(), Span: source.Span{Start: start, End: end}}
	}

	end := l.pos0()

	return Token{Kind: NUMBER_UNSIZED, Text: b.String(), Span: source.Span{Start: start, End: end}}
}

func isBaseChar(c rune) bool {
	switch c {
	case 'b', 'B', 'o', 'O', 'h', 'H', 'd', 'D':
		return true
	default:
		return false
	}
}

func isSizedDigit(c rune) bool {
	return isDigit(c) || c == '_' ||
		(c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') ||
		c == 'x' || c == 'X' || c == 'z' || c == 'Z' || c == '?'
}

func (l *Lexer) scanString(start source.Position) Token {
	l.advance() // opening quote

	var b strings.Builder
	for !l.eof() && l.peek(0) != '"' {
		b.WriteRune(l.advance())
	}

	if !l.eof() {
		l.advance() // closing quote
	}

	end := l.pos0()

	return Token{Kind: STRING, Text: b.String(), Span: source.Span{Start: start, End: end}}
}

func (l *Lexer) scanLineComment(start source.Position) Token {
	var b strings.Builder
	for !l.eof() && l.peek(0) != '\n' {
		b.WriteRune(l.advance())
	}

	end := l.pos0()

	return Token{Kind: COMMENT_LINE, Text: b.String(), Span: source.Span{Start: start, End: end}}
}

func (l *Lexer) scanBlockComment(start source.Position) Token {
	var b strings.Builder
	b.WriteRune(l.advance())
	b.WriteRune(l.advance())

	for !l.eof() {
		if l.peek(0) == '*' && l.peek(1) == '/' {
			b.WriteRune(l.advance())
			b.WriteRune(l.advance())

			break
		}

		b.WriteRune(l.advance())
	}

	end := l.pos0()

	return Token{Kind: COMMENT_BLOCK, Text: b.String(), Span: source.Span{Start: start, End: end}}
}

// operator and delimiter table, longest-spelling first so that a greedy
// left-to-right scan naturally satisfies spec.md §4.1 tie-break rule (3):
// multi-character operators beat their prefixes.
var operatorTable = []struct {
	text string
	kind Kind
}{
	{">>>", ASHR},
	{"===", CASEEQ},
	{"!==", CASENEQ},
	{"**", POW},
	{"&&", ANDAND},
	{"||", OROR},
	{"==", EQEQ},
	{"!=", NEQ},
	{"<=", LE}, // also used as non-blocking assignment; parser disambiguates by position
	{">=", GE},
	{"<<", SHL},
	{">>", SHR},
	{"+", PLUS}, {"-", MINUS}, {"*", STAR}, {"/", SLASH}, {"%", PERCENT},
	{"&", AMP}, {"|", PIPE}, {"^", CARET}, {"~", TILDE}, {"!", BANG},
	{"<", LT}, {">", GT}, {"?", QUESTION},
	{"(", LPAREN}, {")", RPAREN},
	{"[", LBRACK}, {"]", RBRACK},
	{"{", LBRACE}, {"}", RBRACE},
	{";", SEMI}, {":", COLON}, {",", COMMA}, {".", DOT},
	{"@", AT}, {"#", HASH},
	{"=", EQUALS},
}

func (l *Lexer) scanOperatorOrDelim(start source.Position) (Token, bool) {
	for _, op := range operatorTable {
		if l.matches(op.text) {
			for range op.text {
				l.advance()
			}

			end := l.pos0()

			return Token{Kind: op.kind, Text: op.text, Span: source.Span{Start: start, End: end}}, true
		}
	}

	return Token{}, false
}

func (l *Lexer) matches(s string) bool {
	for i, r := range s {
		if l.peek(i) != r {
			return false
		}
	}

	return true
}
