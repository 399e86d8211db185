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
	"testing"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/ast"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/parser"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/source"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/token"
)

func lexComments(t *testing.T, file *source.File) []token.Token {
	t.Helper()

	return token.Lex(file).Comments
}

func parseModule(t *testing.T, src string) *ast.Module {
	t.Helper()

	file := source.NewFileFromString("<test>", src)

	cst, diags := parser.Parse(file)
	for _, d := range diags {
		t.Fatalf("unexpected diagnostic parsing %q: %s", src, d.Message)
	}

	return parser.Build(cst)
}

// checkRoundTrip re-parses Generate's own output and asserts the resulting
// AST is structurally equal to the one Generate was given -- ignoring
// source.Span, which legitimately differs since the regenerated text has
// different byte offsets -- the correctness contract of spec.md §4.3.
func checkRoundTrip(t *testing.T, src string) string {
	t.Helper()

	m := parseModule(t, src)
	out := Generate(m, DefaultOptions(), nil)
	m2 := parseModule(t, out)

	if !equalModules(m, m2) {
		t.Fatalf("round trip mismatch for %q:\n--- generated ---\n%s", src, out)
	}

	return out
}

func TestGenerate_SimpleModule(t *testing.T) {
	out := checkRoundTrip(t, `module m (input a, input b, output o);
wire o;
assign o = a & b;
endmodule`)

	if !strings.Contains(out, "module m (") {
		t.Errorf("expected module header, got:\n%s", out)
	}

	if !strings.Contains(out, "endmodule") {
		t.Errorf("expected endmodule, got:\n%s", out)
	}
}

func TestGenerate_EmptyModuleNoPorts(t *testing.T) {
	out := checkRoundTrip(t, `module empty; endmodule`)

	if !strings.Contains(out, "module empty;") {
		t.Errorf("expected port-less header %q, got:\n%s", "module empty;", out)
	}

	if !strings.Contains(out, "endmodule") {
		t.Errorf("expected endmodule, got:\n%s", out)
	}
}

func TestGenerate_AlwaysBlockSequential(t *testing.T) {
	checkRoundTrip(t, `module m (input clk, input d, output reg q);
always @(posedge clk) begin
q <= d;
end
endmodule`)
}

func TestGenerate_IfElseChainBareStatements(t *testing.T) {
	checkRoundTrip(t, `module m (input a, input b, output reg y);
always @(*)
if (a)
y = 1;
else if (b)
y = 0;
else
y = 1;
endmodule`)
}

func TestGenerate_IfElseChainBeginEnd(t *testing.T) {
	checkRoundTrip(t, `module m (input a, input b, output reg y, output reg z);
always @(*) begin
if (a) begin
y = 1;
z = 0;
end else begin
y = 0;
z = 1;
end
end
endmodule`)
}

func TestGenerate_CaseStatement(t *testing.T) {
	checkRoundTrip(t, `module m (input [1:0] sel, output reg [1:0] o);
always @(*) begin
case (sel)
2'b00: o = 0;
2'b01: o = 1;
default: o = 2;
endcase
end
endmodule`)
}

func TestGenerate_ExpressionPrecedenceRoundTrip(t *testing.T) {
	checkRoundTrip(t, `module m (input a, input b, input c, output o);
assign o = a + b * c;
endmodule`)

	checkRoundTrip(t, `module m (input a, input b, input c, output o);
assign o = (a + b) * c;
endmodule`)

	checkRoundTrip(t, `module m (input a, input b, input c, output o);
assign o = a - (b - c);
endmodule`)

	checkRoundTrip(t, `module m (input a, input b, output o);
assign o = a ** b ** 2;
endmodule`)

	checkRoundTrip(t, `module m (input a, input b, input c, output o);
assign o = a ? b : c;
endmodule`)
}

func TestGenerate_ConcatAndReplication(t *testing.T) {
	checkRoundTrip(t, `module m (input a, input b, output [3:0] o);
assign o = {a, b, 2'b00};
endmodule`)

	checkRoundTrip(t, `module m (input a, output [3:0] o);
assign o = {4{a}};
endmodule`)
}

func TestGenerate_DeclarationsAndParameters(t *testing.T) {
	checkRoundTrip(t, `module m (input clk, output reg [7:0] q);
parameter WIDTH = 8;
reg [7:0] tmp;
always @(posedge clk) begin
tmp <= q;
end
endmodule`)
}

func TestGenerate_Instance(t *testing.T) {
	checkRoundTrip(t, `module m (input a, output o);
sub u0 (.a(a), .o(o));
endmodule`)
}

func TestGenerate_PreserveComments(t *testing.T) {
	file := source.NewFileFromString("<test>", "module m (input a, output o);\n// drive o\nassign o = a;\nendmodule")

	cst, diags := parser.Parse(file)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	m := parser.Build(cst)

	lexed := lexComments(t, file)

	opts := DefaultOptions()
	opts.PreserveComments = true

	out := Generate(m, opts, lexed)
	if !strings.Contains(out, "// drive o") {
		t.Errorf("expected preserved comment in output, got:\n%s", out)
	}
}

func TestGenerate_AlignPorts(t *testing.T) {
	m := parseModule(t, `module m (input clk, input reset_n, output o);
assign o = clk;
endmodule`)

	opts := DefaultOptions()
	opts.AlignPorts = true

	out := Generate(m, opts, nil)

	var clkLine, rstLine string

	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "input clk") {
			clkLine = line
		}

		if strings.HasPrefix(trimmed, "input reset_n") {
			rstLine = line
		}
	}

	clkCol := strings.Index(clkLine, ",")
	rstCol := strings.Index(rstLine, ",")

	if clkCol == -1 || rstCol == -1 {
		t.Fatalf("could not locate aligned port lines in:\n%s", out)
	}

	if clkCol != rstCol {
		t.Errorf("expected port separators aligned, got columns %d and %d in:\n%s", clkCol, rstCol, out)
	}
}
