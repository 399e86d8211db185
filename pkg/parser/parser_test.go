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
	"testing"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/source"
)

func TestParse_SimpleModule(t *testing.T) {
	file := source.NewFileFromString("<test>", `
module counter(input clk, input rst, output reg [3:0] count);
  always @(posedge clk or posedge rst) begin
    if (rst)
      count <= 0;
    else
      count <= count + 1;
  end
endmodule
`)

	cst, diagnostics := Parse(file)
	if len(diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diagnostics)
	}

	if cst == nil {
		t.Fatalf("expected a parsed module")
	}

	if cst.Tag != TagModule {
		t.Errorf("expected TagModule root, got %v", cst.Tag)
	}

	if len(cst.Tokens) != 1 || cst.Tokens[0].Text != "counter" {
		t.Errorf("expected module name token \"counter\", got %v", cst.Tokens)
	}

	if len(cst.kids("ports")) != 3 {
		t.Errorf("expected 3 ports, got %d", len(cst.kids("ports")))
	}
}

func TestParse_EmptyModuleNoPortsProducesNoDiagnostics(t *testing.T) {
	file := source.NewFileFromString("<test>", `module empty; endmodule`)

	cst, diagnostics := Parse(file)
	if len(diagnostics) != 0 {
		t.Fatalf("expected no diagnostics for a port-less module, got %v", diagnostics)
	}

	if cst == nil {
		t.Fatalf("expected a parsed module")
	}

	if len(cst.kids("ports")) != 0 {
		t.Errorf("expected 0 ports, got %d", len(cst.kids("ports")))
	}
}

func TestParseModules_SkipsStrayTokensToNextModuleKeyword(t *testing.T) {
	file := source.NewFileFromString("<test>", `;
module ok(input clk);
endmodule
`)

	res := ParseModules(file)

	if len(res.Modules) != 1 || res.Modules[0].Tokens[0].Text != "ok" {
		t.Fatalf("expected recovery to still parse module \"ok\", got %d modules", len(res.Modules))
	}

	if len(res.Diagnostics) == 0 {
		t.Errorf("expected a diagnostic for the stray token preceding the module")
	}
}

func TestParseModules_MalformedPortListStillYieldsModule(t *testing.T) {
	file := source.NewFileFromString("<test>", `
module broken(
endmodule
`)

	res := ParseModules(file)

	if len(res.Modules) != 1 || res.Modules[0].Tokens[0].Text != "broken" {
		t.Fatalf("expected the malformed module to still be recovered as a CST, got %d modules", len(res.Modules))
	}

	if len(res.Diagnostics) == 0 {
		t.Errorf("expected diagnostics for the malformed port list")
	}
}

func TestParse_EmptyFile_ReturnsNilModule(t *testing.T) {
	file := source.NewFileFromString("<test>", "")

	cst, diagnostics := Parse(file)
	if cst != nil {
		t.Errorf("expected nil CST for an empty file, got %v", cst)
	}

	if len(diagnostics) != 0 {
		t.Errorf("expected no diagnostics for an empty file, got %v", diagnostics)
	}
}
