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
package extern

import (
	"context"
	"testing"
	"time"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/diag"
)

func TestProbe_MissingTool(t *testing.T) {
	available, path := Probe("definitely-not-a-real-verilog-compiler")
	if available {
		t.Errorf("expected tool to be unavailable, got path %q", path)
	}
}

func TestCheck_UnavailableToolSkipsSubprocess(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ToolName = "definitely-not-a-real-verilog-compiler"

	result, err := Check(context.Background(), cfg, "top.v", "module m; endmodule")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Available {
		t.Errorf("expected Available=false, got %+v", result)
	}

	if len(result.Diagnostics) != 0 {
		t.Errorf("expected no diagnostics when tool is unavailable, got %v", result.Diagnostics)
	}
}

func TestBuildArgs(t *testing.T) {
	cfg := Config{
		Standard:    "2005",
		IncludeDirs: []string{"inc"},
		Defines:     map[string]string{"FOO": "1"},
	}

	args := buildArgs(cfg, "/tmp/x.v")

	if len(args) != 7 {
		t.Fatalf("expected 7 args, got %d: %v", len(args), args)
	}

	if args[0] != "-tnull" || args[1] != "-o" || args[3] != "-g2005" {
		t.Errorf("unexpected leading args: %v", args)
	}

	if args[4] != "-Iinc" || args[5] != "-DFOO=1" {
		t.Errorf("unexpected include/define args: %v", args)
	}

	if args[len(args)-1] != "/tmp/x.v" {
		t.Errorf("expected source path last, got %v", args)
	}
}

func TestParseOutput_PrimaryFormat(t *testing.T) {
	raw := "/tmp/x.v:3:5: error: syntax error\n/tmp/x.v:7: warning: unused net 'tmp'\n"

	diags := parseOutput(raw, "/tmp/x.v", "top.v")
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d: %v", len(diags), diags)
	}

	if diags[0].Location.File != "top.v" || diags[0].Location.Span.Start.Line != 3 ||
		diags[0].Location.Span.Start.Column != 5 || diags[0].Severity != diag.Error {
		t.Errorf("unexpected first diagnostic: %+v", diags[0])
	}

	if diags[1].Severity != diag.Warning {
		t.Errorf("expected second diagnostic to be a warning, got %+v", diags[1])
	}
}

func TestParseOutput_FallbackFormatInfersSeverity(t *testing.T) {
	raw := "/tmp/x.v:12: undefined identifier 'foo'\n"

	diags := parseOutput(raw, "/tmp/x.v", "top.v")
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(diags), diags)
	}

	if diags[0].Severity != diag.Error {
		t.Errorf("expected inferred severity error for 'undefined', got %v", diags[0].Severity)
	}

	if diags[0].Location.File != "top.v" {
		t.Errorf("expected rewritten filename, got %q", diags[0].Location.File)
	}
}

func TestParseOutput_FallbackFormatWarningKeyword(t *testing.T) {
	raw := "/tmp/x.v:4: port width mismatch (warning)\n"

	diags := parseOutput(raw, "/tmp/x.v", "top.v")
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(diags), diags)
	}

	if diags[0].Severity != diag.Warning {
		t.Errorf("expected warning severity, got %v", diags[0].Severity)
	}
}

func TestParseOutput_IgnoresUnmatchedLines(t *testing.T) {
	raw := "some unrelated banner line\n\n"

	diags := parseOutput(raw, "/tmp/x.v", "top.v")
	if len(diags) != 0 {
		t.Errorf("expected no diagnostics from unmatched lines, got %v", diags)
	}
}

func TestConfig_TimeoutDefault(t *testing.T) {
	cfg := Config{}
	if cfg.timeout() != defaultTimeout {
		t.Errorf("expected default timeout of %s, got %s", defaultTimeout, cfg.timeout())
	}

	cfg.Timeout = 2 * time.Second
	if cfg.timeout() != 2*time.Second {
		t.Errorf("expected configured timeout, got %s", cfg.timeout())
	}
}
