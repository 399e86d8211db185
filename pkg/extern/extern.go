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

// Package extern implements the optional external-tool adapter (spec.md
// §4.5): probing PATH for a named Verilog compiler and shelling out to it
// for a syntax-only check, the way the teacher's policy/compiler adapters
// shell out to a sibling binary and parse its stdout.
package extern

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/diag"
)

// Config controls one invocation of an external compiler (spec.md §4.5).
// Passed by value, matching the teacher's flat config-struct convention.
type Config struct {
	// ToolName is the executable looked up on PATH, e.g. "iverilog".
	ToolName string
	// Standard is the language-standard flag value, e.g. "2005".
	Standard string
	// IncludeDirs are passed through as -I flags.
	IncludeDirs []string
	// Defines are passed through as -D flags; a non-empty value produces
	// -Dkey=value, an empty one -Dkey.
	Defines map[string]string
	// Timeout bounds the subprocess wall-clock time. Zero selects the
	// default of 10 seconds.
	Timeout time.Duration
}

const defaultTimeout = 10 * time.Second

// DefaultConfig returns a Config with the default timeout and no tool name;
// callers must set ToolName.
func DefaultConfig() Config {
	return Config{Timeout: defaultTimeout}
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}

	return c.Timeout
}

// Probe reports whether toolName is available on PATH, and its resolved
// absolute path when it is.
func Probe(toolName string) (available bool, path string) {
	p, err := exec.LookPath(toolName)
	if err != nil {
		return false, ""
	}

	return true, p
}

// Result is the outcome of one external-tool invocation.
type Result struct {
	// Available is false when ToolName was not found on PATH; in that case
	// the adapter did not attempt to run anything and Diagnostics is empty.
	Available bool
	// Diagnostics is the parsed set of issues the tool reported, with
	// locations rewritten to the caller-provided filename.
	Diagnostics []diag.Diagnostic
	// RawOutput is the tool's combined stdout+stderr, for callers that want
	// to display it verbatim (e.g. --debug).
	RawOutput string
}

// Check probes for cfg.ToolName and, if present, writes src to a fresh
// temporary file and runs the tool in syntax-only mode against it. filename is
// the name reported back to the caller and substituted for the temp path in
// parsed diagnostics.
func Check(ctx context.Context, cfg Config, filename, src string) (Result, error) {
	available, toolPath := Probe(cfg.ToolName)
	if !available {
		log.WithField("tool", cfg.ToolName).Debug("external tool not found on PATH")

		return Result{Available: false}, nil
	}

	tmp, err := os.CreateTemp("", "rtlcore-extcheck-*.v")
	if err != nil {
		return Result{Available: true}, fmt.Errorf("extern: create temp file: %w", err)
	}

	tmpPath := tmp.Name()

	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(src); err != nil {
		tmp.Close()
		return Result{Available: true}, fmt.Errorf("extern: write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return Result{Available: true}, fmt.Errorf("extern: close temp file: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, cfg.timeout())
	defer cancel()

	args := buildArgs(cfg, tmpPath)

	log.WithFields(log.Fields{"tool": toolPath, "args": args}).Debug("invoking external tool")

	cmd := exec.CommandContext(runCtx, toolPath, args...)

	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	runErr := cmd.Run()

	raw := combined.String()

	if runCtx.Err() == context.DeadlineExceeded {
		return Result{Available: true, RawOutput: raw, Diagnostics: []diag.Diagnostic{
			timeoutDiagnostic(cfg.ToolName, cfg.timeout()),
		}}, nil
	}

	diags := parseOutput(raw, tmpPath, filename)

	if runErr != nil && len(diags) == 0 {
		diags = append(diags, diag.New(diag.CodeSyntaxError, diag.Error,
			fmt.Sprintf("%s exited with an error and produced no parseable diagnostics: %v", cfg.ToolName, runErr)))
	}

	return Result{Available: true, Diagnostics: diags, RawOutput: raw}, nil
}

// buildArgs assembles a syntax-only invocation: discard generated object
// output, request the configured language standard, and forward include
// directories and defines ahead of the source path.
func buildArgs(cfg Config, tmpPath string) []string {
	args := []string{"-tnull", "-o", os.DevNull}

	if cfg.Standard != "" {
		args = append(args, "-g"+cfg.Standard)
	}

	for _, dir := range cfg.IncludeDirs {
		args = append(args, "-I"+dir)
	}

	names := make([]string, 0, len(cfg.Defines))
	for k := range cfg.Defines {
		names = append(names, k)
	}

	sort.Strings(names)

	for _, k := range names {
		if v := cfg.Defines[k]; v == "" {
			args = append(args, "-D"+k)
		} else {
			args = append(args, "-D"+k+"="+v)
		}
	}

	return append(args, tmpPath)
}

// timeoutDiagnostic builds the diagnostic returned when the wall-clock
// budget elapses before the subprocess exits (spec.md §4.5).
func timeoutDiagnostic(toolName string, budget time.Duration) diag.Diagnostic {
	return diag.New(diag.CodeSyntaxError, diag.Error,
		fmt.Sprintf("%s did not complete within %s", toolName, budget))
}
