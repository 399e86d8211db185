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
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/diag"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/source"
)

// diagnosticJSON is the wire shape emitted by --json; pkg/diag.Diagnostic
// itself carries no json tags since the model package has no business
// knowing about the CLI's output format.
type diagnosticJSON struct {
	Code       string `json:"code"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	File       string `json:"file,omitempty"`
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func toDiagnosticJSON(d diag.Diagnostic) diagnosticJSON {
	out := diagnosticJSON{
		Code:       d.Code,
		Severity:   d.Severity.String(),
		Message:    d.Message,
		Suggestion: d.Suggestion,
	}

	if d.Location != nil {
		out.File = d.Location.File
		out.Line = d.Location.Span.Start.Line
		out.Column = d.Location.Span.Start.Column
	}

	return out
}

// printDiagnostics renders diagnostics either as JSON or as formatted text
// against file, and reports whether any Error-severity diagnostic was
// present (the caller uses this to pick a process exit code).
func printDiagnostics(cmd *cobra.Command, file *source.File, diagnostics []diag.Diagnostic) bool {
	asJSON := GetFlag(cmd, "json")
	quiet := GetFlag(cmd, "quiet")

	report := diag.NewReport(diagnostics)

	if asJSON {
		out := make([]diagnosticJSON, 0, len(diagnostics))
		for _, d := range diagnostics {
			out = append(out, toDiagnosticJSON(d))
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(out)

		return !report.OK()
	}

	if quiet {
		return !report.OK()
	}

	formatter := diag.NewFormatter()

	for _, d := range diagnostics {
		fmt.Println(formatter.Format(d, file).String())
	}

	if len(diagnostics) > 0 {
		fmt.Println(report.Summary())
	}

	return !report.OK()
}

func exitOn(failed bool) {
	if failed {
		os.Exit(1)
	}
}
