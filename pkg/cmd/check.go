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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/lint"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/parser"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/source"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Parse and lint a Verilog file (spec.md §4.4)",
	Run:   runCheck,
}

func runCheck(cmd *cobra.Command, args []string) {
	configureLogging(cmd)

	if len(args) != 1 {
		fmt.Println(cmd.UsageString())
		os.Exit(1)
	}

	src, err := readSource(args[0])
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	file := source.NewFileFromString(args[0], src)
	cst, diagnostics := parser.Parse(file)

	if len(diagnostics) == 0 && cst != nil {
		mod := parser.Build(cst)
		diagnostics = append(diagnostics, lint.Run(mod, args[0])...)
	}

	failed := printDiagnostics(cmd, file, diagnostics)

	if !GetFlag(cmd, "quiet") && !GetFlag(cmd, "json") && len(diagnostics) == 0 {
		fmt.Println("ok: no issues found")
	}

	exitOn(failed)
}
