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

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/generator"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/parser"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/source"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/token"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Pretty-print a Verilog file (spec.md §4.3)",
	Run:   runFmt,
}

func init() {
	fmtCmd.Flags().Int("indent", 2, "spaces per indent level")
	fmtCmd.Flags().Bool("write", false, "overwrite the input file instead of printing to stdout")
}

func runFmt(cmd *cobra.Command, args []string) {
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

	if printDiagnostics(cmd, file, diagnostics) {
		os.Exit(1)
	}

	mod := parser.Build(cst)

	opts := generator.DefaultOptions()
	if indent, err := cmd.Flags().GetInt("indent"); err == nil && indent > 0 {
		opts.IndentSize = indent
	}

	lexed := token.Lex(file)
	out := generator.Generate(mod, opts, lexed.Comments)

	if GetFlag(cmd, "write") {
		if err := os.WriteFile(args[0], []byte(out), 0o644); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		return
	}

	fmt.Print(out)
}
