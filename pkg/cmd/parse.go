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
	"strings"

	"github.com/spf13/cobra"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/parser"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a Verilog file and print its concrete syntax tree",
	Run:   runParse,
}

func init() {
	parseCmd.Flags().Bool("ast", false, "print the AST module summary instead of the CST")
}

func runParse(cmd *cobra.Command, args []string) {
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

	failed := printDiagnostics(cmd, file, diagnostics)

	if !GetFlag(cmd, "quiet") && !GetFlag(cmd, "json") && cst != nil {
		if GetFlag(cmd, "ast") && len(diagnostics) == 0 {
			mod := parser.Build(cst)
			fmt.Printf("module %s: %d ports, %d declarations, %d always blocks\n",
				mod.Name, len(mod.Ports), len(mod.Declarations), len(mod.Always))
		} else {
			printCST(cst, 0)
		}
	}

	exitOn(failed)
}

func printCST(n *parser.CST, depth int) {
	fmt.Printf("%s%s\n", strings.Repeat("  ", depth), n.Tag.String())

	for _, c := range n.Children {
		printCST(c, depth+1)
	}

	for _, group := range n.Lists {
		for _, c := range group {
			printCST(c, depth+1)
		}
	}
}
