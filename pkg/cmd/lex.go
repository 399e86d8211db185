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

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/source"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/token"
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenise a Verilog file and print its token stream",
	Run:   runLex,
}

func runLex(cmd *cobra.Command, args []string) {
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
	res := token.Lex(file)

	failed := printDiagnostics(cmd, file, res.Errors)

	if !GetFlag(cmd, "quiet") && !GetFlag(cmd, "json") {
		for _, tok := range res.Tokens {
			fmt.Printf("%-6s %-20s %q\n", tok.Span.Start.String(), tok.Kind.String(), tok.Text)
		}
	}

	exitOn(failed)
}
