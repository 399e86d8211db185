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
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/extern"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/source"
)

var extcheckCmd = &cobra.Command{
	Use:   "extcheck <file>",
	Short: "Run an external Verilog compiler against a file, if one is on PATH (spec.md §4.5)",
	Run:   runExtcheck,
}

func init() {
	extcheckCmd.Flags().String("tool", "iverilog", "external tool executable name")
	extcheckCmd.Flags().String("std", "2005", "language standard passed to the external tool")
	extcheckCmd.Flags().StringArray("include", nil, "include directory, repeatable")
	extcheckCmd.Flags().Duration("timeout", 10*time.Second, "subprocess timeout")
}

func runExtcheck(cmd *cobra.Command, args []string) {
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

	timeout, _ := cmd.Flags().GetDuration("timeout")

	cfg := extern.Config{
		ToolName:    GetString(cmd, "tool"),
		Standard:    GetString(cmd, "std"),
		IncludeDirs: GetStringArray(cmd, "include"),
		Timeout:     timeout,
	}

	result, err := extern.Check(context.Background(), cfg, args[0], src)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if !result.Available {
		if !GetFlag(cmd, "quiet") {
			fmt.Printf("%s not found on PATH, skipping external check\n", cfg.ToolName)
		}

		return
	}

	file := source.NewFileFromString(args[0], src)
	failed := printDiagnostics(cmd, file, result.Diagnostics)

	exitOn(failed)
}
