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

// Package cmd implements the rtlcore command-line front end: one subcommand
// per pipeline stage (spec.md §6 "External interfaces").
package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is overwritten at build time via -ldflags, falling back to the
// module's own build info when run via "go run" or "go install".
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "rtlcore",
	Short: "Verilog front-end and FSM toolkit",
	Long: `rtlcore lexes, parses, lints and pretty-prints a Verilog-2005 subset,
and extracts or generates finite-state machines from it.`,
	Version: Version,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	if Version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
			Version = info.Main.Version
		}
	}

	rootCmd.Version = Version

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("json", false, "emit machine-readable JSON instead of text")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-error output")

	rootCmd.AddCommand(lexCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(extcheckCmd)
	rootCmd.AddCommand(fsmCmd)
}

// Execute runs the root command, exiting the process on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// configureLogging applies --debug/--quiet to the package-wide logrus
// logger, matching the teacher's "flag flips global log level" convention.
func configureLogging(cmd *cobra.Command) {
	if GetFlag(cmd, "quiet") {
		log.SetLevel(log.ErrorLevel)
		return
	}

	if GetFlag(cmd, "debug") {
		log.SetLevel(log.DebugLevel)
	}
}
