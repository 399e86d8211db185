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
	"strconv"
	"strings"

	"github.com/Cirkitly/rtl-copilot-sub000/pkg/diag"
	"github.com/Cirkitly/rtl-copilot-sub000/pkg/source"
)

// parseOutput tolerates two external-compiler message formats (spec.md
// §4.5): "file:line[:col]: severity: message" (primary) and "file:line:
// message" (fallback, severity inferred from keywords). tmpPath is rewritten
// to displayName in every resulting diagnostic's location.
func parseOutput(raw, tmpPath, displayName string) []diag.Diagnostic {
	var diags []diag.Diagnostic

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if d, ok := parsePrimary(line, tmpPath, displayName); ok {
			diags = append(diags, d)
			continue
		}

		if d, ok := parseFallback(line, tmpPath, displayName); ok {
			diags = append(diags, d)
		}
	}

	return diags
}

// parsePrimary matches "file:line[:col]: severity: message".
func parsePrimary(line, tmpPath, displayName string) (diag.Diagnostic, bool) {
	_, rest, ok := cutPrefixPath(line, tmpPath)
	if !ok {
		return diag.Diagnostic{}, false
	}

	rest = strings.TrimPrefix(rest, ":")

	lineNum, rest, ok := cutInt(rest)
	if !ok {
		return diag.Diagnostic{}, false
	}

	col := 1

	if strings.HasPrefix(rest, ":") {
		if c, after, ok := cutInt(rest[1:]); ok {
			col = c
			rest = after
		}
	}

	rest = strings.TrimPrefix(rest, ":")
	rest = strings.TrimSpace(rest)

	sev, message, ok := cutSeverity(rest)
	if !ok {
		return diag.Diagnostic{}, false
	}

	pos := source.Position{Line: lineNum, Column: col}

	return diag.At("", sev, message, displayName, source.SingleChar(pos)), true
}

// parseFallback matches "file:line: message" with no severity token,
// inferring severity from keywords in the message.
func parseFallback(line, tmpPath, displayName string) (diag.Diagnostic, bool) {
	_, rest, ok := cutPrefixPath(line, tmpPath)
	if !ok {
		return diag.Diagnostic{}, false
	}

	rest = strings.TrimPrefix(rest, ":")

	lineNum, rest, ok := cutInt(rest)
	if !ok {
		return diag.Diagnostic{}, false
	}

	message := strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	if message == "" {
		return diag.Diagnostic{}, false
	}

	sev := inferSeverity(message)
	pos := source.Position{Line: lineNum, Column: 1}

	return diag.At("", sev, message, displayName, source.SingleChar(pos)), true
}

// cutPrefixPath strips a leading "<tmpPath>" from line, tolerating the
// external tool echoing a path relative to its own working directory
// (matched by suffix when an exact prefix match fails).
func cutPrefixPath(line, tmpPath string) (file, rest string, ok bool) {
	if strings.HasPrefix(line, tmpPath) {
		return tmpPath, line[len(tmpPath):], true
	}

	base := tmpPath
	if idx := strings.LastIndexByte(tmpPath, '/'); idx >= 0 {
		base = tmpPath[idx+1:]
	}

	idx := strings.Index(line, base)
	if idx < 0 {
		return "", "", false
	}

	return base, line[idx+len(base):], true
}

// cutInt parses a leading decimal integer off s, returning the remainder.
func cutInt(s string) (n int, rest string, ok bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}

	if i == 0 {
		return 0, s, false
	}

	v, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, s, false
	}

	return v, s[i:], true
}

// cutSeverity splits "severity: message" off rest, recognizing the four
// external-tool severity spellings.
func cutSeverity(rest string) (diag.Severity, string, bool) {
	for _, c := range []struct {
		prefix string
		sev    diag.Severity
	}{
		{"error:", diag.Error},
		{"warning:", diag.Warning},
		{"info:", diag.Info},
		{"hint:", diag.Hint},
	} {
		if strings.HasPrefix(rest, c.prefix) {
			return c.sev, strings.TrimSpace(rest[len(c.prefix):]), true
		}
	}

	return diag.Error, "", false
}

// inferSeverity classifies a fallback-format message by keyword (spec.md
// §4.5): "error"/"syntax"/"undefined" imply error, "warning" implies
// warning, anything else defaults to error.
func inferSeverity(message string) diag.Severity {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "warning"):
		return diag.Warning
	case strings.Contains(lower, "error"), strings.Contains(lower, "syntax"), strings.Contains(lower, "undefined"):
		return diag.Error
	default:
		return diag.Error
	}
}
