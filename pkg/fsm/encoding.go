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
package fsm

import "math/bits"

// EncodedState is a single state's resolved bit pattern (spec.md §3.3).
type EncodedState struct {
	StateID string
	Name    string
	// Value is the binary-string encoding, MSB-first, exactly Width
	// characters of '0'/'1'.
	Value string
	Width int
}

// encodingWidth returns the bit width for n states under enc (spec.md
// §4.7): one-hot needs one bit per state; binary/Gray need ceil(log2 n),
// with n<=1 defaulting to width 1.
func encodingWidth(enc Encoding, n int) int {
	if enc == OneHot {
		if n < 1 {
			return 1
		}

		return n
	}

	return bitWidth(n)
}

// bitWidth returns ceil(log2(n)), with n<=1 mapping to 1 (spec.md §4.7).
func bitWidth(n int) int {
	if n <= 1 {
		return 1
	}

	return bits.Len(uint(n - 1))
}

// toBinary renders i in binary, zero-padded to width bits, MSB-first
// (spec.md §4.7).
func toBinary(i, width int) string {
	b := make([]byte, width)

	for pos := width - 1; pos >= 0; pos-- {
		if i&1 == 1 {
			b[pos] = '1'
		} else {
			b[pos] = '0'
		}

		i >>= 1
	}

	return string(b)
}

// Encode computes the EncodedState list for states, in their given order,
// under enc (spec.md §4.7). The order of the returned slice matches states.
func Encode(enc Encoding, states []State) []EncodedState {
	width := encodingWidth(enc, len(states))

	out := make([]EncodedState, len(states))

	for i, s := range states {
		var value string

		switch enc {
		case OneHot:
			value = oneHotValue(i, width)
		case Gray:
			value = toBinary(i^(i>>1), width)
		default:
			value = toBinary(i, width)
		}

		out[i] = EncodedState{StateID: s.ID, Name: s.Name, Value: value, Width: width}
	}

	return out
}

// oneHotOverflowThreshold is the state count above which one-hot encoding
// triggers a validation warning (spec.md §4.7).
const oneHotOverflowThreshold = 16

// ValidateEncoding reports whether enc, applied to n states, should warn
// (spec.md §4.7: "Encoding validation warns when one-hot is chosen with n >
// 16").
func ValidateEncoding(enc Encoding, n int) (warn bool, message string) {
	if enc == OneHot && n > oneHotOverflowThreshold {
		return true, "one-hot encoding with more than 16 states wastes register bits; consider binary or gray"
	}

	return false, ""
}

// oneHotValue sets exactly character position i to '1' (spec.md §4.7: "the
// bit at position i (MSB-first in the string) is 1"), all others '0'.
func oneHotValue(i, width int) string {
	b := make([]byte, width)

	for pos := range b {
		b[pos] = '0'
	}

	if i >= 0 && i < width {
		b[i] = '1'
	}

	return string(b)
}
