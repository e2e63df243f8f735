// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ascii provides utility functions and types to run Intcode programs
// that talk ASCII: their input and output values are character codes, with
// the occasional large value outside of the ASCII range as a final answer.
package ascii

import (
	"strings"

	"github.com/db47h/intcode/vm"
)

// MaxASCII is the largest value considered as an ASCII character.
const MaxASCII = 127

// Encode returns the character codes of s as input values. Non-ASCII runes
// are encoded as their Unicode code point.
func Encode(s string) []vm.Cell {
	c := make([]vm.Cell, 0, len(s))
	for _, r := range s {
		c = append(c, vm.Cell(r))
	}
	return c
}

// Feed encodes s and appends it to the input queue of i.
func Feed(i *vm.Instance, s string) *vm.Instance {
	return i.Feed(Encode(s)...)
}

// IsASCII returns true if v is a character code in the ASCII range.
func IsASCII(v vm.Cell) bool {
	return v >= 0 && v <= MaxASCII
}

// Decode splits out into its longest ASCII prefix, returned as text, and the
// remaining values.
func Decode(out []vm.Cell) (text string, rest []vm.Cell) {
	var b strings.Builder
	for k, v := range out {
		if !IsASCII(v) {
			return b.String(), out[k:]
		}
		b.WriteByte(byte(v))
	}
	return b.String(), nil
}
