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

package vm

import "strconv"

// Opcode is an opcode class, i.e. the two least significant decimal digits of
// an instruction word.
type Opcode Cell

// Intcode Virtual Machine Opcodes.
const (
	OpAdd         Opcode = 1
	OpMul         Opcode = 2
	OpIn          Opcode = 3
	OpOut         Opcode = 4
	OpJumpIfTrue  Opcode = 5
	OpJumpIfFalse Opcode = 6
	OpLessThan    Opcode = 7
	OpEquals      Opcode = 8
	OpAdjustRB    Opcode = 9
	OpHalt        Opcode = 99
)

// MaxArity is the largest number of parameters of any instruction.
const MaxArity = 3

var opcodes = [...]struct {
	name  string
	arity int
}{
	OpAdd:         {"add", 3},
	OpMul:         {"mul", 3},
	OpIn:          {"in", 1},
	OpOut:         {"out", 1},
	OpJumpIfTrue:  {"jt", 2},
	OpJumpIfFalse: {"jf", 2},
	OpLessThan:    {"lt", 3},
	OpEquals:      {"eq", 3},
	OpAdjustRB:    {"arb", 1},
	OpHalt:        {"hlt", 0},
}

// Valid returns true if op is a known opcode.
func (op Opcode) Valid() bool {
	return op >= 0 && int(op) < len(opcodes) && opcodes[op].name != ""
}

// Arity returns the number of parameters of op, or -1 if op is not valid.
func (op Opcode) Arity() int {
	if !op.Valid() {
		return -1
	}
	return opcodes[op].arity
}

// HasDest returns true if the last parameter of op is a write destination.
func (op Opcode) HasDest() bool {
	switch op {
	case OpAdd, OpMul, OpIn, OpLessThan, OpEquals:
		return true
	}
	return false
}

// String returns the mnemonic for op.
func (op Opcode) String() string {
	if !op.Valid() {
		return "op" + strconv.FormatInt(int64(op), 10)
	}
	return opcodes[op].name
}
