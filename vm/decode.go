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

import (
	"strconv"
	"strings"
)

// Mode is a parameter addressing mode.
type Mode Cell

// Parameter addressing modes. Mode digits other than these are kept as is by
// the decoder and reported as invalid by Mode.Valid.
const (
	Position  Mode = iota // the parameter is a memory address
	Immediate             // the parameter is a literal value
	Relative              // the parameter is an offset from the relative base
)

// Valid returns false for unexpected mode digits.
func (m Mode) Valid() bool {
	return m >= Position && m <= Relative
}

// Parameter is a decoded instruction parameter.
type Parameter struct {
	Mode  Mode
	Value Cell
}

// String returns the assembler notation of the parameter: a plain number in
// position mode, #N in immediate mode and @N in relative mode.
func (p Parameter) String() string {
	v := strconv.FormatInt(int64(p.Value), 10)
	switch p.Mode {
	case Position:
		return v
	case Immediate:
		return "#" + v
	case Relative:
		return "@" + v
	}
	return "?" + strconv.FormatInt(int64(p.Mode), 10) + ":" + v
}

// Instruction is a decoded instruction. Instructions are never stored, they
// are decoded from memory every time the VM executes them.
type Instruction struct {
	PC   int // address of the instruction
	Op   Opcode
	Args [MaxArity]Parameter
}

// Params returns the instruction parameters.
func (in Instruction) Params() []Parameter {
	return in.Args[:in.Op.Arity()]
}

// Next returns the address of the next instruction in memory.
func (in Instruction) Next() int {
	return in.PC + 1 + in.Op.Arity()
}

// Word re-encodes the instruction word (opcode and modes).
func (in Instruction) Word() Cell {
	w, m := Cell(in.Op), Cell(100)
	for _, p := range in.Params() {
		w += Cell(p.Mode) * m
		m *= 10
	}
	return w
}

// Check verifies that the addressing modes of the instruction are valid for
// execution: no unexpected modes and no immediate destination.
func (in Instruction) Check() error {
	ps := in.Params()
	for k, p := range ps {
		if in.Op.HasDest() && k == len(ps)-1 {
			if p.Mode != Position && p.Mode != Relative {
				return &InvalidDestinationError{PC: in.PC, Op: in.Op, Param: p}
			}
			continue
		}
		if !p.Mode.Valid() {
			return &BadInstructionError{PC: in.PC, Code: in.code(), Reason: "unexpected mode " + strconv.FormatInt(int64(p.Mode), 10)}
		}
	}
	return nil
}

func (in Instruction) code() []Cell {
	c := make([]Cell, 0, 1+MaxArity)
	c = append(c, in.Word())
	for _, p := range in.Params() {
		c = append(c, p.Value)
	}
	return c
}

// String returns the disassembly of the instruction, e.g. "add 4, #3, @-1".
func (in Instruction) String() string {
	var b strings.Builder
	b.WriteString(in.Op.String())
	for k, p := range in.Params() {
		if k == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	return b.String()
}

// Decode decodes the instruction at address pc in mem. It reads no memory
// outside of the instruction itself and does not resolve parameters.
//
// Opcodes with more non-zero mode digits than the instruction has parameters
// are rejected. Use an Instance with the LenientModes option to accept them.
func Decode(mem []Cell, pc int) (Instruction, error) {
	return decode(mem, pc, false)
}

// Decode decodes the instruction at address pc in the VM memory, honoring the
// LenientModes option.
func (i *Instance) Decode(pc int) (Instruction, error) {
	return decode(i.mem, pc, i.lenient)
}

func decode(mem []Cell, pc int, lenient bool) (ins Instruction, err error) {
	if pc < 0 || pc >= len(mem) {
		return ins, &BadInstructionError{PC: pc, Reason: "instruction pointer out of bounds"}
	}
	w := mem[pc]
	if w < 0 {
		return ins, &BadInstructionError{PC: pc, Code: copyCells(mem[pc : pc+1]), Reason: "negative instruction word"}
	}
	op := Opcode(w % 100)
	n := op.Arity()
	if n < 0 {
		return ins, &BadInstructionError{PC: pc, Code: copyCells(mem[pc : pc+1]), Reason: "unknown opcode " + strconv.FormatInt(int64(op), 10)}
	}
	if pc+n >= len(mem) {
		return ins, &BadInstructionError{PC: pc, Code: copyCells(mem[pc:]), Reason: "truncated instruction"}
	}
	ins.PC, ins.Op = pc, op
	modes := w / 100
	for k := 0; k < n; k++ {
		ins.Args[k] = Parameter{Mode(modes % 10), mem[pc+1+k]}
		modes /= 10
	}
	if modes != 0 && !lenient {
		return Instruction{}, &BadInstructionError{PC: pc, Code: copyCells(mem[pc : pc+1+n]), Reason: "extra parameter modes"}
	}
	return ins, nil
}

func copyCells(c []Cell) []Cell {
	return append([]Cell(nil), c...)
}
