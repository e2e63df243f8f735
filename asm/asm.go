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

package asm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

var opcodes = [...]struct {
	op    vm.Opcode
	names []string
}{
	{vm.OpAdd, []string{"add"}},
	{vm.OpMul, []string{"mul"}},
	{vm.OpIn, []string{"in"}},
	{vm.OpOut, []string{"out"}},
	{vm.OpJumpIfTrue, []string{"jt", "jnz"}},
	{vm.OpJumpIfFalse, []string{"jf", "jz"}},
	{vm.OpLessThan, []string{"lt"}},
	{vm.OpEquals, []string{"eq"}},
	{vm.OpAdjustRB, []string{"arb", "rbo"}},
	{vm.OpHalt, []string{"hlt", "halt"}},
}

var opcodeIndex = make(map[string]vm.Opcode)

func init() {
	for _, o := range opcodes {
		for _, n := range o.names {
			opcodeIndex[n] = o.op
		}
	}
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting program and error if any.
//
// The name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (vm.Program, error) {
	p := newParser()
	return p.Parse(name, r)
}

// Disassemble writes a disassembly of the instruction in the given slice at
// position pc to the specified io.Writer and returns the position of the next
// instruction and any write error.
//
// Cells that do not decode to a valid instruction are written as a .dat
// directive, one cell at a time.
func Disassemble(mem []vm.Cell, pc int, w io.Writer) (next int, err error) {
	if pc < 0 || pc >= len(mem) {
		return pc, errors.Errorf("disassemble: address %d out of range", pc)
	}
	ew := ici.NewErrWriter(w)
	ins, err := vm.Decode(mem, pc)
	if err == nil {
		err = ins.Check()
	}
	if err != nil {
		io.WriteString(ew, ".dat ")
		io.WriteString(ew, strconv.FormatInt(int64(mem[pc]), 10))
		return pc + 1, ew.Err
	}
	io.WriteString(ew, ins.String())
	return ins.Next(), ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// first cell (mem[0]). It will return any write error.
func DisassembleAll(mem []vm.Cell, base int, w io.Writer) error {
	ew := ici.NewErrWriter(w)
	for pc := 0; pc < len(mem); {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		pc, _ = Disassemble(mem, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
