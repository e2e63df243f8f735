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
	"fmt"
	"math"
	"slices"

	"github.com/pkg/errors"
)

// returned by step for instructions that do not stop the VM.
const running = NotStarted

// Run starts or resumes execution of the VM at the current PC and returns the
// values output during this call.
//
// Run returns with a nil error when the program halts or when an Input
// instruction finds the input queue empty. LastStop tells which. In the latter
// case, the PC still points to the Input instruction: feed more input with Feed
// and call Run again to resume execution.
//
// If an error occurs, the PC will point to the instruction that triggered the
// error and the values output so far are returned along with the error. The
// error cause is one of *BadInstructionError, *InvalidDestinationError,
// *AddressError or ErrStepLimit.
func (i *Instance) Run() (out []Cell, err error) {
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case error:
				err = errors.Wrapf(e, "recovered error @pc=%d/%d, rb=%d", i.pc, len(i.mem), i.rb)
				out = i.output
			default:
				panic(e)
			}
		}
	}()
	i.output = nil
	i.stop = NotStarted
	i.insCount = 0
	for {
		if i.maxSteps > 0 && i.insCount >= i.maxSteps {
			return i.output, errors.Wrapf(ErrStepLimit, "%d instructions executed @pc=%d", i.insCount, i.pc)
		}
		ins, err := i.Decode(i.pc)
		if err != nil {
			return i.output, errors.WithStack(err)
		}
		if i.trace != nil && i.trace.Err == nil {
			fmt.Fprintf(i.trace, "% 8d\t%v\n", ins.PC, ins)
		}
		stop, err := i.step(ins)
		if err != nil {
			return i.output, errors.WithStack(err)
		}
		if stop == WaitingForInput {
			i.stop = stop
			return i.output, nil
		}
		i.insCount++
		if stop == Halted {
			i.stop = stop
			return i.output, nil
		}
	}
}

// step executes a single instruction. The PC is left untouched if the
// instruction stops the VM or fails.
func (i *Instance) step(ins Instruction) (StopReason, error) {
	a := &ins.Args
	switch ins.Op {
	case OpAdd, OpMul, OpLessThan, OpEquals:
		x, err := i.load(ins, a[0])
		if err != nil {
			return running, err
		}
		y, err := i.load(ins, a[1])
		if err != nil {
			return running, err
		}
		var v Cell
		switch ins.Op {
		case OpAdd:
			v = x + y
		case OpMul:
			v = x * y
		case OpLessThan:
			if x < y {
				v = 1
			}
		case OpEquals:
			if x == y {
				v = 1
			}
		}
		if err = i.storeParam(ins, a[2], v); err != nil {
			return running, err
		}
	case OpIn:
		if len(i.input) == 0 {
			return WaitingForInput, nil
		}
		if err := i.storeParam(ins, a[0], i.input[0]); err != nil {
			return running, err
		}
		i.input = i.input[1:]
	case OpOut:
		v, err := i.load(ins, a[0])
		if err != nil {
			return running, err
		}
		i.output = append(i.output, v)
	case OpJumpIfTrue, OpJumpIfFalse:
		v, err := i.load(ins, a[0])
		if err != nil {
			return running, err
		}
		if (v != 0) == (ins.Op == OpJumpIfTrue) {
			t, err := i.load(ins, a[1])
			if err != nil {
				return running, err
			}
			if t < 0 || t >= Cell(math.MaxInt) {
				return running, &AddressError{PC: ins.PC, Addr: t, Reason: "jump target out of range"}
			}
			i.pc = int(t)
			return running, nil
		}
	case OpAdjustRB:
		v, err := i.load(ins, a[0])
		if err != nil {
			return running, err
		}
		i.rb += v
	case OpHalt:
		return Halted, nil
	default:
		// unreachable unless the opcode table and this switch disagree
		return running, &BadInstructionError{PC: ins.PC, Code: ins.code(), Reason: "unimplemented opcode"}
	}
	i.pc = ins.Next()
	return running, nil
}

// load resolves a source parameter.
func (i *Instance) load(ins Instruction, p Parameter) (Cell, error) {
	switch p.Mode {
	case Immediate:
		return p.Value, nil
	case Position:
		return i.fetch(ins.PC, p.Value)
	case Relative:
		return i.fetch(ins.PC, i.rb+p.Value)
	}
	return 0, &BadInstructionError{PC: ins.PC, Code: ins.code(), Reason: fmt.Sprintf("unexpected mode %d", p.Mode)}
}

func (i *Instance) fetch(pc int, addr Cell) (Cell, error) {
	if addr < 0 {
		return 0, &AddressError{PC: pc, Addr: addr, Reason: "negative address"}
	}
	if addr >= Cell(len(i.mem)) {
		return 0, nil
	}
	return i.mem[addr], nil
}

// storeParam resolves the destination parameter p and stores v there.
func (i *Instance) storeParam(ins Instruction, p Parameter, v Cell) error {
	var addr Cell
	switch p.Mode {
	case Position:
		addr = p.Value
	case Relative:
		addr = i.rb + p.Value
	default:
		return &InvalidDestinationError{PC: ins.PC, Op: ins.Op, Param: p}
	}
	return i.store(addr, v)
}

// store writes v at addr, growing memory as needed.
func (i *Instance) store(addr Cell, v Cell) error {
	if addr < 0 {
		return &AddressError{PC: i.pc, Addr: addr, Reason: "negative address"}
	}
	if addr >= Cell(len(i.mem)) {
		if i.maxMem > 0 && addr >= Cell(i.maxMem) {
			return &AddressError{PC: i.pc, Addr: addr, Reason: fmt.Sprintf("memory limit of %d cells exceeded", i.maxMem)}
		}
		if addr >= Cell(math.MaxInt) {
			return &AddressError{PC: i.pc, Addr: addr, Reason: "address out of range"}
		}
		i.grow(int(addr) + 1)
	}
	i.mem[addr] = v
	return nil
}

// grow extends memory to n cells and zero fills the new cells.
func (i *Instance) grow(n int) {
	l := len(i.mem)
	i.mem = slices.Grow(i.mem, n-l)[:n]
	clear(i.mem[l:])
}
