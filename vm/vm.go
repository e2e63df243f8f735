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
	"io"
	"strconv"

	"github.com/db47h/intcode/internal/ici"
	"github.com/pkg/errors"
)

// Cell is the raw type stored in a memory location.
type Cell int64

// StopReason tells why the last call to Run returned.
type StopReason int

// Stop reasons.
const (
	NotStarted      StopReason = iota // Run never called since New or Reset
	Halted                            // a Halt instruction was executed
	WaitingForInput                   // an Input instruction found the input queue empty
)

func (r StopReason) String() string {
	switch r {
	case NotStarted:
		return "not started"
	case Halted:
		return "halted"
	case WaitingForInput:
		return "waiting for input"
	}
	return "StopReason(" + strconv.Itoa(int(r)) + ")"
}

// Instance represents an Intcode VM instance.
type Instance struct {
	pc       int
	rb       Cell
	mem      []Cell
	initial  Program
	input    []Cell
	output   []Cell
	stop     StopReason
	insCount int64
	maxSteps int64
	maxMem   int
	lenient  bool
	trace    *ici.ErrWriter
}

// Option interface
type Option func(*Instance) error

// MaxSteps limits the number of instructions a single call to Run may execute.
// When the limit is reached, Run returns an error whose cause is ErrStepLimit.
// The VM state is left intact and calling Run again resumes execution. A value
// <= 0 disables the limit, which is the default.
func MaxSteps(n int64) Option {
	return func(i *Instance) error {
		if n < 0 {
			n = 0
		}
		i.maxSteps = n
		return nil
	}
}

// MaxMemory limits the memory size in cells. Writes that would grow memory
// beyond that size fail with an *AddressError. The limit must be at least the
// size of the loaded program. 0, the default, means no limit.
func MaxMemory(cells int) Option {
	return func(i *Instance) error {
		if cells < 0 {
			return errors.Errorf("invalid memory limit %d", cells)
		}
		if cells != 0 && cells < len(i.mem) {
			return errors.Errorf("memory limit %d smaller than program size %d", cells, len(i.mem))
		}
		i.maxMem = cells
		return nil
	}
}

// LenientModes controls how the decoder handles opcodes with more non-zero
// mode digits than the instruction has parameters. By default these are
// rejected as bad instructions. With lenient set to true, the extra digits are
// ignored.
func LenientModes(lenient bool) Option {
	return func(i *Instance) error { i.lenient = lenient; return nil }
}

// Input appends the given values to the input queue.
func Input(values ...Cell) Option {
	return func(i *Instance) error { i.Feed(values...); return nil }
}

// Trace enables instruction tracing: each instruction is written to w in
// disassembled form just before it executes. Tracing stops after the first
// write error. A nil writer disables tracing.
func Trace(w io.Writer) Option {
	return func(i *Instance) error {
		if w == nil {
			i.trace = nil
			return nil
		}
		i.trace = ici.NewErrWriter(w)
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Intcode Virtual Machine instance.
//
// The VM works on a private copy of prog, which is also kept as the initial
// state for Reset. Options will be set by calling SetOptions.
func New(prog Program, opts ...Option) (*Instance, error) {
	i := &Instance{
		initial: prog.Clone(),
	}
	i.mem = i.initial.Clone()
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// NewString parses the given program text and creates a new VM instance
// running it.
func NewString(text string, opts ...Option) (*Instance, error) {
	prog, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return New(prog, opts...)
}

// Reset restores the VM to its initial state with a fresh copy of prog loaded
// in memory. The instruction pointer, relative base, input queue and stop
// reason are cleared. If prog is nil, the program the instance was created
// with is used. Options are left untouched.
func (i *Instance) Reset(prog Program) *Instance {
	if prog != nil {
		i.initial = prog.Clone()
	}
	i.mem = i.initial.Clone()
	i.pc = 0
	i.rb = 0
	i.input = i.input[:0]
	i.output = nil
	i.stop = NotStarted
	i.insCount = 0
	return i
}

// Feed appends values to the input queue. It may be called at any time, in
// particular after Run returned with WaitingForInput.
func (i *Instance) Feed(values ...Cell) *Instance {
	i.input = append(i.input, values...)
	return i
}

// Pending returns the number of values in the input queue.
func (i *Instance) Pending() int {
	return len(i.input)
}

// Peek returns the value stored at addr. Addresses beyond the end of memory,
// or negative, read as 0.
func (i *Instance) Peek(addr int) Cell {
	if addr < 0 || addr >= len(i.mem) {
		return 0
	}
	return i.mem[addr]
}

// Poke stores v at addr. If addr is beyond the end of memory, memory is grown
// and zero filled up to addr.
func (i *Instance) Poke(addr int, v Cell) error {
	return i.store(Cell(addr), v)
}

// PC returns the current value of the instruction pointer.
func (i *Instance) PC() int {
	return i.pc
}

// RelativeBase returns the current value of the relative base register.
func (i *Instance) RelativeBase() Cell {
	return i.rb
}

// LastStop returns the reason why the last call to Run returned. It returns
// NotStarted if Run has not been called since the instance was created or
// reset, or if the last call to Run failed.
func (i *Instance) LastStop() StopReason {
	return i.stop
}

// Len returns the current memory size in cells.
func (i *Instance) Len() int {
	return len(i.mem)
}

// Mem returns a copy of the VM memory.
func (i *Instance) Mem() Program {
	return Program(i.mem).Clone()
}

// InstructionCount returns the number of instructions executed by the last
// call to Run.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Dump writes the VM memory to w, in the same comma separated format as
// program text, followed by a newline.
func (i *Instance) Dump(w io.Writer) error {
	ew := ici.NewErrWriter(w)
	Program(i.mem).writeTo(ew)
	ew.Write([]byte{'\n'})
	return ew.Err
}
