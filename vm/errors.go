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

	"github.com/pkg/errors"
)

// ErrStepLimit is the cause of the error returned by Run when the limit set
// with MaxSteps is reached.
var ErrStepLimit = errors.New("step limit exceeded")

// InvalidProgramError is returned when program text cannot be parsed.
type InvalidProgramError struct {
	Index int    // index of the offending value
	Text  string // offending value
	Err   error
}

func (e *InvalidProgramError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid program text: value #%d %q", e.Index, e.Text)
	}
	return fmt.Sprintf("invalid program text: value #%d %q: %v", e.Index, e.Text, e.Err)
}

func (e *InvalidProgramError) Unwrap() error { return e.Err }

// BadInstructionError is returned when the instruction at PC cannot be
// decoded or executed. Code holds the offending memory cells.
type BadInstructionError struct {
	PC     int
	Code   []Cell
	Reason string
}

func (e *BadInstructionError) Error() string {
	return fmt.Sprintf("bad instruction @pc=%d %v: %s", e.PC, e.Code, e.Reason)
}

// InvalidDestinationError is returned when the destination parameter of an
// instruction is neither in position nor in relative mode.
type InvalidDestinationError struct {
	PC    int
	Op    Opcode
	Param Parameter
}

func (e *InvalidDestinationError) Error() string {
	return fmt.Sprintf("invalid destination %v for %v @pc=%d", e.Param, e.Op, e.PC)
}

// AddressError is returned on attempts to access memory at a negative or
// otherwise unreachable address, or to jump to such an address.
type AddressError struct {
	PC     int
	Addr   Cell
	Reason string
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("invalid address %d @pc=%d: %s", e.Addr, e.PC, e.Reason)
}
