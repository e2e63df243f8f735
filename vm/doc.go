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

// Package vm implements the Intcode VM.
//
// An Intcode program is a list of integers, loaded as is in VM memory. Each
// instruction is made of an instruction word followed by its parameters. The
// two least significant decimal digits of the instruction word select the
// opcode, and the following digits, read right to left, give the addressing
// mode of each parameter: 0 for position mode, 1 for immediate mode and 2 for
// relative mode.
//
// Memory is unbounded: reading past the end of memory returns 0 and writing
// past it grows memory as needed.
//
// Communication with Go programs goes through an input queue and the values
// returned by Run. When an input instruction finds the queue empty, Run
// returns and LastStop reports WaitingForInput. The caller can then Feed more
// input and call Run again to resume execution where it left off. Several
// instances can be chained this way, the output of one being fed to the next.
//
// For all intents and purposes, the VM behaves according to the day 9
// specification at https://adventofcode.com/2019/day/9, with one restriction:
// opcodes with more non-zero mode digits than they have parameters are
// rejected unless the LenientModes option is set.
package vm
