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

// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	opcode	asm		operands	description
//	------	---		--------	------------------------------------------------
//	1	add		a, b, dst	dst = a + b
//	2	mul		a, b, dst	dst = a * b
//	3	in		dst		dst = next input value
//	4	out		a		output a
//	5	jt, jnz		a, target	jump to target if a != 0
//	6	jf, jz		a, target	jump to target if a == 0
//	7	lt		a, b, dst	dst = 1 if a < b, else 0
//	8	eq		a, b, dst	dst = 1 if a == b, else 0
//	9	arb, rbo	a		add a to the relative base
//	99	hlt, halt			halt
//
// Operands:
//
// Operands are separated by white space or commas. The addressing mode of an
// operand is given by its prefix:
//
//	42	position mode: the value at address 42
//	#42	immediate mode: the value 42
//	@-1	relative mode: the value at address relative base - 1
//
// The instruction word is built from the opcode and the operand modes, so that
// "mul 4, #3, 4" compiles as 1002,4,3,4. Destination operands (the last operand
// of add, mul, in, lt and eq) cannot be immediate.
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	( this is a
//	  multiline comment )
//
// Literals and identifiers:
//
// Input is split at white space and commas into tokens. A token that can be
// converted by strconv.ParseInt (in any base) is an integer literal. A Go
// character literal between single quotes is converted to the corresponding
// integer. The name of a constant defined with .equ is replaced by its value.
// Any other token in an operand is considered to be a label.
//
// Where the parser expects an instruction, values and labels are compiled as-is,
// just like with .dat.
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:) and evaluate to the
// address of the next compiled cell. They can be used in any operand and forward
// references are allowed:
//
//		in n
//		jt n, #loop		( jump to loop if n != 0 )
//		hlt
//	:loop	out n
//		hlt
//	:n	.dat 0
//
// Since mnemonics take precedence in operands, labels cannot be named after an
// instruction.
//
// Local labels:
//
// Local labels are defined as a colon followed by a sequence of digits (i.e.
// :007, :0, :42) and can be defined multiple times. References to such labels
// must be suffixed with either a '-' (backward reference to the last definition
// of this label), or a '+' (forward reference to the next definition of this
// label):
//
//	:1	jt #1, #1+	( jumps to the next :1 )
//	:1	jt #1, #1-	( jumps to itself )
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value. The value must be an integer value, named constant
// or character literal.
//
//	.org <value>
//
// Will place the next instruction at the address specified by the given integer
// literal or named constant. Gaps are filled with zeros.
//
//	.dat <value>
//
// Will compile the specified integer value, named constant, character literal or
// label address as-is. This is primarily used for variables and tables:
//
//	:table	.dat 65
//		.dat 'B'
//
// Disassembly:
//
// Disassemble and DisassembleAll produce text that Assemble compiles back to the
// same program. Cells that do not decode to a valid instruction are written as
// .dat directives.
package asm
