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

package vm_test

import (
	"fmt"

	"github.com/db47h/intcode/vm"
)

// Patch memory before running a program, then read the result from address 0.
func ExampleInstance_Poke() {
	i, err := vm.NewString("1,9,10,3,2,3,11,0,99,30,40,50")
	if err != nil {
		panic(err)
	}
	// replace the addresses of the operands of the first instruction
	if err = i.Poke(1, 10); err != nil {
		panic(err)
	}
	if err = i.Poke(2, 11); err != nil {
		panic(err)
	}
	if _, err = i.Run(); err != nil {
		panic(err)
	}
	fmt.Println(i.Peek(0))

	// Output:
	// 4500
}

// Shows how to resume a program waiting for input.
func ExampleInstance_Run() {
	// read two numbers, output their sum
	i, err := vm.NewString("3,20,3,21,1,20,21,22,4,22,99")
	if err != nil {
		panic(err)
	}
	input := []vm.Cell{40, 2}
	for {
		out, err := i.Run()
		if err != nil {
			panic(err)
		}
		fmt.Println(out, i.LastStop())
		if i.LastStop() == vm.Halted {
			break
		}
		i.Feed(input[0])
		input = input[1:]
	}

	// Output:
	// [] waiting for input
	// [] waiting for input
	// [42] halted
}

// Decode and print the instructions of a small program.
func ExampleDecode() {
	prog := vm.Program{3, 21, 1008, 21, 8, 20, 1005, 20, 22, 99}
	for pc := 0; pc < len(prog); {
		ins, err := vm.Decode(prog, pc)
		if err != nil {
			panic(err)
		}
		fmt.Printf("%d: %v\n", pc, ins)
		pc = ins.Next()
	}

	// Output:
	// 0: in 21
	// 2: eq 21, #8, 20
	// 6: jt 20, #22
	// 9: hlt
}
