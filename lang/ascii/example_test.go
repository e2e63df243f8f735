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

package ascii_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/vm"
)

func ExampleDecode() {
	text, rest := ascii.Decode([]vm.Cell{'o', 'k', '\n', 4242})
	fmt.Printf("%q %v\n", text, rest)

	// Output:
	// "ok\n" [4242]
}

func ExampleConsole() {
	prog, err := asm.Assemble("echo", strings.NewReader(echo))
	if err != nil {
		panic(err)
	}
	i, err := vm.New(prog)
	if err != nil {
		panic(err)
	}
	c := ascii.NewConsole(i, strings.NewReader("Hello\n"), os.Stdout)
	if err = c.Run(); err != nil {
		fmt.Println(err)
	}

	// Output:
	// Hello
	// 1000
}
