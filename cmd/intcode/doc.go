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

// The intcode command line tool loads and runs Intcode programs.
//
// Usage:
//
//	intcode [flags] [program]
//
//	-a, --ascii
//		  run as an interactive ASCII program
//	    --debug
//		  enable debug diagnostics
//	    --dis
//		  disassemble the program and exit
//	    --dump
//		  dump memory upon exit
//	-i, --input cells
//		  comma separated input values (can be specified multiple times)
//	    --lenient
//		  ignore extra mode digits in opcodes
//	    --max-memory cells
//		  memory limit in cells (0 = no limit) (default 16777216)
//	    --max-steps n
//		  limit each run of the VM to n instructions (0 = no limit)
//	    --noraw
//		  disable raw terminal IO in ASCII mode
//	-p, --program file
//		  load program from file (assembled if it ends with .asm) (default "input.txt")
//	-o, --save file
//		  save memory to file after the program stops
//	    --set ADDR=VALUE
//		  store VALUE at address ADDR before running (can be specified multiple times)
//	-v, --v level
//		  log level for V logs
//
// The program file can also be given as the first argument. Other logging
// flags are those of github.com/golang/glog. Logs go to stderr by default.
//
// In the default mode, output values are printed one per line. Whenever the
// program waits for input and all values given with --input have been
// consumed, a line of comma separated values is read from stdin.
//
// --ascii: output values are printed as ASCII characters, except for values
// outside of the ASCII range which are printed as decimal numbers. Input is
// read line by line from stdin. If stdin is a terminal, it is switched to raw
// mode unless --noraw is set. In raw mode, CTRL-D on an empty line signals the
// end of input and CTRL-C aborts the program.
//
// --set: programs sometimes need to be patched before running. For example,
// the following will set addresses 1 and 2 to 12 and 2, then run the program
// and dump its memory:
//
//	intcode --set 1=12 --set 2=2 --dump day02.txt
//
// --debug: will print a full stacktrace and the VM state should the program
// crash.
//
// -v: at level 1, program loading and VM stops are logged. At level 2 and
// above, every instruction is logged just before it executes.
//
// --dump: prints the VM registers on one line, then the VM memory as program
// text.
package main
