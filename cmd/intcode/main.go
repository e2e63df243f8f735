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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/golang/glog"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// cellList is a flag.Value for comma separated lists of cells. It can be
// specified multiple times.
type cellList []vm.Cell

func (l *cellList) String() string { return vm.Program(*l).String() }
func (l *cellList) Type() string   { return "cells" }
func (l *cellList) Set(s string) error {
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid input value %q", f)
		}
		*l = append(*l, vm.Cell(v))
	}
	return nil
}

type poke struct {
	addr int
	val  vm.Cell
}

// pokeList is a flag.Value for ADDR=VALUE memory assignments.
type pokeList []poke

func (l *pokeList) String() string {
	s := make([]string, len(*l))
	for k, p := range *l {
		s[k] = strconv.Itoa(p.addr) + "=" + strconv.FormatInt(int64(p.val), 10)
	}
	return strings.Join(s, ",")
}
func (l *pokeList) Type() string { return "ADDR=VALUE" }
func (l *pokeList) Set(s string) error {
	a, v, ok := strings.Cut(s, "=")
	if !ok {
		return errors.Errorf("invalid assignment %q, expected ADDR=VALUE", s)
	}
	addr, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil || addr < 0 {
		return errors.Errorf("invalid address in %q", s)
	}
	val, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid value in %q", s)
	}
	*l = append(*l, poke{addr, vm.Cell(val)})
	return nil
}

var (
	progFile  string
	saveFile  string
	inputs    cellList
	pokes     pokeList
	asciiMode bool
	noRawIO   bool
	dump      bool
	disasm    bool
	lenient   bool
	debug     bool
	maxSteps  int64
	maxMemory int
)

// loadProgram loads program text, or assembles it if the file name ends with
// ".asm".
func loadProgram(name string) (vm.Program, error) {
	if filepath.Ext(name) != ".asm" {
		return vm.LoadFile(name)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	return asm.Assemble(name, bufio.NewReader(f))
}

func newVM(prog vm.Program) (*vm.Instance, error) {
	opts := []vm.Option{
		vm.MaxSteps(maxSteps),
		vm.MaxMemory(maxMemory),
		vm.LenientModes(lenient),
		vm.Input(inputs...),
	}
	if glog.V(2) {
		opts = append(opts, vm.Trace(traceWriter{}))
	}
	i, err := vm.New(prog, opts...)
	if err != nil {
		return nil, err
	}
	for _, p := range pokes {
		if err = i.Poke(p.addr, p.val); err != nil {
			return nil, errors.Wrapf(err, "set %d=%d", p.addr, p.val)
		}
	}
	return i, nil
}

func atExit(i *vm.Instance, err error) {
	glog.Flush()
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if i != nil {
		ins, derr := i.Decode(i.PC())
		if derr != nil {
			fmt.Fprintf(os.Stderr, "PC: %v (%v), RB: %v, Mem: %d cells\n", i.PC(), i.Peek(i.PC()), i.RelativeBase(), i.Len())
		} else {
			fmt.Fprintf(os.Stderr, "PC: %v (%v), RB: %v, Mem: %d cells\n", i.PC(), ins, i.RelativeBase(), i.Len())
		}
	}
	os.Exit(1)
}

func main() {
	var err error
	var i *vm.Instance

	stdout := bufio.NewWriter(os.Stdout)

	// flush output, catch and log errors
	defer func() {
		if e := stdout.Flush(); err == nil && e != nil {
			err = errors.Wrap(e, "write failed")
		}
		atExit(i, err)
	}()

	pflag.StringVarP(&progFile, "program", "p", "input.txt", "load program from `file` (assembled if it ends with .asm)")
	pflag.StringVarP(&saveFile, "save", "o", "", "save memory to `file` after the program stops")
	pflag.VarP(&inputs, "input", "i", "comma separated input values (can be specified multiple times)")
	pflag.Var(&pokes, "set", "store VALUE at address ADDR before running (can be specified multiple times)")
	pflag.BoolVarP(&asciiMode, "ascii", "a", false, "run as an interactive ASCII program")
	pflag.BoolVar(&noRawIO, "noraw", false, "disable raw terminal IO in ASCII mode")
	pflag.BoolVar(&dump, "dump", false, "dump memory upon exit")
	pflag.BoolVar(&disasm, "dis", false, "disassemble the program and exit")
	pflag.BoolVar(&lenient, "lenient", false, "ignore extra mode digits in opcodes")
	pflag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
	pflag.Int64Var(&maxSteps, "max-steps", 0, "limit each run of the VM to `n` instructions (0 = no limit)")
	pflag.IntVar(&maxMemory, "max-memory", 1<<24, "memory limit in `cells` (0 = no limit)")

	// glog flags, logging to stderr by default
	flag.CommandLine.Set("logtostderr", "true")
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	pflag.Parse()
	// keep the go flag package happy
	flag.CommandLine.Parse(nil)

	if pflag.NArg() > 0 && !pflag.CommandLine.Changed("program") {
		progFile = pflag.Arg(0)
	}

	prog, err := loadProgram(progFile)
	if err != nil {
		return
	}
	glog.V(1).Infof("loaded %d cells from %s", len(prog), progFile)

	if disasm {
		err = asm.DisassembleAll(prog, 0, stdout)
		return
	}

	i, err = newVM(prog)
	if err != nil {
		return
	}

	if asciiMode {
		err = runASCII(i, stdout)
	} else {
		err = runNumeric(i, bufio.NewReader(os.Stdin), stdout)
	}
	glog.V(1).Infof("%v after %d instructions @pc=%d", i.LastStop(), i.InstructionCount(), i.PC())
	if err != nil {
		return
	}

	if dump {
		if err = dumpVM(i, stdout); err != nil {
			return
		}
	}
	if saveFile != "" {
		err = vm.Save(saveFile, i.Mem())
	}
}

// runASCII runs i with an ascii.Console on stdin. If stdin is a terminal,
// it is switched to raw mode and line editing is handled by a lineReader.
func runASCII(i *vm.Instance, stdout *bufio.Writer) error {
	in := bufio.NewReader(os.Stdin)
	var out = flushWriter{stdout}
	if !noRawIO && isatty.IsTerminal(os.Stdin.Fd()) {
		tearDown, err := setRawIO()
		if err != nil {
			glog.Warningf("raw terminal IO disabled: %v", err)
		} else {
			defer tearDown()
			in = bufio.NewReader(newLineReader(os.Stdin, out))
		}
	}
	return ascii.NewConsole(i, in, out).Run()
}
