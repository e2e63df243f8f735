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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

func TestParse(t *testing.T) {
	for _, test := range []struct {
		text string
		prog C
	}{
		{"1,9,10,3,2,3,11,0,99,30,40,50", C{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}},
		{"3,9,8,9,10,9,4,9,99,-1,8\n", C{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}},
		{"104,1125899906842624,99\r\n", C{104, 1125899906842624, 99}},
		{" 1, 2 ,3 ", C{1, 2, 3}},
		{"-9223372036854775808", C{-9223372036854775808}},
	} {
		prog, err := vm.Parse(test.text)
		if err != nil {
			t.Errorf("%q: %v", test.text, err)
			continue
		}
		checkCells(t, test.text, "program", test.prog, prog)
		// text and cell slices produce the same memory
		a, err := vm.NewString(test.text)
		if err != nil {
			t.Fatal(err)
		}
		b, err := vm.New(vm.Program(test.prog))
		if err != nil {
			t.Fatal(err)
		}
		checkCells(t, test.text, "memory", a.Mem(), b.Mem())
	}
}

func TestParse_errors(t *testing.T) {
	for _, test := range []struct {
		text  string
		index int
	}{
		{"", 0},
		{"\n", 0},
		{"1,2,", 2},
		{"1,,3", 1},
		{"1,x,3", 1},
		{"1;2;3", 0},
		{"1,2\n3", 1},
		{"99999999999999999999", 0},
	} {
		_, err := vm.Parse(test.text)
		e, ok := errors.Cause(err).(*vm.InvalidProgramError)
		if !ok {
			t.Errorf("%q: expected *InvalidProgramError, got %v", test.text, err)
			continue
		}
		if e.Index != test.index {
			t.Errorf("%q: expected error on value #%d, got %v", test.text, test.index, e)
		}
	}
}

func TestProgram_String(t *testing.T) {
	const text = "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99"
	prog, err := vm.Parse(text)
	if err != nil {
		t.Fatal(err)
	}
	if s := prog.String(); s != text {
		t.Errorf("Expected %s, got %s", text, s)
	}
	if s := vm.Program(nil).String(); s != "" {
		t.Errorf("Expected empty string, got %q", s)
	}
}

func TestSaveLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prog.txt")
	prog := vm.Program{1, 0, 0, 0, 99, -7}
	if err := vm.Save(fn, prog); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(fn)
	if err != nil {
		t.Fatal(err)
	}
	if s := string(b); s != "1,0,0,0,99,-7\n" {
		t.Fatalf("Unexpected file contents %q", s)
	}
	loaded, err := vm.LoadFile(fn)
	if err != nil {
		t.Fatal(err)
	}
	checkCells(t, "load", "program", prog, loaded)

	_, err = vm.LoadFile(filepath.Join(t.TempDir(), "missing"))
	if err == nil || !strings.Contains(err.Error(), "open failed") {
		t.Errorf("Expected open error, got %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.txt")
	if err = os.WriteFile(bad, []byte("1,2,oops\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = vm.LoadFile(bad)
	if _, ok := errors.Cause(err).(*vm.InvalidProgramError); !ok {
		t.Errorf("Expected *InvalidProgramError, got %v", err)
	}
}
