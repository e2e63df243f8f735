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
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/kr/pretty"
	"github.com/pkg/errors"
)

func TestCellList(t *testing.T) {
	var l cellList
	if err := l.Set("1, -2,3"); err != nil {
		t.Fatal(err)
	}
	if err := l.Set("4"); err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(cellList{1, -2, 3, 4}, l); len(diff) > 0 {
		t.Errorf("%v", diff)
	}
	if s := l.String(); s != "1,-2,3,4" {
		t.Errorf("unexpected String() %q", s)
	}
	if err := l.Set("1,x"); err == nil {
		t.Error("expected error")
	}
}

func TestPokeList(t *testing.T) {
	var l pokeList
	for _, s := range []string{"1=12", "2 = -2"} {
		if err := l.Set(s); err != nil {
			t.Fatal(err)
		}
	}
	if s := l.String(); s != "1=12,2=-2" {
		t.Errorf("unexpected String() %q", s)
	}
	for _, s := range []string{"12", "-1=2", "a=1", "1=b"} {
		if err := l.Set(s); err == nil {
			t.Errorf("%q: expected error", s)
		}
	}
}

func TestRunNumeric(t *testing.T) {
	// sums input pairs until it reads 0
	i, err := vm.NewString("3,20,1005,20,6,99,3,21,1,20,21,22,4,22,1105,1,0")
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	err = runNumeric(i, bufio.NewReader(strings.NewReader("1,2\n\n40\n2\n0\n")), &out)
	if err != nil {
		t.Fatal(err)
	}
	if s := out.String(); s != "3\n42\n" {
		t.Errorf("unexpected output %q", s)
	}

	i.Reset(nil)
	out.Reset()
	err = runNumeric(i, bufio.NewReader(strings.NewReader("1")), &out)
	if errors.Cause(err) != io.ErrUnexpectedEOF {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestLineReader(t *testing.T) {
	for _, test := range []struct {
		in   string
		out  []string
		echo string
		err  error
	}{
		{"ab\r", []string{"ab\n"}, "ab\n", io.EOF},
		{"ab\x7fc\n\x04", []string{"ac\n"}, "ab\b \bc\n", io.EOF},
		{"\x08\x08x\n", []string{"x\n"}, "x\n", io.EOF},
		{"é\x7f!\n", []string{"!\n"}, "é\b \b!\n", io.EOF},
		{"a\x01\tb\n", []string{"a\tb\n"}, "a\tb\n", io.EOF},
		{"x\ny", []string{"x\n", "y"}, "x\ny", io.EOF},
		{"x\x03", nil, "x^C\n", errInterrupted},
	} {
		var echo bytes.Buffer
		r := bufio.NewReader(newLineReader(strings.NewReader(test.in), &echo))
		var lines []string
		var err error
		for {
			var s string
			s, err = r.ReadString('\n')
			if s != "" {
				lines = append(lines, s)
			}
			if err != nil {
				break
			}
		}
		if err != test.err {
			t.Errorf("%q: expected error %v, got %v", test.in, test.err, err)
		}
		if diff := pretty.Diff(test.out, lines); len(diff) > 0 {
			t.Errorf("%q: %v", test.in, diff)
		}
		if s := echo.String(); s != test.echo {
			t.Errorf("%q: expected echo %q, got %q", test.in, test.echo, s)
		}
	}
}
