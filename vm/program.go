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
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/intcode/internal/ici"
	"github.com/pkg/errors"
)

// Program is an Intcode program, i.e. the initial contents of VM memory.
type Program []Cell

// Parse parses program text: a single line of comma separated base 10 integers,
// with an optional trailing newline.
func Parse(text string) (Program, error) {
	text = strings.TrimRight(text, "\r\n")
	if strings.TrimSpace(text) == "" {
		return nil, &InvalidProgramError{Err: errors.New("empty program")}
	}
	fields := strings.Split(text, ",")
	p := make(Program, len(fields))
	for k, f := range fields {
		f = strings.TrimSpace(f)
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok {
				err = ne.Err
			}
			return nil, &InvalidProgramError{Index: k, Text: f, Err: err}
		}
		p[k] = Cell(v)
	}
	return p, nil
}

// ParseReader reads and parses program text from r.
func ParseReader(r io.Reader) (Program, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	return Parse(string(b))
}

// LoadFile loads program text from file fileName.
func LoadFile(fileName string) (Program, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	p, err := ParseReader(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", fileName)
	}
	return p, nil
}

// Save saves p as program text to file fileName. The file is removed if any
// error occurs.
func Save(fileName string, p Program) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	w := bufio.NewWriter(f)
	defer func() {
		if e := w.Flush(); err == nil && e != nil {
			err = errors.Wrap(e, "write failed")
		}
		if e := f.Close(); err == nil && e != nil {
			err = errors.Wrap(e, "close failed")
		}
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	ew := ici.NewErrWriter(w)
	p.writeTo(ew)
	ew.Write([]byte{'\n'})
	return ew.Err
}

// Clone returns a copy of p.
func (p Program) Clone() Program {
	if p == nil {
		return nil
	}
	return append(make(Program, 0, len(p)), p...)
}

// String returns p as program text, without trailing newline.
func (p Program) String() string {
	var b strings.Builder
	p.writeTo(&b)
	return b.String()
}

func (p Program) writeTo(w io.Writer) {
	b := make([]byte, 0, 24)
	for k, v := range p {
		b = b[:0]
		if k > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
		if _, err := w.Write(b); err != nil {
			return
		}
	}
}
