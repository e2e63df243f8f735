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
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

var errInterrupted = errors.New("interrupted")

// flushWriter flushes the underlying buffer after each write.
type flushWriter struct {
	w *bufio.Writer
}

func (w flushWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	if err != nil {
		return n, err
	}
	return n, w.w.Flush()
}

// traceWriter sends VM traces to the log.
type traceWriter struct{}

func (traceWriter) Write(p []byte) (int, error) {
	glog.InfoDepth(1, string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}

// runNumeric runs i and writes output values one per line. Whenever the
// program waits for input, a line of comma separated values is read from r.
func runNumeric(i *vm.Instance, r *bufio.Reader, w io.Writer) error {
	ew := ici.NewErrWriter(w)
	b := make([]byte, 0, 24)
	for {
		out, err := i.Run()
		for _, v := range out {
			b = strconv.AppendInt(b[:0], int64(v), 10)
			b = append(b, '\n')
			ew.Write(b)
		}
		if err != nil {
			return err
		}
		if ew.Err != nil {
			return ew.Err
		}
		if i.LastStop() == vm.Halted {
			return nil
		}
		if f, ok := w.(interface{ Flush() error }); ok {
			if err = f.Flush(); err != nil {
				return errors.Wrap(err, "write failed")
			}
		}
		values, err := readCells(r)
		if err != nil {
			return errors.Wrapf(err, "program waiting for input @pc=%d", i.PC())
		}
		i.Feed(values...)
	}
}

// readCells reads a line of comma separated values from r. Blank lines are
// skipped.
func readCells(r *bufio.Reader) ([]vm.Cell, error) {
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				return nil, errors.Wrap(err, "read failed")
			}
			if strings.TrimSpace(line) == "" {
				return nil, io.ErrUnexpectedEOF
			}
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var l cellList
		if err := l.Set(line); err != nil {
			return nil, err
		}
		return l, nil
	}
}

// lineReader is a minimal line editor for terminals in raw mode. It echoes
// input and handles backspace, CTRL-C and CTRL-D.
type lineReader struct {
	r       *bufio.Reader
	w       io.Writer
	line    []byte
	pending []byte
	err     error
}

func newLineReader(r io.Reader, echo io.Writer) *lineReader {
	return &lineReader{r: bufio.NewReader(r), w: echo}
}

func (l *lineReader) Read(p []byte) (int, error) {
	if len(l.pending) == 0 {
		if l.err != nil {
			return 0, l.err
		}
		l.pending, l.err = l.readLine()
		if len(l.pending) == 0 && l.err != nil {
			return 0, l.err
		}
	}
	n := copy(p, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}

func (l *lineReader) readLine() ([]byte, error) {
	l.line = l.line[:0]
	for {
		c, err := l.r.ReadByte()
		if err != nil {
			return l.line, err
		}
		switch c {
		case '\r', '\n':
			l.line = append(l.line, '\n')
			l.w.Write([]byte{'\n'})
			return l.line, nil
		case 3: // CTRL-C
			l.w.Write([]byte("^C\n"))
			return nil, errInterrupted
		case 4: // CTRL-D
			if len(l.line) == 0 {
				return nil, io.EOF
			}
			return l.line, nil
		case 8, 127:
			if len(l.line) > 0 {
				_, sz := utf8.DecodeLastRune(l.line)
				l.line = l.line[:len(l.line)-sz]
				l.w.Write([]byte{8, ' ', 8})
			}
		default:
			if c >= ' ' || c == '\t' {
				l.line = append(l.line, c)
				l.w.Write([]byte{c})
			}
		}
	}
}
