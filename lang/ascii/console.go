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

package ascii

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// Console runs an ASCII capable program interactively.
//
// ASCII output is written as-is to the console output. Values outside of the
// ASCII range are written as decimal numbers on a line of their own. Whenever
// the program waits for input, a line of text is read from the console input
// and fed to the program, terminated by a '\n'.
type Console struct {
	i  *vm.Instance
	r  *bufio.Reader
	w  *ici.ErrWriter
	nl bool // last character written was a '\n'
}

// NewConsole returns a new Console for the VM instance i, reading from r and
// writing to w.
func NewConsole(i *vm.Instance, r io.Reader, w io.Writer) *Console {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Console{i: i, r: br, w: ici.NewErrWriter(w), nl: true}
}

// Run runs the program until it halts or an error occurs. Reaching the end of
// the console input while the program waits for more returns an error whose
// cause is io.ErrUnexpectedEOF.
func (c *Console) Run() error {
	for {
		out, err := c.i.Run()
		c.write(out)
		if err != nil {
			return err
		}
		if c.w.Err != nil {
			return c.w.Err
		}
		if c.i.LastStop() == vm.Halted {
			return nil
		}
		line, err := c.r.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				return errors.Wrap(err, "read failed")
			}
			if line == "" {
				return errors.Wrapf(io.ErrUnexpectedEOF, "program waiting for input @pc=%d", c.i.PC())
			}
		}
		Feed(c.i, strings.TrimRight(line, "\r\n")+"\n")
	}
}

func (c *Console) write(out []vm.Cell) {
	b := make([]byte, 0, len(out))
	for _, v := range out {
		if IsASCII(v) {
			b = append(b, byte(v))
			c.nl = v == '\n'
			continue
		}
		if !c.nl {
			b = append(b, '\n')
		}
		b = strconv.AppendInt(b, int64(v), 10)
		b = append(b, '\n')
		c.nl = true
	}
	c.w.Write(b)
}
