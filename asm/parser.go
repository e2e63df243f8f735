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

package asm

import (
	"io"
	"sort"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
)

const maxErrors = 10

// ErrAsm is the error type returned by Assemble. It holds the list of errors
// found in the source, in order of appearance.
type ErrAsm []struct {
	Pos scanner.Position
	Msg string
}

func (e ErrAsm) Error() string {
	var b strings.Builder
	for k, err := range e {
		if k > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Pos.String())
		b.WriteString(": ")
		b.WriteString(err.Msg)
	}
	return b.String()
}

func isIdentRune(ch rune, i int) bool {
	return ch != ',' && (unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch))
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

type constant struct {
	pos   scanner.Position
	value vm.Cell
}

// parser states
const (
	stInstr = iota
	stOperand
	stOrg
	stEqu
	stDat
)

var modeWeight = [vm.MaxArity]vm.Cell{100, 1000, 10000}

type parser struct {
	i      []vm.Cell
	pc     int
	size   int
	s      scanner.Scanner
	labels map[string]*label
	consts map[string]constant
	locals map[string]int
	errs   ErrAsm

	cstName string
	cstPos  scanner.Position

	// instruction being assembled
	op    vm.Opcode
	opPC  int
	opPos scanner.Position
	word  vm.Cell
	nArgs int
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]*label)
	p.consts = make(map[string]constant)
	p.locals = make(map[string]int)
	return p
}

func (p *parser) error(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, struct {
			Pos scanner.Position
			Msg string
		}{pos, msg})
	}
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.i) {
		p.i = append(p.i, make([]vm.Cell, 1024)...)
	}
	p.i[p.pc] = v
	p.pc++
	if p.pc > p.size {
		p.size = p.pc
	}
}

func (p *parser) useLabel(name string, pos scanner.Position) {
	lbl := p.labels[name]
	if lbl == nil {
		// use current position as valid temp position
		lbl = &label{labelSite{pos, -1}, nil}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{pos, p.pc})
}

func (p *parser) defineLabel(name string, pos scanner.Position) {
	if name == "" {
		p.error(pos, "empty label name")
		return
	}
	if isLocal(name) {
		p.locals[name]++
		name = name + "·" + strconv.Itoa(p.locals[name])
	}
	if cst, ok := p.consts[name]; ok {
		p.error(pos, "label previously defined as a constant at "+cst.pos.String()+": "+name)
		return
	}
	if l, ok := p.labels[name]; ok {
		if l.address != -1 {
			p.error(pos, "label redefinition, previous definition at "+l.pos.String()+": "+name)
			return
		}
		l.address = p.pc
		l.pos = pos
		return
	}
	p.labels[name] = &label{labelSite{pos, p.pc}, nil}
}

// value converts s to an integer. Integers can be in any base supported by
// strconv.ParseInt, character literals or constants. ok is false if s is none
// of these, in which case s should be handled as a label.
func (p *parser) value(s string) (v vm.Cell, ok bool, msg string) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n), true, ""
	} else if ne, isNum := err.(*strconv.NumError); isNum && ne.Err == strconv.ErrRange {
		return 0, false, "value out of range: " + s
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil || tail != "" {
			return 0, false, "invalid character literal: " + s
		}
		return vm.Cell(r), true, ""
	}
	if c, ok := p.consts[s]; ok {
		return c.value, true, ""
	}
	return 0, false, ""
}

// writeValue writes the value of s at the current pc. Labels are resolved
// after parsing.
func (p *parser) writeValue(s string, pos scanner.Position) {
	v, ok, msg := p.value(s)
	switch {
	case msg != "":
		p.error(pos, msg)
	case !ok:
		if n, isRef := p.localRef(s); isRef {
			if n == "" {
				p.error(pos, "no previous definition of local label: "+s)
				break
			}
			p.useLabel(n, pos)
		} else if !isLabelName(s) {
			p.error(pos, "invalid label name: "+s)
		} else {
			p.useLabel(s, pos)
		}
	}
	p.write(v)
}

func isLocal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// localRef converts a reference to a local label, like "1+" or "1-", to the
// internal name of the label. isRef is false if s is not a local reference.
// name is empty on a backward reference to a label not yet defined.
func (p *parser) localRef(s string) (name string, isRef bool) {
	if len(s) < 2 {
		return "", false
	}
	n, dir := s[:len(s)-1], s[len(s)-1]
	if !isLocal(n) || (dir != '+' && dir != '-') {
		return "", false
	}
	c := p.locals[n]
	if dir == '+' {
		c++
	} else if c == 0 {
		return "", true
	}
	return n + "·" + strconv.Itoa(c), true
}

func isLabelName(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case '#', '@', ':', '.', '-', '+', '\'':
		return false
	}
	return !unicode.IsDigit(rune(s[0]))
}

// isOperand returns true if s can start an instruction operand.
func isOperand(s string) bool {
	if s[0] == ':' || s[0] == '.' {
		return false
	}
	_, isOp := opcodeIndex[s]
	return !isOp
}

func (p *parser) startInstruction(op vm.Opcode, pos scanner.Position) {
	p.op = op
	p.opPC = p.pc
	p.opPos = pos
	p.word = vm.Cell(op)
	p.nArgs = 0
	p.write(vm.Cell(op))
}

func (p *parser) endInstruction() {
	p.i[p.opPC] = p.word
}

func (p *parser) operand(s string, pos scanner.Position) {
	mode := vm.Position
	switch s[0] {
	case '#':
		mode = vm.Immediate
		s = s[1:]
	case '@':
		mode = vm.Relative
		s = s[1:]
	}
	k := p.nArgs
	p.nArgs++
	if mode == vm.Immediate && p.op.HasDest() && k == p.op.Arity()-1 {
		p.error(pos, "immediate destination operand for "+p.op.String())
	}
	p.word += vm.Cell(mode) * modeWeight[k]
	if s == "" {
		p.error(pos, "missing operand value")
		p.write(0)
		return
	}
	p.writeValue(s, pos)
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) (vm.Program, error) {
	state := stInstr

	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		pos := s.Position
		if !pos.IsValid() {
			pos = s.Pos()
		}
		p.error(pos, msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); tok != scanner.EOF && len(p.errs) < maxErrors; tok = p.s.Scan() {
		pos := p.s.Position
		if tok == ',' {
			continue
		}
		if tok != scanner.Ident {
			p.error(pos, "unexpected character "+strconv.QuoteRune(tok))
			continue
		}
		s := p.s.TokenText()

		if s == "(" {
			// skip comments
			for tok = p.s.Scan(); tok != scanner.EOF && (tok != scanner.Ident || p.s.TokenText() != ")"); tok = p.s.Scan() {
			}
			if tok == scanner.EOF {
				p.error(pos, "unterminated comment")
				break
			}
			continue
		}

		switch state {
		case stOperand:
			if isOperand(s) {
				p.operand(s, pos)
				if p.nArgs == p.op.Arity() {
					p.endInstruction()
					state = stInstr
				}
				continue
			}
			p.error(p.opPos, "missing operand for "+p.op.String())
			p.endInstruction()
			state = stInstr
		case stOrg:
			v, ok, msg := p.value(s)
			switch {
			case msg != "":
				p.error(pos, msg)
			case !ok:
				p.error(pos, ".org: expected integer or constant: "+s)
			case v < 0:
				p.error(pos, ".org: negative address: "+s)
			default:
				p.pc = int(v)
			}
			state = stInstr
			continue
		case stEqu:
			v, ok, msg := p.value(s)
			switch {
			case msg != "":
				p.error(pos, msg)
			case !ok:
				p.error(pos, ".equ: expected integer or constant: "+s)
			default:
				p.consts[p.cstName] = constant{p.cstPos, v}
			}
			state = stInstr
			continue
		case stDat:
			p.writeValue(s, pos)
			state = stInstr
			continue
		}

		// stInstr
		switch s[0] {
		case ':':
			p.defineLabel(s[1:], pos)
		case '.':
			switch s {
			case ".org":
				state = stOrg
			case ".dat":
				state = stDat
			case ".equ":
				t := p.s.Scan()
				if t != scanner.Ident {
					p.error(p.s.Position, ".equ: expected identifier, got "+p.s.TokenText())
					break
				}
				p.cstName = p.s.TokenText()
				p.cstPos = p.s.Position
				if l, ok := p.labels[p.cstName]; ok {
					p.error(p.cstPos, ".equ: previously defined or used as a label at "+l.pos.String()+": "+p.cstName)
					break
				}
				if c, ok := p.consts[p.cstName]; ok {
					p.error(p.cstPos, ".equ: redefinition, previous definition at "+c.pos.String()+": "+p.cstName)
					break
				}
				state = stEqu
			default:
				p.error(pos, "unknown directive: "+s)
			}
		default:
			if op, ok := opcodeIndex[s]; ok {
				p.startInstruction(op, pos)
				if op.Arity() > 0 {
					state = stOperand
				}
				break
			}
			// implicit .dat
			p.writeValue(s, pos)
		}
	}

	switch state {
	case stOperand:
		p.error(p.opPos, "missing operand for "+p.op.String())
		p.endInstruction()
	case stOrg, stEqu, stDat:
		p.error(p.s.Pos(), "missing directive argument")
	}

	// resolve labels
	names := make([]string, 0, len(p.labels))
	for n := range p.labels {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		l := p.labels[n]
		if l.address == -1 {
			p.error(l.uses[0].pos, "undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			p.i[u.address] = vm.Cell(l.address)
		}
	}

	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return vm.Program(p.i[:p.size]), nil
}
