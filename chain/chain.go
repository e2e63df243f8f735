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

// Package chain wires several instances of the same Intcode program together,
// the output of one instance being the input of the next.
//
// Each instance, or amplifier, is first fed its own phase setting, then the
// signal coming out of the previous amplifier. The first amplifier gets the
// initial signal.
package chain

import (
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

var (
	// ErrDeadlock is returned by Feedback when all amplifiers still running wait
	// for input that no other amplifier can provide.
	ErrDeadlock = errors.New("deadlock")
	// ErrNoOutput is returned when an amplifier produced no signal.
	ErrNoOutput = errors.New("no output")
)

func amplifiers(prog vm.Program, phases []vm.Cell, opts []vm.Option) ([]*vm.Instance, error) {
	amps := make([]*vm.Instance, len(phases))
	for k, ph := range phases {
		i, err := vm.New(prog, opts...)
		if err != nil {
			return nil, err
		}
		amps[k] = i.Feed(ph)
	}
	return amps, nil
}

// Series runs one instance of prog per phase setting, in order, and returns the
// last value output by the last amplifier.
func Series(prog vm.Program, phases []vm.Cell, signal vm.Cell, opts ...vm.Option) (vm.Cell, error) {
	amps, err := amplifiers(prog, phases, opts)
	if err != nil {
		return 0, err
	}
	for k, a := range amps {
		out, err := a.Feed(signal).Run()
		if err != nil {
			return 0, errors.Wrapf(err, "amplifier %d", k)
		}
		if len(out) == 0 {
			return 0, errors.Wrapf(ErrNoOutput, "amplifier %d", k)
		}
		signal = out[len(out)-1]
	}
	return signal, nil
}

// Feedback runs one instance of prog per phase setting, the output of the last
// amplifier being fed back to the first one. Amplifiers are run in turn until
// the last one halts. It returns the last value output by the last amplifier.
func Feedback(prog vm.Program, phases []vm.Cell, signal vm.Cell, opts ...vm.Option) (vm.Cell, error) {
	if len(phases) == 0 {
		return 0, errors.New("feedback loop without amplifiers")
	}
	amps, err := amplifiers(prog, phases, opts)
	if err != nil {
		return 0, err
	}
	amps[0].Feed(signal)
	last := len(amps) - 1
	var seen bool
	for {
		var progress bool
		for k, a := range amps {
			if a.LastStop() == vm.Halted {
				continue
			}
			out, err := a.Run()
			if err != nil {
				return 0, errors.Wrapf(err, "amplifier %d", k)
			}
			amps[(k+1)%len(amps)].Feed(out...)
			if len(out) > 0 {
				progress = true
				if k == last {
					signal = out[len(out)-1]
					seen = true
				}
			}
			if a.LastStop() == vm.Halted {
				progress = true
			}
		}
		if amps[last].LastStop() == vm.Halted {
			if !seen {
				return 0, errors.Wrapf(ErrNoOutput, "amplifier %d", last)
			}
			return signal, nil
		}
		if !progress {
			return 0, errors.WithStack(ErrDeadlock)
		}
	}
}

// MaxSignal tries all permutations of the given phase settings and returns the
// highest signal output by a chain of amplifiers and the corresponding phase
// settings. Amplifiers are wired with Feedback if feedback is true, with Series
// otherwise. The initial signal is 0.
func MaxSignal(prog vm.Program, phases []vm.Cell, feedback bool, opts ...vm.Option) (best vm.Cell, order []vm.Cell, err error) {
	run := Series
	if feedback {
		run = Feedback
	}
	ph := append([]vm.Cell(nil), phases...)
	err = permute(ph, func(p []vm.Cell) error {
		s, err := run(prog, p, 0, opts...)
		if err != nil {
			return errors.Wrapf(err, "phases %v", p)
		}
		if order == nil || s > best {
			best = s
			order = append(order[:0], p...)
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return best, order, nil
}

// permute calls f for every permutation of a, using Heap's algorithm. a is
// permuted in place.
func permute(a []vm.Cell, f func([]vm.Cell) error) error {
	if err := f(a); err != nil {
		return err
	}
	c := make([]int, len(a))
	for i := 1; i < len(a); {
		if c[i] < i {
			if i%2 == 0 {
				a[0], a[i] = a[i], a[0]
			} else {
				a[c[i]], a[i] = a[i], a[c[i]]
			}
			if err := f(a); err != nil {
				return err
			}
			c[i]++
			i = 1
		} else {
			c[i] = 0
			i++
		}
	}
	return nil
}
