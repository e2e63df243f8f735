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

package chain_test

import (
	"testing"

	"github.com/db47h/intcode/chain"
	"github.com/db47h/intcode/vm"
	"github.com/kr/pretty"
	"github.com/pkg/errors"
)

type C = []vm.Cell

func parse(t *testing.T, text string) vm.Program {
	t.Helper()
	p, err := vm.Parse(text)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

var seriesTests = [...]struct {
	code   string
	phases C
	signal vm.Cell
}{
	{"3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0", C{4, 3, 2, 1, 0}, 43210},
	{"3,23,3,24,1002,24,10,24,1002,23,-1,23,101,5,23,23,1,24,23,23,4,23,99,0,0", C{0, 1, 2, 3, 4}, 54321},
	{"3,31,3,32,1002,32,10,32,1001,31,-2,31,1007,31,0,33,1002,33,7,33,1,33,31,31,1,32,31,31,4,31,99,0,0,0", C{1, 0, 4, 3, 2}, 65210},
}

var feedbackTests = [...]struct {
	code   string
	phases C
	signal vm.Cell
}{
	{"3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5", C{9, 8, 7, 6, 5}, 139629729},
	{"3,52,1001,52,-5,52,3,53,1,52,56,54,1007,54,5,55,1005,55,26,1001,54,-5,54,1105,1,12,1,53,54,53,1008,54,0,55,1001,55,1,55,2,53,55,53,4,53,1001,56,-1,56,1005,56,6,99,0,0,0,0,10", C{9, 7, 8, 5, 6}, 18216},
}

func TestSeries(t *testing.T) {
	for _, test := range seriesTests {
		s, err := chain.Series(parse(t, test.code), test.phases, 0)
		if err != nil {
			t.Errorf("%v: %v", test.phases, err)
			continue
		}
		if s != test.signal {
			t.Errorf("%v: expected %d, got %d", test.phases, test.signal, s)
		}
	}
}

func TestFeedback(t *testing.T) {
	for _, test := range feedbackTests {
		s, err := chain.Feedback(parse(t, test.code), test.phases, 0)
		if err != nil {
			t.Errorf("%v: %v", test.phases, err)
			continue
		}
		if s != test.signal {
			t.Errorf("%v: expected %d, got %d", test.phases, test.signal, s)
		}
	}
}

func TestMaxSignal(t *testing.T) {
	for _, test := range seriesTests {
		s, order, err := chain.MaxSignal(parse(t, test.code), C{0, 1, 2, 3, 4}, false)
		if err != nil {
			t.Errorf("%v: %v", test.phases, err)
			continue
		}
		if s != test.signal {
			t.Errorf("%v: expected %d, got %d", test.phases, test.signal, s)
		}
		if diff := pretty.Diff(test.phases, order); len(diff) > 0 {
			t.Errorf("%v: %v", test.phases, diff)
		}
	}
	for _, test := range feedbackTests {
		s, order, err := chain.MaxSignal(parse(t, test.code), C{5, 6, 7, 8, 9}, true)
		if err != nil {
			t.Errorf("%v: %v", test.phases, err)
			continue
		}
		if s != test.signal {
			t.Errorf("%v: expected %d, got %d", test.phases, test.signal, s)
		}
		if diff := pretty.Diff(test.phases, order); len(diff) > 0 {
			t.Errorf("%v: %v", test.phases, diff)
		}
	}
}

func TestFeedback_deadlock(t *testing.T) {
	_, err := chain.Feedback(parse(t, "3,10,3,10,3,10,99"), C{0, 1}, 0)
	if errors.Cause(err) != chain.ErrDeadlock {
		t.Errorf("expected ErrDeadlock, got %v", err)
	}
	if _, err = chain.Feedback(parse(t, "99"), nil, 0); err == nil {
		t.Error("expected error for empty chain")
	}
}

func TestNoOutput(t *testing.T) {
	p := parse(t, "3,0,99")
	if _, err := chain.Series(p, C{1, 2}, 0); errors.Cause(err) != chain.ErrNoOutput {
		t.Errorf("series: expected ErrNoOutput, got %v", err)
	}
	if _, err := chain.Feedback(p, C{1, 2}, 0); errors.Cause(err) != chain.ErrNoOutput {
		t.Errorf("feedback: expected ErrNoOutput, got %v", err)
	}
}

func TestErrors(t *testing.T) {
	// second amplifier loops forever
	p := parse(t, "3,20,3,21,1007,20,1,22,1005,22,14,1105,1,11,4,21,99")
	_, err := chain.Series(p, C{0, 1}, 7, vm.MaxSteps(100))
	if errors.Cause(err) != vm.ErrStepLimit {
		t.Errorf("expected ErrStepLimit, got %v", err)
	}
	_, _, err = chain.MaxSignal(p, C{0, 1}, false, vm.MaxSteps(100))
	if errors.Cause(err) != vm.ErrStepLimit {
		t.Errorf("expected ErrStepLimit, got %v", err)
	}
}
