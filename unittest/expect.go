// Copyright 2026 The NATS Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package unittest

import (
	"bytes"
	"fmt"
)

// MaxConstraints is the number of constraints an Expectation can hold.
const MaxConstraints = 8

// Expectation is one anticipated mocked call. It is owned by the caller,
// typically a package variable or a field that outlives the test, and is
// reused every time the arming site runs again.
type Expectation struct {
	at    site
	fname string
	armed bool
	cs    [MaxConstraints]Constraint
	n     int
	next  *Expectation
}

// Func returns the expected function name.
func (e *Expectation) Func() string {
	return e.fname
}

// Armed reports whether e is waiting in the queue.
func (e *Expectation) Armed() bool {
	return e.armed
}

// Mocker is what code under test depends on to forward its calls.
type Mocker interface {
	Call(fname string, args ...Arg) uint64
}

// Expect arms e for a call to fname carrying the given constraints and
// appends it to the queue. Arming an expectation that is still queued
// is fatal.
func (h *Harness) Expect(e *Expectation, fname string, cs ...Constraint) {
	at := caller(1)
	if e.armed {
		h.fail(DoubleArm, at, fmt.Sprintf("expectation for %s is already armed at %s", e.fname, e.at))
	}
	if len(cs) > MaxConstraints {
		h.fail(AssertionFailed, at, fmt.Sprintf("too many constraints for %s (%d > %d)", fname, len(cs), MaxConstraints))
	}
	*e = Expectation{at: at, fname: fname, n: len(cs)}
	copy(e.cs[:], cs)
	h.arm(e)
}

func (h *Harness) arm(e *Expectation) {
	e.armed = true
	e.next = nil
	if h.tail == nil {
		h.head = e
	} else {
		h.tail.next = e
	}
	h.tail = e
}

// pop removes the head of the queue.
func (h *Harness) pop() *Expectation {
	e := h.head
	h.head = e.next
	if h.head == nil {
		h.tail = nil
	}
	e.armed = false
	e.next = nil
	return e
}

// Pending returns the number of armed expectations.
func (h *Harness) Pending() int {
	n := 0
	for e := h.head; e != nil; e = e.next {
		n++
	}
	return n
}

// Call dispatches one mocked invocation of fname. The oldest armed
// expectation must be for fname and all of its constraints must hold.
// It returns the value of the last Returns constraint, or 0.
func (h *Harness) Call(fname string, args ...Arg) uint64 {
	at := caller(1)
	return h.dispatch(at, &Call{Func: fname, Args: args})
}

func (h *Harness) dispatch(at site, c *Call) uint64 {
	e := h.head
	if e == nil {
		h.fail(UnexpectedCall, at, "Unexpected call (expected nothing): "+c.Func)
	}
	if e.fname != c.Func {
		h.fail(UnexpectedCall, at, fmt.Sprintf("Unexpected call (expected %s): %s", e.fname, c.Func))
	}

	var ret uint64
	var end bool
	for i := 0; i < e.n; i++ {
		k := &e.cs[i]
		switch k.kind {
		case argEquals:
			v := h.arg(e, c, k.name)
			if v.IsBytes() || v.n != k.n {
				h.fail(ArgumentMismatch, e.at, fmt.Sprintf("expected argument %s to be %d (actual %s)", k.name, k.n, v))
			}
		case strEquals:
			v := h.arg(e, c, k.name)
			if !v.IsBytes() || !bytes.Equal(cstring(v.b), cstring([]byte(k.s))) {
				h.fail(ArgumentMismatch, e.at, fmt.Sprintf("expected argument %s to be %q (actual %s)", k.name, cstring([]byte(k.s)), v))
			}
		case returnValue:
			ret = k.n
		case endTest:
			end = true
		case capture:
			v := h.arg(e, c, k.name)
			if k.dst == nil {
				h.fail(AssertionFailed, e.at, fmt.Sprintf("nil capture destination for argument %s", k.name))
			}
			*k.dst = v.clone()
		}
	}
	h.pop()

	if end {
		h.Drain()
		h.exit(0)
		panic(errEndOfTest)
	}
	return ret
}

func (h *Harness) arg(e *Expectation, c *Call, name string) Value {
	v, ok := c.Lookup(name)
	if !ok {
		h.fail(MissingArgument, e.at, fmt.Sprintf("no such argument %q", name))
	}
	return v
}

// Drain checks that every armed expectation has been consumed. Each
// leftover is reported on its own line, in queue order, and the queue
// is emptied before the harness exits.
func (h *Harness) Drain() {
	if h.head == nil {
		return
	}
	first := h.head.at
	n := 0
	for h.head != nil {
		e := h.pop()
		h.log.Println("Unsatisfied expectation: %s:%s", e.at, e.fname)
		n++
	}
	h.fatal(&Failure{
		Kind: UnsatisfiedExpectations,
		File: first.file,
		Line: first.line,
		Msg:  fmt.Sprintf("%d unsatisfied expectation(s)", n),
	})
}

// reset disarms everything still queued without reporting it.
func (h *Harness) reset() {
	for h.head != nil {
		h.pop()
	}
}
