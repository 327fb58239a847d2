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

// Package unittest is a small test harness: assertions that terminate
// the process on mismatch, a sequential call-expectation engine for
// hand-rolled mocks, and a runner for tests registered at start up.
//
// A test arms expectations, then runs the code under test, which
// forwards its mocked calls to the same harness:
//
//	var open unittest.Expectation
//
//	func testOpen(t *unittest.T) {
//		t.Expect(&open, "open", unittest.Want("mode", 2), unittest.Returns(7))
//		fd := t.Call("open", unittest.Int("mode", 2))
//		unittest.EqualInt(t, fd, 7)
//	}
//
//	func init() {
//		unittest.Register("open", testOpen)
//	}
//
// Every failure prints a diagnostic on standard output, unless
// UNITTEST_SILENT is set, and exits with status 1.
//
// Under go test, NewTesting routes failures to the testing.TB instead.
// A test stopped by EndTest has passed, but go test -v lists it as
// SKIP with the reason "EndTest reached".
package unittest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/nats-io/testkit/logger"
)

type site struct {
	file string
	line int
}

func (s site) String() string {
	return fmt.Sprintf("%s:%d", s.file, s.line)
}

// caller returns the location skip frames above its own caller.
func caller(skip int) site {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return site{file: "???", line: 0}
	}
	return site{file: filepath.Base(file), line: line}
}

// Harness owns the expectation queue and the output gate of one run.
// It is not safe for concurrent use.
type Harness struct {
	log  *logger.Logger
	exit func(int)
	head *Expectation
	tail *Expectation
}

type harnessOpts struct {
	out    io.Writer
	exit   func(int)
	silent bool
	colors bool
}

// HarnessOpt configures a Harness.
type HarnessOpt func(*harnessOpts)

// WithOutput sends diagnostics to w instead of standard output. Colors
// are then only used when forced with WithColors.
func WithOutput(w io.Writer) HarnessOpt {
	return func(o *harnessOpts) {
		o.out = w
		o.colors = false
	}
}

// WithExit replaces os.Exit. If fn returns, the failing operation panics
// instead of resuming.
func WithExit(fn func(int)) HarnessOpt {
	return func(o *harnessOpts) {
		o.exit = fn
	}
}

// WithSilent overrides the UNITTEST_SILENT environment variable.
func WithSilent(silent bool) HarnessOpt {
	return func(o *harnessOpts) {
		o.silent = silent
	}
}

// WithColors turns byte highlighting on or off.
func WithColors(colors bool) HarnessOpt {
	return func(o *harnessOpts) {
		o.colors = colors
	}
}

// NewHarness creates a harness with an empty queue. The silent flag is
// read from the environment once, here.
func NewHarness(opts ...HarnessOpt) *Harness {
	o := harnessOpts{
		exit:   os.Exit,
		silent: logger.SilentFromEnv(),
		colors: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	h := &Harness{exit: o.exit}
	if o.out == nil {
		h.log = logger.NewStdLogger(o.silent, o.colors)
	} else {
		h.log = logger.NewLogger(o.out, o.silent, o.colors)
	}
	return h
}

// Silent reports whether diagnostics are suppressed.
func (h *Harness) Silent() bool {
	return h.log.Silent()
}

// Reporter is implemented by *Harness and *T. It lets the generic
// assertion helpers report through either. It is sealed: only types of
// this package can implement it.
type Reporter interface {
	fail(kind Kind, at site, lines ...string)
}

// fail prints every line prefixed with the location and terminates.
func (h *Harness) fail(kind Kind, at site, lines ...string) {
	for _, l := range lines {
		h.log.Println("%s: %s", at, l)
	}
	h.fatal(&Failure{Kind: kind, File: at.file, Line: at.line, Msg: strings.Join(lines, "; ")})
}

func (h *Harness) fatal(f *Failure) {
	h.exit(1)
	panic(f)
}

// T is handed to every test. It gives access to the harness running it.
type T struct {
	*Harness
	name string
}

// Name returns the name the test was registered with.
func (t *T) Name() string {
	return t.name
}

// Run runs one test on an empty queue and drains the queue once the
// test returns.
func (h *Harness) Run(name string, fn func(*T)) {
	h.reset()
	fn(&T{Harness: h, name: name})
	h.Drain()
}

// NewTesting returns a T whose failures fail tb instead of exiting the
// process. An EndTest constraint stops tb through Skip, since the
// testing package reports a bare Goexit as a failure. Whatever is still
// queued when tb finishes is reported as unsatisfied.
func NewTesting(tb testing.TB, opts ...HarnessOpt) *T {
	tb.Helper()
	opts = append([]HarnessOpt{
		WithOutput(tbWriter{tb}),
		WithExit(func(code int) {
			if code != 0 {
				tb.FailNow()
			}
			tb.Skip(endTestReason)
		}),
	}, opts...)
	h := NewHarness(opts...)
	tb.Cleanup(func() {
		if !tb.Failed() {
			h.Drain()
		}
	})
	return &T{Harness: h, name: tb.Name()}
}

const endTestReason = "EndTest reached"

type tbWriter struct {
	tb testing.TB
}

func (w tbWriter) Write(p []byte) (int, error) {
	w.tb.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
