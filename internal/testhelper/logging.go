// Copyright 2019-2026 The NATS Authors
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

package testhelper

// These routines need to be accessible from the tests of several packages,
// and tests importing a package don't get exported symbols from _test.go
// files in the imported package, so we put them here where they can be
// used freely.

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/nats-io/testkit/logger"
)

// Output collects everything a harness prints.
type Output struct {
	sync.Mutex
	buf bytes.Buffer
}

func (o *Output) Write(p []byte) (int, error) {
	o.Lock()
	defer o.Unlock()
	return o.buf.Write(p)
}

// String returns the collected output with color sequences removed.
func (o *Output) String() string {
	return logger.StripColors(o.Raw())
}

// Raw returns the collected output as written.
func (o *Output) Raw() string {
	o.Lock()
	defer o.Unlock()
	return o.buf.String()
}

// Lines returns the collected, uncolored output split in lines.
func (o *Output) Lines() []string {
	s := strings.TrimSuffix(o.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Reset discards what was collected so far.
func (o *Output) Reset() {
	o.Lock()
	defer o.Unlock()
	o.buf.Reset()
}

func (o *Output) CheckContent(t *testing.T, expectedStr string) {
	t.Helper()
	if out := o.String(); out != expectedStr {
		t.Fatalf("Expected output to be: %q, got %q", expectedStr, out)
	}
}

func (o *Output) CheckContains(t *testing.T, needles ...string) {
	t.Helper()
	out := o.String()
	for _, needle := range needles {
		if !strings.Contains(out, needle) {
			t.Fatalf("Expected output to contain %q, got %q", needle, out)
		}
	}
}

// ExitCode is the panic value raised by Exit.
type ExitCode int

// Exit stands in for os.Exit. It unwinds the stack so Trap can report
// the status instead of terminating the test binary.
func Exit(code int) {
	panic(ExitCode(code))
}

// Trap runs f and returns the status passed to Exit, or -1 if f
// returned normally. Other panics are propagated.
func Trap(t testing.TB, f func()) (code int) {
	t.Helper()
	code = -1
	func() {
		defer func() {
			if r := recover(); r != nil {
				c, ok := r.(ExitCode)
				if !ok {
					panic(r)
				}
				code = int(c)
			}
		}()
		f()
	}()
	return code
}
