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
	"fmt"
	"strconv"
	"strings"
	"unsafe"
)

// EqualInt fails unless actual == expected. Unsigned values are printed
// as zero-padded hex of their width, signed values in decimal.
func EqualInt[N Integer](r Reporter, actual, expected N) {
	if actual == expected {
		return
	}
	r.fail(ValueMismatch, caller(1),
		"Expected: "+formatInt(expected),
		"Got:      "+formatInt(actual))
}

func formatInt[N Integer](v N) string {
	var zero N
	if zero-1 < zero {
		return strconv.FormatInt(int64(v), 10)
	}
	return fmt.Sprintf("0x%0*x", int(unsafe.Sizeof(v))*2, uint64(v))
}

// EqualString fails unless both strings hold the same bytes.
func (h *Harness) EqualString(actual, expected string) {
	if actual == expected {
		return
	}
	h.fail(ValueMismatch, caller(1),
		"Expected: "+strconv.Quote(expected),
		"Got:      "+strconv.Quote(actual))
}

// EqualBytes compares the first n bytes of actual and expected. On
// mismatch the Got row highlights every byte that differs.
func (h *Harness) EqualBytes(actual, expected []byte, n int) {
	at := caller(1)
	if n < 0 {
		h.fail(AssertionFailed, at, fmt.Sprintf("negative compare length %d", n))
	}
	if n > len(actual) || n > len(expected) {
		h.fail(AssertionFailed, at, fmt.Sprintf("compare length %d exceeds buffers (%d, %d)", n, len(actual), len(expected)))
	}
	a, e := actual[:n], expected[:n]
	if string(a) == string(e) {
		return
	}
	var want, got strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&want, " %02X", e[i])
		b := fmt.Sprintf("%02X", a[i])
		if a[i] != e[i] {
			b = h.log.Red(b)
		}
		got.WriteString(" " + b)
	}
	h.fail(ValueMismatch, at, "Expected:"+want.String(), "Got:     "+got.String())
}

// Approx32 fails when |actual - expected| > tolerance.
func (h *Harness) Approx32(actual, expected, tolerance float32) {
	d := actual - expected
	if d < 0 {
		d = -d
	}
	if d <= tolerance {
		return
	}
	h.fail(ValueMismatch, caller(1),
		fmt.Sprintf("Expected: %g (+/- %g)", expected, tolerance),
		fmt.Sprintf("Got:      %g", actual))
}

// Approx64 fails when |actual - expected| > tolerance.
func (h *Harness) Approx64(actual, expected, tolerance float64) {
	d := actual - expected
	if d < 0 {
		d = -d
	}
	if d <= tolerance {
		return
	}
	h.fail(ValueMismatch, caller(1),
		fmt.Sprintf("Expected: %g (+/- %g)", expected, tolerance),
		fmt.Sprintf("Got:      %g", actual))
}

// Assert fails with msg when cond is false.
func (h *Harness) Assert(cond bool, msg string) {
	if cond {
		return
	}
	h.fail(AssertionFailed, caller(1), "Assertion failed: "+msg)
}

// MemDump prints b as uppercase hex bytes. It never fails.
func (h *Harness) MemDump(b []byte) {
	var sb strings.Builder
	for _, c := range b {
		fmt.Fprintf(&sb, " %02X", c)
	}
	h.log.Println("%s:%s", caller(1), sb.String())
}
