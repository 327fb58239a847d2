// Copyright 2012-2026 The NATS Authors
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

package logger

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStdLogger(t *testing.T) {
	logger := NewStdLogger(false, false)

	if flags := logger.logger.Flags(); flags != 0 {
		t.Fatalf("Expected %d, received %d\n", 0, flags)
	}
	if logger.Silent() {
		t.Fatalf("Expected %t, received %t\n", false, logger.Silent())
	}
	if logger.Colors() {
		t.Fatalf("Expected %t, received %t\n", false, logger.Colors())
	}
}

func TestStdLoggerPrintln(t *testing.T) {
	expectOutput(t, func() {
		logger := NewStdLogger(false, false)
		logger.Println("%s:%d: foo", "a.go", 12)
	}, "a.go:12: foo\n")
}

func TestStdLoggerSilent(t *testing.T) {
	expectOutput(t, func() {
		logger := NewStdLogger(true, false)
		logger.Println("foo")
	}, "")
}

func TestStdLoggerNoColorsOnPipe(t *testing.T) {
	expectOutput(t, func() {
		logger := NewStdLogger(false, true)
		logger.Println("%s", logger.Red("B0"))
	}, "B0\n")
}

func TestLoggerRed(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, false, true)
	logger.Println(" AA%s CC", logger.Red(" B0"))

	require.Equal(t, " AA\x1b[31m B0\x1b[0m CC\n", buf.String())
	require.Equal(t, " AA B0 CC\n", StripColors(buf.String()))
}

func TestIsTerminal(t *testing.T) {
	var buf bytes.Buffer
	require.False(t, IsTerminal(&buf))

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()
	require.False(t, IsTerminal(w))
}

func TestSilentFromEnv(t *testing.T) {
	for _, test := range []struct {
		value  string
		set    bool
		silent bool
	}{
		{"", false, false},
		{"1", true, true},
		{"true", true, true},
		{" TRUE ", true, true},
		{"0", true, false},
		{"false", true, false},
		{"yes", true, false},
		{"", true, false},
	} {
		t.Run(test.value, func(t *testing.T) {
			if test.set {
				t.Setenv(SilentEnv, test.value)
			} else {
				t.Setenv(SilentEnv, "")
				os.Unsetenv(SilentEnv)
			}
			require.Equal(t, test.silent, SilentFromEnv())
		})
	}
}

func expectOutput(t *testing.T, f func(), expected string) {
	old := os.Stdout // keep backup of the real stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	outC := make(chan string)
	// copy the output in a separate goroutine so printing can't block indefinitely
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		outC <- buf.String()
	}()

	os.Stdout.Close()
	os.Stdout = old // restoring the real stdout
	out := <-outC
	if out != expected {
		t.Fatalf("Expected '%s', received '%s'\n", expected, out)
	}
}
