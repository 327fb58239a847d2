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

// Package logger is the single output gate for test diagnostics.
// Every line goes to standard output unless the logger is silent.
package logger

import (
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// SilentEnv is the environment variable that turns on silent mode.
const SilentEnv = "UNITTEST_SILENT"

const (
	colorRed   = "\x1b[31m"
	colorReset = "\x1b[0m"
)

// Logger is the output gate used by the assertion helpers and the
// expectation engine.
type Logger struct {
	logger *log.Logger
	silent bool
	colors bool
}

// NewStdLogger creates a logger writing to standard output. Colors are
// only used when requested and stdout is a terminal.
func NewStdLogger(silent, colors bool) *Logger {
	return NewLogger(os.Stdout, silent, colors && IsTerminal(os.Stdout))
}

// NewLogger creates a logger writing to w. No terminal detection is done.
func NewLogger(w io.Writer, silent, colors bool) *Logger {
	return &Logger{
		logger: log.New(w, "", 0),
		silent: silent,
		colors: colors,
	}
}

// Println writes one formatted line, unless silent.
func (l *Logger) Println(format string, v ...any) {
	if l.silent {
		return
	}
	l.logger.Printf(format, v...)
}

// Silent reports whether output is suppressed.
func (l *Logger) Silent() bool {
	return l.silent
}

// Colors reports whether SGR escapes are emitted.
func (l *Logger) Colors() bool {
	return l.colors
}

// Red wraps s in SGR 31 and a reset when colors are enabled.
func (l *Logger) Red(s string) string {
	if !l.colors {
		return s
	}
	return colorRed + s + colorReset
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SilentFromEnv reports whether SilentEnv holds a truthy value.
// Unparseable values count as false.
func SilentFromEnv() bool {
	v, ok := os.LookupEnv(SilentEnv)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}

// StripColors removes the SGR sequences this package emits.
func StripColors(s string) string {
	return strings.NewReplacer(colorRed, "", colorReset, "").Replace(s)
}
