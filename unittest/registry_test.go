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
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nats-io/testkit/internal/testhelper"
	"github.com/nats-io/testkit/logger"
)

// withRegistry swaps in an empty registry for the duration of the test.
func withRegistry(t *testing.T) {
	t.Helper()
	registry.Lock()
	saved, started := registry.tests, registry.started
	registry.tests, registry.started = nil, false
	registry.Unlock()
	t.Cleanup(func() {
		registry.Lock()
		registry.tests, registry.started = saved, started
		registry.Unlock()
	})
}

func TestRegisterOrder(t *testing.T) {
	withRegistry(t)

	var ran []string
	for _, name := range []string{"first", "second", "third"} {
		Register(name, func(t *T) { ran = append(ran, t.Name()) })
	}
	require.Equal(t, []string{"first", "second", "third"}, Tests())

	h, out := newTestHarness()
	code := testhelper.Trap(t, h.RunAll)
	require.Equal(t, -1, code)
	require.Equal(t, []string{"first", "second", "third"}, ran)
	require.Empty(t, out.Raw())

	require.PanicsWithValue(t, "unittest: Register called after Main", func() {
		Register("late", func(*T) {})
	})
}

func TestMainStopsAtFirstFailure(t *testing.T) {
	withRegistry(t)

	var a Expectation
	var ran []string
	Register("ok", func(t *T) {
		ran = append(ran, t.Name())
		t.Expect(&a, "open")
		t.Call("open")
	})
	Register("leaves", func(t *T) {
		ran = append(ran, t.Name())
		t.Expect(&a, "open")
	})
	Register("never", func(t *T) {
		ran = append(ran, t.Name())
	})

	out := &testhelper.Output{}
	code := testhelper.Trap(t, func() {
		Main(WithOutput(out), WithExit(testhelper.Exit), WithSilent(false))
	})
	require.Equal(t, 1, code)
	require.Equal(t, []string{"ok", "leaves"}, ran)
	require.Len(t, out.Lines(), 1)
	out.CheckContains(t, "Unsatisfied expectation: registry_test.go:")
}

func TestMainEndTestStopsRunner(t *testing.T) {
	withRegistry(t)

	var a Expectation
	var ran []string
	Register("ends", func(t *T) {
		ran = append(ran, t.Name())
		t.Expect(&a, "step", EndTest())
		t.Call("step")
	})
	Register("never", func(t *T) {
		ran = append(ran, t.Name())
	})

	code := testhelper.Trap(t, func() {
		Main(WithOutput(&testhelper.Output{}), WithExit(testhelper.Exit))
	})
	require.Equal(t, 0, code)
	require.Equal(t, []string{"ends"}, ran)
}

func TestMainSuccess(t *testing.T) {
	withRegistry(t)

	Register("empty", func(*T) {})
	out := &testhelper.Output{}
	code := testhelper.Trap(t, func() {
		Main(WithOutput(out), WithExit(testhelper.Exit))
	})
	require.Equal(t, 0, code)
	require.Empty(t, out.Raw())
}

const helperScenarioEnv = "UNITTEST_HELPER_SCENARIO"

// TestMain doubles as the helper process of TestMainProcessExit, so that
// Main can call os.Exit outside of any running test.
func TestMain(m *testing.M) {
	if scenario := os.Getenv(helperScenarioEnv); scenario != "" {
		runScenario(scenario)
		return
	}
	os.Exit(m.Run())
}

func runScenario(scenario string) {
	var e Expectation
	switch scenario {
	case "pass":
		Register("pass", func(t *T) {
			t.Expect(&e, "open", Want("mode", 2), Returns(7))
			EqualInt(t, t.Call("open", Int("mode", 2)), 7)
		})
	case "unexpected":
		Register("unexpected", func(t *T) {
			t.Expect(&e, "open")
			t.Call("close")
		})
	case "endtest":
		Register("endtest", func(t *T) {
			t.Expect(&e, "step", EndTest())
			t.Call("step")
		})
		Register("unreached", func(t *T) {
			t.Assert(false, "ran after EndTest")
		})
	}
	Main()
}

func TestMainProcessExit(t *testing.T) {
	for _, test := range []struct {
		scenario string
		silent   bool
		code     int
		out      string
	}{
		{"pass", false, 0, ""},
		{"unexpected", false, 1, "Unexpected call (expected open): close"},
		{"unexpected", true, 1, ""},
		{"endtest", false, 0, ""},
	} {
		name := test.scenario
		if test.silent {
			name += "/silent"
		}
		t.Run(name, func(t *testing.T) {
			cmd := exec.Command(os.Args[0])
			cmd.Env = append(os.Environ(), helperScenarioEnv+"="+test.scenario)
			if test.silent {
				cmd.Env = append(cmd.Env, logger.SilentEnv+"=1")
			} else {
				cmd.Env = append(cmd.Env, logger.SilentEnv+"=0")
			}
			out, err := cmd.Output()

			code := 0
			var ee *exec.ExitError
			if errors.As(err, &ee) {
				code = ee.ExitCode()
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, test.code, code)
			if test.out == "" {
				require.Empty(t, string(out))
			} else {
				require.True(t, strings.Contains(string(out), test.out), "got %q", out)
			}
		})
	}
}
