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

import "sync"

type test struct {
	name string
	fn   func(*T)
}

var registry = struct {
	sync.Mutex
	tests   []test
	started bool
}{}

// Register adds a test to the process-wide registry. It is meant to be
// called from init functions; registering once Main started panics.
func Register(name string, fn func(*T)) {
	registry.Lock()
	defer registry.Unlock()
	if registry.started {
		panic("unittest: Register called after Main")
	}
	registry.tests = append(registry.tests, test{name: name, fn: fn})
}

// Tests returns the registered test names in registration order.
func Tests() []string {
	registry.Lock()
	defer registry.Unlock()
	names := make([]string, 0, len(registry.tests))
	for _, t := range registry.tests {
		names = append(names, t.name)
	}
	return names
}

func freeze() []test {
	registry.Lock()
	defer registry.Unlock()
	registry.started = true
	return registry.tests
}

// Main runs every registered test in order, draining the expectation
// queue after each one, and exits with status 0. The first failure
// exits with status 1 and no further test runs.
func Main(opts ...HarnessOpt) {
	h := NewHarness(opts...)
	h.RunAll()
	h.exit(0)
}

// RunAll runs every registered test on h.
func (h *Harness) RunAll() {
	for _, t := range freeze() {
		h.Run(t.name, t.fn)
	}
}
