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

package testhelper

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrap(t *testing.T) {
	require.Equal(t, -1, Trap(t, func() {}))
	require.Equal(t, 0, Trap(t, func() { Exit(0) }))
	require.Equal(t, 3, Trap(t, func() { Exit(3) }))
	require.PanicsWithValue(t, "other", func() {
		Trap(t, func() { panic("other") })
	})
}

func TestOutput(t *testing.T) {
	var o Output
	require.Nil(t, o.Lines())

	fmt.Fprintf(&o, "a \x1b[31mB\x1b[0m c\n")
	fmt.Fprintf(&o, "second\n")
	require.Equal(t, "a \x1b[31mB\x1b[0m c\nsecond\n", o.Raw())
	require.Equal(t, []string{"a B c", "second"}, o.Lines())
	o.CheckContains(t, "a B c", "second")

	o.Reset()
	o.CheckContent(t, "")
}
