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

package scoped

import (
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferAlloc(t *testing.T) {
	buf, err := Alloc(4096)
	require.NoError(t, err)
	defer buf.Close()

	b := buf.Bytes()
	require.Len(t, b, 4096)
	require.Equal(t, 4096, buf.Len())
	for _, c := range b {
		require.Zero(t, c)
	}
	b[0], b[4095] = 0xAA, 0xBB
	require.Equal(t, byte(0xAA), buf.Bytes()[0])
	require.Equal(t, byte(0xBB), buf.Bytes()[4095])
}

func TestBufferClose(t *testing.T) {
	buf, err := Alloc(10)
	require.NoError(t, err)

	require.NoError(t, buf.Close())
	require.Nil(t, buf.Bytes())
	require.Zero(t, buf.Len())
	require.NoError(t, buf.Close())
}

func TestBufferReleasedOnPanic(t *testing.T) {
	var buf *Buffer
	require.Panics(t, func() {
		var err error
		buf, err = Alloc(128)
		require.NoError(t, err)
		defer buf.Close()
		panic("boom")
	})
	require.Nil(t, buf.Bytes())
}

func TestBufferInvalidSize(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := Alloc(n)
		require.True(t, errors.Is(err, ErrInvalidSize), "size %d: got %v", n, err)
	}
}

func TestBufferResourceExhausted(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("limit is the largest int")
	}
	n := MaxBufferSize
	n++
	_, err := Alloc(n)
	require.True(t, errors.Is(err, ErrResourceExhausted), "got %v", err)
	require.Contains(t, err.Error(), "resource exhausted")
}

func TestWithLock(t *testing.T) {
	var mu sync.Mutex
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				WithLock(&mu, func() { counter++ })
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 5000, counter)
}

func TestWithLockReleasedOnPanic(t *testing.T) {
	var mu sync.Mutex
	require.PanicsWithValue(t, "boom", func() {
		WithLock(&mu, func() { panic("boom") })
	})
	require.True(t, mu.TryLock())
	mu.Unlock()
}

func TestWithRLock(t *testing.T) {
	var mu sync.RWMutex
	WithRLock(&mu, func() {
		// Readers share the lock, writers wait.
		require.True(t, mu.TryRLock())
		mu.RUnlock()
		require.False(t, mu.TryLock())
	})
	require.True(t, mu.TryLock())
	mu.Unlock()
}
