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

// Package scoped holds resources bound to a lexical scope: a heap block
// released with Close and a lock released when a function returns.
package scoped

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// MaxBufferSize is the largest block Alloc accepts.
const MaxBufferSize = math.MaxInt32

var (
	// ErrResourceExhausted is returned when a block cannot be allocated.
	ErrResourceExhausted = errors.New("resource exhausted")

	// ErrInvalidSize is returned for non positive sizes.
	ErrInvalidSize = errors.New("invalid buffer size")
)

// Buffer is a heap block owned exclusively by its creator.
//
//	buf, err := scoped.Alloc(4096)
//	if err != nil {
//		return err
//	}
//	defer buf.Close()
type Buffer struct {
	mu  sync.Mutex
	b   []byte
	rel func([]byte) error
}

// Alloc allocates a zeroed block of n bytes.
func Alloc(n int) (*Buffer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	if n > MaxBufferSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrResourceExhausted, n, MaxBufferSize)
	}
	b, rel, err := allocate(n)
	if err != nil {
		return nil, fmt.Errorf("%w: allocating %d bytes: %v", ErrResourceExhausted, n, err)
	}
	return &Buffer{b: b, rel: rel}, nil
}

// Bytes returns the raw block, or nil once the buffer is closed. The
// slice must not be used after Close.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b
}

// Len returns the size of the block, 0 once closed.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.b)
}

// Close releases the block. Further calls do nothing.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.b == nil {
		return nil
	}
	buf := b.b
	b.b = nil
	return b.rel(buf)
}
