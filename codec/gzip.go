// Copyright 2020-2026 The NATS Authors
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

// Package codec wraps the DEFLATE library behind one-shot gzip
// functions working on caller provided buffers.
package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
)

const (
	DefaultLevel = 6

	gzipHeaderSize  = 10
	gzipTrailerSize = 8

	// The encoder never emits a block covering less than this many input
	// bytes, except for the last one.
	minBlockSize = 16 * 1024
	// A stored block costs a 3 bit header padded to a byte plus LEN/NLEN.
	storedBlockOverhead = 5
)

var (
	// ErrShortBuffer is returned when the output does not fit in dst.
	ErrShortBuffer = errors.New("codec: short buffer")

	// ErrCorrupt is returned when the input is not a valid gzip stream.
	ErrCorrupt = errors.New("codec: corrupt input")

	// ErrLevel is returned for compression levels outside 1-9.
	ErrLevel = errors.New("codec: invalid compression level")
)

// Bound returns the largest size Compress can produce for n input bytes.
func Bound(n int) int {
	return gzipHeaderSize + gzipTrailerSize + n + n>>12 +
		(n/minBlockSize+2)*storedBlockOverhead
}

// Compress writes the gzip encoding of src into dst at DefaultLevel and
// returns the number of bytes written. A dst of Bound(len(src)) bytes is
// always large enough.
func Compress(dst, src []byte) (int, error) {
	return CompressLevel(dst, src, DefaultLevel)
}

// CompressLevel is Compress with an explicit level, 1 (fastest) to 9.
func CompressLevel(dst, src []byte, level int) (int, error) {
	if level < gzip.BestSpeed || level > gzip.BestCompression {
		return 0, fmt.Errorf("%w: %d", ErrLevel, level)
	}
	out := &fixedWriter{buf: dst}
	w := gzipPool.getWriter(out, level)
	defer gzipPool.putWriter(w, level)

	if _, err := w.Write(src); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return out.n, nil
}

// Decompress writes the content of the gzip stream src into dst and
// returns the number of bytes written. It fails with ErrShortBuffer if
// the content is larger than dst.
func Decompress(dst, src []byte) (int, error) {
	r, err := gzipPool.getReader(bytes.NewReader(src))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer gzipPool.putReader(r)

	var n int
	for n < len(dst) {
		m, err := r.Read(dst[n:])
		n += m
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	}
	// dst is full, the stream has to end here.
	var probe [1]byte
	switch m, err := io.ReadFull(r, probe[:]); {
	case m > 0:
		return n, ErrShortBuffer
	case err == io.EOF:
		return n, nil
	default:
		return n, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
}

// DecompressedSize returns the content size recorded in the trailer of
// a single member gzip stream, modulo 2^32.
func DecompressedSize(src []byte) (int, error) {
	if len(src) < gzipHeaderSize+gzipTrailerSize {
		return 0, fmt.Errorf("%w: stream too short", ErrCorrupt)
	}
	return int(binary.LittleEndian.Uint32(src[len(src)-4:])), nil
}

// fixedWriter fills a caller provided buffer and refuses to grow it.
type fixedWriter struct {
	buf []byte
	n   int
}

func (f *fixedWriter) Write(p []byte) (int, error) {
	c := copy(f.buf[f.n:], p)
	f.n += c
	if c < len(p) {
		return c, ErrShortBuffer
	}
	return c, nil
}

var gzipPool gzipPools

type gzipPools struct {
	writers [gzip.BestCompression + 1]sync.Pool
	readers sync.Pool
}

func (pool *gzipPools) getWriter(dst io.Writer, level int) *gzip.Writer {
	if w := pool.writers[level].Get(); w != nil {
		writer := w.(*gzip.Writer)
		writer.Reset(dst)
		return writer
	}
	// The level was validated by the caller.
	writer, _ := gzip.NewWriterLevel(dst, level)
	return writer
}

func (pool *gzipPools) putWriter(writer *gzip.Writer, level int) {
	writer.Reset(io.Discard)
	pool.writers[level].Put(writer)
}

func (pool *gzipPools) getReader(src io.Reader) (*gzip.Reader, error) {
	if r := pool.readers.Get(); r != nil {
		reader := r.(*gzip.Reader)
		if err := reader.Reset(src); err != nil {
			pool.readers.Put(reader)
			return nil, err
		}
		return reader, nil
	}
	return gzip.NewReader(src)
}

func (pool *gzipPools) putReader(reader *gzip.Reader) {
	pool.readers.Put(reader)
}
