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

package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/klauspost/compress/s2"
)

// Algorithm selects the encoding of a packed record.
type Algorithm uint8

const (
	None Algorithm = iota
	Gzip
	S2
)

var algorithmNames = [...]string{
	None: "none",
	Gzip: "gzip",
	S2:   "s2",
}

const (
	headerMagic = 0xA5

	// MaxHeaderLen is the largest header Pack writes.
	MaxHeaderLen = 2 + binary.MaxVarintLen64

	// MaxRecordSize bounds the content size Unpack will allocate for.
	MaxRecordSize = 1 << 30
)

var (
	// ErrAlgorithm is returned for unknown algorithm names or values.
	ErrAlgorithm = errors.New("codec: unknown algorithm")

	// ErrTooLarge is returned when a record exceeds MaxRecordSize.
	ErrTooLarge = errors.New("codec: record too large")
)

func (alg Algorithm) valid() bool {
	return int(alg) < len(algorithmNames)
}

func (alg Algorithm) String() string {
	if !alg.valid() {
		return fmt.Sprintf("algorithm(%d)", uint8(alg))
	}
	return algorithmNames[alg]
}

// ParseAlgorithm returns the algorithm called name, ignoring case.
func ParseAlgorithm(name string) (Algorithm, error) {
	for i, n := range algorithmNames {
		if strings.EqualFold(name, n) {
			return Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrAlgorithm, name)
}

// MarshalText makes Algorithm usable in JSON documents and as a flag.
func (alg Algorithm) MarshalText() ([]byte, error) {
	if !alg.valid() {
		return nil, fmt.Errorf("%w: %d", ErrAlgorithm, uint8(alg))
	}
	return []byte(algorithmNames[alg]), nil
}

func (alg *Algorithm) UnmarshalText(b []byte) error {
	a, err := ParseAlgorithm(string(b))
	if err != nil {
		return err
	}
	*alg = a
	return nil
}

// MaxEncodedLen returns the largest payload alg produces for n content
// bytes, or -1 if n is too large for the algorithm.
func (alg Algorithm) MaxEncodedLen(n int) int {
	switch alg {
	case None:
		return n
	case Gzip:
		return Bound(n)
	case S2:
		return s2.MaxEncodedLen(n)
	default:
		return -1
	}
}

// PackedBound returns the buffer size Pack needs for n content bytes,
// or -1 if n is too large for the algorithm.
func (alg Algorithm) PackedBound(n int) int {
	m := alg.MaxEncodedLen(n)
	if m < 0 {
		return -1
	}
	return MaxHeaderLen + m
}

// Header prefixes every packed record.
type Header struct {
	Algorithm Algorithm
	// Size of the content before encoding.
	Size uint64
}

// AppendTo appends the encoded header to b.
func (h Header) AppendTo(b []byte) []byte {
	b = append(b, headerMagic, byte(h.Algorithm))
	return binary.AppendUvarint(b, h.Size)
}

// ReadHeader parses the header at the start of b and returns it with its
// encoded length.
func ReadHeader(b []byte) (Header, int, error) {
	if len(b) < 3 || b[0] != headerMagic {
		return Header{}, 0, fmt.Errorf("%w: missing header", ErrCorrupt)
	}
	h := Header{Algorithm: Algorithm(b[1])}
	if !h.Algorithm.valid() {
		return Header{}, 0, fmt.Errorf("%w: %d", ErrAlgorithm, b[1])
	}
	size, n := binary.Uvarint(b[2:])
	if n <= 0 {
		return Header{}, 0, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}
	h.Size = size
	return h, 2 + n, nil
}

// Pack writes a header followed by the encoding of src into dst and
// returns the number of bytes written. A dst of PackedBound(len(src))
// bytes is always large enough.
func (alg Algorithm) Pack(dst, src []byte) (int, error) {
	if !alg.valid() {
		return 0, fmt.Errorf("%w: %d", ErrAlgorithm, uint8(alg))
	}
	var hdr [MaxHeaderLen]byte
	h := Header{Algorithm: alg, Size: uint64(len(src))}.AppendTo(hdr[:0])
	if len(dst) < len(h) {
		return 0, ErrShortBuffer
	}
	off := copy(dst, h)
	payload := dst[off:]

	var n int
	switch alg {
	case None:
		if len(payload) < len(src) {
			return 0, ErrShortBuffer
		}
		n = copy(payload, src)
	case Gzip:
		var err error
		if n, err = Compress(payload, src); err != nil {
			return 0, err
		}
	case S2:
		if m := s2.MaxEncodedLen(len(src)); m < 0 || len(payload) < m {
			return 0, ErrShortBuffer
		}
		n = len(s2.Encode(payload, src))
	}
	return off + n, nil
}

// Unpack decodes a record written by Pack into a new buffer. The header
// size is checked against the size the gzip or s2 stream declares before
// anything is decoded, and against the decoded content afterwards.
func Unpack(src []byte) ([]byte, error) {
	h, off, err := ReadHeader(src)
	if err != nil {
		return nil, err
	}
	if h.Size > MaxRecordSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, h.Size)
	}
	payload := src[off:]
	out := make([]byte, h.Size)

	var n int
	switch h.Algorithm {
	case None:
		n = copy(out, payload)
		if len(payload) != n {
			return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(payload)-n)
		}
	case Gzip:
		isize, err := DecompressedSize(payload)
		if err != nil {
			return nil, err
		}
		if uint32(isize) != uint32(h.Size) {
			return nil, fmt.Errorf("%w: header size %d, stream size %d", ErrCorrupt, h.Size, isize)
		}
		if n, err = Decompress(out, payload); err != nil {
			if errors.Is(err, ErrShortBuffer) {
				return nil, fmt.Errorf("%w: content exceeds header size %d", ErrCorrupt, h.Size)
			}
			return nil, err
		}
	case S2:
		dlen, err := s2.DecodedLen(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if uint64(dlen) != h.Size {
			return nil, fmt.Errorf("%w: header size %d, stream size %d", ErrCorrupt, h.Size, dlen)
		}
		dec, err := s2.Decode(out, payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		n = len(dec)
	}
	if uint64(n) != h.Size {
		return nil, fmt.Errorf("%w: header size %d, content size %d", ErrCorrupt, h.Size, n)
	}
	return out, nil
}
