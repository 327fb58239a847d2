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
	"bytes"
	"strconv"
	"unsafe"
)

// Integer is any integer type a call argument or a compared value can hold.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

type valueKind uint8

const (
	intValue valueKind = iota
	bytesValue
	ptrValue
)

// Value is the type-erased value of a call argument: an integer, a byte
// string or a pointer address.
type Value struct {
	kind valueKind
	n    uint64
	b    []byte
}

// Uint returns the word-sized view of an integer or pointer value.
// Byte string values have none and report 0.
func (v Value) Uint() uint64 {
	if v.kind == bytesValue {
		return 0
	}
	return v.n
}

// Bytes returns the content of a byte string value. Other values
// return nil.
func (v Value) Bytes() []byte {
	if v.kind != bytesValue {
		return nil
	}
	return v.b
}

// IsBytes reports whether v holds a byte string.
func (v Value) IsBytes() bool {
	return v.kind == bytesValue
}

// IsPtr reports whether v holds a pointer address.
func (v Value) IsPtr() bool {
	return v.kind == ptrValue
}

// String formats v the way diagnostics print it: integers in decimal,
// byte strings quoted.
func (v Value) String() string {
	if v.kind == bytesValue {
		return strconv.Quote(string(cstring(v.b)))
	}
	return strconv.FormatUint(v.n, 10)
}

// clone returns a copy of v that does not share its byte string.
func (v Value) clone() Value {
	if v.kind == bytesValue {
		v.b = append([]byte(nil), v.b...)
	}
	return v
}

func cstring(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}

// Arg is one named argument of a mocked call.
type Arg struct {
	Name  string
	Value Value
}

// Int records an integer argument. Signed values are stored in two's
// complement.
func Int[N Integer](name string, v N) Arg {
	return Arg{Name: name, Value: Value{kind: intValue, n: uint64(v)}}
}

// Bool records a boolean argument as 0 or 1.
func Bool(name string, v bool) Arg {
	var n uint64
	if v {
		n = 1
	}
	return Arg{Name: name, Value: Value{kind: intValue, n: n}}
}

// Str records a string argument.
func Str(name, s string) Arg {
	return Arg{Name: name, Value: Value{kind: bytesValue, b: []byte(s)}}
}

// Bytes records a byte string argument. The slice is not copied.
func Bytes(name string, b []byte) Arg {
	return Arg{Name: name, Value: Value{kind: bytesValue, b: b}}
}

// Ptr records the address p points to.
func Ptr[P any](name string, p *P) Arg {
	return Arg{Name: name, Value: Value{kind: ptrValue, n: uint64(uintptr(unsafe.Pointer(p)))}}
}

// Call is the descriptor of one mocked invocation.
type Call struct {
	Func string
	Args []Arg
}

// Lookup returns the first argument called name.
func (c *Call) Lookup(name string) (Value, bool) {
	for i := range c.Args {
		if c.Args[i].Name == name {
			return c.Args[i].Value, true
		}
	}
	return Value{}, false
}
