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

type constraintKind uint8

const (
	argEquals constraintKind = iota + 1
	strEquals
	returnValue
	endTest
	capture
)

// Constraint is one clause of an expectation.
type Constraint struct {
	kind constraintKind
	name string
	n    uint64
	s    string
	dst  *Value
}

// Want requires the named argument to equal v as a word-sized integer.
func Want[N Integer](name string, v N) Constraint {
	return Constraint{kind: argEquals, name: name, n: uint64(v)}
}

// WantStr requires the named argument to be a byte string equal to s.
// Both sides end at their first NUL.
func WantStr(name, s string) Constraint {
	return Constraint{kind: strEquals, name: name, s: s}
}

// Returns sets the value the mocked call returns. When given more than
// once, the last one wins.
func Returns[N Integer](v N) Constraint {
	return Constraint{kind: returnValue, n: uint64(v)}
}

// EndTest ends the test successfully once the call has been processed.
func EndTest() Constraint {
	return Constraint{kind: endTest}
}

// Capture stores a copy of the named argument into dst.
func Capture(name string, dst *Value) Constraint {
	return Constraint{kind: capture, name: name, dst: dst}
}
