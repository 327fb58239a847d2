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
	"fmt"
)

// Kind classifies a fatal harness failure.
type Kind uint8

const (
	ValueMismatch Kind = iota + 1
	UnexpectedCall
	MissingArgument
	ArgumentMismatch
	UnsatisfiedExpectations
	DoubleArm
	AssertionFailed
)

func (k Kind) String() string {
	switch k {
	case ValueMismatch:
		return "VALUE_MISMATCH"
	case UnexpectedCall:
		return "UNEXPECTED_CALL"
	case MissingArgument:
		return "MISSING_ARGUMENT"
	case ArgumentMismatch:
		return "ARGUMENT_MISMATCH"
	case UnsatisfiedExpectations:
		return "UNSATISFIED_EXPECTATIONS"
	case DoubleArm:
		return "DOUBLE_ARM"
	case AssertionFailed:
		return "ASSERTION_FAILED"
	default:
		return "Unknown Kind"
	}
}

// errEndOfTest is raised when an EndTest constraint fired and the exit
// function returned instead of terminating the process.
var errEndOfTest = errors.New("end of test")

// Failure describes the fatal condition that terminated a test.
type Failure struct {
	Kind Kind
	File string
	Line int
	Msg  string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s:%d: %s", f.File, f.Line, f.Msg)
}
