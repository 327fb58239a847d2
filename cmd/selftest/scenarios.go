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

package main

import (
	"bytes"
	"errors"
	"runtime"
	"sync"

	"github.com/nats-io/testkit/codec"
	"github.com/nats-io/testkit/scoped"
	"github.com/nats-io/testkit/unittest"
)

// archiver is the code under test: it packs a record into a scoped
// buffer and hands it to a sink.
type archiver struct {
	mu   sync.Mutex
	alg  codec.Algorithm
	sink unittest.Mocker
	sent int
}

var errShortWrite = errors.New("short write")

// archiveAlgorithm is the algorithm the archive scenarios pack with.
var archiveAlgorithm = codec.Gzip

func (a *archiver) store(record []byte) error {
	buf, err := scoped.Alloc(a.alg.PackedBound(len(record)))
	if err != nil {
		return err
	}
	defer buf.Close()

	n, err := a.alg.Pack(buf.Bytes(), record)
	if err != nil {
		return err
	}
	var written uint64
	scoped.WithLock(&a.mu, func() {
		written = a.sink.Call("write", unittest.Bytes("data", buf.Bytes()[:n]), unittest.Int("len", n))
		a.sent++
	})
	if written != uint64(n) {
		return errShortWrite
	}
	return nil
}

// storeAll stores records from one goroutine per record.
func (a *archiver) storeAll(records [][]byte) []error {
	errs := make([]error, len(records))
	var wg sync.WaitGroup
	for i, record := range records {
		wg.Add(1)
		go func(i int, record []byte) {
			defer wg.Done()
			errs[i] = a.store(record)
		}(i, record)
	}
	wg.Wait()
	return errs
}

var (
	openExp   unittest.Expectation
	firstExp  unittest.Expectation
	secondExp unittest.Expectation
	writeExp  unittest.Expectation
	stepExp   unittest.Expectation
	packed    unittest.Value
	captured  unittest.Value
)

func init() {
	unittest.Register("drain-empty", func(t *unittest.T) {})

	unittest.Register("open", func(t *unittest.T) {
		t.Expect(&openExp, "open", unittest.Want("mode", 2), unittest.Returns(7))
		unittest.EqualInt(t, t.Call("open", unittest.Int("mode", 2)), 7)
	})

	unittest.Register("ordering", func(t *unittest.T) {
		t.Expect(&firstExp, "first", unittest.Returns(1), unittest.Returns(10))
		t.Expect(&secondExp, "second", unittest.WantStr("name", "abc"))
		unittest.EqualInt(t, t.Call("first"), 10)
		unittest.EqualInt(t, t.Call("second", unittest.Str("name", "abc")), 0)
		t.Assert(t.Pending() == 0, "queue drained")
	})

	unittest.Register("archive", testArchive)
	unittest.Register("archive-parallel", testArchiveParallel)

	unittest.Register("approx", func(t *unittest.T) {
		t.Approx64(0.1+0.2, 0.3, 1e-9)
		t.Approx32(1.5, 1.25, 0.25)
	})

	// Must stay last: EndTest terminates the run.
	unittest.Register("capture-end", func(t *unittest.T) {
		t.Expect(&stepExp, "step", unittest.Capture("i", &captured), unittest.EndTest())
		t.Call("step", unittest.Int("i", 42))
		t.Assert(false, "unreachable after EndTest")
	})
}

func testArchive(t *unittest.T) {
	record := []byte("a record, a record, a record worth compressing")
	a := &archiver{alg: archiveAlgorithm, sink: t}

	t.Expect(&writeExp, "write", unittest.Capture("data", &packed), unittest.Capture("len", &captured))
	err := a.store(record)
	t.Assert(errors.Is(err, errShortWrite), "write returning 0 is a short write")
	unittest.EqualInt(t, uint64(len(packed.Bytes())), captured.Uint())

	h, _, err := codec.ReadHeader(packed.Bytes())
	t.Assert(err == nil, "captured data starts with a header")
	unittest.EqualInt(t, h.Algorithm, archiveAlgorithm)
	unittest.EqualInt(t, h.Size, uint64(len(record)))

	out, err := codec.Unpack(packed.Bytes())
	t.Assert(err == nil, "captured data unpacks")
	unittest.EqualInt(t, len(out), len(record))
	t.EqualBytes(out, record, len(record))
	unittest.EqualInt(t, a.sent, 1)
}

// testArchiveParallel runs one writer per available CPU, serialized on
// the sink by the archiver lock.
func testArchiveParallel(t *unittest.T) {
	workers := runtime.GOMAXPROCS(0)
	record := bytes.Repeat([]byte("parallel "), 64)
	a := &archiver{alg: archiveAlgorithm, sink: t}

	sample := make([]byte, a.alg.PackedBound(len(record)))
	n, err := a.alg.Pack(sample, record)
	t.Assert(err == nil, "record packs")

	exps := make([]unittest.Expectation, workers)
	records := make([][]byte, workers)
	for i := range exps {
		t.Expect(&exps[i], "write", unittest.Want("len", n), unittest.Returns(n))
		records[i] = record
	}
	for _, err := range a.storeAll(records) {
		t.Assert(err == nil, "every write completes")
	}
	unittest.EqualInt(t, a.sent, workers)
	unittest.EqualInt(t, t.Pending(), 0)
}

// demos fail on purpose, one diagnostic each. They arm local
// expectations since a trapped failure leaves them armed.
var demos = map[string]func(*unittest.T){
	"unexpected-call": func(t *unittest.T) {
		var open unittest.Expectation
		t.Expect(&open, "open")
		t.Call("close")
	},
	"string-mismatch": func(t *unittest.T) {
		var hash unittest.Expectation
		t.Expect(&hash, "hash", unittest.WantStr("s", "abc"))
		t.Call("hash", unittest.Str("s", "abd"))
	},
	"bytes-mismatch": func(t *unittest.T) {
		t.EqualBytes([]byte{0xAA, 0xBB, 0xCC}, []byte{0xAA, 0xB0, 0xCC}, 3)
	},
	"missing-argument": func(t *unittest.T) {
		var open unittest.Expectation
		t.Expect(&open, "open", unittest.Want("mode", 2))
		t.Call("open", unittest.Int("flags", 2))
	},
	"unsatisfied": func(t *unittest.T) {
		var open, closing unittest.Expectation
		t.Expect(&open, "open")
		t.Expect(&closing, "close")
	},
	"double-arm": func(t *unittest.T) {
		var open unittest.Expectation
		t.Expect(&open, "open")
		t.Expect(&open, "open")
	},
}
