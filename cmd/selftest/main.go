// Copyright 2012-2026 The NATS Authors
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
	"flag"
	"fmt"
	"os"
	"sort"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/nats-io/testkit/codec"
	"github.com/nats-io/testkit/unittest"
)

var usageStr = `
Usage: selftest [options]

Runs every registered scenario in order. Exits 0 when all of them pass.

Options:
    -list              List registered scenarios and failing demos
    -fail <name>       Run a single failing demo to show its diagnostic
    -algorithm <name>  Algorithm the archive scenarios pack with: none, gzip
                       or s2 (default gzip)

Environment:
    UNITTEST_SILENT    Suppress diagnostics (exit status is unchanged)
`

func usage() {
	fmt.Printf("%s\n", usageStr)
	os.Exit(0)
}

func main() {
	var (
		list bool
		fail string
	)
	fs := flag.NewFlagSet("selftest", flag.ExitOnError)
	fs.Usage = usage
	fs.BoolVar(&list, "list", false, "List registered scenarios and failing demos.")
	fs.StringVar(&fail, "fail", "", "Run a single failing demo.")
	fs.TextVar(&archiveAlgorithm, "algorithm", codec.Gzip, "Algorithm the archive scenarios pack with.")
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	// archive-parallel starts one writer per CPU, respect container quotas.
	undo, _ := maxprocs.Set()
	defer undo()

	if list {
		fmt.Printf("Scenarios:\n")
		for _, name := range unittest.Tests() {
			fmt.Printf(" - %s\n", name)
		}
		fmt.Printf("Failing demos:\n")
		for _, name := range demoNames() {
			fmt.Printf(" - %s\n", name)
		}
		return
	}

	if fail != "" {
		fn, ok := demos[fail]
		if !ok {
			fmt.Printf("Unknown demo %q, run with -list\n", fail)
			os.Exit(2)
		}
		h := unittest.NewHarness()
		h.Run(fail, fn)
		// Every demo fails, reaching this point is a bug in the demo.
		fmt.Printf("Demo %q did not fail\n", fail)
		os.Exit(2)
	}

	unittest.Main()
}

func demoNames() []string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
