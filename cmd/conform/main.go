// Command conform runs the m6502nes CPU core against SingleStepTests-
// style single-instruction JSON vectors and reports pass/fail counts.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var (
	vectorsDir  = flag.String("vectors", "", "Directory of *.json vector files (see SingleStepTests' 6502 format). Mutually exclusive with -manifest.")
	manifest    = flag.String("manifest", "", "Path to a yaml suite manifest naming several vector directories to run together. Mutually exclusive with -vectors.")
	workers     = flag.Int("workers", 8, "Number of goroutines sharding the vector list.")
	maxFailures = flag.Int("max-failures", 20, "Maximum number of mismatches to print in detail.")
	dumpState   = flag.Bool("dump", false, "Dump the failing vector (its initial and expected final state, via go-spew) for each printed mismatch; the state the CPU produced is shown only as diffs.")
)

func main() {
	flag.Parse()

	if (*vectorsDir == "") == (*manifest == "") {
		log.Fatal("exactly one of -vectors or -manifest is required")
	}

	var vectors []Vector
	var err error
	switch {
	case *manifest != "":
		var skipped int
		vectors, skipped, err = LoadManifest(*manifest)
		if skipped > 0 {
			fmt.Fprintf(os.Stderr, "conform: %d manifest entries skipped\n", skipped)
		}
	default:
		vectors, err = LoadVectors(*vectorsDir)
	}
	if err != nil {
		// A directory we can't read or a file we can't parse is a
		// fixture problem, not a CPU problem: exit 2 distinguishes it
		// from a run that completed but found real mismatches.
		fmt.Fprintln(os.Stderr, "conform:", err)
		os.Exit(2)
	}
	if len(vectors) == 0 {
		fmt.Fprintln(os.Stderr, "conform: no vectors found")
		os.Exit(2)
	}

	results := runAll(vectors, *workers)

	var passed, fixtureErrs int
	var failures []Result
	for _, r := range results {
		switch {
		case r.Err != nil:
			fixtureErrs++
			failures = append(failures, r)
		case r.Pass():
			passed++
		default:
			failures = append(failures, r)
		}
	}

	fmt.Printf("%d/%d vectors passed\n", passed, len(vectors))

	shown := 0
	for _, r := range failures {
		if shown >= *maxFailures {
			fmt.Printf("... %d more failures not shown\n", len(failures)-shown)
			break
		}
		report(r)
		shown++
	}

	switch {
	case fixtureErrs == len(vectors):
		os.Exit(2) // every vector failed to even load/run; a fixture problem, not a CPU bug
	case passed != len(vectors):
		os.Exit(1)
	}
}

func report(r Result) {
	if r.Err != nil {
		fmt.Printf("FIXTURE ERROR %s: %s\n", r.Vector.Name, errors.Cause(r.Err))
		return
	}

	fmt.Printf("FAIL %s:\n", r.Vector.Name)
	for _, d := range r.Diffs {
		fmt.Printf("  %s\n", d)
	}
	if *dumpState {
		fmt.Println(spew.Sdump(r.Vector))
	}
}

// runAll shards vectors across n goroutines with errgroup, each vector
// constructing its own CPU+memory instance so no state crosses worker
// boundaries.
func runAll(vectors []Vector, n int) []Result {
	results := make([]Result, len(vectors))

	var g errgroup.Group
	ch := make(chan int)

	for w := 0; w < n; w++ {
		g.Go(func() error {
			// Each index belongs to exactly one worker, so writing
			// results[i] here needs no synchronization.
			for i := range ch {
				results[i] = Run(vectors[i])
			}
			return nil
		})
	}

	for i := range vectors {
		ch <- i
	}
	close(ch)

	// errgroup's workers never return an error (Run never panics on
	// bad input, it records Result.Err instead), so this can't fail.
	_ = g.Wait()

	return results
}
