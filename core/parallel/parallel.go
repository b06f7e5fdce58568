// Package parallel provides chunked parallel-for helpers for row-oriented
// loops over matrix data.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize splits [0, items) into contiguous chunks, at most one per
// available CPU core, and runs fn on every chunk concurrently. It returns
// once all chunks have been processed.
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	workers := min(runtime.NumCPU(), items)
	chunk := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunk {
		end := min(start+chunk, items)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(start, end)
		}()
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn(0, items) on the calling goroutine when
// items does not exceed threshold, and delegates to Parallelize otherwise.
func ParallelizeWithThreshold(items, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}
