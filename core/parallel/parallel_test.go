package parallel

import (
	"sync/atomic"
	"testing"
)

func TestParallelize_CoversAllItems(t *testing.T) {
	const items = 1000
	var covered [items]int32

	Parallelize(items, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&covered[i], 1)
		}
	})

	for i, c := range covered {
		if c != 1 {
			t.Fatalf("item %d visited %d times, want exactly 1", i, c)
		}
	}
}

func TestParallelize_ZeroItems(t *testing.T) {
	called := false
	Parallelize(0, func(start, end int) {
		called = true
	})
	if called {
		t.Error("fn should not be called for zero items")
	}
}

func TestParallelize_FewerItemsThanWorkers(t *testing.T) {
	var total int64
	Parallelize(3, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt64(&total, int64(i))
		}
	})
	if total != 0+1+2 {
		t.Errorf("total = %d, want 3", total)
	}
}

func TestParallelizeWithThreshold_Sequential(t *testing.T) {
	calls := 0
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		calls++
		if start != 0 || end != 10 {
			t.Errorf("sequential path should receive full range, got [%d, %d)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("sequential path should invoke fn once, got %d", calls)
	}
}

func TestParallelizeWithThreshold_Parallel(t *testing.T) {
	const items = 512
	var visited int64
	ParallelizeWithThreshold(items, 16, func(start, end int) {
		atomic.AddInt64(&visited, int64(end-start))
	})
	if visited != items {
		t.Errorf("visited %d items, want %d", visited, items)
	}
}
