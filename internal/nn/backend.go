package nn

import (
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/klauspost/cpuid/v2"
)

var (
	workersOnce sync.Once
	workerCount int
)

// Workers is the engine's per-batch parallelism for sample-independent
// work inside sequence layers. Sized from the physical core count
// (logical cores as fallback), overridable with NN_WORKERS.
func Workers() int {
	workersOnce.Do(func() {
		if v := os.Getenv("NN_WORKERS"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				workerCount = n
				return
			}
		}
		workerCount = cpuid.CPU.PhysicalCores
		if workerCount <= 0 {
			workerCount = runtime.NumCPU()
		}
		slog.Debug("[NN] Backend probe",
			slog.String("cpu", cpuid.CPU.BrandName),
			slog.Int("physical_cores", cpuid.CPU.PhysicalCores),
			slog.Int("workers", workerCount))
	})
	return workerCount
}

// parallelFor runs fn(i) for i in [0, n) across the worker pool. Calls
// must write to disjoint state per index.
func parallelFor(n int, fn func(i int)) {
	workers := Workers()
	if workers <= 1 || n < 2*workers {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}
