package workers

import (
	"runtime"
)

// Count returns a worker count for a given task type.
// It respects container CPU limits via GOMAXPROCS (Go 1.19+).
//
// The multiplier adjusts for task characteristics:
//   - 1.0 for CPU-bound tasks
//   - 2.0 for I/O-bound tasks
//   - 1.5 for mixed tasks
//
// The limit parameter caps the worker count. Use 0 for no limit.
func Count(multiplier float64, limit int) int {
	available := runtime.GOMAXPROCS(0)

	workers := int(float64(available) * multiplier)

	if workers < 1 {
		workers = 1
	}
	if limit > 0 && workers > limit {
		workers = limit
	}

	return workers
}

// ForCPU returns worker count for CPU-bound tasks (1 per CPU).
func ForCPU(limit int) int {
	return Count(1.0, limit)
}

// ForIO returns worker count for I/O-bound tasks (2 per CPU).
func ForIO(limit int) int {
	return Count(2.0, limit)
}

// ForMixed returns worker count for mixed tasks (1.5 per CPU).
func ForMixed(limit int) int {
	return Count(1.5, limit)
}

// maxAutoRuns caps the automatic run count. Each run may hold a whole file
// in memory and an ffmpeg process.
const maxAutoRuns = 8

// Runs returns the number of pipeline runs allowed at once. A positive
// configured value is used as is; otherwise the count is derived from the
// available CPUs.
func Runs(configured int) int {
	if configured > 0 {
		return configured
	}
	return ForMixed(maxAutoRuns)
}
