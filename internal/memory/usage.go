package memory

import (
	"runtime"

	"github.com/nishit12/Importlargefile/internal/logging"
)

// Usage is a snapshot of the runtime's memory counters.
type Usage struct {
	HeapAlloc uint64
	HeapInuse uint64
	Sys       uint64
	NumGC     uint32
}

// ReadUsage returns the current memory counters.
func ReadUsage() Usage {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return Usage{
		HeapAlloc: stats.HeapAlloc,
		HeapInuse: stats.HeapInuse,
		Sys:       stats.Sys,
		NumGC:     stats.NumGC,
	}
}

// LogUsage logs a memory snapshot at debug level and returns it.
func LogUsage(log logging.Logger, label string) Usage {
	u := ReadUsage()
	log.Debug("Memory %s: heap=%s inuse=%s sys=%s gc=%d",
		label,
		FormatBytes(int64(u.HeapAlloc)),
		FormatBytes(int64(u.HeapInuse)),
		FormatBytes(int64(u.Sys)),
		u.NumGC,
	)
	return u
}
