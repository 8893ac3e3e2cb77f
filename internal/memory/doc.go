// Package memory controls the Go runtime's memory budget and reports memory
// pressure to the rest of the service.
//
// # Configuration
//
// Call [ConfigureFromEnv] early in main, before large allocations:
//
//	func main() {
//	    memory.ConfigureFromEnv()
//	    // ...
//	}
//
// GOMEMLIMIT, when set, takes precedence. Otherwise MEMORY_LIMIT (bytes,
// usually injected through the Kubernetes Downward API) is multiplied by
// MEMORY_RATIO (default 0.75) and applied with debug.SetMemoryLimit. The
// remainder is left for ffmpeg child processes and the page cache used while
// copying source files.
//
// # Pressure notifications
//
// A [Monitor] samples heap usage every CheckInterval. When usage crosses
// CriticalWaterMark it calls every subscribed [PressureHandler] once; it
// re-arms after usage drops below HighWaterMark. [Monitor.Notify] delivers a
// notification on demand, which cmd/ingestd wires to SIGUSR1.
//
//	monitor := memory.NewMonitor(memory.DefaultConfig())
//	unsubscribe := monitor.Subscribe(reclaimer.Trigger)
//	defer unsubscribe()
//	monitor.Start()
//	defer monitor.Stop()
//
// [LogUsage] logs a heap snapshot at debug level; the pipeline calls it
// before and after each run.
package memory
