package memory

import (
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/nishit12/Importlargefile/internal/logging"
	"github.com/nishit12/Importlargefile/internal/metrics"
)

// Config holds memory management configuration
type Config struct {
	// MemoryLimitBytes is the soft memory limit (0 = use GOMEMLIMIT or no limit)
	MemoryLimitBytes int64

	// HighWaterMark is the usage ratio below which pressure is considered
	// relieved (0.0-1.0)
	HighWaterMark float64

	// CriticalWaterMark is the usage ratio at which a pressure notification
	// is delivered (0.0-1.0)
	CriticalWaterMark float64

	// CheckInterval is how often to check memory usage
	CheckInterval time.Duration
}

// DefaultConfig returns sensible defaults for memory management
func DefaultConfig() Config {
	return Config{
		MemoryLimitBytes:  0, // Use GOMEMLIMIT if set
		HighWaterMark:     0.7,
		CriticalWaterMark: 0.85,
		CheckInterval:     5 * time.Second,
	}
}

// PressureHandler is invoked once per memory-pressure notification.
type PressureHandler func(reason string)

// Monitor samples heap usage and delivers memory-pressure notifications to
// subscribers. A notification fires when usage crosses the critical
// watermark from below, and again only after usage has dropped under the
// high watermark. Notify delivers one on demand (e.g. from SIGUSR1).
type Monitor struct {
	config   Config
	limit    int64
	stopChan chan struct{}
	stopOnce sync.Once

	// sample returns the current heap allocation; replaced in tests.
	sample func() uint64

	mu          sync.RWMutex
	current     uint64
	pressured   bool
	nextID      int
	subscribers map[int]PressureHandler
}

// NewMonitor creates a new memory monitor
func NewMonitor(config Config) *Monitor {
	limit := config.MemoryLimitBytes

	if limit == 0 {
		if goMemLimit := debug.SetMemoryLimit(-1); goMemLimit > 0 && goMemLimit < 1<<62 {
			limit = goMemLimit
			logging.Info("Memory monitor using GOMEMLIMIT: %d bytes (%.1f MB)", limit, float64(limit)/(1024*1024))
		}
	}

	if limit == 0 {
		logging.Warn("Memory monitor: no memory limit configured, watermark notifications disabled")
	}

	return &Monitor{
		config:      config,
		limit:       limit,
		stopChan:    make(chan struct{}),
		sample:      heapAlloc,
		subscribers: make(map[int]PressureHandler),
	}
}

func heapAlloc() uint64 {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return stats.Alloc
}

// Subscribe registers h for pressure notifications and returns a function
// that removes the subscription. Handlers run on the monitor goroutine and
// must not block.
func (m *Monitor) Subscribe(h PressureHandler) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subscribers[id] = h
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subscribers, id)
			m.mu.Unlock()
		})
	}
}

// Start begins monitoring memory usage
func (m *Monitor) Start() {
	if m.limit == 0 || m.config.CheckInterval <= 0 {
		return
	}
	go m.monitorLoop()
}

// Stop stops the memory monitor. Safe to call more than once.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
	})
}

func (m *Monitor) monitorLoop() {
	ticker := time.NewTicker(m.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.checkMemory()
		case <-m.stopChan:
			return
		}
	}
}

func (m *Monitor) checkMemory() {
	alloc := m.sample()
	metrics.MemoryHeapBytes.Set(float64(alloc))

	m.mu.Lock()
	m.current = alloc
	if m.limit <= 0 {
		m.mu.Unlock()
		return
	}

	usage := float64(alloc) / float64(m.limit)
	metrics.MemoryUsageRatio.Set(usage)

	fire := false
	switch {
	case usage >= m.config.CriticalWaterMark && !m.pressured:
		m.pressured = true
		fire = true
		metrics.MemoryUnderPressure.Set(1)
		logging.Warn("Memory critical (%.1f%% of limit), notifying %d subscriber(s)", usage*100, len(m.subscribers))
	case usage < m.config.HighWaterMark && m.pressured:
		m.pressured = false
		metrics.MemoryUnderPressure.Set(0)
		logging.Info("Memory recovered (%.1f%% of limit)", usage*100)
	}
	m.mu.Unlock()

	if fire {
		m.deliver("memory_pressure")
	}
}

// Notify delivers a pressure notification to all subscribers immediately,
// regardless of the current watermark state.
func (m *Monitor) Notify(reason string) {
	logging.Info("Memory pressure notification: %s", reason)
	m.deliver(reason)
}

func (m *Monitor) deliver(reason string) {
	m.mu.RLock()
	handlers := make([]PressureHandler, 0, len(m.subscribers))
	for _, h := range m.subscribers {
		handlers = append(handlers, h)
	}
	m.mu.RUnlock()

	metrics.MemoryPressureEvents.Inc()
	for _, h := range handlers {
		h(reason)
	}
}

// UnderPressure returns true while usage is above the critical watermark.
func (m *Monitor) UnderPressure() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pressured
}

// GetStats returns current memory statistics
func (m *Monitor) GetStats() (current, limit int64, usage float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	current = int64(min(m.current, uint64(1<<63-1)))
	if m.limit > 0 {
		usage = float64(m.current) / float64(m.limit)
	}
	return current, m.limit, usage
}
