package memory

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/nishit12/Importlargefile/internal/logging"
)

func testMonitor(limit int64, alloc *atomic.Uint64) *Monitor {
	m := NewMonitor(Config{
		MemoryLimitBytes:  limit,
		HighWaterMark:     0.7,
		CriticalWaterMark: 0.85,
		CheckInterval:     time.Hour,
	})
	m.sample = alloc.Load
	return m
}

func TestNewMonitor(t *testing.T) {
	config := Config{
		MemoryLimitBytes:  1024 * 1024 * 100,
		HighWaterMark:     0.7,
		CriticalWaterMark: 0.85,
		CheckInterval:     5 * time.Second,
	}

	monitor := NewMonitor(config)
	if monitor == nil {
		t.Fatal("NewMonitor returned nil")
	}
	if monitor.limit != config.MemoryLimitBytes {
		t.Errorf("Expected limit %d, got %d", config.MemoryLimitBytes, monitor.limit)
	}
	if monitor.UnderPressure() {
		t.Error("New monitor should not report pressure")
	}
}

func TestMonitorPressureNotification(t *testing.T) {
	var alloc atomic.Uint64
	m := testMonitor(1000, &alloc)

	var calls atomic.Int32
	var lastReason atomic.Value
	unsubscribe := m.Subscribe(func(reason string) {
		calls.Add(1)
		lastReason.Store(reason)
	})
	defer unsubscribe()

	steps := []struct {
		name          string
		alloc         uint64
		wantCalls     int32
		wantPressured bool
	}{
		{"below high watermark", 500, 0, false},
		{"crosses critical", 900, 1, true},
		{"stays critical without refiring", 950, 1, true},
		{"between watermarks keeps state", 800, 1, true},
		{"recovers below high", 600, 1, false},
		{"crosses critical again", 860, 2, true},
	}

	for _, step := range steps {
		alloc.Store(step.alloc)
		m.checkMemory()

		if got := calls.Load(); got != step.wantCalls {
			t.Errorf("%s: expected %d notifications, got %d", step.name, step.wantCalls, got)
		}
		if got := m.UnderPressure(); got != step.wantPressured {
			t.Errorf("%s: UnderPressure() = %v, want %v", step.name, got, step.wantPressured)
		}
	}

	if r, _ := lastReason.Load().(string); r != "memory_pressure" {
		t.Errorf("Expected reason memory_pressure, got %q", r)
	}
}

func TestMonitorUnsubscribe(t *testing.T) {
	var alloc atomic.Uint64
	m := testMonitor(1000, &alloc)

	var calls atomic.Int32
	unsubscribe := m.Subscribe(func(string) { calls.Add(1) })
	unsubscribe()
	unsubscribe() // idempotent

	m.Notify("manual")

	if calls.Load() != 0 {
		t.Errorf("unsubscribed handler was called %d times", calls.Load())
	}
}

func TestMonitorNotify(t *testing.T) {
	var alloc atomic.Uint64
	m := testMonitor(0, &alloc)

	got := make(chan string, 2)
	m.Subscribe(func(reason string) { got <- reason })
	m.Subscribe(func(reason string) { got <- reason })

	m.Notify("signal")

	for i := 0; i < 2; i++ {
		select {
		case r := <-got:
			if r != "signal" {
				t.Errorf("Expected reason signal, got %q", r)
			}
		case <-time.After(time.Second):
			t.Fatal("subscriber was not notified")
		}
	}
}

func TestMonitorGetStats(t *testing.T) {
	var alloc atomic.Uint64
	m := testMonitor(1000, &alloc)
	alloc.Store(250)
	m.checkMemory()

	current, limit, usage := m.GetStats()
	if current != 250 {
		t.Errorf("Expected current 250, got %d", current)
	}
	if limit != 1000 {
		t.Errorf("Expected limit 1000, got %d", limit)
	}
	if usage != 0.25 {
		t.Errorf("Expected usage 0.25, got %f", usage)
	}
}

func TestMonitorStartStop(_ *testing.T) {
	m := NewMonitor(Config{
		MemoryLimitBytes:  1024 * 1024 * 1024,
		HighWaterMark:     0.7,
		CriticalWaterMark: 0.85,
		CheckInterval:     10 * time.Millisecond,
	})
	m.Start()
	time.Sleep(30 * time.Millisecond)
	m.Stop()
	m.Stop()
}

func TestLogUsage(t *testing.T) {
	u := LogUsage(logging.Default(), "test")
	if u.Sys == 0 {
		t.Error("Expected non-zero Sys")
	}
}
