package reclaim

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nishit12/Importlargefile/internal/memory"
)

func TestReclaimRunsAllActions(t *testing.T) {
	var order []string
	record := func(name string, err error) Action {
		return Action{Name: name, Run: func(string) error {
			order = append(order, name)
			return err
		}}
	}

	r := New(
		record("first", nil),
		record("second", errors.New("permission denied")),
		Action{Name: "third", Run: func(string) error { panic("boom") }},
		record("fourth", nil),
	)

	report := r.Reclaim("manual")

	if len(order) != 3 || order[0] != "first" || order[1] != "second" || order[2] != "fourth" {
		t.Errorf("Unexpected action order %v", order)
	}
	if report.Reason != "manual" {
		t.Errorf("Reason = %s, want manual", report.Reason)
	}
	if report.Failed != 2 {
		t.Errorf("Failed = %d, want 2", report.Failed)
	}
	if len(report.Actions) != 4 {
		t.Fatalf("Expected 4 action results, got %d", len(report.Actions))
	}
	if report.Actions[1].Error != "permission denied" {
		t.Errorf("Unexpected error for second action: %q", report.Actions[1].Error)
	}
	if report.Actions[2].Error != "panic: boom" {
		t.Errorf("Unexpected error for panicking action: %q", report.Actions[2].Error)
	}
	if report.Actions[3].Error != "" {
		t.Errorf("Expected fourth action to succeed, got %q", report.Actions[3].Error)
	}
}

func TestTriggerAndWait(t *testing.T) {
	var runs atomic.Int32
	release := make(chan struct{})

	r := New(Action{Name: "slow", Run: func(string) error {
		<-release
		runs.Add(1)
		return nil
	}})

	r.Trigger("run_complete")
	r.Trigger("run_complete")

	// Trigger must not wait for the pass.
	if runs.Load() != 0 {
		t.Fatal("Trigger blocked on the pass")
	}

	close(release)
	r.Wait()

	if runs.Load() != 2 {
		t.Errorf("Expected 2 passes, got %d", runs.Load())
	}
}

func TestSubscribe(t *testing.T) {
	monitor := memory.NewMonitor(memory.Config{CheckInterval: time.Hour})

	var mu sync.Mutex
	var calls int
	r := New(Action{Name: "count", Run: func(string) error {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil
	}})

	unsubscribe := r.Subscribe(monitor)
	monitor.Notify("memory_pressure")
	r.Wait()

	unsubscribe()
	monitor.Notify("memory_pressure")
	r.Wait()

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("Expected 1 pass, got %d", calls)
	}
}

type fakePurger struct{ purged, expired int }

func (f *fakePurger) Purge() int {
	f.purged++
	return 3
}

func (f *fakePurger) PurgeExpired() int {
	f.expired++
	return 1
}

func TestBuiltinActions(t *testing.T) {
	p := &fakePurger{}
	dir := t.TempDir()

	r := New(EvictAction(p), SweepAction(dir, nil), FreeOSMemoryAction())
	report := r.Reclaim("manual")

	if report.Failed != 0 {
		t.Errorf("Expected no failures, got %+v", report.Actions)
	}
	if p.purged != 1 || p.expired != 0 {
		t.Errorf("Expected a full purge for a manual pass, got purged=%d expired=%d", p.purged, p.expired)
	}

	r.Reclaim(ReasonRunComplete)
	if p.purged != 1 || p.expired != 1 {
		t.Errorf("Expected only expired entries to go after a run, got purged=%d expired=%d", p.purged, p.expired)
	}

	names := []string{"evict_responses", "sweep_scratch", "free_os_memory"}
	for i, want := range names {
		if report.Actions[i].Name != want {
			t.Errorf("Action %d = %s, want %s", i, report.Actions[i].Name, want)
		}
	}
}
