package reclaim

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/nishit12/Importlargefile/internal/logging"
	"github.com/nishit12/Importlargefile/internal/memory"
	"github.com/nishit12/Importlargefile/internal/metrics"
)

// Action is one best-effort cleanup step. Run receives the reason the pass
// was started.
type Action struct {
	Name string
	Run  func(reason string) error
}

// ActionResult records how one action went.
type ActionResult struct {
	Name     string `json:"name"`
	Error    string `json:"error,omitempty"`
	Duration string `json:"duration"`
}

// Report summarizes one reclamation pass.
type Report struct {
	Reason   string         `json:"reason"`
	Actions  []ActionResult `json:"actions"`
	Failed   int            `json:"failed"`
	Duration string         `json:"duration"`
}

// Reclaimer runs a fixed list of cleanup actions. A failing or panicking
// action never stops the ones after it.
type Reclaimer struct {
	actions []Action
	wg      sync.WaitGroup
}

// New returns a Reclaimer running actions in order.
func New(actions ...Action) *Reclaimer {
	return &Reclaimer{actions: actions}
}

// Trigger runs a pass on a background goroutine and returns immediately.
func (r *Reclaimer) Trigger(reason string) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.Reclaim(reason)
	}()
}

// Wait blocks until every pass started by Trigger has finished.
func (r *Reclaimer) Wait() {
	r.wg.Wait()
}

// Reclaim runs a pass synchronously.
func (r *Reclaimer) Reclaim(reason string) Report {
	start := time.Now()
	metrics.ReclaimRunsTotal.WithLabelValues(reason).Inc()

	report := Report{Reason: reason, Actions: make([]ActionResult, 0, len(r.actions))}
	for _, a := range r.actions {
		actionStart := time.Now()
		err := runAction(a, reason)
		res := ActionResult{Name: a.Name, Duration: time.Since(actionStart).String()}
		if err != nil {
			res.Error = err.Error()
			report.Failed++
			metrics.ReclaimActionErrors.WithLabelValues(a.Name).Inc()
			logging.Warn("Reclaim action %s failed (%s): %v", a.Name, reason, err)
		}
		report.Actions = append(report.Actions, res)
	}
	report.Duration = time.Since(start).String()

	logging.Debug("Reclaim pass (%s) finished in %s with %d failure(s)", reason, report.Duration, report.Failed)
	return report
}

func runAction(a Action, reason string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return a.Run(reason)
}

// PressureSource delivers memory-pressure notifications.
type PressureSource interface {
	Subscribe(h memory.PressureHandler) (unsubscribe func())
}

// Subscribe triggers a pass on every notification from src until the
// returned function is called.
func (r *Reclaimer) Subscribe(src PressureSource) (unsubscribe func()) {
	return src.Subscribe(r.Trigger)
}

// Purger drops cached data and reports how many entries it released.
type Purger interface {
	Purge() int
	PurgeExpired() int
}

// ReasonRunComplete is the reason passed when a pipeline run ends.
const ReasonRunComplete = "run_complete"

// EvictAction releases cached responses held by p. After an ordinary run
// only expired entries go; any other reason empties the cache.
func EvictAction(p Purger) Action {
	return Action{
		Name: "evict_responses",
		Run: func(reason string) error {
			var n int
			if reason == ReasonRunComplete {
				n = p.PurgeExpired()
			} else {
				n = p.Purge()
			}
			if n > 0 {
				logging.Debug("Evicted %d cached response(s)", n)
			}
			return nil
		},
	}
}

// SweepAction deletes the contents of dir, leaving entries for which skip
// returns true. skip may be nil.
func SweepAction(dir string, skip func(path string) bool) Action {
	return Action{
		Name: "sweep_scratch",
		Run: func(string) error {
			_, err := SweepDir(dir, skip)
			return err
		},
	}
}

// FreeOSMemoryAction forces a collection and returns freed heap to the OS.
func FreeOSMemoryAction() Action {
	return Action{
		Name: "free_os_memory",
		Run: func(string) error {
			debug.FreeOSMemory()
			return nil
		},
	}
}
