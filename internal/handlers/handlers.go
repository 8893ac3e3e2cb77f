package handlers

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/nishit12/Importlargefile/internal/ingest"
	"github.com/nishit12/Importlargefile/internal/reclaim"
	"github.com/nishit12/Importlargefile/internal/workers"
)

// Processor runs one ingestion pipeline.
type Processor interface {
	Process(ctx context.Context, req ingest.FileRequest) (ingest.Result, error)
}

// Reclaimer runs a synchronous cleanup pass.
type Reclaimer interface {
	Reclaim(reason string) reclaim.Report
}

// PressureReporter reports whether memory is above the critical watermark.
type PressureReporter interface {
	UnderPressure() bool
}

// TranscodeReporter lists the scratch directories of encoder jobs in
// progress.
type TranscodeReporter interface {
	ActiveRunDirs() []string
}

// Handlers holds the dependencies shared by the HTTP endpoints.
type Handlers struct {
	processor          Processor
	reclaimer          Reclaimer
	results            *ResultCache
	limiter            *workers.Limiter
	pressure           PressureReporter
	transcodes         TranscodeReporter
	transcodingEnabled bool

	startTime time.Time
	ready     atomic.Bool
}

// Options configures New.
type Options struct {
	Processor          Processor
	Reclaimer          Reclaimer
	Results            *ResultCache
	Limiter            *workers.Limiter
	Pressure           PressureReporter
	Transcodes         TranscodeReporter
	TranscodingEnabled bool
}

func New(opts Options) *Handlers {
	limiter := opts.Limiter
	if limiter == nil {
		limiter = workers.NewLimiter(workers.Runs(0))
	}

	return &Handlers{
		processor:          opts.Processor,
		reclaimer:          opts.Reclaimer,
		results:            opts.Results,
		limiter:            limiter,
		pressure:           opts.Pressure,
		transcodes:         opts.Transcodes,
		transcodingEnabled: opts.TranscodingEnabled,
		startTime:          time.Now(),
	}
}

// SetReady marks the service as ready (or not) to accept pipeline runs.
func (h *Handlers) SetReady(ready bool) {
	h.ready.Store(ready)
}
