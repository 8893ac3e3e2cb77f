package ingest

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nishit12/Importlargefile/internal/logging"
	"github.com/nishit12/Importlargefile/internal/mediatypes"
	"github.com/nishit12/Importlargefile/internal/memory"
	"github.com/nishit12/Importlargefile/internal/metrics"
)

// Transcoder encodes the file at inputPath for a declared video type.
type Transcoder interface {
	Transcode(ctx context.Context, inputPath, declaredType string) ([]byte, error)
}

// Reclaimer is told when a run has finished.
type Reclaimer interface {
	Trigger(reason string)
}

// Config configures a Service.
type Config struct {
	PersistentDir  string
	ChunkSize      int
	MaxBufferBytes int64

	// Clock stamps result names. Defaults to time.Now.
	Clock func() time.Time
}

// Service runs the ingestion pipeline.
type Service struct {
	relocator  *Relocator
	reader     ChunkedReader
	transcoder Transcoder
	reclaimer  Reclaimer
	now        func() time.Time
}

// NewService creates a Service. reclaimer may be nil.
func NewService(cfg Config, transcoder Transcoder, reclaimer Reclaimer) *Service {
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &Service{
		relocator:  NewRelocator(cfg.PersistentDir),
		reader:     ChunkedReader{ChunkSize: cfg.ChunkSize, MaxBytes: cfg.MaxBufferBytes},
		transcoder: transcoder,
		reclaimer:  reclaimer,
		now:        now,
	}
}

// Process runs one request through resolve, relocate, read, the transcode
// gate and assembly. The reclaimer is triggered once the run ends, whatever
// the outcome. Validation failures return before any filesystem access.
func (s *Service) Process(ctx context.Context, req FileRequest) (res Result, err error) {
	if err := req.Validate(); err != nil {
		metrics.PipelineRunsTotal.WithLabelValues(Outcome(err)).Inc()
		return Result{}, err
	}

	declaredType := req.Type()
	log := logging.With("run", uuid.NewString()[:8])
	path := "passthrough"
	if mediatypes.IsVideo(declaredType) {
		path = "transcode"
	}

	start := time.Now()
	metrics.PipelineRunsInFlight.Inc()
	memory.LogUsage(log, "before processing")

	defer func() {
		metrics.PipelineRunsInFlight.Dec()
		metrics.PipelineRunsTotal.WithLabelValues(Outcome(err)).Inc()
		metrics.PipelineRunDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())

		if err != nil {
			log.Warn("Run failed after %v: %v", time.Since(start).Round(time.Millisecond), err)
		} else {
			log.Info("Run complete in %v: %s (%d bytes)", time.Since(start).Round(time.Millisecond), res.FileName, res.Size)
		}
		memory.LogUsage(log, "after processing")

		if s.reclaimer != nil {
			s.reclaimer.Trigger("run_complete")
		}
	}()

	log.Info("Processing %s as %s", req.RawPath, declaredType)

	stageStart := time.Now()
	resolved, err := ResolvePath(req.RawPath)
	observeStage("resolve", stageStart)
	if err != nil {
		return Result{}, err
	}

	stageStart = time.Now()
	persistent, err := s.relocator.Relocate(resolved)
	observeStage("relocate", stageStart)
	if err != nil {
		return Result{}, err
	}
	log.Debug("Relocated %s to %s", resolved, persistent)

	stageStart = time.Now()
	buf, err := s.read(persistent)
	observeStage("read", stageStart)
	if err != nil {
		return Result{}, err
	}

	stageStart = time.Now()
	data, err := s.gate(ctx, buf, persistent, declaredType)
	if path == "transcode" {
		observeStage("transcode", stageStart)
	}
	if err != nil {
		return Result{}, err
	}

	stageStart = time.Now()
	res = Assemble(data, declaredType, req.NamePrefix, s.now())
	observeStage("assemble", stageStart)
	metrics.PipelineResultBytes.Observe(float64(res.Size))

	return res, nil
}

// read runs the chunked reader on its own goroutine and waits for it.
func (s *Service) read(path string) (*bytes.Buffer, error) {
	type readResult struct {
		buf *bytes.Buffer
		err error
	}
	done := make(chan readResult, 1)
	go func() {
		buf, err := s.reader.Read(path)
		done <- readResult{buf, err}
	}()
	r := <-done
	return r.buf, r.err
}

// gate passes non-video bytes through unchanged and replaces video bytes
// with the transcoder's output.
func (s *Service) gate(ctx context.Context, buf *bytes.Buffer, persistentPath, declaredType string) ([]byte, error) {
	if !mediatypes.IsVideo(declaredType) {
		return buf.Bytes(), nil
	}

	release(buf)

	if s.transcoder == nil {
		return nil, newError(ErrTranscode, "no transcoder configured", nil)
	}

	out, err := s.transcoder.Transcode(ctx, persistentPath, declaredType)
	if err != nil {
		if errors.Is(err, ErrTranscode) {
			return nil, err
		}
		return nil, newError(ErrTranscode, "transcode "+declaredType, err)
	}
	return out, nil
}

func observeStage(stage string, start time.Time) {
	metrics.PipelineStageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
