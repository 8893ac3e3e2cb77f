package transcoder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nishit12/Importlargefile/internal/logging"
	"github.com/nishit12/Importlargefile/internal/metrics"
)

// ErrTranscode is returned when the encoder fails or produces no usable
// output. Callers never receive the untranscoded input in its place.
var ErrTranscode = errors.New("transcode failed")

// RunDirPrefix prefixes the per-job scratch directories created by Adapter.
const RunDirPrefix = "run-"

// Job describes one encoder invocation.
type Job struct {
	InputPath    string
	TargetWidth  int
	TargetHeight int
	Preset       Preset
	OutputPath   string
}

// Encoder produces an encoded file at job.OutputPath. It returns exactly once
// per job: nil when the output is complete, otherwise the failure reason.
type Encoder interface {
	Encode(ctx context.Context, job Job) error
}

// Options configure an Adapter.
type Options struct {
	// ScratchDir holds per-job run directories.
	ScratchDir string

	// TargetWidth and TargetHeight bound the output resolution.
	TargetWidth  int
	TargetHeight int

	Quality Quality

	// Timeout bounds a single job. Zero waits for the encoder indefinitely.
	Timeout time.Duration

	// ReadOutput loads the finished output file. Defaults to os.ReadFile.
	ReadOutput func(path string) ([]byte, error)
}

// Adapter submits jobs to an Encoder and hands back the encoded bytes.
type Adapter struct {
	encoder Encoder
	opts    Options

	mu     sync.Mutex
	active map[string]struct{}
}

// NewAdapter creates an Adapter. Zero target dimensions default to 1280x720
// and an empty quality to QualityLow.
func NewAdapter(encoder Encoder, opts Options) *Adapter {
	if opts.TargetWidth <= 0 {
		opts.TargetWidth = 1280
	}
	if opts.TargetHeight <= 0 {
		opts.TargetHeight = 720
	}
	if opts.Quality == "" {
		opts.Quality = QualityLow
	}
	if opts.ReadOutput == nil {
		opts.ReadOutput = os.ReadFile
	}
	return &Adapter{
		encoder: encoder,
		opts:    opts,
		active:  make(map[string]struct{}),
	}
}

// Transcode encodes the file at inputPath for declaredType and returns the
// encoded bytes. The job's scratch output is removed before returning.
func (a *Adapter) Transcode(ctx context.Context, inputPath, declaredType string) ([]byte, error) {
	preset, err := PresetFor(declaredType, a.opts.Quality)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTranscode, err)
	}

	runDir := filepath.Join(a.opts.ScratchDir, RunDirPrefix+uuid.NewString())
	a.register(runDir)
	defer func() {
		if err := os.RemoveAll(runDir); err != nil {
			logging.Warn("failed to remove scratch directory %s: %v", runDir, err)
		}
		a.unregister(runDir)
	}()

	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create scratch directory: %w", ErrTranscode, err)
	}

	job := Job{
		InputPath:    inputPath,
		TargetWidth:  a.opts.TargetWidth,
		TargetHeight: a.opts.TargetHeight,
		Preset:       preset,
		OutputPath:   filepath.Join(runDir, uuid.NewString()+"."+preset.Extension),
	}

	start := time.Now()
	metrics.TranscoderJobsInProgress.Inc()
	err = a.await(ctx, job)
	metrics.TranscoderJobsInProgress.Dec()
	metrics.TranscoderJobDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.TranscoderJobsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %w", ErrTranscode, err)
	}

	info, statErr := os.Stat(job.OutputPath)
	if statErr != nil || info.Size() == 0 {
		metrics.TranscoderJobsTotal.WithLabelValues("empty_output").Inc()
		return nil, fmt.Errorf("%w: encoder produced no output", ErrTranscode)
	}

	data, err := a.opts.ReadOutput(job.OutputPath)
	if err != nil {
		metrics.TranscoderJobsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: read output: %w", ErrTranscode, err)
	}

	metrics.TranscoderJobsTotal.WithLabelValues("success").Inc()
	if in, err := os.Stat(inputPath); err == nil && in.Size() > 0 {
		metrics.TranscoderCompressionRatio.Observe(float64(len(data)) / float64(in.Size()))
	}

	logging.Debug("Transcoded %s to %s %dx%d (%s) in %v: %d bytes",
		inputPath, preset.Container, job.TargetWidth, job.TargetHeight, preset.Quality,
		time.Since(start).Round(time.Millisecond), len(data))

	return data, nil
}

// await runs the encoder on its own goroutine and blocks on its single
// completion signal. When ctx ends first it still waits for the encoder to
// return, so the run directory stays registered until the process is gone.
func (a *Adapter) await(ctx context.Context, job Job) error {
	if a.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.Timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("encoder panic: %v", r)
			}
		}()
		done <- a.encoder.Encode(ctx, job)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		<-done
		return ctx.Err()
	}
}

func (a *Adapter) register(dir string) {
	a.mu.Lock()
	a.active[dir] = struct{}{}
	a.mu.Unlock()
}

func (a *Adapter) unregister(dir string) {
	a.mu.Lock()
	delete(a.active, dir)
	a.mu.Unlock()
}

// IsActive reports whether path is the scratch directory of a job still in
// progress.
func (a *Adapter) IsActive(path string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.active[filepath.Clean(path)]
	return ok
}

// ActiveRunDirs returns the scratch directories of jobs in progress.
func (a *Adapter) ActiveRunDirs() []string {
	a.mu.Lock()
	dirs := make([]string, 0, len(a.active))
	for d := range a.active {
		dirs = append(dirs, d)
	}
	a.mu.Unlock()
	sort.Strings(dirs)
	return dirs
}
