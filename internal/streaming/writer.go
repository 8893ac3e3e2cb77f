package streaming

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/nishit12/Importlargefile/internal/logging"
)

// Sentinel errors for streaming operations.
var (
	// ErrWriteTimeout indicates that a chunk could not be written within
	// WriteTimeout, usually because the client stopped reading.
	ErrWriteTimeout = errors.New("write timeout exceeded")

	// ErrClientGone indicates that the request context ended before the
	// body was fully written.
	ErrClientGone = errors.New("client disconnected")
)

// Config controls how a body is written.
type Config struct {
	// WriteTimeout bounds each chunk write (0 = no deadline).
	WriteTimeout time.Duration
	// ChunkSize is the size of each write; the response is flushed between
	// chunks (0 = one write).
	ChunkSize int
	// OnProgress, if set, is called after every chunk.
	OnProgress func(written int64, elapsed time.Duration)
}

// DefaultConfig writes 256 KiB chunks with a 30 second deadline each.
func DefaultConfig() Config {
	return Config{
		WriteTimeout: 30 * time.Second,
		ChunkSize:    256 * 1024,
	}
}

// WriteChunked writes data to w in ChunkSize pieces, flushing after each and
// extending the connection write deadline before each. Headers must already
// be set. It returns the number of bytes written.
func WriteChunked(ctx context.Context, w http.ResponseWriter, data []byte, config Config) (int64, error) {
	rc := http.NewResponseController(w)
	start := time.Now()
	chunk := config.ChunkSize
	if chunk <= 0 {
		chunk = len(data)
	}

	var written int64
	for len(data) > 0 {
		if err := ctx.Err(); err != nil {
			return written, fmt.Errorf("%w after %d bytes: %w", ErrClientGone, written, err)
		}

		n := min(chunk, len(data))
		if config.WriteTimeout > 0 {
			// Recorders and some wrappers cannot set deadlines; write without one.
			if err := rc.SetWriteDeadline(time.Now().Add(config.WriteTimeout)); err != nil && !errors.Is(err, http.ErrNotSupported) {
				return written, err
			}
		}

		m, err := w.Write(data[:n])
		written += int64(m)
		if err != nil {
			return written, writeError(err, written)
		}
		data = data[n:]

		if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			return written, writeError(err, written)
		}
		if config.OnProgress != nil {
			config.OnProgress(written, time.Since(start))
		}
	}

	if config.WriteTimeout > 0 {
		_ = rc.SetWriteDeadline(time.Time{})
	}

	logging.Debug("Stream completed: %d bytes in %v", written, time.Since(start))
	return written, nil
}

func writeError(err error, written int64) error {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return fmt.Errorf("%w after %d bytes: %w", ErrWriteTimeout, written, err)
	}
	return err
}
