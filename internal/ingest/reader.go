package ingest

import (
	"bytes"
	"fmt"
	"io"

	"github.com/nishit12/Importlargefile/internal/filesystem"
	"github.com/nishit12/Importlargefile/internal/logging"
	"github.com/nishit12/Importlargefile/internal/metrics"
)

// DefaultChunkSize is the read size used when none is configured.
const DefaultChunkSize = 256 * 1024

// ChunkedReader loads a file into memory one fixed-size chunk at a time.
type ChunkedReader struct {
	// ChunkSize is the size of each read. Zero selects DefaultChunkSize.
	ChunkSize int

	// MaxBytes caps the accumulated buffer. Zero means no cap.
	MaxBytes int64
}

// ReadChunked reads the whole file at path in chunkSize reads.
func ReadChunked(path string, chunkSize int) (*bytes.Buffer, error) {
	return ChunkedReader{ChunkSize: chunkSize}.Read(path)
}

// Read reads the whole file at path. The file is closed before Read returns.
// On error the partial buffer is discarded.
func (r ChunkedReader) Read(path string) (buf *bytes.Buffer, err error) {
	size := r.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}

	f, err := filesystem.OpenWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil {
		return nil, newError(ErrIO, "open "+path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logging.Warn("failed to close %s: %v", path, cerr)
		}
	}()

	defer func() {
		if rec := recover(); rec != nil {
			if rec != bytes.ErrTooLarge {
				panic(rec)
			}
			buf = nil
			err = newError(ErrMemoryAllocation, "read "+path, bytes.ErrTooLarge)
		}
	}()

	buf = new(bytes.Buffer)
	chunk := make([]byte, size)
	var chunks int

	for {
		n, rerr := f.Read(chunk)
		if n > 0 {
			if r.MaxBytes > 0 && int64(buf.Len())+int64(n) > r.MaxBytes {
				return nil, newError(ErrMemoryAllocation,
					fmt.Sprintf("read %s: buffer limit of %d bytes exceeded", path, r.MaxBytes), nil)
			}
			buf.Write(chunk[:n])
			chunks++
		}
		if rerr == io.EOF || (n == 0 && rerr == nil) {
			break
		}
		if rerr != nil {
			return nil, newError(ErrIO, "read "+path, rerr)
		}
	}

	metrics.PipelineBytesRead.Add(float64(buf.Len()))
	metrics.PipelineChunksRead.Add(float64(chunks))
	return buf, nil
}

// ReadBytes reads the whole file at path and returns its contents.
func (r ChunkedReader) ReadBytes(path string) ([]byte, error) {
	buf, err := r.Read(path)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// release drops buf's backing array so it can be collected.
func release(buf *bytes.Buffer) {
	if buf != nil {
		*buf = bytes.Buffer{}
	}
}
