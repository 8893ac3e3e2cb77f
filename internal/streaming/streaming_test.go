package streaming

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.WriteTimeout != 30*time.Second {
		t.Errorf("Expected WriteTimeout=30s, got %v", config.WriteTimeout)
	}
	if config.ChunkSize != 256*1024 {
		t.Errorf("Expected ChunkSize=256KiB, got %d", config.ChunkSize)
	}
	if config.OnProgress != nil {
		t.Error("Expected OnProgress=nil")
	}
}

func TestWriteChunked(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789"), 10_000)

	tests := []struct {
		name       string
		chunkSize  int
		wantChunks int
	}{
		{"even split", 10_000, 10},
		{"remainder", 30_000, 4},
		{"single write", 0, 1},
		{"chunk larger than body", 1 << 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			chunks := 0

			n, err := WriteChunked(context.Background(), w, data, Config{
				WriteTimeout: time.Second,
				ChunkSize:    tt.chunkSize,
				OnProgress:   func(int64, time.Duration) { chunks++ },
			})
			if err != nil {
				t.Fatalf("WriteChunked failed: %v", err)
			}
			if n != int64(len(data)) {
				t.Errorf("Expected %d bytes written, got %d", len(data), n)
			}
			if !bytes.Equal(w.Body.Bytes(), data) {
				t.Error("Body does not match input")
			}
			if chunks != tt.wantChunks {
				t.Errorf("Expected %d chunks, got %d", tt.wantChunks, chunks)
			}
			if !w.Flushed {
				t.Error("Expected the recorder to be flushed")
			}
		})
	}
}

func TestWriteChunkedEmpty(t *testing.T) {
	w := httptest.NewRecorder()
	n, err := WriteChunked(context.Background(), w, nil, DefaultConfig())
	if err != nil || n != 0 {
		t.Errorf("Expected (0, nil), got (%d, %v)", n, err)
	}
}

func TestWriteChunkedCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := httptest.NewRecorder()
	data := make([]byte, 4096)

	n, err := WriteChunked(ctx, w, data, Config{
		ChunkSize:  1024,
		OnProgress: func(int64, time.Duration) { cancel() },
	})

	if !errors.Is(err, ErrClientGone) {
		t.Fatalf("Expected ErrClientGone, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected the context error to be wrapped, got %v", err)
	}
	if n != 1024 {
		t.Errorf("Expected to stop after one chunk, wrote %d", n)
	}
}

func TestWriteChunkedStalledClient(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping slow-client test in short mode")
	}

	data := make([]byte, 64<<20)
	result := make(chan error, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, err := WriteChunked(r.Context(), w, data, Config{
			WriteTimeout: 200 * time.Millisecond,
			ChunkSize:    256 * 1024,
		})
		result <- err
	}))
	defer srv.Close()

	conn, err := net.Dial("tcp", srv.Listener.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if _, err := io.WriteString(conn, "GET / HTTP/1.1\r\nHost: test\r\n\r\n"); err != nil {
		t.Fatal(err)
	}
	// Never read the response.

	select {
	case err := <-result:
		if !errors.Is(err, ErrWriteTimeout) {
			t.Errorf("Expected ErrWriteTimeout, got %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("WriteChunked did not give up on a stalled client")
	}
}
