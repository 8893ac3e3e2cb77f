package ingest

import (
	"bytes"
	"crypto/rand"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeRandom(t *testing.T, dir, name string, size int) (string, []byte) {
	t.Helper()
	data := make([]byte, size)
	if _, err := rand.Read(data); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path, data
}

func TestChunkedReaderRead(t *testing.T) {
	tests := []struct {
		name      string
		size      int
		chunkSize int
	}{
		{"empty file", 0, 16},
		{"smaller than chunk", 10, 16},
		{"exact multiple", 64, 16},
		{"not a multiple", 100, 16},
		{"single byte chunks", 33, 1},
		{"default chunk size", DefaultChunkSize*2 + 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, want := writeRandom(t, t.TempDir(), "f.bin", tt.size)

			buf, err := ChunkedReader{ChunkSize: tt.chunkSize}.Read(path)
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if !bytes.Equal(buf.Bytes(), want) {
				t.Errorf("Read returned %d bytes, want %d identical bytes", buf.Len(), len(want))
			}
		})
	}
}

func TestReadChunked(t *testing.T) {
	path, want := writeRandom(t, t.TempDir(), "f.bin", 1000)

	buf, err := ReadChunked(path, 64)
	if err != nil {
		t.Fatalf("ReadChunked failed: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Error("ReadChunked content mismatch")
	}
}

func TestChunkedReaderMaxBytes(t *testing.T) {
	path, want := writeRandom(t, t.TempDir(), "f.bin", 1000)

	buf, err := ChunkedReader{ChunkSize: 100, MaxBytes: 999}.Read(path)
	if !errors.Is(err, ErrMemoryAllocation) {
		t.Fatalf("Expected ErrMemoryAllocation, got %v", err)
	}
	if buf != nil {
		t.Error("Expected partial buffer to be discarded")
	}

	data, err := ChunkedReader{ChunkSize: 100, MaxBytes: 1000}.ReadBytes(path)
	if err != nil {
		t.Fatalf("Expected read at exactly the limit to succeed: %v", err)
	}
	if !bytes.Equal(data, want) {
		t.Error("ReadBytes content mismatch")
	}
}

func TestChunkedReaderMissingFile(t *testing.T) {
	_, err := ChunkedReader{}.Read(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ErrIO) {
		t.Fatalf("Expected ErrIO, got %v", err)
	}
}

func TestChunkedReaderDirectory(t *testing.T) {
	_, err := ChunkedReader{}.Read(t.TempDir())
	if !errors.Is(err, ErrIO) {
		t.Fatalf("Expected ErrIO reading a directory, got %v", err)
	}
}

func TestRelease(t *testing.T) {
	buf := bytes.NewBuffer(make([]byte, 1024))
	release(buf)
	if buf.Len() != 0 || buf.Cap() != 0 {
		t.Errorf("Expected released buffer, got len=%d cap=%d", buf.Len(), buf.Cap())
	}
	release(nil)
}
