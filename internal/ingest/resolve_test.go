package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "clip.mp4")
	spaced := filepath.Join(dir, "my clip.mp4")
	literal := filepath.Join(dir, "odd%zz.jpg")
	for _, p := range []string{plain, spaced, literal} {
		if err := os.WriteFile(p, []byte("data"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain path", plain, plain},
		{"file scheme", "file://" + plain, plain},
		{"percent encoded", "file://" + strings.ReplaceAll(spaced, " ", "%20"), spaced},
		{"percent encoded without scheme", strings.ReplaceAll(spaced, " ", "%20"), spaced},
		{"undecodable falls back", "file://" + literal, literal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePath(tt.raw)
			if err != nil {
				t.Fatalf("ResolvePath(%q) failed: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ResolvePath(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestResolvePathNotFound(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		raw      string
		resolved string
	}{
		{"missing file", "file://" + filepath.Join(dir, "gone%20away.mov"), filepath.Join(dir, "gone away.mov")},
		{"directory", dir, dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolvePath(tt.raw)
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("Expected ErrNotFound, got %v", err)
			}
			if errors.Is(err, ErrTranscode) {
				t.Error("NotFound must not be classified as a transcode error")
			}
			want := "File does not exist at path: " + tt.resolved
			if err.Error() != want {
				t.Errorf("Expected message %q, got %q", want, err.Error())
			}
		})
	}
}

func TestResolvePathStripsOnePrefix(t *testing.T) {
	_, err := ResolvePath("file://file:///nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "file:") {
		t.Errorf("Expected only one scheme prefix to be stripped, got %q", err.Error())
	}
}
