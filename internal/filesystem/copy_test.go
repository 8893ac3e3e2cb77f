package filesystem

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	content := bytes.Repeat([]byte("0123456789"), 100_000)
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := CopyFile(src, dst, fastRetryConfig())
	if err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}
	if n != int64(len(content)) {
		t.Errorf("CopyFile() = %d bytes, want %d", n, len(content))
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, content) {
		t.Error("copied content differs from source")
	}
}

func TestCopyFile_DestinationExists(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	os.WriteFile(src, []byte("new"), 0o644)
	os.WriteFile(dst, []byte("old"), 0o644)

	if _, err := CopyFile(src, dst, fastRetryConfig()); !os.IsExist(err) {
		t.Errorf("CopyFile() error = %v, want os.IsExist", err)
	}

	got, _ := os.ReadFile(dst)
	if string(got) != "old" {
		t.Errorf("existing destination was modified: %q", got)
	}
}

func TestCopyFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "dst.bin")

	if _, err := CopyFile(filepath.Join(dir, "missing"), dst, fastRetryConfig()); !os.IsNotExist(err) {
		t.Errorf("CopyFile() error = %v, want os.IsNotExist", err)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("destination must not be created when the source is missing")
	}
}

func TestDirSize(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a"), make([]byte, 100), 0o644)
	os.MkdirAll(filepath.Join(dir, "sub"), 0o755)
	os.WriteFile(filepath.Join(dir, "sub", "b"), make([]byte, 50), 0o644)

	files, size, err := DirSize(dir)
	if err != nil {
		t.Fatalf("DirSize() error = %v", err)
	}
	if files != 2 || size != 150 {
		t.Errorf("DirSize() = (%d, %d), want (2, 150)", files, size)
	}

	files, size, err = DirSize(filepath.Join(dir, "missing"))
	if err != nil || files != 0 || size != 0 {
		t.Errorf("DirSize(missing) = (%d, %d, %v), want (0, 0, nil)", files, size, err)
	}
}
