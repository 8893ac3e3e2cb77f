package filesystem

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nishit12/Importlargefile/internal/logging"
)

// copyBufferSize is the io.CopyBuffer scratch size used by CopyFile.
const copyBufferSize = 256 * 1024

// CopyFile copies src to dst and returns the number of bytes written. dst
// must not exist. A partially written dst is removed on failure.
func CopyFile(src, dst string, config RetryConfig) (int64, error) {
	in, err := OpenWithRetry(src, config)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := in.Close(); err != nil {
			logging.Warn("failed to close %s: %v", src, err)
		}
	}()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, err
	}

	n, err := io.CopyBuffer(out, in, make([]byte, copyBufferSize))
	if err == nil {
		err = out.Sync()
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if rmErr := os.Remove(dst); rmErr != nil && !os.IsNotExist(rmErr) {
			logging.Warn("failed to remove partial copy %s: %v", dst, rmErr)
		}
		return n, fmt.Errorf("copy %s -> %s: %w", src, dst, err)
	}

	return n, nil
}

// DirSize walks path and returns the number of regular files and their
// total size. A missing directory counts as empty.
func DirSize(path string) (files int, size int64, err error) {
	err = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		files++
		size += info.Size()
		return nil
	})
	return files, size, err
}
