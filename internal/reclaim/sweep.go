package reclaim

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nishit12/Importlargefile/internal/filesystem"
	"github.com/nishit12/Importlargefile/internal/logging"
	"github.com/nishit12/Importlargefile/internal/metrics"
)

// SweepResult counts what a sweep removed.
type SweepResult struct {
	Removed    int
	Skipped    int
	BytesFreed int64
}

// SweepDir removes every entry in dir except those for which skip returns
// true. A missing dir is not an error. Entries that cannot be removed are
// logged and reported in the joined error; the sweep carries on.
func SweepDir(dir string, skip func(path string) bool) (SweepResult, error) {
	var result SweepResult

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, fmt.Errorf("failed to read scratch directory: %w", err)
	}

	var errs []error
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if skip != nil && skip(path) {
			result.Skipped++
			continue
		}

		var size int64
		if entry.IsDir() {
			_, size, _ = filesystem.DirSize(path)
		} else if info, err := entry.Info(); err == nil {
			size = info.Size()
		}

		if err := os.RemoveAll(path); err != nil {
			logging.Warn("failed to remove %s: %v", path, err)
			errs = append(errs, err)
			continue
		}

		result.Removed++
		result.BytesFreed += size
	}

	metrics.ReclaimFilesRemoved.Add(float64(result.Removed))
	metrics.ReclaimBytesFreed.Add(float64(result.BytesFreed))

	if result.Removed > 0 {
		logging.Info("Swept %s: removed %d entries, freed %d bytes", dir, result.Removed, result.BytesFreed)
	}

	return result, errors.Join(errs...)
}
