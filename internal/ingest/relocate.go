package ingest

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/nishit12/Importlargefile/internal/filesystem"
	"github.com/nishit12/Importlargefile/internal/logging"
	"github.com/nishit12/Importlargefile/internal/metrics"
)

// Relocator copies source files into a durable directory owned by the
// service. Copies are keyed by base name; a newer copy replaces an older one.
type Relocator struct {
	dir   string
	retry filesystem.RetryConfig
}

// NewRelocator returns a Relocator writing into dir.
func NewRelocator(dir string) *Relocator {
	return &Relocator{dir: dir, retry: filesystem.DefaultRetryConfig()}
}

// Dir returns the durable directory.
func (r *Relocator) Dir() string {
	return r.dir
}

// Relocate copies src to <dir>/<base name of src> and returns the new path.
// An existing file at the destination is replaced.
func (r *Relocator) Relocate(src string) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", newError(ErrIO, "create persistent directory", err)
	}

	dst := filepath.Join(r.dir, filepath.Base(src))

	if same, err := sameFile(src, dst); err == nil && same {
		return dst, nil
	}

	// The copy goes to a private temporary file and is renamed over dst,
	// which replaces any earlier copy in one step. Concurrent runs for the
	// same base name never see dst missing; the last rename wins.
	tmp := filepath.Join(r.dir, "."+filepath.Base(src)+"."+uuid.NewString()+".tmp")
	n, err := filesystem.CopyFile(src, tmp, r.retry)
	if err != nil {
		return "", newError(ErrIO, "relocate "+filepath.Base(src), err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil && !os.IsNotExist(rmErr) {
			logging.Warn("failed to remove temporary copy %s: %v", tmp, rmErr)
		}
		return "", newError(ErrIO, "relocate "+filepath.Base(src), err)
	}

	metrics.RelocatedBytesTotal.Add(float64(n))
	return dst, nil
}

func sameFile(a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	return os.SameFile(ai, bi), nil
}
