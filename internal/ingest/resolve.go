package ingest

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/nishit12/Importlargefile/internal/filesystem"
)

const fileScheme = "file://"

// ResolvePath turns a host-supplied path into a filesystem path and checks
// that a regular file exists there. One "file://" prefix is stripped, then
// the remainder is percent-decoded; an undecodable remainder is used as is.
func ResolvePath(raw string) (string, error) {
	p := strings.TrimPrefix(raw, fileScheme)
	if decoded, err := url.PathUnescape(p); err == nil {
		p = decoded
	}
	p = filepath.Clean(p)

	info, err := filesystem.StatWithRetry(p, filesystem.DefaultRetryConfig())
	switch {
	case err == nil && info.Mode().IsRegular():
		return p, nil
	case err == nil, os.IsNotExist(err):
		return "", newError(ErrNotFound, "File does not exist at path: "+p, nil)
	default:
		return "", newError(ErrIO, "stat "+p, err)
	}
}
