package ingest

import (
	"strings"

	"github.com/nishit12/Importlargefile/internal/mediatypes"
)

// FileRequest is one ingestion request as received from the host.
type FileRequest struct {
	RawPath      string `json:"filePath"`
	DeclaredType string `json:"type"`
	NamePrefix   string `json:"name"`
}

// Validate reports ErrValidation if any field is empty or blank.
func (r FileRequest) Validate() error {
	if strings.TrimSpace(r.RawPath) == "" ||
		strings.TrimSpace(r.DeclaredType) == "" ||
		strings.TrimSpace(r.NamePrefix) == "" {
		return ErrValidation
	}
	return nil
}

// Type returns the normalized declared type.
func (r FileRequest) Type() string {
	return mediatypes.Normalize(r.DeclaredType)
}
