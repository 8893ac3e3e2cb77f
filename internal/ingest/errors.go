package ingest

import (
	"errors"

	"github.com/nishit12/Importlargefile/internal/transcoder"
)

// Error kinds. Every error returned by Service.Process matches exactly one of
// these with errors.Is.
var (
	// ErrValidation reports a request with a missing field. It is returned
	// before any filesystem access.
	ErrValidation = errors.New("File path, type, and name are required")

	// ErrNotFound reports that the resolved path is not a regular file.
	ErrNotFound = errors.New("file not found")

	// ErrIO covers copy, read and delete failures.
	ErrIO = errors.New("i/o error")

	// ErrTranscode reports an encoder failure or an empty encoder output.
	ErrTranscode = transcoder.ErrTranscode

	// ErrMemoryAllocation reports that a buffer could not grow to hold the
	// file, either because the runtime refused or MaxBufferBytes was reached.
	ErrMemoryAllocation = errors.New("memory allocation failed")
)

// rejectPrefix prefixes every rejection other than validation.
const rejectPrefix = "Error processing media file: "

// kindError attaches a kind to a message and an optional cause.
type kindError struct {
	kind  error
	msg   string
	cause error
}

func newError(kind error, msg string, cause error) error {
	return &kindError{kind: kind, msg: msg, cause: cause}
}

func (e *kindError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *kindError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

// RejectMessage renders err as the single human-readable string handed back
// to callers.
func RejectMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrValidation) {
		return ErrValidation.Error()
	}
	return rejectPrefix + err.Error()
}

// Outcome classifies err into a metrics label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrMemoryAllocation):
		return "memory"
	case errors.Is(err, ErrTranscode):
		return "transcode"
	case errors.Is(err, ErrIO):
		return "io"
	default:
		return "error"
	}
}
