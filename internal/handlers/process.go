package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nishit12/Importlargefile/internal/ingest"
	"github.com/nishit12/Importlargefile/internal/logging"
)

// maxRequestBody caps the JSON request; the payload is three short strings.
const maxRequestBody = 64 * 1024

// ProcessFile runs the pipeline for one {filePath, type, name} request and
// returns the assembled result.
func (h *Handlers) ProcessFile(w http.ResponseWriter, r *http.Request) {
	var req ingest.FileRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		writeJSONError(w, ingest.RejectMessage(err), http.StatusBadRequest)
		return
	}

	if h.processor == nil {
		writeJSONError(w, "Service not ready", http.StatusServiceUnavailable)
		return
	}

	if err := h.limiter.Acquire(r.Context()); err != nil {
		writeJSONError(w, "Request cancelled while waiting for a free slot", http.StatusServiceUnavailable)
		return
	}
	defer h.limiter.Release()

	// Runs are not cancellable by callers.
	ctx := context.WithoutCancel(r.Context())

	result, err := h.processor.Process(ctx, req)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			logging.Error("Processing %s failed: %v", req.RawPath, err)
		} else {
			logging.Debug("Processing %s rejected: %v", req.RawPath, err)
		}
		writeJSONError(w, ingest.RejectMessage(err), status)
		return
	}

	if h.results != nil {
		h.results.Put(result.FileName, result.Type, result.Bytes)
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, result)
}

// statusFor maps a pipeline error kind to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ingest.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ingest.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ingest.ErrMemoryAllocation):
		return http.StatusInsufficientStorage
	case errors.Is(err, ingest.ErrTranscode):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
