package handlers

import (
	"net/http"
)

// Reclaim runs a cleanup pass synchronously and returns its report.
func (h *Handlers) Reclaim(w http.ResponseWriter, _ *http.Request) {
	if h.reclaimer == nil {
		writeJSONError(w, "Reclaimer not configured", http.StatusServiceUnavailable)
		return
	}

	report := h.reclaimer.Reclaim("manual")

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, report)
}
