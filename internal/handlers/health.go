package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/nishit12/Importlargefile/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusStarting = "starting"
	statusDegraded = "degraded"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Ready   bool   `json:"ready"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`

	// Pipeline state
	RunsInFlight       int      `json:"runsInFlight"`
	RunsWaiting        int      `json:"runsWaiting"`
	MaxConcurrentRuns  int      `json:"maxConcurrentRuns"`
	CachedResults      int      `json:"cachedResults"`
	CachedBytes        int64    `json:"cachedBytes"`
	MemoryPressure     bool     `json:"memoryPressure"`
	TranscodingEnabled bool     `json:"transcodingEnabled"`
	ActiveTranscodes   []string `json:"activeTranscodes,omitempty"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`
}

// HealthCheck returns the health status of the service
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	ready := h.ready.Load()

	response := HealthResponse{
		Ready:              ready,
		Version:            startup.Version,
		Uptime:             time.Since(h.startTime).Round(time.Second).String(),
		RunsInFlight:       h.limiter.InUse(),
		RunsWaiting:        h.limiter.Waiting(),
		MaxConcurrentRuns:  h.limiter.Capacity(),
		TranscodingEnabled: h.transcodingEnabled,
		GoVersion:          runtime.Version(),
		NumCPU:             runtime.NumCPU(),
		NumGoroutine:       runtime.NumGoroutine(),
	}

	if h.results != nil {
		response.CachedResults = h.results.Len()
		response.CachedBytes = h.results.Bytes()
	}
	if h.transcodes != nil {
		response.ActiveTranscodes = h.transcodes.ActiveRunDirs()
	}
	if h.pressure != nil {
		response.MemoryPressure = h.pressure.UnderPressure()
	}

	switch {
	case !ready:
		response.Status = statusStarting
	case response.MemoryPressure:
		response.Status = statusDegraded
	default:
		response.Status = statusHealthy
	}

	w.Header().Set("Content-Type", "application/json")

	// Return 503 only if not ready at all
	if !ready {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	writeJSON(w, response)
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// For HEAD requests, only send headers (no body)
	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{
			"status": "alive",
		})
	}
}

// ReadinessCheck returns 200 only when the service is ready to accept traffic
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	if h.ready.Load() {
		writeJSONStatus(w, "ready")
		return
	}
	writeJSONStatusCode(w, "not_ready", http.StatusServiceUnavailable)
}
