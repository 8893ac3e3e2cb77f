// Package handlers is the HTTP bridge in front of the ingestion pipeline.
//
// It exposes:
//   - POST /api/process, which runs one pipeline and returns the result
//   - GET /api/results/{fileName}, raw bytes of a recently produced result
//   - POST /api/reclaim, a synchronous cleanup pass
//   - health, liveness, readiness and version probes
package handlers
