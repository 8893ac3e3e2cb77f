// Package startup handles configuration loading and startup/shutdown logging
// for the ingestion service.
//
// # Configuration
//
// All configuration is loaded from environment variables via [LoadConfig]:
//
//   - DATA_DIR: Base directory (default: /data)
//   - PERSISTENT_DIR: Durable copies of ingested files (default: DATA_DIR/persistent)
//   - SCRATCH_DIR: Transcoder scratch space, swept by the reclaimer (default: DATA_DIR/scratch).
//     Must not contain, or lie inside, PERSISTENT_DIR.
//   - PORT: HTTP server port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable metrics server (default: true)
//   - CHUNK_SIZE: Read size of the chunked reader in bytes (default: 262144)
//   - MAX_BUFFER_BYTES: Largest file held in memory, 0 for no cap (default: 0)
//   - MAX_CONCURRENT_RUNS: Concurrent pipeline runs, 0 for auto (default: 0)
//   - RESULT_CACHE_TTL: How long results stay fetchable by name (default: 5m)
//   - RESULT_CACHE_MAX_BYTES: Total bytes held for fetch by name, oldest evicted first (default: 256 MiB)
//   - TRANSCODE_MAX_WIDTH / TRANSCODE_MAX_HEIGHT: Output box (default: 1280x720)
//   - TRANSCODE_PRESET: low, medium or high (default: low)
//   - TRANSCODE_TIMEOUT: Per-job encoder timeout, 0 for none (default: 0)
//   - FFMPEG_PATH / FFPROBE_PATH: Encoder binaries (default: from PATH)
//   - MEMORY_CHECK_INTERVAL: Heap sampling interval (default: 5s)
//   - LOG_LEVEL, LOG_FORMAT, LOG_HEALTH_CHECKS: Logging
//
// GOMEMLIMIT, MEMORY_LIMIT and MEMORY_RATIO are handled by the memory
// package; [LogMemoryConfig] reports the result.
//
// The persistent directory is required and must be writable. The scratch
// directory is optional; when it cannot be created, transcoding is disabled
// and video requests fail.
//
// # Build Information
//
// Version, Commit and BuildTime are injected via ldflags and exposed through
// [GetBuildInfo].
package startup
