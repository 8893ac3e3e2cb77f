// Package main runs the ingestion service.
//
// ingestd accepts {filePath, type, name} requests over HTTP, copies the
// source file into a persistent directory, reads it back in fixed-size
// chunks and returns its bytes. Video types are transcoded with FFmpeg
// into a scratch directory first; everything else passes through unchanged.
//
// # Lifecycle
//
//  1. Memory limit from GOMEMLIMIT or MEMORY_LIMIT/MEMORY_RATIO
//  2. Configuration from environment variables, directory checks
//  3. FFmpeg adapter, result cache, reclaimer and memory monitor
//  4. Main HTTP server and, when enabled, the metrics server
//  5. Graceful shutdown on SIGINT/SIGTERM
//
// After every run, and whenever the memory monitor reports pressure, the
// reclaimer evicts cached results, sweeps finished scratch run directories
// and returns freed heap to the OS. Sending SIGUSR1 forces a pressure
// notification.
//
// # Environment Variables
//
//   - DATA_DIR: base directory (default /data)
//   - PERSISTENT_DIR: durable copies of source files (default DATA_DIR/persistent)
//   - SCRATCH_DIR: encoder output (default DATA_DIR/scratch)
//   - PORT, METRICS_PORT, METRICS_ENABLED
//   - CHUNK_SIZE, MAX_BUFFER_BYTES, MAX_CONCURRENT_RUNS
//   - RESULT_CACHE_TTL, RESULT_CACHE_MAX_BYTES
//   - TRANSCODE_MAX_WIDTH, TRANSCODE_MAX_HEIGHT, TRANSCODE_PRESET, TRANSCODE_TIMEOUT
//   - FFMPEG_PATH, FFPROBE_PATH
//   - MEMORY_CHECK_INTERVAL, GOMEMLIMIT, MEMORY_LIMIT, MEMORY_RATIO
//   - LOG_LEVEL, LOG_FORMAT, LOG_HEALTH_CHECKS
//
// # Graceful Shutdown
//
//  1. Mark the service not ready
//  2. Stop accepting requests and wait for in-flight runs (30s timeout)
//  3. Kill any remaining encoder processes
//  4. Unsubscribe from and stop the memory monitor
//  5. Run a final reclamation pass and wait for background passes
//  6. Stop the metrics collector and metrics server
package main
