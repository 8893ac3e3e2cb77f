// Package metrics provides Prometheus instrumentation for the ingestion service.
//
// All metrics are registered with the default registry through promauto and
// are prefixed with "ingest_".
//
// # Metric Categories
//
// ## HTTP Metrics
//
//   - HTTPRequestsTotal: Counter of total requests by method, path, and status
//   - HTTPRequestDuration: Histogram of request duration by method and path
//   - HTTPRequestsInFlight: Gauge of currently processing requests
//
// ## Pipeline Metrics
//
//   - PipelineRunsTotal: Counter of runs by outcome (success or error kind)
//   - PipelineRunDuration: Histogram of end-to-end duration (passthrough/transcode)
//   - PipelineStageDuration: Histogram of per-stage duration
//   - PipelineBytesRead, PipelineChunksRead: Chunked reader throughput
//   - PipelineResultBytes: Histogram of returned buffer sizes
//   - RelocatedBytesTotal: Bytes copied into the persistent directory
//
// ## Transcoder Metrics
//
//   - TranscoderJobsTotal, TranscoderJobDuration, TranscoderJobsInProgress
//   - TranscoderCompressionRatio: output/input size of completed jobs
//
// ## Reclaimer Metrics
//
//   - ReclaimRunsTotal: Passes by trigger (run_complete, memory_pressure, manual, shutdown)
//   - ReclaimActionErrors: Failed actions; never escalated to callers
//   - ReclaimFilesRemoved, ReclaimBytesFreed: Scratch sweep totals
//   - ResultCacheEntries, ResultCacheBytes, ResultCacheLookups
//
// ## Memory Metrics
//
//   - MemoryUsageRatio: Gauge of heap usage as ratio of limit (0.0-1.0)
//   - MemoryHeapBytes: Heap allocation at the last check
//   - MemoryUnderPressure: 1 while above the critical watermark
//   - MemoryPressureEvents: Counter of pressure notifications delivered
//
// ## Filesystem Metrics
//
//   - FilesystemRetry*: NFS stale-handle retry counters per operation and volume
//   - DirectoryBytes, DirectoryFiles: Sampled by [Collector]
package metrics
