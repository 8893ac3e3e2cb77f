package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ingest_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ingest_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Pipeline metrics
var (
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_pipeline_runs_total",
			Help: "Total number of pipeline runs by outcome",
		},
		[]string{"outcome"}, // "success", "validation", "not_found", "io", "transcode", "memory", "error"
	)

	PipelineRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ingest_pipeline_run_duration_seconds",
			Help:    "End-to-end pipeline run duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"path"}, // "passthrough" or "transcode"
	)

	PipelineRunsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ingest_pipeline_runs_in_flight",
			Help: "Number of pipeline runs currently executing",
		},
	)

	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ingest_pipeline_stage_duration_seconds",
			Help:    "Duration of individual pipeline stages in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 120, 600},
		},
		[]string{"stage"}, // "resolve", "relocate", "read", "transcode", "assemble"
	)

	PipelineBytesRead = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_pipeline_bytes_read_total",
			Help: "Total bytes read by the chunked reader",
		},
	)

	PipelineChunksRead = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_pipeline_chunks_read_total",
			Help: "Total number of fixed-size chunks read",
		},
	)

	PipelineResultBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ingest_pipeline_result_bytes",
			Help:    "Size of returned result buffers in bytes",
			Buckets: prometheus.ExponentialBuckets(64*1024, 4, 10),
		},
	)

	RelocatedBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_relocated_bytes_total",
			Help: "Total bytes copied into the persistent directory",
		},
	)
)

// Transcoder metrics
var (
	TranscoderJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_transcoder_jobs_total",
			Help: "Total number of transcoding jobs",
		},
		[]string{"status"},
	)

	TranscoderJobDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ingest_transcoder_job_duration_seconds",
			Help:    "Transcoding job duration in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	TranscoderJobsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ingest_transcoder_jobs_in_progress",
			Help: "Number of transcoding jobs currently in progress",
		},
	)

	TranscoderCompressionRatio = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ingest_transcoder_compression_ratio",
			Help:    "Output size divided by input size for completed jobs",
			Buckets: []float64{0.05, 0.1, 0.2, 0.3, 0.5, 0.75, 1, 1.5, 2},
		},
	)
)

// Reclaimer metrics
var (
	ReclaimRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_reclaim_runs_total",
			Help: "Total number of memory reclamation passes by trigger",
		},
		[]string{"trigger"}, // "run_complete", "memory_pressure", "manual", "shutdown"
	)

	ReclaimActionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_reclaim_action_errors_total",
			Help: "Total number of failed reclamation actions",
		},
		[]string{"action"},
	)

	ReclaimFilesRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_reclaim_files_removed_total",
			Help: "Total number of scratch entries removed by sweeps",
		},
	)

	ReclaimBytesFreed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_reclaim_bytes_freed_total",
			Help: "Total bytes of scratch data removed by sweeps",
		},
	)

	ResultCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ingest_result_cache_entries",
			Help: "Number of results held in the response cache",
		},
	)

	ResultCacheBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ingest_result_cache_bytes",
			Help: "Bytes held in the response cache",
		},
	)

	ResultBytesStreamed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_result_bytes_streamed_total",
			Help: "Total result bytes written to clients by GET /api/results",
		},
	)

	ResultCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_result_cache_lookups_total",
			Help: "Response cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss"
	)
)

// Memory metrics
var (
	MemoryUsageRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ingest_memory_usage_ratio",
			Help: "Heap allocation as a ratio of the configured memory limit",
		},
	)

	MemoryHeapBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ingest_memory_heap_bytes",
			Help: "Heap bytes allocated at the last memory check",
		},
	)

	MemoryUnderPressure = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ingest_memory_under_pressure",
			Help: "Whether memory is above the critical watermark (1 = yes)",
		},
	)

	MemoryPressureEvents = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_memory_pressure_events_total",
			Help: "Total number of memory-pressure notifications delivered",
		},
	)
)

// Filesystem metrics
var (
	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_filesystem_retry_attempts_total",
			Help: "Retries performed after stale file handle errors",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_filesystem_retry_success_total",
			Help: "Operations that succeeded after at least one retry",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_filesystem_retry_failures_total",
			Help: "Operations that failed after exhausting retries",
		},
		[]string{"operation", "volume"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_filesystem_stale_errors_total",
			Help: "Stale file handle (ESTALE) errors observed",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ingest_filesystem_operation_duration_seconds",
			Help:    "Duration of retried filesystem operations including backoff",
			Buckets: []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"operation", "volume"},
	)

	DirectoryBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ingest_directory_bytes",
			Help: "Bytes currently stored in managed directories",
		},
		[]string{"dir"}, // "persistent", "scratch"
	)

	DirectoryFiles = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ingest_directory_files",
			Help: "Files currently stored in managed directories",
		},
		[]string{"dir"},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ingest_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
