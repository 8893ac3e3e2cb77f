package metrics

// Label values used across the service. Kept here so that InitializeMetrics
// and the instrumented packages agree on spelling.
var (
	Outcomes       = []string{"success", "validation", "not_found", "io", "transcode", "memory", "error"}
	Stages         = []string{"resolve", "relocate", "read", "transcode", "assemble"}
	ReclaimReasons = []string{"run_complete", "memory_pressure", "manual", "shutdown"}
	Volumes        = []string{"source", "persistent", "scratch", "unknown"}
)

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, o := range Outcomes {
		PipelineRunsTotal.WithLabelValues(o)
	}

	for _, p := range []string{"passthrough", "transcode"} {
		PipelineRunDuration.WithLabelValues(p)
	}

	for _, s := range Stages {
		PipelineStageDuration.WithLabelValues(s)
	}

	for _, s := range []string{"success", "error", "empty_output"} {
		TranscoderJobsTotal.WithLabelValues(s)
	}

	for _, r := range ReclaimReasons {
		ReclaimRunsTotal.WithLabelValues(r)
	}

	for _, a := range []string{"evict_responses", "sweep_scratch", "free_os_memory"} {
		ReclaimActionErrors.WithLabelValues(a)
	}

	for _, r := range []string{"hit", "miss"} {
		ResultCacheLookups.WithLabelValues(r)
	}

	for _, op := range []string{"stat", "open"} {
		for _, vol := range Volumes {
			FilesystemRetryAttempts.WithLabelValues(op, vol)
			FilesystemRetrySuccess.WithLabelValues(op, vol)
			FilesystemRetryFailures.WithLabelValues(op, vol)
			FilesystemStaleErrors.WithLabelValues(op, vol)
			FilesystemRetryDuration.WithLabelValues(op, vol)
		}
	}

	for _, d := range []string{"persistent", "scratch"} {
		DirectoryBytes.WithLabelValues(d)
		DirectoryFiles.WithLabelValues(d)
	}
}
