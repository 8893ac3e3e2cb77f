package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/nishit12/Importlargefile/internal/filesystem"
	"github.com/nishit12/Importlargefile/internal/handlers"
	"github.com/nishit12/Importlargefile/internal/ingest"
	"github.com/nishit12/Importlargefile/internal/logging"
	"github.com/nishit12/Importlargefile/internal/memory"
	"github.com/nishit12/Importlargefile/internal/metrics"
	"github.com/nishit12/Importlargefile/internal/middleware"
	"github.com/nishit12/Importlargefile/internal/reclaim"
	"github.com/nishit12/Importlargefile/internal/startup"
	"github.com/nishit12/Importlargefile/internal/transcoder"
	"github.com/nishit12/Importlargefile/internal/workers"
)

func main() {
	startTime := time.Now()

	// Memory limit must be in place before anything large is allocated
	memResult := memory.ConfigureFromEnv()
	startup.LogMemoryConfig(memResult)

	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	filesystem.SetDefaultVolumeResolver(filesystem.NewVolumeResolver(map[string]string{
		"persistent": config.PersistentDir,
		"scratch":    config.ScratchDir,
	}))

	buildInfo := startup.GetBuildInfo()
	metrics.SetAppInfo(buildInfo.Version, buildInfo.Commit, buildInfo.GoVersion)
	metrics.InitializeMetrics()

	// Encoder and adapter
	startup.LogTranscoderInit(config.TranscodingEnabled, config.FFmpegPath)
	ffmpeg := transcoder.NewFFmpeg(config.FFmpegPath, config.FFprobePath)
	reader := ingest.ChunkedReader{ChunkSize: config.ChunkSize, MaxBytes: config.MaxBufferBytes}
	adapter := transcoder.NewAdapter(ffmpeg, transcoder.Options{
		ScratchDir:   config.ScratchDir,
		TargetWidth:  config.TranscodeMaxWidth,
		TargetHeight: config.TranscodeMaxHeight,
		Quality:      config.TranscodeQuality,
		Timeout:      config.TranscodeTimeout,
		ReadOutput:   reader.ReadBytes,
	})

	// Reclaimer
	results := handlers.NewResultCache(config.ResultCacheTTL, config.ResultCacheMaxBytes)
	reclaimer := reclaim.New(
		reclaim.EvictAction(results),
		reclaim.SweepAction(config.ScratchDir, adapter.IsActive),
		reclaim.FreeOSMemoryAction(),
	)

	monitorConfig := memory.DefaultConfig()
	monitorConfig.CheckInterval = config.MemoryCheckInterval
	monitor := memory.NewMonitor(monitorConfig)
	unsubscribe := reclaimer.Subscribe(monitor)
	monitor.Start()

	// Pipeline
	var trans ingest.Transcoder
	if config.TranscodingEnabled {
		trans = adapter
	}
	service := ingest.NewService(ingest.Config{
		PersistentDir:  config.PersistentDir,
		ChunkSize:      config.ChunkSize,
		MaxBufferBytes: config.MaxBufferBytes,
	}, trans, reclaimer)

	// Directory metrics
	collector := metrics.NewCollector(metrics.StatsProviderFunc(func() metrics.Stats {
		return metrics.Stats{
			Persistent: dirStats(config.PersistentDir),
			Scratch:    dirStats(config.ScratchDir),
		}
	}), time.Minute)
	collector.Start()

	// HTTP
	h := handlers.New(handlers.Options{
		Processor:          service,
		Reclaimer:          reclaimer,
		Results:            results,
		Limiter:            workers.NewLimiter(workers.Runs(config.MaxConcurrentRuns)),
		Pressure:           monitor,
		Transcodes:         adapter,
		TranscodingEnabled: config.TranscodingEnabled,
	})

	router := setupRouter(h)
	startup.LogHTTPRoutes(router, config.LogHealthChecks)

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler := middleware.Compression(middleware.DefaultCompressionConfig())(
		middleware.Logger(loggingConfig)(router),
	)

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      0, // transcodes can take minutes
		IdleTimeout:       60 * time.Second,
	}

	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsSrv = startMetricsServer(config.MetricsPort, h)
	}

	go handleSignals(monitor, &shutdown{
		srv:         srv,
		metricsSrv:  metricsSrv,
		handlers:    h,
		ffmpeg:      ffmpeg,
		collector:   collector,
		monitor:     monitor,
		unsubscribe: unsubscribe,
		reclaimer:   reclaimer,
	})

	h.SetReady(true)
	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		startup.LogFatal("Server error: %v", err)
	}

	<-shutdownDone
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))

	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/livez", h.LivenessCheck).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods(http.MethodGet)
	r.HandleFunc("/version", h.GetVersion).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/process", h.ProcessFile).Methods(http.MethodPost)
	api.HandleFunc("/results/{fileName}", h.GetResult).Methods(http.MethodGet)
	api.HandleFunc("/reclaim", h.Reclaim).Methods(http.MethodPost)

	return r
}

func startMetricsServer(port string, h *handlers.Handlers) *http.Server {
	mr := http.NewServeMux()
	mr.Handle("/metrics", h.MetricsHandler())
	mr.HandleFunc("/health", h.LivenessCheck)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Metrics server error: %v", err)
		}
	}()
	return srv
}

func dirStats(path string) metrics.DirStats {
	files, size, err := filesystem.DirSize(path)
	if err != nil {
		logging.Debug("Could not size %s: %v", path, err)
	}
	return metrics.DirStats{Files: files, Bytes: size}
}

// shutdownDone is closed once every shutdown step has run.
var shutdownDone = make(chan struct{})

type shutdown struct {
	srv         *http.Server
	metricsSrv  *http.Server
	handlers    *handlers.Handlers
	ffmpeg      *transcoder.FFmpeg
	collector   *metrics.Collector
	monitor     *memory.Monitor
	unsubscribe func()
	reclaimer   *reclaim.Reclaimer
}

// handleSignals turns SIGUSR1 into a memory-pressure notification and
// SIGINT/SIGTERM into a graceful shutdown.
func handleSignals(monitor *memory.Monitor, s *shutdown) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR1)

	for sig := range sigChan {
		if sig == syscall.SIGUSR1 {
			monitor.Notify("memory_pressure")
			continue
		}
		signal.Stop(sigChan)
		s.run(sig.String())
		return
	}
}

func (s *shutdown) run(sigName string) {
	defer close(shutdownDone)

	startup.LogShutdownInitiated(sigName)
	s.handlers.SetReady(false)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// In-flight runs finish before the server reports closed.
	startup.LogShutdownStep("Shutting down HTTP server")
	if err := s.srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownStep("Stopping encoder processes")
	s.ffmpeg.Cleanup()
	startup.LogShutdownStepComplete("Encoder processes stopped")

	startup.LogShutdownStep("Stopping memory monitor")
	s.unsubscribe()
	s.monitor.Stop()
	startup.LogShutdownStepComplete("Memory monitor stopped")

	startup.LogShutdownStep("Running final reclamation")
	report := s.reclaimer.Reclaim("shutdown")
	s.reclaimer.Wait()
	startup.LogShutdownStepComplete("Reclamation finished (" + report.Duration + ")")

	s.collector.Stop()

	if s.metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := s.metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	startup.LogShutdownComplete()
}
