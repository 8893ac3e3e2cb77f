package metrics

import (
	"time"

	"github.com/nishit12/Importlargefile/internal/logging"
)

// StatsProvider interface for collecting stats
type StatsProvider interface {
	GetStats() Stats
}

// StatsProviderFunc adapts a plain function to StatsProvider.
type StatsProviderFunc func() Stats

// GetStats calls f.
func (f StatsProviderFunc) GetStats() Stats {
	return f()
}

// DirStats describes the contents of one managed directory.
type DirStats struct {
	Files int
	Bytes int64
}

// Stats holds the current statistics
type Stats struct {
	Persistent DirStats
	Scratch    DirStats
}

// Collector periodically collects and updates metrics
type Collector struct {
	statsProvider StatsProvider
	interval      time.Duration
	stopChan      chan struct{}
}

// NewCollector creates a new metrics collector
func NewCollector(provider StatsProvider, interval time.Duration) *Collector {
	return &Collector{
		statsProvider: provider,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the metrics collection loop
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the metrics collection
func (c *Collector) Stop() {
	close(c.stopChan)
}

func (c *Collector) collectLoop() {
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.statsProvider == nil {
		return
	}

	stats := c.statsProvider.GetStats()

	DirectoryFiles.WithLabelValues("persistent").Set(float64(stats.Persistent.Files))
	DirectoryBytes.WithLabelValues("persistent").Set(float64(stats.Persistent.Bytes))
	DirectoryFiles.WithLabelValues("scratch").Set(float64(stats.Scratch.Files))
	DirectoryBytes.WithLabelValues("scratch").Set(float64(stats.Scratch.Bytes))

	logging.Debug("Metrics collected: persistent=%d files/%d bytes, scratch=%d files/%d bytes",
		stats.Persistent.Files, stats.Persistent.Bytes, stats.Scratch.Files, stats.Scratch.Bytes)
}
