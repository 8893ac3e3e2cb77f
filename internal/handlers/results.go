package handlers

import (
	"mime"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/nishit12/Importlargefile/internal/logging"
	"github.com/nishit12/Importlargefile/internal/mediatypes"
	"github.com/nishit12/Importlargefile/internal/memory"
	"github.com/nishit12/Importlargefile/internal/metrics"
	"github.com/nishit12/Importlargefile/internal/streaming"
)

type cachedResult struct {
	declaredType string
	data         []byte
	expires      time.Time
	seq          uint64
}

// ResultCache holds recently produced results so they can be fetched as raw
// bytes by file name. Entries expire after the TTL and the total size never
// exceeds maxBytes; the reclaimer empties it under memory pressure.
type ResultCache struct {
	ttl      time.Duration
	maxBytes int64
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]cachedResult
	bytes   int64
	seq     uint64
}

// NewResultCache returns a cache whose entries live for ttl and whose total
// size is bounded by maxBytes. A ttl <= 0 or maxBytes <= 0 disables caching.
func NewResultCache(ttl time.Duration, maxBytes int64) *ResultCache {
	return &ResultCache{
		ttl:      ttl,
		maxBytes: maxBytes,
		now:      time.Now,
		entries:  make(map[string]cachedResult),
	}
}

// Put stores data under fileName, replacing any earlier entry. The oldest
// entries are evicted until data fits; a result larger than the whole cap
// is not cached at all.
func (c *ResultCache) Put(fileName, declaredType string, data []byte) {
	if c.ttl <= 0 || c.maxBytes <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.remove(fileName)

	size := int64(len(data))
	if size > c.maxBytes {
		logging.Debug("Result %s (%s) exceeds cache cap %s, not cached",
			fileName, memory.FormatBytes(size), memory.FormatBytes(c.maxBytes))
		c.updateGauges()
		return
	}

	for c.bytes+size > c.maxBytes {
		c.remove(c.oldest())
	}

	c.seq++
	c.entries[fileName] = cachedResult{
		declaredType: declaredType,
		data:         data,
		expires:      c.now().Add(c.ttl),
		seq:          c.seq,
	}
	c.bytes += size
	c.updateGauges()
}

// caller holds mu
func (c *ResultCache) remove(fileName string) {
	if e, ok := c.entries[fileName]; ok {
		c.bytes -= int64(len(e.data))
		delete(c.entries, fileName)
	}
}

// caller holds mu; entries must be non-empty
func (c *ResultCache) oldest() string {
	var name string
	var lowest uint64
	for n, e := range c.entries {
		if name == "" || e.seq < lowest {
			name, lowest = n, e.seq
		}
	}
	return name
}

// Get returns the cached bytes and declared type for fileName.
func (c *ResultCache) Get(fileName string) (data []byte, declaredType string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, found := c.entries[fileName]
	if !found || !c.now().Before(e.expires) {
		metrics.ResultCacheLookups.WithLabelValues("miss").Inc()
		return nil, "", false
	}
	metrics.ResultCacheLookups.WithLabelValues("hit").Inc()
	return e.data, e.declaredType, true
}

// Purge drops every entry and returns how many were removed.
func (c *ResultCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]cachedResult)
	c.bytes = 0
	c.updateGauges()
	return n
}

// PurgeExpired drops entries past their TTL.
func (c *ResultCache) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for name, e := range c.entries {
		if !now.Before(e.expires) {
			c.remove(name)
			removed++
		}
	}
	c.updateGauges()
	return removed
}

// Bytes returns the total size of the cached results.
func (c *ResultCache) Bytes() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bytes
}

// Len returns the number of entries, expired or not.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// caller holds mu
func (c *ResultCache) updateGauges() {
	metrics.ResultCacheEntries.Set(float64(len(c.entries)))
	metrics.ResultCacheBytes.Set(float64(c.bytes))
}

// GetResult serves the raw bytes of a cached result.
func (h *Handlers) GetResult(w http.ResponseWriter, r *http.Request) {
	fileName := mux.Vars(r)["fileName"]
	if fileName == "" {
		writeJSONError(w, "File name is required", http.StatusBadRequest)
		return
	}

	if h.results == nil {
		writeJSONError(w, "Result not found", http.StatusNotFound)
		return
	}

	data, declaredType, ok := h.results.Get(fileName)
	if !ok {
		writeJSONError(w, "Result not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", mediatypes.GetMimeType(declaredType))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", contentDisposition(fileName))
	w.Header().Set("Cache-Control", "no-store")
	config := streaming.DefaultConfig()
	var reported int64
	config.OnProgress = func(written int64, _ time.Duration) {
		metrics.ResultBytesStreamed.Add(float64(written - reported))
		reported = written
	}
	if n, err := streaming.WriteChunked(r.Context(), w, data, config); err != nil {
		logging.Debug("Writing result %s stopped after %d of %d bytes: %v", fileName, n, len(data), err)
	}
}

func contentDisposition(fileName string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": fileName}); v != "" {
		return v
	}
	return "attachment"
}
