package metrics

import (
	"strconv"
	"sync"
	"time"
)

type upstreamStats struct {
	calls           int
	errors          int
	cacheHits       int
	lastCallLatency time.Duration
}

type feedStats struct {
	refreshes int
	errors    int
}

// Recorder captures lightweight, in-memory metrics about upstream calls and
// dashboard refreshes, mirroring them to OpenTelemetry instruments when configured.
type Recorder struct {
	mu          sync.Mutex
	upstreams   map[string]*upstreamStats
	feeds       map[string]*feedStats
	droppedRows map[string]int
	requests    map[string]int
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		upstreams:   make(map[string]*upstreamStats),
		feeds:       make(map[string]*feedStats),
		droppedRows: make(map[string]int),
		requests:    make(map[string]int),
		otel:        otel,
	}
}

// RecordUpstreamAttempt increments counters for an outbound call and stores the last observed latency.
func (r *Recorder) RecordUpstreamAttempt(upstream string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureUpstream(upstream)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordUpstreamAttempt(upstream, duration, err)
	}
}

// RecordCacheHit tracks a proxy response served from the cache instead of the upstream.
func (r *Recorder) RecordCacheHit(upstream string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.ensureUpstream(upstream).cacheHits++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCacheHit(upstream)
	}
}

// RecordFeedRefresh tracks one dashboard feed load (scoreboard or standings).
func (r *Recorder) RecordFeedRefresh(feed string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.feeds[feed]
	if !ok {
		stats = &feedStats{}
		r.feeds[feed] = stats
	}
	stats.refreshes++
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFeedRefresh(feed, duration, err)
	}
}

// RecordDroppedRows counts standings rows or tables the parser discarded, by reason.
func (r *Recorder) RecordDroppedRows(reason string, count int) {
	if r == nil || count <= 0 {
		return
	}

	r.mu.Lock()
	r.droppedRows[reason] += count
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordDroppedRows(reason, count)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.requests[requestKey(method, path, status)]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordHTTPRequest(method, path, status, duration)
	}
}

// HTTPRequests returns how many requests were served for a method, route and status.
func (r *Recorder) HTTPRequests(method, path string, status int) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[requestKey(method, path, status)]
}

func requestKey(method, path string, status int) string {
	return method + " " + path + " " + strconv.Itoa(status)
}

// Snapshot returns a copy of the current stats for an upstream.
type Snapshot struct {
	Calls           int
	Errors          int
	CacheHits       int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(upstream string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.upstreams[upstream]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		CacheHits:       stats.cacheHits,
		LastCallLatency: stats.lastCallLatency,
	}
}

// UpstreamCalls returns the total attempts recorded for an upstream.
func (r *Recorder) UpstreamCalls(upstream string) int {
	return r.Snapshot(upstream).Calls
}

// UpstreamErrors returns the total failed attempts recorded for an upstream.
func (r *Recorder) UpstreamErrors(upstream string) int {
	return r.Snapshot(upstream).Errors
}

// CacheHits returns how many responses for an upstream were served from cache.
func (r *Recorder) CacheHits(upstream string) int {
	return r.Snapshot(upstream).CacheHits
}

// FeedRefreshes returns the refresh and error counts for a dashboard feed.
func (r *Recorder) FeedRefreshes(feed string) (refreshes, errors int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.feeds[feed]; ok {
		return stats.refreshes, stats.errors
	}
	return 0, 0
}

// DroppedRows returns the number of discarded rows recorded for a reason.
func (r *Recorder) DroppedRows(reason string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.droppedRows[reason]
}

// caller holds r.mu
func (r *Recorder) ensureUpstream(upstream string) *upstreamStats {
	stats, ok := r.upstreams[upstream]
	if !ok {
		stats = &upstreamStats{}
		r.upstreams[upstream] = stats
	}
	return stats
}
