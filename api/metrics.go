package api

import (
	"regexp"
	"sync"
	"time"
)

// RouteStats aggregates request outcomes for one method + route pair
type RouteStats struct {
	Method      string        `json:"method"`
	Path        string        `json:"path"`
	Count       int64         `json:"count"`
	ErrorCount  int64         `json:"errorCount"`
	TotalTime   time.Duration `json:"totalTime"`
	AvgTime     time.Duration `json:"avgTime"`
	MinTime     time.Duration `json:"minTime"`
	MaxTime     time.Duration `json:"maxTime"`
	LastRequest time.Time     `json:"lastRequest"`
}

type sample struct {
	method   string
	path     string
	status   int
	duration time.Duration
	at       time.Time
}

// Collector aggregates per-route request metrics off the request path.
// Recording never blocks: samples go through a buffered channel and are
// dropped silently when it is full. Missing a sample is acceptable;
// slowing down a request is not.
type Collector struct {
	mu            sync.RWMutex
	routes        map[string]*RouteStats
	totalRequests int64
	totalErrors   int64
	since         time.Time

	samples chan sample
	stop    chan struct{}
}

// NewCollector starts a collector and its background aggregation goroutine
func NewCollector() *Collector {
	c := &Collector{
		routes:  make(map[string]*RouteStats),
		since:   time.Now().UTC(),
		samples: make(chan sample, 1024),
		stop:    make(chan struct{}),
	}
	go c.run()
	return c
}

// Record queues one request outcome. Non-blocking.
func (c *Collector) Record(method, path string, status int, duration time.Duration) {
	select {
	case c.samples <- sample{method: method, path: path, status: status, duration: duration, at: time.Now().UTC()}:
	default:
		// channel full, drop
	}
}

// Close stops the aggregation goroutine
func (c *Collector) Close() {
	close(c.stop)
}

func (c *Collector) run() {
	for {
		select {
		case s := <-c.samples:
			c.apply(s)
		case <-c.stop:
			return
		}
	}
}

func (c *Collector) apply(s sample) {
	key := s.method + " " + normalizeRoutePath(s.path)

	c.mu.Lock()
	defer c.mu.Unlock()

	stats, ok := c.routes[key]
	if !ok {
		stats = &RouteStats{Method: s.method, Path: normalizeRoutePath(s.path), MinTime: s.duration}
		c.routes[key] = stats
	}

	stats.Count++
	stats.TotalTime += s.duration
	stats.AvgTime = stats.TotalTime / time.Duration(stats.Count)
	stats.LastRequest = s.at
	if s.duration < stats.MinTime {
		stats.MinTime = s.duration
	}
	if s.duration > stats.MaxTime {
		stats.MaxTime = s.duration
	}
	if s.status >= 400 {
		stats.ErrorCount++
		c.totalErrors++
	}
	c.totalRequests++
}

// RouteStats returns a copy of the aggregated per-route stats
func (c *Collector) RouteStats() map[string]RouteStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]RouteStats, len(c.routes))
	for k, v := range c.routes {
		out[k] = *v
	}
	return out
}

// Summary returns service-level totals
func (c *Collector) Summary() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var errorRate float64
	if c.totalRequests > 0 {
		errorRate = float64(c.totalErrors) / float64(c.totalRequests)
	}
	return map[string]interface{}{
		"totalRequests": c.totalRequests,
		"totalErrors":   c.totalErrors,
		"errorRate":     errorRate,
		"routeCount":    len(c.routes),
		"since":         c.since,
	}
}

var uuidSegment = regexp.MustCompile(`/[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)

// normalizeRoutePath collapses session identifiers so every
// /api/v1/session/<uuid>/... request aggregates under one route
func normalizeRoutePath(path string) string {
	return uuidSegment.ReplaceAllString(path, "/{id}")
}
