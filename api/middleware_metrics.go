package api

import (
	"net/http"
	"time"
)

// MetricsMiddleware records every request outcome into the collector.
// /health and the metrics endpoint itself are skipped so probes and
// scrapers do not drown out real traffic.
func MetricsMiddleware(c *Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "/health" || path == "/api/v1/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			c.Record(r.Method, path, sw.status, time.Since(start))
		})
	}
}
