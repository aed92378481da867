package middleware

import (
	"net/http"
	"strconv"
	"time"

	"campus-hub/agora/internal/metrics"

	"github.com/go-chi/chi/v5"
)

// MetricsMiddleware records request counts and latency per route pattern
func MetricsMiddleware(reg *metrics.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			start := time.Now()
			next.ServeHTTP(rec, r)
			duration := time.Since(start)

			endpoint := chi.RouteContext(r.Context()).RoutePattern()
			if endpoint == "" {
				endpoint = r.URL.Path
			}

			reg.HTTPRequestsTotal.WithLabelValues(endpoint, r.Method, strconv.Itoa(rec.status)).Inc()
			reg.HTTPRequestDuration.WithLabelValues(endpoint, r.Method).Observe(duration.Seconds())
		})
	}
}
