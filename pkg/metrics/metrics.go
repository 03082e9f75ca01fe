// Package metrics provides the Prometheus registry and the optional
// /metrics listener for long batch runs. The metrics themselves are
// defined in their owning packages (amelie, ratelimit, batch) to
// maintain modularity and avoid circular dependencies.
//
// This package provides documentation and reference for all available
// metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by the runner.
// All metrics are automatically registered via promauto in their
// respective packages.
var Registry = prometheus.DefaultRegisterer

// Serve exposes /metrics on addr in a background goroutine. A full
// benchmark run at one request per second takes hours, so the listener
// is worth having; errors are reported through errFn rather than
// aborting the batch.
func Serve(addr string, errFn func(error)) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if errFn != nil {
				errFn(err)
			}
		}
	}()
}

// Metrics Documentation
//
// Request Metrics (pkg/amelie):
//   - amelie_requests_total{status} (Counter): Requests by HTTP status or transport_error
//   - amelie_request_duration_seconds (Histogram): Request duration
//   - amelie_errors_total{class} (Counter): Errors by class (transport, protocol)
//
// Rate Limit Metrics (pkg/ratelimit):
//   - amelie_rate_waits_total (Counter): Requests delayed by the interval gate
//   - amelie_rate_wait_seconds (Histogram): Time spent waiting at the gate
//
// Batch Metrics (pkg/batch):
//   - amelie_samples_processed_total (Counter): Samples fully written
//   - amelie_samples_skipped_total (Counter): Samples skipped on resume
//   - amelie_chunks_fetched_total (Counter): Gene chunks fetched
//
// Example Prometheus Queries:
//
//   # Effective request rate
//   rate(amelie_requests_total[5m])
//
//   # Share of requests that had to wait
//   rate(amelie_rate_waits_total[5m]) / rate(amelie_chunks_fetched_total[5m])
//
//   # P95 request latency
//   histogram_quantile(0.95, rate(amelie_request_duration_seconds_bucket[5m]))
