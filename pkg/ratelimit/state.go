// Package ratelimit enforces a minimum interval between successive
// AMELIE requests. The service tolerates roughly one request per
// second; exceeding that risks the whole batch being blocked, so every
// remote call is gated on the time elapsed since the previous one.
package ratelimit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for request gating.
var (
	amelieRateWaitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "amelie_rate_waits_total",
		Help: "Total number of requests delayed by the rate limiter",
	})

	amelieRateWaitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "amelie_rate_wait_seconds",
		Help:    "Time spent waiting for the minimum request interval",
		Buckets: []float64{0.1, 0.25, 0.5, 0.75, 1},
	})
)

// State holds the timestamp of the last completed request. One State
// spans the whole batch job: the interval is enforced across sample
// and chunk boundaries alike. It is owned by a single goroutine and
// performs no locking.
type State struct {
	clock Clock
	last  time.Time
}

// NewState creates a State on the given clock (SystemClock when nil).
// last starts as the zero time, so the elapsed interval computed for
// the first gate of a job is always large enough to pass without
// blocking.
func NewState(clock Clock) *State {
	if clock == nil {
		clock = systemClock{}
	}
	return &State{clock: clock}
}

// WaitUntilElapsed blocks on clock until elapsed reaches minInterval.
// Returns immediately when the interval has already passed.
func WaitUntilElapsed(clock Clock, minInterval, elapsed time.Duration) {
	if elapsed >= minInterval {
		return
	}
	wait := minInterval - elapsed
	amelieRateWaitsTotal.Inc()
	amelieRateWaitSeconds.Observe(wait.Seconds())
	clock.Sleep(wait)
}

// Wait gates the caller on the interval since the last marked request.
func (s *State) Wait(minInterval time.Duration) {
	WaitUntilElapsed(s.clock, minInterval, s.clock.Now().Sub(s.last))
}

// Mark records the current time as the completion of a request. Called
// after every remote call regardless of chunk or sample boundaries.
func (s *State) Mark() {
	s.last = s.clock.Now()
}

// Elapsed returns the time since the last marked request.
func (s *State) Elapsed() time.Duration {
	return s.clock.Now().Sub(s.last)
}
