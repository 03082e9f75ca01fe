// Package amelie provides the HTTP client for the AMELIE
// gene–phenotype scoring API with typed response decoding and error
// classification.
package amelie

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for AMELIE API operations.
var (
	amelieRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "amelie_requests_total",
		Help: "Total AMELIE requests by status",
	}, []string{"status"})

	amelieRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "amelie_request_duration_seconds",
		Help:    "AMELIE request duration in seconds",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
	})

	amelieErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "amelie_errors_total",
		Help: "Total AMELIE request errors by class",
	}, []string{"class"})
)

// DefaultBaseURL is the public AMELIE API endpoint.
const DefaultBaseURL = "https://amelie.stanford.edu/api/"

// Client is the AMELIE API client.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the API endpoint receiving the form POST.
	BaseURL string

	// ConnectTimeout bounds connection establishment (incl. TLS).
	ConnectTimeout time.Duration

	// RequestTimeout bounds the whole request. Scoring a 1000-gene
	// chunk can take minutes, hence the large default.
	RequestTimeout time.Duration

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool

	// UserAgent is sent when non-empty.
	UserAgent string
}

// DefaultConfig returns the configuration matching AMELIE's documented
// limits: 6s connect, 600s total.
func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		ConnectTimeout: 6 * time.Second,
		RequestTimeout: 600 * time.Second,
	}
}

// New creates a new AMELIE client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 6 * time.Second
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 600 * time.Second
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: cfg.ConnectTimeout,
		}).DialContext,
		TLSHandshakeTimeout: cfg.ConnectTimeout,
	}
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.RequestTimeout,
		},
		config: cfg,
		logger: log.With().Str("component", "amelie-client").Logger(),
	}, nil
}

// FetchEvidence issues one form-encoded POST carrying a gene chunk and
// a phenotype list and decodes the response into typed per-gene
// evidence. Transport failures and non-2xx statuses return a
// *RequestError; malformed bodies return *ShapeError or
// *MalformedScoreError. No retries: every error is final.
func (c *Client) FetchEvidence(ctx context.Context, genes, phenotypes []string) ([]GeneEvidence, error) {
	form := url.Values{
		"genes":      {strings.Join(genes, ",")},
		"phenotypes": {strings.Join(phenotypes, ",")},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	c.logger.Debug().
		Int("genes", len(genes)).
		Int("phenotypes", len(phenotypes)).
		Msg("Executing AMELIE request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	amelieRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		c.logger.Error().Err(err).Msg("AMELIE request failed")
		amelieErrorsTotal.WithLabelValues(string(ErrorClassTransport)).Inc()
		amelieRequestsTotal.WithLabelValues("transport_error").Inc()
		return nil, &RequestError{
			Class:   ErrorClassTransport,
			Message: "request failed",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Msg("AMELIE request rejected")
		amelieErrorsTotal.WithLabelValues(string(ErrorClassProtocol)).Inc()
		amelieRequestsTotal.WithLabelValues(fmt.Sprintf("%d", resp.StatusCode)).Inc()
		return nil, &RequestError{
			Class:      ErrorClassProtocol,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	amelieRequestsTotal.WithLabelValues(fmt.Sprintf("%d", resp.StatusCode)).Inc()

	var result []GeneEvidence
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.Error().Err(err).Msg("AMELIE response decode failed")
		return nil, err
	}

	c.logger.Debug().
		Int("genes_returned", len(result)).
		Dur("duration", time.Since(start)).
		Msg("AMELIE request complete")

	return result, nil
}
