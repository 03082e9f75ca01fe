// Package config loads runner configuration from an optional YAML
// file, layered over defaults that match the public AMELIE API limits.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// Config mirrors the YAML configuration file.
type Config struct {
	// APIURL is the AMELIE endpoint receiving the form POST.
	APIURL string `yaml:"api_url"`

	// ChunkSize bounds the gene list of a single request.
	ChunkSize int `yaml:"chunk_size"`

	// MinIntervalSeconds is the minimum time between requests.
	MinIntervalSeconds float64 `yaml:"min_interval_seconds"`

	// ConnectTimeoutSeconds bounds connection establishment.
	ConnectTimeoutSeconds float64 `yaml:"connect_timeout_seconds"`

	// RequestTimeoutSeconds bounds a whole request.
	RequestTimeoutSeconds float64 `yaml:"request_timeout_seconds"`

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`

	// MetricsListen enables the /metrics listener when non-empty,
	// e.g. "localhost:9090".
	MetricsListen string `yaml:"metrics_listen"`

	// LogLevel is debug, info, warn, or error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration matching the original runner:
// 1000-gene chunks, one request per second, 6s connect / 600s total.
func Default() Config {
	return Config{
		APIURL:                "https://amelie.stanford.edu/api/",
		ChunkSize:             1000,
		MinIntervalSeconds:    1,
		ConnectTimeoutSeconds: 6,
		RequestTimeoutSeconds: 600,
		LogLevel:              "info",
	}
}

// Load reads the YAML file at path over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the runner cannot work with.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url must not be empty")
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive (got %d)", c.ChunkSize)
	}
	if c.MinIntervalSeconds < 0 {
		return fmt.Errorf("min_interval_seconds must not be negative (got %g)", c.MinIntervalSeconds)
	}
	if c.ConnectTimeoutSeconds <= 0 {
		return fmt.Errorf("connect_timeout_seconds must be positive (got %g)", c.ConnectTimeoutSeconds)
	}
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("request_timeout_seconds must be positive (got %g)", c.RequestTimeoutSeconds)
	}
	return nil
}

// MinInterval returns the request interval as a duration.
func (c Config) MinInterval() time.Duration {
	return time.Duration(c.MinIntervalSeconds * float64(time.Second))
}

// ConnectTimeout returns the connect timeout as a duration.
func (c Config) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutSeconds * float64(time.Second))
}

// RequestTimeout returns the total request timeout as a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds * float64(time.Second))
}
