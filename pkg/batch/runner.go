// Package batch drives the per-sample, per-chunk retrieval loop: it
// partitions the gene universe, gates every remote call on the rate
// limiter, merges chunk responses, and writes one result file per
// sample. Samples whose output file already exists are skipped, which
// makes an interrupted multi-sample job resumable by re-running it
// against the same output directory.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/phenbench/amelie-bench/pkg/amelie"
	"github.com/phenbench/amelie-bench/pkg/chunk"
	"github.com/phenbench/amelie-bench/pkg/ratelimit"
	"github.com/phenbench/amelie-bench/pkg/result"
)

// Prometheus metrics for batch progress.
var (
	amelieSamplesProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "amelie_samples_processed_total",
		Help: "Samples fully processed and written",
	})

	amelieSamplesSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "amelie_samples_skipped_total",
		Help: "Samples skipped because their output file already exists",
	})

	amelieChunksFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "amelie_chunks_fetched_total",
		Help: "Gene chunks fetched from the AMELIE API",
	})
)

// Fetcher issues one remote call for a gene chunk and a phenotype set.
// *amelie.Client implements it.
type Fetcher interface {
	FetchEvidence(ctx context.Context, genes, phenotypes []string) ([]amelie.GeneEvidence, error)
}

// Sample is one benchmarking unit: an ID and its ordered phenotype
// identifiers.
type Sample struct {
	ID         string
	Phenotypes []string
}

// Config holds runner configuration.
type Config struct {
	// OutDir receives one <sampleID>.tsv per sample and doubles as the
	// resume state: presence of a file skips its sample.
	OutDir string

	// ChunkSize bounds the gene list of a single request.
	ChunkSize int

	// MinInterval is the minimum time between successive requests.
	MinInterval time.Duration
}

// DefaultConfig returns the runner configuration matching the AMELIE
// API limits: 1000 genes per request, one request per second.
func DefaultConfig(outDir string) Config {
	return Config{
		OutDir:      outDir,
		ChunkSize:   chunk.DefaultSize,
		MinInterval: 1 * time.Second,
	}
}

// Runner executes a batch job. Execution is strictly sequential: one
// request in flight, samples in input order, chunks in universe order.
type Runner struct {
	fetcher Fetcher
	rate    *ratelimit.State
	config  Config
	logger  zerolog.Logger
}

// NewRunner creates a Runner. rate may be nil, in which case a fresh
// wall-clock state is used.
func NewRunner(fetcher Fetcher, rate *ratelimit.State, cfg Config) (*Runner, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	if rate == nil {
		rate = ratelimit.NewState(nil)
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = chunk.DefaultSize
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = 1 * time.Second
	}

	info, err := os.Stat(cfg.OutDir)
	if err != nil {
		return nil, fmt.Errorf("output directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("output path %q is not a directory", cfg.OutDir)
	}

	return &Runner{
		fetcher: fetcher,
		rate:    rate,
		config:  cfg,
		logger:  log.With().Str("component", "batch-runner").Logger(),
	}, nil
}

// Run processes samples in order against the shared gene universe.
// Any transport, protocol, decode, or write failure aborts the whole
// job: the in-progress sample's partial results are discarded and no
// further samples are attempted.
func (r *Runner) Run(ctx context.Context, samples []Sample, universe []string) error {
	chunks := chunk.Split(universe, r.config.ChunkSize)

	r.logger.Info().
		Int("samples", len(samples)).
		Int("genes", len(universe)).
		Int("chunks", len(chunks)).
		Msg("Starting batch job")

	for _, sample := range samples {
		outFile := filepath.Join(r.config.OutDir, sample.ID+".tsv")

		// Resume contract: existence only, content is never validated.
		if _, err := os.Stat(outFile); err == nil {
			r.logger.Info().Str("sample", sample.ID).Msg("skipping: output exists")
			amelieSamplesSkippedTotal.Inc()
			continue
		}

		r.logger.Info().Str("sample", sample.ID).Msg("processing")

		res := result.New()
		for i, genes := range chunks {
			r.logger.Info().
				Str("sample", sample.ID).
				Int("chunk", i+1).
				Int("total_chunks", len(chunks)).
				Msg("Fetching chunk")

			r.rate.Wait(r.config.MinInterval)

			evidence, err := r.fetcher.FetchEvidence(ctx, genes, sample.Phenotypes)
			if err != nil {
				return fmt.Errorf("sample %s, chunk %d/%d: %w", sample.ID, i+1, len(chunks), err)
			}
			r.rate.Mark()
			amelieChunksFetchedTotal.Inc()

			res.Merge(evidence)
		}

		if err := res.WriteFile(outFile); err != nil {
			return fmt.Errorf("sample %s: %w", sample.ID, err)
		}
		amelieSamplesProcessedTotal.Inc()

		r.logger.Info().
			Str("sample", sample.ID).
			Int("genes_with_evidence", len(res)).
			Str("file", outFile).
			Msg("Sample written")
	}

	r.logger.Info().Msg("Batch job complete")
	return nil
}
