// amelie-bench retrieves gene–phenotype association evidence from the
// AMELIE API for a set of benchmark samples and writes one result file
// per sample. Interrupted jobs are resumed by re-running against the
// same output directory.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/phenbench/amelie-bench/internal/config"
	"github.com/phenbench/amelie-bench/internal/vocab"
	"github.com/phenbench/amelie-bench/pkg/amelie"
	"github.com/phenbench/amelie-bench/pkg/batch"
	"github.com/phenbench/amelie-bench/pkg/logging"
	"github.com/phenbench/amelie-bench/pkg/metrics"
	"github.com/phenbench/amelie-bench/pkg/ratelimit"
)

var (
	flagConfig        string
	flagChunkSize     int
	flagInterval      float64
	flagMetricsListen string
	flagLogLevel      string
	flagPretty        bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "amelie-bench <hpo.obo> <hgnc.txt> <benchmark.tsv> <outdir>",
		Short: "Batch-retrieve AMELIE gene–phenotype evidence for benchmark samples",
		Long: `amelie-bench queries the AMELIE scoring API once per gene chunk per
benchmark sample and writes one sorted <sampleID>.tsv per sample into
the output directory. Samples whose output file already exists are
skipped, so an interrupted job is resumed by re-running it.`,
		Args:          cobra.ExactArgs(4),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "", "YAML config file")
	cmd.Flags().IntVar(&flagChunkSize, "chunk-size", 0, "genes per request (default from config)")
	cmd.Flags().Float64Var(&flagInterval, "interval", 0, "minimum seconds between requests (default from config)")
	cmd.Flags().StringVar(&flagMetricsListen, "metrics-listen", "", "expose Prometheus /metrics on this address")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "", "debug, info, warn, or error")
	cmd.Flags().BoolVar(&flagPretty, "pretty", false, "human-readable console logs")

	return cmd
}

// validateArgs applies the same checks as the original runner: file
// extensions, file existence, and that the output path is a directory.
func validateArgs(hpo, hgnc, benchmark, outDir string) error {
	checks := []struct {
		path string
		ext  string
		what string
	}{
		{hpo, ".obo", "HPO ontology"},
		{hgnc, ".txt", "HGNC set"},
		{benchmark, ".tsv", "benchmark set"},
	}
	for _, c := range checks {
		if !strings.HasSuffix(c.path, c.ext) {
			return fmt.Errorf("%s %q is not a %s file", c.what, c.path, c.ext)
		}
		info, err := os.Stat(c.path)
		if err != nil {
			return fmt.Errorf("%s: %w", c.what, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%s %q is a directory, not a file", c.what, c.path)
		}
	}

	info, err := os.Stat(outDir)
	if err != nil {
		return fmt.Errorf("output directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path %q is not a directory", outDir)
	}
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	hpoPath, hgncPath, benchmarkPath, outDir := args[0], args[1], args[2], args[3]

	if err := validateArgs(hpoPath, hgncPath, benchmarkPath, outDir); err != nil {
		return err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("chunk-size") {
		cfg.ChunkSize = flagChunkSize
	}
	if cmd.Flags().Changed("interval") {
		cfg.MinIntervalSeconds = flagInterval
	}
	if cmd.Flags().Changed("metrics-listen") {
		cfg.MetricsListen = flagMetricsListen
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: flagPretty,
		Output: os.Stderr,
	})

	if cfg.MetricsListen != "" {
		metrics.Serve(cfg.MetricsListen, func(err error) {
			log.Warn().Err(err).Msg("Metrics listener failed")
		})
		log.Info().Str("addr", cfg.MetricsListen).Msg("Serving /metrics")
	}

	phenotypes, err := vocab.ReadPhenotypes(hpoPath)
	if err != nil {
		return err
	}
	genes, err := vocab.ReadGenes(hgncPath)
	if err != nil {
		return err
	}
	rawSamples, err := vocab.ReadBenchmark(benchmarkPath)
	if err != nil {
		return err
	}
	samples, err := vocab.Translate(rawSamples, phenotypes)
	if err != nil {
		return err
	}

	log.Info().
		Int("phenotype_terms", len(phenotypes)).
		Int("genes", len(genes)).
		Int("samples", len(samples)).
		Msg("Vocabularies loaded")

	client, err := amelie.New(amelie.Config{
		BaseURL:            cfg.APIURL,
		ConnectTimeout:     cfg.ConnectTimeout(),
		RequestTimeout:     cfg.RequestTimeout(),
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	})
	if err != nil {
		return err
	}

	runner, err := batch.NewRunner(client, ratelimit.NewState(nil), batch.Config{
		OutDir:      outDir,
		ChunkSize:   cfg.ChunkSize,
		MinInterval: cfg.MinInterval(),
	})
	if err != nil {
		return err
	}

	return runner.Run(cmd.Context(), samples, genes)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("Job aborted")
		os.Exit(1)
	}
}
