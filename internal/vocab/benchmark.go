package vocab

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/phenbench/amelie-bench/pkg/batch"
)

// RawSample pairs a benchmark sample ID with its phenotype names as
// they appear in the benchmark file, before translation to HP ids.
type RawSample struct {
	ID         string
	Phenotypes []string
}

// ReadBenchmark parses the benchmark TSV: the first column is the
// sample ID and the fifth column holds one or more phenotype names
// separated by ';'. The header line is skipped. Sample order follows
// the file; a recurring sample ID keeps its first position but takes
// the latest phenotype list.
func ReadBenchmark(path string) ([]RawSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open benchmark file: %w", err)
	}
	defer f.Close()

	var samples []RawSample
	index := make(map[string]int)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			continue // header
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 5 {
			return nil, fmt.Errorf("benchmark line %d has %d columns, want at least 5", lineNo, len(fields))
		}

		id := strings.TrimSpace(fields[0])
		if id == "" {
			return nil, fmt.Errorf("benchmark line %d has an empty sample ID", lineNo)
		}

		var names []string
		for _, n := range strings.Split(fields[4], ";") {
			n = strings.TrimSpace(n)
			if n != "" {
				names = append(names, n)
			}
		}
		if len(names) == 0 {
			return nil, fmt.Errorf("benchmark line %d has no phenotypes for sample %s", lineNo, id)
		}

		if pos, dup := index[id]; dup {
			samples[pos].Phenotypes = names
			continue
		}
		index[id] = len(samples)
		samples = append(samples, RawSample{ID: id, Phenotypes: names})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read benchmark file: %w", err)
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples found in %s", path)
	}
	return samples, nil
}

// Translate converts each sample's phenotype names to HP ids,
// preserving sample and phenotype order. An unknown phenotype name is
// an error: silently dropping it would weaken every score for that
// sample.
func Translate(samples []RawSample, phenotypes Phenotypes) ([]batch.Sample, error) {
	out := make([]batch.Sample, 0, len(samples))
	for _, s := range samples {
		ids := make([]string, 0, len(s.Phenotypes))
		for _, name := range s.Phenotypes {
			id, ok := phenotypes.Lookup(name)
			if !ok {
				return nil, fmt.Errorf("sample %s: unknown phenotype %q", s.ID, name)
			}
			ids = append(ids, id)
		}
		out = append(out, batch.Sample{ID: s.ID, Phenotypes: ids})
	}
	return out, nil
}
