// Package result accumulates per-sample gene evidence across chunks
// and writes the sorted per-sample TSV output.
package result

import (
	"sort"

	"github.com/phenbench/amelie-bench/pkg/amelie"
)

// SampleResult maps gene symbol to its ordered evidence list for one
// sample. A SampleResult is created empty at the start of a sample,
// mutated once per chunk, and written exactly once; every stored list
// is non-empty.
type SampleResult map[string][]amelie.Evidence

// New returns an empty SampleResult.
func New() SampleResult {
	return make(SampleResult)
}

// Merge folds one chunk's response into the result. Genes with an
// empty evidence list are never inserted. A gene already present from
// an earlier chunk is overwritten, not merged: chunks partition the
// gene universe, so recurrence means the latest chunk's data wins.
func (r SampleResult) Merge(genes []amelie.GeneEvidence) {
	for _, g := range genes {
		if len(g.Evidence) == 0 {
			continue
		}
		r[g.Symbol] = g.Evidence
	}
}

// SortedGenes returns the gene symbols ordered by the score of each
// gene's first evidence entry, descending. AMELIE lists a gene's
// best-scoring reference first, so this ranks genes by top score. The
// sort is stable; genes with equal first scores keep map extraction
// order, which is unspecified.
func (r SampleResult) SortedGenes() []string {
	genes := make([]string, 0, len(r))
	for g := range r {
		genes = append(genes, g)
	}
	sort.SliceStable(genes, func(i, j int) bool {
		return r[genes[i]][0].Score > r[genes[j]][0].Score
	})
	return genes
}
