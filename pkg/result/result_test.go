package result

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/phenbench/amelie-bench/pkg/amelie"
)

func TestMerge_EmptyEvidenceNeverInserted(t *testing.T) {
	r := New()
	r.Merge([]amelie.GeneEvidence{
		{Symbol: "BRCA1", Evidence: []amelie.Evidence{{PubmedID: "111", Score: 9.0}}},
		{Symbol: "TP53", Evidence: []amelie.Evidence{}},
		{Symbol: "EGFR", Evidence: nil},
	})

	if len(r) != 1 {
		t.Fatalf("result has %d genes, want 1", len(r))
	}
	if _, ok := r["TP53"]; ok {
		t.Error("TP53 with empty evidence must not be inserted")
	}
	if _, ok := r["EGFR"]; ok {
		t.Error("EGFR with nil evidence must not be inserted")
	}
}

func TestMerge_RecurringGeneOverwritten(t *testing.T) {
	r := New()
	r.Merge([]amelie.GeneEvidence{
		{Symbol: "BRCA1", Evidence: []amelie.Evidence{{PubmedID: "old", Score: 1.0}}},
	})
	r.Merge([]amelie.GeneEvidence{
		{Symbol: "BRCA1", Evidence: []amelie.Evidence{{PubmedID: "new", Score: 8.0}}},
	})

	evidence := r["BRCA1"]
	if len(evidence) != 1 || evidence[0].PubmedID != "new" {
		t.Errorf("BRCA1 evidence = %+v, want latest chunk only", evidence)
	}
}

func TestMerge_AccumulatesAcrossChunks(t *testing.T) {
	r := New()
	r.Merge([]amelie.GeneEvidence{
		{Symbol: "BRCA1", Evidence: []amelie.Evidence{{PubmedID: "111", Score: 9.0}}},
	})
	r.Merge([]amelie.GeneEvidence{
		{Symbol: "TP53", Evidence: []amelie.Evidence{{PubmedID: "222", Score: 5.0}}},
	})

	if len(r) != 2 {
		t.Errorf("result has %d genes after two chunks, want 2", len(r))
	}
}

func TestSortedGenes_DescendingByFirstScore(t *testing.T) {
	r := SampleResult{
		"BRCA1": {{PubmedID: "pm1", Score: 9.0}},
		"TP53":  {{PubmedID: "pm2", Score: 5.0}},
		"EGFR":  {{PubmedID: "pm3", Score: 9.0}},
	}

	genes := r.SortedGenes()
	if len(genes) != 3 {
		t.Fatalf("SortedGenes() returned %d genes, want 3", len(genes))
	}

	// Both 9.0 genes come before the 5.0 gene; their relative order is
	// implementation-defined and deliberately not asserted.
	if genes[2] != "TP53" {
		t.Errorf("SortedGenes() = %v, want TP53 last", genes)
	}
	first := map[string]bool{genes[0]: true, genes[1]: true}
	if !first["BRCA1"] || !first["EGFR"] {
		t.Errorf("SortedGenes() = %v, want BRCA1 and EGFR in the first two positions", genes)
	}
}

func TestSortedGenes_FirstEntryDecides(t *testing.T) {
	// Later entries must not influence the order.
	r := SampleResult{
		"LOW":  {{PubmedID: "a", Score: 2.0}, {PubmedID: "b", Score: 99.0}},
		"HIGH": {{PubmedID: "c", Score: 3.0}, {PubmedID: "d", Score: 0.1}},
	}

	genes := r.SortedGenes()
	if genes[0] != "HIGH" || genes[1] != "LOW" {
		t.Errorf("SortedGenes() = %v, want [HIGH LOW]", genes)
	}
}

func TestWrite_Serialization(t *testing.T) {
	r := SampleResult{
		"BRCA1": {{PubmedID: "pm1", Score: 9.5}, {PubmedID: "pm2", Score: 3.1}},
	}

	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := "gene\tscores\nBRCA1\tpm1:9.5,pm2:3.1\n"
	if buf.String() != want {
		t.Errorf("Write() = %q, want %q", buf.String(), want)
	}
}

func TestWrite_MultipleGenesSorted(t *testing.T) {
	r := SampleResult{
		"TP53":  {{PubmedID: "pm2", Score: 5.0}},
		"BRCA1": {{PubmedID: "pm1", Score: 9.5}},
	}

	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := "gene\tscores\nBRCA1\tpm1:9.5\nTP53\tpm2:5\n"
	if buf.String() != want {
		t.Errorf("Write() = %q, want %q", buf.String(), want)
	}
}

func TestWrite_EmptyResult(t *testing.T) {
	var buf bytes.Buffer
	if err := New().Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if buf.String() != "gene\tscores\n" {
		t.Errorf("Write() = %q, want header only", buf.String())
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sampleA.tsv")

	r := SampleResult{
		"BRCA1": {{PubmedID: "pm1", Score: 9.5}},
	}
	if err := r.WriteFile(path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "gene\tscores\nBRCA1\tpm1:9.5\n" {
		t.Errorf("file content = %q", string(data))
	}
}

func TestWriteFile_BadPath(t *testing.T) {
	r := New()
	if err := r.WriteFile(filepath.Join(t.TempDir(), "missing", "out.tsv")); err == nil {
		t.Error("WriteFile() into a missing directory should fail")
	}
}
