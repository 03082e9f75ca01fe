package result

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Header is the first line of every per-sample output file.
const Header = "gene\tscores"

// Write serializes the result: the header line, then one line per
// gene in SortedGenes order. Each line is the gene symbol, a tab, and
// the comma-joined <pubmedID>:<score> pairs in discovery order.
func (r SampleResult) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(Header)
	bw.WriteByte('\n')

	for _, gene := range r.SortedGenes() {
		bw.WriteString(gene)
		bw.WriteByte('\t')
		for i, ev := range r[gene] {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(ev.PubmedID)
			bw.WriteByte(':')
			bw.WriteString(strconv.FormatFloat(ev.Score, 'f', -1, 64))
		}
		bw.WriteByte('\n')
	}

	// bufio keeps the first write error sticky; Flush surfaces it.
	return bw.Flush()
}

// WriteFile writes the result to path. The write is not atomic: a
// crash mid-write leaves a partial file that the existence-based
// resume check cannot distinguish from a complete one, so such a file
// must be removed manually before a re-run.
func (r SampleResult) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := r.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
