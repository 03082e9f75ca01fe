// Package chunk partitions the gene universe into API-sized groups.
// The AMELIE endpoint rejects requests carrying the full HGNC set, so
// the universe is sent as a sequence of bounded chunks whose in-order
// concatenation reproduces the input exactly once.
package chunk

// DefaultSize is the largest gene list one AMELIE request will accept.
const DefaultSize = 1000

// Split partitions genes into chunks of at most size elements,
// preserving input order. All chunks except possibly the last have
// exactly size elements. Split is pure: the returned chunks alias the
// input slice but never copy or reorder it.
func Split(genes []string, size int) [][]string {
	if size <= 0 {
		size = DefaultSize
	}
	if len(genes) == 0 {
		return nil
	}

	chunks := make([][]string, 0, (len(genes)+size-1)/size)
	for start := 0; start < len(genes); start += size {
		end := start + size
		if end > len(genes) {
			end = len(genes)
		}
		chunks = append(chunks, genes[start:end:end])
	}
	return chunks
}
