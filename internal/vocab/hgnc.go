package vocab

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadGenes parses the complete HGNC set (tab-separated, as downloaded
// from genenames.org) and returns the unique gene symbols in
// first-seen order. That order is the deterministic chunk order for
// the whole job: re-running against the same file reproduces the same
// request sequence.
func ReadGenes(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hgnc file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read hgnc file: %w", err)
		}
		return nil, fmt.Errorf("hgnc file %s is empty", path)
	}

	symbolCol := -1
	for i, name := range strings.Split(scanner.Text(), "\t") {
		if name == "symbol" {
			symbolCol = i
			break
		}
	}
	if symbolCol < 0 {
		return nil, fmt.Errorf("hgnc file %s has no symbol column", path)
	}

	var genes []string
	seen := make(map[string]struct{})
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) <= symbolCol {
			continue
		}
		symbol := strings.TrimSpace(fields[symbolCol])
		if symbol == "" {
			continue
		}
		if _, dup := seen[symbol]; dup {
			continue
		}
		seen[symbol] = struct{}{}
		genes = append(genes, symbol)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read hgnc file: %w", err)
	}

	if len(genes) == 0 {
		return nil, fmt.Errorf("no gene symbols found in %s", path)
	}
	return genes, nil
}
