// Package vocab loads the external vocabularies the batch runner
// consumes: the HPO phenotype ontology, the complete HGNC gene set,
// and the benchmark sample set. The runner itself only sees the
// normalized outputs (sample → phenotype IDs, ordered gene universe).
package vocab

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Phenotypes maps lowercased phenotype names and exact synonyms to
// their HP identifiers.
type Phenotypes map[string]string

// Lookup resolves a phenotype name case-insensitively.
func (p Phenotypes) Lookup(name string) (string, bool) {
	id, ok := p[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// ReadPhenotypes parses an HPO .obo ontology file into a name → HP id
// mapping. Term names and EXACT synonyms are indexed; obsolete terms
// are skipped entirely.
func ReadPhenotypes(path string) (Phenotypes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hpo file: %w", err)
	}
	defer f.Close()

	phenotypes := make(Phenotypes)

	var (
		inTerm   bool
		id       string
		names    []string
		obsolete bool
	)
	commit := func() {
		if !inTerm || obsolete || id == "" {
			return
		}
		for _, n := range names {
			phenotypes[strings.ToLower(n)] = id
		}
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "[") {
			commit()
			inTerm = line == "[Term]"
			id, names, obsolete = "", nil, false
			continue
		}
		if !inTerm {
			continue
		}

		switch {
		case strings.HasPrefix(line, "id: "):
			id = strings.TrimPrefix(line, "id: ")
		case strings.HasPrefix(line, "name: "):
			names = append(names, strings.TrimPrefix(line, "name: "))
		case strings.HasPrefix(line, "synonym: "):
			if syn, ok := exactSynonym(line); ok {
				names = append(names, syn)
			}
		case line == "is_obsolete: true":
			obsolete = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read hpo file: %w", err)
	}
	commit()

	if len(phenotypes) == 0 {
		return nil, fmt.Errorf("no phenotype terms found in %s", path)
	}
	return phenotypes, nil
}

// exactSynonym extracts the quoted synonym text from a line like
// `synonym: "Some name" EXACT []`. Non-EXACT synonyms are ignored.
func exactSynonym(line string) (string, bool) {
	rest := strings.TrimPrefix(line, "synonym: ")
	if !strings.HasPrefix(rest, `"`) {
		return "", false
	}
	end := strings.Index(rest[1:], `"`)
	if end < 0 {
		return "", false
	}
	if !strings.Contains(rest[end+2:], "EXACT") {
		return "", false
	}
	return rest[1 : end+1], true
}
