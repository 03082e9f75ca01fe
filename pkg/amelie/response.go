package amelie

import (
	"encoding/json"
	"strconv"
)

// Evidence is one scored literature reference returned for a gene.
type Evidence struct {
	PubmedID string
	Score    float64
}

// GeneEvidence is the evidence list returned for one gene symbol.
// Discovery order of the evidence entries is preserved; AMELIE lists
// the highest-scoring reference first.
type GeneEvidence struct {
	Symbol   string
	Evidence []Evidence
}

// UnmarshalJSON decodes the wire tuple [symbol, [[score, pubmedID], ...]].
// Scores arrive as strings (occasionally bare numbers) and are coerced
// to float64. Shape mismatches yield *ShapeError, non-numeric scores
// *MalformedScoreError; both abort decoding of the whole response.
func (g *GeneEvidence) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return &ShapeError{Detail: "gene entry is not an array", Err: err}
	}
	if len(tuple) != 2 {
		return &ShapeError{Detail: "gene entry must have exactly 2 elements"}
	}

	if err := json.Unmarshal(tuple[0], &g.Symbol); err != nil {
		return &ShapeError{Detail: "gene symbol is not a string", Err: err}
	}

	var pairs [][]json.RawMessage
	if err := json.Unmarshal(tuple[1], &pairs); err != nil {
		return &ShapeError{Detail: "evidence list is not an array of pairs", Err: err}
	}

	g.Evidence = make([]Evidence, 0, len(pairs))
	for _, pair := range pairs {
		if len(pair) != 2 {
			return &ShapeError{Detail: "evidence pair must have exactly 2 elements"}
		}

		score, err := parseScore(g.Symbol, pair[0])
		if err != nil {
			return err
		}

		var pubmedID string
		if err := json.Unmarshal(pair[1], &pubmedID); err != nil {
			return &ShapeError{Detail: "evidence id is not a string", Err: err}
		}

		g.Evidence = append(g.Evidence, Evidence{PubmedID: pubmedID, Score: score})
	}

	return nil
}

// parseScore coerces a raw score value (JSON string or number) to float64.
func parseScore(gene string, raw json.RawMessage) (float64, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		var num json.Number
		if err := json.Unmarshal(raw, &num); err != nil {
			return 0, &MalformedScoreError{Gene: gene, Value: string(raw), Err: err}
		}
		text = num.String()
	}

	score, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &MalformedScoreError{Gene: gene, Value: text, Err: err}
	}
	return score, nil
}
