package amelie

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestGeneEvidence_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantSymbol   string
		wantEvidence []Evidence
	}{
		{
			name:       "single evidence entry",
			input:      `["BRCA1", [["9.5", "12345"]]]`,
			wantSymbol: "BRCA1",
			wantEvidence: []Evidence{
				{PubmedID: "12345", Score: 9.5},
			},
		},
		{
			name:       "multiple entries preserve order",
			input:      `["TP53", [["9.5", "111"], ["3.1", "222"], ["0.2", "333"]]]`,
			wantSymbol: "TP53",
			wantEvidence: []Evidence{
				{PubmedID: "111", Score: 9.5},
				{PubmedID: "222", Score: 3.1},
				{PubmedID: "333", Score: 0.2},
			},
		},
		{
			name:       "numeric score accepted",
			input:      `["EGFR", [[7.25, "444"]]]`,
			wantSymbol: "EGFR",
			wantEvidence: []Evidence{
				{PubmedID: "444", Score: 7.25},
			},
		},
		{
			name:         "empty evidence list",
			input:        `["KRAS", []]`,
			wantSymbol:   "KRAS",
			wantEvidence: []Evidence{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got GeneEvidence
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got.Symbol != tt.wantSymbol {
				t.Errorf("Symbol = %q, want %q", got.Symbol, tt.wantSymbol)
			}
			if len(got.Evidence) != len(tt.wantEvidence) {
				t.Fatalf("Evidence has %d entries, want %d", len(got.Evidence), len(tt.wantEvidence))
			}
			for i, want := range tt.wantEvidence {
				if got.Evidence[i] != want {
					t.Errorf("Evidence[%d] = %+v, want %+v", i, got.Evidence[i], want)
				}
			}
		})
	}
}

func TestGeneEvidence_UnmarshalJSON_MalformedScore(t *testing.T) {
	var got GeneEvidence
	err := json.Unmarshal([]byte(`["BRCA1", [["not-a-number", "12345"]]]`), &got)

	var scoreErr *MalformedScoreError
	if !errors.As(err, &scoreErr) {
		t.Fatalf("Unmarshal() error = %v, want *MalformedScoreError", err)
	}
	if scoreErr.Gene != "BRCA1" {
		t.Errorf("Gene = %q, want BRCA1", scoreErr.Gene)
	}
	if scoreErr.Value != "not-a-number" {
		t.Errorf("Value = %q, want not-a-number", scoreErr.Value)
	}
}

func TestGeneEvidence_UnmarshalJSON_ShapeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "entry not an array", input: `{"gene": "BRCA1"}`},
		{name: "wrong tuple length", input: `["BRCA1"]`},
		{name: "symbol not a string", input: `[42, []]`},
		{name: "evidence list not nested", input: `["BRCA1", ["9.5", "123"]]`},
		{name: "evidence pair too long", input: `["BRCA1", [["9.5", "123", "extra"]]]`},
		{name: "evidence id not a string", input: `["BRCA1", [["9.5", 123]]]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got GeneEvidence
			err := json.Unmarshal([]byte(tt.input), &got)

			var shapeErr *ShapeError
			if !errors.As(err, &shapeErr) {
				t.Errorf("Unmarshal(%q) error = %v, want *ShapeError", tt.input, err)
			}
		})
	}
}

func TestResponseDecode_FullBody(t *testing.T) {
	body := `[["BRCA1", [["9.5", "111"]]], ["TP53", []], ["EGFR", [["2.4", "222"], ["1.1", "333"]]]]`

	var result []GeneEvidence
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if len(result) != 3 {
		t.Fatalf("decoded %d genes, want 3", len(result))
	}
	if result[1].Symbol != "TP53" || len(result[1].Evidence) != 0 {
		t.Errorf("TP53 entry = %+v, want empty evidence", result[1])
	}
	if result[2].Evidence[1].PubmedID != "333" {
		t.Errorf("EGFR second evidence = %+v, want pubmed 333", result[2].Evidence[1])
	}
}
