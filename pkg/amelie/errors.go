package amelie

import "fmt"

// ErrorClass represents a classification of request failures.
type ErrorClass string

const (
	// ErrorClassTransport represents connection errors and timeouts.
	ErrorClassTransport ErrorClass = "transport"

	// ErrorClassProtocol represents non-2xx HTTP responses.
	ErrorClassProtocol ErrorClass = "protocol"
)

// RequestError represents a failed AMELIE request with its
// classification. Both classes are fatal to a batch job: the runner
// never retries.
type RequestError struct {
	Class      ErrorClass
	StatusCode int // zero for transport failures
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Class == ErrorClassProtocol {
		return fmt.Sprintf("amelie %s error (status %d): %s", e.Class, e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("amelie %s error: %s: %v", e.Class, e.Message, e.Err)
	}
	return fmt.Sprintf("amelie %s error: %s", e.Class, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// MalformedScoreError reports a score field that cannot be parsed as a
// number. Accepting a corrupt score silently would corrupt the result
// ordering, so decoding fails instead.
type MalformedScoreError struct {
	Gene  string
	Value string
	Err   error
}

func (e *MalformedScoreError) Error() string {
	return fmt.Sprintf("malformed score %q for gene %q: %v", e.Value, e.Gene, e.Err)
}

func (e *MalformedScoreError) Unwrap() error {
	return e.Err
}

// ShapeError reports a response body that does not match the expected
// [[gene, [[score, pubmedID], ...]], ...] nesting.
type ShapeError struct {
	Detail string
	Err    error
}

func (e *ShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected response shape: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("unexpected response shape: %s", e.Detail)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}
