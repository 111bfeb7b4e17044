// Package fusion implements the fusion-and-extraction pipeline: fragment
// aggregation, structured field extraction, and pipeline orchestration.
package fusion

import "fmt"

// ExtractionError represents a fatal extraction failure on the capability
// side: the reasoning capability was unreachable or timed out. Distinct from
// the valid empty-evidence profile; no profile is written when extraction
// fails.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// MalformedAnswerError represents a reasoning answer that does not parse
// against the six-field schema. The capability responded, so the fault lies
// with its output, not the connection; no profile is written.
type MalformedAnswerError struct {
	Message string
	Cause   error
}

func (e *MalformedAnswerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed answer: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed answer: %s", e.Message)
}

func (e *MalformedAnswerError) Unwrap() error {
	return e.Cause
}

// AggregationError represents a failure retrieving fragments from the
// document pools. An empty pool is not an aggregation error.
type AggregationError struct {
	Message string
	Cause   error
}

func (e *AggregationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("aggregation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("aggregation error: %s", e.Message)
}

func (e *AggregationError) Unwrap() error {
	return e.Cause
}
