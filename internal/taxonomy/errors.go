// Package taxonomy provides the industry classification reference index and
// the semantic matcher that maps company profiles onto it.
package taxonomy

import "fmt"

// LoadError represents a failure loading or parsing the reference table.
// Load errors are fatal at initialization: the matcher must not serve
// requests against a partially loaded index.
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("taxonomy load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("taxonomy load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ClassificationError represents a failure during classification, such as
// the embedding capability being unreachable or timing out. Distinct from
// the valid "no level cleared its threshold" outcome.
type ClassificationError struct {
	Message string
	Cause   error
}

func (e *ClassificationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("classification error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("classification error: %s", e.Message)
}

func (e *ClassificationError) Unwrap() error {
	return e.Cause
}
