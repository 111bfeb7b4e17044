package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/b2bfusion/fusion-engine/internal/fusion"
	"github.com/b2bfusion/fusion-engine/internal/taxonomy"
)

// ErrInvalidCredentials indicates a failed operator login.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid password"
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Capability failures (reasoning or embedding unreachable) surface as 502
// since the upstream dependency, not the request, is at fault; an answer the
// capability produced but that violates the profile schema is 422.
func HTTPStatus(err error) int {
	var extractionErr *fusion.ExtractionError
	var malformedErr *fusion.MalformedAnswerError
	var aggregationErr *fusion.AggregationError
	var classificationErr *taxonomy.ClassificationError

	switch {
	case errors.As(err, &extractionErr), errors.As(err, &classificationErr):
		return http.StatusBadGateway
	case errors.As(err, &malformedErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &aggregationErr):
		return http.StatusInternalServerError
	}

	var invalidCreds *ErrInvalidCredentials
	if errors.As(err, &invalidCreds) {
		return http.StatusUnauthorized
	}

	return http.StatusInternalServerError
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
