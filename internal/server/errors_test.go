package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/b2bfusion/fusion-engine/internal/fusion"
	"github.com/b2bfusion/fusion-engine/internal/taxonomy"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "extraction failure is upstream fault",
			err:  &fusion.ExtractionError{Message: "model unavailable"},
			want: http.StatusBadGateway,
		},
		{
			name: "malformed answer is unprocessable",
			err:  &fusion.MalformedAnswerError{Message: "answer violates profile schema"},
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "wrapped malformed answer",
			err:  fmt.Errorf("pipeline: %w", &fusion.MalformedAnswerError{Message: "empty answer"}),
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "classification failure is upstream fault",
			err:  &taxonomy.ClassificationError{Message: "embedding timeout"},
			want: http.StatusBadGateway,
		},
		{
			name: "aggregation failure is internal",
			err:  &fusion.AggregationError{Message: "pool query failed"},
			want: http.StatusInternalServerError,
		},
		{
			name: "invalid credentials",
			err:  &ErrInvalidCredentials{},
			want: http.StatusUnauthorized,
		},
		{
			name: "wrapped extraction error",
			err:  fmt.Errorf("pipeline: %w", &fusion.ExtractionError{Message: "deadline exceeded"}),
			want: http.StatusBadGateway,
		},
		{
			name: "unknown error",
			err:  fmt.Errorf("something else"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
