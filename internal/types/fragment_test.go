package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSource(t *testing.T) {
	for _, s := range SourceOrder {
		assert.True(t, ValidSource(s))
	}
	assert.False(t, ValidSource("blog"))
	assert.False(t, ValidSource(""))
}

func TestSourceOrderIsCanonical(t *testing.T) {
	assert.Equal(t, []Source{SourceWeb, SourceProduct, SourceJob, SourceNews}, SourceOrder)
}

func TestFragmentValidate(t *testing.T) {
	tests := []struct {
		name     string
		fragment Fragment
		wantErr  bool
	}{
		{
			name:     "valid",
			fragment: Fragment{CompanyID: "acme", Source: SourceWeb, Text: "about us"},
		},
		{
			name:     "missing company",
			fragment: Fragment{Source: SourceWeb, Text: "about us"},
			wantErr:  true,
		},
		{
			name:     "unknown source",
			fragment: Fragment{CompanyID: "acme", Source: "wiki", Text: "about us"},
			wantErr:  true,
		},
		{
			name:     "empty text",
			fragment: Fragment{CompanyID: "acme", Source: SourceNews},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fragment.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
