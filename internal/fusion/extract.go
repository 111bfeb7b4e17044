package fusion

import (
	"context"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xeipuuv/gojsonschema"

	"github.com/b2bfusion/fusion-engine/internal/llm"
	"github.com/b2bfusion/fusion-engine/internal/types"
)

// DefaultMaxContextChars bounds the fused context sent to the reasoning
// capability.
const DefaultMaxContextChars = 12000

// sectionBanners label each source's slice of the fused context.
var sectionBanners = map[types.Source]string{
	types.SourceWeb:     "=== WEBSITE INFORMATION ===",
	types.SourceProduct: "=== PRODUCT INFORMATION ===",
	types.SourceJob:     "=== JOB POSTINGS ===",
	types.SourceNews:    "=== NEWS & EVENTS ===",
}

// profileAnswerSchema is the shape contract for the raw model answer. Fields
// may be absent (they default to null/0.0) but a present field must be a
// {value, confidence} object.
const profileAnswerSchema = `{
  "type": "object",
  "properties": {
    "business_summary":  {"$ref": "#/definitions/field"},
    "product_lines":     {"$ref": "#/definitions/field"},
    "target_industries": {"$ref": "#/definitions/field"},
    "regions":           {"$ref": "#/definitions/field"},
    "hiring_focus":      {"$ref": "#/definitions/field"},
    "key_recent_events": {"$ref": "#/definitions/field"}
  },
  "definitions": {
    "field": {
      "type": "object",
      "properties": {
        "value": {
          "type": ["string", "array", "null"],
          "items": {"type": ["string", "number"]}
        },
        "confidence": {"type": "number"}
      },
      "required": ["value"]
    }
  }
}`

// Extractor turns a fused fragment context into a typed company profile with
// per-field confidence, via the generative reasoning capability.
type Extractor struct {
	client          llm.Client
	maxContextChars int
}

// NewExtractor creates an Extractor. maxContextChars <= 0 selects the
// default bound.
func NewExtractor(client llm.Client, maxContextChars int) *Extractor {
	if maxContextChars <= 0 {
		maxContextChars = DefaultMaxContextChars
	}
	return &Extractor{client: client, maxContextChars: maxContextChars}
}

// Extract produces the company profile from an ordered fragment sequence.
// Zero fragments is valid "insufficient evidence": the all-null profile is
// returned without consulting the model. An unparsable model answer is a
// fatal *MalformedAnswerError, never silently defaulted; a capability
// failure is a fatal *ExtractionError.
func (e *Extractor) Extract(ctx context.Context, companyID string, fragments []types.Fragment) (*types.CompanyProfile, error) {
	if len(fragments) == 0 {
		return types.NewEmptyProfile(companyID), nil
	}

	fused := BuildContext(fragments, e.maxContextChars)
	prompt := llm.BuildExtractionPrompt(llm.CompanyProfileSchema(), fused)

	answer, err := e.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &ExtractionError{Message: "reasoning capability failed", Cause: err}
	}

	profile, err := ParseProfileAnswer(companyID, answer)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// BuildContext concatenates fragment texts under per-source banners,
// respecting the canonical source grouping. When the bound is exceeded,
// whole fragments are dropped from the tail first, so truncation never
// splits the 4-way grouping order.
func BuildContext(fragments []types.Fragment, maxChars int) string {
	kept := fragments
	for len(kept) > 1 && contextLength(kept) > maxChars {
		kept = kept[:len(kept)-1]
	}

	var sb strings.Builder
	var current types.Source
	for i, f := range kept {
		if i == 0 || f.Source != current {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(sectionBanners[f.Source])
			sb.WriteString("\n")
			current = f.Source
		} else {
			sb.WriteString("\n")
		}
		sb.WriteString(f.Text)
	}

	text := sb.String()
	// A single oversized fragment is cut rather than dropped. The cut backs
	// up to a rune boundary so a multi-byte character is never split.
	if len(text) > maxChars {
		cut := maxChars
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}

func contextLength(fragments []types.Fragment) int {
	total := 0
	for _, f := range fragments {
		total += len(f.Text) + len(sectionBanners[f.Source]) + 2
	}
	return total
}

// ParseProfileAnswer validates the raw model answer against the six-field
// schema and normalizes it into a CompanyProfile. Absent fields become
// value=null, confidence=0.0; out-of-range confidences are clamped. Any
// shape violation is a *MalformedAnswerError.
func ParseProfileAnswer(companyID, answer string) (*types.CompanyProfile, error) {
	cleaned := llm.CleanJSONBlock(answer)
	if strings.TrimSpace(cleaned) == "" {
		return nil, &MalformedAnswerError{Message: "empty answer from reasoning capability"}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(profileAnswerSchema),
		gojsonschema.NewStringLoader(cleaned),
	)
	if err != nil {
		return nil, &MalformedAnswerError{Message: "answer is not valid JSON", Cause: err}
	}
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, &MalformedAnswerError{Message: "answer violates profile schema: " + strings.Join(details, "; ")}
	}

	var fields map[types.FieldName]types.ExtractionField
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, &MalformedAnswerError{Message: "failed to decode answer fields", Cause: err}
	}

	profile := &types.CompanyProfile{
		CompanyID: companyID,
		Fields:    fields,
		CreatedAt: time.Now().UTC(),
	}
	profile.Normalize()
	if err := profile.Validate(); err != nil {
		return nil, &MalformedAnswerError{Message: "normalized profile is invalid", Cause: err}
	}
	return profile, nil
}
