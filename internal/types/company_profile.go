package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// FieldName identifies one of the six recognized profile fields.
type FieldName string

// Recognized extraction fields.
const (
	FieldBusinessSummary  FieldName = "business_summary"
	FieldProductLines     FieldName = "product_lines"
	FieldTargetIndustries FieldName = "target_industries"
	FieldRegions          FieldName = "regions"
	FieldHiringFocus      FieldName = "hiring_focus"
	FieldKeyRecentEvents  FieldName = "key_recent_events"
)

// FieldNames lists the recognized fields in their canonical order.
var FieldNames = []FieldName{
	FieldBusinessSummary,
	FieldProductLines,
	FieldTargetIndustries,
	FieldRegions,
	FieldHiringFocus,
	FieldKeyRecentEvents,
}

// FieldValue holds a field value that may be a string, a list of strings, or
// null. The extraction capability is free to return either scalar or list
// shapes (hiring_focus legitimately comes back as both), so the JSON codec
// accepts both and normalizes lists of non-strings to their string forms.
type FieldValue struct {
	Str  string
	List []string
	Null bool
}

// StringValue returns a scalar FieldValue.
func StringValue(s string) FieldValue { return FieldValue{Str: s} }

// ListValue returns a list FieldValue.
func ListValue(items ...string) FieldValue { return FieldValue{List: items} }

// NullValue returns the null FieldValue.
func NullValue() FieldValue { return FieldValue{Null: true} }

// IsEmpty reports whether the value carries no evidence.
func (v FieldValue) IsEmpty() bool {
	return v.Null || (v.Str == "" && len(v.List) == 0)
}

// Text flattens the value to a single string for downstream text assembly.
func (v FieldValue) Text() string {
	if v.Null {
		return ""
	}
	if len(v.List) > 0 {
		return strings.Join(v.List, ", ")
	}
	return v.Str
}

// MarshalJSON encodes the value as null, a string, or an array.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch {
	case v.Null:
		return []byte("null"), nil
	case v.List != nil:
		return json.Marshal(v.List)
	default:
		return json.Marshal(v.Str)
	}
}

// UnmarshalJSON decodes null, string, or array shapes. Non-string list items
// are stringified rather than rejected; the LLM occasionally mixes types.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*v = FieldValue{Null: true}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = FieldValue{Str: s}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("field value must be null, string, or array: %s", trimmed)
	}
	items := make([]string, 0, len(raw))
	for _, r := range raw {
		var item string
		if err := json.Unmarshal(r, &item); err != nil {
			item = strings.Trim(string(r), `"`)
		}
		if strings.TrimSpace(item) != "" {
			items = append(items, strings.TrimSpace(item))
		}
	}
	*v = FieldValue{List: items}
	return nil
}

// ExtractionField pairs a field value with the extractor's self-reported
// confidence. Confidence is present even when the value is null: 0.0 means
// "no evidence found", not "error".
type ExtractionField struct {
	Value      FieldValue `json:"value"`
	Confidence float64    `json:"confidence"`
}

// ClampConfidence forces the confidence into [0, 1].
func (f *ExtractionField) ClampConfidence() {
	if f.Confidence < 0 {
		f.Confidence = 0
	}
	if f.Confidence > 1 {
		f.Confidence = 1
	}
}

// EmptyField is the default for fields the extractor did not return.
func EmptyField() ExtractionField {
	return ExtractionField{Value: NullValue(), Confidence: 0}
}

// CompanyProfile is the normalized per-company extraction result. At most one
// live profile exists per company identity; regeneration replaces the whole
// record.
type CompanyProfile struct {
	CompanyID string                        `json:"company_id"`
	Fields    map[FieldName]ExtractionField `json:"fields"`
	CreatedAt time.Time                     `json:"created_at"`
}

// NewEmptyProfile returns a profile with all six fields null at confidence 0,
// the "insufficient evidence" shape.
func NewEmptyProfile(companyID string) *CompanyProfile {
	fields := make(map[FieldName]ExtractionField, len(FieldNames))
	for _, name := range FieldNames {
		fields[name] = EmptyField()
	}
	return &CompanyProfile{
		CompanyID: companyID,
		Fields:    fields,
		CreatedAt: time.Now().UTC(),
	}
}

// Field returns the named field, or the empty field if it is missing.
func (p *CompanyProfile) Field(name FieldName) ExtractionField {
	if f, ok := p.Fields[name]; ok {
		return f
	}
	return EmptyField()
}

// Normalize fills absent recognized fields with the empty default, clamps all
// confidences into [0,1], and drops unrecognized fields.
func (p *CompanyProfile) Normalize() {
	normalized := make(map[FieldName]ExtractionField, len(FieldNames))
	for _, name := range FieldNames {
		f, ok := p.Fields[name]
		if !ok {
			normalized[name] = EmptyField()
			continue
		}
		f.ClampConfidence()
		if f.Value.IsEmpty() && !f.Value.Null {
			f.Value = NullValue()
		}
		normalized[name] = f
	}
	p.Fields = normalized
}

// Validate checks profile invariants after normalization.
func (p *CompanyProfile) Validate() error {
	if p.CompanyID == "" {
		return fmt.Errorf("profile has no company identity")
	}
	for _, name := range FieldNames {
		f, ok := p.Fields[name]
		if !ok {
			return fmt.Errorf("profile is missing field %q", name)
		}
		if f.Confidence < 0 || f.Confidence > 1 {
			return fmt.Errorf("field %q confidence %.3f outside [0,1]", name, f.Confidence)
		}
	}
	return nil
}
