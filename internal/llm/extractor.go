// Package llm - extractor.go provides the prompt contract for structured
// field extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "CompanyProfile")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output. Every field
// is reported as {"value": <shape>, "confidence": 0.0-1.0}.
type SchemaField struct {
	Name        string // JSON field name
	Shape       string // Value shape hint: "string" or ["string"]
	Description string // Description for the LLM
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		shape := field.Shape
		if shape == "" {
			shape = `"string"`
		}
		sb.WriteString(fmt.Sprintf("  %q: {\"value\": %s, \"confidence\": 0.0}", field.Name, shape))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Use ONLY information from the input text; do not invent facts.\n")
	sb.WriteString("- \"confidence\" is your certainty in [0,1] that the value is supported by the text.\n")
	sb.WriteString("- If the text carries no evidence for a field, set its value to null and confidence to 0.0.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// CompanyProfileSchema returns the extraction schema for the six recognized
// company profile fields.
func CompanyProfileSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "CompanyProfile",
		Description: `You are a data extraction system for B2B company intelligence.
The input is fused text about one company, gathered from its website, product literature, job postings, and news coverage.
Extract the requested fields with a per-field confidence score.`,
		Fields: []SchemaField{
			{
				Name:        "business_summary",
				Shape:       `"string"`,
				Description: "Brief factual description of what the company does",
			},
			{
				Name:        "product_lines",
				Shape:       `["string"]`,
				Description: "Named products or service lines",
			},
			{
				Name:        "target_industries",
				Shape:       `["string"]`,
				Description: "Industries the company sells into",
			},
			{
				Name:        "regions",
				Shape:       `["string"]`,
				Description: "Geographic regions of operation",
			},
			{
				Name:        "hiring_focus",
				Shape:       `"string" or ["string"]`,
				Description: "Roles or skill areas the company is hiring for",
			},
			{
				Name:        "key_recent_events",
				Shape:       `["string"]`,
				Description: "Recent launches, funding, partnerships, or other news",
			},
		},
	}
}
