// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/b2bfusion/fusion-engine/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintFragmentCounts outputs how many fragments each source pool contributed.
func (p *Printer) PrintFragmentCounts(companyID string, counts map[types.Source]int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n\n", companyID))
	total := 0
	for _, source := range types.SourceOrder {
		n := counts[source]
		total += n
		sb.WriteString(fmt.Sprintf("  %-8s %d\n", string(source)+":", n))
	}
	sb.WriteString(fmt.Sprintf("\nTotal fragments: %d", total))
	p.printBox("AGGREGATED EVIDENCE", sb.String())
}

// PrintProfile outputs a human-readable summary of the extracted profile.
func (p *Printer) PrintProfile(profile *types.CompanyProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n\n", profile.CompanyID))

	for _, name := range types.FieldNames {
		field := profile.Field(name)
		sb.WriteString(fmt.Sprintf("%s (%.2f):\n", name, field.Confidence))
		sb.WriteString("  " + formatFieldValue(field.Value) + "\n")
	}

	p.printBox("COMPANY PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMapping outputs the classification outcome.
func (p *Printer) PrintMapping(mapping *types.IndustryMapping) {
	if mapping == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:       %s\n", mapping.CompanyID))
	sb.WriteString(fmt.Sprintf("Matched level: %s\n", mapping.MatchedLevel))
	sb.WriteString(fmt.Sprintf("Confidence:    %.3f\n", mapping.Confidence))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Sector:       %s\n", stringOrDash(mapping.Sector)))
	sb.WriteString(fmt.Sprintf("Industry:     %s\n", stringOrDash(mapping.Industry)))
	sb.WriteString(fmt.Sprintf("Sub-industry: %s\n", stringOrDash(mapping.SubIndustry)))
	sb.WriteString(fmt.Sprintf("SIC code:     %s", stringOrDash(mapping.SICCode)))

	p.printBox("INDUSTRY CLASSIFICATION", sb.String())
}

func formatFieldValue(v types.FieldValue) string {
	if v.Null {
		return "(no evidence)"
	}
	if v.List != nil {
		count := min(len(v.List), maxItemsToShow)
		shown := strings.Join(v.List[:count], ", ")
		if len(v.List) > maxItemsToShow {
			shown += fmt.Sprintf(" ... and %d more", len(v.List)-maxItemsToShow)
		}
		return shown
	}
	return v.Str
}

func stringOrDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
