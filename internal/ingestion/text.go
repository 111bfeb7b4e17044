// Package ingestion cleans and chunks raw company text before it is
// embedded and stored as document fragments.
package ingestion

import (
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(`\s+`)
var excessBlankLines = regexp.MustCompile(`\n\n\n+`)

// CleanText normalizes raw text while preserving structure. Line endings are
// normalized, trailing whitespace stripped, runs of spaces collapsed, and
// blank-line runs reduced to at most one separator.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = excessBlankLines.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line. Bullet markers keep their indentation so
// list structure survives into the fused context.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") {
		indent := len(line) - len(trimmed)
		body := multiSpace.ReplaceAllString(trimmed, " ")
		if indent > 0 {
			return strings.Repeat(" ", indent) + body
		}
		return body
	}

	return multiSpace.ReplaceAllString(strings.TrimSpace(line), " ")
}
