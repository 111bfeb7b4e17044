// Package fetch - source.go maps document sources to content selectors.
package fetch

import "github.com/b2bfusion/fusion-engine/internal/types"

// generalSelectors locate the main content region of a typical page.
var generalSelectors = []string{
	"main",
	"article",
	".content",
	"#content",
	".main-content",
	"#main-content",
}

// SelectorsFor returns content selectors tuned for one document source.
// Source-specific selectors come first so the general fallbacks only apply
// when the page has no recognizable structure.
func SelectorsFor(source types.Source) []string {
	switch source {
	case types.SourceWeb:
		return append([]string{
			".about-content",
			".company-overview",
			"#about",
		}, generalSelectors...)
	case types.SourceProduct:
		return append([]string{
			".product-description",
			".product-details",
			".features",
			"#product",
		}, generalSelectors...)
	case types.SourceJob:
		return append([]string{
			".job-description",
			".job-content",
			"#job-description",
			".posting-content",
			".job-details",
			"[data-testid='job-description']",
		}, generalSelectors...)
	case types.SourceNews:
		return append([]string{
			".article-body",
			".article-content",
			".post-content",
			"[itemprop='articleBody']",
		}, generalSelectors...)
	default:
		return generalSelectors
	}
}
