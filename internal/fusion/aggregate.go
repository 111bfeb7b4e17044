package fusion

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/b2bfusion/fusion-engine/internal/types"
)

// minFragmentChars drops tiny chunks that carry no usable signal.
const minFragmentChars = 50

// FragmentSource reads one company's fragments out of a source pool.
type FragmentSource interface {
	ListFragments(ctx context.Context, companyID string, source types.Source) ([]types.Fragment, error)
}

// Aggregator retrieves and fuses per-company fragments from the four
// document pools into one ordered extraction context.
type Aggregator struct {
	pools FragmentSource
}

// NewAggregator creates an Aggregator over the given pools.
func NewAggregator(pools FragmentSource) *Aggregator {
	return &Aggregator{pools: pools}
}

// Aggregate returns the company's fragments grouped by source in canonical
// order (web, product, job, news) and in upload order within a source. Empty
// pools are skipped; an empty overall result means "insufficient evidence"
// and is not an error.
func (a *Aggregator) Aggregate(ctx context.Context, companyID string) ([]types.Fragment, error) {
	bySource := make([][]types.Fragment, len(types.SourceOrder))

	g, gctx := errgroup.WithContext(ctx)
	for i, source := range types.SourceOrder {
		g.Go(func() error {
			fragments, err := a.pools.ListFragments(gctx, companyID, source)
			if err != nil {
				return err
			}
			bySource[i] = dedupeFragments(fragments)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &AggregationError{Message: "failed to query document pools", Cause: err}
	}

	var fused []types.Fragment
	for _, fragments := range bySource {
		fused = append(fused, fragments...)
	}
	return fused, nil
}

// dedupeFragments removes exact duplicates (after whitespace/case
// normalization) and tiny chunks, preserving upload order.
func dedupeFragments(fragments []types.Fragment) []types.Fragment {
	seen := make(map[string]bool, len(fragments))
	unique := make([]types.Fragment, 0, len(fragments))
	for _, f := range fragments {
		normalized := strings.ToLower(strings.TrimSpace(f.Text))
		if len(normalized) < minFragmentChars || seen[normalized] {
			continue
		}
		seen[normalized] = true
		unique = append(unique, f)
	}
	return unique
}
