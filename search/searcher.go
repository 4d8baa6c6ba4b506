// Package search combines catalog queries with best-effort live enrichment.
// The catalog store answers the query; the live product API is then asked,
// concurrently and under a deadline, for current stock and pricing. A failed
// enrichment never fails the search.
package search

import (
	"context"
	"time"

	"github.com/fwojciec/partcat"
	"golang.org/x/sync/errgroup"
)

// Enrichment defaults.
const (
	DefaultConcurrency = 5
	DefaultTimeout     = 10 * time.Second
)

// Searcher answers component queries from the catalog store and enriches
// the results with live data.
type Searcher struct {
	Catalog partcat.CatalogService
	Live    partcat.LiveClient

	// Concurrency bounds simultaneous live lookups. Defaults to
	// DefaultConcurrency.
	Concurrency int

	// Timeout bounds each individual live lookup. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// Search queries the catalog and enriches every hit with a live snapshot.
// Catalog ordering is preserved; components whose live lookup failed are
// returned with Live set to false.
func (s *Searcher) Search(ctx context.Context, filter partcat.SearchFilter) ([]*partcat.EnrichedComponent, error) {
	comps, err := s.Catalog.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	results := make([]*partcat.EnrichedComponent, len(comps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())

	for i, comp := range comps {
		g.Go(func() error {
			results[i] = s.enrich(gctx, comp)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Details retrieves a single component by catalog ID, enriched with a live
// snapshot. The ID is normalized first, so bare numeric and lower-case
// forms resolve. Returns ENOTFOUND when the catalog has no such component.
func (s *Searcher) Details(ctx context.Context, catalogID string) (*partcat.EnrichedComponent, error) {
	id := partcat.NormalizeCatalogID(catalogID)
	if id == "" {
		return nil, partcat.Errorf(partcat.EINVALID, "component ID required")
	}

	comp, err := s.Catalog.FindComponentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, comp), nil
}

// enrich attaches a live snapshot to a component, falling back to the
// persisted values on any failure.
func (s *Searcher) enrich(ctx context.Context, comp *partcat.Component) *partcat.EnrichedComponent {
	enriched := &partcat.EnrichedComponent{Component: comp}
	if s.Live == nil {
		return enriched
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	snapshot, err := s.Live.FetchLive(ctx, comp.CatalogID)
	if err != nil {
		return enriched
	}

	enriched.Snapshot = snapshot
	enriched.Live = true
	return enriched
}

func (s *Searcher) concurrency() int {
	if s.Concurrency > 0 {
		return s.Concurrency
	}
	return DefaultConcurrency
}

func (s *Searcher) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return DefaultTimeout
}
