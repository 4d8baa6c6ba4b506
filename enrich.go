package partcat

import (
	"context"
	"time"
)

// LiveParam is a single specification row from the live product API.
type LiveParam struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// LiveSnapshot holds the current stock, pricing and specification data for
// one component as reported by the live product API. Snapshots are produced
// per request and never persisted.
type LiveSnapshot struct {
	CatalogID    string      `json:"catalogId"`
	Stock        int         `json:"stock"`
	Prices       []PriceTier `json:"prices"`
	DatasheetURL string      `json:"datasheetUrl"`
	Images       []string    `json:"images"`
	Params       []LiveParam `json:"params"`
	FetchedAt    time.Time   `json:"fetchedAt"`
}

// LiveClient fetches live component data. Enrichment is best-effort: every
// failure mode (timeout, non-200 response, malformed body) is reported as
// EUNAVAILABLE so call sites are forced to handle the fallback path.
type LiveClient interface {
	FetchLive(ctx context.Context, catalogID string) (*LiveSnapshot, error)
}

// EnrichedComponent pairs a persisted component with an optional live
// snapshot. Live is false when the snapshot could not be fetched and the
// persisted (possibly stale) values are all that is available.
type EnrichedComponent struct {
	Component *Component    `json:"component"`
	Snapshot  *LiveSnapshot `json:"snapshot,omitempty"`
	Live      bool          `json:"live"`
}

// CurrentStock returns the live stock when available, the persisted
// snapshot otherwise.
func (e *EnrichedComponent) CurrentStock() int {
	if e.Live {
		return e.Snapshot.Stock
	}
	return e.Component.Stock
}

// CurrentPrices returns the live price tiers when available, the persisted
// tiers otherwise.
func (e *EnrichedComponent) CurrentPrices() []PriceTier {
	if e.Live && len(e.Snapshot.Prices) > 0 {
		return e.Snapshot.Prices
	}
	return e.Component.Prices
}

// CurrentDatasheet returns the live datasheet URL when available, the
// persisted URL otherwise.
func (e *EnrichedComponent) CurrentDatasheet() string {
	if e.Live && e.Snapshot.DatasheetURL != "" {
		return e.Snapshot.DatasheetURL
	}
	return e.Component.DatasheetURL
}
