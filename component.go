package partcat

import (
	"context"
	"strings"
	"time"
)

// Search limits applied by the catalog query layer.
const (
	// DefaultSearchLimit is used when a filter does not specify a limit.
	DefaultSearchLimit = 10
	// MaxSearchLimit caps the number of results a single search can return.
	MaxSearchLimit = 50
)

// Category represents a category/subcategory pair from the remote dataset.
// Rows are written only during a full rebuild and never mutated.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Subcategory string `json:"subcategory"`
}

// Manufacturer represents a component manufacturer, unique by name.
type Manufacturer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PriceTier is a single quantity-threshold price point. Tiers are ordered
// by ascending quantity.
type PriceTier struct {
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

// Component represents one catalog entry. CatalogID is the stable external
// identifier; it survives rebuilds, unlike the surrogate category and
// manufacturer IDs.
type Component struct {
	CatalogID      string         `json:"catalogId"`
	CategoryID     int64          `json:"categoryId"`
	ManufacturerID int64          `json:"manufacturerId"`
	MPN            string         `json:"mpn"`
	Basic          bool           `json:"basic"`
	Preferred      bool           `json:"preferred"`
	Description    string         `json:"description"`
	Package        string         `json:"package"`
	Stock          int            `json:"stock"`
	Prices         []PriceTier    `json:"prices"`
	Attrs          map[string]any `json:"attrs"`
	DatasheetURL   string         `json:"datasheetUrl"`
	ImageURL       string         `json:"imageUrl"`

	// Denormalized display fields populated by catalog queries.
	Category     string `json:"category"`
	Subcategory  string `json:"subcategory"`
	Manufacturer string `json:"manufacturer"`
}

// Validate returns an error if the component contains invalid fields.
func (c *Component) Validate() error {
	if c.CatalogID == "" {
		return Errorf(EINVALID, "component catalog ID required")
	}
	if c.CategoryID == 0 {
		return Errorf(EINVALID, "component category ID required")
	}
	if c.ManufacturerID == 0 {
		return Errorf(EINVALID, "component manufacturer ID required")
	}
	return nil
}

// NormalizeCatalogID upper-cases a catalog identifier and adds the "C"
// prefix if missing, so that "17976" and "c17976" both resolve to "C17976".
func NormalizeCatalogID(id string) string {
	id = strings.ToUpper(strings.TrimSpace(id))
	if id == "" {
		return id
	}
	if !strings.HasPrefix(id, "C") {
		id = "C" + id
	}
	return id
}

// BuildMeta describes the most recent successful catalog build. Singleton,
// upserted once per build.
type BuildMeta struct {
	BuildID        string    `json:"buildId"`
	DownloadedAt   time.Time `json:"downloadedAt"`
	Source         string    `json:"source"`
	CategoryCount  int       `json:"categoryCount"`
	ComponentCount int       `json:"componentCount"`
	ManifestHash   string    `json:"manifestHash"`
}

// Status reports the state of the local catalog store.
type Status struct {
	HasStore   bool       `json:"hasStore"`
	Components int        `json:"components"`
	Categories int        `json:"categories"`
	Meta       *BuildMeta `json:"meta,omitempty"`
}

// SearchFilter represents a filter for Search. Query terms are split on
// whitespace and every term must match the part number or description;
// all other filters are conjunctive.
type SearchFilter struct {
	Query     string  `json:"query"`
	Category  *string `json:"category"`
	Package   *string `json:"package"`
	BasicOnly bool    `json:"basicOnly"`
	MinStock  *int    `json:"minStock"`

	// Parametric filters, pre-parsed to base units (ohms, farads, volts,
	// amperes, watts). See the Parse* helpers in value.go.
	Resistance  *float64 `json:"resistance"`
	Capacitance *float64 `json:"capacitance"`
	VoltageMin  *float64 `json:"voltageMin"`
	CurrentMin  *float64 `json:"currentMin"`
	PowerMin    *float64 `json:"powerMin"`

	// Limit bounds the result count. Zero means DefaultSearchLimit; values
	// above MaxSearchLimit are clamped.
	Limit int `json:"limit"`
}

// Validate returns an error if the filter would match the entire catalog.
// Any parametric filter stands in for query terms.
func (f *SearchFilter) Validate() error {
	if strings.TrimSpace(f.Query) != "" {
		return nil
	}
	if f.Resistance != nil || f.Capacitance != nil || f.VoltageMin != nil ||
		f.CurrentMin != nil || f.PowerMin != nil {
		return nil
	}
	return Errorf(EINVALID, "search query required")
}

// Terms returns the whitespace-separated query terms.
func (f *SearchFilter) Terms() []string {
	return strings.Fields(f.Query)
}

// CatalogService represents read-only access to the active catalog store.
type CatalogService interface {
	// Search retrieves components matching the filter, ordered basic-first,
	// then by descending stock, ascending lowest-tier price (components
	// without a price sort last) and ascending catalog ID.
	// Returns ENOTREADY if no store has been promoted yet.
	Search(ctx context.Context, filter SearchFilter) ([]*Component, error)

	// FindComponentByID retrieves a single component by catalog ID.
	// Returns ENOTFOUND if the component does not exist and ENOTREADY if no
	// store has been promoted yet.
	FindComponentByID(ctx context.Context, catalogID string) (*Component, error)

	// Status reports whether a store exists and its build metadata.
	Status(ctx context.Context) (*Status, error)
}
