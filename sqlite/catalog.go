package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/partcat"
)

// Parametric matches allow a little slack around the requested value since
// stored attribute values carry rounding from the source dataset.
const (
	resistanceTolerance  = 0.05
	capacitanceTolerance = 0.10
)

// Compile-time interface verification.
var _ partcat.CatalogService = (*CatalogService)(nil)

// CatalogService implements partcat.CatalogService over the active store
// held by a Handle.
type CatalogService struct {
	handle *Handle
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(handle *Handle) *CatalogService {
	return &CatalogService{handle: handle}
}

const componentColumns = `
	c.catalog_id, c.category_id, c.manufacturer_id, c.mpn, c.basic, c.preferred,
	c.description, c.package, c.stock, c.datasheet_url, c.image_url, c.attrs,
	cat.name, cat.subcategory, m.name
`

const componentJoins = `
	FROM components c
	JOIN categories cat ON cat.id = c.category_id
	JOIN manufacturers m ON m.id = c.manufacturer_id
`

// Search retrieves components matching the filter. Ordering is total and
// deterministic: basic first, then descending stock, ascending lowest-tier
// price with unpriced components last, and catalog ID as the final
// tie-break.
func (s *CatalogService) Search(ctx context.Context, filter partcat.SearchFilter) ([]*partcat.Component, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	db, err := s.handle.DB()
	if err != nil {
		return nil, err
	}

	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + componentColumns + componentJoins + " WHERE 1=1")

	// Every term must match the part number or the description.
	for _, term := range filter.Terms() {
		query.WriteString(` AND (c.mpn LIKE ? ESCAPE '\' OR c.description LIKE ? ESCAPE '\')`)
		pattern := "%" + escapeLike(term) + "%"
		args = append(args, pattern, pattern)
	}

	if filter.Category != nil {
		query.WriteString(` AND (cat.name LIKE ? ESCAPE '\' OR cat.subcategory LIKE ? ESCAPE '\')`)
		pattern := "%" + escapeLike(*filter.Category) + "%"
		args = append(args, pattern, pattern)
	}
	if filter.Package != nil {
		query.WriteString(` AND c.package LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(*filter.Package)+"%")
	}
	if filter.BasicOnly {
		query.WriteString(" AND c.basic = 1")
	}
	if filter.MinStock != nil {
		query.WriteString(" AND c.stock >= ?")
		args = append(args, *filter.MinStock)
	}

	if filter.Resistance != nil {
		query.WriteString(" AND CAST(json_extract(c.attrs, '$.Resistance.values.resistance[0]') AS REAL) BETWEEN ? AND ?")
		args = append(args, *filter.Resistance*(1-resistanceTolerance), *filter.Resistance*(1+resistanceTolerance))
	}
	if filter.Capacitance != nil {
		query.WriteString(" AND CAST(json_extract(c.attrs, '$.Capacitance.values.capacitance[0]') AS REAL) BETWEEN ? AND ?")
		args = append(args, *filter.Capacitance*(1-capacitanceTolerance), *filter.Capacitance*(1+capacitanceTolerance))
	}
	if filter.VoltageMin != nil {
		query.WriteString(` AND (CAST(json_extract(c.attrs, '$."Voltage Rated".values."voltage rated"[0]') AS REAL) >= ?
			OR CAST(json_extract(c.attrs, '$."Voltage Rating".values."voltage rating"[0]') AS REAL) >= ?)`)
		args = append(args, *filter.VoltageMin, *filter.VoltageMin)
	}
	if filter.CurrentMin != nil {
		query.WriteString(` AND (CAST(json_extract(c.attrs, '$."Output Current".values."output current"[0]') AS REAL) >= ?
			OR CAST(json_extract(c.attrs, '$.Current.values.current[0]') AS REAL) >= ?)`)
		args = append(args, *filter.CurrentMin, *filter.CurrentMin)
	}
	if filter.PowerMin != nil {
		query.WriteString(" AND CAST(json_extract(c.attrs, '$.Power.values.power[0]') AS REAL) >= ?")
		args = append(args, *filter.PowerMin)
	}

	query.WriteString(` ORDER BY c.basic DESC, c.stock DESC,
		(c.lowest_price IS NULL), c.lowest_price ASC, c.catalog_id ASC LIMIT ?`)
	args = append(args, clampLimit(filter.Limit))

	rows, err := db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comps []*partcat.Component
	for rows.Next() {
		comp, err := scanComponent(rows)
		if err != nil {
			return nil, err
		}
		comps = append(comps, comp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, comp := range comps {
		if comp.Prices, err = s.findPrices(ctx, db, comp.CatalogID); err != nil {
			return nil, err
		}
	}

	return comps, nil
}

// FindComponentByID retrieves a component by its catalog ID.
func (s *CatalogService) FindComponentByID(ctx context.Context, catalogID string) (*partcat.Component, error) {
	db, err := s.handle.DB()
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx,
		"SELECT "+componentColumns+componentJoins+" WHERE c.catalog_id = ?", catalogID)

	comp, err := scanComponent(row)
	if err == sql.ErrNoRows {
		return nil, partcat.Errorf(partcat.ENOTFOUND, "component %q not found", catalogID)
	}
	if err != nil {
		return nil, err
	}

	if comp.Prices, err = s.findPrices(ctx, db, comp.CatalogID); err != nil {
		return nil, err
	}

	return comp, nil
}

// Status reports whether a store exists, its row counts and the build
// metadata written by the most recent successful build.
func (s *CatalogService) Status(ctx context.Context) (*partcat.Status, error) {
	db, err := s.handle.DB()
	if err != nil {
		if partcat.ErrorCode(err) == partcat.ENOTREADY {
			return &partcat.Status{HasStore: false}, nil
		}
		return nil, err
	}

	status := &partcat.Status{HasStore: true}

	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM components").Scan(&status.Components); err != nil {
		return nil, err
	}
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&status.Categories); err != nil {
		return nil, err
	}

	meta, err := findBuildMeta(ctx, db)
	if err != nil {
		return nil, err
	}
	status.Meta = meta

	return status, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanComponent(row scanner) (*partcat.Component, error) {
	var comp partcat.Component
	var basic, preferred int
	var attrs sql.NullString

	err := row.Scan(&comp.CatalogID, &comp.CategoryID, &comp.ManufacturerID, &comp.MPN,
		&basic, &preferred, &comp.Description, &comp.Package, &comp.Stock,
		&comp.DatasheetURL, &comp.ImageURL, &attrs,
		&comp.Category, &comp.Subcategory, &comp.Manufacturer)
	if err != nil {
		return nil, err
	}

	comp.Basic = basic == 1
	comp.Preferred = preferred == 1

	if attrs.Valid && attrs.String != "" {
		if err := json.Unmarshal([]byte(attrs.String), &comp.Attrs); err != nil {
			return nil, fmt.Errorf("failed to parse attrs for %s: %w", comp.CatalogID, err)
		}
	}

	return &comp, nil
}

func (s *CatalogService) findPrices(ctx context.Context, db *DB, catalogID string) ([]partcat.PriceTier, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT qty, price FROM prices WHERE catalog_id = ? ORDER BY qty ASC", catalogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiers []partcat.PriceTier
	for rows.Next() {
		var tier partcat.PriceTier
		if err := rows.Scan(&tier.Qty, &tier.Price); err != nil {
			return nil, err
		}
		tiers = append(tiers, tier)
	}

	return tiers, rows.Err()
}

// escapeLike neutralizes LIKE wildcards in user input so a literal "%" or
// "_" in a term matches itself instead of everything.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return partcat.DefaultSearchLimit
	}
	if limit > partcat.MaxSearchLimit {
		return partcat.MaxSearchLimit
	}
	return limit
}
