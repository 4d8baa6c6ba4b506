package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/partcat"
)

// dbtx is the subset of database operations shared by *sql.Tx and *DB.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// StoreWriter writes normalized catalog rows into a staged store during a
// build. Category and manufacturer rows are deduplicated by natural key
// with surrogate IDs cached in memory; component rows are keyed by catalog
// ID and overwrite any prior row with the same ID, which makes re-running
// a shard within one build safe.
//
// StoreWriter is not safe for concurrent use; the builder is the single
// writer by design.
type StoreWriter struct {
	db   *DB
	tx   *sql.Tx
	cats map[categoryKey]int64
	mfrs map[string]int64
}

type categoryKey struct {
	name string
	sub  string
}

// NewStoreWriter creates a StoreWriter over a staged database.
func NewStoreWriter(db *DB) *StoreWriter {
	return &StoreWriter{
		db:   db,
		cats: make(map[categoryKey]int64),
		mfrs: make(map[string]int64),
	}
}

// Begin starts a transaction. The builder wraps each shard in one.
func (w *StoreWriter) Begin(ctx context.Context) error {
	if w.tx != nil {
		return fmt.Errorf("transaction already in progress")
	}
	tx, err := w.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	w.tx = tx
	return nil
}

// Commit commits the current transaction.
func (w *StoreWriter) Commit() error {
	if w.tx == nil {
		return fmt.Errorf("no transaction in progress")
	}
	err := w.tx.Commit()
	w.tx = nil
	return err
}

// Rollback aborts the current transaction, if any.
func (w *StoreWriter) Rollback() error {
	if w.tx == nil {
		return nil
	}
	err := w.tx.Rollback()
	w.tx = nil
	return err
}

func (w *StoreWriter) conn() dbtx {
	if w.tx != nil {
		return w.tx
	}
	return w.db
}

// EnsureCategory returns the surrogate ID for a (category, subcategory)
// pair, inserting the row if absent.
func (w *StoreWriter) EnsureCategory(ctx context.Context, name, subcategory string) (int64, error) {
	key := categoryKey{name: name, sub: subcategory}
	if id, ok := w.cats[key]; ok {
		return id, nil
	}

	conn := w.conn()
	if _, err := conn.ExecContext(ctx,
		"INSERT OR IGNORE INTO categories (name, subcategory) VALUES (?, ?)", name, subcategory); err != nil {
		return 0, err
	}

	var id int64
	if err := conn.QueryRowContext(ctx,
		"SELECT id FROM categories WHERE name = ? AND subcategory = ?", name, subcategory).Scan(&id); err != nil {
		return 0, err
	}

	w.cats[key] = id
	return id, nil
}

// EnsureManufacturer returns the surrogate ID for a manufacturer name,
// inserting the row if absent. Components without a manufacturer attribute
// share the empty-name row.
func (w *StoreWriter) EnsureManufacturer(ctx context.Context, name string) (int64, error) {
	if id, ok := w.mfrs[name]; ok {
		return id, nil
	}

	conn := w.conn()
	if _, err := conn.ExecContext(ctx,
		"INSERT OR IGNORE INTO manufacturers (name) VALUES (?)", name); err != nil {
		return 0, err
	}

	var id int64
	if err := conn.QueryRowContext(ctx,
		"SELECT id FROM manufacturers WHERE name = ?", name).Scan(&id); err != nil {
		return 0, err
	}

	w.mfrs[name] = id
	return id, nil
}

// InsertComponent writes one component and its price tiers, replacing any
// prior row with the same catalog ID.
func (w *StoreWriter) InsertComponent(ctx context.Context, comp *partcat.Component) error {
	if err := comp.Validate(); err != nil {
		return err
	}

	var attrs any
	if len(comp.Attrs) > 0 {
		b, err := json.Marshal(comp.Attrs)
		if err != nil {
			return fmt.Errorf("failed to marshal attrs for %s: %w", comp.CatalogID, err)
		}
		attrs = string(b)
	}

	conn := w.conn()
	_, err := conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO components
		(catalog_id, category_id, manufacturer_id, mpn, basic, preferred,
		 description, package, stock, lowest_price, datasheet_url, image_url, attrs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, comp.CatalogID, comp.CategoryID, comp.ManufacturerID, comp.MPN,
		boolToInt(comp.Basic), boolToInt(comp.Preferred),
		comp.Description, comp.Package, comp.Stock, lowestPrice(comp.Prices),
		comp.DatasheetURL, comp.ImageURL, attrs)
	if err != nil {
		return err
	}

	if _, err := conn.ExecContext(ctx, "DELETE FROM prices WHERE catalog_id = ?", comp.CatalogID); err != nil {
		return err
	}
	for _, tier := range comp.Prices {
		if _, err := conn.ExecContext(ctx,
			"INSERT INTO prices (catalog_id, qty, price) VALUES (?, ?, ?)",
			comp.CatalogID, tier.Qty, tier.Price); err != nil {
			return err
		}
	}

	return nil
}

// WriteMeta upserts the build-metadata singleton.
func (w *StoreWriter) WriteMeta(ctx context.Context, meta *partcat.BuildMeta) error {
	_, err := w.conn().ExecContext(ctx, `
		INSERT OR REPLACE INTO build_meta
		(id, build_id, downloaded_at, source, category_count, component_count, manifest_hash)
		VALUES (1, ?, ?, ?, ?, ?, ?)
	`, meta.BuildID, meta.DownloadedAt.UTC().Format(time.RFC3339), meta.Source,
		meta.CategoryCount, meta.ComponentCount, meta.ManifestHash)
	return err
}

// lowestPrice returns the unit price at the lowest quantity tier, or nil
// when the component has no parsed tiers so it sorts after priced rows.
func lowestPrice(tiers []partcat.PriceTier) any {
	if len(tiers) == 0 {
		return nil
	}
	low := tiers[0]
	for _, tier := range tiers[1:] {
		if tier.Qty < low.Qty {
			low = tier
		}
	}
	return low.Price
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
