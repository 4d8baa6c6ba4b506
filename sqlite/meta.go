package sqlite

import (
	"context"
	"database/sql"

	"github.com/fwojciec/partcat"
)

// findBuildMeta reads the build-metadata singleton. Returns nil when no
// build has completed against this store file.
func findBuildMeta(ctx context.Context, db *DB) (*partcat.BuildMeta, error) {
	var meta partcat.BuildMeta
	var downloadedAt string

	err := db.QueryRowContext(ctx, `
		SELECT build_id, downloaded_at, source, category_count, component_count, manifest_hash
		FROM build_meta WHERE id = 1
	`).Scan(&meta.BuildID, &downloadedAt, &meta.Source,
		&meta.CategoryCount, &meta.ComponentCount, &meta.ManifestHash)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	meta.DownloadedAt, err = parseRFC3339(downloadedAt, "downloaded_at")
	if err != nil {
		return nil, err
	}

	return &meta, nil
}
