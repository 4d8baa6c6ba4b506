// Package build implements the catalog store builder: it downloads every
// shard named by the remote manifest into a staged SQLite store and
// atomically promotes the result. A build either fully succeeds or leaves
// the previously active store untouched.
package build

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fwojciec/partcat"
	"github.com/fwojciec/partcat/sqlite"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// DefaultShardsPerSecond paces shard downloads to be polite to the static
// host serving the dataset.
const DefaultShardsPerSecond = 8.0

// ProgressEvent reports per-shard build progress.
type ProgressEvent struct {
	Shard partcat.ShardDescriptor
	Index int // 1-based
	Total int
	Err   error // non-nil when the shard failed after retries
}

// ProgressFunc is called as shards are processed.
type ProgressFunc func(ProgressEvent)

// Result summarizes a successful build.
type Result struct {
	BuildID    string
	Components int
	Categories int
	Shards     int
	Skipped    int // malformed component rows dropped during parsing
	Duration   time.Duration
}

// Builder transforms the remote dataset into a local catalog store.
// It is the only writer of the store and never mutates the active file in
// place: writes go to the handle's staging path and are promoted with an
// atomic rename on success.
type Builder struct {
	Fetcher partcat.IndexFetcher
	Handle  *sqlite.Handle

	// Source is recorded in the build metadata, typically the dataset base URL.
	Source string

	// RetryDelays configures per-shard retry backoff.
	// Defaults to DefaultRetryDelays (1s, 2s, 4s).
	RetryDelays []time.Duration

	// ShardsPerSecond paces shard downloads. Defaults to DefaultShardsPerSecond.
	ShardsPerSecond float64

	// Progress, if set, is called after each shard completes or fails.
	Progress ProgressFunc
}

// Run executes a full build. Re-running with the same manifest yields the
// same store content.
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	begin := time.Now()

	manifest, err := b.Fetcher.FetchManifest(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch manifest: %w", err)
	}
	if len(manifest.Shards) == 0 {
		return nil, partcat.Errorf(partcat.EINVALID, "manifest contains no shards")
	}

	staging := b.Handle.StagingPath()
	removeStoreFiles(staging)

	staged := sqlite.NewDB(staging)
	if err := staged.Open(); err != nil {
		return nil, fmt.Errorf("open staged store: %w", err)
	}

	result, err := b.populate(ctx, staged, manifest)
	if err != nil {
		staged.Close()
		removeStoreFiles(staging)
		return nil, err
	}

	if err := staged.Close(); err != nil {
		removeStoreFiles(staging)
		return nil, fmt.Errorf("close staged store: %w", err)
	}
	if err := b.Handle.Promote(staging); err != nil {
		removeStoreFiles(staging)
		return nil, err
	}

	result.Duration = time.Since(begin)
	return result, nil
}

func (b *Builder) populate(ctx context.Context, staged *sqlite.DB, manifest *partcat.Manifest) (*Result, error) {
	delays := b.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	rps := b.ShardsPerSecond
	if rps <= 0 {
		rps = DefaultShardsPerSecond
	}
	limiter := rate.NewLimiter(rate.Limit(rps), 1)

	writer := sqlite.NewStoreWriter(staged)
	result := &Result{
		BuildID: uuid.New().String(),
		Shards:  len(manifest.Shards),
	}

	for i, shard := range manifest.Shards {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}

		if err := b.buildShard(ctx, writer, shard, delays, result); err != nil {
			if b.Progress != nil {
				b.Progress(ProgressEvent{Shard: shard, Index: i + 1, Total: len(manifest.Shards), Err: err})
			}
			return nil, fmt.Errorf("shard %s: %w", shard.SourceName, err)
		}

		if b.Progress != nil {
			b.Progress(ProgressEvent{Shard: shard, Index: i + 1, Total: len(manifest.Shards)})
		}
	}

	result.Categories = len(manifest.Shards)
	if err := writer.WriteMeta(ctx, &partcat.BuildMeta{
		BuildID:        result.BuildID,
		DownloadedAt:   time.Now().UTC(),
		Source:         b.Source,
		CategoryCount:  result.Categories,
		ComponentCount: result.Components,
		ManifestHash:   manifest.Hash,
	}); err != nil {
		return nil, fmt.Errorf("write build metadata: %w", err)
	}

	return result, nil
}

// buildShard fetches, parses and writes one shard inside a transaction.
func (b *Builder) buildShard(ctx context.Context, writer *sqlite.StoreWriter, shard partcat.ShardDescriptor, delays []time.Duration, result *Result) error {
	payload, err := FetchWithRetry(ctx, func(ctx context.Context) ([]byte, error) {
		return b.Fetcher.FetchShard(ctx, shard)
	}, delays)
	if err != nil {
		return err
	}

	comps, skipped, err := parseShard(payload)
	if err != nil {
		return err
	}
	result.Skipped += skipped

	if err := writer.Begin(ctx); err != nil {
		return err
	}
	defer writer.Rollback()

	categoryID, err := writer.EnsureCategory(ctx, shard.Category, shard.Subcategory)
	if err != nil {
		return err
	}

	for _, comp := range comps {
		comp.CategoryID = categoryID
		if comp.ManufacturerID, err = writer.EnsureManufacturer(ctx, comp.Manufacturer); err != nil {
			return err
		}
		if err := writer.InsertComponent(ctx, comp); err != nil {
			return err
		}
		result.Components++
	}

	return writer.Commit()
}

// removeStoreFiles deletes a store file and its WAL side files.
func removeStoreFiles(path string) {
	os.Remove(path)
	os.Remove(path + "-wal")
	os.Remove(path + "-shm")
}
