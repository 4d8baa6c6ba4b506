package mock

import (
	"context"

	"github.com/fwojciec/partcat"
)

var _ partcat.IndexFetcher = (*IndexFetcher)(nil)

// IndexFetcher is a mock implementation of partcat.IndexFetcher.
type IndexFetcher struct {
	FetchManifestFn func(ctx context.Context) (*partcat.Manifest, error)
	FetchShardFn    func(ctx context.Context, shard partcat.ShardDescriptor) ([]byte, error)
}

func (f *IndexFetcher) FetchManifest(ctx context.Context) (*partcat.Manifest, error) {
	return f.FetchManifestFn(ctx)
}

func (f *IndexFetcher) FetchShard(ctx context.Context, shard partcat.ShardDescriptor) ([]byte, error) {
	return f.FetchShardFn(ctx, shard)
}
