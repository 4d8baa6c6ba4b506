package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/partcat"
	"github.com/fwojciec/partcat/build"
	main "github.com/fwojciec/partcat/cmd/partcat"
	"github.com/fwojciec/partcat/mock"
	"github.com/fwojciec/partcat/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shardFetcher returns a fetcher serving one decompressed resistor shard,
// matching the payloads the HTTP fetcher hands to the builder.
func shardFetcher() *mock.IndexFetcher {
	payload := []byte(`{"components": [
		["C1", "MPN1", 100, "10kOhm resistor", "", [{"qFrom": 100, "price": 0.001}], "", null,
		 {"Basic/Extended": {"values": {"default": ["Basic"]}},
		  "Manufacturer": {"values": {"default": ["ACME"]}},
		  "Package": {"values": {"default": ["0805"]}}}]
	]}`)

	return &mock.IndexFetcher{
		FetchManifestFn: func(ctx context.Context) (*partcat.Manifest, error) {
			return &partcat.Manifest{
				Hash: "cafef00d",
				Shards: []partcat.ShardDescriptor{
					{Category: "Resistors", Subcategory: "Chip Resistor - Surface Mount", SourceName: "resistors_chip"},
				},
			}, nil
		},
		FetchShardFn: func(ctx context.Context, shard partcat.ShardDescriptor) ([]byte, error) {
			return payload, nil
		},
	}
}

func TestRefreshCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("builds the store and reports progress", func(t *testing.T) {
		t.Parallel()

		handle := sqlite.NewHandle(filepath.Join(t.TempDir(), "partcat.db"))
		require.NoError(t, handle.Open())
		t.Cleanup(func() { _ = handle.Close() })

		fetcher := shardFetcher()
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Builder: &build.Builder{
				Fetcher:         fetcher,
				Handle:          handle,
				Source:          "test",
				ShardsPerSecond: 10000,
			},
		}

		cmd := &main.RefreshCmd{}
		require.NoError(t, cmd.Run(deps))

		output := stderr.String()
		assert.Contains(t, output, "[1/1] resistors_chip")
		assert.Contains(t, output, "Built catalog with 1 components")

		svc := sqlite.NewCatalogService(handle)
		comp, err := svc.FindComponentByID(context.Background(), "C1")
		require.NoError(t, err)
		assert.Equal(t, "MPN1", comp.MPN)
	})

	t.Run("reports build failures", func(t *testing.T) {
		t.Parallel()

		handle := sqlite.NewHandle(filepath.Join(t.TempDir(), "partcat.db"))
		require.NoError(t, handle.Open())
		t.Cleanup(func() { _ = handle.Close() })

		fetcher := &mock.IndexFetcher{
			FetchManifestFn: func(ctx context.Context) (*partcat.Manifest, error) {
				return nil, partcat.Errorf(partcat.EUNAVAILABLE, "dataset host unreachable")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Builder: &build.Builder{Fetcher: fetcher, Handle: handle},
		}

		cmd := &main.RefreshCmd{}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
