package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/partcat"
	main "github.com/fwojciec/partcat/cmd/partcat"
	"github.com/fwojciec/partcat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reports a built store", func(t *testing.T) {
		t.Parallel()

		catalog := &mock.CatalogService{
			StatusFn: func(ctx context.Context) (*partcat.Status, error) {
				return &partcat.Status{
					HasStore:   true,
					Components: 150000,
					Categories: 120,
					Meta: &partcat.BuildMeta{
						BuildID:      "build-abc",
						DownloadedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
						Source:       "https://example.com/data",
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Catalog: catalog,
		}

		cmd := &main.StatusCmd{}
		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "150000")
		assert.Contains(t, output, "build-abc")
		assert.Contains(t, output, "2026-08-30")
	})

	t.Run("reports a missing store", func(t *testing.T) {
		t.Parallel()

		catalog := &mock.CatalogService{
			StatusFn: func(ctx context.Context) (*partcat.Status, error) {
				return &partcat.Status{HasStore: false}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Catalog: catalog,
		}

		cmd := &main.StatusCmd{}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "No catalog store")
	})
}
