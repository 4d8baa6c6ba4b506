package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/partcat"
	main "github.com/fwojciec/partcat/cmd/partcat"
	"github.com/fwojciec/partcat/mock"
	"github.com/fwojciec/partcat/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints component details", func(t *testing.T) {
		t.Parallel()

		catalog := &mock.CatalogService{
			StatusFn: readyStatus,
			FindComponentByIDFn: func(ctx context.Context, catalogID string) (*partcat.Component, error) {
				return &partcat.Component{
					CatalogID:    catalogID,
					MPN:          "0805W8F1002T5E",
					Basic:        true,
					Manufacturer: "UNI-ROYAL",
					Package:      "0805",
					Stock:        100000,
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Catalog:  catalog,
			Searcher: &search.Searcher{Catalog: catalog},
		}

		cmd := &main.DetailsCmd{ID: "c17976"}
		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "C17976")
		assert.Contains(t, output, "Basic Part")
		assert.Contains(t, output, "UNI-ROYAL")
	})

	t.Run("reports unknown components", func(t *testing.T) {
		t.Parallel()

		catalog := &mock.CatalogService{
			StatusFn: readyStatus,
			FindComponentByIDFn: func(ctx context.Context, catalogID string) (*partcat.Component, error) {
				return nil, partcat.Errorf(partcat.ENOTFOUND, "component %q not found", catalogID)
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Catalog:  catalog,
			Searcher: &search.Searcher{Catalog: catalog},
		}

		cmd := &main.DetailsCmd{ID: "C404"}
		err := cmd.Run(deps)

		assert.Equal(t, partcat.ENOTFOUND, partcat.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not found")
	})
}
