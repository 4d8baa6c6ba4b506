package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/partcat"
	"github.com/fwojciec/partcat/mock"
	partslog "github.com/fwojciec/partcat/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingCatalogService_Search(t *testing.T) {
	t.Parallel()

	t.Run("logs query with result count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.CatalogService{
			SearchFn: func(ctx context.Context, filter partcat.SearchFilter) ([]*partcat.Component, error) {
				return []*partcat.Component{{CatalogID: "C1"}, {CatalogID: "C2"}}, nil
			},
		}

		svc := partslog.NewLoggingCatalogService(inner, logger)
		comps, err := svc.Search(context.Background(), partcat.SearchFilter{Query: "10k resistor"})

		require.NoError(t, err)
		assert.Len(t, comps, 2)
		output := buf.String()
		assert.Contains(t, output, "catalog search")
		assert.Contains(t, output, `query="10k resistor"`)
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.CatalogService{
			SearchFn: func(ctx context.Context, filter partcat.SearchFilter) ([]*partcat.Component, error) {
				return nil, partcat.Errorf(partcat.ENOTREADY, "no catalog store")
			},
		}

		svc := partslog.NewLoggingCatalogService(inner, logger)
		_, err := svc.Search(context.Background(), partcat.SearchFilter{Query: "10k"})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "no catalog store")
	})
}

func TestLoggingCatalogService_FindComponentByID(t *testing.T) {
	t.Parallel()

	t.Run("logs the lookup", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.CatalogService{
			FindComponentByIDFn: func(ctx context.Context, catalogID string) (*partcat.Component, error) {
				return &partcat.Component{CatalogID: catalogID}, nil
			},
		}

		svc := partslog.NewLoggingCatalogService(inner, logger)
		comp, err := svc.FindComponentByID(context.Background(), "C17976")

		require.NoError(t, err)
		assert.Equal(t, "C17976", comp.CatalogID)
		output := buf.String()
		assert.Contains(t, output, "catalog lookup")
		assert.Contains(t, output, "id=C17976")
	})
}
