// Package mock provides mock implementations of partcat interfaces for testing.
package mock

import (
	"context"

	"github.com/fwojciec/partcat"
)

var _ partcat.CatalogService = (*CatalogService)(nil)

// CatalogService is a mock implementation of partcat.CatalogService.
type CatalogService struct {
	SearchFn            func(ctx context.Context, filter partcat.SearchFilter) ([]*partcat.Component, error)
	FindComponentByIDFn func(ctx context.Context, catalogID string) (*partcat.Component, error)
	StatusFn            func(ctx context.Context) (*partcat.Status, error)
}

func (s *CatalogService) Search(ctx context.Context, filter partcat.SearchFilter) ([]*partcat.Component, error) {
	return s.SearchFn(ctx, filter)
}

func (s *CatalogService) FindComponentByID(ctx context.Context, catalogID string) (*partcat.Component, error) {
	return s.FindComponentByIDFn(ctx, catalogID)
}

func (s *CatalogService) Status(ctx context.Context) (*partcat.Status, error) {
	return s.StatusFn(ctx)
}
