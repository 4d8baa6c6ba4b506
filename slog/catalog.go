package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/partcat"
)

// Ensure LoggingCatalogService implements partcat.CatalogService.
var _ partcat.CatalogService = (*LoggingCatalogService)(nil)

// LoggingCatalogService wraps a CatalogService with debug logging.
type LoggingCatalogService struct {
	next   partcat.CatalogService
	logger *slog.Logger
}

// NewLoggingCatalogService creates a new LoggingCatalogService.
func NewLoggingCatalogService(next partcat.CatalogService, logger *slog.Logger) *LoggingCatalogService {
	return &LoggingCatalogService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the operation.
func (s *LoggingCatalogService) Search(ctx context.Context, filter partcat.SearchFilter) (comps []*partcat.Component, err error) {
	defer func(begin time.Time) {
		s.logger.Info("catalog search",
			"query", filter.Query,
			"count", len(comps),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, filter)
}

// FindComponentByID delegates to the wrapped service and logs the operation.
func (s *LoggingCatalogService) FindComponentByID(ctx context.Context, catalogID string) (comp *partcat.Component, err error) {
	defer func(begin time.Time) {
		s.logger.Info("catalog lookup",
			"id", catalogID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindComponentByID(ctx, catalogID)
}

// Status delegates to the wrapped service.
func (s *LoggingCatalogService) Status(ctx context.Context) (*partcat.Status, error) {
	return s.next.Status(ctx)
}
