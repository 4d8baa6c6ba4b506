// Package slog provides logging decorators for partcat interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/partcat"
)

// Ensure LoggingLiveClient implements partcat.LiveClient.
var _ partcat.LiveClient = (*LoggingLiveClient)(nil)

// LoggingLiveClient wraps a LiveClient with debug logging.
type LoggingLiveClient struct {
	next   partcat.LiveClient
	logger *slog.Logger
}

// NewLoggingLiveClient creates a new LoggingLiveClient.
func NewLoggingLiveClient(next partcat.LiveClient, logger *slog.Logger) *LoggingLiveClient {
	return &LoggingLiveClient{next: next, logger: logger}
}

// FetchLive delegates to the wrapped client and logs the operation.
func (c *LoggingLiveClient) FetchLive(ctx context.Context, catalogID string) (snapshot *partcat.LiveSnapshot, err error) {
	defer func(begin time.Time) {
		stock := 0
		if snapshot != nil {
			stock = snapshot.Stock
		}
		c.logger.Info("live lookup",
			"id", catalogID,
			"stock", stock,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.FetchLive(ctx, catalogID)
}
