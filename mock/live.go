package mock

import (
	"context"

	"github.com/fwojciec/partcat"
)

var _ partcat.LiveClient = (*LiveClient)(nil)

// LiveClient is a mock implementation of partcat.LiveClient.
type LiveClient struct {
	FetchLiveFn func(ctx context.Context, catalogID string) (*partcat.LiveSnapshot, error)
}

func (c *LiveClient) FetchLive(ctx context.Context, catalogID string) (*partcat.LiveSnapshot, error) {
	return c.FetchLiveFn(ctx, catalogID)
}
