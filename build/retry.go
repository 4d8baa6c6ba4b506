package build

import (
	"context"
	"time"
)

// FetchFunc is the signature for a shard fetch attempt.
type FetchFunc func(ctx context.Context) ([]byte, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry attempts a fetch with backoff between attempts: one
// initial attempt plus one retry per delay. Configurable delays keep tests
// from waiting out real backoff.
func FetchWithRetry(ctx context.Context, fetch FetchFunc, delays []time.Duration) ([]byte, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		payload, err := fetch(ctx)
		if err == nil {
			return payload, nil
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		// Wait before next attempt
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
