// Package retry provides the shared retry-with-backoff policy used by
// batch drivers at the service boundary. The chat pipeline itself never
// retries; callers own transient-failure handling.
package retry

import (
	"context"
	"time"
)

// Policy is a bounded retry schedule. The wait before attempt n (1-based,
// after the first failure) is Backoff*n: a linearly increasing sleep.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// Backoff is the base wait; attempt k waits k*Backoff before retrying.
	Backoff time.Duration
}

// Default matches the evaluation drivers: 3 attempts with 15s/30s waits
// between them.
var Default = Policy{MaxAttempts: 3, Backoff: 15 * time.Second}

// Do runs fn until it succeeds, the attempts are exhausted, or ctx ends.
// The last error is returned on exhaustion.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		wait := time.Duration(attempt) * p.Backoff
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return err
}
