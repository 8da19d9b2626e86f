package utils

import (
	"context"
	"time"
)

// BackoffFunc returns the delay to wait after a failed attempt. Attempts are
// numbered from 1.
type BackoffFunc func(attempt int) time.Duration

// LinearBackoff waits step*1 after the first failure, step*2 after the
// second, and so on.
func LinearBackoff(step time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		return step * time.Duration(attempt)
	}
}

// Retry runs op up to maxAttempts times, sleeping backoff(n) between attempt
// n and n+1. The last error is returned once attempts are exhausted. A
// cancelled context stops further attempts.
func Retry(ctx context.Context, maxAttempts int, backoff BackoffFunc, op func() error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}
		select {
		case <-time.After(backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
