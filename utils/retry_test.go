package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrySucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, LinearBackoff(0), func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetrySucceedsOnThirdAttempt(t *testing.T) {
	calls := 0
	var delays []int
	backoff := func(attempt int) time.Duration {
		delays = append(delays, attempt)
		return 0
	}

	err := Retry(context.Background(), 3, backoff, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, delays, "exactly two inter-attempt delays")
}

func TestRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	final := errors.New("still broken")

	err := Retry(context.Background(), 3, LinearBackoff(0), func() error {
		calls++
		return final
	})

	require.ErrorIs(t, err, final)
	assert.Equal(t, 3, calls, "no fourth attempt after three failures")
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	err := Retry(ctx, 3, LinearBackoff(time.Hour), func() error {
		calls++
		cancel()
		return errors.New("transient")
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestLinearBackoff(t *testing.T) {
	backoff := LinearBackoff(500 * time.Millisecond)
	assert.Equal(t, 500*time.Millisecond, backoff(1))
	assert.Equal(t, time.Second, backoff(2))
}
