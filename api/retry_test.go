package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrierSucceedsAfterTransientFailures(t *testing.T) {
	r := Retrier{MaxRetries: 3, Delay: time.Millisecond}

	attempts := 0
	err := r.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return &Error{Status: 503, Message: "Service unavailable"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetrierStopsAfterMaxRetries(t *testing.T) {
	r := Retrier{MaxRetries: 3, Delay: time.Millisecond}

	attempts := 0
	err := r.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return &Error{Status: 0, Message: "No response received from server"}
	})

	require.Error(t, err)
	assert.Equal(t, 4, attempts, "initial attempt plus three retries")
	assert.Contains(t, err.Error(), "maximum retry attempts reached")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)
}

func TestRetrierDoesNotRetryClientErrors(t *testing.T) {
	r := Retrier{MaxRetries: 3, Delay: time.Millisecond}

	attempts := 0
	err := r.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return &Error{Status: 400, Message: "Bad request"}
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.NotContains(t, err.Error(), "maximum retry attempts reached")
}

func TestRetrierHonorsContextCancellation(t *testing.T) {
	r := Retrier{MaxRetries: 5, Delay: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := r.Do(ctx, func(ctx context.Context) error {
		attempts++
		return &Error{Status: 500, Message: "Server error"}
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.ErrorIs(t, apiErr.Err, context.Canceled)
}

func TestRetrierCustomCondition(t *testing.T) {
	r := Retrier{
		MaxRetries:  2,
		Delay:       time.Millisecond,
		ShouldRetry: func(err error) bool { return false },
	}

	attempts := 0
	err := r.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return &Error{Status: 500}
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDefaultRetrier(t *testing.T) {
	r := DefaultRetrier()
	assert.Equal(t, 3, r.MaxRetries)
	assert.Equal(t, time.Second, r.Delay)
	assert.True(t, r.Backoff)
}
