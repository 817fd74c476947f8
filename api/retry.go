package api

import (
	"context"
	"fmt"
	"time"
)

// Retrier re-runs an operation on transient failures: network errors and 5xx
// responses by default. Delays grow exponentially when Backoff is set. After
// MaxRetries failed re-attempts the last error is returned wrapped in a
// terminal message and no further attempt is made.
type Retrier struct {
	MaxRetries  int
	Delay       time.Duration
	Backoff     bool
	ShouldRetry func(error) bool
}

// DefaultRetrier mirrors the platform defaults: three retries, one second
// base delay, exponential backoff.
func DefaultRetrier() Retrier {
	return Retrier{
		MaxRetries: 3,
		Delay:      time.Second,
		Backoff:    true,
	}
}

// Do runs fn, retrying per the policy. The context cancels waits between
// attempts as well as the attempts themselves.
func (r Retrier) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	should := r.ShouldRetry
	if should == nil {
		should = IsRetryable
	}

	var err error
	for attempt := 0; ; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= r.MaxRetries || !should(err) {
			break
		}

		delay := r.Delay
		if r.Backoff {
			delay = r.Delay << attempt
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return &Error{Status: 0, Message: "Request cancelled", Err: ctx.Err()}
		case <-timer.C:
		}
	}

	if r.MaxRetries > 0 && should(err) {
		return fmt.Errorf("maximum retry attempts reached: %w", err)
	}
	return err
}
