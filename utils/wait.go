package utils

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Poll calls cond every interval until it reports done, returns an error, or
// ctx ends. The first call happens immediately.
//
// On timeout the returned error wraps ctx.Err(), plus the last error
// cond reported through Retryable if there was one.
//
// Usage:
//
//	err := utils.Poll(ctx, 100*time.Millisecond, func(ctx context.Context) (bool, error) {
//	    return page.Ready(ctx)
//	})
func Poll(ctx context.Context, interval time.Duration, cond func(context.Context) (bool, error)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastErr error
	for attempt := 1; ; attempt++ {
		done, err := cond(ctx)
		var r *retryable
		switch {
		case errors.As(err, &r):
			lastErr = r.err
		case err != nil:
			return err
		case done:
			return nil
		}

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return fmt.Errorf("condition not met after %d attempts: %w (last error: %v)", attempt, ctx.Err(), lastErr)
			}
			return fmt.Errorf("condition not met after %d attempts: %w", attempt, ctx.Err())
		case <-ticker.C:
		}
	}
}

type retryable struct{ err error }

func (r *retryable) Error() string { return r.err.Error() }
func (r *retryable) Unwrap() error { return r.err }

// Retryable marks an error from a Poll condition as transient: Poll keeps
// polling and reports it only if the deadline passes.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryable{err: err}
}
