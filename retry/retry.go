package retry

import (
	"context"
	"log/slog"
	"time"

	"github.com/rockyxcoded/Example-PDF-vector-search/types"
)

// Do runs fn up to maxAttempts times, sleeping initialDelay * 2^n between
// attempts. Only failures reported retryable by types.IsRetryable are
// re-attempted; permanent and invalid-input errors surface immediately. The
// final error is propagated unchanged.
func Do[T any](ctx context.Context, fn func(context.Context) (T, error), maxAttempts int, initialDelay time.Duration) (T, error) {
	var zero T
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	delay := initialDelay
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if attempt == maxAttempts || !types.IsRetryable(err) {
			break
		}

		slog.Warn("retrying after failure",
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"delay", delay,
			"error", err.Error(),
		)

		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
		delay *= 2
	}

	return zero, lastErr
}

// sleep waits for d without blocking past context cancellation.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
