package resilience

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
)

// ErrTransient marks failures worth retrying: network errors, 429 and 5xx.
var ErrTransient = crerr.New("transient failure")

func MarkTransient(err error) error {
	if err == nil {
		return nil
	}
	return crerr.Mark(err, ErrTransient)
}

func IsTransient(err error) bool {
	return err != nil && crerr.Is(err, ErrTransient)
}

type RetryPolicy struct {
	MaxRetries int
	// Backoff returns the wait before the given retry (1-based). Nil means linear seconds.
	Backoff func(retry int) time.Duration
}

func (p RetryPolicy) backoff(retry int) time.Duration {
	if p.Backoff != nil {
		return p.Backoff(retry)
	}
	return time.Duration(retry) * time.Second
}

// Retry runs fn until it succeeds, returns a non-transient error, or the
// retry budget is spent. The last error is returned.
func Retry(ctx context.Context, policy RetryPolicy, fn func(attempt int) error) error {
	maxRetries := policy.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			if err := Sleep(ctx, policy.backoff(attempt)); err != nil {
				return err
			}
		}
		lastErr = fn(attempt)
		if lastErr == nil || !IsTransient(lastErr) {
			return lastErr
		}
	}
	return lastErr
}
