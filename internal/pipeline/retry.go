package pipeline

import (
	"errors"
	"math/rand"
	"time"
)

// retryable is implemented by errors that may succeed on a later
// attempt, such as throttled or failed repository fetches.
type retryable interface {
	Retryable() bool
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var r retryable
	if errors.As(err, &r) {
		return r.Retryable()
	}
	return false
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int63n(int64(base) / 2))
	return base + jitter
}

const MaxRetries = 3
