package pipeline

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lexsift/lexsift/internal/cellar"
)

func TestIsRetryable(t *testing.T) {
	serverErr := &cellar.StatusError{StatusCode: 502}
	if !IsRetryable(serverErr) {
		t.Error("502 should be retryable")
	}
	if !IsRetryable(fmt.Errorf("wrapped: %w", serverErr)) {
		t.Error("wrapped retryable error not detected")
	}

	clientErr := &cellar.StatusError{StatusCode: 404}
	if IsRetryable(clientErr) {
		t.Error("404 should not be retryable")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("plain error should not be retryable")
	}
	if IsRetryable(nil) {
		t.Error("nil should not be retryable")
	}
}

func TestBackoffGrowsAndCaps(t *testing.T) {
	for attempt := 0; attempt < 10; attempt++ {
		d := Backoff(attempt)
		if d < time.Second {
			t.Errorf("Backoff(%d) = %v, below base", attempt, d)
		}
		if d > 45*time.Second {
			t.Errorf("Backoff(%d) = %v, above cap plus jitter", attempt, d)
		}
	}
}
