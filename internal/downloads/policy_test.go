package downloads

import (
	"testing"
	"time"
)

func fixedJitterPolicy(ceiling time.Duration, genericRetries int) *Policy {
	p := NewPolicy(ceiling, genericRetries)
	p.jitter = func() float64 { return 0.5 } // factor exactly 1.0
	return p
}

// TestShouldRetryAttemptBudgets checks each category stops retrying at
// exactly its attempt budget.
func TestShouldRetryAttemptBudgets(t *testing.T) {
	t.Parallel()
	p := fixedJitterPolicy(0, 3)

	tests := []struct {
		cat         Category
		maxAttempts int
	}{
		{CatBotDetection, 2},
		{CatNetwork, 5},
		{CatUnknown, 3},
		{CatUnavailable, 1},
		{CatFilesystem, 1},
		{CatDependency, 1},
	}

	for _, tc := range tests {
		for attempt := 1; attempt <= tc.maxAttempts+2; attempt++ {
			retry, _ := p.ShouldRetry(tc.cat, attempt)
			want := attempt < tc.maxAttempts
			if retry != want {
				t.Errorf("%s attempt %d: retry = %v, want %v", tc.cat, attempt, retry, want)
			}
		}
	}
}

// TestShouldRetryDelays checks exponential growth with the documented base
// delays, monotone within a category.
func TestShouldRetryDelays(t *testing.T) {
	t.Parallel()
	p := fixedJitterPolicy(10*time.Minute, 3)

	// Network: base 3s, doubling per attempt.
	wantNetwork := []time.Duration{3 * time.Second, 6 * time.Second, 12 * time.Second, 24 * time.Second}
	for i, want := range wantNetwork {
		retry, delay := p.ShouldRetry(CatNetwork, i+1)
		if !retry {
			t.Fatalf("network attempt %d should retry", i+1)
		}
		if delay != want {
			t.Errorf("network attempt %d: delay = %v, want %v", i+1, delay, want)
		}
	}

	// Bot detection: base 60s.
	if _, delay := p.ShouldRetry(CatBotDetection, 1); delay != 60*time.Second {
		t.Errorf("bot attempt 1: delay = %v, want 60s", delay)
	}

	// Monotone non-decreasing with fixed jitter.
	var prev time.Duration
	for attempt := 1; attempt < 5; attempt++ {
		_, delay := p.ShouldRetry(CatNetwork, attempt)
		if delay < prev {
			t.Fatalf("delay decreased at attempt %d: %v < %v", attempt, delay, prev)
		}
		prev = delay
	}
}

func TestShouldRetryCeiling(t *testing.T) {
	t.Parallel()
	p := fixedJitterPolicy(5*time.Second, 3)

	for attempt := 1; attempt < 5; attempt++ {
		if retry, delay := p.ShouldRetry(CatNetwork, attempt); retry && delay > 5*time.Second {
			t.Errorf("attempt %d: delay %v exceeds ceiling", attempt, delay)
		}
	}
}

// TestShouldRetryJitterBounds checks real jitter stays within the
// documented [0.8, 1.2) band.
func TestShouldRetryJitterBounds(t *testing.T) {
	t.Parallel()
	p := NewPolicy(10*time.Minute, 3)

	base := 3 * time.Second
	for i := 0; i < 200; i++ {
		retry, delay := p.ShouldRetry(CatNetwork, 1)
		if !retry {
			t.Fatal("network attempt 1 should retry")
		}
		lo := time.Duration(float64(base) * 0.8)
		hi := time.Duration(float64(base) * 1.2)
		if delay < lo || delay > hi {
			t.Fatalf("jittered delay %v outside [%v, %v]", delay, lo, hi)
		}
	}
}

// TestGenericRetriesConfigurable checks the configured retry count applies
// to unclassified failures only.
func TestGenericRetriesConfigurable(t *testing.T) {
	t.Parallel()
	p := fixedJitterPolicy(0, 7)

	if retry, _ := p.ShouldRetry(CatUnknown, 6); !retry {
		t.Error("unknown attempt 6 of 7 should retry")
	}
	if retry, _ := p.ShouldRetry(CatUnknown, 7); retry {
		t.Error("unknown attempt 7 of 7 should not retry")
	}
	if retry, _ := p.ShouldRetry(CatBotDetection, 2); retry {
		t.Error("bot budget must not be affected by generic retries")
	}
}
