package downloads

import (
	"math"
	"math/rand"
	"time"
)

// retryRule is one category's attempt budget and base delay.
type retryRule struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// Policy decides whether a classified failure is retried and how long to
// wait first. The table is static per run; delays are not adaptive.
type Policy struct {
	Ceiling time.Duration
	rules   map[Category]retryRule

	// jitter returns a value in [0,1); swapped out in tests.
	jitter func() float64
}

// NewPolicy builds the retry table. genericRetries replaces the attempt
// budget for unclassified failures (the configured max_retries);
// category-specific budgets are fixed.
func NewPolicy(ceiling time.Duration, genericRetries int) *Policy {
	if ceiling <= 0 {
		ceiling = 120 * time.Second
	}
	if genericRetries < 1 {
		genericRetries = 3
	}

	return &Policy{
		Ceiling: ceiling,
		rules: map[Category]retryRule{
			CatBotDetection: {MaxAttempts: 2, BaseDelay: 60 * time.Second},
			CatNetwork:      {MaxAttempts: 5, BaseDelay: 3 * time.Second},
			CatUnknown:      {MaxAttempts: genericRetries, BaseDelay: 5 * time.Second},
			CatUnavailable:  {MaxAttempts: 1},
			CatFilesystem:   {MaxAttempts: 1},
			CatDependency:   {MaxAttempts: 1},
		},
		jitter: rand.Float64,
	}
}

// ShouldRetry reports whether another attempt should follow attempt number
// `attempt` for the given failure category, and the backoff delay before
// it. Delay grows exponentially with the attempt number, multiplied by
// uniform jitter in [0.8, 1.2) and capped at the ceiling.
func (p *Policy) ShouldRetry(cat Category, attempt int) (bool, time.Duration) {
	rule, ok := p.rules[cat]
	if !ok {
		rule = p.rules[CatUnknown]
	}

	if attempt >= rule.MaxAttempts {
		return false, 0
	}

	delay := time.Duration(float64(rule.BaseDelay) * math.Pow(2, float64(attempt-1)))
	if delay > p.Ceiling {
		delay = p.Ceiling
	}

	factor := 0.8 + 0.4*p.jitter()
	jittered := time.Duration(float64(delay) * factor)
	if jittered > p.Ceiling {
		jittered = p.Ceiling
	}
	return true, jittered
}
