package retry

import "time"

// Policy allows you to predefine all of the options for a retry run ahead of
// time and set them using [WithPolicy]
type Policy struct {
	// Number of retries after the initial attempt. A zero value selects the
	// default; a negative value disables retries entirely.
	// Default: 3
	MaxRetries int
	// Wait before the first retry.
	// Default: 0
	BaseDelay time.Duration
	// Exponential multiplier per attempt -- see [BackoffFactor]
	// Default: 1
	BackoffFactor float64
	// Fractional wait randomization -- see [Jitter]
	// Default: 0
	Jitter float64
	// ShouldRetry decides whether a failure is retried -- see [ShouldRetry]
	ShouldRetry ShouldRetryFn
	// OnRetry observes each retried failure -- see [OnRetry]
	OnRetry OnRetryFn
	// Rand overrides the jitter random source -- see [Rand]
	Rand func() float64
}
