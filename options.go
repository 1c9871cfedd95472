package retry

import (
	"context"
	"math/rand"
	"time"
)

// ShouldRetryFn decides whether a failed attempt should be retried. It
// receives the attempt's error and the 0-based attempt number. It may block
// (for example, to consult an external source) and should honor ctx if it
// does. Returning false stops the run immediately and surfaces the attempt's
// error. A non-nil error from the hook itself becomes the result of the whole
// run, displacing the task's error.
type ShouldRetryFn func(ctx context.Context, err error, attempt int) (bool, error)

// OnRetryFn observes a failed attempt that is about to be retried. It runs
// after ShouldRetry has approved the retry and before the backoff wait. A
// non-nil return becomes the result of the whole run, displacing the task's
// error.
type OnRetryFn func(ctx context.Context, err error, attempt int) error

// Option represents an optional retry setting.
type Option func(o *opts)

// WithPolicy applies the settings in a [Policy] to a run, allowing you to
// reuse a set of options for multiple functions.
func WithPolicy(p Policy) Option {
	return func(o *opts) {
		o.maxRetries = p.MaxRetries
		o.haveMaxRetries = p.MaxRetries != 0
		o.baseDelay = p.BaseDelay
		o.backoffFactor = p.BackoffFactor
		o.jitter = p.Jitter
		o.shouldRetry = p.ShouldRetry
		o.onRetry = p.OnRetry
		o.rand = p.Rand
	}
}

// MaxRetries sets the number of retries to attempt after the initial try, so
// a run makes at most n+1 calls in total. Negative values behave as 0 (no
// retries). If unset, it will default to DefaultMaxRetries (3).
func MaxRetries(n int) Option {
	return func(o *opts) {
		o.maxRetries = n
		o.haveMaxRetries = true
	}
}

// BaseDelay sets the wait before the first retry, and serves to scale the
// rest of the run. Defaults to DefaultBaseDelay (0, no waiting).
func BaseDelay(d time.Duration) Option {
	return func(o *opts) {
		o.baseDelay = d
	}
}

// BackoffFactor sets the multiplier applied exponentially per attempt: the
// wait after attempt n is BaseDelay * factor^n. Values at or below 1 yield
// constant BaseDelay spacing; the wait never shrinks below BaseDelay. If
// unset or 0, it will default to DefaultBackoffFactor (1).
func BackoffFactor(factor float64) Option {
	return func(o *opts) {
		o.backoffFactor = factor
	}
}

// Jitter sets a fractional randomization of each computed wait: 0.5 spreads
// waits over ±50% of the computed value. 0 disables jitter. Values are not
// range-checked; a computed wait at or below zero simply means no pause.
// Defaults to DefaultJitter (0).
func Jitter(frac float64) Option {
	return func(o *opts) {
		o.jitter = frac
	}
}

// ShouldRetry sets the retry-continuation policy, consulted after every
// failed attempt. Defaults to nil, which retries every failure.
func ShouldRetry(fn ShouldRetryFn) Option {
	return func(o *opts) {
		o.shouldRetry = fn
	}
}

// OnRetry sets an observer called once per retried attempt, before the
// backoff wait. It is never called after the final failed attempt or after a
// success. Defaults to nil, which takes no action.
func OnRetry(fn OnRetryFn) Option {
	return func(o *opts) {
		o.onRetry = fn
	}
}

// Rand sets the uniform random source used for jitter. fn must return values
// in [0,1). It is drawn exactly once per attempt when jitter is enabled,
// which lets tests supply a fixed sequence for deterministic waits. Defaults
// to math/rand.Float64.
func Rand(fn func() float64) Option {
	return func(o *opts) {
		o.rand = fn
	}
}

func applyDefaults(ro *opts) {
	if !ro.haveMaxRetries {
		ro.maxRetries = DefaultMaxRetries
	}
	if ro.maxRetries < 0 {
		ro.maxRetries = 0
	}
	if ro.backoffFactor == 0 {
		ro.backoffFactor = DefaultBackoffFactor
	}
	if ro.rand == nil {
		ro.rand = rand.Float64
	}
}

type opts struct {
	maxRetries     int
	haveMaxRetries bool
	baseDelay      time.Duration
	backoffFactor  float64
	jitter         float64
	shouldRetry    ShouldRetryFn
	onRetry        OnRetryFn
	rand           func() float64
}
