package retry

import (
	"context"
	"time"

	"toil.dev/retry/backoff"
)

const (
	DefaultMaxRetries    = 3
	DefaultBaseDelay     = time.Duration(0)
	DefaultBackoffFactor = 1.0
	DefaultJitter        = 0.0
)

// Do runs fn, retrying failures according to the supplied options. fn
// receives the 0-based attempt number; the first call gets 0, and a run makes
// at most MaxRetries+1 calls in total.
//
// The error returned is nil after the first successful call, or the error of
// the last failed call once retries are exhausted or a [ShouldRetry] hook has
// vetoed continuation. Task errors are surfaced verbatim, never wrapped, so
// the caller can still inspect them with errors.Is and errors.As. For the
// full retry workflow, see the package documentation.
func Do(
	ctx context.Context,
	fn func(ctx context.Context, attempt int) error,
	options ...Option,
) error {
	opts := &opts{}
	for _, o := range options {
		o(opts)
	}
	applyDefaults(opts)
	next := backoff.New(opts.baseDelay, opts.backoffFactor, opts.jitter, opts.rand)
	t := time.NewTimer(time.Hour)
	t.Stop()
	var lastErr error
	for attempt := 0; ; attempt++ {
		// prefetch the wait that would follow this attempt so that the task
		// can see it in its Status.
		delay := next()
		status := Status{
			Attempt:    attempt,
			MaxRetries: opts.maxRetries,
			Err:        lastErr,
			NextDelay:  delay,
		}
		rctx := context.WithValue(ctx, retryCtxKey, status)
		err := fn(rctx, attempt)
		if err == nil {
			return nil
		}
		lastErr = err
		if opts.shouldRetry != nil {
			keep, hookErr := opts.shouldRetry(ctx, lastErr, attempt)
			if hookErr != nil {
				return hookErr
			}
			if !keep {
				return lastErr
			}
		}
		if attempt >= opts.maxRetries {
			return lastErr
		}
		if opts.onRetry != nil {
			if hookErr := opts.onRetry(ctx, lastErr, attempt); hookErr != nil {
				return hookErr
			}
		}
		if delay > 0 {
			t.Reset(delay)
			select {
			case <-ctx.Done():
				if !t.Stop() {
					<-t.C
				}
				return context.Cause(ctx)
			case <-t.C:
			}
		} else if cause := context.Cause(ctx); cause != nil {
			return cause
		}
	}
}

// DoOut is the value-returning form of [Do], for tasks with the signature:
//
//	func(context.Context, int) (OUT, error)
//
// Where OUT is a return value of any type.
//
// The function will be retried following the rules described in the package
// documentation, and will return the value of the first successful run or the
// error of the final unsuccessful one.
func DoOut[OUT any](
	ctx context.Context,
	fn func(ctx context.Context, attempt int) (OUT, error),
	options ...Option,
) (OUT, error) {
	var (
		zero  OUT
		val   OUT
		fnErr error
	)
	err := Do(ctx, func(ictx context.Context, attempt int) error {
		val, fnErr = fn(ictx, attempt)
		return fnErr
	}, options...)
	if err != nil {
		return zero, err
	}
	return val, nil
}

// Fn is a retrier for functions with the signature of:
//
//	func() error
//
// for callers that need neither the context nor the attempt number. The task
// can still recover the attempt number with [GetStatus] if needed.
func Fn(ctx context.Context, fn func() error, options ...Option) error {
	return Do(ctx, func(context.Context, int) error {
		return fn()
	}, options...)
}

// FnOut is a retrier for functions with the signature of:
//
//	func() (OUT, error)
//
// Where OUT is a return value of any type. It is the value-returning form of
// [Fn].
func FnOut[OUT any](
	ctx context.Context,
	fn func() (OUT, error),
	options ...Option,
) (OUT, error) {
	return DoOut(ctx, func(context.Context, int) (OUT, error) {
		return fn()
	}, options...)
}

// FnCtx is a retrier for functions with the signature of:
//
//	func(context.Context) error
//
// The context passed to fn carries the run's [Status].
func FnCtx(
	ctx context.Context,
	fn func(ctx context.Context) error,
	options ...Option,
) error {
	return Do(ctx, func(ictx context.Context, _ int) error {
		return fn(ictx)
	}, options...)
}

// FnOutCtx is a retrier for functions with the signature of:
//
//	func(context.Context) (OUT, error)
//
// Where OUT is a return value of any type. It is the value-returning form of
// [FnCtx].
func FnOutCtx[OUT any](
	ctx context.Context,
	fn func(ctx context.Context) (OUT, error),
	options ...Option,
) (OUT, error) {
	return DoOut(ctx, func(ictx context.Context, _ int) (OUT, error) {
		return fn(ictx)
	}, options...)
}
