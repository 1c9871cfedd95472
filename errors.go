package retry

import (
	"context"
	"errors"
)

// StopOn is a shortcut to writing a [ShouldRetryFn] of the form
//
//	func(_ context.Context, e error, _ int) (bool, error) {
//	    return !(errors.Is(e, Err1) || errors.Is(e, Err2)) /* ... */, nil
//	}
//
// Any failure matching one of errs ends the run immediately; everything else
// is retried.
func StopOn(errs ...error) Option {
	return ShouldRetry(func(_ context.Context, e error, _ int) (bool, error) {
		return !errIsAny(e, errs), nil
	})
}

// RetryOn is the inverse of [StopOn]: only failures matching one of errs are
// retried, and anything else ends the run immediately.
func RetryOn(errs ...error) Option {
	return ShouldRetry(func(_ context.Context, e error, _ int) (bool, error) {
		return errIsAny(e, errs), nil
	})
}

func errIsAny(e error, errs []error) bool {
	for i := range errs {
		if errors.Is(e, errs[i]) {
			return true
		}
	}
	return false
}
