package retry

import (
	"context"
	"fmt"
	"time"
)

type retryCtxKeyT string

const (
	retryCtxKey retryCtxKeyT = "retry"
)

// GetStatus can be used to retrieve information about the current retry loop
// from within the function being retried, as opposed to receiving the attempt
// number as an argument via [Do].
// It will return Status{} if not called in a retry context.
func GetStatus(ctx context.Context) Status {
	stats := ctx.Value(retryCtxKey)
	if stats == nil {
		return Status{}
	}
	return stats.(Status)
}

// Status represents the state of the current retry loop as seen by the
// attempt in flight.
type Status struct {
	// Attempt is the 0-based number of the attempt in flight.
	Attempt int
	// MaxRetries is the configured retry limit, so the run makes at most
	// MaxRetries+1 attempts.
	MaxRetries int
	// Err is the failure of the previous attempt, or nil on the first.
	Err error
	// NextDelay is the wait that will follow this attempt if it fails and a
	// retry is permitted.
	NextDelay time.Duration
}

// String implements fmt.Stringer
func (s Status) String() string {
	return fmt.Sprintf("attempt %d/%d", s.Attempt+1, s.MaxRetries+1)
}

// Format implements fmt.Formatter. It supports the %s and %q print verbs.
// Output is flag-dependent:
//
//	%s -  "attempt #/#"
//	%+s - "attempt #/# - next in <duration>"
//
// Where '#/#' is the 1-based attempt number over the maximum number of
// attempts the run may make.
func (s Status) Format(state fmt.State, verb rune) {
	switch verb {
	case 's', 'q':
		str := s.String()
		if state.Flag('+') {
			str = fmt.Sprintf("%s - next in %v", str, shortNext(s.NextDelay))
		}
		if verb == 'q' {
			str = fmt.Sprintf("%q", str)
		}
		fmt.Fprint(state, str)
	}
}

// Next returns a time.Time value representing the approximate time the next
// attempt will occur, assuming the current one has just failed.
func (s Status) Next() time.Time {
	return time.Now().Add(s.NextDelay)
}

// shortNext rounds a delay to a human scale for display.
func shortNext(d time.Duration) time.Duration {
	if d < time.Second {
		return d.Round(time.Millisecond)
	}
	return d.Round(time.Second)
}
