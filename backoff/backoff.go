package backoff

import (
	"math"
	"math/rand"
	"time"
)

// maxintf serves as a backstop against float64->int64 overflow
const maxintf = float64(math.MaxInt64) - 1

// Iterator produces the wait duration to apply after each successive failed
// attempt. The first call returns the wait following attempt 0, the second
// the wait following attempt 1, and so on.
type Iterator func() time.Duration

// New returns an Iterator implementing exponential backoff with optional
// multiplicative jitter.
//
// The raw wait after attempt n is base * max(1, factor^n), so a factor of 1
// (or anything below it) yields constant spacing of base and the wait never
// shrinks below base. If jitter is positive, the raw wait is scaled by
// 1 + (u*2-1)*jitter, where u is drawn from rnd once per call. Results that
// come out non-positive, or not a number, collapse to zero.
//
// rnd must return uniform values in [0,1). If nil, math/rand.Float64 is used.
func New(base time.Duration, factor, jitter float64, rnd func() float64) Iterator {
	if rnd == nil {
		rnd = rand.Float64
	}
	basef := float64(base)
	attempt := 0
	return func() time.Duration {
		growth := math.Pow(factor, float64(attempt))
		attempt++
		if !(growth > 1) {
			growth = 1
		}
		out := basef * growth
		if jitter > 0 {
			out = math.Floor(out * (1 + (rnd()*2-1)*jitter))
		}
		switch {
		case out > maxintf:
			return time.Duration(math.MaxInt64)
		case out > 0:
			return time.Duration(out)
		default:
			// negative, zero, and NaN all mean "no pause"
			return 0
		}
	}
}
