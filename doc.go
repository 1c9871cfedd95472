/*
Package retry re-runs failing functions with bounded attempts, exponential
backoff, and optional jitter.

It drives a single attempt loop around a caller-supplied task, interleaving
task execution, a continuation predicate, a per-retry observer, and a computed
wait before each re-attempt. Configuration is declarative, via functional
options with sensible defaults, or a [Policy] value to predeclare a set of
options for re-use.

# Supported Function Types

The following function signatures are supported:

	|          Function Signature           | Retry Method |
	|---------------------------------------|--------------|
	| func(context.Context, int) error      | Do           |
	| func(context.Context, int)(OUT, error)| DoOut        |
	| func() error                          | Fn           |
	| func()(OUT, error)                    | FnOut        |
	| func(context.Context) error           | FnCtx        |
	| func(context.Context)(OUT, error)     | FnOutCtx     |

Where the int argument is the 0-based attempt number.

# Retry Workflow

A run invokes the task with attempt number 0 and, on failure, re-invokes it
with 1, 2, ... until one of the following conditions occurs:
  - The task returns a nil error. The run ends immediately with that result;
    no further hooks run and no wait is scheduled.
  - A [ShouldRetry] hook returns false. The run ends with the task's error.
  - The configured [MaxRetries] is exhausted. The run ends with the last
    task error.
  - The context is cancelled. The run ends with [context.Cause] of the
    context, and no further attempt is scheduled.

Between a failed attempt and the next one, the run first consults the
[ShouldRetry] hook, then calls the [OnRetry] observer, then waits. The wait
after attempt n is:

	BaseDelay * max(1, BackoffFactor^n)

scaled, when [Jitter] is set to j, by a factor drawn uniformly from
[1-j, 1+j]. A wait that computes to zero or below means the next attempt
starts immediately.

# Error Transparency

The run's error is always exactly the last error the task returned, never a
wrapper around it: status codes, sentinel identity, and errors.As targets all
survive. There is no distinct "retries exhausted" error.

The one sharp edge: an error returned by a [ShouldRetry] or [OnRetry] hook is
not distinguished from a task failure. It ends the run immediately and
displaces the task's own error as the result.
*/
package retry
