package llm

import (
	"context"
	"math/rand/v2"
	"time"
)

// RetryPolicy bounds the resilient invoker.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryPolicy matches the tuning used for Gemini overload responses.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		BaseDelay:   600 * time.Millisecond,
		MaxDelay:    8 * time.Second,
	}
}

// Delay returns the wait before the attempt that follows the given 1-based
// attempt. The exponential ceiling min(maxDelay, base*2^(attempt-1)) is the
// upper bound and base/2 the lower bound of a uniform draw; when the ceiling
// is below base/2 the draw collapses to the ceiling. The result is rounded to
// whole milliseconds.
func Delay(attempt int, base, maxDelay time.Duration) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if base <= 0 {
		return 0
	}
	if maxDelay < base {
		maxDelay = base
	}

	ceiling := maxDelay
	if shift := attempt - 1; shift < 62 {
		if scaled := base << shift; scaled > 0 && scaled>>shift == base && scaled < maxDelay {
			ceiling = scaled
		}
	}

	floor := base / 2
	if ceiling <= floor {
		return ceiling.Round(time.Millisecond)
	}

	d := floor + time.Duration(rand.Int64N(int64(ceiling-floor)+1))
	return d.Round(time.Millisecond)
}

// Sleeper suspends the calling goroutine. Implementations must return early
// with ctx.Err() once the context is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to the Sleeper interface.
type SleeperFunc func(ctx context.Context, d time.Duration) error

func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

// TimerSleeper waits on a timer and gives up as soon as ctx is done.
var TimerSleeper Sleeper = SleeperFunc(sleepContext)

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
