package timeutil

import (
	"math"
	"math/rand"
	"time"
)

// DurationPtr is a helper function to create a pointer to a time.Duration
func DurationPtr(d time.Duration) *time.Duration {
	return &d
}

// ExponentialBackoffDelay computes the delay before the next retry attempt.
// The delay grows as initialDuration * multiplier^(attempt-1), capped at
// maxDuration, with a random jitter in [0, jitter) added on top.
// attempt is 1-based: attempt 1 yields the initial duration.
func ExponentialBackoffDelay(
	attempt int,
	jitter time.Duration,
	rng rand.Rand,
	backoffParam BackoffParam,
) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	backoff := float64(backoffParam.InitialDuration()) *
		math.Pow(backoffParam.Multiplier(), float64(attempt-1))

	if maxBackoff := float64(backoffParam.MaxDuration()); backoffParam.MaxDuration() > 0 && backoff > maxBackoff {
		backoff = maxBackoff
	}

	delay := time.Duration(backoff)

	if jitter > 0 {
		delay += time.Duration(rng.Int63n(int64(jitter)))
	}

	return delay
}
