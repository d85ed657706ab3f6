package timeutil_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rohmanhakim/dom-patcher/pkg/timeutil"
)

func TestExponentialBackoffDelay_GrowsWithAttempts(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	param := timeutil.NewBackoffParam(1*time.Second, 2.0, 30*time.Second)

	assert.Equal(t, 1*time.Second, timeutil.ExponentialBackoffDelay(1, 0, *rng, param))
	assert.Equal(t, 2*time.Second, timeutil.ExponentialBackoffDelay(2, 0, *rng, param))
	assert.Equal(t, 4*time.Second, timeutil.ExponentialBackoffDelay(3, 0, *rng, param))
}

func TestExponentialBackoffDelay_CappedAtMax(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	param := timeutil.NewBackoffParam(1*time.Second, 2.0, 5*time.Second)

	assert.Equal(t, 5*time.Second, timeutil.ExponentialBackoffDelay(10, 0, *rng, param))
}

func TestExponentialBackoffDelay_JitterStaysInRange(t *testing.T) {
	param := timeutil.NewBackoffParam(1*time.Second, 2.0, 30*time.Second)
	jitter := 500 * time.Millisecond

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		delay := timeutil.ExponentialBackoffDelay(1, jitter, *rng, param)
		assert.GreaterOrEqual(t, delay, 1*time.Second)
		assert.Less(t, delay, 1*time.Second+jitter)
	}
}

func TestExponentialBackoffDelay_AttemptBelowOneClamps(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	param := timeutil.NewBackoffParam(1*time.Second, 2.0, 30*time.Second)

	assert.Equal(t, 1*time.Second, timeutil.ExponentialBackoffDelay(0, 0, *rng, param))
}

func TestDurationPtr(t *testing.T) {
	d := 3 * time.Second
	ptr := timeutil.DurationPtr(d)

	assert.NotNil(t, ptr)
	assert.Equal(t, d, *ptr)
}
