package clockwork

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeClock_AdvanceMovesNowMonotonically(t *testing.T) {
	start := time.Unix(1000, 0)
	c := NewFakeClock(start)

	assert.True(t, c.Now().Equal(start))

	c.Advance(5 * time.Second)
	assert.True(t, c.Now().Equal(start.Add(5*time.Second)))
}

func TestFakeClock_SleepAdvancesImmediatelyWithoutBlocking(t *testing.T) {
	start := time.Unix(0, 0)
	c := NewFakeClock(start)

	done := make(chan struct{})
	go func() {
		_ = c.Sleep(context.Background(), time.Hour)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("FakeClock.Sleep must return immediately, not block for real wall-clock time")
	}
	assert.True(t, c.Now().Equal(start.Add(time.Hour)))
}

func TestFakeClock_SleepRespectsAlreadyCancelledContext(t *testing.T) {
	c := NewFakeClock(time.Unix(0, 0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Sleep(ctx, time.Second)
	assert.Error(t, err)
}

func TestRealClock_SleepRespectsContextCancellation(t *testing.T) {
	c := RealClock{}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := c.Sleep(ctx, time.Hour)
	assert.Error(t, err)
	assert.True(t, time.Since(start) < time.Second)
}

func TestFakeRandomSource_ReplaysSamplesThenRepeatsLast(t *testing.T) {
	r := NewFakeRandomSource(0.1, 0.2, 0.3)

	assert.Equal(t, 0.1, r.Float64())
	assert.Equal(t, 0.2, r.Float64())
	assert.Equal(t, 0.3, r.Float64())
	assert.Equal(t, 0.3, r.Float64(), "must repeat the last sample once exhausted")
	assert.Equal(t, 0.3, r.Float64())
}

func TestFakeRandomSource_EmptyReturnsZero(t *testing.T) {
	r := NewFakeRandomSource()
	assert.Equal(t, 0.0, r.Float64())
}

func TestRealRandomSource_ProducesValuesInUnitRange(t *testing.T) {
	r := NewRealRandomSource(42)
	for i := 0; i < 100; i++ {
		v := r.Float64()
		assert.True(t, v >= 0.0 && v < 1.0)
	}
}
