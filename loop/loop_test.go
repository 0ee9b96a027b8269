package loop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type scriptedSurface struct {
	closeAfter int
	polls      int
	swaps      int
	onPoll     func(n int)
}

func (s *scriptedSurface) PollEvents() {
	s.polls++
	if s.onPoll != nil {
		s.onPoll(s.polls)
	}
}

func (s *scriptedSurface) ShouldClose() bool { return s.closeAfter >= 0 && s.polls > s.closeAfter }
func (s *scriptedSurface) SwapBuffers()      { s.swaps++ }

func stepClock(step time.Duration) Clock {
	var now time.Duration
	return func() time.Duration {
		now += step
		return now
	}
}

func TestRunStopsWhenSurfaceCloses(t *testing.T) {
	s := &scriptedSurface{closeAfter: 3}
	var seen []time.Duration

	n, err := Run(context.Background(), s, stepClock(16*time.Millisecond), func(elapsed time.Duration) {
		seen = append(seen, elapsed)
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, s.swaps)
	assert.Equal(t, []time.Duration{16 * time.Millisecond, 32 * time.Millisecond, 48 * time.Millisecond}, seen)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &scriptedSurface{closeAfter: -1}
	s.onPoll = func(n int) {
		if n == 5 {
			cancel()
		}
	}

	n, err := Run(ctx, s, stepClock(time.Millisecond), func(time.Duration) {})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 5, n)
}

func TestRunNeverStartsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &scriptedSurface{closeAfter: -1}

	n, err := Run(ctx, s, stepClock(time.Millisecond), func(time.Duration) { t.Fatal("frame rendered") })

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
	assert.Zero(t, s.polls)
}

func TestSinceStartIsMonotonic(t *testing.T) {
	c := SinceStart()
	a := c()
	b := c()
	assert.GreaterOrEqual(t, b, a)
	assert.GreaterOrEqual(t, a, time.Duration(0))
}

func TestFPSMeter(t *testing.T) {
	var m FPSMeter
	start := time.Unix(100, 0)

	for i := 0; i < 59; i++ {
		_, ok := m.Tick(start.Add(time.Duration(i) * time.Second / 60))
		assert.False(t, ok)
	}
	fps, ok := m.Tick(start.Add(time.Second))
	assert.True(t, ok)
	assert.InDelta(t, 60, fps, 1e-9)

	_, ok = m.Tick(start.Add(time.Second + time.Millisecond))
	assert.False(t, ok)
}
