// Package loop drives a render callback once per displayed frame until the
// surface closes or the context is cancelled.
package loop

import (
	"context"
	"time"
)

// Surface is a presentable render target.
type Surface interface {
	// PollEvents processes pending window events. Surfaces driven by an
	// external frame scheduler block here until the next frame is due.
	PollEvents()
	ShouldClose() bool
	SwapBuffers()
}

// Clock reports the time elapsed since the session started.
type Clock func() time.Duration

// SinceStart returns a Clock measuring from the moment it is called.
func SinceStart() Clock {
	start := time.Now()
	return func() time.Duration { return time.Since(start) }
}

// Frame renders one frame for the given elapsed time.
type Frame func(elapsed time.Duration)

// Run renders frames until s reports it should close or ctx is done. It
// returns the number of frames rendered, and ctx.Err() if it stopped because
// of cancellation.
func Run(ctx context.Context, s Surface, clock Clock, frame Frame) (int, error) {
	frames := 0
	for {
		if err := ctx.Err(); err != nil {
			return frames, err
		}
		s.PollEvents()
		if s.ShouldClose() {
			return frames, nil
		}
		frame(clock())
		s.SwapBuffers()
		frames++
	}
}
