// Package loop runs game sessions: the per-player world, match and contact handling,
// and the paced frame loop that drives them.
package loop

import (
	"context"
	"time"
)

// FrameFunc runs one frame with the time since the previous frame.
// Returning false stops the loop.
type FrameFunc func(delta time.Duration) (running bool, err error)

// Run calls frame at most once per frameTime until it returns false, fails, or ctx is done.
func Run(ctx context.Context, frameTime time.Duration, frame FrameFunc) error {
	timer := time.NewTimer(frameTime)
	defer timer.Stop()

	lastTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		running, err := frame(delta)
		if err != nil {
			return err
		}
		if !running {
			return nil
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed >= frameTime {
			continue
		}
		timer.Reset(frameTime - elapsed)
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
}
