package control

import (
	"time"

	"github.com/tomz197/starfighter/internal/clock"
)

// FireLimiter gates projectile emission with a time-accumulated cooldown.
// Spacing between shots never drops below the delay, whatever the frame rate.
type FireLimiter struct {
	delay time.Duration
	timer clock.Timer
}

// NewFireLimiter creates a limiter whose first shot is allowed after one delay.
func NewFireLimiter(delay time.Duration) *FireLimiter {
	return &FireLimiter{
		delay: delay,
		timer: clock.NewTimer(delay),
	}
}

// TryFire accumulates dt and reports whether one projectile should be emitted now.
// Time keeps accumulating while the trigger is released.
func (f *FireLimiter) TryFire(dt time.Duration, trigger bool) bool {
	f.timer.Add(dt)
	if !trigger || !f.timer.Due() {
		return false
	}
	// Threshold moves one delay past the accumulated time, which restarts from zero.
	f.timer.Reset(f.delay)
	return true
}

// Cooldown returns the time until the next shot is allowed, never negative.
func (f *FireLimiter) Cooldown() time.Duration {
	return f.timer.Remaining()
}

// Triggered combines the binary fire button with an analog trigger value.
func Triggered(button bool, analog, threshold float64) bool {
	return button || analog > threshold
}
