// Package clock provides the frame-delta accumulators shared by all timed behaviors.
package clock

import "time"

// Clock tracks simulated time advanced by frame deltas.
type Clock struct {
	now   time.Duration
	ticks uint64
}

// Advance moves the clock forward by dt and returns the delta actually applied.
// Negative deltas are treated as zero so simulated time never runs backwards.
func (c *Clock) Advance(dt time.Duration) time.Duration {
	if dt < 0 {
		dt = 0
	}
	c.now += dt
	c.ticks++
	return dt
}

// Now returns the total simulated time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Ticks returns how many times the clock has been advanced.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}

// Timer accumulates elapsed time toward a target duration.
type Timer struct {
	elapsed time.Duration
	target  time.Duration
}

// NewTimer creates a timer that is due once target has elapsed.
func NewTimer(target time.Duration) Timer {
	return Timer{target: target}
}

// Add accumulates dt.
func (t *Timer) Add(dt time.Duration) {
	if dt > 0 {
		t.elapsed += dt
	}
}

// Due reports whether the accumulated time has reached the target.
func (t *Timer) Due() bool {
	return t.elapsed >= t.target
}

// Consume subtracts the target from the accumulated time if it is due.
// Leftover time carries into whatever the timer measures next.
func (t *Timer) Consume() bool {
	if !t.Due() {
		return false
	}
	t.elapsed -= t.target
	return true
}

// Retarget changes the target while keeping the accumulated time.
func (t *Timer) Retarget(target time.Duration) {
	t.target = target
}

// Reset clears the accumulated time and sets a new target.
func (t *Timer) Reset(target time.Duration) {
	t.elapsed = 0
	t.target = target
}

// Elapsed returns the accumulated time.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// Remaining returns the time left until the timer is due, never negative.
func (t *Timer) Remaining() time.Duration {
	if r := t.target - t.elapsed; r > 0 {
		return r
	}
	return 0
}

// FixedStep converts variable frame deltas into a whole number of fixed simulation steps.
type FixedStep struct {
	step     time.Duration
	maxSteps int
	acc      time.Duration
}

// NewFixedStep creates an accumulator for the given step size.
// maxSteps caps the work done for one frame so a stalled frame cannot snowball.
func NewFixedStep(step time.Duration, maxSteps int) *FixedStep {
	if maxSteps < 1 {
		maxSteps = 1
	}
	return &FixedStep{step: step, maxSteps: maxSteps}
}

// Advance adds a frame delta and returns how many fixed steps are due.
func (f *FixedStep) Advance(dt time.Duration) int {
	if dt > 0 {
		f.acc += dt
	}
	n := 0
	for f.acc >= f.step && n < f.maxSteps {
		f.acc -= f.step
		n++
	}
	// Drop the backlog once the cap is hit.
	if n == f.maxSteps && f.acc >= f.step {
		f.acc = 0
	}
	return n
}

// Step returns the fixed step size.
func (f *FixedStep) Step() time.Duration {
	return f.step
}
