package clock

import (
	"testing"
	"time"
)

func TestClockAdvance(t *testing.T) {
	var c Clock
	c.Advance(100 * time.Millisecond)
	c.Advance(-50 * time.Millisecond)
	c.Advance(25 * time.Millisecond)

	if got, want := c.Now(), 125*time.Millisecond; got != want {
		t.Fatalf("Now() = %v, want %v", got, want)
	}
	if c.Ticks() != 3 {
		t.Fatalf("Ticks() = %d, want 3", c.Ticks())
	}
}

func TestTimerConsumeCarriesLeftover(t *testing.T) {
	tm := NewTimer(300 * time.Millisecond)
	tm.Add(200 * time.Millisecond)
	if tm.Consume() {
		t.Fatal("timer consumed before target")
	}
	if got := tm.Remaining(); got != 100*time.Millisecond {
		t.Fatalf("Remaining() = %v, want 100ms", got)
	}

	tm.Add(150 * time.Millisecond)
	if !tm.Consume() {
		t.Fatal("timer not consumed after target")
	}
	if got := tm.Elapsed(); got != 50*time.Millisecond {
		t.Fatalf("leftover = %v, want 50ms", got)
	}

	tm.Retarget(50 * time.Millisecond)
	if !tm.Due() {
		t.Fatal("leftover should satisfy the new target")
	}
	tm.Reset(time.Second)
	if tm.Due() || tm.Elapsed() != 0 {
		t.Fatalf("Reset did not clear timer: elapsed=%v", tm.Elapsed())
	}
}

func TestFixedStepAdvance(t *testing.T) {
	tests := []struct {
		name   string
		deltas []time.Duration
		want   []int
	}{
		{"exact steps", []time.Duration{20 * time.Millisecond, 20 * time.Millisecond}, []int{1, 1}},
		{"accumulates remainder", []time.Duration{15 * time.Millisecond, 15 * time.Millisecond, 10 * time.Millisecond}, []int{0, 1, 1}},
		{"caps a stalled frame", []time.Duration{time.Second, 20 * time.Millisecond}, []int{4, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFixedStep(20*time.Millisecond, 4)
			for i, dt := range tt.deltas {
				if got := f.Advance(dt); got != tt.want[i] {
					t.Fatalf("Advance #%d = %d, want %d", i, got, tt.want[i])
				}
			}
		})
	}
}
