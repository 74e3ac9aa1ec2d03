package control

import (
	"math"
	"testing"
	"time"

	"github.com/tomz197/starfighter/internal/input"
	"github.com/tomz197/starfighter/internal/physics"
)

func newTestMover() *Mover {
	return &Mover{
		Speed:    2,
		Tilt:     0.1,
		Boundary: physics.Rect{XMin: -5, XMax: 5, ZMin: -5, ZMax: 5},
	}
}

func TestFireLimiterSpacing(t *testing.T) {
	f := NewFireLimiter(500 * time.Millisecond)

	var shots []int
	for tick := 1; tick <= 50; tick++ {
		if f.TryFire(100*time.Millisecond, true) {
			shots = append(shots, tick)
		}
	}

	if len(shots) != 10 {
		t.Fatalf("shots = %v, want 10 shots", shots)
	}
	for i, tick := range shots {
		if want := (i + 1) * 5; tick != want {
			t.Fatalf("shot %d at tick %d, want tick %d (all: %v)", i, tick, want, shots)
		}
	}
}

func TestFireLimiterAccumulatesWhileIdle(t *testing.T) {
	f := NewFireLimiter(500 * time.Millisecond)
	for i := 0; i < 10; i++ {
		if f.TryFire(100*time.Millisecond, false) {
			t.Fatal("fired without trigger")
		}
	}
	if f.Cooldown() != 0 {
		t.Fatalf("Cooldown() = %v, want 0 after idling", f.Cooldown())
	}
	if !f.TryFire(0, true) {
		t.Fatal("expected immediate shot after idling past the delay")
	}
	if f.Cooldown() != 500*time.Millisecond {
		t.Fatalf("Cooldown() = %v, want 500ms after firing", f.Cooldown())
	}
}

func TestFireLimiterOneShotPerCall(t *testing.T) {
	f := NewFireLimiter(100 * time.Millisecond)
	if !f.TryFire(10*time.Second, true) {
		t.Fatal("expected a shot after a long frame")
	}
	if f.TryFire(0, true) {
		t.Fatal("a long frame must not bank extra shots")
	}
}

func TestTriggered(t *testing.T) {
	tests := []struct {
		button bool
		analog float64
		want   bool
	}{
		{false, 0, false},
		{true, 0, true},
		{false, 0.2, false},
		{false, 0.25, true},
	}
	for _, tt := range tests {
		if got := Triggered(tt.button, tt.analog, 0.2); got != tt.want {
			t.Errorf("Triggered(%v, %v) = %v, want %v", tt.button, tt.analog, got, tt.want)
		}
	}
}

func TestMoverClampsToBoundary(t *testing.T) {
	m := newTestMover()
	m.Speed = 100
	var k physics.Kinematic

	m.Integrate(&k, time.Second, input.Axes{Horizontal: 1}, input.Pointer{})

	if k.Position.X != 5 {
		t.Fatalf("position.x = %v, want 5", k.Position.X)
	}
	if k.Velocity.X != 100 {
		t.Fatalf("velocity.x = %v, want 100", k.Velocity.X)
	}
}

func TestMoverPinsHeight(t *testing.T) {
	m := newTestMover()
	k := physics.Kinematic{Position: physics.Vec3{Y: 3}}
	m.Integrate(&k, 20*time.Millisecond, input.Axes{}, input.Pointer{})
	if k.Position.Y != 0 {
		t.Fatalf("position.y = %v, want 0", k.Position.Y)
	}
}

func TestMoverPointerIsAdditive(t *testing.T) {
	tests := []struct {
		name  string
		axes  input.Axes
		ptr   input.Pointer
		wantX float64
		wantZ float64
	}{
		{"pointer only", input.Axes{}, input.Pointer{X: 1, Force: 1}, 1, 0},
		{"axes and pointer", input.Axes{Horizontal: 1}, input.Pointer{X: 1, Force: 1}, 3, 0},
		{"pointer forward", input.Axes{}, input.Pointer{Y: 1, Force: 0.5}, 0, 1},
		{"pointer without force", input.Axes{}, input.Pointer{X: 1}, 0, 0},
		{"pointer blend is normalized", input.Axes{}, input.Pointer{X: 1, Y: 1, Force: 1}, math.Sqrt2 / 2, math.Sqrt2 / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMover()
			var k physics.Kinematic
			m.Integrate(&k, time.Second, tt.axes, tt.ptr)
			if math.Abs(k.Position.X-tt.wantX) > 1e-9 || math.Abs(k.Position.Z-tt.wantZ) > 1e-9 {
				t.Fatalf("position = %+v, want x=%v z=%v", k.Position, tt.wantX, tt.wantZ)
			}
		})
	}
}

func TestMoverPointerRespectsThreshold(t *testing.T) {
	m := newTestMover()
	m.PointerThreshold = 0.5
	var k physics.Kinematic
	m.Integrate(&k, time.Second, input.Axes{}, input.Pointer{X: 1, Force: 0.5})
	if k.Position.X != 0 {
		t.Fatalf("position.x = %v, want 0 at threshold", k.Position.X)
	}
}

func TestMoverPointerClampsIndependently(t *testing.T) {
	m := newTestMover()
	m.Speed = 40
	var k physics.Kinematic
	// Primary path drives into the left wall, pointer path pushes right from there.
	m.Integrate(&k, time.Second, input.Axes{Horizontal: -1}, input.Pointer{X: 1, Force: 1})
	if k.Position.X != 5 {
		t.Fatalf("position.x = %v, want 5 (-5 clamp then +20 clamp)", k.Position.X)
	}
}

func TestMoverTilt(t *testing.T) {
	m := newTestMover()
	m.Speed = 10
	var k physics.Kinematic
	m.Integrate(&k, 20*time.Millisecond, input.Axes{Horizontal: 1}, input.Pointer{})
	if math.Abs(k.Rotation.Roll-(-1)) > 1e-9 {
		t.Fatalf("roll = %v, want -1", k.Rotation.Roll)
	}
	m.Integrate(&k, 20*time.Millisecond, input.Axes{}, input.Pointer{})
	if k.Rotation.Roll != 0 {
		t.Fatalf("roll = %v, want 0 when idle", k.Rotation.Roll)
	}
}

func TestMoverPointerKeepsSideAtSteepestRoll(t *testing.T) {
	m := newTestMover()
	m.Speed = 10
	m.Tilt = 0.15 // Full right stick rolls 1.5 radians, just under a quarter turn
	var k physics.Kinematic

	m.Integrate(&k, 100*time.Millisecond, input.Axes{Horizontal: 1}, input.Pointer{})
	m.Integrate(&k, 100*time.Millisecond, input.Axes{}, input.Pointer{X: 1, Force: 1})

	if math.Abs(k.Position.X-1.5) > 1e-9 || math.Abs(k.Position.Z) > 1e-9 {
		t.Fatalf("position = %+v, want x=1.5 z=0", k.Position)
	}
}
