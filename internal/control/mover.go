// Package control turns polled player input into bounded movement and rate-limited fire.
package control

import (
	"time"

	"github.com/tomz197/starfighter/internal/input"
	"github.com/tomz197/starfighter/internal/loop/config"
	"github.com/tomz197/starfighter/internal/physics"
)

// Mover integrates directional input into planar motion kept inside a boundary.
type Mover struct {
	Speed            float64      // Units per second at full axis deflection
	Tilt             float64      // Roll radians per unit of X velocity
	Boundary         physics.Rect // Positions are clamped into this after every update
	PointerThreshold float64      // Pointer force must exceed this to move
}

// NewMover creates a mover from the player config.
func NewMover(cfg config.Player) *Mover {
	return &Mover{
		Speed:            cfg.Speed,
		Tilt:             cfg.Tilt,
		Boundary:         cfg.Boundary,
		PointerThreshold: cfg.PointerThreshold,
	}
}

// Integrate advances k by one fixed step.
//
// The primary axes set the planar velocity. The pointer path is additive: when its
// force is above the threshold it displaces the position directly along the actor's
// flattened facing. Each path clamps into the boundary on its own. Roll is derived
// from the resulting X velocity and is purely cosmetic.
func (m *Mover) Integrate(k *physics.Kinematic, dt time.Duration, axes input.Axes, ptr input.Pointer) {
	secs := dt.Seconds()

	h := physics.Clamp(axes.Horizontal, -1, 1)
	v := physics.Clamp(axes.Vertical, -1, 1)
	k.Velocity = physics.Vec3{X: h, Z: v}.Scale(m.Speed)
	k.Position = m.clamp(k.Position.Add(k.Velocity.Scale(secs)))

	if ptr.Force > m.PointerThreshold {
		forward := k.Rotation.Forward().ProjectOnPlane(physics.Up).Normalize()
		right := k.Rotation.Right().ProjectOnPlane(physics.Up).Normalize()
		dir := right.Scale(ptr.X).Add(forward.Scale(ptr.Y)).Normalize()
		k.Position = m.clamp(k.Position.Add(dir.Scale(secs * m.Speed / 2)))
	}

	k.Rotation = physics.Euler{Roll: -k.Velocity.X * m.Tilt}
}

// clamp keeps p inside the boundary and on the play plane.
func (m *Mover) clamp(p physics.Vec3) physics.Vec3 {
	p = m.Boundary.Clamp(p)
	p.Y = 0
	return p
}
