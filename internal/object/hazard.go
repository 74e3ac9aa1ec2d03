package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/starfighter/internal/loop/config"
	"github.com/tomz197/starfighter/internal/physics"
)

// hazardVertices is the number of points on a hazard outline.
const hazardVertices = 9

// Hazard is an asteroid drifting toward the player while tumbling.
type Hazard struct {
	Actor
	Spin physics.Euler // Angular velocity in radians per second

	shape []physics.Vec3 // Outline in local space, on the X/Z plane
}

// NewHazard creates a hazard at pos moving toward -Z with a random tumble.
func NewHazard(pos physics.Vec3, cfg config.Hazard, rng *rand.Rand) *Hazard {
	h := &Hazard{
		Actor: NewActor(TagHazard, Transform{Position: pos}, cfg.Radius),
		Spin:  randomSpin(rng, cfg.Tumble),
	}
	h.ScoreValue = cfg.ScoreValue
	h.Velocity = physics.Vec3{Z: -cfg.Speed}

	h.shape = make([]physics.Vec3, hazardVertices)
	for i := range h.shape {
		angle := float64(i) / hazardVertices * 2 * math.Pi
		r := cfg.Radius * (0.75 + rng.Float64()*0.5)
		h.shape[i] = physics.Vec3{X: math.Cos(angle) * r, Z: math.Sin(angle) * r}
	}
	return h
}

// randomSpin samples a point inside the unit sphere, scaled by tumble.
func randomSpin(rng *rand.Rand, tumble float64) physics.Euler {
	for {
		v := physics.Vec3{
			X: rng.Float64()*2 - 1,
			Y: rng.Float64()*2 - 1,
			Z: rng.Float64()*2 - 1,
		}
		if v.Dot(v) <= 1 {
			return physics.Euler{Pitch: v.X * tumble, Yaw: v.Y * tumble, Roll: v.Z * tumble}
		}
	}
}

// FixedUpdate moves the hazard along its velocity and applies its tumble.
func (h *Hazard) FixedUpdate(ctx UpdateContext) {
	dt := ctx.Delta.Seconds()
	h.Position = h.Position.Add(h.Velocity.Scale(dt))
	h.Rotation = h.Rotation.Add(h.Spin.Scale(dt))
}

// Update removes the hazard once it has been destroyed.
func (h *Hazard) Update(ctx UpdateContext) (bool, error) {
	return h.IsDestroyed(), nil
}

// Draw renders the tumbling outline projected onto the play plane.
func (h *Hazard) Draw(ctx DrawContext) error {
	points := ctx.Canvas.BorrowPoints(len(h.shape))
	for i, v := range h.shape {
		points[i] = ctx.ToCanvas(h.Position.Add(h.Rotation.Rotate(v)))
	}
	ctx.Canvas.DrawPolygon(points)
	return nil
}
