package object

import (
	"github.com/tomz197/starfighter/internal/clock"
	"github.com/tomz197/starfighter/internal/loop/config"
	"github.com/tomz197/starfighter/internal/physics"
)

// boltLength is the drawn length of a projectile in world units.
const boltLength = 0.5

// Projectile is a laser bolt fired by the player.
type Projectile struct {
	Actor
	lifetime clock.Timer
}

// NewProjectile creates a projectile at t traveling along its forward axis.
func NewProjectile(t Transform, cfg config.Projectile) *Projectile {
	p := &Projectile{
		Actor:    NewActor(TagProjectile, t, cfg.Radius),
		lifetime: clock.NewTimer(cfg.Lifetime),
	}
	p.Velocity = t.Rotation.Forward().ProjectOnPlane(physics.Up).Normalize().Scale(cfg.Speed)
	return p
}

// FixedUpdate moves the projectile along its velocity.
func (p *Projectile) FixedUpdate(ctx UpdateContext) {
	p.Position = p.Position.Add(p.Velocity.Scale(ctx.Delta.Seconds()))
}

// Update ages the projectile. Returns true once it is destroyed or expired.
func (p *Projectile) Update(ctx UpdateContext) (bool, error) {
	p.lifetime.Add(ctx.Delta)
	return p.IsDestroyed() || p.lifetime.Due(), nil
}

// Draw renders the bolt as a short streak behind its position.
func (p *Projectile) Draw(ctx DrawContext) error {
	tail := p.Position.Sub(p.Velocity.Normalize().Scale(boltLength))
	ctx.Canvas.DrawLine(ctx.ToCanvas(tail), ctx.ToCanvas(p.Position))
	return nil
}
