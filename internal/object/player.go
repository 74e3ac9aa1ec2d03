package object

import (
	"time"

	"github.com/tomz197/starfighter/internal/control"
	"github.com/tomz197/starfighter/internal/loop/config"
	"github.com/tomz197/starfighter/internal/physics"
)

// shipShape is the player outline in local space. Nose points +Z.
var shipShape = []physics.Vec3{
	{X: 0, Z: 0.9},
	{X: 0.6, Z: -0.5},
	{X: 0.2, Z: -0.3},
	{X: -0.2, Z: -0.3},
	{X: -0.6, Z: -0.5},
}

// Player is the ship controlled by the local input.
type Player struct {
	Actor

	mover      *control.Mover
	gun        *control.FireLimiter
	shotOffset physics.Vec3
	threshold  float64 // Analog trigger threshold
	projectile config.Projectile
}

// NewPlayer creates the player ship at the origin.
func NewPlayer(cfg config.Config) *Player {
	return &Player{
		Actor:      NewActor(TagPlayer, Transform{}, cfg.Player.Radius),
		mover:      control.NewMover(cfg.Player),
		gun:        control.NewFireLimiter(cfg.Player.FireDelay),
		shotOffset: cfg.Player.ShotOffset,
		threshold:  cfg.Player.TriggerThreshold,
		projectile: cfg.Projectile,
	}
}

// FixedUpdate moves the ship with the current input.
func (p *Player) FixedUpdate(ctx UpdateContext) {
	p.mover.Integrate(&p.Kinematic, ctx.Delta, ctx.Input.Axes(), ctx.Input.ActivePointer())
}

// Update handles firing. Returns true once the ship is destroyed.
func (p *Player) Update(ctx UpdateContext) (bool, error) {
	if p.IsDestroyed() {
		return true, nil
	}

	trigger := control.Triggered(ctx.Input.Fire, ctx.Input.AnalogTrigger(), p.threshold)
	if p.gun.TryFire(ctx.Delta, trigger) && ctx.Spawner != nil {
		ctx.Spawner.Spawn(NewProjectile(p.ShotSpawn(), p.projectile))
	}

	return false, nil
}

// ShotSpawn returns the transform new projectiles are emitted at.
func (p *Player) ShotSpawn() Transform {
	return Transform{
		Position: p.Position.Add(p.Rotation.Rotate(p.shotOffset)),
		Rotation: p.Rotation,
	}
}

// Cooldown returns the time until the gun can fire again.
func (p *Player) Cooldown() time.Duration {
	return p.gun.Cooldown()
}

// Draw renders the ship. Roll narrows the silhouette.
func (p *Player) Draw(ctx DrawContext) error {
	points := ctx.Canvas.BorrowPoints(len(shipShape))
	for i, v := range shipShape {
		points[i] = ctx.ToCanvas(p.Position.Add(p.Rotation.Rotate(v)))
	}
	ctx.Canvas.DrawPolygon(points)
	return nil
}
