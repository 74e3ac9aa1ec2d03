package object

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/tomz197/starfighter/internal/physics"
)

// EffectKind selects a visual effect.
type EffectKind int

const (
	EffectExplosion       EffectKind = iota // Generic hazard explosion
	EffectPlayerExplosion                   // Player ship explosion
)

// String returns the effect name.
func (k EffectKind) String() string {
	switch k {
	case EffectExplosion:
		return "explosion"
	case EffectPlayerExplosion:
		return "player_explosion"
	default:
		return "unknown"
	}
}

// burst describes one explosion style.
type burst struct {
	count    int
	speed    float64       // World units per second
	lifetime time.Duration // Upper bound, each particle gets 50-100%
}

var bursts = map[EffectKind]burst{
	EffectExplosion:       {count: 10, speed: 4, lifetime: 600 * time.Millisecond},
	EffectPlayerExplosion: {count: 24, speed: 6, lifetime: 1200 * time.Millisecond},
}

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect.
type Particle struct {
	Position    physics.Vec3
	Velocity    physics.Vec3
	Lifetime    time.Duration // Remaining
	MaxLifetime time.Duration // Initial lifetime (for fade calculation)
	Drag        float64       // Velocity kept per 1/60 s (1.0 = no drag)
}

// NewParticle creates a single particle from the pool.
func NewParticle(pos, vel physics.Vec3, lifetime time.Duration) *Particle {
	p := particlePool.Get().(*Particle)
	p.Position = pos
	p.Velocity = vel
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.95
	return p
}

// Release returns the particle to the pool for reuse.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnEffect emits the particles for kind at the given transform.
func SpawnEffect(kind EffectKind, t Transform, spawner Spawner) {
	b, ok := bursts[kind]
	if !ok || spawner == nil {
		return
	}

	for i := 0; i < b.count; i++ {
		angle := rand.Float64() * 2 * math.Pi
		speed := b.speed * (0.5 + rand.Float64())
		life := time.Duration(float64(b.lifetime) * (0.5 + rand.Float64()*0.5))

		vel := physics.Vec3{X: math.Cos(angle) * speed, Z: math.Sin(angle) * speed}
		spawner.Spawn(NewParticle(t.Position, vel, life))
	}
}

// Update moves the particle and checks lifetime.
func (p *Particle) Update(ctx UpdateContext) (bool, error) {
	p.Lifetime -= ctx.Delta
	if p.Lifetime <= 0 {
		return true, nil
	}

	dt := ctx.Delta.Seconds()
	p.Velocity = p.Velocity.Scale(math.Pow(p.Drag, dt*60))
	p.Position = p.Position.Add(p.Velocity.Scale(dt))
	return false, nil
}

// Draw renders the particle as a single pixel. Faded particles are skipped.
func (p *Particle) Draw(ctx DrawContext) error {
	if p.MaxLifetime > 0 && p.Lifetime*4 < p.MaxLifetime {
		return nil
	}
	pt := ctx.ToCanvas(p.Position)
	ctx.Canvas.SetFloat(pt.X, pt.Y)
	return nil
}
