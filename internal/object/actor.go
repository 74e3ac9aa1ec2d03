package object

import (
	"github.com/google/uuid"
	"github.com/tomz197/starfighter/internal/physics"
)

// Tag is the closed set of actor categories.
type Tag int

const (
	TagPlayer     Tag = iota // Player ship
	TagHazard                // Asteroid
	TagProjectile            // Laser bolt
	TagBoundary              // Play area edge, never destroyed
)

// String returns the tag name.
func (t Tag) String() string {
	switch t {
	case TagPlayer:
		return "player"
	case TagHazard:
		return "hazard"
	case TagProjectile:
		return "projectile"
	case TagBoundary:
		return "boundary"
	default:
		return "unknown"
	}
}

// Transform is a position and orientation pair.
type Transform struct {
	Position physics.Vec3
	Rotation physics.Euler
}

// Actor is the shared state of every spawnable or destructible entity.
type Actor struct {
	physics.Kinematic
	ID         uuid.UUID
	Tag        Tag
	Radius     float64 // Contact radius
	ScoreValue int     // Awarded when this actor is destroyed by a contact

	destroyed bool
}

// NewActor creates an actor with a fresh identity at the given transform.
func NewActor(tag Tag, t Transform, radius float64) Actor {
	return Actor{
		Kinematic: physics.Kinematic{Position: t.Position, Rotation: t.Rotation},
		ID:        uuid.New(),
		Tag:       tag,
		Radius:    radius,
	}
}

// Body returns the actor itself (implements Body when embedded).
func (a *Actor) Body() *Actor {
	return a
}

// Destroy marks the actor for removal. Returns false if it was already destroyed
// or if it is a boundary, which can never be destroyed.
func (a *Actor) Destroy() bool {
	if a.destroyed || a.Tag == TagBoundary {
		return false
	}
	a.destroyed = true
	return true
}

// IsDestroyed returns true if the actor is marked for removal.
func (a *Actor) IsDestroyed() bool {
	return a.destroyed
}

// Transform returns the actor's current position and orientation.
func (a *Actor) Transform() Transform {
	return Transform{Position: a.Position, Rotation: a.Rotation}
}
