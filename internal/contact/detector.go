package contact

import (
	"github.com/google/uuid"
	"github.com/tomz197/starfighter/internal/object"
	"github.com/tomz197/starfighter/internal/physics"
)

// pairKey identifies a hazard/other pair across ticks.
type pairKey struct {
	hazard, other uuid.UUID
}

// Detector finds contact-begin events between hazards and everything they can hit,
// and exit events for actors that leave the arena.
//
// The arena itself is a boundary actor: a hazard reaching it produces a boundary
// contact, and an actor that was inside and no longer touches it produces an exit.
type Detector struct {
	arena    physics.Rect
	boundary *object.Actor
	grid     *physics.SpatialGrid

	touching map[pairKey]struct{}   // Pairs overlapping last tick
	next     map[pairKey]struct{}   // Pairs overlapping this tick
	inside   map[uuid.UUID]struct{} // Actors overlapping the arena last tick

	hazards  []*object.Actor
	targets  []*object.Actor
	contacts []Contact
	exits    []*object.Actor
}

// NewDetector creates a detector for the arena. cellSize must be at least the largest
// sum of radii of any hazard/target pair.
func NewDetector(arena physics.Rect, cellSize float64) *Detector {
	boundary := object.NewActor(object.TagBoundary, object.Transform{
		Position: physics.Vec3{
			X: (arena.XMin + arena.XMax) / 2,
			Z: (arena.ZMin + arena.ZMax) / 2,
		},
	}, 0)
	return &Detector{
		arena:    arena,
		boundary: &boundary,
		grid:     physics.NewSpatialGrid(arena, cellSize),
		touching: make(map[pairKey]struct{}),
		next:     make(map[pairKey]struct{}),
		inside:   make(map[uuid.UUID]struct{}),
	}
}

// Boundary returns the actor standing for the arena edge.
func (d *Detector) Boundary() *object.Actor {
	return d.boundary
}

// Detect checks the actors after a physics step. The returned slices are reused by the
// next call. Destroyed actors are ignored; players never exit since they are clamped.
func (d *Detector) Detect(actors []*object.Actor) (contacts []Contact, exits []*object.Actor) {
	d.contacts = d.contacts[:0]
	d.exits = d.exits[:0]
	d.hazards = d.hazards[:0]
	d.targets = d.targets[:0]
	d.grid.Clear()
	clear(d.next)

	for _, a := range actors {
		if a == nil || a.IsDestroyed() {
			continue
		}
		switch a.Tag {
		case object.TagHazard:
			d.hazards = append(d.hazards, a)
		case object.TagPlayer, object.TagProjectile:
			d.grid.Insert(a.Position, len(d.targets))
			d.targets = append(d.targets, a)
		}
	}

	for _, h := range d.hazards {
		key := pairKey{hazard: h.ID, other: d.boundary.ID}
		if d.arena.OverlapsCircle(h.Position, h.Radius) {
			d.next[key] = struct{}{}
			if _, ok := d.touching[key]; !ok {
				d.contacts = append(d.contacts, Contact{Self: h, Other: d.boundary})
			}
		}

		d.grid.QueryAround(h.Position, func(i int) bool {
			t := d.targets[i]
			if !physics.SpheresOverlap(h.Position, h.Radius, t.Position, t.Radius) {
				return false
			}
			key := pairKey{hazard: h.ID, other: t.ID}
			d.next[key] = struct{}{}
			if _, ok := d.touching[key]; !ok {
				d.contacts = append(d.contacts, Contact{Self: h, Other: t})
			}
			return false
		})
	}

	d.touching, d.next = d.next, d.touching

	d.trackExits(d.hazards)
	d.trackExits(d.targets)

	return d.contacts, d.exits
}

// trackExits records actors that stopped overlapping the arena after being inside it.
func (d *Detector) trackExits(actors []*object.Actor) {
	for _, a := range actors {
		if a.Tag == object.TagPlayer {
			continue
		}
		in := d.arena.OverlapsCircle(a.Position, a.Radius)
		_, was := d.inside[a.ID]
		switch {
		case in && !was:
			d.inside[a.ID] = struct{}{}
		case !in && was:
			delete(d.inside, a.ID)
			d.exits = append(d.exits, a)
		}
	}
}

// Forget drops all tracking for a removed actor.
func (d *Detector) Forget(a *object.Actor) {
	delete(d.inside, a.ID)
}
