package loop

import (
	"math/rand"

	"github.com/tomz197/starfighter/internal/loop/config"
	"github.com/tomz197/starfighter/internal/match"
	"github.com/tomz197/starfighter/internal/object"
	"github.com/tomz197/starfighter/internal/physics"
)

// World holds the objects of one match.
// It is the spawner for objects, effects and hazards.
type World struct {
	Objects []object.Object
	toSpawn []object.Object // Objects to add after current update cycle

	hazard      config.Hazard
	rng         *rand.Rand
	hazardCount int // Maintained incrementally

	bodies []*object.Actor // Reused by Bodies
}

// NewWorld creates an empty world. Hazards are built from cfg using rng.
func NewWorld(cfg config.Hazard, rng *rand.Rand) *World {
	return &World{
		Objects: []object.Object{},
		hazard:  cfg,
		rng:     rng,
	}
}

func isHazard(obj object.Object) bool {
	_, ok := obj.(*object.Hazard)
	return ok
}

// AddObject adds an object immediately.
func (w *World) AddObject(obj object.Object) {
	w.Objects = append(w.Objects, obj)
	if isHazard(obj) {
		w.hazardCount++
	}
}

// Spawn queues an object to be added after the current update cycle.
func (w *World) Spawn(obj object.Object) {
	w.toSpawn = append(w.toSpawn, obj)
}

// FlushSpawned adds all queued objects and clears the queue.
func (w *World) FlushSpawned() {
	for _, obj := range w.toSpawn {
		w.AddObject(obj)
	}
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

// SpawnEffect queues the particles for a visual effect.
func (w *World) SpawnEffect(kind object.EffectKind, t object.Transform) {
	object.SpawnEffect(kind, t, w)
}

// SpawnHazard queues a hazard for a scheduler command.
func (w *World) SpawnHazard(cmd match.SpawnCommand) {
	w.Spawn(object.NewHazard(cmd.Position, w.hazard, w.rng))
}

// HazardCount returns the number of live hazards in the world.
func (w *World) HazardCount() int {
	return w.hazardCount
}

// Bodies returns the actors of all objects taking part in contacts.
// The slice is reused by the next call.
func (w *World) Bodies() []*object.Actor {
	w.bodies = w.bodies[:0]
	for _, obj := range w.Objects {
		if b, ok := obj.(object.Body); ok {
			w.bodies = append(w.bodies, b.Body())
		}
	}
	return w.bodies
}

// FixedUpdate advances every physics-driven object by one step.
func (w *World) FixedUpdate(ctx object.UpdateContext) {
	for _, obj := range w.Objects {
		if f, ok := obj.(object.FixedUpdater); ok {
			f.FixedUpdate(ctx)
		}
	}
}

// Cull destroys actors outside area that are moving away from it.
// Actors still approaching, such as freshly spawned hazards, are kept.
func (w *World) Cull(area physics.Rect) {
	center := physics.Vec3{X: (area.XMin + area.XMax) / 2, Z: (area.ZMin + area.ZMax) / 2}
	for _, a := range w.Bodies() {
		if a.Tag == object.TagPlayer || area.Contains(a.Position) {
			continue
		}
		if a.Velocity.Dot(center.Sub(a.Position)) <= 0 {
			a.Destroy()
		}
	}
}

// Update runs the per-frame update of every object, removes finished objects and adds
// the ones spawned meanwhile. onRemove, if set, is called for each removed body.
func (w *World) Update(ctx object.UpdateContext, onRemove func(*object.Actor)) error {
	var firstErr error
	kept := w.Objects[:0]
	for _, obj := range w.Objects {
		remove, err := obj.Update(ctx)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if !remove {
			kept = append(kept, obj)
			continue
		}
		if isHazard(obj) {
			w.hazardCount--
		}
		if b, ok := obj.(object.Body); ok && onRemove != nil {
			onRemove(b.Body())
		}
		object.ReleaseObject(obj)
	}
	clear(w.Objects[len(kept):])
	w.Objects = kept
	w.FlushSpawned()
	return firstErr
}
