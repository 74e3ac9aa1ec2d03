// Package contact detects hazard contacts and turns them into game consequences.
package contact

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/tomz197/starfighter/internal/object"
)

// Referee receives score and game over from resolved contacts. *match.Match implements it.
type Referee interface {
	AddScore(delta int)
	SignalGameOver() bool
}

// EffectSpawner plays visual effects at a transform.
type EffectSpawner interface {
	SpawnEffect(kind object.EffectKind, t object.Transform)
}

// Contact is one contact-begin event. Self is always the hazard.
type Contact struct {
	Self  *object.Actor
	Other *object.Actor
}

// Resolver applies the consequences of hazard contacts.
type Resolver struct {
	referee Referee
	effects EffectSpawner
	log     *log.Logger
}

// NewResolver creates a resolver. Pass a nil referee to run without score or game over;
// this is reported once here and never again.
func NewResolver(referee Referee, effects EffectSpawner, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if effects == nil {
		effects = nopEffects{}
	}
	if referee == nil {
		logger.Error("contact resolver has no referee, score and game over are disabled")
	}
	return &Resolver{
		referee: referee,
		effects: effects,
		log:     logger,
	}
}

// ResolveAll resolves a tick's contacts in order.
func (r *Resolver) ResolveAll(contacts []Contact) {
	for _, c := range contacts {
		r.OnContact(c.Self, c.Other)
	}
}

// OnContact resolves one contact between the hazard self and other.
//
// Boundary contacts are ignored. Otherwise both actors are destroyed, an explosion plays
// at self, a player hit also plays the player explosion and ends the match, and self's
// score value is awarded. A self already destroyed this tick does nothing; an other already
// destroyed still costs self its life and pays out, but plays no second player explosion.
func (r *Resolver) OnContact(self, other *object.Actor) {
	if self == nil || other == nil || self == other {
		return
	}
	if self.IsDestroyed() {
		r.log.Debug("skipping contact from destroyed actor", "self", self.Tag, "other", other.Tag)
		return
	}

	switch other.Tag {
	case object.TagBoundary:
		return
	case object.TagPlayer, object.TagHazard, object.TagProjectile:
	default:
		r.log.Warn("contact with unknown tag", "tag", other.Tag)
		return
	}

	at := self.Transform()
	otherAlive := other.Destroy()
	self.Destroy()
	r.effects.SpawnEffect(object.EffectExplosion, at)

	if other.Tag == object.TagPlayer {
		if otherAlive { // First hit only
			r.effects.SpawnEffect(object.EffectPlayerExplosion, other.Transform())
		}
		if r.referee != nil {
			r.referee.SignalGameOver()
		}
	}

	if r.referee != nil {
		r.referee.AddScore(self.ScoreValue)
	}
}

type nopEffects struct{}

func (nopEffects) SpawnEffect(object.EffectKind, object.Transform) {}
