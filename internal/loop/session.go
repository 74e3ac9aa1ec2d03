package loop

import (
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/starfighter/internal/clock"
	"github.com/tomz197/starfighter/internal/contact"
	"github.com/tomz197/starfighter/internal/input"
	"github.com/tomz197/starfighter/internal/loop/config"
	"github.com/tomz197/starfighter/internal/match"
	"github.com/tomz197/starfighter/internal/object"
)

// cullMargin is how far outside the arena an actor moving away is removed.
const cullMargin = 5.0

// SessionOptions configures a session.
type SessionOptions struct {
	Display match.Display // Receives HUD texts, may be nil
	Logger  *log.Logger   // Nil discards logs
	Rand    *rand.Rand    // Nil seeds from the clock
}

// Session is one player's game: its world, match, wave scheduler and contact handling.
// It is driven by Tick from a single goroutine.
type Session struct {
	cfg     config.Config
	display match.Display
	log     *log.Logger
	rng     *rand.Rand
	clock   clock.Clock

	world    *World
	player   *object.Player
	match    *match.Match
	waves    *match.Waves
	resolver *contact.Resolver
	detector *contact.Detector
	stepper  *clock.FixedStep
	resets   int
}

var _ match.Resetter = (*Session)(nil)

// NewSession creates a session and starts its first match.
func NewSession(cfg config.Config, opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Session{
		cfg:     cfg,
		display: opts.Display,
		log:     logger,
		rng:     rng,
	}
	s.build()
	return s
}

// Reset discards all match state and starts over. Implements match.Resetter.
func (s *Session) Reset() {
	s.resets++
	s.log.Info("resetting match", "resets", s.resets)
	s.build()
}

// build creates fresh world and match state.
func (s *Session) build() {
	s.world = NewWorld(s.cfg.Hazard, s.rng)
	s.player = object.NewPlayer(s.cfg)
	s.world.AddObject(s.player)

	s.match = match.New(s.display, s, s.log.With("component", "match"))
	s.waves = match.NewWaves(s.cfg, s.match, s.world, s.rng, s.log.With("component", "waves"))
	s.resolver = contact.NewResolver(s.match, s.world, s.log.With("component", "contact"))

	cell := s.cfg.Hazard.Radius + math.Max(s.cfg.Player.Radius, s.cfg.Projectile.Radius)
	s.detector = contact.NewDetector(s.cfg.Arena, cell)
	s.stepper = clock.NewFixedStep(config.PhysicsStep, config.MaxPhysicsSteps)
}

// Tick advances the session by one frame.
//
// Movement, body integration and contacts run in fixed physics steps; firing, the wave
// scheduler and the restart poll run once per frame.
func (s *Session) Tick(dt time.Duration, in input.Input) error {
	dt = s.clock.Advance(dt)

	if s.match.PollRestart(in) {
		return nil
	}

	ctx := object.UpdateContext{
		Delta:   s.stepper.Step(),
		Input:   in,
		Spawner: s.world,
	}
	for n := s.stepper.Advance(dt); n > 0; n-- {
		s.fixedStep(ctx)
	}

	s.waves.Update(dt)

	ctx.Delta = dt
	if err := s.world.Update(ctx, s.detector.Forget); err != nil {
		return err
	}

	if s.player != nil && s.player.IsDestroyed() {
		s.player = nil
	}
	return nil
}

// fixedStep integrates bodies, then detects and resolves contacts.
func (s *Session) fixedStep(ctx object.UpdateContext) {
	s.world.FixedUpdate(ctx)

	contacts, exits := s.detector.Detect(s.world.Bodies())
	s.resolver.ResolveAll(contacts)
	for _, a := range exits {
		a.Destroy()
	}
	s.world.Cull(s.cfg.Arena.Grow(cullMargin))
}

// Objects returns the objects to draw this frame.
func (s *Session) Objects() []object.Object {
	return s.world.Objects
}

// Match returns the match in progress. It changes on reset.
func (s *Session) Match() *match.Match {
	return s.match
}

// Player returns the player ship, or nil once it has been destroyed.
func (s *Session) Player() *object.Player {
	return s.player
}

// HazardCount returns the number of live hazards.
func (s *Session) HazardCount() int {
	return s.world.HazardCount()
}

// Wave returns the 1-based number of the wave in progress.
func (s *Session) Wave() int {
	return s.waves.Wave() + 1
}

// Resets returns how many times the session has been reset.
func (s *Session) Resets() int {
	return s.resets
}

// Now returns the simulated time since the session was created.
func (s *Session) Now() time.Duration {
	return s.clock.Now()
}
