// Package match owns the lifecycle of a single match: score, game over and restart.
package match

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tomz197/starfighter/internal/input"
)

// HUD texts.
const (
	GameOverText = "Game Over"
	RestartText  = "Press 'R' to Restart"
)

// Phase is the match state. Transitions only move forward until a reset.
type Phase int

const (
	PhasePlaying         Phase = iota // Hazards spawn, contacts score
	PhaseEnding                       // Player destroyed, current wave still running
	PhaseAwaitingRestart              // Wave finished, waiting for restart input
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseEnding:
		return "ending"
	case PhaseAwaitingRestart:
		return "awaiting_restart"
	default:
		return "unknown"
	}
}

// Display receives the texts the match wants shown.
type Display interface {
	SetScoreText(text string)
	SetGameOverText(text string)
	SetRestartText(text string)
}

// Resetter rebuilds all match state when a restart is requested.
type Resetter interface {
	Reset()
}

// Score is an additive counter that never goes down.
type Score struct {
	value int
}

// Add adds delta and reports whether it was accepted. Negative deltas are rejected.
func (s *Score) Add(delta int) bool {
	if delta < 0 {
		return false
	}
	s.value += delta
	return true
}

// Value returns the current score.
func (s Score) Value() int {
	return s.value
}

// FormatScore renders a score for the HUD.
func FormatScore(score int) string {
	return fmt.Sprintf("Score: %d", score)
}

// Match is one play-through. It is safe for concurrent use.
type Match struct {
	mu       sync.Mutex
	phase    Phase
	score    Score
	display  Display
	resetter Resetter
	log      *log.Logger
}

// New creates a match in the Playing phase and initializes the display.
// A nil display or resetter is allowed; a nil logger discards output.
func New(display Display, resetter Resetter, logger *log.Logger) *Match {
	if display == nil {
		display = nopDisplay{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Match{
		display:  display,
		resetter: resetter,
		log:      logger,
	}
	m.start()
	return m
}

// start puts the match into its initial state. Caller must not hold the lock.
func (m *Match) start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phase = PhasePlaying
	m.score = Score{}
	m.display.SetScoreText(FormatScore(0))
	m.display.SetGameOverText("")
	m.display.SetRestartText("")
}

// AddScore adds delta to the score and updates the display.
// Negative deltas are ignored.
func (m *Match) AddScore(delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.score.Add(delta) {
		m.log.Warn("ignoring negative score delta", "delta", delta)
		return
	}
	m.display.SetScoreText(FormatScore(m.score.Value()))
}

// SignalGameOver moves the match from Playing to Ending.
// Returns true only for the call that performed the transition.
func (m *Match) SignalGameOver() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhasePlaying {
		return false
	}
	m.phase = PhaseEnding
	m.display.SetGameOverText(GameOverText)
	m.log.Info("game over", "score", m.score.Value())
	return true
}

// AwaitRestart is called at every wave boundary. If the match is ending it shows the
// restart prompt, moves to AwaitingRestart and returns true.
func (m *Match) AwaitRestart() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseEnding {
		return false
	}
	m.phase = PhaseAwaitingRestart
	m.display.SetRestartText(RestartText)
	return true
}

// PollRestart checks the frame input while awaiting restart and triggers the reset.
// Returns true if a reset was triggered.
func (m *Match) PollRestart(in input.Input) bool {
	if m.Phase() != PhaseAwaitingRestart || !in.Restart {
		return false
	}

	m.log.Info("restart requested", "score", m.Score())
	if m.resetter == nil {
		m.start()
		return true
	}
	m.resetter.Reset()
	return true
}

// Phase returns the current phase.
func (m *Match) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Score returns the current score.
func (m *Match) Score() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score.Value()
}

type nopDisplay struct{}

func (nopDisplay) SetScoreText(string)    {}
func (nopDisplay) SetGameOverText(string) {}
func (nopDisplay) SetRestartText(string)  {}
