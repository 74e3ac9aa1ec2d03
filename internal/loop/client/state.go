package client

import (
	"time"

	"github.com/tomz197/starfighter/internal/input"
	"github.com/tomz197/starfighter/internal/loop/server"
)

// GameState represents the current screen for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Session running, including its game over and restart prompt
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-connection UI state. The game itself lives in the session.
type ClientState struct {
	Input     input.Input
	GameState GameState
	Running   bool // Client loop running

	delta         time.Duration
	prevGameState GameState
	shutdownTimer time.Duration // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
	wasInactive   bool

	resets        int  // Session resets seen so far
	scoreRecorded bool // Current match already submitted to the leaderboard
	topScores     []server.TopScoreEntry
	players       int
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateStart,
		Running:   true,
	}
}
