// Package client renders one connection's session and feeds it terminal input.
package client

import (
	"bufio"
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/starfighter/internal/draw"
	"github.com/tomz197/starfighter/internal/input"
	"github.com/tomz197/starfighter/internal/loop"
	"github.com/tomz197/starfighter/internal/loop/config"
	"github.com/tomz197/starfighter/internal/loop/server"
	"github.com/tomz197/starfighter/internal/match"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	cfg          config.Config
	session      *loop.Session // Nil until the player leaves the title screen
	hud          *loop.HUD
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates the frame for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	rng          *rand.Rand
	log          *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Config       *config.Config // Nil uses config.Default
	Logger       *log.Logger    // Nil discards logs
	Rand         *rand.Rand     // Nil seeds each session from the clock
}

// NewClient creates a new client registered with the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	username := opts.Username
	if len(username) > config.MaxUsernameLength {
		username = username[:config.MaxUsernameLength]
	}

	handle := gs.RegisterClient(username)

	// Canvas starts at the clamped terminal size; updateScreen keeps it current.
	c := &Client{
		server:       gs,
		handle:       handle,
		state:        NewClientState(),
		cfg:          cfg,
		hud:          &loop.HUD{},
		canvas:       draw.NewCanvas(0, 0, config.ViewWidth, config.ViewHeight),
		chunkWriter:  draw.NewChunkWriter(w),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		username:     username,
		termSizeFunc: termSizeFunc,
		rng:          opts.Rand,
		log:          logger.With("client", handle.ID),
	}
	c.state.topScores = gs.TopScores()
	c.updateScreen()
	return c
}

// Run starts the client loop. Blocks until the client disconnects, the server stops or
// ctx is done.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	defer draw.ShowCursor(c.writer)
	defer draw.DisableMouse(c.writer)
	draw.ClearScreen(c.writer)

	err := loop.Run(ctx, config.ClientTargetFrameTime, c.frame)
	if err != nil {
		c.log.Error("client loop failed", "err", err)
	}

	// Unregister from server
	c.server.UnregisterClient(c.handle.ID)

	draw.ClearScreen(c.writer)
	return err
}

// frame runs one client frame.
func (c *Client) frame(delta time.Duration) (bool, error) {
	c.state.delta = delta

	c.processInput()
	c.processServerEvents()
	c.updateScreen()

	switch c.state.GameState {
	case GameStateStart:
		c.updateStartState()
	case GameStatePlaying:
		if err := c.updatePlayingState(); err != nil {
			return false, err
		}
	case GameStateShutdown:
		c.updateShutdownState()
	}

	if err := c.drawFrame(); err != nil {
		return false, err
	}
	return c.state.Running, nil
}

// processInput reads this frame's input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	idle := time.Since(c.lastInput)
	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if idle > config.InactivityDisconnectUser {
		c.log.Info("disconnecting inactive client", "idle", idle)
		c.state.Running = false
	} else if idle > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventTopScores:
				c.state.topScores = c.server.TopScores()
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplayTime
			}
		default:
			c.state.players = c.server.Players()
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	layout := draw.Fit(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)

	if layout.Cols != c.canvas.TerminalWidth() || layout.Rows != c.canvas.TerminalHeight() ||
		layout.OffsetCol != c.canvas.OffsetCol() || layout.OffsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.chunkWriter)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(layout.Cols, layout.Rows)
	c.canvas.SetOffset(layout.OffsetCol, layout.OffsetRow)
	c.chunkWriter.SetOffset(layout.OffsetCol, layout.OffsetRow)
	c.inputStream.SetPointerArea(input.PointerArea{
		Cols:      layout.Cols,
		Rows:      layout.Rows,
		OffsetCol: layout.OffsetCol,
		OffsetRow: layout.OffsetRow,
	})
}

// updateStartState handles the title screen.
func (c *Client) updateStartState() {
	switch {
	case c.state.Input.Escape:
		c.state.Running = false
	case c.state.Input.Fire || c.state.Input.Enter:
		c.startGame()
	}
}

// startGame creates the session and leaves the title screen.
func (c *Client) startGame() {
	c.inputStream.Reset()

	c.session = loop.NewSession(c.cfg, loop.SessionOptions{
		Display: c.hud,
		Logger:  c.log,
		Rand:    c.rng,
	})
	c.state.resets = 0
	c.state.scoreRecorded = false
	c.state.GameState = GameStatePlaying
	c.log.Info("match started", "user", c.username)
}

// leaveMatch drops the session and goes back to the title screen.
func (c *Client) leaveMatch() {
	c.inputStream.Reset()
	c.session = nil
	c.state.GameState = GameStateStart
	c.log.Info("match abandoned", "user", c.username)
}

// updatePlayingState advances the session and reports finished matches to the lobby.
func (c *Client) updatePlayingState() error {
	if c.state.Input.Escape {
		c.leaveMatch()
		return nil
	}
	if err := c.session.Tick(c.state.delta, c.state.Input); err != nil {
		return err
	}

	if resets := c.session.Resets(); resets != c.state.resets {
		// Keep the restart key from firing into the new match.
		c.inputStream.Reset()
		c.state.resets = resets
		c.state.scoreRecorded = false
	}

	m := c.session.Match()
	if m.Phase() == match.PhaseAwaitingRestart && !c.state.scoreRecorded {
		c.state.scoreRecorded = true
		c.server.RecordScore(c.handle.ID, m.Score())
		c.state.topScores = c.server.TopScores()
		c.log.Info("match finished", "user", c.username, "score", m.Score())
	}
	return nil
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta
	if c.state.shutdownTimer <= 0 || c.state.Input.Escape {
		c.state.Running = false
	}
}
