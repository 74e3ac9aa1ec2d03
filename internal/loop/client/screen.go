package client

import (
	"fmt"
	"time"

	"github.com/tomz197/starfighter/internal/draw"
	"github.com/tomz197/starfighter/internal/loop/config"
	"github.com/tomz197/starfighter/internal/match"
	"github.com/tomz197/starfighter/internal/object"
)

var titleArt = []string{
	`┏━┓╺┳╸┏━┓┏━┓┏━╸╻┏━╸╻ ╻╺┳╸┏━╸┏━┓`,
	`┗━┓ ┃ ┣━┫┣┳┛┣╸ ┃┃╺┓┣━┫ ┃ ┣╸ ┣┳┛`,
	`┗━┛ ╹ ╹ ╹╹┗╸╹  ╹┗━┛╹ ╹ ╹ ┗━╸╹┗╸`,
}

var controlLines = []string{
	"WASD / Arrows  . . Move",
	"SPACE  . . . . . . Fire",
	"Mouse L . . . . . Steer",
	"Mouse R . . .  Trigger",
	"R / Mouse M  .  Restart",
	"ESC . . . . Back / Quit",
	"Q  . . . . . . . . Quit",
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		draw.ClearScreen(c.chunkWriter)
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	if c.session != nil && c.state.GameState == GameStatePlaying && !c.state.isInactive {
		ctx := object.DrawContext{
			Canvas: c.canvas,
			Writer: c.chunkWriter,
			View:   config.DefaultView,
		}
		for _, obj := range c.session.Objects() {
			if err := obj.Draw(ctx); err != nil {
				return err
			}
		}
	}

	// Render canvas to terminal
	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}

	// Draw border when terminal exceeds max render resolution
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawUI draws the screen overlay for the current state.
func (c *Client) drawUI() {
	centerY := c.canvas.TerminalHeight() / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerY)
		return
	}

	switch c.state.GameState {
	case GameStateStart:
		c.drawStartScreen(centerY)
	case GameStatePlaying:
		c.drawPlayingHUD(centerY)
	}
}

// writeText draws t and marks its cells so the canvas repaints them next frame.
func (c *Client) writeText(t object.Text) {
	if col, n := t.Draw(c.chunkWriter, c.canvas.TerminalWidth()); n > 0 {
		c.canvas.MarkTextDirty(col, t.Row, n)
	}
}

// writeCentered draws a centered line of text.
func (c *Client) writeCentered(row int, s string) {
	c.writeText(object.Text{Row: row, Align: object.AlignCenter, Value: s})
}

// promptVisible reports whether blinking prompts are shown this frame.
func promptVisible() bool {
	return time.Now().UnixMilli()/config.PromptBlinkPeriod.Milliseconds()%2 == 0
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerY int) {
	c.writeCentered(centerY-2, "INACTIVITY WARNING")

	remaining := config.InactivityDisconnectUser - time.Since(c.lastInput)
	c.writeCentered(centerY, "You have been inactive for too long.")
	c.writeCentered(centerY+1, fmt.Sprintf("Disconnecting in %d seconds.", int(remaining.Seconds())))
	c.writeCentered(centerY+3, "Press any key to continue")
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerY int) {
	titleStartY := centerY - 8

	c.chunkWriter.WriteString(draw.ColorBrightCyan)
	for i, line := range titleArt {
		c.writeCentered(titleStartY+i, line)
	}
	c.chunkWriter.WriteString(draw.ColorReset)

	c.writeCentered(titleStartY+len(titleArt)+1, "~ Arena shooter over SSH ~")

	controlsY := titleStartY + len(titleArt) + 3
	c.writeCentered(controlsY, "Controls")
	for i, line := range controlLines {
		c.writeCentered(controlsY+1+i, line)
	}

	prompt := ">>  Press SPACE to Start  <<"
	if !promptVisible() {
		prompt = ""
	}
	c.writeCentered(controlsY+len(controlLines)+2, prompt)

	c.drawPlayerCount()
}

// drawPlayingHUD draws the in-game HUD: score, game over and restart prompt, and the
// leaderboard once the match is waiting for a restart.
func (c *Client) drawPlayingHUD(centerY int) {
	c.hud.Draw(c.chunkWriter, c.canvas)
	c.drawPlayerCount()
	if c.session == nil {
		return
	}

	c.writeText(object.Text{
		Col:   1,
		Row:   1,
		Align: object.AlignRight,
		Width: 8,
		Value: fmt.Sprintf("Wave %d", c.session.Wave()),
	})

	elapsed := c.session.Now().Truncate(time.Second)
	status := fmt.Sprintf("%02d:%02d", int(elapsed.Minutes()), int(elapsed.Seconds())%60)
	if p := c.session.Player(); p != nil {
		if cd := p.Cooldown(); cd > 0 {
			status += fmt.Sprintf("  Gun %.1fs", cd.Seconds())
		} else {
			status += "  Gun ready"
		}
	}
	c.writeText(object.Text{Col: 2, Row: c.canvas.TerminalHeight(), Width: 20, Value: status})

	if c.session.Match().Phase() != match.PhaseAwaitingRestart {
		return
	}
	c.drawTopScores(centerY + 3)
}

// drawPlayerCount draws the number of connected players in the bottom right corner.
func (c *Client) drawPlayerCount() {
	c.writeText(object.Text{
		Col:   1,
		Row:   c.canvas.TerminalHeight(),
		Align: object.AlignRight,
		Width: 12,
		Value: fmt.Sprintf("Players: %d", c.state.players),
	})
}

// drawTopScores draws the leaderboard starting at row.
func (c *Client) drawTopScores(row int) {
	if len(c.state.topScores) == 0 {
		return
	}
	c.writeCentered(row, "Top Scores")
	for i, entry := range c.state.topScores {
		line := fmt.Sprintf("%d. %-*s %6d", i+1, config.MaxUsernameLength, entry.Username, entry.Score)
		c.writeCentered(row+1+i, line)
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerY int) {
	c.chunkWriter.WriteString(draw.ColorBrightRed)
	c.writeCentered(centerY-3, "SERVER SHUTTING DOWN")
	c.chunkWriter.WriteString(draw.ColorReset)

	c.writeCentered(centerY-1, "The server is restarting for maintenance.")
	c.writeCentered(centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer.Seconds()) + 1
	c.writeCentered(centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	c.writeCentered(centerY+4, "Press Q or ESC to disconnect now")
}
