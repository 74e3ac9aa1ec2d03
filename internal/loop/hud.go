package loop

import (
	"sync"

	"github.com/tomz197/starfighter/internal/draw"
	"github.com/tomz197/starfighter/internal/match"
	"github.com/tomz197/starfighter/internal/object"
)

// scoreFieldWidth pads the score so a shorter value overwrites a longer one.
const scoreFieldWidth = 16

// HUD stores the texts set by the match and draws them over the canvas.
type HUD struct {
	mu       sync.Mutex
	score    string
	gameOver string
	restart  string
}

var _ match.Display = (*HUD)(nil)

// SetScoreText implements match.Display.
func (h *HUD) SetScoreText(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.score = text
}

// SetGameOverText implements match.Display.
func (h *HUD) SetGameOverText(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.gameOver = text
}

// SetRestartText implements match.Display.
func (h *HUD) SetRestartText(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.restart = text
}

// Texts returns the current score, game over and restart texts.
func (h *HUD) Texts() (score, gameOver, restart string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.score, h.gameOver, h.restart
}

// Draw writes the HUD texts and marks the cells they cover so the canvas repaints them.
func (h *HUD) Draw(cw *draw.ChunkWriter, canvas *draw.Canvas) {
	score, gameOver, restart := h.Texts()
	width := canvas.TerminalWidth()
	mid := canvas.TerminalHeight() / 2

	texts := []object.Text{
		{Col: 2, Row: 1, Width: scoreFieldWidth, Value: score},
		{Row: mid - 1, Align: object.AlignCenter, Value: gameOver},
		{Row: mid + 1, Align: object.AlignCenter, Value: restart},
	}
	for _, t := range texts {
		if col, n := t.Draw(cw, width); n > 0 {
			canvas.MarkTextDirty(col, t.Row, n)
		}
	}
}
