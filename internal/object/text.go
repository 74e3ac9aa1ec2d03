package object

import (
	"strings"
	"unicode/utf8"

	"github.com/tomz197/starfighter/internal/draw"
)

// Align controls horizontal text placement.
type Align int

const (
	AlignLeft   Align = iota // Starts at Col
	AlignCenter              // Centered on the canvas, Col ignored
	AlignRight               // Ends at Col counted from the right edge
)

// Text is a single line of HUD text.
// Coordinates are 1-based canvas cells.
type Text struct {
	Col   int
	Row   int
	Align Align
	Width int // Pad to this many runes so shrinking values do not leave residue
	Value string
}

// Draw writes the text into cw for a canvas that is width cells wide.
// Returns the column and rune count actually written, for dirty tracking.
func (t Text) Draw(cw *draw.ChunkWriter, width int) (col, n int) {
	value := t.Value
	if pad := t.Width - utf8.RuneCountInString(value); pad > 0 {
		value += strings.Repeat(" ", pad)
	}
	n = utf8.RuneCountInString(value)
	if n == 0 {
		return 0, 0
	}

	switch t.Align {
	case AlignCenter:
		col = (width-n)/2 + 1
	case AlignRight:
		col = width - t.Col - n + 1
	default:
		col = t.Col
	}
	if col < 1 {
		col = 1
	}

	cw.WriteAt(col, t.Row, value)
	return col, n
}
