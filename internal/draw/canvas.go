package draw

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Objects draw in logical coordinates which are scaled to the terminal cells.
//
// Render only emits cells that changed since the previous frame. Anything written
// over the canvas area by other means (text overlays) must be reported through
// MarkTextDirty so those cells are repainted next frame.
type Canvas struct {
	cols, rows int    // Terminal cells
	pixels     []bool // [y*cols + x], y in sub-pixels (rows*2)
	shown      []rune // Last rune emitted per cell, 0 = unknown

	logicalW, logicalH float64
	scaleX, scaleY     float64

	// 0-based terminal offsets (columns/rows to skip) for centering.
	offCol, offRow int

	out    []byte  // Reused render buffer
	points []Point // Reused for polygon outlines
}

// NewCanvas creates a canvas cols x rows cells large mapping the given logical size.
// logicalH is measured in sub-pixels.
func NewCanvas(cols, rows int, logicalW, logicalH float64) *Canvas {
	c := &Canvas{logicalW: logicalW, logicalH: logicalH}
	c.Resize(cols, rows)
	return c
}

// Resize updates the terminal dimensions and forces a full redraw if they changed.
func (c *Canvas) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	if cols != c.cols || rows != c.rows || c.pixels == nil {
		c.cols = cols
		c.rows = rows
		c.pixels = make([]bool, cols*rows*2)
		c.shown = make([]rune, cols*rows)
	}
	if c.logicalW > 0 {
		c.scaleX = float64(cols) / c.logicalW
	}
	if c.logicalH > 0 {
		c.scaleY = float64(rows*2) / c.logicalH
	}
}

// SetOffset sets where the canvas starts on the terminal (0-based).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offCol || row != c.offRow {
		c.ForceRedraw()
	}
	c.offCol = col
	c.offRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offRow
}

// Clear resets all pixels. Previously shown cells are still tracked.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render repaint every cell.
func (c *Canvas) ForceRedraw() {
	clear(c.shown)
}

// MarkTextDirty marks n cells starting at the 1-based canvas position as overwritten.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	if row < 1 || row > c.rows {
		return
	}
	for x := col - 1; x < col-1+n; x++ {
		if x >= 0 && x < c.cols {
			c.shown[(row-1)*c.cols+x] = 0
		}
	}
}

// plot sets a pixel at terminal sub-pixel coordinates.
func (c *Canvas) plot(x, y int) {
	if x >= 0 && x < c.cols && y >= 0 && y < c.rows*2 {
		c.pixels[y*c.cols+x] = true
	}
}

// toPixel scales a logical point to sub-pixel coordinates.
func (c *Canvas) toPixel(p Point) (int, int) {
	return int(math.Floor(p.X * c.scaleX)), int(math.Floor(p.Y * c.scaleY))
}

// SetFloat sets the pixel under a logical coordinate.
func (c *Canvas) SetFloat(x, y float64) {
	c.plot(c.toPixel(Point{x, y}))
}

// DrawLine draws a line between two logical points.
func (c *Canvas) DrawLine(a, b Point) {
	x0, y0 := c.toPixel(a)
	x1, y1 := c.toPixel(b)

	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		c.plot(x0, y0)
		return
	}
	// Skip lines that are entirely off screen and absurdly long.
	if steps > 4*(c.cols+c.rows*2) {
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.plot(x0+int(math.Round(t*float64(dx))), y0+int(math.Round(t*float64(dy))))
	}
}

// DrawPolygon draws the closed outline through points.
func (c *Canvas) DrawPolygon(points []Point) {
	if len(points) < 2 {
		return
	}
	for i := range points {
		c.DrawLine(points[i], points[(i+1)%len(points)])
	}
}

// BorrowPoints returns a reusable slice of n points, valid until the next call.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.points) < n {
		c.points = make([]Point, n)
	}
	return c.points[:n]
}

// cellRune returns the half-block rune for a terminal cell.
func (c *Canvas) cellRune(col, row int) rune {
	top := c.pixels[(row*2)*c.cols+col]
	bottom := c.pixels[(row*2+1)*c.cols+col]
	switch {
	case top && bottom:
		return BlockFull
	case top:
		return BlockUpperHalf
	case bottom:
		return BlockLowerHalf
	default:
		return BlockEmpty
	}
}

// Render writes every changed cell to w using absolute cursor moves.
// Runs of adjacent changed cells share one cursor move.
func (c *Canvas) Render(w io.Writer) error {
	c.out = c.out[:0]
	for row := 0; row < c.rows; row++ {
		cursorAt := -1
		for col := 0; col < c.cols; col++ {
			r := c.cellRune(col, row)
			i := row*c.cols + col
			if c.shown[i] == r {
				continue
			}
			c.shown[i] = r
			if cursorAt != col {
				c.out = appendMove(c.out, col+1+c.offCol, row+1+c.offRow)
			}
			c.out = append(c.out, string(r)...)
			cursorAt = col + 1
		}
	}
	if len(c.out) == 0 {
		return nil
	}
	_, err := w.Write(c.out)
	return err
}

// RenderBorder draws a box around the canvas when there is room for it.
func (c *Canvas) RenderBorder(w io.Writer) error {
	sides := c.offCol >= 1
	ends := c.offRow >= 1
	if !sides && !ends {
		return nil
	}

	var b strings.Builder
	bar := strings.Repeat("─", c.cols)
	if ends {
		left, right := "", ""
		col := c.offCol + 1
		if sides {
			left, right, col = "┌", "┐", c.offCol
		}
		b.Write(appendMove(nil, col, c.offRow))
		b.WriteString(left + bar + right)
		if sides {
			left, right = "└", "┘"
		}
		b.Write(appendMove(nil, col, c.offRow+c.rows+1))
		b.WriteString(left + bar + right)
	}
	if sides {
		for row := c.offRow + 1; row <= c.offRow+c.rows; row++ {
			b.Write(appendMove(nil, c.offCol, row))
			b.WriteString("│")
			b.Write(appendMove(nil, c.offCol+c.cols+1, row))
			b.WriteString("│")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalW
}

// LogicalHeight returns the logical height in sub-pixels.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalH
}

// TerminalWidth returns the canvas width in terminal columns.
func (c *Canvas) TerminalWidth() int {
	return c.cols
}

// TerminalHeight returns the canvas height in terminal rows.
func (c *Canvas) TerminalHeight() int {
	return c.rows
}

// appendMove appends an absolute cursor move to 1-based terminal col/row.
func appendMove(buf []byte, col, row int) []byte {
	buf = append(buf, "\033["...)
	buf = strconv.AppendInt(buf, int64(row), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(col), 10)
	return append(buf, 'H')
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
