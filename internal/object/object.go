package object

import (
	"io"
	"time"

	"github.com/tomz197/starfighter/internal/draw"
	"github.com/tomz197/starfighter/internal/input"
	"github.com/tomz197/starfighter/internal/physics"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Input   input.Input
	Spawner Spawner
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas // High-resolution canvas (2x vertical)
	Writer io.Writer    // Direct terminal output (for text)
	View   physics.Rect // World area mapped onto the canvas
}

// ToCanvas maps a world position onto logical canvas coordinates.
// World +Z points up the screen.
func (ctx DrawContext) ToCanvas(p physics.Vec3) draw.Point {
	w := ctx.Canvas.LogicalWidth()
	h := ctx.Canvas.LogicalHeight()
	return draw.Point{
		X: (p.X - ctx.View.XMin) / ctx.View.Width() * w,
		Y: (ctx.View.ZMax - p.Z) / ctx.View.Depth() * h,
	}
}

// Scale returns how many logical canvas units one world unit spans horizontally.
func (ctx DrawContext) Scale() float64 {
	return ctx.Canvas.LogicalWidth() / ctx.View.Width()
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update runs once per frame. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object. Use ctx.Canvas for shapes, ctx.Writer for text.
	Draw(ctx DrawContext) error
}

// FixedUpdater is implemented by objects that move with the fixed physics step.
type FixedUpdater interface {
	FixedUpdate(ctx UpdateContext)
}

// Body is implemented by objects that take part in contact detection.
type Body interface {
	Object
	Body() *Actor
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}
