package tool

import (
	"github.com/zjrosen/pinceau/internal/canvas"
	"github.com/zjrosen/pinceau/internal/raster"
)

type phase int

const (
	phaseIdle phase = iota
	phaseStroke
	phaseShape
)

// Gesture tracks one in-progress press-drag-release interaction. A
// freehand stroke paints through its builder as the pointer moves; a
// shape drag only records its endpoints and touches the canvas at
// Finish. The zero value is an idle gesture.
type Gesture struct {
	phase   phase
	spec    Spec
	builder *canvas.OperationBuilder
	last    raster.Point
	start   raster.Point
	current raster.Point
	filled  bool
}

// Active reports whether a gesture is in progress.
func (g *Gesture) Active() bool {
	return g.phase != phaseIdle
}

// IsShape reports whether the in-progress gesture is a shape drag.
func (g *Gesture) IsShape() bool {
	return g.phase == phaseShape
}

// BeginStroke starts a freehand gesture and stamps the brush at p.
// Used by the pencil and eraser.
func (g *Gesture) BeginStroke(c *canvas.Canvas, spec Spec, p raster.Point) {
	g.phase = phaseStroke
	g.spec = spec
	g.builder = canvas.NewOperationBuilder()
	g.last = p
	stampBrush(c, g.builder, p, spec)
}

// ExtendStroke continues a freehand gesture to p, stamping the brush
// along the line from the previous point so fast drags leave no gaps.
// Ignored unless a stroke is in progress.
func (g *Gesture) ExtendStroke(c *canvas.Canvas, p raster.Point) {
	if g.phase != phaseStroke {
		return
	}
	for _, q := range raster.BresenhamLine(g.last, p) {
		stampBrush(c, g.builder, q, g.spec)
	}
	g.last = p
}

// BeginShape starts a two-point shape drag anchored at p. The canvas is
// not touched until Finish.
func (g *Gesture) BeginShape(spec Spec, p raster.Point, filled bool) {
	g.phase = phaseShape
	g.spec = spec
	g.builder = nil
	g.start = p
	g.current = p
	g.filled = filled
}

// MoveShape updates the floating endpoint of a shape drag. Ignored
// unless a shape drag is in progress.
func (g *Gesture) MoveShape(p raster.Point) {
	if g.phase != phaseShape {
		return
	}
	g.current = p
}

// PreviewPoints returns the cells a shape drag would paint if released
// now, brush expansion included, for the renderer's overlay. Returns
// nothing for idle and stroke gestures, whose effects are already on
// the canvas.
func (g *Gesture) PreviewPoints() []raster.Point {
	if g.phase != phaseShape {
		return nil
	}
	base := shapePoints(g.spec.Kind, g.start, g.current, g.filled)
	if g.spec.Size <= 1 {
		return base
	}
	expanded := make([]raster.Point, 0, len(base))
	for _, p := range base {
		expanded = append(expanded, raster.BrushPoints(p, g.spec.Size)...)
	}
	return raster.Dedup(expanded)
}

// PreviewCell returns the cell the preview overlay should show and
// whether a preview is active.
func (g *Gesture) PreviewCell() (canvas.Cell, bool) {
	if g.phase != phaseShape {
		return canvas.Cell{}, false
	}
	return g.spec.StampCell(), true
}

// Finish completes the gesture and returns its operation. A non-nil
// end supplies the release point; shape drags otherwise commit at the
// last drag point. The gesture is idle afterwards. Finishing an idle
// gesture returns an empty operation.
func (g *Gesture) Finish(c *canvas.Canvas, end *raster.Point) canvas.Operation {
	defer g.reset()

	switch g.phase {
	case phaseStroke:
		return g.builder.Finalize()
	case phaseShape:
		target := g.current
		if end != nil {
			target = *end
		}
		builder := canvas.NewOperationBuilder()
		for _, p := range shapePoints(g.spec.Kind, g.start, target, g.filled) {
			stampBrush(c, builder, p, g.spec)
		}
		return builder.Finalize()
	default:
		return canvas.Operation{}
	}
}

// Cancel abandons the gesture. Shape drags leave the canvas untouched;
// a canceled stroke keeps its already painted cells but records no
// operation, so they cannot be undone.
func (g *Gesture) Cancel() {
	g.reset()
}

func (g *Gesture) reset() {
	*g = Gesture{}
}

// Fill performs a flood-fill click at p and returns the finalized
// operation. The fill replaces the 4-connected region matching the
// clicked cell with the spec's stamp; clicks off the grid do nothing.
// Brush size does not apply to fills.
func Fill(c *canvas.Canvas, spec Spec, p raster.Point) canvas.Operation {
	target, ok := c.CellAt(p.X, p.Y)
	if !ok {
		return canvas.Operation{}
	}
	replacement := spec.StampCell()
	builder := canvas.NewOperationBuilder()
	for _, q := range raster.FloodFillPoints(c, p, target, replacement) {
		builder.Apply(c, q.X, q.Y, replacement)
	}
	return builder.Finalize()
}

// stampBrush applies one brush stamp of the spec's cell through the
// builder.
func stampBrush(c *canvas.Canvas, b *canvas.OperationBuilder, p raster.Point, spec Spec) {
	cell := spec.StampCell()
	for _, q := range raster.BrushPoints(p, spec.Size) {
		b.Apply(c, q.X, q.Y, cell)
	}
}

// shapePoints is the single dispatch point from a shape tool to its
// geometry.
func shapePoints(kind Kind, start, end raster.Point, filled bool) []raster.Point {
	switch kind {
	case KindLine:
		return raster.BresenhamLine(start, end)
	case KindRectangle:
		return raster.RectanglePoints(start, end, filled)
	case KindEllipse:
		return raster.EllipsePoints(start, end)
	default:
		return nil
	}
}
