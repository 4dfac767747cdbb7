// Package tool defines the drawing tools and the gesture state machine
// that turns press-drag-release interactions into canvas operations.
// Gesture state is a plain value owned by the caller; nothing here
// retains state between calls on its own.
package tool

import "github.com/zjrosen/pinceau/internal/canvas"

// Kind identifies a drawing tool. The set is closed; switches over it
// are exhaustive.
type Kind int

const (
	KindPencil Kind = iota
	KindEraser
	KindLine
	KindRectangle
	KindEllipse
	KindFill
)

// Kinds returns all tools in toolbar order.
func Kinds() []Kind {
	return []Kind{KindPencil, KindEraser, KindLine, KindRectangle, KindEllipse, KindFill}
}

// Name returns the tool's display name.
func (k Kind) Name() string {
	switch k {
	case KindPencil:
		return "Pencil"
	case KindEraser:
		return "Eraser"
	case KindLine:
		return "Line"
	case KindRectangle:
		return "Rectangle"
	case KindEllipse:
		return "Ellipse"
	case KindFill:
		return "Fill"
	}
	return "Unknown"
}

// Label returns the toolbar label with the tool's key hint.
func (k Kind) Label() string {
	switch k {
	case KindPencil:
		return "Pencil(p)"
	case KindEraser:
		return "Eraser(e)"
	case KindLine:
		return "Line(l)"
	case KindRectangle:
		return "Rect(r)"
	case KindEllipse:
		return "Ellipse(c)"
	case KindFill:
		return "Fill(f)"
	}
	return "?"
}

// IsShape reports whether the tool draws a two-point shape committed on
// release rather than painting while dragging.
func (k Kind) IsShape() bool {
	return k == KindLine || k == KindRectangle || k == KindEllipse
}

// Brush size limits. Size 1 paints single cells; size 3 paints a 5x5
// square per stamp.
const (
	MinBrushSize = 1
	MaxBrushSize = 3
)

// ClampBrushSize bounds a brush size to the supported range.
func ClampBrushSize(size int) int {
	return min(max(size, MinBrushSize), MaxBrushSize)
}

// BrushChoices returns the brush characters the toolbar cycles through.
// The trailing space paints blank cells in the current color.
func BrushChoices() []rune {
	return []rune{'#', '@', '.', '*', '+', '%', ' '}
}

// Spec carries the active drawing parameters: which tool is selected
// and the character, color, and brush size it paints with.
type Spec struct {
	Kind  Kind
	Ch    rune
	Color canvas.Color
	Size  int
}

// StampCell returns the cell this spec paints: the blank cell for the
// eraser, otherwise the spec's character in its color.
func (s Spec) StampCell() canvas.Cell {
	if s.Kind == KindEraser {
		return canvas.BlankCell()
	}
	return canvas.NewCell(s.Ch, s.Color)
}
