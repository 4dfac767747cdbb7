// Package testutil builds canvas fixtures for tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/pinceau/internal/canvas"
)

// Builder accumulates cell writes and paints them onto a fresh canvas
// in insertion order, so later writes win the way real strokes do.
type Builder struct {
	t      *testing.T
	width  int
	height int
	cells  []cellData
}

// NewBuilder creates a builder for a canvas of the given size.
func NewBuilder(t *testing.T, width, height int) *Builder {
	t.Helper()
	return &Builder{t: t, width: width, height: height}
}

// WithCell adds a single cell write with optional configuration.
func (b *Builder) WithCell(x, y int, ch rune, opts ...CellOption) *Builder {
	cell := defaultCell(ch)
	for _, opt := range opts {
		opt(&cell)
	}
	b.cells = append(b.cells, cellData{x: x, y: y, cell: cell})
	return b
}

// WithText adds one cell write per rune of text, starting at (x, y) and
// running right.
func (b *Builder) WithText(x, y int, text string, opts ...CellOption) *Builder {
	for i, ch := range []rune(text) {
		b.WithCell(x+i, y, ch, opts...)
	}
	return b
}

// WithRow fills the whole row y with the given character.
func (b *Builder) WithRow(y int, ch rune, opts ...CellOption) *Builder {
	for x := 0; x < b.width; x++ {
		b.WithCell(x, y, ch, opts...)
	}
	return b
}

// Build paints all accumulated cells and returns the canvas. A write
// outside the grid fails the test, catching fixture typos that the
// canvas itself would silently drop.
func (b *Builder) Build() *canvas.Canvas {
	b.t.Helper()
	c := canvas.New(b.width, b.height)
	for _, cd := range b.cells {
		require.True(b.t, c.InBounds(cd.x, cd.y),
			"cell (%d,%d) is outside the %dx%d canvas", cd.x, cd.y, b.width, b.height)
		c.Set(cd.x, cd.y, cd.cell)
	}
	return c
}
