package testutil

import "github.com/zjrosen/pinceau/internal/canvas"

// WithFrame draws a single-line box around the canvas edge.
func (b *Builder) WithFrame(opts ...CellOption) *Builder {
	right := b.width - 1
	bottom := b.height - 1
	for x := 1; x < right; x++ {
		b.WithCell(x, 0, '─', opts...)
		b.WithCell(x, bottom, '─', opts...)
	}
	for y := 1; y < bottom; y++ {
		b.WithCell(0, y, '│', opts...)
		b.WithCell(right, y, '│', opts...)
	}
	return b.
		WithCell(0, 0, '┌', opts...).
		WithCell(right, 0, '┐', opts...).
		WithCell(0, bottom, '└', opts...).
		WithCell(right, bottom, '┘', opts...)
}

// WithPaletteStripes fills one row per quick palette color, top to
// bottom, each stripe drawn with the first letter of its color name.
// Rows past the canvas height are skipped.
func (b *Builder) WithPaletteStripes() *Builder {
	for row, color := range canvas.QuickPalette() {
		if row >= b.height {
			break
		}
		ch := []rune(color.String())[0]
		b.WithRow(row, ch, Foreground(color))
	}
	return b
}

// WithSampleArt paints the small framed greeting shared by persistence
// and app tests. Needs a canvas of at least 6x4.
//
// Layout:
//
//	+----+
//	|hi !|
//	+----+
//	***
func (b *Builder) WithSampleArt() *Builder {
	return b.
		WithText(0, 0, "+----+").
		WithCell(0, 1, '|').
		WithText(1, 1, "hi !", Foreground(canvas.ColorYellow)).
		WithCell(5, 1, '|').
		WithText(0, 2, "+----+").
		WithText(0, 3, "***", Foreground(canvas.ColorRed), Background(canvas.ColorBlue))
}
