package testutil

import "github.com/zjrosen/pinceau/internal/canvas"

// cellData holds one pending cell write.
type cellData struct {
	x    int
	y    int
	cell canvas.Cell
}

// defaultCell returns a cell with the given character, the default
// foreground, and no background.
func defaultCell(ch rune) canvas.Cell {
	return canvas.NewCell(ch, canvas.ColorDefault)
}

// CellOption configures a cell during builder setup.
type CellOption func(*canvas.Cell)

// Foreground sets the cell foreground color.
func Foreground(c canvas.Color) CellOption {
	return func(cell *canvas.Cell) { cell.Fg = c }
}

// Background sets the cell background color.
func Background(c canvas.Color) CellOption {
	return func(cell *canvas.Cell) {
		cell.Bg = c
		cell.HasBg = true
	}
}
