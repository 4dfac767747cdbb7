package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/pinceau/internal/canvas"
)

var (
	// Preview cells are drawn faint so they read as provisional.
	PreviewStyle = lipgloss.NewStyle().Faint(true)

	// Hover highlight for the cell under the pointer.
	HoverStyle = lipgloss.NewStyle().Reverse(true)
)

// TerminalColor maps a canvas palette color to its ANSI terminal color.
// ColorDefault maps to NoColor, leaving the terminal's own colors alone.
func TerminalColor(c canvas.Color) lipgloss.TerminalColor {
	switch c {
	case canvas.ColorBlack:
		return lipgloss.Color("0")
	case canvas.ColorRed:
		return lipgloss.Color("1")
	case canvas.ColorGreen:
		return lipgloss.Color("2")
	case canvas.ColorYellow:
		return lipgloss.Color("3")
	case canvas.ColorBlue:
		return lipgloss.Color("4")
	case canvas.ColorMagenta:
		return lipgloss.Color("5")
	case canvas.ColorCyan:
		return lipgloss.Color("6")
	case canvas.ColorWhite:
		return lipgloss.Color("7")
	default:
		return lipgloss.NoColor{}
	}
}

// CellStyle builds the render style for one canvas cell.
func CellStyle(cell canvas.Cell) lipgloss.Style {
	style := lipgloss.NewStyle()
	if cell.Fg != canvas.ColorDefault {
		style = style.Foreground(TerminalColor(cell.Fg))
	}
	if cell.HasBg {
		style = style.Background(TerminalColor(cell.Bg))
	}
	return style
}
