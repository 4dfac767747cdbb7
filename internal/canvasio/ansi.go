package canvasio

import (
	"strings"

	"github.com/muesli/termenv"

	"github.com/zjrosen/pinceau/internal/canvas"
)

// EncodeANSI renders the canvas with SGR color sequences so a saved .ans
// file shows its colors when written straight to a terminal. Cells with
// no color information are emitted as bare characters.
func EncodeANSI(c *canvas.Canvas) string {
	profile := termenv.ANSI
	var sb strings.Builder

	for y := 0; y < c.Height(); y++ {
		for x := 0; x < visibleRowEnd(c, y); x++ {
			cell := c.Get(x, y)
			if cell.Fg == canvas.ColorDefault && !cell.HasBg {
				sb.WriteRune(cell.Ch)
				continue
			}

			style := profile.String(string(cell.Ch))
			if cell.Fg != canvas.ColorDefault {
				style = style.Foreground(ansiColor(cell.Fg))
			}
			if cell.HasBg {
				style = style.Background(ansiColor(cell.Bg))
			}
			sb.WriteString(style.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// visibleRowEnd returns one past the last cell in row y that would be
// visible in a terminal. A trailing space is invisible unless it paints
// a background.
func visibleRowEnd(c *canvas.Canvas, y int) int {
	for x := c.Width() - 1; x >= 0; x-- {
		cell := c.Get(x, y)
		if cell.Ch != ' ' || cell.HasBg {
			return x + 1
		}
	}
	return 0
}

func ansiColor(c canvas.Color) termenv.Color {
	switch c {
	case canvas.ColorBlack:
		return termenv.ANSIBlack
	case canvas.ColorRed:
		return termenv.ANSIRed
	case canvas.ColorGreen:
		return termenv.ANSIGreen
	case canvas.ColorYellow:
		return termenv.ANSIYellow
	case canvas.ColorBlue:
		return termenv.ANSIBlue
	case canvas.ColorMagenta:
		return termenv.ANSIMagenta
	case canvas.ColorCyan:
		return termenv.ANSICyan
	case canvas.ColorWhite:
		return termenv.ANSIWhite
	default:
		return termenv.NoColor{}
	}
}
