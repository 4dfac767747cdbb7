// Package canvas implements the character grid that drawing tools
// mutate, the coalescing change tracker that turns a burst of cell
// writes into one reversible operation, and the bounded undo/redo
// history those operations live in.
package canvas

import "fmt"

// Color is one of the nine terminal palette colors a cell can use.
// The zero value is ColorDefault, the terminal's own default color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite

	colorCount = 9
)

var colorNames = [colorCount]string{
	"default",
	"black",
	"red",
	"green",
	"yellow",
	"blue",
	"magenta",
	"cyan",
	"white",
}

// String returns the lowercase color name used in config files and
// serialized canvases.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// ParseColor maps a color name back to its Color value.
func ParseColor(name string) (Color, error) {
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return ColorDefault, fmt.Errorf("unknown color %q", name)
}

// MarshalText encodes the color as its name.
func (c Color) MarshalText() ([]byte, error) {
	if int(c) >= colorCount {
		return nil, fmt.Errorf("invalid color value %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a color from its name.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// QuickPalette returns the eight named colors bound to the number keys,
// in key order. ColorDefault is not part of the quick palette.
func QuickPalette() []Color {
	return []Color{
		ColorBlack,
		ColorRed,
		ColorGreen,
		ColorYellow,
		ColorBlue,
		ColorMagenta,
		ColorCyan,
		ColorWhite,
	}
}

// ColorFromDigit maps the digit keys 1 through 8 to the quick palette.
// Returns false for any other digit.
func ColorFromDigit(d int) (Color, bool) {
	if d < 1 || d > 8 {
		return ColorDefault, false
	}
	return QuickPalette()[d-1], true
}

// Cell is one grid position: a character plus its foreground color and
// optional background color. Cells compare structurally.
type Cell struct {
	Ch    rune
	Fg    Color
	Bg    Color
	HasBg bool
}

// NewCell returns a cell with the given character and foreground color
// and no background.
func NewCell(ch rune, fg Color) Cell {
	return Cell{Ch: ch, Fg: fg}
}

// BlankCell returns the empty cell: a space in the default color with
// no background.
func BlankCell() Cell {
	return Cell{Ch: ' ', Fg: ColorDefault}
}

// WithBackground returns a copy of the cell with the background set.
func (c Cell) WithBackground(bg Color) Cell {
	c.Bg = bg
	c.HasBg = true
	return c
}

// IsBlank reports whether the cell equals the blank cell.
func (c Cell) IsBlank() bool {
	return c == BlankCell()
}
