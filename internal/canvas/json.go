package canvas

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// cellJSON is the wire form of a Cell. Colors are omitted when they
// carry no information so blank-heavy canvases stay small.
type cellJSON struct {
	Ch string `json:"ch"`
	Fg *Color `json:"fg,omitempty"`
	Bg *Color `json:"bg,omitempty"`
}

// MarshalJSON encodes the cell with its character as a string and
// colors by name.
func (c Cell) MarshalJSON() ([]byte, error) {
	cj := cellJSON{Ch: string(c.Ch)}
	if c.Fg != ColorDefault {
		fg := c.Fg
		cj.Fg = &fg
	}
	if c.HasBg {
		bg := c.Bg
		cj.Bg = &bg
	}
	return json.Marshal(cj)
}

// UnmarshalJSON decodes a cell, rejecting characters that are not
// exactly one rune.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var cj cellJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return err
	}

	r, size := utf8.DecodeRuneInString(cj.Ch)
	if size == 0 || size != len(cj.Ch) || r == utf8.RuneError && size == 1 {
		return fmt.Errorf("cell character must be a single rune, got %q", cj.Ch)
	}

	cell := Cell{Ch: r}
	if cj.Fg != nil {
		cell.Fg = *cj.Fg
	}
	if cj.Bg != nil {
		cell.Bg = *cj.Bg
		cell.HasBg = true
	}
	*c = cell
	return nil
}

// canvasJSON is the wire form of a Canvas: dimensions plus the cells
// in row-major order.
type canvasJSON struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cells  []Cell `json:"cells"`
}

// MarshalJSON encodes the canvas losslessly.
func (c *Canvas) MarshalJSON() ([]byte, error) {
	return json.Marshal(canvasJSON{
		Width:  c.width,
		Height: c.height,
		Cells:  c.cells,
	})
}

// UnmarshalJSON decodes a canvas, validating that the cell count
// matches the declared dimensions.
func (c *Canvas) UnmarshalJSON(data []byte) error {
	var cj canvasJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return err
	}

	if cj.Width < 1 || cj.Height < 1 {
		return fmt.Errorf("invalid canvas size %dx%d", cj.Width, cj.Height)
	}
	if len(cj.Cells) != cj.Width*cj.Height {
		return fmt.Errorf("canvas cell count %d does not match size %dx%d", len(cj.Cells), cj.Width, cj.Height)
	}

	c.width = cj.Width
	c.height = cj.Height
	c.cells = cj.Cells
	return nil
}
