package canvas

// Canvas is a fixed-extent grid of cells stored row-major. Reads
// outside the grid return the blank cell and writes outside it are
// ignored, so callers can apply geometry that strays off the edge
// without bounds checking each point.
type Canvas struct {
	width  int
	height int
	cells  []Cell
}

// New creates a canvas of the given size filled with blank cells.
// Width and height are clamped to at least 1.
func New(width, height int) *Canvas {
	width = max(width, 1)
	height = max(height, 1)
	c := &Canvas{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	blank := BlankCell()
	for i := range c.cells {
		c.cells[i] = blank
	}
	return c
}

// Width returns the grid width in cells.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the grid height in cells.
func (c *Canvas) Height() int {
	return c.height
}

// InBounds reports whether (x, y) lies inside the grid.
func (c *Canvas) InBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Get returns the cell at (x, y), or the blank cell when (x, y) is
// outside the grid.
func (c *Canvas) Get(x, y int) Cell {
	if !c.InBounds(x, y) {
		return BlankCell()
	}
	return c.cells[y*c.width+x]
}

// CellAt returns the cell at (x, y) and whether the coordinate is on
// the grid. Callers that must tell off-grid apart from blank use this
// instead of Get.
func (c *Canvas) CellAt(x, y int) (Cell, bool) {
	if !c.InBounds(x, y) {
		return Cell{}, false
	}
	return c.cells[y*c.width+x], true
}

// Set writes the cell at (x, y). Writes outside the grid are ignored.
func (c *Canvas) Set(x, y int, cell Cell) {
	if !c.InBounds(x, y) {
		return
	}
	c.cells[y*c.width+x] = cell
}

// ResizePreserve resizes the grid in place, keeping the overlapping
// top-left region of the old content and filling any new area with
// blank cells. Dimensions are clamped to at least 1.
func (c *Canvas) ResizePreserve(width, height int) {
	width = max(width, 1)
	height = max(height, 1)
	if width == c.width && height == c.height {
		return
	}

	cells := make([]Cell, width*height)
	blank := BlankCell()
	for i := range cells {
		cells[i] = blank
	}

	copyW := min(c.width, width)
	copyH := min(c.height, height)
	for y := 0; y < copyH; y++ {
		copy(cells[y*width:y*width+copyW], c.cells[y*c.width:y*c.width+copyW])
	}

	c.width = width
	c.height = height
	c.cells = cells
}

// Clone returns a deep copy of the canvas.
func (c *Canvas) Clone() *Canvas {
	cells := make([]Cell, len(c.cells))
	copy(cells, c.cells)
	return &Canvas{width: c.width, height: c.height, cells: cells}
}

// Equal reports whether both canvases have the same size and cells.
func (c *Canvas) Equal(other *Canvas) bool {
	if c.width != other.width || c.height != other.height {
		return false
	}
	for i := range c.cells {
		if c.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}
