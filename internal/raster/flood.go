package raster

import "github.com/zjrosen/pinceau/internal/canvas"

// FloodFillPoints returns the 4-connected region of cells equal to
// target reachable from start, in breadth-first discovery order. The
// canvas is only read, never written; callers apply the replacement to
// the returned coordinates afterwards. A fill whose target equals its
// replacement, or whose seed lies off the grid, returns nothing.
func FloodFillPoints(c *canvas.Canvas, start Point, target, replacement canvas.Cell) []Point {
	if target == replacement || !c.InBounds(start.X, start.Y) {
		return nil
	}

	width := c.Width()
	visited := make([]bool, width*c.Height())

	queue := []Point{start}
	var out []Point

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		if !c.InBounds(p.X, p.Y) {
			continue
		}
		idx := p.Y*width + p.X
		if visited[idx] {
			continue
		}
		visited[idx] = true

		if c.Get(p.X, p.Y) != target {
			continue
		}

		out = append(out, p)
		queue = append(queue,
			Point{p.X + 1, p.Y},
			Point{p.X - 1, p.Y},
			Point{p.X, p.Y + 1},
			Point{p.X, p.Y - 1},
		)
	}

	return out
}
