// Package raster converts tool gestures into the grid coordinates they
// touch. Everything here is pure integer geometry over signed points:
// no floating point, no clipping. Points may land outside the canvas;
// the canvas ignores those writes when they are applied.
package raster

// Point is a signed grid coordinate. It is distinct from the canvas's
// indices because geometry can transiently produce off-grid points.
type Point struct {
	X int
	Y int
}

// BrushPoints returns the square stamp of a brush centered on center.
// Size 1 is the single center cell; each size above that grows the
// square by one cell of radius, so size 3 covers a 5x5 block.
func BrushPoints(center Point, size int) []Point {
	radius := max(size-1, 0)
	side := 2*radius + 1
	points := make([]Point, 0, side*side)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			points = append(points, Point{center.X + dx, center.Y + dy})
		}
	}
	return points
}

// BresenhamLine returns every cell the integer line from start to end
// crosses, both endpoints included, ordered from start to end, with no
// duplicates.
func BresenhamLine(start, end Point) []Point {
	x0, y0 := start.X, start.Y
	x1, y1 := end.X, end.Y

	dx := abs(x1 - x0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	dy := -abs(y1 - y0)
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	points := make([]Point, 0, max(dx, -dy)+1)
	for {
		points = append(points, Point{x0, y0})
		if x0 == x1 && y0 == y1 {
			return points
		}
		e2 := 2 * err
		if e2 >= dy && x0 != x1 {
			err += dy
			x0 += sx
		}
		if e2 <= dx && y0 != y1 {
			err += dx
			y0 += sy
		}
	}
}

// RectanglePoints returns the cells of the rectangle spanned by two
// corners, in either order. Filled rectangles come back row-major;
// outlines cover all four edges with every corner appearing once.
func RectanglePoints(start, end Point, filled bool) []Point {
	minX := min(start.X, end.X)
	maxX := max(start.X, end.X)
	minY := min(start.Y, end.Y)
	maxY := max(start.Y, end.Y)

	if filled {
		points := make([]Point, 0, (maxX-minX+1)*(maxY-minY+1))
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				points = append(points, Point{x, y})
			}
		}
		return points
	}

	points := make([]Point, 0, 2*(maxX-minX+1)+2*(maxY-minY+1))
	for x := minX; x <= maxX; x++ {
		points = append(points, Point{x, minY}, Point{x, maxY})
	}
	for y := minY; y <= maxY; y++ {
		points = append(points, Point{minX, y}, Point{maxX, y})
	}
	return Dedup(points)
}

// EllipsePoints returns the outline of the ellipse inscribed in the
// bounding box of the two corners. The radii are half the box extents
// (integer division). A box that is a single cell collapses to its
// center; a box with one zero radius collapses to a straight segment.
// There is no filled variant.
func EllipsePoints(start, end Point) []Point {
	minX := min(start.X, end.X)
	maxX := max(start.X, end.X)
	minY := min(start.Y, end.Y)
	maxY := max(start.Y, end.Y)

	rx := (maxX - minX) / 2
	ry := (maxY - minY) / 2
	cx := minX + rx
	cy := minY + ry

	if rx == 0 && ry == 0 {
		return []Point{{cx, cy}}
	}
	if rx == 0 {
		points := make([]Point, 0, maxY-minY+1)
		for y := minY; y <= maxY; y++ {
			points = append(points, Point{cx, y})
		}
		return points
	}
	if ry == 0 {
		points := make([]Point, 0, maxX-minX+1)
		for x := minX; x <= maxX; x++ {
			points = append(points, Point{x, cy})
		}
		return points
	}

	// Midpoint ellipse. The decision terms use 64-bit doubled squared
	// radii so they stay exact for any radius the terminal can show.
	rx2 := int64(rx) * int64(rx)
	ry2 := int64(ry) * int64(ry)
	twoRx2 := 2 * rx2
	twoRy2 := 2 * ry2

	var x, px int64
	y := int64(ry)
	py := twoRx2 * y

	var points []Point

	// Region 1: slope magnitude below one, step x every iteration.
	p := ry2 - rx2*int64(ry) + rx2/4
	for px < py {
		points = appendQuadrants(points, cx, cy, int(x), int(y))
		x++
		px += twoRy2
		if p < 0 {
			p += ry2 + px
		} else {
			y--
			py -= twoRx2
			p += ry2 + px - py
		}
	}

	// Region 2: slope magnitude at least one, step y every iteration.
	p2 := ry2*(x*x+x) + ry2/4 + rx2*(y-1)*(y-1) - rx2*ry2
	for y >= 0 {
		points = appendQuadrants(points, cx, cy, int(x), int(y))
		y--
		py -= twoRx2
		if p2 > 0 {
			p2 += rx2 - py
		} else {
			x++
			px += twoRy2
			p2 += rx2 - py + px
		}
	}

	return Dedup(points)
}

// appendQuadrants plots one ellipse step mirrored into all four
// quadrants around the center.
func appendQuadrants(points []Point, cx, cy, dx, dy int) []Point {
	return append(points,
		Point{cx + dx, cy + dy},
		Point{cx - dx, cy + dy},
		Point{cx + dx, cy - dy},
		Point{cx - dx, cy - dy},
	)
}

// Dedup removes repeated points, keeping the first occurrence of each
// and preserving order otherwise.
func Dedup(points []Point) []Point {
	seen := make(map[Point]struct{}, len(points))
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
