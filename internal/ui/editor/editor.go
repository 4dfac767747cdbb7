// Package editor renders the canvas region of the screen and maps mouse
// coordinates back onto the grid. It owns no drawing state; each frame
// the app hands it the canvas plus the transient overlays (hover cell,
// shape preview) and gets a styled string back.
package editor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/pinceau/internal/cachemanager"
	"github.com/zjrosen/pinceau/internal/canvas"
	"github.com/zjrosen/pinceau/internal/raster"
	"github.com/zjrosen/pinceau/internal/ui/styles"
)

// Row cache tuning. Rows are small strings; a short expiration keeps the
// cache from hoarding rows of canvases that were resized away.
const (
	rowCacheExpiration = 5 * time.Minute
	rowCacheCleanup    = 10 * time.Minute
)

// Frame is everything the editor needs to render one frame. The canvas
// is read, never written; preview and hover are drawn over it.
type Frame struct {
	Canvas *canvas.Canvas

	// Hover is the grid cell under the pointer, nil when the pointer is
	// off the canvas.
	Hover *raster.Point

	// Preview holds the cells an in-progress shape drag would paint,
	// brush expansion already applied. PreviewCell is the stamp those
	// cells would receive.
	Preview     []raster.Point
	PreviewCell canvas.Cell
}

// Model renders the canvas with a per-row cache. Rows are cached by
// (generation, row) so bumping the generation invalidates everything at
// once without touching the cache.
type Model struct {
	width   int
	height  int
	offsetX int
	offsetY int

	rowCache   cachemanager.CacheManager[string, string]
	generation uint64
}

// New creates an editor model with an empty row cache.
func New() Model {
	return Model{
		rowCache: cachemanager.NewInMemoryCacheManager[string, string](
			"editor-rows", rowCacheExpiration, rowCacheCleanup,
		),
	}
}

// SetSize records the size of the canvas region. The app keeps the
// canvas itself the same size, so this doubles as the hit-test bound.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// SetOffsets records where the canvas region starts on screen: x is the
// left margin, y the rows above it (toolbar).
func (m Model) SetOffsets(x, y int) Model {
	m.offsetX = x
	m.offsetY = y
	return m
}

// Invalidate discards all cached rows. Call after anything that changes
// canvas content: a finished operation, undo, redo, load, clear, resize.
func (m Model) Invalidate() Model {
	m.generation++
	return m
}

// ScreenToCanvas maps terminal coordinates to a grid point. The boolean
// reports whether the point lies on the canvas region.
func (m Model) ScreenToCanvas(x, y int) (raster.Point, bool) {
	p := raster.Point{X: x - m.offsetX, Y: y - m.offsetY}
	ok := p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
	return p, ok
}

// View renders the frame. Rows untouched by hover or preview come from
// the cache; rows under an overlay are rendered fresh each frame. A
// canvas larger than the region is clipped at the right and bottom
// edges.
func (m Model) View(f Frame) string {
	if f.Canvas == nil {
		return ""
	}

	dirty := overlayRows(f)

	height := f.Canvas.Height()
	if m.height > 0 && height > m.height {
		height = m.height
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		var row string
		if dirty[y] {
			row = renderOverlayRow(f, y)
		} else {
			row = m.cachedRow(f.Canvas, y)
		}
		if m.width > 0 {
			row = ansi.Truncate(row, m.width, "")
		}
		b.WriteString(row)
	}
	return b.String()
}

// cachedRow returns the plain render of one row, computing and caching
// it on miss.
func (m Model) cachedRow(c *canvas.Canvas, y int) string {
	ctx := context.Background()
	key := fmt.Sprintf("%d:%d", m.generation, y)
	if row, ok := m.rowCache.GetWithRefresh(ctx, key, rowCacheExpiration); ok {
		return row
	}
	row := renderRow(c, y)
	m.rowCache.Set(ctx, key, row, rowCacheExpiration)
	return row
}

// overlayRows collects the rows touched by hover or preview. Those rows
// cannot come from the cache this frame.
func overlayRows(f Frame) map[int]bool {
	if len(f.Preview) == 0 && f.Hover == nil {
		return nil
	}
	rows := make(map[int]bool)
	for _, p := range f.Preview {
		rows[p.Y] = true
	}
	if f.Hover != nil {
		rows[f.Hover.Y] = true
	}
	return rows
}

// renderRow renders one canvas row with per-cell styling and no
// overlays. This is the cacheable form.
func renderRow(c *canvas.Canvas, y int) string {
	var b strings.Builder
	for x := 0; x < c.Width(); x++ {
		cell := c.Get(x, y)
		b.WriteString(styles.CellStyle(cell).Render(string(displayRune(cell.Ch))))
	}
	return b.String()
}

// renderOverlayRow renders one row with the frame's preview and hover
// applied. Preview wins over the canvas cell, hover reverses whatever
// ends up underneath it.
func renderOverlayRow(f Frame, y int) string {
	var b strings.Builder
	for x := 0; x < f.Canvas.Width(); x++ {
		p := raster.Point{X: x, Y: y}
		hovered := f.Hover != nil && *f.Hover == p

		if isPreviewPoint(f.Preview, p) {
			b.WriteString(renderPreviewCell(f.Canvas.Get(x, y), f.PreviewCell, hovered))
			continue
		}

		cell := f.Canvas.Get(x, y)
		style := styles.CellStyle(cell)
		if hovered {
			style = style.Reverse(true)
		}
		b.WriteString(style.Render(string(displayRune(cell.Ch))))
	}
	return b.String()
}

// renderPreviewCell draws one preview position. A space stamp would be
// invisible, so erasure previews show the covered cell faint instead.
func renderPreviewCell(under canvas.Cell, stamp canvas.Cell, hovered bool) string {
	if stamp.Ch == ' ' {
		style := styles.PreviewStyle
		if hovered {
			style = style.Reverse(true)
		}
		return style.Render(string(displayRune(under.Ch)))
	}
	style := styles.CellStyle(stamp)
	if hovered {
		style = style.Reverse(true)
	}
	return style.Render(string(displayRune(stamp.Ch)))
}

// isPreviewPoint reports whether p is one of the preview cells. The
// slice is small (one shape outline) so a scan beats building a set per
// frame.
func isPreviewPoint(preview []raster.Point, p raster.Point) bool {
	for _, q := range preview {
		if q == p {
			return true
		}
	}
	return false
}

// displayRune guards the one-column invariant of the grid. Anything
// that would render wider or narrower than one cell becomes '?'.
func displayRune(ch rune) rune {
	if ch == 0 {
		return ' '
	}
	if runewidth.RuneWidth(ch) != 1 {
		return '?'
	}
	return ch
}
