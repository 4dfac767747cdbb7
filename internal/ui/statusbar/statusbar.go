// Package statusbar renders the single status line along the bottom of
// the screen: open file, canvas size, active drawing state, pointer
// position, and undo depth.
package statusbar

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/pinceau/internal/raster"
	"github.com/zjrosen/pinceau/internal/tool"
	"github.com/zjrosen/pinceau/internal/ui/styles"
)

// Height is the number of screen rows the status bar occupies.
const Height = 1

// Info is everything the status line shows. The app fills one of these
// per render.
type Info struct {
	FilePath  string
	Dirty     bool
	CanvasW   int
	CanvasH   int
	Spec      tool.Spec
	Hover     *raster.Point
	UndoDepth int
}

// View renders the status line padded or truncated to width. Segments
// are ordered most important first so narrow terminals lose the hints,
// not the file name.
func View(info Info, width int) string {
	parts := []string{
		fileSegment(info),
		toolSegment(info.Spec),
		"Pos:" + hoverSegment(info.Hover),
		fmt.Sprintf("Undo:%d", info.UndoDepth),
		"? help",
	}
	line := strings.Join(parts, " | ")

	if width <= 0 {
		return styles.StatusBarStyle.Render(line)
	}
	content := max(width-2, 0)
	return styles.StatusBarStyle.Width(width).Render(ansi.Truncate(line, content, "…"))
}

// fileSegment names the open file, stars unsaved changes, and appends
// the canvas size.
func fileSegment(info Info) string {
	name := "[No File]"
	if info.FilePath != "" {
		name = filepath.Base(info.FilePath)
	}
	if info.Dirty {
		name += "*"
	}
	return fmt.Sprintf("%s %dx%d", name, info.CanvasW, info.CanvasH)
}

func toolSegment(spec tool.Spec) string {
	return fmt.Sprintf("%s Brush:%s Size:%d Color:%s",
		spec.Kind.Name(), quotedChar(spec.Ch), spec.Size, spec.Color)
}

func hoverSegment(hover *raster.Point) string {
	if hover == nil {
		return "-"
	}
	return fmt.Sprintf("%d,%d", hover.X, hover.Y)
}

// quotedChar keeps a space brush visible in the line.
func quotedChar(ch rune) string {
	if ch == ' ' {
		return "'␠'"
	}
	return fmt.Sprintf("'%c'", ch)
}
