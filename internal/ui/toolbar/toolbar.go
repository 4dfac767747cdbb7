// Package toolbar renders the one-line tool strip across the top of the
// screen and resolves mouse clicks on it. It keeps no state of its own;
// the active spec comes in with every render and clicks come back out
// as Actions for the app to apply.
package toolbar

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/pinceau/internal/canvas"
	"github.com/zjrosen/pinceau/internal/tool"
	"github.com/zjrosen/pinceau/internal/ui/styles"
)

// Height is the number of screen rows the toolbar occupies.
const Height = 1

// Zone ID constants for mouse click detection.
const (
	zoneToolPrefix = "toolbar-tool:"
	zoneBrush      = "toolbar-brush"
	zoneSize       = "toolbar-size"
	zoneFilled     = "toolbar-filled"
	zoneColor      = "toolbar-color"
)

// makeToolZoneID creates a zone ID for a tool button.
func makeToolZoneID(k tool.Kind) string {
	return fmt.Sprintf("%s%d", zoneToolPrefix, int(k))
}

// ActionKind enumerates what a toolbar click can ask for.
type ActionKind int

const (
	ActionSelectTool ActionKind = iota
	ActionCycleBrush
	ActionCycleSize
	ActionToggleFilled
	ActionCycleColor
)

// Action is the decoded result of a toolbar click.
type Action struct {
	Kind ActionKind
	Tool tool.Kind // set when Kind is ActionSelectTool
}

var (
	buttonStyle   = lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	dividerStyle  = lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	onStyle       = lipgloss.NewStyle().Bold(true)
	offStyle      = lipgloss.NewStyle().Faint(true)
)

// View renders the strip for the given drawing state. Segments that do
// not fit the width are dropped from the right, tools first to go last.
func View(spec tool.Spec, filled bool, width int) string {
	divider := dividerStyle.Render("│")

	chunks := []string{
		toolSegment(spec.Kind),
		divider + " " + brushSegment(spec),
		divider + " " + filledSegment(filled),
		divider + " " + colorSegment(spec.Color),
	}

	line := chunks[0]
	for _, chunk := range chunks[1:] {
		candidate := line + " " + chunk
		if width > 0 && lipgloss.Width(candidate) > width {
			break
		}
		line = candidate
	}
	return line
}

// HitTest resolves a mouse event against the toolbar zones. The boolean
// is false when the event hit none of them. Zones only exist after the
// composed view has been through zone.Scan.
func HitTest(msg tea.MouseMsg) (Action, bool) {
	for _, k := range tool.Kinds() {
		if z := zone.Get(makeToolZoneID(k)); z != nil && z.InBounds(msg) {
			return Action{Kind: ActionSelectTool, Tool: k}, true
		}
	}

	checks := []struct {
		id   string
		kind ActionKind
	}{
		{zoneBrush, ActionCycleBrush},
		{zoneSize, ActionCycleSize},
		{zoneFilled, ActionToggleFilled},
		{zoneColor, ActionCycleColor},
	}
	for _, c := range checks {
		if z := zone.Get(c.id); z != nil && z.InBounds(msg) {
			return Action{Kind: c.kind}, true
		}
	}

	return Action{}, false
}

// toolSegment renders one bracketed button per tool, the selected one
// reversed the way the active tool reads on classic paint toolbars.
func toolSegment(selected tool.Kind) string {
	buttons := make([]string, 0, len(tool.Kinds()))
	for _, k := range tool.Kinds() {
		label := "[" + shortLabel(k) + "]"
		style := buttonStyle
		if k == selected {
			style = selectedStyle
		}
		buttons = append(buttons, zone.Mark(makeToolZoneID(k), style.Render(label)))
	}
	return strings.Join(buttons, " ")
}

// brushSegment shows the brush character and size. Clicking the
// character cycles through the brush choices, clicking the size cycles
// 1 through 3.
func brushSegment(spec tool.Spec) string {
	brush := zone.Mark(zoneBrush, "Brush:"+printableChar(spec.Ch))
	size := zone.Mark(zoneSize, fmt.Sprintf("Size:%d", spec.Size))
	return brush + " " + size
}

func filledSegment(filled bool) string {
	if filled {
		return zone.Mark(zoneFilled, onStyle.Render("Filled:on"))
	}
	return zone.Mark(zoneFilled, offStyle.Render("Filled:off"))
}

// colorSegment names the active color, tinted with itself so the swatch
// doubles as the label.
func colorSegment(c canvas.Color) string {
	label := "Color:" + c.String()
	if c == canvas.ColorDefault {
		return zone.Mark(zoneColor, label)
	}
	style := lipgloss.NewStyle().Foreground(styles.TerminalColor(c))
	return zone.Mark(zoneColor, style.Render(label))
}

// printableChar keeps a space brush visible in the strip.
func printableChar(ch rune) string {
	if ch == ' ' {
		return "␠"
	}
	return string(ch)
}

// shortLabel is the single-letter button face for a tool. The full name
// and key hint live in the status bar and help overlay.
func shortLabel(k tool.Kind) string {
	switch k {
	case tool.KindPencil:
		return "P"
	case tool.KindEraser:
		return "E"
	case tool.KindLine:
		return "L"
	case tool.KindRectangle:
		return "R"
	case tool.KindEllipse:
		return "C"
	case tool.KindFill:
		return "F"
	}
	return "?"
}
