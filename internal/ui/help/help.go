// Package help contains the help overlay component.
package help

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/pinceau/internal/cachemanager"
	"github.com/zjrosen/pinceau/internal/keys"
	"github.com/zjrosen/pinceau/internal/ui/overlay"
	"github.com/zjrosen/pinceau/internal/ui/styles"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			PaddingLeft(2)

	dividerStyle = lipgloss.NewStyle().
			Foreground(styles.OverlayBorderColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			MarginTop(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondaryColor).
			Width(8)

	descStyle = lipgloss.NewStyle().
			Foreground(styles.TextDescriptionColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.OverlayBorderColor)

	contentStyle = lipgloss.NewStyle().
			Padding(0, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			MarginTop(1)
)

// usageMarkdown is the mouse guide shown under the keybinding columns.
// Rendered through glamour so the emphasis survives theming.
const usageMarkdown = `## Mouse

- **Left drag** paints with the active tool; shapes preview until released
- **Right click** picks up the character and color under the pointer
- **Wheel** cycles through the palette
- **Toolbar clicks** switch tools and cycle brush, size, filled, and color`

// usageFallback stands in when glamour cannot render.
const usageFallback = `Mouse

  left drag    paint with the active tool
  right click  pick up character and color
  wheel        cycle through the palette
  toolbar      switch tools, cycle brush and color`

// usageTTL bounds the cached glamour output. The content is static;
// the cache only spares re-rendering it every frame the overlay is up.
const usageTTL = 10 * time.Minute

// noMarginStyle strips glamour's document margins so the markdown sits
// flush inside the help box.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Model holds the help view state.
type Model struct {
	keys   keys.KeyMap
	width  int
	height int
	usage  *cachemanager.ReadThroughCache[string, string, int]
}

// New creates the help view.
func New() Model {
	cache := cachemanager.NewInMemoryCacheManager[string, string](
		"help-usage", usageTTL, 2*usageTTL,
	)
	return Model{
		keys:  keys.DefaultKeyMap(),
		usage: cachemanager.NewReadThroughCache(cache, renderUsage, false),
	}
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the help overlay (standalone, no background).
func (m Model) View() string {
	return m.Overlay("")
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	helpBox := m.renderContent()

	if background == "" {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			helpBox,
		)
	}

	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, helpBox, background)
}

// renderContent builds the help box: keybindings in columns, mouse
// usage below, footer hint at the bottom.
func (m Model) renderContent() string {
	columnStyle := lipgloss.NewStyle().MarginRight(4)

	toolsCol := renderSection("Tools",
		m.keys.Pencil, m.keys.Eraser, m.keys.Line,
		m.keys.Rectangle, m.keys.Ellipse, m.keys.Fill,
	)

	editingCol := renderSection("Editing",
		m.keys.Undo, m.keys.Redo, m.keys.BrushSmaller,
		m.keys.BrushLarger, m.keys.CycleBrush, m.keys.ToggleFilled,
	)

	restCol := renderSection("Color", m.keys.DefaultColor, m.keys.Palette) + "\n" +
		renderSection("Files", m.keys.Save, m.keys.Open, m.keys.New) + "\n" +
		renderSection("General", m.keys.Help, m.keys.Escape, m.keys.Quit)

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(toolsCol),
		columnStyle.Render(editingCol),
		restCol,
	)

	columnsWidth := lipgloss.Width(columns)
	boxWidth := columnsWidth + 4

	usageBody, err := m.usage.Get(
		context.Background(),
		fmt.Sprintf("usage:%d", columnsWidth),
		columnsWidth,
		usageTTL,
	)
	if err != nil {
		usageBody = usageFallback
	}

	body := contentStyle.Render(
		columns + "\n" + usageBody + "\n" + footerStyle.Render("Press ? or Esc to close"),
	)

	divider := dividerStyle.Render(strings.Repeat("─", boxWidth))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Pinceau Help"))
	content.WriteString("\n")
	content.WriteString(divider)
	content.WriteString("\n")
	content.WriteString(body)

	return boxStyle.Width(boxWidth).Render(content.String())
}

// renderSection renders a titled column of keybindings.
func renderSection(title string, bindings ...key.Binding) string {
	var col strings.Builder
	col.WriteString(sectionStyle.Render(title))
	col.WriteString("\n")
	for _, b := range bindings {
		help := b.Help()
		col.WriteString(keyStyle.Render(help.Key) + descStyle.Render(help.Desc) + "\n")
	}
	return col.String()
}

// renderUsage turns the usage markdown into styled terminal text.
// Glamour picks a light or dark style from the terminal on its own.
func renderUsage(_ context.Context, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(usageMarkdown)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}
