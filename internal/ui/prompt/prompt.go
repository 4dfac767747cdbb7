// Package prompt provides the single-line input modal used for save and
// open paths, new canvas sizes, and the quit confirmation.
package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/pinceau/internal/ui/overlay"
	"github.com/zjrosen/pinceau/internal/ui/styles"
)

// Mode identifies what the prompt is asking for.
type Mode int

const (
	ModeSave Mode = iota
	ModeOpen
	ModeNew
	ModeQuitConfirm
)

// SubmitMsg is sent when the user confirms a prompt. Value carries the
// trimmed input text; it is empty for ModeQuitConfirm.
type SubmitMsg struct {
	Mode  Mode
	Value string
}

// CancelMsg is sent when the user dismisses a prompt.
type CancelMsg struct{}

const boxWidth = 50

// Model holds the prompt state. The zero-value-like model from New is
// inactive; Show arms it for one question.
type Model struct {
	mode   Mode
	active bool
	input  textinput.Model
	width  int
	height int
}

// New creates an inactive prompt.
func New() Model {
	input := textinput.New()
	input.CharLimit = 200
	input.Width = boxWidth - 4
	input.Prompt = "> "
	return Model{input: input}
}

// Show activates the prompt in the given mode with the input prefilled.
func (m Model) Show(mode Mode, initial string) Model {
	m.mode = mode
	m.active = true
	m.input.Placeholder = mode.placeholder()
	m.input.SetValue(initial)
	m.input.CursorEnd()
	m.input.Focus()
	return m
}

// Hide deactivates the prompt.
func (m Model) Hide() Model {
	m.active = false
	m.input.Blur()
	return m
}

// Active reports whether the prompt is showing.
func (m Model) Active() bool {
	return m.active
}

// ActiveMode returns the mode of the showing prompt.
func (m Model) ActiveMode() Mode {
	return m.mode
}

// Value returns the current input text.
func (m Model) Value() string {
	return m.input.Value()
}

// SetSize updates the viewport dimensions for overlay positioning.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Update handles messages while the prompt is active. Enter submits,
// Esc cancels, everything else feeds the input. The quit confirmation
// takes y/n instead of text.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		if m.mode == ModeQuitConfirm {
			return m.updateConfirm(key)
		}
		switch key.String() {
		case "esc":
			m = m.Hide()
			return m, func() tea.Msg { return CancelMsg{} }
		case "enter":
			mode := m.mode
			value := strings.TrimSpace(m.input.Value())
			m = m.Hide()
			return m, func() tea.Msg { return SubmitMsg{Mode: mode, Value: value} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(key tea.KeyMsg) (Model, tea.Cmd) {
	switch key.String() {
	case "y", "Y", "enter":
		m = m.Hide()
		return m, func() tea.Msg { return SubmitMsg{Mode: ModeQuitConfirm} }
	case "n", "N", "esc":
		m = m.Hide()
		return m, func() tea.Msg { return CancelMsg{} }
	}
	return m, nil
}

// View renders the prompt box.
func (m Model) View() string {
	if !m.active {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor)
	dividerStyle := lipgloss.NewStyle().Foreground(styles.BorderDefaultColor)
	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)

	body := m.input.View()
	if m.mode == ModeQuitConfirm {
		body = "Quit without saving? (y/n)"
	}

	content := titleStyle.Render(m.mode.title()) + "\n" +
		dividerStyle.Render(strings.Repeat("─", boxWidth-2)) + "\n" +
		body + "\n" +
		hintStyle.Render(m.mode.hint())

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Padding(0, 1).
		Width(boxWidth)

	return box.Render(content)
}

// Overlay renders the prompt centered over a background view.
func (m Model) Overlay(background string) string {
	if !m.active {
		return background
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), background)
}

func (mode Mode) title() string {
	switch mode {
	case ModeSave:
		return "Save Canvas"
	case ModeOpen:
		return "Open File"
	case ModeNew:
		return "New Canvas"
	case ModeQuitConfirm:
		return "Unsaved Changes"
	}
	return ""
}

func (mode Mode) placeholder() string {
	switch mode {
	case ModeSave, ModeOpen:
		return "path/to/art.json"
	case ModeNew:
		return "WIDTHxHEIGHT, empty for default"
	}
	return ""
}

func (mode Mode) hint() string {
	if mode == ModeQuitConfirm {
		return "y quit without saving · n keep editing"
	}
	return "enter confirm · esc cancel"
}
