// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the editor.
type KeyMap struct {
	// Tools
	Pencil    key.Binding
	Eraser    key.Binding
	Line      key.Binding
	Rectangle key.Binding
	Ellipse   key.Binding
	Fill      key.Binding

	// Editing
	Undo         key.Binding
	Redo         key.Binding
	BrushSmaller key.Binding
	BrushLarger  key.Binding
	CycleBrush   key.Binding
	ToggleFilled key.Binding

	// Color
	DefaultColor key.Binding
	Palette      key.Binding

	// Files
	Save key.Binding
	Open key.Binding
	New  key.Binding

	// General
	Help   key.Binding
	Escape key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Tools
		Pencil: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pencil"),
		),
		Eraser: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "eraser"),
		),
		Line: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "line"),
		),
		Rectangle: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rectangle"),
		),
		Ellipse: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "ellipse"),
		),
		Fill: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "flood fill"),
		),

		// Editing
		Undo: key.NewBinding(
			key.WithKeys("u", "ctrl+z"),
			key.WithHelp("u", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("y", "ctrl+y"),
			key.WithHelp("y", "redo"),
		),
		BrushSmaller: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "smaller brush"),
		),
		BrushLarger: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "larger brush"),
		),
		CycleBrush: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "cycle brush char"),
		),
		ToggleFilled: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle filled shapes"),
		),

		// Color
		DefaultColor: key.NewBinding(
			key.WithKeys("0", "d"),
			key.WithHelp("0/d", "default color"),
		),
		Palette: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"),
			key.WithHelp("1-8", "pick color"),
		),

		// Files
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Open: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "open"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new canvas"),
		),

		// General
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view, grouped as
// tools, editing, color, files, and general.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pencil, k.Eraser, k.Line, k.Rectangle, k.Ellipse, k.Fill},
		{k.Undo, k.Redo, k.BrushSmaller, k.BrushLarger, k.CycleBrush, k.ToggleFilled},
		{k.DefaultColor, k.Palette},
		{k.Save, k.Open, k.New},
		{k.Help, k.Escape, k.Quit},
	}
}
