// Package app wires the canvas, tools, and UI components into the root
// bubbletea model. It owns all mutable editing state: the canvas and its
// history, the active tool spec, the in-flight gesture, and the file the
// drawing belongs to.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/pinceau/internal/canvas"
	"github.com/zjrosen/pinceau/internal/canvasio"
	"github.com/zjrosen/pinceau/internal/config"
	"github.com/zjrosen/pinceau/internal/keys"
	"github.com/zjrosen/pinceau/internal/log"
	"github.com/zjrosen/pinceau/internal/pubsub"
	"github.com/zjrosen/pinceau/internal/raster"
	"github.com/zjrosen/pinceau/internal/store"
	"github.com/zjrosen/pinceau/internal/tool"
	"github.com/zjrosen/pinceau/internal/ui/editor"
	"github.com/zjrosen/pinceau/internal/ui/help"
	"github.com/zjrosen/pinceau/internal/ui/prompt"
	"github.com/zjrosen/pinceau/internal/ui/statusbar"
	"github.com/zjrosen/pinceau/internal/ui/toaster"
	"github.com/zjrosen/pinceau/internal/ui/toolbar"
	"github.com/zjrosen/pinceau/internal/watcher"
)

// defaultFileName is offered in the save prompt when the drawing has
// never been saved.
const defaultFileName = "canvas.json"

// watcherSuppressWindow is how long file events are ignored after our
// own save. The watcher debounces for one second, so two covers the
// echo of a write we made ourselves.
const watcherSuppressWindow = 2 * time.Second

// Model is the root application model.
type Model struct {
	cfg        config.Config
	configPath string

	canvas  *canvas.Canvas
	history *canvas.History
	spec    tool.Spec
	filled  bool

	gesture tool.Gesture
	hover   *raster.Point

	filePath string
	dirty    bool

	// fitToTerminal resizes the canvas with the drawable region. It is
	// off for canvases given an explicit size, which keep their
	// dimensions and get clipped by the editor instead.
	fitToTerminal bool

	editor   editor.Model
	prompt   prompt.Model
	help     help.Model
	toaster  toaster.Model
	showHelp bool

	keys keys.KeyMap

	width  int
	height int

	db        *store.DB
	snapshots *store.SnapshotRepository

	watcherHandle   *watcher.Watcher
	watcherCancel   context.CancelFunc
	watcherListener *pubsub.ContinuousListener[watcher.FileEvent]
	suppressUntil   time.Time
}

// New creates the root model. The snapshot store may be nil, in which
// case autosnapshots are skipped. fixedSize pins the canvas to its
// current dimensions instead of following the terminal.
func New(cfg config.Config, configPath string, db *store.DB, c *canvas.Canvas, filePath string, fixedSize bool) Model {
	m := Model{
		cfg:           cfg,
		configPath:    configPath,
		canvas:        c,
		history:       canvas.NewHistory(cfg.History.Capacity),
		spec:          cfg.Tools.ToolSpec(),
		filled:        cfg.Tools.Filled,
		filePath:      filePath,
		fitToTerminal: !fixedSize,
		editor:        editor.New().SetOffsets(0, toolbar.Height),
		prompt:        prompt.New(),
		help:          help.New(),
		toaster:       toaster.New(),
		keys:          keys.DefaultKeyMap(),
		db:            db,
	}
	if db != nil {
		m.snapshots = db.Snapshots()
	}
	if filePath != "" {
		m = m.startWatcher(filePath)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.listenCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.update(msg)
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		if m.prompt.Active() {
			var cmd tea.Cmd
			m.prompt, cmd = m.prompt.Update(msg)
			return m, cmd
		}
		if m.showHelp {
			return m.handleHelpKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case prompt.SubmitMsg:
		return m.handlePromptSubmit(msg)

	case prompt.CancelMsg:
		return m, nil

	case toaster.DismissMsg:
		m.toaster = m.toaster.Hide()
		return m, nil

	case pubsub.Event[watcher.FileEvent]:
		return m.handleFileEvent(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	frame := editor.Frame{
		Canvas:  m.canvas,
		Hover:   m.hover,
		Preview: m.gesture.PreviewPoints(),
	}
	if cell, ok := m.gesture.PreviewCell(); ok {
		frame.PreviewCell = cell
	}

	drawW, drawH := m.drawableSize()
	region := lipgloss.NewStyle().
		Width(drawW).
		Height(drawH).
		Render(m.editor.View(frame))

	view := lipgloss.JoinVertical(lipgloss.Left,
		toolbar.View(m.spec, m.filled, m.width),
		region,
		statusbar.View(m.statusInfo(), m.width),
	)

	if m.prompt.Active() {
		view = m.prompt.Overlay(view)
	}
	if m.showHelp {
		view = m.help.Overlay(view)
	}
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}

	return zone.Scan(view)
}

// Close releases the watcher and the snapshot store. Call it after the
// program loop exits.
func (m *Model) Close() error {
	if m.watcherCancel != nil {
		m.watcherCancel()
	}
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// resize adapts the layout to a new terminal size. In fit mode the
// canvas tracks the drawable region; undo entries survive, since writes
// that land out of range degrade to no-ops.
func (m Model) resize(width, height int) Model {
	m.width = width
	m.height = height

	drawW, drawH := m.drawableSize()
	if m.fitToTerminal {
		m.canvas.ResizePreserve(drawW, drawH)
	}
	m.editor = m.editor.SetSize(drawW, drawH).Invalidate()
	m.prompt = m.prompt.SetSize(width, height)
	m.help = m.help.SetSize(width, height)
	m.toaster = m.toaster.SetSize(width, height)

	log.Debug(log.CatApp, "terminal resized", "width", width, "height", height)
	return m
}

// drawableSize is the region between the toolbar and the status bar.
// Before the first WindowSizeMsg it falls back to the canvas size so
// the editor renders the whole grid.
func (m Model) drawableSize() (int, int) {
	if m.width == 0 || m.height == 0 {
		return m.canvas.Width(), m.canvas.Height()
	}
	w := max(m.width, 1)
	h := max(m.height-toolbar.Height-statusbar.Height, 1)
	return w, h
}

func (m Model) statusInfo() statusbar.Info {
	return statusbar.Info{
		FilePath:  m.filePath,
		Dirty:     m.dirty,
		CanvasW:   m.canvas.Width(),
		CanvasH:   m.canvas.Height(),
		Spec:      m.spec,
		Hover:     m.hover,
		UndoDepth: m.history.Len(),
	}
}

// showToast displays a transient message and schedules its dismissal.
func (m Model) showToast(message string, style toaster.Style) (Model, tea.Cmd) {
	m.toaster = m.toaster.Show(message, style)
	return m, toaster.ScheduleDismiss(toaster.DefaultDismissAfter)
}

// handleKey processes keys in the normal editing mode. Tool, brush, and
// color changes stay silent because the toolbar and status bar reflect
// them immediately; actions without visible chrome get a toast.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.requestQuit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		if m.gesture.Active() && m.gesture.IsShape() {
			m.gesture.Cancel()
			return m.showToast("Shape cancelled", toaster.StyleInfo)
		}
		return m, nil

	case key.Matches(msg, m.keys.Pencil):
		m.spec.Kind = tool.KindPencil
	case key.Matches(msg, m.keys.Eraser):
		m.spec.Kind = tool.KindEraser
	case key.Matches(msg, m.keys.Line):
		m.spec.Kind = tool.KindLine
	case key.Matches(msg, m.keys.Rectangle):
		m.spec.Kind = tool.KindRectangle
	case key.Matches(msg, m.keys.Ellipse):
		m.spec.Kind = tool.KindEllipse
	case key.Matches(msg, m.keys.Fill):
		m.spec.Kind = tool.KindFill

	case key.Matches(msg, m.keys.Undo):
		return m.performUndo()
	case key.Matches(msg, m.keys.Redo):
		return m.performRedo()
	case key.Matches(msg, m.keys.BrushSmaller):
		m.spec.Size = tool.ClampBrushSize(m.spec.Size - 1)
	case key.Matches(msg, m.keys.BrushLarger):
		m.spec.Size = tool.ClampBrushSize(m.spec.Size + 1)
	case key.Matches(msg, m.keys.CycleBrush):
		m.spec.Ch = nextBrush(m.spec.Ch)
	case key.Matches(msg, m.keys.ToggleFilled):
		m.filled = !m.filled

	case key.Matches(msg, m.keys.DefaultColor):
		m.spec.Color = canvas.ColorDefault
	case key.Matches(msg, m.keys.Palette):
		if s := msg.String(); len(s) == 1 {
			if c, ok := canvas.ColorFromDigit(int(s[0] - '0')); ok {
				m.spec.Color = c
			}
		}

	case key.Matches(msg, m.keys.Save):
		m.prompt = m.prompt.Show(prompt.ModeSave, m.promptPath())
	case key.Matches(msg, m.keys.Open):
		m.prompt = m.prompt.Show(prompt.ModeOpen, m.promptPath())
	case key.Matches(msg, m.keys.New):
		m.prompt = m.prompt.Show(prompt.ModeNew, "")
	}
	return m, nil
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.requestQuit()
	case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Escape):
		m.showHelp = false
	}
	return m, nil
}

// handleMouse routes pointer input. The toolbar wins over the canvas on
// left press; everything is ignored while a prompt or the help overlay
// captures the screen.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.prompt.Active() || m.showHelp {
		return m, nil
	}

	m.hover = nil
	p, onCanvas := m.editor.ScreenToCanvas(msg.X, msg.Y)
	if onCanvas && m.canvas.InBounds(p.X, p.Y) {
		hover := p
		m.hover = &hover
	} else {
		onCanvas = false
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.spec.Color = cycleColor(m.spec.Color, true)
		return m, nil
	case msg.Button == tea.MouseButtonWheelDown:
		m.spec.Color = cycleColor(m.spec.Color, false)
		return m, nil

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		if action, ok := toolbar.HitTest(msg); ok {
			return m.applyToolbarAction(action)
		}
		if onCanvas {
			return m.beginDraw(p), nil
		}
		return m, nil

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionMotion:
		if onCanvas {
			return m.continueDraw(p), nil
		}
		return m, nil

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease:
		return m.finishDraw(), nil

	case msg.Button == tea.MouseButtonRight && msg.Action == tea.MouseActionPress:
		if onCanvas {
			return m.sampleCell(p)
		}
		return m, nil
	}

	return m, nil
}

// beginDraw starts a gesture at p. Fill applies immediately; shapes and
// strokes wait for motion and release.
func (m Model) beginDraw(p raster.Point) Model {
	switch {
	case m.spec.Kind == tool.KindFill:
		op := tool.Fill(m.canvas, m.spec, p)
		if !op.IsEmpty() {
			m.history.Push(op)
			m.dirty = true
			m.editor = m.editor.Invalidate()
		}
	case m.spec.Kind.IsShape():
		m.gesture.BeginShape(m.spec, p, m.filled)
	default:
		m.gesture.BeginStroke(m.canvas, m.spec, p)
		m.editor = m.editor.Invalidate()
	}
	return m
}

func (m Model) continueDraw(p raster.Point) Model {
	if !m.gesture.Active() {
		return m
	}
	if m.gesture.IsShape() {
		m.gesture.MoveShape(p)
		return m
	}
	m.gesture.ExtendStroke(m.canvas, p)
	m.editor = m.editor.Invalidate()
	return m
}

func (m Model) finishDraw() Model {
	if !m.gesture.Active() {
		return m
	}
	op := m.gesture.Finish(m.canvas, m.hover)
	if !op.IsEmpty() {
		m.history.Push(op)
		m.dirty = true
	}
	m.editor = m.editor.Invalidate()
	return m
}

// sampleCell is the right-click eyedropper: it adopts the cell's color,
// and its character too unless the cell is blank.
func (m Model) sampleCell(p raster.Point) (Model, tea.Cmd) {
	cell, ok := m.canvas.CellAt(p.X, p.Y)
	if !ok {
		return m, nil
	}
	if cell.Ch != ' ' {
		m.spec.Ch = cell.Ch
	}
	m.spec.Color = cell.Fg
	message := fmt.Sprintf("Sampled '%s' / %s", printableChar(m.spec.Ch), m.spec.Color)
	return m.showToast(message, toaster.StyleInfo)
}

func (m Model) applyToolbarAction(action toolbar.Action) (Model, tea.Cmd) {
	switch action.Kind {
	case toolbar.ActionSelectTool:
		m.spec.Kind = action.Tool
		return m.showToast("Tool: "+action.Tool.Name(), toaster.StyleInfo)
	case toolbar.ActionCycleBrush:
		m.spec.Ch = nextBrush(m.spec.Ch)
		return m.showToast("Brush char: "+printableChar(m.spec.Ch), toaster.StyleInfo)
	case toolbar.ActionCycleSize:
		m.spec.Size = m.spec.Size%tool.MaxBrushSize + 1
		return m.showToast(fmt.Sprintf("Brush size: %d", m.spec.Size), toaster.StyleInfo)
	case toolbar.ActionToggleFilled:
		m.filled = !m.filled
		if m.filled {
			return m.showToast("Rectangle fill enabled", toaster.StyleInfo)
		}
		return m.showToast("Rectangle fill disabled", toaster.StyleInfo)
	case toolbar.ActionCycleColor:
		m.spec.Color = cycleColor(m.spec.Color, true)
		return m.showToast("Color: "+m.spec.Color.String(), toaster.StyleInfo)
	}
	return m, nil
}

func (m Model) performUndo() (Model, tea.Cmd) {
	if !m.history.Undo(m.canvas) {
		return m.showToast("Nothing to undo", toaster.StyleWarn)
	}
	m.dirty = true
	m.editor = m.editor.Invalidate()
	return m.showToast("Undo", toaster.StyleInfo)
}

func (m Model) performRedo() (Model, tea.Cmd) {
	if !m.history.Redo(m.canvas) {
		return m.showToast("Nothing to redo", toaster.StyleWarn)
	}
	m.dirty = true
	m.editor = m.editor.Invalidate()
	return m.showToast("Redo", toaster.StyleInfo)
}

func (m Model) handlePromptSubmit(msg prompt.SubmitMsg) (Model, tea.Cmd) {
	switch msg.Mode {
	case prompt.ModeSave:
		return m.saveCanvas(canvasio.ParsePath(msg.Value, defaultFileName))
	case prompt.ModeOpen:
		return m.openCanvas(canvasio.ParsePath(msg.Value, defaultFileName))
	case prompt.ModeNew:
		return m.newCanvas(msg.Value)
	case prompt.ModeQuitConfirm:
		return m.quit()
	}
	return m, nil
}

// saveCanvas writes the drawing to path, points the watcher at it, and
// records an autosnapshot.
func (m Model) saveCanvas(path string) (Model, tea.Cmd) {
	if err := canvasio.Save(path, m.canvas); err != nil {
		return m.showToast("Save failed: "+err.Error(), toaster.StyleError)
	}

	retarget := path != m.filePath || m.watcherHandle == nil
	m.filePath = path
	m.dirty = false
	m.suppressUntil = time.Now().Add(watcherSuppressWindow)

	var cmds []tea.Cmd
	if retarget {
		var cmd tea.Cmd
		m, cmd = m.retargetWatcher(path)
		cmds = append(cmds, cmd)
	}
	m.autosnapshot(m.snapshotName())

	var cmd tea.Cmd
	m, cmd = m.showToast("Saved "+path, toaster.StyleSuccess)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// openCanvas loads path and replaces the drawing. The loaded canvas is
// resized to the current drawable region; the undo history starts over.
func (m Model) openCanvas(path string) (Model, tea.Cmd) {
	loaded, err := canvasio.Load(path)
	if err != nil {
		return m.showToast("Load failed: "+err.Error(), toaster.StyleError)
	}

	if m.width > 0 && m.height > 0 {
		drawW, drawH := m.drawableSize()
		loaded.ResizePreserve(drawW, drawH)
	}
	m.canvas = loaded
	m.history.Clear()
	m.gesture.Cancel()
	m.hover = nil
	m.editor = m.editor.Invalidate()
	m.filePath = path
	m.dirty = false
	m.fitToTerminal = true

	model, watchCmd := m.retargetWatcher(path)
	m = model

	var toastCmd tea.Cmd
	m, toastCmd = m.showToast("Loaded "+path, toaster.StyleSuccess)
	return m, tea.Batch(watchCmd, toastCmd)
}

// newCanvas replaces the drawing with a blank one. An empty size means
// fit the terminal; an explicit WIDTHxHEIGHT pins the canvas to it.
func (m Model) newCanvas(value string) (Model, tea.Cmd) {
	width, height := m.drawableSize()
	fixed := false
	if value != "" {
		w, h, err := config.ParseSize(value)
		if err != nil {
			return m.showToast(err.Error(), toaster.StyleError)
		}
		width, height = w, h
		fixed = true
	}

	m.canvas = canvas.New(width, height)
	m.history.Clear()
	m.gesture.Cancel()
	m.hover = nil
	m.editor = m.editor.Invalidate()
	m.filePath = ""
	m.dirty = false
	m.fitToTerminal = !fixed
	m = m.stopWatcher()

	return m.showToast(fmt.Sprintf("New %dx%d canvas", width, height), toaster.StyleSuccess)
}

// requestQuit quits immediately when the drawing is saved, otherwise it
// asks for confirmation first.
func (m Model) requestQuit() (Model, tea.Cmd) {
	if m.dirty {
		m.showHelp = false
		m.prompt = m.prompt.Show(prompt.ModeQuitConfirm, "")
		return m, nil
	}
	return m.quit()
}

// quit persists the session's tool defaults, snapshots unsaved work,
// and exits the program loop.
func (m Model) quit() (Model, tea.Cmd) {
	m.persistTools()
	if m.dirty {
		m.autosnapshot(m.snapshotName())
	}
	log.Info(log.CatApp, "quitting", "file", m.filePath, "dirty", m.dirty)
	return m, tea.Quit
}

// persistTools writes the session's drawing defaults back to the config
// file when they differ from the loaded ones.
func (m Model) persistTools() {
	if m.configPath == "" {
		return
	}
	tools := config.ToolsConfig{
		Char:   string(m.spec.Ch),
		Color:  m.spec.Color.String(),
		Size:   m.spec.Size,
		Filled: m.filled,
	}
	if tools == m.cfg.Tools {
		return
	}
	if err := config.SaveTools(m.configPath, tools); err != nil {
		log.Warn(log.CatConfig, "saving tool defaults failed", "error", err)
	}
}

// autosnapshot saves the canvas to the snapshot store and prunes old
// entries. Failures are logged; editing never depends on the store.
func (m Model) autosnapshot(name string) {
	if !m.cfg.Autosnapshot.Enabled || m.snapshots == nil {
		return
	}
	if _, err := m.snapshots.Save(name, m.canvas); err != nil {
		log.Warn(log.CatStore, "autosnapshot failed", "error", err)
		return
	}
	if _, err := m.snapshots.Prune(m.cfg.Autosnapshot.Keep); err != nil {
		log.Warn(log.CatStore, "snapshot prune failed", "error", err)
	}
}

func (m Model) snapshotName() string {
	if m.filePath != "" {
		return filepath.Base(m.filePath)
	}
	return "unsaved"
}

func (m Model) promptPath() string {
	if m.filePath != "" {
		return m.filePath
	}
	return defaultFileName
}

func (m Model) handleFileEvent(event pubsub.Event[watcher.FileEvent]) (Model, tea.Cmd) {
	if event.Type == pubsub.ErrorEvent {
		log.Warn(log.CatWatcher, "watch error", "error", event.Payload.Err)
		return m, m.listenCmd()
	}
	if time.Now().Before(m.suppressUntil) {
		return m, m.listenCmd()
	}

	log.Info(log.CatWatcher, "file changed on disk", "path", event.Payload.Path)
	name := filepath.Base(event.Payload.Path)
	var cmd tea.Cmd
	m, cmd = m.showToast(name+" changed on disk, reopen to reload", toaster.StyleInfo)
	return m, tea.Batch(cmd, m.listenCmd())
}

// startWatcher begins watching path for external changes. Failures are
// logged and otherwise ignored; editing works without the watcher.
func (m Model) startWatcher(path string) Model {
	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		log.Warn(log.CatWatcher, "watcher unavailable", "error", err)
		return m
	}
	if err := w.Start(); err != nil {
		_ = w.Stop()
		log.Warn(log.CatWatcher, "watcher start failed", "error", err)
		return m
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.watcherHandle = w
	m.watcherCancel = cancel
	m.watcherListener = pubsub.NewContinuousListener(ctx, w.Broker())
	return m
}

// retargetWatcher points the watcher at a new path and returns the
// listen command for the new event stream.
func (m Model) retargetWatcher(path string) (Model, tea.Cmd) {
	m = m.stopWatcher()
	m = m.startWatcher(path)
	return m, m.listenCmd()
}

func (m Model) stopWatcher() Model {
	if m.watcherCancel != nil {
		m.watcherCancel()
	}
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			log.Warn(log.CatWatcher, "watcher stop failed", "error", err)
		}
	}
	m.watcherHandle = nil
	m.watcherCancel = nil
	m.watcherListener = nil
	return m
}

func (m Model) listenCmd() tea.Cmd {
	if m.watcherListener == nil {
		return nil
	}
	return m.watcherListener.Listen()
}

// cycleColor steps through the default color plus the quick palette.
func cycleColor(current canvas.Color, forward bool) canvas.Color {
	palette := append([]canvas.Color{canvas.ColorDefault}, canvas.QuickPalette()...)
	idx := 0
	for i, c := range palette {
		if c == current {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(palette)
	} else if idx == 0 {
		idx = len(palette) - 1
	} else {
		idx--
	}
	return palette[idx]
}

// nextBrush advances to the next brush character, starting over from
// the first choice when the current one is not in the list.
func nextBrush(current rune) rune {
	choices := tool.BrushChoices()
	for i, ch := range choices {
		if ch == current {
			return choices[(i+1)%len(choices)]
		}
	}
	return choices[0]
}

// printableChar renders ch for a message, making the space brush
// visible.
func printableChar(ch rune) string {
	if ch == ' ' {
		return "␠"
	}
	return string(ch)
}
