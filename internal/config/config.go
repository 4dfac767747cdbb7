// Package config provides configuration types, defaults, and persistence
// for pinceau.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/pinceau/internal/canvas"
	"github.com/zjrosen/pinceau/internal/log"
	"github.com/zjrosen/pinceau/internal/tool"
)

// Default canvas size for new files when neither config nor --size says
// otherwise.
const (
	DefaultCanvasWidth  = 80
	DefaultCanvasHeight = 24
)

// DefaultAutosnapshotKeep is how many snapshots Prune retains.
const DefaultAutosnapshotKeep = 20

// CanvasConfig holds the canvas size used for new files.
type CanvasConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// Dimensions returns the configured size with defaults substituted for
// unset or nonsense values.
func (c CanvasConfig) Dimensions() (width, height int) {
	width, height = c.Width, c.Height
	if width < 1 {
		width = DefaultCanvasWidth
	}
	if height < 1 {
		height = DefaultCanvasHeight
	}
	return width, height
}

// ToolsConfig holds the drawing defaults applied at startup. Zero values
// mean "use the built-in default".
type ToolsConfig struct {
	Char   string `mapstructure:"char"`   // brush character
	Color  string `mapstructure:"color"`  // named color, see canvas.ParseColor
	Size   int    `mapstructure:"size"`   // brush size 1-3
	Filled bool   `mapstructure:"filled"` // rectangles paint filled
}

// ToolSpec resolves the configured defaults into a pencil spec,
// substituting built-in defaults for unset fields. Call after validation;
// invalid fields fall back silently here.
func (t ToolsConfig) ToolSpec() tool.Spec {
	spec := tool.Spec{Kind: tool.KindPencil, Ch: '#', Color: canvas.ColorDefault, Size: tool.MinBrushSize}

	if t.Char != "" {
		if r, size := utf8.DecodeRuneInString(t.Char); size == len(t.Char) && runewidth.RuneWidth(r) == 1 {
			spec.Ch = r
		}
	}
	if t.Color != "" {
		if c, err := canvas.ParseColor(t.Color); err == nil {
			spec.Color = c
		}
	}
	if t.Size != 0 {
		spec.Size = tool.ClampBrushSize(t.Size)
	}
	return spec
}

// HistoryConfig bounds the undo stack.
type HistoryConfig struct {
	Capacity int `mapstructure:"capacity"`
}

// AutosnapshotConfig controls background snapshots of saved canvases.
type AutosnapshotConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Keep    int  `mapstructure:"keep"`
}

// LogConfig controls the category file logger. Logging stays off unless
// a file is configured.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// Config holds all configuration options for pinceau.
type Config struct {
	Canvas       CanvasConfig       `mapstructure:"canvas"`
	Tools        ToolsConfig        `mapstructure:"tools"`
	History      HistoryConfig      `mapstructure:"history"`
	Autosnapshot AutosnapshotConfig `mapstructure:"autosnapshot"`
	Log          LogConfig          `mapstructure:"log"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Canvas: CanvasConfig{
			Width:  DefaultCanvasWidth,
			Height: DefaultCanvasHeight,
		},
		Tools: ToolsConfig{
			Char:   "#",
			Color:  "default",
			Size:   1,
			Filled: false,
		},
		History: HistoryConfig{
			Capacity: canvas.DefaultHistoryCapacity,
		},
		Autosnapshot: AutosnapshotConfig{
			Enabled: true,
			Keep:    DefaultAutosnapshotKeep,
		},
		Log: LogConfig{
			File:  "",
			Level: "info",
		},
	}
}

// ValidateCanvas checks the canvas size configuration.
// Returns nil for zero values (defaults apply).
func ValidateCanvas(c CanvasConfig) error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", c.Width, c.Height)
	}
	return nil
}

// ValidateTools checks the drawing defaults.
// Returns nil for zero values (defaults apply).
func ValidateTools(t ToolsConfig) error {
	if t.Char != "" {
		if uniseg.GraphemeClusterCount(t.Char) != 1 {
			return fmt.Errorf("tools.char must be a single character, got %q", t.Char)
		}
		r, size := utf8.DecodeRuneInString(t.Char)
		if size != len(t.Char) {
			return fmt.Errorf("tools.char %q combines multiple code points; pick a simpler character", t.Char)
		}
		if runewidth.RuneWidth(r) != 1 {
			return fmt.Errorf("tools.char %q is not one terminal column wide", t.Char)
		}
	}

	if t.Color != "" {
		if _, err := canvas.ParseColor(t.Color); err != nil {
			return fmt.Errorf("tools.color: %w", err)
		}
	}

	if t.Size != 0 && (t.Size < tool.MinBrushSize || t.Size > tool.MaxBrushSize) {
		return fmt.Errorf("tools.size must be between %d and %d, got %d", tool.MinBrushSize, tool.MaxBrushSize, t.Size)
	}

	return nil
}

// ValidateHistory checks the undo stack configuration.
// Returns nil for zero values (defaults apply).
func ValidateHistory(h HistoryConfig) error {
	if h.Capacity < 0 {
		return fmt.Errorf("history.capacity must be positive, got %d", h.Capacity)
	}
	return nil
}

// ValidateAutosnapshot checks the snapshot retention configuration.
// Returns nil for zero values (defaults apply).
func ValidateAutosnapshot(a AutosnapshotConfig) error {
	if a.Keep < 0 {
		return fmt.Errorf("autosnapshot.keep must be positive, got %d", a.Keep)
	}
	return nil
}

// ValidateLog checks the logging configuration.
// Returns nil for zero values (logging stays off).
func ValidateLog(l LogConfig) error {
	switch l.Level {
	case "", "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("log.level must be \"debug\", \"info\", \"warn\", or \"error\", got %q", l.Level)
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Pinceau Configuration

# Canvas size for new files (a --size flag wins over this)
canvas:
  width: 80
  height: 24

# Drawing defaults applied at startup
tools:
  char: "#"        # brush character
  color: default   # default, black, red, green, yellow, blue, magenta, cyan, white
  size: 1          # brush size, 1 to 3
  filled: false    # rectangles paint filled instead of outlined

# Undo history
history:
  capacity: 100    # operations kept for undo

# Background snapshots taken on save and on quitting with unsaved work.
# Inspect them with 'pinceau snapshots list'.
autosnapshot:
  enabled: true
  keep: 20         # snapshots retained when pruning

# Logging is off unless a file is configured
# log:
#   file: /tmp/pinceau.log
#   level: info    # debug, info, warn, error
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
