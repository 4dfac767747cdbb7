package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/pinceau/internal/canvas"
	"github.com/zjrosen/pinceau/internal/tool"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, 80, cfg.Canvas.Width)
	assert.Equal(t, 24, cfg.Canvas.Height)
	assert.Equal(t, "#", cfg.Tools.Char)
	assert.Equal(t, "default", cfg.Tools.Color)
	assert.Equal(t, 1, cfg.Tools.Size)
	assert.False(t, cfg.Tools.Filled)
	assert.Equal(t, canvas.DefaultHistoryCapacity, cfg.History.Capacity)
	assert.True(t, cfg.Autosnapshot.Enabled)
	assert.Equal(t, DefaultAutosnapshotKeep, cfg.Autosnapshot.Keep)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File, "logging stays off until a file is configured")
}

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()

	require.NoError(t, ValidateCanvas(cfg.Canvas))
	require.NoError(t, ValidateTools(cfg.Tools))
	require.NoError(t, ValidateHistory(cfg.History))
	require.NoError(t, ValidateAutosnapshot(cfg.Autosnapshot))
	require.NoError(t, ValidateLog(cfg.Log))
}

func TestCanvasDimensions(t *testing.T) {
	w, h := CanvasConfig{}.Dimensions()
	assert.Equal(t, DefaultCanvasWidth, w)
	assert.Equal(t, DefaultCanvasHeight, h)

	w, h = CanvasConfig{Width: 120, Height: 40}.Dimensions()
	assert.Equal(t, 120, w)
	assert.Equal(t, 40, h)

	w, h = CanvasConfig{Width: -5, Height: 0}.Dimensions()
	assert.Equal(t, DefaultCanvasWidth, w)
	assert.Equal(t, DefaultCanvasHeight, h)
}

func TestValidateTools_Empty(t *testing.T) {
	require.NoError(t, ValidateTools(ToolsConfig{}))
}

func TestValidateTools_Valid(t *testing.T) {
	require.NoError(t, ValidateTools(ToolsConfig{Char: "@", Color: "magenta", Size: 3, Filled: true}))
	require.NoError(t, ValidateTools(ToolsConfig{Char: " "}), "the space brush is allowed")
}

func TestValidateTools_BadChar(t *testing.T) {
	require.Error(t, ValidateTools(ToolsConfig{Char: "ab"}), "two characters")
	require.Error(t, ValidateTools(ToolsConfig{Char: "é"}), "combining sequence")
	require.Error(t, ValidateTools(ToolsConfig{Char: "全"}), "double-width rune")
}

func TestValidateTools_BadColor(t *testing.T) {
	err := ValidateTools(ToolsConfig{Color: "chartreuse"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tools.color")
}

func TestValidateTools_BadSize(t *testing.T) {
	require.Error(t, ValidateTools(ToolsConfig{Size: 4}))
	require.Error(t, ValidateTools(ToolsConfig{Size: -1}))
	require.NoError(t, ValidateTools(ToolsConfig{Size: 0}), "zero means unset")
}

func TestValidateHistory(t *testing.T) {
	require.NoError(t, ValidateHistory(HistoryConfig{}))
	require.NoError(t, ValidateHistory(HistoryConfig{Capacity: 500}))
	require.Error(t, ValidateHistory(HistoryConfig{Capacity: -1}))
}

func TestValidateAutosnapshot(t *testing.T) {
	require.NoError(t, ValidateAutosnapshot(AutosnapshotConfig{}))
	require.NoError(t, ValidateAutosnapshot(AutosnapshotConfig{Enabled: true, Keep: 5}))
	require.Error(t, ValidateAutosnapshot(AutosnapshotConfig{Keep: -2}))
}

func TestValidateLog(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		require.NoError(t, ValidateLog(LogConfig{Level: level}), "level %q", level)
	}
	require.Error(t, ValidateLog(LogConfig{Level: "verbose"}))
}

func TestToolSpec(t *testing.T) {
	spec := ToolsConfig{Char: "*", Color: "cyan", Size: 2}.ToolSpec()
	assert.Equal(t, tool.KindPencil, spec.Kind)
	assert.Equal(t, '*', spec.Ch)
	assert.Equal(t, canvas.ColorCyan, spec.Color)
	assert.Equal(t, 2, spec.Size)
}

func TestToolSpec_FallsBackOnUnset(t *testing.T) {
	spec := ToolsConfig{}.ToolSpec()
	assert.Equal(t, '#', spec.Ch)
	assert.Equal(t, canvas.ColorDefault, spec.Color)
	assert.Equal(t, tool.MinBrushSize, spec.Size)
}

func TestToolSpec_IgnoresInvalidFields(t *testing.T) {
	spec := ToolsConfig{Char: "wide", Color: "nope", Size: 9}.ToolSpec()
	assert.Equal(t, '#', spec.Ch, "invalid char falls back")
	assert.Equal(t, canvas.ColorDefault, spec.Color, "invalid color falls back")
	assert.Equal(t, tool.MaxBrushSize, spec.Size, "out-of-range size clamps")
}

func TestDefaultConfigTemplate_ParsesAndMatchesDefaults(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600))

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig(), "the template must be valid YAML")

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	defaults := Defaults()
	assert.Equal(t, defaults.Canvas, cfg.Canvas)
	assert.Equal(t, defaults.Tools, cfg.Tools)
	assert.Equal(t, defaults.History, cfg.History)
	assert.Equal(t, defaults.Autosnapshot, cfg.Autosnapshot)
}

func TestWriteDefaultConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nested", "dir", "config.yaml")

	require.NoError(t, WriteDefaultConfig(configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigTemplate(), string(data))
}
