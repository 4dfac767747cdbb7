// Package cmd implements the pinceau command line interface.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/pinceau/internal/app"
	"github.com/zjrosen/pinceau/internal/canvas"
	"github.com/zjrosen/pinceau/internal/canvasio"
	"github.com/zjrosen/pinceau/internal/config"
	"github.com/zjrosen/pinceau/internal/log"
	"github.com/zjrosen/pinceau/internal/store"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()

	// The toolbar marks its buttons as bubblezone click targets; the
	// global manager must exist before the first View renders.
	zone.NewGlobal()
}

var (
	version  = "dev"
	cfgFile  string
	filePath string
	sizeFlag string
	cfg      config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pinceau",
	Short: "A terminal paint program for character art",
	Long: `A terminal paint program: draw character art with the mouse, with
pencil, eraser, line, rectangle, ellipse, and fill tools, undo and
redo, and save to JSON, plain text, or ANSI files.

By default the canvas follows the terminal size. Pass --size to pin it
to fixed dimensions instead.`,
	Args:    cobra.NoArgs,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/pinceau/config.yaml)")
	rootCmd.Flags().StringVarP(&filePath, "file", "f", "",
		"canvas file to open, created on first save if missing")
	rootCmd.Flags().StringVar(&sizeFlag, "size", "",
		"fixed canvas size as WIDTHxHEIGHT (default: fit the terminal)")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("canvas.width", defaults.Canvas.Width)
	viper.SetDefault("canvas.height", defaults.Canvas.Height)
	viper.SetDefault("tools.char", defaults.Tools.Char)
	viper.SetDefault("tools.color", defaults.Tools.Color)
	viper.SetDefault("tools.size", defaults.Tools.Size)
	viper.SetDefault("tools.filled", defaults.Tools.Filled)
	viper.SetDefault("history.capacity", defaults.History.Capacity)
	viper.SetDefault("autosnapshot.enabled", defaults.Autosnapshot.Enabled)
	viper.SetDefault("autosnapshot.keep", defaults.Autosnapshot.Keep)
	viper.SetDefault("log.file", defaults.Log.File)
	viper.SetDefault("log.level", defaults.Log.Level)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .pinceau/config.yaml (current directory)
		// 2. ~/.config/pinceau/config.yaml (user config)
		if _, err := os.Stat(".pinceau/config.yaml"); err == nil {
			viper.SetConfigFile(".pinceau/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "pinceau"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create a commented default at
		// the user config path so tool defaults have somewhere to live.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if defaultPath := userConfigPath(); defaultPath != "" {
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// userConfigPath is where a fresh config file is created. Empty when the
// home directory cannot be resolved.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pinceau", "config.yaml")
}

// validateConfig checks every section except log and falls back to
// defaults for the ones that do not pass, so a broken config file never
// blocks startup.
func validateConfig() {
	defaults := config.Defaults()

	if err := config.ValidateCanvas(cfg.Canvas); err != nil {
		log.Warn(log.CatConfig, "invalid canvas config, using defaults", "error", err)
		cfg.Canvas = defaults.Canvas
	}
	if err := config.ValidateTools(cfg.Tools); err != nil {
		log.Warn(log.CatConfig, "invalid tools config, using defaults", "error", err)
		cfg.Tools = defaults.Tools
	}
	if err := config.ValidateHistory(cfg.History); err != nil {
		log.Warn(log.CatConfig, "invalid history config, using defaults", "error", err)
		cfg.History = defaults.History
	}
	if err := config.ValidateAutosnapshot(cfg.Autosnapshot); err != nil {
		log.Warn(log.CatConfig, "invalid autosnapshot config, using defaults", "error", err)
		cfg.Autosnapshot = defaults.Autosnapshot
	}
}

// resolveCanvas builds the startup canvas from the --file and --size
// flags, falling back to the configured default size. The returned bool
// reports whether the canvas keeps its dimensions instead of following
// the terminal.
func resolveCanvas(path, size string, canvasCfg config.CanvasConfig) (*canvas.Canvas, bool, error) {
	width, height := canvasCfg.Dimensions()
	fixed := false
	if size != "" {
		w, h, err := config.ParseSize(size)
		if err != nil {
			return nil, false, err
		}
		width, height = w, h
		fixed = true
	}

	if path != "" {
		loaded, err := canvasio.Load(path)
		switch {
		case err == nil:
			if fixed {
				loaded.ResizePreserve(width, height)
			}
			return loaded, fixed, nil
		case errors.Is(err, fs.ErrNotExist):
			// A fresh drawing that saves to this path later.
			log.Info(log.CatIO, "file does not exist yet, starting blank", "path", path)
		default:
			return nil, false, err
		}
	}

	return canvas.New(width, height), fixed, nil
}

func runApp(_ *cobra.Command, _ []string) error {
	// The log section is validated before the logger exists, so its
	// failure goes to stderr. A bad level falls back rather than
	// disabling the file.
	if err := config.ValidateLog(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "pinceau: %v, falling back to info\n", err)
		cfg.Log.Level = "info"
	}
	if cfg.Log.File != "" {
		cleanup, err := log.Init(cfg.Log.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pinceau: opening log file: %v\n", err)
		} else {
			defer cleanup()
			log.SetMinLevel(log.ParseLevel(cfg.Log.Level))
		}
	}
	validateConfig()

	c, fixedSize, err := resolveCanvas(filePath, sizeFlag, cfg.Canvas)
	if err != nil {
		return err
	}

	// Snapshots are a convenience; the editor runs without the store.
	var db *store.DB
	if dbPath, pathErr := store.DefaultPath(); pathErr != nil {
		log.Warn(log.CatStore, "snapshot store unavailable", "error", pathErr)
	} else if db, err = store.NewDB(dbPath); err != nil {
		log.Warn(log.CatStore, "snapshot store unavailable", "error", err)
		db = nil
	}

	log.Info(log.CatApp, "starting", "version", version, "file", filePath)

	model := app.New(cfg, viper.ConfigFileUsed(), db, c, filePath, fixedSize)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	finalModel, err := p.Run()

	// Close the model the loop finished with, not the one it started
	// from: saves and opens retarget the watcher along the way.
	if fm, ok := finalModel.(app.Model); ok {
		if closeErr := fm.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
