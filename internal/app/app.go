// Package app wires configuration, logging and the per-file driver loop
// behind a single App type. One App handles one CLI invocation.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/keymapctl/internal/config"
	"github.com/vk/keymapctl/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	flags  *Config
	model  *config.Model
}

// NewApp is the constructor for the main application. It builds an isolated
// logger, loads the optional config file, and applies the flag overrides.
// User-facing report lines go to outW; logs go to errW.
func NewApp(outW, errW io.Writer, flags *Config) (*App, error) {
	logger := newLogger(flags.LogLevel, flags.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	configPath := flags.ConfigPath
	if configPath == "" {
		configPath = config.DefaultFileName
	}
	model, err := config.Load(ctx, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if flags.KeymapDir != "" {
		model.KeymapDir = flags.KeymapDir
	}
	if flags.Columns > 0 {
		model.Grid.Columns = flags.Columns
	}
	if flags.FieldWidth > 0 {
		model.Grid.FieldWidth = flags.FieldWidth
	}
	model, err = config.New(*model)
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration merged", "keymap_dir", model.KeymapDir, "mode", flags.Mode)

	return &App{
		outW:   outW,
		logger: logger,
		flags:  flags,
		model:  model,
	}, nil
}

// Model returns the merged configuration. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}
