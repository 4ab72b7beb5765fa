package app

import (
	"errors"
	"fmt"
)

// Config holds the flag-derived settings for one App invocation. File-based
// configuration is loaded later, in NewApp, and these values override it.
type Config struct {
	Mode       string // validate, format or visualize
	ConfigPath string // empty means probe the default file name

	KeymapDir  string // override; empty keeps the config file value
	Columns    int    // override; zero keeps the config file value
	FieldWidth int    // override; zero keeps the config file value

	LogFormat string
	LogLevel  string
}

// NewConfig validates a flag-derived Config.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Mode {
	case "validate", "format", "visualize":
	case "":
		return nil, errors.New("Mode is a required configuration field and cannot be empty")
	default:
		return nil, fmt.Errorf("unknown mode %q", cfg.Mode)
	}
	if cfg.Columns < 0 || cfg.FieldWidth < 0 {
		return nil, errors.New("columns and field-width must not be negative")
	}
	return &cfg, nil
}
