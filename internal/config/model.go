package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/keymapctl/internal/keymap"
)

// DefaultFileName is the config file probed at the project root when no
// -config flag is given.
const DefaultFileName = "keymapctl.hcl"

// Tools names the optional external binaries the pipeline shells out to.
type Tools struct {
	// Formatter post-processes grid-formatted keymap text (stdin to stdout).
	Formatter string

	// Drawer is the keymap-drawer entrypoint used by the visualize mode.
	Drawer string
}

// Draw configures the visualize mode: which keymap to parse and where the
// rendered SVG goes.
type Draw struct {
	Source string
	Output string
}

// KeyboardOverride adjusts the grid for files whose path contains the
// keyboard name. Zero-valued fields inherit the project grid.
type KeyboardOverride struct {
	Name string
	Grid keymap.Grid
}

// Model is the fully merged tool configuration.
type Model struct {
	// KeymapDir is the project-root-relative directory searched for keymap
	// sources.
	KeymapDir string

	// Extensions is the set of file name suffixes treated as keymap sources.
	Extensions []string

	Grid  keymap.Grid
	Tools Tools
	Draw  Draw

	Keyboards []KeyboardOverride
}

// Default returns the configuration used when no config file exists.
func Default() Model {
	return Model{
		KeymapDir:  "config",
		Extensions: []string{".keymap"},
		Grid:       keymap.DefaultGrid,
		Tools: Tools{
			Formatter: "clang-format",
			Drawer:    "keymap",
		},
		Draw: Draw{
			Source: "config/base.keymap",
			Output: "keymap-drawing/keymap.svg",
		},
	}
}

// New validates a merged model and returns it. Mirrors the constructor
// pattern used for flag-derived configuration elsewhere in the CLI.
func New(m Model) (*Model, error) {
	if m.KeymapDir == "" {
		return nil, errors.New("keymap_dir is a required configuration field and cannot be empty")
	}
	if len(m.Extensions) == 0 {
		return nil, errors.New("extensions must name at least one file suffix")
	}
	for _, ext := range m.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return nil, fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	if m.Grid.Columns < 0 || m.Grid.FieldWidth < 0 {
		return nil, errors.New("grid columns and field_width must not be negative")
	}
	return &m, nil
}

// GridFor returns the grid for one keymap file, applying the first keyboard
// override whose name appears in the path. Zero-valued override fields fall
// through to the project grid.
func (m *Model) GridFor(path string) keymap.Grid {
	for _, kb := range m.Keyboards {
		if !strings.Contains(path, kb.Name) {
			continue
		}
		g := m.Grid
		if kb.Grid.Columns > 0 {
			g.Columns = kb.Grid.Columns
		}
		if kb.Grid.FieldWidth > 0 {
			g.FieldWidth = kb.Grid.FieldWidth
		}
		if kb.Grid.Indent != "" {
			g.Indent = kb.Grid.Indent
		}
		return g
	}
	return m.Grid
}
