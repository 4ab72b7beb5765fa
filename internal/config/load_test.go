package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/keymapctl/internal/keymap"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	model, err := Load(context.Background(), filepath.Join(t.TempDir(), DefaultFileName))
	require.NoError(t, err)

	assert.Equal(t, "config", model.KeymapDir)
	assert.Equal(t, []string{".keymap"}, model.Extensions)
	assert.Equal(t, keymap.DefaultGrid, model.Grid)
	assert.Equal(t, "clang-format", model.Tools.Formatter)
	assert.Equal(t, "keymap", model.Tools.Drawer)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
keymap_dir = "boards/shields"
extensions = [".keymap", ".overlay"]

grid {
  columns = 12
}

tools {
  formatter = ""
}

draw {
  source = "config/corne.keymap"
  output = "img/corne.svg"
}
`)

	model, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "boards/shields", model.KeymapDir)
	assert.Equal(t, []string{".keymap", ".overlay"}, model.Extensions)
	assert.Equal(t, 12, model.Grid.Columns)
	assert.Equal(t, keymap.DefaultGrid.FieldWidth, model.Grid.FieldWidth)
	assert.Empty(t, model.Tools.Formatter)
	assert.Equal(t, "keymap", model.Tools.Drawer)
	assert.Equal(t, "config/corne.keymap", model.Draw.Source)
	assert.Equal(t, "img/corne.svg", model.Draw.Output)
}

func TestLoadKeyboardOverrides(t *testing.T) {
	path := writeConfig(t, `
keyboard "corne" {
  columns     = 12
  field_width = 10
}

keyboard "planck" {
  indent = "    "
}
`)

	model, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, model.Keyboards, 2)

	corne := model.GridFor("config/corne.keymap")
	assert.Equal(t, 12, corne.Columns)
	assert.Equal(t, 10, corne.FieldWidth)
	assert.Equal(t, keymap.DefaultGrid.Indent, corne.Indent)

	planck := model.GridFor("config/planck.keymap")
	assert.Equal(t, keymap.DefaultGrid.Columns, planck.Columns)
	assert.Equal(t, "    ", planck.Indent)

	other := model.GridFor("config/kyria.keymap")
	assert.Equal(t, keymap.DefaultGrid, other)
}

func TestLoadRejectsUnknownKeyboardAttribute(t *testing.T) {
	path := writeConfig(t, `
keyboard "corne" {
  rows = 4
}
`)

	_, err := Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `keyboard "corne" attribute "rows"`)
}

func TestLoadRejectsInvalidHCL(t *testing.T) {
	path := writeConfig(t, "grid {\n")
	_, err := Load(context.Background(), path)
	assert.Error(t, err)
}

func TestNewValidation(t *testing.T) {
	t.Run("empty keymap dir", func(t *testing.T) {
		m := Default()
		m.KeymapDir = ""
		_, err := New(m)
		assert.Error(t, err)
	})

	t.Run("no extensions", func(t *testing.T) {
		m := Default()
		m.Extensions = nil
		_, err := New(m)
		assert.Error(t, err)
	})

	t.Run("extension without dot", func(t *testing.T) {
		m := Default()
		m.Extensions = []string{"keymap"}
		_, err := New(m)
		assert.Error(t, err)
	})
}
