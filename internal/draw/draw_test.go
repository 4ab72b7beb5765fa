package draw

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRunMissingToolPrintsHint(t *testing.T) {
	var out bytes.Buffer
	p := &Pipeline{Tool: "definitely-not-keymap-drawer", Source: "x.keymap", Output: "x.svg"}

	require.NoError(t, p.Run(context.Background(), &out))
	assert.Contains(t, out.String(), "pipx install keymap-drawer")
}

func TestRenderConfig(t *testing.T) {
	p := &Pipeline{Columns: 12}
	data, err := p.renderConfig()
	require.NoError(t, err)

	var cfg map[string]map[string]int
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, 12, cfg["draw_config"]["n_cols"])
	assert.Equal(t, 60, cfg["draw_config"]["key_w"])
}

// A stub drawer on PATH verifies the parse output is piped into draw and the
// SVG lands at the configured destination.
func TestRunPipesParseIntoDraw(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a shell stub")
	}

	binDir := t.TempDir()
	stub := `#!/bin/sh
if [ "$1" = "parse" ]; then
  echo "layers: {}"
else
  cat > /dev/null
  echo "<svg/>"
fi
`
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "keymap"), []byte(stub), 0755))
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	source := filepath.Join(t.TempDir(), "corne.keymap")
	require.NoError(t, os.WriteFile(source, []byte("bindings = <&kp A>;"), 0644))
	output := filepath.Join(t.TempDir(), "img", "corne.svg")

	var out bytes.Buffer
	p := &Pipeline{Tool: "keymap", Source: source, Output: output, Columns: 10}
	require.NoError(t, p.Run(context.Background(), &out))

	svg, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>\n", string(svg))
	assert.Empty(t, out.String())
}

func TestRunEmptySourceIsAnError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a shell stub")
	}

	binDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "keymap"), []byte("#!/bin/sh\n"), 0755))
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	p := &Pipeline{Tool: "keymap"}
	err := p.Run(context.Background(), &bytes.Buffer{})
	assert.ErrorContains(t, err, "draw source is not configured")
}
