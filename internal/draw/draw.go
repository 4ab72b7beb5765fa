// Package draw renders a keymap to SVG through the external keymap-drawer
// pipeline: `keymap parse` piped into `keymap draw`. The drawer is optional;
// when the binary is absent the mode prints an install hint and succeeds.
package draw

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vk/keymapctl/internal/ctxlog"
)

// InstallHint is printed when the drawer binary cannot be found.
const InstallHint = "keymap-drawer not found. Install it with: pipx install keymap-drawer"

// drawerConfig is the subset of keymap-drawer's configuration this tool
// generates. Field names follow the drawer's YAML schema.
type drawerConfig struct {
	Draw drawSettings `yaml:"draw_config"`
}

type drawSettings struct {
	KeyWidth  int `yaml:"key_w"`
	KeyHeight int `yaml:"key_h"`
	NColumns  int `yaml:"n_cols"`
}

// Pipeline invokes the external drawer over one keymap file.
type Pipeline struct {
	// Tool is the drawer entrypoint on the search path, usually "keymap".
	Tool string

	// Source is the keymap file fed to `keymap parse -z`.
	Source string

	// Output is the SVG destination path.
	Output string

	// Columns is passed to the parse stage and mirrored into the generated
	// drawer configuration.
	Columns int
}

// renderConfig produces the drawer configuration YAML passed to the draw
// stage.
func (p *Pipeline) renderConfig() ([]byte, error) {
	return yaml.Marshal(drawerConfig{
		Draw: drawSettings{
			KeyWidth:  60,
			KeyHeight: 56,
			NColumns:  p.Columns,
		},
	})
}

// Run executes the parse and draw stages sequentially, writing the SVG to
// p.Output. A missing drawer binary is not an error: an install hint goes to
// outW and the run succeeds without output.
func (p *Pipeline) Run(ctx context.Context, outW io.Writer) error {
	logger := ctxlog.FromContext(ctx)

	toolPath, err := exec.LookPath(p.Tool)
	if err != nil {
		fmt.Fprintln(outW, InstallHint)
		return nil
	}
	if p.Source == "" {
		return errors.New("draw source is not configured; set draw.source in keymapctl.hcl")
	}

	cfg, err := p.renderConfig()
	if err != nil {
		return fmt.Errorf("failed to render drawer config: %w", err)
	}
	cfgFile, err := os.CreateTemp("", "keymapctl-draw-*.yaml")
	if err != nil {
		return err
	}
	defer os.Remove(cfgFile.Name())
	if _, err := cfgFile.Write(cfg); err != nil {
		cfgFile.Close()
		return err
	}
	if err := cfgFile.Close(); err != nil {
		return err
	}

	var parsed, parseErr bytes.Buffer
	parse := exec.CommandContext(ctx, toolPath, "parse", "-c", strconv.Itoa(p.Columns), "-z", p.Source)
	parse.Stdout = &parsed
	parse.Stderr = &parseErr
	if err := parse.Run(); err != nil {
		return fmt.Errorf("keymap parse failed for %s: %w: %s", p.Source, err, strings.TrimSpace(parseErr.String()))
	}

	if err := os.MkdirAll(filepath.Dir(p.Output), 0755); err != nil {
		return err
	}
	out, err := os.Create(p.Output)
	if err != nil {
		return err
	}

	var drawErr bytes.Buffer
	drawCmd := exec.CommandContext(ctx, toolPath, "draw", "-c", cfgFile.Name(), "-")
	drawCmd.Stdin = &parsed
	drawCmd.Stdout = out
	drawCmd.Stderr = &drawErr
	if err := drawCmd.Run(); err != nil {
		out.Close()
		return fmt.Errorf("keymap draw failed: %w: %s", err, strings.TrimSpace(drawErr.String()))
	}
	if err := out.Close(); err != nil {
		return err
	}

	logger.Info("wrote keymap drawing", "source", p.Source, "output", p.Output)
	return nil
}
