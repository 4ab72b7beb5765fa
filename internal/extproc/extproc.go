// Package extproc pipes text through an optional external formatting tool.
//
// The tool is resolved once from the command search path. Every failure mode
// (binary missing, spawn error, non-zero exit) degrades to returning the
// input text unchanged; the external tool is never allowed to fail the
// formatting pipeline.
package extproc

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/vk/keymapctl/internal/ctxlog"
)

// PostProcessor transforms formatted keymap text before it is written back.
type PostProcessor interface {
	// Process returns the transformed text. The pipeline never fails here:
	// on any tool problem the input comes back unchanged.
	Process(ctx context.Context, text string) string
}

// identity is the fallback used when no external tool is available.
type identity struct{}

func (identity) Process(_ context.Context, text string) string { return text }

// tool shells out to a resolved external formatter, feeding text on stdin
// and reading the result from stdout.
type tool struct {
	path string
}

// New resolves the named tool on the search path. An empty name or an
// unresolvable binary yields the identity processor.
func New(ctx context.Context, name string) PostProcessor {
	if name == "" {
		return identity{}
	}
	path, err := exec.LookPath(name)
	if err != nil {
		ctxlog.FromContext(ctx).Info("external formatter not found, using grid formatting only", "tool", name)
		return identity{}
	}
	return &tool{path: path}
}

func (t *tool) Process(ctx context.Context, text string) string {
	cmd := exec.CommandContext(ctx, t.path)
	cmd.Stdin = strings.NewReader(text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		ctxlog.FromContext(ctx).Warn("external formatter failed, keeping grid-formatted text",
			"tool", t.path, "error", err, "stderr", strings.TrimSpace(stderr.String()))
		return text
	}
	return stdout.String()
}
