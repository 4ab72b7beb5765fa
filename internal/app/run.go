package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/keymapctl/internal/ctxlog"
	"github.com/vk/keymapctl/internal/draw"
	"github.com/vk/keymapctl/internal/extproc"
	"github.com/vk/keymapctl/internal/fsutil"
	"github.com/vk/keymapctl/internal/keymap"
)

// Run dispatches to the requested mode. Files are processed sequentially:
// each is fully read, transformed and reported (or rewritten) before the
// next is considered. Per-file failures are reported and the loop continues.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	switch a.flags.Mode {
	case "validate":
		return a.runValidate(ctx)
	case "format":
		return a.runFormat(ctx)
	case "visualize":
		return a.runVisualize(ctx)
	default:
		return fmt.Errorf("unknown mode %q", a.flags.Mode)
	}
}

// findKeymaps enumerates the keymap sources for this run.
func (a *App) findKeymaps(ctx context.Context) ([]string, error) {
	files, err := fsutil.FindFilesByExtensions(a.model.KeymapDir, a.model.Extensions)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate keymap files under %s: %w", a.model.KeymapDir, err)
	}
	if len(files) == 0 {
		ctxlog.FromContext(ctx).Warn("no keymap files found", "dir", a.model.KeymapDir, "extensions", a.model.Extensions)
	}
	return files, nil
}

func (a *App) runValidate(ctx context.Context) error {
	files, err := a.findKeymaps(ctx)
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range files {
		fmt.Fprintf(a.outW, "Checking %s\n", path)

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(a.outW, "  - [error] cannot read file: %v\n", err)
			failed++
			continue
		}

		findings := keymap.Validate(string(data))
		if len(findings) == 0 {
			fmt.Fprintln(a.outW, "  keymap validation passed")
			continue
		}
		for _, f := range findings {
			if f.Line > 0 {
				fmt.Fprintf(a.outW, "  - [%s] %s (line %d)\n", f.Severity, f.Message, f.Line)
			} else {
				fmt.Fprintf(a.outW, "  - [%s] %s\n", f.Severity, f.Message)
			}
		}
		if keymap.HasErrors(findings) {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("validation failed for %d of %d files", failed, len(files))
	}
	return nil
}

func (a *App) runFormat(ctx context.Context) error {
	files, err := a.findKeymaps(ctx)
	if err != nil {
		return err
	}

	// The external formatter is resolved once for the whole run; every file
	// falls back to the grid-only result if the tool misbehaves.
	post := extproc.New(ctx, a.model.Tools.Formatter)

	failed := 0
	for _, path := range files {
		fmt.Fprintf(a.outW, "Formatting %s\n", path)

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(a.outW, "  - [error] cannot read file: %v\n", err)
			failed++
			continue
		}

		text := keymap.Reflow(string(data), a.model.GridFor(path))
		text = post.Process(ctx, text)

		if err := fsutil.WriteFileAtomic(path, []byte(text)); err != nil {
			fmt.Fprintf(a.outW, "  - [error] cannot write file: %v\n", err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("failed to format %d of %d files", failed, len(files))
	}
	return nil
}

func (a *App) runVisualize(ctx context.Context) error {
	pipeline := &draw.Pipeline{
		Tool:    a.model.Tools.Drawer,
		Source:  a.model.Draw.Source,
		Output:  a.model.Draw.Output,
		Columns: a.model.Grid.Columns,
	}
	return pipeline.Run(ctx, a.outW)
}
