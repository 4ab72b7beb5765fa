package config

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/keymapctl/internal/ctxlog"
)

// fileRoot mirrors the top-level structure of keymapctl.hcl.
type fileRoot struct {
	KeymapDir  string           `hcl:"keymap_dir,optional"`
	Extensions []string         `hcl:"extensions,optional"`
	Grid       *gridBlock       `hcl:"grid,block"`
	Tools      *toolsBlock      `hcl:"tools,block"`
	Draw       *drawBlock       `hcl:"draw,block"`
	Keyboards  []*keyboardBlock `hcl:"keyboard,block"`
}

type gridBlock struct {
	Columns    int    `hcl:"columns,optional"`
	FieldWidth int    `hcl:"field_width,optional"`
	Indent     string `hcl:"indent,optional"`
}

type toolsBlock struct {
	// Pointers so an explicit empty string can disable a tool while an
	// omitted attribute keeps the default.
	Formatter *string `hcl:"formatter,optional"`
	Drawer    *string `hcl:"drawer,optional"`
}

type drawBlock struct {
	Source string `hcl:"source,optional"`
	Output string `hcl:"output,optional"`
}

type keyboardBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// Load reads the config file at path and merges it over the defaults. A
// missing file is not an error: the defaults come back unchanged.
func Load(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Debug("no config file found, using defaults", "path", path)
		return New(model)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	if root.KeymapDir != "" {
		model.KeymapDir = root.KeymapDir
	}
	if len(root.Extensions) > 0 {
		model.Extensions = root.Extensions
	}
	if root.Grid != nil {
		if root.Grid.Columns > 0 {
			model.Grid.Columns = root.Grid.Columns
		}
		if root.Grid.FieldWidth > 0 {
			model.Grid.FieldWidth = root.Grid.FieldWidth
		}
		if root.Grid.Indent != "" {
			model.Grid.Indent = root.Grid.Indent
		}
	}
	if root.Tools != nil {
		if root.Tools.Formatter != nil {
			model.Tools.Formatter = *root.Tools.Formatter
		}
		if root.Tools.Drawer != nil {
			model.Tools.Drawer = *root.Tools.Drawer
		}
	}
	if root.Draw != nil {
		if root.Draw.Source != "" {
			model.Draw.Source = root.Draw.Source
		}
		if root.Draw.Output != "" {
			model.Draw.Output = root.Draw.Output
		}
	}

	for _, kb := range root.Keyboards {
		override, err := decodeKeyboard(kb)
		if err != nil {
			return nil, err
		}
		model.Keyboards = append(model.Keyboards, override)
	}

	logger.Debug("configuration loaded", "path", path, "keyboards", len(model.Keyboards))
	return New(model)
}

// decodeKeyboard reads a keyboard block's override attributes through cty so
// values convert uniformly regardless of how they were written in the file.
func decodeKeyboard(block *keyboardBlock) (KeyboardOverride, error) {
	override := KeyboardOverride{Name: block.Name}

	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return override, fmt.Errorf("keyboard %q: %w", block.Name, diags)
	}

	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return override, fmt.Errorf("keyboard %q attribute %q: %w", block.Name, name, diags)
		}

		var err error
		switch name {
		case "columns":
			err = fromCty(val, cty.Number, &override.Grid.Columns)
		case "field_width":
			err = fromCty(val, cty.Number, &override.Grid.FieldWidth)
		case "indent":
			err = fromCty(val, cty.String, &override.Grid.Indent)
		default:
			err = fmt.Errorf("unsupported attribute")
		}
		if err != nil {
			return override, fmt.Errorf("keyboard %q attribute %q: %w", block.Name, name, err)
		}
	}

	return override, nil
}

// fromCty converts a cty value to the wanted type and binds it to a Go
// target via gocty.
func fromCty(val cty.Value, want cty.Type, target any) error {
	converted, err := convert.Convert(val, want)
	if err != nil {
		return err
	}
	return gocty.FromCtyValue(converted, target)
}
