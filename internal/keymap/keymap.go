// Package keymap implements the pure text transforms over ZMK keymap
// sources: structural validation and grid reformatting of binding arrays.
// The package performs no I/O; callers own reading and writing files.
//
// Keymap sources are treated as opaque text, not as a parsed devicetree.
// Binding arrays are located by their `bindings = <` opener and the first
// following `>`; nested angle-bracket expressions inside an array are not
// handled (known limitation).
package keymap

import "regexp"

// bindingBlockRe locates a binding-array literal. The character class spans
// newlines, so multi-line arrays match. The first '>' closes the block.
var bindingBlockRe = regexp.MustCompile(`bindings\s*=\s*<([^>]*)>`)

// bindingStartRe matches a binding reference: the '&' marker followed by
// identifier characters.
var bindingStartRe = regexp.MustCompile(`^&[a-zA-Z0-9_]+$`)
