package keymap

import (
	"fmt"
	"strings"
)

// Grid describes the target layout for binding arrays.
type Grid struct {
	// Columns is the number of bindings per row.
	Columns int

	// FieldWidth is the left-justified field each binding is padded to.
	FieldWidth int

	// Indent is prepended to every rendered row.
	Indent string
}

// DefaultGrid matches a typical 10-column ortholinear layout.
var DefaultGrid = Grid{
	Columns:    10,
	FieldWidth: 12,
	Indent:     strings.Repeat(" ", 8),
}

// normalized fills zero-valued fields from DefaultGrid.
func (g Grid) normalized() Grid {
	if g.Columns <= 0 {
		g.Columns = DefaultGrid.Columns
	}
	if g.FieldWidth <= 0 {
		g.FieldWidth = DefaultGrid.FieldWidth
	}
	if g.Indent == "" {
		g.Indent = DefaultGrid.Indent
	}
	return g
}

// ExtractBindings tokenizes the inside of a binding array into ordered
// binding groups. A group starts at a word carrying the '&' marker; plain
// words that follow are that binding's positional arguments and stay
// attached, joined by single spaces. Words before the first marker are
// dropped.
func ExtractBindings(block string) []string {
	var bindings []string
	for _, word := range strings.Fields(block) {
		if bindingStartRe.MatchString(word) {
			bindings = append(bindings, word)
			continue
		}
		if len(bindings) > 0 {
			bindings[len(bindings)-1] += " " + word
		}
	}
	return bindings
}

// Reflow rewrites every binding array in content into a fixed-column grid and
// returns the new text. Arrays containing no binding references are left
// untouched. The transform is pure and idempotent for a given Grid.
func Reflow(content string, g Grid) string {
	g = g.normalized()
	return bindingBlockRe.ReplaceAllStringFunc(content, func(block string) string {
		inner := bindingBlockRe.FindStringSubmatch(block)[1]
		bindings := ExtractBindings(inner)
		if len(bindings) == 0 {
			return block
		}

		var rows []string
		for start := 0; start < len(bindings); start += g.Columns {
			end := start + g.Columns
			if end > len(bindings) {
				end = len(bindings)
			}
			cells := make([]string, 0, end-start)
			for _, b := range bindings[start:end] {
				cells = append(cells, fmt.Sprintf("%-*s", g.FieldWidth, b))
			}
			rows = append(rows, g.Indent+strings.Join(cells, " "))
		}

		return "bindings = <\n" + strings.Join(rows, "\n") + "\n    >"
	})
}
