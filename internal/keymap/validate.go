package keymap

import (
	"fmt"
	"regexp"
	"strings"
)

// Severity classifies a validation finding. Errors fail the file; suggestions
// never affect exit status.
type Severity int

const (
	SeverityError Severity = iota
	SeveritySuggestion
)

// String implements fmt.Stringer for log and report output.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeveritySuggestion:
		return "suggestion"
	default:
		return "unknown"
	}
}

// Finding is one reported validation issue. Line is 1-based; zero means the
// finding is not tied to a specific line.
type Finding struct {
	Severity Severity
	Message  string
	Line     int
}

const (
	// maxLineLength is the advisory threshold for line width.
	maxLineLength = 120

	// transAdvisoryThreshold is the number of transparent bindings in one
	// array above which an empty layer is suggested instead.
	transAdvisoryThreshold = 10
)

var layerNodeRe = regexp.MustCompile(`\w+_layer\s*\{`)

// Validate runs the structural checklist and style advisories over the full
// text of one keymap file. Error findings come first, then suggestions; the
// structural checks are independent of each other and of text order.
func Validate(content string) []Finding {
	var findings []Finding

	if !strings.Contains(content, "#include <behaviors.dtsi>") {
		findings = append(findings, Finding{
			Severity: SeverityError,
			Message:  "missing required include: behaviors header (#include <behaviors.dtsi>)",
		})
	}
	if !strings.Contains(content, "#include <dt-bindings/zmk/keys.h>") {
		findings = append(findings, Finding{
			Severity: SeverityError,
			Message:  "missing required include: keycodes header (#include <dt-bindings/zmk/keys.h>)",
		})
	}
	if !strings.Contains(content, `compatible = "zmk,keymap"`) {
		findings = append(findings, Finding{
			Severity: SeverityError,
			Message:  "missing keymap node with compatible property",
		})
	}
	if !layerNodeRe.MatchString(content) {
		findings = append(findings, Finding{
			Severity: SeverityError,
			Message:  "no layers found in keymap",
		})
	}

	findings = append(findings, advisories(content)...)
	return findings
}

// advisories produces the non-blocking style findings: over-long lines and
// binding arrays dominated by transparent bindings.
func advisories(content string) []Finding {
	var findings []Finding

	for i, line := range strings.Split(content, "\n") {
		if len(line) > maxLineLength {
			findings = append(findings, Finding{
				Severity: SeveritySuggestion,
				Message:  "consider breaking long line",
				Line:     i + 1,
			})
		}
	}

	for _, loc := range bindingBlockRe.FindAllStringSubmatchIndex(content, -1) {
		inner := content[loc[2]:loc[3]]
		if n := strings.Count(inner, "&trans"); n > transAdvisoryThreshold {
			findings = append(findings, Finding{
				Severity: SeveritySuggestion,
				Message:  fmt.Sprintf("binding array has %d transparent bindings; consider an empty layer instead", n),
				Line:     1 + strings.Count(content[:loc[0]], "\n"),
			})
		}
	}

	return findings
}

// HasErrors reports whether any finding carries error severity.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}
