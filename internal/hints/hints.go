// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForTemplateNotFound returns hints for template lookup failures.
// The first attempted location shows where an override would be picked up.
func ForTemplateNotFound(attempted []string) string {
	var hints []string
	for _, a := range attempted {
		if !strings.HasPrefix(a, "built-in:") {
			hints = append(hints, "add "+strings.TrimPrefix(a, sourceOf(a)+":")+" next to the input file to override it")
			break
		}
	}
	hints = append(hints, "check design.theme for typos")
	return formatHints(hints)
}

func sourceOf(attempt string) string {
	i := strings.LastIndex(attempt, ":")
	if i < 0 {
		return ""
	}
	return attempt[:i]
}

// ForInputNotFound returns hints for missing input files.
func ForInputNotFound(searchedPaths []string) string {
	if len(searchedPaths) == 0 {
		return format("pass a path to a YAML file, e.g. teklinicv render cv.yaml")
	}
	return format("looked for " + strings.Join(searchedPaths, ", "))
}

// ForValidation returns a hint for input validation errors.
func ForValidation() string {
	return format("fix the fields listed above; line numbers refer to the input file")
}

// ForUnknownNetwork returns hints listing the supported social networks.
func ForUnknownNetwork(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory is writable, or change the output paths (--typst-path, --markdown-path, --html-path)")
}

// ForTypstCompile returns a hint about compiling the generated Typst file.
func ForTypstCompile(typstPath string) string {
	if typstPath == "" {
		return ""
	}
	return format("compile to PDF with: typst compile " + typstPath)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
