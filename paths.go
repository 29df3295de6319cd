package teklinicv

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alnah/go-teklinicv/internal/dateutil"
)

var upperCaser = cases.Upper(language.Und)

// nameTokens are the name placeholders of output paths, longest first.
var nameTokens = []struct {
	token  string
	render func(name string) string
}{
	{"NAME_IN_LOWER_SNAKE_CASE", func(n string) string { return joinWords(lowerCaser.String(n), "_") }},
	{"NAME_IN_UPPER_SNAKE_CASE", func(n string) string { return joinWords(upperCaser.String(n), "_") }},
	{"NAME_IN_LOWER_KEBAB_CASE", func(n string) string { return joinWords(lowerCaser.String(n), "-") }},
	{"NAME_IN_UPPER_KEBAB_CASE", func(n string) string { return joinWords(upperCaser.String(n), "-") }},
	{"NAME_IN_SNAKE_CASE", func(n string) string { return joinWords(n, "_") }},
	{"NAME_IN_KEBAB_CASE", func(n string) string { return joinWords(n, "-") }},
	{"NAME", func(n string) string { return n }},
}

func joinWords(s, sep string) string {
	return strings.Join(strings.Fields(s), sep)
}

// ExpandPathPlaceholders substitutes date placeholders (YEAR, MONTH_NAME,
// ...) from the current date, then name placeholders (NAME,
// NAME_IN_SNAKE_CASE, ...) from the CV name. Dates go first so a name
// containing a placeholder word is left alone.
func ExpandPathPlaceholders(m *Model, template string) string {
	out := dateutil.ReplaceDateTokens(template, dateutil.FromTime(m.Settings.CurrentDate), m.Locale.Vocabulary())

	name := m.CV.Name
	if name == "" {
		name = "Your Name"
	}
	var b strings.Builder
	for i := 0; i < len(out); {
		matched := false
		for _, t := range nameTokens {
			if strings.HasPrefix(out[i:], t.token) {
				b.WriteString(t.render(name))
				i += len(t.token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(out[i])
			i++
		}
	}
	return b.String()
}

// ResolveOutputPath expands placeholders in template and anchors relative
// results at the input file's directory. An empty template falls back to
// the default path for f.
func ResolveOutputPath(m *Model, template string, f Format) (string, error) {
	if template == "" {
		switch f {
		case FormatTypst:
			template = DefaultTypstPath
		case FormatMarkdown:
			template = DefaultMarkdownPath
		case FormatHTML:
			template = DefaultHTMLPath
		default:
			return "", fmt.Errorf("%w: %q", ErrUnknownFormat, f)
		}
	}

	path := filepath.FromSlash(ExpandPathPlaceholders(m, template))
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.OverrideRoot(), path)
	}
	return filepath.Clean(path), nil
}
