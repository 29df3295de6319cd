package teklinicv

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/alnah/go-teklinicv/internal/assets"
	"github.com/alnah/go-teklinicv/internal/strproc"
)

// Template names.
const (
	TemplatePreamble         = "Preamble"
	TemplateHeader           = "Header"
	TemplateSectionBeginning = "SectionBeginning"
	TemplateSectionEnding    = "SectionEnding"
	TemplateFull             = "Full"
)

// EntryTemplateName returns the template name for an entry kind.
func EntryTemplateName(kind EntryKind) string {
	return "entries/" + string(kind)
}

// TemplateCandidates lists the relative paths tried for (f, theme, name),
// most specific first. Typst looks in the theme directory before the
// format directory; the other formats have no theme layer.
func TemplateCandidates(f Format, theme, name string) []string {
	file := name + ".tmpl." + f.Extension()
	var out []string
	if f == FormatTypst && theme != "" {
		out = append(out, theme+"/"+file)
	}
	return append(out, string(f)+"/"+file)
}

// Environment resolves and renders templates for one override root: the
// directory holding the input file, searched before the built-in templates.
// It is safe for concurrent use.
type Environment struct {
	root   string
	search *assets.SearchPath
	logger zerolog.Logger

	mu     sync.Mutex
	parsed map[string]*template.Template
}

// NewEnvironment creates an Environment searching root, then builtin.
// An empty or unreadable root leaves only the built-in templates.
func NewEnvironment(root string, builtin AssetLoader, logger zerolog.Logger) *Environment {
	return &Environment{
		root:   root,
		search: assets.NewOverrideSearchPath(root, builtin),
		logger: logger,
		parsed: make(map[string]*template.Template),
	}
}

// Root returns the override root.
func (e *Environment) Root() string {
	return e.root
}

// Resolve looks up (f, theme, name) without rendering it. A template that
// exists nowhere yields ErrTemplateNotFound with the attempted locations.
func (e *Environment) Resolve(f Format, theme, name string) (assets.Lookup, error) {
	if !f.Valid() {
		return assets.Lookup{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	lookup, err := e.search.Resolve(TemplateCandidates(f, theme, name)...)
	if err != nil {
		return lookup, fmt.Errorf("%w: %w", ErrTemplateNotFound, err)
	}
	if !lookup.Found {
		return lookup, &TemplateNotFoundError{Name: name, Attempted: lookup.Attempted}
	}
	return lookup, nil
}

// TemplateNotFoundError reports a template missing from every search
// location. It matches ErrTemplateNotFound with errors.Is.
type TemplateNotFoundError struct {
	Name string
	// Attempted lists "source:path" pairs in lookup order.
	Attempted []string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("%v: %s (tried %s)", ErrTemplateNotFound, e.Name, strings.Join(e.Attempted, ", "))
}

func (e *TemplateNotFoundError) Unwrap() error {
	return ErrTemplateNotFound
}

// template returns the parsed template for (f, theme, name), parsing it on
// first use.
func (e *Environment) template(f Format, theme, name string) (*template.Template, error) {
	key := string(f) + "|" + theme + "|" + name

	e.mu.Lock()
	defer e.mu.Unlock()

	if t, ok := e.parsed[key]; ok {
		return t, nil
	}

	lookup, err := e.Resolve(f, theme, name)
	if err != nil {
		return nil, err
	}
	e.logger.Debug().
		Str("template", lookup.Path).
		Str("source", lookup.Source).
		Msg("resolved template")

	t, err := template.New(lookup.Path).
		Funcs(templateFuncs).
		Option("missingkey=error").
		Parse(lookup.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s from %s: %v", ErrTemplateParse, lookup.Path, lookup.Source, err)
	}
	e.parsed[key] = t
	return t, nil
}

// Render renders (f, theme, name) with the base context built from m
// (keys cv, design, locale, settings) plus extras. Extras may add keys but
// never replace a base key. Trailing newlines are trimmed so callers
// control the separators between rendered pieces.
func (e *Environment) Render(f Format, theme, name string, m *Model, extras map[string]any) (string, error) {
	data := map[string]any{
		"cv":       &m.CV,
		"design":   m.Design,
		"locale":   m.Locale,
		"settings": m.Settings,
	}
	for k, v := range extras {
		if _, reserved := data[k]; reserved {
			return "", fmt.Errorf("%w: %q", ErrReservedTemplateVariable, k)
		}
		data[k] = v
	}

	t, err := e.template(f, theme, name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		if isMissingVariable(err) {
			return "", fmt.Errorf("%w: %s: %v", ErrMissingTemplateVariable, t.Name(), err)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateRender, t.Name(), err)
	}
	return strings.TrimRight(buf.String(), " \t\r\n"), nil
}

// isMissingVariable recognizes text/template's errors for absent map keys
// and fields.
func isMissingVariable(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "map has no entry for key") ||
		strings.Contains(msg, "can't evaluate field")
}

var templateFuncs = template.FuncMap{
	"cleanURL":    strproc.CleanURL,
	"strip":       strings.TrimSpace,
	"typstString": strproc.TypstString,
	"escapeTypst": strproc.EscapeTypst,
	"join": func(items []string, sep string) string {
		return strings.Join(items, sep)
	},
	"htmlLang": htmlLang,
}

// htmlLang normalizes a locale tag for the lang attribute.
func htmlLang(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return "en"
	}
	return t.String()
}
