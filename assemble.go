package teklinicv

import (
	"context"
	"strings"
)

// assemble renders a processed model into one document for format f:
// preamble (Typst only), header, then every section in order. Pieces are
// joined by blank lines and the document ends with a newline. Nothing is
// returned until the whole document has been built.
func assemble(ctx context.Context, env *Environment, m *Model, f Format) (string, error) {
	theme := m.Design.Theme
	var parts []string

	if f == FormatTypst {
		preamble, err := env.Render(f, theme, TemplatePreamble, m, nil)
		if err != nil {
			return "", err
		}
		parts = appendNonEmpty(parts, preamble)
	}

	header, err := env.Render(f, theme, TemplateHeader, m, nil)
	if err != nil {
		return "", err
	}
	parts = appendNonEmpty(parts, header)

	for i := range m.CV.Sections {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		block, err := assembleSection(env, m, f, &m.CV.Sections[i])
		if err != nil {
			return "", err
		}
		parts = appendNonEmpty(parts, block)
	}

	return strings.Join(parts, "\n\n") + "\n", nil
}

// assembleSection renders begin + entries + end for one section.
func assembleSection(env *Environment, m *Model, f Format, s *Section) (string, error) {
	theme := m.Design.Theme
	sectionVars := map[string]any{
		"section_title":            s.Title,
		"snake_case_section_title": s.Key,
		"entry_type":               s.EntryType,
	}

	begin, err := env.Render(f, theme, TemplateSectionBeginning, m, sectionVars)
	if err != nil {
		return "", err
	}

	entries := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		rendered, err := env.Render(f, theme, EntryTemplateName(e.Kind()), m, map[string]any{
			"section_title":            s.Title,
			"snake_case_section_title": s.Key,
			"entry_type":               e.Kind(),
			"entry":                    e,
		})
		if err != nil {
			return "", err
		}
		entries = appendNonEmpty(entries, rendered)
	}

	end, err := env.Render(f, theme, TemplateSectionEnding, m, map[string]any{
		"entry_type": s.EntryType,
	})
	if err != nil {
		return "", err
	}

	var block []string
	block = appendNonEmpty(block, begin)
	block = appendNonEmpty(block, strings.Join(entries, "\n\n"))
	block = appendNonEmpty(block, end)
	return strings.Join(block, "\n\n"), nil
}

func appendNonEmpty(parts []string, s string) []string {
	if s == "" {
		return parts
	}
	return append(parts, s)
}
