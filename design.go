package teklinicv

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Built-in theme names. Themes other than the default carry their own
// Typst templates that take precedence over the format's defaults.
const (
	ThemeClassic = "classic"
	ThemeSB2Nov  = "sb2nov"
)

// Page size constants, as Typst spells them.
const (
	PageSizeLetter = "us-letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "us-legal"
)

// Default placeholder templates.
const (
	DefaultSingleDateTemplate = "MONTH_ABBREVIATION YEAR"
	DefaultDateRangeTemplate  = "START_DATE TO END_DATE"
	DefaultTimeSpanTemplate   = "HOW_MANY_YEARS YEARS HOW_MANY_MONTHS MONTHS"
	DefaultTopNoteTemplate    = "*LAST_UPDATED CURRENT_DATE*"
	DefaultFooterTemplate     = "*NAME -- PAGE_NUMBER/TOTAL_PAGES*"
)

// Design controls the visual layout. Only the fields templates need are
// modeled; templates reach them as .design.
type Design struct {
	Theme      string          `yaml:"theme"`
	Page       PageSettings    `yaml:"page"`
	Typography Typography      `yaml:"typography"`
	Colors     Colors          `yaml:"colors"`
	Sections   SectionsConfig  `yaml:"sections"`
	Templates  TemplateStrings `yaml:"templates"`
	HTMLStyle  string          `yaml:"html_style"`
}

// PageSettings configures page dimensions and the optional page decorations.
type PageSettings struct {
	Size         string `yaml:"size"`
	TopMargin    string `yaml:"top_margin"`
	BottomMargin string `yaml:"bottom_margin"`
	LeftMargin   string `yaml:"left_margin"`
	RightMargin  string `yaml:"right_margin"`
	ShowFooter   bool   `yaml:"show_footer"`
	ShowTopNote  bool   `yaml:"show_top_note"`
}

// Typography configures fonts.
type Typography struct {
	FontFamily  string `yaml:"font_family"`
	FontSize    string `yaml:"font_size"`
	LineSpacing string `yaml:"line_spacing"`
}

// Colors are hex RGB strings ("#004f90").
type Colors struct {
	Name     string `yaml:"name"`
	Sections string `yaml:"sections"`
	Links    string `yaml:"links"`
	Text     string `yaml:"text"`
}

// SectionsConfig configures per-section behavior.
type SectionsConfig struct {
	// ShowTimeSpansIn lists section keys whose dated entries get a
	// computed time span ("2 years 3 months").
	ShowTimeSpansIn []string `yaml:"show_time_spans_in"`
}

// TemplateStrings are the locale-parameterized placeholder templates used
// for dates, spans and the page decorations.
type TemplateStrings struct {
	SingleDate string `yaml:"single_date"`
	DateRange  string `yaml:"date_range"`
	TimeSpan   string `yaml:"time_span"`
	TopNote    string `yaml:"top_note"`
	Footer     string `yaml:"footer"`
}

// require reports the first empty template. The defaults fill every
// field, so an empty one was blanked explicitly. The top note and footer
// templates are only required while page shows them.
func (t TemplateStrings) require(page PageSettings) error {
	for _, f := range []struct {
		name, value string
		used        bool
	}{
		{"single_date", t.SingleDate, true},
		{"date_range", t.DateRange, true},
		{"time_span", t.TimeSpan, true},
		{"top_note", t.TopNote, page.ShowTopNote},
		{"footer", t.Footer, page.ShowFooter},
	} {
		if f.used && strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: design.templates.%s is empty", ErrMissingTemplateVariable, f.name)
		}
	}
	return nil
}

// DefaultDesign returns the classic theme with default settings.
func DefaultDesign() Design {
	return Design{
		Theme: ThemeClassic,
		Page: PageSettings{
			Size:         PageSizeLetter,
			TopMargin:    "2cm",
			BottomMargin: "2cm",
			LeftMargin:   "2cm",
			RightMargin:  "2cm",
			ShowFooter:   true,
			ShowTopNote:  true,
		},
		Typography: Typography{
			FontFamily:  "Source Sans 3",
			FontSize:    "10pt",
			LineSpacing: "0.6em",
		},
		Colors: Colors{
			Name:     "#004f90",
			Sections: "#004f90",
			Links:    "#004f90",
			Text:     "#000000",
		},
		Sections: SectionsConfig{
			ShowTimeSpansIn: []string{"experience"},
		},
		Templates: TemplateStrings{
			SingleDate: DefaultSingleDateTemplate,
			DateRange:  DefaultDateRangeTemplate,
			TimeSpan:   DefaultTimeSpanTemplate,
			TopNote:    DefaultTopNoteTemplate,
			Footer:     DefaultFooterTemplate,
		},
		HTMLStyle: "default",
	}
}

func (d Design) clone() Design {
	out := d
	out.Sections.ShowTimeSpansIn = slices.Clone(d.Sections.ShowTimeSpansIn)
	return out
}

// ShowsTimeSpan reports whether time spans are rendered in the section.
func (d Design) ShowsTimeSpan(sectionKey string) bool {
	return slices.Contains(d.Sections.ShowTimeSpansIn, sectionKey)
}

var (
	hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	lengthPattern   = regexp.MustCompile(`^\d+(\.\d+)?(cm|mm|in|pt|em)$`)
	themePattern    = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
)

// Validate checks that design values are safe to splice into templates.
func (d Design) Validate() error {
	if !themePattern.MatchString(d.Theme) {
		return fmt.Errorf("%w: theme %q", ErrInvalidDesign, d.Theme)
	}
	if err := d.Page.Validate(); err != nil {
		return err
	}
	for name, v := range map[string]string{
		"typography.font_size":    d.Typography.FontSize,
		"typography.line_spacing": d.Typography.LineSpacing,
	} {
		if !lengthPattern.MatchString(v) {
			return fmt.Errorf("%w: %s %q", ErrInvalidDesign, name, v)
		}
	}
	if strings.ContainsAny(d.Typography.FontFamily, `"\`) {
		return fmt.Errorf("%w: typography.font_family %q", ErrInvalidDesign, d.Typography.FontFamily)
	}
	for name, v := range map[string]string{
		"colors.name":     d.Colors.Name,
		"colors.sections": d.Colors.Sections,
		"colors.links":    d.Colors.Links,
		"colors.text":     d.Colors.Text,
	} {
		if !hexColorPattern.MatchString(v) {
			return fmt.Errorf("%w: %s %q", ErrInvalidDesign, name, v)
		}
	}
	if d.HTMLStyle != "" && !themePattern.MatchString(d.HTMLStyle) {
		return fmt.Errorf("%w: html_style %q", ErrInvalidDesign, d.HTMLStyle)
	}
	return nil
}

// Validate checks that page settings are valid.
func (p PageSettings) Validate() error {
	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	for name, v := range map[string]string{
		"top_margin":    p.TopMargin,
		"bottom_margin": p.BottomMargin,
		"left_margin":   p.LeftMargin,
		"right_margin":  p.RightMargin,
	} {
		if !lengthPattern.MatchString(v) {
			return fmt.Errorf("%w: %s %q", ErrInvalidMargin, name, v)
		}
	}
	return nil
}

// isValidPageSize checks if size is a known page size. Typst paper names
// are case-sensitive.
func isValidPageSize(size string) bool {
	switch size {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}
