package teklinicv

import (
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format selects the output document type.
type Format string

// Supported output formats.
const (
	FormatTypst    Format = "typst"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Extension returns the file extension used by templates and output files.
func (f Format) Extension() string {
	switch f {
	case FormatTypst:
		return "typ"
	case FormatMarkdown:
		return "md"
	case FormatHTML:
		return "html"
	}
	return ""
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	return f.Extension() != ""
}

// Model is the validated CV input: content, design, locale and settings.
// Rendering never mutates a Model; every pass works on a Clone.
type Model struct {
	CV       CV
	Design   Design
	Locale   Locale
	Settings Settings

	// InputFilePath is the file the model was loaded from. Its directory is
	// the override root searched for user templates. Empty means the
	// working directory.
	InputFilePath string
}

// OverrideRoot returns the directory searched first for user templates.
func (m *Model) OverrideRoot() string {
	if m.InputFilePath == "" {
		return "."
	}
	return filepath.Dir(m.InputFilePath)
}

// Clone returns a deep copy of m that shares no mutable state with it.
func (m *Model) Clone() *Model {
	if m == nil {
		return nil
	}
	return &Model{
		CV:            m.CV.clone(),
		Design:        m.Design.clone(),
		Locale:        m.Locale.clone(),
		Settings:      m.Settings.clone(),
		InputFilePath: m.InputFilePath,
	}
}

// CV holds the person's identity and the ordered sections.
type CV struct {
	Name           string          `yaml:"name"`
	Headline       string          `yaml:"headline"`
	Location       string          `yaml:"location"`
	Email          string          `yaml:"email"`
	Phone          string          `yaml:"phone"`
	Website        string          `yaml:"website"`
	SocialNetworks []SocialNetwork `yaml:"social_networks"`
	Sections       []Section       `yaml:"-"`

	// Derived on processed copies only.
	PlainName   string   `yaml:"-"`
	Connections []string `yaml:"-"`
	TopNote     string   `yaml:"-"`
	Footer      string   `yaml:"-"`
}

func (c CV) clone() CV {
	out := c
	out.SocialNetworks = append([]SocialNetwork(nil), c.SocialNetworks...)
	out.Connections = append([]string(nil), c.Connections...)
	if c.Sections != nil {
		out.Sections = make([]Section, len(c.Sections))
		for i, s := range c.Sections {
			out.Sections[i] = s.clone()
		}
	}
	return out
}

// SocialNetwork is a profile on a known network.
type SocialNetwork struct {
	Network  string `yaml:"network"`
	Username string `yaml:"username"`
}

// Section is a titled, ordered group of entries of a single kind.
type Section struct {
	Title     string
	Key       string
	EntryType EntryKind
	Entries   []Entry

	// ShowTimeSpan is derived on processed copies from Design.Sections.
	ShowTimeSpan bool
}

// NewSection builds a section whose key is derived from title and whose
// entry type is taken from the first entry.
func NewSection(title string, entries ...Entry) Section {
	s := Section{
		Title:   title,
		Key:     SnakeCaseKey(title),
		Entries: entries,
	}
	if len(entries) > 0 {
		s.EntryType = entries[0].Kind()
	}
	return s
}

func (s Section) clone() Section {
	out := s
	if s.Entries != nil {
		out.Entries = make([]Entry, len(s.Entries))
		for i, e := range s.Entries {
			out.Entries[i] = e.clone()
		}
	}
	return out
}

var lowerCaser = cases.Lower(language.Und)

// SnakeCaseKey derives the machine-readable section key from a title:
// "Work Experience" → "work_experience".
func SnakeCaseKey(title string) string {
	return strings.Join(strings.Fields(lowerCaser.String(title)), "_")
}

// Settings holds fully resolved rendering settings.
type Settings struct {
	// CurrentDate is used for "present" spans, the top note and output paths.
	CurrentDate   time.Time
	BoldKeywords  []string
	RenderCommand RenderCommand
}

func (s Settings) clone() Settings {
	out := s
	out.BoldKeywords = append([]string(nil), s.BoldKeywords...)
	return out
}

// RenderCommand configures output paths and which formats are generated.
// Paths may contain placeholders (NAME_IN_SNAKE_CASE, YEAR, ...) and are
// resolved relative to the input file's directory.
type RenderCommand struct {
	TypstPath            string `yaml:"typst_path"`
	MarkdownPath         string `yaml:"markdown_path"`
	HTMLPath             string `yaml:"html_path"`
	DontGenerateTypst    bool   `yaml:"dont_generate_typst"`
	DontGenerateMarkdown bool   `yaml:"dont_generate_markdown"`
	DontGenerateHTML     bool   `yaml:"dont_generate_html"`
}

// Default output path templates.
const (
	DefaultTypstPath    = "teklinicv_output/NAME_IN_SNAKE_CASE_CV.typ"
	DefaultMarkdownPath = "teklinicv_output/NAME_IN_SNAKE_CASE_CV.md"
	DefaultHTMLPath     = "teklinicv_output/NAME_IN_SNAKE_CASE_CV.html"
)

// DefaultRenderCommand returns the default output layout with every format
// enabled.
func DefaultRenderCommand() RenderCommand {
	return RenderCommand{
		TypstPath:    DefaultTypstPath,
		MarkdownPath: DefaultMarkdownPath,
		HTMLPath:     DefaultHTMLPath,
	}
}
