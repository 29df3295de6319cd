package teklinicv

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alnah/go-teklinicv/internal/dateutil"
	"github.com/alnah/go-teklinicv/internal/fileutil"
	"github.com/alnah/go-teklinicv/internal/yamlutil"
)

// rawInput mirrors the input file. Design, locale and settings stay loose
// so they can be laid over their defaults before strict decoding.
type rawInput struct {
	CV       rawCV          `yaml:"cv"`
	Design   map[string]any `yaml:"design"`
	Locale   map[string]any `yaml:"locale"`
	Settings map[string]any `yaml:"settings"`
}

type rawCV struct {
	Name           string            `yaml:"name"`
	Headline       string            `yaml:"headline"`
	Location       string            `yaml:"location"`
	Email          string            `yaml:"email"`
	Phone          string            `yaml:"phone"`
	Website        string            `yaml:"website"`
	SocialNetworks []SocialNetwork   `yaml:"social_networks"`
	Sections       yamlutil.MapSlice `yaml:"sections"`
}

type rawSettings struct {
	CurrentDate   string        `yaml:"current_date"`
	BoldKeywords  []string      `yaml:"bold_keywords"`
	RenderCommand RenderCommand `yaml:"render_command"`
}

// entryKeys maps the key that identifies each mapping entry kind, in
// detection order.
var entryKeys = []struct {
	key  string
	kind EntryKind
}{
	{"institution", KindEducation},
	{"company", KindExperience},
	{"title", KindPublication},
	{"name", KindNormal},
	{"label", KindOneLine},
	{"bullet", KindBullet},
	{"number", KindNumbered},
	{"reversed_number", KindReversedNumbered},
	{"text", KindText},
}

// InputCandidates lists the files tried for path: the path itself, then
// with .yaml and .yml appended when it has no extension.
func InputCandidates(path string) []string {
	out := []string{path}
	if filepath.Ext(path) == "" {
		out = append(out, path+".yaml", path+".yml")
	}
	return out
}

// LoadFile reads and validates the CV file at path. now resolves
// settings.current_date values such as "today".
func LoadFile(path string, now time.Time) (*Model, error) {
	candidates := InputCandidates(path)
	found := ""
	for _, c := range candidates {
		if fileutil.FileExists(c) {
			found = c
			break
		}
	}
	if found == "" {
		return nil, fmt.Errorf("%w: %s: no such file (tried %s)",
			ErrReadInput, path, strings.Join(candidates, ", "))
	}

	data, err := os.ReadFile(found) // #nosec G304 -- user-provided input path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	abs, err := filepath.Abs(found)
	if err != nil {
		abs = found
	}
	return Load(data, abs, now)
}

// Load decodes and validates a CV document. Every problem found is
// reported together as ValidationErrors; nothing is rendered from an
// input that fails.
func Load(data []byte, inputPath string, now time.Time) (*Model, error) {
	var raw rawInput
	if err := yamlutil.UnmarshalStrict(data, &raw); err != nil {
		if errors.Is(err, yamlutil.ErrNilData) || errors.Is(err, yamlutil.ErrInputTooLarge) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, ValidationErrors{{Message: "malformed YAML: " + err.Error()}}
	}

	l := &loader{doc: yamlutil.NewDocument(data), now: now}
	m := &Model{InputFilePath: inputPath}

	m.CV = l.cv(&raw.CV)
	m.Design = l.design(raw.Design)
	m.Locale = l.locale(raw.Locale)
	m.Settings = l.settings(raw.Settings)

	if len(l.errs) > 0 {
		return nil, l.errs
	}
	return m, nil
}

// loader accumulates validation errors while building a Model.
type loader struct {
	doc  *yamlutil.Document
	now  time.Time
	errs ValidationErrors
}

func (l *loader) fail(location []string, input, format string, args ...any) {
	e := &ValidationError{
		Location: slices.Clone(location),
		Message:  fmt.Sprintf(format, args...),
		Input:    input,
	}
	if pos, err := l.doc.PositionOf(location); err == nil {
		end := pos
		end.Column += len(input)
		e.Span = &Span{Start: pos, End: end}
	}
	l.errs = append(l.errs, e)
}

func (l *loader) cv(raw *rawCV) CV {
	cv := CV{
		Name:           strings.TrimSpace(raw.Name),
		Headline:       raw.Headline,
		Location:       raw.Location,
		Email:          strings.TrimSpace(raw.Email),
		Phone:          raw.Phone,
		Website:        strings.TrimSpace(raw.Website),
		SocialNetworks: raw.SocialNetworks,
	}

	if cv.Email != "" {
		if _, err := mail.ParseAddress(cv.Email); err != nil {
			l.fail([]string{"cv", "email"}, cv.Email, "invalid email address")
		}
	}
	if cv.Website != "" {
		if u, err := url.Parse(cv.Website); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			l.fail([]string{"cv", "website"}, cv.Website, "website must be an http or https URL")
		}
	}
	for i, sn := range cv.SocialNetworks {
		loc := []string{"cv", "social_networks", strconv.Itoa(i)}
		if !IsKnownNetwork(sn.Network) {
			l.fail(append(loc, "network"), sn.Network, "unknown social network")
			continue
		}
		if _, err := sn.ProfileURL(); err != nil {
			l.fail(append(loc, "username"), sn.Username, "malformed %s username", sn.Network)
		}
	}

	for _, item := range raw.Sections {
		if s, ok := l.section(fmt.Sprint(item.Key), item.Value); ok {
			cv.Sections = append(cv.Sections, s)
		}
	}
	return cv
}

func (l *loader) section(key string, value any) (Section, bool) {
	loc := []string{"cv", "sections", key}
	items, ok := value.([]any)
	if !ok || len(items) == 0 {
		l.fail(loc, "", "a section must be a non-empty list of entries")
		return Section{}, false
	}

	s := Section{Title: SectionTitle(key), Key: SnakeCaseKey(key)}
	for i, item := range items {
		entryLoc := append(slices.Clone(loc), strconv.Itoa(i))
		e, ok := l.entry(entryLoc, item)
		if !ok {
			continue
		}
		if s.EntryType == "" {
			s.EntryType = e.Kind()
		} else if e.Kind() != s.EntryType {
			l.fail(entryLoc, "", "entry is a %s but the section holds %s items", e.Kind(), s.EntryType)
			continue
		}
		if d := e.dated(); d != nil {
			l.dates(entryLoc, d)
		}
		s.Entries = append(s.Entries, e)
	}
	return s, len(s.Entries) > 0
}

// entry decodes one section item. Plain strings are text entries; mappings
// are typed by their identifying key and decoded strictly.
func (l *loader) entry(loc []string, item any) (Entry, bool) {
	switch v := item.(type) {
	case string:
		return &TextEntry{Text: v}, true
	case map[string]any:
		kind, ok := detectKind(v)
		if !ok {
			l.fail(loc, "", "cannot tell the entry type from its keys")
			return nil, false
		}
		e := newEntry(kind)
		if err := yamlutil.Recode(stringifyScalars(v), e); err != nil {
			l.fail(loc, "", "invalid %s: %v", kind, err)
			return nil, false
		}
		return e, true
	case nil:
		l.fail(loc, "", "empty entry")
	default:
		l.fail(loc, fmt.Sprint(v), "an entry must be a text or a mapping")
	}
	return nil, false
}

func detectKind(m map[string]any) (EntryKind, bool) {
	for _, k := range entryKeys {
		if _, ok := m[k.key]; ok {
			return k.kind, true
		}
	}
	return "", false
}

func newEntry(kind EntryKind) Entry {
	switch kind {
	case KindEducation:
		return &EducationEntry{}
	case KindExperience:
		return &ExperienceEntry{}
	case KindPublication:
		return &PublicationEntry{}
	case KindNormal:
		return &NormalEntry{}
	case KindOneLine:
		return &OneLineEntry{}
	case KindBullet:
		return &BulletEntry{}
	case KindNumbered:
		return &NumberedEntry{}
	case KindReversedNumbered:
		return &ReversedNumberedEntry{}
	}
	return &TextEntry{}
}

// dates checks the range fields of a dated entry. The free-form date field
// accepts any text.
func (l *loader) dates(loc []string, d *DateFields) {
	var start, end dateutil.Date
	var haveStart, haveEnd bool

	if s := strings.TrimSpace(d.StartDate); s != "" {
		parsed, err := dateutil.ParseDate(s)
		if err != nil {
			l.fail(append(slices.Clone(loc), "start_date"), s, "expected YYYY-MM-DD, YYYY-MM or YYYY")
		} else {
			start, haveStart = parsed, true
		}
	}
	if e := strings.TrimSpace(d.EndDate); e != "" && !isPresent(e) {
		parsed, err := dateutil.ParseDate(e)
		if err != nil {
			l.fail(append(slices.Clone(loc), "end_date"), e, `expected YYYY-MM-DD, YYYY-MM, YYYY or "present"`)
		} else {
			end, haveEnd = parsed, true
		}
	}
	if haveStart && haveEnd && startsAfter(start, end) {
		l.fail(append(slices.Clone(loc), "start_date"), d.StartDate, "start_date is after end_date")
	}
}

// startsAfter compares dates at the coarser of both precisions.
func startsAfter(start, end dateutil.Date) bool {
	a := [3]int{start.Year, start.Month, start.Day}
	b := [3]int{end.Year, end.Month, end.Day}
	n := int(min(start.Precision, end.Precision))
	for i := range n {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}

func (l *loader) design(user map[string]any) Design {
	d := DefaultDesign()
	if err := overlay(DefaultDesign(), user, &d); err != nil {
		l.fail([]string{"design"}, "", "%v", err)
		return DefaultDesign()
	}
	if err := d.Validate(); err != nil {
		l.fail([]string{"design"}, "", "%v", err)
	}
	return d
}

func (l *loader) locale(user map[string]any) Locale {
	tag, _ := user["language"].(string)
	base := DefaultLocale()
	if tag != "" {
		base = BuiltinLocale(tag)
	}
	out := base.clone()
	if err := overlay(base, user, &out); err != nil {
		l.fail([]string{"locale"}, "", "%v", err)
		return base
	}
	for _, list := range []struct {
		name   string
		values []string
	}{
		{"month_names", out.MonthNames},
		{"month_abbreviations", out.MonthAbbreviations},
	} {
		if len(list.values) != 12 {
			l.fail([]string{"locale", list.name}, "", "expected 12 values, got %d", len(list.values))
		}
	}
	return out
}

func (l *loader) settings(user map[string]any) Settings {
	defaults := rawSettings{CurrentDate: "today", RenderCommand: DefaultRenderCommand()}
	raw := defaults
	if err := overlay(defaults, stringifyKeys(user, "current_date"), &raw); err != nil {
		l.fail([]string{"settings"}, "", "%v", err)
		raw = defaults
	}

	current, err := dateutil.ResolveCurrentDate(raw.CurrentDate, l.now)
	if err != nil {
		l.fail([]string{"settings", "current_date"}, raw.CurrentDate, "expected today, YYYY-MM-DD, YYYY-MM or YYYY")
	}
	return Settings{
		CurrentDate:   current,
		BoldKeywords:  raw.BoldKeywords,
		RenderCommand: raw.RenderCommand,
	}
}

// overlay lays user values over defaults key by key (nested mappings are
// merged, everything else replaced) and decodes the result strictly into
// out, so unknown keys are reported.
func overlay(defaults any, user map[string]any, out any) error {
	if len(user) == 0 {
		return nil
	}
	data, err := yamlutil.Marshal(defaults)
	if err != nil {
		return err
	}
	var base map[string]any
	if err := yamlutil.Unmarshal(data, &base); err != nil {
		return err
	}
	return yamlutil.Recode(mergeMaps(base, user), out)
}

func mergeMaps(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if existing, ok := dst[k].(map[string]any); ok {
				dst[k] = mergeMaps(existing, sub)
				continue
			}
		}
		dst[k] = v
	}
	return dst
}

// stringifyScalars converts every scalar leaf to its text form. Entry
// fields are all text, while YAML reads 2020 as a number.
func stringifyScalars(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, sub := range t {
			out[k] = stringifyScalars(sub)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, sub := range t {
			out[i] = stringifyScalars(sub)
		}
		return out
	case nil, string:
		return t
	case time.Time:
		return t.Format(time.DateOnly)
	default:
		return fmt.Sprint(t)
	}
}

func stringifyKeys(m map[string]any, keys ...string) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if slices.Contains(keys, k) {
			v = stringifyScalars(v)
		}
		out[k] = v
	}
	return out
}

var (
	titleCaser = cases.Title(language.English)

	// minorWords stay lowercase inside generated titles.
	minorWords = []string{"a", "an", "and", "as", "at", "but", "by", "for", "in", "of", "on", "or", "the", "to", "with"}
)

// SectionTitle turns a section key into its display title. Keys written in
// snake or lower case ("work_experience") become title case ("Work
// Experience"); keys containing capitals are kept as written.
func SectionTitle(key string) string {
	if strings.ToLower(key) != key {
		return key
	}
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		if i > 0 && slices.Contains(minorWords, w) {
			continue
		}
		words[i] = titleCaser.String(w)
	}
	return strings.Join(words, " ")
}
