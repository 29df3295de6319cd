package teklinicv

// EntryKind names an entry variant. It is also the template file stem:
// "experience-entry" renders with entries/experience-entry.tmpl.{ext}.
type EntryKind string

// Entry kinds.
const (
	KindEducation        EntryKind = "education-entry"
	KindExperience       EntryKind = "experience-entry"
	KindNormal           EntryKind = "normal-entry"
	KindPublication      EntryKind = "publication-entry"
	KindOneLine          EntryKind = "one-line-entry"
	KindBullet           EntryKind = "bullet-entry"
	KindNumbered         EntryKind = "numbered-entry"
	KindReversedNumbered EntryKind = "reversed-numbered-entry"
	KindText             EntryKind = "text-entry"
)

// EntryKinds lists every kind in detection order.
var EntryKinds = []EntryKind{
	KindEducation, KindExperience, KindPublication, KindNormal,
	KindOneLine, KindBullet, KindNumbered, KindReversedNumbered, KindText,
}

// Entry is one item of a section. The set of variants is closed: every
// implementation lives in this package.
type Entry interface {
	Kind() EntryKind
	clone() Entry
	// prose returns pointers to the string fields of the receiver that go
	// through the string processor pipeline.
	prose() []*string
	// proseLists returns pointers to the string-list fields processed
	// element by element.
	proseLists() []*[]string
	// dated returns the date fields of dated variants, nil otherwise.
	dated() *DateFields
}

// DateFields are shared by every dated entry variant.
type DateFields struct {
	Date      string `yaml:"date"`
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`

	// Derived on processed copies.
	DateText     string `yaml:"-"`
	TimeSpanText string `yaml:"-"`
}

// Details are shared by entries that carry a location, a summary,
// highlights and a link.
type Details struct {
	Location   string   `yaml:"location"`
	Summary    string   `yaml:"summary"`
	Highlights []string `yaml:"highlights"`
	URL        string   `yaml:"url"`
}

func (d *Details) clone() Details {
	out := *d
	out.Highlights = append([]string(nil), d.Highlights...)
	return out
}

// EducationEntry describes a degree or course of study.
type EducationEntry struct {
	Institution string `yaml:"institution"`
	Area        string `yaml:"area"`
	Degree      string `yaml:"degree"`
	DateFields  `yaml:",inline"`
	Details     `yaml:",inline"`
}

func (e *EducationEntry) Kind() EntryKind { return KindEducation }

func (e *EducationEntry) clone() Entry {
	c := *e
	c.Details = e.Details.clone()
	return &c
}

func (e *EducationEntry) prose() []*string {
	return []*string{
		&e.Institution, &e.Area, &e.Degree, &e.Location, &e.Summary,
		&e.Date, &e.DateText, &e.TimeSpanText,
	}
}

func (e *EducationEntry) proseLists() []*[]string { return []*[]string{&e.Highlights} }
func (e *EducationEntry) dated() *DateFields      { return &e.DateFields }

// ExperienceEntry describes a position held at a company.
type ExperienceEntry struct {
	Company    string `yaml:"company"`
	Position   string `yaml:"position"`
	DateFields `yaml:",inline"`
	Details    `yaml:",inline"`
}

func (e *ExperienceEntry) Kind() EntryKind { return KindExperience }

func (e *ExperienceEntry) clone() Entry {
	c := *e
	c.Details = e.Details.clone()
	return &c
}

func (e *ExperienceEntry) prose() []*string {
	return []*string{
		&e.Company, &e.Position, &e.Location, &e.Summary,
		&e.Date, &e.DateText, &e.TimeSpanText,
	}
}

func (e *ExperienceEntry) proseLists() []*[]string { return []*[]string{&e.Highlights} }
func (e *ExperienceEntry) dated() *DateFields      { return &e.DateFields }

// NormalEntry is a generic named, dated entry (projects, awards, ...).
type NormalEntry struct {
	Name       string `yaml:"name"`
	DateFields `yaml:",inline"`
	Details    `yaml:",inline"`
}

func (e *NormalEntry) Kind() EntryKind { return KindNormal }

func (e *NormalEntry) clone() Entry {
	c := *e
	c.Details = e.Details.clone()
	return &c
}

func (e *NormalEntry) prose() []*string {
	return []*string{
		&e.Name, &e.Location, &e.Summary,
		&e.Date, &e.DateText, &e.TimeSpanText,
	}
}

func (e *NormalEntry) proseLists() []*[]string { return []*[]string{&e.Highlights} }
func (e *NormalEntry) dated() *DateFields      { return &e.DateFields }

// PublicationEntry describes a paper. DOI and URL are identifiers and are
// never processed.
type PublicationEntry struct {
	Title      string   `yaml:"title"`
	Authors    []string `yaml:"authors"`
	Journal    string   `yaml:"journal"`
	Summary    string   `yaml:"summary"`
	DOI        string   `yaml:"doi"`
	URL        string   `yaml:"url"`
	DateFields `yaml:",inline"`
}

func (e *PublicationEntry) Kind() EntryKind { return KindPublication }

func (e *PublicationEntry) clone() Entry {
	c := *e
	c.Authors = append([]string(nil), e.Authors...)
	return &c
}

func (e *PublicationEntry) prose() []*string {
	return []*string{&e.Title, &e.Journal, &e.Summary, &e.Date, &e.DateText, &e.TimeSpanText}
}

func (e *PublicationEntry) proseLists() []*[]string { return []*[]string{&e.Authors} }
func (e *PublicationEntry) dated() *DateFields      { return &e.DateFields }

// OneLineEntry is a "Label: details" line.
type OneLineEntry struct {
	Label   string `yaml:"label"`
	Details string `yaml:"details"`
}

func (e *OneLineEntry) Kind() EntryKind         { return KindOneLine }
func (e *OneLineEntry) clone() Entry            { return shallowCopy(e) }
func (e *OneLineEntry) prose() []*string        { return []*string{&e.Label, &e.Details} }
func (e *OneLineEntry) proseLists() []*[]string { return nil }
func (e *OneLineEntry) dated() *DateFields      { return nil }

// BulletEntry is a single bullet point.
type BulletEntry struct {
	Bullet string `yaml:"bullet"`
}

func (e *BulletEntry) Kind() EntryKind         { return KindBullet }
func (e *BulletEntry) clone() Entry            { return shallowCopy(e) }
func (e *BulletEntry) prose() []*string        { return []*string{&e.Bullet} }
func (e *BulletEntry) proseLists() []*[]string { return nil }
func (e *BulletEntry) dated() *DateFields      { return nil }

// NumberedEntry is an item of an ascending numbered list.
type NumberedEntry struct {
	Number string `yaml:"number"`

	// Ordinal is the 1-based position, derived on processed copies.
	Ordinal int `yaml:"-"`
}

func (e *NumberedEntry) Kind() EntryKind         { return KindNumbered }
func (e *NumberedEntry) clone() Entry            { return shallowCopy(e) }
func (e *NumberedEntry) prose() []*string        { return []*string{&e.Number} }
func (e *NumberedEntry) proseLists() []*[]string { return nil }
func (e *NumberedEntry) dated() *DateFields      { return nil }

// ReversedNumberedEntry is an item of a descending numbered list.
type ReversedNumberedEntry struct {
	ReversedNumber string `yaml:"reversed_number"`

	// Ordinal counts down to 1, derived on processed copies.
	Ordinal int `yaml:"-"`
}

func (e *ReversedNumberedEntry) Kind() EntryKind         { return KindReversedNumbered }
func (e *ReversedNumberedEntry) clone() Entry            { return shallowCopy(e) }
func (e *ReversedNumberedEntry) prose() []*string        { return []*string{&e.ReversedNumber} }
func (e *ReversedNumberedEntry) proseLists() []*[]string { return nil }
func (e *ReversedNumberedEntry) dated() *DateFields      { return nil }

// TextEntry is a free paragraph.
type TextEntry struct {
	Text string `yaml:"text"`
}

func (e *TextEntry) Kind() EntryKind         { return KindText }
func (e *TextEntry) clone() Entry            { return shallowCopy(e) }
func (e *TextEntry) prose() []*string        { return []*string{&e.Text} }
func (e *TextEntry) proseLists() []*[]string { return nil }
func (e *TextEntry) dated() *DateFields      { return nil }

// Compile-time interface checks.
var (
	_ Entry = (*EducationEntry)(nil)
	_ Entry = (*ExperienceEntry)(nil)
	_ Entry = (*NormalEntry)(nil)
	_ Entry = (*PublicationEntry)(nil)
	_ Entry = (*OneLineEntry)(nil)
	_ Entry = (*BulletEntry)(nil)
	_ Entry = (*NumberedEntry)(nil)
	_ Entry = (*ReversedNumberedEntry)(nil)
	_ Entry = (*TextEntry)(nil)
)

func shallowCopy[T any](v *T) *T {
	c := *v
	return &c
}
