package teklinicv

import (
	"fmt"
	"strings"

	"github.com/alnah/go-teklinicv/internal/dateutil"
	"github.com/alnah/go-teklinicv/internal/strproc"
)

// Page counter placeholders survive the pipeline as private-use runes and
// are swapped for Typst counters afterwards.
const (
	pageNumberMark = "\uE000"
	totalPagesMark = "\uE001"

	typstPageNumber = "#context counter(page).display()"
	typstTotalPages = "#context counter(page).final().first()"
)

// pipelineFor assembles the string processors for format f. Keyword
// emphasis always runs first; Markdown is converted only for Typst.
func pipelineFor(f Format, boldKeywords []string) strproc.Pipeline {
	p := strproc.Pipeline{strproc.BoldKeywords(boldKeywords)}
	if f == FormatTypst {
		p = append(p, strproc.MarkdownToTypst)
	}
	return p
}

// ProcessModel returns a render-ready copy of m for format f. The copy has
// processed prose, derived connections, top note, footer and entry dates.
// m is never modified, and two calls with the same input return equal
// results.
func ProcessModel(m *Model, f Format) (*Model, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err := m.Design.Templates.require(m.Design.Page); err != nil {
		return nil, err
	}

	out := m.Clone()
	pipeline := pipelineFor(f, out.Settings.BoldKeywords)
	cv := &out.CV

	cv.PlainName = cv.Name
	cv.Name = pipeline.Apply(cv.Name)
	cv.Headline = pipeline.Apply(cv.Headline)
	cv.Connections = renderConnections(connectionsOf(cv), f)
	cv.TopNote = pipeline.Apply(topNote(out))
	cv.Footer = footer(out, f, pipeline)

	if len(cv.Sections) == 0 {
		return out, nil
	}

	x := &expander{
		pipeline: pipeline,
		dates:    newDateFormatter(out.Locale, out.Design.Templates, out.Settings.CurrentDate),
	}
	for i := range cv.Sections {
		s := &cv.Sections[i]
		if s.Key == "" {
			s.Key = SnakeCaseKey(s.Title)
		}
		s.Title = pipeline.Apply(s.Title)
		s.ShowTimeSpan = out.Design.ShowsTimeSpan(s.Key)
		s.Entries = x.expandSection(*s)
	}
	return out, nil
}

// topNote fills the top note template with the last-updated wording and
// the current date.
func topNote(m *Model) string {
	date := dateutil.Date{
		Year:      m.Settings.CurrentDate.Year(),
		Month:     int(m.Settings.CurrentDate.Month()),
		Precision: dateutil.PrecisionMonth,
	}
	return strings.NewReplacer(
		"LAST_UPDATED", m.Locale.LastUpdated,
		"CURRENT_DATE", dateutil.FormatDate(m.Design.Templates.SingleDate, date, m.Locale.Vocabulary()),
	).Replace(m.Design.Templates.TopNote)
}

// footer fills the footer template. NAME uses the unprocessed name so the
// pipeline sees it once. Documents without pages count a single page.
func footer(m *Model, f Format, pipeline strproc.Pipeline) string {
	s := strings.NewReplacer(
		"NAME", m.CV.PlainName,
		"PAGE_NUMBER", pageNumberMark,
		"TOTAL_PAGES", totalPagesMark,
	).Replace(m.Design.Templates.Footer)
	s = pipeline.Apply(s)

	pageNumber, totalPages := "1", "1"
	if f == FormatTypst {
		pageNumber, totalPages = typstPageNumber, typstTotalPages
	}
	return strings.NewReplacer(
		pageNumberMark, pageNumber,
		totalPagesMark, totalPages,
	).Replace(s)
}
