package teklinicv

import (
	"strings"
	"time"

	"github.com/alnah/go-teklinicv/internal/dateutil"
)

// presentKeyword marks an ongoing end date in the input.
const presentKeyword = "present"

// dateFormatter renders entry dates with one locale and design.
type dateFormatter struct {
	locale    Locale
	vocab     dateutil.Vocabulary
	templates TemplateStrings
	today     dateutil.Date
}

func newDateFormatter(l Locale, t TemplateStrings, currentDate time.Time) *dateFormatter {
	return &dateFormatter{
		locale:    l,
		vocab:     l.Vocabulary(),
		templates: t,
		today:     dateutil.FromTime(currentDate),
	}
}

// single renders a lone date. Values that are not ISO dates ("Fall 2023")
// are returned unchanged.
func (f *dateFormatter) single(value string) string {
	d, err := dateutil.ParseDate(value)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return dateutil.FormatDate(f.templates.SingleDate, d, f.vocab)
}

// endpoint renders a range endpoint; "present" uses the locale's word.
func (f *dateFormatter) endpoint(value string) string {
	if isPresent(value) {
		return f.locale.Present
	}
	return f.single(value)
}

// dateText derives the display date of an entry:
//   - a single date renders alone,
//   - a range renders both endpoints joined by the locale's separator,
//   - a range whose endpoints render identically collapses to one,
//   - a start without an end runs to the present.
func (f *dateFormatter) dateText(d *DateFields) string {
	start, end := strings.TrimSpace(d.StartDate), strings.TrimSpace(d.EndDate)
	switch {
	case start == "" && end == "":
		return f.single(d.Date)
	case start == "":
		return f.endpoint(end)
	}
	if end == "" {
		end = presentKeyword
	}

	from, to := f.endpoint(start), f.endpoint(end)
	if from == to {
		return from
	}
	out := strings.NewReplacer(
		"START_DATE", from,
		"END_DATE", to,
		"TO", f.locale.To,
	).Replace(f.templates.DateRange)
	return strings.Join(strings.Fields(out), " ")
}

// timeSpan derives the duration text of a range. Entries without a start
// date, or with endpoints that do not parse, get no span.
func (f *dateFormatter) timeSpan(d *DateFields) string {
	if strings.TrimSpace(d.StartDate) == "" {
		return ""
	}
	start, err := dateutil.ParseDate(d.StartDate)
	if err != nil {
		return ""
	}

	end := f.today
	if e := strings.TrimSpace(d.EndDate); e != "" && !isPresent(e) {
		end, err = dateutil.ParseDate(e)
		if err != nil {
			return ""
		}
	}
	return dateutil.FormatTimeSpan(f.templates.TimeSpan, start, end, f.vocab)
}

func isPresent(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), presentKeyword)
}
