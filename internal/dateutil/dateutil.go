// Package dateutil parses CV dates and renders them with locale vocabulary.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Sentinel errors for date operations.
var (
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidCurrentDate = errors.New("invalid current date")
)

// Precision records which components of a Date were given.
type Precision int

const (
	PrecisionYear Precision = iota + 1
	PrecisionMonth
	PrecisionDay
)

// Date is a calendar date with optional month and day.
// Month and Day are zero when the precision does not include them.
type Date struct {
	Year      int
	Month     int
	Day       int
	Precision Precision
}

// FromTime converts t to a day-precision Date.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day(), Precision: PrecisionDay}
}

// monthIndex counts months since year zero, used for span arithmetic.
func (d Date) monthIndex() int {
	return d.Year*12 + d.Month - 1
}

// ParseDate parses "YYYY", "YYYY-MM" or "YYYY-MM-DD".
// Returns ErrInvalidDate for anything else, including out-of-range months.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "-")
	if len(parts) == 0 || len(parts) > 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	widths := []int{4, 2, 2}
	values := make([]int, len(parts))
	for i, p := range parts {
		if len(p) != widths[i] {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		values[i] = n
	}

	d := Date{Year: values[0], Precision: Precision(len(parts))}
	if len(values) > 1 {
		d.Month = values[1]
		if d.Month < 1 || d.Month > 12 {
			return Date{}, fmt.Errorf("%w: month out of range in %q", ErrInvalidDate, s)
		}
	}
	if len(values) > 2 {
		d.Day = values[2]
		t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
		if t.Day() != d.Day {
			return Date{}, fmt.Errorf("%w: day out of range in %q", ErrInvalidDate, s)
		}
	}
	return d, nil
}

// Vocabulary is the locale-specific wording used when rendering dates.
type Vocabulary struct {
	MonthNames         [12]string
	MonthAbbreviations [12]string
	Year               string
	Years              string
	Month              string
	Months             string
}

// dateTokens maps template placeholders to date components.
// Ordered by length descending for greedy matching.
var dateTokens = []struct {
	token     string
	precision Precision
	render    func(Date, Vocabulary) string
}{
	{"MONTH_ABBREVIATION", PrecisionMonth, func(d Date, v Vocabulary) string { return v.MonthAbbreviations[d.Month-1] }},
	{"MONTH_IN_TWO_DIGITS", PrecisionMonth, func(d Date, _ Vocabulary) string { return fmt.Sprintf("%02d", d.Month) }},
	{"YEAR_IN_TWO_DIGITS", PrecisionYear, func(d Date, _ Vocabulary) string { return fmt.Sprintf("%02d", d.Year%100) }},
	{"DAY_IN_TWO_DIGITS", PrecisionDay, func(d Date, _ Vocabulary) string { return fmt.Sprintf("%02d", d.Day) }},
	{"MONTH_NAME", PrecisionMonth, func(d Date, v Vocabulary) string { return v.MonthNames[d.Month-1] }},
	{"MONTH", PrecisionMonth, func(d Date, _ Vocabulary) string { return strconv.Itoa(d.Month) }},
	{"YEAR", PrecisionYear, func(d Date, _ Vocabulary) string { return strconv.Itoa(d.Year) }},
	{"DAY", PrecisionDay, func(d Date, _ Vocabulary) string { return strconv.Itoa(d.Day) }},
}

// FormatDate renders d with a placeholder template such as
// "MONTH_ABBREVIATION YEAR". Year-only dates always render as the bare year,
// since month placeholders would have nothing to show. Day placeholders on a
// month-precision date render as empty and the result is trimmed.
func FormatDate(template string, d Date, v Vocabulary) string {
	if d.Precision == PrecisionYear {
		return strconv.Itoa(d.Year)
	}
	return strings.Join(strings.Fields(ReplaceDateTokens(template, d, v)), " ")
}

// ReplaceDateTokens substitutes every date placeholder in s and keeps the
// surrounding text as is. Month and day placeholders render as empty when
// d lacks that precision.
func ReplaceDateTokens(s string, d Date, v Vocabulary) string {
	var result strings.Builder
	result.Grow(len(s) + 10)

	i := 0
	for i < len(s) {
		matched := false
		for _, t := range dateTokens {
			if strings.HasPrefix(s[i:], t.token) {
				if t.precision <= d.Precision {
					result.WriteString(t.render(d, v))
				}
				i += len(t.token)
				matched = true
				break
			}
		}
		if !matched {
			result.WriteByte(s[i])
			i++
		}
	}
	return result.String()
}

// FormatTimeSpan renders the length of [start, end] with a template such as
// "HOW_MANY_YEARS YEARS HOW_MANY_MONTHS MONTHS". Month counting is inclusive
// (Jan to Jan is one month). Zero-valued parts are dropped together with
// their unit word. Year-precision endpoints yield whole years only.
func FormatTimeSpan(template string, start, end Date, v Vocabulary) string {
	var years, months int
	if start.Precision == PrecisionYear || end.Precision == PrecisionYear {
		years = end.Year - start.Year
		if years < 1 {
			years = 1
		}
	} else {
		total := end.monthIndex() - start.monthIndex() + 1
		if total < 1 {
			total = 1
		}
		years, months = total/12, total%12
	}

	out := template
	if years == 0 {
		out = strings.ReplaceAll(out, "HOW_MANY_YEARS YEARS", "")
	}
	if months == 0 {
		out = strings.ReplaceAll(out, "HOW_MANY_MONTHS MONTHS", "")
	}

	out = strings.ReplaceAll(out, "HOW_MANY_YEARS", strconv.Itoa(years))
	out = strings.ReplaceAll(out, "HOW_MANY_MONTHS", strconv.Itoa(months))
	out = strings.ReplaceAll(out, "YEARS", plural(years, v.Year, v.Years))
	out = strings.ReplaceAll(out, "MONTHS", plural(months, v.Month, v.Months))

	return strings.Join(strings.Fields(out), " ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// ResolveCurrentDate turns a settings value into a concrete date.
// - "", "today", "auto" → now
// - "YYYY-MM-DD" / "YYYY-MM" / "YYYY" → that date (missing parts default to 1)
//
// The now parameter allows injecting a fixed time for testing.
func ResolveCurrentDate(value string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "today", "auto":
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}

	d, err := ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidCurrentDate, err)
	}
	month, day := d.Month, d.Day
	if month == 0 {
		month = 1
	}
	if day == 0 {
		day = 1
	}
	return time.Date(d.Year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}
