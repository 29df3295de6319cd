package dateutil

import (
	"errors"
	"testing"
	"time"
)

var englishVocabulary = Vocabulary{
	MonthNames: [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	MonthAbbreviations: [12]string{
		"Jan", "Feb", "Mar", "Apr", "May", "June",
		"July", "Aug", "Sept", "Oct", "Nov", "Dec",
	},
	Year:   "year",
	Years:  "years",
	Month:  "month",
	Months: "months",
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr error
	}{
		{
			name:  "year only",
			input: "2020",
			want:  Date{Year: 2020, Precision: PrecisionYear},
		},
		{
			name:  "year and month",
			input: "2020-03",
			want:  Date{Year: 2020, Month: 3, Precision: PrecisionMonth},
		},
		{
			name:  "full date",
			input: "2020-03-15",
			want:  Date{Year: 2020, Month: 3, Day: 15, Precision: PrecisionDay},
		},
		{
			name:  "surrounding whitespace is ignored",
			input: " 2021-11 ",
			want:  Date{Year: 2021, Month: 11, Precision: PrecisionMonth},
		},
		{
			name:    "month out of range",
			input:   "2020-13",
			wantErr: ErrInvalidDate,
		},
		{
			name:    "day out of range",
			input:   "2021-02-30",
			wantErr: ErrInvalidDate,
		},
		{
			name:    "free text",
			input:   "Fall 2023",
			wantErr: ErrInvalidDate,
		},
		{
			name:    "two digit year",
			input:   "20-01",
			wantErr: ErrInvalidDate,
		},
		{
			name:    "too many parts",
			input:   "2020-01-01-01",
			wantErr: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDate(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseDate(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		date     Date
		want     string
	}{
		{
			name:     "month abbreviation and year",
			template: "MONTH_ABBREVIATION YEAR",
			date:     Date{Year: 2020, Month: 9, Precision: PrecisionMonth},
			want:     "Sept 2020",
		},
		{
			name:     "full month name",
			template: "MONTH_NAME YEAR",
			date:     Date{Year: 2019, Month: 1, Precision: PrecisionMonth},
			want:     "January 2019",
		},
		{
			name:     "numeric with two digits",
			template: "MONTH_IN_TWO_DIGITS/YEAR_IN_TWO_DIGITS",
			date:     Date{Year: 2005, Month: 4, Precision: PrecisionMonth},
			want:     "04/05",
		},
		{
			name:     "day placeholders with day precision",
			template: "DAY_IN_TWO_DIGITS.MONTH.YEAR",
			date:     Date{Year: 2024, Month: 2, Day: 7, Precision: PrecisionDay},
			want:     "07.2.2024",
		},
		{
			name:     "day placeholder dropped without day",
			template: "DAY MONTH_NAME YEAR",
			date:     Date{Year: 2024, Month: 2, Precision: PrecisionMonth},
			want:     "February 2024",
		},
		{
			name:     "year only ignores template",
			template: "MONTH_ABBREVIATION YEAR",
			date:     Date{Year: 2018, Precision: PrecisionYear},
			want:     "2018",
		},
		{
			name:     "literal text preserved",
			template: "since YEAR",
			date:     Date{Year: 2018, Month: 5, Precision: PrecisionMonth},
			want:     "since 2018",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FormatDate(tt.template, tt.date, englishVocabulary)
			if got != tt.want {
				t.Errorf("FormatDate(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestReplaceDateTokens(t *testing.T) {
	t.Parallel()

	day := Date{Year: 2024, Month: 3, Day: 9, Precision: PrecisionDay}

	tests := []struct {
		name string
		in   string
		date Date
		want string
	}{
		{"path template", "cv_YEAR-MONTH_IN_TWO_DIGITS-DAY_IN_TWO_DIGITS.pdf", day, "cv_2024-03-09.pdf"},
		{"longest token wins", "MONTH_NAME MONTH_ABBREVIATION MONTH", day, "March Mar 3"},
		{"no tokens", "plain text", day, "plain text"},
		{"spacing kept", "YEAR  DAY", Date{Year: 2024, Month: 3, Precision: PrecisionMonth}, "2024  "},
		{"year precision hides month", "MONTH/YEAR_IN_TWO_DIGITS", Date{Year: 2031, Precision: PrecisionYear}, "/31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ReplaceDateTokens(tt.in, tt.date, englishVocabulary); got != tt.want {
				t.Errorf("ReplaceDateTokens(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatTimeSpan(t *testing.T) {
	t.Parallel()

	const template = "HOW_MANY_YEARS YEARS HOW_MANY_MONTHS MONTHS"

	tests := []struct {
		name  string
		start Date
		end   Date
		want  string
	}{
		{
			name:  "same month counts as one month",
			start: Date{Year: 2020, Month: 1, Precision: PrecisionMonth},
			end:   Date{Year: 2020, Month: 1, Precision: PrecisionMonth},
			want:  "1 month",
		},
		{
			name:  "exact years drop the month part",
			start: Date{Year: 2020, Month: 1, Precision: PrecisionMonth},
			end:   Date{Year: 2021, Month: 12, Precision: PrecisionMonth},
			want:  "2 years",
		},
		{
			name:  "years and months",
			start: Date{Year: 2020, Month: 3, Precision: PrecisionMonth},
			end:   Date{Year: 2021, Month: 6, Precision: PrecisionMonth},
			want:  "1 year 4 months",
		},
		{
			name:  "year precision",
			start: Date{Year: 2015, Precision: PrecisionYear},
			end:   Date{Year: 2019, Month: 6, Precision: PrecisionMonth},
			want:  "4 years",
		},
		{
			name:  "same year with year precision is one year",
			start: Date{Year: 2015, Precision: PrecisionYear},
			end:   Date{Year: 2015, Precision: PrecisionYear},
			want:  "1 year",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FormatTimeSpan(template, tt.start, tt.end, englishVocabulary)
			if got != tt.want {
				t.Errorf("FormatTimeSpan() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveCurrentDate(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 12, 31, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr error
	}{
		{
			name:  "empty uses now",
			value: "",
			want:  time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "today is case insensitive",
			value: "TODAY",
			want:  time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "explicit full date",
			value: "2024-05-06",
			want:  time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "month precision defaults to first day",
			value: "2024-05",
			want:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			value:   "yesterday",
			wantErr: ErrInvalidCurrentDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveCurrentDate(tt.value, fixedTime)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveCurrentDate(%q) error = %v, want %v", tt.value, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveCurrentDate(%q) unexpected error: %v", tt.value, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ResolveCurrentDate(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
