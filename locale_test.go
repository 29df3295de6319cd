package teklinicv

import (
	"testing"
)

func TestBuiltinLocale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag          string
		wantLanguage string
		wantPresent  string
	}{
		{"en", "en", "present"},
		{"de", "de", "heute"},
		{"pt-BR", "pt-BR", "presente"},
		{"fr-CA", "fr-CA", "présent"},
		{"tr", "tr", "devam ediyor"},
		{"ja", "en", "present"},
		{"not a tag", "en", "present"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			t.Parallel()

			l := BuiltinLocale(tt.tag)
			if l.Language != tt.wantLanguage {
				t.Errorf("Language = %q, want %q", l.Language, tt.wantLanguage)
			}
			if l.Present != tt.wantPresent {
				t.Errorf("Present = %q, want %q", l.Present, tt.wantPresent)
			}
		})
	}
}

func TestBuiltinLocale_ReturnsCopy(t *testing.T) {
	t.Parallel()

	l := BuiltinLocale("en")
	l.MonthNames[0] = "Janvier"
	if BuiltinLocale("en").MonthNames[0] != "January" {
		t.Error("modifying a returned locale changed the built-in one")
	}
}

func TestBuiltinLocales_Complete(t *testing.T) {
	t.Parallel()

	for _, l := range builtinLocales {
		if len(l.MonthNames) != 12 || len(l.MonthAbbreviations) != 12 {
			t.Errorf("%s: month lists must have 12 entries", l.Language)
		}
		if l.Present == "" || l.To == "" || l.LastUpdated == "" {
			t.Errorf("%s: missing fixed wording", l.Language)
		}
	}
}

func TestLocale_Vocabulary_FallsBackToEnglish(t *testing.T) {
	t.Parallel()

	l := Locale{MonthNames: []string{"Jan-custom"}}
	v := l.Vocabulary()

	if v.MonthNames[0] != "Jan-custom" {
		t.Errorf("MonthNames[0] = %q, want custom", v.MonthNames[0])
	}
	if v.MonthNames[11] != "December" || v.MonthAbbreviations[8] != "Sept" {
		t.Errorf("missing values should fall back to English: %+v", v)
	}
}
