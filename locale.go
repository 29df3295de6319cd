package teklinicv

import (
	"slices"

	"golang.org/x/text/language"

	"github.com/alnah/go-teklinicv/internal/dateutil"
)

// Locale is the vocabulary used for dates, spans and fixed labels.
type Locale struct {
	// Language is a BCP 47 tag ("en", "de", "pt-BR").
	Language string `yaml:"language"`

	Present     string `yaml:"present"`
	To          string `yaml:"to"`
	LastUpdated string `yaml:"last_updated"`
	Year        string `yaml:"year"`
	Years       string `yaml:"years"`
	Month       string `yaml:"month"`
	Months      string `yaml:"months"`

	MonthNames         []string `yaml:"month_names"`
	MonthAbbreviations []string `yaml:"month_abbreviations"`
}

func (l Locale) clone() Locale {
	out := l
	out.MonthNames = slices.Clone(l.MonthNames)
	out.MonthAbbreviations = slices.Clone(l.MonthAbbreviations)
	return out
}

// Vocabulary converts l to the date formatter's vocabulary.
// Missing month names fall back to English.
func (l Locale) Vocabulary() dateutil.Vocabulary {
	en := builtinLocales[0]
	v := dateutil.Vocabulary{
		Year:   l.Year,
		Years:  l.Years,
		Month:  l.Month,
		Months: l.Months,
	}
	for i := range 12 {
		v.MonthNames[i] = pick(l.MonthNames, en.MonthNames, i)
		v.MonthAbbreviations[i] = pick(l.MonthAbbreviations, en.MonthAbbreviations, i)
	}
	return v
}

func pick(values, fallback []string, i int) string {
	if i < len(values) && values[i] != "" {
		return values[i]
	}
	return fallback[i]
}

// builtinLocales holds the shipped vocabularies. English comes first and is
// the fallback.
var builtinLocales = []Locale{
	{
		Language:    "en",
		Present:     "present",
		To:          "–",
		LastUpdated: "Last updated in",
		Year:        "year", Years: "years", Month: "month", Months: "months",
		MonthNames: []string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		MonthAbbreviations: []string{
			"Jan", "Feb", "Mar", "Apr", "May", "June",
			"July", "Aug", "Sept", "Oct", "Nov", "Dec",
		},
	},
	{
		Language:    "de",
		Present:     "heute",
		To:          "–",
		LastUpdated: "Zuletzt aktualisiert im",
		Year:        "Jahr", Years: "Jahre", Month: "Monat", Months: "Monate",
		MonthNames: []string{
			"Januar", "Februar", "März", "April", "Mai", "Juni",
			"Juli", "August", "September", "Oktober", "November", "Dezember",
		},
		MonthAbbreviations: []string{
			"Jan.", "Feb.", "März", "Apr.", "Mai", "Juni",
			"Juli", "Aug.", "Sept.", "Okt.", "Nov.", "Dez.",
		},
	},
	{
		Language:    "fr",
		Present:     "présent",
		To:          "–",
		LastUpdated: "Dernière mise à jour en",
		Year:        "an", Years: "ans", Month: "mois", Months: "mois",
		MonthNames: []string{
			"janvier", "février", "mars", "avril", "mai", "juin",
			"juillet", "août", "septembre", "octobre", "novembre", "décembre",
		},
		MonthAbbreviations: []string{
			"janv.", "févr.", "mars", "avr.", "mai", "juin",
			"juil.", "août", "sept.", "oct.", "nov.", "déc.",
		},
	},
	{
		Language:    "es",
		Present:     "presente",
		To:          "–",
		LastUpdated: "Última actualización en",
		Year:        "año", Years: "años", Month: "mes", Months: "meses",
		MonthNames: []string{
			"enero", "febrero", "marzo", "abril", "mayo", "junio",
			"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
		},
		MonthAbbreviations: []string{
			"ene.", "feb.", "mar.", "abr.", "may.", "jun.",
			"jul.", "ago.", "sept.", "oct.", "nov.", "dic.",
		},
	},
	{
		Language:    "pt",
		Present:     "presente",
		To:          "–",
		LastUpdated: "Última atualização em",
		Year:        "ano", Years: "anos", Month: "mês", Months: "meses",
		MonthNames: []string{
			"janeiro", "fevereiro", "março", "abril", "maio", "junho",
			"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
		},
		MonthAbbreviations: []string{
			"jan.", "fev.", "mar.", "abr.", "mai.", "jun.",
			"jul.", "ago.", "set.", "out.", "nov.", "dez.",
		},
	},
	{
		Language:    "tr",
		Present:     "devam ediyor",
		To:          "–",
		LastUpdated: "Son güncelleme:",
		Year:        "yıl", Years: "yıl", Month: "ay", Months: "ay",
		MonthNames: []string{
			"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
			"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
		},
		MonthAbbreviations: []string{
			"Oca", "Şub", "Mar", "Nis", "May", "Haz",
			"Tem", "Ağu", "Eyl", "Eki", "Kas", "Ara",
		},
	},
	{
		Language:    "it",
		Present:     "presente",
		To:          "–",
		LastUpdated: "Ultimo aggiornamento a",
		Year:        "anno", Years: "anni", Month: "mese", Months: "mesi",
		MonthNames: []string{
			"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
			"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre",
		},
		MonthAbbreviations: []string{
			"gen.", "feb.", "mar.", "apr.", "mag.", "giu.",
			"lug.", "ago.", "set.", "ott.", "nov.", "dic.",
		},
	},
}

var localeMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(builtinLocales))
	for i, l := range builtinLocales {
		tags[i] = language.MustParse(l.Language)
	}
	return language.NewMatcher(tags)
}()

// BuiltinLocale returns the shipped locale closest to tag. Unknown or
// malformed tags get English. The returned Language keeps the requested
// tag when it parses, so "pt-BR" stays "pt-BR" with Portuguese wording.
func BuiltinLocale(tag string) Locale {
	requested, err := language.Parse(tag)
	if err != nil {
		return builtinLocales[0].clone()
	}
	_, index, confidence := localeMatcher.Match(requested)
	if confidence == language.No {
		index = 0
	}
	l := builtinLocales[index].clone()
	if confidence != language.No {
		l.Language = requested.String()
	}
	return l
}

// DefaultLocale returns the English locale.
func DefaultLocale() Locale {
	return builtinLocales[0].clone()
}
