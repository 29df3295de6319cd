// Package strproc implements the string processor pipeline applied to CV
// prose fields: keyword emphasis, Markdown to Typst conversion and URL
// helpers. Every processor is a pure, total func(string) string.
package strproc

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Processor transforms a string. Processors must not fail on any input.
type Processor func(string) string

// Pipeline is an ordered list of processors applied left to right.
type Pipeline []Processor

// Apply runs s through every processor in order.
func (p Pipeline) Apply(s string) string {
	for _, proc := range p {
		s = proc(s)
	}
	return s
}

// ApplyAll runs every element of values through the pipeline and returns a
// new slice. A nil input yields nil.
func (p Pipeline) ApplyAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = p.Apply(v)
	}
	return out
}

// BoldKeywords returns a processor that wraps every whole-word occurrence of
// each keyword in Markdown strong emphasis (**keyword**). Keywords already
// wrapped in ** are left alone. Empty keywords are ignored.
func BoldKeywords(keywords []string) Processor {
	patterns := make([]*regexp.Regexp, 0, len(keywords))
	for _, kw := range keywords {
		if strings.TrimSpace(kw) == "" {
			continue
		}
		patterns = append(patterns, keywordPattern(kw))
	}

	return func(s string) string {
		for _, re := range patterns {
			s = replaceUnbolded(s, re)
		}
		return s
	}
}

// keywordPattern matches kw with word boundaries only on sides where kw
// starts or ends with a word character ("C++" has no trailing boundary).
func keywordPattern(kw string) *regexp.Regexp {
	expr := regexp.QuoteMeta(kw)
	first, _ := utf8.DecodeRuneInString(kw)
	last, _ := utf8.DecodeLastRuneInString(kw)
	if isWordRune(first) {
		expr = `\b` + expr
	}
	if isWordRune(last) {
		expr += `\b`
	}
	return regexp.MustCompile(expr)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// literalSpans matches text where emphasis markers would change meaning
// rather than style: link destinations "](...)", autolinks "<...>", bare
// URLs and code spans.
var literalSpans = regexp.MustCompile(
	`\]\((?:[^()\s]|\([^()\s]*\))*(?:\s+"[^"]*")?\)` +
		`|<[A-Za-z][A-Za-z0-9+.-]*:[^<>\s]*>` +
		`|<[^<>\s@]+@[^<>\s]+>` +
		`|[A-Za-z][A-Za-z0-9+.-]*://[^\s<>()\[\]]+` +
		"|`+[^`]*`+",
)

func insideAny(spans [][]int, start, end int) bool {
	for _, sp := range spans {
		if start < sp[1] && end > sp[0] {
			return true
		}
	}
	return false
}

func replaceUnbolded(s string, re *regexp.Regexp) string {
	matches := re.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return s
	}
	literal := literalSpans.FindAllStringIndex(s, -1)

	var b strings.Builder
	b.Grow(len(s) + 4*len(matches))
	prev := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if insideAny(literal, start, end) {
			continue
		}
		b.WriteString(s[prev:start])
		if strings.HasSuffix(s[:start], "**") && strings.HasPrefix(s[end:], "**") {
			b.WriteString(s[start:end])
		} else {
			b.WriteString("**" + s[start:end] + "**")
		}
		prev = end
	}
	b.WriteString(s[prev:])
	return b.String()
}

// CleanURL strips the scheme and trailing slashes for display:
// "https://example.com/" → "example.com".
func CleanURL(url string) string {
	url = strings.TrimSpace(url)
	for _, scheme := range []string{"https://", "http://", "mailto:", "tel:"} {
		if strings.HasPrefix(strings.ToLower(url), scheme) {
			url = url[len(scheme):]
			break
		}
	}
	return strings.TrimRight(url, "/")
}
