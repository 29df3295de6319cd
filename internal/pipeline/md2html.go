package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// Highlight placeholders use Unicode Private Use Area characters so they
// pass through Goldmark unchanged without enabling raw HTML.
const (
	markStart = "\uE000"
	markEnd   = "\uE001"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	highlightPattern   = regexp.MustCompile(`==(.+?)==`)
)

// HTMLConverter abstracts Markdown to HTML fragment conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, markdown string) (string, error)
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions,
// heading IDs and class-based syntax highlighting.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // section anchors: #experience, #education
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML preprocesses markdown, converts it to an HTML fragment and turns
// highlight placeholders into <mark> elements.
// Goldmark has no context support, so conversion runs in a goroutine and
// ctx is honored with a select.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(Preprocess(markdown)), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: convertMarkPlaceholders(buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// Preprocess normalizes line endings, marks ==highlighted== spans and
// limits runs of blank lines to one.
func Preprocess(markdown string) string {
	markdown = crlfOrCR.ReplaceAllString(markdown, "\n")
	markdown = highlightPattern.ReplaceAllString(markdown, markStart+"$1"+markEnd)
	return multipleBlankLines.ReplaceAllString(markdown, "\n\n")
}

func convertMarkPlaceholders(content string) string {
	return strings.NewReplacer(markStart, "<mark>", markEnd, "</mark>").Replace(content)
}

// Compile-time interface check.
var _ HTMLConverter = (*GoldmarkConverter)(nil)
