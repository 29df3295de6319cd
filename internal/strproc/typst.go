package strproc

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// typstSpecial lists characters that carry meaning in Typst markup and must
// be escaped when they appear in plain text.
const typstSpecial = "\\#$*_@<>`~[]="

var markdownParser = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough),
).Parser()

// EscapeTypst escapes Typst markup characters in plain text. A slash is
// escaped when another slash follows it, since "//" opens a line comment.
func EscapeTypst(s string) string {
	if !strings.ContainsAny(s, typstSpecial) && !strings.Contains(s, "//") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i, r := range s {
		if strings.ContainsRune(typstSpecial, r) || (r == '/' && strings.HasPrefix(s[i+1:], "/")) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// TypstString escapes s for use inside a Typst string literal ("...").
func TypstString(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// MarkdownToTypst converts inline Markdown (emphasis, links, code spans,
// strikethrough) and simple blocks (paragraphs, bullet lists) into Typst
// markup. Everything else is emitted as escaped text, so the conversion
// never fails.
func MarkdownToTypst(s string) string {
	if s == "" {
		return s
	}
	source := []byte(s)
	doc := markdownParser.Parse(text.NewReader(source))

	w := &typstWriter{source: source}
	w.blocks(doc)
	return strings.TrimRight(w.b.String(), "\n")
}

type typstWriter struct {
	b      strings.Builder
	source []byte
}

// blocks renders block-level children separated by blank lines.
func (w *typstWriter) blocks(parent ast.Node) {
	first := true
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if !first {
			w.b.WriteString("\n\n")
		}
		first = false
		w.block(n)
	}
}

func (w *typstWriter) block(n ast.Node) {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		w.inlines(node)
	case *ast.Heading:
		w.b.WriteString(strings.Repeat(`\#`, node.Level) + " ")
		w.inlines(node)
	case *ast.List:
		w.list(node)
	case *ast.ThematicBreak:
		w.b.WriteString("#line(length: 100%)")
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		w.b.WriteString("```\n")
		lines := node.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			w.b.Write(seg.Value(w.source))
		}
		w.b.WriteString("```")
	default:
		if n.Type() == ast.TypeBlock && n.HasChildren() {
			w.blocks(n)
			return
		}
		w.inlines(n)
	}
}

func (w *typstWriter) list(l *ast.List) {
	marker := "- "
	if l.IsOrdered() {
		marker = "+ "
	}
	first := true
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		if !first {
			w.b.WriteByte('\n')
		}
		first = false
		w.b.WriteString(marker)
		w.inlineBlocks(item)
	}
}

// inlineBlocks renders the children of a list item on a single line.
func (w *typstWriter) inlineBlocks(item ast.Node) {
	first := true
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		if !first {
			w.b.WriteByte(' ')
		}
		first = false
		if l, ok := c.(*ast.List); ok {
			w.b.WriteByte('\n')
			var nested typstWriter
			nested.source = w.source
			nested.list(l)
			w.b.WriteString(indent(nested.b.String(), "  "))
			continue
		}
		w.inlines(c)
	}
}

func (w *typstWriter) inlines(parent ast.Node) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		w.inline(n)
	}
}

func (w *typstWriter) inline(n ast.Node) {
	switch node := n.(type) {
	case *ast.Text:
		w.text(plainText(node.Segment.Value(w.source)))
		if node.HardLineBreak() {
			w.b.WriteString(" \\\n")
		} else if node.SoftLineBreak() {
			w.b.WriteByte(' ')
		}
	case *ast.String:
		w.text(string(node.Value))
	case *ast.Emphasis:
		if node.Level >= 2 {
			w.b.WriteString("#strong[")
		} else {
			w.b.WriteString("#emph[")
		}
		w.inlines(node)
		w.b.WriteByte(']')
	case *ast.Link:
		w.b.WriteString(`#link("` + TypstString(string(node.Destination)) + `")[`)
		w.inlines(node)
		w.b.WriteByte(']')
	case *ast.AutoLink:
		url := string(node.URL(w.source))
		if node.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(url, "mailto:") {
			url = "mailto:" + url
		}
		w.b.WriteString(`#link("` + TypstString(url) + `")[` + EscapeTypst(string(node.Label(w.source))) + "]")
	case *ast.CodeSpan:
		w.b.WriteString("#raw(\"" + TypstString(inlineText(node, w.source)) + "\")")
	case *extast.Strikethrough:
		w.b.WriteString("#strike[")
		w.inlines(node)
		w.b.WriteByte(']')
	case *ast.Image:
		// Images have no place in a CV line; keep the alt text.
		w.inlines(node)
	case *ast.RawHTML:
		segs := node.Segments
		for i := 0; i < segs.Len(); i++ {
			seg := segs.At(i)
			w.b.WriteString(EscapeTypst(string(seg.Value(w.source))))
		}
	default:
		w.inlines(n)
	}
}

// text writes escaped plain text. A leading slash is escaped when the
// output already ends with one, so adjacent text nodes never form "//".
func (w *typstWriter) text(s string) {
	if strings.HasPrefix(s, "/") && strings.HasSuffix(w.b.String(), "/") {
		w.b.WriteByte('\\')
	}
	w.b.WriteString(EscapeTypst(s))
}

// plainText resolves backslash escapes and entity references the way an
// HTML renderer would, leaving the literal characters.
func plainText(raw []byte) string {
	v := util.UnescapePunctuations(raw)
	v = util.ResolveNumericReferences(v)
	v = util.ResolveEntityNames(v)
	return string(v)
}

// inlineText concatenates the raw text of all descendants.
func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
