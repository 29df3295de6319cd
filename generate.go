package teklinicv

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/alnah/go-teklinicv/internal/assets"
	"github.com/alnah/go-teklinicv/internal/fileutil"
	"github.com/alnah/go-teklinicv/internal/pipeline"
)

// AssetLoader supplies the built-in templates and styles. Implementations
// must report absent assets with ErrTemplateNotFound or ErrStyleNotFound
// so lookups fall through to the next candidate.
type AssetLoader interface {
	LoadTemplate(path string) (string, error)
	LoadStyle(name string) (string, error)
	Source() string
}

// outputFileMode is the permission of generated files.
const outputFileMode = 0o644

// Renderer turns models into documents. A Renderer is safe for concurrent
// use; it caches one template environment per override root.
type Renderer struct {
	builtin   AssetLoader
	cacheSize int
	envs      *environmentCache
	logger    zerolog.Logger

	converter pipeline.HTMLConverter
	injector  pipeline.CSSInjector
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger receiving debug events. The default logger
// discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Renderer) {
		r.logger = l
	}
}

// WithCacheSize sets how many override roots keep a cached environment.
// Panics if n < 1 (programmer error, similar to time.NewTicker).
func WithCacheSize(n int) Option {
	if n < 1 {
		panic("teklinicv: WithCacheSize size must be positive")
	}
	return func(r *Renderer) {
		r.cacheSize = n
	}
}

// WithTemplateLoader replaces the embedded built-in templates and styles.
func WithTemplateLoader(l AssetLoader) Option {
	return func(r *Renderer) {
		r.builtin = l
	}
}

// NewRenderer creates a Renderer backed by the embedded templates.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		builtin:   assets.NewEmbeddedLoader(),
		cacheSize: DefaultCacheSize,
		logger:    zerolog.Nop(),
		converter: pipeline.NewGoldmarkConverter(),
		injector:  &pipeline.CSSInjection{},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.envs = newEnvironmentCache(r.cacheSize)
	return r
}

// Environment returns the template environment for m's override root.
func (r *Renderer) Environment(m *Model) *Environment {
	return r.envs.get(m.OverrideRoot(), func(root string) *Environment {
		r.logger.Debug().Str("root", root).Msg("creating template environment")
		return NewEnvironment(root, r.builtin, r.logger)
	})
}

// Render processes m for f and assembles the full document. HTML is
// rendered from the Markdown document.
func (r *Renderer) Render(ctx context.Context, m *Model, f Format) (string, error) {
	if m == nil {
		return "", ErrNilModel
	}
	if f == FormatHTML {
		markdown, err := r.Render(ctx, m, FormatMarkdown)
		if err != nil {
			return "", err
		}
		return r.RenderHTML(ctx, m, markdown)
	}

	processed, err := ProcessModel(m, f)
	if err != nil {
		return "", err
	}
	return assemble(ctx, r.Environment(m), processed, f)
}

// RenderHTML converts a rendered Markdown document into a complete HTML
// page: the Markdown becomes the body of the html/Full template and the
// design's style sheet is injected into the head.
func (r *Renderer) RenderHTML(ctx context.Context, m *Model, markdown string) (string, error) {
	processed, err := ProcessModel(m, FormatHTML)
	if err != nil {
		return "", err
	}

	body, err := r.converter.ToHTML(ctx, markdown)
	if err != nil {
		return "", err
	}

	env := r.Environment(m)
	page, err := env.Render(FormatHTML, processed.Design.Theme, TemplateFull, processed, map[string]any{
		"html_body": body,
	})
	if err != nil {
		return "", err
	}

	if style := processed.Design.HTMLStyle; style != "" {
		css, err := env.search.LoadStyle(style)
		if err != nil {
			return "", fmt.Errorf("loading html style: %w", err)
		}
		page = r.injector.InjectCSS(ctx, page, css)
	}
	return page + "\n", nil
}

// GenerateTypst renders and writes the Typst file. It returns the written
// path, or "" when Typst generation is disabled.
func (r *Renderer) GenerateTypst(ctx context.Context, m *Model) (string, error) {
	return r.generate(ctx, m, FormatTypst, m.Settings.RenderCommand.DontGenerateTypst, m.Settings.RenderCommand.TypstPath)
}

// GenerateMarkdown renders and writes the Markdown file. It returns the
// written path, or "" when Markdown generation is disabled.
func (r *Renderer) GenerateMarkdown(ctx context.Context, m *Model) (string, error) {
	return r.generate(ctx, m, FormatMarkdown, m.Settings.RenderCommand.DontGenerateMarkdown, m.Settings.RenderCommand.MarkdownPath)
}

// GenerateHTML converts the Markdown file at markdownPath into the HTML
// file. It returns "" when HTML generation is disabled or markdownPath is
// empty because Markdown generation was skipped.
func (r *Renderer) GenerateHTML(ctx context.Context, m *Model, markdownPath string) (string, error) {
	if m == nil {
		return "", ErrNilModel
	}
	if m.Settings.RenderCommand.DontGenerateHTML || markdownPath == "" {
		r.logger.Debug().Str("format", string(FormatHTML)).Msg("generation skipped")
		return "", nil
	}

	markdown, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}
	path, err := ResolveOutputPath(m, m.Settings.RenderCommand.HTMLPath, FormatHTML)
	if err != nil {
		return "", err
	}
	page, err := r.RenderHTML(ctx, m, string(markdown))
	if err != nil {
		return "", err
	}
	return r.write(path, page, FormatHTML)
}

func (r *Renderer) generate(ctx context.Context, m *Model, f Format, disabled bool, pathTemplate string) (string, error) {
	if m == nil {
		return "", ErrNilModel
	}
	if disabled {
		r.logger.Debug().Str("format", string(f)).Msg("generation skipped")
		return "", nil
	}

	path, err := ResolveOutputPath(m, pathTemplate, f)
	if err != nil {
		return "", err
	}
	doc, err := r.Render(ctx, m, f)
	if err != nil {
		return "", err
	}
	return r.write(path, doc, f)
}

func (r *Renderer) write(path, content string, f Format) (string, error) {
	if err := fileutil.WriteFileAtomic(path, content, outputFileMode); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
	}
	r.logger.Info().Str("format", string(f)).Str("path", path).Msg("wrote output")
	return path, nil
}

// Artifacts are the paths written by Generate. Skipped formats are empty.
type Artifacts struct {
	Typst    string
	Markdown string
	HTML     string
}

// Generate writes every enabled format in order: Typst, Markdown, then
// HTML from the Markdown file.
func (r *Renderer) Generate(ctx context.Context, m *Model) (Artifacts, error) {
	var a Artifacts
	var err error

	if a.Typst, err = r.GenerateTypst(ctx, m); err != nil {
		return a, err
	}
	if a.Markdown, err = r.GenerateMarkdown(ctx, m); err != nil {
		return a, err
	}
	if a.HTML, err = r.GenerateHTML(ctx, m, a.Markdown); err != nil {
		return a, err
	}
	return a, nil
}
