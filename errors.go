package teklinicv

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-teklinicv/internal/assets"
	"github.com/alnah/go-teklinicv/internal/yamlutil"
)

// Sentinel errors for library operations.
var (
	ErrUnknownFormat = errors.New("unknown output format")
	ErrNilModel      = errors.New("model cannot be nil")

	// Template errors. ErrTemplateNotFound and ErrStyleNotFound are shared
	// with custom AssetLoader implementations.
	ErrTemplateNotFound         = assets.ErrTemplateNotFound
	ErrStyleNotFound            = assets.ErrStyleNotFound
	ErrTemplateParse            = errors.New("template parsing failed")
	ErrTemplateRender           = errors.New("template rendering failed")
	ErrMissingTemplateVariable  = errors.New("template references an undefined variable")
	ErrReservedTemplateVariable = errors.New("template variable name is reserved")

	// Design validation errors.
	ErrInvalidDesign   = errors.New("invalid design")
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidMargin   = errors.New("invalid margin")

	// Input errors.
	ErrReadInput      = errors.New("failed to read input file")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnknownNetwork = errors.New("unknown social network")

	// Output errors.
	ErrReadMarkdown = errors.New("failed to read markdown output")
	ErrWriteOutput  = errors.New("failed to write output file")
)

// Span is a position range in the input file, 1-based.
type Span struct {
	Start yamlutil.Position
	End   yamlutil.Position
}

// ValidationError reports one invalid value in the input.
type ValidationError struct {
	// Location is the path of keys and indices to the offending value,
	// e.g. ["cv", "sections", "experience", "0", "start_date"].
	Location []string
	// Span is the value's position in the input file, when known.
	Span *Span
	// Message describes the problem.
	Message string
	// Input is the offending value as written.
	Input string
}

// Error implements error.
func (e *ValidationError) Error() string {
	var b strings.Builder
	if len(e.Location) > 0 {
		b.WriteString(strings.Join(e.Location, "."))
		if e.Span != nil {
			fmt.Fprintf(&b, " (line %d)", e.Span.Start.Line)
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Input != "" {
		fmt.Fprintf(&b, " (got %q)", e.Input)
	}
	return b.String()
}

// Unwrap lets errors.Is(err, ErrInvalidInput) match any validation error.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// ValidationErrors collects every validation problem found in one input.
type ValidationErrors []*ValidationError

// Error implements error.
func (es ValidationErrors) Error() string {
	if len(es) == 1 {
		return es[0].Error()
	}
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = "  - " + e.Error()
	}
	return fmt.Sprintf("%d validation errors:\n%s", len(es), strings.Join(msgs, "\n"))
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (es ValidationErrors) Unwrap() []error {
	out := make([]error, len(es))
	for i, e := range es {
		out[i] = e
	}
	return out
}
