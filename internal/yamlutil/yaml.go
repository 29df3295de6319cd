// Package yamlutil wraps YAML parsing to isolate the external dependency.
// Callers decode CV input and look up source positions through this package
// only, so the underlying YAML library can change without touching them.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/parser"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrPathNotFound   = errors.New("yamlutil: path not found")
)

// MapSlice is an insertion-ordered mapping. CV sections are decoded into it
// because their order is meaningful.
type MapSlice = yaml.MapSlice

// Position is a 1-based line/column location inside a YAML document.
type Position struct {
	Line   int
	Column int
}

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}

// Recode re-encodes a generic value (typically a map produced by Unmarshal)
// and decodes it strictly into v. Used to turn loosely typed entry maps into
// concrete entry structs while still rejecting unknown keys.
func Recode(in any, v any) error {
	data, err := Marshal(in)
	if err != nil {
		return err
	}
	return UnmarshalStrict(data, v)
}

// Document is a parsed YAML document used to map field paths back to source
// positions.
type Document struct {
	data []byte
}

// NewDocument wraps raw YAML bytes for position lookups.
func NewDocument(data []byte) *Document {
	return &Document{data: data}
}

// PositionOf returns the position of the node at path, where path is a
// sequence of mapping keys and decimal sequence indexes, e.g.
// ["cv", "sections", "experience", "0", "start_date"].
// Returns ErrPathNotFound if any segment does not resolve.
func (d *Document) PositionOf(path []string) (Position, error) {
	file, err := parser.ParseBytes(d.data, 0)
	if err != nil {
		return Position{}, fmt.Errorf("yamlutil: %w", err)
	}

	node, err := buildPath(path).FilterFile(file)
	if err != nil || node == nil {
		return Position{}, fmt.Errorf("%w: %v", ErrPathNotFound, path)
	}

	tok := node.GetToken()
	if tok == nil || tok.Position == nil {
		return Position{}, fmt.Errorf("%w: %v", ErrPathNotFound, path)
	}
	return Position{Line: tok.Position.Line, Column: tok.Position.Column}, nil
}

// buildPath turns key/index segments into a goccy path ($.cv.sections[0]).
func buildPath(path []string) *yaml.Path {
	b := (&yaml.PathBuilder{}).Root()
	for _, segment := range path {
		if idx, ok := parseIndex(segment); ok {
			b = b.Index(idx)
			continue
		}
		b = b.Child(segment)
	}
	return b.Build()
}

func parseIndex(s string) (uint, bool) {
	if s == "" {
		return 0, false
	}
	var n uint
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + uint(r-'0')
	}
	return n, true
}
