package assets

import (
	"errors"
	"fmt"
)

// SearchPath tries an ordered list of loaders; the first loader that has a
// candidate wins. Only "not found" errors fall through to the next loader;
// validation and I/O errors stop the search.
type SearchPath struct {
	loaders []AssetLoader
}

// NewSearchPath creates a SearchPath over loaders in priority order.
func NewSearchPath(loaders ...AssetLoader) *SearchPath {
	return &SearchPath{loaders: loaders}
}

// NewOverrideSearchPath builds the standard two-tier search path: the
// override directory (skipped when empty or not a readable directory)
// followed by builtin.
func NewOverrideSearchPath(overrideRoot string, builtin AssetLoader) *SearchPath {
	var loaders []AssetLoader
	if overrideRoot != "" {
		if fs, err := NewFilesystemLoader(overrideRoot); err == nil {
			loaders = append(loaders, fs)
		}
	}
	return NewSearchPath(append(loaders, builtin)...)
}

// Lookup is the outcome of resolving a list of candidates.
type Lookup struct {
	Found     bool
	Path      string // candidate that matched
	Source    string // loader that matched
	Content   string
	Attempted []string // "source:path" pairs tried, in order
}

// Resolve tries each candidate against every loader of the search path,
// candidate-major: all loaders are consulted for the first candidate
// before the second candidate is tried. A miss on every pair is reported
// as Lookup{Found: false} with a nil error.
func (s *SearchPath) Resolve(candidates ...string) (Lookup, error) {
	var result Lookup
	for _, candidate := range candidates {
		for _, loader := range s.loaders {
			result.Attempted = append(result.Attempted, loader.Source()+":"+candidate)

			content, err := loader.LoadTemplate(candidate)
			if err == nil {
				result.Found = true
				result.Path = candidate
				result.Source = loader.Source()
				result.Content = content
				return result, nil
			}
			if !isNotFoundError(err) {
				return result, fmt.Errorf("loading %q from %s: %w", candidate, loader.Source(), err)
			}
		}
	}
	return result, nil
}

// LoadStyle loads a CSS style from the first loader that has it.
func (s *SearchPath) LoadStyle(name string) (string, error) {
	var lastErr error = fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	for _, loader := range s.loaders {
		css, err := loader.LoadStyle(name)
		if err == nil {
			return css, nil
		}
		if !isNotFoundError(err) {
			return "", err
		}
		lastErr = err
	}
	return "", lastErr
}

// isNotFoundError checks if the error indicates the asset was not found.
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateNotFound)
}
