package assets

import (
	"embed"
	"fmt"
)

//go:embed styles/*
var styles embed.FS

//go:embed templates
var templates embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTemplate loads a built-in template by relative path.
func (e *EmbeddedLoader) LoadTemplate(path string) (string, error) {
	if err := ValidateTemplatePath(path); err != nil {
		return "", err
	}
	content, err := templates.ReadFile("templates/" + path)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, path)
	}
	return string(content), nil
}

// LoadStyle loads a CSS style from embedded assets by name.
// The name should not include the .css extension.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(content), nil
}

// Source implements AssetLoader.
func (e *EmbeddedLoader) Source() string {
	return "built-in"
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
