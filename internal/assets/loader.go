package assets

// AssetLoader defines the contract for loading templates and styles.
// Implementations may load from embedded assets, a directory on disk, etc.
type AssetLoader interface {
	// LoadTemplate loads a template by slash-separated relative path
	// (e.g. "typst/entries/experience-entry.tmpl.typ").
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidTemplatePath if the path is unsafe.
	LoadTemplate(path string) (string, error)

	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// Source identifies the loader in logs and error messages.
	Source() string
}
