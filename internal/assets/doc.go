// Package assets provides the document templates and HTML styles used to
// render CVs. Assets can be loaded from embedded files or from a directory
// on disk that overrides them.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in templates)
//	    ├── FilesystemLoader  - loads from a directory on disk (user overrides)
//	    └── SearchPath        - ordered loaders, first hit wins
//
// A SearchPath is built per override root: the directory that holds the
// input file comes first, the embedded templates come last. Lookups take an
// ordered list of candidate paths and return a typed Lookup describing
// which loader and candidate matched, or that none did.
//
// # Directory Structure
//
// Templates are addressed by slash-separated relative paths:
//
//	{root}/
//	├── typst/
//	│   ├── Preamble.tmpl.typ
//	│   ├── Header.tmpl.typ
//	│   ├── SectionBeginning.tmpl.typ
//	│   ├── SectionEnding.tmpl.typ
//	│   └── entries/
//	│       └── {entry-kind}.tmpl.typ
//	├── markdown/ ...            # same layout, .tmpl.md
//	├── html/Full.tmpl.html
//	└── {theme}/                 # theme-scoped Typst overrides
//	        └── Header.tmpl.typ
//
// Styles live under styles/{name}.css.
//
// # Security
//
// Template paths are validated to prevent traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within its root.
package assets
