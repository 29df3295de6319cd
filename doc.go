// Package teklinicv renders a CV described in YAML into Typst, Markdown and
// HTML documents.
//
// # Quick Start
//
// Load and validate an input file, then write every enabled format:
//
//	m, err := teklinicv.LoadFile("cv.yaml", time.Now())
//	if err != nil {
//	    log.Fatal(err) // teklinicv.ValidationErrors lists every problem
//	}
//
//	r := teklinicv.NewRenderer()
//	artifacts, err := r.Generate(ctx, m)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(artifacts.Typst, artifacts.Markdown, artifacts.HTML)
//
// The Typst file is meant to be compiled with "typst compile"; the package
// never runs external programs.
//
// # Rendering Pipeline
//
// Each format goes through the same stages:
//
//  1. Model processing: a deep copy of the model gets its prose fields run
//     through the string processors (keyword emphasis, then Markdown to
//     Typst for Typst output), dates rendered with the locale, and the
//     header connections, top note and footer derived.
//  2. Assembly: templates are rendered for the preamble (Typst only), the
//     header, and each section's beginning, entries and ending, then joined
//     with blank lines.
//  3. Output: the document is written atomically. HTML is produced from the
//     Markdown document via Goldmark and wrapped in the html/Full template
//     with the design's style sheet.
//
// The input Model is never modified.
//
// # Templates
//
// Templates use text/template and live at {format}/{Name}.tmpl.{ext}, with
// entry templates under {format}/entries/{kind}.tmpl.{ext}. Typst templates
// are looked up in the theme directory ({theme}/{Name}.tmpl.typ) first.
//
// A template placed next to the input file overrides the built-in one:
//
//	cv.yaml
//	markdown/
//	└── entries/
//	    └── experience-entry.tmpl.md
//
// Templates see the keys cv, design, locale and settings, plus
// section_title, snake_case_section_title, entry_type and entry while
// rendering sections. Referencing an undefined key is an error.
//
// # Concurrency
//
// A Renderer is safe for concurrent use. It keeps one template environment
// per override directory in a small LRU cache (see WithCacheSize).
package teklinicv
