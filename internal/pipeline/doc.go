// Package pipeline converts a rendered Markdown CV into the HTML body used
// by the HTML generator.
//
// The stages are:
//   - Markdown preprocessing (line normalization, ==highlight== syntax)
//   - Markdown to HTML fragment conversion via Goldmark, with Chroma
//     class-based highlighting for code spans and blocks
//   - CSS injection into the final HTML page
//
// The page itself (head, metadata) comes from the html/Full template of
// the root teklinicv package; this package only produces and decorates
// fragments.
package pipeline
