package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	quiet   bool
	verbose bool
}

// outputFlags override settings.render_command of every input file.
type outputFlags struct {
	typstPath    string
	markdownPath string
	htmlPath     string

	dontGenerateTypst    bool
	dontGenerateMarkdown bool
	dontGenerateHTML     bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common    commonFlags
	output    outputFlags
	workers   int
	cacheSize int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show template lookups and timing")
}

// addOutputFlags adds output path and generation flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVar(&f.typstPath, "typst-path", "", "Typst output path (placeholders allowed)")
	fs.StringVar(&f.markdownPath, "markdown-path", "", "Markdown output path (placeholders allowed)")
	fs.StringVar(&f.htmlPath, "html-path", "", "HTML output path (placeholders allowed)")
	fs.BoolVar(&f.dontGenerateTypst, "dont-generate-typst", false, "skip the Typst file")
	fs.BoolVar(&f.dontGenerateMarkdown, "dont-generate-markdown", false, "skip the Markdown file (and HTML)")
	fs.BoolVar(&f.dontGenerateHTML, "dont-generate-html", false, "skip the HTML file")
}

// buildRenderFlagSet registers every render flag on a new FlagSet bound to
// f. Completion scripts are generated from the same FlagSet.
func buildRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.IntVar(&f.cacheSize, "template-cache", 0, "template environments kept in memory (0 = default)")
	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := buildRenderFlagSet(f)
	fs.Usage = func() { printRenderUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
