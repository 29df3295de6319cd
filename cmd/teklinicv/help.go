package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: teklinicv <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render CV files to Typst, Markdown and HTML")
	fmt.Fprintln(w, "  doctor     Check the rendering environment")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'teklinicv help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: teklinicv render <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render CV files to Typst, Markdown and HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    YAML CV file (.yaml/.yml may be omitted)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "      --typst-path <path>       Typst output path")
	fmt.Fprintln(w, "      --markdown-path <path>    Markdown output path")
	fmt.Fprintln(w, "      --html-path <path>        HTML output path")
	fmt.Fprintln(w, "                                Placeholders: NAME, NAME_IN_SNAKE_CASE,")
	fmt.Fprintln(w, "                                NAME_IN_KEBAB_CASE, YEAR, MONTH_NAME, DAY")
	fmt.Fprintln(w, "      --dont-generate-typst     Skip the Typst file")
	fmt.Fprintln(w, "      --dont-generate-markdown  Skip the Markdown file (and HTML)")
	fmt.Fprintln(w, "      --dont-generate-html      Skip the HTML file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Performance:")
	fmt.Fprintln(w, "  -w, --workers <n>             Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --template-cache <n>      Template environments kept in memory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                   Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                 Show template lookups and timing")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: teklinicv doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check the typst compiler, the built-in templates and the temp directory.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: teklinicv version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: teklinicv help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
