package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

type flagType int

const (
	flagString flagType = iota
	flagBool
	flagInt
	flagFile
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	FileGlob string
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	FilePattern string // glob for file arguments, empty if none
}

// flagFileGlobs maps path flags to the extension they usually carry.
// Flag names, types and descriptions come from the FlagSet.
var flagFileGlobs = map[string]string{
	"typst-path":    "*.typ",
	"markdown-path": "*.md",
	"html-path":     "*.html",
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef
	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage}
		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}
		if glob, ok := flagFileGlobs[f.Name]; ok {
			fd.Type = flagFile
			fd.FileGlob = glob
		}
		flags = append(flags, fd)
	})
	return flags
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:        "render",
			Desc:        "Render CV files to Typst, Markdown and HTML",
			Flags:       extractFlagsFromFlagSet(buildRenderFlagSet(&renderFlags{})),
			FilePattern: "*.yaml,*.yml",
		},
		{Name: "doctor", Desc: "Check the rendering environment"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
		{Name: "completion", Desc: "Generate shell completion script"},
	}
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w, getCommands())
	case ShellZsh:
		return generateZsh(w, getCommands())
	case ShellFish:
		return generateFish(w, getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: teklinicv completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(teklinicv completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(teklinicv completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    teklinicv completion fish > ~/.config/fish/completions/teklinicv.fish")
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

// globExtensions turns "*.yaml,*.yml" into "yaml|yml".
func globExtensions(glob string) string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		exts = append(exts, strings.TrimPrefix(g, "*."))
	}
	return strings.Join(exts, "|")
}

func generateBash(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	b.WriteString("# bash completion for teklinicv\n")
	b.WriteString("_teklinicv_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\") $(compgen -f -X '!*.@(yaml|yml)' -- \"${cur}\"))\n", commandNames(cmds))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${cmd}\" in\n")
	for _, c := range cmds {
		switch {
		case c.Name == "completion":
			b.WriteString("    completion)\n")
			b.WriteString("        COMPREPLY=($(compgen -W \"bash zsh fish\" -- \"${cur}\"))\n")
			b.WriteString("        ;;\n")
		case c.Name == "help":
			b.WriteString("    help)\n")
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", commandNames(cmds))
			b.WriteString("        ;;\n")
		case len(c.Flags) > 0:
			fmt.Fprintf(&b, "    %s|*.yaml|*.yml)\n", c.Name)
			b.WriteString("        case \"${prev}\" in\n")
			for _, f := range c.Flags {
				if f.Type != flagFile {
					continue
				}
				fmt.Fprintf(&b, "        --%s)\n", f.Long)
				fmt.Fprintf(&b, "            COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"${cur}\"))\n", globExtensions(f.FileGlob))
				b.WriteString("            return\n")
				b.WriteString("            ;;\n")
			}
			b.WriteString("        esac\n")
			var opts []string
			for _, f := range c.Flags {
				opts = append(opts, "--"+f.Long)
				if f.Short != "" {
					opts = append(opts, "-"+f.Short)
				}
			}
			b.WriteString("        if [[ \"${cur}\" == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", strings.Join(opts, " "))
			b.WriteString("        else\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"${cur}\"))\n", globExtensions(c.FilePattern))
			b.WriteString("        fi\n")
			b.WriteString("        ;;\n")
		}
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("shopt -s extglob\n")
	b.WriteString("complete -o filenames -F _teklinicv_completions teklinicv\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshEscape escapes characters that end a zsh _arguments description.
func zshEscape(s string) string {
	r := strings.NewReplacer("[", "\\[", "]", "\\]", ":", "\\:", "'", "'\\''")
	return r.Replace(s)
}

func generateZsh(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	b.WriteString("#compdef teklinicv\n\n")
	b.WriteString("_teklinicv() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        _files -g '*.(yaml|yml)'\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")
	for _, c := range cmds {
		switch {
		case c.Name == "completion":
			b.WriteString("    completion)\n")
			b.WriteString("        _values 'shell' bash zsh fish\n")
			b.WriteString("        ;;\n")
		case c.Name == "help":
			b.WriteString("    help)\n")
			b.WriteString("        _describe 'command' commands\n")
			b.WriteString("        ;;\n")
		case len(c.Flags) > 0:
			fmt.Fprintf(&b, "    %s|*.yaml|*.yml)\n", c.Name)
			b.WriteString("        _arguments \\\n")
			for _, f := range c.Flags {
				action := ""
				switch f.Type {
				case flagFile:
					action = fmt.Sprintf(":path:_files -g \"%s\"", f.FileGlob)
				case flagInt:
					action = ":number:"
				case flagString:
					action = ":value:"
				}
				desc := zshEscape(f.Desc)
				if f.Short != "" {
					fmt.Fprintf(&b, "            '(-%s --%s)'{-%s,--%s}'[%s]%s' \\\n", f.Short, f.Long, f.Short, f.Long, desc, action)
				} else {
					fmt.Fprintf(&b, "            '--%s[%s]%s' \\\n", f.Long, desc, action)
				}
			}
			fmt.Fprintf(&b, "            '*:input:_files -g \"*.(%s)\"'\n", globExtensions(c.FilePattern))
			b.WriteString("        ;;\n")
		}
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _teklinicv teklinicv\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func generateFish(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	b.WriteString("# fish completion for teklinicv\n\n")
	b.WriteString("function __fish_teklinicv_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_teklinicv_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test \"$cmd[2]\" = \"$argv[1]\"\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c teklinicv -f\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c teklinicv -n __fish_teklinicv_needs_command -a %s -d '%s'\n", c.Name, c.Desc)
	}
	b.WriteString("complete -c teklinicv -n __fish_teklinicv_needs_command -k -a '(__fish_complete_suffix .yaml .yml)'\n")

	for _, c := range cmds {
		switch {
		case c.Name == "completion":
			b.WriteString("complete -c teklinicv -n '__fish_teklinicv_using_command completion' -a 'bash zsh fish'\n")
		case c.Name == "help":
			fmt.Fprintf(&b, "complete -c teklinicv -n '__fish_teklinicv_using_command help' -a '%s'\n", commandNames(cmds))
		case len(c.Flags) > 0:
			cond := fmt.Sprintf("'__fish_teklinicv_using_command %s'", c.Name)
			for _, f := range c.Flags {
				fmt.Fprintf(&b, "complete -c teklinicv -n %s -l %s", cond, f.Long)
				if f.Short != "" {
					fmt.Fprintf(&b, " -s %s", f.Short)
				}
				switch f.Type {
				case flagFile:
					b.WriteString(" -r -F")
				case flagInt, flagString:
					b.WriteString(" -r")
				}
				fmt.Fprintf(&b, " -d '%s'\n", strings.ReplaceAll(f.Desc, "'", "\\'"))
			}
			fmt.Fprintf(&b, "complete -c teklinicv -n %s -k -a '(__fish_complete_suffix .yaml .yml)'\n", cond)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
