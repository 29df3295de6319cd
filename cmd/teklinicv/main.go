package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-teklinicv/internal/fileutil"
	"github.com/alnah/go-teklinicv/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command line and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch {
	case isCommand(cmd, "render"):
		return runRenderCmd(rest, env)
	case isCommand(cmd, "doctor"):
		return runDoctorCmd(rest, env)
	case isCommand(cmd, "completion"):
		if err := runCompletion(rest, env); err != nil {
			fmt.Fprintln(env.Stderr, err)
			return ExitUsage
		}
		return ExitSuccess
	case isCommand(cmd, "version", "--version"):
		fmt.Fprintf(env.Stdout, "teklinicv %s\n", Version)
		return ExitSuccess
	case isCommand(cmd, "help", "-h", "--help"):
		runHelp(rest, env)
		return ExitSuccess
	case fileutil.IsFilePath(cmd):
		// "teklinicv cv.yaml" is shorthand for "teklinicv render cv.yaml".
		return runRenderCmd(args[1:], env)
	}

	fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
	printUsage(env.Stderr)
	return ExitUsage
}

// runRenderCmd parses render flags and renders every input file.
func runRenderCmd(args []string, env *Environment) int {
	flags, inputs, err := parseRenderFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}
	if err := validateWorkers(flags.workers); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	if err := validateCacheSize(flags.cacheSize); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	if len(inputs) == 0 {
		fmt.Fprintf(env.Stderr, "%v%s\n", ErrNoInput, hints.ForInputNotFound(nil))
		return exitCodeFor(ErrNoInput)
	}

	logger := newLogger(env.Stderr, flags.common.verbose, flags.common.quiet)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug().Msgf(format, args...)
	}))

	poolSize := resolvePoolSize(flags.workers)
	logger.Debug().Int("workers", poolSize).Int("inputs", len(inputs)).Msg("starting render")

	pool := NewRendererPool(poolSize, rendererOptions(flags, logger)...)
	defer pool.Close()

	ctx, stop := notifyContext(context.Background())
	defer stop()

	results := renderBatch(ctx, pool, inputs, flags.output, env)
	return printResults(results, flags.common, env)
}

// isCommand reports whether arg names one of the given commands.
func isCommand(arg string, names ...string) bool {
	for _, n := range names {
		if arg == n {
			return true
		}
	}
	return false
}
