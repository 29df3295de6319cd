package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	teklinicv "github.com/alnah/go-teklinicv"
	"github.com/alnah/go-teklinicv/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidCacheSize   = errors.New("invalid template cache size")
)

// maxWorkers caps --workers.
const maxWorkers = 32

// CVRenderer is the part of teklinicv.Renderer the CLI drives.
type CVRenderer interface {
	Generate(ctx context.Context, m *teklinicv.Model) (teklinicv.Artifacts, error)
}

// Compile-time interface implementation check.
var _ CVRenderer = (*teklinicv.Renderer)(nil)

// Pool abstracts renderer pool operations for testability.
type Pool interface {
	Acquire() CVRenderer
	Release(CVRenderer)
	Size() int
}

// RenderResult holds the outcome of rendering one input file.
type RenderResult struct {
	InputPath string
	Artifacts teklinicv.Artifacts
	Err       error
	Duration  time.Duration
}

// renderBatch renders every input concurrently using the pool. Results keep
// the order of inputs.
func renderBatch(ctx context.Context, pool Pool, inputs []string, out outputFlags, env *Environment) []RenderResult {
	if len(inputs) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(inputs))
	results := make([]RenderResult, len(inputs))
	jobs := make(chan int, len(inputs))
	var wg sync.WaitGroup

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			r := pool.Acquire()
			defer pool.Release(r)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = RenderResult{InputPath: inputs[idx], Err: ctx.Err()}
					continue
				}
				results[idx] = renderFile(ctx, r, inputs[idx], out, env)
			}
		}()
	}

	for i := range inputs {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile loads one CV file, applies the command-line output overrides
// and writes every enabled format.
func renderFile(ctx context.Context, r CVRenderer, path string, out outputFlags, env *Environment) RenderResult {
	start := time.Now()
	result := RenderResult{InputPath: path}

	m, err := teklinicv.LoadFile(path, env.Now())
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	applyOutputFlags(&m.Settings.RenderCommand, out)

	result.Artifacts, result.Err = r.Generate(ctx, m)
	result.Duration = time.Since(start)
	return result
}

// applyOutputFlags lets command-line flags win over the file's
// settings.render_command.
func applyOutputFlags(rc *teklinicv.RenderCommand, out outputFlags) {
	if out.typstPath != "" {
		rc.TypstPath = out.typstPath
	}
	if out.markdownPath != "" {
		rc.MarkdownPath = out.markdownPath
	}
	if out.htmlPath != "" {
		rc.HTMLPath = out.htmlPath
	}
	rc.DontGenerateTypst = rc.DontGenerateTypst || out.dontGenerateTypst
	rc.DontGenerateMarkdown = rc.DontGenerateMarkdown || out.dontGenerateMarkdown
	rc.DontGenerateHTML = rc.DontGenerateHTML || out.dontGenerateHTML
}

// validateWorkers checks the --workers flag.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

// validateCacheSize checks the --template-cache flag.
func validateCacheSize(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidCacheSize, n)
	}
	return nil
}

// rendererOptions builds the renderer options for the flags.
func rendererOptions(flags *renderFlags, logger zerolog.Logger) []teklinicv.Option {
	opts := []teklinicv.Option{teklinicv.WithLogger(logger)}
	if flags.cacheSize > 0 {
		opts = append(opts, teklinicv.WithCacheSize(flags.cacheSize))
	}
	return opts
}

// ResultSummary holds the count of succeeded and failed renders.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed renders.
func countResults(results []RenderResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs render results and returns the exit code of the
// batch.
func printResults(results []RenderResult, common commonFlags, env *Environment) int {
	summary := countResults(results)
	var errs []error

	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.InputPath, r.Err))
			continue
		}
		if common.quiet {
			continue
		}

		for _, path := range []string{r.Artifacts.Typst, r.Artifacts.Markdown, r.Artifacts.HTML} {
			if path != "" {
				fmt.Fprintf(env.Stdout, "Created %s\n", path)
			}
		}
		if common.verbose {
			fmt.Fprintf(env.Stdout, "%s rendered in %v%s\n",
				r.InputPath, r.Duration.Round(time.Millisecond), hints.ForTypstCompile(r.Artifacts.Typst))
		}
	}

	if !common.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}
	return worstExitCode(errs)
}

// hintFor picks the actionable hint for a failed render.
func hintFor(input string, err error) string {
	var notFound *teklinicv.TemplateNotFoundError
	var invalid teklinicv.ValidationErrors

	switch {
	case errors.Is(err, teklinicv.ErrReadInput):
		return hints.ForInputNotFound(teklinicv.InputCandidates(input))
	case errors.As(err, &invalid):
		for _, e := range invalid {
			if n := len(e.Location); n > 0 && e.Location[n-1] == "network" {
				return hints.ForValidation() + hints.ForUnknownNetwork(teklinicv.KnownNetworks())
			}
		}
		return hints.ForValidation()
	case errors.As(err, &notFound):
		return hints.ForTemplateNotFound(notFound.Attempted)
	case errors.Is(err, teklinicv.ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
