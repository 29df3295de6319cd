package main

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	teklinicv "github.com/alnah/go-teklinicv"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Mock renderer and pool
// ---------------------------------------------------------------------------

type mockRenderer struct {
	calls atomic.Int32
	err   error
}

func (m *mockRenderer) Generate(_ context.Context, model *teklinicv.Model) (teklinicv.Artifacts, error) {
	m.calls.Add(1)
	if m.err != nil {
		return teklinicv.Artifacts{}, m.err
	}
	return teklinicv.Artifacts{Markdown: model.InputFilePath + ".md"}, nil
}

type mockPool struct {
	r    *mockRenderer
	size int
}

func (p *mockPool) Acquire() CVRenderer { return p.r }
func (p *mockPool) Release(CVRenderer)  {}
func (p *mockPool) Size() int           { return p.size }

// ---------------------------------------------------------------------------
// TestRenderBatch
// ---------------------------------------------------------------------------

func TestRenderBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inputs := []string{
		writeCV(t, dir, "a.yaml", sampleCV),
		writeCV(t, dir, "b.yaml", sampleCV),
		filepath.Join(dir, "missing.yaml"),
	}
	pool := &mockPool{r: &mockRenderer{}, size: 2}
	env, _, _ := testEnv()

	results := renderBatch(context.Background(), pool, inputs, outputFlags{}, env)

	if len(results) != len(inputs) {
		t.Fatalf("got %d results, want %d", len(results), len(inputs))
	}
	for i, r := range results {
		if r.InputPath != inputs[i] {
			t.Errorf("results[%d].InputPath = %q, want %q", i, r.InputPath, inputs[i])
		}
	}
	if results[0].Err != nil || results[1].Err != nil {
		t.Errorf("valid inputs failed: %v, %v", results[0].Err, results[1].Err)
	}
	if !errors.Is(results[2].Err, teklinicv.ErrReadInput) {
		t.Errorf("missing input error = %v, want ErrReadInput", results[2].Err)
	}
	if got := pool.r.calls.Load(); got != 2 {
		t.Errorf("Generate called %d times, want 2", got)
	}
}

func TestRenderBatch_CancelledContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inputs := []string{writeCV(t, dir, "a.yaml", sampleCV)}
	pool := &mockPool{r: &mockRenderer{}, size: 1}
	env, _, _ := testEnv()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := renderBatch(ctx, pool, inputs, outputFlags{}, env)
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("Err = %v, want context.Canceled", results[0].Err)
	}
	if got := pool.r.calls.Load(); got != 0 {
		t.Errorf("Generate called %d times after cancel, want 0", got)
	}
}

func TestRenderBatch_Empty(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv()
	if got := renderBatch(context.Background(), &mockPool{r: &mockRenderer{}, size: 1}, nil, outputFlags{}, env); got != nil {
		t.Errorf("renderBatch(nil) = %v, want nil", got)
	}
}

// ---------------------------------------------------------------------------
// TestApplyOutputFlags
// ---------------------------------------------------------------------------

func TestApplyOutputFlags(t *testing.T) {
	t.Parallel()

	t.Run("flags override paths and add skips", func(t *testing.T) {
		t.Parallel()

		rc := teklinicv.DefaultRenderCommand()
		applyOutputFlags(&rc, outputFlags{
			typstPath:        "out/cv.typ",
			dontGenerateHTML: true,
		})

		if rc.TypstPath != "out/cv.typ" {
			t.Errorf("TypstPath = %q, want flag value", rc.TypstPath)
		}
		if rc.MarkdownPath != teklinicv.DefaultMarkdownPath {
			t.Errorf("MarkdownPath = %q, want default", rc.MarkdownPath)
		}
		if !rc.DontGenerateHTML {
			t.Error("DontGenerateHTML should be set by the flag")
		}
	})

	t.Run("file skips survive unset flags", func(t *testing.T) {
		t.Parallel()

		rc := teklinicv.RenderCommand{DontGenerateTypst: true}
		applyOutputFlags(&rc, outputFlags{})
		if !rc.DontGenerateTypst {
			t.Error("DontGenerateTypst from the file should be kept")
		}
	})
}

// ---------------------------------------------------------------------------
// TestValidateWorkers
// ---------------------------------------------------------------------------

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{0, false},
		{1, false},
		{maxWorkers, false},
		{-1, true},
		{maxWorkers + 1, true},
	}
	for _, tt := range tests {
		err := validateWorkers(tt.n)
		if tt.wantErr != (err != nil) {
			t.Errorf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error = %v, want ErrInvalidWorkerCount", tt.n, err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestPrintResults
// ---------------------------------------------------------------------------

func TestPrintResults(t *testing.T) {
	t.Parallel()

	results := []RenderResult{
		{InputPath: "a.yaml", Artifacts: teklinicv.Artifacts{Typst: "a.typ", Markdown: "a.md"}, Duration: time.Millisecond},
		{InputPath: "b.yaml", Err: teklinicv.ErrWriteOutput},
	}

	t.Run("default", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv()
		code := printResults(results, commonFlags{}, env)

		if code != ExitIO {
			t.Errorf("printResults() = %d, want %d", code, ExitIO)
		}
		for _, want := range []string{"Created a.typ", "Created a.md", "1 succeeded, 1 failed"} {
			if !strings.Contains(stdout.String(), want) {
				t.Errorf("stdout should contain %q, got %q", want, stdout)
			}
		}
		if !strings.Contains(stderr.String(), "FAILED b.yaml") || !strings.Contains(stderr.String(), "hint:") {
			t.Errorf("stderr should report the failure with a hint, got %q", stderr)
		}
	})

	t.Run("quiet", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv()
		printResults(results, commonFlags{quiet: true}, env)

		if stdout.Len() != 0 {
			t.Errorf("quiet stdout = %q, want empty", stdout)
		}
		if !strings.Contains(stderr.String(), "FAILED b.yaml") {
			t.Errorf("quiet mode must still report failures, got %q", stderr)
		}
	})

	t.Run("verbose shows typst hint", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv()
		printResults(results[:1], commonFlags{verbose: true}, env)

		if !strings.Contains(stdout.String(), "typst compile a.typ") {
			t.Errorf("verbose stdout should suggest compiling, got %q", stdout)
		}
	})
}

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing input", teklinicv.ErrReadInput, "cv.yaml"},
		{"template not found", &teklinicv.TemplateNotFoundError{
			Name:      "Header",
			Attempted: []string{"/in:typst/Header.tmpl.typ", "built-in:typst/Header.tmpl.typ"},
		}, "add typst/Header.tmpl.typ next to the input file"},
		{"write output", teklinicv.ErrWriteOutput, "--typst-path"},
		{"unknown network", teklinicv.ValidationErrors{{
			Location: []string{"cv", "social_networks", "0", "network"},
			Message:  "unknown social network",
		}}, "LinkedIn"},
		{"other", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor("cv", tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("hintFor() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}
