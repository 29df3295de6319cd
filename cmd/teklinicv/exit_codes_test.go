package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	teklinicv "github.com/alnah/go-teklinicv"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read input", teklinicv.ErrReadInput, ExitIO},
		{"read markdown", teklinicv.ErrReadMarkdown, ExitIO},
		{"write output", teklinicv.ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"wrapped write output", fmt.Errorf("writing: %w", teklinicv.ErrWriteOutput), ExitIO},

		// Usage/validation errors (exit 2)
		{"invalid input", teklinicv.ErrInvalidInput, ExitUsage},
		{"validation errors", teklinicv.ValidationErrors{{Message: "bad"}}, ExitUsage},
		{"invalid design", teklinicv.ErrInvalidDesign, ExitUsage},
		{"invalid page size", teklinicv.ErrInvalidPageSize, ExitUsage},
		{"invalid margin", teklinicv.ErrInvalidMargin, ExitUsage},
		{"unknown network", teklinicv.ErrUnknownNetwork, ExitUsage},
		{"invalid worker count", ErrInvalidWorkerCount, ExitUsage},
		{"invalid cache size", ErrInvalidCacheSize, ExitUsage},

		// General errors (exit 1)
		{"template not found", teklinicv.ErrTemplateNotFound, ExitGeneral},
		{"template render", teklinicv.ErrTemplateRender, ExitGeneral},
		{"unknown error", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWorstExitCode - Batch exit code
// ---------------------------------------------------------------------------

func TestWorstExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		errs []error
		want int
	}{
		{"no errors", nil, ExitSuccess},
		{"general only", []error{errors.New("x")}, ExitGeneral},
		{"usage beats general", []error{errors.New("x"), teklinicv.ErrInvalidInput}, ExitUsage},
		{"io beats usage", []error{teklinicv.ErrInvalidInput, teklinicv.ErrReadInput}, ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := worstExitCode(tt.errs); got != tt.want {
				t.Errorf("worstExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitCodes_UnixConventions(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("standard exit codes changed: %d %d %d", ExitSuccess, ExitGeneral, ExitUsage)
	}
	for _, code := range []int{ExitIO} {
		if code >= 126 {
			t.Errorf("custom exit code %d must be below 126", code)
		}
	}
}
