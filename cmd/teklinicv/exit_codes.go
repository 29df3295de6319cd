package main

import (
	"errors"
	"os"

	teklinicv "github.com/alnah/go-teklinicv"
)

// Exit codes for the teklinicv CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Every input rendered
	ExitGeneral = 1 // General/unexpected error, including template defects
	ExitUsage   = 2 // Invalid flags or invalid CV content
	ExitIO      = 3 // File not found, permission denied, write failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, teklinicv.ErrReadInput) ||
		errors.Is(err, teklinicv.ErrReadMarkdown) ||
		errors.Is(err, teklinicv.ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/validation errors (exit 2)
	if errors.Is(err, teklinicv.ErrInvalidInput) ||
		errors.Is(err, teklinicv.ErrInvalidDesign) ||
		errors.Is(err, teklinicv.ErrInvalidPageSize) ||
		errors.Is(err, teklinicv.ErrInvalidMargin) ||
		errors.Is(err, teklinicv.ErrUnknownNetwork) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidCacheSize) {
		return ExitUsage
	}

	return ExitGeneral
}

// worstExitCode picks the exit code reported for a batch: I/O failures
// outrank usage errors, which outrank general ones.
func worstExitCode(errs []error) int {
	code := ExitSuccess
	for _, err := range errs {
		switch c := exitCodeFor(err); {
		case c == ExitIO:
			return ExitIO
		case c == ExitUsage:
			code = ExitUsage
		case c == ExitGeneral && code == ExitSuccess:
			code = ExitGeneral
		}
	}
	return code
}
