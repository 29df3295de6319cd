// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrEmptyPath = errors.New("path cannot be empty")
)

// WriteFileAtomic writes content to path through a temporary file in the
// same directory followed by a rename, so readers never observe a partial
// file. Missing parent directories are created.
func WriteFileAtomic(path, content string, perm os.FileMode) error {
	if path == "" {
		return ErrEmptyPath
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	pattern := "." + filepath.Base(path) + ".*.tmp"
	tmpFile, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", writeErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		cleanup()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than
// a bare name. A string containing path separators (/, \) or a YAML
// extension is treated as a path.
//
// Examples:
//   - "cv" -> false (name)
//   - "cv.yaml" -> true (file in the working directory)
//   - "./jane/cv" -> true (relative path)
//   - "/absolute/cv.yml" -> true (absolute)
func IsFilePath(s string) bool {
	if strings.ContainsAny(s, "/\\") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}
