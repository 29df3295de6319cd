package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-teklinicv/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Atomic writes
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out", "nested", "cv.typ")

	if err := fileutil.WriteFileAtomic(path, "= Jane", 0o644); err != nil {
		t.Fatalf("WriteFileAtomic() unexpected error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(got) != "= Jane" {
		t.Errorf("content = %q, want %q", got, "= Jane")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("reading directory: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the output file", len(entries))
	}
}

func TestWriteFileAtomic_Overwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cv.md")
	if err := os.WriteFile(path, []byte("old content that is longer"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := fileutil.WriteFileAtomic(path, "new", 0o644); err != nil {
		t.Fatalf("WriteFileAtomic() unexpected error: %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}
}

func TestWriteFileAtomic_EmptyPath(t *testing.T) {
	t.Parallel()

	if err := fileutil.WriteFileAtomic("", "x", 0o644); !errors.Is(err, fileutil.ErrEmptyPath) {
		t.Errorf("WriteFileAtomic(\"\") error = %v, want ErrEmptyPath", err)
	}
}

// ---------------------------------------------------------------------------
// TestFileExists / TestIsFilePath
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "cv.yaml")
	if err := os.WriteFile(file, []byte("cv:"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false, want true")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true, want false")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing.yaml")) {
		t.Error("FileExists(missing) = true, want false")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"cv", false},
		{"jane-doe", false},
		{"cv.yaml", true},
		{"CV.YML", true},
		{"./cv", true},
		{"/abs/cv.yaml", true},
		{`C:\cv.yaml`, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsFilePath(tt.input); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
