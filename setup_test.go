package teklinicv

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test Fixtures
// ---------------------------------------------------------------------------

// testNow is the fixed current date of every fixture.
var testNow = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

// newTestModel returns a small model with one experience section. Each
// call returns a fresh value, so tests may modify it.
func newTestModel() *Model {
	return &Model{
		CV: CV{
			Name:     "Jane Doe",
			Headline: "Platform engineer",
			Sections: []Section{
				NewSection("Experience", &ExperienceEntry{
					Company:    "Acme",
					Position:   "Engineer",
					DateFields: DateFields{StartDate: "2021-03", EndDate: "present"},
					Details: Details{
						URL:        "https://example.com/jobs/a_b",
						Highlights: []string{"Cut build times by **40%**"},
					},
				}),
			},
		},
		Design: DefaultDesign(),
		Locale: DefaultLocale(),
		Settings: Settings{
			CurrentDate:   testNow,
			RenderCommand: DefaultRenderCommand(),
		},
	}
}

// writeTestFile writes content to root/rel, creating parent directories.
func writeTestFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
	return path
}
