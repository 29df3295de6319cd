package main

// Notes:
// - typst detection depends on the host PATH, so tests assert consistency
//   between the typst section and the status rather than a fixed result.

import (
	"bytes"
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"github.com/alnah/go-teklinicv/internal/assets"
)

// stubAssets serves only the named templates and no styles.
type stubAssets struct {
	templates map[string]string
}

func (s *stubAssets) LoadTemplate(path string) (string, error) {
	if c, ok := s.templates[path]; ok {
		return c, nil
	}
	return "", assets.ErrTemplateNotFound
}

func (s *stubAssets) LoadStyle(name string) (string, error) {
	return "", assets.ErrStyleNotFound
}

func (s *stubAssets) Source() string { return "stub" }

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Output formats
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_JSONOutput(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()
	exitCode := runDoctorCmd([]string{"--json"}, env)

	var result doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout.String())
	}
	if result.Env.OS != runtime.GOOS || result.Env.Arch != runtime.GOARCH {
		t.Errorf("platform = %s/%s, want %s/%s", result.Env.OS, result.Env.Arch, runtime.GOOS, runtime.GOARCH)
	}
	if len(result.Templates.Missing) != 0 {
		t.Errorf("built-in templates missing: %v", result.Templates.Missing)
	}
	if result.Templates.Checked == 0 {
		t.Error("no templates checked")
	}
	if !result.Typst.Found && result.Status == "ready" {
		t.Error("status ready without typst, want warnings")
	}
	if result.Status == "errors" && exitCode != ExitGeneral {
		t.Errorf("exit code = %d for errors, want %d", exitCode, ExitGeneral)
	}
	if result.Status != "errors" && exitCode != ExitSuccess {
		t.Errorf("exit code = %d for %s, want %d", exitCode, result.Status, ExitSuccess)
	}
}

func TestRunDoctorCmd_HumanOutput(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()
	runDoctorCmd(nil, env)

	out := stdout.String()
	for _, want := range []string{"teklinicv doctor", "Typst", "Templates", "built-in assets present", "Environment", "System", "Status:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctor_MissingTemplates - Broken asset sets are errors
// ---------------------------------------------------------------------------

func TestRunDoctor_MissingTemplates(t *testing.T) {
	t.Parallel()

	result := runDoctor(&stubAssets{templates: map[string]string{
		"typst/Preamble.tmpl.typ": "",
	}})

	if result.Status != "errors" {
		t.Errorf("status = %q, want errors", result.Status)
	}
	wantMissing := len(requiredTemplates()) // every template but the preamble, plus the style
	if len(result.Templates.Missing) != wantMissing {
		t.Errorf("missing = %d, want %d", len(result.Templates.Missing), wantMissing)
	}
	if result.Templates.Checked != wantMissing+1 {
		t.Errorf("checked = %d, want %d", result.Templates.Checked, wantMissing+1)
	}
	for _, want := range []string{"markdown/entries/text-entry.tmpl.md", "html/Full.tmpl.html", "styles/default.css"} {
		found := false
		for _, m := range result.Templates.Missing {
			if m == want {
				found = true
			}
		}
		if !found {
			t.Errorf("missing list lacks %q: %v", want, result.Templates.Missing)
		}
	}

	var buf bytes.Buffer
	printDoctorResult(&buf, result)
	if !strings.Contains(buf.String(), "Not ready") {
		t.Errorf("output missing Not ready:\n%s", buf.String())
	}
}

func TestRequiredTemplates_CoverEveryEntryKind(t *testing.T) {
	t.Parallel()

	// Preamble + 2 formats x (3 structural + 9 entry kinds) + html Full.
	if got := len(requiredTemplates()); got != 1+2*(3+9)+1 {
		t.Errorf("requiredTemplates() has %d items", got)
	}
}
