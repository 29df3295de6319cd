package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	teklinicv "github.com/alnah/go-teklinicv"
	"github.com/alnah/go-teklinicv/internal/assets"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string        `json:"status"` // "ready", "warnings", "errors"
	Typst     typstInfo     `json:"typst"`
	Templates templatesInfo `json:"templates"`
	Env       envInfo       `json:"environment"`
	System    systemInfo    `json:"system"`
	Warnings  []string      `json:"warnings,omitempty"`
	Errors    []string      `json:"errors,omitempty"`
}

// typstInfo holds typst compiler detection results. The compiler is only
// needed to turn the generated .typ file into a PDF.
type typstInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

type templatesInfo struct {
	Checked int      `json:"checked"`
	Missing []string `json:"missing,omitempty"`
}

type envInfo struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
	CI   bool   `json:"ci"`
}

type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor(assets.NewEmbeddedLoader())

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks against the given built-in loader.
func runDoctor(builtin teklinicv.AssetLoader) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env:    envInfo{OS: runtime.GOOS, Arch: runtime.GOARCH},
	}

	checkTypst(result)
	checkTemplates(result, builtin)
	checkEnvironment(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
	return result
}

func checkTypst(result *doctorResult) {
	path, err := exec.LookPath("typst")
	if err != nil {
		result.Warnings = append(result.Warnings,
			"typst not found in PATH; .typ files are generated but cannot be compiled to PDF here")
		return
	}
	result.Typst.Found = true
	result.Typst.Path = path

	out, err := exec.Command(path, "--version").Output()
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get typst version: %v", err))
		return
	}
	result.Typst.Version = strings.TrimSpace(string(out))
}

// templateReq is one template the default design renders with.
type templateReq struct {
	format teklinicv.Format
	name   string
}

func requiredTemplates() []templateReq {
	out := []templateReq{{teklinicv.FormatTypst, teklinicv.TemplatePreamble}}
	for _, f := range []teklinicv.Format{teklinicv.FormatTypst, teklinicv.FormatMarkdown} {
		out = append(out,
			templateReq{f, teklinicv.TemplateHeader},
			templateReq{f, teklinicv.TemplateSectionBeginning},
			templateReq{f, teklinicv.TemplateSectionEnding},
		)
		for _, k := range teklinicv.EntryKinds {
			out = append(out, templateReq{f, teklinicv.EntryTemplateName(k)})
		}
	}
	return append(out, templateReq{teklinicv.FormatHTML, teklinicv.TemplateFull})
}

// checkTemplates verifies the built-in templates and style sheet of the
// default design are all present.
func checkTemplates(result *doctorResult, builtin teklinicv.AssetLoader) {
	design := teklinicv.DefaultDesign()
	search := assets.NewSearchPath(builtin)

	for _, req := range requiredTemplates() {
		result.Templates.Checked++
		candidates := teklinicv.TemplateCandidates(req.format, design.Theme, req.name)
		lookup, err := search.Resolve(candidates...)
		if err != nil || !lookup.Found {
			result.Templates.Missing = append(result.Templates.Missing, candidates[len(candidates)-1])
		}
	}

	result.Templates.Checked++
	if _, err := builtin.LoadStyle(design.HTMLStyle); err != nil {
		result.Templates.Missing = append(result.Templates.Missing, "styles/"+design.HTMLStyle+".css")
	}

	if len(result.Templates.Missing) > 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Built-in templates missing: %s", strings.Join(result.Templates.Missing, ", ")))
	}
}

func checkEnvironment(result *doctorResult) {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// checkSystem verifies the temp directory used for atomic writes is writable.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	f, err := os.CreateTemp(tmpDir, "teklinicv-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(filepath.Clean(name))
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "teklinicv doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Typst")
	if r.Typst.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Typst.Path)
		if r.Typst.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Typst.Version)
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found (PDF compilation unavailable)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Templates")
	if len(r.Templates.Missing) == 0 {
		fmt.Fprintf(w, "  [OK] %d built-in assets present\n", r.Templates.Checked)
	} else {
		fmt.Fprintf(w, "  [ERROR] %d of %d built-in assets missing\n", len(r.Templates.Missing), r.Templates.Checked)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to render")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
