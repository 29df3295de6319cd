//go:build property

package teklinicv

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestProcessModelProperties checks purity and determinism of model
// processing over generated prose.
func TestProcessModelProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	modelWith := func(highlight, keyword string) *Model {
		m := newTestModel()
		exp := m.CV.Sections[0].Entries[0].(*ExperienceEntry)
		exp.Highlights = []string{highlight}
		exp.Summary = highlight
		m.Settings.BoldKeywords = []string{keyword}
		return m
	}

	properties.Property("input model is never modified", prop.ForAll(
		func(highlight, keyword string) bool {
			m := modelWith(highlight, keyword)
			before := modelWith(highlight, keyword)
			for _, f := range []Format{FormatTypst, FormatMarkdown, FormatHTML} {
				if _, err := ProcessModel(m, f); err != nil {
					return false
				}
			}
			return reflect.DeepEqual(m, before)
		},
		gen.AnyString(),
		gen.AlphaString(),
	))

	properties.Property("processing is deterministic", prop.ForAll(
		func(highlight, keyword string) bool {
			m := modelWith(highlight, keyword)
			a, errA := ProcessModel(m, FormatTypst)
			b, errB := ProcessModel(m, FormatTypst)
			return errA == nil && errB == nil && reflect.DeepEqual(a, b)
		},
		gen.AnyString(),
		gen.AlphaString(),
	))

	properties.Property("structural fields survive every format", prop.ForAll(
		func(url string) bool {
			m := newTestModel()
			m.CV.Sections[0].Entries[0].(*ExperienceEntry).URL = url
			for _, f := range []Format{FormatTypst, FormatMarkdown, FormatHTML} {
				out, err := ProcessModel(m, f)
				if err != nil || out.CV.Sections[0].Entries[0].(*ExperienceEntry).URL != url {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
