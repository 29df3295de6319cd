package teklinicv

import (
	"github.com/alnah/go-teklinicv/internal/strproc"
)

// expander turns stored entries into display-ready entries for one format.
type expander struct {
	pipeline strproc.Pipeline
	dates    *dateFormatter
}

// expand returns a new entry with derived date fields set and every prose
// field run through the pipeline. The input entry is not modified.
// Structural fields (start_date, end_date, doi, url) are never listed as
// prose, so they come out byte-identical.
func (x *expander) expand(e Entry, showTimeSpan bool) Entry {
	out := e.clone()
	if d := out.dated(); d != nil {
		d.DateText = x.dates.dateText(d)
		d.TimeSpanText = ""
		if showTimeSpan {
			d.TimeSpanText = x.dates.timeSpan(d)
		}
	}
	for _, field := range out.prose() {
		*field = x.pipeline.Apply(*field)
	}
	for _, list := range out.proseLists() {
		*list = x.pipeline.ApplyAll(*list)
	}
	return out
}

// expandSection expands every entry of s in order and numbers list items.
func (x *expander) expandSection(s Section) []Entry {
	entries := make([]Entry, len(s.Entries))
	for i, e := range s.Entries {
		expanded := x.expand(e, s.ShowTimeSpan)
		switch v := expanded.(type) {
		case *NumberedEntry:
			v.Ordinal = i + 1
		case *ReversedNumberedEntry:
			v.Ordinal = len(s.Entries) - i
		}
		entries[i] = expanded
	}
	return entries
}
