package scene

import (
	"github.com/litescript/ls-stellations/internal/fidelity"
)

// TimeWindow is an inclusive year range.
type TimeWindow struct {
	Start int
	End   int
}

// Contains reports whether year lies in the window.
func (w TimeWindow) Contains(year int) bool {
	return year >= w.Start && year <= w.End
}

// Overlaps reports whether [start, end] shares at least one year with the
// window. Partial overlap counts.
func (w TimeWindow) Overlaps(start, end int) bool {
	return !(end < w.Start || start > w.End)
}

// FilterState is everything the filter reads: the time window and which
// subjects are shown. Subjects missing from the map are hidden.
type FilterState struct {
	Window         TimeWindow
	SubjectVisible map[string]bool
}

// IsSubjectVisible reports the subject's visibility flag.
func (f FilterState) IsSubjectVisible(id string) bool {
	return f.SubjectVisible[id]
}

// StarVisible is the visibility predicate for a star and its label.
func (f FilterState) StarVisible(subjectID string, year int) bool {
	return f.IsSubjectVisible(subjectID) && f.Window.Contains(year)
}

// ArcVisible is the visibility predicate for a timeline arc.
func (f FilterState) ArcVisible(subjectID string, startYear, endYear int) bool {
	return f.IsSubjectVisible(subjectID) && f.Window.Overlaps(startYear, endYear)
}

// ApplyFilter sets the visibility and opacity of every star, label and arc
// from f. It only flips state fields and is idempotent.
func ApplyFilter(f FilterState, p fidelity.Profile, stars []*Star, arcs []*Arc) {
	for _, s := range stars {
		visible := f.StarVisible(s.SubjectID, s.Year)
		s.set(visible, 1)
		if visible {
			s.BaseScale = 1
		} else {
			s.BaseScale = 0
		}
		s.Scale = s.BaseScale
		if s.Label != nil {
			s.Label.set(visible, 1)
		}
	}

	for _, a := range arcs {
		a.set(f.ArcVisible(a.SubjectID, a.StartYear, a.EndYear), p.ArcOpacity)
	}
}
