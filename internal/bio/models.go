// Package bio provides the biographical subjects and dated, geolocated
// events drawn on the star map, plus loading them from disk.
package bio

import (
	"slices"
	"time"

	"github.com/litescript/ls-stellations/internal/celestial"
)

// DefaultCategory is used for records that do not sit in a category folder.
const DefaultCategory = "Other"

// Event is a single dated, geolocated occurrence in a subject's life.
type Event struct {
	Year      int
	Lat       float64 // degrees, -90..90
	Lon       float64 // degrees, -180..180
	Info      string
	ShortCode string

	// Cartesian is an optional precomputed position at an arbitrary radius.
	Cartesian *celestial.Vec3
}

// Position returns the event's location on a sphere of the given radius,
// preferring the precomputed cartesian position when present.
func (e Event) Position(radius float64) celestial.Vec3 {
	if e.Cartesian != nil && e.Cartesian.Norm() > 0 {
		return celestial.Rescale(*e.Cartesian, radius)
	}
	return celestial.Project(e.Lat, e.Lon, radius)
}

// Subject is a biographical entity. ID is the subject's full name and is
// unique within a Dataset.
type Subject struct {
	ID       string
	Nickname string
	Category string
	Events   []Event
}

// DisplayName returns the nickname when set, else the full name.
func (s Subject) DisplayName() string {
	if s.Nickname != "" {
		return s.Nickname
	}
	return s.ID
}

// SortedEvents returns a copy of the events ordered by year. Events in the
// same year keep their file order.
func (s Subject) SortedEvents() []Event {
	events := slices.Clone(s.Events)
	slices.SortStableFunc(events, func(a, b Event) int {
		return a.Year - b.Year
	})
	return events
}

// YearSpan returns the first and last event years.
func (s Subject) YearSpan() (first, last int, ok bool) {
	if len(s.Events) == 0 {
		return 0, 0, false
	}
	first, last = s.Events[0].Year, s.Events[0].Year
	for _, e := range s.Events[1:] {
		first = min(first, e.Year)
		last = max(last, e.Year)
	}
	return first, last, true
}

// Dataset is an immutable collection of subjects.
type Dataset struct {
	Subjects []Subject
	Source   string
	LoadedAt time.Time
}

// YearRange returns the minimum and maximum event year across all subjects.
func (d *Dataset) YearRange() (minYear, maxYear int, ok bool) {
	if d == nil {
		return 0, 0, false
	}
	for _, s := range d.Subjects {
		first, last, has := s.YearSpan()
		if !has {
			continue
		}
		if !ok {
			minYear, maxYear, ok = first, last, true
			continue
		}
		minYear = min(minYear, first)
		maxYear = max(maxYear, last)
	}
	return minYear, maxYear, ok
}

// Categories returns category names in first-seen order.
func (d *Dataset) Categories() []string {
	if d == nil {
		return nil
	}
	var cats []string
	seen := make(map[string]bool)
	for _, s := range d.Subjects {
		if !seen[s.Category] {
			seen[s.Category] = true
			cats = append(cats, s.Category)
		}
	}
	return cats
}

// SubjectIDs returns every subject ID, optionally restricted to a category.
// An empty category returns all subjects.
func (d *Dataset) SubjectIDs(category string) []string {
	if d == nil {
		return nil
	}
	var ids []string
	for _, s := range d.Subjects {
		if category == "" || s.Category == category {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// Subject looks up a subject by ID.
func (d *Dataset) Subject(id string) (Subject, bool) {
	if d == nil {
		return Subject{}, false
	}
	for _, s := range d.Subjects {
		if s.ID == id {
			return s, true
		}
	}
	return Subject{}, false
}

// EventCount returns the total number of events.
func (d *Dataset) EventCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, s := range d.Subjects {
		n += len(s.Events)
	}
	return n
}
