package bio

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidEvent is returned for events that cannot be placed on the sphere.
	ErrInvalidEvent = errors.New("invalid event")

	// ErrInvalidSubject is returned for subjects missing required fields.
	ErrInvalidSubject = errors.New("invalid subject")

	// ErrNoSubjects is returned when a load produced no usable subjects.
	ErrNoSubjects = errors.New("no subjects loaded")
)

// ValidateEvent checks that an event's coordinates are finite and in range.
func ValidateEvent(e Event) error {
	if math.IsNaN(e.Lat) || math.IsInf(e.Lat, 0) || e.Lat < -90 || e.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidEvent, e.Lat)
	}
	if math.IsNaN(e.Lon) || math.IsInf(e.Lon, 0) || e.Lon < -180 || e.Lon > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidEvent, e.Lon)
	}
	if e.Cartesian != nil {
		if !e.Cartesian.IsFinite() {
			return fmt.Errorf("%w: cartesian position is not finite", ErrInvalidEvent)
		}
		if e.Cartesian.Norm() == 0 {
			return fmt.Errorf("%w: cartesian position is the origin", ErrInvalidEvent)
		}
	}
	return nil
}

// ValidateSubject checks the subject and every one of its events.
func ValidateSubject(s Subject) error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidSubject)
	}
	for i, e := range s.Events {
		if err := ValidateEvent(e); err != nil {
			return fmt.Errorf("%s event %d (%d): %w", s.ID, i, e.Year, err)
		}
	}
	return nil
}
