// Package scene builds and maintains the star-map primitives: stars, their
// labels, timeline arcs, and the reference dome and grid.
package scene

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-stellations/internal/celestial"
)

// Visibility is the filter-controlled state shared by every primitive.
// Opacity is 0 whenever Visible is false.
type Visibility struct {
	Visible bool
	Opacity float64
}

// IsVisible implements Primitive.
func (v Visibility) IsVisible() bool { return v.Visible }

// Alpha implements Primitive.
func (v Visibility) Alpha() float64 { return v.Opacity }

func (v *Visibility) set(visible bool, opacity float64) {
	if !visible {
		opacity = 0
	}
	v.Visible = visible
	v.Opacity = opacity
}

func hidden() Visibility {
	return Visibility{}
}

// Star is the marker for one event.
type Star struct {
	Visibility

	SubjectID string
	Nickname  string
	Category  string
	Year      int
	Info      string
	ShortCode string

	Position celestial.Vec3
	Color    colorful.Color
	Geometry *Geometry
	Material *Material

	// Phase offsets this star's pulse.
	Phase float64
	// BaseScale is 1 while visible and 0 while hidden.
	BaseScale float64
	// Scale is the current animated scale (BaseScale times pulse).
	Scale float64

	Label *Label
}

// Radius is the star's current drawn radius.
func (s *Star) Radius() float64 {
	if s.Geometry == nil {
		return 0
	}
	return s.Geometry.Radius * s.Scale
}

// Label is the text sprite paired with a Star. Its sprite bakes in theme
// colours, so a theme change replaces the sprite rather than recolouring it.
type Label struct {
	Visibility

	Text     string
	Position celestial.Vec3
	Sprite   Sprite
}

// Arc is the great-circle path between two chronologically adjacent events
// of one subject.
type Arc struct {
	Visibility

	SubjectID string
	StartYear int
	EndYear   int

	Points   []celestial.Vec3
	Color    colorful.Color
	Material *Material
}

// Dome is the translucent shell enclosing the stars.
type Dome struct {
	Visibility

	Radius   float64
	Segments int
	Color    string
}

// GridLineKind distinguishes meridians from parallels.
type GridLineKind int

const (
	Meridian GridLineKind = iota
	Parallel
)

// GridLine is one geodesic reference circle.
type GridLine struct {
	Visibility

	Kind    GridLineKind
	Equator bool
	// LatDeg is the latitude of a parallel; AzimuthDeg the plane of a meridian.
	LatDeg     float64
	AzimuthDeg float64
	Points     []celestial.Vec3
}
