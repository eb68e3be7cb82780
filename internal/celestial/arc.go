package celestial

import (
	"iter"
	"math"
)

// DefaultArcSegments is the tessellation used when the caller does not
// specify one.
const DefaultArcSegments = 50

// arcEpsilon is the smallest sin(θ) treated as a real separation. Below it
// the endpoints are coincident or antipodal and the great circle is
// undefined.
const arcEpsilon = 1e-6

// InterpolateArc returns the great-circle path from start to end on a
// sphere of the given radius as a sequence of segments+1 points.
// Both endpoints are normalised, so inputs may lie at any radius.
//
// When the endpoints are coincident or antipodal the sequence repeats the
// start point. The sequence is finite and can be ranged over any number of
// times.
func InterpolateArc(start, end Vec3, radius float64, segments int) iter.Seq[Vec3] {
	if segments < 1 {
		segments = 1
	}

	a := start.Normalized()
	b := end.Normalized()
	theta := math.Acos(clamp(a.Dot(b), -1, 1))
	sinTheta := math.Sin(theta)
	degenerate := math.Abs(sinTheta) < arcEpsilon

	return func(yield func(Vec3) bool) {
		for i := 0; i <= segments; i++ {
			if degenerate {
				if !yield(a.Scale(radius)) {
					return
				}
				continue
			}

			t := float64(i) / float64(segments)
			wa := math.Sin((1-t)*theta) / sinTheta
			wb := math.Sin(t*theta) / sinTheta
			p := a.Scale(wa).Add(b.Scale(wb)).Scale(radius)
			if !yield(p) {
				return
			}
		}
	}
}

// ArcPoints collects InterpolateArc into a slice.
func ArcPoints(start, end Vec3, radius float64, segments int) []Vec3 {
	n := segments
	if n < 1 {
		n = 1
	}
	points := make([]Vec3, 0, n+1)
	for p := range InterpolateArc(start, end, radius, segments) {
		points = append(points, p)
	}
	return points
}

// AngularSeparation returns the angle in radians between two directions.
func AngularSeparation(a, b Vec3) float64 {
	return math.Acos(clamp(a.Normalized().Dot(b.Normalized()), -1, 1))
}
