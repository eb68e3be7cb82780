package scene

import (
	"math"

	"github.com/litescript/ls-stellations/internal/celestial"
	"github.com/litescript/ls-stellations/internal/fidelity"
	"github.com/litescript/ls-stellations/internal/theme"
)

// ShellScale lifts the dome, grid and arcs just outside the star radius.
const ShellScale = 1.001

// Grid line opacities.
const (
	GridOpacity    = 0.3
	EquatorOpacity = 0.5
)

// BuildDome creates the enclosing shell.
func BuildDome(radius float64, p fidelity.Profile, opacity float64, th theme.Theme) *Dome {
	return &Dome{
		Visibility: Visibility{Visible: true, Opacity: opacity},
		Radius:     radius * ShellScale,
		Segments:   p.DomeSegments,
		Color:      th.Dome,
	}
}

// BuildGrid creates the geodesic reference lines: lineCount meridian great
// circles evenly spaced in azimuth over [0, π), and ⌊lineCount/2⌋+1
// parallels from the equator toward the pole, mirrored below the equator.
// Parallels are evenly spaced in latitude and stop short of the pole.
func BuildGrid(radius float64, lineCount, segments int) []*GridLine {
	if lineCount <= 0 {
		return nil
	}
	if segments < 4 {
		segments = 4
	}
	r := radius * ShellScale

	var lines []*GridLine
	for i := 0; i < lineCount; i++ {
		angle := float64(i) / float64(lineCount) * math.Pi
		lines = append(lines, &GridLine{
			Visibility: Visibility{Visible: true, Opacity: GridOpacity},
			Kind:       Meridian,
			AzimuthDeg: angle * 180 / math.Pi,
			Points:     meridianPoints(r, angle, segments),
		})
	}

	steps := lineCount / 2
	lines = append(lines, &GridLine{
		Visibility: Visibility{Visible: true, Opacity: EquatorOpacity},
		Kind:       Parallel,
		Equator:    true,
		Points:     parallelPoints(r, 0, segments),
	})
	for i := 1; i <= steps; i++ {
		lat := float64(i) / float64(steps+1) * 90
		for _, sign := range []float64{1, -1} {
			lines = append(lines, &GridLine{
				Visibility: Visibility{Visible: true, Opacity: GridOpacity},
				Kind:       Parallel,
				LatDeg:     sign * lat,
				Points:     parallelPoints(r, sign*lat, segments),
			})
		}
	}
	return lines
}

// meridianPoints traces a full great circle through both poles in the
// vertical plane at the given azimuth (radians).
func meridianPoints(r, azimuth float64, segments int) []celestial.Vec3 {
	points := make([]celestial.Vec3, 0, segments+1)
	for j := 0; j <= segments; j++ {
		phi := float64(j) / float64(segments) * 2 * math.Pi
		points = append(points, celestial.Vec3{
			X: r * math.Sin(phi) * math.Cos(azimuth),
			Y: r * math.Cos(phi),
			Z: r * math.Sin(phi) * math.Sin(azimuth),
		})
	}
	return points
}

// parallelPoints traces the circle of constant latitude.
func parallelPoints(r, latDeg float64, segments int) []celestial.Vec3 {
	points := make([]celestial.Vec3, 0, segments+1)
	for j := 0; j <= segments; j++ {
		lon := float64(j)/float64(segments)*360 - 180
		points = append(points, celestial.Project(latDeg, lon, r))
	}
	return points
}
