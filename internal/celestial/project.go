package celestial

import (
	"math"
)

// Project maps a geographic position onto a sphere of the given radius.
// The inclination is measured from +Y (north pole) and the azimuth is
// offset by 180° so that lon=0 faces -X.
//
// Inputs are assumed valid (lat in [-90, 90], lon in [-180, 180]);
// range checks belong to whoever loads the data.
func Project(latDeg, lonDeg, radius float64) Vec3 {
	phi := degToRad(90 - latDeg)
	theta := degToRad(lonDeg + 180)

	sinPhi := math.Sin(phi)
	return Vec3{
		X: -radius * sinPhi * math.Cos(theta),
		Y: radius * math.Cos(phi),
		Z: radius * sinPhi * math.Sin(theta),
	}
}

// Unproject is the inverse of Project: it returns latitude and longitude in
// degrees for a point on (or off) a sphere centred at the origin.
// The zero vector maps to (0, 0).
func Unproject(v Vec3) (latDeg, lonDeg float64) {
	r := v.Norm()
	if r == 0 {
		return 0, 0
	}

	phi := math.Acos(clamp(v.Y/r, -1, 1))
	latDeg = 90 - radToDeg(phi)

	theta := math.Atan2(v.Z, -v.X)
	lonDeg = radToDeg(theta) - 180
	if lonDeg < -180 {
		lonDeg += 360
	}
	// Poles have no defined longitude.
	if math.Abs(math.Sin(phi)) < 1e-12 {
		lonDeg = 0
	}
	return latDeg, lonDeg
}

// Rescale moves a precomputed point onto a sphere of a different radius,
// keeping its direction. Used for cartesian positions cached at another
// radius.
func Rescale(v Vec3, radius float64) Vec3 {
	return v.Normalized().Scale(radius)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
