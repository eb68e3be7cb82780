package celestial

import (
	"math"
)

const (
	// DefaultFOV is the vertical field of view in degrees.
	DefaultFOV = 75.0

	minPitch = -89.0
	maxPitch = 89.0

	minDistance = 1.0
)

// Camera is a perspective camera orbiting the origin. Yaw and pitch are in
// degrees; the camera always looks at Target.
type Camera struct {
	Yaw      float64
	Pitch    float64
	Distance float64
	Target   Vec3

	FOV    float64 // vertical, degrees
	Aspect float64 // width / height
	Near   float64
	Far    float64

	// MaxDistance bounds Zoom; zero means unbounded.
	MaxDistance float64
}

// NewCamera returns a camera at the given distance looking at the origin.
func NewCamera(distance float64) *Camera {
	return &Camera{
		Distance: distance,
		FOV:      DefaultFOV,
		Aspect:   1,
		Near:     0.1,
		Far:      1000,
	}
}

// Position returns the camera location in scene space.
func (c *Camera) Position() Vec3 {
	yaw := degToRad(c.Yaw)
	pitch := degToRad(c.Pitch)
	return c.Target.Add(Vec3{
		X: c.Distance * math.Cos(pitch) * math.Sin(yaw),
		Y: c.Distance * math.Sin(pitch),
		Z: c.Distance * math.Cos(pitch) * math.Cos(yaw),
	})
}

// Basis returns the camera's forward, right and up unit vectors.
func (c *Camera) Basis() (forward, right, up Vec3) {
	forward = c.Target.Sub(c.Position()).Normalized()
	worldUp := Vec3{Y: 1}
	right = forward.Cross(worldUp).Normalized()
	if right.Norm() == 0 {
		right = Vec3{X: 1}
	}
	up = right.Cross(forward).Normalized()
	return forward, right, up
}

// Orbit rotates the camera around its target.
func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.Yaw = normalizeDegrees(c.Yaw + dYaw)
	c.Pitch = clamp(c.Pitch+dPitch, minPitch, maxPitch)
}

// Zoom multiplies the orbit distance by factor.
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.Distance *= factor
	if c.Distance < minDistance {
		c.Distance = minDistance
	}
	if c.MaxDistance > 0 && c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// SetAspect updates the aspect ratio; non-positive values are ignored.
func (c *Camera) SetAspect(aspect float64) {
	if aspect > 0 {
		c.Aspect = aspect
	}
}

// RayFromNDC builds a ray from the camera through a point in normalised
// device coordinates (x right, y up, both in [-1, 1]).
func (c *Camera) RayFromNDC(x, y float64) Ray {
	forward, right, up := c.Basis()
	tanHalf := math.Tan(degToRad(c.FOV) / 2)

	dir := forward.
		Add(right.Scale(x * tanHalf * c.Aspect)).
		Add(up.Scale(y * tanHalf))

	return Ray{Origin: c.Position(), Direction: dir.Normalized()}
}

// ProjectToNDC maps a scene point to normalised device coordinates.
// depth is the distance along the view axis. ok is false for points behind
// the near plane or beyond the far plane.
func (c *Camera) ProjectToNDC(p Vec3) (x, y, depth float64, ok bool) {
	forward, right, up := c.Basis()
	d := p.Sub(c.Position())

	depth = d.Dot(forward)
	if depth <= c.Near || depth >= c.Far {
		return 0, 0, depth, false
	}

	tanHalf := math.Tan(degToRad(c.FOV) / 2)
	x = d.Dot(right) / (depth * tanHalf * c.Aspect)
	y = d.Dot(up) / (depth * tanHalf)
	return x, y, depth, true
}

// normalizeDegrees wraps an angle to the -180..+180 range.
func normalizeDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a > 180 {
		a -= 360
	} else if a <= -180 {
		a += 360
	}
	return a
}
