package celestial

import (
	"math"
)

// Ray is a half-line with a unit direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectSphere returns the smallest positive t at which the ray meets a
// sphere. If the origin is inside the sphere the exit point is returned.
func (r Ray) IntersectSphere(center Vec3, radius float64) (float64, bool) {
	if radius <= 0 {
		return 0, false
	}

	oc := r.Origin.Sub(center)
	a := r.Direction.Dot(r.Direction)
	if a == 0 {
		return 0, false
	}
	b := 2 * oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(disc)
	t0 := (-b - sqrtD) / (2 * a)
	t1 := (-b + sqrtD) / (2 * a)

	const eps = 1e-12
	t := t0
	if t <= eps {
		t = t1
	}
	if t <= eps {
		return 0, false
	}
	return t, true
}
