package scene

import (
	"github.com/litescript/ls-stellations/internal/celestial"
)

// Viewport is the pointer coordinate space, in pixels or cells.
type Viewport struct {
	Width  float64
	Height float64
}

// PointerToNDC maps a pointer position to normalised device coordinates.
func PointerToNDC(x, y float64, vp Viewport) (float64, float64) {
	return x/vp.Width*2 - 1, -(y/vp.Height*2 - 1)
}

// Hit is a successful pick.
type Hit struct {
	Star     *Star
	Distance float64
}

// Picker casts rays against visible stars.
type Picker struct {
	// HitScale enlarges star hit spheres; useful when one pointer cell
	// covers far more than a star. Values <= 0 mean 1.
	HitScale float64
}

// Pick returns the nearest visible star under the pointer. Hidden stars are
// never returned. A nil camera or empty viewport yields no hit.
func (p Picker) Pick(x, y float64, vp Viewport, cam *celestial.Camera, stars []*Star) (Hit, bool) {
	if cam == nil || vp.Width <= 0 || vp.Height <= 0 {
		return Hit{}, false
	}

	scale := p.HitScale
	if scale <= 0 {
		scale = 1
	}

	nx, ny := PointerToNDC(x, y, vp)
	ray := cam.RayFromNDC(nx, ny)

	var best Hit
	found := false
	for _, s := range stars {
		if s == nil || !s.Visible || s.Geometry == nil {
			continue
		}
		t, ok := ray.IntersectSphere(s.Position, s.Geometry.Radius*scale)
		if !ok {
			continue
		}
		if !found || t < best.Distance {
			best = Hit{Star: s, Distance: t}
			found = true
		}
	}
	return best, found
}

// Pick is Picker{}.Pick.
func Pick(x, y float64, vp Viewport, cam *celestial.Camera, stars []*Star) (Hit, bool) {
	return Picker{}.Pick(x, y, vp, cam, stars)
}
