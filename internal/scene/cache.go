package scene

import (
	"math"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-stellations/internal/fidelity"
)

// Geometry is a shared star mesh description.
type Geometry struct {
	Kind     fidelity.GeometryKind
	Radius   float64
	Segments int
}

// Material is a shared surface description. Shader materials carry a time
// uniform advanced by UpdateAnimation.
type Material struct {
	Key         string
	Color       colorful.Color
	GlowColor   colorful.Color
	Opacity     float64
	Transparent bool
	Shader      bool
	Time        float64
}

// GlowIntensity is the rim term of the glow shader for a surface whose
// normal makes cosine facing with the view direction.
func GlowIntensity(facing float64) float64 {
	d := 0.7 - facing
	return d * d
}

// GlowPulse is the time modulation of the glow shader.
func GlowPulse(t float64) float64 {
	return 0.5 + 0.5*math.Sin(t*2)
}

// Shade returns the surface colour at a point with the given facing.
// Flat materials ignore facing and time.
func (m *Material) Shade(facing float64) colorful.Color {
	if !m.Shader {
		return m.Color
	}
	k := GlowIntensity(facing) * GlowPulse(m.Time)
	return m.Color.BlendRgb(m.GlowColor, min(max(k, 0), 1)).Clamped()
}

// ColorKey discretises a colour for cache lookups, so hues that differ
// only by float noise share resources.
func ColorKey(c colorful.Color) string {
	return c.Clamped().Hex()
}

// CacheStats summarises a ResourceCache.
type CacheStats struct {
	Geometries int
	Materials  int
	Hits       int
	Misses     int
}

// ResourceCache shares geometries and materials across the primitives of
// one build pass. Keys combine the fidelity profile with a discretised
// colour.
type ResourceCache struct {
	mu         sync.RWMutex
	geometries map[string]*Geometry
	materials  map[string]*Material
	hits       int
	misses     int
}

// NewResourceCache creates an empty cache.
func NewResourceCache() *ResourceCache {
	return &ResourceCache{
		geometries: make(map[string]*Geometry),
		materials:  make(map[string]*Material),
	}
}

// StarGeometry returns the star mesh for a profile.
func (c *ResourceCache) StarGeometry(p fidelity.Profile) *Geometry {
	key := p.Key() + "|" + string(p.StarGeometry)

	c.mu.Lock()
	defer c.mu.Unlock()

	if g, ok := c.geometries[key]; ok {
		c.hits++
		return g
	}
	c.misses++
	g := &Geometry{Kind: p.StarGeometry, Radius: p.StarSize, Segments: p.StarSegments}
	c.geometries[key] = g
	return g
}

// StarMaterial returns the star material for a profile and colour: a glow
// shader on full profiles, a flat translucent material otherwise.
func (c *ResourceCache) StarMaterial(p fidelity.Profile, color, glow colorful.Color) *Material {
	key := "star|" + p.Key() + "|" + ColorKey(color)
	return c.material(key, func() *Material {
		m := &Material{
			Key:         key,
			Color:       color,
			GlowColor:   glow,
			Opacity:     p.FlatOpacity,
			Transparent: true,
			Shader:      p.UseShaderGlow,
		}
		if m.Shader {
			m.Opacity = 1
		}
		return m
	})
}

// ArcMaterial returns the line material for a timeline colour.
func (c *ResourceCache) ArcMaterial(p fidelity.Profile, color colorful.Color) *Material {
	key := "arc|" + p.Key() + "|" + ColorKey(color)
	return c.material(key, func() *Material {
		return &Material{
			Key:         key,
			Color:       color,
			Opacity:     p.ArcOpacity,
			Transparent: true,
		}
	})
}

func (c *ResourceCache) material(key string, create func() *Material) *Material {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.materials[key]; ok {
		c.hits++
		return m
	}
	c.misses++
	m := create()
	c.materials[key] = m
	return m
}

// SetTime advances the time uniform of every shader material.
func (c *ResourceCache) SetTime(t float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, m := range c.materials {
		if m.Shader {
			m.Time = t
		}
	}
}

// Stats returns cache counters.
func (c *ResourceCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return CacheStats{
		Geometries: len(c.geometries),
		Materials:  len(c.materials),
		Hits:       c.hits,
		Misses:     c.misses,
	}
}

// Clear releases every cached resource.
func (c *ResourceCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.geometries = make(map[string]*Geometry)
	c.materials = make(map[string]*Material)
	c.hits = 0
	c.misses = 0
}
