package scene

import (
	"math"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"

	"github.com/litescript/ls-stellations/internal/fidelity"
	"github.com/litescript/ls-stellations/internal/theme"
)

func TestFrameLimiter(t *testing.T) {
	l := NewFrameLimiter(100 * time.Millisecond)

	frames := []struct {
		at   time.Duration
		want bool
	}{
		{0, true},
		{50 * time.Millisecond, false},
		{100 * time.Millisecond, true},
		{150 * time.Millisecond, false},
		{500 * time.Millisecond, true},
		{510 * time.Millisecond, false}, // no catch-up for the skipped frames
	}
	for _, f := range frames {
		assert.Equal(t, f.want, l.Allow(f.at), "frame at %v", f.at)
	}

	rendered, skipped := l.Counts()
	assert.Equal(t, 3, rendered)
	assert.Equal(t, 3, skipped)
}

func TestPulseScale(t *testing.T) {
	assert.InDelta(t, 1, PulseScale(0, 0), 1e-12)
	assert.InDelta(t, 1+PulseAmount, PulseScale(0, math.Pi/2), 1e-12)
	assert.InDelta(t, 1-PulseAmount, PulseScale(math.Pi/PulseSpeed, math.Pi/2), 1e-12)
}

func TestUpdateAnimation_Full(t *testing.T) {
	v := builtVis(t, fidelity.DeviceFull)
	v.UpdateVisibility(FilterState{Window: TimeWindow{1908, 1918}, SubjectVisible: allVisible()})

	v.UpdateAnimation(2.5)

	for _, s := range v.Stars() {
		assert.InDelta(t, s.BaseScale*PulseScale(2.5, s.Phase), s.Scale, 1e-12)
		if !s.Visible {
			assert.Zero(t, s.Scale)
		}
		assert.Equal(t, 2.5, s.Material.Time)
	}
}

func TestUpdateAnimation_ConstrainedIsStatic(t *testing.T) {
	v := builtVis(t, fidelity.DeviceConstrained)
	v.UpdateVisibility(FilterState{Window: TimeWindow{0, 3000}, SubjectVisible: allVisible()})

	v.UpdateAnimation(2.5)

	for _, s := range v.Stars() {
		assert.Equal(t, 1.0, s.Scale)
		assert.False(t, s.Material.Shader)
		assert.Zero(t, s.Material.Time)
		assert.Equal(t, 0.8, s.Material.Opacity)
	}
}

func TestAnimator(t *testing.T) {
	v := builtVis(t, fidelity.DeviceFull)
	a := NewAnimator(v)

	assert.True(t, a.OnFrame(0))
	assert.False(t, a.OnFrame(time.Millisecond))
	assert.True(t, a.OnFrame(time.Second))

	a.Stop()
	assert.False(t, a.OnFrame(10*time.Second))
	rendered, _ := a.Limiter().Counts()
	assert.Equal(t, 2, rendered)
}

func TestGlowShading(t *testing.T) {
	assert.Zero(t, GlowIntensity(0.7))
	assert.InDelta(t, 1, GlowIntensity(-0.3), 1e-12)
	assert.InDelta(t, 1, GlowPulse(math.Pi/4), 1e-12)

	base := colorful.Hsl(0, 1, 0.5)
	glow := colorful.Hsl(0, 1, 0.7)

	flat := &Material{Color: base, GlowColor: glow}
	assert.Equal(t, base, flat.Shade(-0.3))

	m := &Material{Color: base, GlowColor: glow, Shader: true, Time: math.Pi / 4}
	assert.InDelta(t, 0, m.Shade(-0.3).DistanceRgb(glow), 1e-9, "full rim at peak pulse is pure glow")
	assert.InDelta(t, 0, m.Shade(0.7).DistanceRgb(base), 1e-9, "no rim term keeps the base colour")
}

func TestResourceCache_DiscretisedKeys(t *testing.T) {
	c := NewResourceCache()
	p := fidelity.SelectProfile(fidelity.DeviceFull)

	a := c.StarMaterial(p, colorful.Hsl(120, 1, 0.5), colorful.Hsl(120, 1, 0.7))
	b := c.StarMaterial(p, colorful.Hsl(120.0000001, 1, 0.5), colorful.Hsl(120, 1, 0.7))
	assert.Same(t, a, b)

	low := c.StarMaterial(fidelity.SelectProfile(fidelity.DeviceConstrained), colorful.Hsl(120, 1, 0.5), colorful.Hsl(120, 1, 0.7))
	assert.NotSame(t, a, low, "profiles never share materials")

	stats := c.Stats()
	assert.Equal(t, 2, stats.Materials)
	assert.Equal(t, 1, stats.Hits)

	c.Clear()
	assert.Zero(t, c.Stats().Materials)
}

func TestLabelRenderer(t *testing.T) {
	r := NewStyledLabelRenderer()

	s1 := r.Render("Ada | A | 1900", theme.DarkTheme())
	s2 := r.Render("Ada | A | 1900", theme.DarkTheme())
	assert.Equal(t, s1, s2)
	assert.Equal(t, 1, r.Renders())
	assert.Equal(t, len("Ada | A | 1900"), s1.Width)
	assert.Equal(t, theme.DarkTheme().Text, s1.Color)

	light := r.Render("Ada | A | 1900", theme.LightTheme())
	assert.Equal(t, theme.Light, light.Theme)
	assert.Equal(t, theme.LightTheme().Text, light.Color)
	assert.Equal(t, 2, r.Renders())

	r.Invalidate()
	r.Render("Ada | A | 1900", theme.DarkTheme())
	assert.Equal(t, 3, r.Renders())
}

func TestFormatLabel(t *testing.T) {
	assert.Equal(t, "Ada | A | 1900", FormatLabel("Ada", "A", 1900))
	assert.Equal(t, "Ada | 1900", FormatLabel("Ada", "", 1900))
	assert.Equal(t, "-44", FormatLabel("", "", -44))
}
