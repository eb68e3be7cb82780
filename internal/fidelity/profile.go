// Package fidelity selects geometry, material and animation detail for the
// capability class of the output device.
package fidelity

import (
	"fmt"
	"strings"
	"time"
)

// DeviceClass is the capability class of the display.
type DeviceClass int

const (
	// DeviceFull is a capable display: truecolor, large enough to resolve detail.
	DeviceFull DeviceClass = iota
	// DeviceConstrained is a limited display: few colours, small, or slow.
	DeviceConstrained
)

func (c DeviceClass) String() string {
	switch c {
	case DeviceFull:
		return "full"
	case DeviceConstrained:
		return "constrained"
	default:
		return "unknown"
	}
}

// ParseDeviceClass parses "full" or "constrained". "auto" and "" are not
// classes; callers resolve them with Detect.
func ParseDeviceClass(s string) (DeviceClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", "desktop":
		return DeviceFull, nil
	case "constrained", "mobile", "low":
		return DeviceConstrained, nil
	default:
		return DeviceFull, fmt.Errorf("unknown device class %q", s)
	}
}

// GeometryKind is the mesh used for a star.
type GeometryKind string

const (
	GeometrySphere GeometryKind = "sphere"
	GeometryCircle GeometryKind = "circle"
)

// Profile is the full set of detail choices for one device class. It is
// selected once at startup and passed to every component that needs it.
type Profile struct {
	Class DeviceClass

	ArcSegments  int // great-circle tessellation
	DomeSegments int // dome shell and grid circle tessellation
	StarSegments int
	StarGeometry GeometryKind
	StarSize     float64

	// GridDivisor divides the configured line count; 0 omits the grid.
	GridDivisor int

	UseShaderGlow bool
	AnimatePulse  bool

	// FlatOpacity is the star material opacity when shader glow is off.
	FlatOpacity float64
	// ArcOpacity is the opacity of a visible timeline arc.
	ArcOpacity float64

	TargetFPS int
	BatchSize int
}

// SelectProfile returns the profile for a device class.
func SelectProfile(class DeviceClass) Profile {
	if class == DeviceConstrained {
		return Profile{
			Class:         DeviceConstrained,
			ArcSegments:   20,
			DomeSegments:  16,
			StarSegments:  8,
			StarGeometry:  GeometryCircle,
			StarSize:      0.4,
			GridDivisor:   3,
			UseShaderGlow: false,
			AnimatePulse:  false,
			FlatOpacity:   0.8,
			ArcOpacity:    0.15,
			TargetFPS:     30,
			BatchSize:     50,
		}
	}
	return Profile{
		Class:         DeviceFull,
		ArcSegments:   50,
		DomeSegments:  32,
		StarSegments:  16,
		StarGeometry:  GeometrySphere,
		StarSize:      0.6,
		GridDivisor:   1,
		UseShaderGlow: true,
		AnimatePulse:  true,
		FlatOpacity:   1,
		ArcOpacity:    0.3,
		TargetFPS:     60,
		BatchSize:     50,
	}
}

// GridLineCount scales the configured meridian count for this profile.
func (p Profile) GridLineCount(count int) int {
	if p.GridDivisor <= 0 || count <= 0 {
		return 0
	}
	return count / p.GridDivisor
}

// FrameInterval is the minimum time between rendered frames.
func (p Profile) FrameInterval() time.Duration {
	if p.TargetFPS <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(p.TargetFPS)
}

// Key identifies the profile in resource cache keys.
func (p Profile) Key() string {
	return p.Class.String()
}
