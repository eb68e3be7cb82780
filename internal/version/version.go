// Package version provides build and version information.
package version

import "runtime/debug"

// Version is the current application version. Release builds set it with
// -ldflags "-X github.com/litescript/ls-stellations/internal/version.Version=...".
var Version = "0.2.0"

// Milestones:
// 0.2.0 - Headless summary, JSON and GeoJSON export, build report
// 0.1.0 - Initial release: sphere view, time window filter, subject panel, tooltips

// String returns the version, followed by the short VCS revision when the
// binary was built from a checkout.
func String() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Version
	}
	return withRevision(Version, info.Settings)
}

func withRevision(v string, settings []debug.BuildSetting) string {
	var rev string
	dirty := false
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev == "" {
		return v
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if dirty {
		rev += "-dirty"
	}
	return v + " (" + rev + ")"
}
