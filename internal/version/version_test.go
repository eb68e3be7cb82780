package version

import (
	"runtime/debug"
	"testing"
)

func TestWithRevision(t *testing.T) {
	tests := []struct {
		name     string
		settings []debug.BuildSetting
		want     string
	}{
		{"no vcs", nil, "1.0.0"},
		{"clean", []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}}, "1.0.0 (0123456)"},
		{"dirty", []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc"},
			{Key: "vcs.modified", Value: "true"},
		}, "1.0.0 (abc-dirty)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := withRevision("1.0.0", tt.settings); got != tt.want {
				t.Errorf("withRevision() = %q, want %q", got, tt.want)
			}
		})
	}
}
