// Package theme defines the dark and light colour schemes.
package theme

import (
	"fmt"
	"strings"
)

// Name identifies a colour scheme.
type Name string

const (
	Dark  Name = "dark"
	Light Name = "light"
)

// Theme is a colour scheme. Colours are #rrggbb hex strings.
type Theme struct {
	Name       Name
	Background string
	Text       string
	Line       string // geodesic grid lines
	Equator    string
	Dome       string
	Muted      string // secondary UI text

	TooltipBackground string
	TooltipText       string
	TooltipBorder     string
}

// DarkTheme is the default scheme.
func DarkTheme() Theme {
	return Theme{
		Name:              Dark,
		Background:        "#000000",
		Text:              "#ffffff",
		Line:              "#3a3a3a",
		Equator:           "#5a5a5a",
		Dome:              "#1a1a1a",
		Muted:             "#6c6c8a",
		TooltipBackground: "#141414",
		TooltipText:       "#ffffff",
		TooltipBorder:     "#4d4d4d",
	}
}

// LightTheme is the light scheme.
func LightTheme() Theme {
	return Theme{
		Name:              Light,
		Background:        "#ffffff",
		Text:              "#000000",
		Line:              "#c6c6c6",
		Equator:           "#a6a6a6",
		Dome:              "#e6e6e6",
		Muted:             "#6a6a80",
		TooltipBackground: "#f2f2f2",
		TooltipText:       "#000000",
		TooltipBorder:     "#b3b3b3",
	}
}

// ForName returns the scheme with the given name.
func ForName(n Name) Theme {
	if n == Light {
		return LightTheme()
	}
	return DarkTheme()
}

// Parse parses a theme name.
func Parse(s string) (Name, error) {
	switch Name(strings.ToLower(strings.TrimSpace(s))) {
	case Dark:
		return Dark, nil
	case Light:
		return Light, nil
	default:
		return Dark, fmt.Errorf("unknown theme %q", s)
	}
}

// Toggle returns the other scheme.
func (n Name) Toggle() Name {
	if n == Light {
		return Dark
	}
	return Light
}

// IsDark reports whether n is the dark scheme.
func (n Name) IsDark() bool {
	return n != Light
}
