package bio

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-stellations/internal/celestial"
)

// On-disk record structures. JSON and YAML share field names.

type rawCartesian struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

type rawEvent struct {
	Year      int           `json:"year" yaml:"year"`
	Lat       float64       `json:"lat" yaml:"lat"`
	Lon       float64       `json:"lon" yaml:"lon"`
	Info      string        `json:"info" yaml:"info"`
	ShortCode string        `json:"shortCode" yaml:"shortCode"`
	Cartesian *rawCartesian `json:"cartesian,omitempty" yaml:"cartesian,omitempty"`
}

type rawBio struct {
	Name     string     `json:"name" yaml:"name"`
	Nickname string     `json:"nickname" yaml:"nickname"`
	Category string     `json:"category,omitempty" yaml:"category,omitempty"`
	Events   []rawEvent `json:"events" yaml:"events"`
}

// Format identifies a bio record encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath infers the record format from a file extension.
func FormatForPath(name string) (Format, bool) {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

// Parse decodes a single bio record. category overrides any category in the
// record itself; an empty category falls back to the record's, then to
// DefaultCategory. The result is validated.
func Parse(data []byte, format Format, category string) (Subject, error) {
	var raw rawBio
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return Subject{}, fmt.Errorf("unmarshal bio JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Subject{}, fmt.Errorf("unmarshal bio YAML: %w", err)
		}
	default:
		return Subject{}, fmt.Errorf("unsupported bio format %q", format)
	}

	subject := raw.toSubject(category)
	if err := ValidateSubject(subject); err != nil {
		return Subject{}, err
	}
	return subject, nil
}

func (r rawBio) toSubject(category string) Subject {
	if category == "" {
		category = r.Category
	}
	if category == "" {
		category = DefaultCategory
	}

	s := Subject{
		ID:       strings.TrimSpace(r.Name),
		Nickname: strings.TrimSpace(r.Nickname),
		Category: category,
		Events:   make([]Event, 0, len(r.Events)),
	}
	for _, re := range r.Events {
		e := Event{
			Year:      re.Year,
			Lat:       re.Lat,
			Lon:       re.Lon,
			Info:      re.Info,
			ShortCode: re.ShortCode,
		}
		if re.Cartesian != nil {
			e.Cartesian = &celestial.Vec3{X: re.Cartesian.X, Y: re.Cartesian.Y, Z: re.Cartesian.Z}
		}
		s.Events = append(s.Events, e)
	}
	return s
}
