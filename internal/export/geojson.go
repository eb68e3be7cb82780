package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/peterstace/simplefeatures/geom"

	"github.com/litescript/ls-stellations/internal/bio"
	"github.com/litescript/ls-stellations/internal/celestial"
)

// GeoJSON feature kinds, stored in the "kind" property.
const (
	KindEvent    = "event"
	KindTimeline = "timeline"
)

// GeoJSONOptions controls timeline densification.
type GeoJSONOptions struct {
	// Segments is the number of great-circle steps between consecutive
	// events. Values below 1 draw straight lon/lat segments.
	Segments int
}

// Timelines builds a feature collection with a Point per event and, for
// subjects whose events visit at least two places, a LineString following
// the great circles between them. Coordinates are lon/lat in degrees.
func Timelines(data *bio.Dataset, opts GeoJSONOptions) (geom.GeoJSONFeatureCollection, error) {
	fc := geom.GeoJSONFeatureCollection{}
	if data == nil {
		return fc, nil
	}

	for _, s := range data.Subjects {
		events := s.SortedEvents()
		for _, e := range events {
			pt, err := geom.XY{X: e.Lon, Y: e.Lat}.AsPoint()
			if err != nil {
				return nil, fmt.Errorf("event %s/%d: %w", s.ID, e.Year, err)
			}
			fc = append(fc, geom.GeoJSONFeature{
				Geometry: pt.AsGeometry(),
				ID:       fmt.Sprintf("%s/%d", s.ID, e.Year),
				Properties: map[string]interface{}{
					"kind":       KindEvent,
					"subject":    s.ID,
					"category":   s.Category,
					"year":       e.Year,
					"info":       e.Info,
					"short_code": e.ShortCode,
				},
			})
		}

		coords := timelineCoords(events, opts.Segments)
		if distinctXY(coords) < 2 {
			// Every event is in one place; the event points already say so.
			continue
		}
		ls, err := geom.NewLineString(geom.NewSequence(coords, geom.DimXY))
		if err != nil {
			return nil, fmt.Errorf("timeline %s: %w", s.ID, err)
		}
		first, last, _ := s.YearSpan()
		fc = append(fc, geom.GeoJSONFeature{
			Geometry: ls.AsGeometry(),
			ID:       s.ID,
			Properties: map[string]interface{}{
				"kind":       KindTimeline,
				"subject":    s.ID,
				"nickname":   s.DisplayName(),
				"category":   s.Category,
				"first_year": first,
				"last_year":  last,
				"events":     len(events),
			},
		})
	}
	return fc, nil
}

// timelineCoords flattens the densified path through events into lon/lat
// pairs.
func timelineCoords(events []bio.Event, segments int) []float64 {
	if len(events) == 0 {
		return nil
	}
	coords := []float64{events[0].Lon, events[0].Lat}
	for i := 1; i < len(events); i++ {
		a, b := events[i-1], events[i]
		if segments > 1 && (a.Lat != b.Lat || a.Lon != b.Lon) {
			start := celestial.Project(a.Lat, a.Lon, 1)
			end := celestial.Project(b.Lat, b.Lon, 1)
			step := 0
			for p := range celestial.InterpolateArc(start, end, 1, segments) {
				// Skip the leg's endpoints; both are written exactly.
				if step > 0 && step < segments {
					lat, lon := celestial.Unproject(p)
					coords = append(coords, lon, lat)
				}
				step++
			}
		}
		coords = append(coords, b.Lon, b.Lat)
	}
	return coords
}

func distinctXY(coords []float64) int {
	seen := make(map[geom.XY]struct{})
	for i := 0; i+1 < len(coords); i += 2 {
		seen[geom.XY{X: coords[i], Y: coords[i+1]}] = struct{}{}
	}
	return len(seen)
}

// WriteGeoJSON writes the timelines feature collection.
func WriteGeoJSON(w io.Writer, data *bio.Dataset, opts GeoJSONOptions) error {
	fc, err := Timelines(data, opts)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fc)
}
