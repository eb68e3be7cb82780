package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-stellations/internal/bio"
	"github.com/litescript/ls-stellations/internal/fidelity"
	"github.com/litescript/ls-stellations/internal/scene"
)

func testDataset() *bio.Dataset {
	return &bio.Dataset{
		Source:   "bios",
		LoadedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Subjects: []bio.Subject{
			{
				ID: "Albert Einstein", Nickname: "Einstein", Category: "Famous",
				Events: []bio.Event{
					{Year: 1905, Lat: 46.95, Lon: 7.45, Info: "Bern", ShortCode: "BRN"},
					{Year: 1879, Lat: 48.40, Lon: 9.99, Info: "Ulm", ShortCode: "ULM"},
					{Year: 1933, Lat: 40.35, Lon: -74.66, Info: "Princeton", ShortCode: "PRN"},
				},
			},
			{
				ID: "Anna Weiss", Category: "Centropa",
				Events: []bio.Event{{Year: 1910, Lat: 48.2, Lon: 16.37, Info: "Vienna"}},
			},
			{ID: "Nobody", Category: "Famous"},
		},
	}
}

func TestExportDataset(t *testing.T) {
	exp := ExportDataset(testDataset())

	assert.Equal(t, "bios", exp.Source)
	require.Len(t, exp.Subjects, 3)

	ein := exp.Subjects[0]
	assert.Equal(t, 1879, ein.FirstYear)
	assert.Equal(t, 1933, ein.LastYear)
	require.Len(t, ein.Events, 3)
	assert.Equal(t, "ULM", ein.Events[0].ShortCode, "events are in year order")

	var buf bytes.Buffer
	require.NoError(t, exp.WriteJSON(&buf))

	var decoded DatasetExport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Princeton", decoded.Subjects[0].Events[2].Info)
}

func TestExportDatasetAt_Cartesian(t *testing.T) {
	assert.Nil(t, ExportDataset(testDataset()).Subjects[1].Events[0].Cartesian)

	exp := ExportDatasetAt(testDataset(), 100)
	c := exp.Subjects[1].Events[0].Cartesian
	require.NotNil(t, c)
	assert.InDelta(t, 100, math.Sqrt(c.X*c.X+c.Y*c.Y+c.Z*c.Z), 1e-9)
	assert.InDelta(t, 100*math.Sin(48.2*math.Pi/180), c.Y, 1e-9)
}

func TestExportDataset_Nil(t *testing.T) {
	exp := ExportDataset(nil)
	assert.Empty(t, exp.Subjects)
}

func TestGenerateSummaryRows(t *testing.T) {
	rows := GenerateSummaryRows(testDataset())
	require.Len(t, rows, 3)

	assert.Equal(t, SummaryRow{Category: "Famous", Subject: "Einstein", Events: 3, Span: "1879–1933"}, rows[0])
	assert.Equal(t, SummaryRow{Category: "Famous", Subject: "Nobody", Events: 0, Span: "-"}, rows[1])
	assert.Equal(t, SummaryRow{Category: "Centropa", Subject: "Anna Weiss", Events: 1, Span: "1910"}, rows[2])

	assert.Nil(t, GenerateSummaryRows(nil))
}

func TestWriteSummaryTable(t *testing.T) {
	var buf bytes.Buffer
	WriteSummaryTable(&buf, testDataset())
	out := buf.String()

	assert.Contains(t, out, "Biographies @ bios")
	assert.Contains(t, out, "Einstein")
	assert.Contains(t, out, "Centropa")
	assert.Contains(t, out, "Total: 3 subjects, 4 events, 2 categories, years 1879 to 1933")
}

func TestWriteSummaryTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	WriteSummaryTable(&buf, &bio.Dataset{Source: "empty"})
	assert.Contains(t, buf.String(), "No subjects loaded")
}

func TestWriteBuildReport(t *testing.T) {
	stats := scene.Stats{
		Phase: scene.PhaseBuilt, Stars: 4, Labels: 4, Arcs: 2, GridLines: 41,
		Cache: scene.CacheStats{Geometries: 1, Materials: 4, Hits: 3, Misses: 5},
	}

	var buf bytes.Buffer
	WriteBuildReport(&buf, fidelity.DeviceFull.String(), stats, 1500*time.Microsecond)
	out := buf.String()

	assert.Contains(t, out, "Build (full profile) built in 1.5ms")
	assert.Contains(t, out, "Grid lines")
	assert.Contains(t, out, "38%")
}

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"much longer name", 10, "much lon.."},
		{"Schrödinger", 6, "Schr.."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncateStr(tt.in, tt.max))
	}
}

type featureJSON struct {
	Type     string `json:"type"`
	Features []struct {
		ID       any `json:"id"`
		Geometry struct {
			Type        string          `json:"type"`
			Coordinates json.RawMessage `json:"coordinates"`
		} `json:"geometry"`
		Properties map[string]any `json:"properties"`
	} `json:"features"`
}

func TestWriteGeoJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, testDataset(), GeoJSONOptions{Segments: 4}))

	var fc featureJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)

	var points, lines int
	for _, f := range fc.Features {
		switch f.Geometry.Type {
		case "Point":
			points++
			assert.Equal(t, KindEvent, f.Properties["kind"])
		case "LineString":
			lines++
			assert.Equal(t, KindTimeline, f.Properties["kind"])
			assert.Equal(t, "Albert Einstein", f.Properties["subject"])

			var coords [][]float64
			require.NoError(t, json.Unmarshal(f.Geometry.Coordinates, &coords))
			// 1 start point + 4 steps for each of the 2 legs.
			require.Len(t, coords, 9)
			assert.InDelta(t, 9.99, coords[0][0], 1e-9)
			assert.InDelta(t, 48.40, coords[0][1], 1e-9)
			assert.InDelta(t, -74.66, coords[8][0], 1e-6)
			assert.InDelta(t, 40.35, coords[8][1], 1e-6)
		}
	}
	assert.Equal(t, 4, points)
	assert.Equal(t, 1, lines, "single-event subjects get no timeline")
}

func TestTimelines_Straight(t *testing.T) {
	fc, err := Timelines(testDataset(), GeoJSONOptions{})
	require.NoError(t, err)
	var found bool
	for _, f := range fc {
		if f.Properties["kind"] != KindTimeline {
			continue
		}
		found = true
		ls, ok := f.Geometry.AsLineString()
		require.True(t, ok)
		assert.Equal(t, 3, ls.Coordinates().Length())
	}
	assert.True(t, found)

	empty, err := Timelines(nil, GeoJSONOptions{})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestWriteGeoJSON_DegenerateTimelines(t *testing.T) {
	tests := []struct {
		name      string
		events    []bio.Event
		wantLines int
	}{
		{"single event", []bio.Event{{Year: 1900, Lat: 48.2, Lon: 16.37}}, 0},
		{"all events in one place", []bio.Event{
			{Year: 1900, Lat: 48.2, Lon: 16.37},
			{Year: 1910, Lat: 48.2, Lon: 16.37},
			{Year: 1920, Lat: 48.2, Lon: 16.37},
		}, 0},
		{"returns to the start", []bio.Event{
			{Year: 1900, Lat: 48.2, Lon: 16.37},
			{Year: 1910, Lat: 48.2, Lon: 16.37},
			{Year: 1920, Lat: 52.52, Lon: 13.40},
		}, 1},
		{"antipodal leg", []bio.Event{
			{Year: 1900, Lat: 0, Lon: 0},
			{Year: 1910, Lat: 0, Lon: 180},
		}, 1},
	}

	for _, tt := range tests {
		for _, segments := range []int{0, 8} {
			t.Run(fmt.Sprintf("%s/segments=%d", tt.name, segments), func(t *testing.T) {
				data := &bio.Dataset{Subjects: []bio.Subject{{ID: "Anna Weiss", Category: "Centropa", Events: tt.events}}}

				var buf bytes.Buffer
				require.NoError(t, WriteGeoJSON(&buf, data, GeoJSONOptions{Segments: segments}))
				assert.NotContains(t, buf.String(), "NaN")

				var fc featureJSON
				require.NoError(t, json.Unmarshal(buf.Bytes(), &fc))

				var points, lines int
				for _, f := range fc.Features {
					switch f.Geometry.Type {
					case "Point":
						points++
					case "LineString":
						lines++
						var coords [][]float64
						require.NoError(t, json.Unmarshal(f.Geometry.Coordinates, &coords))
						for _, c := range coords {
							assert.False(t, math.IsNaN(c[0]) || math.IsNaN(c[1]), "coordinate %v", c)
						}
					}
				}
				assert.Equal(t, len(tt.events), points)
				assert.Equal(t, tt.wantLines, lines)
			})
		}
	}
}
