// Package export writes loaded biographies and build results for headless
// use: a text summary, a JSON dump and GeoJSON timelines.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-stellations/internal/bio"
	"github.com/litescript/ls-stellations/internal/scene"
)

// DatasetExport is the JSON-serializable representation of a dataset.
type DatasetExport struct {
	Source   string          `json:"source"`
	LoadedAt time.Time       `json:"loaded_at"`
	Subjects []SubjectExport `json:"subjects"`
}

// SubjectExport is a JSON-friendly subject with its events in year order.
type SubjectExport struct {
	Name      string        `json:"name"`
	Nickname  string        `json:"nickname,omitempty"`
	Category  string        `json:"category"`
	FirstYear int           `json:"first_year"`
	LastYear  int           `json:"last_year"`
	Events    []EventExport `json:"events"`
}

// EventExport is a JSON-friendly event.
type EventExport struct {
	Year      int     `json:"year"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Info      string  `json:"info"`
	ShortCode string  `json:"short_code,omitempty"`

	Cartesian *CartesianExport `json:"cartesian,omitempty"`
}

// CartesianExport is an event position on the precompute sphere.
type CartesianExport struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ExportDataset converts a dataset to an exportable format.
func ExportDataset(data *bio.Dataset) *DatasetExport {
	return ExportDatasetAt(data, 0)
}

// ExportDatasetAt is ExportDataset with each event's cartesian position on
// a sphere of the given radius. A radius <= 0 omits positions.
func ExportDatasetAt(data *bio.Dataset, radius float64) *DatasetExport {
	if data == nil {
		return &DatasetExport{}
	}

	export := &DatasetExport{
		Source:   data.Source,
		LoadedAt: data.LoadedAt,
		Subjects: make([]SubjectExport, 0, len(data.Subjects)),
	}
	for _, s := range data.Subjects {
		first, last, _ := s.YearSpan()
		se := SubjectExport{
			Name:      s.ID,
			Nickname:  s.Nickname,
			Category:  s.Category,
			FirstYear: first,
			LastYear:  last,
		}
		for _, e := range s.SortedEvents() {
			ee := EventExport{
				Year:      e.Year,
				Lat:       e.Lat,
				Lon:       e.Lon,
				Info:      e.Info,
				ShortCode: e.ShortCode,
			}
			if radius > 0 {
				p := e.Position(radius)
				ee.Cartesian = &CartesianExport{X: p.X, Y: p.Y, Z: p.Z}
			}
			se.Events = append(se.Events, ee)
		}
		export.Subjects = append(export.Subjects, se)
	}
	return export
}

// WriteJSON writes the dataset as JSON to the given writer.
func (d *DatasetExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// SummaryRow represents one row in the summary table.
type SummaryRow struct {
	Category string
	Subject  string
	Events   int
	Span     string
}

// GenerateSummaryRows creates one row per subject, grouped by category in
// first-seen order.
func GenerateSummaryRows(data *bio.Dataset) []SummaryRow {
	if data == nil {
		return nil
	}

	var rows []SummaryRow
	for _, cat := range data.Categories() {
		for _, id := range data.SubjectIDs(cat) {
			s, _ := data.Subject(id)
			rows = append(rows, SummaryRow{
				Category: cat,
				Subject:  s.DisplayName(),
				Events:   len(s.Events),
				Span:     formatSpan(s),
			})
		}
	}
	return rows
}

func formatSpan(s bio.Subject) string {
	first, last, ok := s.YearSpan()
	if !ok {
		return "-"
	}
	if first == last {
		return fmt.Sprintf("%d", first)
	}
	return fmt.Sprintf("%d–%d", first, last)
}

// WriteSummaryTable writes a text table to the given writer.
func WriteSummaryTable(w io.Writer, data *bio.Dataset) {
	rows := GenerateSummaryRows(data)

	source := ""
	if data != nil {
		source = data.Source
	}
	fmt.Fprintf(w, "Biographies @ %s\n", source)
	fmt.Fprintln(w, strings.Repeat("─", 64))

	if len(rows) == 0 {
		fmt.Fprintln(w, "No subjects loaded")
		return
	}

	// Header
	fmt.Fprintf(w, "%-14s %-28s %6s  %-12s\n", "Category", "Subject", "Events", "Years")
	fmt.Fprintln(w, strings.Repeat("─", 64))

	// Rows
	for _, r := range rows {
		fmt.Fprintf(w, "%-14s %-28s %6d  %-12s\n",
			truncateStr(r.Category, 14),
			truncateStr(r.Subject, 28),
			r.Events,
			r.Span,
		)
	}

	first, last, _ := data.YearRange()
	fmt.Fprintf(w, "\nTotal: %d subjects, %d events, %d categories, years %d to %d\n",
		len(rows), data.EventCount(), len(data.Categories()), first, last)
}

// WriteBuildReport writes the primitive counts of a finished build.
func WriteBuildReport(w io.Writer, profile string, stats scene.Stats, elapsed time.Duration) {
	fmt.Fprintf(w, "Build (%s profile) %s in %s\n", profile, stats.Phase, elapsed.Round(time.Microsecond))
	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintf(w, "%-12s %8d\n", "Stars", stats.Stars)
	fmt.Fprintf(w, "%-12s %8d\n", "Labels", stats.Labels)
	fmt.Fprintf(w, "%-12s %8d\n", "Arcs", stats.Arcs)
	fmt.Fprintf(w, "%-12s %8d\n", "Grid lines", stats.GridLines)
	fmt.Fprintf(w, "%-12s %8d\n", "Geometries", stats.Cache.Geometries)
	fmt.Fprintf(w, "%-12s %8d\n", "Materials", stats.Cache.Materials)
	fmt.Fprintf(w, "%-12s %7.0f%%\n", "Cache hits", hitRate(stats.Cache)*100)
}

func hitRate(c scene.CacheStats) float64 {
	total := c.Hits + c.Misses
	if total == 0 {
		return 0
	}
	return float64(c.Hits) / float64(total)
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-2]) + ".."
}
