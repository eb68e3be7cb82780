package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/litescript/ls-stellations/internal/bio"
	"github.com/litescript/ls-stellations/internal/export"
	"github.com/litescript/ls-stellations/internal/scene"
)

func newSummaryCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print subjects, event counts and year spans",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(v, true)
			if err != nil {
				return err
			}
			defer a.Close()

			data, err := load(cmd.Context(), a)
			if err != nil {
				return err
			}
			export.WriteSummaryTable(cmd.OutOrStdout(), data)
			return nil
		},
	}
}

func newExportCmd(v *viper.Viper) *cobra.Command {
	var (
		format   string
		output   string
		segments int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write biographies as JSON or GeoJSON timelines",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "geojson" {
				return fmt.Errorf("unknown format %q, want json or geojson", format)
			}

			a, err := setup(v, true)
			if err != nil {
				return err
			}
			defer a.Close()

			data, err := load(cmd.Context(), a)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			if segments < 0 {
				segments = a.profile.ArcSegments
			}
			if err := writeExport(w, data, format, segments, a.cfg.PrecomputeRadius); err != nil {
				return fmt.Errorf("writing %s: %w", format, err)
			}
			if output != "" && output != "-" {
				a.logger.Info("wrote %s export of %d subjects to %s", format, len(data.Subjects), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "geojson", "Output format (geojson, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file (- for stdout)")
	cmd.Flags().IntVar(&segments, "segments", -1, "Great-circle steps between events (default: profile arc segments)")

	return cmd
}

func writeExport(w io.Writer, data *bio.Dataset, format string, segments int, radius float64) error {
	if format == "json" {
		return export.ExportDatasetAt(data, radius).WriteJSON(w)
	}
	return export.WriteGeoJSON(w, data, export.GeoJSONOptions{Segments: segments})
}

func newBuildCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the scene headlessly and report primitive counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(v, true)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			data, err := load(ctx, a)
			if err != nil {
				return err
			}

			vis := a.visualization(0)
			start := time.Now()
			if err := vis.BuildAll(ctx, data.Subjects); err != nil {
				return fmt.Errorf("building scene: %w", err)
			}
			elapsed := time.Since(start)

			visible := make(map[string]bool, len(data.Subjects))
			for _, s := range data.Subjects {
				visible[s.ID] = true
			}
			lo, hi, _ := data.YearRange()
			vis.UpdateVisibility(scene.FilterState{
				Window:         scene.TimeWindow{Start: lo, End: hi},
				SubjectVisible: visible,
			})

			export.WriteBuildReport(cmd.OutOrStdout(), a.profile.Class.String(), vis.Stats(), elapsed)
			vis.Dispose()
			return nil
		},
	}
}

// load reads the dataset once. The loader itself warns about each skipped
// file.
func load(ctx context.Context, a *app) (*bio.Dataset, error) {
	res := a.loader().Load(ctx)
	if res.Error != nil {
		return nil, fmt.Errorf("loading %s: %w", a.cfg.DataDir, res.Error)
	}
	a.logger.With("subjects", len(res.Data.Subjects)).
		With("skipped", len(res.Skipped)).
		Info("loaded %s in %s", a.cfg.DataDir, res.Duration.Round(time.Millisecond))
	return res.Data, nil
}
