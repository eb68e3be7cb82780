// Command ls-stellations is a terminal star map of biographies: every dated,
// geolocated life event is a star on a sphere, joined to the subject's next
// event by a great-circle arc.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/litescript/ls-stellations/internal/bio"
	"github.com/litescript/ls-stellations/internal/config"
	"github.com/litescript/ls-stellations/internal/fidelity"
	"github.com/litescript/ls-stellations/internal/logging"
	"github.com/litescript/ls-stellations/internal/scene"
	"github.com/litescript/ls-stellations/internal/state"
	"github.com/litescript/ls-stellations/internal/theme"
	"github.com/litescript/ls-stellations/internal/tooltip"
	"github.com/litescript/ls-stellations/internal/ui"
	"github.com/litescript/ls-stellations/internal/version"
)

var configPath string

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:           "ls-stellations",
		Short:         "Biographies as a star map in your terminal",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), v)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Config file (default ./ls-stellations.yaml)")
	flags.StringP("data", "d", "", "Biography directory")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("theme", "", "Colour theme (dark, light)")
	flags.String("device", "", "Device class (auto, full, constrained)")

	for key, flag := range map[string]string{
		config.KeyDataDir:  "data",
		config.KeyLogLevel: "log-level",
		config.KeyTheme:    "theme",
		config.KeyDevice:   "device",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}

	rootCmd.AddCommand(
		newSummaryCmd(v),
		newExportCmd(v),
		newBuildCmd(v),
	)

	return rootCmd.ExecuteContext(ctx)
}

// app is everything resolved once at startup.
type app struct {
	cfg     config.Config
	profile fidelity.Profile
	logger  *logging.Logger
	closer  io.Closer
}

// setup loads configuration, opens the logger and picks the fidelity
// profile. Headless runs log to stderr; the TUI logs to log.file or nowhere.
func setup(v *viper.Viper, headless bool) (*app, error) {
	cfg, err := config.Load(v, configPath)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	level := logging.ParseLevel(cfg.LogLevel)
	switch {
	case headless:
		a.logger = logging.NewConsole(os.Stderr, level)
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		a.logger = logging.New(f, level)
		a.closer = f
	default:
		a.logger = logging.Discard()
	}

	class, err := fidelity.Detect(cfg.Device, nil)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}
	a.profile = fidelity.SelectProfile(class)
	a.profile.BatchSize = cfg.BatchSize

	if cfg.File != "" {
		a.logger.Debug("using config %s", cfg.File)
	}
	a.logger.Info("ls-stellations %s, %s profile", version.String(), a.profile.Class)
	return a, nil
}

func (a *app) Close() {
	if a.closer != nil {
		_ = a.closer.Close()
	}
}

func (a *app) loader() *bio.Loader {
	return bio.NewLoader(a.cfg.DataDir, bio.WithLogger(a.logger))
}

func (a *app) visualization(hitScale float64) *scene.Visualization {
	return scene.New(scene.Options{
		Radius:      a.cfg.Radius,
		Profile:     a.profile,
		GridCount:   a.cfg.GridCount,
		DomeOpacity: a.cfg.DomeOpacity,
		Theme:       theme.ForName(a.cfg.Theme),
		Logger:      a.logger,
		HitScale:    hitScale,
	})
}

func (a *app) stateManager() *state.Manager {
	return state.NewManager(state.Config{
		MaxEvents:      50,
		Theme:          a.cfg.Theme,
		DomeVisible:    a.cfg.DomeVisible,
		DomeOpacity:    a.cfg.DomeOpacity,
		GridVisible:    a.cfg.GridVisible,
		CameraDistance: a.cfg.CameraDistance,
		AutoRotate:     a.cfg.AutoRotate,
		RotationSpeed:  a.cfg.RotationSpeed,
		PanSpeed:       a.cfg.PanSpeed,
	})
}

func runTUI(ctx context.Context, v *viper.Viper) error {
	a, err := setup(v, false)
	if err != nil {
		return err
	}
	defer a.Close()

	model := ui.New(ui.Options{
		Context: ctx,
		State:   a.stateManager(),
		Vis:     a.visualization(ui.CellHitScale),
		Loader:  a.loader(),
		Tooltip: tooltip.NewCoordinator(tooltip.ParseMode(a.cfg.TooltipMode), tooltip.CellPlacement()),
		Logger:  a.logger,
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
