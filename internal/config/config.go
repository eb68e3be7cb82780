// Package config loads ls-stellations settings from defaults, an optional
// YAML file, STELLATIONS_* environment variables and bound CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/litescript/ls-stellations/internal/theme"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// EnvPrefix is prepended to environment overrides, e.g. STELLATIONS_THEME.
const EnvPrefix = "STELLATIONS"

// Config keys.
const (
	KeyDataDir          = "data.dir"
	KeyLogLevel         = "log.level"
	KeyLogFile          = "log.file"
	KeyRadius           = "sphere.radius"
	KeyPrecomputeRadius = "sphere.precompute_radius"
	KeyGridCount        = "grid.count"
	KeyGridVisible      = "grid.visible"
	KeyDomeVisible      = "dome.visible"
	KeyDomeOpacity      = "dome.opacity"
	KeyTheme            = "theme"
	KeyCameraDistance   = "camera.distance"
	KeyAutoRotate       = "camera.auto_rotate"
	KeyRotationSpeed    = "camera.rotation_speed"
	KeyPanSpeed         = "camera.pan_speed"
	KeyDevice           = "device"
	KeyBatchSize        = "build.batch_size"
	KeyTooltipMode      = "tooltip.mode"
)

// Config is the resolved application configuration.
type Config struct {
	DataDir  string
	LogLevel string
	LogFile  string

	Radius           float64
	PrecomputeRadius float64

	GridCount   int
	GridVisible bool
	DomeVisible bool
	DomeOpacity float64
	Theme       theme.Name

	CameraDistance float64
	AutoRotate     bool
	RotationSpeed  float64
	PanSpeed       float64

	// Device is auto, full or constrained.
	Device      string
	BatchSize   int
	TooltipMode string

	// File is the config file that was read, if any.
	File string
}

// SetDefaults registers every key's default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDataDir, "bios")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")

	v.SetDefault(KeyRadius, 50.0)
	v.SetDefault(KeyPrecomputeRadius, 100.0)

	v.SetDefault(KeyGridCount, 20)
	v.SetDefault(KeyGridVisible, true)
	v.SetDefault(KeyDomeVisible, true)
	v.SetDefault(KeyDomeOpacity, 0.03)
	v.SetDefault(KeyTheme, string(theme.Dark))

	v.SetDefault(KeyCameraDistance, 30.0)
	v.SetDefault(KeyAutoRotate, false)
	v.SetDefault(KeyRotationSpeed, 0.001)
	v.SetDefault(KeyPanSpeed, 1.0)

	v.SetDefault(KeyDevice, "auto")
	v.SetDefault(KeyBatchSize, 50)
	v.SetDefault(KeyTooltipMode, "pointer")
}

// SearchPaths returns the config files tried, in order, when no explicit
// path is given.
func SearchPaths() []string {
	paths := []string{"ls-stellations.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "ls-stellations", "config.yaml"))
	}
	return paths
}

// Load resolves configuration into v and validates it. An explicit path
// must exist; otherwise the first file from SearchPaths is used when
// present.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		for _, p := range SearchPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := Config{
		DataDir:          v.GetString(KeyDataDir),
		LogLevel:         v.GetString(KeyLogLevel),
		LogFile:          v.GetString(KeyLogFile),
		Radius:           v.GetFloat64(KeyRadius),
		PrecomputeRadius: v.GetFloat64(KeyPrecomputeRadius),
		GridCount:        v.GetInt(KeyGridCount),
		GridVisible:      v.GetBool(KeyGridVisible),
		DomeVisible:      v.GetBool(KeyDomeVisible),
		DomeOpacity:      v.GetFloat64(KeyDomeOpacity),
		CameraDistance:   v.GetFloat64(KeyCameraDistance),
		AutoRotate:       v.GetBool(KeyAutoRotate),
		RotationSpeed:    v.GetFloat64(KeyRotationSpeed),
		PanSpeed:         v.GetFloat64(KeyPanSpeed),
		Device:           strings.ToLower(strings.TrimSpace(v.GetString(KeyDevice))),
		BatchSize:        v.GetInt(KeyBatchSize),
		TooltipMode:      strings.ToLower(strings.TrimSpace(v.GetString(KeyTooltipMode))),
		File:             v.ConfigFileUsed(),
	}

	name, err := theme.Parse(v.GetString(KeyTheme))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	cfg.Theme = name

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.Radius <= 0:
		return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, KeyRadius, c.Radius)
	case c.PrecomputeRadius <= 0:
		return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, KeyPrecomputeRadius, c.PrecomputeRadius)
	case c.GridCount < 0:
		return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalid, KeyGridCount, c.GridCount)
	case c.DomeOpacity < 0 || c.DomeOpacity > 1:
		return fmt.Errorf("%w: %s must be in [0, 1], got %v", ErrInvalid, KeyDomeOpacity, c.DomeOpacity)
	case c.CameraDistance <= 0:
		return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, KeyCameraDistance, c.CameraDistance)
	case c.RotationSpeed < 0:
		return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalid, KeyRotationSpeed, c.RotationSpeed)
	case c.PanSpeed <= 0:
		return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, KeyPanSpeed, c.PanSpeed)
	case c.BatchSize <= 0:
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, KeyBatchSize, c.BatchSize)
	}

	switch c.Device {
	case "auto", "full", "constrained":
	default:
		return fmt.Errorf("%w: %s must be auto, full or constrained, got %q", ErrInvalid, KeyDevice, c.Device)
	}
	switch c.TooltipMode {
	case "pointer", "touch":
	default:
		return fmt.Errorf("%w: %s must be pointer or touch, got %q", ErrInvalid, KeyTooltipMode, c.TooltipMode)
	}
	return nil
}
