package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-stellations/internal/theme"
)

// isolate points HOME and the working directory at empty temp dirs so no
// real config file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_DefaultValues(t *testing.T) {
	isolate(t)

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "bios", cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.LogFile)
	assert.Equal(t, 50.0, cfg.Radius)
	assert.Equal(t, 100.0, cfg.PrecomputeRadius)
	assert.Equal(t, 20, cfg.GridCount)
	assert.True(t, cfg.GridVisible)
	assert.True(t, cfg.DomeVisible)
	assert.Equal(t, 0.03, cfg.DomeOpacity)
	assert.Equal(t, theme.Dark, cfg.Theme)
	assert.Equal(t, 30.0, cfg.CameraDistance)
	assert.False(t, cfg.AutoRotate)
	assert.Equal(t, 0.001, cfg.RotationSpeed)
	assert.Equal(t, 1.0, cfg.PanSpeed)
	assert.Equal(t, "auto", cfg.Device)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, "pointer", cfg.TooltipMode)
	assert.Empty(t, cfg.File)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, `
data:
  dir: /srv/bios
log:
  level: debug
theme: light
grid:
  count: 12
  visible: false
camera:
  auto_rotate: true
device: constrained
`)

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/bios", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, theme.Light, cfg.Theme)
	assert.Equal(t, 12, cfg.GridCount)
	assert.False(t, cfg.GridVisible)
	assert.True(t, cfg.AutoRotate)
	assert.Equal(t, "constrained", cfg.Device)
	assert.Equal(t, 0.03, cfg.DomeOpacity, "unset keys keep defaults")
	assert.Equal(t, path, cfg.File)
}

func TestLoad_SearchPath(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "ls-stellations.yaml"), "dome:\n  opacity: 0.2\n")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 0.2, cfg.DomeOpacity)
	assert.Equal(t, "ls-stellations.yaml", cfg.File)
}

func TestLoad_HomeConfig(t *testing.T) {
	isolate(t)
	home := os.Getenv("HOME")
	writeFile(t, filepath.Join(home, ".config", "ls-stellations", "config.yaml"), "theme: light\n")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, theme.Light, cfg.Theme)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("STELLATIONS_THEME", "light")
	t.Setenv("STELLATIONS_GRID_COUNT", "8")
	t.Setenv("STELLATIONS_DATA_DIR", "/tmp/bios")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, theme.Light, cfg.Theme)
	assert.Equal(t, 8, cfg.GridCount)
	assert.Equal(t, "/tmp/bios", cfg.DataDir)
}

func TestLoad_MissingFile(t *testing.T) {
	isolate(t)

	_, err := Load(viper.New(), "/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"negative radius", "sphere:\n  radius: -1\n", KeyRadius},
		{"opacity too high", "dome:\n  opacity: 1.5\n", KeyDomeOpacity},
		{"negative grid", "grid:\n  count: -2\n", KeyGridCount},
		{"unknown device", "device: tablet\n", KeyDevice},
		{"zero batch", "build:\n  batch_size: 0\n", KeyBatchSize},
		{"unknown tooltip mode", "tooltip:\n  mode: hover\n", KeyTooltipMode},
		{"unknown theme", "theme: sepia\n", "unknown theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "bad.yaml")
			writeFile(t, path, tt.yaml)

			_, err := Load(viper.New(), path)
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
