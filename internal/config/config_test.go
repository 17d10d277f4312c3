package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/orbit/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orbit.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[simulation]
mode = "performance"
tick_rate = 120

[tuning]
move_speed = 6.5

[performance]
count = 500
bob = false
color_cycle = true

[stress]
duration = "2s"

[logging]
level = "debug"
format = "json"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "performance", cfg.Simulation.Mode)
	assert.Equal(t, 120, cfg.Simulation.TickRate)
	assert.Equal(t, 6.5, cfg.Tuning.MoveSpeed)
	assert.Equal(t, 0.005, cfg.Tuning.RotateSensitivity, "untouched keys keep defaults")
	assert.Equal(t, 500, cfg.Performance.Count)
	assert.False(t, cfg.Performance.Bob)
	assert.True(t, cfg.Performance.Rotate)
	assert.True(t, cfg.Performance.ColorCycle)
	assert.True(t, cfg.Performance.Animate)
	assert.Equal(t, 2*time.Second, cfg.Stress.Duration)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 1280, cfg.Window.Width)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", "[simulation\nmode = "},
		{"unknown mode", "[simulation]\nmode = \"warp\"\n"},
		{"bad tick rate", "[simulation]\ntick_rate = 0\n"},
		{"inverted scale range", "[tuning]\nmin_scale = 4.0\nmax_scale = 1.0\n"},
		{"zero columns", "[performance]\ncolumns = 0\n"},
		{"negative stress entities", "[stress]\nentities = -1\n"},
		{"zero stress duration", "[stress]\nduration = \"0s\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})
}

func TestValidMode(t *testing.T) {
	for _, mode := range []string{"spin", "scale", "combo", "performance"} {
		assert.True(t, config.ValidMode(mode), mode)
	}
	assert.False(t, config.ValidMode(""))
	assert.False(t, config.ValidMode("Spin"))
}

func TestNewLogger(t *testing.T) {
	t.Run("console", func(t *testing.T) {
		logger, err := config.NewLogger(config.LoggingConfig{Level: "warn", Format: "console"})
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("json", func(t *testing.T) {
		logger, err := config.NewLogger(config.LoggingConfig{Level: "debug", Format: "json"})
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("bad level falls back to info", func(t *testing.T) {
		logger, err := config.NewLogger(config.LoggingConfig{Level: "loud"})
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	})
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	cfg, err := config.Load("../../orbit.toml")
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), cfg)
}
