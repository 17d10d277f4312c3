package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rotisserie/eris"
)

type Config struct {
	Window      WindowConfig      `toml:"window"`
	Simulation  SimulationConfig  `toml:"simulation"`
	Tuning      TuningConfig      `toml:"tuning"`
	Performance PerformanceConfig `toml:"performance"`
	Stress      StressConfig      `toml:"stress"`
	Logging     LoggingConfig     `toml:"logging"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type SimulationConfig struct {
	Mode     string `toml:"mode"`      // spin, scale, combo or performance
	TickRate int    `toml:"tick_rate"` // updates per second
}

type TuningConfig struct {
	MoveSpeed         float64 `toml:"move_speed"`         // units per second
	RotateSensitivity float64 `toml:"rotate_sensitivity"` // radians per pixel
	WheelSensitivity  float64 `toml:"wheel_sensitivity"`
	MinScale          float64 `toml:"min_scale"`
	MaxScale          float64 `toml:"max_scale"`
}

type PerformanceConfig struct {
	Count   int     `toml:"count"`
	Columns int     `toml:"columns"`
	Spacing float64 `toml:"spacing"`
	// Animate false registers none of the per-tile systems below.
	Animate      bool    `toml:"animate"`
	Rotate       bool    `toml:"rotate"`
	Bob          bool    `toml:"bob"`
	ColorCycle   bool    `toml:"color_cycle"`
	Speed        float64 `toml:"speed"`
	BobAmplitude float64 `toml:"bob_amplitude"`
}

type StressConfig struct {
	Duration time.Duration `toml:"duration"`
	Entities int           `toml:"entities"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads the TOML file at path over Defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, eris.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, eris.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "orbit",
		},
		Simulation: SimulationConfig{
			Mode:     "spin",
			TickRate: 60,
		},
		Tuning: TuningConfig{
			MoveSpeed:         3,
			RotateSensitivity: 0.005,
			WheelSensitivity:  0.001,
			MinScale:          0.2,
			MaxScale:          5,
		},
		Performance: PerformanceConfig{
			Count:        20000,
			Columns:      100,
			Spacing:      0.5,
			Animate:      true,
			Rotate:       true,
			Bob:          true,
			ColorCycle:   false,
			Speed:        1,
			BobAmplitude: 0.25,
		},
		Stress: StressConfig{
			Duration: 10 * time.Second,
			Entities: 50000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

var validModes = map[string]bool{
	"spin":        true,
	"scale":       true,
	"combo":       true,
	"performance": true,
}

// Validate rejects values the host cannot run with.
func (c *Config) Validate() error {
	if !validModes[c.Simulation.Mode] {
		return eris.Errorf("unknown simulation mode %q", c.Simulation.Mode)
	}
	if c.Simulation.TickRate <= 0 {
		return eris.Errorf("tick_rate must be positive, got %d", c.Simulation.TickRate)
	}
	if c.Tuning.MinScale <= 0 || c.Tuning.MinScale > c.Tuning.MaxScale {
		return eris.Errorf("scale range [%g, %g] is invalid", c.Tuning.MinScale, c.Tuning.MaxScale)
	}
	if c.Performance.Count < 0 || c.Performance.Columns <= 0 {
		return eris.New("performance count must be >= 0 and columns > 0")
	}
	if c.Stress.Entities < 0 {
		return eris.Errorf("stress entities must be >= 0, got %d", c.Stress.Entities)
	}
	if c.Stress.Duration <= 0 {
		return eris.Errorf("stress duration must be positive, got %s", c.Stress.Duration)
	}
	return nil
}

// ValidMode reports whether name is a simulation mode the host knows.
func ValidMode(name string) bool {
	return validModes[name]
}
