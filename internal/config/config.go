// Package config loads and validates the stavis configuration file. All path
// and clock constants live here; they are fixed for a running session and
// only change via the config file (optionally picked up live by Watcher).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"stavis/internal/timing"
)

// Config is the root configuration.
type Config struct {
	Path    PathConfig    `yaml:"path"`
	Clock   ClockConfig   `yaml:"clock"`
	Chart   ChartConfig   `yaml:"chart"`
	Server  ServerConfig  `yaml:"server"`
	Journal JournalConfig `yaml:"journal"`
	Logging LoggingConfig `yaml:"logging"`
}

// PathConfig holds the data-path delay constants.
type PathConfig struct {
	BaseDelay           float64 `yaml:"base_delay"`             // normal buffer delay, ns
	LVTFactor           float64 `yaml:"lvt_factor"`             // low-threshold delay multiplier
	HVTFactor           float64 `yaml:"hvt_factor"`             // high-threshold delay multiplier
	FlopToFlopBaseDelay float64 `yaml:"flop_to_flop_base_delay"` // fixed net delay, ns
	SetupTimePenalty    float64 `yaml:"setup_time_penalty"`      // ns, subtracted when setup check is on
	MaxChainLength      int     `yaml:"max_chain_length"`        // 0 = unbounded
}

// ClockConfig holds the clock constants.
type ClockConfig struct {
	Period      float64 `yaml:"period"`       // ns
	LaunchDelay float64 `yaml:"launch_delay"` // launch clock offset, ns
}

// ChartConfig holds the waveform sampling window.
type ChartConfig struct {
	WindowEnd float64 `yaml:"window_end"` // ns
	Step      float64 `yaml:"step"`       // ns
}

// ServerConfig holds the HTTP API settings for serve mode.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// JournalConfig holds the event journal settings.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Verbose bool `yaml:"verbose"`
}

// Default returns the built-in configuration: a 5 ns clock, 0.5 ns buffers
// with 0.7/1.3 threshold factors, a 0.2 ns setup penalty, and a two-period
// waveform window sampled every 0.1 ns.
func Default() Config {
	return Config{
		Path: PathConfig{
			BaseDelay:           0.5,
			LVTFactor:           0.7,
			HVTFactor:           1.3,
			FlopToFlopBaseDelay: 0.0,
			SetupTimePenalty:    0.2,
			MaxChainLength:      0,
		},
		Clock: ClockConfig{
			Period:      5.0,
			LaunchDelay: 0.0,
		},
		Chart: ChartConfig{
			WindowEnd: 10.0,
			Step:      0.1,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8717",
		},
		Journal: JournalConfig{
			Enabled: false,
			Path:    filepath.Join(".stavis", "journal.db"),
		},
	}
}

// Load reads the config file at path, layering it over the defaults. A
// missing file is not an error; you get the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories as needed.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects constants that would make the engine output meaningless.
func (c Config) Validate() error {
	if c.Clock.Period <= 0 {
		return fmt.Errorf("clock period must be positive, got %v", c.Clock.Period)
	}
	if c.Path.BaseDelay < 0 {
		return fmt.Errorf("base delay must be non-negative, got %v", c.Path.BaseDelay)
	}
	if c.Path.LVTFactor <= 0 || c.Path.HVTFactor <= 0 {
		return fmt.Errorf("threshold factors must be positive, got lvt=%v hvt=%v",
			c.Path.LVTFactor, c.Path.HVTFactor)
	}
	if c.Path.SetupTimePenalty < 0 {
		return fmt.Errorf("setup time penalty must be non-negative, got %v", c.Path.SetupTimePenalty)
	}
	if c.Path.FlopToFlopBaseDelay < 0 {
		return fmt.Errorf("flop-to-flop base delay must be non-negative, got %v", c.Path.FlopToFlopBaseDelay)
	}
	if c.Path.MaxChainLength < 0 {
		return fmt.Errorf("max chain length must be non-negative, got %v", c.Path.MaxChainLength)
	}
	if c.Chart.Step <= 0 {
		return fmt.Errorf("chart step must be positive, got %v", c.Chart.Step)
	}
	if c.Chart.WindowEnd < c.Chart.Step {
		return fmt.Errorf("chart window must cover at least one step, got window=%v step=%v",
			c.Chart.WindowEnd, c.Chart.Step)
	}
	return nil
}

// Catalog builds the engine delay catalog from the path constants.
func (c Config) Catalog() timing.Catalog {
	return timing.Catalog{
		BaseDelay: c.Path.BaseDelay,
		LVTFactor: c.Path.LVTFactor,
		HVTFactor: c.Path.HVTFactor,
	}
}

// Constants builds the engine constants from the clock, path, and chart
// settings.
func (c Config) Constants() timing.Constants {
	return timing.Constants{
		ClockPeriod:         c.Clock.Period,
		FlopToFlopBaseDelay: c.Path.FlopToFlopBaseDelay,
		SetupTimePenalty:    c.Path.SetupTimePenalty,
		LaunchClockDelay:    c.Clock.LaunchDelay,
		WindowEnd:           c.Chart.WindowEnd,
		Step:                c.Chart.Step,
	}
}
