// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Board     BoardConfig     `yaml:"board"`
	Battery   BatteryConfig   `yaml:"battery"`
	Carriers  CarriersConfig  `yaml:"carriers"`
	Chemistry ChemistryConfig `yaml:"chemistry"`
	Field     FieldConfig     `yaml:"field"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// BoardConfig describes the outer conductor rectangle and the inset margin
// that places the track midline. The midline perimeter is the coordinate
// space all carriers live in.
type BoardConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"`
}

// BatteryConfig holds power-source parameters: the once-per-second drain
// rate and the footprint rectangles on the top track segment.
type BatteryConfig struct {
	DrainRate      float64 `yaml:"drain_rate"` // charge + ion budget lost per energized second
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	GapWidth       float64 `yaml:"gap_width"` // switch gap, immediately clockwise of the battery
	GapHeight      float64 `yaml:"gap_height"`
	TerminalWidth  float64 `yaml:"terminal_width"` // negative-terminal emitter region
	TerminalHeight float64 `yaml:"terminal_height"`
}

// CarriersConfig holds the stationary carrier population parameters.
type CarriersConfig struct {
	Count              int     `yaml:"count"`
	Speed              float64 `yaml:"speed"`      // track units per second while energized
	MaxOffset          float64 `yaml:"max_offset"` // perpendicular jitter, fixed at creation
	VibrationAmp       float64 `yaml:"vibration_amp"`
	VibrationPeriodMin float64 `yaml:"vibration_period_min"`
	VibrationPeriodMax float64 `yaml:"vibration_period_max"`
}

// ChemistryConfig holds transient-carrier (ion) parameters.
type ChemistryConfig struct {
	SpawnChance    float64 `yaml:"spawn_chance"` // Bernoulli probability per energized frame
	Speed          float64 `yaml:"speed"`        // units per second toward the junction
	ArrivalEpsilon float64 `yaml:"arrival_epsilon"`
}

// FieldConfig holds decorative field-marker parameters.
type FieldConfig struct {
	MarkerSpacing float64 `yaml:"marker_spacing"` // track units between markers
}

// TelemetryConfig holds stats collection settings.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32
	ScreenH32 float32
	BoardX    float64 // outer rect origin, centered on screen
	BoardY    float64
	Perimeter float64 // midline perimeter: 2*((W-2m)+(H-2m))
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.BoardX = (float64(c.Screen.Width) - c.Board.Width) / 2
	c.Derived.BoardY = (float64(c.Screen.Height) - c.Board.Height) / 2

	midW := c.Board.Width - 2*c.Board.Margin
	midH := c.Board.Height - 2*c.Board.Margin
	c.Derived.Perimeter = 2 * (midW + midH)
}

// Validate rejects misconfiguration the simulation cannot run with.
// Invalid constants are fatal at construction; nothing is silently clamped.
func (c *Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("config: screen dimensions must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.TargetFPS <= 0 {
		return fmt.Errorf("config: target_fps must be positive, got %d", c.Screen.TargetFPS)
	}

	checks := []struct {
		name  string
		value float64
	}{
		{"board.width", c.Board.Width},
		{"board.height", c.Board.Height},
		{"board.margin", c.Board.Margin},
		{"battery.drain_rate", c.Battery.DrainRate},
		{"battery.width", c.Battery.Width},
		{"battery.height", c.Battery.Height},
		{"battery.gap_width", c.Battery.GapWidth},
		{"battery.gap_height", c.Battery.GapHeight},
		{"battery.terminal_width", c.Battery.TerminalWidth},
		{"battery.terminal_height", c.Battery.TerminalHeight},
		{"carriers.speed", c.Carriers.Speed},
		{"carriers.max_offset", c.Carriers.MaxOffset},
		{"carriers.vibration_amp", c.Carriers.VibrationAmp},
		{"carriers.vibration_period_min", c.Carriers.VibrationPeriodMin},
		{"carriers.vibration_period_max", c.Carriers.VibrationPeriodMax},
		{"chemistry.spawn_chance", c.Chemistry.SpawnChance},
		{"chemistry.speed", c.Chemistry.Speed},
		{"chemistry.arrival_epsilon", c.Chemistry.ArrivalEpsilon},
		{"field.marker_spacing", c.Field.MarkerSpacing},
		{"telemetry.stats_window", c.Telemetry.StatsWindow},
	}
	for _, ck := range checks {
		if ck.value <= 0 || math.IsInf(ck.value, 0) || math.IsNaN(ck.value) {
			return fmt.Errorf("config: %s must be positive and finite, got %v", ck.name, ck.value)
		}
	}

	if c.Carriers.Count <= 0 {
		return fmt.Errorf("config: carriers.count must be positive, got %d", c.Carriers.Count)
	}
	if c.Chemistry.SpawnChance > 1 {
		return fmt.Errorf("config: chemistry.spawn_chance must be at most 1, got %v", c.Chemistry.SpawnChance)
	}
	if c.Carriers.VibrationPeriodMax < c.Carriers.VibrationPeriodMin {
		return fmt.Errorf("config: carriers.vibration_period_max must be >= vibration_period_min")
	}
	if 2*c.Board.Margin >= c.Board.Width || 2*c.Board.Margin >= c.Board.Height {
		return fmt.Errorf("config: board.margin %v leaves no midline inside a %vx%v board",
			c.Board.Margin, c.Board.Width, c.Board.Height)
	}
	if c.Board.Width > float64(c.Screen.Width) || c.Board.Height > float64(c.Screen.Height) {
		return fmt.Errorf("config: board %vx%v does not fit the %dx%d screen",
			c.Board.Width, c.Board.Height, c.Screen.Width, c.Screen.Height)
	}
	return nil
}

// WriteYAML saves the current configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
