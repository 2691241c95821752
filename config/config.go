// Package config provides configuration loading and access for the sense demo.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/sense"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all demo configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Map       MapConfig       `yaml:"map"`
	Player    PlayerConfig    `yaml:"player"`
	Lights    []LightConfig   `yaml:"lights"`
	Sense     SenseConfig     `yaml:"sense"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
	CellSize  int `yaml:"cell_size"` // Pixels per grid cell in the raylib viewer
}

// MapConfig holds terrain generation parameters.
type MapConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Scale         float64 `yaml:"scale"`          // Base noise frequency
	Octaves       int     `yaml:"octaves"`        // FBM octaves
	Lacunarity    float64 `yaml:"lacunarity"`     // Frequency multiplier per octave
	Gain          float64 `yaml:"gain"`           // Amplitude multiplier per octave
	WallLevel     float64 `yaml:"wall_level"`     // Noise above this becomes wall
	FoliageLevel  float64 `yaml:"foliage_level"`  // Noise above this (and below walls) becomes foliage
	FoliageResist float64 `yaml:"foliage_resist"` // Resistance of foliage cells
	SpawnClearing int     `yaml:"spawn_clearing"` // Radius of the open area carved at the map centre
}

// PlayerConfig holds the viewer and the lantern they carry.
type PlayerConfig struct {
	SightRadius float64     `yaml:"sight_radius"`
	SightShape  string      `yaml:"sight_shape"`
	SightSpan   float64     `yaml:"sight_span"` // Degrees; 360 = unrestricted
	Lantern     LightConfig `yaml:"lantern"`
}

// LightConfig describes one sense source. Static lights use Count to scatter
// several copies over open floor.
type LightConfig struct {
	Name        string  `yaml:"name"`
	Count       int     `yaml:"count"`
	Radius      float64 `yaml:"radius"`
	Shape       string  `yaml:"shape"`
	Algorithm   string  `yaml:"algorithm"`
	Intensity   float64 `yaml:"intensity"`
	Angle       float64 `yaml:"angle"`
	Span        float64 `yaml:"span"` // 0 or 360 = unrestricted
	Subtractive bool    `yaml:"subtractive"`
}

// SenseConfig holds aggregation and ripple tuning.
type SenseConfig struct {
	MaxIntensity float64                        `yaml:"max_intensity"`
	YUp          bool                           `yaml:"y_up"`
	Ripple       map[string]sense.RippleProfile `yaml:"ripple"` // Keyed by algorithm name
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsInterval       int `yaml:"stats_interval"` // Frames between slog stats lines
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// LightSpec is a LightConfig with names resolved.
type LightSpec struct {
	Config    LightConfig
	Shape     geom.Radius
	Algorithm sense.Algorithm
}

// Restricted reports whether the light is limited to a cone.
func (l LightSpec) Restricted() bool {
	return l.Config.Span > 0 && l.Config.Span < 360
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	SightShape geom.Radius
	YAxis      geom.YAxis
	Lantern    LightSpec
	Lights     []LightSpec
	Profiles   map[sense.Algorithm]sense.RippleProfile
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
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

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Parse(nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	if path == "" {
		return Parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse merges data over the embedded defaults, validates the result and
// computes derived values.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if len(data) > 0 {
		// Only overwrites fields present in data
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later in the engines.
func (c *Config) Validate() error {
	var errs []error
	if c.Map.Width < 3 || c.Map.Height < 3 {
		errs = append(errs, fmt.Errorf("map: %dx%d is smaller than 3x3", c.Map.Width, c.Map.Height))
	}
	if c.Map.Octaves < 1 {
		errs = append(errs, fmt.Errorf("map: octaves must be at least 1"))
	}
	if c.Player.SightRadius < 0 {
		errs = append(errs, fmt.Errorf("player: %w", sense.ErrNegativeRadius))
	}
	if c.Player.SightSpan < 0 || c.Player.SightSpan > 360 {
		errs = append(errs, fmt.Errorf("player: %w", sense.ErrInvalidSpan))
	}
	if c.Sense.MaxIntensity <= 0 {
		errs = append(errs, fmt.Errorf("sense: %w", sense.ErrInvalidIntensity))
	}
	for _, l := range append([]LightSpec{c.Derived.Lantern}, c.Derived.Lights...) {
		if err := l.validate(); err != nil {
			errs = append(errs, fmt.Errorf("light %q: %w", l.Config.Name, err))
		}
	}
	for a, p := range c.Derived.Profiles {
		if err := p.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("sense.ripple.%s: %w", a, err))
		}
	}
	return errors.Join(errs...)
}

func (l LightSpec) validate() error {
	if l.Config.Radius < 0 {
		return sense.ErrNegativeRadius
	}
	if l.Config.Intensity <= 0 {
		return sense.ErrInvalidIntensity
	}
	if l.Config.Count < 0 {
		return fmt.Errorf("negative count %d", l.Config.Count)
	}
	if l.Restricted() && (l.Config.Angle < 0 || l.Config.Angle >= 360) {
		return sense.ErrInvalidAngle
	}
	return nil
}

// computeDerived resolves names into engine values.
func (c *Config) computeDerived() error {
	var err error
	if c.Derived.SightShape, err = geom.ParseRadius(c.Player.SightShape); err != nil {
		return fmt.Errorf("player.sight_shape: %w", err)
	}
	c.Derived.YAxis = geom.YDown
	if c.Sense.YUp {
		c.Derived.YAxis = geom.YUp
	}

	if c.Derived.Lantern, err = resolveLight(c.Player.Lantern); err != nil {
		return fmt.Errorf("player.lantern: %w", err)
	}
	c.Derived.Lights = make([]LightSpec, 0, len(c.Lights))
	for i, lc := range c.Lights {
		spec, err := resolveLight(lc)
		if err != nil {
			return fmt.Errorf("lights[%d]: %w", i, err)
		}
		c.Derived.Lights = append(c.Derived.Lights, spec)
	}

	// Start from the built-in profiles and overlay whatever the file names
	c.Derived.Profiles = make(map[sense.Algorithm]sense.RippleProfile)
	for _, a := range sense.Algorithms() {
		if a.IsRipple() {
			c.Derived.Profiles[a] = sense.DefaultProfile(a)
		}
	}
	for name, p := range c.Sense.Ripple {
		a, err := sense.ParseAlgorithm(name)
		if err != nil {
			return fmt.Errorf("sense.ripple: %w", err)
		}
		if !a.IsRipple() {
			return fmt.Errorf("sense.ripple: %s has no ripple profile", a)
		}
		c.Derived.Profiles[a] = p
	}
	return nil
}

func resolveLight(lc LightConfig) (LightSpec, error) {
	shape, err := geom.ParseRadius(lc.Shape)
	if err != nil {
		return LightSpec{}, err
	}
	algo, err := sense.ParseAlgorithm(lc.Algorithm)
	if err != nil {
		return LightSpec{}, err
	}
	return LightSpec{Config: lc, Shape: shape, Algorithm: algo}, nil
}

// NewSource builds a sense source at pos from the spec.
func (l LightSpec) NewSource(pos geom.Point) (*sense.SenseSource, error) {
	src, err := sense.NewSenseSource(l.Algorithm, pos, l.Config.Radius, l.Shape, l.Config.Intensity)
	if err != nil {
		return nil, fmt.Errorf("light %q: %w", l.Config.Name, err)
	}
	if l.Restricted() {
		if err := src.Restrict(l.Config.Angle, l.Config.Span); err != nil {
			return nil, fmt.Errorf("light %q: %w", l.Config.Name, err)
		}
	}
	src.SetSubtractive(l.Config.Subtractive)
	return src, nil
}

// WriteYAML writes the configuration to a YAML file.
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
