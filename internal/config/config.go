package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"fireworks/internal/fx"
)

// EnvPrefix marks environment overrides, e.g. FIREWORKS_BURST_COUNT=60.
const EnvPrefix = "FIREWORKS_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (FIREWORKS_*). A missing file is not an
// error. The result is validated.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := c.YAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

func (c *Config) YAML() ([]byte, error) {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshalling config: %w", err)
	}
	return data, nil
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.BurstCount <= 0 {
		return fmt.Errorf("burst_count must be positive")
	}
	ranges := []struct {
		name     string
		min, max float64
	}{
		{"speed", c.SpeedMin, c.SpeedMax},
		{"radius", c.RadiusMin, c.RadiusMax},
		{"decay", c.DecayMin, c.DecayMax},
		{"hue", c.HueMin, c.HueMax},
	}
	for _, r := range ranges {
		if r.min < 0 {
			return fmt.Errorf("%s_min must be non-negative", r.name)
		}
		if r.max < r.min {
			return fmt.Errorf("%s_max (%g) is below %s_min (%g)", r.name, r.max, r.name, r.min)
		}
	}
	if c.DecayMin <= 0 {
		return fmt.Errorf("decay_min must be positive, particles would never expire")
	}
	if c.HueMax >= 360 {
		return fmt.Errorf("hue_max must be below 360")
	}

	unit := []struct {
		name string
		v    float64
	}{
		{"saturation", c.Saturation},
		{"lightness", c.Lightness},
		{"trail_alpha", c.TrailAlpha},
		{"volume", c.Volume},
	}
	for _, u := range unit {
		if u.v < 0 || u.v > 1 {
			return fmt.Errorf("%s must be within [0, 1], got %g", u.name, u.v)
		}
	}

	if c.Gravity < 0 {
		return fmt.Errorf("gravity must be non-negative")
	}
	if c.MaxParticles < 0 {
		return fmt.Errorf("max_particles must be non-negative")
	}
	if c.MaxParticles > 0 && c.MaxParticles < c.BurstCount {
		return fmt.Errorf("max_particles (%d) must hold at least one burst (%d)", c.MaxParticles, c.BurstCount)
	}
	if c.WindowWidth < 0 || c.WindowHeight < 0 {
		return fmt.Errorf("window size must be non-negative")
	}
	if _, ok := logLevels[c.LogLevel]; !ok {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}

// Level returns the slog level named by LogLevel, info when unknown.
func (c *Config) Level() slog.Level {
	if l, ok := logLevels[c.LogLevel]; ok {
		return l
	}
	return slog.LevelInfo
}

func (c *Config) Burst() fx.BurstParams {
	return fx.BurstParams{
		Count:     c.BurstCount,
		SpeedMin:  c.SpeedMin,
		SpeedMax:  c.SpeedMax,
		RadiusMin: c.RadiusMin,
		RadiusMax: c.RadiusMax,
		DecayMin:  c.DecayMin,
		DecayMax:  c.DecayMax,
		HueMin:    c.HueMin,
		HueMax:    c.HueMax,
	}
}

func (c *Config) Sim() fx.SimParams {
	return fx.SimParams{
		Gravity:    c.Gravity,
		TrailAlpha: c.TrailAlpha,
		Saturation: c.Saturation,
		Lightness:  c.Lightness,
	}
}

// NewSystem builds the particle collection described by the configuration.
// A zero Seed is replaced by seed.
func (c *Config) NewSystem(seed uint64) *fx.ParticleSystem {
	if c.Seed != 0 {
		seed = c.Seed
	}
	ps := fx.NewParticleSystem(c.MaxParticles, seed)
	ps.Burst = c.Burst()
	ps.Sim = c.Sim()
	return ps
}
