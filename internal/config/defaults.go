package config

import "fireworks/internal/fx"

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "fireworks.yml"

// DefaultConfig returns a Config matching the built-in burst and tick constants.
func DefaultConfig() *Config {
	return &Config{
		BurstCount:   fx.BurstCount,
		SpeedMin:     fx.BurstSpeedMin,
		SpeedMax:     fx.BurstSpeedMax,
		RadiusMin:    fx.BurstRadiusMin,
		RadiusMax:    fx.BurstRadiusMax,
		DecayMin:     fx.BurstDecayMin,
		DecayMax:     fx.BurstDecayMax,
		HueMin:       fx.BurstHueMin,
		HueMax:       fx.BurstHueMax,
		Saturation:   fx.ParticleSaturation,
		Lightness:    fx.ParticleLightness,
		Gravity:      fx.Gravity,
		TrailAlpha:   fx.TrailAlpha,
		MaxParticles: fx.MaxParticles,
		Volume:       0.5,
		LogLevel:     "info",
	}
}
