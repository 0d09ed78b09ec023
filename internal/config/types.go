package config

// Config is the fireworks configuration, corresponding to fireworks.yml.
type Config struct {
	BurstCount int     `yaml:"burst_count" koanf:"burst_count"`
	SpeedMin   float64 `yaml:"speed_min" koanf:"speed_min"`
	SpeedMax   float64 `yaml:"speed_max" koanf:"speed_max"`
	RadiusMin  float64 `yaml:"radius_min" koanf:"radius_min"`
	RadiusMax  float64 `yaml:"radius_max" koanf:"radius_max"`
	DecayMin   float64 `yaml:"decay_min" koanf:"decay_min"`
	DecayMax   float64 `yaml:"decay_max" koanf:"decay_max"`
	HueMin     float64 `yaml:"hue_min" koanf:"hue_min"`
	HueMax     float64 `yaml:"hue_max" koanf:"hue_max"`

	Saturation float64 `yaml:"saturation" koanf:"saturation"`
	Lightness  float64 `yaml:"lightness" koanf:"lightness"`
	Gravity    float64 `yaml:"gravity" koanf:"gravity"`
	TrailAlpha float64 `yaml:"trail_alpha" koanf:"trail_alpha"`

	// MaxParticles caps the live collection, oldest dropped first. 0 disables the cap.
	MaxParticles int `yaml:"max_particles" koanf:"max_particles"`

	// Seed for the burst RNG; 0 seeds from the clock.
	Seed uint64 `yaml:"seed" koanf:"seed"`

	Sound  bool    `yaml:"sound" koanf:"sound"`
	Volume float64 `yaml:"volume" koanf:"volume"`

	// Desktop overlay size; 0 uses the primary monitor.
	WindowWidth  int `yaml:"window_width" koanf:"window_width"`
	WindowHeight int `yaml:"window_height" koanf:"window_height"`

	LogLevel string `yaml:"log_level" koanf:"log_level"`
}
