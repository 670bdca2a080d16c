package dots

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v2"
)

// Params holds the tunable constants of the particle engine.
type Params struct {
	Gravity     float64 `yaml:"gravity"`
	Radius      float64 `yaml:"radius"`
	Restitution float64 `yaml:"restitution"`
	Damping     float64 `yaml:"damping"`

	StopVelocity float64 `yaml:"stop_velocity"`

	ReactionInitialWait float64 `yaml:"reaction_initial_wait"`
	ReactionDecay       float64 `yaml:"reaction_decay"`

	ExplosionEntropy     float64 `yaml:"explosion_entropy"`
	ExplosionVolatility  float64 `yaml:"explosion_volatility"`
	ExplosionChance      float64 `yaml:"explosion_chance"`
	ExplosionRadiusBase  float64 `yaml:"explosion_radius_base"`
	ExplosionRadiusScale float64 `yaml:"explosion_radius_scale"`
	ExplosionForceBase   float64 `yaml:"explosion_force_base"`
	ExplosionForceScale  float64 `yaml:"explosion_force_scale"`
	ExplosionHeatScale   float64 `yaml:"explosion_heat_scale"`

	HeatTransfer     float64 `yaml:"heat_transfer"`
	HeatInterval     float64 `yaml:"heat_interval"`
	ConductivityRamp float64 `yaml:"conductivity_ramp"`

	DecayInterval float64 `yaml:"decay_interval"`
	DecayChance   float64 `yaml:"decay_chance"`
	GlowDuration  float64 `yaml:"glow_duration"`

	GasReferenceDensity float64 `yaml:"gas_reference_density"`
	GasDiffusion        float64 `yaml:"gas_diffusion"`

	EventBuffer  int `yaml:"event_buffer"`
	ResultBuffer int `yaml:"result_buffer"`
	Lanes        int `yaml:"lanes"`
	MaxBatch     int `yaml:"max_batch"`

	SpawnCount int `yaml:"spawn_count"`
}

// Config controls the arena and engine tunables.
type Config struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Seed     int64   `yaml:"seed"`
	TimeStep float64 `yaml:"time_step"`

	Params Params `yaml:"params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:    400,
		Height:   300,
		Seed:     1337,
		TimeStep: 1.0 / 60.0,
		Params: Params{
			Gravity:              9.8 * 20,
			Radius:               2,
			Restitution:          1,
			Damping:              0.998,
			StopVelocity:         0.1,
			ReactionInitialWait:  0.1,
			ReactionDecay:        0.5,
			ExplosionEntropy:     0.8,
			ExplosionVolatility:  0.5,
			ExplosionChance:      0.01,
			ExplosionRadiusBase:  20,
			ExplosionRadiusScale: 80,
			ExplosionForceBase:   100,
			ExplosionForceScale:  400,
			ExplosionHeatScale:   1.5,
			HeatTransfer:         0.001,
			HeatInterval:         0.1,
			ConductivityRamp:     0.1,
			DecayInterval:        1,
			DecayChance:          0.001,
			GlowDuration:         5,
			GasReferenceDensity:  0.5,
			GasDiffusion:         5,
			EventBuffer:          4096,
			ResultBuffer:         8192,
			Lanes:                runtime.NumCPU(),
			MaxBatch:             256,
		},
	}
}

// floatFields maps config keys to the float tunables they control.
func (p *Params) floatFields() map[string]*float64 {
	return map[string]*float64{
		"gravity":                &p.Gravity,
		"radius":                 &p.Radius,
		"restitution":            &p.Restitution,
		"damping":                &p.Damping,
		"stop_velocity":          &p.StopVelocity,
		"reaction_initial_wait":  &p.ReactionInitialWait,
		"reaction_decay":         &p.ReactionDecay,
		"explosion_entropy":      &p.ExplosionEntropy,
		"explosion_volatility":   &p.ExplosionVolatility,
		"explosion_chance":       &p.ExplosionChance,
		"explosion_radius_base":  &p.ExplosionRadiusBase,
		"explosion_radius_scale": &p.ExplosionRadiusScale,
		"explosion_force_base":   &p.ExplosionForceBase,
		"explosion_force_scale":  &p.ExplosionForceScale,
		"explosion_heat_scale":   &p.ExplosionHeatScale,
		"heat_transfer":          &p.HeatTransfer,
		"heat_interval":          &p.HeatInterval,
		"conductivity_ramp":      &p.ConductivityRamp,
		"decay_interval":         &p.DecayInterval,
		"decay_chance":           &p.DecayChance,
		"glow_duration":          &p.GlowDuration,
		"gas_reference_density":  &p.GasReferenceDensity,
		"gas_diffusion":          &p.GasDiffusion,
	}
}

func (p *Params) intFields() map[string]*int {
	return map[string]*int{
		"event_buffer":  &p.EventBuffer,
		"result_buffer": &p.ResultBuffer,
		"lanes":         &p.Lanes,
		"max_batch":     &p.MaxBatch,
		"spawn_count":   &p.SpawnCount,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unknown keys and unparsable values are ignored.
func FromMap(cfg map[string]string) Config {
	return DefaultConfig().WithOverrides(cfg)
}

// WithOverrides returns a copy of c with the flag-style key/value pairs in
// cfg applied on top.
func (c Config) WithOverrides(cfg map[string]string) Config {
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["time_step"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.TimeStep = parsed
		}
	}
	for key, ptr := range c.Params.floatFields() {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
				*ptr = parsed
			}
		}
	}
	for key, ptr := range c.Params.intFields() {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
				*ptr = parsed
			}
		}
	}
	c.sanitize()
	return c
}

// LoadConfigFile reads a YAML tunables file layered over DefaultConfig.
func LoadConfigFile(path string) (Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.sanitize()
	return c, nil
}

// MarshalYAML renders the config in the same layout LoadConfigFile reads.
func (c Config) MarshalYAML() (interface{}, error) {
	type plain Config
	return plain(c), nil
}

func (c *Config) sanitize() {
	d := DefaultConfig()
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.TimeStep <= 0 {
		c.TimeStep = d.TimeStep
	}
	if c.Params.Radius <= 0 {
		c.Params.Radius = d.Params.Radius
	}
	if c.Params.Damping <= 0 || c.Params.Damping > 1 {
		c.Params.Damping = d.Params.Damping
	}
}
