package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"harvestsim/internal/model"
)

// Config is the process configuration: demographic coefficients, projection
// horizon, live-monitor settings, and the scenario store backend.
type Config struct {
	Biology model.Biology `yaml:"biology"`
	Horizon int           `yaml:"horizon"`
	TickHz  float64       `yaml:"tick_hz"`
	Listen  string        `yaml:"listen"`
	Store   StoreConfig   `yaml:"store"`
}

type StoreConfig struct {
	Kind string `yaml:"kind"`
	Path string `yaml:"path"`
}

// Load reads a YAML config file on top of the defaults. An empty path yields
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Default carries the reference coefficients: initial population
// (1000, 500, 200), fecundity (0, 0.8, 2.5), survival (0.5, 0.7, 0.8),
// a 50-year horizon, and a 2 Hz live tick.
func Default() Config {
	return Config{
		Biology: model.Biology{
			Initial:   model.StageVector{Juveniles: 1000, SubAdults: 500, Adults: 200},
			Fecundity: model.Fecundity{Juvenile: 0, SubAdult: 0.8, Adult: 2.5},
			Survival:  model.Survival{JuvenileToSubAdult: 0.5, SubAdultToAdult: 0.7, AdultRemain: 0.8},
		},
		Horizon: 50,
		TickHz:  2,
		Listen:  "127.0.0.1:8478",
		Store:   StoreConfig{Kind: "memory", Path: "harvestsim.db"},
	}
}

// Normalize fills unset operational fields with defaults. Biological fields
// are left alone: zero is a legitimate coefficient value.
func (c *Config) Normalize() {
	def := Default()
	if c.Horizon == 0 {
		c.Horizon = def.Horizon
	}
	if c.TickHz == 0 {
		c.TickHz = def.TickHz
	}
	if strings.TrimSpace(c.Listen) == "" {
		c.Listen = def.Listen
	}
	if strings.TrimSpace(c.Store.Kind) == "" {
		c.Store.Kind = def.Store.Kind
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		c.Store.Path = def.Store.Path
	}
}

func (c Config) Validate() error {
	if c.Horizon < 0 {
		return fmt.Errorf("horizon must be non-negative, got %d", c.Horizon)
	}
	if c.TickHz <= 0 {
		return fmt.Errorf("tick_hz must be positive, got %f", c.TickHz)
	}
	return ValidateBiology(c.Biology)
}

// ValidateBiology rejects coefficients outside the model's domain: negative
// counts or fecundities, transition probabilities outside [0, 1].
func ValidateBiology(bio model.Biology) error {
	if bio.Initial.Juveniles < 0 || bio.Initial.SubAdults < 0 || bio.Initial.Adults < 0 {
		return fmt.Errorf("initial population must be non-negative, got %+v", bio.Initial)
	}
	if bio.Fecundity.Juvenile < 0 || bio.Fecundity.SubAdult < 0 || bio.Fecundity.Adult < 0 {
		return fmt.Errorf("fecundity must be non-negative, got %+v", bio.Fecundity)
	}
	rates := map[string]float64{
		"survival.juvenile_to_sub_adult": bio.Survival.JuvenileToSubAdult,
		"survival.sub_adult_to_adult":    bio.Survival.SubAdultToAdult,
		"survival.adult_remain":          bio.Survival.AdultRemain,
	}
	for name, rate := range rates {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %f", name, rate)
		}
	}
	return nil
}
