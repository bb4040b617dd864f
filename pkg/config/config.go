// Package config loads simulator tuning parameters from YAML with
// validated defaults.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config carries every recognized simulator option. Zero values are
// filled from Default before validation, so a config file only needs
// the options it changes.
type Config struct {
	// RepeaterThreshold is the distance (km) above which the transient
	// overlay applies the repeater correction.
	RepeaterThreshold float64 `yaml:"repeater_threshold" validate:"gt=0"`

	// RepeaterFactor scales decoherence and swap-failure rates when
	// the repeater rule fires.
	RepeaterFactor float64 `yaml:"repeater_factor" validate:"gt=0,lte=1"`

	// QECThreshold is the rate above which error-correction
	// suppression kicks in.
	QECThreshold float64 `yaml:"qec_threshold" validate:"gt=0,lte=1"`

	// QECFactor scales both rates when error correction fires.
	QECFactor float64 `yaml:"qec_factor" validate:"gt=0,lte=1"`

	// BottleneckThreshold is the traffic count above which a link is
	// flagged congested.
	BottleneckThreshold int `yaml:"bottleneck_threshold" validate:"gte=1"`

	// CongestedWeight is the path-search cost of a bottleneck link.
	CongestedWeight float64 `yaml:"congested_weight" validate:"gt=1"`

	// MaxAttempts bounds evaluated walks per routing request.
	MaxAttempts int `yaml:"max_attempts" validate:"gte=1"`

	// StructuralQualityFloor marks quantum links below this fiber
	// quality as candidates for structural repeater insertion.
	StructuralQualityFloor float64 `yaml:"structural_quality_floor" validate:"gt=0,lte=1"`

	// Seed feeds the simulation's random source. Zero means seed 42,
	// matching the canonical demo runs.
	Seed int64 `yaml:"seed"`
}

// Default returns the documented default configuration.
func Default() Config {
	return Config{
		RepeaterThreshold:      70,
		RepeaterFactor:         0.5,
		QECThreshold:           0.2,
		QECFactor:              0.3,
		BottleneckThreshold:    100,
		CongestedWeight:        1000,
		MaxAttempts:            5,
		StructuralQualityFloor: 0.8,
		Seed:                   42,
	}
}

// Load reads a YAML config file over the defaults and validates the
// result. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = Default().Seed
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks every option against its allowed range.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
