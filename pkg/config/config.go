// Package config loads and validates the analysis configuration. Defaults
// match the reference study parameters; a YAML file overrides them field by
// field.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is a singleton validator instance
var validate = validator.New()

// Config carries every tunable of an analysis run. Thread it explicitly
// through calls; nothing reads it from ambient state.
type Config struct {
	// MaxTiers is the deepest tier cutoff examined by the comparator.
	MaxTiers int `yaml:"max_tiers" validate:"gte=1,lte=64"`

	// BreakdownThreshold is the collapse bound for threshold searches,
	// as a fraction of the original terminal set.
	BreakdownThreshold float64 `yaml:"breakdown_threshold" validate:"gt=0,lte=1"`

	// ThinningRatio sizes incremental deletion batches.
	ThinningRatio float64 `yaml:"thinning_ratio" validate:"gt=0,lte=1"`

	// RepeatsPerNode is the number of breakdown observations per node.
	RepeatsPerNode int `yaml:"repeats_per_node" validate:"gte=1"`

	// ReachableNodeThreshold excludes breakdown candidates whose
	// upstream-reachable set is smaller than this.
	ReachableNodeThreshold int `yaml:"reachable_node_threshold" validate:"gte=0"`

	// Rho grid for sweeps: RhoSteps values from RhoMin to RhoMax.
	RhoMin   float64 `yaml:"rho_min" validate:"gte=0,lte=1"`
	RhoMax   float64 `yaml:"rho_max" validate:"gte=0,lte=1,gtefield=RhoMin"`
	RhoSteps int     `yaml:"rho_steps" validate:"gte=1"`

	// Repeats is the number of Monte-Carlo trials per sweep.
	Repeats int `yaml:"repeats" validate:"gte=1"`

	// FailureScale is the granularity of failure injection.
	FailureScale string `yaml:"failure_scale" validate:"oneof=firm country industry country-industry"`

	// Seed is the base random seed; 0 asks the CLI to derive one.
	Seed int64 `yaml:"seed"`

	// Parallel enables the shared worker pool; Workers sizes it
	// (0 = one per CPU).
	Parallel bool `yaml:"parallel"`
	Workers  int  `yaml:"workers" validate:"gte=0"`
}

// Default returns the reference parameters.
func Default() Config {
	return Config{
		MaxTiers:               16,
		BreakdownThreshold:     0.80,
		ThinningRatio:          0.005,
		RepeatsPerNode:         20,
		ReachableNodeThreshold: 500,
		RhoMin:                 0.3,
		RhoMax:                 1.0,
		RhoSteps:               71,
		Repeats:                24,
		FailureScale:           "firm",
	}
}

// Load reads a YAML config file over the defaults and validates the result.
// An empty path returns the validated defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the struct tags and cross-field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("config field %s failed %q validation", f.Field(), f.Tag())
		}
		return err
	}
	return nil
}
