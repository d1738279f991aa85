// Package config loads the interpreter's runtime limits: the step budget
// that resolves spec.md §9's diverging-∇ Open Question, the recursion
// depth the conformance suite exercises, and the float tolerance used when
// comparing array results. Values come from the environment (via
// github.com/caarlos0/env/v6, mirroring the teacher's caarlos0/env +
// mainer.Parser option-merging style in internal/maincmd) applied over an
// optional YAML file, so a set environment variable wins over the file.
package config

import (
	"os"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

// Config holds the ambient limits every Execute call is run under.
type Config struct {
	// MaxSteps bounds the number of tokens a single Execute call may
	// dispatch before it aborts with StepLimitExceeded. 0 means unbounded.
	MaxSteps int `env:"TIN_MAX_STEPS" yaml:"maxSteps"`

	// MaxRecursionDepth bounds nested self-reference (∇) invocations before
	// Execute aborts, independent of MaxSteps; the recursive-factorial
	// scenario of spec.md §8 needs at least 12 to match the [0,12] sweep.
	MaxRecursionDepth int `env:"TIN_MAX_RECURSION_DEPTH" yaml:"maxRecursionDepth"`

	// DefaultFloatTolerance is the absolute tolerance the conformance suite
	// uses when comparing float/array results (spec.md §8's "elementwise
	// equality within tolerance").
	DefaultFloatTolerance float64 `env:"TIN_FLOAT_TOLERANCE" yaml:"floatTolerance"`
}

// Default returns the zero-override Config: unbounded steps and recursion,
// 1e-9 float tolerance.
func Default() Config {
	return Config{DefaultFloatTolerance: 1e-9}
}

// Load reads a Config from the environment, optionally overlaying a YAML
// file first if path is non-empty. Environment variables always win over
// the file, matching the teacher's flag-over-env precedence in
// maincmd.Cmd.Main.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, err
		}
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return Config{}, err
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
