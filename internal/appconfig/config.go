// Package appconfig loads the scheduler's solver defaults from a small
// YAML file, validated the way the reference rota-generation tooling
// validates its own configuration: go-playground/validator struct tags.
package appconfig

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the solver defaults §6.1/§6.3 allow a deployment to fix
// without a request body carrying them every time.
type Config struct {
	TimeLimitSeconds   int `yaml:"timeLimitSeconds" validate:"min=1"`
	MaxNightsPerWorker int `yaml:"maxNightsPerWorker" validate:"min=0"`
	NumAlternatives    int `yaml:"numAlternatives" validate:"min=0"`
	AlternativeBufferSize int `yaml:"alternativeBufferSize" validate:"min=1"`
}

// Default returns the §6.1 defaults (time_limit_seconds=10,
// max_nights_per_worker=3, num_alternatives=20) with a modest streaming
// buffer size.
func Default() Config {
	return Config{
		TimeLimitSeconds:      10,
		MaxNightsPerWorker:    3,
		NumAlternatives:       20,
		AlternativeBufferSize: 8,
	}
}

var validate = validator.New()

// LoadFromPath reads and validates a YAML config file. Missing optional
// fields keep Default's values since Config is parsed over a copy of
// Default() rather than a zero value.
func LoadFromPath(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
