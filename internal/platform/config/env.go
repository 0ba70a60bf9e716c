// Package config loads command configuration from the environment and from
// optional YAML files, and provides the fatal-exit helper for entry points.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is shared by every environment variable the commands read.
const EnvPrefix = "RCG2CSV_"

// ParseEnv loads configuration from environment variables. Tag names are
// relative to EnvPrefix: `env:"MATCH_OUT"` reads RCG2CSV_MATCH_OUT.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
