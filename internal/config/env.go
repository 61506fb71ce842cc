package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvOverrides are settings read from the process environment. They
// sit between the config file and command-line flags in precedence.
type EnvOverrides struct {
	// ConfigFile points at an explicit config file from LGTM_CONFIG.
	ConfigFile string `env:"LGTM_CONFIG"`
	// Editor is the editor command from LGTM_EDITOR.
	Editor string `env:"LGTM_EDITOR"`
	// LogLevel is the log level from LGTM_LOG_LEVEL.
	LogLevel string `env:"LGTM_LOG_LEVEL"`
	// LogFormat is the log format from LGTM_LOG_FORMAT.
	LogFormat string `env:"LGTM_LOG_FORMAT"`
}

// ParseEnv fills EnvOverrides from LGTM_* env vars via caarlos0/env.
func ParseEnv() (EnvOverrides, error) {
	var overrides EnvOverrides
	if err := env.Parse(&overrides); err != nil {
		return EnvOverrides{}, fmt.Errorf("parse environment: %w", err)
	}
	return overrides, nil
}

// Overlay converts env overrides into a Config overlay for Merge.
func (e EnvOverrides) Overlay() Config {
	return Config{
		Editor: e.Editor,
		Log:    LogConfig{Level: e.LogLevel, Format: e.LogFormat},
	}
}

// LoadEnvFile loads a .env-style file into the process environment.
// Variables already set in the environment keep their values. An
// empty path is a no-op; a named file must exist.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %q: %w", path, err)
	}
	return nil
}
