package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/viper"
)

// LoaderOptions describes how configuration should be discovered.
type LoaderOptions struct {
	// ConfigFile is an explicit config path, from $LGTM_CONFIG or
	// --config. When set, the file must exist. When empty the default
	// locations are searched and a missing file is fine.
	ConfigFile string
}

// Load returns configuration merged from defaults and the config file.
func Load(opts LoaderOptions) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	configFile := opts.ConfigFile
	explicit := configFile != ""
	if !explicit {
		configFile = locateConfigFile()
	}

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			if explicit || !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	// Expand environment variables in config values
	cfg = expandEnvVars(cfg)

	return cfg, nil
}

// expandEnvVars expands ${VAR} and $VAR syntax in configuration strings.
func expandEnvVars(cfg Config) Config {
	cfg.Editor = expandEnvString(cfg.Editor)
	cfg.Cache.Path = expandEnvString(cfg.Cache.Path)
	cfg.GitHub.Token = expandEnvString(cfg.GitHub.Token)
	cfg.GitHub.APIURL = expandEnvString(cfg.GitHub.APIURL)
	return cfg
}

// expandEnvString replaces ${VAR} or $VAR with environment variable values.
func expandEnvString(s string) string {
	if s == "" {
		return s
	}

	// Replace ${VAR} syntax
	re := regexp.MustCompile(`\$\{([A-Z_][A-Z0-9_]*)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1] // Remove ${ and }
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Keep original if not found
	})

	// Replace $VAR syntax (without braces)
	re = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:] // Remove $
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Keep original if not found
	})

	return s
}

// locateConfigFile searches the default config locations in order:
// $XDG_CONFIG_HOME/lgtm/config.yaml, then ~/.config/lgtm/config.yaml.
func locateConfigFile() string {
	for _, dir := range configDirs() {
		candidate := filepath.Join(dir, "config.yaml")
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

func configDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "lgtm"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "lgtm"))
	}
	return dirs
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("remote", "origin")
	v.SetDefault("match_policy", "overlap")

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.path", DefaultCachePath())

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// DefaultCachePath places the HTTP cache under $XDG_CACHE_HOME/lgtm,
// falling back to ~/.cache/lgtm.
func DefaultCachePath() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "lgtm", "http.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "./lgtm-http.db"
	}
	return filepath.Join(home, ".cache", "lgtm", "http.db")
}
