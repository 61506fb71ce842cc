package config

// Config represents the full application configuration.
type Config struct {
	Editor      string       `yaml:"editor" mapstructure:"editor"`
	Remote      string       `yaml:"remote" mapstructure:"remote"`
	MatchPolicy string       `yaml:"match_policy" mapstructure:"match_policy"`
	Cache       CacheConfig  `yaml:"cache" mapstructure:"cache"`
	GitHub      GitHubConfig `yaml:"github" mapstructure:"github"`
	Log         LogConfig    `yaml:"log" mapstructure:"log"`
}

// CacheConfig configures the HTTP response cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// GitHubConfig configures the GitHub API client.
type GitHubConfig struct {
	// Token is the first stop in token resolution; when empty the
	// client falls back to GITHUB_TOKEN, GH_TOKEN, then `gh auth token`.
	Token string `yaml:"token" mapstructure:"token"`

	// APIURL overrides the API base URL for GitHub Enterprise.
	APIURL string `yaml:"api_url" mapstructure:"api_url"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // text, json
}

// Merge combines multiple configuration instances, prioritising the latter ones.
func Merge(configs ...Config) Config {
	result := Config{}
	for _, cfg := range configs {
		result = merge(result, cfg)
	}
	return result
}

func merge(base, overlay Config) Config {
	result := base

	if overlay.Editor != "" {
		result.Editor = overlay.Editor
	}
	if overlay.Remote != "" {
		result.Remote = overlay.Remote
	}
	if overlay.MatchPolicy != "" {
		result.MatchPolicy = overlay.MatchPolicy
	}
	result.Cache = chooseCache(base.Cache, overlay.Cache)
	result.GitHub = chooseGitHub(base.GitHub, overlay.GitHub)
	result.Log = chooseLog(base.Log, overlay.Log)

	return result
}

func chooseCache(base, overlay CacheConfig) CacheConfig {
	if overlay.Enabled || overlay.Path != "" {
		return overlay
	}
	return base
}

func chooseGitHub(base, overlay GitHubConfig) GitHubConfig {
	result := base
	if overlay.Token != "" {
		result.Token = overlay.Token
	}
	if overlay.APIURL != "" {
		result.APIURL = overlay.APIURL
	}
	return result
}

func chooseLog(base, overlay LogConfig) LogConfig {
	result := base
	if overlay.Level != "" {
		result.Level = overlay.Level
	}
	if overlay.Format != "" {
		result.Format = overlay.Format
	}
	return result
}
