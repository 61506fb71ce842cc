package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bkyoung/lgtm/internal/config"
)

func TestMergePrioritizesLaterConfigs(t *testing.T) {
	file := config.Config{
		Editor: "vim",
		Log:    config.LogConfig{Level: "info"},
	}
	env := config.Config{
		Log: config.LogConfig{Level: "warn"},
	}
	flags := config.Config{
		Log: config.LogConfig{Level: "debug"},
	}

	merged := config.Merge(file, env, flags)

	if merged.Log.Level != "debug" {
		t.Fatalf("expected flag level to win, got %s", merged.Log.Level)
	}
	if merged.Editor != "vim" {
		t.Fatalf("expected file editor to survive, got %s", merged.Editor)
	}
}

func TestMergeKeepsBaseWhenOverlayEmpty(t *testing.T) {
	base := config.Config{
		Remote:      "upstream",
		MatchPolicy: "exact",
		Cache:       config.CacheConfig{Enabled: true, Path: "/tmp/cache.db"},
		GitHub:      config.GitHubConfig{Token: "ghp_base"},
		Log:         config.LogConfig{Level: "debug", Format: "json"},
	}

	merged := config.Merge(base, config.Config{})

	if merged != base {
		t.Fatalf("expected base to survive an empty overlay, got %+v", merged)
	}
}

func TestMergeGitHubFieldsIndividually(t *testing.T) {
	base := config.Config{GitHub: config.GitHubConfig{Token: "ghp_base", APIURL: "https://ghe.example.com/api/v3/"}}
	overlay := config.Config{GitHub: config.GitHubConfig{Token: "ghp_overlay"}}

	merged := config.Merge(base, overlay)

	if merged.GitHub.Token != "ghp_overlay" {
		t.Fatalf("expected overlay token, got %s", merged.GitHub.Token)
	}
	if merged.GitHub.APIURL != "https://ghe.example.com/api/v3/" {
		t.Fatalf("expected base api url to survive, got %s", merged.GitHub.APIURL)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	content := `editor: "code --wait"
remote: upstream
match_policy: exact
cache:
  enabled: true
  path: /tmp/lgtm-test.db
github:
  token: ghp_from_file
  api_url: https://ghe.example.com/api/v3/
log:
  level: debug
  format: json
`
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := config.Load(config.LoaderOptions{ConfigFile: file})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Editor != "code --wait" {
		t.Errorf("expected editor from file, got %q", cfg.Editor)
	}
	if cfg.Remote != "upstream" {
		t.Errorf("expected remote from file, got %q", cfg.Remote)
	}
	if cfg.MatchPolicy != "exact" {
		t.Errorf("expected match policy from file, got %q", cfg.MatchPolicy)
	}
	if cfg.Cache.Path != "/tmp/lgtm-test.db" {
		t.Errorf("expected cache path from file, got %q", cfg.Cache.Path)
	}
	if cfg.GitHub.Token != "ghp_from_file" {
		t.Errorf("expected token from file, got %q", cfg.GitHub.Token)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("expected log format from file, got %q", cfg.Log.Format)
	}
}

func TestLoadAppliesDefaultsWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.Load(config.LoaderOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Remote != "origin" {
		t.Errorf("expected default remote origin, got %q", cfg.Remote)
	}
	if cfg.MatchPolicy != "overlap" {
		t.Errorf("expected default match policy overlap, got %q", cfg.MatchPolicy)
	}
	if !cfg.Cache.Enabled {
		t.Error("expected cache enabled by default")
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("expected default logging info/text, got %q/%q", cfg.Log.Level, cfg.Log.Format)
	}
}

func TestLoadSearchesXDGConfigDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", t.TempDir())

	dir := filepath.Join(xdg, "lgtm")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("remote: upstream\n"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := config.Load(config.LoaderOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Remote != "upstream" {
		t.Errorf("expected remote from discovered file, got %q", cfg.Remote)
	}
}

func TestLoadFailsWhenExplicitFileMissing(t *testing.T) {
	_, err := config.Load(config.LoaderOptions{
		ConfigFile: filepath.Join(t.TempDir(), "nope.yaml"),
	})
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadExpandsEnvInToken(t *testing.T) {
	t.Setenv("LGTM_TEST_SECRET", "ghp_expanded")

	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(file, []byte("github:\n  token: ${LGTM_TEST_SECRET}\n"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := config.Load(config.LoaderOptions{ConfigFile: file})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GitHub.Token != "ghp_expanded" {
		t.Errorf("expected expanded token, got %q", cfg.GitHub.Token)
	}
}
