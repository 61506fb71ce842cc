package github_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/lgtm/internal/adapter/github"
)

func TestResolveToken_PrefersConfiguredValue(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "env-token")

	token, err := github.ResolveToken(context.Background(), "configured-token")

	require.NoError(t, err)
	assert.Equal(t, "configured-token", token)
}

func TestResolveToken_GithubTokenBeforeGhToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "github-token")
	t.Setenv("GH_TOKEN", "gh-token")

	token, err := github.ResolveToken(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, "github-token", token)
}

func TestResolveToken_FallsBackToGhToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "gh-token")

	token, err := github.ResolveToken(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, "gh-token", token)
}

func TestResolveToken_TrimsWhitespace(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "  padded-token\n")

	token, err := github.ResolveToken(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, "padded-token", token)
}

func TestResolveToken_ShellsOutToGh(t *testing.T) {
	stubGh(t, "#!/bin/sh\necho cli-token\n")
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "")

	token, err := github.ResolveToken(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, "cli-token", token)
}

func TestResolveToken_ReportsGhStderr(t *testing.T) {
	stubGh(t, "#!/bin/sh\necho 'not logged in to any hosts' >&2\nexit 1\n")
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "")

	_, err := github.ResolveToken(context.Background(), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in to any hosts")
}

// stubGh puts a fake gh executable at the front of PATH.
func stubGh(t *testing.T, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stub requires a POSIX shell")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "gh")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	t.Setenv("PATH", dir)
}
