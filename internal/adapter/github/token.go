package github

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ResolveToken returns the first credential found, checking the
// configured value, then GITHUB_TOKEN, then GH_TOKEN, then the token
// stored by the gh CLI. Authentication setup stays gh's job; this tool
// only borrows the result.
func ResolveToken(ctx context.Context, configured string) (string, error) {
	if token := strings.TrimSpace(configured); token != "" {
		return token, nil
	}

	for _, key := range []string{"GITHUB_TOKEN", "GH_TOKEN"} {
		if token := strings.TrimSpace(os.Getenv(key)); token != "" {
			return token, nil
		}
	}

	return ghAuthToken(ctx)
}

// ghAuthToken shells out to `gh auth token`. gh prints the active
// account's token on stdout and complains on stderr when logged out.
func ghAuthToken(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "gh", "auth", "token").Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("gh auth token: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("gh auth token: %w (set GITHUB_TOKEN or run `gh auth login`)", err)
	}

	token := strings.TrimSpace(string(out))
	if token == "" {
		return "", errors.New("gh auth token returned an empty token")
	}
	return token, nil
}
