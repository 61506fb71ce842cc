package git

import (
	"context"
	"fmt"
	"regexp"

	goGit "github.com/go-git/go-git/v5"

	"github.com/bkyoung/lgtm/internal/domain"
)

// Engine implements the GitEngine port backed by go-git. It reads
// local working-copy state only; it never talks to the network.
type Engine struct {
	repoDir string
}

// NewEngine constructs a Git engine for the provided repository directory.
func NewEngine(repoDir string) *Engine {
	return &Engine{repoDir: repoDir}
}

// CurrentBranch returns the name of the checked-out branch.
func (e *Engine) CurrentBranch(ctx context.Context) (string, error) {
	repo, err := goGit.PlainOpenWithOptions(e.repoDir, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repo: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	name := head.Name()
	if name.IsBranch() {
		return name.Short(), nil
	}
	return "", fmt.Errorf("detached HEAD")
}

// RemoteURL returns the first configured URL of the named remote.
func (e *Engine) RemoteURL(ctx context.Context, remoteName string) (string, error) {
	repo, err := goGit.PlainOpenWithOptions(e.repoDir, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNoGitHubRemote, err)
	}
	remote, err := repo.Remote(remoteName)
	if err != nil {
		return "", fmt.Errorf("%w: remote %q is not configured", domain.ErrNoGitHubRemote, remoteName)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("%w: remote %q has no URL", domain.ErrNoGitHubRemote, remoteName)
	}
	return urls[0], nil
}

// Repository derives the GitHub repository identity from the named
// remote's URL.
func (e *Engine) Repository(ctx context.Context, remoteName string) (domain.Repository, error) {
	url, err := e.RemoteURL(ctx, remoteName)
	if err != nil {
		return domain.Repository{}, err
	}
	return ParseGitHubRemote(url)
}

var (
	sshRemotePattern   = regexp.MustCompile(`^(?:ssh://)?git@github\.com[:/]([^/]+)/([^/]+?)(?:\.git)?$`)
	httpsRemotePattern = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)
)

// ParseGitHubRemote extracts owner and name from a GitHub remote URL
// in either SSH (git@github.com:owner/repo.git) or HTTPS
// (https://github.com/owner/repo) form.
func ParseGitHubRemote(url string) (domain.Repository, error) {
	for _, pattern := range []*regexp.Regexp{sshRemotePattern, httpsRemotePattern} {
		if match := pattern.FindStringSubmatch(url); match != nil {
			return domain.Repository{Owner: match[1], Name: match[2]}, nil
		}
	}
	return domain.Repository{}, fmt.Errorf("%w: cannot parse remote URL %q", domain.ErrNoGitHubRemote, url)
}
