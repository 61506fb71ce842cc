// Package resolve determines which repository and pull request an
// invocation is talking about, from explicit flags or from the
// checked-out branch.
package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/bkyoung/lgtm/internal/domain"
)

// GitEngine reads repository state from the local working copy.
type GitEngine interface {
	// CurrentBranch returns the short name of the checked-out branch.
	CurrentBranch(ctx context.Context) (string, error)

	// Repository parses the GitHub owner/name from the named remote.
	Repository(ctx context.Context, remoteName string) (domain.Repository, error)
}

// PullRequestFinder looks pull requests up on the forge.
type PullRequestFinder interface {
	// GetPullRequest fetches one pull request by number.
	GetPullRequest(ctx context.Context, repo domain.Repository, number int) (domain.PullRequestContext, error)

	// FindOpenByBranch returns the open pull requests whose head is
	// the given branch.
	FindOpenByBranch(ctx context.Context, repo domain.Repository, branch string) ([]domain.PullRequestContext, error)
}

// Request carries the user's explicit choices. Zero values mean
// "detect from the working copy".
type Request struct {
	// Number is the pull request number from --pr, 0 to detect.
	Number int

	// RepoOverride is an owner/name from --repo, empty to read the
	// git remote.
	RepoOverride string

	// Remote is the git remote to inspect. Empty means origin.
	Remote string
}

// Resolver turns a Request into a concrete pull request context.
type Resolver struct {
	git    GitEngine
	finder PullRequestFinder
	logger *slog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(git GitEngine, finder PullRequestFinder, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{git: git, finder: finder, logger: logger}
}

// Resolve finds the repository and pull request for this invocation.
//
// With an explicit number the pull request is fetched directly and a
// missing one is domain.ErrPRNotFound. Without one, the checked-out
// branch must have exactly one open pull request: zero is
// domain.ErrNoPRDetected, more than one is domain.ErrAmbiguousPR.
func (r *Resolver) Resolve(ctx context.Context, req Request) (domain.PullRequestContext, error) {
	repo, err := r.resolveRepository(ctx, req)
	if err != nil {
		return domain.PullRequestContext{}, err
	}

	if req.Number > 0 {
		pr, err := r.finder.GetPullRequest(ctx, repo, req.Number)
		if err != nil {
			return domain.PullRequestContext{}, err
		}
		r.logger.Debug("resolved pull request", "repo", repo, "pr", pr.Number, "source", "flag")
		return pr, nil
	}

	branch, err := r.git.CurrentBranch(ctx)
	if err != nil {
		return domain.PullRequestContext{}, fmt.Errorf("%w: cannot detect the current branch (%v); pass --pr", domain.ErrNoPRDetected, err)
	}

	matches, err := r.finder.FindOpenByBranch(ctx, repo, branch)
	if err != nil {
		return domain.PullRequestContext{}, err
	}

	switch len(matches) {
	case 0:
		return domain.PullRequestContext{}, fmt.Errorf("%w: no open pull request for branch %q in %s", domain.ErrNoPRDetected, branch, repo)
	case 1:
		r.logger.Debug("resolved pull request", "repo", repo, "pr", matches[0].Number, "source", "branch", "branch", branch)
		return matches[0], nil
	default:
		return domain.PullRequestContext{}, fmt.Errorf("%w: branch %q has %d open pull requests (%s); pass --pr to pick one",
			domain.ErrAmbiguousPR, branch, len(matches), formatNumbers(matches))
	}
}

// resolveRepository prefers the --repo override and otherwise reads
// the configured git remote.
func (r *Resolver) resolveRepository(ctx context.Context, req Request) (domain.Repository, error) {
	if req.RepoOverride != "" {
		repo, err := domain.ParseRepository(req.RepoOverride)
		if err != nil {
			return domain.Repository{}, err
		}
		return repo, nil
	}

	remote := req.Remote
	if remote == "" {
		remote = "origin"
	}
	return r.git.Repository(ctx, remote)
}

func formatNumbers(prs []domain.PullRequestContext) string {
	numbers := make([]int, len(prs))
	for i, pr := range prs {
		numbers[i] = pr.Number
	}
	sort.Ints(numbers)

	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("#%d", n)
	}
	return strings.Join(parts, ", ")
}
