package resolve_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/lgtm/internal/domain"
	"github.com/bkyoung/lgtm/internal/usecase/resolve"
)

// MockGitEngine is a mock implementation of the GitEngine interface.
type MockGitEngine struct {
	CurrentBranchFunc func(ctx context.Context) (string, error)
	RepositoryFunc    func(ctx context.Context, remoteName string) (domain.Repository, error)
	RemoteAsked       string
}

func (m *MockGitEngine) CurrentBranch(ctx context.Context) (string, error) {
	if m.CurrentBranchFunc != nil {
		return m.CurrentBranchFunc(ctx)
	}
	return "feature/retries", nil
}

func (m *MockGitEngine) Repository(ctx context.Context, remoteName string) (domain.Repository, error) {
	m.RemoteAsked = remoteName
	if m.RepositoryFunc != nil {
		return m.RepositoryFunc(ctx, remoteName)
	}
	return domain.Repository{Owner: "octo", Name: "hello"}, nil
}

// MockPullRequestFinder is a mock implementation of the
// PullRequestFinder interface.
type MockPullRequestFinder struct {
	GetPullRequestFunc   func(ctx context.Context, repo domain.Repository, number int) (domain.PullRequestContext, error)
	FindOpenByBranchFunc func(ctx context.Context, repo domain.Repository, branch string) ([]domain.PullRequestContext, error)
	BranchAsked          string
}

func (m *MockPullRequestFinder) GetPullRequest(ctx context.Context, repo domain.Repository, number int) (domain.PullRequestContext, error) {
	if m.GetPullRequestFunc != nil {
		return m.GetPullRequestFunc(ctx, repo, number)
	}
	return domain.PullRequestContext{Repo: repo, Number: number}, nil
}

func (m *MockPullRequestFinder) FindOpenByBranch(ctx context.Context, repo domain.Repository, branch string) ([]domain.PullRequestContext, error) {
	m.BranchAsked = branch
	if m.FindOpenByBranchFunc != nil {
		return m.FindOpenByBranchFunc(ctx, repo, branch)
	}
	return nil, nil
}

func TestResolve_ExplicitNumber(t *testing.T) {
	git := &MockGitEngine{}
	finder := &MockPullRequestFinder{
		GetPullRequestFunc: func(ctx context.Context, repo domain.Repository, number int) (domain.PullRequestContext, error) {
			return domain.PullRequestContext{Repo: repo, Number: number, HeadSHA: "abc123"}, nil
		},
	}
	r := resolve.NewResolver(git, finder, nil)

	pr, err := r.Resolve(context.Background(), resolve.Request{Number: 7})

	require.NoError(t, err)
	assert.Equal(t, 7, pr.Number)
	assert.Equal(t, "abc123", pr.HeadSHA)
	assert.Equal(t, "origin", git.RemoteAsked)
}

func TestResolve_ExplicitNumberNotFound(t *testing.T) {
	finder := &MockPullRequestFinder{
		GetPullRequestFunc: func(ctx context.Context, repo domain.Repository, number int) (domain.PullRequestContext, error) {
			return domain.PullRequestContext{}, domain.ErrPRNotFound
		},
	}
	r := resolve.NewResolver(&MockGitEngine{}, finder, nil)

	_, err := r.Resolve(context.Background(), resolve.Request{Number: 9999})

	assert.ErrorIs(t, err, domain.ErrPRNotFound)
}

func TestResolve_RepoOverrideSkipsGit(t *testing.T) {
	git := &MockGitEngine{
		RepositoryFunc: func(ctx context.Context, remoteName string) (domain.Repository, error) {
			t.Error("git remote should not be consulted with --repo")
			return domain.Repository{}, nil
		},
	}
	finder := &MockPullRequestFinder{}
	r := resolve.NewResolver(git, finder, nil)

	pr, err := r.Resolve(context.Background(), resolve.Request{Number: 3, RepoOverride: "someone/else"})

	require.NoError(t, err)
	assert.Equal(t, "someone/else", pr.Repo.String())
}

func TestResolve_InvalidRepoOverride(t *testing.T) {
	r := resolve.NewResolver(&MockGitEngine{}, &MockPullRequestFinder{}, nil)

	_, err := r.Resolve(context.Background(), resolve.Request{Number: 3, RepoOverride: "not-a-repo"})

	assert.Error(t, err)
}

func TestResolve_CustomRemote(t *testing.T) {
	git := &MockGitEngine{}
	r := resolve.NewResolver(git, &MockPullRequestFinder{}, nil)

	_, err := r.Resolve(context.Background(), resolve.Request{Number: 3, Remote: "upstream"})

	require.NoError(t, err)
	assert.Equal(t, "upstream", git.RemoteAsked)
}

func TestResolve_DetectsSinglePR(t *testing.T) {
	finder := &MockPullRequestFinder{
		FindOpenByBranchFunc: func(ctx context.Context, repo domain.Repository, branch string) ([]domain.PullRequestContext, error) {
			return []domain.PullRequestContext{
				{Repo: repo, Number: 12, HeadBranch: branch},
			}, nil
		},
	}
	r := resolve.NewResolver(&MockGitEngine{}, finder, nil)

	pr, err := r.Resolve(context.Background(), resolve.Request{})

	require.NoError(t, err)
	assert.Equal(t, 12, pr.Number)
	assert.Equal(t, "feature/retries", finder.BranchAsked)
}

func TestResolve_NoPRForBranch(t *testing.T) {
	r := resolve.NewResolver(&MockGitEngine{}, &MockPullRequestFinder{}, nil)

	_, err := r.Resolve(context.Background(), resolve.Request{})

	assert.ErrorIs(t, err, domain.ErrNoPRDetected)
	assert.Contains(t, err.Error(), "feature/retries")
}

func TestResolve_AmbiguousBranch(t *testing.T) {
	finder := &MockPullRequestFinder{
		FindOpenByBranchFunc: func(ctx context.Context, repo domain.Repository, branch string) ([]domain.PullRequestContext, error) {
			return []domain.PullRequestContext{
				{Repo: repo, Number: 9},
				{Repo: repo, Number: 7},
			}, nil
		},
	}
	r := resolve.NewResolver(&MockGitEngine{}, finder, nil)

	_, err := r.Resolve(context.Background(), resolve.Request{})

	assert.ErrorIs(t, err, domain.ErrAmbiguousPR)
	assert.Contains(t, err.Error(), "#7, #9")
	assert.Contains(t, err.Error(), "--pr")
}

func TestResolve_DetachedHead(t *testing.T) {
	git := &MockGitEngine{
		CurrentBranchFunc: func(ctx context.Context) (string, error) {
			return "", errors.New("detached HEAD")
		},
	}
	r := resolve.NewResolver(git, &MockPullRequestFinder{}, nil)

	_, err := r.Resolve(context.Background(), resolve.Request{})

	assert.ErrorIs(t, err, domain.ErrNoPRDetected)
	assert.Contains(t, err.Error(), "detached HEAD")
}

func TestResolve_NoGitHubRemote(t *testing.T) {
	git := &MockGitEngine{
		RepositoryFunc: func(ctx context.Context, remoteName string) (domain.Repository, error) {
			return domain.Repository{}, domain.ErrNoGitHubRemote
		},
	}
	r := resolve.NewResolver(git, &MockPullRequestFinder{}, nil)

	_, err := r.Resolve(context.Background(), resolve.Request{})

	assert.ErrorIs(t, err, domain.ErrNoGitHubRemote)
}

func TestResolve_ListFailurePropagates(t *testing.T) {
	finder := &MockPullRequestFinder{
		FindOpenByBranchFunc: func(ctx context.Context, repo domain.Repository, branch string) ([]domain.PullRequestContext, error) {
			return nil, &domain.RemoteError{Op: "list pull requests", StatusCode: 500, Message: "Server Error"}
		},
	}
	r := resolve.NewResolver(&MockGitEngine{}, finder, nil)

	_, err := r.Resolve(context.Background(), resolve.Request{})

	var remoteErr *domain.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.False(t, domain.IsResolutionError(err))
}
