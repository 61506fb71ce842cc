package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v82/github"

	"github.com/bkyoung/lgtm/internal/domain"
)

// GetPullRequest fetches one pull request by number. A 404 becomes
// domain.ErrPRNotFound so callers can distinguish "no such PR" from
// transport trouble.
func (c *Client) GetPullRequest(ctx context.Context, repo domain.Repository, number int) (domain.PullRequestContext, error) {
	pr, resp, err := c.read.PullRequests.Get(ctx, repo.Owner, repo.Name, number)
	if err != nil {
		if isNotFound(err) {
			return domain.PullRequestContext{}, fmt.Errorf("%w: %s#%d", domain.ErrPRNotFound, repo, number)
		}
		return domain.PullRequestContext{}, mapRemoteError("get pull request", resp, err)
	}
	c.logCall("get pull request", resp)

	return mapPullRequest(repo, pr), nil
}

// FindOpenByBranch returns every open pull request whose head is the
// given branch in the same repository. The caller decides what zero or
// multiple results mean.
func (c *Client) FindOpenByBranch(ctx context.Context, repo domain.Repository, branch string) ([]domain.PullRequestContext, error) {
	opts := &gh.PullRequestListOptions{
		State:       "open",
		Head:        repo.Owner + ":" + branch,
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var matches []domain.PullRequestContext
	for {
		prs, resp, err := c.read.PullRequests.List(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, mapRemoteError("list pull requests", resp, err)
		}
		c.logCall("list pull requests", resp)

		for _, pr := range prs {
			matches = append(matches, mapPullRequest(repo, pr))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return matches, nil
}
