package review

import (
	"context"

	"github.com/bkyoung/lgtm/internal/domain"
	"github.com/bkyoung/lgtm/internal/usecase/resolve"
)

// ApproveRequest asks to approve a pull request.
type ApproveRequest struct {
	Resolve resolve.Request

	// Body is the optional review summary.
	Body string

	// EditBody composes the summary in the editor instead.
	EditBody bool
}

// ApproveResult reports the approved pull request.
type ApproveResult struct {
	PR   domain.PullRequestContext
	Body string
}

// Approve submits an approving review.
func (o *Orchestrator) Approve(ctx context.Context, req ApproveRequest) (ApproveResult, error) {
	if err := o.validateDependencies(req.EditBody, false); err != nil {
		return ApproveResult{}, err
	}

	pr, err := o.deps.Resolver.Resolve(ctx, req.Resolve)
	if err != nil {
		return ApproveResult{}, err
	}

	body := req.Body
	if req.EditBody {
		body, err = o.deps.Composer.Compose(ctx, "", false)
		if err != nil {
			return ApproveResult{}, err
		}
	}

	if err := o.deps.Store.Approve(ctx, pr.Repo, pr.Number, body); err != nil {
		return ApproveResult{}, err
	}

	o.deps.Logger.Info("approved pull request", "pr", pr.Number, "repo", pr.Repo.String())
	return ApproveResult{PR: pr, Body: body}, nil
}
