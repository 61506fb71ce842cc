package review

import (
	"context"

	"github.com/bkyoung/lgtm/internal/domain"
	"github.com/bkyoung/lgtm/internal/usecase/resolve"
	"github.com/bkyoung/lgtm/internal/usecase/threads"
)

// ViewRequest asks for the comment threads at a target.
type ViewRequest struct {
	Resolve  resolve.Request
	File     string
	LineSpec string
}

// ViewResult carries everything the renderers need.
type ViewResult struct {
	PR      domain.PullRequestContext
	Target  domain.Target
	Threads []domain.Thread
}

// View lists the threads matching the target. It never mutates
// anything remote.
func (o *Orchestrator) View(ctx context.Context, req ViewRequest) (ViewResult, error) {
	if err := o.validateDependencies(false, false); err != nil {
		return ViewResult{}, err
	}

	target, err := parseTarget(req.File, req.LineSpec)
	if err != nil {
		return ViewResult{}, err
	}

	pr, err := o.deps.Resolver.Resolve(ctx, req.Resolve)
	if err != nil {
		return ViewResult{}, err
	}

	comments, err := o.deps.Store.ListComments(ctx, pr.Repo, pr.Number)
	if err != nil {
		return ViewResult{}, err
	}

	grouped := threads.Resolve(target, comments, o.deps.Policy)
	o.deps.Logger.Debug("viewing threads",
		"pr", pr.Number,
		"target", target.String(),
		"comments", len(comments),
		"threads", len(grouped),
	)

	return ViewResult{PR: pr, Target: target, Threads: grouped}, nil
}
