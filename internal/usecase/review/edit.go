package review

import (
	"context"
	"fmt"

	"github.com/bkyoung/lgtm/internal/domain"
	"github.com/bkyoung/lgtm/internal/usecase/resolve"
	"github.com/bkyoung/lgtm/internal/usecase/threads"
)

// EditRequest asks to rewrite an existing comment's body.
type EditRequest struct {
	Resolve  resolve.Request
	File     string
	LineSpec string

	// CommentID edits a specific comment instead of the most recent
	// thread root at the target.
	CommentID int64
}

// EditResult carries the updated comment.
type EditResult struct {
	PR      domain.PullRequestContext
	Comment domain.ReviewComment
}

// Edit opens the editor seeded with the chosen comment's body and
// pushes the revised text. Without --comment-id the subject is the
// root of the most recent thread matching the target;
// domain.ErrNoCommentToEdit when nothing matches.
func (o *Orchestrator) Edit(ctx context.Context, req EditRequest) (EditResult, error) {
	if err := o.validateDependencies(true, false); err != nil {
		return EditResult{}, err
	}

	target, err := parseTarget(req.File, req.LineSpec)
	if err != nil {
		return EditResult{}, err
	}

	pr, err := o.deps.Resolver.Resolve(ctx, req.Resolve)
	if err != nil {
		return EditResult{}, err
	}

	comments, err := o.deps.Store.ListComments(ctx, pr.Repo, pr.Number)
	if err != nil {
		return EditResult{}, err
	}

	subject, err := o.pickEditSubject(comments, target, req.CommentID, pr.Number)
	if err != nil {
		return EditResult{}, err
	}

	body, err := o.deps.Composer.Compose(ctx, subject.Body, true)
	if err != nil {
		return EditResult{}, err
	}

	var updated domain.ReviewComment
	if subject.Kind == domain.CommentConversation {
		updated, err = o.deps.Store.UpdateConversationComment(ctx, pr.Repo, subject.ID, body)
	} else {
		updated, err = o.deps.Store.UpdateReviewComment(ctx, pr.Repo, subject.ID, body)
	}
	if err != nil {
		return EditResult{}, err
	}

	o.deps.Logger.Info("updated comment", "pr", pr.Number, "comment", updated.ID)
	return EditResult{PR: pr, Comment: updated}, nil
}

// pickEditSubject selects which comment to edit: the explicitly named
// one, or the most recent matching thread root.
func (o *Orchestrator) pickEditSubject(comments []domain.ReviewComment, target domain.Target, commentID int64, prNumber int) (domain.ReviewComment, error) {
	if commentID > 0 {
		subject, ok := findComment(comments, commentID)
		if !ok {
			return domain.ReviewComment{}, fmt.Errorf("%w: no comment with ID %d on pull request #%d",
				domain.ErrNoCommentToEdit, commentID, prNumber)
		}
		return subject, nil
	}

	grouped := threads.Resolve(target, comments, o.deps.Policy)
	root, ok := threads.MostRecentRoot(grouped)
	if !ok {
		return domain.ReviewComment{}, fmt.Errorf("%w: no comment at %s", domain.ErrNoCommentToEdit, target)
	}
	return root, nil
}
