package review

import (
	"context"
	"fmt"

	"github.com/bkyoung/lgtm/internal/domain"
	"github.com/bkyoung/lgtm/internal/usecase/resolve"
	"github.com/bkyoung/lgtm/internal/usecase/threads"
)

// CommentRequest describes a comment to be placed at a target.
type CommentRequest struct {
	Resolve  resolve.Request
	File     string
	LineSpec string

	// Body skips the editor when non-empty.
	Body string

	// ReplyTo forces a reply to the thread containing this comment ID.
	ReplyTo int64

	// NewThread forces a fresh thread even when threads already exist
	// at the target.
	NewThread bool
}

// CommentResult reports what was posted where.
type CommentResult struct {
	PR domain.PullRequestContext

	// Replied is true when the comment continued an existing thread.
	Replied bool

	Comment domain.ReviewComment
}

// Comment places a comment at the target. When existing threads match
// the target, the user decides between continuing the most recent one
// and opening a new thread; declining both aborts with ErrAborted.
func (o *Orchestrator) Comment(ctx context.Context, req CommentRequest) (CommentResult, error) {
	if err := o.validateDependencies(true, true); err != nil {
		return CommentResult{}, err
	}

	target, err := parseTarget(req.File, req.LineSpec)
	if err != nil {
		return CommentResult{}, err
	}

	pr, err := o.deps.Resolver.Resolve(ctx, req.Resolve)
	if err != nil {
		return CommentResult{}, err
	}

	decision, comments, err := o.decideThread(ctx, pr, target, req)
	if err != nil {
		return CommentResult{}, err
	}
	if decision.Kind == threads.DecisionAbort {
		return CommentResult{}, ErrAborted
	}

	body := req.Body
	if body == "" {
		body, err = o.deps.Composer.Compose(ctx, "", false)
		if err != nil {
			return CommentResult{}, err
		}
	}

	switch decision.Kind {
	case threads.DecisionReply:
		return o.postReply(ctx, pr, decision.ThreadID, comments, body)
	default:
		return o.postNewThread(ctx, pr, target, body)
	}
}

// decideThread produces the tri-state decision and, when the listing
// was needed, the fetched comments for later kind lookups.
func (o *Orchestrator) decideThread(ctx context.Context, pr domain.PullRequestContext, target domain.Target, req CommentRequest) (threads.Decision, []domain.ReviewComment, error) {
	if req.ReplyTo > 0 {
		comments, err := o.deps.Store.ListComments(ctx, pr.Repo, pr.Number)
		if err != nil {
			return threads.Decision{}, nil, err
		}
		return threads.ReplyTo(req.ReplyTo), comments, nil
	}

	if req.NewThread {
		return threads.NewThread(), nil, nil
	}

	comments, err := o.deps.Store.ListComments(ctx, pr.Repo, pr.Number)
	if err != nil {
		return threads.Decision{}, nil, err
	}

	matched := threads.Resolve(target, comments, o.deps.Policy)
	if len(matched) == 0 {
		return threads.NewThread(), comments, nil
	}

	if !o.deps.Prompter.Interactive() {
		return threads.Decision{}, nil, fmt.Errorf(
			"%d thread(s) already exist at %s; rerun with --reply-to or --new-thread",
			len(matched), target)
	}

	// Offer the most recently started matching thread, the way a
	// reviewer would continue the latest conversation.
	latest := matched[len(matched)-1]

	continueThread, err := o.deps.Prompter.ConfirmReply(latest)
	if err != nil {
		return threads.Decision{}, nil, err
	}
	if continueThread {
		return threads.ReplyTo(latest.Root.ID), comments, nil
	}

	startNew, err := o.deps.Prompter.ConfirmNewThread()
	if err != nil {
		return threads.Decision{}, nil, err
	}
	if startNew {
		return threads.NewThread(), comments, nil
	}

	return threads.Abort(), nil, nil
}

// postReply continues the thread containing commentID. Replies to
// review comments are normalized to the thread root; conversation
// comments have no threading, so a "reply" is simply another
// conversation comment.
func (o *Orchestrator) postReply(ctx context.Context, pr domain.PullRequestContext, commentID int64, comments []domain.ReviewComment, body string) (CommentResult, error) {
	parent, ok := findComment(comments, commentID)
	if !ok {
		return CommentResult{}, fmt.Errorf("no comment with ID %d on pull request #%d", commentID, pr.Number)
	}

	if parent.Kind == domain.CommentConversation {
		created, err := o.deps.Store.CreateConversationComment(ctx, pr.Repo, pr.Number, body)
		if err != nil {
			return CommentResult{}, err
		}
		o.deps.Logger.Info("posted conversation comment", "pr", pr.Number, "comment", created.ID)
		return CommentResult{PR: pr, Replied: true, Comment: created}, nil
	}

	rootID := parent.ID
	if !parent.IsRoot() {
		rootID = parent.ParentID
	}

	created, err := o.deps.Store.ReplyToReviewComment(ctx, pr.Repo, pr.Number, rootID, body)
	if err != nil {
		return CommentResult{}, err
	}
	o.deps.Logger.Info("replied to thread", "pr", pr.Number, "thread", rootID, "comment", created.ID)
	return CommentResult{PR: pr, Replied: true, Comment: created}, nil
}

// postNewThread opens a fresh thread at the target.
func (o *Orchestrator) postNewThread(ctx context.Context, pr domain.PullRequestContext, target domain.Target, body string) (CommentResult, error) {
	if target.Kind == domain.TargetPullRequest {
		created, err := o.deps.Store.CreateConversationComment(ctx, pr.Repo, pr.Number, body)
		if err != nil {
			return CommentResult{}, err
		}
		o.deps.Logger.Info("posted conversation comment", "pr", pr.Number, "comment", created.ID)
		return CommentResult{PR: pr, Comment: created}, nil
	}

	created, err := o.deps.Store.CreateReviewComment(ctx, pr, target, body)
	if err != nil {
		return CommentResult{}, err
	}
	o.deps.Logger.Info("created review thread", "pr", pr.Number, "target", target.String(), "comment", created.ID)
	return CommentResult{PR: pr, Comment: created}, nil
}
