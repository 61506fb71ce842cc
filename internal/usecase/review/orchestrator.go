// Package review implements the command flows behind the CLI verbs:
// viewing comment threads, commenting, editing, and approving.
package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bkyoung/lgtm/internal/domain"
	"github.com/bkyoung/lgtm/internal/usecase/resolve"
)

// ErrAborted signals that the user declined to proceed at a prompt.
// It is a deliberate outcome, not a failure.
var ErrAborted = errors.New("aborted")

// ContextResolver determines which pull request a command targets.
type ContextResolver interface {
	Resolve(ctx context.Context, req resolve.Request) (domain.PullRequestContext, error)
}

// CommentStore is the outbound port for reading and mutating comments
// on the forge. Mutations are never retried; whatever error comes back
// is surfaced to the user as-is.
type CommentStore interface {
	ListComments(ctx context.Context, repo domain.Repository, number int) ([]domain.ReviewComment, error)
	CreateReviewComment(ctx context.Context, pr domain.PullRequestContext, target domain.Target, body string) (domain.ReviewComment, error)
	ReplyToReviewComment(ctx context.Context, repo domain.Repository, number int, commentID int64, body string) (domain.ReviewComment, error)
	CreateConversationComment(ctx context.Context, repo domain.Repository, number int, body string) (domain.ReviewComment, error)
	UpdateReviewComment(ctx context.Context, repo domain.Repository, commentID int64, body string) (domain.ReviewComment, error)
	UpdateConversationComment(ctx context.Context, repo domain.Repository, commentID int64, body string) (domain.ReviewComment, error)
	Approve(ctx context.Context, repo domain.Repository, number int, body string) error
}

// Composer opens the user's editor to produce a comment body.
type Composer interface {
	Compose(ctx context.Context, seed string, requireChange bool) (string, error)
}

// Prompter asks the user to choose between continuing an existing
// thread and starting a new one. Implementations render the thread
// before asking.
type Prompter interface {
	// Interactive reports whether prompts can be answered at all.
	Interactive() bool

	// ConfirmReply shows the thread and asks whether to continue it.
	ConfirmReply(thread domain.Thread) (bool, error)

	// ConfirmNewThread asks whether to start a new thread instead.
	ConfirmNewThread() (bool, error)
}

// Deps captures the orchestrator's dependencies.
type Deps struct {
	Resolver ContextResolver
	Store    CommentStore
	Composer Composer
	Prompter Prompter

	// Policy selects how line targets match existing threads.
	Policy domain.MatchPolicy

	// Logger is optional; nil falls back to slog.Default.
	Logger *slog.Logger
}

// Orchestrator implements the four command flows.
type Orchestrator struct {
	deps Deps
}

// NewOrchestrator wires the orchestrator dependencies.
func NewOrchestrator(deps Deps) *Orchestrator {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Orchestrator{deps: deps}
}

// validateDependencies checks that the flow's required dependencies
// are present.
func (o *Orchestrator) validateDependencies(needEditor, needPrompter bool) error {
	if o.deps.Resolver == nil {
		return errors.New("context resolver is required")
	}
	if o.deps.Store == nil {
		return errors.New("comment store is required")
	}
	if needEditor && o.deps.Composer == nil {
		return errors.New("editor session is required")
	}
	if needPrompter && o.deps.Prompter == nil {
		return errors.New("prompter is required")
	}
	return nil
}

// parseTarget validates the file/line specifier before anything talks
// to the network.
func parseTarget(file, lineSpec string) (domain.Target, error) {
	target, err := domain.ParseTarget(file, lineSpec)
	if err != nil {
		return domain.Target{}, fmt.Errorf("invalid target: %w", err)
	}
	return target, nil
}

// findComment returns the comment with the given ID from the list.
func findComment(comments []domain.ReviewComment, id int64) (domain.ReviewComment, bool) {
	for _, comment := range comments {
		if comment.ID == id {
			return comment, true
		}
	}
	return domain.ReviewComment{}, false
}
