package cli

import (
	"context"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/bkyoung/lgtm/internal/domain"
	"github.com/bkyoung/lgtm/internal/usecase/resolve"
	"github.com/bkyoung/lgtm/internal/usecase/review"
)

// Progress shows a spinner while slow forge reads run. A nil Progress
// is inert, which keeps piped and test output clean.
type Progress struct {
	s *spinner.Spinner
}

// NewProgress creates a Progress writing to w, normally a colorable
// stderr. A nil w disables progress entirely.
func NewProgress(w io.Writer) *Progress {
	if w == nil {
		return nil
	}
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(w))
	_ = s.Color("cyan")
	return &Progress{s: s}
}

func (p *Progress) start(message string) {
	if p == nil {
		return
	}
	p.s.Suffix = " " + message
	p.s.Start()
}

func (p *Progress) stop() {
	if p == nil {
		return
	}
	p.s.Stop()
}

// WithProgress decorates the read-side collaborators so resolution and
// comment listing show a spinner. Mutations stay undecorated; nothing
// may sit between the user and a write.
func WithProgress(p *Progress, resolver review.ContextResolver, store review.CommentStore) (review.ContextResolver, review.CommentStore) {
	if p == nil {
		return resolver, store
	}
	return &progressResolver{progress: p, next: resolver},
		&progressStore{CommentStore: store, progress: p}
}

type progressResolver struct {
	progress *Progress
	next     review.ContextResolver
}

func (r *progressResolver) Resolve(ctx context.Context, req resolve.Request) (domain.PullRequestContext, error) {
	r.progress.start("Resolving pull request...")
	defer r.progress.stop()
	return r.next.Resolve(ctx, req)
}

// progressStore wraps only ListComments; every other store method
// passes through to the embedded implementation.
type progressStore struct {
	review.CommentStore
	progress *Progress
}

func (s *progressStore) ListComments(ctx context.Context, repo domain.Repository, number int) ([]domain.ReviewComment, error) {
	s.progress.start("Fetching comments...")
	defer s.progress.stop()
	return s.CommentStore.ListComments(ctx, repo, number)
}
