package domain

import (
	"fmt"
	"strings"
	"time"
)

// CommentKind separates diff-anchored review comments from
// conversation comments on the pull request itself.
type CommentKind string

const (
	// CommentReview is a comment anchored to a file or line in the diff.
	CommentReview CommentKind = "review"

	// CommentConversation is a top-level comment on the pull request
	// conversation timeline.
	CommentConversation CommentKind = "conversation"
)

// SubjectTypeFile marks a review comment anchored to a whole file
// rather than a line.
const SubjectTypeFile = "file"

// SideRight anchors comments to the new side of the diff.
const SideRight = "RIGHT"

// ReviewComment is a remote comment entity. It is owned entirely by
// GitHub; the tool never keeps one beyond a single invocation.
type ReviewComment struct {
	ID          int64
	Kind        CommentKind
	Author      string
	Body        string
	Path        string
	Line        int
	StartLine   int
	Side        string
	SubjectType string
	ParentID    int64
	DiffHunk    string
	HTMLURL     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsRoot reports whether the comment starts a thread.
func (c ReviewComment) IsRoot() bool {
	return c.ParentID == 0
}

// FileLevel reports whether a review comment is anchored to a whole
// file rather than a line.
func (c ReviewComment) FileLevel() bool {
	return c.Kind == CommentReview && (c.SubjectType == SubjectTypeFile || c.Line == 0)
}

// Anchor returns the line span the comment is recorded against. A
// single-line comment spans one line; a file-level or conversation
// comment spans nothing and returns zeros.
func (c ReviewComment) Anchor() (start, end int) {
	if c.Line == 0 {
		return 0, 0
	}
	if c.StartLine > 0 {
		return c.StartLine, c.Line
	}
	return c.Line, c.Line
}

// Thread is a root comment and its replies ordered by creation time.
// Threads are derived fresh each invocation and never persisted.
type Thread struct {
	Root    ReviewComment
	Replies []ReviewComment
}

// Size returns the number of comments in the thread including the root.
func (t Thread) Size() int {
	return 1 + len(t.Replies)
}

// Repository identifies a GitHub repository by owner and name.
type Repository struct {
	Owner string
	Name  string
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepository parses an explicit OWNER/REPO selector.
func ParseRepository(value string) (Repository, error) {
	parts := strings.Split(strings.TrimSpace(value), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Repository{}, fmt.Errorf("invalid repository %q: expected OWNER/REPO", value)
	}
	return Repository{Owner: parts[0], Name: parts[1]}, nil
}

// PullRequestContext is the fully resolved invocation context: the
// repository and pull request every subsequent API call addresses.
type PullRequestContext struct {
	Repo       Repository
	Number     int
	Title      string
	HeadSHA    string
	HeadBranch string
	URL        string
}

// MatchPolicy controls how line targets match existing comment anchors.
type MatchPolicy string

const (
	// MatchOverlap matches any comment whose anchor falls inside the
	// requested range, so a reviewer seeing a spread can reply to it.
	MatchOverlap MatchPolicy = "overlap"

	// MatchExact matches only comments recorded against the exact
	// requested line or range.
	MatchExact MatchPolicy = "exact"
)

// ParseMatchPolicy validates a configured match policy value.
func ParseMatchPolicy(value string) (MatchPolicy, error) {
	switch policy := MatchPolicy(strings.ToLower(strings.TrimSpace(value))); policy {
	case MatchOverlap, MatchExact:
		return policy, nil
	default:
		return "", fmt.Errorf("invalid match policy %q: expected %q or %q", value, MatchOverlap, MatchExact)
	}
}
