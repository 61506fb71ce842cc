package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the user-facing failure taxonomy. Commands match
// on these with errors.Is; every failure path produces a distinct
// message rather than a generic one.
var (
	// ErrInvalidRangeFormat reports a line specifier that is not a
	// number or an A-B / A:B range with start <= end.
	ErrInvalidRangeFormat = errors.New("invalid line or range format")

	// ErrLineWithoutFile reports a line specifier given without a file path.
	ErrLineWithoutFile = errors.New("line given without a file path")

	// ErrPRNotFound reports an explicitly supplied pull request number
	// that does not exist on the resolved repository.
	ErrPRNotFound = errors.New("pull request not found")

	// ErrNoPRDetected reports that no open pull request originates
	// from the current branch.
	ErrNoPRDetected = errors.New("no open pull request found for the current branch")

	// ErrAmbiguousPR reports more than one open pull request for the
	// current branch; the tool never silently picks one.
	ErrAmbiguousPR = errors.New("multiple open pull requests found for the current branch")

	// ErrNoGitHubRemote reports a working copy whose configured remote
	// is absent or not a parseable GitHub URL.
	ErrNoGitHubRemote = errors.New("no GitHub remote configured")

	// ErrEmptyComment reports an empty or whitespace-only comment body.
	ErrEmptyComment = errors.New("comment body is empty")

	// ErrUnchangedEdit reports an edited body identical to the original.
	ErrUnchangedEdit = errors.New("comment body is unchanged")

	// ErrNoCommentToEdit reports an edit at a target with no root comment.
	ErrNoCommentToEdit = errors.New("no comment to edit at this target")
)

// IsResolutionError reports whether err is a context-resolution
// failure, for which the remedy is passing --pr or --repo explicitly.
func IsResolutionError(err error) bool {
	return errors.Is(err, ErrPRNotFound) ||
		errors.Is(err, ErrNoPRDetected) ||
		errors.Is(err, ErrAmbiguousPR) ||
		errors.Is(err, ErrNoGitHubRemote)
}

// RemoteError is a failure reported by the GitHub API. The remote
// message is preserved verbatim and the operation is never retried;
// a review action must not be silently redone.
type RemoteError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s (HTTP %d)", e.Op, e.Message, e.StatusCode)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
