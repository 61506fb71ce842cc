package github

import (
	gh "github.com/google/go-github/v82/github"

	"github.com/bkyoung/lgtm/internal/domain"
)

// mapPullRequest converts an API pull request into the context the
// commands operate on.
func mapPullRequest(repo domain.Repository, pr *gh.PullRequest) domain.PullRequestContext {
	return domain.PullRequestContext{
		Repo:       repo,
		Number:     pr.GetNumber(),
		Title:      pr.GetTitle(),
		HeadSHA:    pr.GetHead().GetSHA(),
		HeadBranch: pr.GetHead().GetRef(),
		URL:        pr.GetHTMLURL(),
	}
}

// mapReviewComment converts a diff-anchored review comment. A zero
// InReplyTo marks a thread root.
func mapReviewComment(comment *gh.PullRequestComment) domain.ReviewComment {
	return domain.ReviewComment{
		ID:          comment.GetID(),
		Kind:        domain.CommentReview,
		Author:      comment.GetUser().GetLogin(),
		Body:        comment.GetBody(),
		Path:        comment.GetPath(),
		Line:        comment.GetLine(),
		StartLine:   comment.GetStartLine(),
		Side:        comment.GetSide(),
		SubjectType: comment.GetSubjectType(),
		ParentID:    comment.GetInReplyTo(),
		DiffHunk:    comment.GetDiffHunk(),
		HTMLURL:     comment.GetHTMLURL(),
		CreatedAt:   comment.GetCreatedAt().Time,
		UpdatedAt:   comment.GetUpdatedAt().Time,
	}
}

// mapConversationComment converts a comment from the PR's conversation
// tab. Conversation comments have no diff anchor and no parent link.
func mapConversationComment(comment *gh.IssueComment) domain.ReviewComment {
	return domain.ReviewComment{
		ID:        comment.GetID(),
		Kind:      domain.CommentConversation,
		Author:    comment.GetUser().GetLogin(),
		Body:      comment.GetBody(),
		HTMLURL:   comment.GetHTMLURL(),
		CreatedAt: comment.GetCreatedAt().Time,
		UpdatedAt: comment.GetUpdatedAt().Time,
	}
}
