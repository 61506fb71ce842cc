package github

import (
	"context"
	"fmt"
	"sort"

	gh "github.com/google/go-github/v82/github"

	"github.com/bkyoung/lgtm/internal/domain"
)

// reviewEventApprove is the review event that approves a pull request.
const reviewEventApprove = "APPROVE"

// ListComments fetches every review comment and every conversation
// comment on the pull request, merged into one chronologically sorted
// slice. Both listings paginate; all pages are drained before merging.
func (c *Client) ListComments(ctx context.Context, repo domain.Repository, number int) ([]domain.ReviewComment, error) {
	reviewComments, err := c.listReviewComments(ctx, repo, number)
	if err != nil {
		return nil, err
	}

	conversationComments, err := c.listConversationComments(ctx, repo, number)
	if err != nil {
		return nil, err
	}

	merged := append(reviewComments, conversationComments...)
	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].CreatedAt.Before(merged[j].CreatedAt)
		}
		return merged[i].ID < merged[j].ID
	})

	return merged, nil
}

func (c *Client) listReviewComments(ctx context.Context, repo domain.Repository, number int) ([]domain.ReviewComment, error) {
	opts := &gh.PullRequestListCommentsOptions{
		Sort:        "created",
		Direction:   "asc",
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var comments []domain.ReviewComment
	for {
		page, resp, err := c.read.PullRequests.ListComments(ctx, repo.Owner, repo.Name, number, opts)
		if err != nil {
			return nil, mapRemoteError("list review comments", resp, err)
		}
		c.logCall("list review comments", resp)

		for _, comment := range page {
			comments = append(comments, mapReviewComment(comment))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return comments, nil
}

func (c *Client) listConversationComments(ctx context.Context, repo domain.Repository, number int) ([]domain.ReviewComment, error) {
	opts := &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var comments []domain.ReviewComment
	for {
		page, resp, err := c.read.Issues.ListComments(ctx, repo.Owner, repo.Name, number, opts)
		if err != nil {
			return nil, mapRemoteError("list conversation comments", resp, err)
		}
		c.logCall("list conversation comments", resp)

		for _, comment := range page {
			comments = append(comments, mapConversationComment(comment))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return comments, nil
}

// CreateReviewComment starts a new review thread anchored to the pull
// request's head commit. A file target produces a file-level comment;
// a line target anchors to the line, or to a range when the target
// spans more than one line. Anchors always land on the new side of the
// diff.
func (c *Client) CreateReviewComment(ctx context.Context, pr domain.PullRequestContext, target domain.Target, body string) (domain.ReviewComment, error) {
	comment := &gh.PullRequestComment{
		Body:     gh.Ptr(body),
		CommitID: gh.Ptr(pr.HeadSHA),
		Path:     gh.Ptr(target.Path),
		Side:     gh.Ptr(domain.SideRight),
	}

	switch target.Kind {
	case domain.TargetFile:
		comment.SubjectType = gh.Ptr(domain.SubjectTypeFile)
	case domain.TargetLine:
		comment.Line = gh.Ptr(target.End)
		if target.Start != target.End {
			comment.StartLine = gh.Ptr(target.Start)
			comment.StartSide = gh.Ptr(domain.SideRight)
		}
	default:
		return domain.ReviewComment{}, fmt.Errorf("review comments need a file or line target, got %s", target)
	}

	created, resp, err := c.write.PullRequests.CreateComment(ctx, pr.Repo.Owner, pr.Repo.Name, pr.Number, comment)
	if err != nil {
		return domain.ReviewComment{}, mapRemoteError("create review comment", resp, err)
	}
	c.logCall("create review comment", resp)

	return mapReviewComment(created), nil
}

// ReplyToReviewComment adds a reply to an existing review thread. The
// target comment must be the thread's root.
func (c *Client) ReplyToReviewComment(ctx context.Context, repo domain.Repository, number int, commentID int64, body string) (domain.ReviewComment, error) {
	created, resp, err := c.write.PullRequests.CreateCommentInReplyTo(ctx, repo.Owner, repo.Name, number, body, commentID)
	if err != nil {
		return domain.ReviewComment{}, mapRemoteError("reply to review comment", resp, err)
	}
	c.logCall("reply to review comment", resp)

	return mapReviewComment(created), nil
}

// CreateConversationComment posts to the pull request's conversation
// tab, where comments have no diff anchor.
func (c *Client) CreateConversationComment(ctx context.Context, repo domain.Repository, number int, body string) (domain.ReviewComment, error) {
	created, resp, err := c.write.Issues.CreateComment(ctx, repo.Owner, repo.Name, number, &gh.IssueComment{
		Body: gh.Ptr(body),
	})
	if err != nil {
		return domain.ReviewComment{}, mapRemoteError("create conversation comment", resp, err)
	}
	c.logCall("create conversation comment", resp)

	return mapConversationComment(created), nil
}

// UpdateReviewComment replaces the body of an existing review comment.
func (c *Client) UpdateReviewComment(ctx context.Context, repo domain.Repository, commentID int64, body string) (domain.ReviewComment, error) {
	updated, resp, err := c.write.PullRequests.EditComment(ctx, repo.Owner, repo.Name, commentID, &gh.PullRequestComment{
		Body: gh.Ptr(body),
	})
	if err != nil {
		return domain.ReviewComment{}, mapRemoteError("update review comment", resp, err)
	}
	c.logCall("update review comment", resp)

	return mapReviewComment(updated), nil
}

// UpdateConversationComment replaces the body of an existing
// conversation comment.
func (c *Client) UpdateConversationComment(ctx context.Context, repo domain.Repository, commentID int64, body string) (domain.ReviewComment, error) {
	updated, resp, err := c.write.Issues.EditComment(ctx, repo.Owner, repo.Name, commentID, &gh.IssueComment{
		Body: gh.Ptr(body),
	})
	if err != nil {
		return domain.ReviewComment{}, mapRemoteError("update conversation comment", resp, err)
	}
	c.logCall("update conversation comment", resp)

	return mapConversationComment(updated), nil
}

// Approve submits an approving review, with an optional summary body.
func (c *Client) Approve(ctx context.Context, repo domain.Repository, number int, body string) error {
	review := &gh.PullRequestReviewRequest{
		Event: gh.Ptr(reviewEventApprove),
	}
	if body != "" {
		review.Body = gh.Ptr(body)
	}

	_, resp, err := c.write.PullRequests.CreateReview(ctx, repo.Owner, repo.Name, number, review)
	if err != nil {
		return mapRemoteError("approve pull request", resp, err)
	}
	c.logCall("approve pull request", resp)

	return nil
}
