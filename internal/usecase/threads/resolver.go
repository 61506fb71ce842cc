// Package threads matches existing comments against a canonical
// target and groups them into reply threads, so commands can decide
// between continuing discussion and opening a new thread.
package threads

import (
	"sort"

	"github.com/bkyoung/lgtm/internal/domain"
)

// Match filters the flat comment list down to those recorded at the
// target. Pull-request targets match conversation comments; file
// targets match every review comment on the path; line targets match
// review comments on the path whose recorded span intersects the
// requested range under domain.MatchOverlap, or equals it exactly
// under domain.MatchExact.
func Match(comments []domain.ReviewComment, target domain.Target, policy domain.MatchPolicy) []domain.ReviewComment {
	var matched []domain.ReviewComment
	for _, comment := range comments {
		if matchesTarget(comment, target, policy) {
			matched = append(matched, comment)
		}
	}
	return matched
}

func matchesTarget(comment domain.ReviewComment, target domain.Target, policy domain.MatchPolicy) bool {
	switch target.Kind {
	case domain.TargetPullRequest:
		return comment.Kind == domain.CommentConversation
	case domain.TargetFile:
		return comment.Kind == domain.CommentReview && comment.Path == target.Path
	case domain.TargetLine:
		if comment.Kind != domain.CommentReview || comment.Path != target.Path {
			return false
		}
		start, end := comment.Anchor()
		if start == 0 {
			// File-level comments have no span to compare.
			return false
		}
		if policy == domain.MatchExact {
			return start == target.Start && end == target.End
		}
		return start <= target.End && end >= target.Start
	default:
		return false
	}
}

// Group organizes a flat comment list into threads by following
// parent links: an index from comment ID to thread, then replies
// attached to their parents. Threads are ordered by root creation
// time and replies within a thread by creation time (comment ID
// breaks ties), so grouping the same list twice yields identical
// output. A reply whose parent is absent from the list is promoted to
// a root rather than dropped.
func Group(comments []domain.ReviewComment) []domain.Thread {
	byRoot := make(map[int64]*domain.Thread)
	var order []int64

	for _, comment := range comments {
		if comment.IsRoot() {
			if _, exists := byRoot[comment.ID]; !exists {
				byRoot[comment.ID] = &domain.Thread{Root: comment}
				order = append(order, comment.ID)
			}
		}
	}

	for _, comment := range comments {
		if comment.IsRoot() {
			continue
		}
		parent, exists := byRoot[comment.ParentID]
		if !exists {
			if _, promoted := byRoot[comment.ID]; !promoted {
				byRoot[comment.ID] = &domain.Thread{Root: comment}
				order = append(order, comment.ID)
			}
			continue
		}
		parent.Replies = append(parent.Replies, comment)
	}

	grouped := make([]domain.Thread, 0, len(order))
	for _, id := range order {
		thread := byRoot[id]
		sort.SliceStable(thread.Replies, func(i, j int) bool {
			return earlier(thread.Replies[i], thread.Replies[j])
		})
		grouped = append(grouped, *thread)
	}

	sort.SliceStable(grouped, func(i, j int) bool {
		return earlier(grouped[i].Root, grouped[j].Root)
	})

	return grouped
}

func earlier(a, b domain.ReviewComment) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID < b.ID
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

// Resolve matches comments against the target and groups the matches
// into ordered threads.
func Resolve(target domain.Target, comments []domain.ReviewComment, policy domain.MatchPolicy) []domain.Thread {
	return Group(Match(comments, target, policy))
}

// MostRecentRoot returns the root comment of the latest thread, the
// one an edit addresses.
func MostRecentRoot(grouped []domain.Thread) (domain.ReviewComment, bool) {
	if len(grouped) == 0 {
		return domain.ReviewComment{}, false
	}
	return grouped[len(grouped)-1].Root, true
}
