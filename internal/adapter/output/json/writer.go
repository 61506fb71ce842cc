// Package json renders command results as indented JSON for piping
// into jq or other tooling.
package json

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/bkyoung/lgtm/internal/domain"
)

// Writer encodes command results to a single destination, one JSON
// document per invocation.
type Writer struct {
	out io.Writer
}

// NewWriter creates a new JSON writer.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

type commentDoc struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	Path      string    `json:"path,omitempty"`
	Line      int       `json:"line,omitempty"`
	StartLine int       `json:"start_line,omitempty"`
	InReplyTo int64     `json:"in_reply_to,omitempty"`
	HTMLURL   string    `json:"html_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type threadDoc struct {
	Root    commentDoc   `json:"root"`
	Replies []commentDoc `json:"replies"`
}

type viewDoc struct {
	Repository  string      `json:"repository"`
	PullRequest int         `json:"pull_request"`
	Title       string      `json:"title"`
	Target      string      `json:"target"`
	Threads     []threadDoc `json:"threads"`
}

type commentResultDoc struct {
	Repository  string     `json:"repository"`
	PullRequest int        `json:"pull_request"`
	Replied     bool       `json:"replied"`
	Comment     commentDoc `json:"comment"`
}

type editResultDoc struct {
	Repository  string     `json:"repository"`
	PullRequest int        `json:"pull_request"`
	Comment     commentDoc `json:"comment"`
}

type approveResultDoc struct {
	Repository  string `json:"repository"`
	PullRequest int    `json:"pull_request"`
	Approved    bool   `json:"approved"`
	Body        string `json:"body,omitempty"`
}

// Threads encodes every thread at the target.
func (w *Writer) Threads(pr domain.PullRequestContext, target domain.Target, threads []domain.Thread) error {
	doc := viewDoc{
		Repository:  pr.Repo.String(),
		PullRequest: pr.Number,
		Title:       pr.Title,
		Target:      target.String(),
		Threads:     make([]threadDoc, 0, len(threads)),
	}
	for _, thread := range threads {
		doc.Threads = append(doc.Threads, mapThread(thread))
	}
	return w.encode(doc)
}

// Commented encodes a created comment or reply.
func (w *Writer) Commented(pr domain.PullRequestContext, comment domain.ReviewComment, replied bool) error {
	return w.encode(commentResultDoc{
		Repository:  pr.Repo.String(),
		PullRequest: pr.Number,
		Replied:     replied,
		Comment:     mapComment(comment),
	})
}

// Edited encodes an updated comment.
func (w *Writer) Edited(pr domain.PullRequestContext, comment domain.ReviewComment) error {
	return w.encode(editResultDoc{
		Repository:  pr.Repo.String(),
		PullRequest: pr.Number,
		Comment:     mapComment(comment),
	})
}

// Approved encodes a submitted approval.
func (w *Writer) Approved(pr domain.PullRequestContext, body string) error {
	return w.encode(approveResultDoc{
		Repository:  pr.Repo.String(),
		PullRequest: pr.Number,
		Approved:    true,
		Body:        body,
	})
}

func (w *Writer) encode(doc any) error {
	encoder := json.NewEncoder(w.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode result to json: %w", err)
	}
	return nil
}

func mapThread(thread domain.Thread) threadDoc {
	doc := threadDoc{
		Root:    mapComment(thread.Root),
		Replies: make([]commentDoc, 0, len(thread.Replies)),
	}
	for _, reply := range thread.Replies {
		doc.Replies = append(doc.Replies, mapComment(reply))
	}
	return doc
}

func mapComment(c domain.ReviewComment) commentDoc {
	return commentDoc{
		ID:        c.ID,
		Kind:      string(c.Kind),
		Author:    c.Author,
		Body:      c.Body,
		Path:      c.Path,
		Line:      c.Line,
		StartLine: c.StartLine,
		InReplyTo: c.ParentID,
		HTMLURL:   c.HTMLURL,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
