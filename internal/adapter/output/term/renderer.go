// Package term renders comment threads and command outcomes for a
// human at a terminal.
package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bkyoung/lgtm/internal/diff"
	"github.com/bkyoung/lgtm/internal/domain"
)

// hunkContextLines caps how much diff context a thread shows. GitHub
// hunks end at the anchored line, so the tail is the relevant part.
const hunkContextLines = 4

// Renderer writes styled text. Styling degrades to plain ASCII when
// color is off, so piped output stays clean.
type Renderer struct {
	w     io.Writer
	out   *termenv.Output
	title cases.Caser
}

// NewRenderer creates a renderer. colored should be true only when
// the destination is a terminal.
func NewRenderer(w io.Writer, colored bool) *Renderer {
	profile := termenv.Ascii
	if colored {
		profile = termenv.EnvColorProfile()
	}
	return &Renderer{
		w:     w,
		out:   termenv.NewOutput(w, termenv.WithProfile(profile), termenv.WithColorCache(true)),
		title: cases.Title(language.English),
	}
}

// Threads prints every thread at the target, roots with their diff
// context and replies quoted beneath.
func (r *Renderer) Threads(pr domain.PullRequestContext, target domain.Target, threads []domain.Thread) {
	fmt.Fprintf(r.w, "%s %s\n", r.heading(fmt.Sprintf("Pull request #%d:", pr.Number)), pr.Title)

	if len(threads) == 0 {
		fmt.Fprintf(r.w, "No comments at %s.\n", target)
		return
	}

	total := 0
	for _, thread := range threads {
		total += thread.Size()
	}
	fmt.Fprintf(r.w, "%d comment(s) in %d thread(s) at %s\n", total, len(threads), target)

	for _, thread := range threads {
		fmt.Fprintln(r.w)
		r.Thread(thread)
	}
}

// Thread prints a single thread: the root with its diff context, then
// replies quoted beneath.
func (r *Renderer) Thread(thread domain.Thread) {
	root := thread.Root

	fmt.Fprintf(r.w, "%s %s  %s  %s  (ID %d)\n",
		r.kindLabel(root.Kind),
		r.author(root.Author),
		r.location(root),
		r.faint(root.CreatedAt.Format("2006-01-02 15:04")),
		root.ID,
	)

	if root.DiffHunk != "" {
		if hunk, err := diff.ParseHunk(root.DiffHunk); err == nil {
			r.renderHunk(hunk)
		}
	}

	for _, line := range strings.Split(root.Body, "\n") {
		fmt.Fprintf(r.w, "  %s\n", line)
	}

	for _, reply := range thread.Replies {
		fmt.Fprintf(r.w, "  > %s  %s  (ID %d)\n",
			r.author(reply.Author),
			r.faint(reply.CreatedAt.Format("2006-01-02 15:04")),
			reply.ID,
		)
		for _, line := range strings.Split(reply.Body, "\n") {
			fmt.Fprintf(r.w, "  > %s\n", line)
		}
	}
}

// renderHunk shows the tail of the comment's diff context with
// new-side line numbers. Deletions have no new-side number, so their
// gutter stays blank.
func (r *Renderer) renderHunk(hunk diff.Hunk) {
	for _, line := range hunk.Tail(hunkContextLines) {
		gutter := "    "
		if line.NewLine > 0 {
			gutter = fmt.Sprintf("%4d", line.NewLine)
		}
		fmt.Fprintf(r.w, "  %s %s\n", r.faint(gutter+" |"), r.styleDiffLine(line))
	}
}

func (r *Renderer) styleDiffLine(line diff.Line) string {
	switch line.Type {
	case diff.LineAddition:
		return r.out.String("+" + line.Content).Foreground(termenv.ANSIGreen).String()
	case diff.LineDeletion:
		return r.out.String("-" + line.Content).Foreground(termenv.ANSIRed).String()
	default:
		return r.out.String(" " + line.Content).Faint().String()
	}
}

// Commented reports a successful comment or reply.
func (r *Renderer) Commented(pr domain.PullRequestContext, comment domain.ReviewComment, replied bool) {
	verb := "Commented on"
	if replied {
		verb = "Replied to thread on"
	}
	fmt.Fprintf(r.w, "%s pull request #%d (comment ID %d)\n", verb, pr.Number, comment.ID)
	if comment.HTMLURL != "" {
		fmt.Fprintln(r.w, r.faint(comment.HTMLURL))
	}
}

// Edited reports a successful comment update.
func (r *Renderer) Edited(pr domain.PullRequestContext, comment domain.ReviewComment) {
	fmt.Fprintf(r.w, "Updated comment %d on pull request #%d\n", comment.ID, pr.Number)
	if comment.HTMLURL != "" {
		fmt.Fprintln(r.w, r.faint(comment.HTMLURL))
	}
}

// Approved reports a submitted approval.
func (r *Renderer) Approved(pr domain.PullRequestContext) {
	check := r.out.String("Approved").Foreground(termenv.ANSIGreen).Bold().String()
	fmt.Fprintf(r.w, "%s pull request #%d in %s\n", check, pr.Number, pr.Repo)
	if pr.URL != "" {
		fmt.Fprintln(r.w, r.faint(pr.URL))
	}
}

func (r *Renderer) heading(s string) string {
	return r.out.String(s).Bold().String()
}

func (r *Renderer) author(name string) string {
	return r.out.String("@" + name).Bold().String()
}

func (r *Renderer) faint(s string) string {
	return r.out.String(s).Faint().String()
}

// kindLabel renders the comment kind as a colored tag, e.g. [Review].
func (r *Renderer) kindLabel(kind domain.CommentKind) string {
	label := "[" + r.title.String(string(kind)) + "]"
	color := termenv.ANSIBlue
	if kind == domain.CommentConversation {
		color = termenv.ANSIMagenta
	}
	return r.out.String(label).Foreground(color).String()
}

// location describes where a comment is anchored.
func (r *Renderer) location(c domain.ReviewComment) string {
	return r.out.String(describeAnchor(c)).Foreground(termenv.ANSICyan).String()
}

func describeAnchor(c domain.ReviewComment) string {
	if c.Kind == domain.CommentConversation {
		return "conversation"
	}
	if c.FileLevel() {
		return c.Path + " (file)"
	}
	start, end := c.Anchor()
	if start != end {
		return fmt.Sprintf("%s:%d-%d", c.Path, start, end)
	}
	return fmt.Sprintf("%s:%d", c.Path, start)
}

