package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bkyoung/lgtm/internal/adapter/output/term"
	"github.com/bkyoung/lgtm/internal/domain"
	"github.com/bkyoung/lgtm/internal/usecase/review"
)

// Prompter asks the thread questions on the terminal. Only y or Y,
// ignoring surrounding space, accepts; any other answer declines.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	renderer    *term.Renderer
	interactive bool
}

// NewPrompter creates a Prompter reading answers from in and writing
// questions to out. colored styles the rendered thread.
func NewPrompter(in io.Reader, out io.Writer, interactive, colored bool) *Prompter {
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		renderer:    term.NewRenderer(out, colored),
		interactive: interactive,
	}
}

// Interactive reports whether prompts can be answered at all.
func (p *Prompter) Interactive() bool {
	return p.interactive
}

// ConfirmReply shows the thread and asks whether to continue it.
func (p *Prompter) ConfirmReply(thread domain.Thread) (bool, error) {
	fmt.Fprintln(p.out, "A thread already exists at this location:")
	fmt.Fprintln(p.out)
	p.renderer.Thread(thread)
	fmt.Fprintln(p.out)
	return p.ask("Continue the existing thread? (Y/n): ")
}

// ConfirmNewThread asks whether to start a new thread instead.
func (p *Prompter) ConfirmNewThread() (bool, error) {
	return p.ask("Create new thread? (Y/n): ")
}

// ask prints the question and reads one answer line. EOF with nothing
// typed aborts the whole flow.
func (p *Prompter) ask(question string) (bool, error) {
	fmt.Fprint(p.out, question)

	line, err := p.in.ReadString('\n')
	answer := strings.TrimSpace(line)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("failed to read answer: %w", err)
		}
		if answer == "" {
			return false, review.ErrAborted
		}
	}

	return strings.EqualFold(answer, "y"), nil
}
