// Package editor launches the user's editor to compose and revise
// comment bodies.
package editor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/bkyoung/lgtm/internal/domain"
)

// defaultCommand is the editor of last resort.
const defaultCommand = "vi"

// Session writes a seed body to a temp file, hands it to the editor,
// and reads the result back. One Session serves one invocation.
type Session struct {
	command string

	// run executes the resolved editor command. Tests replace it to
	// simulate an editing session without a terminal.
	run func(ctx context.Context, name string, args ...string) error
}

// New resolves the editor command and returns a ready Session.
// Resolution order: $EDITOR, $VISUAL, the configured editor, then vi.
func New(configured string) *Session {
	return &Session{
		command: resolveCommand(configured),
		run:     runAttached,
	}
}

// Command reports the resolved editor command line.
func (s *Session) Command() string {
	return s.command
}

func resolveCommand(configured string) string {
	candidates := []string{
		os.Getenv("EDITOR"),
		os.Getenv("VISUAL"),
		configured,
	}
	for _, candidate := range candidates {
		if cmd := strings.TrimSpace(candidate); cmd != "" {
			return cmd
		}
	}
	return defaultCommand
}

// runAttached runs the editor wired to the invoking terminal so
// full-screen editors work.
func runAttached(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Compose opens the editor on a temp file seeded with seed and returns
// the trimmed buffer contents. A whitespace-only buffer returns
// domain.ErrEmptyComment; with requireChange set, a buffer identical
// to the seed returns domain.ErrUnchangedEdit. The temp file is
// removed on every exit path.
func (s *Session) Compose(ctx context.Context, seed string, requireChange bool) (string, error) {
	file, err := os.CreateTemp("", "lgtm-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := file.Name()
	defer os.Remove(path)

	if _, err := file.WriteString(seed); err != nil {
		file.Close()
		return "", fmt.Errorf("failed to seed temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	parts := strings.Fields(s.command)
	args := append(parts[1:], path)
	if err := s.run(ctx, parts[0], args...); err != nil {
		return "", fmt.Errorf("editor %q failed: %w", s.command, err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}

	body := strings.TrimSpace(string(edited))
	if body == "" {
		return "", domain.ErrEmptyComment
	}
	if requireChange && body == strings.TrimSpace(seed) {
		return "", domain.ErrUnchangedEdit
	}

	return body, nil
}
