package review

import (
	"os"

	"golang.org/x/term"
)

// IsTTY checks if the given file descriptor is a terminal.
// This is useful for detecting whether the application is running
// in an interactive environment (e.g., a user's terminal) or
// in a non-interactive environment (e.g., CI/CD pipeline, piped input).
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// IsInteractive checks if stdin is a TTY, indicating that the user can
// answer prompts. The thread decision prompts are only offered when
// this is true; otherwise the command expects explicit flags.
//
// Returns false in CI/CD environments, when input is piped, or when
// running as a background process.
func IsInteractive() bool {
	return IsTTY(os.Stdin.Fd())
}

// IsOutputTerminal checks if stdout is a TTY, indicating that output
// is being displayed directly to a user's terminal rather than being
// piped or redirected. Colored thread rendering keys off this.
func IsOutputTerminal() bool {
	return IsTTY(os.Stdout.Fd())
}

// IsErrTerminal checks if stderr is a TTY. Progress spinners key off
// this so redirected diagnostics never carry spinner frames.
func IsErrTerminal() bool {
	return IsTTY(os.Stderr.Fd())
}
