// Package cli wires the cobra commands for the lgtm binary. Verbs stay
// thin: they parse flags into use-case requests, run the orchestrator,
// and hand results to a renderer.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bkyoung/lgtm/internal/domain"
	"github.com/bkyoung/lgtm/internal/usecase/resolve"
	"github.com/bkyoung/lgtm/internal/usecase/review"
)

// ErrVersionRequested indicates the user requested the CLI version and no further work should be done.
var ErrVersionRequested = errors.New("version requested")

// Orchestrator defines the command flows the CLI drives.
type Orchestrator interface {
	View(ctx context.Context, req review.ViewRequest) (review.ViewResult, error)
	Comment(ctx context.Context, req review.CommentRequest) (review.CommentResult, error)
	Edit(ctx context.Context, req review.EditRequest) (review.EditResult, error)
	Approve(ctx context.Context, req review.ApproveRequest) (review.ApproveResult, error)
}

// GlobalOptions carries the persistent flag values shared by every verb.
type GlobalOptions struct {
	ConfigFile string
	EnvFile    string
	LogLevel   string
	LogFormat  string

	// Repo is an OWNER/REPO override; empty means read the git remote.
	Repo string
}

// App is the wired application a verb runs against.
type App struct {
	Orchestrator Orchestrator

	// Remote is the git remote consulted when --repo is absent.
	Remote string

	// Close releases held resources, the response cache mainly.
	Close func() error
}

// AppFactory builds the application after cobra has parsed the
// persistent flags, so configuration loading can honor --config and
// --env-file.
type AppFactory func(ctx context.Context, opts GlobalOptions) (*App, error)

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	NewApp  AppFactory
	Args    Arguments
	Version string
}

// NewRootCommand constructs the root Cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:   "lgtm",
		Short: "View, write, and approve GitHub pull request review comments",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	opts := &GlobalOptions{}
	root.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "Config file (default $XDG_CONFIG_HOME/lgtm/config.yaml)")
	root.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "Load environment variables from this .env file first")
	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn, or error")
	root.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "Log format: text or json")
	root.PersistentFlags().StringVarP(&opts.Repo, "repo", "R", "", "Repository as OWNER/REPO (default: read the git remote)")

	root.AddCommand(viewCommand(deps, opts))
	root.AddCommand(commentCommand(deps, opts))
	root.AddCommand(editCommand(deps, opts))
	root.AddCommand(approveCommand(deps, opts))
	root.AddCommand(versionCommand(versionString))

	var showVersion bool
	root.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	versionHandler := func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = versionHandler
	root.PreRunE = versionHandler
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if err := versionHandler(cmd, args); err != nil {
			return err
		}
		return cmd.Help()
	}

	return root
}

func versionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}

// withApp builds the application for one verb invocation, runs fn, and
// tears the application down again. Declining both thread prompts is a
// decision, not a failure: it becomes a closing line on stdout and a
// zero exit. Every taxonomy error still exits non-zero.
func withApp(cmd *cobra.Command, deps Dependencies, opts *GlobalOptions, fn func(app *App) error) error {
	if deps.NewApp == nil {
		return errors.New("application factory is not configured")
	}

	app, err := deps.NewApp(cmd.Context(), *opts)
	if err != nil {
		return err
	}
	defer func() {
		if app.Close != nil {
			_ = app.Close()
		}
	}()

	if err := fn(app); err != nil {
		if errors.Is(err, review.ErrAborted) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
		return decorateError(err)
	}
	return nil
}

// decorateError appends a remedy to failures the user can route around
// with a flag.
func decorateError(err error) error {
	if errors.Is(err, domain.ErrNoGitHubRemote) {
		return fmt.Errorf("%w (pass --repo OWNER/REPO to name the repository explicitly)", err)
	}
	return err
}

// resolveRequest assembles the pull-request resolution inputs shared by
// every verb.
func resolveRequest(opts *GlobalOptions, app *App, prNumber int) resolve.Request {
	return resolve.Request{
		Number:       prNumber,
		RepoOverride: opts.Repo,
		Remote:       app.Remote,
	}
}

// isTerminalWriter reports whether w is a process file descriptor
// attached to a terminal. Injected test buffers never are, so their
// output stays free of escape codes.
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return review.IsTTY(f.Fd())
}
