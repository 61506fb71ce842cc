package cli

import (
	"github.com/spf13/cobra"

	"github.com/bkyoung/lgtm/internal/adapter/output/json"
	"github.com/bkyoung/lgtm/internal/adapter/output/term"
	"github.com/bkyoung/lgtm/internal/usecase/review"
)

func commentCommand(deps Dependencies, opts *GlobalOptions) *cobra.Command {
	var prNumber int
	var file string
	var lineSpec string
	var body string
	var replyTo int64
	var newThread bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Comment at a target, continuing an existing thread or starting a new one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, deps, opts, func(app *App) error {
				result, err := app.Orchestrator.Comment(cmd.Context(), review.CommentRequest{
					Resolve:   resolveRequest(opts, app, prNumber),
					File:      file,
					LineSpec:  lineSpec,
					Body:      body,
					ReplyTo:   replyTo,
					NewThread: newThread,
				})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if asJSON {
					return json.NewWriter(out).Commented(result.PR, result.Comment, result.Replied)
				}
				term.NewRenderer(out, isTerminalWriter(out)).Commented(result.PR, result.Comment, result.Replied)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&prNumber, "pr", "p", 0, "Pull request number (default: detect from the current branch)")
	cmd.Flags().StringVarP(&file, "file", "F", "", "Anchor the comment on this file path")
	cmd.Flags().StringVarP(&lineSpec, "line", "l", "", "Line N or range A-B within --file")
	cmd.Flags().StringVarP(&body, "body", "b", "", "Comment body (default: compose in $EDITOR)")
	cmd.Flags().Int64Var(&replyTo, "reply-to", 0, "Reply to the thread containing this comment ID")
	cmd.Flags().BoolVar(&newThread, "new-thread", false, "Start a new thread even when one exists at the target")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON instead of styled text")
	cmd.MarkFlagsMutuallyExclusive("reply-to", "new-thread")

	return cmd
}
