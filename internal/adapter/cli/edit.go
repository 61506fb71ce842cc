package cli

import (
	"github.com/spf13/cobra"

	"github.com/bkyoung/lgtm/internal/adapter/output/json"
	"github.com/bkyoung/lgtm/internal/adapter/output/term"
	"github.com/bkyoung/lgtm/internal/usecase/review"
)

func editCommand(deps Dependencies, opts *GlobalOptions) *cobra.Command {
	var prNumber int
	var file string
	var lineSpec string
	var commentID int64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Rewrite an existing comment in your editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, deps, opts, func(app *App) error {
				result, err := app.Orchestrator.Edit(cmd.Context(), review.EditRequest{
					Resolve:   resolveRequest(opts, app, prNumber),
					File:      file,
					LineSpec:  lineSpec,
					CommentID: commentID,
				})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if asJSON {
					return json.NewWriter(out).Edited(result.PR, result.Comment)
				}
				term.NewRenderer(out, isTerminalWriter(out)).Edited(result.PR, result.Comment)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&prNumber, "pr", "p", 0, "Pull request number (default: detect from the current branch)")
	cmd.Flags().StringVarP(&file, "file", "F", "", "File path the comment is anchored on")
	cmd.Flags().StringVarP(&lineSpec, "line", "l", "", "Line N or range A-B within --file")
	cmd.Flags().Int64Var(&commentID, "comment-id", 0, "Edit this comment instead of the most recent thread root at the target")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON instead of styled text")

	return cmd
}
