package cli

import (
	"github.com/spf13/cobra"

	"github.com/bkyoung/lgtm/internal/adapter/output/json"
	"github.com/bkyoung/lgtm/internal/adapter/output/term"
	"github.com/bkyoung/lgtm/internal/usecase/review"
)

func approveCommand(deps Dependencies, opts *GlobalOptions) *cobra.Command {
	var prNumber int
	var body string
	var editBody bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "approve",
		Short: "Submit an approving review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, deps, opts, func(app *App) error {
				result, err := app.Orchestrator.Approve(cmd.Context(), review.ApproveRequest{
					Resolve:  resolveRequest(opts, app, prNumber),
					Body:     body,
					EditBody: editBody,
				})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if asJSON {
					return json.NewWriter(out).Approved(result.PR, result.Body)
				}
				term.NewRenderer(out, isTerminalWriter(out)).Approved(result.PR)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&prNumber, "pr", "p", 0, "Pull request number (default: detect from the current branch)")
	cmd.Flags().StringVarP(&body, "body", "b", "", "Optional review summary")
	cmd.Flags().BoolVar(&editBody, "edit-body", false, "Compose the review summary in $EDITOR")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON instead of styled text")
	cmd.MarkFlagsMutuallyExclusive("body", "edit-body")

	return cmd
}
