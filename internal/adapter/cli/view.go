package cli

import (
	"github.com/spf13/cobra"

	"github.com/bkyoung/lgtm/internal/adapter/output/json"
	"github.com/bkyoung/lgtm/internal/adapter/output/term"
	"github.com/bkyoung/lgtm/internal/usecase/review"
)

func viewCommand(deps Dependencies, opts *GlobalOptions) *cobra.Command {
	var prNumber int
	var file string
	var lineSpec string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the comment threads at a target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, deps, opts, func(app *App) error {
				result, err := app.Orchestrator.View(cmd.Context(), review.ViewRequest{
					Resolve:  resolveRequest(opts, app, prNumber),
					File:     file,
					LineSpec: lineSpec,
				})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if asJSON {
					return json.NewWriter(out).Threads(result.PR, result.Target, result.Threads)
				}
				term.NewRenderer(out, isTerminalWriter(out)).Threads(result.PR, result.Target, result.Threads)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&prNumber, "pr", "p", 0, "Pull request number (default: detect from the current branch)")
	cmd.Flags().StringVarP(&file, "file", "F", "", "Restrict to comments anchored on this file path")
	cmd.Flags().StringVarP(&lineSpec, "line", "l", "", "Line N or range A-B within --file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON instead of styled text")

	return cmd
}
