package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ytget/reel/internal/journal"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent exports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			j, err := journal.Open(ctx, app.JournalPath)
			if err != nil {
				return err
			}
			defer j.Close()

			jobs, err := j.Recent(ctx, limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), RenderJobs(jobs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", journal.DefaultRecent, "Number of exports to show")
	return cmd
}
