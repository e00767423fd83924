package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ytget/reel/internal/timeline"
)

func newTimelineCmd(app *App) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "timeline <video>...",
		Short: "Show how clips are laid out on the timeline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app.NoJournal = true
			s, err := app.openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			for _, path := range args {
				if _, err := s.ImportVideoFile(ctx, path); err != nil {
					return err
				}
			}

			snap := s.Engine().Snapshot()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", titleStyle.Render("Total"), timeline.FormatTime(snap.TotalDuration))
			fmt.Fprint(out, RenderTimeline(s.Tracks(), snap.TotalDuration, width))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", DefaultRulerWidth, "Ruler width in cells")
	return cmd
}
