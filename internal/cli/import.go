package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ytget/reel/internal/importer"
	"github.com/ytget/reel/internal/model"
)

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <url>",
		Short: "Download a clip or a whole playlist into the import directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app.NoJournal = true
			s, err := app.openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			s.Importer().SetUpdateCallback(func(task *model.ImportTask) {
				if task.Status == model.JobStatusRunning {
					fmt.Fprintf(out, "\r%s %3.0f%% %s", activeStyle.Render("Downloading"), task.Progress*100, task.Title)
				}
			})

			if importer.IsPlaylistURL(args[0]) {
				playlist, videos, err := s.ImportPlaylist(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\n%s %s: %d of %d clips\n", okStyle.Render("Imported"), playlist.Title, len(videos), len(playlist.Entries))
				for _, e := range playlist.Entries {
					if e.Status == model.JobStatusError {
						fmt.Fprintf(out, "  %s %s: %s\n", errStyle.Render("failed"), e.Title, e.Error)
					}
				}
				return nil
			}

			video, err := s.ImportURL(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%s %s (%s)\n", okStyle.Render("Imported"), video.Name, formatSeconds(video.Duration))
			return nil
		},
	}
	return cmd
}

func formatSeconds(s float64) string {
	return fmt.Sprintf("%.1fs", s)
}
