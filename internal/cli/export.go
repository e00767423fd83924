package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ytget/reel/internal/effects"
	"github.com/ytget/reel/internal/model"
)

type exportFlags struct {
	split    string
	effect   string
	speed    string
	images   []string
	texts    []string
	textType string
}

func newExportCmd(app *App) *cobra.Command {
	var f exportFlags

	cmd := &cobra.Command{
		Use:   "export <video>",
		Short: "Apply edits to a clip and save the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, app, args[0], f)
		},
	}

	cmd.Flags().StringVar(&f.split, "split", "", "Keep only start:end seconds")
	cmd.Flags().StringVar(&f.effect, "effect", "", "Effect name (see: reel effects)")
	cmd.Flags().StringVar(&f.speed, "speed", "", "Playback speed (0.5, 0.75, 1, 1.25, 1.5, 2)")
	cmd.Flags().StringArrayVar(&f.images, "image", nil, "Image overlay as path@x,y (repeatable)")
	cmd.Flags().StringArrayVar(&f.texts, "text", nil, "Text overlay as content@x,y (repeatable)")
	cmd.Flags().StringVar(&f.textType, "text-type", string(model.TextHeading), "Text role (heading|subheading|body)")
	return cmd
}

func runExport(cmd *cobra.Command, app *App, videoPath string, f exportFlags) error {
	textType, err := model.ParseTextType(f.textType)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s, err := app.openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	ed := s.Editor()
	video, err := s.ImportVideoFile(ctx, videoPath)
	if err != nil {
		return err
	}

	if f.split != "" {
		sp, err := ParseSplit(f.split)
		if err != nil {
			return err
		}
		if err := ed.AddSplitPoint(sp); err != nil {
			return err
		}
	}
	if f.effect != "" {
		e, err := effects.Parse(f.effect)
		if err != nil {
			return err
		}
		ed.SetEffect(video.ID, e)
	}
	if f.speed != "" {
		speed, err := model.ParsePlaybackSpeed(f.speed)
		if err != nil {
			return err
		}
		if err := ed.SetPlaybackSpeed(speed); err != nil {
			return err
		}
	}
	for _, raw := range f.images {
		overlay, err := ParseImageFlag(raw)
		if err != nil {
			return err
		}
		if _, err := s.ImportImageFile(overlay.Path, overlay.Position); err != nil {
			return err
		}
	}
	for _, raw := range f.texts {
		overlay, err := ParseTextFlag(raw)
		if err != nil {
			return err
		}
		ed.AddText(overlay.Content, textType, overlay.Position)
	}

	out := cmd.OutOrStdout()
	s.Pipeline().SetUpdateCallback(func(job *model.ExportJob) {
		fmt.Fprintln(out, RenderProgress(job))
	})

	job, err := s.Export(ctx, video.ID)
	if err != nil {
		return err
	}
	path, err := s.SaveExport(ctx, video.ID, job.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s %s (%s)\n", okStyle.Render("Saved"), path, job.GetSizeString())
	return nil
}
