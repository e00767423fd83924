package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ytget/reel/internal/config"
	"github.com/ytget/reel/internal/journal"
	"github.com/ytget/reel/internal/model"
	"github.com/ytget/reel/internal/session"
)

// Environment overrides
const (
	EnvExportDir = "REEL_EXPORT_DIR"
	EnvImportDir = "REEL_IMPORT_DIR"
	EnvFFmpeg    = "REEL_FFMPEG"
	EnvFFprobe   = "REEL_FFPROBE"
	EnvFont      = "REEL_FONT"
	EnvJournal   = "REEL_JOURNAL"
)

// App holds the persistent flags
type App struct {
	ExportDir    string
	ImportDir    string
	FFmpeg       string
	FFprobe      string
	FontFile     string
	Quality      string
	HistoryLimit int
	JournalPath  string
	NoJournal    bool
}

// NewRootCmd builds the reel command tree
func NewRootCmd() *cobra.Command {
	app := &App{}
	defaults := config.DefaultValues()

	cmd := &cobra.Command{
		Use:          "reel",
		Short:        "Headless video editing: trim, effects, speed and overlays through ffmpeg",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Trim, tint and speed up a clip, then save it to the export directory
  reel export beach.mp4 --split 2:8 --effect sepia --speed 1.5

  # Add a caption and a logo
  reel export beach.mp4 --text "Summer@40,400" --image logo.png@800,20

  # Show how clips land on the timeline
  reel timeline intro.mp4 beach.mp4

  # Recent exports
  reel history
`),
	}

	cmd.PersistentFlags().StringVar(&app.ExportDir, "export-dir", envOr(EnvExportDir, defaults.ExportDir), "Directory exports are saved to")
	cmd.PersistentFlags().StringVar(&app.ImportDir, "import-dir", envOr(EnvImportDir, defaults.ImportDir), "Directory remote clips are downloaded to")
	cmd.PersistentFlags().StringVar(&app.FFmpeg, "ffmpeg", envOr(EnvFFmpeg, defaults.FFmpegPath), "ffmpeg binary")
	cmd.PersistentFlags().StringVar(&app.FFprobe, "ffprobe", envOr(EnvFFprobe, defaults.FFprobePath), "ffprobe binary")
	cmd.PersistentFlags().StringVar(&app.FontFile, "font", envOr(EnvFont, defaults.FontFile), "Font file for text overlays")
	cmd.PersistentFlags().StringVar(&app.Quality, "quality", string(defaults.Quality), "Export quality (720p|1080p)")
	cmd.PersistentFlags().IntVar(&app.HistoryLimit, "history-limit", defaults.HistoryLimit, "Undo depth")
	cmd.PersistentFlags().StringVar(&app.JournalPath, "journal", envOr(EnvJournal, defaultJournalPath(defaults.ExportDir)), "Export journal database")
	cmd.PersistentFlags().BoolVar(&app.NoJournal, "no-journal", false, "Do not record exports")

	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newTimelineCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newEffectsCmd(app))

	return cmd
}

// Values converts flags into settings
func (a *App) Values() (config.Values, error) {
	v := config.DefaultValues()
	q, err := model.ParseQuality(a.Quality)
	if err != nil {
		return v, err
	}
	v.ExportDir = a.ExportDir
	v.ImportDir = a.ImportDir
	v.FFmpegPath = a.FFmpeg
	v.FFprobePath = a.FFprobe
	v.FontFile = a.FontFile
	v.Quality = q
	v.HistoryLimit = a.HistoryLimit
	v.AutoReveal = false
	return v, nil
}

func (a *App) openSession(ctx context.Context) (*session.Session, error) {
	v, err := a.Values()
	if err != nil {
		return nil, err
	}
	opts := session.Options{Values: v}
	if !a.NoJournal {
		opts.JournalPath = a.JournalPath
	}
	return session.New(ctx, opts)
}

func defaultJournalPath(exportDir string) string {
	return filepath.Join(exportDir, journal.DefaultFileName)
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
