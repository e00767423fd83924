package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/reel/internal/config"
	"github.com/ytget/reel/internal/export"
	"github.com/ytget/reel/internal/model"
	"github.com/ytget/reel/internal/session"
)

// Export dialog texts
const (
	ExportDialogTitle   = "Export Video"
	ExportCompleteTitle = "Export Complete"
	NoVideoMessage      = "Import a video before exporting."
	StepsSeparator      = " → "
)

// ExportSummary describes the steps an export of video would run
func ExportSummary(video model.VideoItem, steps []export.Step) string {
	if len(steps) == 0 {
		return video.Name
	}
	return video.Name + MiddleDotSeparator + strings.Join(export.Ops(steps), StepsSeparator)
}

// ShowExportDialog asks for the quality preset and starts exporting the
// target video. onStart receives the accepted job or the refusal.
func ShowExportDialog(ctx context.Context, window fyne.Window, sess *session.Session, settings *config.Settings, onStart func(*model.ExportJob, error)) {
	st := sess.Editor().State()
	video, ok := targetVideo(st)
	if !ok {
		dialog.ShowInformation(ExportDialogTitle, NoVideoMessage, window)
		return
	}
	steps, err := export.Plan(st, video.ID)
	if err != nil {
		dialog.ShowError(err, window)
		return
	}

	summary := widget.NewLabel(ExportSummary(video, steps))
	summary.Wrapping = fyne.TextWrapWord

	qualityOptions := []string{}
	for _, q := range settings.GetQualityOptions() {
		qualityOptions = append(qualityOptions, string(q))
	}
	qualitySelect := widget.NewSelect(qualityOptions, nil)
	qualitySelect.SetSelected(string(sess.Quality()))

	content := container.NewVBox(
		summary,
		widget.NewSeparator(),
		widget.NewLabel("Quality:"),
		qualitySelect,
	)

	d := dialog.NewCustomConfirm(ExportDialogTitle, "Export", "Cancel", content, func(confirmed bool) {
		if !confirmed {
			return
		}
		if q, err := model.ParseQuality(qualitySelect.Selected); err == nil {
			sess.SetQuality(q)
			settings.SetQuality(q)
		}
		job, err := sess.Pipeline().Start(ctx, video.ID)
		if onStart != nil {
			onStart(job, err)
		}
	}, window)
	d.Resize(fyne.NewSize(ExportDialogWidth, ExportDialogHeight))
	d.Show()
}

// ShowExportComplete reports a finished export with its name and size and
// offers to save it
func ShowExportComplete(window fyne.Window, job *model.ExportJob, onSave func()) {
	name := widget.NewLabel(job.GetDisplayTitle())
	name.TextStyle = fyne.TextStyle{Bold: true}
	name.Truncation = fyne.TextTruncateEllipsis
	details := widget.NewLabel(fmt.Sprintf("%s%s%d steps%s%s",
		job.GetSizeString(), MiddleDotSeparator, len(job.Steps), MiddleDotSeparator, job.Elapsed().Round(time.Second/10)))

	content := container.NewVBox(name, details)
	d := dialog.NewCustomConfirm(ExportCompleteTitle, "Save", "Close", content, func(save bool) {
		if save && onSave != nil {
			onSave()
		}
	}, window)
	d.Show()
}
