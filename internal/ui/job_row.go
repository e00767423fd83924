package ui

import (
	"fmt"
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/reel/internal/model"
)

// JobRow represents a compact export job row
type JobRow struct {
	widget.BaseWidget

	job *model.ExportJob

	// UI components
	titleLabel    *widget.Label
	statusLabel   *widget.Label
	progressLabel *widget.Label
	stepLabel     *widget.Label

	// Action buttons
	revealBtn *widget.Button // reveal in file manager
	openBtn   *widget.Button // open with default app (player)
	copyBtn   *widget.Button

	// Callbacks
	onReveal   func(filePath string)
	onOpen     func(filePath string)
	onCopyPath func(filePath string)
}

// NewJobRow creates a new job row widget
func NewJobRow(job *model.ExportJob) *JobRow {
	if job == nil {
		job = &model.ExportJob{ID: "placeholder", Status: model.JobStatusPending}
	}

	jr := &JobRow{job: job}
	jr.ExtendBaseWidget(jr)
	jr.createUI()
	jr.updateFromJob()
	return jr
}

// SetCallbacks sets the action callbacks
func (jr *JobRow) SetCallbacks(onReveal, onOpen, onCopyPath func(filePath string)) {
	jr.onReveal = onReveal
	jr.onOpen = onOpen
	jr.onCopyPath = onCopyPath
}

// UpdateJob updates the row with new job data
func (jr *JobRow) UpdateJob(job *model.ExportJob) {
	if job == nil {
		log.Printf("Warning: UpdateJob called with nil job for existing job %s", jr.job.ID)
		return
	}
	jr.job = job
	jr.updateFromJob()
	jr.Refresh()
}

// Job returns the job currently shown
func (jr *JobRow) Job() *model.ExportJob {
	return jr.job
}

// createUI creates the UI components
func (jr *JobRow) createUI() {
	jr.titleLabel = widget.NewLabel("")
	jr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	jr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	jr.statusLabel = widget.NewLabel("")
	jr.statusLabel.Alignment = fyne.TextAlignTrailing
	jr.progressLabel = widget.NewLabel("")
	jr.progressLabel.Alignment = fyne.TextAlignTrailing
	jr.stepLabel = widget.NewLabel("")
	jr.stepLabel.TextStyle = fyne.TextStyle{Monospace: true}

	jr.revealBtn = widget.NewButton(IconFolder, func() {
		if jr.onReveal != nil && jr.job.OutputPath != "" {
			jr.onReveal(jr.job.OutputPath)
		}
	})
	jr.openBtn = widget.NewButton(IconPlay, func() {
		if jr.onOpen != nil && jr.job.OutputPath != "" {
			jr.onOpen(jr.job.OutputPath)
		}
	})
	jr.copyBtn = widget.NewButton(IconCopy, func() {
		if jr.onCopyPath != nil && jr.job.OutputPath != "" {
			jr.onCopyPath(jr.job.OutputPath)
		}
	})
}

// updateFromJob updates UI components based on job state
func (jr *JobRow) updateFromJob() {
	job := jr.job
	jr.titleLabel.SetText(cleanText(job.GetDisplayTitle()))

	switch job.Status {
	case model.JobStatusError:
		jr.statusLabel.Importance = widget.DangerImportance
		jr.statusLabel.SetText(IconError + " " + job.Status.String())
	case model.JobStatusCompleted:
		jr.statusLabel.Importance = widget.SuccessImportance
		jr.statusLabel.SetText(job.Status.String())
	case model.JobStatusRunning:
		jr.statusLabel.Importance = widget.HighImportance
		jr.statusLabel.SetText(IconPlay + " " + job.Status.String())
	default:
		jr.statusLabel.Importance = widget.MediumImportance
		jr.statusLabel.SetText(IconPending + " " + job.Status.String())
	}

	switch job.Status {
	case model.JobStatusCompleted:
		jr.progressLabel.SetText("")
		jr.stepLabel.SetText(job.GetSizeString())
	case model.JobStatusError:
		jr.progressLabel.SetText("")
		jr.stepLabel.SetText(cleanText(job.LastError))
	default:
		jr.progressLabel.SetText(fmt.Sprintf(ProgressLabelFormat, ProgressPercent(job.Progress, job.Status)))
		step := job.CurrentStep()
		if step == "" {
			step = DashPlaceholder
		}
		jr.stepLabel.SetText(step)
	}

	jr.updateButtons()
}

// updateButtons enables file actions once the export has been saved
func (jr *JobRow) updateButtons() {
	if jr.job.OutputPath != "" {
		jr.revealBtn.Enable()
		jr.openBtn.Enable()
		jr.copyBtn.Enable()
		return
	}
	jr.revealBtn.Disable()
	jr.openBtn.Disable()
	jr.copyBtn.Disable()
}

// CreateRenderer creates the widget renderer
func (jr *JobRow) CreateRenderer() fyne.WidgetRenderer {
	return &jobRowRenderer{jobRow: jr}
}

// jobRowRenderer renders the job row widget
type jobRowRenderer struct {
	jobRow *JobRow
	layout *fyne.Container
}

// Layout arranges the components
func (r *jobRowRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	if size.Width < RowMinWidth {
		size.Width = RowMinWidth
	}
	if size.Height < RowMinHeight {
		size.Height = RowMinHeight
	}
	r.layout.Resize(size)
}

// MinSize returns the minimum size
func (r *jobRowRenderer) MinSize() fyne.Size {
	if r.layout != nil {
		return r.layout.MinSize()
	}
	return fyne.NewSize(RowMinWidth, RowMinHeight)
}

// Refresh refreshes the renderer
func (r *jobRowRenderer) Refresh() {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Refresh()
}

// Objects returns the container objects
func (r *jobRowRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

// Destroy cleans up the renderer
func (r *jobRowRenderer) Destroy() {}

// createLayout creates the main layout
func (r *jobRowRenderer) createLayout() {
	jr := r.jobRow

	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	info := container.NewVBox(
		fixedWidth(StatusLabelWidth, jr.statusLabel),
		container.NewHBox(
			fixedWidth(StepLabelWidth, jr.stepLabel),
			fixedWidth(PercentLabelWidth, jr.progressLabel),
		),
	)
	actions := container.NewHBox(jr.revealBtn, jr.openBtn, jr.copyBtn)

	rightCluster := container.NewBorder(nil, nil, nil, actions, info)
	mainContent := container.NewBorder(nil, nil, nil, rightCluster, jr.titleLabel)

	r.layout = container.NewVBox(mainContent, widget.NewSeparator())
	r.layout.Resize(fyne.NewSize(RowMinWidth, RowDefaultH))
}
