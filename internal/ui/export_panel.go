package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/reel/internal/model"
)

// ExportPanel shows export jobs of this session above the journal history
type ExportPanel struct {
	rows  map[string]*JobRow
	list  *fyne.Container
	box   *fyne.Container
	empty *widget.Label

	onReveal   func(string)
	onOpen     func(string)
	onCopyPath func(string)
}

// NewExportPanel creates an empty export list
func NewExportPanel(onReveal, onOpen, onCopyPath func(string)) *ExportPanel {
	ep := &ExportPanel{
		rows:       make(map[string]*JobRow),
		list:       container.NewVBox(),
		empty:      widget.NewLabel("No exports yet"),
		onReveal:   onReveal,
		onOpen:     onOpen,
		onCopyPath: onCopyPath,
	}
	header := widget.NewLabel("Exports")
	header.TextStyle = fyne.TextStyle{Bold: true}
	ep.list.Add(ep.empty)
	ep.box = container.NewBorder(header, nil, nil, nil, container.NewVScroll(ep.list))
	return ep
}

// Container returns the panel
func (ep *ExportPanel) Container() *fyne.Container {
	return ep.box
}

// Load appends journal entries, oldest last. Must run on the UI goroutine.
func (ep *ExportPanel) Load(jobs []*model.ExportJob) {
	for _, job := range jobs {
		if _, ok := ep.rows[job.ID]; ok {
			continue
		}
		ep.addRow(job, false)
	}
}

// Upsert shows a job snapshot, new jobs on top. Must run on the UI goroutine.
func (ep *ExportPanel) Upsert(job *model.ExportJob) {
	if job == nil {
		return
	}
	if row, ok := ep.rows[job.ID]; ok {
		row.UpdateJob(job)
		return
	}
	ep.addRow(job, true)
}

// Row returns the row of a job
func (ep *ExportPanel) Row(jobID string) (*JobRow, bool) {
	row, ok := ep.rows[jobID]
	return row, ok
}

// Len returns the number of rows
func (ep *ExportPanel) Len() int {
	return len(ep.rows)
}

func (ep *ExportPanel) addRow(job *model.ExportJob, top bool) {
	if len(ep.rows) == 0 {
		ep.list.Remove(ep.empty)
	}
	row := NewJobRow(job)
	row.SetCallbacks(ep.onReveal, ep.onOpen, ep.onCopyPath)
	ep.rows[job.ID] = row

	if top {
		ep.list.Objects = append([]fyne.CanvasObject{row}, ep.list.Objects...)
		ep.list.Refresh()
		return
	}
	ep.list.Add(row)
}
