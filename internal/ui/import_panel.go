package ui

import (
	"fmt"
	"sort"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/reel/internal/model"
)

// ImportPanel lists URL imports, single clips and playlist entries alike
type ImportPanel struct {
	mu    sync.Mutex
	tasks map[string]*model.ImportTask
	order []string

	header *widget.Label
	list   *widget.List
	box    *fyne.Container
}

// NewImportPanel creates an empty import list
func NewImportPanel() *ImportPanel {
	ip := &ImportPanel{tasks: make(map[string]*model.ImportTask)}

	ip.header = widget.NewLabel("Imports")
	ip.header.TextStyle = fyne.TextStyle{Bold: true}

	ip.list = widget.NewList(
		ip.Len,
		func() fyne.CanvasObject {
			title := widget.NewLabel("")
			title.Truncation = fyne.TextTruncateEllipsis
			status := widget.NewLabel("")
			status.Alignment = fyne.TextAlignTrailing
			return container.NewBorder(nil, nil, nil, status, title)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			task, ok := ip.At(id)
			if !ok {
				return
			}
			row := obj.(*fyne.Container)
			title := row.Objects[0].(*widget.Label)
			status := row.Objects[1].(*widget.Label)
			title.SetText(importTitle(task))
			status.SetText(importStatus(task))
			switch task.Status {
			case model.JobStatusError:
				status.Importance = widget.DangerImportance
			case model.JobStatusCompleted:
				status.Importance = widget.SuccessImportance
			default:
				status.Importance = widget.MediumImportance
			}
			status.Refresh()
		},
	)

	ip.box = container.NewBorder(ip.header, nil, nil, nil, ip.list)
	return ip
}

// Container returns the panel
func (ip *ImportPanel) Container() *fyne.Container {
	return ip.box
}

// Upsert stores a task snapshot. Safe from any goroutine; the list is
// refreshed on the UI goroutine.
func (ip *ImportPanel) Upsert(task *model.ImportTask) {
	if task == nil {
		return
	}
	ip.mu.Lock()
	if _, ok := ip.tasks[task.ID]; !ok {
		ip.order = append(ip.order, task.ID)
	}
	ip.tasks[task.ID] = task
	ip.mu.Unlock()
	fyne.Do(ip.list.Refresh)
}

// SetPlaylist shows the playlist being imported in the header
func (ip *ImportPanel) SetPlaylist(p *model.Playlist) {
	text := "Imports"
	if p != nil {
		text = fmt.Sprintf("%s%s%d clips%s"+ProgressLabelFormat, cleanText(p.Title), MiddleDotSeparator,
			len(p.Entries), MiddleDotSeparator, int(p.Progress()*MaxProgressPercent))
	}
	fyne.Do(func() { ip.header.SetText(text) })
}

// Len returns the number of tasks shown
func (ip *ImportPanel) Len() int {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	return len(ip.order)
}

// At returns the task shown at row id, newest first
func (ip *ImportPanel) At(id int) (*model.ImportTask, bool) {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	if id < 0 || id >= len(ip.order) {
		return nil, false
	}
	return ip.tasks[ip.order[len(ip.order)-1-id]], true
}

// Active returns the ids of imports still in flight, sorted
func (ip *ImportPanel) Active() []string {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	var ids []string
	for id, t := range ip.tasks {
		if t.Status.IsActive() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func importTitle(t *model.ImportTask) string {
	if t.Title != "" {
		return cleanText(t.Title)
	}
	return cleanText(t.URL)
}

func importStatus(t *model.ImportTask) string {
	switch t.Status {
	case model.JobStatusRunning:
		return fmt.Sprintf(ProgressLabelFormat, ProgressPercent(t.Progress, t.Status))
	case model.JobStatusError:
		return IconError + " " + t.Status.String()
	default:
		return t.Status.String()
	}
}
