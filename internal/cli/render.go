package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ytget/reel/internal/effects"
	"github.com/ytget/reel/internal/model"
	"github.com/ytget/reel/internal/timeline"
)

// Rendering constants
const (
	DefaultRulerWidth = 60
	trackLabelWidth   = 8
	clipBlock         = "█"
	emptyBlock        = "·"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c757d"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#2e9d5b")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#d16d7a")).Bold(true)
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f39c12")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Width(trackLabelWidth).Foreground(lipgloss.Color("#5f9fb0"))
	clipStyles  = map[model.TrackType]lipgloss.Style{
		model.TrackVideo: lipgloss.NewStyle().Foreground(lipgloss.Color("#5f9fb0")),
		model.TrackImage: lipgloss.NewStyle().Foreground(lipgloss.Color("#f39c12")),
		model.TrackText:  lipgloss.NewStyle().Foreground(lipgloss.Color("#b07fd1")),
	}
)

// statusStyle picks the color of a job status
func statusStyle(s model.JobStatus) lipgloss.Style {
	switch s {
	case model.JobStatusCompleted:
		return okStyle
	case model.JobStatusError:
		return errStyle
	default:
		return activeStyle
	}
}

// RenderTimeline draws every track as a row of width cells spanning total seconds
func RenderTimeline(tracks []model.Track, total float64, width int) string {
	if width <= 0 {
		width = DefaultRulerWidth
	}
	if total <= 0 {
		total = timeline.TotalDuration(tracks)
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("") + " " + mutedStyle.Render(rulerLabels(total, width)) + "\n")
	for _, track := range tracks {
		b.WriteString(labelStyle.Render(string(track.Type)) + " " + TrackRow(track, total, width) + "\n")
	}
	for _, track := range tracks {
		for _, clip := range track.Clips {
			fmt.Fprintf(&b, "  %s %s  %s → %s\n",
				clipStyles[clip.Type].Render(clipBlock),
				clip.Name,
				timeline.FormatTime(clip.StartTime),
				timeline.FormatTime(clip.EndTime()))
		}
	}
	return b.String()
}

// TrackRow returns the unstyled cell pattern of one track, styled per clip type
func TrackRow(track model.Track, total float64, width int) string {
	cells := trackCells(track, total, width)
	style := clipStyles[track.Type]
	var b strings.Builder
	for _, filled := range cells {
		if filled {
			b.WriteString(style.Render(clipBlock))
		} else {
			b.WriteString(mutedStyle.Render(emptyBlock))
		}
	}
	return b.String()
}

// trackCells marks the cells covered by any clip
func trackCells(track model.Track, total float64, width int) []bool {
	cells := make([]bool, width)
	if total <= 0 {
		return cells
	}
	perCell := total / float64(width)
	for _, clip := range track.Clips {
		from := int(math.Floor(clip.StartTime / perCell))
		to := int(math.Ceil(clip.EndTime() / perCell))
		for i := max(from, 0); i < min(to, width); i++ {
			cells[i] = true
		}
	}
	return cells
}

func rulerLabels(total float64, width int) string {
	start := timeline.FormatTime(0)
	end := timeline.FormatTime(total)
	gap := width - len(start) - len(end)
	if gap < 1 {
		gap = 1
	}
	return start + strings.Repeat(" ", gap) + end
}

// RenderJobs lists export jobs, one per line
func RenderJobs(jobs []*model.ExportJob) string {
	if len(jobs) == 0 {
		return mutedStyle.Render("No exports yet") + "\n"
	}
	var b strings.Builder
	for _, job := range jobs {
		status := statusStyle(job.Status).Render(fmt.Sprintf("%-9s", job.Status))
		fmt.Fprintf(&b, "%s %s  %s  %s\n",
			status,
			titleStyle.Render(job.GetDisplayTitle()),
			job.GetSizeString(),
			mutedStyle.Render(job.StartedAt.Format("2006-01-02 15:04")))
		if len(job.Steps) > 0 {
			b.WriteString("          " + mutedStyle.Render(strings.Join(job.Steps, " → ")) + "\n")
		}
		if job.OutputPath != "" {
			b.WriteString("          " + job.OutputPath + "\n")
		}
		if job.LastError != "" {
			b.WriteString("          " + errStyle.Render(job.LastError) + "\n")
		}
	}
	return b.String()
}

// RenderEffects lists every effect with its preview and export forms
func RenderEffects(list []effects.Effect) string {
	var b strings.Builder
	for _, e := range list {
		fmt.Fprintf(&b, "%-11s %s\n", titleStyle.Render(string(e)), e.Label())
		if !e.IsNone() {
			b.WriteString("            " + mutedStyle.Render("preview: "+e.Preview()) + "\n")
			b.WriteString("            " + mutedStyle.Render("ffmpeg:  "+e.Export()) + "\n")
		}
	}
	return b.String()
}

// RenderProgress formats one export progress line
func RenderProgress(job *model.ExportJob) string {
	step := job.CurrentStep()
	if step == "" {
		step = string(job.Status)
	}
	return fmt.Sprintf("%s %3.0f%% %s", statusStyle(job.Status).Render(fmt.Sprintf("%-9s", job.Status)), job.Progress*100, step)
}
