package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/reel/internal/editor"
	"github.com/ytget/reel/internal/effects"
	"github.com/ytget/reel/internal/model"
)

// Inspector edits the selected object and the export settings of the
// target video
type Inspector struct {
	editor  *editor.Editor
	onError func(error)

	selected    editor.Placed
	hasSelected bool
	updating    bool

	titleLabel   *widget.Label
	filterSelect *widget.Select
	effectSelect *widget.Select
	speedSelect  *widget.Select

	splitStart *widget.Entry
	splitEnd   *widget.Entry
	splitLabel *widget.Label

	textEntry  *widget.Entry
	sizeEntry  *widget.Entry
	colorEntry *widget.Entry
	styleBox   *fyne.Container

	deleteBtn *widget.Button

	box *fyne.Container
}

// NewInspector creates the inspector panel
func NewInspector(ed *editor.Editor, onError func(error)) *Inspector {
	in := &Inspector{editor: ed, onError: onError}
	in.createUI()
	in.Update()
	return in
}

// Container returns the panel
func (in *Inspector) Container() *fyne.Container {
	return in.box
}

// SetSelection records what the preview last selected
func (in *Inspector) SetSelection(p editor.Placed, ok bool) {
	in.selected, in.hasSelected = p, ok
	in.Update()
}

// effectLabels returns display labels for a set of effects
func effectLabels(list []effects.Effect) []string {
	labels := make([]string, len(list))
	for i, e := range list {
		labels[i] = e.Label()
	}
	return labels
}

// effectByLabel maps a display label back to its effect
func effectByLabel(label string) effects.Effect {
	for _, e := range effects.All() {
		if e.Label() == label {
			return e
		}
	}
	return effects.None
}

// targetVideo is the active video, or the first one when none is active
func targetVideo(st editor.State) (model.VideoItem, bool) {
	if id := editor.SelectActive(st, model.KindVideo); id != "" {
		if v, ok := editor.SelectVideoByID(st, id); ok {
			return v, true
		}
	}
	videos := editor.SelectVideos(st)
	if len(videos) == 0 {
		return model.VideoItem{}, false
	}
	return videos[0], true
}

func (in *Inspector) createUI() {
	in.titleLabel = widget.NewLabel("")
	in.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	in.titleLabel.Truncation = fyne.TextTruncateEllipsis

	in.filterSelect = widget.NewSelect(effectLabels(effects.Filters()), func(label string) {
		if in.updating || !in.hasSelected {
			return
		}
		switch in.selected.Kind {
		case model.KindVideo, model.KindImage, model.KindShape:
			in.editor.SetFilter(in.selected.Kind, in.selected.ID, effectByLabel(label))
		}
	})

	in.effectSelect = widget.NewSelect(effectLabels(effects.Looks()), func(label string) {
		if in.updating {
			return
		}
		if v, ok := targetVideo(in.editor.State()); ok {
			in.editor.SetEffect(v.ID, effectByLabel(label))
		}
	})

	speeds := []string{}
	for _, s := range model.PlaybackSpeeds() {
		speeds = append(speeds, s.String())
	}
	in.speedSelect = widget.NewSelect(speeds, func(value string) {
		if in.updating {
			return
		}
		speed, err := model.ParsePlaybackSpeed(value)
		if err == nil {
			err = in.editor.SetPlaybackSpeed(speed)
		}
		in.report(err)
	})

	in.splitStart = widget.NewEntry()
	in.splitStart.SetPlaceHolder("start (s)")
	in.splitEnd = widget.NewEntry()
	in.splitEnd.SetPlaceHolder("end (s)")
	in.splitLabel = widget.NewLabel("")
	splitBtn := widget.NewButton("Set Trim", in.onAddSplit)

	in.textEntry = widget.NewEntry()
	in.textEntry.SetPlaceHolder("Text")
	in.textEntry.OnSubmitted = func(string) { in.onApplyStyle() }
	in.sizeEntry = widget.NewEntry()
	in.sizeEntry.SetPlaceHolder("Font size")
	in.colorEntry = widget.NewEntry()
	in.colorEntry.SetPlaceHolder("#rrggbb")
	applyBtn := widget.NewButton("Apply", in.onApplyStyle)
	in.styleBox = container.NewVBox(
		widget.NewLabel("Content:"),
		in.textEntry,
		widget.NewLabel("Font Size:"),
		in.sizeEntry,
		widget.NewLabel("Color:"),
		in.colorEntry,
		applyBtn,
	)

	in.deleteBtn = widget.NewButton("Delete", in.onDelete)
	in.deleteBtn.Importance = widget.DangerImportance

	in.box = container.NewVBox(
		in.titleLabel,
		widget.NewSeparator(),
		widget.NewLabel("Filter:"),
		in.filterSelect,
		in.styleBox,
		in.deleteBtn,
		widget.NewSeparator(),
		widget.NewLabel("Export Effect:"),
		in.effectSelect,
		widget.NewLabel("Playback Speed:"),
		in.speedSelect,
		widget.NewLabel("Trim:"),
		container.NewGridWithColumns(2, in.splitStart, in.splitEnd),
		splitBtn,
		in.splitLabel,
	)
}

// Update reflects the editor state. Must run on the UI goroutine.
func (in *Inspector) Update() {
	in.updating = true
	defer func() { in.updating = false }()

	st := in.editor.State()
	if in.hasSelected && !st.Exists(in.selected.Kind, in.selected.ID) {
		in.hasSelected = false
	}

	in.filterSelect.Disable()
	in.styleBox.Hide()
	in.deleteBtn.Disable()
	in.filterSelect.SetSelected(effects.None.Label())

	if !in.hasSelected {
		in.titleLabel.SetText("Nothing selected")
	} else {
		in.deleteBtn.Enable()
		in.titleLabel.SetText(in.selectionTitle(st))
	}

	if in.hasSelected {
		layers := st.Layers.Present
		switch in.selected.Kind {
		case model.KindVideo:
			if v, ok := editor.SelectVideoByID(st, in.selected.ID); ok {
				in.filterSelect.Enable()
				in.filterSelect.SetSelected(v.AppliedFilter.Label())
			}
		case model.KindImage:
			if it, ok := layers.Images.Get(in.selected.ID); ok {
				in.filterSelect.Enable()
				in.filterSelect.SetSelected(it.AppliedFilter.Label())
			}
		case model.KindShape:
			if it, ok := layers.Shapes.Get(in.selected.ID); ok {
				in.filterSelect.Enable()
				in.filterSelect.SetSelected(it.AppliedFilter.Label())
				in.textEntry.Disable()
				in.sizeEntry.Disable()
				in.colorEntry.SetText(it.Color)
				in.styleBox.Show()
			}
		case model.KindText:
			if it, ok := layers.Texts.Get(in.selected.ID); ok {
				in.textEntry.Enable()
				in.sizeEntry.Enable()
				in.textEntry.SetText(it.Content)
				in.sizeEntry.SetText(strconv.FormatFloat(it.Style.FontSize, 'f', -1, 64))
				in.colorEntry.SetText(it.Style.Color)
				in.styleBox.Show()
			}
		}
	}

	if v, ok := targetVideo(st); ok {
		in.effectSelect.Enable()
		in.effectSelect.SetSelected(v.AppliedEffect.Label())
	} else {
		in.effectSelect.Disable()
	}
	in.speedSelect.SetSelected(st.Videos.PlaybackSpeed.String())

	if sp, ok := editor.SelectLastSplitPoint(st); ok {
		in.splitLabel.SetText(fmt.Sprintf("Trim %.2fs - %.2fs", sp.StartTime, sp.EndTime))
	} else {
		in.splitLabel.SetText("No trim")
	}
}

func (in *Inspector) selectionTitle(st editor.State) string {
	layers := st.Layers.Present
	switch in.selected.Kind {
	case model.KindVideo:
		if v, ok := editor.SelectVideoByID(st, in.selected.ID); ok {
			return v.Name
		}
	case model.KindImage:
		if it, ok := layers.Images.Get(in.selected.ID); ok {
			return it.Name
		}
	case model.KindText:
		if it, ok := layers.Texts.Get(in.selected.ID); ok {
			return cleanText(it.Content)
		}
	case model.KindShape:
		if it, ok := layers.Shapes.Get(in.selected.ID); ok {
			return string(it.Type) + " shape"
		}
	case model.KindSticker:
		if it, ok := layers.Stickers.Get(in.selected.ID); ok {
			return it.Emoji + " sticker"
		}
	}
	return in.selected.Kind.String()
}

func (in *Inspector) onAddSplit() {
	start, err := strconv.ParseFloat(strings.TrimSpace(in.splitStart.Text), 64)
	if err != nil {
		in.report(fmt.Errorf("invalid trim start: %w", err))
		return
	}
	end, err := strconv.ParseFloat(strings.TrimSpace(in.splitEnd.Text), 64)
	if err != nil {
		in.report(fmt.Errorf("invalid trim end: %w", err))
		return
	}
	in.report(in.editor.AddSplitPoint(model.SplitPoint{StartTime: start, EndTime: end}))
}

func (in *Inspector) onApplyStyle() {
	if !in.hasSelected {
		return
	}
	color := strings.TrimSpace(in.colorEntry.Text)
	if color != "" {
		if _, ok := ParseHexColor(color); !ok {
			in.report(fmt.Errorf("invalid color %q", color))
			return
		}
	}

	switch in.selected.Kind {
	case model.KindShape:
		if color != "" {
			in.editor.SetShapeColor(in.selected.ID, color)
		}
	case model.KindText:
		text, ok := in.editor.State().Layers.Present.Texts.Get(in.selected.ID)
		if !ok {
			return
		}
		style := text.Style
		if color != "" {
			style.Color = color
		}
		if raw := strings.TrimSpace(in.sizeEntry.Text); raw != "" {
			size, err := strconv.ParseFloat(raw, 64)
			if err != nil || size <= 0 {
				in.report(fmt.Errorf("invalid font size %q", raw))
				return
			}
			style.FontSize = size
		}
		if style != text.Style {
			in.editor.SetTextStyle(text.ID, style)
		}
		in.editor.EndTextEditing(text.ID, in.textEntry.Text)
	}
}

func (in *Inspector) onDelete() {
	if !in.hasSelected {
		return
	}
	in.editor.Delete(in.selected.Kind, in.selected.ID)
	in.hasSelected = false
}

func (in *Inspector) report(err error) {
	if err != nil && in.onError != nil {
		in.onError(err)
	}
}
