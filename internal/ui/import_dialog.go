package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/reel/internal/importer"
)

// Import dialog texts
const (
	ImportDialogTitle = "Import from URL"
	ImportURLHint     = "Video or playlist URL"
)

// ShowImportURLDialog asks for a remote clip or playlist URL
func ShowImportURLDialog(window fyne.Window, onSubmit func(rawURL string, playlist bool)) {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(ImportURLHint)
	entry.Validator = func(s string) error {
		return importer.ValidateURL(strings.TrimSpace(s))
	}

	items := []*widget.FormItem{
		widget.NewFormItem("URL", entry),
	}
	d := dialog.NewForm(ImportDialogTitle, "Import", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}
		rawURL := strings.TrimSpace(entry.Text)
		onSubmit(rawURL, importer.IsPlaylistURL(rawURL))
	}, window)
	d.Resize(fyne.NewSize(ImportDialogWidth, ImportDialogHeight))
	d.Show()
}
