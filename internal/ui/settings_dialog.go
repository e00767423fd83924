package ui

import (
	"fmt"
	"log"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/reel/internal/config"
	"github.com/ytget/reel/internal/model"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	localization *Localization
	onSaved      func()

	// UI components
	exportDirEntry  *widget.Entry
	importDirEntry  *widget.Entry
	historyEntry    *widget.Entry
	qualitySelect   *widget.Select
	speedSelect     *widget.Select
	ffmpegEntry     *widget.Entry
	ffprobeEntry    *widget.Entry
	fontEntry       *widget.Entry
	autoRevealCheck *widget.Check
	languageSelect  *widget.Select
}

// NewSettingsDialog creates a new settings dialog. A nil localization falls
// back to English.
func NewSettingsDialog(settings *config.Settings, window fyne.Window, localization *Localization, onSaved func()) *SettingsDialog {
	if localization == nil {
		localization = NewLocalization()
	}
	sd := &SettingsDialog{
		settings:     settings,
		window:       window,
		localization: localization,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// ShowSettingsDialog builds and shows the settings dialog
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	NewSettingsDialog(settings, window, localization, onSaved).Show()
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	t := sd.localization.GetText

	sd.exportDirEntry = widget.NewEntry()
	sd.exportDirEntry.SetPlaceHolder("Export directory path")
	exportDirRow := container.NewBorder(nil, nil, nil,
		widget.NewButton(t(KeyBrowse), func() { sd.onBrowseDirectory(sd.exportDirEntry) }), sd.exportDirEntry)

	sd.importDirEntry = widget.NewEntry()
	sd.importDirEntry.SetPlaceHolder("Import directory path")
	importDirRow := container.NewBorder(nil, nil, nil,
		widget.NewButton(t(KeyBrowse), func() { sd.onBrowseDirectory(sd.importDirEntry) }), sd.importDirEntry)

	sd.historyEntry = widget.NewEntry()
	sd.historyEntry.SetPlaceHolder(fmt.Sprintf("%d-%d", config.MinHistoryLimit, config.MaxHistoryLimit))

	qualityOptions := []string{}
	for _, q := range sd.settings.GetQualityOptions() {
		qualityOptions = append(qualityOptions, string(q))
	}
	sd.qualitySelect = widget.NewSelect(qualityOptions, nil)

	speedOptions := []string{}
	for _, s := range model.PlaybackSpeeds() {
		speedOptions = append(speedOptions, s.String())
	}
	sd.speedSelect = widget.NewSelect(speedOptions, nil)

	sd.ffmpegEntry = widget.NewEntry()
	sd.ffmpegEntry.SetPlaceHolder(config.DefaultFFmpegPath)
	sd.ffprobeEntry = widget.NewEntry()
	sd.ffprobeEntry.SetPlaceHolder(config.DefaultFFprobePath)
	sd.fontEntry = widget.NewEntry()
	sd.fontEntry.SetPlaceHolder("System default")

	sd.autoRevealCheck = widget.NewCheck("Reveal saved exports in file manager", nil)

	languageNames := []string{}
	for _, code := range config.LanguageCodes {
		languageNames = append(languageNames, sd.settings.GetLanguageOptions()[code])
	}
	sd.languageSelect = widget.NewSelect(languageNames, nil)

	form := container.NewVBox(
		widget.NewLabel("Export Settings"),
		widget.NewSeparator(),

		widget.NewLabel("Export Directory:"),
		exportDirRow,

		widget.NewLabel("Export Quality:"),
		sd.qualitySelect,

		sd.autoRevealCheck,

		widget.NewSeparator(),
		widget.NewLabel("Editor Settings"),
		widget.NewSeparator(),

		widget.NewLabel("Import Directory:"),
		importDirRow,

		widget.NewLabel(t(KeyLanguage)),
		sd.languageSelect,

		widget.NewLabel("Undo History Limit:"),
		sd.historyEntry,

		widget.NewLabel("Default Playback Speed:"),
		sd.speedSelect,

		widget.NewSeparator(),
		widget.NewLabel("Tools"),
		widget.NewSeparator(),

		widget.NewLabel("ffmpeg:"),
		sd.ffmpegEntry,
		widget.NewLabel("ffprobe:"),
		sd.ffprobeEntry,
		widget.NewLabel("Text Font File:"),
		sd.fontEntry,
	)

	sd.dialog = dialog.NewCustomConfirm(
		t(KeySettings),
		t(KeySave),
		t(KeyCancel),
		container.NewVScroll(form),
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.exportDirEntry.SetText(sd.settings.GetExportDirectory())
	sd.importDirEntry.SetText(sd.settings.GetImportDirectory())
	sd.historyEntry.SetText(strconv.Itoa(sd.settings.GetHistoryLimit()))
	sd.qualitySelect.SetSelected(string(sd.settings.GetQuality()))
	sd.speedSelect.SetSelected(sd.settings.GetDefaultSpeed().String())
	sd.ffmpegEntry.SetText(sd.settings.GetFFmpegPath())
	sd.ffprobeEntry.SetText(sd.settings.GetFFprobePath())
	sd.fontEntry.SetText(sd.settings.GetFontFile())
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoReveal())
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
}

// onBrowseDirectory fills target with a picked folder
func (sd *SettingsDialog) onBrowseDirectory(target *widget.Entry) {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		target.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.apply()
	if sd.onSaved != nil {
		sd.onSaved()
	}
}

// apply writes the form back to preferences
func (sd *SettingsDialog) apply() {
	if dir := sd.exportDirEntry.Text; dir != "" {
		sd.settings.SetExportDirectory(dir)
	}
	if dir := sd.importDirEntry.Text; dir != "" {
		sd.settings.SetImportDirectory(dir)
	}
	if text := sd.historyEntry.Text; text != "" {
		if limit, err := strconv.Atoi(text); err == nil {
			sd.settings.SetHistoryLimit(limit)
		}
	}
	if sd.qualitySelect.Selected != "" {
		sd.settings.SetQuality(model.Quality(sd.qualitySelect.Selected))
	}
	if sd.speedSelect.Selected != "" {
		speed, err := model.ParsePlaybackSpeed(sd.speedSelect.Selected)
		if err == nil {
			err = sd.settings.SetDefaultSpeed(speed)
		}
		if err != nil {
			log.Printf("Ignoring default speed %q: %v", sd.speedSelect.Selected, err)
		}
	}
	sd.settings.SetFFmpegPath(sd.ffmpegEntry.Text)
	sd.settings.SetFFprobePath(sd.ffprobeEntry.Text)
	sd.settings.SetFontFile(sd.fontEntry.Text)
	sd.settings.SetAutoReveal(sd.autoRevealCheck.Checked)
	for code, name := range sd.settings.GetLanguageOptions() {
		if name == sd.languageSelect.Selected {
			sd.settings.SetLanguage(code)
		}
	}
}
