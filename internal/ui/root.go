package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/reel/internal/config"
	"github.com/ytget/reel/internal/editor"
	"github.com/ytget/reel/internal/model"
	"github.com/ytget/reel/internal/platform"
	"github.com/ytget/reel/internal/session"
	"github.com/ytget/reel/internal/timeline"
)

// Accepted file types for the open dialogs
var (
	VideoExtensions = []string{".mp4", ".mov", ".webm", ".mkv", ".avi", ".m4v"}
	ImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif"}
)

// Split offsets
const (
	MainSplitOffset    = 0.76
	PreviewSplitOffset = 0.66
	InsertCascade      = 5
)

// RootUI represents the main editor window
type RootUI struct {
	window   fyne.Window
	session  *session.Session
	settings *config.Settings
	loc      *Localization

	ctx    context.Context
	cancel context.CancelFunc

	preview        *Preview
	timeline       *TimelineView
	timelineScroll *container.Scroll
	controls       *TimelineControls
	inspector      *Inspector
	exports        *ExportPanel
	imports        *ImportPanel

	undoBtn *widget.Button
	redoBtn *widget.Button

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite

	insertCount int
	unsubscribe func()
}

// NewRootUI creates the editor window content and wires it to the session
func NewRootUI(window fyne.Window, sess *session.Session, settings *config.Settings) *RootUI {
	ctx, cancel := context.WithCancel(context.Background())

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:   window,
		session:  sess,
		settings: settings,
		loc:      localization,
		ctx:      ctx,
		cancel:   cancel,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()

	ui.unsubscribe = sess.Editor().Store().Subscribe(func(editor.State) {
		fyne.Do(ui.refreshEditor)
	})
	sess.Engine().SetUpdateCallback(func(snap timeline.Snapshot) {
		fyne.Do(func() { ui.refreshTimeline(snap) })
	})
	sess.Pipeline().SetUpdateCallback(ui.onExportUpdate)
	sess.Importer().SetUpdateCallback(ui.imports.Upsert)

	go sess.Engine().RunFrameLoop(ctx, timeline.DefaultFrameInterval)
	ui.loadRecentExports()

	log.Printf("UI setup completed successfully")
	return ui
}

// Close stops background work started by the window
func (ui *RootUI) Close() {
	ui.cancel()
	if ui.unsubscribe != nil {
		ui.unsubscribe()
		ui.unsubscribe = nil
	}
}

func (ui *RootUI) setupUI() {
	ed := ui.session.Editor()

	ui.preview = NewPreview(ed, ui.session.Registry())
	ui.preview.SetCallbacks(func(p editor.Placed, ok bool) {
		ui.inspector.SetSelection(p, ok)
	}, ui.onEditText)

	ui.timeline = NewTimelineView(ui.session.Engine(), ui.session.Tracks)
	ui.timelineScroll = container.NewScroll(ui.timeline)
	ui.controls = NewTimelineControls(ui.session.Engine())
	ui.inspector = NewInspector(ed, ui.showError)
	ui.exports = NewExportPanel(ui.onRevealFile, ui.onOpenFile, ui.onCopyPath)
	ui.imports = NewImportPanel()
	ui.createMenu()

	ui.notificationLabel = widget.NewLabel("")
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	top := container.NewVBox(ui.createToolbar(), ui.notificationContainer)

	timelineArea := container.NewBorder(ui.controls.Container(), nil, nil, nil, ui.timelineScroll)
	editArea := container.NewVSplit(ui.preview, timelineArea)
	editArea.Offset = PreviewSplitOffset

	side := container.NewAppTabs(
		container.NewTabItem(ui.loc.GetText(KeyInspectTab), container.NewVScroll(ui.inspector.Container())),
		container.NewTabItem(ui.loc.GetText(KeyExportsTab), ui.exports.Container()),
		container.NewTabItem(ui.loc.GetText(KeyImportsTab), ui.imports.Container()),
	)
	body := container.NewHSplit(editArea, side)
	body.Offset = MainSplitOffset

	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, body))
	ui.setupShortcuts()
	ui.refreshEditor()
}

// createToolbar builds the insert, history and export buttons
func (ui *RootUI) createToolbar() fyne.CanvasObject {
	ed := ui.session.Editor()
	t := ui.loc.GetText

	videoBtn := widget.NewButtonWithIcon(t(KeyVideo), theme.MediaVideoIcon(), ui.onImportVideo)
	imageBtn := widget.NewButtonWithIcon(t(KeyImage), theme.FileImageIcon(), ui.onImportImage)
	urlBtn := widget.NewButtonWithIcon(t(KeyURL), theme.DownloadIcon(), ui.onImportURL)

	headingBtn := widget.NewButton(t(KeyHeading), func() { ui.addText(model.TextHeading) })
	subheadingBtn := widget.NewButton(t(KeySubheading), func() { ui.addText(model.TextSubheading) })
	bodyBtn := widget.NewButton(t(KeyBody), func() { ui.addText(model.TextBody) })

	shapes := []string{string(model.ShapeBlob), string(model.ShapeWave), string(model.ShapeCorner), string(model.ShapeSwirl)}
	var shapeSelect *widget.Select
	shapeSelect = widget.NewSelect(shapes, func(s string) {
		if s == "" {
			return
		}
		ed.AddShape(model.ShapeType(s), ui.nextInsertPosition(),
			model.Size{Width: DefaultShapeSize, Height: DefaultShapeSize}, DefaultShapeColor)
		shapeSelect.ClearSelected()
	})
	shapeSelect.PlaceHolder = t(KeyShape)

	var stickerSelect *widget.Select
	stickerSelect = widget.NewSelect(Stickers, func(s string) {
		if s == "" {
			return
		}
		ed.AddSticker(s, ui.nextInsertPosition(), DefaultStickerSize)
		stickerSelect.ClearSelected()
	})
	stickerSelect.PlaceHolder = t(KeySticker)

	ui.undoBtn = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), ed.Undo)
	ui.redoBtn = widget.NewButtonWithIcon("", theme.ContentRedoIcon(), ed.Redo)

	exportBtn := widget.NewButtonWithIcon(t(KeyExport), theme.DocumentSaveIcon(), ui.onExport)
	exportBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	left := container.NewHBox(
		videoBtn, imageBtn, urlBtn,
		widget.NewSeparator(),
		headingBtn, subheadingBtn, bodyBtn, shapeSelect, stickerSelect,
		widget.NewSeparator(),
		ui.undoBtn, ui.redoBtn,
	)
	return container.NewBorder(nil, nil, left, container.NewHBox(exportBtn, settingsBtn))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	ed := ui.session.Editor()
	t := ui.loc.GetText
	file := fyne.NewMenu(t(KeyFile),
		fyne.NewMenuItem(t(KeyImportVideo), ui.onImportVideo),
		fyne.NewMenuItem(t(KeyImportImage), ui.onImportImage),
		fyne.NewMenuItem(t(KeyImportURL), ui.onImportURL),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(t(KeyExportMenu), ui.onExport),
		fyne.NewMenuItem(t(KeySettings), ui.onShowSettings),
	)
	edit := fyne.NewMenu(t(KeyEdit),
		fyne.NewMenuItem(t(KeyUndo), ed.Undo),
		fyne.NewMenuItem(t(KeyRedo), ed.Redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(t(KeyDelete), ui.inspector.onDelete),
	)
	ui.window.SetMainMenu(fyne.NewMainMenu(file, edit))
}

// setupShortcuts binds undo/redo and the canvas keys
func (ui *RootUI) setupShortcuts() {
	ed := ui.session.Editor()
	c := ui.window.Canvas()

	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { ed.Undo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift},
		func(fyne.Shortcut) { ed.Redo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { ed.Redo() })

	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			ui.inspector.onDelete()
		case fyne.KeySpace:
			ui.session.Engine().TogglePlayback()
		}
	})
}

// refreshEditor redraws everything derived from editor state
func (ui *RootUI) refreshEditor() {
	st := ui.session.Editor().State()
	ui.preview.Refresh()
	ui.timeline.Refresh()
	ui.timelineScroll.Refresh()
	ui.inspector.Update()

	if editor.CanUndo(st) {
		ui.undoBtn.Enable()
	} else {
		ui.undoBtn.Disable()
	}
	if editor.CanRedo(st) {
		ui.redoBtn.Enable()
	} else {
		ui.redoBtn.Disable()
	}
}

// refreshTimeline reflects playhead and zoom changes
func (ui *RootUI) refreshTimeline(snap timeline.Snapshot) {
	ui.controls.Update(snap)
	ui.timeline.Refresh()
	ui.timelineScroll.Refresh()
}

// nextInsertPosition cascades new objects so they do not stack exactly
func (ui *RootUI) nextInsertPosition() model.Position {
	ui.insertCount++
	step := float64(ui.insertCount%InsertCascade) * InsertOffset
	return model.Position{X: InsertOffset + step, Y: InsertOffset + step}
}

func (ui *RootUI) addText(t model.TextType) {
	ui.session.Editor().AddText(DefaultTextContent, t, ui.nextInsertPosition())
}

// onEditText asks for new content of a text in editing mode
func (ui *RootUI) onEditText(text model.TextItem) {
	entry := widget.NewEntry()
	entry.SetText(text.Content)
	t := ui.loc.GetText
	items := []*widget.FormItem{widget.NewFormItem(t(KeyText), entry)}
	dialog.ShowForm(t(KeyEditText), t(KeySave), t(KeyCancel), items, func(confirmed bool) {
		content := text.Content
		if confirmed {
			content = entry.Text
		}
		ui.session.Editor().EndTextEditing(text.ID, content)
	}, ui.window)
}

// onImportVideo picks a local clip and loads it
func (ui *RootUI) onImportVideo() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			ui.showError(err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		ui.showNotification(ui.loc.GetText(KeyImporting)+" "+filepath.Base(path), true)
		go func() {
			_, err := ui.session.ImportVideoFile(ui.ctx, path)
			ui.hideNotification()
			if err != nil {
				fyne.Do(func() { ui.showError(err) })
			}
		}()
	}, ui.window)
	d.SetFilter(storage.NewExtensionFileFilter(VideoExtensions))
	d.Show()
}

// onImportImage picks a local image and places it as an overlay
func (ui *RootUI) onImportImage() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			ui.showError(err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		if _, err := ui.session.ImportImageFile(path, ui.nextInsertPosition()); err != nil {
			ui.showError(err)
		}
	}, ui.window)
	d.SetFilter(storage.NewExtensionFileFilter(ImageExtensions))
	d.Show()
}

// onImportURL downloads a remote clip or a whole playlist
func (ui *RootUI) onImportURL() {
	ShowImportURLDialog(ui.window, func(rawURL string, playlist bool) {
		ui.showNotification(ui.loc.GetText(KeyImporting)+" "+rawURL, true)
		go func() {
			defer ui.hideNotification()
			if !playlist {
				if _, err := ui.session.ImportURL(ui.ctx, rawURL); err != nil {
					fyne.Do(func() { ui.showError(err) })
				}
				return
			}

			pl, videos, err := ui.session.ImportPlaylist(ui.ctx, rawURL)
			ui.imports.SetPlaylist(pl)
			if err != nil {
				fyne.Do(func() { ui.showError(err) })
				return
			}
			log.Printf("Imported %d of %d playlist clips", len(videos), len(pl.Entries))
		}()
	})
}

// onExport opens the export dialog for the target video
func (ui *RootUI) onExport() {
	ShowExportDialog(ui.ctx, ui.window, ui.session, ui.settings, func(job *model.ExportJob, err error) {
		if err != nil {
			ui.showError(err)
			return
		}
		ui.exports.Upsert(job)
	})
}

// onExportUpdate handles job updates from the export pipeline
func (ui *RootUI) onExportUpdate(job *model.ExportJob) {
	fyne.Do(func() {
		ui.exports.Upsert(job)
		switch job.Status {
		case model.JobStatusRunning:
			ui.showNotification(fmt.Sprintf("%s %s: %s "+ProgressLabelFormat, ui.loc.GetText(KeyExporting),
				job.GetDisplayTitle(), job.CurrentStep(), ProgressPercent(job.Progress, job.Status)), true)
		case model.JobStatusCompleted:
			ui.hideNotification()
			ShowExportComplete(ui.window, job, func() { ui.saveExport(job) })
		case model.JobStatusError:
			ui.hideNotification()
			ui.showError(errors.New(job.LastError))
		}
	})
}

// saveExport writes a finished export to the export directory
func (ui *RootUI) saveExport(job *model.ExportJob) {
	go func() {
		path, err := ui.session.SaveExport(ui.ctx, job.VideoID, job.ID)
		fyne.Do(func() {
			if err != nil {
				ui.showError(err)
				return
			}
			saved := *job
			saved.OutputPath = path
			ui.exports.Upsert(&saved)
			if ui.settings.GetAutoReveal() {
				ui.onRevealFile(path)
			}
			fyne.CurrentApp().SendNotification(&fyne.Notification{
				Title:   ExportCompleteTitle,
				Content: filepath.Base(path),
			})
			ui.showToastNotification(&saved)
		})
	}()
}

// loadRecentExports fills the export panel from the journal
func (ui *RootUI) loadRecentExports() {
	go func() {
		jobs, err := ui.session.RecentExports(ui.ctx, RecentExportsLimit)
		if err != nil {
			log.Printf("Failed to load export history: %v", err)
			return
		}
		fyne.Do(func() { ui.exports.Load(jobs) })
	}()
}

// showNotification displays a message in the notification panel under the toolbar.
// When spinning is true, a spinner is shown to indicate background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		if spinning {
			ui.notificationSpinner.Show()
		} else {
			ui.notificationSpinner.Hide()
		}
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

// hideNotification hides the notification panel.
func (ui *RootUI) hideNotification() {
	fyne.Do(func() {
		ui.notificationSpinner.Hide()
		ui.notificationContainer.Hide()
	})
}

func (ui *RootUI) showError(err error) {
	log.Printf("Error: %v", err)
	dialog.ShowError(err, ui.window)
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.loc, func() {
		ui.session.SetQuality(ui.settings.GetQuality())
		ui.session.Importer().SetDirectory(ui.settings.GetImportDirectory())
		ui.loc.SetLanguage(ui.settings.GetLanguage())
		widget.ShowPopUp(widget.NewLabel(ui.loc.GetText(KeySettingsSaved)), ui.window.Canvas())
	})
}

// onRevealFile handles revealing a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Printf("Error revealing file %s: %v", filePath, err)
		widget.ShowPopUp(widget.NewLabel(ui.loc.GetText(KeyErrorOpeningFile)+": "+err.Error()), ui.window.Canvas())
	}
}

// onOpenFile handles opening an export with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		log.Printf("Error opening file %s: %v", filePath, err)
		widget.ShowPopUp(widget.NewLabel(ui.loc.GetText(KeyErrorOpeningFile)+": "+err.Error()), ui.window.Canvas())
	}
}

// onCopyPath handles copying file path to clipboard
func (ui *RootUI) onCopyPath(filePath string) {
	if strings.TrimSpace(filePath) == "" {
		return
	}
	fyne.CurrentApp().Clipboard().SetContent(filePath)
	widget.ShowPopUp(widget.NewLabel(ui.loc.GetText(KeyPathCopied)), ui.window.Canvas())
}

// showToastNotification shows an in-app toast with reveal and open actions
func (ui *RootUI) showToastNotification(job *model.ExportJob) {
	titleLabel := widget.NewLabel(ui.loc.GetText(KeyExportSaved))
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	messageLabel := widget.NewLabel(filepath.Base(job.OutputPath) + MiddleDotSeparator + job.GetSizeString())
	messageLabel.Truncation = fyne.TextTruncateEllipsis

	revealBtn := widget.NewButton(ui.loc.GetText(KeyReveal), func() { ui.onRevealFile(job.OutputPath) })
	revealBtn.Importance = widget.HighImportance
	openBtn := widget.NewButton(ui.loc.GetText(KeyOpen), func() { ui.onOpenFile(job.OutputPath) })

	var toastPopup *widget.PopUp
	closeBtn := widget.NewButton(IconClose, func() {
		if toastPopup != nil {
			toastPopup.Hide()
		}
	})
	closeBtn.Importance = widget.LowImportance

	content := container.NewVBox(
		container.NewBorder(nil, nil, titleLabel, closeBtn),
		messageLabel,
		container.NewHBox(revealBtn, openBtn),
	)
	toastPopup = widget.NewPopUp(content, ui.window.Canvas())

	canvasSize := ui.window.Canvas().Size()
	toastPopup.Resize(fyne.NewSize(ToastWidth, ToastHeight))
	toastPopup.Move(fyne.NewPos(canvasSize.Width-ToastWidth-ToastMargin, ToastMargin))
	toastPopup.Show()

	go func() {
		time.Sleep(ToastAutoHide)
		fyne.Do(toastPopup.Hide)
	}()
}
