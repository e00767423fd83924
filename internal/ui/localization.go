package ui

import (
	"fyne.io/fyne/v2/lang"

	"github.com/ytget/reel/internal/config"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle         = "app_title"
	KeyVideo            = "video"
	KeyImage            = "image"
	KeyURL              = "url"
	KeyHeading          = "heading"
	KeySubheading       = "subheading"
	KeyBody             = "body"
	KeyShape            = "shape"
	KeySticker          = "sticker"
	KeyExport           = "export"
	KeySettings         = "settings"
	KeyFile             = "file"
	KeyEdit             = "edit"
	KeyImportVideo      = "import_video"
	KeyImportImage      = "import_image"
	KeyImportURL        = "import_url"
	KeyExportMenu       = "export_menu"
	KeyUndo             = "undo"
	KeyRedo             = "redo"
	KeyDelete           = "delete"
	KeyInspectTab       = "inspect_tab"
	KeyExportsTab       = "exports_tab"
	KeyImportsTab       = "imports_tab"
	KeyEditText         = "edit_text"
	KeyText             = "text"
	KeySave             = "save"
	KeyCancel           = "cancel"
	KeyBrowse           = "browse"
	KeyLanguage         = "language"
	KeyImporting        = "importing"
	KeyExporting        = "exporting"
	KeyExportSaved      = "export_saved"
	KeyReveal           = "reveal"
	KeyOpen             = "open"
	KeySettingsSaved    = "settings_saved"
	KeyErrorOpeningFile = "error_opening_file"
	KeyPathCopied       = "path_copied"
)

// English is the fallback language
const English = "en"

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: English,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" follows the OS locale.
func (l *Localization) SetLanguage(code string) {
	if code == config.DefaultLanguage {
		code = lang.SystemLocale().LanguageString()
	}

	if _, exists := l.texts[code]; exists {
		l.currentLanguage = code
	} else {
		l.currentLanguage = English
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	if text, found := l.texts[English][key]; found {
		return text
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts[English] = map[string]string{
		KeyAppTitle:         "Reel",
		KeyVideo:            "Video",
		KeyImage:            "Image",
		KeyURL:              "URL",
		KeyHeading:          "Heading",
		KeySubheading:       "Subheading",
		KeyBody:             "Body",
		KeyShape:            "Shape",
		KeySticker:          "Sticker",
		KeyExport:           "Export",
		KeySettings:         "Settings",
		KeyFile:             "File",
		KeyEdit:             "Edit",
		KeyImportVideo:      "Import Video...",
		KeyImportImage:      "Import Image...",
		KeyImportURL:        "Import from URL...",
		KeyExportMenu:       "Export...",
		KeyUndo:             "Undo",
		KeyRedo:             "Redo",
		KeyDelete:           "Delete",
		KeyInspectTab:       "Inspect",
		KeyExportsTab:       "Exports",
		KeyImportsTab:       "Imports",
		KeyEditText:         "Edit Text",
		KeyText:             "Text",
		KeySave:             "Save",
		KeyCancel:           "Cancel",
		KeyBrowse:           "Browse",
		KeyLanguage:         "Language:",
		KeyImporting:        "Importing",
		KeyExporting:        "Exporting",
		KeyExportSaved:      "Export saved",
		KeyReveal:           "Reveal",
		KeyOpen:             "Open",
		KeySettingsSaved:    "Settings saved. Tool paths apply after restart.",
		KeyErrorOpeningFile: "Error opening file",
		KeyPathCopied:       "Path copied to clipboard",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:         "Reel",
		KeyVideo:            "Видео",
		KeyImage:            "Изображение",
		KeyURL:              "URL",
		KeyHeading:          "Заголовок",
		KeySubheading:       "Подзаголовок",
		KeyBody:             "Текст",
		KeyShape:            "Фигура",
		KeySticker:          "Стикер",
		KeyExport:           "Экспорт",
		KeySettings:         "Настройки",
		KeyFile:             "Файл",
		KeyEdit:             "Правка",
		KeyImportVideo:      "Импорт видео...",
		KeyImportImage:      "Импорт изображения...",
		KeyImportURL:        "Импорт по URL...",
		KeyExportMenu:       "Экспорт...",
		KeyUndo:             "Отменить",
		KeyRedo:             "Повторить",
		KeyDelete:           "Удалить",
		KeyInspectTab:       "Свойства",
		KeyExportsTab:       "Экспорты",
		KeyImportsTab:       "Импорт",
		KeyEditText:         "Изменить текст",
		KeyText:             "Текст",
		KeySave:             "Сохранить",
		KeyCancel:           "Отмена",
		KeyBrowse:           "Обзор",
		KeyLanguage:         "Язык:",
		KeyImporting:        "Импорт",
		KeyExporting:        "Экспорт",
		KeyExportSaved:      "Экспорт сохранён",
		KeyReveal:           "Показать",
		KeyOpen:             "Открыть",
		KeySettingsSaved:    "Настройки сохранены. Пути к инструментам применятся после перезапуска.",
		KeyErrorOpeningFile: "Ошибка открытия файла",
		KeyPathCopied:       "Путь скопирован в буфер обмена",
	}
}
