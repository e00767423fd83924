package config

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/ytget/reel/internal/model"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.prefs != app.Preferences() {
		t.Error("Settings should use the app preferences")
	}
}

func TestExportDirectory(t *testing.T) {
	settings := NewSettings(test.NewApp())

	if dir := settings.GetExportDirectory(); dir == "" {
		t.Error("Export directory should not be empty")
	}

	customDir := "/custom/exports"
	settings.SetExportDirectory(customDir)
	if got := settings.GetExportDirectory(); got != customDir {
		t.Errorf("Expected export directory %s, got %s", customDir, got)
	}
}

func TestImportDirectory(t *testing.T) {
	settings := NewSettings(test.NewApp())

	if dir := settings.GetImportDirectory(); dir == "" {
		t.Error("Import directory should not be empty")
	}

	settings.SetImportDirectory(" /custom/imports ")
	if got := settings.GetImportDirectory(); got != "/custom/imports" {
		t.Errorf("Expected trimmed import directory, got %q", got)
	}
}

func TestHistoryLimit(t *testing.T) {
	settings := NewSettings(test.NewApp())

	if got := settings.GetHistoryLimit(); got != DefaultHistoryLimit {
		t.Errorf("Expected default history limit %d, got %d", DefaultHistoryLimit, got)
	}

	tests := []struct {
		set      int
		expected int
	}{
		{25, 25},
		{0, MinHistoryLimit},
		{-3, MinHistoryLimit},
		{500, MaxHistoryLimit},
	}

	for _, tt := range tests {
		settings.SetHistoryLimit(tt.set)
		if got := settings.GetHistoryLimit(); got != tt.expected {
			t.Errorf("SetHistoryLimit(%d): GetHistoryLimit() = %d, expected %d", tt.set, got, tt.expected)
		}
	}
}

func TestQuality(t *testing.T) {
	settings := NewSettings(test.NewApp())

	if got := settings.GetQuality(); got != DefaultQuality {
		t.Errorf("Expected default quality %s, got %s", DefaultQuality, got)
	}

	settings.SetQuality(model.Quality1080p)
	if got := settings.GetQuality(); got != model.Quality1080p {
		t.Errorf("Expected quality 1080p, got %s", got)
	}

	settings.SetQuality(model.Quality("4k"))
	if got := settings.GetQuality(); got != DefaultQuality {
		t.Errorf("Unknown quality should fall back to %s, got %s", DefaultQuality, got)
	}

	if opts := settings.GetQualityOptions(); len(opts) != 2 {
		t.Errorf("Expected 2 quality options, got %d", len(opts))
	}
}

func TestToolPaths(t *testing.T) {
	settings := NewSettings(test.NewApp())

	if got := settings.GetFFmpegPath(); got != DefaultFFmpegPath {
		t.Errorf("GetFFmpegPath() = %s, expected %s", got, DefaultFFmpegPath)
	}
	if got := settings.GetFFprobePath(); got != DefaultFFprobePath {
		t.Errorf("GetFFprobePath() = %s, expected %s", got, DefaultFFprobePath)
	}

	settings.SetFFmpegPath("/opt/ffmpeg/bin/ffmpeg")
	if got := settings.GetFFmpegPath(); got != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("GetFFmpegPath() = %s", got)
	}
	settings.SetFFmpegPath("")
	if got := settings.GetFFmpegPath(); got != DefaultFFmpegPath {
		t.Errorf("Empty path should restore default, got %s", got)
	}

	settings.SetFontFile("/fonts/Inter.ttf")
	if got := settings.GetFontFile(); got != "/fonts/Inter.ttf" {
		t.Errorf("GetFontFile() = %s", got)
	}
}

func TestDefaultSpeed(t *testing.T) {
	settings := NewSettings(test.NewApp())

	if got := settings.GetDefaultSpeed(); got != model.SpeedNormal {
		t.Errorf("Expected default speed 1x, got %v", got)
	}
	if err := settings.SetDefaultSpeed(model.SpeedOneAndHalf); err != nil {
		t.Fatalf("SetDefaultSpeed() error = %v", err)
	}
	if got := settings.GetDefaultSpeed(); got != model.SpeedOneAndHalf {
		t.Errorf("GetDefaultSpeed() = %v, expected 1.5x", got)
	}
	if err := settings.SetDefaultSpeed(3); err == nil {
		t.Error("Expected error for unsupported speed")
	}
	if got := settings.GetDefaultSpeed(); got != model.SpeedOneAndHalf {
		t.Errorf("Rejected speed should not be stored, got %v", got)
	}
}

func TestValues(t *testing.T) {
	settings := NewSettings(test.NewApp())
	settings.SetHistoryLimit(7)
	settings.SetAutoReveal(false)

	v := settings.Values()
	if v.HistoryLimit != 7 {
		t.Errorf("HistoryLimit = %d, expected 7", v.HistoryLimit)
	}
	if v.AutoReveal {
		t.Error("AutoReveal should be false")
	}
	if v.Quality != DefaultQuality {
		t.Errorf("Quality = %s, expected %s", v.Quality, DefaultQuality)
	}

	d := DefaultValues()
	if d.HistoryLimit != DefaultHistoryLimit || d.FFmpegPath != DefaultFFmpegPath || !d.AutoReveal {
		t.Errorf("DefaultValues() = %+v", d)
	}
}

func TestLanguage(t *testing.T) {
	settings := NewSettings(test.NewApp())

	if lang := settings.GetLanguage(); lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	settings.SetLanguage("ru")
	if lang := settings.GetLanguage(); lang != "ru" {
		t.Errorf("Expected language ru, got %s", lang)
	}

	settings.SetLanguage("xx")
	if lang := settings.GetLanguage(); lang != "ru" {
		t.Errorf("Unknown language should be ignored, got %s", lang)
	}

	for _, code := range LanguageCodes {
		if _, ok := settings.GetLanguageOptions()[code]; !ok {
			t.Errorf("Language %s has no display name", code)
		}
	}
}
