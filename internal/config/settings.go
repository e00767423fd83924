package config

import (
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"github.com/ytget/reel/internal/history"
	"github.com/ytget/reel/internal/model"
	"github.com/ytget/reel/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyExportDir    = "export_directory"
	KeyImportDir    = "import_directory"
	KeyHistoryLimit = "history_limit"
	KeyQuality      = "export_quality"
	KeyFontFile     = "font_file"
	KeyFFmpegPath   = "ffmpeg_path"
	KeyFFprobePath  = "ffprobe_path"
	KeyDefaultSpeed = "default_playback_speed"
	KeyAutoReveal   = "auto_reveal_on_export"
	KeyLanguage     = "app_language"
)

// Default values
const (
	DefaultHistoryLimit = history.DefaultLimit
	MinHistoryLimit     = 1
	MaxHistoryLimit     = 100
	DefaultQuality      = model.Quality720p
	DefaultFFmpegPath   = "ffmpeg"
	DefaultFFprobePath  = "ffprobe"
	DefaultSpeed        = model.SpeedNormal
	DefaultAutoReveal   = true
	DefaultLanguage     = "system"
	FallbackExportDir   = "reel-exports"
	FallbackImportDir   = "reel-imports"
)

// Values is a snapshot of every setting
type Values struct {
	ExportDir    string
	ImportDir    string
	HistoryLimit int
	Quality      model.Quality
	FontFile     string
	FFmpegPath   string
	FFprobePath  string
	DefaultSpeed model.PlaybackSpeed
	AutoReveal   bool
}

// DefaultValues returns the settings used when nothing was configured
func DefaultValues() Values {
	return Values{
		ExportDir:    defaultExportDir(),
		ImportDir:    defaultImportDir(),
		HistoryLimit: DefaultHistoryLimit,
		Quality:      DefaultQuality,
		FFmpegPath:   DefaultFFmpegPath,
		FFprobePath:  DefaultFFprobePath,
		DefaultSpeed: DefaultSpeed,
		AutoReveal:   DefaultAutoReveal,
	}
}

// Settings manages application configuration
type Settings struct {
	prefs fyne.Preferences
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{prefs: app.Preferences()}
}

// NewSettingsFromPreferences creates a settings manager over a preferences store
func NewSettingsFromPreferences(prefs fyne.Preferences) *Settings {
	return &Settings{prefs: prefs}
}

// Values returns a snapshot of all settings
func (s *Settings) Values() Values {
	return Values{
		ExportDir:    s.GetExportDirectory(),
		ImportDir:    s.GetImportDirectory(),
		HistoryLimit: s.GetHistoryLimit(),
		Quality:      s.GetQuality(),
		FontFile:     s.GetFontFile(),
		FFmpegPath:   s.GetFFmpegPath(),
		FFprobePath:  s.GetFFprobePath(),
		DefaultSpeed: s.GetDefaultSpeed(),
		AutoReveal:   s.GetAutoReveal(),
	}
}

// GetExportDirectory returns the configured export directory
func (s *Settings) GetExportDirectory() string {
	dir := s.prefs.String(KeyExportDir)
	if dir == "" {
		dir = defaultExportDir()
		s.SetExportDirectory(dir)
	}
	return dir
}

// SetExportDirectory sets the export directory
func (s *Settings) SetExportDirectory(dir string) {
	s.prefs.SetString(KeyExportDir, strings.TrimSpace(dir))
}

// GetImportDirectory returns where remote clips are downloaded
func (s *Settings) GetImportDirectory() string {
	dir := s.prefs.String(KeyImportDir)
	if dir == "" {
		dir = defaultImportDir()
		s.SetImportDirectory(dir)
	}
	return dir
}

// SetImportDirectory sets the import directory
func (s *Settings) SetImportDirectory(dir string) {
	s.prefs.SetString(KeyImportDir, strings.TrimSpace(dir))
}

// GetHistoryLimit returns the undo depth
func (s *Settings) GetHistoryLimit() int {
	value := s.prefs.Int(KeyHistoryLimit)
	if value <= 0 {
		s.SetHistoryLimit(DefaultHistoryLimit)
		return DefaultHistoryLimit
	}
	return value
}

// SetHistoryLimit sets the undo depth, clamped to [1, 100]
func (s *Settings) SetHistoryLimit(limit int) {
	if limit < MinHistoryLimit {
		limit = MinHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	s.prefs.SetInt(KeyHistoryLimit, limit)
}

// GetQuality returns the export quality preset
func (s *Settings) GetQuality() model.Quality {
	q, err := model.ParseQuality(s.prefs.String(KeyQuality))
	if err != nil {
		s.SetQuality(DefaultQuality)
		return DefaultQuality
	}
	return q
}

// SetQuality sets the export quality; unknown presets fall back to the default
func (s *Settings) SetQuality(q model.Quality) {
	if !q.Valid() {
		q = DefaultQuality
	}
	s.prefs.SetString(KeyQuality, string(q))
}

// GetQualityOptions returns available quality presets
func (s *Settings) GetQualityOptions() []model.Quality {
	return []model.Quality{model.Quality720p, model.Quality1080p}
}

// GetFontFile returns the drawtext font file, empty for the ffmpeg default
func (s *Settings) GetFontFile() string {
	return s.prefs.String(KeyFontFile)
}

// SetFontFile sets the drawtext font file
func (s *Settings) SetFontFile(path string) {
	s.prefs.SetString(KeyFontFile, strings.TrimSpace(path))
}

// GetFFmpegPath returns the ffmpeg binary
func (s *Settings) GetFFmpegPath() string {
	return s.prefs.StringWithFallback(KeyFFmpegPath, DefaultFFmpegPath)
}

// SetFFmpegPath sets the ffmpeg binary; empty restores the default
func (s *Settings) SetFFmpegPath(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultFFmpegPath
	}
	s.prefs.SetString(KeyFFmpegPath, path)
}

// GetFFprobePath returns the ffprobe binary
func (s *Settings) GetFFprobePath() string {
	return s.prefs.StringWithFallback(KeyFFprobePath, DefaultFFprobePath)
}

// SetFFprobePath sets the ffprobe binary; empty restores the default
func (s *Settings) SetFFprobePath(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultFFprobePath
	}
	s.prefs.SetString(KeyFFprobePath, path)
}

// GetDefaultSpeed returns the playback speed new sessions start with
func (s *Settings) GetDefaultSpeed() model.PlaybackSpeed {
	speed, err := model.NewPlaybackSpeed(s.prefs.FloatWithFallback(KeyDefaultSpeed, float64(DefaultSpeed)))
	if err != nil {
		return DefaultSpeed
	}
	return speed
}

// SetDefaultSpeed stores a supported playback speed
func (s *Settings) SetDefaultSpeed(speed model.PlaybackSpeed) error {
	if _, err := model.NewPlaybackSpeed(float64(speed)); err != nil {
		return err
	}
	s.prefs.SetFloat(KeyDefaultSpeed, float64(speed))
	return nil
}

// GetAutoReveal returns whether saved exports are revealed in the file manager
func (s *Settings) GetAutoReveal() bool {
	return s.prefs.BoolWithFallback(KeyAutoReveal, DefaultAutoReveal)
}

// SetAutoReveal sets whether saved exports are revealed in the file manager
func (s *Settings) SetAutoReveal(reveal bool) {
	s.prefs.SetBool(KeyAutoReveal, reveal)
}

// GetLanguage returns the configured interface language
func (s *Settings) GetLanguage() string {
	lang := s.prefs.String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the interface language. Unknown codes are ignored.
func (s *Settings) SetLanguage(lang string) {
	if _, ok := s.GetLanguageOptions()[lang]; !ok {
		return
	}
	s.prefs.SetString(KeyLanguage, lang)
}

// LanguageCodes lists the language options in display order
var LanguageCodes = []string{DefaultLanguage, "en", "ru"}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		DefaultLanguage: "System",
		"en":            "English",
		"ru":            "Русский",
	}
}

func defaultExportDir() string {
	dir, err := platform.GetHomeVideosDir()
	if err != nil {
		return filepath.Join(".", FallbackExportDir)
	}
	return dir
}

func defaultImportDir() string {
	dir, err := platform.GetHomeImportsDir()
	if err != nil {
		return filepath.Join(".", FallbackImportDir)
	}
	return dir
}
