package config

import (
	"fyne.io/fyne/v2"

	"github.com/memeforge/memeforge/internal/model"
	"github.com/memeforge/memeforge/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyExportDir          = "export_directory"
	KeyDefaultAspect      = "default_aspect"
	KeyDefaultFont        = "default_font"
	KeyVideoFPS           = "video_export_fps"
	KeyLanguage           = "app_language"
	KeyAutoRevealExported = "auto_reveal_on_export"
)

// Default values
const (
	DefaultVideoFPS           = 15
	DefaultLanguage           = "system"
	DefaultAutoRevealExported = true
)

// FPS bounds for video export
const (
	MinVideoFPS = 5
	MaxVideoFPS = 60
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetExportDirectory returns the configured export directory
func (s *Settings) GetExportDirectory() string {
	dir := s.app.Preferences().String(KeyExportDir)
	if dir == "" {
		defaultDir, err := platform.GetHomePicturesDir()
		if err != nil {
			defaultDir = "/tmp/memeforge"
		}
		s.SetExportDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetExportDirectory sets the export directory
func (s *Settings) SetExportDirectory(dir string) {
	s.app.Preferences().SetString(KeyExportDir, dir)
}

// GetDefaultAspect returns the aspect preset selected on startup
func (s *Settings) GetDefaultAspect() model.AspectKey {
	key := s.app.Preferences().String(KeyDefaultAspect)
	if key == "" {
		s.SetDefaultAspect(model.AspectSquare)
		return model.AspectSquare
	}
	return model.AspectKey(key)
}

// SetDefaultAspect sets the startup aspect preset
func (s *Settings) SetDefaultAspect(key model.AspectKey) {
	s.app.Preferences().SetString(KeyDefaultAspect, string(key))
}

// GetDefaultFont returns the font family selected on startup
func (s *Settings) GetDefaultFont() model.FontChoice {
	font := s.app.Preferences().String(KeyDefaultFont)
	if font == "" {
		s.SetDefaultFont(model.FontBold)
		return model.FontBold
	}
	return model.FontChoice(font)
}

// SetDefaultFont sets the startup font family
func (s *Settings) SetDefaultFont(font model.FontChoice) {
	s.app.Preferences().SetString(KeyDefaultFont, string(font))
}

// GetVideoFPS returns the frame rate used for video export
func (s *Settings) GetVideoFPS() int {
	value := s.app.Preferences().Int(KeyVideoFPS)
	if value <= 0 {
		s.SetVideoFPS(DefaultVideoFPS)
		return DefaultVideoFPS
	}
	return value
}

// SetVideoFPS sets the video export frame rate, clamped to sane bounds
func (s *Settings) SetVideoFPS(fps int) {
	if fps < MinVideoFPS {
		fps = MinVideoFPS
	}
	if fps > MaxVideoFPS {
		fps = MaxVideoFPS
	}
	s.app.Preferences().SetInt(KeyVideoFPS, fps)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnExport returns whether to reveal finished exports
func (s *Settings) GetAutoRevealOnExport() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealExported, DefaultAutoRevealExported)
}

// SetAutoRevealOnExport sets whether to reveal finished exports
func (s *Settings) SetAutoRevealOnExport(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealExported, autoReveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
	}
}
