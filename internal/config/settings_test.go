package config

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/memeforge/memeforge/internal/model"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestExportDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetExportDirectory()
	if dir == "" {
		t.Error("Export directory should not be empty")
	}

	// Test setting custom value
	customDir := "/custom/exports"
	settings.SetExportDirectory(customDir)

	retrievedDir := settings.GetExportDirectory()
	if retrievedDir != customDir {
		t.Errorf("Expected export directory %s, got %s", customDir, retrievedDir)
	}
}

func TestDefaultAspect(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetDefaultAspect(); got != model.AspectSquare {
		t.Errorf("Expected default aspect %s, got %s", model.AspectSquare, got)
	}

	settings.SetDefaultAspect(model.AspectWide)
	if got := settings.GetDefaultAspect(); got != model.AspectWide {
		t.Errorf("Expected aspect %s, got %s", model.AspectWide, got)
	}
}

func TestDefaultFont(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetDefaultFont(); got != model.FontBold {
		t.Errorf("Expected default font %s, got %s", model.FontBold, got)
	}

	settings.SetDefaultFont(model.FontMono)
	if got := settings.GetDefaultFont(); got != model.FontMono {
		t.Errorf("Expected font %s, got %s", model.FontMono, got)
	}
}

func TestVideoFPS(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	if got := settings.GetVideoFPS(); got != DefaultVideoFPS {
		t.Errorf("Expected default fps %d, got %d", DefaultVideoFPS, got)
	}

	// Test setting custom value
	settings.SetVideoFPS(30)
	if got := settings.GetVideoFPS(); got != 30 {
		t.Errorf("Expected fps 30, got %d", got)
	}

	// Test boundary values
	settings.SetVideoFPS(1)
	if settings.GetVideoFPS() != MinVideoFPS {
		t.Errorf("FPS should be clamped to minimum %d", MinVideoFPS)
	}

	settings.SetVideoFPS(500)
	if settings.GetVideoFPS() != MaxVideoFPS {
		t.Errorf("FPS should be clamped to maximum %d", MaxVideoFPS)
	}
}

func TestAutoRevealOnExport(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetAutoRevealOnExport(); got != DefaultAutoRevealExported {
		t.Errorf("Expected default auto-reveal %v, got %v", DefaultAutoRevealExported, got)
	}

	settings.SetAutoRevealOnExport(false)
	if settings.GetAutoRevealOnExport() {
		t.Error("Expected auto-reveal disabled")
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetLanguage(); got != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, got)
	}

	settings.SetLanguage("ru")
	if got := settings.GetLanguage(); got != "ru" {
		t.Errorf("Expected language ru, got %s", got)
	}

	options := settings.GetLanguageOptions()
	if _, ok := options["en"]; !ok {
		t.Error("Language options should include en")
	}
}
