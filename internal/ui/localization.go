package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle        = "app_title"
	KeyTopCaption      = "top_caption"
	KeyBottomCaption   = "bottom_caption"
	KeyWatermark       = "watermark"
	KeyAspect          = "aspect"
	KeyPlacement       = "placement"
	KeyFont            = "font"
	KeyFontSize        = "font_size"
	KeyAutoSize        = "auto_size"
	KeyAttach          = "attach"
	KeyClear           = "clear"
	KeyDropHint        = "drop_hint"
	KeyExportPNG       = "export_png"
	KeyExportVideo     = "export_video"
	KeyStop            = "stop"
	KeySettings        = "settings"
	KeyFile            = "file"
	KeyLanguage        = "language"
	KeyExportDirectory = "export_directory"
	KeyVideoFPS        = "video_fps"
	KeyAutoReveal      = "auto_reveal"
	KeyDefaultAspect   = "default_aspect"
	KeyDefaultFont     = "default_font"
	KeySave            = "save"
	KeyCancel          = "cancel"
	KeyBrowse          = "browse"
	KeySettingsSaved   = "settings_saved"
	KeyExportStarted   = "export_started"
	KeyExportDone      = "export_done"
	KeyExportStopped   = "export_stopped"
	KeyExportFailed    = "export_failed"
	KeyAttachFailed    = "attach_failed"
	KeyNoFFmpeg        = "no_ffmpeg"
	KeyFFmpegReady     = "ffmpeg_ready"
	KeyPrivacyNote     = "privacy_note"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:        "MemeForge",
		KeyTopCaption:      "Top caption",
		KeyBottomCaption:   "Bottom caption",
		KeyWatermark:       "Watermark (optional)",
		KeyAspect:          "Aspect",
		KeyPlacement:       "Placement",
		KeyFont:            "Font",
		KeyFontSize:        "Font size",
		KeyAutoSize:        "Auto",
		KeyAttach:          "Attach media",
		KeyClear:           "Clear",
		KeyDropHint:        "Drop an image or video anywhere",
		KeyExportPNG:       "Export PNG",
		KeyExportVideo:     "Export Video",
		KeyStop:            "Stop",
		KeySettings:        "Settings",
		KeyFile:            "File",
		KeyLanguage:        "Language",
		KeyExportDirectory: "Export Directory",
		KeyVideoFPS:        "Video Frame Rate",
		KeyAutoReveal:      "Reveal finished exports",
		KeyDefaultAspect:   "Default Aspect",
		KeyDefaultFont:     "Default Font",
		KeySave:            "Save",
		KeyCancel:          "Cancel",
		KeyBrowse:          "Browse",
		KeySettingsSaved:   "Settings saved successfully!",
		KeyExportStarted:   "Export started",
		KeyExportDone:      "Export completed",
		KeyExportStopped:   "Export stopped",
		KeyExportFailed:    "Export failed",
		KeyAttachFailed:    "Could not attach file",
		KeyNoFFmpeg:        "ffmpeg not found: video export limited to still clips",
		KeyFFmpegReady:     "ffmpeg detected",
		KeyPrivacyNote:     "Everything is rendered on this device",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:        "MemeForge",
		KeyTopCaption:      "Верхняя подпись",
		KeyBottomCaption:   "Нижняя подпись",
		KeyWatermark:       "Водяной знак (необязательно)",
		KeyAspect:          "Формат",
		KeyPlacement:       "Расположение",
		KeyFont:            "Шрифт",
		KeyFontSize:        "Размер шрифта",
		KeyAutoSize:        "Авто",
		KeyAttach:          "Прикрепить медиа",
		KeyClear:           "Очистить",
		KeyDropHint:        "Перетащите изображение или видео",
		KeyExportPNG:       "Экспорт PNG",
		KeyExportVideo:     "Экспорт видео",
		KeyStop:            "Стоп",
		KeySettings:        "Настройки",
		KeyFile:            "Файл",
		KeyLanguage:        "Язык",
		KeyExportDirectory: "Папка экспорта",
		KeyVideoFPS:        "Частота кадров видео",
		KeyAutoReveal:      "Показывать готовые файлы",
		KeyDefaultAspect:   "Формат по умолчанию",
		KeyDefaultFont:     "Шрифт по умолчанию",
		KeySave:            "Сохранить",
		KeyCancel:          "Отмена",
		KeyBrowse:          "Обзор",
		KeySettingsSaved:   "Настройки успешно сохранены!",
		KeyExportStarted:   "Экспорт начат",
		KeyExportDone:      "Экспорт завершён",
		KeyExportStopped:   "Экспорт остановлен",
		KeyExportFailed:    "Ошибка экспорта",
		KeyAttachFailed:    "Не удалось прикрепить файл",
		KeyNoFFmpeg:        "ffmpeg не найден: экспорт видео ограничен статичными клипами",
		KeyFFmpegReady:     "ffmpeg обнаружен",
		KeyPrivacyNote:     "Всё обрабатывается на этом устройстве",
	}
}
