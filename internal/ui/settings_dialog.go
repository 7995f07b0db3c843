package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/memeforge/memeforge/internal/config"
	"github.com/memeforge/memeforge/internal/model"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	window       fyne.Window
	localization *Localization
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	exportDirEntry  *widget.Entry
	fpsEntry        *widget.Entry
	aspectSelect    *widget.Select
	fontSelect      *widget.Select
	autoRevealCheck *widget.Check
	languageSelect  *widget.Select
}

// ShowSettingsDialog creates and shows the settings dialog
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	sd := &SettingsDialog{
		settings:     settings,
		window:       window,
		localization: localization,
		onSaved:      onSaved,
	}

	sd.createUI()
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Export directory selection
	sd.exportDirEntry = widget.NewEntry()
	sd.exportDirEntry.SetPlaceHolder("Export directory path")

	browseDirBtn := widget.NewButton(sd.localization.GetText(KeyBrowse), sd.onBrowseDirectory)
	exportDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.exportDirEntry)

	// Video export frame rate
	sd.fpsEntry = widget.NewEntry()
	sd.fpsEntry.SetPlaceHolder(strconv.Itoa(config.MinVideoFPS) + "-" + strconv.Itoa(config.MaxVideoFPS))

	// Startup defaults
	sd.aspectSelect = widget.NewSelect(model.AspectKeys(), nil)
	sd.fontSelect = widget.NewSelect(model.Fonts(), nil)

	// Auto reveal finished exports
	sd.autoRevealCheck = widget.NewCheck(sd.localization.GetText(KeyAutoReveal), nil)

	// Language selection
	languageOptions := []string{}
	for code := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sd.languageSelect = widget.NewSelect(languageOptions, nil)
	sd.languageSelect.PlaceHolder = "Select language"

	// Create form
	form := container.NewVBox(
		widget.NewLabel(sd.localization.GetText(KeyExportDirectory)+":"),
		exportDirRow,

		widget.NewLabel(sd.localization.GetText(KeyVideoFPS)+":"),
		sd.fpsEntry,

		widget.NewLabel(sd.localization.GetText(KeyDefaultAspect)+":"),
		sd.aspectSelect,

		widget.NewLabel(sd.localization.GetText(KeyDefaultFont)+":"),
		sd.fontSelect,

		sd.autoRevealCheck,

		widget.NewSeparator(),

		widget.NewLabel(sd.localization.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(500, 420))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.exportDirEntry.SetText(sd.settings.GetExportDirectory())
	sd.fpsEntry.SetText(strconv.Itoa(sd.settings.GetVideoFPS()))
	sd.aspectSelect.SetSelected(string(sd.settings.GetDefaultAspect()))
	sd.fontSelect.SetSelected(string(sd.settings.GetDefaultFont()))
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnExport())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.exportDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if dir := sd.exportDirEntry.Text; dir != "" {
		sd.settings.SetExportDirectory(dir)
	}

	if fpsStr := sd.fpsEntry.Text; fpsStr != "" {
		if fps, err := strconv.Atoi(fpsStr); err == nil {
			sd.settings.SetVideoFPS(fps)
		}
	}

	if sd.aspectSelect.Selected != "" {
		sd.settings.SetDefaultAspect(model.AspectKey(sd.aspectSelect.Selected))
	}

	if sd.fontSelect.Selected != "" {
		sd.settings.SetDefaultFont(model.FontChoice(sd.fontSelect.Selected))
	}

	sd.settings.SetAutoRevealOnExport(sd.autoRevealCheck.Checked)

	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
