package ui

import (
	"fmt"
	"image"
	"log"
	"os"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/memeforge/memeforge/internal/compose"
	"github.com/memeforge/memeforge/internal/config"
	"github.com/memeforge/memeforge/internal/export"
	"github.com/memeforge/memeforge/internal/ingest"
	"github.com/memeforge/memeforge/internal/layout"
	"github.com/memeforge/memeforge/internal/model"
	"github.com/memeforge/memeforge/internal/platform"
)

// RootUI represents the main UI structure
type RootUI struct {
	window fyne.Window

	comp     *model.Composition
	composer *compose.Composer

	ingestSvc    ingest.Ingester
	exportSvc    export.Exporter
	settings     *config.Settings
	localization *Localization

	// Caption inputs
	topEntry       *widget.Entry
	bottomEntry    *widget.Entry
	watermarkEntry *widget.Entry

	// Selectors
	aspectSelect    *widget.Select
	placementSelect *widget.Select
	fontSelect      *widget.Select
	fontSizeSlider  *widget.Slider
	autoSizeCheck   *widget.Check

	// Media controls
	attachBtn  *widget.Button
	clearBtn   *widget.Button
	mediaLabel *widget.Label

	// Export controls
	exportPNGBtn   *widget.Button
	exportVideoBtn *widget.Button
	stopBtn        *widget.Button
	activeExportID string

	preview     *canvas.Image
	footerLabel *widget.Label

	// Decoded still backing the preview; poster frame for videos.
	mediaImage image.Image

	// UI update debouncing
	lastUIUpdate  time.Time
	uiUpdateMutex sync.Mutex

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite

	lastCanvasSize fyne.Size

	// Closed on window close; stops background goroutines.
	done chan struct{}
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, ingestSvc ingest.Ingester, exportSvc export.Exporter) (*RootUI, error) {
	// Initialize settings
	settings := config.NewSettings(app)

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	composer, err := compose.NewComposer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}

	comp := model.NewComposition()
	comp.SetAspect(settings.GetDefaultAspect())
	comp.Font = settings.GetDefaultFont()

	ui := &RootUI{
		window:       window,
		comp:         comp,
		composer:     composer,
		ingestSvc:    ingestSvc,
		exportSvc:    exportSvc,
		settings:     settings,
		localization: localization,
		done:         make(chan struct{}),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	// Service callbacks arrive off the UI goroutine
	ui.ingestSvc.SetUpdateCallback(ui.onMediaUpdate)
	ui.exportSvc.SetUpdateCallback(ui.onExportUpdate)

	ui.setupUI()
	go ui.watchResize()
	return ui, nil
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	// Caption entries
	ui.topEntry = widget.NewEntry()
	ui.topEntry.SetPlaceHolder(ui.localization.GetText(KeyTopCaption))
	ui.topEntry.OnChanged = func(text string) {
		ui.comp.SetTopText(text)
		ui.syncAutoSize()
		ui.refreshPreview()
	}

	ui.bottomEntry = widget.NewEntry()
	ui.bottomEntry.SetPlaceHolder(ui.localization.GetText(KeyBottomCaption))
	ui.bottomEntry.OnChanged = func(text string) {
		ui.comp.SetBottomText(text)
		ui.syncAutoSize()
		ui.refreshPreview()
	}

	ui.watermarkEntry = widget.NewEntry()
	ui.watermarkEntry.SetPlaceHolder(ui.localization.GetText(KeyWatermark))
	ui.watermarkEntry.OnChanged = func(text string) {
		ui.comp.SetWatermark(text)
		ui.refreshPreview()
	}

	// Selectors
	ui.aspectSelect = widget.NewSelect(model.AspectKeys(), func(selected string) {
		ui.comp.SetAspect(model.AspectKey(selected))
		ui.syncAutoSize()
		ui.refreshPreview()
	})
	ui.aspectSelect.SetSelected(string(ui.comp.Aspect))

	ui.placementSelect = widget.NewSelect(model.Placements(), func(selected string) {
		ui.comp.Placement = model.PlacementMode(selected)
		ui.refreshPreview()
	})
	ui.placementSelect.SetSelected(string(ui.comp.Placement))

	ui.fontSelect = widget.NewSelect(model.Fonts(), func(selected string) {
		ui.comp.Font = model.FontChoice(selected)
		ui.refreshPreview()
	})
	ui.fontSelect.SetSelected(string(ui.comp.Font))

	// Font size: automatic unless the user moves the slider
	ui.fontSizeSlider = widget.NewSlider(model.MinManualFontSize, model.MaxManualFontSize)
	ui.fontSizeSlider.OnChanged = func(value float64) {
		ui.comp.SetManualFontSize(value)
		if ui.autoSizeCheck.Checked {
			ui.autoSizeCheck.SetChecked(false)
		}
		ui.refreshPreview()
	}

	ui.autoSizeCheck = widget.NewCheck(ui.localization.GetText(KeyAutoSize), func(checked bool) {
		if checked {
			ui.comp.ClearFontSizeOverride()
			ui.refreshPreview()
		}
	})
	ui.autoSizeCheck.SetChecked(true)

	// Media controls
	ui.attachBtn = widget.NewButton(ui.localization.GetText(KeyAttach), ui.onAttachClick)
	ui.clearBtn = widget.NewButton(ui.localization.GetText(KeyClear), ui.onClearClick)
	ui.clearBtn.Disable()
	ui.mediaLabel = widget.NewLabel(DashPlaceholder)
	ui.mediaLabel.Truncation = fyne.TextTruncateEllipsis

	// Export controls
	ui.exportPNGBtn = widget.NewButton(ui.localization.GetText(KeyExportPNG), ui.onExportPNG)
	ui.exportPNGBtn.Importance = widget.HighImportance
	ui.exportVideoBtn = widget.NewButton(ui.localization.GetText(KeyExportVideo), ui.onExportVideo)
	ui.stopBtn = widget.NewButton(ui.localization.GetText(KeyStop), ui.onStopExport)
	ui.stopBtn.Hide()

	// Preview canvas
	ui.preview = canvas.NewImageFromImage(nil)
	ui.preview.FillMode = canvas.ImageFillContain
	ui.preview.SetMinSize(fyne.NewSize(PreviewMinWidth, PreviewMinHeight))

	// Settings button
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	// Notification panel (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	// Footer discloses export location and video capability
	ui.footerLabel = widget.NewLabel(ui.footerText())
	ui.footerLabel.Truncation = fyne.TextTruncateEllipsis

	sidebar := container.NewVBox(
		ui.topEntry,
		ui.bottomEntry,
		ui.watermarkEntry,
		widget.NewSeparator(),

		widget.NewLabel(ui.localization.GetText(KeyAspect)+":"),
		ui.aspectSelect,
		widget.NewLabel(ui.localization.GetText(KeyPlacement)+":"),
		ui.placementSelect,
		widget.NewLabel(ui.localization.GetText(KeyFont)+":"),
		ui.fontSelect,
		container.NewBorder(nil, nil, widget.NewLabel(ui.localization.GetText(KeyFontSize)+":"), ui.autoSizeCheck),
		ui.fontSizeSlider,
		widget.NewSeparator(),

		container.NewGridWithColumns(2, ui.attachBtn, ui.clearBtn),
		ui.mediaLabel,
		widget.NewLabel(ui.localization.GetText(KeyDropHint)),
		widget.NewSeparator(),

		ui.exportPNGBtn,
		ui.exportVideoBtn,
		ui.stopBtn,
	)

	topBar := container.NewBorder(nil, nil, nil, settingsBtn, ui.notificationContainer)

	sidebarScroll := container.NewVScroll(sidebar)
	sidebarScroll.SetMinSize(fyne.NewSize(SidebarWidth, 0))

	content := container.NewBorder(
		topBar,                          // top
		ui.footerLabel,                  // bottom
		sidebarScroll,                   // left
		nil,                             // right
		container.NewPadded(ui.preview), // center
	)

	ui.window.SetContent(content)
	ui.window.SetOnDropped(ui.onDropped)
	ui.window.SetCloseIntercept(func() {
		close(ui.done)
		ui.ingestSvc.Close()
		ui.window.Close()
	})

	ui.lastCanvasSize = ui.window.Canvas().Size()
	ui.refreshPreview()

	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)
	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))

	ui.topEntry.SetPlaceHolder(ui.localization.GetText(KeyTopCaption))
	ui.bottomEntry.SetPlaceHolder(ui.localization.GetText(KeyBottomCaption))
	ui.watermarkEntry.SetPlaceHolder(ui.localization.GetText(KeyWatermark))
	ui.attachBtn.SetText(ui.localization.GetText(KeyAttach))
	ui.clearBtn.SetText(ui.localization.GetText(KeyClear))
	ui.exportPNGBtn.SetText(ui.localization.GetText(KeyExportPNG))
	ui.exportVideoBtn.SetText(ui.localization.GetText(KeyExportVideo))
	ui.stopBtn.SetText(ui.localization.GetText(KeyStop))
	ui.autoSizeCheck.Text = ui.localization.GetText(KeyAutoSize)
	ui.autoSizeCheck.Refresh()
	ui.footerLabel.SetText(ui.footerText())
}

// footerText describes where exports land and whether ffmpeg is present.
func (ui *RootUI) footerText() string {
	capability := ui.localization.GetText(KeyNoFFmpeg)
	if platform.HasFFmpeg() {
		capability = ui.localization.GetText(KeyFFmpegReady)
	}
	return IconFolder + " " + ui.settings.GetExportDirectory() +
		MiddleDotSeparator + capability +
		MiddleDotSeparator + ui.localization.GetText(KeyPrivacyNote)
}

// refreshPreview recomputes metrics and re-renders the preview. Must run on
// the UI goroutine.
func (ui *RootUI) refreshPreview() {
	if ui.preview == nil {
		// Selector callbacks fire during setup, before the canvas exists.
		return
	}

	viewportWidth := float64(ui.preview.Size().Width)
	if viewportWidth <= 0 {
		viewportWidth = float64(PreviewMinWidth)
	}

	metrics := layout.Compute(ui.comp, viewportWidth)
	ui.preview.Image = ui.composer.Render(ui.comp, ui.mediaImage, metrics)
	ui.preview.Refresh()
}

// syncAutoSize reflects the composition's override state in the checkbox
// after edits that revert to automatic sizing.
func (ui *RootUI) syncAutoSize() {
	if ui.comp.FontSizeOverride == 0 && !ui.autoSizeCheck.Checked {
		ui.autoSizeCheck.SetChecked(true)
	}
}

// watchResize polls the canvas size; a resize reverts manual font sizing so
// the preview re-derives its metrics.
func (ui *RootUI) watchResize() {
	ticker := time.NewTicker(ResizePollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ui.done:
			return
		case <-ticker.C:
		}

		size := ui.window.Canvas().Size()
		if size == ui.lastCanvasSize {
			continue
		}
		ui.lastCanvasSize = size

		fyne.Do(func() {
			ui.comp.ClearFontSizeOverride()
			ui.syncAutoSize()
			ui.refreshPreview()
		})
	}
}

// onDropped handles files dropped onto the window
func (ui *RootUI) onDropped(_ fyne.Position, uris []fyne.URI) {
	if len(uris) == 0 || ui.activeExportID != "" {
		return
	}
	// Single attachment slot: only the first dropped file counts.
	ui.ingestSvc.Attach(uris[0].Path())
}

// onAttachClick opens the file picker with the media accept filter
func (ui *RootUI) onAttachClick() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		ui.ingestSvc.Attach(path)
	}, ui.window)

	extensions := append([]string{}, platform.ImageExtensions...)
	extensions = append(extensions, platform.VideoExtensions...)
	fileDialog.SetFilter(storage.NewExtensionFileFilter(extensions))
	fileDialog.Show()
}

// onClearClick removes the attachment
func (ui *RootUI) onClearClick() {
	ui.ingestSvc.Clear()
}

// onMediaUpdate handles attachment slot changes from the ingest service
func (ui *RootUI) onMediaUpdate(attachment *model.MediaAttachment, err error) {
	if err != nil {
		log.Printf("Attachment update error: %v", err)
		ui.showNotification(ui.localization.GetText(KeyAttachFailed)+": "+err.Error(), false)
		return
	}

	if attachment == nil {
		fyne.Do(func() {
			ui.mediaImage = nil
			ui.comp.SetMedia(nil)
			ui.mediaLabel.SetText(DashPlaceholder)
			ui.clearBtn.Disable()
			ui.syncAutoSize()
			ui.refreshPreview()
		})
		return
	}

	still, loadErr := ui.loadStill(attachment)
	if loadErr != nil {
		log.Printf("Failed to load preview still for %s: %v", attachment.SourceName, loadErr)
		ui.showNotification(ui.localization.GetText(KeyAttachFailed)+": "+loadErr.Error(), false)
		return
	}

	snapped := layout.SnapAspect(attachment.AspectRatio())

	fyne.Do(func() {
		ui.mediaImage = still
		ui.comp.SetMedia(attachment)
		ui.comp.SetAspect(snapped)
		ui.aspectSelect.SetSelected(string(snapped))
		ui.mediaLabel.SetText(mediaSummary(attachment))
		ui.clearBtn.Enable()
		ui.syncAutoSize()
		ui.refreshPreview()
	})
	ui.hideNotification()
}

// loadStill decodes the attachment into the preview still. Videos get a
// poster frame extracted with ffmpeg.
func (ui *RootUI) loadStill(attachment *model.MediaAttachment) (image.Image, error) {
	if !attachment.IsVideo() {
		return compose.LoadImage(attachment.TempPath)
	}

	posterPath := attachment.TempPath + ".poster.png"
	if err := platform.ExtractFrame(attachment.TempPath, posterPath, 0); err != nil {
		return nil, err
	}
	defer os.Remove(posterPath)
	return compose.LoadImage(posterPath)
}

// mediaSummary formats the attachment line under the attach buttons.
func mediaSummary(attachment *model.MediaAttachment) string {
	icon := IconImage
	if attachment.IsVideo() {
		icon = IconVideo
	}
	summary := fmt.Sprintf("%s %s%s%dx%d", icon, attachment.SourceName,
		MiddleDotSeparator, attachment.Width, attachment.Height)
	if attachment.IsVideo() {
		summary += fmt.Sprintf("%s%.1fs", MiddleDotSeparator, attachment.Duration)
	}
	return summary
}

// buildRequest snapshots the composition at full preset resolution.
func (ui *RootUI) buildRequest() export.Request {
	snapshot := *ui.comp
	preset := model.PresetFor(snapshot.Aspect)

	// A virtual viewport wide enough that the preset, not the window,
	// bounds the canvas.
	metrics := layout.Compute(&snapshot, float64(preset.Width)/layout.ViewportFill)

	return export.Request{
		Composition: &snapshot,
		Media:       ui.mediaImage,
		Metrics:     metrics,
	}
}

// onExportPNG handles the PNG export button
func (ui *RootUI) onExportPNG() {
	task, err := ui.exportSvc.ExportPNG(ui.buildRequest())
	if err != nil {
		ui.showNotification(ui.localization.GetText(KeyExportFailed)+": "+err.Error(), false)
		return
	}
	ui.startExportUI(task)
}

// onExportVideo handles the video export button
func (ui *RootUI) onExportVideo() {
	task, err := ui.exportSvc.ExportVideo(ui.buildRequest())
	if err != nil {
		ui.showNotification(ui.localization.GetText(KeyExportFailed)+": "+err.Error(), false)
		return
	}
	ui.startExportUI(task)
}

// startExportUI flips the controls into exporting state. Attachment changes
// are locked out while a task runs: replacing or clearing the slot releases
// the temp file the pipeline is reading.
func (ui *RootUI) startExportUI(task *model.ExportTask) {
	ui.activeExportID = task.ID
	ui.showNotification(ui.localization.GetText(KeyExportStarted), true)
	ui.stopBtn.Show()
	ui.attachBtn.Disable()
	ui.clearBtn.Disable()
	log.Printf("Export started: ID=%s, Format=%s", task.ID, task.Format)
}

// onStopExport requests cancellation of the active export
func (ui *RootUI) onStopExport() {
	if ui.activeExportID == "" {
		return
	}
	if err := ui.exportSvc.Stop(ui.activeExportID); err != nil {
		log.Printf("Error stopping export %s: %v", ui.activeExportID, err)
	}
}

// onExportUpdate handles progress and completion from the export service
func (ui *RootUI) onExportUpdate(task *model.ExportTask) {
	if task.Status == model.TaskStatusExporting {
		// Debounce progress updates to keep the UI responsive
		ui.uiUpdateMutex.Lock()
		if time.Since(ui.lastUIUpdate) < UIUpdateDebounce {
			ui.uiUpdateMutex.Unlock()
			return
		}
		ui.lastUIUpdate = time.Now()
		ui.uiUpdateMutex.Unlock()

		ui.showNotification(fmt.Sprintf("%s %s"+ProgressLabelFormat,
			task.GetDisplayName(), MiddleDotSeparator, task.Percent), true)
		return
	}

	switch task.Status {
	case model.TaskStatusCompleted:
		message := ui.localization.GetText(KeyExportDone) + ": " + task.GetDisplayName()
		ui.finishExportUI(message)
		fyne.Do(func() {
			widget.ShowPopUp(widget.NewLabel(message), ui.window.Canvas())
		})
		if ui.settings.GetAutoRevealOnExport() {
			if err := platform.OpenFileInManager(task.OutputPath); err != nil {
				log.Printf("Error revealing file %s: %v", task.OutputPath, err)
			}
		}
	case model.TaskStatusStopped:
		ui.finishExportUI(ui.localization.GetText(KeyExportStopped))
	case model.TaskStatusError:
		ui.finishExportUI(IconError + " " + ui.localization.GetText(KeyExportFailed) + ": " + task.LastError)
	}
}

// finishExportUI flips the controls back out of exporting state
func (ui *RootUI) finishExportUI(message string) {
	ui.activeExportID = ""
	ui.showNotification(message, false)
	fyne.Do(func() {
		ui.stopBtn.Hide()
		ui.attachBtn.Enable()
		if ui.comp.Media != nil {
			ui.clearBtn.Enable()
		}
	})
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.exportSvc.SetExportDirectory(ui.settings.GetExportDirectory())
		ui.exportSvc.SetVideoFPS(ui.settings.GetVideoFPS())
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeySettingsSaved)), ui.window.Canvas())
	})
}

// showNotification displays a message in the notification panel.
// When spinning is true, a spinner is shown to indicate background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
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
	if ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationSpinner.Hide()
		ui.notificationContainer.Hide()
	})
}
