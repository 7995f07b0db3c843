package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/memeforge/memeforge/internal/compose"
	"github.com/memeforge/memeforge/internal/config"
	"github.com/memeforge/memeforge/internal/export"
	"github.com/memeforge/memeforge/internal/ingest"
	"github.com/memeforge/memeforge/internal/platform"
	"github.com/memeforge/memeforge/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.memeforge.memeforge"
	AppName = "MemeForge"

	WindowWidth  = 960
	WindowHeight = 640
)

func main() {
	// Log version information
	fmt.Printf("%s v%s starting...\n", AppName, version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	exportDir := settings.GetExportDirectory()
	if err := platform.CreateDirectoryIfNotExists(exportDir); err != nil {
		fmt.Printf("failed to ensure export dir: %v\n", err)
	}

	composer, err := compose.NewComposer()
	if err != nil {
		log.Fatalf("Failed to initialize renderer: %v", err)
	}

	ingestSvc, err := ingest.NewService()
	if err != nil {
		log.Fatalf("Failed to initialize media service: %v", err)
	}

	exportSvc := export.NewService(composer, exportDir, settings.GetVideoFPS())

	// Create and setup UI
	if _, err := ui.NewRootUI(myWindow, myApp, ingestSvc, exportSvc); err != nil {
		log.Fatalf("Failed to initialize UI: %v", err)
	}

	// Show and run
	myWindow.ShowAndRun()
}
