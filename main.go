package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/reel/internal/config"
	"github.com/ytget/reel/internal/journal"
	"github.com/ytget/reel/internal/model"
	"github.com/ytget/reel/internal/platform"
	"github.com/ytget/reel/internal/session"
	"github.com/ytget/reel/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.reel"
	AppName = "Reel"

	WindowWidth  = 1280
	WindowHeight = 800
)

func main() {
	fmt.Printf("Reel v%s starting...\n", version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewEditorTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	if logo, err := ui.LoadLogoResource(); err == nil {
		myWindow.SetIcon(logo)
	}

	settings := config.NewSettings(myApp)
	values := settings.Values()
	for _, dir := range []string{values.ExportDir, values.ImportDir} {
		if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
			fmt.Printf("failed to ensure directory %s: %v\n", dir, err)
		}
	}

	sess, err := session.New(context.Background(), session.Options{
		Values:      values,
		Canvas:      model.DefaultCanvas,
		JournalPath: filepath.Join(values.ExportDir, journal.DefaultFileName),
	})
	if err != nil {
		log.Fatalf("failed to start session: %v", err)
	}

	root := ui.NewRootUI(myWindow, sess, settings)
	myWindow.ShowAndRun()

	root.Close()
	if err := sess.Close(); err != nil {
		log.Printf("failed to close session: %v", err)
	}
}
