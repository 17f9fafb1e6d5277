package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"CanvasBoard/internal/config"
	"CanvasBoard/internal/logger"
	"CanvasBoard/internal/state"
)

// RunApp opens the board window for store and blocks until it is closed.
// shareLink, if set, is shown so a remote client can connect.
func RunApp(cfg *config.Config, store *state.Store, shareLink string) {
	myApp := app.NewWithID("io.canvasboard")
	myWindow := myApp.NewWindow("CanvasBoard")
	myWindow.Resize(fyne.NewSize(float32(cfg.Board.WindowWidth), float32(cfg.Board.WindowHeight)))

	// Create the interactive board widget
	board := NewBoardWidget(store)
	toolbar := NewToolbar(store, cfg.Board.ConfirmDuration())
	text := NewTextControls(store, myWindow)

	top := container.NewVBox(toolbar.Content(), text.Content())
	if shareLink != "" {
		link := widget.NewEntry()
		link.SetText(shareLink)
		link.Disable()
		top.Add(container.NewBorder(nil, nil, widget.NewLabel("Remote:"), nil, link))
		toolbar.SetStatus("Hosting")
	}

	myWindow.SetOnClosed(func() {
		logger.Debugf("Board window closed")
		board.Detach()
		toolbar.Close()
		text.Close()
	})

	// Set up the main layout
	myWindow.SetContent(container.NewBorder(top, nil, nil, nil, board))
	logger.Infof("Opening board window")
	myWindow.ShowAndRun()
}
