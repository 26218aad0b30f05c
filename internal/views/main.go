package views

import (
	"image"

	"course-giveaway/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	WindowTitle = "Random Winner Selection"

	minWidth  = 600
	minHeight = 400
	qrSize    = 220
)

// MainView is the giveaway window. Its exported update methods are safe to
// call from any goroutine; each one posts its work to the UI thread.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	toolbar       *components.Toolbar
	nameDisplay   *components.NameDisplay
	chartDisplay  *components.ChartDisplay
	statusBar     *components.StatusBar
}

// NewMainView builds the layout and sets it as the window content.
func NewMainView(window fyne.Window) *MainView {
	view := &MainView{
		window: window,
	}

	view.initializeComponents()
	view.buildLayout()

	return view
}

func (mv *MainView) initializeComponents() {
	mv.toolbar = components.NewToolbar()
	mv.nameDisplay = components.NewNameDisplay()
	mv.chartDisplay = components.NewChartDisplay()
	mv.statusBar = components.NewStatusBar()
}

func (mv *MainView) buildLayout() {
	top := container.NewVBox(
		mv.nameDisplay.GetContainer(),
		mv.toolbar.GetContainer(),
	)

	mv.mainContainer = container.NewBorder(
		container.NewPadded(top),
		mv.statusBar.GetContainer(),
		nil,
		nil,
		mv.chartDisplay.GetContainer(),
	)

	mv.window.SetTitle(WindowTitle)
	mv.window.SetContent(mv.mainContainer)
	mv.window.Resize(fyne.NewSize(minWidth, minHeight))
}

// SetStartHandler wires the Start button. The handler runs on the UI thread.
func (mv *MainView) SetStartHandler(handler func()) {
	mv.toolbar.SetStartHandler(handler)
}

func (mv *MainView) SetRunning(running bool) {
	fyne.Do(func() {
		mv.toolbar.SetRunning(running)
		if running {
			mv.chartDisplay.Clear()
		}
	})
}

// ShowName displays one frame of the shuffle.
func (mv *MainView) ShowName(name string) {
	fyne.Do(func() {
		mv.nameDisplay.SetName(name)
	})
}

func (mv *MainView) ShowWinner(name string) {
	fyne.Do(func() {
		mv.nameDisplay.SetWinner(name)
	})
}

func (mv *MainView) ShowChart(img image.Image) {
	fyne.Do(func() {
		mv.chartDisplay.SetChart(img)
	})
}

// UpdateStatus updates the status bar message
func (mv *MainView) UpdateStatus(status string) {
	fyne.Do(func() {
		mv.statusBar.SetStatus(status)
	})
}

func (mv *MainView) SetDrawInfo(rosterSize int, drawID string) {
	fyne.Do(func() {
		mv.statusBar.SetDrawInfo(rosterSize, drawID)
	})
}

// ShowWarning displays a dismissable dialog with a warning icon.
func (mv *MainView) ShowWarning(title, message string) {
	fyne.Do(func() {
		warningDialog(title, message, mv.window).Show()
	})
}

// ShowInfo displays an information dialog
func (mv *MainView) ShowInfo(title, message string) {
	fyne.Do(func() {
		dialog.ShowInformation(title, message, mv.window)
	})
}

// ShowError displays an error dialog
func (mv *MainView) ShowError(title string, err error) {
	fyne.Do(func() {
		errorDialog(title, err, mv.window).Show()
	})
}

// ShowConfirm displays a confirmation dialog, with the QR code beneath the
// question when one is given.
func (mv *MainView) ShowConfirm(title, message string, qr image.Image, callback func(bool)) {
	fyne.Do(func() {
		confirmDialog(title, message, qr, callback, mv.window).Show()
	})
}

func warningDialog(title, message string, parent fyne.Window) dialog.Dialog {
	label := widget.NewLabel(message)
	label.Wrapping = fyne.TextWrapWord
	content := container.NewBorder(nil, nil, widget.NewIcon(theme.WarningIcon()), nil, label)
	return dialog.NewCustom(title, "OK", content, parent)
}

func errorDialog(title string, err error, parent fyne.Window) dialog.Dialog {
	label := widget.NewLabel(err.Error())
	label.Wrapping = fyne.TextWrapWord
	content := container.NewBorder(nil, nil, widget.NewIcon(theme.ErrorIcon()), nil, label)
	return dialog.NewCustom(title, "Close", content, parent)
}

func confirmDialog(title, message string, qr image.Image, callback func(bool), parent fyne.Window) dialog.Dialog {
	label := widget.NewLabel(message)
	label.Wrapping = fyne.TextWrapWord
	content := container.NewVBox(label)
	if qr != nil {
		code := canvas.NewImageFromImage(qr)
		code.FillMode = canvas.ImageFillContain
		code.SetMinSize(fyne.NewSize(qrSize, qrSize))
		content.Add(container.NewCenter(code))
		content.Add(widget.NewLabelWithStyle("Scan to send from a phone", fyne.TextAlignCenter, fyne.TextStyle{Italic: true}))
	}
	return dialog.NewCustomConfirm(title, "Send", "Cancel", content, callback, parent)
}

// GetContainer returns the main container
func (mv *MainView) GetContainer() *fyne.Container {
	return mv.mainContainer
}

func (mv *MainView) Toolbar() *components.Toolbar {
	return mv.toolbar
}

func (mv *MainView) NameDisplay() *components.NameDisplay {
	return mv.nameDisplay
}

func (mv *MainView) ChartDisplay() *components.ChartDisplay {
	return mv.chartDisplay
}

func (mv *MainView) StatusBar() *components.StatusBar {
	return mv.statusBar
}
