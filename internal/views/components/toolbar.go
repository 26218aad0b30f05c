package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const PromptText = "Press 'Start' to select a random winner"

// Toolbar holds the single Start action and the prompt beneath it.
type Toolbar struct {
	container   *fyne.Container
	startButton *widget.Button
	prompt      *widget.Label

	startHandler func()
}

// NewToolbar creates a new toolbar component
func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	toolbar.setupEventHandlers()
	return toolbar
}

func (t *Toolbar) createComponents() {
	t.startButton = widget.NewButton("Start", nil)
	t.startButton.Importance = widget.SuccessImportance

	t.prompt = widget.NewLabel(PromptText)
	t.prompt.Alignment = fyne.TextAlignCenter
}

func (t *Toolbar) buildLayout() {
	t.container = container.NewVBox(
		container.NewCenter(container.NewGridWrap(fyne.NewSize(220, 48), t.startButton)),
		t.prompt,
	)
}

func (t *Toolbar) setupEventHandlers() {
	t.startButton.OnTapped = func() {
		if t.startHandler != nil {
			t.startHandler()
		}
	}
}

// SetStartHandler sets the handler for the Start button
func (t *Toolbar) SetStartHandler(handler func()) {
	t.startHandler = handler
}

// SetRunning disables Start while a selection is in progress.
func (t *Toolbar) SetRunning(running bool) {
	if running {
		t.startButton.Disable()
		return
	}
	t.startButton.Enable()
}

func (t *Toolbar) StartButton() *widget.Button {
	return t.startButton
}

// GetContainer returns the toolbar container
func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
