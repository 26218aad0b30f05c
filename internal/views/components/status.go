package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar displays application status and information
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	rosterInfo  *widget.Label
	drawInfo    *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("Ready")
	sb.rosterInfo = widget.NewLabel("Attendees: --")
	sb.drawInfo = widget.NewLabel("Draw: --")
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewHBox(
		sb.statusLabel,
		widget.NewSeparator(),
		sb.rosterInfo,
		widget.NewSeparator(),
		sb.drawInfo,
	)
}

// SetStatus updates the main status message
func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// GetStatus returns the current status message
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetDrawInfo shows the roster size and, once drawn, the short draw ID.
func (sb *StatusBar) SetDrawInfo(rosterSize int, drawID string) {
	sb.rosterInfo.SetText(fmt.Sprintf("Attendees: %d", rosterSize))
	if drawID == "" {
		sb.drawInfo.SetText("Draw: --")
		return
	}
	sb.drawInfo.SetText("Draw: " + drawID)
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
