package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
)

// NameDisplay is the large text the shuffle cycles through.
type NameDisplay struct {
	container *fyne.Container
	text      *canvas.Text
}

func NewNameDisplay() *NameDisplay {
	text := canvas.NewText("", theme.Color(theme.ColorNameForeground))
	text.TextSize = 28
	text.TextStyle = fyne.TextStyle{Bold: true}
	text.Alignment = fyne.TextAlignCenter

	bg := canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	bg.SetMinSize(fyne.NewSize(500, 100))
	bg.CornerRadius = 8

	return &NameDisplay{
		text:      text,
		container: container.NewStack(bg, container.NewCenter(text)),
	}
}

// SetName shows a shuffle frame.
func (nd *NameDisplay) SetName(name string) {
	nd.text.Text = name
	nd.text.Color = theme.Color(theme.ColorNameForeground)
	nd.text.Refresh()
}

// SetWinner shows the final name in the success colour.
func (nd *NameDisplay) SetWinner(name string) {
	nd.text.Text = name
	nd.text.Color = theme.Color(theme.ColorNameSuccess)
	nd.text.Refresh()
}

func (nd *NameDisplay) Text() string {
	return nd.text.Text
}

func (nd *NameDisplay) GetContainer() *fyne.Container {
	return nd.container
}
