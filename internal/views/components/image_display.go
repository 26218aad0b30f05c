package components

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

const (
	ChartAreaWidth  = 560
	ChartAreaHeight = 420
)

// ChartDisplay shows the probability chart once a winner is drawn.
type ChartDisplay struct {
	container   *fyne.Container
	chart       *canvas.Image
	placeholder image.Image
	hasChart    bool
}

// NewChartDisplay creates the chart area with a blank placeholder.
func NewChartDisplay() *ChartDisplay {
	display := &ChartDisplay{}
	display.createComponents()
	display.container = container.NewStack(display.chart)
	return display
}

func (cd *ChartDisplay) createComponents() {
	cd.placeholder = placeholderImage(ChartAreaWidth, ChartAreaHeight)

	cd.chart = canvas.NewImageFromImage(cd.placeholder)
	cd.chart.FillMode = canvas.ImageFillContain
	cd.chart.ScaleMode = canvas.ImageScaleSmooth
	cd.chart.SetMinSize(fyne.NewSize(ChartAreaWidth, ChartAreaHeight))
}

func placeholderImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	lightGray := color.RGBA{R: 245, G: 245, B: 245, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, lightGray)
		}
	}
	return img
}

// SetChart replaces the displayed chart.
func (cd *ChartDisplay) SetChart(img image.Image) {
	if img == nil {
		cd.Clear()
		return
	}
	cd.chart.Image = img
	cd.hasChart = true
	cd.chart.Refresh()
}

// Clear restores the placeholder.
func (cd *ChartDisplay) Clear() {
	cd.chart.Image = cd.placeholder
	cd.hasChart = false
	cd.chart.Refresh()
}

func (cd *ChartDisplay) HasChart() bool {
	return cd.hasChart
}

func (cd *ChartDisplay) GetContainer() *fyne.Container {
	return cd.container
}
