package components

import (
	"image"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolbarStartTapCallsHandler(t *testing.T) {
	test.NewTempApp(t)

	toolbar := NewToolbar()
	taps := 0
	toolbar.SetStartHandler(func() { taps++ })

	test.Tap(toolbar.StartButton())
	assert.Equal(t, 1, taps)
	assert.Equal(t, PromptText, toolbar.prompt.Text)
}

func TestToolbarDisabledWhileRunning(t *testing.T) {
	test.NewTempApp(t)

	toolbar := NewToolbar()
	taps := 0
	toolbar.SetStartHandler(func() { taps++ })

	toolbar.SetRunning(true)
	assert.True(t, toolbar.StartButton().Disabled())
	test.Tap(toolbar.StartButton())
	assert.Zero(t, taps)

	toolbar.SetRunning(false)
	assert.False(t, toolbar.StartButton().Disabled())
}

func TestToolbarWithoutHandler(t *testing.T) {
	test.NewTempApp(t)

	toolbar := NewToolbar()
	assert.NotPanics(t, func() { test.Tap(toolbar.StartButton()) })
}

func TestStatusBarDrawInfo(t *testing.T) {
	test.NewTempApp(t)

	sb := NewStatusBar()
	assert.Equal(t, "Ready", sb.GetStatus())

	sb.SetStatus("Selecting winner...")
	assert.Equal(t, "Selecting winner...", sb.GetStatus())

	sb.SetDrawInfo(12, "")
	assert.Equal(t, "Attendees: 12", sb.rosterInfo.Text)
	assert.Equal(t, "Draw: --", sb.drawInfo.Text)

	sb.SetDrawInfo(12, "1a2b3c4d")
	assert.Equal(t, "Draw: 1a2b3c4d", sb.drawInfo.Text)
}

func TestNameDisplayFramesAndWinner(t *testing.T) {
	test.NewTempApp(t)

	nd := NewNameDisplay()
	nd.SetName("Alice")
	assert.Equal(t, "Alice", nd.Text())
	frameColor := nd.text.Color

	nd.SetWinner("Bob")
	assert.Equal(t, "Bob", nd.Text())
	assert.NotEqual(t, frameColor, nd.text.Color)
}

func TestChartDisplaySetAndClear(t *testing.T) {
	test.NewTempApp(t)

	cd := NewChartDisplay()
	require.False(t, cd.HasChart())

	chart := image.NewRGBA(image.Rect(0, 0, 10, 10))
	cd.SetChart(chart)
	assert.True(t, cd.HasChart())
	assert.Same(t, chart, cd.chart.Image)

	cd.SetChart(nil)
	assert.False(t, cd.HasChart())
	assert.Equal(t, cd.placeholder, cd.chart.Image)
}
