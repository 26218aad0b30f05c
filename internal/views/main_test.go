package views

import (
	"errors"
	"image"
	"testing"

	"course-giveaway/internal/controllers"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ controllers.View = (*MainView)(nil)

func TestNewMainViewLayout(t *testing.T) {
	a := test.NewTempApp(t)
	w := a.NewWindow("")
	defer w.Close()

	mv := NewMainView(w)

	assert.Equal(t, WindowTitle, w.Title())
	assert.Same(t, mv.GetContainer(), w.Content())
	assert.Equal(t, "Ready", mv.StatusBar().GetStatus())
	assert.False(t, mv.ChartDisplay().HasChart())
}

func TestStartButtonReachesHandler(t *testing.T) {
	a := test.NewTempApp(t)
	w := a.NewWindow("")
	defer w.Close()

	mv := NewMainView(w)
	pressed := make(chan struct{}, 1)
	mv.SetStartHandler(func() { pressed <- struct{}{} })

	test.Tap(mv.Toolbar().StartButton())

	select {
	case <-pressed:
	default:
		t.Fatal("start handler not called")
	}
}

func TestDialogBuilders(t *testing.T) {
	a := test.NewTempApp(t)
	w := a.NewWindow("")
	defer w.Close()
	NewMainView(w)

	assert.NotNil(t, warningDialog("No Attendees", "No attendees found in the CSV file.", w))
	assert.NotNil(t, errorDialog("Error", errors.New("boom"), w))

	confirm := confirmDialog("Send WhatsApp Message", "Send message to Alice on WhatsApp?",
		image.NewRGBA(image.Rect(0, 0, 32, 32)), func(bool) {}, w)
	require.NotNil(t, confirm)
}

func TestConfirmWithoutQRCode(t *testing.T) {
	a := test.NewTempApp(t)
	w := a.NewWindow("")
	defer w.Close()

	assert.NotPanics(t, func() {
		confirmDialog("Send WhatsApp Message", "Send message to Bob on WhatsApp?", nil, func(bool) {}, w)
	})
}
