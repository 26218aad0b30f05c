package controllers

import (
	"context"
	"image"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"course-giveaway/internal/config"
	"course-giveaway/internal/selection"
	"course-giveaway/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type dialog struct {
	kind, title, message string
}

type fakeView struct {
	mu       sync.Mutex
	start    func()
	running  []bool
	names    []string
	winner   string
	chart    image.Image
	statuses []string
	dialogs  []dialog
	qr       image.Image

	confirms chan func(bool)
}

func newFakeView() *fakeView {
	return &fakeView{confirms: make(chan func(bool), 1)}
}

func (v *fakeView) SetStartHandler(h func()) { v.start = h }

func (v *fakeView) SetRunning(r bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.running = append(v.running, r)
}

func (v *fakeView) ShowName(n string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.names = append(v.names, n)
}

func (v *fakeView) ShowWinner(n string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.winner = n
}

func (v *fakeView) ShowChart(img image.Image) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.chart = img
}

func (v *fakeView) UpdateStatus(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.statuses = append(v.statuses, s)
}

func (v *fakeView) SetDrawInfo(int, string) {}

func (v *fakeView) ShowWarning(title, msg string) { v.addDialog("warning", title, msg) }
func (v *fakeView) ShowInfo(title, msg string)    { v.addDialog("info", title, msg) }
func (v *fakeView) ShowError(title string, err error) {
	v.addDialog("error", title, err.Error())
}

func (v *fakeView) ShowConfirm(title, msg string, qr image.Image, cb func(bool)) {
	v.mu.Lock()
	v.qr = qr
	v.mu.Unlock()
	v.addDialog("confirm", title, msg)
	v.confirms <- cb
}

func (v *fakeView) addDialog(kind, title, msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dialogs = append(v.dialogs, dialog{kind, title, msg})
}

func (v *fakeView) lastDialog() dialog {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.dialogs) == 0 {
		return dialog{}
	}
	return v.dialogs[len(v.dialogs)-1]
}

type stubSender struct {
	mu    sync.Mutex
	links []*url.URL
}

func (s *stubSender) Send(_ context.Context, link *url.URL) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links = append(s.links, link)
	return nil
}

func (s *stubSender) Close() error { return nil }

func (s *stubSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.links)
}

const attendeesCSV = "Name,Mobile Number\nAsha,919800000001\nSean O'Neil,919800000002\nMeera,\n"

func setup(t *testing.T, csv string, notifyOn bool, src selection.Source) (*MainController, *fakeView, *stubSender) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "attendees.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	cfg := config.Default()
	cfg.File = path
	cfg.Animation.Rounds = 2
	cfg.Animation.Interval = time.Millisecond
	cfg.Chart.Width, cfg.Chart.Height = 400, 300
	cfg.Notify.Enabled = notifyOn

	var sender *stubSender
	var svc *services.GiveawayService
	picker := selection.NewWithSource(src)
	if notifyOn {
		sender = &stubSender{}
		svc = services.NewGiveawayService(cfg, picker, sender, nil)
	} else {
		svc = services.NewGiveawayService(cfg, picker, nil, nil)
	}

	mc := NewMainController(context.Background(), svc, nil)
	view := newFakeView()
	mc.SetMainView(view)
	t.Cleanup(mc.Shutdown)
	return mc, view, sender
}

type fixed int

func (f fixed) IntN(int) int { return int(f) }

func TestStartWithoutNotification(t *testing.T) {
	mc, view, _ := setup(t, attendeesCSV, false, fixed(1))

	view.start()
	mc.Wait()

	assert.Equal(t, "Sean O'Neil", view.winner)
	assert.Len(t, view.names, 6)
	assert.NotNil(t, view.chart)
	assert.Equal(t, dialog{"info", TitleWinner, "The winner is: Sean O'Neil"}, view.lastDialog())
	assert.Equal(t, []bool{true, false}, view.running)

	state := mc.GetApplicationState()
	assert.False(t, state.Running)
	assert.Equal(t, 3, state.RosterSize)
	require.NotNil(t, state.LastDraw)
	assert.Equal(t, "Sean O'Neil", state.LastDraw.Winner.Name)
}

func TestStartWithNoAttendees(t *testing.T) {
	mc, view, _ := setup(t, "Name,Mobile Number\n", false, fixed(0))

	mc.Start()
	mc.Wait()

	assert.Equal(t, dialog{"warning", TitleNoAttendees, MsgNoAttendees}, view.lastDialog())
	assert.Empty(t, view.winner)
	assert.Empty(t, view.names)
	assert.Nil(t, mc.GetApplicationState().LastDraw)
}

func TestConfirmSendsMessage(t *testing.T) {
	mc, view, sender := setup(t, attendeesCSV, true, fixed(1))

	mc.Start()
	cb := <-view.confirms
	assert.Equal(t, "Send message to Sean O'Neil on WhatsApp?", view.lastDialog().message)
	assert.NotNil(t, view.qr)
	cb(true)
	mc.Wait()

	require.Equal(t, 1, sender.count())
	q := sender.links[0].Query()
	assert.Equal(t, "919800000002", q.Get("phone"))
	assert.True(t, strings.HasPrefix(q.Get("text"), "Hello Sean O'Neil,"))
	assert.Equal(t, dialog{"info", TitleSent, "Message sent to Sean O'Neil on WhatsApp."}, view.lastDialog())
}

func TestCancelDoesNotSend(t *testing.T) {
	mc, view, sender := setup(t, attendeesCSV, true, fixed(0))

	mc.Start()
	(<-view.confirms)(false)
	mc.Wait()

	assert.Zero(t, sender.count())
	assert.Equal(t, dialog{"info", TitleNotSent, MsgSendCanceled}, view.lastDialog())
}

func TestWinnerWithoutContact(t *testing.T) {
	mc, view, sender := setup(t, attendeesCSV, true, fixed(2))

	mc.Start()
	mc.Wait()

	assert.Zero(t, sender.count())
	d := view.lastDialog()
	assert.Equal(t, TitleWinner, d.title)
	assert.Contains(t, d.message, "Meera")
}

func TestSecondStartIgnoredWhileRunning(t *testing.T) {
	mc, view, _ := setup(t, attendeesCSV, true, fixed(0))

	mc.Start()
	cb := <-view.confirms
	mc.Start()
	assert.True(t, mc.GetApplicationState().Running)
	cb(false)
	mc.Wait()

	loads := 0
	for _, s := range view.statuses {
		if s == "Loading attendees..." {
			loads++
		}
	}
	assert.Equal(t, 1, loads)
	assert.Equal(t, []bool{true, false}, view.running)
}

func TestShutdownWhileAwaitingConfirm(t *testing.T) {
	mc, view, sender := setup(t, attendeesCSV, true, fixed(0))

	mc.Start()
	<-view.confirms
	mc.Shutdown()

	assert.Zero(t, sender.count())
	assert.False(t, mc.GetApplicationState().Running)

	mc.Start()
	mc.Wait()
	assert.Equal(t, []bool{true, false}, view.running, "no new selection after shutdown")
}

func TestMalformedFileShowsError(t *testing.T) {
	mc, view, _ := setup(t, "Email\nx@example.com\n", false, fixed(0))

	mc.Start()
	mc.Wait()

	d := view.lastDialog()
	assert.Equal(t, "error", d.kind)
	assert.Equal(t, "Could not load attendees", d.title)
	assert.Error(t, mc.GetApplicationState().LastError)
}
