package controllers

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"course-giveaway/internal/logger"
	"course-giveaway/internal/models"
	"course-giveaway/internal/notify"
	"course-giveaway/internal/services"
)

// Dialog copy shown to the operator.
const (
	TitleNoAttendees = "No Attendees"
	MsgNoAttendees   = "No attendees found in the CSV file."
	TitleWinner      = "Winner"
	TitleConfirmSend = "Send WhatsApp Message"
	TitleSent        = "Message Sent"
	TitleNotSent     = "Message Not Sent"
	MsgSendCanceled  = "Message sending canceled."
)

// View is everything the controller needs from the window. Implementations
// must be safe to call from any goroutine; the fyne view posts each call to
// the UI thread.
type View interface {
	SetStartHandler(handler func())
	SetRunning(running bool)
	ShowName(name string)
	ShowWinner(name string)
	ShowChart(img image.Image)
	UpdateStatus(status string)
	SetDrawInfo(rosterSize int, drawID string)
	ShowWarning(title, message string)
	ShowInfo(title, message string)
	ShowError(title string, err error)
	// ShowConfirm asks a yes/no question; qr may be nil.
	ShowConfirm(title, message string, qr image.Image, callback func(bool))
}

// ApplicationState is the controller's view of the current session.
type ApplicationState struct {
	Running    bool
	RosterSize int
	LastDraw   *models.Draw
	LastError  error
}

// MainController handles the Start action and drives one selection event at
// a time on a background goroutine.
type MainController struct {
	service *services.GiveawayService
	view    View
	logger  logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.RWMutex
	state      ApplicationState
	cancelDraw context.CancelFunc
	qrCodeSize int
}

func NewMainController(ctx context.Context, service *services.GiveawayService, log logger.Logger) *MainController {
	if log == nil {
		log = logger.Nop()
	}
	ctx, cancel := context.WithCancel(ctx)
	return &MainController{
		service:    service,
		logger:     log,
		ctx:        ctx,
		cancel:     cancel,
		qrCodeSize: 220,
	}
}

// SetMainView associates the view and connects its Start button.
func (mc *MainController) SetMainView(view View) {
	mc.view = view
	view.SetStartHandler(mc.Start)
}

// GetApplicationState returns a snapshot of the session state.
func (mc *MainController) GetApplicationState() ApplicationState {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.state
}

// Start begins a selection event unless one is already running.
func (mc *MainController) Start() {
	if mc.ctx.Err() != nil {
		return
	}
	if err := mc.service.Begin(); err != nil {
		mc.logger.Debug("MainController", "start ignored", map[string]interface{}{"reason": err.Error()})
		return
	}

	ctx, cancel := context.WithCancel(mc.ctx)
	mc.mu.Lock()
	mc.cancelDraw = cancel
	mc.state.Running = true
	mc.state.LastError = nil
	mc.mu.Unlock()

	mc.view.SetRunning(true)

	mc.wg.Add(1)
	go mc.runSelection(ctx)
}

// Cancel stops the running selection, if any.
func (mc *MainController) Cancel() {
	mc.mu.RLock()
	cancel := mc.cancelDraw
	mc.mu.RUnlock()
	if cancel != nil {
		cancel()
	}
}

// Wait blocks until the running selection has finished.
func (mc *MainController) Wait() {
	mc.wg.Wait()
}

func (mc *MainController) runSelection(ctx context.Context) {
	defer mc.wg.Done()
	defer mc.finish()

	mc.view.UpdateStatus("Loading attendees...")
	roster, err := mc.service.Prepare(ctx)
	if services.IsNoAttendees(err) {
		mc.logger.Warning("MainController", "no attendees", nil)
		mc.view.UpdateStatus("No attendees")
		mc.view.ShowWarning(TitleNoAttendees, MsgNoAttendees)
		return
	}
	if err != nil {
		mc.fail("Could not load attendees", err)
		return
	}

	mc.setRosterSize(roster.Len())
	mc.view.SetDrawInfo(roster.Len(), "")
	mc.view.UpdateStatus("Selecting a winner...")

	if err := mc.service.Animate(ctx, roster, mc.view.ShowName); err != nil {
		mc.view.UpdateStatus("Selection cancelled")
		return
	}

	draw, err := mc.service.Select(roster)
	if err != nil {
		mc.fail("Selection failed", err)
		return
	}
	mc.mu.Lock()
	mc.state.LastDraw = draw
	mc.mu.Unlock()

	mc.view.ShowWinner(draw.Winner.Name)
	mc.view.SetDrawInfo(roster.Len(), draw.ShortID())

	img, png, err := mc.service.Chart(draw)
	if err != nil {
		mc.fail("Chart failed", err)
	} else {
		mc.view.ShowChart(img)
	}

	if path, err := mc.service.Report(ctx, draw, png); err != nil {
		mc.fail("Report failed", err)
	} else if path != "" {
		mc.logger.Debug("MainController", "report saved", map[string]interface{}{"path": path})
	}

	mc.view.UpdateStatus(fmt.Sprintf("Winner: %s", draw.Winner.Name))
	mc.announce(ctx, draw)
}

// announce tells the operator who won and, when enabled, offers to message
// the winner. It blocks until the dialog is answered.
func (mc *MainController) announce(ctx context.Context, draw *models.Draw) {
	name := draw.Winner.Name
	if !mc.service.NotifyEnabled() {
		mc.view.ShowInfo(TitleWinner, fmt.Sprintf("The winner is: %s", name))
		return
	}

	n, err := mc.service.Notification(draw)
	if errors.Is(err, notify.ErrNoContact) {
		mc.view.ShowInfo(TitleWinner, fmt.Sprintf("The winner is: %s\nNo mobile number is on file, so no message can be sent.", name))
		return
	}
	if err != nil {
		mc.fail("Could not prepare message", err)
		return
	}

	qr, err := notify.QRCode(n.Link, mc.qrCodeSize)
	if err != nil {
		mc.logger.Warning("MainController", "qr code unavailable", map[string]interface{}{"error": err.Error()})
		qr = nil
	}

	answer := make(chan bool, 1)
	mc.view.ShowConfirm(TitleConfirmSend, fmt.Sprintf("Send message to %s on WhatsApp?", name), qr, func(ok bool) {
		answer <- ok
	})

	var confirmed bool
	select {
	case confirmed = <-answer:
	case <-ctx.Done():
		return
	}

	if !confirmed {
		mc.view.UpdateStatus("Message not sent")
		mc.view.ShowInfo(TitleNotSent, MsgSendCanceled)
		return
	}

	mc.view.UpdateStatus("Opening WhatsApp Web...")
	if err := mc.service.Send(ctx, n); err != nil {
		mc.fail("Message not sent", err)
		return
	}
	mc.view.UpdateStatus(fmt.Sprintf("Message sent to %s", name))
	mc.view.ShowInfo(TitleSent, fmt.Sprintf("Message sent to %s on WhatsApp.", name))
}

func (mc *MainController) setRosterSize(n int) {
	mc.mu.Lock()
	mc.state.RosterSize = n
	mc.mu.Unlock()
}

func (mc *MainController) finish() {
	mc.mu.Lock()
	if mc.cancelDraw != nil {
		mc.cancelDraw()
		mc.cancelDraw = nil
	}
	mc.state.Running = false
	mc.mu.Unlock()

	mc.service.End()
	mc.view.SetRunning(false)
}

// fail logs err and surfaces it to the operator.
func (mc *MainController) fail(title string, err error) {
	mc.logger.Error("MainController", err, map[string]interface{}{"stage": title})

	mc.mu.Lock()
	mc.state.LastError = err
	mc.mu.Unlock()

	mc.view.UpdateStatus(title)
	mc.view.ShowError(title, err)
}

// Shutdown cancels any running selection and waits for it to stop.
func (mc *MainController) Shutdown() {
	mc.cancel()
	mc.wg.Wait()
	mc.service.Shutdown()
}
