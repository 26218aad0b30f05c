package main

import (
	"context"
	"net/url"
	"runtime"

	"course-giveaway/internal/config"
	"course-giveaway/internal/controllers"
	"course-giveaway/internal/logger"
	"course-giveaway/internal/notify"
	"course-giveaway/internal/services"
	"course-giveaway/internal/shutdown"
	"course-giveaway/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

// Application is the desktop giveaway: one window, one controller.
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger

	controller *controllers.MainController
	view       *views.MainView
	service    *services.GiveawayService
	shutdown   *shutdown.Manager
}

func runGUI(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	application := NewApplication(ctx, cfg, log)
	return application.Run()
}

// NewApplication wires models, services, controller and view.
func NewApplication(ctx context.Context, cfg *config.Config, log logger.Logger) *Application {
	fyneApp := app.NewWithID(AppID)
	fyneApp.SetMetadata(&fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})

	window := fyneApp.NewWindow(views.WindowTitle)
	window.CenterOnScreen()
	window.SetMaster()

	manager := shutdown.NewManager(log)
	if ctx == nil {
		ctx = context.Background()
	}
	appCtx, cancel := context.WithCancel(manager.Context())
	go func() {
		select {
		case <-ctx.Done():
			manager.Shutdown()
		case <-appCtx.Done():
		}
		cancel()
	}()

	service := services.NewGiveawayService(cfg, newPicker(cfg), newSender(cfg, fyneApp, log), log)
	controller := controllers.NewMainController(appCtx, service, log)
	view := views.NewMainView(window)
	controller.SetMainView(view)

	manager.Register("main controller", controller)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     log,
		controller: controller,
		view:       view,
		service:    service,
		shutdown:   manager,
	}
	application.setupWindowEvents()

	fields := describe(cfg)
	fields["version"] = AppVersion
	fields["go_version"] = runtime.Version()
	log.Info("Application", "application initialized", fields)

	return application
}

// newSender picks the delivery path for notifications. Open mode hands the
// link to the desktop browser; browser mode drives Chromium with go-rod.
func newSender(cfg *config.Config, fyneApp fyne.App, log logger.Logger) notify.Sender {
	if !cfg.Notify.Enabled {
		return nil
	}
	if cfg.Notify.Mode == config.NotifyModeBrowser {
		return notify.NewBrowserSender(notify.BrowserConfig{
			ProfileDir: cfg.Notify.ProfileDir,
			Timeout:    cfg.Notify.Timeout,
			SendDelay:  cfg.Notify.SendDelay,
		}, log)
	}
	return &notify.OpenerSender{Open: func(u *url.URL) error {
		return fyneApp.OpenURL(u)
	}}
}

// Run shows the window and blocks until the app quits.
func (a *Application) Run() error {
	a.shutdown.Listen(func() {
		fyne.Do(a.fyneApp.Quit)
	})

	a.window.ShowAndRun()

	a.shutdown.Shutdown()
	stats := a.service.Stats()
	a.logger.Info("Application", "application stopped", map[string]interface{}{
		"draws":        stats.Draws,
		"last_draw_id": stats.LastDrawID,
	})
	return nil
}

func (a *Application) setupWindowEvents() {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "window close requested", map[string]interface{}{
			"running": a.service.IsRunning(),
		})
		a.controller.Cancel()
		a.window.Close()
	})
}
