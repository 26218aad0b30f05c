package notify

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"course-giveaway/internal/logger"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultComposeSelector matches the WhatsApp Web message box once the chat
// has opened with the pre-filled text.
const DefaultComposeSelector = `footer div[contenteditable="true"]`

// DefaultCloseDelay is how long the tab stays open after Enter so WhatsApp
// Web can hand the message to its server.
const DefaultCloseDelay = 3 * time.Second

type BrowserConfig struct {
	// ProfileDir keeps the browser profile between runs so the WhatsApp Web
	// login survives. Empty uses a throwaway profile.
	ProfileDir      string
	Headless        bool
	Timeout         time.Duration
	SendDelay       time.Duration
	CloseDelay      time.Duration
	ComposeSelector string
}

// BrowserSender drives a Chromium instance with go-rod: it opens the deep
// link in a new tab, waits for the compose box, presses Enter and closes the
// tab. Nothing confirms the message left, so success only means the
// keystroke was delivered.
type BrowserSender struct {
	cfg    BrowserConfig
	logger logger.Logger

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

func NewBrowserSender(cfg BrowserConfig, log logger.Logger) *BrowserSender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}
	if cfg.CloseDelay <= 0 {
		cfg.CloseDelay = DefaultCloseDelay
	}
	if cfg.ComposeSelector == "" {
		cfg.ComposeSelector = DefaultComposeSelector
	}
	if log == nil {
		log = logger.Nop()
	}
	return &BrowserSender{cfg: cfg, logger: log}
}

func (s *BrowserSender) start() (*rod.Browser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser != nil {
		if _, err := s.browser.Version(); err == nil {
			return s.browser, nil
		}
		s.logger.Warning("BrowserSender", "stale browser connection, relaunching", nil)
		_ = s.browser.Close()
		s.browser = nil
	}

	l := launcher.New().Headless(s.cfg.Headless)
	if s.cfg.ProfileDir != "" {
		l = l.UserDataDir(s.cfg.ProfileDir)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	s.launcher = l
	s.browser = browser
	s.logger.Info("BrowserSender", "browser started", map[string]interface{}{
		"headless":    s.cfg.Headless,
		"profile_dir": s.cfg.ProfileDir,
	})
	return browser, nil
}

func (s *BrowserSender) Send(ctx context.Context, link *url.URL) error {
	browser, err := s.start()
	if err != nil {
		return err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: link.String()})
	if err != nil {
		return fmt.Errorf("open page: %w", err)
	}
	defer s.closePage(page)
	p := page.Context(ctx).Timeout(s.cfg.Timeout)

	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("wait for page load: %w", err)
	}
	box, err := p.Element(s.cfg.ComposeSelector)
	if err != nil {
		return fmt.Errorf("compose box not found: %w", err)
	}
	if err := box.Focus(); err != nil {
		return fmt.Errorf("focus compose box: %w", err)
	}

	if s.cfg.SendDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.cfg.SendDelay):
		}
	}

	if err := p.Keyboard.Type(input.Enter); err != nil {
		return fmt.Errorf("press enter: %w", err)
	}

	s.logger.Info("BrowserSender", "send keystroke delivered", map[string]interface{}{
		"host": link.Host,
	})

	select {
	case <-ctx.Done():
	case <-time.After(s.cfg.CloseDelay):
	}
	return nil
}

func (s *BrowserSender) closePage(page *rod.Page) {
	if err := page.Close(); err != nil {
		s.logger.Warning("BrowserSender", "could not close tab", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *BrowserSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher = nil
	}
	return err
}
