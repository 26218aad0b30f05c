package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"course-giveaway/internal/animation"
	"course-giveaway/internal/chart"
	"course-giveaway/internal/config"
	"course-giveaway/internal/logger"
	"course-giveaway/internal/models"
	"course-giveaway/internal/notify"
	"course-giveaway/internal/report"
	"course-giveaway/internal/roster"
	"course-giveaway/internal/selection"
)

// ErrBusy is returned when a selection is requested while one is running.
var ErrBusy = errors.New("a selection is already running")

// IsNoAttendees reports whether err means there was nobody to draw from.
func IsNoAttendees(err error) bool {
	return errors.Is(err, roster.ErrNoAttendees) || errors.Is(err, selection.ErrNoAttendees)
}

// Stats summarises the draws performed in this process.
type Stats struct {
	Draws          int
	LastDrawID     string
	LastRosterSize int
	LastDuration   time.Duration
}

// GiveawayService runs the steps of a selection event. The caller sequences
// them; the service only guards that one event runs at a time.
type GiveawayService struct {
	cfg      *config.Config
	loader   *roster.Loader
	picker   *selection.Picker
	animator *animation.Animator
	charts   *chart.Renderer
	builder  notify.Builder
	sender   notify.Sender
	logger   logger.Logger

	active  atomic.Bool
	started time.Time

	mu    sync.RWMutex
	stats Stats
}

// NewGiveawayService wires the service from cfg. sender may be nil when
// notifications are disabled.
func NewGiveawayService(cfg *config.Config, picker *selection.Picker, sender notify.Sender, log logger.Logger) *GiveawayService {
	if log == nil {
		log = logger.Nop()
	}
	return &GiveawayService{
		cfg:      cfg,
		loader:   roster.NewLoader(log),
		picker:   picker,
		animator: animation.New(cfg.Animation.Rounds, cfg.Animation.Interval, cfg.Animation.MaxDuration),
		charts:   chart.NewRenderer(cfg.Chart.Width, cfg.Chart.Height),
		builder: notify.Builder{
			BaseURL:  cfg.Notify.BaseURL,
			Template: cfg.Notify.Template,
			Course:   cfg.Notify.Course,
		},
		sender: sender,
		logger: log,
	}
}

// Begin claims the single selection slot, or returns ErrBusy.
func (s *GiveawayService) Begin() error {
	if !s.active.CompareAndSwap(false, true) {
		return ErrBusy
	}
	s.started = time.Now()
	return nil
}

// End releases the slot claimed by Begin.
func (s *GiveawayService) End() {
	s.mu.Lock()
	s.stats.LastDuration = time.Since(s.started)
	s.mu.Unlock()
	s.active.Store(false)
}

func (s *GiveawayService) IsRunning() bool {
	return s.active.Load()
}

func (s *GiveawayService) NotifyEnabled() bool {
	return s.cfg.Notify.Enabled && s.sender != nil
}

// Prepare loads the attendee list for this event.
func (s *GiveawayService) Prepare(ctx context.Context) (*models.Roster, error) {
	return s.loader.Load(ctx, s.cfg.File, roster.Options{
		Columns: roster.Columns{Name: s.cfg.Columns.Name, Contact: s.cfg.Columns.Contact},
		Sheet:   s.cfg.Sheet,
	})
}

// Animate plays the name-cycling sequence through sink.
func (s *GiveawayService) Animate(ctx context.Context, r *models.Roster, sink func(string)) error {
	names := r.Names()
	frames := len(s.animator.Frames(names))
	s.logger.Debug("GiveawayService", "animation started", map[string]interface{}{
		"frames":   frames,
		"interval": s.animator.FrameInterval(frames).String(),
	})
	return s.animator.Run(ctx, names, sink)
}

// Select draws the winner.
func (s *GiveawayService) Select(r *models.Roster) (*models.Draw, error) {
	d, err := s.picker.Draw(r)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.stats.Draws++
	s.stats.LastDrawID = d.ID.String()
	s.stats.LastRosterSize = r.Len()
	s.mu.Unlock()

	fields := map[string]interface{}{
		"draw_id":   d.ID.String(),
		"winner":    d.Winner.Name,
		"row":       d.Winner.Row,
		"attendees": r.Len(),
	}
	if d.Seeded {
		fields["seed"] = d.Seed
	}
	s.logger.Info("GiveawayService", "winner selected", fields)
	return d, nil
}

// Chart renders the configured chart for d, returning the decoded image and
// the PNG bytes it came from.
func (s *GiveawayService) Chart(d *models.Draw) (image.Image, []byte, error) {
	data, err := s.charts.RenderPNG(s.cfg.Chart.Style, d.Roster, d.Winner.Name)
	if err != nil {
		return nil, nil, err
	}
	img, err := chart.Decode(data)
	if err != nil {
		return nil, nil, err
	}
	return img, data, nil
}

// Notification prepares the message for the winner of d.
func (s *GiveawayService) Notification(d *models.Draw) (*notify.Notification, error) {
	return s.builder.Build(d.Winner)
}

// Send hands n to the configured sender.
func (s *GiveawayService) Send(ctx context.Context, n *notify.Notification) error {
	if s.sender == nil {
		return errors.New("notifications are disabled")
	}
	if s.cfg.Notify.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Notify.Timeout)
		defer cancel()
	}
	if err := s.sender.Send(ctx, n.Link); err != nil {
		return fmt.Errorf("send message to %s: %w", n.Winner.Name, err)
	}
	s.logger.Info("GiveawayService", "notification handed to browser", map[string]interface{}{
		"winner": n.Winner.Name,
		"mode":   s.cfg.Notify.Mode,
	})
	return nil
}

// Report writes the PDF report when a report directory is configured and
// returns its path, or "" when reports are off.
func (s *GiveawayService) Report(ctx context.Context, d *models.Draw, chartPNG []byte) (string, error) {
	if s.cfg.Report.Dir == "" {
		return "", nil
	}
	path, err := report.Save(ctx, s.cfg.Report.Dir, d, report.Details{
		Course:   s.cfg.Notify.Course,
		Style:    s.cfg.Chart.Style,
		FontPath: s.cfg.Report.Font,
	}, chartPNG)
	if err != nil {
		return "", err
	}
	s.logger.Info("GiveawayService", "report written", map[string]interface{}{
		"draw_id": d.ID.String(),
		"path":    path,
	})
	return path, nil
}

func (s *GiveawayService) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Shutdown closes the sender.
func (s *GiveawayService) Shutdown() {
	if s.sender == nil {
		return
	}
	if err := s.sender.Close(); err != nil {
		s.logger.Error("GiveawayService", err, map[string]interface{}{"step": "close sender"})
	}
}
