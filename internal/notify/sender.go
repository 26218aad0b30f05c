package notify

import (
	"context"
	"errors"
	"net/url"
)

// Sender delivers a prepared deep link. Delivery is best-effort: a nil error
// means the link was handed over, not that the message arrived.
type Sender interface {
	Send(ctx context.Context, link *url.URL) error
	Close() error
}

// OpenerSender hands the link to the desktop's default browser. The user
// presses send.
type OpenerSender struct {
	Open func(*url.URL) error
}

func (s *OpenerSender) Send(ctx context.Context, link *url.URL) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.Open == nil {
		return errors.New("notify: no url opener configured")
	}
	return s.Open(link)
}

func (s *OpenerSender) Close() error { return nil }
