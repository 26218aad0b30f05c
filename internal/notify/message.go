// Package notify builds the WhatsApp notification for a winner and hands it
// to a browser.
package notify

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"text/template"
	"unicode"

	"course-giveaway/internal/models"
)

var ErrNoContact = errors.New("notify: winner has no contact number")

// MessageData is what a message template can reference.
type MessageData struct {
	Name   string
	Course string
}

// Message renders tmpl for the winner.
func Message(tmpl, course string, winner models.Attendee) (string, error) {
	t, err := template.New("message").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse message template: %w", err)
	}
	var sb strings.Builder
	if err := t.Execute(&sb, MessageData{Name: winner.Name, Course: course}); err != nil {
		return "", fmt.Errorf("render message: %w", err)
	}
	return sb.String(), nil
}

// NormalizePhone reduces a spreadsheet phone cell to its digits. A trailing
// ".0" left by numeric cells is dropped first.
func NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(raw, ".0")

	var sb strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "", ErrNoContact
	}
	return sb.String(), nil
}

// DeepLink builds base?phone=<digits>&text=<message>. Spaces in the text are
// escaped as %20 rather than '+', matching what WhatsApp Web emits itself.
func DeepLink(base, phone, text string) (*url.URL, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q is not absolute", base)
	}

	digits, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	u.RawQuery = "phone=" + digits + "&text=" + escape(text)
	return u, nil
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Notification is the message and link prepared for one winner.
type Notification struct {
	Winner models.Attendee
	Text   string
	Link   *url.URL
}

// Builder holds the settings shared by every notification.
type Builder struct {
	BaseURL  string
	Template string
	Course   string
}

func (b Builder) Build(winner models.Attendee) (*Notification, error) {
	if !winner.HasContact() {
		return nil, ErrNoContact
	}
	text, err := Message(b.Template, b.Course, winner)
	if err != nil {
		return nil, err
	}
	link, err := DeepLink(b.BaseURL, winner.Contact, text)
	if err != nil {
		return nil, err
	}
	return &Notification{Winner: winner, Text: text, Link: link}, nil
}
