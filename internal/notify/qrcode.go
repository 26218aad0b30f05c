package notify

import (
	"fmt"
	"image"
	"net/url"

	"github.com/skip2/go-qrcode"
)

// QRCode renders the link so it can be scanned from a phone.
func QRCode(link *url.URL, size int) (image.Image, error) {
	q, err := qrcode.New(link.String(), qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return q.Image(size), nil
}

// QRCodeText renders the link with block characters for a terminal.
func QRCodeText(link *url.URL) (string, error) {
	q, err := qrcode.New(link.String(), qrcode.Low)
	if err != nil {
		return "", fmt.Errorf("encode qr code: %w", err)
	}
	return q.ToSmallString(false), nil
}
