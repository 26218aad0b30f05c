// Package report writes a one-page PDF record of a draw.
package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"course-giveaway/internal/models"

	"github.com/jung-kurt/gofpdf"
)

const (
	chartImage = "chart"
	coreFont   = "Helvetica"
	utf8Font   = "body"
)

// Details is the presentation data around a draw.
type Details struct {
	Course string
	Style  string
	// FontPath is a TrueType font used for all text. Without it the core
	// Helvetica font is used, which only covers cp1252 (Western European)
	// names.
	FontPath string
}

// Path is where the report for d lives inside dir.
func Path(dir string, d *models.Draw) string {
	return filepath.Join(dir, fmt.Sprintf("giveaway-%s.pdf", d.ID))
}

// Write renders the report for d to w. chartPNG may be nil.
func Write(ctx context.Context, w io.Writer, d *models.Draw, details Details, chartPNG []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	family, tr, err := setupFont(pdf, details.FontPath)
	if err != nil {
		return err
	}
	pdf.SetTitle("Course Giveaway Result", true)
	pdf.AddPage()

	pdf.SetFont(family, "B", 18)
	pdf.CellFormat(0, 10, "Random Winner Selection", "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 11)
	for _, line := range summary(d, details) {
		pdf.CellFormat(0, 7, tr(line), "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont(family, "B", 14)
	pdf.SetTextColor(46, 125, 50)
	pdf.CellFormat(0, 9, tr("Winner: "+d.Winner.Name), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	if len(chartPNG) > 0 {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(chartImage, opts, bytes.NewReader(chartPNG))
		pdf.ImageOptions(chartImage, 10, pdf.GetY()+2, 120, 0, true, opts, 0, "")
		pdf.Ln(4)
	}

	writeTable(pdf, family, tr, d)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// setupFont registers the TrueType font at path, when given, and returns the
// font family to use along with the text translator it needs.
func setupFont(pdf *gofpdf.Fpdf, path string) (string, func(string) string, error) {
	if path == "" {
		return coreFont, pdf.UnicodeTranslatorFromDescriptor(""), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("load report font: %w", err)
	}
	pdf.AddUTF8FontFromBytes(utf8Font, "", data)
	pdf.AddUTF8FontFromBytes(utf8Font, "B", data)
	if err := pdf.Error(); err != nil {
		return "", nil, fmt.Errorf("load report font %s: %w", path, err)
	}
	return utf8Font, func(s string) string { return s }, nil
}

// summary is the block of detail lines under the title.
func summary(d *models.Draw, details Details) []string {
	var lines []string
	if details.Course != "" {
		lines = append(lines, "Course: "+details.Course)
	}
	lines = append(lines,
		"Draw: "+d.ID.String(),
		"Date: "+d.At.Format(time.RFC1123),
	)
	if d.Seeded {
		lines = append(lines, "Seed: "+strconv.FormatUint(d.Seed, 10))
	}
	if details.Style != "" {
		lines = append(lines, "Chart: "+details.Style)
	}
	return append(lines, fmt.Sprintf("Source: %s (%d attendees)", d.Roster.Source(), d.Roster.Len()))
}

func writeTable(pdf *gofpdf.Fpdf, family string, tr func(string) string, d *models.Draw) {
	pdf.SetFont(family, "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(15, 7, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(100, 7, "Name", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 7, "Contact", "1", 1, "L", true, 0, "")

	pdf.SetFont(family, "", 10)
	for i, a := range d.Roster.Attendees() {
		fill := i == d.Index
		if fill {
			pdf.SetFillColor(200, 230, 201)
		}
		pdf.CellFormat(15, 6, strconv.Itoa(a.Row), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(100, 6, tr(a.Name), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(60, 6, a.Contact, "1", 1, "L", fill, 0, "")
	}
}

// Save writes the report for d into dir and returns the file path.
func Save(ctx context.Context, dir string, d *models.Draw, details Details, chartPNG []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := Path(dir, d)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	if err := Write(ctx, f, d, details, chartPNG); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}
	return path, nil
}
