// Package chart renders the selection probability chart shown after a draw.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"

	"course-giveaway/internal/models"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	StylePie = "pie"
	StyleBar = "bar"
)

const Title = "Random Winner Selection Probability"

var (
	ErrNoData       = errors.New("chart: no attendees to plot")
	ErrUnknownStyle = errors.New("chart: unknown style")
)

var (
	winnerColor = drawing.ColorFromHex("4CAF50")
	barColor    = drawing.ColorFromHex("87CEEB")
	strokeColor = drawing.ColorWhite
)

// minBarSlot is the horizontal room given to each bar, including spacing.
const minBarSlot = 48

type Renderer struct {
	Width  int
	Height int
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{Width: width, Height: height}
}

// Render draws the chart for roster with winner highlighted and decodes it
// for display.
func (r *Renderer) Render(style string, roster *models.Roster, winner string) (image.Image, error) {
	data, err := r.RenderPNG(style, roster, winner)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode turns RenderPNG output into an image for the canvas.
func Decode(data []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	return img, nil
}

// RenderPNG returns the encoded chart. The roster is only read.
func (r *Renderer) RenderPNG(style string, roster *models.Roster, winner string) ([]byte, error) {
	shares := roster.Shares()
	if len(shares) == 0 {
		return nil, ErrNoData
	}

	var buf bytes.Buffer
	switch style {
	case StylePie:
		if err := r.pie(shares, winner).Render(chart.PNG, &buf); err != nil {
			return nil, fmt.Errorf("render pie chart: %w", err)
		}
	case StyleBar:
		if err := r.bar(shares, winner).Render(chart.PNG, &buf); err != nil {
			return nil, fmt.Errorf("render bar chart: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownStyle, style)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) pie(shares []models.Share, winner string) chart.PieChart {
	return chart.PieChart{
		Title:  Title,
		Width:  r.Width,
		Height: r.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Values: pieValues(shares, winner),
	}
}

func (r *Renderer) bar(shares []models.Share, winner string) chart.BarChart {
	width := r.Width
	if need := len(shares)*minBarSlot + 120; need > width {
		width = need
	}
	barWidth := (width-120)/len(shares) - 8
	if barWidth > 80 {
		barWidth = 80
	}
	if barWidth < 8 {
		barWidth = 8
	}

	return chart.BarChart{
		Title:  Title,
		Width:  width,
		Height: r.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		BarWidth:   barWidth,
		BarSpacing: 8,
		XAxis: chart.Style{
			TextRotationDegrees: 45,
		},
		YAxis: chart.YAxis{
			Name:  "Chance (%)",
			Range: &chart.ContinuousRange{Min: 0, Max: yMax(shares)},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f%%", f)
				}
				return ""
			},
		},
		Bars: barValues(shares, winner),
	}
}

// yMax leaves headroom above the tallest bar. The axis always starts at zero
// so equal shares still give the chart a non-empty range.
func yMax(shares []models.Share) float64 {
	top := 0.0
	for _, s := range shares {
		top = math.Max(top, s.Probability*100)
	}
	return math.Min(100, math.Ceil(top*1.1))
}

func pieValues(shares []models.Share, winner string) []chart.Value {
	values := make([]chart.Value, len(shares))
	for i, s := range shares {
		v := chart.Value{
			Value: s.Probability,
			Label: fmt.Sprintf("%s %.1f%%", s.Name, s.Probability*100),
		}
		if s.Name == winner {
			v.Style = chart.Style{FillColor: winnerColor, StrokeColor: strokeColor, StrokeWidth: 3}
		}
		values[i] = v
	}
	return values
}

func barValues(shares []models.Share, winner string) []chart.Value {
	values := make([]chart.Value, len(shares))
	for i, s := range shares {
		fill := barColor
		if s.Name == winner {
			fill = winnerColor
		}
		values[i] = chart.Value{
			Value: s.Probability * 100,
			Label: s.Name,
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		}
	}
	return values
}
