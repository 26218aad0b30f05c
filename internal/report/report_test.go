package report

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"course-giveaway/internal/chart"
	"course-giveaway/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDraw() *models.Draw {
	r := models.NewRoster("attendees.csv", []models.Attendee{
		{Name: "Asha", Contact: "919800000001", Row: 1},
		{Name: "José", Contact: "919800000002", Row: 2},
	})
	d := models.NewDraw(r, 1)
	d.Seed, d.Seeded = 42, true
	return d
}

func TestWriteProducesPDF(t *testing.T) {
	d := sampleDraw()
	png, err := chart.NewRenderer(400, 300).RenderPNG(chart.StylePie, d.Roster, d.Winner.Name)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(context.Background(), &buf, d, Details{Course: "Go 101"}, png))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"))
}

func TestWriteWithoutChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(context.Background(), &buf, sampleDraw(), Details{}, nil))
	assert.NotZero(t, buf.Len())
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	d := sampleDraw()

	path, err := Save(context.Background(), dir, d, Details{}, nil)
	require.NoError(t, err)
	assert.Equal(t, Path(dir, d), path)
	assert.Contains(t, filepath.Base(path), d.ID.String())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestWriteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Write(ctx, &bytes.Buffer{}, sampleDraw(), Details{}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummaryListsChartStyle(t *testing.T) {
	d := sampleDraw()
	lines := summary(d, Details{Course: "Go 101", Style: "bar"})

	assert.Contains(t, lines, "Course: Go 101")
	assert.Contains(t, lines, "Chart: bar")
	assert.Contains(t, lines, "Seed: 42")
	assert.Contains(t, lines, "Source: attendees.csv (2 attendees)")

	assert.NotContains(t, strings.Join(summary(d, Details{}), "\n"), "Chart:")
}

func TestWriteWithUTF8Font(t *testing.T) {
	const font = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
	if _, err := os.Stat(font); err != nil {
		t.Skip("DejaVuSans.ttf not installed")
	}

	r := models.NewRoster("attendees.csv", []models.Attendee{
		{Name: "Łukasz", Row: 1},
		{Name: "अनिता", Row: 2},
	})
	d := models.NewDraw(r, 0)

	var buf bytes.Buffer
	require.NoError(t, Write(context.Background(), &buf, d, Details{FontPath: font}, nil))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"))
}

func TestWriteMissingFont(t *testing.T) {
	var buf bytes.Buffer
	err := Write(context.Background(), &buf, sampleDraw(), Details{
		FontPath: filepath.Join(t.TempDir(), "missing.ttf"),
	}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Zero(t, buf.Len())
}
