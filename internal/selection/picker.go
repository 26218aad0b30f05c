// Package selection draws a winner from a roster.
package selection

import (
	"errors"
	"math/rand/v2"
	"sync"

	"course-giveaway/internal/models"

	"lukechampine.com/frand"
)

var ErrNoAttendees = errors.New("selection: no attendees to draw from")

// Source returns a uniform integer in [0, n).
type Source interface {
	IntN(n int) int
}

type frandSource struct{}

func (frandSource) IntN(n int) int { return frand.Intn(n) }

// Picker performs one uniform draw per call. It is safe for concurrent use.
type Picker struct {
	mu     sync.Mutex
	source Source
	seed   uint64
	seeded bool
}

// NewRandom draws from a cryptographically seeded generator.
func NewRandom() *Picker {
	return &Picker{source: frandSource{}}
}

// NewSeeded draws from a PCG stream so the same seed and roster always
// produce the same sequence of winners.
func NewSeeded(seed uint64) *Picker {
	return &Picker{
		source: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed:   seed,
		seeded: true,
	}
}

// NewWithSource is used by tests that need to script the draw.
func NewWithSource(src Source) *Picker {
	return &Picker{source: src}
}

// Seed reports the seed in use, if any.
func (p *Picker) Seed() (uint64, bool) {
	return p.seed, p.seeded
}

// Pick returns the winner and its position. The roster is not modified.
func (p *Picker) Pick(roster *models.Roster) (models.Attendee, int, error) {
	n := roster.Len()
	if n == 0 {
		return models.Attendee{}, -1, ErrNoAttendees
	}

	p.mu.Lock()
	idx := p.source.IntN(n)
	p.mu.Unlock()

	return roster.At(idx), idx, nil
}

// Draw wraps Pick into a Draw record.
func (p *Picker) Draw(roster *models.Roster) (*models.Draw, error) {
	_, idx, err := p.Pick(roster)
	if err != nil {
		return nil, err
	}
	d := models.NewDraw(roster, idx)
	d.Seed, d.Seeded = p.Seed()
	return d, nil
}
