package models

import (
	"time"

	"github.com/google/uuid"
)

// Draw is the outcome of one selection event.
type Draw struct {
	ID     uuid.UUID
	Winner Attendee
	Index  int
	Roster *Roster
	Seed   uint64
	Seeded bool
	At     time.Time
}

func NewDraw(roster *Roster, index int) *Draw {
	return &Draw{
		ID:     uuid.New(),
		Winner: roster.At(index),
		Index:  index,
		Roster: roster,
		At:     time.Now(),
	}
}

// ShortID is the first block of the draw ID, enough to tell draws apart in
// the status bar.
func (d *Draw) ShortID() string {
	return d.ID.String()[:8]
}
