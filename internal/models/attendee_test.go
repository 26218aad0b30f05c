package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRosterDropsBlankNamesAndTrims(t *testing.T) {
	r := NewRoster("attendees.csv", []Attendee{
		{Name: "  Asha ", Contact: " 919800000001 ", Row: 1},
		{Name: "   ", Contact: "919800000002", Row: 2},
		{Name: "Ravi", Row: 3},
	})

	require.Equal(t, 2, r.Len())
	assert.Equal(t, "Asha", r.At(0).Name)
	assert.Equal(t, "919800000001", r.At(0).Contact)
	assert.Equal(t, 3, r.At(1).Row)
	assert.False(t, r.At(1).HasContact())
	assert.Equal(t, "attendees.csv", r.Source())
}

func TestNormalizeNameComposes(t *testing.T) {
	decomposed := "Jose\u0301"
	assert.Equal(t, "Jos\u00e9", NormalizeName(" "+decomposed))
}

func TestAttendeesReturnsCopy(t *testing.T) {
	r := NewRoster("", []Attendee{{Name: "A"}, {Name: "B"}})
	list := r.Attendees()
	list[0].Name = "changed"

	assert.Equal(t, "A", r.At(0).Name)
}

func TestShares(t *testing.T) {
	r := NewRoster("", []Attendee{
		{Name: "Asha"}, {Name: "Ravi"}, {Name: "Asha"}, {Name: "Meera"},
	})

	shares := r.Shares()
	require.Len(t, shares, 3)
	assert.Equal(t, Share{Name: "Asha", Count: 2, Probability: 0.5}, shares[0])
	assert.Equal(t, "Ravi", shares[1].Name)
	assert.Equal(t, "Meera", shares[2].Name)

	var sum float64
	for _, s := range shares {
		sum += s.Probability
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestEmptyRoster(t *testing.T) {
	var nilRoster *Roster
	assert.True(t, nilRoster.IsEmpty())
	assert.Nil(t, nilRoster.Names())

	r := NewRoster("", nil)
	assert.True(t, r.IsEmpty())
	assert.Nil(t, r.Shares())
}

func TestNewDraw(t *testing.T) {
	r := NewRoster("", []Attendee{{Name: "A"}, {Name: "B"}})
	d := NewDraw(r, 1)

	assert.Equal(t, "B", d.Winner.Name)
	assert.Equal(t, 1, d.Index)
	assert.Len(t, d.ShortID(), 8)
	assert.False(t, d.At.IsZero())
}
