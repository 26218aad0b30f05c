package models

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Attendee is one participant row. Row is the 1-based data row it came from
// and is the only identity an attendee has.
type Attendee struct {
	Name    string
	Contact string
	Row     int
}

// HasContact reports whether the attendee can be messaged.
func (a Attendee) HasContact() bool {
	return strings.TrimSpace(a.Contact) != ""
}

// Roster is the ordered, read-only attendee list for one selection event.
type Roster struct {
	attendees []Attendee
	source    string
}

// NewRoster copies attendees, normalising names to NFC and trimming
// surrounding whitespace. Entries with a blank name are dropped.
func NewRoster(source string, attendees []Attendee) *Roster {
	list := make([]Attendee, 0, len(attendees))
	for _, a := range attendees {
		a.Name = NormalizeName(a.Name)
		if a.Name == "" {
			continue
		}
		a.Contact = strings.TrimSpace(a.Contact)
		list = append(list, a)
	}
	return &Roster{attendees: list, source: source}
}

// NormalizeName trims and NFC-normalises a display name so visually equal
// names compare equal.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.attendees)
}

func (r *Roster) IsEmpty() bool {
	return r.Len() == 0
}

func (r *Roster) At(i int) Attendee {
	return r.attendees[i]
}

// Source is the file the roster was read from.
func (r *Roster) Source() string {
	if r == nil {
		return ""
	}
	return r.source
}

// Attendees returns a copy of the list.
func (r *Roster) Attendees() []Attendee {
	if r == nil {
		return nil
	}
	out := make([]Attendee, len(r.attendees))
	copy(out, r.attendees)
	return out
}

func (r *Roster) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.attendees))
	for i, a := range r.attendees {
		names[i] = a.Name
	}
	return names
}

// Share is the chance a distinct name has of being drawn.
type Share struct {
	Name        string
	Count       int
	Probability float64
}

// Shares groups the roster by name in order of first appearance. A name
// listed twice has twice the chance of a name listed once.
func (r *Roster) Shares() []Share {
	if r.IsEmpty() {
		return nil
	}

	index := make(map[string]int)
	shares := make([]Share, 0, len(r.attendees))
	for _, a := range r.attendees {
		if i, ok := index[a.Name]; ok {
			shares[i].Count++
			continue
		}
		index[a.Name] = len(shares)
		shares = append(shares, Share{Name: a.Name, Count: 1})
	}

	total := float64(len(r.attendees))
	for i := range shares {
		shares[i].Probability = float64(shares[i].Count) / total
	}
	return shares
}
