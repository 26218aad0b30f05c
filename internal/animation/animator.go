// Package animation drives the name-cycling "shuffle" shown before a winner
// is revealed.
package animation

import (
	"context"
	"time"
)

// MinInterval is the shortest delay between two frames.
const MinInterval = time.Millisecond

// Animator cycles through the names Rounds times, one frame per name.
// MaxDuration, when positive, caps the total run: the interval shrinks
// first, then rounds are dropped, and a roster too large for even one pass
// is sampled evenly.
type Animator struct {
	Rounds      int
	Interval    time.Duration
	MaxDuration time.Duration
}

func New(rounds int, interval, maxDuration time.Duration) *Animator {
	return &Animator{Rounds: rounds, Interval: interval, MaxDuration: maxDuration}
}

// Frames returns the full sequence of names that Run would display.
func (a *Animator) Frames(names []string) []string {
	n := len(names)
	if n == 0 || a.Rounds <= 0 {
		return nil
	}

	rounds := a.Rounds
	if budget := a.frameBudget(); budget > 0 && rounds*n > budget {
		rounds = budget / n
		if rounds == 0 {
			return sample(names, budget)
		}
	}

	frames := make([]string, 0, rounds*n)
	for r := 0; r < rounds; r++ {
		frames = append(frames, names...)
	}
	return frames
}

// frameBudget is the number of frames that fit in MaxDuration at
// MinInterval, or 0 when the run is uncapped.
func (a *Animator) frameBudget() int {
	if a.MaxDuration <= 0 {
		return 0
	}
	if budget := int(a.MaxDuration / MinInterval); budget > 0 {
		return budget
	}
	return 1
}

// sample picks k names spread evenly over names, keeping their order.
func sample(names []string, k int) []string {
	frames := make([]string, k)
	for i := range frames {
		frames[i] = names[i*len(names)/k]
	}
	return frames
}

// FrameInterval is the delay between frames for a sequence of the given
// length, as returned by Frames.
func (a *Animator) FrameInterval(frames int) time.Duration {
	interval := a.Interval
	if a.MaxDuration > 0 && frames > 0 && interval*time.Duration(frames) > a.MaxDuration {
		interval = a.MaxDuration / time.Duration(frames)
	}
	if interval < MinInterval {
		interval = MinInterval
	}
	return interval
}

// Run calls sink once per frame, blocking between frames. It returns
// ctx.Err() if the context ends first. sink runs on the calling goroutine
// and must hand any widget updates to the UI thread itself.
func (a *Animator) Run(ctx context.Context, names []string, sink func(name string)) error {
	frames := a.Frames(names)
	if len(frames) == 0 {
		return nil
	}

	ticker := time.NewTicker(a.FrameInterval(len(frames)))
	defer ticker.Stop()

	for _, name := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		sink(name)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
