// Package site holds the static marketing content and the small state
// machines behind the interactive widgets on the public pages.
package site

import "time"

// DefaultPhrases are cycled through in the home page hero.
var DefaultPhrases = []string{
	"smart contract hacks",
	"custody failure",
	"slashing",
	"depeg",
	"(almost anything)",
}

// Typewriter types each phrase one character at a time, holds the full
// phrase for Pause, then moves to the next phrase.
type Typewriter struct {
	Phrases  []string
	Interval time.Duration
	Pause    time.Duration
}

// NewTypewriter returns a Typewriter over DefaultPhrases typing at 100ms per
// character with a 2s pause.
func NewTypewriter() Typewriter {
	return Typewriter{
		Phrases:  DefaultPhrases,
		Interval: 100 * time.Millisecond,
		Pause:    2 * time.Second,
	}
}

// Frames returns the successive prefixes shown while typing phrase i,
// starting with the empty string and ending with the full phrase.
func (t Typewriter) Frames(i int) []string {
	if len(t.Phrases) == 0 {
		return nil
	}
	runes := []rune(t.Phrases[t.index(i)])
	frames := make([]string, 0, len(runes)+1)
	for n := 0; n <= len(runes); n++ {
		frames = append(frames, string(runes[:n]))
	}
	return frames
}

// Next returns the index after i, wrapping to 0 after the last phrase.
func (t Typewriter) Next(i int) int {
	if len(t.Phrases) == 0 {
		return 0
	}
	return (t.index(i) + 1) % len(t.Phrases)
}

// Cycle is the time phrase i occupies: typing plus the pause.
func (t Typewriter) Cycle(i int) time.Duration {
	if len(t.Phrases) == 0 {
		return 0
	}
	return time.Duration(len(t.Frames(i)))*t.Interval + t.Pause
}

// At reports which phrase is shown after elapsed time, the visible text and
// whether the cursor is still typing.
func (t Typewriter) At(elapsed time.Duration) (phrase int, text string, typing bool) {
	if len(t.Phrases) == 0 {
		return 0, "", false
	}
	var total time.Duration
	for i := range t.Phrases {
		total += t.Cycle(i)
	}
	if total > 0 {
		elapsed %= total
	}
	for i := range t.Phrases {
		c := t.Cycle(i)
		if elapsed >= c {
			elapsed -= c
			continue
		}
		frames := t.Frames(i)
		if t.Interval <= 0 {
			return i, frames[len(frames)-1], false
		}
		n := int(elapsed / t.Interval)
		if n >= len(frames) {
			return i, frames[len(frames)-1], false
		}
		return i, frames[n], true
	}
	return 0, "", true
}

func (t Typewriter) index(i int) int {
	n := len(t.Phrases)
	return ((i % n) + n) % n
}
