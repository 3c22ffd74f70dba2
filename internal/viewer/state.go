package viewer

import (
	"github.com/arcanaland/flashdeck/internal/deck"
)

// Phase is the lifecycle stage of a viewing session.
type Phase int

const (
	Loading Phase = iota
	Ready
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

// State is everything the viewer knows about the session.
type State struct {
	Phase Phase
	Decks deck.Catalog
	Deck  *deck.Deck
	Index int
	Err   error
}

// Rand returns a uniformly distributed integer in [0, n).
type Rand func(n int) int

// Clamp bounds index to the cards of d. Decks without cards clamp to 0.
func Clamp(d *deck.Deck, index int) int {
	n := d.Len()
	if index > n-1 {
		index = n - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}

// Advance moves to the next card, wrapping to the first after the last.
// It reports false, leaving s untouched, when there is nothing to advance over.
func Advance(s State) (State, bool) {
	n := s.Deck.Len()
	if n == 0 {
		return s, false
	}
	s.Index = (s.Index + 1) % n
	return s, true
}

// Pick jumps to a random card other than the current one. With a single card
// the index stays 0 and Pick reports false; with none it is a no-op.
func Pick(s State, rnd Rand) (State, bool) {
	n := s.Deck.Len()
	if n == 0 {
		return s, false
	}
	if n == 1 {
		s.Index = 0
		return s, false
	}

	// Draw among the n-1 other cards, then skip over the current one.
	current := Clamp(s.Deck, s.Index)
	next := rnd(n - 1)
	if next >= current {
		next++
	}
	s.Index = next
	return s, true
}
