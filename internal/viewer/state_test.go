package viewer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arcanaland/flashdeck/internal/card"
	"github.com/arcanaland/flashdeck/internal/deck"
)

func deckOf(n int) *deck.Deck {
	return &deck.Deck{ID: "d", Cards: make([]card.Card, n)}
}

func TestClamp(t *testing.T) {
	require.Equal(t, 0, Clamp(deckOf(0), 5))
	require.Equal(t, 0, Clamp(nil, 5))
	require.Equal(t, 0, Clamp(deckOf(3), -2))
	require.Equal(t, 1, Clamp(deckOf(3), 1))
	require.Equal(t, 2, Clamp(deckOf(3), 9))
}

func TestAdvance(t *testing.T) {
	s, ok := Advance(State{Deck: deckOf(0)})
	require.False(t, ok)
	require.Zero(t, s.Index)

	s, ok = Advance(State{Deck: deckOf(3), Index: 2})
	require.True(t, ok)
	require.Zero(t, s.Index)
}

func TestPickCoversEveryOtherCard(t *testing.T) {
	const n = 5
	for current := 0; current < n; current++ {
		seen := map[int]bool{}
		for draw := 0; draw < n-1; draw++ {
			s, ok := Pick(State{Deck: deckOf(n), Index: current}, func(m int) int {
				require.Equal(t, n-1, m)
				return draw
			})
			require.True(t, ok)
			require.NotEqual(t, current, s.Index)
			seen[s.Index] = true
		}
		require.Len(t, seen, n-1, "every other card must be reachable from %d", current)
	}
}

func TestPhaseString(t *testing.T) {
	require.Equal(t, "loading", Loading.String())
	require.Equal(t, "ready", Ready.String())
	require.Equal(t, "error", Failed.String())
}
