// cards.go — stable identifiers and wire-friendly names for engine cards.
package game

import (
	"github.com/google/uuid"

	"github.com/olawistedt/basicrummy/engine"
)

// rankString converts an engine rank to its client-facing string.
func rankString(rank uint8) string {
	switch rank {
	case engine.RankAce:
		return "A"
	case engine.RankTen:
		return "10"
	case engine.RankJack:
		return "J"
	case engine.RankQueen:
		return "Q"
	case engine.RankKing:
		return "K"
	default:
		if rank >= engine.RankTwo && rank <= engine.RankNine {
			return string(rune('2' + rank - engine.RankTwo))
		}
		return "?"
	}
}

// suitString converts an engine suit to its client-facing string.
func suitString(suit uint8) string {
	switch suit {
	case engine.SuitClubs:
		return "c"
	case engine.SuitDiamonds:
		return "d"
	case engine.SuitSpades:
		return "s"
	case engine.SuitHearts:
		return "h"
	default:
		return "?"
	}
}

// registerCards assigns one UUID per distinct deck card. Card identity is
// (suit, rank), so the mapping is fixed for the whole match and the
// presentation layer can track cards across piles without coordinates.
func (g *RummyGame) registerCards() {
	g.cardIDs = make(map[engine.Card]uuid.UUID, engine.DeckSize)
	g.cardsByID = make(map[uuid.UUID]engine.Card, engine.DeckSize)
	for suit := uint8(0); suit <= engine.SuitHearts; suit++ {
		for rank := uint8(0); rank <= engine.RankKing; rank++ {
			c := engine.NewCard(suit, rank)
			id := uuid.New()
			g.cardIDs[c] = id
			g.cardsByID[id] = c
		}
	}
}

// CardID returns the stable identifier of a card.
func (g *RummyGame) CardID(c engine.Card) uuid.UUID { return g.cardIDs[c] }

// cardByID resolves a stable identifier back to the engine card.
func (g *RummyGame) cardByID(id uuid.UUID) (engine.Card, bool) {
	c, ok := g.cardsByID[id]
	return c, ok
}

// handIndexOf locates the card in the given player's hand.
func (g *RummyGame) handIndexOf(player uint8, card engine.Card) (uint8, bool) {
	for i, c := range g.Engine.HandSlice(player) {
		if c == card {
			return uint8(i), true
		}
	}
	return 0, false
}

// meldIndexOf locates the table meld with the given identifier.
func (g *RummyGame) meldIndexOf(id uuid.UUID) (uint8, bool) {
	for i := uint8(0); i < g.Engine.NumMelds; i++ {
		if g.meldIDs[i] == id {
			return i, true
		}
	}
	return 0, false
}
