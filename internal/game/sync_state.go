// sync_state.go — obfuscated snapshots tailored to one observing seat.
package game

import (
	"github.com/google/uuid"

	"github.com/olawistedt/basicrummy/engine"
)

// ObfCard represents a card for client synchronization, potentially hiding
// details. Rank/Suit/Value are populated only when Known is true.
type ObfCard struct {
	ID    uuid.UUID `json:"id"`
	Known bool      `json:"known"`
	Rank  string    `json:"rank,omitempty"`
	Suit  string    `json:"suit,omitempty"`
	Value int       `json:"value,omitempty"`
}

// ObfMeld represents one table meld. Melds are always public.
type ObfMeld struct {
	ID        uuid.UUID `json:"id"`
	OwnerSeat uuid.UUID `json:"ownerSeat"`
	Kind      string    `json:"kind"`
	Cards     []ObfCard `json:"cards"`
}

// ObfPlayerState represents one seat, obfuscated for a specific observer.
// RevealedHand is populated only for the observer's own seat.
type ObfPlayerState struct {
	SeatID        uuid.UUID `json:"seatId"`
	HandSize      int       `json:"handSize"`
	IsCurrentTurn bool      `json:"isCurrentTurn"`
	IsAI          bool      `json:"isAi"`
	RevealedHand  []ObfCard `json:"revealedHand,omitempty"`
}

// ObfGameState is the read-only snapshot handed to the presentation layer.
type ObfGameState struct {
	GameID      uuid.UUID        `json:"gameId"`
	Phase       string           `json:"phase"`
	HasDrawn    bool             `json:"hasDrawn"`
	Turn        int              `json:"turn"`
	StockSize   int              `json:"stockSize"`
	DiscardSize int              `json:"discardSize"`
	DiscardTop  *ObfCard         `json:"discardTop,omitempty"`
	Melds       []ObfMeld        `json:"melds"`
	Players     []ObfPlayerState `json:"players"`
	GameOver    bool             `json:"gameOver"`
	WinnerSeat  uuid.UUID        `json:"winnerSeat,omitempty"`
	Score       int              `json:"score,omitempty"`
}

// obfCard builds the client view of a card.
func (g *RummyGame) obfCard(c engine.Card, known bool) ObfCard {
	out := ObfCard{ID: g.cardIDs[c], Known: known}
	if known {
		out.Rank = rankString(c.Rank())
		out.Suit = suitString(c.Suit())
		out.Value = int(c.Value())
	}
	return out
}

// obfMeld builds the public view of the table meld at idx. Melds are never
// hidden from anyone.
func (g *RummyGame) obfMeld(idx uint8) ObfMeld {
	m := g.Engine.MeldAt(idx)
	om := ObfMeld{
		ID:        g.meldIDs[idx],
		OwnerSeat: g.Seats[m.Owner],
		Kind:      m.Kind.String(),
		Cards:     make([]ObfCard, 0, m.Len),
	}
	for _, c := range m.CardSlice() {
		om.Cards = append(om.Cards, g.obfCard(c, true))
	}
	return om
}

// obfState builds the snapshot from the perspective of forSeat: the
// observer's own hand is revealed, the opponent's hand and the stock stay
// hidden, and everything on the table is public.
// The caller must hold the game lock.
func (g *RummyGame) obfState(forSeat uuid.UUID) ObfGameState {
	e := &g.Engine

	obf := ObfGameState{
		GameID:      g.ID,
		Phase:       e.Phase.String(),
		HasDrawn:    e.HasDrawnThisTurn(),
		Turn:        int(e.TurnNumber),
		StockSize:   int(e.StockLen),
		DiscardSize: int(e.DiscardLen),
		GameOver:    e.IsGameOver(),
	}

	if top := e.DiscardTop(); top != engine.EmptyCard {
		c := g.obfCard(top, true)
		obf.DiscardTop = &c
	}

	obf.Melds = make([]ObfMeld, 0, e.NumMelds)
	for i := uint8(0); i < e.NumMelds; i++ {
		obf.Melds = append(obf.Melds, g.obfMeld(i))
	}

	obf.Players = make([]ObfPlayerState, 0, engine.NumPlayers)
	for p := uint8(0); p < engine.NumPlayers; p++ {
		ps := ObfPlayerState{
			SeatID:        g.Seats[p],
			HandSize:      len(e.HandSlice(p)),
			IsCurrentTurn: !e.IsGameOver() && e.CurrentPlayer == p,
			IsAI:          g.Seats[p] == g.AISeat,
		}
		if g.Seats[p] == forSeat {
			ps.RevealedHand = make([]ObfCard, 0, ps.HandSize)
			for _, c := range e.HandSlice(p) {
				ps.RevealedHand = append(ps.RevealedHand, g.obfCard(c, true))
			}
		}
		obf.Players = append(obf.Players, ps)
	}

	if e.IsGameOver() {
		if winner, points := e.FinalScore(); winner >= 0 {
			obf.WinnerSeat = g.Seats[winner]
			obf.Score = points
		}
	}

	return obf
}

// State returns a read-only snapshot from the perspective of forSeat.
func (g *RummyGame) State(forSeat uuid.UUID) ObfGameState {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.obfState(forSeat)
}
