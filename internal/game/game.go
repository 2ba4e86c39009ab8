// Package game adapts the pure rummy engine to a presentation layer. It
// owns seat and card identifiers, serializes command access behind one
// mutex, translates engine rejections into typed results, and broadcasts
// game events through injected callbacks. It never exposes engine indices
// or hidden cards to the wrong observer.
package game

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/olawistedt/basicrummy/engine"
)

// GameEventType names a game event broadcast to the presentation layer.
type GameEventType string

const (
	EventPlayerDrawStock   GameEventType = "player_draw_stock"   // Public: seat drew from the stock (card hidden).
	EventPrivateDrawCard   GameEventType = "private_draw_card"   // Private: details of the drawn card.
	EventPlayerDrawDiscard GameEventType = "player_draw_discard" // Public: seat took the discard top (card revealed).
	EventPlayerMeld        GameEventType = "player_meld"         // Public: new meld on the table.
	EventPlayerLayOff      GameEventType = "player_lay_off"      // Public: card added to an existing meld.
	EventPlayerDiscard     GameEventType = "player_discard"      // Public: seat discarded (card revealed).
	EventStockRecycled     GameEventType = "game_stock_recycled" // Public: discard pile reshuffled into the stock.
	EventPlayerTurn        GameEventType = "game_player_turn"    // Public: the seat whose turn begins.
	EventGameEnd           GameEventType = "game_end"            // Public: hand over, includes winner and score.
)

// EventSeat identifies a seat within a GameEvent payload.
type EventSeat struct {
	ID uuid.UUID `json:"id"`
}

// GameEvent is the standard structure for broadcasting state changes.
type GameEvent struct {
	Type GameEventType `json:"type"`
	Seat *EventSeat    `json:"seat,omitempty"`
	Card *ObfCard      `json:"card,omitempty"`
	Meld *ObfMeld      `json:"meld,omitempty"`

	Payload map[string]interface{} `json:"payload,omitempty"`
}

// RejectReason is the machine-readable code carried by a rejected command.
type RejectReason string

const (
	ReasonWrongPhase       RejectReason = "wrong_phase"
	ReasonNotCurrentPlayer RejectReason = "not_current_player"
	ReasonAlreadyDrawn     RejectReason = "already_drawn_this_turn"
	ReasonEmptySource      RejectReason = "empty_source"
	ReasonInvalidMeld      RejectReason = "invalid_meld_composition"
	ReasonNoLayOffTarget   RejectReason = "no_lay_off_target"
	ReasonDeckExhausted    RejectReason = "deck_exhausted"
	ReasonUnknownSeat      RejectReason = "unknown_seat"
	ReasonUnknownCard      RejectReason = "unknown_card"
	ReasonUnknownMeld      RejectReason = "unknown_meld"
	ReasonIllegalAction    RejectReason = "illegal_action"
)

// reasonOf maps an engine rejection to its wire code.
func reasonOf(err error) RejectReason {
	switch {
	case errors.Is(err, engine.ErrWrongPhase):
		return ReasonWrongPhase
	case errors.Is(err, engine.ErrNotCurrentPlayer):
		return ReasonNotCurrentPlayer
	case errors.Is(err, engine.ErrAlreadyDrawnThisTurn):
		return ReasonAlreadyDrawn
	case errors.Is(err, engine.ErrEmptySource):
		return ReasonEmptySource
	case errors.Is(err, engine.ErrInvalidMeld):
		return ReasonInvalidMeld
	case errors.Is(err, engine.ErrNoLayOffTarget):
		return ReasonNoLayOffTarget
	case errors.Is(err, engine.ErrInvalidCardIndex):
		return ReasonUnknownCard
	case errors.Is(err, engine.ErrDeckExhausted):
		return ReasonDeckExhausted
	default:
		return ReasonIllegalAction
	}
}

// CommandResult discriminates every command outcome: Applied with a fresh
// snapshot, or Rejected with a reason and the state untouched.
type CommandResult struct {
	Applied bool         `json:"applied"`
	Reason  RejectReason `json:"reason,omitempty"`
	Detail  string       `json:"detail,omitempty"`
	State   ObfGameState `json:"state"`
}

// RummyGame wraps one engine hand with identifiers and event plumbing.
type RummyGame struct {
	ID     uuid.UUID
	Seats  [engine.NumPlayers]uuid.UUID // seat index -> seat id; index 0 is the human by default
	AISeat uuid.UUID                    // the seat driven by the scripted policy

	// Engine is the authoritative game state.
	Engine  engine.GameState
	Weights engine.AIWeights

	cardIDs   map[engine.Card]uuid.UUID
	cardsByID map[uuid.UUID]engine.Card
	meldIDs   [engine.MaxMelds]uuid.UUID

	// Mu protects Engine and the identifier tables. Commands are strictly
	// turn-sequential; the lock only guards against a misbehaving caller
	// issuing two commands at once.
	Mu sync.Mutex

	// Communication callbacks, both optional.
	BroadcastFn       func(ev GameEvent)
	BroadcastToSeatFn func(seat uuid.UUID, ev GameEvent)

	log *logrus.Entry
}

// NewRummyGame creates, deals, and registers a new match. Seat 0 is the
// human, seat 1 the scripted opponent.
func NewRummyGame(seed uint64, rules engine.HouseRules) *RummyGame {
	g := &RummyGame{
		ID:      uuid.New(),
		Weights: engine.DefaultAIWeights(),
	}
	for i := range g.Seats {
		g.Seats[i] = uuid.New()
	}
	g.AISeat = g.Seats[1]
	g.registerCards()

	g.Engine = engine.NewGame(seed, rules)
	g.Engine.Deal()

	g.log = logrus.WithFields(logrus.Fields{
		"game": g.ID,
		"seed": seed,
	})
	g.log.WithField("firstSeat", g.Seats[g.Engine.CurrentPlayer]).Info("game dealt")
	return g
}

// HumanSeat returns the human seat identifier.
func (g *RummyGame) HumanSeat() uuid.UUID { return g.Seats[0] }

// seatIndex resolves a seat id to its engine player index.
func (g *RummyGame) seatIndex(seat uuid.UUID) (uint8, bool) {
	for i, s := range g.Seats {
		if s == seat {
			return uint8(i), true
		}
	}
	return 0, false
}

func (g *RummyGame) emit(ev GameEvent) {
	if g.BroadcastFn != nil {
		g.BroadcastFn(ev)
	}
}

func (g *RummyGame) emitTo(seat uuid.UUID, ev GameEvent) {
	if g.BroadcastToSeatFn != nil {
		g.BroadcastToSeatFn(seat, ev)
	}
}

// rejected builds a Rejected result carrying the untouched state.
func (g *RummyGame) rejected(forSeat uuid.UUID, reason RejectReason, detail string) CommandResult {
	g.log.WithFields(logrus.Fields{"seat": forSeat, "reason": reason}).Debug(detail)
	return CommandResult{Applied: false, Reason: reason, Detail: detail, State: g.obfState(forSeat)}
}

// rejectedErr builds a Rejected result from an engine error.
func (g *RummyGame) rejectedErr(forSeat uuid.UUID, err error) CommandResult {
	return g.rejected(forSeat, reasonOf(err), err.Error())
}

// applied builds an Applied result with a fresh snapshot.
func (g *RummyGame) applied(forSeat uuid.UUID) CommandResult {
	return CommandResult{Applied: true, State: g.obfState(forSeat)}
}

// afterHandReduced broadcasts the end of the hand if the last action
// finished it. The caller must hold the lock.
func (g *RummyGame) afterHandReduced() {
	if !g.Engine.IsGameOver() {
		return
	}
	winner, points := g.Engine.FinalScore()
	ev := GameEvent{Type: EventGameEnd, Payload: map[string]interface{}{"score": points}}
	if winner >= 0 {
		ev.Seat = &EventSeat{ID: g.Seats[winner]}
	}
	g.log.WithFields(logrus.Fields{"winner": winner, "score": points}).Info("game over")
	g.emit(ev)
}

// DrawFromStock executes the stock draw for the given seat. The drawn card
// is revealed only to the drawer.
func (g *RummyGame) DrawFromStock(seat uuid.UUID) CommandResult {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	idx, ok := g.seatIndex(seat)
	if !ok {
		return g.rejected(seat, ReasonUnknownSeat, "seat is not part of this game")
	}

	stockBefore := g.Engine.StockLen
	if err := g.Engine.DrawFromStock(idx); err != nil {
		return g.rejectedErr(seat, err)
	}
	if g.Engine.StockLen >= stockBefore {
		// The stock grew before the pop: the discard pile was recycled.
		g.emit(GameEvent{Type: EventStockRecycled})
	}

	hand := g.Engine.HandSlice(idx)
	drawn := g.obfCard(hand[len(hand)-1], true)
	g.emit(GameEvent{Type: EventPlayerDrawStock, Seat: &EventSeat{ID: seat}})
	g.emitTo(seat, GameEvent{Type: EventPrivateDrawCard, Seat: &EventSeat{ID: seat}, Card: &drawn})
	return g.applied(seat)
}

// DrawFromDiscard executes the discard-pile draw. The taken card is public.
func (g *RummyGame) DrawFromDiscard(seat uuid.UUID) CommandResult {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	idx, ok := g.seatIndex(seat)
	if !ok {
		return g.rejected(seat, ReasonUnknownSeat, "seat is not part of this game")
	}

	if err := g.Engine.DrawFromDiscard(idx); err != nil {
		return g.rejectedErr(seat, err)
	}

	hand := g.Engine.HandSlice(idx)
	taken := g.obfCard(hand[len(hand)-1], true)
	g.emit(GameEvent{Type: EventPlayerDrawDiscard, Seat: &EventSeat{ID: seat}, Card: &taken})
	return g.applied(seat)
}

// FormMeld lays the selected cards (by identifier) as a new meld.
func (g *RummyGame) FormMeld(seat uuid.UUID, cardIDs []uuid.UUID) CommandResult {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	idx, ok := g.seatIndex(seat)
	if !ok {
		return g.rejected(seat, ReasonUnknownSeat, "seat is not part of this game")
	}

	indices := make([]uint8, 0, len(cardIDs))
	for _, id := range cardIDs {
		card, ok := g.cardByID(id)
		if !ok {
			return g.rejected(seat, ReasonUnknownCard, "unknown card identifier")
		}
		hi, ok := g.handIndexOf(idx, card)
		if !ok {
			return g.rejected(seat, ReasonUnknownCard, "card is not in this seat's hand")
		}
		indices = append(indices, hi)
	}

	if err := g.Engine.FormMeld(idx, indices); err != nil {
		return g.rejectedErr(seat, err)
	}

	meldIdx := g.Engine.NumMelds - 1
	g.meldIDs[meldIdx] = uuid.New()
	st := g.obfState(seat)
	g.emit(GameEvent{Type: EventPlayerMeld, Seat: &EventSeat{ID: seat}, Meld: &st.Melds[meldIdx]})
	g.afterHandReduced()
	return CommandResult{Applied: true, State: st}
}

// LayOff moves one hand card (by identifier) onto the identified meld.
func (g *RummyGame) LayOff(seat uuid.UUID, cardID, meldID uuid.UUID) CommandResult {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	idx, ok := g.seatIndex(seat)
	if !ok {
		return g.rejected(seat, ReasonUnknownSeat, "seat is not part of this game")
	}
	card, ok := g.cardByID(cardID)
	if !ok {
		return g.rejected(seat, ReasonUnknownCard, "unknown card identifier")
	}
	cardIdx, ok := g.handIndexOf(idx, card)
	if !ok {
		return g.rejected(seat, ReasonUnknownCard, "card is not in this seat's hand")
	}
	meldIdx, ok := g.meldIndexOf(meldID)
	if !ok {
		return g.rejected(seat, ReasonUnknownMeld, "unknown meld identifier")
	}

	if err := g.Engine.LayOff(idx, cardIdx, meldIdx); err != nil {
		return g.rejectedErr(seat, err)
	}

	laid := g.obfCard(card, true)
	st := g.obfState(seat)
	g.emit(GameEvent{Type: EventPlayerLayOff, Seat: &EventSeat{ID: seat}, Card: &laid, Meld: &st.Melds[meldIdx]})
	g.afterHandReduced()
	return CommandResult{Applied: true, State: st}
}

// Discard plays the identified card to the discard pile, ending the turn.
func (g *RummyGame) Discard(seat uuid.UUID, cardID uuid.UUID) CommandResult {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	idx, ok := g.seatIndex(seat)
	if !ok {
		return g.rejected(seat, ReasonUnknownSeat, "seat is not part of this game")
	}
	card, ok := g.cardByID(cardID)
	if !ok {
		return g.rejected(seat, ReasonUnknownCard, "unknown card identifier")
	}
	cardIdx, ok := g.handIndexOf(idx, card)
	if !ok {
		return g.rejected(seat, ReasonUnknownCard, "card is not in this seat's hand")
	}

	if err := g.Engine.Discard(idx, cardIdx); err != nil {
		return g.rejectedErr(seat, err)
	}

	dropped := g.obfCard(card, true)
	g.emit(GameEvent{Type: EventPlayerDiscard, Seat: &EventSeat{ID: seat}, Card: &dropped})
	if g.Engine.IsGameOver() {
		g.afterHandReduced()
	} else {
		g.emit(GameEvent{Type: EventPlayerTurn, Seat: &EventSeat{ID: g.Seats[g.Engine.CurrentPlayer]}})
	}
	return g.applied(seat)
}

// ReorderHand moves the identified card to a new display position in the
// caller's own hand. Always applied regardless of phase.
func (g *RummyGame) ReorderHand(seat uuid.UUID, cardID uuid.UUID, to int) CommandResult {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	idx, ok := g.seatIndex(seat)
	if !ok {
		return g.rejected(seat, ReasonUnknownSeat, "seat is not part of this game")
	}
	card, ok := g.cardByID(cardID)
	if !ok {
		return g.rejected(seat, ReasonUnknownCard, "unknown card identifier")
	}
	from, ok := g.handIndexOf(idx, card)
	if !ok {
		return g.rejected(seat, ReasonUnknownCard, "card is not in this seat's hand")
	}
	if to < 0 || !g.Engine.MoveHandCard(idx, from, uint8(to)) {
		return g.rejected(seat, ReasonIllegalAction, "reorder target out of range")
	}
	return g.applied(seat)
}

// RequestAITurn runs the scripted opponent's complete turn synchronously,
// broadcasting the same events the seat commands emit for each step so
// observers can narrate the turn. The presentation layer calls this once
// the AI seat becomes current; any pacing between the human's discard and
// this call is the caller's choice.
func (g *RummyGame) RequestAITurn() CommandResult {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	idx, _ := g.seatIndex(g.AISeat)
	seat := &EventSeat{ID: g.AISeat}

	steps, err := g.Engine.PlayAITurn(idx, g.Weights)
	if err != nil {
		return g.rejectedErr(g.AISeat, err)
	}

	for _, step := range steps {
		switch step.Action {
		case engine.ActionDrawStock:
			if step.Recycled {
				g.emit(GameEvent{Type: EventStockRecycled})
			}
			g.emit(GameEvent{Type: EventPlayerDrawStock, Seat: seat})
			drawn := g.obfCard(step.Card, true)
			g.emitTo(g.AISeat, GameEvent{Type: EventPrivateDrawCard, Seat: seat, Card: &drawn})
		case engine.ActionDrawDiscard:
			taken := g.obfCard(step.Card, true)
			g.emit(GameEvent{Type: EventPlayerDrawDiscard, Seat: seat, Card: &taken})
		case engine.ActionFormMeld:
			g.meldIDs[step.MeldIdx] = uuid.New()
			meld := g.obfMeld(step.MeldIdx)
			g.emit(GameEvent{Type: EventPlayerMeld, Seat: seat, Meld: &meld})
		case engine.ActionLayOff:
			laid := g.obfCard(step.Card, true)
			meld := g.obfMeld(step.MeldIdx)
			g.emit(GameEvent{Type: EventPlayerLayOff, Seat: seat, Card: &laid, Meld: &meld})
		case engine.ActionDiscard:
			dropped := g.obfCard(step.Card, true)
			g.emit(GameEvent{Type: EventPlayerDiscard, Seat: seat, Card: &dropped})
		}
	}

	st := g.obfState(g.AISeat)
	g.log.WithFields(logrus.Fields{
		"steps": len(steps),
		"turn":  g.Engine.TurnNumber,
	}).Debug("ai turn complete")

	if g.Engine.IsGameOver() {
		g.afterHandReduced()
	} else {
		g.emit(GameEvent{Type: EventPlayerTurn, Seat: &EventSeat{ID: g.Seats[g.Engine.CurrentPlayer]}})
	}
	return CommandResult{Applied: true, State: st}
}

// ValidMeld reports whether the identified cards form a meld and of which
// kind ("sequence" or "group"). Pure query, no state change.
func (g *RummyGame) ValidMeld(cardIDs []uuid.UUID) (kind string, ok bool) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	cards := make([]engine.Card, 0, len(cardIDs))
	for _, id := range cardIDs {
		c, found := g.cardByID(id)
		if !found {
			return "", false
		}
		cards = append(cards, c)
	}
	k, valid := engine.MeldKindOf(cards)
	if !valid {
		return "", false
	}
	return k.String(), true
}

// LayOffTargets returns the identifiers of every table meld that accepts
// the identified card. Pure query, no state change.
func (g *RummyGame) LayOffTargets(cardID uuid.UUID) []uuid.UUID {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	card, ok := g.cardByID(cardID)
	if !ok {
		return nil
	}
	targets := g.Engine.LayOffTargets(card)
	out := make([]uuid.UUID, 0, len(targets))
	for _, t := range targets {
		out = append(out, g.meldIDs[t])
	}
	return out
}
