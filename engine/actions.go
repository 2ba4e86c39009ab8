package engine

import "fmt"

// Action enumerates the command kinds gated by the phase table.
type Action uint8

const (
	ActionDrawStock Action = iota
	ActionDrawDiscard
	ActionFormMeld
	ActionLayOff
	ActionDiscard
	NumActionKinds
)

// phaseLegal is the single phase-transition gate: phaseLegal[phase][action]
// is true when the action is open to the current player in that phase.
// Every command checks here; no per-handler phase logic.
var phaseLegal = [PhaseGameOver + 1][NumActionKinds]bool{
	PhaseDraw: {
		ActionDrawStock:   true,
		ActionDrawDiscard: true,
	},
	PhaseDiscard: {
		ActionFormMeld: true,
		ActionLayOff:   true,
		ActionDiscard:  true,
	},
	PhaseGameOver: {},
}

// LegalActions returns the action kinds currently open to the current
// player, in declaration order.
func (g *GameState) LegalActions() []Action {
	var out []Action
	for a := Action(0); a < NumActionKinds; a++ {
		if phaseLegal[g.Phase][a] {
			out = append(out, a)
		}
	}
	return out
}

// gate rejects the action unless it is legal for this player in this phase.
// A draw attempted after the turn's draw reports the more specific
// ErrAlreadyDrawnThisTurn instead of ErrWrongPhase.
func (g *GameState) gate(player uint8, act Action) error {
	if g.Phase == PhaseGameOver {
		return ErrWrongPhase
	}
	if player >= NumPlayers || player != g.CurrentPlayer {
		return ErrNotCurrentPlayer
	}
	if !phaseLegal[g.Phase][act] {
		if (act == ActionDrawStock || act == ActionDrawDiscard) && g.HasDrawnThisTurn() {
			return ErrAlreadyDrawnThisTurn
		}
		return ErrWrongPhase
	}
	return nil
}

// DrawFromStock draws the top stock card into the player's hand and moves
// the game to the Discard phase. An empty stock is first replenished from
// the discard pile when house rules allow.
func (g *GameState) DrawFromStock(player uint8) error {
	if err := g.gate(player, ActionDrawStock); err != nil {
		return err
	}
	if g.StockLen == 0 && g.Rules.ReshuffleOnExhaustion {
		g.recycleDiscard()
	}
	if g.StockLen == 0 {
		if g.DiscardLen == 0 {
			return ErrDeckExhausted
		}
		return ErrEmptySource
	}

	g.StockLen--
	g.addToHand(player, g.Stock[g.StockLen])
	g.Flags |= FlagHasDrawn
	g.Phase = PhaseDiscard
	return nil
}

// DrawFromDiscard draws the top discard card into the player's hand and
// moves the game to the Discard phase.
func (g *GameState) DrawFromDiscard(player uint8) error {
	if err := g.gate(player, ActionDrawDiscard); err != nil {
		return err
	}
	if g.DiscardLen == 0 {
		if g.StockLen == 0 {
			return ErrDeckExhausted
		}
		return ErrEmptySource
	}

	g.DiscardLen--
	g.addToHand(player, g.DiscardPile[g.DiscardLen])
	g.Flags |= FlagHasDrawn
	g.Phase = PhaseDiscard
	return nil
}

// FormMeld moves the selected hand cards onto the table as a new meld owned
// by the player. A sequence is stored sorted ascending (ace low only when
// the run holds a two). Going out by melding ends the hand immediately.
func (g *GameState) FormMeld(player uint8, indices []uint8) error {
	if err := g.gate(player, ActionFormMeld); err != nil {
		return err
	}
	if len(indices) < 3 || len(indices) > MaxMeldLen {
		return ErrInvalidMeld
	}
	handLen := g.Players[player].HandLen
	var seen [MaxHandSize]bool
	var cards [MaxMeldLen]Card
	for i, idx := range indices {
		if idx >= handLen {
			return fmt.Errorf("%w: selection index %d exceeds hand size %d", ErrInvalidMeld, idx, handLen)
		}
		if seen[idx] {
			return fmt.Errorf("%w: selection repeats hand index %d", ErrInvalidMeld, idx)
		}
		seen[idx] = true
		cards[i] = g.Players[player].Hand[idx]
	}
	n := len(indices)

	kind, ok := MeldKindOf(cards[:n])
	if !ok {
		return ErrInvalidMeld
	}
	if g.NumMelds == MaxMelds {
		return ErrInvalidMeld // unreachable with a 52-card deck
	}

	m := &g.Melds[g.NumMelds]
	*m = Meld{Owner: player, Kind: kind, Len: uint8(n)}
	copy(m.Cards[:], cards[:n])
	if kind == MeldSequence {
		sortSequence(m.CardSlice())
	}
	g.NumMelds++

	// Remove the melded cards from the hand, highest index first.
	var order [MaxMeldLen]uint8
	copy(order[:], indices)
	insertionSortBytesDesc(order[:n])
	for _, idx := range order[:n] {
		g.removeFromHand(player, idx)
	}

	g.checkWentOut(player)
	return nil
}

func insertionSortBytesDesc(v []uint8) {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j] > v[j-1]; j-- {
			v[j], v[j-1] = v[j-1], v[j]
		}
	}
}

// LayOff moves one hand card onto an existing table meld (any player's).
// Going out by laying off ends the hand immediately.
func (g *GameState) LayOff(player uint8, cardIdx, meldIdx uint8) error {
	if err := g.gate(player, ActionLayOff); err != nil {
		return err
	}
	if cardIdx >= g.Players[player].HandLen {
		return fmt.Errorf("%w: index %d, hand size %d", ErrInvalidCardIndex, cardIdx, g.Players[player].HandLen)
	}
	if meldIdx >= g.NumMelds {
		return fmt.Errorf("%w: meld index %d of %d", ErrNoLayOffTarget, meldIdx, g.NumMelds)
	}

	m := &g.Melds[meldIdx]
	card := g.Players[player].Hand[cardIdx]
	if !CanLayOff(card, m.CardSlice()) {
		return ErrNoLayOffTarget
	}

	g.removeFromHand(player, cardIdx)
	m.Cards[m.Len] = card
	m.Len++
	if m.Kind == MeldSequence {
		sortSequence(m.CardSlice())
	}

	g.checkWentOut(player)
	return nil
}

// Discard moves one hand card to the top of the discard pile and passes the
// turn, or ends the hand when the discard empties the player's hand.
func (g *GameState) Discard(player uint8, cardIdx uint8) error {
	if err := g.gate(player, ActionDiscard); err != nil {
		return err
	}
	if cardIdx >= g.Players[player].HandLen {
		return fmt.Errorf("%w: index %d, hand size %d", ErrInvalidCardIndex, cardIdx, g.Players[player].HandLen)
	}

	card := g.removeFromHand(player, cardIdx)
	g.DiscardPile[g.DiscardLen] = card
	g.DiscardLen++

	if g.checkWentOut(player) {
		return nil
	}
	g.advanceTurn()
	return nil
}

// checkWentOut ends the hand when the player's hand has emptied. Checked
// after every hand-reducing action, not only at discard.
func (g *GameState) checkWentOut(player uint8) bool {
	if g.Players[player].HandLen != 0 {
		return false
	}
	g.Phase = PhaseGameOver
	g.Winner = int8(player)
	return true
}

// advanceTurn rotates to the next player and opens a fresh Draw phase.
func (g *GameState) advanceTurn() {
	g.TurnNumber++
	if g.Rules.MaxGameTurns > 0 && g.TurnNumber >= g.Rules.MaxGameTurns {
		g.Phase = PhaseGameOver
		return // Winner stays -1: drawn hand
	}
	g.CurrentPlayer = g.OpponentOf(g.CurrentPlayer)
	g.Phase = PhaseDraw
	g.Flags &^= FlagHasDrawn
}

// recycleDiscard moves all discard cards except the top back into the stock
// and shuffles them. No-op unless the discard pile holds at least two cards.
func (g *GameState) recycleDiscard() {
	if g.DiscardLen <= 1 {
		return
	}

	top := g.DiscardPile[g.DiscardLen-1]
	count := g.DiscardLen - 1
	for i := uint8(0); i < count; i++ {
		g.Stock[i] = g.DiscardPile[i]
	}
	g.StockLen = count

	g.DiscardPile[0] = top
	g.DiscardLen = 1

	for i := int(g.StockLen) - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		g.Stock[i], g.Stock[j] = g.Stock[j], g.Stock[i]
	}
}
