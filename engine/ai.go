package engine

import "errors"

// AIWeights is the scripted opponent's tunable weight table. Behavior is
// documented and adjustable here without touching the policy control flow.
type AIWeights struct {
	// Draw-source decision.
	MeldCompletion   int // discard top completes a meld with two hand cards
	LayOffValue      int // discard top fits an existing table meld
	DrawRankMatch    int // per hand card sharing the top card's rank
	DrawSuitAdjacent int // per same-suit hand card at rank-distance 1
	DrawThreshold    int // minimum usefulness to prefer the discard pile

	// Discard retention.
	KeepRankMatch    int // per other hand card of equal rank
	KeepSuitAdjacent int // per other same-suit card at rank-distance 1
	KeepSuitGap      int // per other same-suit card at rank-distance 2
}

// DefaultAIWeights returns the standard opponent tuning.
func DefaultAIWeights() AIWeights {
	return AIWeights{
		MeldCompletion:   100,
		LayOffValue:      50,
		DrawRankMatch:    10,
		DrawSuitAdjacent: 10,
		DrawThreshold:    10,
		KeepRankMatch:    5,
		KeepSuitAdjacent: 5,
		KeepSuitGap:      2,
	}
}

// retentionValueScale spaces retention scores so that the point-value
// penalty can only break ties: among equally useless cards the higher-value
// one is discarded first, but a single retention unit always outweighs the
// largest card value (10).
const retentionValueScale = 11

// Usefulness estimates how much the candidate card improves the player's
// hand toward a meld or lay-off. The policy is deterministic: ties resolve
// first-index-wins through plain iteration order.
func Usefulness(g *GameState, player uint8, card Card, w AIWeights) int {
	hand := g.HandSlice(player)

	// A card completing a valid meld with any two hand cards dominates.
	for i := 0; i < len(hand); i++ {
		for j := i + 1; j < len(hand); j++ {
			trio := [3]Card{card, hand[i], hand[j]}
			if IsValidMeld(trio[:]) {
				return w.MeldCompletion
			}
		}
	}

	// Next best: the card extends a meld already on the table.
	for p := uint8(0); p < NumPlayers; p++ {
		for i := uint8(0); i < g.NumMelds; i++ {
			m := &g.Melds[i]
			if m.Owner == p && CanLayOff(card, m.CardSlice()) {
				return w.LayOffValue
			}
		}
	}

	score := 0
	for _, h := range hand {
		if h.Rank() == card.Rank() {
			score += w.DrawRankMatch
		}
		if h.Suit() == card.Suit() && rankDistance(h, card) == 1 {
			score += w.DrawSuitAdjacent
		}
	}
	return score
}

// retentionScore rates how much the hand card at idx is worth keeping.
// Lower is more discardable.
func retentionScore(g *GameState, player uint8, idx int, w AIWeights) int {
	hand := g.HandSlice(player)
	card := hand[idx]
	score := 0
	for i, h := range hand {
		if i == idx {
			continue
		}
		if h.Rank() == card.Rank() {
			score += w.KeepRankMatch
		}
		if h.Suit() == card.Suit() {
			switch rankDistance(h, card) {
			case 1:
				score += w.KeepSuitAdjacent
			case 2:
				score += w.KeepSuitGap
			}
		}
	}
	return score*retentionValueScale - int(card.Value())
}

// AIStep records one applied action of a scripted turn. PlayAITurn returns
// the steps in order so a presentation layer can narrate the whole turn.
type AIStep struct {
	Action   Action
	Card     Card  // drawn, laid-off, or discarded card; EmptyCard for melds
	MeldIdx  uint8 // table index for ActionFormMeld and ActionLayOff
	Recycled bool  // the discard pile was recycled into the stock before this draw
}

// PlayAITurn executes one complete scripted turn for the given player:
// draw-source decision, a meld-then-lay-off loop, and the final discard.
// It resolves synchronously; any pacing belongs to the presentation layer.
func (g *GameState) PlayAITurn(player uint8, w AIWeights) ([]AIStep, error) {
	steps := make([]AIStep, 0, 4)

	draw, err := g.aiDraw(player, w)
	if err != nil {
		return nil, err
	}
	steps = append(steps, draw)

	for g.Phase == PhaseDiscard {
		if meldIdx, ok := g.aiFormMeld(player); ok {
			steps = append(steps, AIStep{Action: ActionFormMeld, Card: EmptyCard, MeldIdx: meldIdx})
			continue
		}
		if card, meldIdx, ok := g.aiLayOff(player); ok {
			steps = append(steps, AIStep{Action: ActionLayOff, Card: card, MeldIdx: meldIdx})
			continue
		}
		break
	}
	if g.Phase == PhaseGameOver {
		return steps, nil // went out while melding or laying off
	}

	idx := g.aiDiscardIndex(player, w)
	card := g.Players[player].Hand[idx]
	if err := g.Discard(player, uint8(idx)); err != nil {
		return steps, err
	}
	return append(steps, AIStep{Action: ActionDiscard, Card: card}), nil
}

// aiDraw picks the draw source: the discard pile when its top card scores
// at or above the threshold, otherwise the stock, falling back to the other
// source when the chosen one is empty.
func (g *GameState) aiDraw(player uint8, w AIWeights) (AIStep, error) {
	fromDiscard := g.DiscardLen > 0 && Usefulness(g, player, g.DiscardTop(), w) >= w.DrawThreshold
	stockBefore := g.StockLen

	act := ActionDrawStock
	var err error
	if fromDiscard {
		act = ActionDrawDiscard
		err = g.DrawFromDiscard(player)
		if errors.Is(err, ErrEmptySource) {
			act = ActionDrawStock
			err = g.DrawFromStock(player)
		}
	} else {
		err = g.DrawFromStock(player)
		if errors.Is(err, ErrEmptySource) {
			act = ActionDrawDiscard
			err = g.DrawFromDiscard(player)
		}
	}
	if err != nil {
		return AIStep{}, err
	}

	hand := g.HandSlice(player)
	return AIStep{
		Action: act,
		Card:   hand[len(hand)-1],
		// A stock that did not shrink across a successful draw was recycled.
		Recycled: act == ActionDrawStock && g.StockLen >= stockBefore,
	}, nil
}

// aiFormMeld lays down the first valid 3-card combination found in the
// hand, searching in index order with no optimization over alternatives.
// Returns the new meld's table index.
func (g *GameState) aiFormMeld(player uint8) (uint8, bool) {
	hand := g.HandSlice(player)
	for i := 0; i < len(hand)-2; i++ {
		for j := i + 1; j < len(hand)-1; j++ {
			for k := j + 1; k < len(hand); k++ {
				trio := [3]Card{hand[i], hand[j], hand[k]}
				if IsValidMeld(trio[:]) {
					_ = g.FormMeld(player, []uint8{uint8(i), uint8(j), uint8(k)})
					return g.NumMelds - 1, true
				}
			}
		}
	}
	return 0, false
}

// aiLayOff plays the first hand card that fits any table meld, scanning
// melds in player-then-meld order. Returns the card and its target meld.
func (g *GameState) aiLayOff(player uint8) (Card, uint8, bool) {
	hand := g.HandSlice(player)
	for i := 0; i < len(hand); i++ {
		targets := g.LayOffTargets(hand[i])
		if len(targets) > 0 {
			card := hand[i]
			_ = g.LayOff(player, uint8(i), targets[0])
			return card, targets[0], true
		}
	}
	return EmptyCard, 0, false
}

// aiDiscardIndex picks the hand card with the lowest retention score,
// first index winning ties.
func (g *GameState) aiDiscardIndex(player uint8, w AIWeights) int {
	best := 0
	bestScore := retentionScore(g, player, 0, w)
	for i := 1; i < len(g.HandSlice(player)); i++ {
		if s := retentionScore(g, player, i, w); s < bestScore {
			best, bestScore = i, s
		}
	}
	return best
}
