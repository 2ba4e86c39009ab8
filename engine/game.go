// Package engine implements a two-player draw-and-discard rummy engine.
//
// The package is the pure rules core: meld validation, the turn state
// machine, the scripted opponent policy, and end-of-hand scoring. It is
// strictly single-threaded and allocation-light; GameState is a flat value
// type suitable for cheap snapshot/restore. Presentation (rendering, input,
// pacing) lives entirely outside this package and talks to it through the
// command methods.
package engine

const (
	NumPlayers  = 2
	DeckSize    = 52
	MaxHandSize = 14 // deal size + one drawn card, with headroom for short deals
	MaxMeldLen  = 13 // a full same-suit run
	MaxMelds    = 17 // 52 cards / 3-card minimum meld
)

// PlayerState holds one player's hand. Hand order is display-only; the
// rules never depend on it.
type PlayerState struct {
	Hand    [MaxHandSize]Card
	HandLen uint8
}

// GameState holds the complete, self-contained state of a rummy hand.
// It is a flat value type (no pointers, no slices): copying it copies the
// whole game, which is what Save/Restore and the AI search rely on.
type GameState struct {
	Players       [NumPlayers]PlayerState
	Stock         [DeckSize]Card
	StockLen      uint8
	DiscardPile   [DeckSize]Card
	DiscardLen    uint8
	Melds         [MaxMelds]Meld
	NumMelds      uint8
	CurrentPlayer uint8
	Phase         GamePhase
	Flags         uint8
	TurnNumber    uint16
	Winner        int8 // player index, or -1 while undecided / drawn hand
	RNG           uint64
	Rules         HouseRules
}

// ---------------------------------------------------------------------------
// Flags bitfield
// ---------------------------------------------------------------------------

const (
	FlagHasDrawn    uint8 = 1 << 0 // set on the single successful draw of a Draw phase
	FlagGameStarted uint8 = 1 << 1
)

func (g *GameState) HasDrawnThisTurn() bool { return g.Flags&FlagHasDrawn != 0 }
func (g *GameState) IsGameOver() bool       { return g.Phase == PhaseGameOver }

// ---------------------------------------------------------------------------
// xorshift64 RNG — inline, no interface
// ---------------------------------------------------------------------------

func (g *GameState) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

// randN returns a random number in [0, n).
func (g *GameState) randN(n uint64) uint64 {
	return g.nextRand() % n
}

// ---------------------------------------------------------------------------
// NewGame and Deal
// ---------------------------------------------------------------------------

// NewGame initializes a new GameState with the given seed and rules.
// The deck is built in suit/rank order but not yet shuffled or dealt.
func NewGame(seed uint64, rules HouseRules) GameState {
	var g GameState
	g.RNG = seed
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}
	g.Rules = rules
	g.Winner = -1

	idx := 0
	for suit := uint8(0); suit <= SuitHearts; suit++ {
		for rank := uint8(0); rank <= RankKing; rank++ {
			g.Stock[idx] = NewCard(suit, rank)
			idx++
		}
	}
	g.StockLen = DeckSize

	return g
}

// Deal shuffles the stock and distributes hands, alternating one card per
// player, then flips the top stock card to start the discard pile and picks
// a random starting player.
func (g *GameState) Deal() {
	// Fisher-Yates shuffle.
	for i := int(g.StockLen) - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		g.Stock[i], g.Stock[j] = g.Stock[j], g.Stock[i]
	}

	for c := uint8(0); c < g.Rules.cardsPerPlayer(); c++ {
		for p := uint8(0); p < NumPlayers; p++ {
			g.StockLen--
			g.Players[p].Hand[c] = g.Stock[g.StockLen]
			g.Players[p].HandLen++
		}
	}

	g.StockLen--
	g.DiscardPile[0] = g.Stock[g.StockLen]
	g.DiscardLen = 1

	g.CurrentPlayer = uint8(g.randN(NumPlayers))
	g.Phase = PhaseDraw
	g.Flags = FlagGameStarted
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// DiscardTop returns the top card of the discard pile, or EmptyCard if empty.
func (g *GameState) DiscardTop() Card {
	if g.DiscardLen == 0 {
		return EmptyCard
	}
	return g.DiscardPile[g.DiscardLen-1]
}

// OpponentOf returns the player index of the opponent.
func (g *GameState) OpponentOf(player uint8) uint8 {
	return 1 - player
}

// HandSlice returns the live hand of the given player. The slice aliases
// the player's backing array; callers must not append to it.
func (g *GameState) HandSlice(player uint8) []Card {
	return g.Players[player].Hand[:g.Players[player].HandLen]
}

// MeldAt returns the meld at the given table index, or nil if out of range.
func (g *GameState) MeldAt(idx uint8) *Meld {
	if idx >= g.NumMelds {
		return nil
	}
	return &g.Melds[idx]
}

// LayOffTargets returns the table indices of every meld that accepts the
// card, in player-then-meld order (owner 0's melds first).
func (g *GameState) LayOffTargets(card Card) []uint8 {
	var out []uint8
	for p := uint8(0); p < NumPlayers; p++ {
		for i := uint8(0); i < g.NumMelds; i++ {
			m := &g.Melds[i]
			if m.Owner != p {
				continue
			}
			if CanLayOff(card, m.CardSlice()) {
				out = append(out, i)
			}
		}
	}
	return out
}

// CardCount returns the total number of cards across stock, discard, hands
// and table melds. It is 52 for the lifetime of a dealt game.
func (g *GameState) CardCount() int {
	n := int(g.StockLen) + int(g.DiscardLen)
	for p := uint8(0); p < NumPlayers; p++ {
		n += int(g.Players[p].HandLen)
	}
	for i := uint8(0); i < g.NumMelds; i++ {
		n += int(g.Melds[i].Len)
	}
	return n
}

// MoveHandCard reorders the player's own hand, moving the card at from to
// position to. Ordering is display-only, so this is legal in any phase and
// for either player, and never touches rules state.
func (g *GameState) MoveHandCard(player, from, to uint8) bool {
	if player >= NumPlayers {
		return false
	}
	handLen := g.Players[player].HandLen
	if from >= handLen || to >= handLen {
		return false
	}
	hand := g.Players[player].Hand[:handLen]
	c := hand[from]
	if from < to {
		copy(hand[from:], hand[from+1:to+1])
	} else {
		copy(hand[to+1:], hand[to:from])
	}
	hand[to] = c
	return true
}

// ---------------------------------------------------------------------------
// Hand mutation helpers
// ---------------------------------------------------------------------------

// addToHand appends a card to the player's hand.
func (g *GameState) addToHand(player uint8, c Card) {
	p := &g.Players[player]
	p.Hand[p.HandLen] = c
	p.HandLen++
}

// removeFromHand removes and returns the card at idx, preserving the
// relative order of the remaining cards.
func (g *GameState) removeFromHand(player, idx uint8) Card {
	p := &g.Players[player]
	c := p.Hand[idx]
	copy(p.Hand[idx:p.HandLen-1], p.Hand[idx+1:p.HandLen])
	p.HandLen--
	return c
}

// ---------------------------------------------------------------------------
// Snapshot Undo (Save / Restore)
// ---------------------------------------------------------------------------

// Snapshot is a complete value-copy of GameState.
// No heap allocation, saving and restoring are plain struct copies.
type Snapshot GameState

// Save returns a snapshot of the current game state.
func (g *GameState) Save() Snapshot { return Snapshot(*g) }

// Restore replaces the game state with the given snapshot.
func (g *GameState) Restore(s Snapshot) { *g = GameState(s) }
