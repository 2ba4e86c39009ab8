package engine

import "testing"

// TestNewGameDeck verifies NewGame builds the 52 distinct standard cards.
func TestNewGameDeck(t *testing.T) {
	g := NewGame(42, DefaultHouseRules())

	if g.StockLen != DeckSize {
		t.Fatalf("StockLen = %d, want %d", g.StockLen, DeckSize)
	}

	seen := make(map[Card]bool)
	for i := uint8(0); i < g.StockLen; i++ {
		c := g.Stock[i]
		if c == EmptyCard {
			t.Errorf("Stock[%d] is EmptyCard", i)
			continue
		}
		if c.Suit() > SuitHearts || c.Rank() > RankKing {
			t.Errorf("Stock[%d] malformed: suit=%d rank=%d", i, c.Suit(), c.Rank())
		}
		if seen[c] {
			t.Errorf("duplicate card at index %d: %v", i, c)
		}
		seen[c] = true
	}
	if len(seen) != DeckSize {
		t.Errorf("got %d unique cards, want %d", len(seen), DeckSize)
	}
}

// TestShuffleIsPermutation verifies Deal leaves the 52-card multiset intact
// and the conservation invariant holding.
func TestShuffleIsPermutation(t *testing.T) {
	for _, seed := range []uint64{1, 2, 42, 99, 123456789} {
		g := NewGame(seed, DefaultHouseRules())
		g.Deal()

		if got := g.CardCount(); got != DeckSize {
			t.Errorf("seed %d: CardCount = %d, want %d", seed, got, DeckSize)
		}

		seen := make(map[Card]bool)
		collect := func(cs []Card) {
			for _, c := range cs {
				if seen[c] {
					t.Errorf("seed %d: card %v appears twice", seed, c)
				}
				seen[c] = true
			}
		}
		collect(g.Stock[:g.StockLen])
		collect(g.DiscardPile[:g.DiscardLen])
		collect(g.HandSlice(0))
		collect(g.HandSlice(1))
		if len(seen) != DeckSize {
			t.Errorf("seed %d: %d unique cards after deal, want %d", seed, len(seen), DeckSize)
		}
	}
}

// TestDealCardCounts verifies hand, stock and discard sizes after Deal.
func TestDealCardCounts(t *testing.T) {
	hr := DefaultHouseRules() // CardsPerPlayer = 10
	g := NewGame(42, hr)
	g.Deal()

	for p := uint8(0); p < NumPlayers; p++ {
		if g.Players[p].HandLen != hr.CardsPerPlayer {
			t.Errorf("player %d HandLen = %d, want %d", p, g.Players[p].HandLen, hr.CardsPerPlayer)
		}
	}
	wantStock := uint8(DeckSize) - hr.CardsPerPlayer*NumPlayers - 1
	if g.StockLen != wantStock {
		t.Errorf("StockLen = %d, want %d", g.StockLen, wantStock)
	}
	if g.DiscardLen != 1 {
		t.Errorf("DiscardLen = %d, want 1", g.DiscardLen)
	}
	if g.Phase != PhaseDraw {
		t.Errorf("Phase = %v, want draw", g.Phase)
	}
	if g.CurrentPlayer >= NumPlayers {
		t.Errorf("CurrentPlayer = %d out of range", g.CurrentPlayer)
	}
}

// TestDealDeterministic verifies that the same seed produces identical deals.
func TestDealDeterministic(t *testing.T) {
	g1 := NewGame(99, DefaultHouseRules())
	g1.Deal()
	g2 := NewGame(99, DefaultHouseRules())
	g2.Deal()

	if g1.CurrentPlayer != g2.CurrentPlayer {
		t.Errorf("CurrentPlayer: %d vs %d", g1.CurrentPlayer, g2.CurrentPlayer)
	}
	if g1.DiscardTop() != g2.DiscardTop() {
		t.Errorf("DiscardTop: %v vs %v", g1.DiscardTop(), g2.DiscardTop())
	}
	for p := uint8(0); p < NumPlayers; p++ {
		for c := uint8(0); c < g1.Players[p].HandLen; c++ {
			if g1.Players[p].Hand[c] != g2.Players[p].Hand[c] {
				t.Errorf("player %d card %d: %v vs %v", p, c, g1.Players[p].Hand[c], g2.Players[p].Hand[c])
			}
		}
	}
}

// TestDealDifferentSeeds verifies that different seeds produce different hands.
func TestDealDifferentSeeds(t *testing.T) {
	g1 := NewGame(1, DefaultHouseRules())
	g1.Deal()
	g2 := NewGame(2, DefaultHouseRules())
	g2.Deal()

	allSame := true
	for p := uint8(0); p < NumPlayers; p++ {
		for c := uint8(0); c < g1.Players[p].HandLen; c++ {
			if g1.Players[p].Hand[c] != g2.Players[p].Hand[c] {
				allSame = false
			}
		}
	}
	if allSame {
		t.Error("seeds 1 and 2 produced identical hands (extremely unlikely if RNG is working)")
	}
}

// TestNewGameSeedZero verifies that seed 0 is corrected to 1.
func TestNewGameSeedZero(t *testing.T) {
	g := NewGame(0, DefaultHouseRules())
	if g.RNG != 1 {
		t.Errorf("RNG = %d, want 1 for seed=0", g.RNG)
	}
}

// TestDiscardTop verifies DiscardTop before and after Deal.
func TestDiscardTop(t *testing.T) {
	g := NewGame(42, DefaultHouseRules())
	if g.DiscardTop() != EmptyCard {
		t.Errorf("empty DiscardTop() = %v, want EmptyCard", g.DiscardTop())
	}
	g.Deal()
	if g.DiscardTop() == EmptyCard {
		t.Error("DiscardTop() after Deal returned EmptyCard")
	}
}

// TestOpponentOf verifies the two-player opponent mapping.
func TestOpponentOf(t *testing.T) {
	g := NewGame(1, DefaultHouseRules())
	if g.OpponentOf(0) != 1 || g.OpponentOf(1) != 0 {
		t.Error("OpponentOf mapping broken")
	}
}

// TestMoveHandCard verifies display reordering keeps the hand a permutation
// and rejects out-of-range moves.
func TestMoveHandCard(t *testing.T) {
	g := NewGame(42, DefaultHouseRules())
	g.Deal()

	before := make([]Card, 0, 10)
	before = append(before, g.HandSlice(0)...)

	if !g.MoveHandCard(0, 0, 4) {
		t.Fatal("MoveHandCard(0,0,4) rejected")
	}
	hand := g.HandSlice(0)
	if hand[4] != before[0] {
		t.Errorf("moved card landed at %v, want %v", hand[4], before[0])
	}
	if hand[0] != before[1] {
		t.Errorf("hand head = %v, want shifted %v", hand[0], before[1])
	}

	if !g.MoveHandCard(0, 4, 0) {
		t.Fatal("MoveHandCard(0,4,0) rejected")
	}
	for i, c := range g.HandSlice(0) {
		if c != before[i] {
			t.Fatalf("round-trip broke hand order at %d: %v vs %v", i, c, before[i])
		}
	}

	if g.MoveHandCard(0, 50, 0) {
		t.Error("out-of-range MoveHandCard accepted")
	}
	if g.MoveHandCard(2, 0, 1) {
		t.Error("bad player index accepted")
	}
}

// TestSnapshotSaveRestore verifies Save/Restore round-trips the game state.
func TestSnapshotSaveRestore(t *testing.T) {
	g := NewGame(42, DefaultHouseRules())
	g.Deal()

	snap := g.Save()
	origPlayer := g.CurrentPlayer
	origStock := g.StockLen

	g.CurrentPlayer = 1 - g.CurrentPlayer
	g.StockLen = 0
	g.Phase = PhaseGameOver
	g.Winner = 0

	g.Restore(snap)
	if g.CurrentPlayer != origPlayer || g.StockLen != origStock {
		t.Error("Restore did not recover mutated fields")
	}
	if g.Phase != PhaseDraw || g.Winner != -1 {
		t.Error("Restore did not recover phase/winner")
	}
}
