package engine

// MeldKind tags a table meld as a same-suit run or a same-rank set.
type MeldKind uint8

const (
	MeldSequence MeldKind = 0
	MeldGroup    MeldKind = 1
)

func (k MeldKind) String() string {
	if k == MeldGroup {
		return "group"
	}
	return "sequence"
}

// Meld is a validated set of cards laid on the shared table. It belongs to
// the player who formed it but any player may lay off on it.
type Meld struct {
	Cards [MaxMeldLen]Card
	Len   uint8
	Owner uint8
	Kind  MeldKind
}

// CardSlice returns the live cards of the meld. The slice aliases the meld's
// backing array; callers must not append to it.
func (m *Meld) CardSlice() []Card { return m.Cards[:m.Len] }

// IsGroup reports whether cards form a valid group: 3–4 cards of equal rank.
// Suits are distinct by construction since the deck holds one card per
// suit/rank pair.
func IsGroup(cards []Card) bool {
	if len(cards) < 3 || len(cards) > 4 {
		return false
	}
	rank := cards[0].Rank()
	for _, c := range cards[1:] {
		if c.Rank() != rank {
			return false
		}
	}
	return true
}

// IsSequence reports whether cards form a valid run: at least 3 cards of one
// suit whose ranks are consecutive. The ace may count as 1 (A-2-3) or as 14
// (Q-K-A), but one meld never uses both mappings, so a run straddling
// K-A-2 is invalid.
func IsSequence(cards []Card) bool {
	if len(cards) < 3 || len(cards) > MaxMeldLen {
		return false
	}
	suit := cards[0].Suit()
	for _, c := range cards[1:] {
		if c.Suit() != suit {
			return false
		}
	}
	return isRun(cards, seqLowValue) || isRun(cards, seqHighValue)
}

// isRun reports whether the cards' positions under the given ace mapping
// form a contiguous ascending run. Zero heap allocation.
func isRun(cards []Card, val func(Card) int) bool {
	var buf [MaxMeldLen]int
	n := len(cards)
	for i, c := range cards {
		buf[i] = val(c)
	}
	insertionSortInts(buf[:n])
	for i := 1; i < n; i++ {
		if buf[i] != buf[i-1]+1 {
			return false
		}
	}
	return true
}

func insertionSortInts(v []int) {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j] < v[j-1]; j-- {
			v[j], v[j-1] = v[j-1], v[j]
		}
	}
}

// IsValidMeld reports whether cards form either a sequence or a group.
func IsValidMeld(cards []Card) bool {
	return IsSequence(cards) || IsGroup(cards)
}

// MeldKindOf classifies a selection, preferring the sequence reading.
// ok is false when the selection is not a valid meld.
func MeldKindOf(cards []Card) (kind MeldKind, ok bool) {
	if IsSequence(cards) {
		return MeldSequence, true
	}
	if IsGroup(cards) {
		return MeldGroup, true
	}
	return 0, false
}

// CanLayOff reports whether card may join an existing meld. The meld's
// family is read off its first two cards: same suit means sequence, same
// rank means group. Sequences re-validate the extended run; groups accept a
// rank match up to four cards.
func CanLayOff(card Card, meld []Card) bool {
	if len(meld) < 3 {
		return false
	}
	if meld[0].Suit() == meld[1].Suit() {
		if len(meld) >= MaxMeldLen {
			return false
		}
		var buf [MaxMeldLen]Card
		n := copy(buf[:], meld)
		buf[n] = card
		return IsSequence(buf[:n+1])
	}
	if meld[0].Rank() == meld[1].Rank() {
		return card.Rank() == meld[0].Rank() && len(meld) < 4
	}
	return false
}

// sortSequence orders an accepted run ascending in place. The ace sorts low
// only when the run also holds a two; otherwise it takes its natural high
// position.
func sortSequence(cards []Card) {
	hasAce, hasTwo := false, false
	for _, c := range cards {
		switch c.Rank() {
		case RankAce:
			hasAce = true
		case RankTwo:
			hasTwo = true
		}
	}
	val := seqHighValue
	if hasAce && hasTwo {
		val = seqLowValue
	}
	for i := 1; i < len(cards); i++ {
		for j := i; j > 0 && val(cards[j]) < val(cards[j-1]); j-- {
			cards[j], cards[j-1] = cards[j-1], cards[j]
		}
	}
}
