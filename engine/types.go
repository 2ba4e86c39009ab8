package engine

// Suit constants — packed into upper 4 bits of Card.
const (
	SuitClubs    uint8 = 0
	SuitDiamonds uint8 = 1
	SuitSpades   uint8 = 2
	SuitHearts   uint8 = 3
)

// Rank constants — packed into lower 4 bits of Card.
const (
	RankAce   uint8 = 0
	RankTwo   uint8 = 1
	RankThree uint8 = 2
	RankFour  uint8 = 3
	RankFive  uint8 = 4
	RankSix   uint8 = 5
	RankSeven uint8 = 6
	RankEight uint8 = 7
	RankNine  uint8 = 8
	RankTen   uint8 = 9
	RankJack  uint8 = 10
	RankQueen uint8 = 11
	RankKing  uint8 = 12
)

// Card is a packed uint8: upper 4 bits = suit, lower 4 bits = rank.
type Card uint8

// EmptyCard represents the absence of a card.
const EmptyCard Card = 0xFF

// NewCard constructs a Card from suit and rank.
func NewCard(suit, rank uint8) Card {
	return Card((suit << 4) | (rank & 0x0F))
}

// Suit returns the suit bits (upper 4).
func (c Card) Suit() uint8 { return uint8(c) >> 4 }

// Rank returns the rank bits (lower 4).
func (c Card) Rank() uint8 { return uint8(c) & 0x0F }

// Value returns the point value of the card for end-of-hand scoring.
//   - Ace (rank 0) → 1
//   - Two–Ten (ranks 1–9) → face value (rank+1)
//   - Jack, Queen, King → 10
func (c Card) Value() int8 {
	r := c.Rank()
	switch {
	case r == RankAce:
		return 1
	case r <= RankTen: // ranks 1–9: Two–Ten
		return int8(r + 1)
	case r <= RankKing:
		return 10
	}
	// EmptyCard or malformed — return 0
	return 0
}

// seqLowValue returns the card's position in an ace-low run (ace = 1, king = 13).
func seqLowValue(c Card) int { return int(c.Rank()) + 1 }

// seqHighValue returns the card's position in an ace-high run (two = 2, ace = 14).
func seqHighValue(c Card) int {
	if c.Rank() == RankAce {
		return 14
	}
	return int(c.Rank()) + 1
}

// rankDistance returns the smallest run distance between two cards' ranks,
// taking the better of the ace-low and ace-high mappings.
func rankDistance(a, b Card) int {
	low := seqLowValue(a) - seqLowValue(b)
	if low < 0 {
		low = -low
	}
	high := seqHighValue(a) - seqHighValue(b)
	if high < 0 {
		high = -high
	}
	if high < low {
		return high
	}
	return low
}

var rankNames = [13]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
var suitNames = [4]string{"c", "d", "s", "h"}

// String returns a compact human-readable form such as "As" or "10d".
func (c Card) String() string {
	if c == EmptyCard {
		return "??"
	}
	s, r := c.Suit(), c.Rank()
	if s > SuitHearts || r > RankKing {
		return "??"
	}
	return rankNames[r] + suitNames[s]
}

// GamePhase is the global phase of the match, not per player.
type GamePhase uint8

const (
	PhaseDraw     GamePhase = 0 // current player must draw exactly once
	PhaseDiscard  GamePhase = 1 // melds/lay-offs allowed, then one discard
	PhaseGameOver GamePhase = 2 // terminal
)

func (p GamePhase) String() string {
	switch p {
	case PhaseDraw:
		return "draw"
	case PhaseDiscard:
		return "discard"
	case PhaseGameOver:
		return "game_over"
	}
	return "unknown"
}
