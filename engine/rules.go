package engine

// HouseRules holds configurable game rule settings.
type HouseRules struct {
	CardsPerPlayer        uint8  // cards dealt to each player; 0 treated as 10
	MaxGameTurns          uint16 // 0 = unlimited; reaching the cap ends the hand with no winner
	ReshuffleOnExhaustion bool   // recycle discard-minus-top into the stock when it empties
}

// DefaultHouseRules returns the standard two-player rummy rules.
func DefaultHouseRules() HouseRules {
	return HouseRules{
		CardsPerPlayer:        10,
		MaxGameTurns:          0,
		ReshuffleOnExhaustion: true,
	}
}

// cardsPerPlayer returns the effective deal size, treating 0 as 10 and
// clamping so a hand can always hold one extra drawn card.
func (r *HouseRules) cardsPerPlayer() uint8 {
	n := r.CardsPerPlayer
	if n == 0 {
		n = 10
	}
	if n > MaxHandSize-1 {
		n = MaxHandSize - 1
	}
	return n
}
