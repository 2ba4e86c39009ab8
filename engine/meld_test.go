package engine

import "testing"

func cards(cs ...Card) []Card { return cs }

// TestIsGroup verifies group size and rank-equality rules.
func TestIsGroup(t *testing.T) {
	tests := []struct {
		name string
		in   []Card
		want bool
	}{
		{"three fives", cards(NewCard(SuitSpades, RankFive), NewCard(SuitHearts, RankFive), NewCard(SuitDiamonds, RankFive)), true},
		{"four fives", cards(NewCard(SuitSpades, RankFive), NewCard(SuitHearts, RankFive), NewCard(SuitDiamonds, RankFive), NewCard(SuitClubs, RankFive)), true},
		{"two cards", cards(NewCard(SuitSpades, RankFive), NewCard(SuitHearts, RankFive)), false},
		{"mixed ranks", cards(NewCard(SuitSpades, RankFive), NewCard(SuitHearts, RankFive), NewCard(SuitDiamonds, RankSix)), false},
	}
	for _, tt := range tests {
		if got := IsGroup(tt.in); got != tt.want {
			t.Errorf("%s: IsGroup = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// TestIsSequence verifies run contiguity, suit purity, and the two ace
// mappings (1-low and 14-high, never both in one meld).
func TestIsSequence(t *testing.T) {
	tests := []struct {
		name string
		in   []Card
		want bool
	}{
		{"5-6-7 spades", cards(NewCard(SuitSpades, RankFive), NewCard(SuitSpades, RankSix), NewCard(SuitSpades, RankSeven)), true},
		{"unsorted 7-5-6", cards(NewCard(SuitSpades, RankSeven), NewCard(SuitSpades, RankFive), NewCard(SuitSpades, RankSix)), true},
		{"ace high Q-K-A", cards(NewCard(SuitSpades, RankQueen), NewCard(SuitSpades, RankKing), NewCard(SuitSpades, RankAce)), true},
		{"ace low A-2-3", cards(NewCard(SuitSpades, RankAce), NewCard(SuitSpades, RankTwo), NewCard(SuitSpades, RankThree)), true},
		{"straddle K-A-2", cards(NewCard(SuitSpades, RankKing), NewCard(SuitSpades, RankAce), NewCard(SuitSpades, RankTwo)), false},
		{"gap 5-6-8", cards(NewCard(SuitSpades, RankFive), NewCard(SuitSpades, RankSix), NewCard(SuitSpades, RankEight)), false},
		{"mixed suits", cards(NewCard(SuitSpades, RankFive), NewCard(SuitHearts, RankSix), NewCard(SuitSpades, RankSeven)), false},
		{"too short", cards(NewCard(SuitSpades, RankFive), NewCard(SuitSpades, RankSix)), false},
		{"long run 8..K", cards(NewCard(SuitHearts, RankEight), NewCard(SuitHearts, RankNine), NewCard(SuitHearts, RankTen), NewCard(SuitHearts, RankJack), NewCard(SuitHearts, RankQueen), NewCard(SuitHearts, RankKing)), true},
	}
	for _, tt := range tests {
		if got := IsSequence(tt.in); got != tt.want {
			t.Errorf("%s: IsSequence = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// TestIsValidMeld covers the combined predicate.
func TestIsValidMeld(t *testing.T) {
	if !IsValidMeld(cards(NewCard(SuitSpades, RankFive), NewCard(SuitSpades, RankSix), NewCard(SuitSpades, RankSeven))) {
		t.Error("5-6-7 spades should be a valid meld")
	}
	if !IsValidMeld(cards(NewCard(SuitSpades, RankFive), NewCard(SuitHearts, RankFive), NewCard(SuitDiamonds, RankFive))) {
		t.Error("three fives should be a valid meld")
	}
	if IsValidMeld(cards(NewCard(SuitSpades, RankFive), NewCard(SuitSpades, RankSix), NewCard(SuitSpades, RankEight))) {
		t.Error("gapped run should not be a valid meld")
	}
}

// TestMeldKindOf verifies classification and the sequence preference.
func TestMeldKindOf(t *testing.T) {
	kind, ok := MeldKindOf(cards(NewCard(SuitSpades, RankFive), NewCard(SuitSpades, RankSix), NewCard(SuitSpades, RankSeven)))
	if !ok || kind != MeldSequence {
		t.Errorf("run classified as (%v, %v), want (sequence, true)", kind, ok)
	}
	kind, ok = MeldKindOf(cards(NewCard(SuitSpades, RankFive), NewCard(SuitHearts, RankFive), NewCard(SuitDiamonds, RankFive)))
	if !ok || kind != MeldGroup {
		t.Errorf("set classified as (%v, %v), want (group, true)", kind, ok)
	}
	if _, ok = MeldKindOf(cards(NewCard(SuitSpades, RankFive), NewCard(SuitHearts, RankSix), NewCard(SuitDiamonds, RankSeven))); ok {
		t.Error("mixed-suit gibberish classified as a meld")
	}
}

// TestCanLayOff verifies lay-off eligibility against both meld families.
func TestCanLayOff(t *testing.T) {
	run := cards(NewCard(SuitSpades, RankFive), NewCard(SuitSpades, RankSix), NewCard(SuitSpades, RankSeven))
	if !CanLayOff(NewCard(SuitSpades, RankFour), run) {
		t.Error("4s should extend 5-6-7 spades low")
	}
	if !CanLayOff(NewCard(SuitSpades, RankEight), run) {
		t.Error("8s should extend 5-6-7 spades high")
	}
	if CanLayOff(NewCard(SuitSpades, RankThree), run) {
		t.Error("3s is not adjacent to 5-6-7 spades")
	}
	if CanLayOff(NewCard(SuitHearts, RankEight), run) {
		t.Error("8h has the wrong suit for a spade run")
	}

	group := cards(NewCard(SuitSpades, RankFive), NewCard(SuitHearts, RankFive), NewCard(SuitDiamonds, RankFive))
	if !CanLayOff(NewCard(SuitClubs, RankFive), group) {
		t.Error("fourth five should join the group")
	}
	if CanLayOff(NewCard(SuitClubs, RankSix), group) {
		t.Error("six should not join a group of fives")
	}
	full := cards(NewCard(SuitSpades, RankFive), NewCard(SuitHearts, RankFive), NewCard(SuitDiamonds, RankFive), NewCard(SuitClubs, RankFive))
	if CanLayOff(NewCard(SuitClubs, RankFive), full) {
		t.Error("a 4-card group can never accept a lay-off")
	}
}

// TestCanLayOffAceEnds verifies that ace lay-offs respect the one-mapping rule.
func TestCanLayOffAceEnds(t *testing.T) {
	lowRun := cards(NewCard(SuitSpades, RankTwo), NewCard(SuitSpades, RankThree), NewCard(SuitSpades, RankFour))
	if !CanLayOff(NewCard(SuitSpades, RankAce), lowRun) {
		t.Error("ace should extend 2-3-4 spades as the 1")
	}
	highRun := cards(NewCard(SuitSpades, RankJack), NewCard(SuitSpades, RankQueen), NewCard(SuitSpades, RankKing))
	if !CanLayOff(NewCard(SuitSpades, RankAce), highRun) {
		t.Error("ace should extend J-Q-K spades as the 14")
	}
	// A run already using the ace low cannot wrap past the king.
	wrapped := cards(NewCard(SuitSpades, RankAce), NewCard(SuitSpades, RankTwo), NewCard(SuitSpades, RankThree))
	if CanLayOff(NewCard(SuitSpades, RankKing), wrapped) {
		t.Error("king must not wrap onto A-2-3 spades")
	}
}

// TestSortSequence verifies the display tie-break: ace sorts low only when
// the run also holds a two.
func TestSortSequence(t *testing.T) {
	low := cards(NewCard(SuitSpades, RankThree), NewCard(SuitSpades, RankAce), NewCard(SuitSpades, RankTwo))
	sortSequence(low)
	if low[0].Rank() != RankAce || low[1].Rank() != RankTwo || low[2].Rank() != RankThree {
		t.Errorf("ace-low run sorted as %v, want A-2-3", low)
	}

	high := cards(NewCard(SuitSpades, RankAce), NewCard(SuitSpades, RankKing), NewCard(SuitSpades, RankQueen))
	sortSequence(high)
	if high[0].Rank() != RankQueen || high[1].Rank() != RankKing || high[2].Rank() != RankAce {
		t.Errorf("ace-high run sorted as %v, want Q-K-A", high)
	}
}

// TestCardValue verifies the point mapping: ace 1, courts 10, numerals face.
func TestCardValue(t *testing.T) {
	tests := []struct {
		card Card
		want int8
	}{
		{NewCard(SuitSpades, RankAce), 1},
		{NewCard(SuitHearts, RankTwo), 2},
		{NewCard(SuitClubs, RankNine), 9},
		{NewCard(SuitDiamonds, RankTen), 10},
		{NewCard(SuitSpades, RankJack), 10},
		{NewCard(SuitSpades, RankQueen), 10},
		{NewCard(SuitSpades, RankKing), 10},
		{EmptyCard, 0},
	}
	for _, tt := range tests {
		if got := tt.card.Value(); got != tt.want {
			t.Errorf("Value(%v) = %d, want %d", tt.card, got, tt.want)
		}
	}
}

// TestCardString spot-checks the compact printable form.
func TestCardString(t *testing.T) {
	if s := NewCard(SuitSpades, RankAce).String(); s != "As" {
		t.Errorf("String = %q, want \"As\"", s)
	}
	if s := NewCard(SuitDiamonds, RankTen).String(); s != "10d" {
		t.Errorf("String = %q, want \"10d\"", s)
	}
	if s := EmptyCard.String(); s != "??" {
		t.Errorf("String(EmptyCard) = %q, want \"??\"", s)
	}
}
