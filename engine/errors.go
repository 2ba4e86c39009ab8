package engine

import "errors"

// Typed rejection reasons. Every command either completes (state mutated)
// or returns one of these with the state unchanged; none is fatal.
var (
	// ErrWrongPhase: action attempted outside its valid phase.
	ErrWrongPhase = errors.New("action not legal in current phase")

	// ErrNotCurrentPlayer: a non-active player attempted an action.
	ErrNotCurrentPlayer = errors.New("not this player's turn")

	// ErrAlreadyDrawnThisTurn: a second draw attempted within one Draw phase.
	ErrAlreadyDrawnThisTurn = errors.New("already drew this turn")

	// ErrEmptySource: draw requested from an empty stock or discard pile
	// while the other source still has cards.
	ErrEmptySource = errors.New("draw source is empty")

	// ErrInvalidMeld: selection fails both sequence and group checks, or
	// has fewer than three cards.
	ErrInvalidMeld = errors.New("selection is not a valid meld")

	// ErrNoLayOffTarget: the target meld does not accept the card.
	ErrNoLayOffTarget = errors.New("card cannot be laid off on that meld")

	// ErrInvalidCardIndex: a hand index outside the current hand.
	ErrInvalidCardIndex = errors.New("hand index out of range")

	// ErrDeckExhausted: stock and discard pile are both empty and a draw is
	// still required.
	ErrDeckExhausted = errors.New("stock and discard pile are both exhausted")
)
