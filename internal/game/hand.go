package game

import (
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// Blackjack thresholds
const (
	BlackjackValue = 21
	DealerStandsOn = 17
)

// Hand is the ordered set of cards held by one participant.
// Its value is recomputed on every call.
type Hand struct {
	cards []*deck.Card
}

// NewHand creates a hand holding the given cards
func NewHand(cards ...*deck.Card) *Hand {
	h := &Hand{}
	for _, c := range cards {
		h.AddCard(c)
	}
	return h
}

// AddCard appends a card to the hand
func (h *Hand) AddCard(c *deck.Card) {
	h.cards = append(h.cards, c)
}

// Clear empties the hand for a new round
func (h *Hand) Clear() {
	h.cards = h.cards[:0]
}

// Len returns the number of cards held, face down ones included
func (h *Hand) Len() int {
	return len(h.cards)
}

// Cards returns a snapshot of the hand in deal order
func (h *Hand) Cards() []deck.Card {
	out := make([]deck.Card, len(h.cards))
	for i, c := range h.cards {
		out[i] = *c
	}
	return out
}

// Value returns the blackjack total of the face-up cards. Non-ace cards are
// summed first, then each ace in turn counts 11 if that keeps the running
// total at or below 21, otherwise 1. Face-down cards are ignored until
// revealed.
func (h *Hand) Value() int {
	value, _ := h.total()
	return value
}

// IsSoft reports whether an ace was counted as 11
func (h *Hand) IsSoft() bool {
	_, soft := h.total()
	return soft
}

func (h *Hand) total() (value int, soft bool) {
	aces := 0
	for _, c := range h.cards {
		if !c.FaceUp() {
			continue
		}
		if c.IsAce() {
			aces++
			continue
		}
		value += c.Value()
	}

	// Aces are scored one at a time after the other cards, so {10, A, A}
	// takes 11 for the first ace and busts on the second.
	for range aces {
		if value+11 <= BlackjackValue {
			value += 11
			soft = true
		} else {
			value++
		}
	}
	return value, soft
}

// IsBust returns true if the hand is over 21
func (h *Hand) IsBust() bool {
	return h.Value() > BlackjackValue
}

// IsBlackjack returns true for a two-card 21
func (h *Hand) IsBlackjack() bool {
	return len(h.cards) == 2 && h.Value() == BlackjackValue
}

// HasHiddenCards reports whether any card is still face down
func (h *Hand) HasHiddenCards() bool {
	for _, c := range h.cards {
		if !c.FaceUp() {
			return true
		}
	}
	return false
}

// RevealAll turns every card face up
func (h *Hand) RevealAll() {
	for _, c := range h.cards {
		c.SetFaceUp(true)
	}
}

// String renders the hand as "[A♠ XX]"
func (h *Hand) String() string {
	faces := make([]string, len(h.cards))
	for i, c := range h.cards {
		faces[i] = c.String()
	}
	return "[" + strings.Join(faces, " ") + "]"
}
