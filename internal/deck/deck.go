package deck

import (
	rand "math/rand/v2"
)

// Size is the number of cards in a single deck.
const Size = 52

// Deck is an ordered single deck of cards. The top of the deck is index 0.
//
// Draw never fails: an empty deck is rebuilt and reshuffled before the draw.
// This means a long round can see the same card twice.
type Deck struct {
	cards      []*Card
	rng        *rand.Rand
	stacked    []*Card // optional fixed order restored by Reset
	reshuffles int
}

// NewDeck creates a new shuffled deck drawing randomness from rng
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	d := &Deck{
		cards: make([]*Card, 0, Size),
		rng:   rng,
	}
	d.initialize()
	return d
}

// NewStackedDeck creates a deck whose next draws are exactly the given cards,
// in order. Reset restores that order. Once the stacked cards are used up the
// deck falls back to a freshly shuffled 52 like any other deck.
func NewStackedDeck(rng *rand.Rand, cards ...*Card) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	stacked := make([]*Card, len(cards))
	for i, c := range cards {
		stacked[i] = &Card{suit: c.suit, rank: c.rank, faceUp: true}
	}
	d := &Deck{
		rng:     rng,
		stacked: stacked,
	}
	d.restack()
	return d
}

// initialize rebuilds the 52 cards in canonical suit×rank order and shuffles them.
// Prior contents are discarded.
func (d *Deck) initialize() {
	d.cards = d.cards[:0]
	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	d.Shuffle()
}

func (d *Deck) restack() {
	d.cards = make([]*Card, len(d.stacked))
	for i, c := range d.stacked {
		d.cards[i] = &Card{suit: c.suit, rank: c.rank, faceUp: true}
	}
}

// Shuffle shuffles the remaining cards using Fisher-Yates
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card. An empty deck is reinitialized first.
func (d *Deck) Draw() *Card {
	if len(d.cards) == 0 {
		d.reshuffles++
		d.initialize()
	}
	card := d.cards[0]
	d.cards[0] = nil
	d.cards = d.cards[1:]
	return card
}

// Reset restores a full deck for a new round
func (d *Deck) Reset() {
	if d.stacked != nil {
		d.restack()
		return
	}
	d.initialize()
}

// Remaining returns the number of cards left before the next auto-reshuffle
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Reshuffles returns how many times Draw had to rebuild an empty deck
func (d *Deck) Reshuffles() int {
	return d.reshuffles
}

// Cards returns a copy of the remaining cards, top first
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	for i, c := range d.cards {
		out[i] = *c
	}
	return out
}
