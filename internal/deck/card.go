package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

// Suits in canonical deck order.
const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists every suit in canonical order.
var Suits = [...]Suit{Hearts, Diamonds, Clubs, Spades}

// String returns the suit name in upper case (e.g. "HEARTS")
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "HEARTS"
	case Diamonds:
		return "DIAMONDS"
	case Clubs:
		return "CLUBS"
	case Spades:
		return "SPADES"
	default:
		return "?"
	}
}

// Symbol returns the unicode symbol for the suit
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

// Ranks in canonical deck order, ace first.
const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Ranks lists every rank in canonical order.
var Ranks = [...]Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// Value returns the fixed blackjack point value of the rank.
// Aces count 11 here; Hand decides when one drops to 1.
func (r Rank) Value() int {
	switch {
	case r == Ace:
		return 11
	case r >= Jack:
		return 10
	default:
		return int(r) + 1
	}
}

// Short returns the index label printed on the card face
func (r Rank) Short() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		if r >= Two && r <= Ten {
			return fmt.Sprintf("%d", r.Value())
		}
		return "?"
	}
}

// String returns the rank name in upper case (e.g. "QUEEN")
func (r Rank) String() string {
	names := [...]string{"ACE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN",
		"EIGHT", "NINE", "TEN", "JACK", "QUEEN", "KING"}
	if r < Ace || r > King {
		return "?"
	}
	return names[r]
}

// Card is a playing card. Suit and rank are fixed at construction; only the
// face-up flag changes over the card's life.
type Card struct {
	suit   Suit
	rank   Rank
	faceUp bool
}

// NewCard creates a face-up card
func NewCard(suit Suit, rank Rank) *Card {
	return &Card{suit: suit, rank: rank, faceUp: true}
}

func (c *Card) Suit() Suit { return c.suit }
func (c *Card) Rank() Rank { return c.rank }

// Value returns the rank's point value regardless of orientation.
func (c *Card) Value() int {
	return c.rank.Value()
}

// IsAce returns true if the card is an Ace
func (c *Card) IsAce() bool {
	return c.rank == Ace
}

// IsRed returns true if the card is red
func (c *Card) IsRed() bool {
	return c.suit.IsRed()
}

// FaceUp reports whether the card is showing.
func (c *Card) FaceUp() bool {
	return c.faceUp
}

// SetFaceUp turns the card over. It has no effect on Value.
func (c *Card) SetFaceUp(up bool) {
	c.faceUp = up
}

// Same reports whether two cards share suit and rank.
func (c *Card) Same(o *Card) bool {
	return c.suit == o.suit && c.rank == o.rank
}

// String returns the short face (e.g. "A♠"), or "XX" when face down
func (c *Card) String() string {
	if !c.faceUp {
		return "XX"
	}
	return c.rank.Short() + c.suit.Symbol()
}

// Name returns the long form, e.g. "Ace of Spades"
func (c *Card) Name() string {
	return titleCase(c.rank.String()) + " of " + titleCase(c.suit.String())
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return s[:1] + strings.ToLower(s[1:])
}

// ParseCard parses a string like "As", "Th" or "10h" into a face-up card
func ParseCard(s string) (*Card, error) {
	if len(s) < 2 || len(s) > 3 {
		return nil, fmt.Errorf("invalid card string: %q", s)
	}

	rankPart, suitPart := s[:len(s)-1], s[len(s)-1]

	var rank Rank
	switch strings.ToUpper(rankPart) {
	case "A":
		rank = Ace
	case "2":
		rank = Two
	case "3":
		rank = Three
	case "4":
		rank = Four
	case "5":
		rank = Five
	case "6":
		rank = Six
	case "7":
		rank = Seven
	case "8":
		rank = Eight
	case "9":
		rank = Nine
	case "T", "10":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	default:
		return nil, fmt.Errorf("invalid rank: %q", rankPart)
	}

	var suit Suit
	switch suitPart {
	case 'h', 'H':
		suit = Hearts
	case 'd', 'D':
		suit = Diamonds
	case 'c', 'C':
		suit = Clubs
	case 's', 'S':
		suit = Spades
	default:
		return nil, fmt.Errorf("invalid suit: %c", suitPart)
	}

	return NewCard(suit, rank), nil
}

// ParseCards parses a space separated or concatenated list such as "Ah Ks" or "AhKs".
// The concatenated form only supports the single-character "T" for tens.
func ParseCards(s string) ([]*Card, error) {
	fields := strings.Fields(s)
	if len(fields) == 1 && len(fields[0]) > 3 {
		if len(fields[0])%2 != 0 {
			return nil, fmt.Errorf("invalid card list: %q", s)
		}
		joined := fields[0]
		fields = nil
		for i := 0; i < len(joined); i += 2 {
			fields = append(fields, joined[i:i+2])
		}
	}

	cards := make([]*Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixtures; it panics on malformed input.
func MustParseCards(s string) []*Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
