package game

import (
	"errors"
	"fmt"
)

// StartingChips is the balance every player sits down with
const StartingChips = 1000

var (
	// ErrInsufficientFunds is returned when a bet exceeds the player's chips
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidBet is returned for zero or negative bets
	ErrInvalidBet = errors.New("bet must be positive")
)

// Player is a participant at the table: either a bettor or the dealer.
type Player struct {
	name       string
	hand       *Hand
	chips      int
	currentBet int
	dealer     bool

	wins       int
	losses     int
	pushes     int
	blackjacks int
}

// NewPlayer creates a non-dealer player with the given chip balance
func NewPlayer(name string, chips int) *Player {
	return &Player{
		name:  name,
		hand:  NewHand(),
		chips: chips,
	}
}

// NewDealer creates the house player
func NewDealer() *Player {
	return &Player{
		name:   "Dealer",
		hand:   NewHand(),
		dealer: true,
	}
}

func (p *Player) Name() string    { return p.name }
func (p *Player) Hand() *Hand     { return p.hand }
func (p *Player) Chips() int      { return p.chips }
func (p *Player) CurrentBet() int { return p.currentBet }
func (p *Player) IsDealer() bool  { return p.dealer }
func (p *Player) Wins() int       { return p.wins }
func (p *Player) Losses() int     { return p.losses }
func (p *Player) Pushes() int     { return p.pushes }
func (p *Player) Blackjacks() int { return p.blackjacks }

// ClearHand empties the player's hand for a new round
func (p *Player) ClearHand() {
	p.hand.Clear()
}

// PlaceBet moves amount from chips onto the table. A bet that is already
// on the table is taken back first, so calling PlaceBet again between rounds
// changes the stake rather than adding to it. On error nothing changes.
func (p *Player) PlaceBet(amount int) error {
	if amount <= 0 {
		return ErrInvalidBet
	}
	available := p.chips + p.currentBet
	if amount > available {
		return fmt.Errorf("%w: bet %d, have %d", ErrInsufficientFunds, amount, available)
	}
	p.chips = available - amount
	p.currentBet = amount
	return nil
}

// WinBet pays 1:1, returning the stake plus an equal amount
func (p *Player) WinBet() {
	p.chips += p.currentBet * 2
	p.currentBet = 0
	p.wins++
}

// Blackjack pays 3:2, returning the stake plus one and a half times it.
// Odd stakes round down.
func (p *Player) Blackjack() {
	p.chips += p.currentBet * 5 / 2
	p.currentBet = 0
	p.wins++
	p.blackjacks++
}

// Push returns the stake unchanged
func (p *Player) Push() {
	p.chips += p.currentBet
	p.currentBet = 0
	p.pushes++
}

// LoseBet forfeits the stake, which was already deducted by PlaceBet
func (p *Player) LoseBet() {
	p.currentBet = 0
	p.losses++
}

// refund hands the stake back without recording a result
func (p *Player) refund() {
	p.chips += p.currentBet
	p.currentBet = 0
}

// Settle applies the payout for outcome and returns the net chip change
// relative to the stake. It must be called at most once per round.
func (p *Player) Settle(outcome Outcome) int {
	bet := p.currentBet
	switch outcome {
	case OutcomeWin:
		p.WinBet()
		return bet
	case OutcomeBlackjack:
		p.Blackjack()
		return bet*5/2 - bet
	case OutcomePush:
		p.Push()
		return 0
	default:
		p.LoseBet()
		return -bet
	}
}

// String returns "name ($chips)"
func (p *Player) String() string {
	if p.dealer {
		return p.name
	}
	return fmt.Sprintf("%s ($%d)", p.name, p.chips)
}
