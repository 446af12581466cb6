package game

// GameState is the phase of the current round
type GameState int

const (
	// Playing means the active player may hit or stay
	Playing GameState = iota
	// DealerTurn means the dealer is drawing to 17
	DealerTurn
	// RoundOver means payouts are settled; bets may be placed for the next round
	RoundOver
)

// String returns the state name
func (s GameState) String() string {
	switch s {
	case Playing:
		return "PLAYING"
	case DealerTurn:
		return "DEALER_TURN"
	case RoundOver:
		return "ROUND_OVER"
	default:
		return "UNKNOWN"
	}
}

// Outcome is a player's result against the dealer for one round
type Outcome int

const (
	OutcomeLoss Outcome = iota
	OutcomePush
	OutcomeWin
	OutcomeBlackjack
)

// String returns a short label
func (o Outcome) String() string {
	switch o {
	case OutcomeLoss:
		return "loss"
	case OutcomePush:
		return "push"
	case OutcomeWin:
		return "win"
	case OutcomeBlackjack:
		return "blackjack"
	default:
		return "unknown"
	}
}

// IsWin reports whether the outcome pays the player
func (o Outcome) IsWin() bool {
	return o == OutcomeWin || o == OutcomeBlackjack
}

// Evaluate compares a finished player hand with the dealer's revealed hand.
// The checks run in a fixed order: a player bust loses even when the dealer
// also busts.
func Evaluate(player, dealer *Hand) Outcome {
	playerValue := player.Value()
	dealerValue := dealer.Value()

	switch {
	case player.IsBust():
		return OutcomeLoss
	case dealer.IsBust():
		return OutcomeWin
	case player.IsBlackjack() && !dealer.IsBlackjack():
		return OutcomeBlackjack
	case playerValue > dealerValue:
		return OutcomeWin
	case playerValue == dealerValue:
		return OutcomePush
	default:
		return OutcomeLoss
	}
}

// Result records how one player's round was settled
type Result struct {
	Player  string
	Outcome Outcome
	Value   int
	Bet     int
	Delta   int // net chips won (+) or lost (-)
	Bust    bool
}
