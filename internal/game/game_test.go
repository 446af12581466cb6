package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// newStackedGame seats the named players and deals from cards in order:
// two per player, then dealer up card, hole card, then any hits.
func newStackedGame(t *testing.T, cards string, names []string, opts ...Option) *Game {
	t.Helper()
	rng := randutil.New(1)
	d := deck.NewStackedDeck(rng, deck.MustParseCards(cards)...)
	opts = append([]Option{WithDeck(d), WithLogger(quietLogger())}, opts...)
	g := NewGame(rng, opts...)
	for _, name := range names {
		_, err := g.AddPlayer(name)
		require.NoError(t, err)
	}
	return g
}

func TestStartNewRoundDeals(t *testing.T) {
	g := NewGame(randutil.New(42), WithLogger(quietLogger()))
	_, err := g.AddPlayer("Alice")
	require.NoError(t, err)
	_, err = g.AddPlayer("Bob")
	require.NoError(t, err)

	for round := 1; round <= 20; round++ {
		g.StartNewRound()

		assert.Equal(t, Playing, g.State())
		assert.Equal(t, "Alice", g.CurrentPlayer().Name())
		assert.Equal(t, round, g.Round())
		assert.NotEmpty(t, g.RoundID())

		for _, p := range g.Players() {
			require.Equal(t, 2, p.Hand().Len(), "player %s", p.Name())
			for _, c := range p.Hand().Cards() {
				assert.True(t, c.FaceUp())
			}
		}

		dealerCards := g.Dealer().Hand().Cards()
		require.Len(t, dealerCards, 2)
		assert.True(t, dealerCards[0].FaceUp(), "dealer up card")
		assert.False(t, dealerCards[1].FaceUp(), "dealer hole card")
		assert.Equal(t, dealerCards[0].Value(), g.Dealer().Hand().Value(),
			"only the up card counts before the reveal")

		assert.Equal(t, deck.Size-6, g.DeckRemaining())
	}
}

func TestStartNewRoundDealOrder(t *testing.T) {
	g := newStackedGame(t, "2h 3h 4h 5h 6h 7h", []string{"Alice", "Bob"})
	g.StartNewRound()

	assert.Equal(t, "[2♥ 3♥]", g.Player("Alice").Hand().String())
	assert.Equal(t, "[4♥ 5♥]", g.Player("Bob").Hand().String())
	assert.Equal(t, "[6♥ XX]", g.Dealer().Hand().String())
}

func TestStartNewRoundRequiresPlayers(t *testing.T) {
	g := NewGame(randutil.New(1), WithLogger(quietLogger()))
	assert.Panics(t, func() { g.StartNewRound() })
}

func TestNewGameRequiresRNG(t *testing.T) {
	assert.Panics(t, func() { NewGame(nil) })
}

func TestActionsOutsidePlayingAreIgnored(t *testing.T) {
	g := newStackedGame(t, "Th 9h Ts 8s", []string{"Alice"})

	assert.Equal(t, RoundOver, g.State())
	assert.False(t, g.Hit(), "hit before the first round")
	assert.False(t, g.Stay(), "stay before the first round")
	assert.Nil(t, g.CurrentPlayer())

	g.StartNewRound()
	require.True(t, g.Stay())
	require.Equal(t, RoundOver, g.State())

	alice := g.Player("Alice")
	chips, wins := alice.Chips(), g.Wins()
	handLen := alice.Hand().Len()

	assert.False(t, g.Hit())
	assert.False(t, g.Stay())
	assert.Equal(t, chips, alice.Chips())
	assert.Equal(t, wins, g.Wins(), "a settled round is never paid twice")
	assert.Equal(t, handLen, alice.Hand().Len())
}

func TestDealerDrawsToSeventeen(t *testing.T) {
	tests := []struct {
		name        string
		cards       string // player x2, dealer up, dealer hole, dealer draws...
		wantDealer  string
		wantValue   int
		wantOutcome Outcome
	}{
		{
			name:        "stands on hard 17",
			cards:       "Th 9h Ts 7s 5c",
			wantDealer:  "[10♠ 7♠]",
			wantValue:   17,
			wantOutcome: OutcomeWin,
		},
		{
			name:        "stands on soft 17",
			cards:       "Th 9h As 6s 5c",
			wantDealer:  "[A♠ 6♠]",
			wantValue:   17,
			wantOutcome: OutcomeWin,
		},
		{
			name:        "draws on 16",
			cards:       "Th 9h Ts 6s 5c 2d",
			wantDealer:  "[10♠ 6♠ 5♣]",
			wantValue:   21,
			wantOutcome: OutcomeLoss,
		},
		{
			name:        "draws several small cards",
			cards:       "Th 9h 2s 3s 2c 2d 4c 5d",
			wantDealer:  "[2♠ 3♠ 2♣ 2♦ 4♣ 5♦]",
			wantValue:   18,
			wantOutcome: OutcomeWin,
		},
		{
			name:        "ace drops to one on 16",
			cards:       "Th 9h 9s 7d Ac",
			wantDealer:  "[9♠ 7♦ A♣]",
			wantValue:   17,
			wantOutcome: OutcomeWin,
		},
		{
			name:        "dealer busts",
			cards:       "Th 9h Ts 6s Kc",
			wantDealer:  "[10♠ 6♠ K♣]",
			wantValue:   26,
			wantOutcome: OutcomeWin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newStackedGame(t, tt.cards, []string{"Alice"})
			g.StartNewRound()
			require.True(t, g.Stay())

			assert.Equal(t, RoundOver, g.State())
			assert.Equal(t, tt.wantDealer, g.Dealer().Hand().String())
			assert.Equal(t, tt.wantValue, g.Dealer().Hand().Value())

			results := g.Results()
			require.Len(t, results, 1)
			assert.Equal(t, tt.wantOutcome, results[0].Outcome)
		})
	}
}

func TestRoundSettlement(t *testing.T) {
	tests := []struct {
		name        string
		cards       string
		hits        int
		wantOutcome Outcome
		wantChips   int
		wantWins    int
		wantLosses  int
	}{
		{
			name:        "20 beats 18",
			cards:       "Kh Qh Ts 8s",
			wantOutcome: OutcomeWin,
			wantChips:   1100,
			wantWins:    1,
		},
		{
			name:        "19 pushes 19",
			cards:       "Th 9h Ts 9s",
			wantOutcome: OutcomePush,
			wantChips:   1000,
		},
		{
			name:        "blackjack against 20 pays 3:2",
			cards:       "Ah Kh Ts Qs",
			wantOutcome: OutcomeBlackjack,
			wantChips:   1150,
			wantWins:    1,
		},
		{
			name:        "blackjack against blackjack pushes",
			cards:       "Ah Kh As Qs",
			wantOutcome: OutcomePush,
			wantChips:   1000,
		},
		{
			name:        "17 loses to 18",
			cards:       "Th 7h Ts 8s",
			wantOutcome: OutcomeLoss,
			wantChips:   900,
			wantLosses:  1,
		},
		{
			name:        "three-card 21 beats 20 at even money",
			cards:       "7h 7d Ts Qs 7c",
			hits:        1,
			wantOutcome: OutcomeWin,
			wantChips:   1100,
			wantWins:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newStackedGame(t, tt.cards, []string{"Alice"})
			require.NoError(t, g.PlaceBet("Alice", 100))
			g.StartNewRound()
			for range tt.hits {
				require.True(t, g.Hit())
			}
			require.True(t, g.Stay())

			alice := g.Player("Alice")
			results := g.Results()
			require.Len(t, results, 1)
			assert.Equal(t, tt.wantOutcome, results[0].Outcome)
			assert.Equal(t, 100, results[0].Bet)
			assert.Equal(t, tt.wantChips-1000, results[0].Delta)
			assert.Equal(t, tt.wantChips, alice.Chips())
			assert.Zero(t, alice.CurrentBet())
			assert.Equal(t, tt.wantWins, g.Wins())
			assert.Equal(t, tt.wantLosses, g.Losses())
		})
	}
}

func TestBustEndsRound(t *testing.T) {
	g := newStackedGame(t, "Th 6h Ts 6s Kc 9d", []string{"Alice"})
	require.NoError(t, g.PlaceBet("Alice", 100))
	g.StartNewRound()

	require.True(t, g.Hit())

	assert.Equal(t, RoundOver, g.State())
	alice := g.Player("Alice")
	assert.True(t, alice.Hand().IsBust())
	assert.Equal(t, 900, alice.Chips())
	assert.Equal(t, 1, g.Losses())
	assert.Zero(t, g.Wins())
	assert.Equal(t, 2, g.Dealer().Hand().Len(), "dealer does not play after a bust")
	assert.Equal(t, "Alice", g.CurrentPlayer().Name())

	results := g.Results()
	require.Len(t, results, 1)
	assert.Equal(t, OutcomeLoss, results[0].Outcome)
	assert.True(t, results[0].Bust)
}

func TestHitOnAceBustsWithTwoAces(t *testing.T) {
	g := newStackedGame(t, "Kh Ah Ts 6s As", []string{"Alice"})
	require.NoError(t, g.PlaceBet("Alice", 100))
	g.StartNewRound()
	require.True(t, g.Player("Alice").Hand().IsBlackjack())

	require.True(t, g.Hit())

	alice := g.Player("Alice")
	assert.Equal(t, 22, alice.Hand().Value())
	assert.Equal(t, RoundOver, g.State())
	assert.Equal(t, 900, alice.Chips())
	assert.Equal(t, 1, g.Losses())

	results := g.Results()
	require.Len(t, results, 1)
	assert.Equal(t, OutcomeLoss, results[0].Outcome)
	assert.True(t, results[0].Bust)
}

func TestBustRefundsPlayersWhoNeverActed(t *testing.T) {
	g := newStackedGame(t, "Th 6h 9c 9d Ts 7s Kc", []string{"Alice", "Bob"})
	require.NoError(t, g.PlaceBet("Alice", 100))
	require.NoError(t, g.PlaceBet("Bob", 50))
	g.StartNewRound()

	require.True(t, g.Hit())
	require.Equal(t, RoundOver, g.State())

	bob := g.Player("Bob")
	assert.Equal(t, 1000, bob.Chips())
	assert.Zero(t, bob.CurrentBet())
	assert.Zero(t, bob.Wins()+bob.Losses()+bob.Pushes(), "no result recorded for Bob")
	assert.Equal(t, 1, g.Losses())
}

func TestStayGoesStraightToDealer(t *testing.T) {
	g := newStackedGame(t, "Th 9h 9c 9d Ts 8s", []string{"Alice", "Bob"})
	g.StartNewRound()

	require.True(t, g.Stay())
	assert.Equal(t, RoundOver, g.State())
	require.Len(t, g.Results(), 2)
	assert.Equal(t, "Alice", g.CurrentPlayer().Name(), "Bob never becomes active")
	assert.Equal(t, OutcomeWin, g.Results()[0].Outcome)
	assert.Equal(t, OutcomePush, g.Results()[1].Outcome)
}

func TestSequentialTurns(t *testing.T) {
	// Alice 16 hits K and busts, Bob stays on 18, dealer 10+6 draws 9 and busts.
	g := newStackedGame(t, "Th 6h 9c 9d Ts 6s Kc 9h", []string{"Alice", "Bob"}, WithSequentialTurns())
	g.StartNewRound()

	assert.Equal(t, "Alice", g.CurrentPlayer().Name())
	require.True(t, g.Hit())
	assert.Equal(t, Playing, g.State(), "round continues for Bob")
	assert.Equal(t, "Bob", g.CurrentPlayer().Name())

	require.True(t, g.Stay())
	assert.Equal(t, RoundOver, g.State())
	assert.True(t, g.Dealer().Hand().IsBust())

	results := g.Results()
	require.Len(t, results, 2)
	assert.Equal(t, OutcomeLoss, results[0].Outcome, "bust loses even when the dealer busts")
	assert.Equal(t, OutcomeWin, results[1].Outcome)
	assert.Equal(t, 1, g.Wins())
	assert.Equal(t, 1, g.Losses())
}

func TestBetsOnlyBetweenRounds(t *testing.T) {
	g := newStackedGame(t, "Th 9h Ts 8s", []string{"Alice"})
	g.StartNewRound()

	assert.ErrorIs(t, g.PlaceBet("Alice", 10), ErrRoundInProgress)
	_, err := g.AddPlayer("Bob")
	assert.ErrorIs(t, err, ErrRoundInProgress)

	g.Stay()
	assert.NoError(t, g.PlaceBet("Alice", 10))
	assert.ErrorIs(t, g.PlaceBet("Nobody", 10), ErrUnknownPlayer)
	assert.ErrorIs(t, g.PlaceBet("Alice", 5000), ErrInsufficientFunds)
}

func TestPlaceBetAgainReplacesStake(t *testing.T) {
	g := newStackedGame(t, "Th 9h Ts 8s", []string{"Alice"})
	alice := g.Player("Alice")

	require.NoError(t, g.PlaceBet("Alice", 600))
	assert.Equal(t, 400, alice.Chips())

	require.NoError(t, g.PlaceBet("Alice", 900), "earlier stake is refunded before the new bet")
	assert.Equal(t, 100, alice.Chips())
	assert.Equal(t, 900, alice.CurrentBet())

	err := g.PlaceBet("Alice", 1001)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 100, alice.Chips(), "a failed bet leaves the stake in place")
	assert.Equal(t, 900, alice.CurrentBet())
}

func TestAddPlayer(t *testing.T) {
	g := NewGame(randutil.New(1), WithLogger(quietLogger()), WithStartingChips(250))
	p, err := g.AddPlayer("Alice")
	require.NoError(t, err)
	assert.Equal(t, 250, p.Chips())
	assert.False(t, p.IsDealer())

	_, err = g.AddPlayer("Alice")
	assert.ErrorIs(t, err, ErrDuplicatePlayer)
	assert.Len(t, g.Players(), 1)
}

func TestUnsettledStakeRidesOnRedeal(t *testing.T) {
	g := newStackedGame(t, "Th 9h Ts 8s", []string{"Alice"})
	require.NoError(t, g.PlaceBet("Alice", 100))
	g.StartNewRound()
	g.StartNewRound()

	alice := g.Player("Alice")
	assert.Equal(t, 100, alice.CurrentBet())
	assert.Equal(t, 900, alice.Chips())

	g.Stay()
	assert.Equal(t, 1100, alice.Chips())
	assert.Equal(t, 1, g.Wins())
}

func TestEmptyDeckMidRoundReshuffles(t *testing.T) {
	// Only four stacked cards: every hit after the deal comes from a fresh deck.
	g := newStackedGame(t, "2h 2d 2c 2s", []string{"Alice"})
	g.StartNewRound()
	require.Zero(t, g.DeckRemaining())

	require.True(t, g.Hit())
	assert.Equal(t, 3, g.Player("Alice").Hand().Len())
	assert.Equal(t, deck.Size-1, g.DeckRemaining())
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		player string
		dealer string
		want   Outcome
	}{
		{"player bust", "Th Td 5c", "Ts 9s", OutcomeLoss},
		{"player bust loses to dealer bust", "Th Td 5c", "Ts 6s Kc", OutcomeLoss},
		{"dealer bust", "Th 2d", "Ts 6s Kc", OutcomeWin},
		{"blackjack", "Ah Kd", "Ts Qs", OutcomeBlackjack},
		{"blackjack vs blackjack", "Ah Kd", "As Qs", OutcomePush},
		{"blackjack vs dealer three-card 21", "Ah Kd", "7s 7d 7c", OutcomeBlackjack},
		{"higher", "Th Td", "Ts 8s", OutcomeWin},
		{"equal", "Th 9d", "Ts 9s", OutcomePush},
		{"lower", "Th 7d", "Ts 8s", OutcomeLoss},
		{"three-card 21 vs dealer blackjack", "7h 7d 7c", "As Qs", OutcomePush},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(hand(tt.player), hand(tt.dealer)))
		})
	}
}
