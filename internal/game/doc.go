// Package game implements the rules engine for single-deck blackjack.
//
// The main type is Game, which owns the deck, the seated players and the
// dealer, and moves each round through a small state machine:
//
//	StartNewRound → Playing → DealerTurn → RoundOver
//
// # Basic Usage
//
//	g := game.NewGame(randutil.New(42))
//	g.AddPlayer("Alice")
//	g.PlaceBet("Alice", 100)
//	g.StartNewRound()
//	g.Hit()
//	g.Stay() // dealer plays and the round is settled
//	for _, r := range g.Results() {
//	    fmt.Println(r.Player, r.Outcome, r.Delta)
//	}
//
// Hit and Stay outside the Playing state are ignored and report false. Bets
// are only accepted between rounds.
//
// # Deterministic Testing
//
// NewGame requires an RNG so shuffles are reproducible. For exact control
// over the deal, pass a stacked deck:
//
//	d := deck.NewStackedDeck(rng, deck.MustParseCards("Ah Kd 9c 7s")...)
//	g := game.NewGame(rng, game.WithDeck(d))
//
// Cards are dealt two to each player in seat order, then two to the dealer
// with the second face down.
//
// # Turn Order
//
// By default only the first seated player acts. WithSequentialTurns queues
// every seated player ahead of the dealer instead.
package game
