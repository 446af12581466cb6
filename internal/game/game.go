package game

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/lox/blackjack/internal/deck"
)

var (
	// ErrRoundInProgress is returned for table changes attempted mid-round
	ErrRoundInProgress = errors.New("round in progress")
	// ErrDuplicatePlayer is returned when a name is already seated
	ErrDuplicatePlayer = errors.New("player already seated")
	// ErrUnknownPlayer is returned when a name is not seated
	ErrUnknownPlayer = errors.New("unknown player")
)

// Game runs rounds of single-deck blackjack between the dealer and the
// seated players. It is the only thing that mutates the deck, hands and
// chip balances, and it is not safe for concurrent use: callers serialize
// actions, as a UI event loop does.
type Game struct {
	deck    *deck.Deck
	players []*Player
	dealer  *Player

	state      GameState
	current    *Player
	pending    []*Player
	sequential bool

	round   int
	roundID string
	results []Result
	settled bool

	startingChips int
	logger        *log.Logger
	clock         quartz.Clock
	subscribers   []EventSubscriber
}

// NewGame creates a game with an empty table. The RNG drives all shuffles,
// so a seeded RNG replays a session exactly.
//
//	g := game.NewGame(randutil.New(42), game.WithLogger(logger))
//	g.AddPlayer("Alice")
//	g.StartNewRound()
func NewGame(rng *rand.Rand, opts ...Option) *Game {
	if rng == nil {
		panic("rng is required for game creation")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	d := cfg.deck
	if d == nil {
		d = deck.NewDeck(rng)
	}

	return &Game{
		deck:          d,
		dealer:        NewDealer(),
		state:         RoundOver,
		sequential:    cfg.sequential,
		startingChips: cfg.startingChips,
		logger:        cfg.logger.WithPrefix("game"),
		clock:         cfg.clock,
		subscribers:   cfg.subscribers,
	}
}

// AddPlayer seats a new player with the starting balance.
func (g *Game) AddPlayer(name string) (*Player, error) {
	if g.inProgress() {
		return nil, ErrRoundInProgress
	}
	if g.findPlayer(name) != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, name)
	}
	p := NewPlayer(name, g.startingChips)
	g.players = append(g.players, p)
	g.logger.Info("Player seated", "name", name, "chips", p.chips)
	return p, nil
}

// PlaceBet stakes amount for the named player on the next round. A stake
// already on the table is refunded first, so a second call replaces the bet
// and the limit is chips plus that earlier stake.
func (g *Game) PlaceBet(name string, amount int) error {
	if g.inProgress() {
		return ErrRoundInProgress
	}
	p := g.findPlayer(name)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, name)
	}
	if err := p.PlaceBet(amount); err != nil {
		g.logger.Debug("Bet rejected", "name", name, "amount", amount, "error", err)
		return err
	}
	g.logger.Info("Bet placed", "name", name, "amount", amount, "chips", p.chips)
	return nil
}

// StartNewRound resets the deck, clears every hand and deals two cards to
// each player and then two to the dealer, the dealer's second card face
// down. Stakes already on the table ride on the new deal, including those
// of a round abandoned before settlement.
func (g *Game) StartNewRound() {
	if len(g.players) == 0 {
		panic("game: StartNewRound called with no players")
	}

	g.deck.Reset()
	g.dealer.ClearHand()
	for _, p := range g.players {
		p.ClearHand()
	}

	for _, p := range g.players {
		p.hand.AddCard(g.deck.Draw())
		p.hand.AddCard(g.deck.Draw())
	}
	upCard := g.deck.Draw()
	g.dealer.hand.AddCard(upCard)
	hole := g.deck.Draw()
	hole.SetFaceUp(false)
	g.dealer.hand.AddCard(hole)

	g.round++
	g.roundID = uuid.NewString()
	g.results = nil
	g.settled = false
	g.state = Playing
	g.current = g.players[0]
	g.pending = nil
	if g.sequential {
		g.pending = append(g.pending, g.players[1:]...)
	}

	names := make([]string, len(g.players))
	for i, p := range g.players {
		names[i] = p.name
		g.logger.Debug("Dealt", "player", p.name, "hand", p.hand.String(), "value", p.hand.Value())
	}
	g.logger.Info("Round started", "round", g.round, "id", g.roundID, "dealer", g.dealer.hand.String())

	g.publish(RoundStartedEvent{
		RoundID:    g.roundID,
		Round:      g.round,
		Players:    names,
		DealerCard: *upCard,
		timestamp:  g.clock.Now(),
	})
}

// Hit draws a card for the active player. It reports false and does nothing
// outside the Playing state. A bust ends the active player's turn; in the
// default single-player flow it ends the round.
func (g *Game) Hit() bool {
	if g.state != Playing {
		g.logger.Debug("Ignoring hit", "state", g.state)
		return false
	}

	p := g.current
	card := g.deck.Draw()
	p.hand.AddCard(card)
	bust := p.hand.IsBust()

	g.logger.Info("Hit", "player", p.name, "card", card.String(), "value", p.hand.Value(), "bust", bust)
	drawn := *card
	g.publish(PlayerActionEvent{
		RoundID:   g.roundID,
		Player:    p.name,
		Action:    Hit,
		Card:      &drawn,
		Value:     p.hand.Value(),
		Bust:      bust,
		timestamp: g.clock.Now(),
	})

	if bust {
		if g.sequential {
			g.advance()
		} else {
			g.endOnBust(p)
		}
	}
	return true
}

// Stay ends the active player's turn. It reports false and does nothing
// outside the Playing state.
func (g *Game) Stay() bool {
	if g.state != Playing {
		g.logger.Debug("Ignoring stay", "state", g.state)
		return false
	}

	p := g.current
	g.logger.Info("Stay", "player", p.name, "value", p.hand.Value())
	g.publish(PlayerActionEvent{
		RoundID:   g.roundID,
		Player:    p.name,
		Action:    Stay,
		Value:     p.hand.Value(),
		timestamp: g.clock.Now(),
	})

	if g.sequential {
		g.advance()
	} else {
		g.dealerTurn()
	}
	return true
}

// advance hands the turn to the next queued player, or to the dealer.
func (g *Game) advance() {
	if len(g.pending) > 0 {
		g.current = g.pending[0]
		g.pending = g.pending[1:]
		g.logger.Debug("Next player", "player", g.current.name)
		return
	}
	g.dealerTurn()
}

// dealerTurn reveals the hole card, draws while below 17 and settles.
func (g *Game) dealerTurn() {
	g.state = DealerTurn
	hand := g.dealer.hand

	var hole deck.Card
	if hand.Len() > 1 {
		hole = *hand.cards[1]
	}
	hand.RevealAll()
	hole.SetFaceUp(true)
	g.logger.Debug("Hole card revealed", "card", hole.String(), "value", hand.Value())
	g.publish(HoleCardRevealedEvent{
		RoundID:   g.roundID,
		Card:      hole,
		Value:     hand.Value(),
		timestamp: g.clock.Now(),
	})

	for hand.Value() < DealerStandsOn {
		card := g.deck.Draw()
		hand.AddCard(card)
		g.logger.Debug("Dealer draws", "card", card.String(), "value", hand.Value())
		g.publish(DealerDrawEvent{
			RoundID:   g.roundID,
			Card:      *card,
			Value:     hand.Value(),
			timestamp: g.clock.Now(),
		})
	}

	g.evaluate()
}

// evaluate settles every player against the dealer exactly once.
func (g *Game) evaluate() {
	if g.settled {
		return
	}

	dealerHand := g.dealer.hand
	results := make([]Result, 0, len(g.players))
	for _, p := range g.players {
		outcome := Evaluate(p.hand, dealerHand)
		results = append(results, g.settle(p, outcome))
	}
	g.finish(results)
}

// endOnBust closes a single-player round early. The busted player loses;
// anyone else seated never got to act and has their stake returned.
func (g *Game) endOnBust(busted *Player) {
	if g.settled {
		return
	}

	results := make([]Result, 0, len(g.players))
	for _, p := range g.players {
		if p == busted {
			results = append(results, g.settle(p, OutcomeLoss))
			continue
		}
		bet := p.currentBet
		p.refund()
		results = append(results, Result{
			Player:  p.name,
			Outcome: OutcomePush,
			Value:   p.hand.Value(),
			Bet:     bet,
		})
	}
	g.finish(results)
}

func (g *Game) settle(p *Player, outcome Outcome) Result {
	bet := p.currentBet
	delta := p.Settle(outcome)
	g.logger.Info("Settled", "player", p.name, "outcome", outcome, "bet", bet, "delta", delta, "chips", p.chips)
	return Result{
		Player:  p.name,
		Outcome: outcome,
		Value:   p.hand.Value(),
		Bet:     bet,
		Delta:   delta,
		Bust:    p.hand.IsBust(),
	}
}

func (g *Game) finish(results []Result) {
	g.results = results
	g.settled = true
	g.state = RoundOver
	g.pending = nil

	g.logger.Info("Round over", "round", g.round, "dealer", g.dealer.hand.String(), "dealer_value", g.dealer.hand.Value())
	g.publish(RoundSettledEvent{
		RoundID:     g.roundID,
		Results:     g.Results(),
		DealerValue: g.dealer.hand.Value(),
		DealerBust:  g.dealer.hand.IsBust(),
		timestamp:   g.clock.Now(),
	})
}

func (g *Game) inProgress() bool {
	return g.state == Playing || g.state == DealerTurn
}

func (g *Game) findPlayer(name string) *Player {
	for _, p := range g.players {
		if p.name == name {
			return p
		}
	}
	return nil
}

// State returns the current phase
func (g *Game) State() GameState { return g.state }

// CurrentPlayer returns the player whose turn it is, or the last player to
// act once the round is over. It is nil before the first round.
func (g *Game) CurrentPlayer() *Player { return g.current }

// Dealer returns the house player
func (g *Game) Dealer() *Player { return g.dealer }

// Players returns the seated players in turn order
func (g *Game) Players() []*Player {
	out := make([]*Player, len(g.players))
	copy(out, g.players)
	return out
}

// Player returns the named player, or nil
func (g *Game) Player(name string) *Player { return g.findPlayer(name) }

// Round returns the number of rounds dealt so far
func (g *Game) Round() int { return g.round }

// RoundID returns the identifier of the current or last round
func (g *Game) RoundID() string { return g.roundID }

// Results returns how each player was settled in the last finished round
func (g *Game) Results() []Result {
	out := make([]Result, len(g.results))
	copy(out, g.results)
	return out
}

// Wins returns rounds won across all players, blackjacks included
func (g *Game) Wins() int {
	total := 0
	for _, p := range g.players {
		total += p.wins
	}
	return total
}

// Losses returns rounds lost across all players
func (g *Game) Losses() int {
	total := 0
	for _, p := range g.players {
		total += p.losses
	}
	return total
}

// Pushes returns tied rounds across all players
func (g *Game) Pushes() int {
	total := 0
	for _, p := range g.players {
		total += p.pushes
	}
	return total
}

// DeckRemaining returns the cards left before the deck auto-reshuffles
func (g *Game) DeckRemaining() int { return g.deck.Remaining() }
