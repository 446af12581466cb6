package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/deck"
)

// Option configures a Game during creation.
type Option func(*config)

type config struct {
	logger        *log.Logger
	clock         quartz.Clock
	deck          *deck.Deck
	startingChips int
	sequential    bool
	subscribers   []EventSubscriber
}

// WithLogger sets the logger. The game logs under the "game" prefix.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithClock sets the clock used to timestamp events.
func WithClock(clock quartz.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithDeck uses a prepared deck instead of one built from the RNG.
func WithDeck(d *deck.Deck) Option {
	return func(c *config) {
		c.deck = d
	}
}

// WithStartingChips overrides the opening balance of players added later.
func WithStartingChips(chips int) Option {
	return func(c *config) {
		c.startingChips = chips
	}
}

// WithSequentialTurns lets every player act in turn before the dealer.
// Without it only the first player acts: stay goes straight to the dealer and
// a bust ends the round.
func WithSequentialTurns() Option {
	return func(c *config) {
		c.sequential = true
	}
}

// WithSubscriber registers an event subscriber at construction.
func WithSubscriber(sub EventSubscriber) Option {
	return func(c *config) {
		c.subscribers = append(c.subscribers, sub)
	}
}

func defaultConfig() *config {
	return &config{
		logger:        log.NewWithOptions(io.Discard, log.Options{}),
		clock:         quartz.NewReal(),
		startingChips: StartingChips,
	}
}
