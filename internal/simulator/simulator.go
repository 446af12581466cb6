package simulator

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
	"golang.org/x/sync/errgroup"
)

const playerName = "Sim"

// Config holds configuration for running simulations
type Config struct {
	Rounds  int
	Workers int
	StandOn int // player hits while below this value
	Bet     int
	Seed    int64
	Logger  *log.Logger
}

// Validate reports configuration that cannot be simulated
func (c Config) Validate() error {
	if c.Rounds < 1 {
		return fmt.Errorf("rounds must be at least 1, got %d", c.Rounds)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.StandOn < 2 || c.StandOn > game.BlackjackValue {
		return fmt.Errorf("stand-on must be between 2 and %d, got %d", game.BlackjackValue, c.StandOn)
	}
	if c.Bet < 1 || c.Bet > game.StartingChips {
		return fmt.Errorf("bet must be between 1 and %d, got %d", game.StartingChips, c.Bet)
	}
	return nil
}

// Simulator plays blackjack rounds headlessly with a fixed strategy
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	logger := config.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Simulator{config: config, logger: logger.WithPrefix("sim")}
}

// Run plays all rounds, split across workers, and returns the merged results.
// Each worker owns its own game and RNG stream derived from the seed, so a
// given seed and worker count always produce the same totals.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	workers := min(s.config.Workers, s.config.Rounds)
	perWorker := s.config.Rounds / workers
	remainder := s.config.Rounds % workers

	results := make([]*statistics.Statistics, workers)
	g, ctx := errgroup.WithContext(ctx)

	for w := range workers {
		rounds := perWorker
		if w < remainder {
			rounds++
		}
		seed := randutil.Derive(s.config.Seed, w)

		g.Go(func() error {
			stats, err := s.runWorker(ctx, w, rounds, seed)
			if err != nil {
				return err
			}
			results[w] = stats
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := &statistics.Statistics{}
	for _, r := range results {
		total.Merge(r)
	}
	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return total, nil
}

func (s *Simulator) runWorker(ctx context.Context, worker, rounds int, seed int64) (*statistics.Statistics, error) {
	logger := s.logger.With("worker", worker)
	rng := randutil.New(seed)
	stats := &statistics.Statistics{}

	gameLogger := quietGameLogger(logger)

	newTable := func() *game.Game {
		g := game.NewGame(rng, game.WithLogger(gameLogger))
		if _, err := g.AddPlayer(playerName); err != nil {
			panic(err)
		}
		return g
	}

	table := newTable()
	rebuys := 0
	for round := range rounds {
		if round%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		if table.Player(playerName).Chips() < s.config.Bet {
			table = newTable()
			rebuys++
		}
		if err := table.PlaceBet(playerName, s.config.Bet); err != nil {
			return nil, fmt.Errorf("worker %d round %d: %w", worker, round, err)
		}

		s.playRound(table)

		dealerBust := table.Dealer().Hand().IsBust()
		for _, r := range table.Results() {
			stats.Add(statistics.FromResult(r, dealerBust))
		}
	}

	logger.Debug("Worker finished", "rounds", rounds, "net", stats.NetChips, "rebuys", rebuys)
	return stats, nil
}

// quietGameLogger derives the logger handed to each game. Per-hit logging is
// only kept at debug level; otherwise the game logs at warn or above, and
// never below the worker's own level.
func quietGameLogger(logger *log.Logger) *log.Logger {
	gameLogger := logger.With()
	if gameLogger.GetLevel() > log.DebugLevel {
		gameLogger.SetLevel(max(gameLogger.GetLevel(), log.WarnLevel))
	}
	return gameLogger
}

// playRound deals a round and plays the simple "hit below StandOn" strategy
func (s *Simulator) playRound(table *game.Game) {
	table.StartNewRound()
	hand := table.CurrentPlayer().Hand()
	for table.State() == game.Playing && hand.Value() < s.config.StandOn {
		table.Hit()
	}
	if table.State() == game.Playing {
		table.Stay()
	}
}

// Report writes a summary of simulation results
func Report(w io.Writer, config Config, stats *statistics.Statistics) {
	fmt.Fprintf(w, "\n=== RESULTS: hit below %d, flat bet %d, seed %d ===\n",
		config.StandOn, config.Bet, config.Seed)
	fmt.Fprint(w, stats.Summary())
	fmt.Fprintf(w, "Percentiles:  P5=%.1f P25=%.1f P50=%.1f P75=%.1f P95=%.1f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Median(),
		stats.Percentile(0.75), stats.Percentile(0.95))
}
