package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/simulator"
)

// SimulateCmd plays many rounds headlessly and reports the results
type SimulateCmd struct {
	Rounds  int    `kong:"help='Number of rounds to play'"`
	Workers int    `kong:"help='Parallel workers'"`
	StandOn int    `kong:"name='stand-on',help='Hit while the hand is below this value'"`
	Bet     int    `kong:"help='Flat bet per round'"`
	Seed    *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Out     string `kong:"type='path',help='Also write the report to this file'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run(cfg *config.Config) error {
	sim := &cfg.Simulation
	if c.Rounds != 0 {
		sim.Rounds = c.Rounds
	}
	if c.Workers != 0 {
		sim.Workers = c.Workers
	}
	if c.StandOn != 0 {
		sim.StandOn = c.StandOn
	}
	if c.Bet != 0 {
		sim.Bet = c.Bet
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level := cfg.Level()
	if c.Debug {
		level = log.DebugLevel
	}
	logger := newLogger(os.Stderr, level)

	seed := randutil.Seed(c.Seed)
	simConfig := simulator.Config{
		Rounds:  sim.Rounds,
		Workers: sim.Workers,
		StandOn: sim.StandOn,
		Bet:     sim.Bet,
		Seed:    seed,
		Logger:  logger,
	}

	logger.Info("Starting simulation",
		"rounds", simConfig.Rounds,
		"workers", simConfig.Workers,
		"stand_on", simConfig.StandOn,
		"bet", simConfig.Bet,
		"seed", seed)

	ctx := setupSignalHandler(logger)
	start := time.Now()
	stats, err := simulator.New(simConfig).Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	logger.Info("Simulation complete", "duration", time.Since(start).Round(time.Millisecond))
	simulator.Report(os.Stdout, simConfig, stats)

	if c.Out != "" {
		err := fileutil.WriteAtomic(c.Out, 0o644, func(w io.Writer) error {
			simulator.Report(w, simConfig, stats)
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("Report written", "path", c.Out)
	}
	return nil
}
