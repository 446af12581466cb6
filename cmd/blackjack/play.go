package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/tui"
)

// PlayCmd runs an interactive game in the terminal
type PlayCmd struct {
	Name    string `kong:"help='Player name (skips the start screen)'"`
	Seed    *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Bet     int    `kong:"help='Opening bet (defaults to config default_bet)'"`
	NoColor bool   `kong:"help='Disable colour output'"`
}

func (c *PlayCmd) Run(cfg *config.Config) error {
	if c.Name != "" {
		cfg.Player.Name = c.Name
	}
	if c.Bet != 0 {
		cfg.Player.DefaultBet = c.Bet
	}
	if c.NoColor {
		cfg.UI.NoColor = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logFile, err := openLogFile(cfg.UI.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	logger := newLogger(logFile, cfg.Level())
	if cfg.UI.NoColor {
		tui.DisableColor()
	}

	seed := randutil.Seed(c.Seed)
	logger.Info("Starting blackjack", "seed", seed, "player", cfg.Player.Name, "bet", cfg.Player.DefaultBet)

	g := game.NewGame(randutil.New(seed), game.WithLogger(logger))
	model := tui.NewModel(g, logger, tui.Options{
		Name: cfg.Player.Name,
		Bet:  cfg.Player.DefaultBet,
	})

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}

	logger.Info("Session over", "rounds", g.Round(), "wins", g.Wins(), "losses", g.Losses(), "pushes", g.Pushes())
	return nil
}
