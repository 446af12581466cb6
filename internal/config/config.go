package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultFile is the configuration file looked up when no path is given
const DefaultFile = "blackjack.hcl"

// Config represents the complete blackjack configuration
type Config struct {
	Player     PlayerSettings
	UI         UISettings
	Simulation SimulationSettings
}

// PlayerSettings contains player-specific settings
type PlayerSettings struct {
	Name       string `hcl:"name,optional"`
	DefaultBet int    `hcl:"default_bet,optional"`
}

// UISettings contains user interface settings
type UISettings struct {
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
	NoColor  bool   `hcl:"no_color,optional"`
}

// SimulationSettings contains defaults for the simulate command
type SimulationSettings struct {
	Rounds  int `hcl:"rounds,optional"`
	Workers int `hcl:"workers,optional"`
	StandOn int `hcl:"stand_on,optional"`
	Bet     int `hcl:"bet,optional"`
}

// file mirrors Config with optional blocks so a partial file decodes
type file struct {
	Player     *PlayerSettings     `hcl:"player,block"`
	UI         *UISettings         `hcl:"ui,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Player: PlayerSettings{
			DefaultBet: 10,
		},
		UI: UISettings{
			LogLevel: "info",
			LogFile:  "blackjack.log",
		},
		Simulation: SimulationSettings{
			Rounds:  10000,
			Workers: 4,
			StandOn: 17,
			Bet:     10,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	if p := raw.Player; p != nil {
		config.Player.Name = p.Name
		if p.DefaultBet != 0 {
			config.Player.DefaultBet = p.DefaultBet
		}
	}
	if ui := raw.UI; ui != nil {
		if ui.LogLevel != "" {
			config.UI.LogLevel = ui.LogLevel
		}
		if ui.LogFile != "" {
			config.UI.LogFile = ui.LogFile
		}
		config.UI.NoColor = ui.NoColor
	}
	if sim := raw.Simulation; sim != nil {
		if sim.Rounds != 0 {
			config.Simulation.Rounds = sim.Rounds
		}
		if sim.Workers != 0 {
			config.Simulation.Workers = sim.Workers
		}
		if sim.StandOn != 0 {
			config.Simulation.StandOn = sim.StandOn
		}
		if sim.Bet != 0 {
			config.Simulation.Bet = sim.Bet
		}
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Player.DefaultBet < 0 {
		return fmt.Errorf("default bet cannot be negative")
	}
	if c.Simulation.Rounds < 1 {
		return fmt.Errorf("simulation rounds must be positive")
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("simulation workers must be at least 1")
	}
	if c.Simulation.StandOn < 2 || c.Simulation.StandOn > 21 {
		return fmt.Errorf("stand_on must be between 2 and 21, got %d", c.Simulation.StandOn)
	}
	if c.Simulation.Bet < 1 {
		return fmt.Errorf("simulation bet must be positive")
	}
	if _, err := log.ParseLevel(c.UI.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}
	return nil
}

// Level returns the parsed log level, falling back to info
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.UI.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
