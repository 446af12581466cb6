package main

import (
	"github.com/alecthomas/kong"
	"github.com/lox/blackjack/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `kong:"default='blackjack.hcl',help='Path to HCL config file'"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play blackjack in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Simulate rounds with a fixed strategy"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Single-deck blackjack against the dealer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	cfg, err := config.Load(cli.Config)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(cfg)
	ctx.FatalIfErrorf(err)
}
