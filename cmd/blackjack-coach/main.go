package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play blackjack with live probability coaching"`
	Odds     OddsCmd          `cmd:"" help:"Analyse a single hand against a dealer up card"`
	Simulate SimulateCmd      `cmd:"" help:"Auto-play rounds following basic strategy and report statistics"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack-coach"),
		kong.Description("Blackjack probability coach: play a hand with live odds, counts and strategy advice"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
