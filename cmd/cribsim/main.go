package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Run a batch of cribbage games"`
	Analyze  AnalyzeCmd       `cmd:"" help:"Analyze an exported hands.csv"`
	Score    ScoreCmd         `cmd:"" help:"Score a single hand against a starter"`
	Rules    RulesCmd         `cmd:"" help:"Print the scoring rules the simulator plays by"`
	Init     InitCmd          `cmd:"" help:"Write an annotated example config file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cribsim"),
		kong.Description("Deterministic two-player cribbage simulator with per-hand analytics"),
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
