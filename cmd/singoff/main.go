package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Host a tournament in the terminal"`
	Serve    ServeCmd         `cmd:"" help:"Run the WebSocket server for remote host UIs"`
	Simulate SimulateCmd      `cmd:"" help:"Run seeded headless tournaments"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("singoff"),
		kong.Description("Tournament engine for grid-based team sing-offs"),
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
