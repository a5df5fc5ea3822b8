package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/MonaAghili/public-notes/cmd/notes/commands"
	"github.com/MonaAghili/public-notes/internal/errors"
	"github.com/MonaAghili/public-notes/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("notes"),
		kong.Description("Index a directory of markdown notes and serve or export them."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	global := &commands.Global{Logger: slog.Default()}
	if err := ctx.Run(global, &cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
