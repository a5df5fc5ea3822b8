// Package commands defines the notes CLI: init, scan, export and serve.
package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// Global carries state shared across subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI is the root command definition with global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"notes.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init   InitCmd   `cmd:"" help:"Initialize a new configuration file"`
	Scan   ScanCmd   `cmd:"" help:"List the notes the index would contain without building"`
	Export ExportCmd `cmd:"" help:"Render all notes to a static site"`
	Serve  ServeCmd  `cmd:"" help:"Serve the notes with live updates"`
}

// AfterApply runs after flag parsing and installs the default logger.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}
