package commands

import (
	"context"

	"github.com/MonaAghili/public-notes/internal/config"
	"github.com/MonaAghili/public-notes/internal/export"
	"github.com/MonaAghili/public-notes/internal/index"
)

// ExportCmd implements the 'export' command: one-shot static site build.
type ExportCmd struct {
	Output string `short:"o" help:"Output directory (overrides config)"`
	Clean  bool   `help:"Remove the output directory before writing"`
}

func (e *ExportCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	contentRoot, err := resolveContentRoot(cfg)
	if err != nil {
		return err
	}

	outDir := cfg.Output.Directory
	if e.Output != "" {
		outDir = e.Output
	}
	clean := cfg.Output.Clean || e.Clean

	ix := index.New(contentRoot)
	if err := ix.Reload(context.Background()); err != nil {
		return err
	}

	exporter, err := export.New(outDir, clean, export.Site{
		Title:       cfg.Site.Title,
		Description: cfg.Site.Description,
		BaseURL:     cfg.Site.BaseURL,
	})
	if err != nil {
		return err
	}
	return exporter.Export(ix.Tree(), ix.Snapshot(), contentRoot)
}
