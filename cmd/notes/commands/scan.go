package commands

import (
	"context"
	"fmt"

	"github.com/MonaAghili/public-notes/internal/config"
	"github.com/MonaAghili/public-notes/internal/index"
	"github.com/MonaAghili/public-notes/internal/nav"
)

// ScanCmd implements the 'scan' command: index once and list the result.
type ScanCmd struct{}

func (s *ScanCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	contentRoot, err := resolveContentRoot(cfg)
	if err != nil {
		return err
	}

	ix := index.New(contentRoot)
	if err := ix.Reload(context.Background()); err != nil {
		return err
	}

	for _, rec := range ix.Snapshot() {
		fmt.Printf("%-40s %-30s %s\n", rec.Slug, rec.Title, rec.Path)
	}
	fmt.Printf("\n%d notes, %d navigation entries\n", ix.Len(), nav.CountFiles(ix.Tree()))
	return nil
}
