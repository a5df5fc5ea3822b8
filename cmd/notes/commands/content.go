package commands

import (
	"github.com/MonaAghili/public-notes/internal/config"
	"github.com/MonaAghili/public-notes/internal/gitsource"
)

// resolveContentRoot returns the directory the index should read. With a
// git source configured the checkout is synchronized first.
func resolveContentRoot(cfg *config.Config) (string, error) {
	if cfg.Source == nil {
		return cfg.Content.Root, nil
	}
	src := gitsource.New(*cfg.Source)
	checkout, err := src.Sync()
	if err != nil {
		return "", err
	}
	return cfg.ContentRoot(checkout), nil
}
