package note

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/MonaAghili/public-notes/internal/errors"
	"github.com/MonaAghili/public-notes/internal/markdown"
	"github.com/MonaAghili/public-notes/internal/slug"
)

// Loader reads note files and assembles Records. It holds the markdown
// converter so a single instance can serve concurrent callers.
type Loader struct {
	conv *markdown.Converter
}

// NewLoader creates a Loader with the default converter.
func NewLoader() *Loader {
	return &Loader{conv: markdown.NewConverter()}
}

// Load reads the note at absPath and builds its Record. relPath is the path
// relative to the content root and determines the slug. Load is a pure
// transform aside from the reads; the caller owns store insertion.
func (l *Loader) Load(absPath, relPath string) (*Record, error) {
	// #nosec G304 -- paths come from the content root walk and watcher, not user input.
	raw, err := os.ReadFile(absPath)
	if err != nil {
		return nil, errors.ReadFailed(absPath, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, errors.ReadFailed(absPath, err)
	}

	fm, body, err := l.conv.Convert(raw)
	if err != nil {
		return nil, errors.ParseFailed(relPath, err)
	}

	meta := MetadataFrom(fm)
	rel := filepath.ToSlash(relPath)

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = titleFallback(rel)
	}

	html := string(body)
	return &Record{
		Slug:    slug.FromPath(rel),
		Title:   title,
		HTML:    html,
		Text:    markdown.ExtractText(body),
		Meta:    meta,
		Path:    rel,
		ModTime: info.ModTime(),
	}, nil
}

// titleFallback derives a display title from the file name when front
// matter has none: base name without extension.
func titleFallback(relPath string) string {
	base := filepath.Base(relPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
