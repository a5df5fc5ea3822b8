// Package search implements substring search over the indexed records.
package search

import (
	"strings"

	"github.com/MonaAghili/public-notes/internal/errors"
	"github.com/MonaAghili/public-notes/internal/note"
)

const (
	// MaxResults caps how many matches one query returns.
	MaxResults = 20
	// MaxQueryLen is the longest accepted query in bytes. Longer input is
	// rejected before any record is scanned.
	MaxQueryLen = 512
)

// Result is one search hit. The note body never appears here; Description
// comes from metadata only.
type Result struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Evaluate scans records in snapshot order for case-insensitive substring
// matches against the title or plain body text. An empty query matches
// nothing rather than everything.
func Evaluate(records []*note.Record, query string) ([]Result, error) {
	if len(query) > MaxQueryLen {
		return nil, errors.QueryTooLarge(len(query), MaxQueryLen)
	}

	results := make([]Result, 0)
	if query == "" {
		return results, nil
	}

	needle := strings.ToLower(query)
	for _, rec := range records {
		if !matches(rec, needle) {
			continue
		}
		results = append(results, Result{
			Slug:        rec.Slug,
			Title:       rec.Title,
			Description: rec.Meta.Description,
		})
		if len(results) == MaxResults {
			break
		}
	}
	return results, nil
}

func matches(rec *note.Record, needle string) bool {
	if strings.Contains(strings.ToLower(rec.Title), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(rec.Text), needle)
}
