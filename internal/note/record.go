// Package note defines the page record model and the loader that turns a
// file on disk into one. Records are immutable after construction; an
// updated note replaces the whole record under the same slug.
package note

import (
	"time"
)

// Record is the indexed form of a single note.
type Record struct {
	Slug    string    `json:"slug"`
	Title   string    `json:"title"`
	HTML    string    `json:"html"`
	Text    string    `json:"-"`
	Meta    Metadata  `json:"meta"`
	Path    string    `json:"path"`
	ModTime time.Time `json:"mod_time"`
}
