// Package slug converts between on-disk note paths and the slug identifiers
// used everywhere else: store keys, URLs, tree node paths, export output.
package slug

import (
	"path/filepath"
	"strings"

	"github.com/MonaAghili/public-notes/internal/errors"
)

// CanonicalExt is the extension ToPath appends. FromPath accepts the wider
// set of note extensions, so a note stored as .markdown canonicalizes to a
// .md path on the way back.
const CanonicalExt = ".md"

var noteExtensions = []string{".md", ".markdown", ".mdown", ".mkd"}

// IsNotePath reports whether name carries a recognized note extension.
func IsNotePath(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, noteExt := range noteExtensions {
		if ext == noteExt {
			return true
		}
	}
	return false
}

// FromPath derives the slug for a path relative to the content root.
// Separators normalize to forward slashes; a recognized note extension is
// stripped. Nothing else changes: case and whitespace pass through, so two
// paths that differ only in separator style map to the same slug.
func FromPath(relPath string) string {
	s := filepath.ToSlash(relPath)
	if IsNotePath(s) {
		s = strings.TrimSuffix(s, filepath.Ext(s))
	}
	return s
}

// ToPath converts a slug back to a root-relative file path in slash form.
func ToPath(s string) string {
	return s + CanonicalExt
}

// ToOSPath converts a slug to a root-relative path using the OS separator.
func ToOSPath(s string) string {
	return filepath.FromSlash(ToPath(s))
}

// Validate checks an externally supplied slug before it is used in any
// lookup. Internal slugs derived from disk paths are never validated; this
// guards only the outside edge (URLs, CLI arguments).
func Validate(s string) error {
	if s == "" {
		return errors.InvalidSlug(s, "empty")
	}
	for _, segment := range strings.Split(s, "/") {
		if segment == ".." {
			return errors.InvalidSlug(s, "parent directory segment")
		}
	}
	for _, r := range s {
		if !isAllowedRune(r) {
			return errors.InvalidSlug(s, "character outside [A-Za-z0-9/_-]")
		}
	}
	return nil
}

func isAllowedRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '/' || r == '_' || r == '-':
		return true
	}
	return false
}
