// Package store holds the in-memory slug to record map behind the index.
package store

import (
	"strings"
	"sync"

	"github.com/MonaAghili/public-notes/internal/note"
)

// Store maps slugs to immutable records. Reads take the shared lock only
// long enough to copy out pointers, so callers never iterate under the
// lock and always see whole records, old or new.
type Store struct {
	mu      sync.RWMutex
	records map[string]*note.Record
	order   []string // slugs in first-insertion order, drives Snapshot
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		records: make(map[string]*note.Record),
	}
}

// Get returns the record for slug, or nil when absent.
func (s *Store) Get(slug string) *note.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[slug]
}

// Upsert inserts or replaces the record under record.Slug. First insertion
// fixes the slug's position in snapshot order; replacement keeps it.
func (s *Store) Upsert(record *note.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[record.Slug]; !exists {
		s.order = append(s.order, record.Slug)
	}
	s.records[record.Slug] = record
}

// Delete removes the record under slug. Reports whether it was present.
func (s *Store) Delete(slug string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[slug]; !exists {
		return false
	}
	delete(s.records, slug)
	for i, known := range s.order {
		if known == slug {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Snapshot returns the current records in first-insertion order. The slice
// is the caller's; the records stay shared and immutable.
func (s *Store) Snapshot() []*note.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*note.Record, 0, len(s.order))
	for _, slug := range s.order {
		out = append(out, s.records[slug])
	}
	return out
}

// HasPrefix reports whether any slug lives under the given tree prefix
// ("dir" matches "dir/..."). Used to recognize directory removals from
// watch events that cannot stat the vanished path.
func (s *Store) HasPrefix(prefix string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix += "/"
	for slug := range s.records {
		if strings.HasPrefix(slug, prefix) {
			return true
		}
	}
	return false
}

// Clear drops all records, resetting snapshot order.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]*note.Record)
	s.order = nil
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
