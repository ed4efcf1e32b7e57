package client

import (
	"slices"
	"sync"
)

// allBooksKey is the cache key for the unfiltered view (no genre filter)
const allBooksKey = ""

// Store holds the locally cached query results, one entry per genre
// filter plus the unfiltered view. Entries exist only for views that
// have actually been fetched; an absent entry means "not yet
// materialized", never a fault.
type Store struct {
	mu      sync.RWMutex
	entries map[string][]Book
}

func NewStore() *Store {
	return &Store{
		entries: make(map[string][]Book),
	}
}

func key(genre *string) string {
	if genre == nil {
		return allBooksKey
	}
	return *genre
}

// Get returns the cached result set for the given genre filter and
// whether that entry has been materialized
func (s *Store) Get(genre *string) ([]Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books, ok := s.entries[key(genre)]
	if !ok {
		return nil, false
	}
	return slices.Clone(books), true
}

// Put replaces the cache entry for the given genre filter with a
// freshly fetched result set
func (s *Store) Put(genre *string, books []Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key(genre)] = slices.Clone(books)
}

// Genres returns the merged set of genres across the unfiltered
// entry, in first-appearance order
func (s *Store) Genres() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	genres := []string{}
	for _, b := range s.entries[allBooksKey] {
		for _, g := range b.Genres {
			if !seen[g] {
				seen[g] = true
				genres = append(genres, g)
			}
		}
	}
	return genres
}
