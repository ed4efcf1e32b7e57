package client

// containsTitle reports whether the set already holds the book.
// Matching is by title equality: two distinct books sharing a title
// are indistinguishable here (known limitation, kept to match the
// server's event payload which callers may have fetched themselves).
func containsTitle(set []Book, book Book) bool {
	for _, b := range set {
		if b.Title == book.Title {
			return true
		}
	}
	return false
}

// ApplyBookAdded merges a pushed bookAdded event into every cached
// query result the book belongs to:
//
//  1. If the unfiltered entry already holds the book, the event is a
//     duplicate delivery (or the client fetched the book itself) and
//     nothing happens.
//  2. Otherwise the book is appended to the unfiltered entry.
//  3. For each of the book's genres, the book is appended to that
//     genre's entry only if the entry is already materialized; views
//     never visited stay absent and will be populated by a normal
//     fetch on first visit.
//
// Each entry is guarded independently, so no entry ever holds the
// same book twice regardless of delivery order.
func (s *Store) ApplyBookAdded(book Book) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if all, ok := s.entries[allBooksKey]; ok {
		if containsTitle(all, book) {
			return
		}
		s.entries[allBooksKey] = append(all, book)
	}

	for _, genre := range book.Genres {
		entry, ok := s.entries[genre]
		if !ok {
			continue
		}
		if !containsTitle(entry, book) {
			s.entries[genre] = append(entry, book)
		}
	}
}
