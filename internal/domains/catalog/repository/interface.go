package repository

import (
	"context"

	"library-catalog/internal/domains/catalog/model"
)

// AuthorRepository - Author data access over document-store primitives.
// Lookup misses are (nil, nil), not errors: "author not found" is a
// business-level outcome the service decides how to handle.
type AuthorRepository interface {
	// Create inserts a new author.
	// Returns model.ErrDuplicateAuthor when the unique index on name
	// rejects the insert (two writers raced on the same new name).
	Create(ctx context.Context, author *model.Author) error

	// FindByName retrieves an author by exact name match.
	// Returns (nil, nil) when no author matches.
	FindByName(ctx context.Context, name string) (*model.Author, error)

	// FindAll retrieves every author in insertion order
	FindAll(ctx context.Context) ([]model.Author, error)

	// FindByIDs resolves a set of author references in one call.
	// Missing ids are simply absent from the result map.
	FindByIDs(ctx context.Context, ids []string) (map[string]model.Author, error)

	// Count returns the number of author documents
	Count(ctx context.Context) (int, error)

	// SetBornByName updates the born year of the author with the given
	// name and returns the updated document.
	// Returns (nil, nil) when no author matches.
	SetBornByName(ctx context.Context, name string, born int) (*model.Author, error)
}

// BookRepository - Book data access over document-store primitives
type BookRepository interface {
	// Create inserts a new book
	Create(ctx context.Context, book *model.Book) error

	// Find retrieves books in insertion order. A non-nil genre is
	// applied as a store-level "genres contains" predicate; the author
	// filter is join semantics and is NOT handled here.
	Find(ctx context.Context, genre *string) ([]model.Book, error)

	// FindByID retrieves a single book.
	// Returns (nil, nil) when no book matches.
	FindByID(ctx context.Context, id string) (*model.Book, error)

	// Count returns the number of book documents
	Count(ctx context.Context) (int, error)
}
