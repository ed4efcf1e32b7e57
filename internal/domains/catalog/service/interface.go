package service

import (
	"context"

	"library-catalog/internal/domains/catalog/model"
	usermodel "library-catalog/internal/domains/user/model"
)

// Service defines the catalog query/mutation logic.
// Identity is an explicit parameter on mutations: there is no hidden
// request-scoped state, callers pass the resolved principal (or nil
// for an unauthenticated context) on every call.
type Service interface {
	// AllBooks resolves the combinatorial book filter:
	// - no filters: every book, author resolved
	// - genre only: store-level genre predicate, author resolved
	// - author only: resolve all books, keep only those whose author
	//   name matches exactly; non-matching books are dropped, not
	//   returned author-less
	// - both: genre predicate first, then the same join-and-drop
	// Result order is store insertion order. Never nil.
	AllBooks(ctx context.Context, filter model.BookFilter) ([]model.BookResponse, error)

	// AllAuthors returns every author with the derived book count
	// filled in. The count is recomputed from the book collection on
	// every call and is never cached server-side.
	AllAuthors(ctx context.Context) ([]model.AuthorResponse, error)

	// AuthorBookCount recomputes the number of books whose resolved
	// author name equals name. O(total books) per call.
	AuthorBookCount(ctx context.Context, name string) (int, error)

	// BookCount returns the total number of books
	BookCount(ctx context.Context) (int, error)

	// AuthorCount returns the total number of authors
	AuthorCount(ctx context.Context) (int, error)

	// AddBook persists a new book, creating its author on first
	// reference, and publishes a bookAdded event on success.
	// Errors: model.ErrUnauthenticated when identity is nil;
	// *model.InvalidInputError for short title (< 4), short new author
	// name (< 3), and any store failure during the write sequence.
	AddBook(ctx context.Context, req *model.AddBookRequest, identity *usermodel.User) (*model.BookResponse, error)

	// EditAuthor sets the born year of the named author.
	// Returns (nil, nil) when no author matches; callers must treat a
	// nil result as business-level not-found.
	// Errors: model.ErrUnauthenticated when identity is nil;
	// *model.InvalidInputError for store failures.
	EditAuthor(ctx context.Context, req *model.EditAuthorRequest, identity *usermodel.User) (*model.AuthorResponse, error)
}
