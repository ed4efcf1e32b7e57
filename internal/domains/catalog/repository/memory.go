package repository

import (
	"context"
	"slices"
	"sync"

	"library-catalog/internal/domains/catalog/model"
)

// In-memory repositories backing tests and MONGODB-less development.
// They honor the same contracts as the Mongo implementations: insertion
// order on Find, (nil, nil) on lookup misses, ErrDuplicateAuthor from
// the name uniqueness constraint.

type MemoryAuthorRepository struct {
	mu      sync.RWMutex
	authors []model.Author
}

func NewMemoryAuthorRepository() *MemoryAuthorRepository {
	return &MemoryAuthorRepository{}
}

func (r *MemoryAuthorRepository) Create(_ context.Context, author *model.Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.authors {
		if a.Name == author.Name {
			return model.ErrDuplicateAuthor
		}
	}
	r.authors = append(r.authors, *author)
	return nil
}

func (r *MemoryAuthorRepository) FindByName(_ context.Context, name string) (*model.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.authors {
		if a.Name == name {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (r *MemoryAuthorRepository) FindAll(_ context.Context) ([]model.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.authors), nil
}

func (r *MemoryAuthorRepository) FindByIDs(_ context.Context, ids []string) (map[string]model.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byID := make(map[string]model.Author, len(ids))
	for _, a := range r.authors {
		if slices.Contains(ids, a.ID) {
			byID[a.ID] = a
		}
	}
	return byID, nil
}

func (r *MemoryAuthorRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.authors), nil
}

func (r *MemoryAuthorRepository) SetBornByName(_ context.Context, name string, born int) (*model.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.authors {
		if r.authors[i].Name == name {
			b := born
			r.authors[i].Born = &b
			updated := r.authors[i]
			return &updated, nil
		}
	}
	return nil, nil
}

type MemoryBookRepository struct {
	mu    sync.RWMutex
	books []model.Book
}

func NewMemoryBookRepository() *MemoryBookRepository {
	return &MemoryBookRepository{}
}

func (r *MemoryBookRepository) Create(_ context.Context, book *model.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books = append(r.books, *book)
	return nil
}

func (r *MemoryBookRepository) Find(_ context.Context, genre *string) ([]model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := []model.Book{}
	for _, b := range r.books {
		if genre != nil && !slices.Contains(b.Genres, *genre) {
			continue
		}
		books = append(books, b)
	}
	return books, nil
}

func (r *MemoryBookRepository) FindByID(_ context.Context, id string) (*model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.books {
		if b.ID == id {
			found := b
			return &found, nil
		}
	}
	return nil, nil
}

func (r *MemoryBookRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.books), nil
}
