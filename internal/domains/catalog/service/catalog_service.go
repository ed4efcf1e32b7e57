package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"

	"library-catalog/internal/domains/catalog/model"
	"library-catalog/internal/domains/catalog/repository"
	usermodel "library-catalog/internal/domains/user/model"
	"library-catalog/internal/infrastructure/events"
	"library-catalog/pkg/logger"
)

// catalogService implements Service
type catalogService struct {
	authors  repository.AuthorRepository
	books    repository.BookRepository
	notifier events.Notifier
}

func NewCatalogService(
	authors repository.AuthorRepository,
	books repository.BookRepository,
	notifier events.Notifier,
) Service {
	return &catalogService{
		authors:  authors,
		books:    books,
		notifier: notifier,
	}
}

// resolveBooks joins books against the author collection. A book whose
// author reference cannot be resolved is excluded from the result
// rather than returned with an empty author.
func (s *catalogService) resolveBooks(ctx context.Context, books []model.Book) ([]model.BookResponse, error) {
	ids := make([]string, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.AuthorID)
	}

	authorsByID, err := s.authors.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := []model.BookResponse{}
	for _, b := range books {
		author, ok := authorsByID[b.AuthorID]
		if !ok {
			logger.Warn("book references missing author", map[string]interface{}{
				"book_id":   b.ID,
				"author_id": b.AuthorID,
			})
			continue
		}
		views = append(views, b.ToResponse(author.Name))
	}
	return views, nil
}

func (s *catalogService) AllBooks(ctx context.Context, filter model.BookFilter) ([]model.BookResponse, error) {
	books, err := s.books.Find(ctx, filter.Genre)
	if err != nil {
		return nil, err
	}

	views, err := s.resolveBooks(ctx, books)
	if err != nil {
		return nil, err
	}

	if filter.Author == nil {
		return views, nil
	}

	// join-and-drop: keep only books whose resolved author name
	// matches the filter exactly
	matched := []model.BookResponse{}
	for _, v := range views {
		if v.Author == *filter.Author {
			matched = append(matched, v)
		}
	}
	return matched, nil
}

func (s *catalogService) AllAuthors(ctx context.Context) ([]model.AuthorResponse, error) {
	authors, err := s.authors.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	// One resolved pass over the book collection serves every
	// author's count; the count itself is still derived per read.
	books, err := s.books.Find(ctx, nil)
	if err != nil {
		return nil, err
	}
	views, err := s.resolveBooks(ctx, books)
	if err != nil {
		return nil, err
	}

	countByName := make(map[string]int, len(authors))
	for _, v := range views {
		countByName[v.Author]++
	}

	responses := []model.AuthorResponse{}
	for _, a := range authors {
		responses = append(responses, a.ToResponse(countByName[a.Name]))
	}
	return responses, nil
}

func (s *catalogService) AuthorBookCount(ctx context.Context, name string) (int, error) {
	books, err := s.books.Find(ctx, nil)
	if err != nil {
		return 0, err
	}
	views, err := s.resolveBooks(ctx, books)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, v := range views {
		if v.Author == name {
			count++
		}
	}
	return count, nil
}

func (s *catalogService) BookCount(ctx context.Context) (int, error) {
	return s.books.Count(ctx)
}

func (s *catalogService) AuthorCount(ctx context.Context) (int, error) {
	return s.authors.Count(ctx)
}

func (s *catalogService) AddBook(ctx context.Context, req *model.AddBookRequest, identity *usermodel.User) (*model.BookResponse, error) {
	if identity == nil {
		return nil, model.ErrUnauthenticated
	}

	invalidArgs := map[string]interface{}{
		"title":     req.Title,
		"author":    req.Author,
		"published": req.Published,
		"genres":    req.Genres,
	}

	// title rule applies before any store access
	if utf8.RuneCountInString(req.Title) < model.MinTitleLength {
		return nil, model.NewInvalidInput("too short title", invalidArgs)
	}

	author, err := s.authors.FindByName(ctx, req.Author)
	if err != nil {
		return nil, model.NewInvalidInput(err.Error(), invalidArgs)
	}

	if author == nil {
		// name rule only gates the creation of a NEW author; an
		// existing short-named author stays referenceable
		if utf8.RuneCountInString(req.Author) < model.MinAuthorNameLength {
			return nil, model.NewInvalidInput("too short author name", invalidArgs)
		}

		author = &model.Author{
			ID:   uuid.NewString(),
			Name: req.Author,
		}
		if err := s.authors.Create(ctx, author); err != nil {
			if errors.Is(err, model.ErrDuplicateAuthor) {
				// lost the race against a concurrent writer for the
				// same new name: the unique index rejected the insert,
				// reuse the winner's document
				author, err = s.authors.FindByName(ctx, req.Author)
				if err != nil || author == nil {
					return nil, model.NewInvalidInput("author lookup failed after duplicate insert", invalidArgs)
				}
			} else {
				return nil, model.NewInvalidInput(err.Error(), invalidArgs)
			}
		}
	}

	book := &model.Book{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Published: req.Published,
		Genres:    req.Genres,
		AuthorID:  author.ID,
	}
	if err := s.books.Create(ctx, book); err != nil {
		return nil, model.NewInvalidInput(err.Error(), invalidArgs)
	}

	// re-read the persisted document with the author resolved
	stored, err := s.books.FindByID(ctx, book.ID)
	if err != nil || stored == nil {
		return nil, model.NewInvalidInput("book lookup failed after insert", invalidArgs)
	}
	view := stored.ToResponse(author.Name)

	// fire-and-forget: subscribers may observe the event before or
	// after this mutation's caller receives its response
	s.notifier.Publish(model.BookAddedEvent{Book: view})

	return &view, nil
}

func (s *catalogService) EditAuthor(ctx context.Context, req *model.EditAuthorRequest, identity *usermodel.User) (*model.AuthorResponse, error) {
	if identity == nil {
		return nil, model.ErrUnauthenticated
	}

	author, err := s.authors.SetBornByName(ctx, req.Name, req.SetBornTo)
	if err != nil {
		return nil, model.NewInvalidInput(err.Error(), map[string]interface{}{
			"name":      req.Name,
			"setBornTo": req.SetBornTo,
		})
	}
	if author == nil {
		// not-found is an absent result, not an error
		return nil, nil
	}

	count, err := s.AuthorBookCount(ctx, author.Name)
	if err != nil {
		return nil, err
	}
	view := author.ToResponse(count)
	return &view, nil
}
