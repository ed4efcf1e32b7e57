package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/catalog/model"
	"library-catalog/internal/domains/catalog/repository"
	usermodel "library-catalog/internal/domains/user/model"
)

// notifierRecorder captures published events for assertions
type notifierRecorder struct {
	mu     sync.Mutex
	events []model.BookAddedEvent
}

func (n *notifierRecorder) Publish(event model.BookAddedEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *notifierRecorder) Events() []model.BookAddedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.BookAddedEvent{}, n.events...)
}

type fixture struct {
	service  Service
	authors  *repository.MemoryAuthorRepository
	books    *repository.MemoryBookRepository
	notifier *notifierRecorder
	identity *usermodel.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	authors := repository.NewMemoryAuthorRepository()
	books := repository.NewMemoryBookRepository()
	notifier := &notifierRecorder{}

	return &fixture{
		service:  NewCatalogService(authors, books, notifier),
		authors:  authors,
		books:    books,
		notifier: notifier,
		identity: &usermodel.User{ID: uuid.NewString(), Username: "mluukkai", FavoriteGenre: "refactoring"},
	}
}

// seed loads the catalog used across the query tests
func (f *fixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	type entry struct {
		author    string
		title     string
		published int
		genres    []string
	}
	entries := []entry{
		{"Robert Martin", "Clean Code", 2008, []string{"refactoring"}},
		{"Robert Martin", "Agile software development", 2002, []string{"agile", "patterns", "design"}},
		{"Martin Fowler", "Refactoring, edition 2", 2018, []string{"refactoring"}},
		{"Fyodor Dostoevsky", "Crime and punishment", 1866, []string{"classic", "crime"}},
		{"Fyodor Dostoevsky", "Demons", 1872, []string{"classic", "horror"}},
	}

	for _, e := range entries {
		_, err := f.service.AddBook(ctx, &model.AddBookRequest{
			Title:     e.title,
			Author:    e.author,
			Published: e.published,
			Genres:    e.genres,
		}, f.identity)
		require.NoError(t, err)
	}
}

func titles(books []model.BookResponse) []string {
	out := []string{}
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}

func TestAllBooks(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	ctx := context.Background()

	t.Run("no filters returns every book in insertion order", func(t *testing.T) {
		books, err := f.service.AllBooks(ctx, model.BookFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"Clean Code",
			"Agile software development",
			"Refactoring, edition 2",
			"Crime and punishment",
			"Demons",
		}, titles(books))
		assert.Equal(t, "Robert Martin", books[0].Author)
	})

	t.Run("genre filter only", func(t *testing.T) {
		genre := "refactoring"
		books, err := f.service.AllBooks(ctx, model.BookFilter{Genre: &genre})
		require.NoError(t, err)
		assert.Equal(t, []string{"Clean Code", "Refactoring, edition 2"}, titles(books))
	})

	t.Run("author filter drops non-matching books", func(t *testing.T) {
		author := "Robert Martin"
		books, err := f.service.AllBooks(ctx, model.BookFilter{Author: &author})
		require.NoError(t, err)
		assert.Equal(t, []string{"Clean Code", "Agile software development"}, titles(books))
	})

	t.Run("author and genre combined", func(t *testing.T) {
		author := "Robert Martin"
		genre := "refactoring"
		books, err := f.service.AllBooks(ctx, model.BookFilter{Author: &author, Genre: &genre})
		require.NoError(t, err)
		assert.Equal(t, []string{"Clean Code"}, titles(books))
	})

	t.Run("unknown author yields empty set, not nil", func(t *testing.T) {
		author := "Nobody"
		books, err := f.service.AllBooks(ctx, model.BookFilter{Author: &author})
		require.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)
	})

	t.Run("unknown genre yields empty set, not nil", func(t *testing.T) {
		genre := "poetry"
		books, err := f.service.AllBooks(ctx, model.BookFilter{Genre: &genre})
		require.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)
	})
}

func TestAuthorBookCount(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	ctx := context.Background()

	count, err := f.service.AuthorBookCount(ctx, "Robert Martin")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// the count is derived, never cached: it reflects a new book
	// immediately after the write
	_, err = f.service.AddBook(ctx, &model.AddBookRequest{
		Title:     "Patterns of Enterprise Application Architecture",
		Author:    "Martin Fowler",
		Published: 2002,
		Genres:    []string{"patterns", "design"},
	}, f.identity)
	require.NoError(t, err)

	count, err = f.service.AuthorBookCount(ctx, "Martin Fowler")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = f.service.AuthorBookCount(ctx, "Nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAllAuthors(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	authors, err := f.service.AllAuthors(context.Background())
	require.NoError(t, err)
	require.Len(t, authors, 3)

	counts := map[string]int{}
	for _, a := range authors {
		counts[a.Name] = a.BookCount
	}
	assert.Equal(t, map[string]int{
		"Robert Martin":     2,
		"Martin Fowler":     1,
		"Fyodor Dostoevsky": 2,
	}, counts)
}

func TestCounts(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	ctx := context.Background()

	bookCount, err := f.service.BookCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, bookCount)

	authorCount, err := f.service.AuthorCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, authorCount)
}

func TestAddBook(t *testing.T) {
	ctx := context.Background()

	t.Run("title length boundary", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.AddBook(ctx, &model.AddBookRequest{
			Title:     "abc",
			Author:    "Robert Martin",
			Published: 2008,
			Genres:    []string{"refactoring"},
		}, f.identity)

		var invalid *model.InvalidInputError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "too short title", invalid.Message)
		assert.Equal(t, "abc", invalid.Args["title"])

		book, err := f.service.AddBook(ctx, &model.AddBookRequest{
			Title:     "abcd",
			Author:    "Robert Martin",
			Published: 2008,
			Genres:    []string{"refactoring"},
		}, f.identity)
		require.NoError(t, err)
		assert.Equal(t, "abcd", book.Title)
		assert.Equal(t, "Robert Martin", book.Author)
	})

	t.Run("unknown author is created exactly once", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.AddBook(ctx, &model.AddBookRequest{
			Title:     "Clean Code",
			Author:    "Robert Martin",
			Published: 2008,
			Genres:    []string{"refactoring"},
		}, f.identity)
		require.NoError(t, err)

		_, err = f.service.AddBook(ctx, &model.AddBookRequest{
			Title:     "Agile software development",
			Author:    "Robert Martin",
			Published: 2002,
			Genres:    []string{"agile"},
		}, f.identity)
		require.NoError(t, err)

		count, err := f.authors.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("new author name below minimum fails", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.AddBook(ctx, &model.AddBookRequest{
			Title:     "Some long enough title",
			Author:    "Li",
			Published: 2000,
			Genres:    []string{"classic"},
		}, f.identity)

		var invalid *model.InvalidInputError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "too short author name", invalid.Message)
	})

	t.Run("existing short-named author stays referenceable", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.authors.Create(ctx, &model.Author{ID: uuid.NewString(), Name: "Li"}))

		book, err := f.service.AddBook(ctx, &model.AddBookRequest{
			Title:     "Some long enough title",
			Author:    "Li",
			Published: 2000,
			Genres:    []string{"classic"},
		}, f.identity)
		require.NoError(t, err)
		assert.Equal(t, "Li", book.Author)
	})

	t.Run("empty genre set is allowed", func(t *testing.T) {
		f := newFixture(t)

		book, err := f.service.AddBook(ctx, &model.AddBookRequest{
			Title:     "Untagged book",
			Author:    "Robert Martin",
			Published: 2008,
			Genres:    []string{},
		}, f.identity)
		require.NoError(t, err)
		assert.Empty(t, book.Genres)
	})

	t.Run("without identity nothing is written", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.AddBook(ctx, &model.AddBookRequest{
			Title:     "Clean Code",
			Author:    "Robert Martin",
			Published: 2008,
			Genres:    []string{"refactoring"},
		}, nil)
		require.ErrorIs(t, err, model.ErrUnauthenticated)

		bookCount, err := f.books.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, bookCount)

		authorCount, err := f.authors.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, authorCount)
		assert.Empty(t, f.notifier.Events())
	})

	t.Run("publishes the resolved book view", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.AddBook(ctx, &model.AddBookRequest{
			Title:     "Clean Code",
			Author:    "Robert Martin",
			Published: 2008,
			Genres:    []string{"refactoring"},
		}, f.identity)
		require.NoError(t, err)

		events := f.notifier.Events()
		require.Len(t, events, 1)
		assert.Equal(t, "Clean Code", events[0].Book.Title)
		assert.Equal(t, "Robert Martin", events[0].Book.Author)
		assert.Equal(t, []string{"refactoring"}, events[0].Book.Genres)
		assert.Equal(t, 2008, events[0].Book.Published)
	})
}

// blindAuthorRepo simulates the concurrent-writer race: the first
// lookup misses even though the author exists, so the service runs
// into the unique-index rejection and must recover via re-lookup.
type blindAuthorRepo struct {
	*repository.MemoryAuthorRepository
	missed bool
}

func (r *blindAuthorRepo) FindByName(ctx context.Context, name string) (*model.Author, error) {
	if !r.missed {
		r.missed = true
		return nil, nil
	}
	return r.MemoryAuthorRepository.FindByName(ctx, name)
}

func TestAddBookDuplicateAuthorRace(t *testing.T) {
	ctx := context.Background()

	authors := &blindAuthorRepo{MemoryAuthorRepository: repository.NewMemoryAuthorRepository()}
	books := repository.NewMemoryBookRepository()
	notifier := &notifierRecorder{}
	svc := NewCatalogService(authors, books, notifier)

	existing := &model.Author{ID: uuid.NewString(), Name: "Robert Martin"}
	require.NoError(t, authors.MemoryAuthorRepository.Create(ctx, existing))

	identity := &usermodel.User{ID: uuid.NewString(), Username: "mluukkai"}
	book, err := svc.AddBook(ctx, &model.AddBookRequest{
		Title:     "Clean Code",
		Author:    "Robert Martin",
		Published: 2008,
		Genres:    []string{"refactoring"},
	}, identity)
	require.NoError(t, err)
	assert.Equal(t, "Robert Martin", book.Author)

	// the losing writer reused the winner's document
	count, err := authors.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, err := books.FindByID(ctx, book.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, existing.ID, stored.AuthorID)
}

func TestEditAuthor(t *testing.T) {
	ctx := context.Background()

	t.Run("sets the born year", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t)

		author, err := f.service.EditAuthor(ctx, &model.EditAuthorRequest{
			Name:      "Robert Martin",
			SetBornTo: 1952,
		}, f.identity)
		require.NoError(t, err)
		require.NotNil(t, author)
		require.NotNil(t, author.Born)
		assert.Equal(t, 1952, *author.Born)
		assert.Equal(t, 2, author.BookCount)
	})

	t.Run("nonexistent author returns absent result, not an error", func(t *testing.T) {
		f := newFixture(t)

		author, err := f.service.EditAuthor(ctx, &model.EditAuthorRequest{
			Name:      "Nobody",
			SetBornTo: 1900,
		}, f.identity)
		require.NoError(t, err)
		assert.Nil(t, author)
	})

	t.Run("without identity fails", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t)

		_, err := f.service.EditAuthor(ctx, &model.EditAuthorRequest{
			Name:      "Robert Martin",
			SetBornTo: 1952,
		}, nil)
		require.ErrorIs(t, err, model.ErrUnauthenticated)
	})
}

func TestAllBooksExcludesUnresolvableAuthor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t)

	// a book whose author reference resolves to nothing must be
	// excluded from results rather than crash the join
	require.NoError(t, f.books.Create(ctx, &model.Book{
		ID:        uuid.NewString(),
		Title:     "Orphaned book",
		Published: 1999,
		Genres:    []string{"classic"},
		AuthorID:  "missing-author",
	}))

	books, err := f.service.AllBooks(ctx, model.BookFilter{})
	require.NoError(t, err)
	assert.NotContains(t, titles(books), "Orphaned book")

	author := "Fyodor Dostoevsky"
	filtered, err := f.service.AllBooks(ctx, model.BookFilter{Author: &author})
	require.NoError(t, err)
	assert.Equal(t, []string{"Crime and punishment", "Demons"}, titles(filtered))
}

func TestAddBookErrors(t *testing.T) {
	// generic store failures and validation failures share one error
	// channel on purpose
	var invalid *model.InvalidInputError
	err := model.NewInvalidInput("boom", map[string]interface{}{"title": "x"})
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "BAD_USER_INPUT", model.ToErrorCode(err))
	assert.Equal(t, "UNAUTHENTICATED", model.ToErrorCode(model.ErrUnauthenticated))
}
