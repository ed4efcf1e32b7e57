package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"library-catalog/internal/domains/catalog/model"
)

const (
	authorCollection = "authors"
	bookCollection   = "books"
)

// mongoAuthorRepository implements AuthorRepository on MongoDB
type mongoAuthorRepository struct {
	coll *mongo.Collection
}

// NewMongoAuthorRepository creates the author repository and ensures
// the unique index on name. The index is what turns the check-then-insert
// race into a detectable duplicate-key failure instead of two documents
// with the same name.
func NewMongoAuthorRepository(ctx context.Context, db *mongo.Database) (AuthorRepository, error) {
	coll := db.Collection(authorCollection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create author name index: %w", err)
	}

	return &mongoAuthorRepository{coll: coll}, nil
}

func (r *mongoAuthorRepository) Create(ctx context.Context, author *model.Author) error {
	_, err := r.coll.InsertOne(ctx, author)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrDuplicateAuthor
		}
		return fmt.Errorf("failed to insert author: %w", err)
	}
	return nil
}

func (r *mongoAuthorRepository) FindByName(ctx context.Context, name string) (*model.Author, error) {
	var author model.Author
	err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&author)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find author by name: %w", err)
	}
	return &author, nil
}

func (r *mongoAuthorRepository) FindAll(ctx context.Context) ([]model.Author, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}

	authors := []model.Author{}
	if err := cursor.All(ctx, &authors); err != nil {
		return nil, fmt.Errorf("failed to decode authors: %w", err)
	}
	return authors, nil
}

func (r *mongoAuthorRepository) FindByIDs(ctx context.Context, ids []string) (map[string]model.Author, error) {
	if len(ids) == 0 {
		return map[string]model.Author{}, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve author references: %w", err)
	}

	var authors []model.Author
	if err := cursor.All(ctx, &authors); err != nil {
		return nil, fmt.Errorf("failed to decode authors: %w", err)
	}

	byID := make(map[string]model.Author, len(authors))
	for _, a := range authors {
		byID[a.ID] = a
	}
	return byID, nil
}

func (r *mongoAuthorRepository) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count authors: %w", err)
	}
	return int(n), nil
}

func (r *mongoAuthorRepository) SetBornByName(ctx context.Context, name string, born int) (*model.Author, error) {
	var author model.Author
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"name": name},
		bson.M{"$set": bson.M{"born": born}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&author)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update author born year: %w", err)
	}
	return &author, nil
}

// mongoBookRepository implements BookRepository on MongoDB
type mongoBookRepository struct {
	coll *mongo.Collection
}

// NewMongoBookRepository creates the book repository with an index on
// the author reference for the per-author count scans.
func NewMongoBookRepository(ctx context.Context, db *mongo.Database) (BookRepository, error) {
	coll := db.Collection(bookCollection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "author_id", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create book author index: %w", err)
	}

	return &mongoBookRepository{coll: coll}, nil
}

func (r *mongoBookRepository) Create(ctx context.Context, book *model.Book) error {
	_, err := r.coll.InsertOne(ctx, book)
	if err != nil {
		return fmt.Errorf("failed to insert book: %w", err)
	}
	return nil
}

func (r *mongoBookRepository) Find(ctx context.Context, genre *string) ([]model.Book, error) {
	filter := bson.M{}
	if genre != nil {
		// array-contains predicate, matches mongoose `{ genres: genre }`
		filter["genres"] = *genre
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	books := []model.Book{}
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("failed to decode books: %w", err)
	}
	return books, nil
}

func (r *mongoBookRepository) FindByID(ctx context.Context, id string) (*model.Book, error) {
	var book model.Book
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&book)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find book: %w", err)
	}
	return &book, nil
}

func (r *mongoBookRepository) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return int(n), nil
}
