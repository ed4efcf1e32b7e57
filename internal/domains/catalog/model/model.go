package model

// Author is a catalog author document.
// BookCount is intentionally NOT stored: it is derived from the book
// collection on every read so it can never drift (see service layer).
type Author struct {
	ID   string `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
	Born *int   `json:"born,omitempty" bson:"born,omitempty"`
}

// Book is a catalog book document.
// AuthorID is an owning reference to exactly one Author document.
type Book struct {
	ID        string   `json:"id" bson:"_id"`
	Title     string   `json:"title" bson:"title"`
	Published int      `json:"published" bson:"published"`
	Genres    []string `json:"genres" bson:"genres"`
	AuthorID  string   `json:"author_id" bson:"author_id"`
}

// Validation constants
const (
	MinTitleLength      = 4
	MinAuthorNameLength = 3
)
