package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AddBookRequest - POST /v1/books
// Shape validation happens here (required fields); the business rules
// (minimum title length, minimum author name length on create) live in
// the service layer so they apply to every caller, not just HTTP.
type AddBookRequest struct {
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Published int      `json:"published"`
	Genres    []string `json:"genres"`
}

func (r AddBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Author, validation.Required),
		validation.Field(&r.Published, validation.Min(0)),
	)
}

// EditAuthorRequest - PATCH /v1/authors
type EditAuthorRequest struct {
	Name      string `json:"name"`
	SetBornTo int    `json:"setBornTo"`
}

func (r EditAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.SetBornTo, validation.Min(0)),
	)
}

// BookFilter - query parameters for GET /v1/books
// Genre is applied as a store-level predicate. Author is a join filter:
// books are resolved first and books whose author name does not match
// are dropped from the result.
type BookFilter struct {
	Author *string `json:"author,omitempty" form:"author"`
	Genre  *string `json:"genre,omitempty" form:"genre"`
}

// BookResponse - book view with the author reference resolved
type BookResponse struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Published int      `json:"published"`
	Genres    []string `json:"genres"`
	Author    string   `json:"author"`
}

// AuthorResponse - author view with the derived book count filled in
type AuthorResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Born      *int   `json:"born,omitempty"`
	BookCount int    `json:"bookCount"`
}

// CountResponse - GET /v1/books/count and /v1/authors/count
type CountResponse struct {
	Count int `json:"count"`
}

// BookAddedEvent is pushed to every connected subscriber after a
// successful addBook. Delivery is best-effort and at-most-once.
type BookAddedEvent struct {
	Book BookResponse `json:"book"`
}

// ToResponse converts Book to its resolved view
func (b *Book) ToResponse(authorName string) BookResponse {
	return BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Published: b.Published,
		Genres:    b.Genres,
		Author:    authorName,
	}
}

// ToResponse converts Author to AuthorResponse with the given count
func (a *Author) ToResponse(bookCount int) AuthorResponse {
	return AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		Born:      a.Born,
		BookCount: bookCount,
	}
}
