// Package client is the catalog view layer: an HTTP client that keeps
// a locally cached copy of query results consistent with server-pushed
// bookAdded events.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Book is the client-side book view with the author name embedded
type Book struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Published int      `json:"published"`
	Genres    []string `json:"genres"`
	Author    string   `json:"author"`
}

// Author is the client-side author view
type Author struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Born      *int   `json:"born,omitempty"`
	BookCount int    `json:"bookCount"`
}

// Identity is the authenticated principal as reported by the server
type Identity struct {
	ID            string   `json:"id"`
	Username      string   `json:"username"`
	FavoriteGenre string   `json:"favoriteGenre"`
	Friends       []string `json:"friends"`
}

// envelope mirrors the server's response format
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data"`
	Error   *envelopeError  `json:"error,omitempty"`
}

type envelopeError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// APIError is a non-success response from the server
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Client talks to the catalog API and maintains the local cache store
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	store      *Store
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken presets the bearer credential
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		store:      NewStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store exposes the local cache
func (c *Client) Store() *Store {
	return c.store
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !env.Success {
		apiErr := &APIError{Status: resp.StatusCode, Code: "UNKNOWN", Message: "request failed"}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}

// Login authenticates and keeps the signed credential for subsequent
// requests
func (c *Client) Login(ctx context.Context, username, password string) error {
	var token struct {
		Value string `json:"value"`
	}
	err := c.do(ctx, http.MethodPost, "/api/v1/login", map[string]string{
		"username": username,
		"password": password,
	}, &token)
	if err != nil {
		return err
	}
	c.token = token.Value
	return nil
}

// Me returns the resolved identity, or nil when the client is
// unauthenticated
func (c *Client) Me(ctx context.Context) (*Identity, error) {
	var identity *Identity
	if err := c.do(ctx, http.MethodGet, "/api/v1/me", nil, &identity); err != nil {
		return nil, err
	}
	return identity, nil
}

// Books fetches the (optionally genre-filtered) book list and
// materializes the matching cache entry
func (c *Client) Books(ctx context.Context, genre *string) ([]Book, error) {
	path := "/api/v1/books"
	if genre != nil {
		path += "?genre=" + url.QueryEscape(*genre)
	}

	books := []Book{}
	if err := c.do(ctx, http.MethodGet, path, nil, &books); err != nil {
		return nil, err
	}

	c.store.Put(genre, books)
	return books, nil
}

// Authors fetches every author with the derived book count
func (c *Client) Authors(ctx context.Context) ([]Author, error) {
	authors := []Author{}
	if err := c.do(ctx, http.MethodGet, "/api/v1/authors", nil, &authors); err != nil {
		return nil, err
	}
	return authors, nil
}

// AddBook submits a new book. The local cache is not updated here:
// the bookAdded event arriving on the subscription is the single
// reconciliation path, and it is idempotent against books the client
// already fetched.
func (c *Client) AddBook(ctx context.Context, title, author string, published int, genres []string) (*Book, error) {
	var book Book
	err := c.do(ctx, http.MethodPost, "/api/v1/books", map[string]interface{}{
		"title":     title,
		"author":    author,
		"published": published,
		"genres":    genres,
	}, &book)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// EditAuthor sets an author's born year. A nil result means the
// author does not exist.
func (c *Client) EditAuthor(ctx context.Context, name string, setBornTo int) (*Author, error) {
	var author *Author
	err := c.do(ctx, http.MethodPatch, "/api/v1/authors", map[string]interface{}{
		"name":      name,
		"setBornTo": setBornTo,
	}, &author)
	if err != nil {
		return nil, err
	}
	return author, nil
}

// Recommended fetches the books in the identity's favorite genre
func (c *Client) Recommended(ctx context.Context) ([]Book, error) {
	identity, err := c.Me(ctx)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, &APIError{Status: http.StatusUnauthorized, Code: "UNAUTHENTICATED", Message: "log in to get recommendations"}
	}
	return c.Books(ctx, &identity.FavoriteGenre)
}
