package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/catalog/model"
	"library-catalog/internal/domains/catalog/service"
	"library-catalog/internal/shared/middleware"
	"library-catalog/internal/shared/response"
)

type CatalogHandler struct {
	service service.Service
}

func NewCatalogHandler(svc service.Service) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// READ: AllBooks - GET /v1/books?author=&genre=
// ════════════════════════════════════════════════════════════════

func (h *CatalogHandler) AllBooks(c *gin.Context) {
	var filter model.BookFilter
	if author, ok := c.GetQuery("author"); ok {
		filter.Author = &author
	}
	if genre, ok := c.GetQuery("genre"); ok {
		filter.Genre = &genre
	}

	books, err := h.service.AllBooks(c.Request.Context(), filter)
	if model.HandleCatalogError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, "Books retrieved successfully", books)
}

// ════════════════════════════════════════════════════════════════
// READ: BookCount - GET /v1/books/count
// ════════════════════════════════════════════════════════════════

func (h *CatalogHandler) BookCount(c *gin.Context) {
	count, err := h.service.BookCount(c.Request.Context())
	if model.HandleCatalogError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, "Book count retrieved successfully", model.CountResponse{Count: count})
}

// ════════════════════════════════════════════════════════════════
// READ: AllAuthors - GET /v1/authors
// ════════════════════════════════════════════════════════════════

func (h *CatalogHandler) AllAuthors(c *gin.Context) {
	authors, err := h.service.AllAuthors(c.Request.Context())
	if model.HandleCatalogError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, "Authors retrieved successfully", authors)
}

// ════════════════════════════════════════════════════════════════
// READ: AuthorCount - GET /v1/authors/count
// ════════════════════════════════════════════════════════════════

func (h *CatalogHandler) AuthorCount(c *gin.Context) {
	count, err := h.service.AuthorCount(c.Request.Context())
	if model.HandleCatalogError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, "Author count retrieved successfully", model.CountResponse{Count: count})
}

// ════════════════════════════════════════════════════════════════
// MUTATION: AddBook - POST /v1/books
// ════════════════════════════════════════════════════════════════

func (h *CatalogHandler) AddBook(c *gin.Context) {
	var req model.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	identity := middleware.IdentityFromContext(c)

	book, err := h.service.AddBook(c.Request.Context(), &req, identity)
	if model.HandleCatalogError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, "Book added successfully", book)
}

// ════════════════════════════════════════════════════════════════
// MUTATION: EditAuthor - PATCH /v1/authors
// ════════════════════════════════════════════════════════════════

func (h *CatalogHandler) EditAuthor(c *gin.Context) {
	var req model.EditAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	identity := middleware.IdentityFromContext(c)

	author, err := h.service.EditAuthor(c.Request.Context(), &req, identity)
	if model.HandleCatalogError(c, err) {
		return
	}

	// a null author is "not found"; callers handle it, not an error
	response.Success(c, http.StatusOK, "Author updated", author)
}
