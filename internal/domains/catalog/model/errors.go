package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/shared/response"
	"library-catalog/pkg/logger"
)

var (
	// ErrUnauthenticated - mutation attempted without a resolved identity.
	// Kept distinct from input errors: callers can tell "log in first"
	// apart from "fix your arguments".
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrDuplicateAuthor - unique index on author name rejected an insert.
	// The service treats this as "author already exists, retry the lookup".
	ErrDuplicateAuthor = errors.New("author already exists")
)

// InvalidInputError covers validation failures and store-level write
// failures alike. Both travel the same channel, with the offending
// arguments attached for caller diagnostics.
type InvalidInputError struct {
	Message string                 `json:"message"`
	Args    map[string]interface{} `json:"invalidArgs,omitempty"`
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

// NewInvalidInput builds an InvalidInputError with the offending args
func NewInvalidInput(message string, args map[string]interface{}) error {
	return &InvalidInputError{Message: message, Args: args}
}

// HandleCatalogError maps domain errors to HTTP responses.
// Returns true if err was non-nil and a response was written.
func HandleCatalogError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrUnauthenticated) {
		response.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", err.Error())
		return true
	}

	var invalid *InvalidInputError
	if errors.As(err, &invalid) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_USER_INPUT", invalid.Message, invalid.Args)
		return true
	}

	logger.Error("catalog request failed", err)
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	return true
}

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	var invalid *InvalidInputError
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return "UNAUTHENTICATED"
	case errors.As(err, &invalid):
		return "BAD_USER_INPUT"
	default:
		return "INTERNAL_ERROR"
	}
}
