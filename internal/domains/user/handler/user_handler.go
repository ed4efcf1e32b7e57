package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/user/model"
	"library-catalog/internal/domains/user/service"
	"library-catalog/internal/shared/middleware"
	"library-catalog/internal/shared/response"
	"library-catalog/pkg/logger"
)

// UserHandler translates HTTP requests for the user domain.
// Stateless - only holds dependencies.
type UserHandler struct {
	service service.Service
}

func NewUserHandler(svc service.Service) *UserHandler {
	return &UserHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// MUTATION: CreateUser - POST /v1/users
// ════════════════════════════════════════════════════════════════

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "User created successfully", user)
}

// ════════════════════════════════════════════════════════════════
// MUTATION: Login - POST /v1/login
// ════════════════════════════════════════════════════════════════

func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", token)
}

// ════════════════════════════════════════════════════════════════
// READ: Me - GET /v1/me
// ════════════════════════════════════════════════════════════════

// Me returns the resolved identity, or null data for an
// unauthenticated context (absent credential is not an error here)
func (h *UserHandler) Me(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	if identity == nil {
		response.Success(c, http.StatusOK, "No identity", nil)
		return
	}

	me, err := h.service.Me(c.Request.Context(), identity)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Identity retrieved successfully", me)
}

// handleError maps domain errors to HTTP responses
func (h *UserHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrWrongCredentials),
		errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrUsernameTaken):
		response.Error(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
	default:
		logger.Error("user request failed", err)
		response.InternalServerError(c, "internal server error")
	}
}
