package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	usermodel "library-catalog/internal/domains/user/model"
	"library-catalog/internal/shared/response"
	"library-catalog/pkg/jwt"
)

const identityKey = "identity"

// IdentityLoader loads the principal for a validated token
type IdentityLoader interface {
	GetByID(ctx context.Context, id string) (*usermodel.User, error)
}

// Identity resolves the bearer credential into a request-scoped
// identity and continues the chain either way:
//   - no Authorization header: unauthenticated context, never an error
//     here; services reject mutations that need an identity
//   - header present but malformed, expired, or naming a vanished
//     user: hard 401, the request does not proceed
//
// The identity lives in the gin context for this one request only.
func Identity(jwtManager *jwt.Manager, users IdentityLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Error(c, 401, "UNAUTHENTICATED", "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, 401, "UNAUTHENTICATED", "invalid token")
			c.Abort()
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Error(c, 500, "INTERNAL_ERROR", "failed to load identity")
			c.Abort()
			return
		}
		if user == nil {
			response.Error(c, 401, "UNAUTHENTICATED", "unknown user")
			c.Abort()
			return
		}

		c.Set(identityKey, user)
		c.Next()
	}
}

// IdentityFromContext returns the resolved identity, or nil for an
// unauthenticated context
func IdentityFromContext(c *gin.Context) *usermodel.User {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	user, ok := v.(*usermodel.User)
	if !ok {
		return nil
	}
	return user
}
