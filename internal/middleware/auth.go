package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/types"
)

// Context keys set by the auth middlewares.
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// AuthMiddleware creates a middleware that requires a valid bearer token.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, validator, true)
		if !ok {
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the viewer when a bearer token is present
// but lets anonymous requests through. Listing endpoints use it so that
// viewer-relative flags degrade to false instead of rejecting guests.
func OptionalAuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		claims, ok := bearerClaims(c, validator, true)
		if !ok {
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// AdminOnly rejects requests whose token does not carry the admin role.
// It must be registered after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists || role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's ID from the context.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// ViewerID returns the viewer's ID or nil for anonymous requests.
func ViewerID(c *gin.Context) *uuid.UUID {
	id, ok := CurrentUserID(c)
	if !ok {
		return nil
	}
	return &id
}

func bearerClaims(c *gin.Context, validator TokenValidator, abort bool) (*types.TokenClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if abort {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
		}
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		if abort {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
		}
		return nil, false
	}

	claims, err := validator.ValidateToken(parts[1])
	if err != nil {
		if abort {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
		}
		return nil, false
	}

	return claims, true
}
