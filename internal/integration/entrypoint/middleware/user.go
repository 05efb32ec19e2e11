// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/coach/internal/domain/error"
	"github.com/finance-tracker/coach/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// UserIDKey is the context key for the calling user's ID.
	UserIDKey ContextKey = "user_id"

	// UserIDHeader carries the caller identity. Authentication happens upstream.
	UserIDHeader = "X-User-ID"
)

// Error codes produced by middleware.
const (
	ErrCodeMissingUser = "API-010002"
	ErrCodeRateLimited = "API-010003"
)

// RequireUser returns a Gin middleware handler that resolves the caller from
// the X-User-ID header and rejects requests without a valid UUID.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if raw == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: UserIDHeader + " header is required",
				Code:  ErrCodeMissingUser,
				Kind:  string(domainerror.KindValidation),
			})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil || userID == uuid.Nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: UserIDHeader + " header must be a UUID",
				Code:  ErrCodeMissingUser,
				Kind:  string(domainerror.KindValidation),
			})
			c.Abort()
			return
		}

		c.Set(string(UserIDKey), userID)
		c.Next()
	}
}

// GetUserIDFromContext extracts the user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(string(UserIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}
