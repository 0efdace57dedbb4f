// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
	"github.com/finance-tracker/analytics/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

// ProfileIDKey is the context key for the resolved profile ID.
const ProfileIDKey ContextKey = "profile_id"

// ProfileIDHeader carries the profile every request operates on.
// Authentication happens upstream; this service trusts the header.
const ProfileIDHeader = "X-Profile-ID"

// RequireProfile returns a Gin middleware handler that resolves the profile of the request.
func RequireProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(ProfileIDHeader))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: domainerror.ErrMissingProfile.Error(),
				Code:  string(domainerror.ErrCodeMissingProfile),
			})
			return
		}

		profileID, err := uuid.Parse(raw)
		if err != nil || profileID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: domainerror.ErrInvalidProfile.Error(),
				Code:  string(domainerror.ErrCodeInvalidProfile),
			})
			return
		}

		c.Set(string(ProfileIDKey), profileID)
		c.Next()
	}
}

// GetProfileIDFromContext extracts the profile ID from the Gin context.
func GetProfileIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(string(ProfileIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
