package mw

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bilemo-backend/internal/auth"
	"bilemo-backend/internal/store"
)

// CurrentUserKey is the context key under which the authenticated user is
// stored for downstream handlers.
const CurrentUserKey = "currentUser"

// Auth is a middleware resolving the caller's identity from a bearer
// token. The resolved user, with its customer preloaded, is stored in the
// request context. Missing or invalid credentials abort with 401.
func Auth(tokens *auth.TokenManager, s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Authentication required.")
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Invalid authorization header format.")
			return
		}

		userID, err := tokens.Validate(parts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token.")
			return
		}

		user, err := s.FindUserByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abortUnauthorized(c, "Invalid or expired token.")
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"status":  http.StatusInternalServerError,
					"message": "Internal server error",
				})
			}
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":  http.StatusUnauthorized,
		"message": message,
	})
}
