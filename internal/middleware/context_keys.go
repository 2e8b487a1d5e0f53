package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the acting user's ID in the request context.
const userIDKey = contextKey("userID")

// ActorHeader is the trusted header the upstream gateway sets after
// authenticating the caller. Authentication itself is out of scope here.
const ActorHeader = "X-User-ID"

// ActorMiddleware extracts the acting user from the trusted gateway header
// and stores it in the request context. Requests without an actor are
// rejected: every journal operation is attributed to someone.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader(ActorHeader)
		if actor == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + ActorHeader + " header"})
			return
		}
		ctx := context.WithValue(c.Request.Context(), userIDKey, actor)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetUserIDFromContext retrieves the acting user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}
