package middlewares

import (
	"net/http"

	"techmastery/services"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the opaque session token
const SessionCookieName = "tm_session"

// SessionMiddleware resolves the session cookie to a user id and sets it in
// the request context. Protected routes 401 without a live session.
func SessionMiddleware(store services.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}

		userID, err := store.Get(c.Request.Context(), token)
		if err == services.ErrSessionNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
