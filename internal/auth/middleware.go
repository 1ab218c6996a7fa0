package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CookieName is the session cookie set on login and cleared on logout.
const CookieName = "session_id"

const contextKeyUserID = "user_id"

// LoginPath is where anonymous requests to protected routes get sent.
const LoginPath = "/login"

// SessionReader resolves a session cookie to a user ID. *Store satisfies it.
type SessionReader interface {
	GetUserID(ctx context.Context, id string) (int64, bool)
}

// UserIDFromContext returns the current user ID set by RequireSession. 0 if not set.
func UserIDFromContext(c *gin.Context) int64 {
	v, ok := c.Get(contextKeyUserID)
	if !ok {
		return 0
	}
	id, ok := v.(int64)
	if !ok {
		return 0
	}
	return id
}

// RequireSession returns a middleware that checks for a valid session
// cookie and sets the current user ID in the request context. Anonymous
// or stale sessions are redirected to the login page.
func RequireSession(sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(CookieName)
		if err != nil || sessionID == "" {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		userID, ok := sessions.GetUserID(c.Request.Context(), sessionID)
		if !ok {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Set(contextKeyUserID, userID)
		c.Next()
	}
}
