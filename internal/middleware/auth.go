package middleware

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"github.com/SarahOester/AWP-Exam-assignment/internal/session" // Session cookie manager

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys set by the middleware
const (
	SessionKey = "session" // The resolved *session.Session
	UserIDKey  = "userID"  // The authenticated user id (uint)
	ProfileKey = "profile" // The *domain.Profile loaded by RequireOwner
)

// RequireSession resolves the session cookie and redirects anonymous
// visitors to the login page instead of proceeding
func RequireSession(sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sm.Get(c) // Resolve the session from the cookie
		// A session without a user id is an anonymous visitor
		uid, err := strconv.ParseUint(s.UserID(), 10, 64)
		if s.UserID() == "" || err != nil {
			c.Redirect(http.StatusFound, "/login") // Send them to the login form
			c.Abort()
			return
		}
		c.Set(SessionKey, s)        // Store session for handlers
		c.Set(UserIDKey, uint(uid)) // Store user id for handlers
		c.Next()                    // Proceed to the next handler
	}
}
